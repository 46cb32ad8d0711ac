package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/MyCarrier-DevOps/go-gitsemver/internal/resolve"
)

const arrowPrefix = "→"

// WriteExplanation writes a structured trace of a resolve.Trace: the mode
// selected, the base tag, every surviving directive, the commits the
// ignore engine dropped, and the final assembled version. It never
// influences the version itself — ResolveExplain already computed it.
func WriteExplanation(w io.Writer, trace resolve.Trace) error {
	fmt.Fprintf(w, "Basis: %s (mode: %s)\n", trace.BasisSha, trace.Mode)

	if trace.Mode == "concrete" {
		fmt.Fprintf(w, "Result: %s\n", trace.FinalVersion.String())
		return nil
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Base tag:")
	if trace.BaseTag != nil {
		fmt.Fprintf(w, "  %s %s %s\n", arrowPrefix, trace.BaseTag.Name, trace.BaseTag.CommitSha)
	} else {
		fmt.Fprintf(w, "  %s (none reachable)\n", arrowPrefix)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Commits considered: %d\n", trace.CommitsConsidered)
	if len(trace.IgnoredCommits) > 0 {
		fmt.Fprintf(w, "  %s dropped by ignore directives: %s\n", arrowPrefix, strings.Join(trace.IgnoredCommits, ", "))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Directives:")
	if len(trace.Directives) == 0 {
		fmt.Fprintf(w, "  %s (none)\n", arrowPrefix)
	}
	for _, d := range trace.Directives {
		fmt.Fprintf(w, "  %s %s\n", arrowPrefix, resolve.DirectiveSummary(d))
	}

	fmt.Fprintln(w)
	if trace.UsedExplicitTarget {
		fmt.Fprintf(w, "Target: explicit, selected %s\n", trace.SelectedCore.String())
	} else {
		fmt.Fprintf(w, "Target: none survived, derived %s\n", trace.SelectedCore.String())
	}

	if !trace.Metadata.IsEmpty() {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Metadata: %s\n", joinIdentifiers(trace.Metadata.Identifiers()))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Result: %s\n", trace.FinalVersion.Extended())
	return nil
}

// FormatExplanation returns the explain output as a string.
func FormatExplanation(trace resolve.Trace) string {
	var sb strings.Builder
	_ = WriteExplanation(&sb, trace)
	return sb.String()
}
