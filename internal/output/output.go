// Package output renders a resolved version in the formats the CLI and SDK
// callers expect: a bare string, pretty JSON, or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/MyCarrier-DevOps/go-gitsemver/internal/semver"
)

// Result is the flattened, serialization-friendly view of a resolved
// version: every field a caller might want individually, alongside the
// two canonical renderings.
type Result struct {
	Version       string `json:"version" yaml:"version"`
	FullVersion   string `json:"fullVersion" yaml:"fullVersion"`
	Major         int32  `json:"major" yaml:"major"`
	Minor         int32  `json:"minor" yaml:"minor"`
	Patch         int32  `json:"patch" yaml:"patch"`
	PreRelease    string `json:"preRelease,omitempty" yaml:"preRelease,omitempty"`
	BuildMetadata string `json:"buildMetadata,omitempty" yaml:"buildMetadata,omitempty"`
	IsFinal       bool   `json:"isFinal" yaml:"isFinal"`
}

// NewResult flattens a semver.Version into its serialization-friendly
// shape.
func NewResult(v semver.Version) Result {
	r := Result{
		Version:     v.String(),
		FullVersion: v.Extended(),
		Major:       v.Major().Value(),
		Minor:       v.Minor().Value(),
		Patch:       v.Patch().Value(),
		IsFinal:     v.IsFinal(),
	}
	if pr, ok := v.PreRelease(); ok {
		r.PreRelease = pr.Classifier().Canonical()
		if n, hasN := pr.Number(); hasN {
			r.PreRelease += "." + n.String()
		}
	}
	if m, ok := v.Metadata(); ok && !m.IsEmpty() {
		r.BuildMetadata = joinIdentifiers(m.Identifiers())
	}
	return r
}

func joinIdentifiers(ids []string) string {
	out := ""
	for i, id := range ids {
		if i > 0 {
			out += "."
		}
		out += id
	}
	return out
}

// Format names a supported rendering.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Write renders result to w in the named format. An empty format defaults
// to FormatText.
func Write(w io.Writer, result Result, format Format) error {
	switch format {
	case "", FormatText:
		return writeText(w, result)
	case FormatJSON:
		return writeJSON(w, result)
	case FormatYAML:
		return writeYAML(w, result)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// writeText prints the full extended version string, the form a build
// pipeline would tag a commit or artifact with.
func writeText(w io.Writer, result Result) error {
	_, err := fmt.Fprintln(w, result.FullVersion)
	return err
}

func writeJSON(w io.Writer, result Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling result as json: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeYAML(w io.Writer, result Result) error {
	data, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshaling result as yaml: %w", err)
	}
	_, err = w.Write(data)
	return err
}
