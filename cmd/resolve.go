package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MyCarrier-DevOps/go-gitsemver/internal/config"
	"github.com/MyCarrier-DevOps/go-gitsemver/internal/output"
	"github.com/MyCarrier-DevOps/go-gitsemver/internal/repo"
	"github.com/MyCarrier-DevOps/go-gitsemver/internal/resolve"
)

func resolveRunE(cmd *cobra.Command, _ []string) error {
	r, err := repo.Open(flagPath)
	if err != nil {
		return fmt.Errorf("opening repository: %w", err)
	}

	cfg, err := buildConfig(flagPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	if flagExplain {
		v, trace, err := resolve.ResolveExplain(cmd.Context(), r, cfg)
		if err != nil {
			return fmt.Errorf("resolving version: %w", err)
		}
		if err := output.WriteExplanation(cmd.ErrOrStderr(), *trace); err != nil {
			return err
		}
		return output.Write(cmd.OutOrStdout(), output.NewResult(v), output.Format(flagOutput))
	}

	v, err := resolve.Resolve(cmd.Context(), r, cfg)
	if err != nil {
		return fmt.Errorf("resolving version: %w", err)
	}

	return output.Write(cmd.OutOrStdout(), output.NewResult(v), output.Format(flagOutput))
}

// buildConfig layers the repo-local .gitsemver.yml (if any) underneath the
// flags the caller passed explicitly.
func buildConfig(workDir string) (resolve.Config, error) {
	cfg := resolve.Config{
		BasisCommit:    flagCommit,
		BranchOverride: flagBranch,
		ShaLength:      flagShaLength,
		Verbose:        flagVerbose,
	}
	if flagPR != 0 {
		pr := flagPR
		cfg.PRNumber = &pr
	}

	path := flagConfig
	if path == "" {
		path = config.Find(workDir)
	}

	builder := config.NewBuilder()
	if path != "" {
		fc, err := config.LoadFromFile(path)
		if err != nil {
			return cfg, err
		}
		builder.Add(fc)
	}
	if err := builder.ApplyDefaults(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
