package config

import (
	"fmt"

	"github.com/MyCarrier-DevOps/go-gitsemver/internal/resolve"
)

// Builder layers FileConfig overrides, later additions winning, the way
// the teacher's configuration builder layers GitVersion.yml overrides.
type Builder struct {
	overrides []*FileConfig
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends an override layer. A nil override is a no-op, so callers can
// unconditionally Add the result of a "file not found" lookup.
func (b *Builder) Add(override *FileConfig) *Builder {
	if override != nil {
		b.overrides = append(b.overrides, override)
	}
	return b
}

// ApplyDefaults fills the zero-valued fields of cfg from the layered
// FileConfig overrides, without ever overwriting a value the caller
// already set explicitly (flags always win over the file).
func (b *Builder) ApplyDefaults(cfg *resolve.Config) error {
	for i := len(b.overrides) - 1; i >= 0; i-- {
		o := b.overrides[i]
		if cfg.ShaLength == 0 && o.ShaLength != nil {
			if *o.ShaLength < 7 || *o.ShaLength > 40 {
				return fmt.Errorf("sha-length %d out of range [7,40]", *o.ShaLength)
			}
			cfg.ShaLength = *o.ShaLength
		}
		if cfg.BranchOverride == "" && o.BranchOverride != nil {
			cfg.BranchOverride = *o.BranchOverride
		}
		if !cfg.Verbose && o.Verbose != nil {
			cfg.Verbose = *o.Verbose
		}
	}
	return nil
}
