// Package config loads the CLI's repo-local defaults from an optional
// .gitsemver.yml, layered underneath whatever the caller passes on the
// command line. It never changes resolution semantics: every field here
// is ergonomics around resolve.Config (spec §6), not a new input.
package config

// FileConfig is the shape of .gitsemver.yml: repo-local defaults for the
// flags a caller would otherwise have to repeat on every invocation.
// All fields are pointers so an absent key never overrides a flag the
// caller did pass.
type FileConfig struct {
	ShaLength      *int    `yaml:"sha-length"`
	BranchOverride *string `yaml:"branch-override"`
	Verbose        *bool   `yaml:"verbose"`
}
