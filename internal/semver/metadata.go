package semver

import "regexp"

var metadataIdentifierRe = regexp.MustCompile(`^[0-9A-Za-z-]+$`)

// Metadata is an ordered list of build-metadata identifiers. Order is
// preserved for rendering but never affects precedence.
type Metadata struct {
	ids []string
}

// NewMetadata validates and constructs a Metadata value. Every identifier
// must be non-empty and match [0-9A-Za-z-]+.
func NewMetadata(ids []string) (Metadata, error) {
	for _, id := range ids {
		if id == "" {
			return Metadata{}, &InvalidMetadataError{Message: "identifier must not be empty"}
		}
		if !metadataIdentifierRe.MatchString(id) {
			return Metadata{}, &InvalidMetadataError{Message: "identifier " + id + " contains invalid characters"}
		}
	}
	out := make([]string, len(ids))
	copy(out, ids)
	return Metadata{ids: out}, nil
}

// Identifiers returns a copy of the ordered identifier list.
func (m Metadata) Identifiers() []string {
	out := make([]string, len(m.ids))
	copy(out, m.ids)
	return out
}

// IsEmpty reports whether there are no identifiers.
func (m Metadata) IsEmpty() bool { return len(m.ids) == 0 }

// render joins identifiers with '.'.
func (m Metadata) render() string {
	s := ""
	for i, id := range m.ids {
		if i > 0 {
			s += "."
		}
		s += id
	}
	return s
}
