package domain

import (
	"strings"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DependencyType is the temporal relation between the schedules of two linked tasks.
// The zero value is EndStart, which is also the default for links that declare no type.
type DependencyType int

const (
	// EndStart means the destination starts once the origin has finished.
	EndStart DependencyType = iota
	// StartStart means the destination starts together with the origin.
	StartStart
	// EndEnd means the destination finishes together with the origin.
	EndEnd
)

// String returns the canonical name of the dependency type.
func (t DependencyType) String() string {
	switch t {
	case StartStart:
		return "start-start"
	case EndEnd:
		return "end-end"
	default:
		return "end-start"
	}
}

// ParseDependencyType converts a textual dependency type into a DependencyType.
// An empty string yields EndStart.
func ParseDependencyType(s string) (DependencyType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "end-start", "finish-start", "end_start", "es", "fs":
		return EndStart, nil
	case "start-start", "start_start", "ss":
		return StartStart, nil
	case "end-end", "finish-finish", "end_end", "ee", "ff":
		return EndEnd, nil
	default:
		return EndStart, zerr.With(zerr.Wrap(ErrInvalidDependencyType, "failed to parse dependency type"), "type", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t DependencyType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *DependencyType) UnmarshalText(text []byte) error {
	parsed, err := ParseDependencyType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *DependencyType) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return zerr.Wrap(err, "failed to decode dependency type")
	}
	return t.UnmarshalText([]byte(s))
}

// Link is a declared precedence dependency from one task to another.
type Link struct {
	From InternedString
	To   InternedString
	Type DependencyType
}
