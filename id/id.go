// Package id defines TypeID-based identity types for exgroup entities.
//
// Every identifiable entity in exgroup uses a single ID struct with a
// prefix that names the entity type. IDs are K-sortable (UUIDv7-based),
// globally unique, and URL-safe in the format "prefix_suffix". They are
// used purely for correlation: log records, span attributes, and the
// chain side table keys group nodes by their GroupID.
package id

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

// Prefix identifies the entity type encoded in a TypeID.
type Prefix string

// Prefix constants for all exgroup entity types.
const (
	// PrefixBlock identifies one dispatched handler block invocation.
	PrefixBlock Prefix = "blk"

	// PrefixGroup identifies one aggregate tree node.
	PrefixGroup Prefix = "grp"

	// PrefixClause identifies one clause descriptor in a validated block.
	PrefixClause Prefix = "cls"
)

// ID is the identifier type for exgroup entities. It wraps a TypeID
// providing a prefix-qualified, globally unique, sortable, URL-safe
// identifier in the format "prefix_suffix".
//
//nolint:recvcheck // Value receivers for read-only methods, pointer receiver for UnmarshalText.
type ID struct {
	inner typeid.TypeID
	valid bool
}

// Nil is the zero-value ID.
var Nil ID

// New generates a new globally unique ID with the given prefix.
// It panics if prefix is not a valid TypeID prefix (programming error).
func New(prefix Prefix) ID {
	tid, err := typeid.Generate(string(prefix))
	if err != nil {
		panic(fmt.Sprintf("id: invalid prefix %q: %v", prefix, err))
	}

	return ID{inner: tid, valid: true}
}

// Parse parses a TypeID string (e.g., "blk_01h2xcejqtf2nbrexx3vqjhp41")
// into an ID. Returns an error if the string is not valid.
func Parse(s string) (ID, error) {
	if s == "" {
		return Nil, fmt.Errorf("id: parse %q: empty string", s)
	}

	tid, err := typeid.Parse(s)
	if err != nil {
		return Nil, fmt.Errorf("id: parse %q: %w", s, err)
	}

	return ID{inner: tid, valid: true}, nil
}

// ParseWithPrefix parses a TypeID string and validates that its prefix
// matches the expected value.
func ParseWithPrefix(s string, expected Prefix) (ID, error) {
	parsed, err := Parse(s)
	if err != nil {
		return Nil, err
	}

	if parsed.Prefix() != expected {
		return Nil, fmt.Errorf("id: expected prefix %q, got %q", expected, parsed.Prefix())
	}

	return parsed, nil
}

// MustParse is like Parse but panics on error. Use for hardcoded ID values.
func MustParse(s string) ID {
	parsed, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("id: must parse %q: %v", s, err))
	}

	return parsed
}

// ──────────────────────────────────────────────────
// Entity aliases
// ──────────────────────────────────────────────────

// BlockID identifies one dispatched block (prefix: "blk").
type BlockID = ID

// GroupID identifies one aggregate tree node (prefix: "grp").
type GroupID = ID

// ClauseID identifies one clause descriptor (prefix: "cls").
type ClauseID = ID

// NewBlockID generates a new unique block ID.
func NewBlockID() ID { return New(PrefixBlock) }

// NewGroupID generates a new unique group node ID.
func NewGroupID() ID { return New(PrefixGroup) }

// NewClauseID generates a new unique clause ID.
func NewClauseID() ID { return New(PrefixClause) }

// ParseBlockID parses a string and validates the "blk" prefix.
func ParseBlockID(s string) (ID, error) { return ParseWithPrefix(s, PrefixBlock) }

// ParseGroupID parses a string and validates the "grp" prefix.
func ParseGroupID(s string) (ID, error) { return ParseWithPrefix(s, PrefixGroup) }

// ParseClauseID parses a string and validates the "cls" prefix.
func ParseClauseID(s string) (ID, error) { return ParseWithPrefix(s, PrefixClause) }

// ──────────────────────────────────────────────────
// ID methods
// ──────────────────────────────────────────────────

// String returns the full TypeID string representation (prefix_suffix).
// Returns an empty string for the Nil ID.
func (i ID) String() string {
	if !i.valid {
		return ""
	}

	return i.inner.String()
}

// Prefix returns the prefix component of this ID.
func (i ID) Prefix() Prefix {
	if !i.valid {
		return ""
	}

	return Prefix(i.inner.Prefix())
}

// IsNil reports whether this ID is the zero value.
func (i ID) IsNil() bool {
	return !i.valid
}

// MarshalText implements encoding.TextMarshaler.
func (i ID) MarshalText() ([]byte, error) {
	if !i.valid {
		return []byte{}, nil
	}

	return []byte(i.inner.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *ID) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*i = Nil

		return nil
	}

	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}

	*i = parsed

	return nil
}
