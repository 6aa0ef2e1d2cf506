package chain

import (
	"errors"
	"reflect"
	"sync"

	"github.com/xraph/exgroup/group"
)

// ErrContextAlreadySet reports an attempt to overwrite an existing
// context link through the strict path. If the Linker contract is
// honored this is never observed at runtime: LinkContext is
// first-writer-wins and simply declines.
var ErrContextAlreadySet = errors.New("chain: context link already set")

// LinkKind distinguishes the two causal links.
type LinkKind int

const (
	// KindContext is the implicit link: the tree that was being handled
	// when the error was produced.
	KindContext LinkKind = iota

	// KindCause is the explicit link: declared chaining.
	KindCause
)

// String returns the kind's name for logs and hook payloads.
func (k LinkKind) String() string {
	if k == KindCause {
		return "cause"
	}

	return "context"
}

// Linker records causal links for errors produced during dispatch.
//
// LinkContext is single-assignment: the first writer wins and later
// calls are no-ops, so a link set by an inner frame is never overwritten
// by an outer handler. LinkCause is last-writer-wins, since explicit
// chaining is always intentional. Both report whether the link was
// actually written.
type Linker interface {
	LinkContext(err, context error) bool
	LinkCause(err, cause error) bool
	ContextOf(err error) (error, bool)
	CauseOf(err error) (error, bool)
}

type record struct {
	context error
	cause   error
}

// SideTable is the default Linker for hosts without native
// back-references on their error values. Group nodes are keyed by their
// GroupID; concrete errors are keyed by value identity, which requires a
// comparable dynamic type — links on non-comparable errors are declined.
//
// A SideTable is safe for concurrent use; reads during concurrent
// display or logging take only a read lock.
type SideTable struct {
	mu      sync.RWMutex
	records map[any]*record
}

// NewSideTable creates an empty side table.
func NewSideTable() *SideTable {
	return &SideTable{records: make(map[any]*record)}
}

// keyFor derives the table key for err. Group nodes use their ID so two
// structurally equal trees stay distinct. The second return is false
// when err cannot be keyed at all.
func keyFor(err error) (any, bool) {
	if err == nil {
		return nil, false
	}
	if g, ok := err.(*group.Group); ok {
		return g.ID().String(), true
	}
	if !reflect.TypeOf(err).Comparable() {
		return nil, false
	}

	return err, true
}

// LinkContext sets err's context link unless one is already present.
// It reports whether the link was written.
func (t *SideTable) LinkContext(err, context error) bool {
	key, ok := keyFor(err)
	if !ok || context == nil {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	r := t.records[key]
	if r == nil {
		r = &record{}
		t.records[key] = r
	}
	if r.context != nil {
		return false
	}
	r.context = context

	return true
}

// LinkContextStrict is the assertion-level variant: it fails with
// ErrContextAlreadySet instead of declining when a context link exists.
// The engine itself only ever uses LinkContext; this path is for callers
// verifying the single-assignment contract.
func (t *SideTable) LinkContextStrict(err, context error) error {
	if !t.LinkContext(err, context) {
		if _, set := t.ContextOf(err); set {
			return ErrContextAlreadySet
		}
	}

	return nil
}

// LinkCause sets err's cause link unconditionally, replacing any earlier
// value. It reports whether the link was written.
func (t *SideTable) LinkCause(err, cause error) bool {
	key, ok := keyFor(err)
	if !ok || cause == nil {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	r := t.records[key]
	if r == nil {
		r = &record{}
		t.records[key] = r
	}
	r.cause = cause

	return true
}

// ContextOf returns err's context link, if any.
func (t *SideTable) ContextOf(err error) (error, bool) {
	key, ok := keyFor(err)
	if !ok {
		return nil, false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	r := t.records[key]
	if r == nil || r.context == nil {
		return nil, false
	}

	return r.context, true
}

// CauseOf returns err's cause link, if any.
func (t *SideTable) CauseOf(err error) (error, bool) {
	key, ok := keyFor(err)
	if !ok {
		return nil, false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	r := t.records[key]
	if r == nil || r.cause == nil {
		return nil, false
	}

	return r.cause, true
}
