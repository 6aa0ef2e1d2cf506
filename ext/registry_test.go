package ext_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/xraph/exgroup/chain"
	"github.com/xraph/exgroup/ext"
	"github.com/xraph/exgroup/group"
	"github.com/xraph/exgroup/id"
)

// recordingExt implements every hook and records what it saw.
type recordingExt struct {
	name   string
	events []string
	links  []chain.LinkKind
	err    error // returned from every hook when set
}

func (r *recordingExt) Name() string { return r.name }

func (r *recordingExt) OnBlockStarted(_ context.Context, _ id.BlockID, _ *group.Group) error {
	r.events = append(r.events, "block_started")
	return r.err
}

func (r *recordingExt) OnBlockHandled(_ context.Context, _ id.BlockID) error {
	r.events = append(r.events, "block_handled")
	return r.err
}

func (r *recordingExt) OnBlockPropagated(_ context.Context, _ id.BlockID, _ error) error {
	r.events = append(r.events, "block_propagated")
	return r.err
}

func (r *recordingExt) OnBlockReturned(_ context.Context, _ id.BlockID) error {
	r.events = append(r.events, "block_returned")
	return r.err
}

func (r *recordingExt) OnClauseMatched(_ context.Context, _ id.BlockID, _ int, _ string, _ *group.Group) error {
	r.events = append(r.events, "clause_matched")
	return r.err
}

func (r *recordingExt) OnClauseSuppressed(_ context.Context, _ id.BlockID, _ int, _ string) error {
	r.events = append(r.events, "clause_suppressed")
	return r.err
}

func (r *recordingExt) OnClauseReraised(_ context.Context, _ id.BlockID, _ int, _ string, _ error) error {
	r.events = append(r.events, "clause_reraised")
	return r.err
}

func (r *recordingExt) OnErrorRaised(_ context.Context, _ id.BlockID, _ int, _ string, _ error) error {
	r.events = append(r.events, "error_raised")
	return r.err
}

func (r *recordingExt) OnChainLinked(_ context.Context, _ error, _ error, kind chain.LinkKind) error {
	r.events = append(r.events, "chain_linked")
	r.links = append(r.links, kind)
	return r.err
}

// startedOnly opts in to a single hook.
type startedOnly struct{ count int }

func (s *startedOnly) Name() string { return "started-only" }

func (s *startedOnly) OnBlockStarted(_ context.Context, _ id.BlockID, _ *group.Group) error {
	s.count++
	return nil
}

func testRegistry() *ext.Registry {
	return ext.NewRegistry(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRegistry_FanOut(t *testing.T) {
	r := testRegistry()
	a := &recordingExt{name: "a"}
	b := &recordingExt{name: "b"}
	r.Register(a)
	r.Register(b)

	ctx := context.Background()
	blk := id.NewBlockID()
	g := group.New("", errors.New("x"))

	r.EmitBlockStarted(ctx, blk, g)
	r.EmitClauseMatched(ctx, blk, 0, "c", g)
	r.EmitClauseSuppressed(ctx, blk, 0, "c")
	r.EmitClauseReraised(ctx, blk, 1, "d", g)
	r.EmitErrorRaised(ctx, blk, 1, "d", errors.New("new"))
	r.EmitChainLinked(ctx, errors.New("new"), g, chain.KindContext)
	r.EmitBlockPropagated(ctx, blk, g)
	r.EmitBlockHandled(ctx, blk)
	r.EmitBlockReturned(ctx, blk)

	want := []string{
		"block_started", "clause_matched", "clause_suppressed",
		"clause_reraised", "error_raised", "chain_linked",
		"block_propagated", "block_handled", "block_returned",
	}
	for _, rec := range []*recordingExt{a, b} {
		if len(rec.events) != len(want) {
			t.Fatalf("%s saw %d events, want %d: %v", rec.name, len(rec.events), len(want), rec.events)
		}
		for i, w := range want {
			if rec.events[i] != w {
				t.Errorf("%s events[%d] = %q, want %q", rec.name, i, rec.events[i], w)
			}
		}
	}
	if len(a.links) != 1 || a.links[0] != chain.KindContext {
		t.Errorf("chain link kinds = %v, want [context]", a.links)
	}
}

func TestRegistry_OptInHooksOnly(t *testing.T) {
	r := testRegistry()
	s := &startedOnly{}
	r.Register(s)

	ctx := context.Background()
	blk := id.NewBlockID()

	r.EmitBlockStarted(ctx, blk, group.New("", errors.New("x")))
	r.EmitBlockHandled(ctx, blk) // not implemented by s; must not panic

	if s.count != 1 {
		t.Errorf("OnBlockStarted called %d times, want 1", s.count)
	}
}

func TestRegistry_HookErrorsAreSwallowed(t *testing.T) {
	r := testRegistry()
	failing := &recordingExt{name: "failing", err: errors.New("hook broke")}
	after := &recordingExt{name: "after"}
	r.Register(failing)
	r.Register(after)

	r.EmitBlockHandled(context.Background(), id.NewBlockID())

	// The failing hook must not stop fan-out to later extensions.
	if len(after.events) != 1 {
		t.Errorf("later extension saw %d events, want 1", len(after.events))
	}
}

func TestRegistry_Extensions(t *testing.T) {
	r := testRegistry()
	a := &recordingExt{name: "a"}
	r.Register(a)

	all := r.Extensions()
	if len(all) != 1 || all[0].Name() != "a" {
		t.Errorf("Extensions() = %v", all)
	}
}
