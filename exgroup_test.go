package exgroup_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/xraph/exgroup"
	"github.com/xraph/exgroup/clause"
	"github.com/xraph/exgroup/group"
	"github.com/xraph/exgroup/match"
	"github.com/xraph/exgroup/validate"
)

type valueError struct{ msg string }

func (e *valueError) Error() string { return e.msg }

type typeError struct{ msg string }

func (e *typeError) Error() string { return e.msg }

type keyError struct{ msg string }

func (e *keyError) Error() string { return e.msg }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEngine(t *testing.T, opts ...exgroup.Option) *exgroup.Engine {
	t.Helper()
	opts = append([]exgroup.Option{exgroup.WithLogger(discardLogger())}, opts...)
	eng, err := exgroup.New(opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return eng
}

func leaves(t *testing.T, err error) []error {
	t.Helper()
	g, ok := err.(*group.Group)
	if !ok {
		t.Fatalf("expected *group.Group, got %T", err)
	}
	var out []error
	for e := range g.Flatten() {
		out = append(out, e)
	}
	return out
}

// depth returns the number of aggregate levels above the deepest leaf.
func depth(err error) int {
	g, ok := err.(*group.Group)
	if !ok {
		return 0
	}
	max := 0
	for _, child := range g.Children() {
		if d := depth(child); d > max {
			max = d
		}
	}
	return max + 1
}

func suppress(_ context.Context, _ *group.Group) clause.Signal {
	return clause.Done()
}

func TestNew_Defaults(t *testing.T) {
	eng := newTestEngine(t)
	if eng.Linker() == nil {
		t.Error("expected a default linker")
	}
	if eng.Extensions() == nil {
		t.Error("expected an extension registry")
	}
	if eng.Config().DefaultSummary == "" {
		t.Error("expected a default summary")
	}
}

func TestDispatch_FullyHandled(t *testing.T) {
	eng := newTestEngine(t)

	raised := group.New("boom", &valueError{"v1"}, &valueError{"v2"})
	res, err := eng.Dispatch(context.Background(), raised,
		clause.NewDiscard("values", match.Type[*valueError](), suppress),
	)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if !res.Handled() {
		t.Errorf("expected handled, got propagated %v", res.Propagated)
	}
}

func TestDispatch_SuppressAndReraise(t *testing.T) {
	eng := newTestEngine(t)

	v := &valueError{"v"}
	t1 := &typeError{"t1"}
	t2 := &typeError{"t2"}
	k := &keyError{"k"}
	raised := group.New("boom", v, t1, t2, k)

	res, err := eng.Dispatch(context.Background(), raised,
		clause.NewDiscard("values", match.Type[*valueError](), suppress),
		clause.New("types", match.Type[*typeError](), func(_ context.Context, _ *group.Group) clause.Signal {
			return clause.Reraise()
		}),
	)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	prop, ok := res.Propagated.(*group.Group)
	if !ok {
		t.Fatalf("propagated %T, want *group.Group", res.Propagated)
	}
	if prop.Summary() != "boom" {
		t.Errorf("summary = %q, want %q", prop.Summary(), "boom")
	}

	children := prop.Children()
	if len(children) != 2 {
		t.Fatalf("got %d children, want 2", len(children))
	}
	if children[0] != error(k) {
		t.Errorf("children[0] = %v, want the key error by identity", children[0])
	}

	nested, ok := children[1].(*group.Group)
	if !ok {
		t.Fatalf("children[1] is %T, want a nested aggregate", children[1])
	}
	sub := nested.Children()
	if len(sub) != 2 || sub[0] != error(t1) || sub[1] != error(t2) {
		t.Errorf("nested children = %v, want [t1 t2] by identity", sub)
	}
}

func TestDispatch_PanicWhileHandling(t *testing.T) {
	eng := newTestEngine(t)

	v1 := &valueError{"v1"}
	v2 := &valueError{"v2"}
	te := &typeError{"t"}
	raised := group.New("boom", v1, v2, te)

	zeroDiv := errors.New("integer division by zero")
	res, err := eng.Dispatch(context.Background(), raised,
		clause.New("values", match.Type[*valueError](), func(_ context.Context, _ *group.Group) clause.Signal {
			panic(zeroDiv)
		}),
	)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	prop, ok := res.Propagated.(*group.Group)
	if !ok {
		t.Fatalf("propagated %T, want *group.Group", res.Propagated)
	}
	children := prop.Children()
	if len(children) != 2 {
		t.Fatalf("got %d children, want 2", len(children))
	}
	if children[0] != error(te) {
		t.Errorf("children[0] = %v, want the unhandled type error", children[0])
	}
	if !errors.Is(children[1], zeroDiv) {
		t.Errorf("children[1] = %v, want the panic error", children[1])
	}

	// The panic error's context link must flatten to exactly the
	// subset that was being handled.
	cctx, ok := eng.Linker().ContextOf(children[1])
	if !ok {
		t.Fatal("expected a context link on the panic error")
	}
	got := leaves(t, cctx)
	if len(got) != 2 || got[0] != error(v1) || got[1] != error(v2) {
		t.Errorf("context leaves = %v, want [v1 v2]", got)
	}
}

func TestDispatch_BareVsCapturedReraise(t *testing.T) {
	newTree := func() *group.Group {
		return group.New("outer", group.New("inner", &typeError{"t1"}, &typeError{"t2"}))
	}

	run := func(t *testing.T, body clause.Body) error {
		eng := newTestEngine(t)
		res, err := eng.Dispatch(context.Background(), newTree(),
			clause.New("types", match.Type[*typeError](), body),
		)
		if err != nil {
			t.Fatalf("Dispatch: %v", err)
		}
		if res.Propagated == nil {
			t.Fatal("expected a propagated tree")
		}
		return res.Propagated
	}

	bare := run(t, func(_ context.Context, _ *group.Group) clause.Signal {
		return clause.Reraise()
	})
	captured := run(t, func(_ context.Context, matched *group.Group) clause.Signal {
		return clause.Raise(matched)
	})

	if d := depth(bare); d != 2 {
		t.Errorf("bare re-raise depth = %d, want 2 (structure unchanged)", d)
	}
	if d := depth(captured); d != 3 {
		t.Errorf("captured re-raise depth = %d, want 3 (one extra level)", d)
	}

	// The captured path must not record a context link: the value is
	// the error being handled, not a consequence of it.
	eng := newTestEngine(t)
	res, err := eng.Dispatch(context.Background(), newTree(),
		clause.New("types", match.Type[*typeError](), func(_ context.Context, matched *group.Group) clause.Signal {
			return clause.Raise(matched)
		}),
	)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if _, ok := eng.Linker().ContextOf(res.Propagated); ok {
		t.Error("captured re-raise must not carry a context link")
	}
}

func TestDispatch_RecursiveMatching(t *testing.T) {
	eng := newTestEngine(t)

	t1 := &typeError{"top"}
	t2 := &typeError{"deep"}
	raised := group.New("boom",
		t1,
		group.New("mid",
			group.New("deep", t2),
			&valueError{"v"},
		),
	)

	var boundCount int
	res, err := eng.Dispatch(context.Background(), raised,
		clause.New("types", match.Type[*typeError](), func(_ context.Context, matched *group.Group) clause.Signal {
			boundCount = matched.Count()
			return clause.Done()
		}),
	)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	if boundCount != 2 {
		t.Errorf("bound count = %d, want 2 (both nesting depths)", boundCount)
	}

	// The value error is the only leftover.
	got := leaves(t, res.Propagated)
	if len(got) != 1 {
		t.Fatalf("leftover leaves = %v, want one", got)
	}
	if _, ok := got[0].(*valueError); !ok {
		t.Errorf("leftover = %T, want *valueError", got[0])
	}
}

func TestDispatch_NoMatchSkip(t *testing.T) {
	eng := newTestEngine(t)

	naked := errors.New("naked")
	invoked := false
	res, err := eng.Dispatch(context.Background(), naked,
		clause.NewDiscard("types", match.Type[*typeError](), func(_ context.Context, _ *group.Group) clause.Signal {
			invoked = true
			return clause.Done()
		}),
	)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	if invoked {
		t.Error("body ran despite an empty match")
	}
	// Untouched: the original value propagates by identity, naked.
	if res.Propagated != naked {
		t.Errorf("propagated %v, want the original naked error", res.Propagated)
	}
}

func TestDispatch_UntouchedGroupKeepsIdentity(t *testing.T) {
	eng := newTestEngine(t)

	raised := group.New("boom", &keyError{"k"})
	res, err := eng.Dispatch(context.Background(), raised,
		clause.NewDiscard("types", match.Type[*typeError](), suppress),
	)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if res.Propagated != error(raised) {
		t.Error("untouched aggregate must propagate by identity")
	}
}

func TestDispatch_EarlyReturn(t *testing.T) {
	eng := newTestEngine(t)

	raised := group.New("boom", &valueError{"v"}, &typeError{"t"})
	secondRan := false
	res, err := eng.Dispatch(context.Background(), raised,
		clause.NewDiscard("values", match.Type[*valueError](), func(_ context.Context, _ *group.Group) clause.Signal {
			return clause.Return()
		}),
		clause.NewDiscard("types", match.Type[*typeError](), func(_ context.Context, _ *group.Group) clause.Signal {
			secondRan = true
			return clause.Done()
		}),
	)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	if !res.Returned {
		t.Error("expected Returned")
	}
	if res.Propagated != nil {
		t.Errorf("early return must discard everything, got %v", res.Propagated)
	}
	if secondRan {
		t.Error("clauses after an early return must not run")
	}
}

func TestDispatch_NewErrorsMerge(t *testing.T) {
	eng := newTestEngine(t)

	first := errors.New("first replacement")
	second := errors.New("second replacement")
	raised := group.New("boom", &valueError{"v"}, &typeError{"t"})

	res, err := eng.Dispatch(context.Background(), raised,
		clause.NewDiscard("values", match.Type[*valueError](), func(_ context.Context, _ *group.Group) clause.Signal {
			return clause.Raise(first)
		}),
		clause.NewDiscard("types", match.Type[*typeError](), func(_ context.Context, _ *group.Group) clause.Signal {
			return clause.Raise(second)
		}),
	)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	prop, ok := res.Propagated.(*group.Group)
	if !ok {
		t.Fatalf("propagated %T, want *group.Group", res.Propagated)
	}
	children := prop.Children()
	if len(children) != 2 || children[0] != first || children[1] != second {
		t.Errorf("children = %v, want [first second] in clause order", children)
	}
}

func TestDispatch_SingleNewErrorPropagatesNaked(t *testing.T) {
	eng := newTestEngine(t)

	replacement := errors.New("replacement")
	raised := group.New("boom", &valueError{"v"})

	res, err := eng.Dispatch(context.Background(), raised,
		clause.NewDiscard("values", match.Type[*valueError](), func(_ context.Context, _ *group.Group) clause.Signal {
			return clause.Raise(replacement)
		}),
	)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	if res.Propagated != replacement {
		t.Errorf("propagated %v, want the replacement alone", res.Propagated)
	}
}

func TestDispatch_RaiseFromLinks(t *testing.T) {
	eng := newTestEngine(t)

	declared := errors.New("declared cause")
	wrapped := errors.New("wrapped")
	v := &valueError{"v"}
	raised := group.New("boom", v)

	res, err := eng.Dispatch(context.Background(), raised,
		clause.New("values", match.Type[*valueError](), func(_ context.Context, _ *group.Group) clause.Signal {
			return clause.RaiseFrom(wrapped, declared)
		}),
	)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if res.Propagated != wrapped {
		t.Fatalf("propagated %v, want the new error", res.Propagated)
	}

	if cause, ok := eng.Linker().CauseOf(wrapped); !ok || cause != declared {
		t.Errorf("cause link = %v, %v", cause, ok)
	}
	cctx, ok := eng.Linker().ContextOf(wrapped)
	if !ok {
		t.Fatal("expected a context link")
	}
	got := leaves(t, cctx)
	if len(got) != 1 || got[0] != error(v) {
		t.Errorf("context leaves = %v, want [v]", got)
	}
}

func TestDispatch_ArgumentErrors(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	if _, err := eng.Dispatch(ctx, nil); !errors.Is(err, exgroup.ErrNilRaised) {
		t.Errorf("nil raised: err = %v", err)
	}

	probe := errors.New("probe")
	if _, err := eng.Dispatch(ctx, probe, clause.Clause{Body: suppress}); !errors.Is(err, exgroup.ErrNilPredicate) {
		t.Errorf("nil predicate: err = %v", err)
	}
	if _, err := eng.Dispatch(ctx, probe, clause.Clause{Match: match.Is(probe)}); !errors.Is(err, exgroup.ErrNilBody) {
		t.Errorf("nil body: err = %v", err)
	}
}

func TestCheckBlock_GatesDispatch(t *testing.T) {
	eng := newTestEngine(t)

	bad := &validate.Block{Clauses: []validate.Clause{
		{Style: validate.StyleMulti},
		{Style: validate.StyleSingle},
	}}

	// A host must refuse to dispatch a block with violations; none of
	// its clauses may reach Dispatch.
	vs := eng.CheckBlock(bad)
	if len(vs) == 0 {
		t.Fatal("expected violations for a mixed-style block")
	}
}

func TestCheckBlock_PolicyDisablesRules(t *testing.T) {
	policy, err := validate.LoadPolicy([]byte("disabled_rules: [mixed-clause-styles]"))
	if err != nil {
		t.Fatalf("LoadPolicy: %v", err)
	}
	eng := newTestEngine(t, exgroup.WithPolicy(policy))

	mixed := &validate.Block{Clauses: []validate.Clause{
		{Style: validate.StyleMulti},
		{Style: validate.StyleSingle},
	}}
	if vs := eng.CheckBlock(mixed); len(vs) != 0 {
		t.Errorf("expected the disabled rule to be skipped, got %v", vs)
	}
}

func TestDispatch_NakedErrorWrappedWithDefaultSummary(t *testing.T) {
	eng := newTestEngine(t, exgroup.WithDefaultSummary("request failed"))

	naked := &valueError{"v"}
	var seenSummary string
	res, err := eng.Dispatch(context.Background(), naked,
		clause.New("values", match.Type[*valueError](), func(_ context.Context, matched *group.Group) clause.Signal {
			seenSummary = matched.Summary()
			return clause.Done()
		}),
	)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	if !res.Handled() {
		t.Errorf("expected handled, got %v", res.Propagated)
	}
	if seenSummary != "request failed" {
		t.Errorf("bound summary = %q, want the configured default", seenSummary)
	}
}
