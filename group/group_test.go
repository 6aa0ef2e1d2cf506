package group_test

import (
	"errors"
	"slices"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/xraph/exgroup/group"
)

var (
	errA = errors.New("a")
	errB = errors.New("b")
	errC = errors.New("c")
	errD = errors.New("d")
)

func leaves(g *group.Group) []error {
	var out []error
	for err := range g.Flatten() {
		out = append(out, err)
	}

	return out
}

func TestNew_SkipsNil(t *testing.T) {
	g := group.New("", errA, nil, errB)
	if g.Len() != 2 {
		t.Fatalf("Len = %d, want 2", g.Len())
	}
}

func TestNew_KeepsNesting(t *testing.T) {
	inner := group.New("inner", errB, errC)
	g := group.New("outer", errA, inner)

	children := g.Children()
	if len(children) != 2 {
		t.Fatalf("len(children) = %d, want 2", len(children))
	}
	if children[1] != error(inner) {
		t.Error("nested group was not kept as a child")
	}
}

func TestFlatten_DepthFirstInsertionOrder(t *testing.T) {
	g := group.New("", errA, group.New("", errB, group.New("", errC)), errD)

	got := leaves(g)
	want := []error{errA, errB, errC, errD}
	if !slices.Equal(got, want) {
		t.Errorf("Flatten order = %v, want %v", got, want)
	}
}

func TestFlatten_Restartable(t *testing.T) {
	g := group.New("", errA, group.New("", errB))

	first := leaves(g)
	second := leaves(g)
	if !slices.Equal(first, second) {
		t.Errorf("second traversal %v differs from first %v", second, first)
	}
}

func TestFlatten_EarlyStop(t *testing.T) {
	g := group.New("", errA, group.New("", errB, errC), errD)

	var got []error
	for err := range g.Flatten() {
		got = append(got, err)
		if len(got) == 2 {
			break
		}
	}
	if !slices.Equal(got, []error{errA, errB}) {
		t.Errorf("partial traversal = %v", got)
	}
}

// Rebuilding a tree from its flattened leaves and flattening again must
// reproduce the same concrete-error sequence.
func TestFlatten_Idempotent(t *testing.T) {
	g := group.New("", errA, group.New("x", errB, group.New("y", errC)), errD)

	rebuilt := group.New(g.Summary(), leaves(g)...)
	if !slices.Equal(leaves(rebuilt), leaves(g)) {
		t.Errorf("rebuilt leaves %v != original %v", leaves(rebuilt), leaves(g))
	}
}

func TestIsEmpty(t *testing.T) {
	tests := []struct {
		name string
		g    *group.Group
		want bool
	}{
		{"nil group", nil, true},
		{"no children", group.New(""), true},
		{"only empty nested", group.New("", group.New("")), true},
		{"concrete leaf", group.New("", errA), false},
		{"nested leaf", group.New("", group.New("", errA)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.g.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCount(t *testing.T) {
	g := group.New("", errA, group.New("", errB, group.New("", errC)))
	if got := g.Count(); got != 3 {
		t.Errorf("Count = %d, want 3", got)
	}
}

func TestNormalize(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		if got := group.Normalize(nil); got != nil {
			t.Errorf("Normalize(nil) = %v, want nil", got)
		}
	})

	t.Run("naked error becomes one-element aggregate", func(t *testing.T) {
		g := group.Normalize(errA)
		if g.Len() != 1 {
			t.Fatalf("Len = %d, want 1", g.Len())
		}
		if g.Children()[0] != errA {
			t.Error("child is not the original error")
		}
	})

	t.Run("group passes through by identity", func(t *testing.T) {
		orig := group.New("", errA)
		if got := group.Normalize(orig); got != orig {
			t.Error("expected same group back")
		}
	})
}

func TestUnwrap_ErrorsIs(t *testing.T) {
	g := group.New("", errA, group.New("", errB))
	if !errors.Is(g, errB) {
		t.Error("errors.Is should find nested leaf through Unwrap []error")
	}
	if errors.Is(g, errD) {
		t.Error("errors.Is matched an absent error")
	}
}

func TestError_Message(t *testing.T) {
	g := group.New("fan-out failed", errA, errB)
	want := "fan-out failed (2 errors): a; b"
	if got := g.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	plain := group.New("", errA, errB)
	if got := plain.Error(); got != "a; b" {
		t.Errorf("Error() = %q, want %q", got, "a; b")
	}
}

func TestGroup_IDsAreUnique(t *testing.T) {
	a := group.New("")
	b := group.New("")
	if a.ID().String() == b.ID().String() {
		t.Error("two nodes share a GroupID")
	}
}

// Trees are immutable after construction, so concurrent traversal from
// multiple readers needs no locking.
func TestFlatten_ConcurrentReaders(t *testing.T) {
	g := group.New("", errA, group.New("", errB, errC), errD)
	want := leaves(g)

	var eg errgroup.Group
	for range 8 {
		eg.Go(func() error {
			for range 100 {
				if got := leaves(g); !slices.Equal(got, want) {
					return errors.New("traversal mismatch under concurrency")
				}
			}

			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		t.Fatal(err)
	}
}
