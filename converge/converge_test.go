package converge

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"

	"github.com/nickng/cfgpath/block"
	"github.com/nickng/cfgpath/graph"
	"github.com/nickng/cfgpath/paths"
)

func diamond(lastEdge block.Edge) *graph.Graph {
	return graph.FromEdges(
		block.Edge{From: 0, To: 1},
		block.Edge{From: 0, To: 2},
		block.Edge{From: 1, To: 3},
		block.Edge{From: 1, To: 4},
		block.Edge{From: 2, To: 5},
		block.Edge{From: 3, To: 6},
		block.Edge{From: 4, To: 6},
		lastEdge,
	)
}

func TestConverging(t *testing.T) {
	r := FindConvergingNode(diamond(block.Edge{From: 5, To: 6}), 0)
	if !r.Found || r.Node != 6 {
		t.Errorf("paths from 0 should converge at 6, got %v", r)
	}
	want := paths.Set{{0, 1, 3, 6}, {0, 1, 4, 6}, {0, 2, 5, 6}}
	if !want.Equal(r.Paths) {
		t.Errorf("paths want %v, got %v", want, r.Paths)
	}
}

func TestNotConverging(t *testing.T) {
	r := FindConvergingNode(diamond(block.Edge{From: 5, To: 7}), 0)
	if r.Found {
		t.Errorf("paths from 0 end at 6 and 7, should not converge, got %v", r)
	}
	if len(r.Paths) != 3 {
		t.Fatalf("paths should be kept when not converging, got %v", r.Paths)
	}
	groups := r.Paths.ByEnd()
	if want, got := 2, len(groups[6]); want != got {
		t.Errorf("expects %d paths ending at 6, got %d", want, got)
	}
	if want, got := 1, len(groups[7]); want != got {
		t.Errorf("expects %d paths ending at 7, got %d", want, got)
	}
}

func TestNoPaths(t *testing.T) {
	g := diamond(block.Edge{From: 5, To: 6})
	r := FindConvergingNode(g, 6)
	if r.Found || len(r.Paths) != 0 {
		t.Errorf("leaf start should give absent result with no path, got %v", r)
	}
	if _, err := (Detector{}).Find(g, 6); err != nil {
		t.Errorf("non-strict detector should not fail, got %v", err)
	}
	_, err := Detector{Strict: true}.Find(g, 42)
	if errors.Cause(err) != ErrNoPaths {
		t.Errorf("strict detector should fail with %v, got %v", ErrNoPaths, err)
	}
	if _, err := (Detector{Strict: true}).Find(g, 0); err != nil {
		t.Errorf("strict detector with paths should not fail, got %v", err)
	}
}

// Tests the result is (X, paths) iff every path ends at X.
func TestConvergingIff(t *testing.T) {
	graphs := []*graph.Graph{
		diamond(block.Edge{From: 5, To: 6}),
		diamond(block.Edge{From: 5, To: 7}),
		graph.FromEdges(block.Edge{From: 0, To: 1}, block.Edge{From: 1, To: 0}, block.Edge{From: 1, To: 2}),
		graph.FromEdges(block.Edge{From: 0, To: 1}),
	}
	for _, g := range graphs {
		for _, start := range g.Nodes() {
			r := FindConvergingNode(g, start)
			allSame := len(r.Paths) > 0
			for _, p := range r.Paths {
				allSame = allSame && p.End() == r.Paths[0].End()
			}
			if allSame != r.Found {
				t.Errorf("start %d: Found=%t but all paths end at same node=%t (%v)",
					start, r.Found, allSame, r.Paths)
			}
			if r.Found && r.Node != r.Paths[0].End() {
				t.Errorf("start %d: converging node %d is not the end of %v", start, r.Node, r.Paths[0])
			}
		}
	}
}

func TestMergeNodes(t *testing.T) {
	r := FindConvergingNode(diamond(block.Edge{From: 5, To: 6}), 0)
	merges := MergeNodes(r.Paths)
	if len(merges) != 1 || merges[0] != 6 {
		t.Errorf("6 should be the only merge node, got %v", merges)
	}
	to6 := PathsTo(r.Paths, 6)
	if !to6.Equal(r.Paths) {
		t.Errorf("paths to 6 should be all paths, got %v", to6)
	}
	to1 := PathsTo(r.Paths, 1)
	if want := (paths.Set{{0, 1}}); !want.Equal(to1) {
		t.Errorf("distinct prefixes to 1 want %v, got %v", want, to1)
	}
	if got := PathsTo(r.Paths, 0); len(got) != 0 {
		t.Errorf("start block has no prefix, got %v", got)
	}
}

func TestPathsToCopiesPrefix(t *testing.T) {
	set := paths.Set{{0, 1, 2}}
	to1 := PathsTo(set, 1)
	if len(to1) != 1 {
		t.Fatalf("expects one prefix to 1, got %v", to1)
	}
	_ = append(to1[0], 9)
	to1[0][0] = 7
	if want := (paths.Path{0, 1, 2}); !want.Equal(set[0]) {
		t.Errorf("prefix should not alias the path, want %v, got %v", want, set[0])
	}
}

func TestDecide(t *testing.T) {
	set := paths.Set{{0, 1, 2}, {0, 2}}
	r, err := Detector{Strict: true}.Decide(0, set)
	if err != nil || !r.Found || r.Node != 2 {
		t.Errorf("paths should converge at 2, got %v (%v)", r, err)
	}
	if _, err := (Detector{Strict: true}).Decide(0, nil); errors.Cause(err) != ErrNoPaths {
		t.Errorf("strict detector should fail with %v, got %v", ErrNoPaths, err)
	}
}

func ExampleFindConvergingNode() {
	g := graph.FromEdges(
		block.Edge{From: 0, To: 1},
		block.Edge{From: 0, To: 2},
		block.Edge{From: 1, To: 3},
		block.Edge{From: 2, To: 3},
	)
	r := FindConvergingNode(g, 0)
	fmt.Println(r)
	fmt.Println(r.Paths.Sorted())
	// Output:
	// converge at 3 (2 paths)
	// {[0 → 1 → 3], [0 → 2 → 3]}
}
