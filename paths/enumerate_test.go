package paths_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nickng/cfgpath/block"
	"github.com/nickng/cfgpath/graph"
	"github.com/nickng/cfgpath/paths"
)

func edges(pairs ...[2]int) *graph.Graph {
	g := graph.New()
	for _, p := range pairs {
		g.AddEdge(block.ID(p[0]), block.ID(p[1]))
	}
	return g
}

// diamond is the example graph where all paths from 0 converge at 6.
func diamond() *graph.Graph {
	return edges([2]int{0, 1}, [2]int{0, 2}, [2]int{1, 3}, [2]int{1, 4},
		[2]int{2, 5}, [2]int{3, 6}, [2]int{4, 6}, [2]int{5, 6})
}

func TestEnumerateDiamond(t *testing.T) {
	got := paths.Enumerate(diamond(), 0)
	want := paths.Set{
		{0, 1, 3, 6},
		{0, 1, 4, 6},
		{0, 2, 5, 6},
	}
	assert.True(t, want.Equal(got), "want %v, got %v", want, got)
	assert.Equal(t, want, got.Sorted())
}

func TestEnumerateLeafStart(t *testing.T) {
	g := diamond()
	assert.Empty(t, paths.Enumerate(g, 6), "leaf start should give no path")
	assert.Empty(t, paths.Enumerate(g, 99), "unknown start should give no path")
}

func TestEnumerateCycle(t *testing.T) {
	// 1 → 2 → 1 is a loop, 2 → 3 exits.
	g := edges([2]int{0, 1}, [2]int{1, 2}, [2]int{2, 1}, [2]int{2, 3})
	got := paths.Enumerate(g, 0)
	require.Len(t, got, 1)
	assert.Equal(t, paths.Path{0, 1, 2, 3}, got[0])

	// A cycle with no exit yields no completed path.
	g = edges([2]int{0, 1}, [2]int{1, 0})
	assert.Empty(t, paths.Enumerate(g, 0))
}

func TestEnumerateDuplicateEdges(t *testing.T) {
	g := edges([2]int{0, 1}, [2]int{0, 1}, [2]int{0, 2})
	got := paths.Enumerate(g, 0)
	assert.True(t, paths.Set{{0, 1}, {0, 2}}.Equal(got), "duplicate edges should not duplicate paths, got %v", got)
}

// Tests the structural properties of enumerated paths over several graphs.
func TestEnumerateProperties(t *testing.T) {
	tests := []struct {
		name  string
		g     *graph.Graph
		start block.ID
	}{
		{"diamond", diamond(), 0},
		{"diamond from inner node", diamond(), 1},
		{"loops", edges([2]int{0, 1}, [2]int{1, 2}, [2]int{2, 0}, [2]int{2, 3}, [2]int{1, 3}, [2]int{3, 1}, [2]int{3, 4}), 0},
		{"self loop", edges([2]int{0, 0}, [2]int{0, 1}), 0},
		{"divergent", edges([2]int{0, 1}, [2]int{0, 2}, [2]int{1, 3}, [2]int{2, 4}, [2]int{2, 3}), 0},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			set := paths.Enumerate(test.g, test.start)
			require.NotEmpty(t, set)
			for _, p := range set {
				assert.Equal(t, test.start, p.Start(), "path %v should start at %d", p, test.start)
				assert.True(t, test.g.IsLeaf(p.End()), "path %v should end at a leaf", p)
				seen := make(map[block.ID]bool)
				for _, n := range p {
					assert.False(t, seen[n], "block %d repeated in path %v", n, p)
					seen[n] = true
				}
			}
			// Same graph, same set.
			for i := 0; i < 5; i++ {
				again := paths.Enumerate(test.g, test.start)
				assert.True(t, set.Equal(again), "enumeration is not idempotent: %v vs %v", set, again)
			}
		})
	}
}

func TestEnumerateFuncStop(t *testing.T) {
	count := 0
	completed := paths.EnumerateFunc(diamond(), 0, func(p paths.Path) bool {
		count++
		return count < 2
	})
	assert.False(t, completed)
	assert.Equal(t, 2, count)
}

func TestSetByEnd(t *testing.T) {
	g := edges([2]int{0, 1}, [2]int{0, 2}, [2]int{1, 3}, [2]int{1, 4},
		[2]int{2, 5}, [2]int{3, 6}, [2]int{4, 6}, [2]int{5, 7})
	set := paths.Enumerate(g, 0)
	assert.Equal(t, []block.ID{6, 7}, set.Ends())
	groups := set.ByEnd()
	assert.Len(t, groups[6], 2)
	assert.Len(t, groups[7], 1)
}

func ExampleEnumerate() {
	g := graph.New()
	g.AddEdge(0, 1)
	g.AddEdge(0, 2)
	g.AddEdge(1, 3)
	g.AddEdge(2, 3)
	for _, p := range paths.Enumerate(g, 0).Sorted() {
		fmt.Println(p)
	}
	// Output:
	// [0 → 1 → 3]
	// [0 → 2 → 3]
}
