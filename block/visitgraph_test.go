package block

import "testing"

// adjGraph is a minimal Graph for testing.
type adjGraph map[ID][]ID

func (g adjGraph) Neighbors(n ID) []ID { return g[n] }

func (g adjGraph) Preds(n ID) []ID {
	var preds []ID
	for from, succs := range g {
		for _, s := range succs {
			if s == n {
				preds = append(preds, from)
				break
			}
		}
	}
	return preds
}

// getTestGraph returns the control flow of
//
//	x := 1      // Block 0
//	if x < 2 {  // Block 1
//		x++
//	}
//	x = 0       // Block 2
func getTestGraph() adjGraph {
	return adjGraph{0: {1, 2}, 1: {2}, 2: nil}
}

// Tests basic usage of VisitGraph.
func TestVisitGraph(t *testing.T) {
	g := NewVisitGraph(getTestGraph())
	if g.Size() != 0 {
		t.Errorf("New VisitGraph should have 0 node, got %d", g.Size())
	}
	if _, ok := g.LastNode(); ok {
		t.Errorf("New VisitGraph should have no last node")
	}
	g.Visit(0)
	if g.Size() != 1 {
		t.Errorf("Visit(0) should make size 1, but got %d", g.Size())
	}
	if err := g.VisitFrom(0, 1); err != nil {
		t.Errorf("VisitFrom(0, 1) failed: %v", err)
	}
	if last, _ := g.LastNode(); last != 1 {
		t.Errorf("last node should be 1, got %d", last)
	}
	if err := g.VisitFrom(3, 2); err != ErrNotVisited {
		t.Errorf("VisitFrom an unvisited block should fail with %v, got %v", ErrNotVisited, err)
	}
	if want, got := "0 → 1", g.String(); want != got {
		t.Errorf("visit trace want %q, got %q", want, got)
	}
}

func TestVisitGraphVisited(t *testing.T) {
	// According to the control flow, 0 --> { 1 --> 2, 2 }
	g := NewVisitGraph(getTestGraph())
	if g.NodeVisited(0) {
		t.Errorf("Block 0 should be unvisited, got %t", g.NodeVisited(0))
	}
	g.Visit(0)
	if !g.NodeVisited(0) {
		t.Errorf("Block 0 should be visited, got %t", g.NodeVisited(0))
	}
	g.VisitFrom(0, 1) // If then
	if !g.NodeVisited(1) {
		t.Errorf("Block 1 should be visited, got %t", g.NodeVisited(1))
	}
	g.VisitFrom(1, 2) // Follow up on If then
	if g.NodeVisited(2) {
		t.Errorf("Block 2 should be unvisited (0 --> 2 not taken), got %t", g.NodeVisited(2))
	}
	if !g.VisitedOnce(2) {
		t.Errorf("Block 2 should be visited once (of two), got %t", g.VisitedOnce(2))
	}
	if g.EdgeVisited(0, 2) {
		t.Errorf("0 --> 2 is unvisited, got %t", g.EdgeVisited(0, 2))
	}
	if want, got := []ID{0}, g.Unvisited(2); len(got) != 1 || got[0] != want[0] {
		t.Errorf("unvisited predecessors of 2 want %v, got %v", want, got)
	}
	g.VisitFrom(0, 2) // If else
	if !g.EdgeVisited(0, 2) || !g.EdgeVisited(1, 2) {
		t.Errorf("0 --> 2 and 1 --> 2 should be visited")
	}
	if !g.NodeVisited(2) {
		t.Errorf("Block 2 should be visited, got %t", g.NodeVisited(2))
	}
}

func TestTraverseEdges(t *testing.T) {
	g := adjGraph{0: {1, 2}, 1: {3}, 2: {3}, 3: {1, 4}, 4: nil, 5: {4}}
	var edges []Edge
	visited := TraverseEdges(g, 0, func(from, to ID) {
		edges = append(edges, Edge{From: from, To: to})
	})
	// 0→1, 0→2, 1→3, 2→3, 3→1, 3→4
	if want, got := 6, len(edges); want != got {
		t.Errorf("expects %d edges visited, got %d: %v", want, got, edges)
	}
	seen := make(map[Edge]bool)
	for _, e := range edges {
		if seen[e] {
			t.Errorf("edge %v visited more than once", e)
		}
		seen[e] = true
	}
	if !visited.NodeVisited(3) {
		t.Errorf("all incoming edges of 3 are reachable, 3 should be visited")
	}
	if visited.NodeVisited(4) {
		t.Errorf("5 --> 4 is unreachable from 0, 4 should be partially visited")
	}
	if !visited.VisitedOnce(4) {
		t.Errorf("4 should be entered at least once")
	}
	if visited.VisitedOnce(5) {
		t.Errorf("5 is unreachable from 0")
	}
}
