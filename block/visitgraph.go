package block

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrNotVisited = errors.New("visitgraph: node not visited")
)

// Graph is the read-only view of a block graph needed to track visits.
type Graph interface {
	Neighbors(ID) []ID // Successors of a block.
	Preds(ID) []ID     // Predecessors of a block.
}

// visitedEdges keeps track of whether incoming edges of blocks are visited.
//
// Edges are mapped as ID --> incoming ID --> bool
type visitedEdges map[ID]map[ID]bool

// VisitGraph is a data structure to track which control flow edges an analysis
// has visited.
//
// The intuitive understanding of whether a block is visited, is that all
// incoming edges (i.e. paths into the block) have been visited.
type VisitGraph struct {
	g Graph

	// nodes is the visit trace, in the order the blocks are entered.
	nodes []ID

	// visited entry of a block is initialised with false for all incoming edges
	// when the block is first seen.
	visited visitedEdges
}

// NewVisitGraph returns a new VisitGraph over g.
func NewVisitGraph(g Graph) *VisitGraph {
	return &VisitGraph{
		g:       g,
		visited: make(visitedEdges),
	}
}

// init initialises the incoming edges of n to be not visited.
func (v *VisitGraph) init(n ID) {
	if _, ok := v.visited[n]; ok {
		return
	}
	v.visited[n] = make(map[ID]bool)
	for _, p := range v.g.Preds(n) {
		v.visited[n][p] = false
	}
}

// Visit enters block n without a predecessor, e.g. the start of an analysis.
func (v *VisitGraph) Visit(n ID) {
	v.init(n)
	v.nodes = append(v.nodes, n)
}

// VisitFrom enters block n through the edge prev --> n.
//
// prev must be visited before, otherwise ErrNotVisited is returned and the
// edge is not recorded.
func (v *VisitGraph) VisitFrom(prev, n ID) error {
	if _, ok := v.visited[prev]; !ok {
		return ErrNotVisited
	}
	v.init(n)
	v.visited[n][prev] = true
	v.nodes = append(v.nodes, n)
	return nil
}

// LastNode returns the last node entered, and false if nothing is visited.
func (v *VisitGraph) LastNode() (ID, bool) {
	if len(v.nodes) == 0 {
		return 0, false
	}
	return v.nodes[len(v.nodes)-1], true
}

// Size of the visit trace.
func (v *VisitGraph) Size() int {
	return len(v.nodes)
}

// NodeVisited returns true if all incoming edges of n are visited.
// A node entered by Visit with no predecessors is visited.
func (v *VisitGraph) NodeVisited(n ID) bool {
	inEdges, ok := v.visited[n]
	if !ok {
		return false
	}
	for _, visited := range inEdges {
		if !visited {
			return false
		}
	}
	return true
}

// VisitedOnce returns true if the block is entered at least once.
func (v *VisitGraph) VisitedOnce(n ID) bool {
	_, ok := v.visited[n]
	return ok
}

// EdgeVisited returns true if the edge from --> to has been visited.
func (v *VisitGraph) EdgeVisited(from, to ID) bool {
	if inEdges, ok := v.visited[to]; ok {
		return inEdges[from]
	}
	return false
}

// Unvisited returns the predecessors of n whose edge into n is not visited.
func (v *VisitGraph) Unvisited(n ID) []ID {
	var preds []ID
	for _, p := range v.g.Preds(n) {
		if !v.EdgeVisited(p, n) {
			preds = append(preds, p)
		}
	}
	return preds
}

func (v *VisitGraph) String() string {
	var buf strings.Builder
	for i, n := range v.nodes {
		if i > 0 {
			buf.WriteString(" → ")
		}
		fmt.Fprintf(&buf, "%d", n)
	}
	return buf.String()
}
