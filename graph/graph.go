// Package graph provides a directed graph over basic block IDs.
//
// A Graph is built once (AddBlock, AddEdge) and is read-only afterwards. Path
// enumeration and stack balance analysis never modify a Graph, so concurrent
// readers are safe, but edges must not be added while a traversal is running.
// There is no internal locking.
package graph

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/nickng/cfgpath/block"
)

// Graph is an adjacency list of block IDs with an optional node table holding
// the block contents.
type Graph struct {
	succs  map[block.ID][]block.ID // Successors in insertion order, duplicates kept.
	preds  map[block.ID][]block.ID // Predecessors, deduplicated.
	blocks block.Table
}

// New returns an empty Graph.
func New() *Graph {
	return &Graph{
		succs:  make(map[block.ID][]block.ID),
		preds:  make(map[block.ID][]block.ID),
		blocks: make(block.Table),
	}
}

// FromEdges returns a new Graph with edges inserted in order.
func FromEdges(edges ...block.Edge) *Graph {
	g := New()
	for _, e := range edges {
		g.AddEdge(e.From, e.To)
	}
	return g
}

// AddEdge appends to to the successors of from.
//
// Both from and to become nodes of the graph; a block with no outgoing edges
// maps to an empty successor sequence. Duplicate edges are kept in the
// successor sequence.
func (g *Graph) AddEdge(from, to block.ID) {
	g.succs[from] = append(g.succs[from], to)
	if _, ok := g.succs[to]; !ok {
		g.succs[to] = nil
	}
	if !contains(g.preds[to], from) {
		g.preds[to] = append(g.preds[to], from)
	}
	if b, ok := g.blocks[from]; ok {
		b.Succs.Add(to)
	}
	if b, ok := g.blocks[to]; ok {
		b.Preds.Add(from)
	}
}

// AddBlock registers the contents of a block.
//
// Re-adding an identical block is allowed. Adding a block whose ID is already
// registered with different metadata returns a block.DuplicateBlockError.
// Edges inserted before the block was registered are reflected in its Preds and
// Succs.
func (g *Graph) AddBlock(b *block.Block) error {
	if err := g.blocks.Add(b); err != nil {
		return errors.Wrap(err, "graph: cannot add block")
	}
	if _, ok := g.succs[b.ID]; !ok {
		g.succs[b.ID] = nil
	}
	for _, succ := range g.succs[b.ID] {
		b.Succs.Add(succ)
	}
	for _, pred := range g.preds[b.ID] {
		b.Preds.Add(pred)
	}
	return nil
}

// Neighbors returns the successors of node in insertion order.
// An unknown node has no successors.
func (g *Graph) Neighbors(node block.ID) []block.ID {
	return g.succs[node]
}

// IsLeaf returns true if node has no successors.
func (g *Graph) IsLeaf(node block.ID) bool {
	return len(g.succs[node]) == 0
}

// Preds returns the distinct predecessors of node in insertion order.
func (g *Graph) Preds(node block.ID) []block.ID {
	return g.preds[node]
}

// HasNode returns true if node is the source or target of an edge, or is a
// registered block.
func (g *Graph) HasNode(node block.ID) bool {
	_, ok := g.succs[node]
	return ok
}

// Nodes returns all nodes of the graph in ascending order.
func (g *Graph) Nodes() []block.ID {
	nodes := make([]block.ID, 0, len(g.succs))
	for n := range g.succs {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i] < nodes[j] })
	return nodes
}

// Leaves returns all nodes with no successors in ascending order.
func (g *Graph) Leaves() []block.ID {
	var leaves []block.ID
	for _, n := range g.Nodes() {
		if g.IsLeaf(n) {
			leaves = append(leaves, n)
		}
	}
	return leaves
}

// Block returns the registered contents of node.
func (g *Graph) Block(node block.ID) (*block.Block, bool) {
	b, ok := g.blocks[node]
	return b, ok
}

// Blocks returns the node table of registered blocks.
func (g *Graph) Blocks() block.Table {
	return g.blocks
}

// StackInfo returns the stack metadata of node, ok is false if the block is not
// registered.
func (g *Graph) StackInfo(node block.ID) (need, stack int, ok bool) {
	b, ok := g.blocks[node]
	if !ok {
		return 0, 0, false
	}
	return b.Need, b.Stack, true
}

// Edges returns all edges of the graph, ordered by source node then insertion.
func (g *Graph) Edges() []block.Edge {
	var edges []block.Edge
	for _, from := range g.Nodes() {
		for _, to := range g.succs[from] {
			edges = append(edges, block.Edge{From: from, To: to})
		}
	}
	return edges
}

func contains(ids []block.ID, id block.ID) bool {
	for _, i := range ids {
		if i == id {
			return true
		}
	}
	return false
}
