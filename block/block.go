// Package block provides the basic block data model and supporting utils for
// traversing edges between blocks.
package block

import (
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// ID identifies a basic block, typically its start offset in the program.
// An ID is stable across the graph which contains it.
type ID int

func (id ID) String() string {
	return fmt.Sprintf("#%d", int(id))
}

// Edge is a directed control flow edge between two blocks.
//
// Edges have no identity of their own, two edges with the same From and To are
// the same edge.
type Edge struct {
	From, To ID
}

func (e Edge) String() string {
	return fmt.Sprintf("%d → %d", e.From, e.To)
}

// Block is a basic block: a straight-line sequence of instructions with a single
// entry and a single exit.
//
// Preds and Succs are relational links (keys into the graph's node table), not
// ownership. They are populated while edges are inserted and are read-only
// afterwards.
type Block struct {
	ID     ID
	Instrs []string // Instructions in program order.

	Need  int // Minimum stack depth required before executing the block.
	Stack int // Net stack depth delta after executing the block.

	Preds mapset.Set[ID]     // Predecessor block IDs.
	Succs mapset.Set[ID]     // Successor block IDs.
	Funcs mapset.Set[string] // Names of enclosing functions.
}

// New returns a new Block with empty relation sets.
func New(id ID, need, stack int, instrs ...string) *Block {
	return &Block{
		ID:     id,
		Instrs: instrs,
		Need:   need,
		Stack:  stack,
		Preds:  mapset.NewThreadUnsafeSet[ID](),
		Succs:  mapset.NewThreadUnsafeSet[ID](),
		Funcs:  mapset.NewThreadUnsafeSet[string](),
	}
}

// Leaf returns true if the block has no successor.
func (b *Block) Leaf() bool {
	return b.Succs.Cardinality() == 0
}

// Shared returns true if the block is part of more than one function.
func (b *Block) Shared() bool {
	return b.Funcs.Cardinality() > 1
}

// sameMeta returns true if b and o describe the same block contents.
func (b *Block) sameMeta(o *Block) bool {
	if b.Need != o.Need || b.Stack != o.Stack || len(b.Instrs) != len(o.Instrs) {
		return false
	}
	for i := range b.Instrs {
		if b.Instrs[i] != o.Instrs[i] {
			return false
		}
	}
	return true
}

func (b *Block) String() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "┌─ block %d (need:%d stack:%+d)\n", b.ID, b.Need, b.Stack)
	for _, instr := range b.Instrs {
		fmt.Fprintf(&buf, "│ %s\n", instr)
	}
	buf.WriteString("└─")
	return buf.String()
}
