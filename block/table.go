package block

import (
	"fmt"
	"sort"
)

// DuplicateBlockError is the error returned when a block is added with the ID
// of an existing block but with different contents.
type DuplicateBlockError struct {
	ID ID
}

func (e DuplicateBlockError) Error() string {
	return fmt.Sprintf("block %d already defined with different metadata", e.ID)
}

// Table is the node table of a graph, mapping block ID to Block.
type Table map[ID]*Block

// Add inserts b to the table.
//
// Adding a block identical to an existing one is a no-op, adding a different
// block with an existing ID returns a DuplicateBlockError.
func (t Table) Add(b *Block) error {
	if existing, ok := t[b.ID]; ok {
		if existing.sameMeta(b) {
			return nil
		}
		return DuplicateBlockError{ID: b.ID}
	}
	t[b.ID] = b
	return nil
}

// IDs returns the block IDs in the table in ascending order.
func (t Table) IDs() []ID {
	ids := make([]ID, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
