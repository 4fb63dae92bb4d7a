package balance

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/nickng/cfgpath/block"
)

var (
	ErrEmptyPath      = errors.New("balance: empty path")
	ErrNoPaths        = errors.New("balance: no paths reach merge node")
	ErrPathNotAtMerge = errors.New("balance: path does not end at merge node")

	// ErrNegativeExit is returned when a path leaves fewer than zero items on
	// the stack, e.g. a block pops more than it needs on an empty stack.
	ErrNegativeExit = errors.New("balance: negative stack depth on exit")
)

// InvalidStackMetadataError is the error when a block has a negative need.
// A negative stack delta is valid, a path which pops below zero fails with
// ErrNegativeExit instead.
type InvalidStackMetadataError struct {
	Block       block.ID
	Need, Stack int
}

func (e InvalidStackMetadataError) Error() string {
	return fmt.Sprintf("block %d: invalid stack metadata (need:%d stack:%d)", e.Block, e.Need, e.Stack)
}

// MissingMetadataError is the error when a block on a path has no stack
// metadata.
type MissingMetadataError struct {
	Block block.ID
}

func (e MissingMetadataError) Error() string {
	return fmt.Sprintf("block %d: no stack metadata", e.Block)
}

// AmbiguousMergeError is the error when distinct paths into a merge node do not
// agree on one stack balance.
type AmbiguousMergeError struct {
	Node     block.ID
	Balances []PathBalance // Balance of every contributing path.
}

func (e AmbiguousMergeError) Error() string {
	return fmt.Sprintf("merge at block %d is ambiguous: %d paths with %d distinct balances",
		e.Node, len(e.Balances), len(distinct(e.Balances)))
}
