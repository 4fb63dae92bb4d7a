package mergeinfer

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/nickng/cfgpath/block"
)

var ErrUnknownStart = errors.New("start block not in graph")

// MergeError is a merge block whose stack balance cannot be computed.
type MergeError struct {
	Node block.ID
	Err  error
}

func (e MergeError) Error() string {
	return fmt.Sprintf("merge at block %d: %v", e.Node, e.Err)
}

func (e MergeError) Cause() error { return e.Err }

func (e MergeError) Unwrap() error { return e.Err }
