package paths

import (
	"github.com/pkg/errors"

	"github.com/nickng/cfgpath/block"
)

var errEmptyStack = errors.New("paths: empty stack")

// frame is a partially expanded path, the last block of path is node.
type frame struct {
	node block.ID
	path Path
}

// stack is the explicit DFS stack of frames.
type stack struct {
	s []frame
}

func newStack() *stack {
	return &stack{s: []frame{}}
}

// Push adds a new frame to the top of stack.
func (s *stack) Push(f frame) {
	s.s = append(s.s, f)
}

// Pop removes a frame from top of stack.
func (s *stack) Pop() (frame, error) {
	size := len(s.s)
	if size == 0 {
		return frame{}, errEmptyStack
	}
	f := s.s[size-1]
	s.s = s.s[:size-1]
	return f, nil
}

// IsEmpty returns true if stack is empty.
func (s *stack) IsEmpty() bool {
	return len(s.s) == 0
}
