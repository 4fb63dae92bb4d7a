package loop

import (
	"github.com/pkg/errors"

	"github.com/nickng/cfgpath/block"
)

var errEmptyStack = errors.New("loop: empty stack")

// frame is a block being explored and the index of its next successor.
type frame struct {
	node block.ID
	next int
}

// Stack is the explicit DFS stack.
type Stack struct {
	s []*frame
}

// NewStack creates a new Stack.
func NewStack() *Stack {
	return &Stack{s: []*frame{}}
}

// Push adds a new frame for node to the top of stack.
func (s *Stack) Push(node block.ID) {
	s.s = append(s.s, &frame{node: node})
}

// top returns the frame on top of stack without removing it.
func (s *Stack) top() (*frame, error) {
	if len(s.s) == 0 {
		return nil, errEmptyStack
	}
	return s.s[len(s.s)-1], nil
}

// Pop removes the top frame and returns its block.
func (s *Stack) Pop() (block.ID, error) {
	size := len(s.s)
	if size == 0 {
		return 0, errEmptyStack
	}
	f := s.s[size-1]
	s.s = s.s[:size-1]
	return f.node, nil
}

// IsEmpty returns true if stack is empty.
func (s *Stack) IsEmpty() bool {
	return len(s.s) == 0
}
