package loop

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nickng/cfgpath/block"
)

// Info is a data structure to hold loop information: the header block, the
// sources of its back edges, and the blocks of its natural loop.
type Info struct {
	Header  block.ID
	Latches []block.ID // Sources of back edges into Header.
	Body    []block.ID // Blocks of the natural loop including Header, sorted.
}

// New returns an Info for the loop headed by header.
func New(header block.ID) *Info {
	return &Info{Header: header}
}

// AddLatch records the back edge latch --> Header.
func (i *Info) AddLatch(latch block.ID) {
	for _, l := range i.Latches {
		if l == latch {
			return
		}
	}
	i.Latches = append(i.Latches, latch)
}

// Contains returns true if id is part of the natural loop.
func (i *Info) Contains(id block.ID) bool {
	for _, b := range i.Body {
		if b == id {
			return true
		}
	}
	return false
}

// computeBody walks predecessors backwards from the latches, stopping at the
// header. Only blocks reachable from the header are part of the loop, so an
// entry edge into a latch does not pull the entry block into the body.
func (i *Info) computeBody(g block.Graph) {
	reach := reachable(g, i.Header)
	body := map[block.ID]bool{i.Header: true}
	worklist := append([]block.ID(nil), i.Latches...)
	for len(worklist) > 0 {
		n := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		if body[n] || !reach[n] {
			continue
		}
		body[n] = true
		worklist = append(worklist, g.Preds(n)...)
	}
	i.Body = i.Body[:0]
	for n := range body {
		i.Body = append(i.Body, n)
	}
	sort.Slice(i.Body, func(a, b int) bool { return i.Body[a] < i.Body[b] })
}

// reachable returns the set of blocks reachable from start, start included.
func reachable(g block.Graph, start block.ID) map[block.ID]bool {
	seen := map[block.ID]bool{start: true}
	worklist := []block.ID{start}
	for len(worklist) > 0 {
		n := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		for _, succ := range g.Neighbors(n) {
			if !seen[succ] {
				seen[succ] = true
				worklist = append(worklist, succ)
			}
		}
	}
	return seen
}

func (i *Info) String() string {
	body := make([]string, len(i.Body))
	for k, b := range i.Body {
		body[k] = fmt.Sprintf("%d", b)
	}
	return fmt.Sprintf("loop@%d {%s}", i.Header, strings.Join(body, ","))
}
