package paths

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/nickng/cfgpath/block"
)

// Graph is the read-only view of a block graph needed for enumeration.
// A block with no neighbours is a leaf; unknown blocks have no neighbours.
type Graph interface {
	Neighbors(block.ID) []block.ID
}

// Enumerate returns every maximal simple path from start to a reachable leaf.
//
// If start is itself a leaf (or not in the graph) the result is empty: no path
// of two or more blocks can be formed.
func Enumerate(g Graph, start block.ID) Set {
	var paths Set
	EnumerateFunc(g, start, func(p Path) bool {
		paths = append(paths, p)
		return true
	})
	return paths
}

// EnumerateFunc calls emit for every maximal simple path from start to a
// reachable leaf, until emit returns false. It returns false if enumeration was
// stopped by emit.
func EnumerateFunc(g Graph, start block.ID, emit func(Path) bool) bool {
	s := newStack()
	s.Push(frame{node: start, path: Path{start}})
	for !s.IsEmpty() {
		f, _ := s.Pop()
		onPath := mapset.NewThreadUnsafeSet[block.ID](f.path...)
		next := mapset.NewThreadUnsafeSet[block.ID](g.Neighbors(f.node)...).Difference(onPath)

		stopped := false
		next.Each(func(n block.ID) bool {
			p := f.path.extend(n)
			if len(g.Neighbors(n)) == 0 {
				if !emit(p) {
					stopped = true
					return true // stop iteration
				}
				return false
			}
			s.Push(frame{node: n, path: p})
			return false
		})
		if stopped {
			return false
		}
	}
	return true
}
