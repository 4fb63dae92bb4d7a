package paths

import (
	"sort"
	"strings"

	"github.com/nickng/cfgpath/block"
)

// Path is an ordered sequence of block IDs from a start block to a leaf.
type Path []block.ID

// Start returns the first block of the path.
func (p Path) Start() block.ID { return p[0] }

// End returns the last block of the path.
func (p Path) End() block.ID { return p[len(p)-1] }

// Contains returns true if id is on the path.
func (p Path) Contains(id block.ID) bool {
	for _, n := range p {
		if n == id {
			return true
		}
	}
	return false
}

// Index returns the position of id on the path, or -1.
func (p Path) Index(id block.ID) int {
	for i, n := range p {
		if n == id {
			return i
		}
	}
	return -1
}

// Equal returns true if p and o visit the same blocks in the same order.
func (p Path) Equal(o Path) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// extend returns a copy of p with id appended, the receiver is unchanged.
func (p Path) extend(id block.ID) Path {
	q := make(Path, len(p), len(p)+1)
	copy(q, p)
	return append(q, id)
}

// less orders paths lexicographically by block ID.
func (p Path) less(o Path) bool {
	for i := 0; i < len(p) && i < len(o); i++ {
		if p[i] != o[i] {
			return p[i] < o[i]
		}
	}
	return len(p) < len(o)
}

func (p Path) String() string {
	parts := make([]string, len(p))
	for i, n := range p {
		parts[i] = strings.TrimPrefix(n.String(), "#")
	}
	return "[" + strings.Join(parts, " → ") + "]"
}

// Set is a collection of paths. The order of paths in a Set carries no meaning.
type Set []Path

// Sorted returns a copy of s in lexicographic order.
func (s Set) Sorted() Set {
	sorted := make(Set, len(s))
	copy(sorted, s)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].less(sorted[j]) })
	return sorted
}

// Equal returns true if s and o contain the same paths, in any order.
func (s Set) Equal(o Set) bool {
	if len(s) != len(o) {
		return false
	}
	a, b := s.Sorted(), o.Sorted()
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// Ends returns the distinct last blocks of the paths in ascending order.
func (s Set) Ends() []block.ID {
	seen := make(map[block.ID]bool)
	var ends []block.ID
	for _, p := range s {
		if !seen[p.End()] {
			seen[p.End()] = true
			ends = append(ends, p.End())
		}
	}
	sort.Slice(ends, func(i, j int) bool { return ends[i] < ends[j] })
	return ends
}

// ByEnd groups the paths by their last block.
func (s Set) ByEnd() map[block.ID]Set {
	groups := make(map[block.ID]Set)
	for _, p := range s {
		groups[p.End()] = append(groups[p.End()], p)
	}
	return groups
}

func (s Set) String() string {
	parts := make([]string, len(s))
	for i, p := range s {
		parts[i] = p.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
