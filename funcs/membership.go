package funcs

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/nickng/cfgpath/block"
)

// Membership maps a block to the names of its enclosing functions.
type Membership struct {
	funcs map[block.ID]mapset.Set[string]
}

// NewMembership returns an empty Membership.
func NewMembership() *Membership {
	return &Membership{funcs: make(map[block.ID]mapset.Set[string])}
}

// Add records that block id is part of function fn.
func (m *Membership) Add(id block.ID, fn string) {
	if _, ok := m.funcs[id]; !ok {
		m.funcs[id] = mapset.NewThreadUnsafeSet[string]()
	}
	m.funcs[id].Add(fn)
}

// AddFunc records that all blocks in ids are part of function fn.
func (m *Membership) AddFunc(fn string, ids ...block.ID) {
	for _, id := range ids {
		m.Add(id, fn)
	}
}

// Funcs returns the sorted names of functions enclosing block id.
func (m *Membership) Funcs(id block.ID) []string {
	s, ok := m.funcs[id]
	if !ok {
		return nil
	}
	names := s.ToSlice()
	sort.Strings(names)
	return names
}

// Shared returns the blocks which are part of more than one function, in
// ascending order.
func (m *Membership) Shared() []block.ID {
	var shared []block.ID
	for id, s := range m.funcs {
		if s.Cardinality() > 1 {
			shared = append(shared, id)
		}
	}
	sort.Slice(shared, func(i, j int) bool { return shared[i] < shared[j] })
	return shared
}

// Len returns the number of blocks with at least one enclosing function.
func (m *Membership) Len() int {
	return len(m.funcs)
}

// Apply copies the membership into the Funcs set of the blocks in t.
// Blocks not in t are skipped.
func (m *Membership) Apply(t block.Table) {
	for id, s := range m.funcs {
		if b, ok := t[id]; ok {
			s.Each(func(fn string) bool {
				b.Funcs.Add(fn)
				return false
			})
		}
	}
}
