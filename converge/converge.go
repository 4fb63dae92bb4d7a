// Package converge decides whether the execution paths from a start block
// reconverge at a single common block, and locates merge points along them.
package converge

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"

	"github.com/nickng/cfgpath/block"
	"github.com/nickng/cfgpath/paths"
)

// ErrNoPaths is returned by a strict Detector when no path can be formed from
// the start block (unknown start, or start is a leaf).
var ErrNoPaths = errors.New("converge: no paths found")

// Result is the outcome of convergence detection.
//
// Paths is always the full path set used for the decision, so callers can
// inspect divergence when Found is false.
type Result struct {
	Node  block.ID // Common last block of all paths, valid only if Found.
	Found bool
	Paths paths.Set
}

func (r Result) String() string {
	if !r.Found {
		return fmt.Sprintf("no converging node (%d paths)", len(r.Paths))
	}
	return fmt.Sprintf("converge at %d (%d paths)", r.Node, len(r.Paths))
}

// FindConvergingNode enumerates the paths from start and reports the common
// last block if every path ends at the same block.
func FindConvergingNode(g paths.Graph, start block.ID) Result {
	return FromPaths(paths.Enumerate(g, start))
}

// FromPaths reports the common last block of an already enumerated path set.
func FromPaths(set paths.Set) Result {
	if len(set) == 0 {
		return Result{}
	}
	end := set[0].End()
	for _, p := range set[1:] {
		if p.End() != end {
			return Result{Paths: set}
		}
	}
	return Result{Node: end, Found: true, Paths: set}
}

// Detector is a configurable convergence detector.
type Detector struct {
	// Strict treats an empty path set as an error instead of an absent result.
	Strict bool
}

// Find is FindConvergingNode which, in strict mode, returns ErrNoPaths if
// there is no path from start.
func (d Detector) Find(g paths.Graph, start block.ID) (Result, error) {
	return d.Decide(start, paths.Enumerate(g, start))
}

// Decide is FromPaths for the paths enumerated from start, and in strict mode
// returns ErrNoPaths if set is empty.
func (d Detector) Decide(start block.ID, set paths.Set) (Result, error) {
	r := FromPaths(set)
	if d.Strict && len(r.Paths) == 0 {
		return r, errors.Wrapf(ErrNoPaths, "start block %d", start)
	}
	return r, nil
}

// MergeNodes returns the blocks reached by more than one distinct path prefix
// in set, in ascending order.
func MergeNodes(set paths.Set) []block.ID {
	var merges []block.ID
	for node, prefixes := range prefixesByNode(set) {
		if len(prefixes) > 1 {
			merges = append(merges, node)
		}
	}
	sort.Slice(merges, func(i, j int) bool { return merges[i] < merges[j] })
	return merges
}

// PathsTo returns the distinct prefixes of the paths in set which end at node.
// The prefixes are sorted.
func PathsTo(set paths.Set, node block.ID) paths.Set {
	var prefixes paths.Set
	for _, p := range prefixesByNode(set)[node] {
		prefixes = append(prefixes, p)
	}
	return prefixes.Sorted()
}

// prefixesByNode maps each non-start block to its distinct path prefixes,
// keyed by the prefix string.
func prefixesByNode(set paths.Set) map[block.ID]map[string]paths.Path {
	prefixes := make(map[block.ID]map[string]paths.Path)
	for _, p := range set {
		for i := 1; i < len(p); i++ {
			prefix := append(paths.Path(nil), p[:i+1]...)
			if prefixes[p[i]] == nil {
				prefixes[p[i]] = make(map[string]paths.Path)
			}
			prefixes[p[i]][prefix.String()] = prefix
		}
	}
	return prefixes
}
