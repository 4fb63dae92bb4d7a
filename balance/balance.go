package balance

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/nickng/cfgpath/block"
	"github.com/nickng/cfgpath/paths"
)

// Meta supplies the stack metadata of blocks.
// *graph.Graph implements Meta from its registered blocks.
type Meta interface {
	StackInfo(block.ID) (need, stack int, ok bool)
}

// Info is the stack metadata of a block.
type Info struct {
	Need  int // Minimum stack depth before executing.
	Stack int // Net stack delta.
}

// MetaMap is a Meta backed by a map.
type MetaMap map[block.ID]Info

func (m MetaMap) StackInfo(id block.ID) (need, stack int, ok bool) {
	info, ok := m[id]
	return info.Need, info.Stack, ok
}

// Balance is the stack requirement and result of executing a path.
type Balance struct {
	RequiredEntry int // Minimum stack depth on entry.
	ProducedExit  int // Stack depth on exit.
}

func (b Balance) String() string {
	return fmt.Sprintf("in:%d out:%d", b.RequiredEntry, b.ProducedExit)
}

// PathBalance is the Balance of one path.
type PathBalance struct {
	Path paths.Path
	Balance
}

// validate checks the metadata of a single block.
func validate(id block.ID, need, stack int) error {
	if need < 0 {
		return InvalidStackMetadataError{Block: id, Need: need, Stack: stack}
	}
	return nil
}

// Compute returns the Balance of executing the blocks of p in order.
func Compute(p paths.Path, meta Meta) (Balance, error) {
	if len(p) == 0 {
		return Balance{}, ErrEmptyPath
	}
	depth, required := 0, 0
	for _, id := range p {
		need, stack, ok := meta.StackInfo(id)
		if !ok {
			return Balance{}, MissingMetadataError{Block: id}
		}
		if err := validate(id, need, stack); err != nil {
			return Balance{}, err
		}
		if depth < need {
			required += need - depth
			depth = 0
		}
		depth += stack
	}
	if depth+required < 0 {
		return Balance{}, errors.Wrapf(ErrNegativeExit, "path %v: depth %d", p, depth+required)
	}
	return Balance{RequiredEntry: required, ProducedExit: depth + required}, nil
}

// Result is the reconciled stack balance at a merge node.
type Result struct {
	Node block.ID

	// Single is true if every contributing path has the same Balance.
	Single  bool
	Balance Balance // Reconciled balance, valid only if Single.

	PerPath []PathBalance // Balance of every distinct contributing path.
}

// Distinct returns the distinct balances of the contributing paths in order of
// first appearance.
func (r *Result) Distinct() []Balance {
	return distinct(r.PerPath)
}

// Err returns an AmbiguousMergeError if the merge is not balanced.
func (r *Result) Err() error {
	if r.Single {
		return nil
	}
	return AmbiguousMergeError{Node: r.Node, Balances: r.PerPath}
}

// Policy aggregates the differing balances of paths into a merge node.
type Policy func(node block.ID, balances []PathBalance) (Balance, error)

// Resolve returns the reconciled balance, using policy to aggregate an
// ambiguous merge. A nil policy leaves an ambiguous merge unresolved.
func (r *Result) Resolve(policy Policy) (Balance, error) {
	if r.Single {
		return r.Balance, nil
	}
	if policy == nil {
		return Balance{}, r.Err()
	}
	b, err := policy(r.Node, r.PerPath)
	if err != nil {
		return Balance{}, errors.Wrapf(err, "balance: cannot resolve merge at block %d", r.Node)
	}
	return b, nil
}

func (r *Result) String() string {
	if r.Single {
		return fmt.Sprintf("block %d: %v (%d paths)", r.Node, r.Balance, len(r.PerPath))
	}
	return fmt.Sprintf("block %d: ambiguous %v (%d paths)", r.Node, r.Distinct(), len(r.PerPath))
}

// Reconcile computes the balance of every distinct path in set, which must all
// end at node, and reconciles them.
//
// Invalid metadata fails the reconciliation. An ambiguous merge is not an error
// here: it is reported through Result.Single and Result.Err.
func Reconcile(node block.ID, set paths.Set, meta Meta) (*Result, error) {
	if len(set) == 0 {
		return nil, errors.Wrapf(ErrNoPaths, "block %d", node)
	}
	r := &Result{Node: node}
	seen := make(map[string]bool)
	for _, p := range set.Sorted() {
		if len(p) == 0 {
			return nil, ErrEmptyPath
		}
		if p.End() != node {
			return nil, errors.Wrapf(ErrPathNotAtMerge, "path %v, merge block %d", p, node)
		}
		if seen[p.String()] {
			continue
		}
		seen[p.String()] = true
		b, err := Compute(p, meta)
		if err != nil {
			return nil, errors.Wrapf(err, "path %v", p)
		}
		r.PerPath = append(r.PerPath, PathBalance{Path: p, Balance: b})
	}
	if d := r.Distinct(); len(d) == 1 {
		r.Single = true
		r.Balance = d[0]
	}
	return r, nil
}

func distinct(balances []PathBalance) []Balance {
	var bs []Balance
	seen := make(map[Balance]bool)
	for _, pb := range balances {
		if !seen[pb.Balance] {
			seen[pb.Balance] = true
			bs = append(bs, pb.Balance)
		}
	}
	return bs
}
