package mergeinfer

import (
	"bytes"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/nickng/cfgpath/balance"
	"github.com/nickng/cfgpath/block"
	"github.com/nickng/cfgpath/converge"
	"github.com/nickng/cfgpath/loop"
	"github.com/nickng/cfgpath/paths"
)

// Report is the result of analysing one start block.
type Report struct {
	Start     block.ID
	BackEdges []block.Edge // Edges cut to keep paths simple.
	Loops     []*loop.Info
	Paths     paths.Set    // Sorted.
	Truncated bool         // Path limit reached, Paths is incomplete.
	Converge  converge.Result

	Merges   []*balance.Result            // Reconciled merge blocks in ascending order.
	Resolved map[block.ID]balance.Balance // Ambiguous merges resolved by a policy.
	Failures []MergeError                 // Merge blocks which cannot be reconciled.
}

// Ambiguous returns the merge blocks whose paths disagree on the stack balance
// and were not resolved.
func (r *Report) Ambiguous() []block.ID {
	var ids []block.ID
	for _, m := range r.Merges {
		if _, ok := r.Resolved[m.Node]; !m.Single && !ok {
			ids = append(ids, m.Node)
		}
	}
	return ids
}

// Err returns the first failure of the report: an invalid merge, or else an
// unresolved ambiguous merge.
func (r *Report) Err() error {
	if len(r.Failures) > 0 {
		return r.Failures[0]
	}
	for _, m := range r.Merges {
		if _, ok := r.Resolved[m.Node]; !m.Single && !ok {
			return m.Err()
		}
	}
	return nil
}

// WriteTo writes a human readable report to w.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	var (
		bold   = color.New(color.Bold).SprintFunc()
		green  = color.New(color.FgGreen).SprintFunc()
		yellow = color.New(color.FgYellow).SprintFunc()
		red    = color.New(color.FgRed).SprintFunc()
		cyan   = color.New(color.FgCyan).SprintFunc()
	)
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s\n", bold(fmt.Sprintf("start %d", r.Start)))
	fmt.Fprintf(&buf, "  paths (%d):\n", len(r.Paths))
	for _, p := range r.Paths {
		fmt.Fprintf(&buf, "    %v\n", p)
	}
	if r.Truncated {
		fmt.Fprintf(&buf, "  %s\n", yellow("path limit reached, results are partial"))
	}
	for _, e := range r.BackEdges {
		fmt.Fprintf(&buf, "  %s %v\n", cyan("back edge"), e)
	}
	for _, l := range r.Loops {
		fmt.Fprintf(&buf, "  %s\n", cyan(l.String()))
	}
	if r.Converge.Found {
		fmt.Fprintf(&buf, "  %s\n", green(r.Converge.String()))
	} else {
		fmt.Fprintf(&buf, "  %s\n", yellow(r.Converge.String()))
	}
	for _, m := range r.Merges {
		switch b, resolved := r.Resolved[m.Node]; {
		case m.Single:
			fmt.Fprintf(&buf, "  merge %s\n", green(m.String()))
		case resolved:
			fmt.Fprintf(&buf, "  merge %s resolved to %v\n", yellow(m.String()), b)
		default:
			fmt.Fprintf(&buf, "  merge %s\n", red(m.String()))
		}
		if !m.Single {
			for _, pb := range m.PerPath {
				fmt.Fprintf(&buf, "    %v %v\n", pb.Path, pb.Balance)
			}
		}
	}
	for _, f := range r.Failures {
		fmt.Fprintf(&buf, "  %s\n", red(f.Error()))
	}
	n, err := w.Write(buf.Bytes())
	return int64(n), err
}
