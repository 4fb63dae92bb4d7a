// Package mergeinfer runs the path, convergence and stack balance analyses
// over the start blocks of a block graph and reports the merges found.
package mergeinfer

import (
	"io"

	"go.uber.org/zap"

	"github.com/nickng/cfgpath/balance"
	"github.com/nickng/cfgpath/block"
	"github.com/nickng/cfgpath/funcs"
	"github.com/nickng/cfgpath/mergeinfer/internal/mergeinfer"
)

// Report is the result of analysing one start block.
type Report = mergeinfer.Report

// MergeError is a merge block whose stack balance cannot be computed.
type MergeError = mergeinfer.MergeError

// Graph is a block graph with stack metadata, e.g. a *graph.Graph.
type Graph interface {
	mergeinfer.Graph
	Nodes() []block.ID
}

// ErrUnknownStart is returned in strict mode for a start block not in the
// graph.
var ErrUnknownStart = mergeinfer.ErrUnknownStart

// Analyser is the main merge inference entry point.
type Analyser struct {
	Graph   Graph
	Members *funcs.Membership // Function membership of blocks, may be nil.
	Reports []*Report         // Reports of the last Analyse, one per start.

	starts   []block.ID
	strict   bool
	maxPaths int
	policy   balance.Policy

	*mergeinfer.Logger
}

// Option configures an Analyser.
type Option func(*Analyser)

// WithStarts sets the start blocks to analyse.
func WithStarts(starts ...block.ID) Option {
	return func(a *Analyser) { a.starts = append(a.starts, starts...) }
}

// WithStrict makes a start block without any path an error.
func WithStrict(strict bool) Option {
	return func(a *Analyser) { a.strict = strict }
}

// WithMaxPaths bounds the number of paths enumerated per start block.
func WithMaxPaths(n int) Option {
	return func(a *Analyser) { a.maxPaths = n }
}

// WithPolicy sets the policy to resolve ambiguous merges.
func WithPolicy(p balance.Policy) Option {
	return func(a *Analyser) { a.policy = p }
}

// WithMembership sets the function membership of blocks. Without explicit
// starts, the blocks shared by several functions are analysed.
func WithMembership(m *funcs.Membership) Option {
	return func(a *Analyser) { a.Members = m }
}

// WithLogger uses l for logging.
func WithLogger(l *zap.Logger) Option {
	return func(a *Analyser) { a.Logger = &mergeinfer.Logger{SugaredLogger: l.Sugar()} }
}

// New returns a new Analyser for g.
func New(g Graph, opts ...Option) *Analyser {
	a := &Analyser{Graph: g}
	for _, opt := range opts {
		opt(a)
	}
	if a.Logger == nil {
		a.Logger = newLogger()
	}
	return a
}

// AddLogFiles extends current Logger and writes additional log to files.
func (a *Analyser) AddLogFiles(file ...string) {
	l := newFileLogger(a.Logger.Desugar(), file...)
	a.Logger = &mergeinfer.Logger{SugaredLogger: l.Sugar()}
}

// Starts returns the start blocks to analyse: the explicit starts if given,
// else the blocks shared by several functions, else the blocks without
// predecessors, else the lowest block.
func (a *Analyser) Starts() []block.ID {
	if len(a.starts) > 0 {
		return a.starts
	}
	if a.Members != nil {
		if shared := a.Members.Shared(); len(shared) > 0 {
			return shared
		}
	}
	var roots []block.ID
	for _, n := range a.Graph.Nodes() {
		if len(a.Graph.Preds(n)) == 0 {
			roots = append(roots, n)
		}
	}
	if nodes := a.Graph.Nodes(); len(roots) == 0 && len(nodes) > 0 {
		return nodes[:1]
	}
	return roots
}

// Analyse analyses every start block and records a Report for each.
func (a *Analyser) Analyse() ([]*Report, error) {
	// Sync error ignored. See https://github.com/uber-go/zap/issues/328
	defer a.Logger.Sync()

	start := mergeinfer.NewStart(a.Graph)
	start.Strict = a.strict
	start.MaxPaths = a.maxPaths
	start.Policy = a.policy
	start.SetLogger(a.Logger)

	a.Reports = nil
	for _, s := range a.Starts() {
		r, err := start.Analyse(s)
		if err != nil {
			return nil, err
		}
		a.Reports = append(a.Reports, r)
	}
	a.Logger.Infof("analysed %d start blocks", len(a.Reports))
	return a.Reports, nil
}

// WriteTo writes the reports of the last Analyse to w.
func (a *Analyser) WriteTo(w io.Writer) (int64, error) {
	var n int64
	for _, r := range a.Reports {
		written, err := r.WriteTo(w)
		n += written
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
