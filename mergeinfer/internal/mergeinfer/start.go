package mergeinfer

import (
	"github.com/fatih/color"
	"github.com/pkg/errors"

	"github.com/nickng/cfgpath/balance"
	"github.com/nickng/cfgpath/block"
	"github.com/nickng/cfgpath/converge"
	"github.com/nickng/cfgpath/loop"
	"github.com/nickng/cfgpath/paths"
)

// Graph is a block graph with stack metadata.
type Graph interface {
	Neighbors(block.ID) []block.ID
	Preds(block.ID) []block.ID
	HasNode(block.ID) bool
	StackInfo(block.ID) (need, stack int, ok bool)
}

// Start analyses the paths out of a single start block.
type Start struct {
	Graph    Graph
	Strict   bool           // Fail on starts without paths.
	MaxPaths int            // Stop enumeration after MaxPaths paths, 0 is unbounded.
	Policy   balance.Policy // Resolves ambiguous merges if not nil.

	*Logger
}

func NewStart(g Graph) *Start {
	return &Start{Graph: g}
}

// SetLogger sets logger for Start.
func (s *Start) SetLogger(l *Logger) {
	s.Logger = &Logger{
		SugaredLogger: l.SugaredLogger,
		module:        color.GreenString("start"),
	}
}

// Analyse enumerates the paths from start, decides convergence and reconciles
// the stack balance at every merge block along the paths.
func (s *Start) Analyse(start block.ID) (*Report, error) {
	s.Logger.Debugf("%s Enter #%d", s.Logger.Module(), start)
	if !s.Graph.HasNode(start) {
		if s.Strict {
			return nil, errors.Wrapf(ErrUnknownStart, "block %d", start)
		}
		s.Logger.Warnf("%s Start #%d not in graph", s.Logger.Module(), start)
		return &Report{Start: start}, nil
	}
	r := &Report{Start: start}

	loops := loop.NewDetector()
	loops.SetLog(s.Logger.Writer())
	r.BackEdges = loops.Detect(s.Graph, start)
	r.Loops = loops.Loops()
	for _, e := range r.BackEdges {
		s.Logger.Debugf("%s Cut back edge %v", s.Logger.Module(), e)
	}

	complete := paths.EnumerateFunc(s.Graph, start, func(p paths.Path) bool {
		r.Paths = append(r.Paths, p)
		return s.MaxPaths <= 0 || len(r.Paths) <= s.MaxPaths
	})
	if !complete {
		r.Paths = r.Paths[:s.MaxPaths]
		r.Truncated = true
		s.Logger.Warnf("%s Path limit %d reached from #%d", s.Logger.Module(), s.MaxPaths, start)
	}
	r.Paths = r.Paths.Sorted()

	var err error
	r.Converge, err = converge.Detector{Strict: s.Strict}.Decide(start, r.Paths)
	if err != nil {
		return nil, err
	}
	s.Logger.Debugf("%s #%d %v", s.Logger.Module(), start, r.Converge)

	for _, node := range converge.MergeNodes(r.Paths) {
		s.reconcile(r, node)
	}
	s.Logger.Debugf("%s Exit #%d", s.Logger.Module(), start)
	return r, nil
}

func (s *Start) reconcile(r *Report, node block.ID) {
	res, err := balance.Reconcile(node, converge.PathsTo(r.Paths, node), s.Graph)
	if err != nil {
		s.Logger.Infof("%s Merge #%d: %v", s.Logger.Module(), node, err)
		r.Failures = append(r.Failures, MergeError{Node: node, Err: err})
		return
	}
	r.Merges = append(r.Merges, res)
	if res.Single {
		s.Logger.Debugf("%s Merge %v", s.Logger.Module(), res)
		return
	}
	if s.Policy == nil {
		s.Logger.Warnf("%s Merge %v", s.Logger.Module(), res)
		return
	}
	b, err := res.Resolve(s.Policy)
	if err != nil {
		r.Failures = append(r.Failures, MergeError{Node: node, Err: err})
		return
	}
	if r.Resolved == nil {
		r.Resolved = make(map[block.ID]balance.Balance)
	}
	r.Resolved[node] = b
	s.Logger.Debugf("%s Merge #%d resolved to %v", s.Logger.Module(), node, b)
}
