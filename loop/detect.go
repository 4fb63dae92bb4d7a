package loop

import (
	"io"
	"io/ioutil"
	"log"
	"sort"

	"github.com/nickng/cfgpath/block"
)

// State is the DFS colour of a block.
type State int

const (
	Unvisited State = iota
	OnStack         // Being explored, on the current DFS path.
	Done            // All successors explored.
)

// Detector finds back edges and natural loops reachable from a start block.
type Detector struct {
	logger *log.Logger

	blockState map[block.ID]State
	loops      map[block.ID]*Info // Header --> loop.
	backEdges  []block.Edge
}

func NewDetector() *Detector {
	return &Detector{
		logger:     log.New(ioutil.Discard, "loopdetect: ", 0),
		blockState: make(map[block.ID]State),
		loops:      make(map[block.ID]*Info),
	}
}

func (d *Detector) SetLog(w io.Writer) {
	d.logger.SetOutput(w)
}

// Detect explores g from start and returns the back edges found, in the order
// they are discovered. Successors are explored in insertion order, so the
// result is deterministic.
//
// Detect may be called for several start blocks; blocks already explored are
// not explored again.
func (d *Detector) Detect(g block.Graph, start block.ID) []block.Edge {
	if d.blockState[start] != Unvisited {
		return nil
	}
	var found []block.Edge
	s := NewStack()
	s.Push(start)
	d.blockState[start] = OnStack
	for !s.IsEmpty() {
		f, _ := s.top()
		succs := g.Neighbors(f.node)
		if f.next >= len(succs) {
			d.blockState[f.node] = Done
			s.Pop()
			continue
		}
		succ := succs[f.next]
		f.next++
		switch d.blockState[succ] {
		case Unvisited:
			d.logger.Printf("Detect: #%d → #%d", f.node, succ)
			d.blockState[succ] = OnStack
			s.Push(succ)
		case OnStack:
			e := block.Edge{From: f.node, To: succ}
			d.logger.Printf("Detect: back edge #%d → #%d", f.node, succ)
			if !containsEdge(found, e) {
				found = append(found, e)
				d.backEdges = append(d.backEdges, e)
				d.addLoop(e)
			}
		case Done:
			// Cross or forward edge.
		}
	}
	for _, e := range found {
		d.loops[e.To].computeBody(g)
	}
	return found
}

func (d *Detector) addLoop(e block.Edge) {
	if _, exists := d.loops[e.To]; !exists {
		d.loops[e.To] = New(e.To)
		d.logger.Printf("registers new loop at #%d", e.To)
	}
	d.loops[e.To].AddLatch(e.From)
}

// BackEdges returns all back edges found so far.
func (d *Detector) BackEdges() []block.Edge {
	return d.backEdges
}

// LoopAt returns the loop headed by b, or nil if b is not a loop header.
func (d *Detector) LoopAt(b block.ID) *Info {
	return d.loops[b]
}

// Loops returns all loops found so far, ordered by header.
func (d *Detector) Loops() []*Info {
	loops := make([]*Info, 0, len(d.loops))
	for _, l := range d.loops {
		loops = append(loops, l)
	}
	sort.Slice(loops, func(i, j int) bool { return loops[i].Header < loops[j].Header })
	return loops
}

func containsEdge(edges []block.Edge, e block.Edge) bool {
	for _, x := range edges {
		if x == e {
			return true
		}
	}
	return false
}
