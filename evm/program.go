package evm

import (
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"sort"

	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/pkg/errors"

	"github.com/nickng/cfgpath/block"
	"github.com/nickng/cfgpath/funcs"
	"github.com/nickng/cfgpath/graph"
)

var ErrEmptyCode = errors.New("evm: empty bytecode")

// Program is decoded bytecode split into basic blocks.
type Program struct {
	Code       []byte
	Blocks     []*block.Block // Ordered by ID.
	Edges      []block.Edge
	Unresolved []block.ID          // Blocks ending in a jump with unknown target.
	Entries    map[string]block.ID // Function selector --> entry block.

	instrs map[block.ID][]Instruction
}

// Decoder splits bytecode into basic blocks.
type Decoder struct {
	logger *log.Logger
}

func NewDecoder() *Decoder {
	return &Decoder{logger: log.New(ioutil.Discard, "evm: ", 0)}
}

// SetLog sets debug output stream to w.
func (d *Decoder) SetLog(w io.Writer) {
	if w != nil {
		d.logger.SetOutput(w)
	}
}

// Decode decodes code with a default Decoder.
func Decode(code []byte) (*Program, error) {
	return NewDecoder().Decode(code)
}

// DecodeHex decodes hex encoded bytecode with a default Decoder.
func DecodeHex(s string) (*Program, error) {
	code, err := ParseHex(s)
	if err != nil {
		return nil, err
	}
	return Decode(code)
}

// Decode splits code into basic blocks and recovers static edges and public
// function entries.
func (d *Decoder) Decode(code []byte) (*Program, error) {
	if len(code) == 0 {
		return nil, ErrEmptyCode
	}
	instrs := Disassemble(code)
	jumpdests := make(map[uint64]bool)
	for _, in := range instrs {
		if in.Op == vm.JUMPDEST {
			jumpdests[in.PC] = true
		}
	}

	var groups [][]Instruction
	var curr []Instruction
	for _, in := range instrs {
		if in.Op == vm.JUMPDEST && len(curr) > 0 {
			groups = append(groups, curr)
			curr = nil
		}
		curr = append(curr, in)
		if endsBlock(in.Op) {
			groups = append(groups, curr)
			curr = nil
		}
	}
	if len(curr) > 0 {
		groups = append(groups, curr)
	}

	p := &Program{
		Code:    code,
		Entries: make(map[string]block.ID),
		instrs:  make(map[block.ID][]Instruction),
	}
	for i, group := range groups {
		id := block.ID(group[0].PC)
		need, stack := stackInfo(group)
		strs := make([]string, len(group))
		for k, in := range group {
			strs[k] = in.String()
		}
		p.Blocks = append(p.Blocks, block.New(id, need, stack, strs...))
		p.instrs[id] = group

		last := group[len(group)-1]
		if last.Op == vm.JUMP || last.Op == vm.JUMPI {
			if target, ok := d.jumpTarget(group, jumpdests); ok {
				p.Edges = append(p.Edges, block.Edge{From: id, To: block.ID(target)})
			} else {
				d.logger.Printf("block %d: unresolved %v at pc %d", id, last.Op, last.PC)
				p.Unresolved = append(p.Unresolved, id)
			}
		}
		if !halts(last.Op) && i+1 < len(groups) {
			p.Edges = append(p.Edges, block.Edge{From: id, To: block.ID(groups[i+1][0].PC)})
		}
	}
	d.findEntries(p, instrs, jumpdests)
	d.logger.Printf("decoded %d bytes: %d blocks, %d edges, %d functions",
		len(code), len(p.Blocks), len(p.Edges), len(p.Entries))
	return p, nil
}

// stackInfo returns the items a block consumes below its entry depth, and its
// net stack effect.
func stackInfo(group []Instruction) (need, stack int) {
	height, minHeight := 0, 0
	for _, in := range group {
		e, ok := effects[in.Op]
		if !ok {
			break // Undefined opcode halts.
		}
		height -= e.pops
		if height < minHeight {
			minHeight = height
		}
		height += e.pushes
	}
	return -minHeight, height
}

// jumpTarget resolves the target of the jump ending group when it is pushed by
// the instruction right before the jump.
func (d *Decoder) jumpTarget(group []Instruction, jumpdests map[uint64]bool) (uint64, bool) {
	if len(group) < 2 {
		return 0, false
	}
	v, ok := group[len(group)-2].Value()
	if !ok || !v.IsUint64() {
		return 0, false
	}
	if !jumpdests[v.Uint64()] {
		d.logger.Printf("jump to %#x is not a JUMPDEST", v.Uint64())
		return 0, false
	}
	return v.Uint64(), true
}

// findEntries matches the function dispatcher
//
//	PUSH4 selector [DUPn] EQ PUSHn entry JUMPI
func (d *Decoder) findEntries(p *Program, instrs []Instruction, jumpdests map[uint64]bool) {
	for k := 0; k < len(instrs); k++ {
		if instrs[k].Op != vm.PUSH4 {
			continue
		}
		j := k + 1
		if j < len(instrs) && instrs[j].Op >= vm.DUP1 && instrs[j].Op <= vm.DUP16 {
			j++
		}
		if j+2 >= len(instrs) || instrs[j].Op != vm.EQ || instrs[j+2].Op != vm.JUMPI {
			continue
		}
		entry, ok := instrs[j+1].Value()
		if !ok || !entry.IsUint64() || !jumpdests[entry.Uint64()] {
			continue
		}
		selector := fmt.Sprintf("%#x", instrs[k].Arg)
		p.Entries[selector] = block.ID(entry.Uint64())
		d.logger.Printf("function %s at %d", selector, entry.Uint64())
	}
}

// Instructions returns the decoded instructions of block id.
func (p *Program) Instructions(id block.ID) []Instruction {
	return p.instrs[id]
}

// Graph returns a block graph of the program with all blocks registered.
func (p *Program) Graph() (*graph.Graph, error) {
	g := graph.New()
	for _, b := range p.Blocks {
		if err := g.AddBlock(b); err != nil {
			return nil, err
		}
	}
	for _, e := range p.Edges {
		g.AddEdge(e.From, e.To)
	}
	return g, nil
}

// Selectors returns the recovered function selectors in ascending order.
func (p *Program) Selectors() []string {
	var sels []string
	for s := range p.Entries {
		sels = append(sels, s)
	}
	sort.Strings(sels)
	return sels
}

// Membership returns the functions enclosing each block, where a block belongs
// to every function whose entry reaches it in g.
func (p *Program) Membership(g block.Graph) *funcs.Membership {
	m := funcs.NewMembership()
	for sel, entry := range p.Entries {
		m.Add(entry, sel)
		block.TraverseEdges(g, entry, func(_, to block.ID) {
			m.Add(to, sel)
		})
	}
	return m
}
