package ssa

import (
	"fmt"

	"github.com/pkg/errors"
	"golang.org/x/tools/go/ssa"

	"github.com/nickng/cfgpath/block"
	"github.com/nickng/cfgpath/graph"
)

// FromFunc returns the block graph of fn.
func FromFunc(fn *ssa.Function) (*graph.Graph, error) {
	if len(fn.Blocks) == 0 {
		return nil, errors.Wrap(ErrNoBody, fn.String())
	}
	g := graph.New()
	for _, b := range fn.Blocks {
		instrs := make([]string, len(b.Instrs))
		for i, instr := range b.Instrs {
			instrs[i] = instrString(instr)
		}
		if err := g.AddBlock(block.New(block.ID(b.Index), 0, 0, instrs...)); err != nil {
			return nil, err
		}
	}
	for _, b := range fn.Blocks {
		for _, succ := range b.Succs {
			g.AddEdge(block.ID(b.Index), block.ID(succ.Index))
		}
	}
	return g, nil
}

func instrString(instr ssa.Instruction) string {
	if v, ok := instr.(ssa.Value); ok && v.Name() != "" {
		return fmt.Sprintf("%s = %s", v.Name(), instr)
	}
	return instr.String()
}
