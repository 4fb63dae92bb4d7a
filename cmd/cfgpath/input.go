package main

import (
	"io/ioutil"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nickng/cfgpath/block"
	"github.com/nickng/cfgpath/evm"
	"github.com/nickng/cfgpath/funcs"
	"github.com/nickng/cfgpath/graph"
	"github.com/nickng/cfgpath/graphfile"
)

var (
	errNoInput    = errors.New("no input, use --graph or --bytecode")
	errManyInputs = errors.New("--graph and --bytecode cannot be used together")
)

// input is a loaded graph with its function membership.
type input struct {
	graph   *graph.Graph
	members *funcs.Membership
}

func loadInput(opts *options) (*input, error) {
	switch {
	case opts.graphFile != "" && opts.bytecode != "":
		return nil, errManyInputs
	case opts.graphFile != "":
		f, err := graphfile.Load(opts.graphFile)
		if err != nil {
			return nil, err
		}
		g, m, err := f.Graph()
		if err != nil {
			return nil, err
		}
		return &input{graph: g, members: m}, nil
	case opts.bytecode != "":
		return loadBytecode(opts)
	}
	return nil, errNoInput
}

func loadBytecode(opts *options) (*input, error) {
	src := opts.bytecode
	if strings.HasPrefix(src, "@") {
		b, err := ioutil.ReadFile(src[1:])
		if err != nil {
			return nil, errors.Wrap(err, "cannot read bytecode")
		}
		src = string(b)
	}
	code, err := evm.ParseHex(strings.TrimSpace(src))
	if err != nil {
		return nil, err
	}
	dec := evm.NewDecoder()
	if stdlog, err := zap.NewStdLogAt(opts.logger.Named("evm"), zapcore.DebugLevel); err == nil {
		dec.SetLog(stdlog.Writer())
	}
	p, err := dec.Decode(code)
	if err != nil {
		return nil, err
	}
	g, err := p.Graph()
	if err != nil {
		return nil, err
	}
	m := p.Membership(g)
	m.Apply(g.Blocks())
	return &input{graph: g, members: m}, nil
}

func parseIDs(args []string) ([]block.ID, error) {
	ids := make([]block.ID, len(args))
	for i, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return nil, errors.Errorf("invalid block %q", arg)
		}
		ids[i] = block.ID(n)
	}
	return ids, nil
}
