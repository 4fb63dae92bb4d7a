// Package graphfile reads and writes block graphs as YAML documents.
//
// A document lists the blocks with their stack metadata and enclosing
// functions, and the edges between them as [from, to] pairs:
//
//	blocks:
//	  - id: 0
//	    need: 0
//	    stack: 1
//	    instrs: [PUSH1 0x01]
//	    funcs: [transfer]
//	edges:
//	  - [0, 1]
//
// Edge targets need not be listed in blocks; such nodes have no metadata.
package graphfile

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/nickng/cfgpath/block"
	"github.com/nickng/cfgpath/funcs"
	"github.com/nickng/cfgpath/graph"
)

var ErrEmpty = errors.New("graphfile: empty document")

// EdgeError is an edge entry which is not a [from, to] pair.
type EdgeError struct {
	Index int
	Entry []block.ID
}

func (e EdgeError) Error() string {
	return fmt.Sprintf("graphfile: edge %d: expects [from, to] but got %v", e.Index, e.Entry)
}

// Block is a block entry of a document.
type Block struct {
	ID     block.ID `yaml:"id"`
	Need   int      `yaml:"need"`
	Stack  int      `yaml:"stack"`
	Instrs []string `yaml:"instrs,omitempty"`
	Funcs  []string `yaml:"funcs,omitempty"`
}

// File is a graph document.
type File struct {
	Blocks []Block      `yaml:"blocks"`
	Edges  [][]block.ID `yaml:"edges,flow"`
}

// Load reads the document at path.
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "graphfile: cannot open %s", path)
	}
	defer f.Close()
	file, err := Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "graphfile: cannot load %s", path)
	}
	return file, nil
}

// Decode reads a document from r. Unknown fields are rejected.
func Decode(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, ErrEmpty
		}
		return nil, errors.Wrap(err, "graphfile: invalid document")
	}
	return &f, nil
}

// Graph builds the graph and the function membership described by f.
// Function names are also copied into the Funcs set of each block.
func (f *File) Graph() (*graph.Graph, *funcs.Membership, error) {
	g := graph.New()
	m := funcs.NewMembership()
	for _, b := range f.Blocks {
		if err := g.AddBlock(block.New(b.ID, b.Need, b.Stack, b.Instrs...)); err != nil {
			return nil, nil, err
		}
		for _, fn := range b.Funcs {
			m.Add(b.ID, fn)
		}
	}
	for i, e := range f.Edges {
		if len(e) != 2 {
			return nil, nil, EdgeError{Index: i, Entry: e}
		}
		g.AddEdge(e[0], e[1])
	}
	m.Apply(g.Blocks())
	return g, m, nil
}

// FromGraph returns a document describing the registered blocks and all edges
// of g.
func FromGraph(g *graph.Graph) *File {
	f := new(File)
	for _, id := range g.Blocks().IDs() {
		b, _ := g.Block(id)
		fns := b.Funcs.ToSlice()
		sort.Strings(fns)
		f.Blocks = append(f.Blocks, Block{
			ID:     b.ID,
			Need:   b.Need,
			Stack:  b.Stack,
			Instrs: b.Instrs,
			Funcs:  fns,
		})
	}
	for _, e := range g.Edges() {
		f.Edges = append(f.Edges, []block.ID{e.From, e.To})
	}
	return f
}

// Encode writes f to w as YAML.
func (f *File) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return errors.Wrap(err, "graphfile: cannot encode")
	}
	return enc.Close()
}
