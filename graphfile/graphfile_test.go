package graphfile_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nickng/cfgpath/balance"
	"github.com/nickng/cfgpath/block"
	"github.com/nickng/cfgpath/converge"
	"github.com/nickng/cfgpath/graphfile"
	"github.com/nickng/cfgpath/paths"
)

func TestLoad(t *testing.T) {
	f, err := graphfile.Load("testdata/diamond.yaml")
	require.NoError(t, err)
	require.Len(t, f.Blocks, 4)
	assert.Equal(t, []string{"PUSH1 0x01", "PUSH1 0x02"}, f.Blocks[0].Instrs)

	g, m, err := f.Graph()
	require.NoError(t, err)
	assert.Equal(t, []block.ID{1, 2}, g.Neighbors(0))
	assert.Equal(t, []block.ID{2, 3}, m.Shared())

	need, stack, ok := g.StackInfo(2)
	require.True(t, ok)
	assert.Equal(t, 2, need)
	assert.Equal(t, -1, stack)

	b, ok := g.Block(3)
	require.True(t, ok)
	assert.True(t, b.Funcs.Contains("f", "g"))
	assert.True(t, b.Preds.Contains(1, 2))

	res := converge.FindConvergingNode(g, 0)
	assert.True(t, res.Found)
	assert.Equal(t, block.ID(3), res.Node)
}

func TestLoadMissing(t *testing.T) {
	_, err := graphfile.Load("testdata/missing.yaml")
	assert.Error(t, err)
}

func TestDecodeErrors(t *testing.T) {
	_, err := graphfile.Decode(strings.NewReader(""))
	assert.Equal(t, graphfile.ErrEmpty, err)

	_, err = graphfile.Decode(strings.NewReader("blocks: []\nnodes: []\n"))
	assert.Error(t, err, "unknown field")

	f, err := graphfile.Decode(strings.NewReader("edges: [[0, 1], [1]]\n"))
	require.NoError(t, err)
	_, _, err = f.Graph()
	var edgeErr graphfile.EdgeError
	require.True(t, errors.As(err, &edgeErr))
	assert.Equal(t, 1, edgeErr.Index)
}

func TestStraightLinePop(t *testing.T) {
	doc := `
blocks:
  - {id: 0, need: 0, stack: 2}
  - {id: 1, need: 0, stack: -1}
edges:
  - [0, 1]
`
	f, err := graphfile.Decode(strings.NewReader(doc))
	require.NoError(t, err)
	g, _, err := f.Graph()
	require.NoError(t, err)

	b, err := balance.Compute(paths.Path{0, 1}, g)
	require.NoError(t, err)
	assert.Equal(t, balance.Balance{RequiredEntry: 0, ProducedExit: 1}, b)

	res, err := balance.Reconcile(1, paths.Enumerate(g, 0), g)
	require.NoError(t, err)
	assert.True(t, res.Single)
	assert.Equal(t, balance.Balance{RequiredEntry: 0, ProducedExit: 1}, res.Balance)
}

func TestDuplicateBlock(t *testing.T) {
	doc := `
blocks:
  - {id: 1, need: 0, stack: 1}
  - {id: 1, need: 1, stack: 1}
`
	f, err := graphfile.Decode(strings.NewReader(doc))
	require.NoError(t, err)
	_, _, err = f.Graph()
	var dup block.DuplicateBlockError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, block.ID(1), dup.ID)
}

func TestEncodeRoundTrip(t *testing.T) {
	f, err := graphfile.Load("testdata/diamond.yaml")
	require.NoError(t, err)
	g, _, err := f.Graph()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, graphfile.FromGraph(g).Encode(&buf))
	again, err := graphfile.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, f, again)
}
