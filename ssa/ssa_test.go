package ssa_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
	gossa "golang.org/x/tools/go/ssa"

	"github.com/nickng/cfgpath/block"
	"github.com/nickng/cfgpath/converge"
	"github.com/nickng/cfgpath/paths"
	"github.com/nickng/cfgpath/ssa"
)

const branchSrc = `package p

func f(x int) int {
	y := 0
	if x > 0 {
		y = 1
	} else {
		y = 2
	}
	return y
}

func g(x int) int {
	if x > 0 {
		return 1
	}
	return 2
}
`

func build(t *testing.T) *ssa.Info {
	info, err := ssa.BuildSource("p", strings.NewReader(branchSrc))
	if err != nil {
		t.Fatalf("SSA build failed: %v", err)
	}
	return info
}

func blockIndex(fn *gossa.Function, comment string) int {
	for _, b := range fn.Blocks {
		if b.Comment == comment {
			return b.Index
		}
	}
	return -1
}

// This tests an if/else converging at the join block.
func TestFromFuncConverge(t *testing.T) {
	info := build(t)
	fn, err := info.Func("f")
	if err != nil {
		t.Fatalf("cannot find f: %v", err)
	}
	g, err := ssa.FromFunc(fn)
	if err != nil {
		t.Fatalf("cannot convert f: %v", err)
	}
	if want, got := len(fn.Blocks), len(g.Nodes()); want != got {
		t.Errorf("expects %d blocks but got %d", want, got)
	}
	done := blockIndex(fn, "if.done")
	if done < 0 {
		t.Fatal("cannot find if.done block")
	}
	res := converge.FindConvergingNode(g, 0)
	if !res.Found {
		t.Fatalf("expects paths to converge but got %v", res.Paths)
	}
	if want, got := block.ID(done), res.Node; want != got {
		t.Errorf("expects converging node %v but got %v", want, got)
	}
	if want, got := 2, len(res.Paths); want != got {
		t.Errorf("expects %d paths but got %d", want, got)
	}
	b, ok := g.Block(block.ID(done))
	if !ok || len(b.Instrs) == 0 {
		t.Errorf("expects instructions in block %d", done)
	}
	if b.Need != 0 || b.Stack != 0 {
		t.Errorf("expects no stack metadata but got need=%d stack=%d", b.Need, b.Stack)
	}
}

// This tests that returning from both branches does not converge.
func TestFromFuncDiverge(t *testing.T) {
	info := build(t)
	fn, err := info.Func("g")
	if err != nil {
		t.Fatalf("cannot find g: %v", err)
	}
	g, err := ssa.FromFunc(fn)
	if err != nil {
		t.Fatalf("cannot convert g: %v", err)
	}
	set := paths.Enumerate(g, 0)
	if want, got := 2, len(set); want != got {
		t.Errorf("expects %d paths but got %d", want, got)
	}
	if res := converge.FindConvergingNode(g, 0); res.Found {
		t.Errorf("expects no converging node but got %v", res.Node)
	}
}

func TestFuncs(t *testing.T) {
	info := build(t)
	var names []string
	for _, fn := range info.Funcs() {
		names = append(names, fn.Name())
	}
	if want, got := "f g", strings.Join(names, " "); want != got {
		t.Errorf("expects functions %q but got %q", want, got)
	}
	if _, err := info.Func("h"); errors.Cause(err) != ssa.ErrNoFunc {
		t.Errorf("expects ErrNoFunc but got %v", err)
	}
}

func TestWriteTo(t *testing.T) {
	info := build(t)
	var buf bytes.Buffer
	if _, err := info.WriteTo(&buf); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if !strings.Contains(buf.String(), "func f(") {
		t.Errorf("expects f in output but got:\n%s", buf.String())
	}
}

func TestBuildInvalid(t *testing.T) {
	if _, err := ssa.BuildSource("p", strings.NewReader("package p; func")); err == nil {
		t.Error("expects parse error")
	}
	if _, err := ssa.BuildFiles("p"); err != ssa.ErrNoSrc {
		t.Errorf("expects ErrNoSrc but got %v", err)
	}
}
