// Package ssa builds Go source into SSA form and converts its functions into
// block graphs for path analysis.
//
// The SSA IR is from golang.org/x/tools/go/ssa. Each SSA basic block becomes a
// block whose ID is the block index; SSA blocks carry no stack metadata so Need
// and Stack are always 0.
//
package ssa

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"io"
	"io/ioutil"

	"github.com/pkg/errors"
	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"
)

var (
	ErrNoBody = errors.New("ssa: function has no body")
	ErrNoFunc = errors.New("ssa: function not found")
	ErrNoSrc  = errors.New("ssa: no source files")
)

// Info holds the results of a SSA build of a single package.
type Info struct {
	FSet *token.FileSet // FileSet for parsed source files.
	Pkg  *ssa.Package   // SSA IR for the package.
}

// BuildSource builds the Go source read from src as package path.
func BuildSource(path string, src io.Reader) (*Info, error) {
	b, err := ioutil.ReadAll(src)
	if err != nil {
		return nil, errors.Wrap(err, "ssa: failed to read source")
	}
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, path+".go", b, 0)
	if err != nil {
		return nil, errors.Wrap(err, "ssa: failed to parse source")
	}
	return build(fset, path, []*ast.File{f})
}

// BuildFiles builds the Go source files as package path. All files must
// belong to the same package.
func BuildFiles(path string, files ...string) (*Info, error) {
	if len(files) == 0 {
		return nil, ErrNoSrc
	}
	fset := token.NewFileSet()
	var astFiles []*ast.File
	for _, file := range files {
		f, err := parser.ParseFile(fset, file, nil, 0)
		if err != nil {
			return nil, errors.Wrapf(err, "ssa: failed to parse file: %s", file)
		}
		astFiles = append(astFiles, f)
	}
	return build(fset, path, astFiles)
}

func build(fset *token.FileSet, path string, files []*ast.File) (*Info, error) {
	pkg := types.NewPackage(path, files[0].Name.Name)
	conf := &types.Config{Importer: importer.Default()}
	ssaPkg, _, err := ssautil.BuildPackage(conf, fset, pkg, files, ssa.SanityCheckFunctions)
	if err != nil {
		return nil, errors.Wrap(err, "ssa: build failed")
	}
	return &Info{FSet: fset, Pkg: ssaPkg}, nil
}
