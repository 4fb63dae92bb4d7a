package ssa

import (
	"sort"

	"github.com/pkg/errors"
	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"
)

// funcs is slice of ssa.Function. Used only for sorting by Pos.
type funcs []*ssa.Function

func (f funcs) Len() int           { return len(f) }
func (f funcs) Less(i, j int) bool { return f[i].Pos() < f[j].Pos() }
func (f funcs) Swap(i, j int)      { f[i], f[j] = f[j], f[i] }

// Func returns the function in the package named by name, relative to the
// package, e.g. "main", "main$1" or "(*T).Method".
func (info *Info) Func(name string) (*ssa.Function, error) {
	if f := info.Pkg.Func(name); f != nil {
		return f, nil
	}
	for f := range ssautil.AllFunctions(info.Pkg.Prog) {
		if f.Pkg == info.Pkg && f.RelString(info.Pkg.Pkg) == name {
			return f, nil
		}
	}
	return nil, errors.Wrap(ErrNoFunc, name)
}

// Funcs returns the functions declared in the source of the package, including
// methods and closures, in source order.
func (info *Info) Funcs() []*ssa.Function {
	var fns funcs
	for f := range ssautil.AllFunctions(info.Pkg.Prog) {
		if f.Pkg == info.Pkg && f.Synthetic == "" && len(f.Blocks) > 0 {
			fns = append(fns, f)
		}
	}
	sort.Sort(fns)
	return fns
}
