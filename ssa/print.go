package ssa

import (
	"io"
)

// WriteTo writes the functions declared in the package to w in human readable
// SSA IR instruction format.
func (info *Info) WriteTo(w io.Writer) (int64, error) {
	var n int64
	for _, f := range info.Funcs() {
		written, err := f.WriteTo(w)
		if err != nil {
			return n, err
		}
		n += written
	}
	return n, nil
}
