// Package funcs records which functions enclose each basic block.
//
// Compilers may share a basic block between several functions, e.g. a common
// revert or return tail. Such shared blocks are where control flow from
// different functions merges, and are the natural start points for path and
// stack balance analysis.
//
// Membership is supplied by the program decoder; this package does not recover
// function boundaries.
package funcs
