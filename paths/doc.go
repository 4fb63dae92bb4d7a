// Package paths enumerates maximal simple paths in a block graph.
//
// A path starts at a chosen start block and ends at a leaf, a block with no
// outgoing edges. A block never repeats within one path: when a successor is
// already on the path the edge is not followed, which is how cycles are broken.
// Different paths may share blocks.
//
// Enumeration uses an explicit stack rather than recursion. The set of paths
// produced is deterministic for an unmodified graph but the order in which they
// are emitted is not, use Set.Sorted for a canonical order.
//
// The number of simple paths can be exponential in the size of the graph; use
// EnumerateFunc to stop early.
package paths
