// Package loop provides utilities for loop representation and detection in
// block graphs.
//
// Loop detection works by a depth-first traversal from a start block: an edge
// into a block that is still on the traversal stack is a back edge, and its
// target is a loop header. The natural loop of a header is the header plus all
// blocks that reach one of its back edge sources without passing the header.
//
// Path enumeration never follows an edge back onto the current path, so the
// back edges found here are the edges which enumeration cuts.
package loop
