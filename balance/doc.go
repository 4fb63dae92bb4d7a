// Package balance computes the stack balance of control flow paths.
//
// For a single path, the stack balance is the minimum stack depth a caller must
// provide on entry to the first block so that no block on the path underflows
// (RequiredEntry), and the stack depth when execution leaves the last block
// (ProducedExit).
//
// The depth is tracked from 0. When a block needs more items than are
// available, the shortfall is added to RequiredEntry and the running depth is
// reset to 0: topped-up items leave no surplus behind.
//
// At a merge node fed by several paths, the balances of all contributing paths
// are reconciled. If they are all the same the merge is balanced, otherwise
// the merge is ambiguous and the per-path balances are returned for the caller
// to aggregate with a Policy. No aggregation policy is built in.
package balance
