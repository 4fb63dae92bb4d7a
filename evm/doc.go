// Package evm decodes EVM bytecode into basic blocks for path and stack balance
// analysis.
//
// Blocks start at offset 0, at every JUMPDEST, and after every instruction
// that ends a block (JUMP, JUMPI, STOP, RETURN, REVERT, INVALID, SELFDESTRUCT
// and undefined opcodes). The ID of a block is its start offset.
//
// For each block, Need is the number of stack items the block consumes below
// its entry depth and Stack is its net stack effect.
//
// Edges are the fallthrough edges and the jumps whose target is pushed by the
// instruction directly before the JUMP or JUMPI and lands on a JUMPDEST.
// Other jumps are not resolved; their blocks are listed in
// Program.Unresolved.
//
// Public functions are recovered from the dispatcher pattern
//
//	PUSH4 <selector> [DUPn] EQ PUSHn <entry> JUMPI
//
// and a block is a member of every function whose entry reaches it.
package evm
