package evm

import (
	"github.com/ethereum/go-ethereum/core/vm"
)

const (
	opBLOBHASH    vm.OpCode = 0x49
	opBLOBBASEFEE vm.OpCode = 0x4a
	opTLOAD       vm.OpCode = 0x5c
	opTSTORE      vm.OpCode = 0x5d
	opMCOPY       vm.OpCode = 0x5e
)

// effect is the number of items an opcode pops and pushes.
type effect struct {
	pops, pushes int
}

var effects = map[vm.OpCode]effect{
	vm.STOP:       {0, 0},
	vm.ADD:        {2, 1},
	vm.MUL:        {2, 1},
	vm.SUB:        {2, 1},
	vm.DIV:        {2, 1},
	vm.SDIV:       {2, 1},
	vm.MOD:        {2, 1},
	vm.SMOD:       {2, 1},
	vm.ADDMOD:     {3, 1},
	vm.MULMOD:     {3, 1},
	vm.EXP:        {2, 1},
	vm.SIGNEXTEND: {2, 1},

	vm.LT:     {2, 1},
	vm.GT:     {2, 1},
	vm.SLT:    {2, 1},
	vm.SGT:    {2, 1},
	vm.EQ:     {2, 1},
	vm.ISZERO: {1, 1},
	vm.AND:    {2, 1},
	vm.OR:     {2, 1},
	vm.XOR:    {2, 1},
	vm.NOT:    {1, 1},
	vm.BYTE:   {2, 1},
	vm.SHL:    {2, 1},
	vm.SHR:    {2, 1},
	vm.SAR:    {2, 1},

	vm.KECCAK256: {2, 1},

	vm.ADDRESS:        {0, 1},
	vm.BALANCE:        {1, 1},
	vm.ORIGIN:         {0, 1},
	vm.CALLER:         {0, 1},
	vm.CALLVALUE:      {0, 1},
	vm.CALLDATALOAD:   {1, 1},
	vm.CALLDATASIZE:   {0, 1},
	vm.CALLDATACOPY:   {3, 0},
	vm.CODESIZE:       {0, 1},
	vm.CODECOPY:       {3, 0},
	vm.GASPRICE:       {0, 1},
	vm.EXTCODESIZE:    {1, 1},
	vm.EXTCODECOPY:    {4, 0},
	vm.RETURNDATASIZE: {0, 1},
	vm.RETURNDATACOPY: {3, 0},
	vm.EXTCODEHASH:    {1, 1},

	vm.BLOCKHASH:   {1, 1},
	vm.COINBASE:    {0, 1},
	vm.TIMESTAMP:   {0, 1},
	vm.NUMBER:      {0, 1},
	vm.DIFFICULTY:  {0, 1},
	vm.GASLIMIT:    {0, 1},
	vm.CHAINID:     {0, 1},
	vm.SELFBALANCE: {0, 1},
	vm.BASEFEE:     {0, 1},

	vm.POP:      {1, 0},
	vm.MLOAD:    {1, 1},
	vm.MSTORE:   {2, 0},
	vm.MSTORE8:  {2, 0},
	vm.SLOAD:    {1, 1},
	vm.SSTORE:   {2, 0},
	vm.JUMP:     {1, 0},
	vm.JUMPI:    {2, 0},
	vm.PC:       {0, 1},
	vm.MSIZE:    {0, 1},
	vm.GAS:      {0, 1},
	vm.JUMPDEST: {0, 0},
	vm.PUSH0:    {0, 1},

	// Cancun
	opBLOBHASH:    {1, 1},
	opBLOBBASEFEE: {0, 1},
	opTLOAD:       {1, 1},
	opTSTORE:      {2, 0},
	opMCOPY:       {3, 0},

	vm.CREATE:       {3, 1},
	vm.CALL:         {7, 1},
	vm.CALLCODE:     {7, 1},
	vm.RETURN:       {2, 0},
	vm.DELEGATECALL: {6, 1},
	vm.CREATE2:      {4, 1},
	vm.STATICCALL:   {6, 1},
	vm.REVERT:       {2, 0},
	vm.INVALID:      {0, 0},
	vm.SELFDESTRUCT: {1, 0},
}

func init() {
	for i := 0; i < 32; i++ {
		effects[vm.PUSH1+vm.OpCode(i)] = effect{0, 1}
	}
	for i := 0; i < 16; i++ {
		effects[vm.DUP1+vm.OpCode(i)] = effect{i + 1, i + 2}
		effects[vm.SWAP1+vm.OpCode(i)] = effect{i + 2, i + 2}
	}
	for i := 0; i < 5; i++ {
		effects[vm.LOG0+vm.OpCode(i)] = effect{i + 2, 0}
	}
}

// defined returns true if op is a known opcode.
func defined(op vm.OpCode) bool {
	_, ok := effects[op]
	return ok
}

// pushSize returns the number of immediate bytes of a PUSHn, 0 otherwise.
func pushSize(op vm.OpCode) int {
	if op >= vm.PUSH1 && op <= vm.PUSH32 {
		return int(op-vm.PUSH1) + 1
	}
	return 0
}

// endsBlock returns true if op transfers control or halts.
func endsBlock(op vm.OpCode) bool {
	switch op {
	case vm.JUMP, vm.JUMPI, vm.STOP, vm.RETURN, vm.REVERT, vm.INVALID, vm.SELFDESTRUCT:
		return true
	}
	return !defined(op)
}

// halts returns true if execution does not continue to the next instruction.
func halts(op vm.OpCode) bool {
	return endsBlock(op) && op != vm.JUMPI
}
