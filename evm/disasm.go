package evm

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// Instruction is a decoded EVM instruction.
type Instruction struct {
	PC  uint64
	Op  vm.OpCode
	Arg []byte // Immediate of PUSHn, zero padded if the code is truncated.
}

// Value returns the immediate of a PUSHn as an integer, and false for other
// instructions.
func (i Instruction) Value() (*uint256.Int, bool) {
	if pushSize(i.Op) == 0 && i.Op != vm.PUSH0 {
		return nil, false
	}
	return new(uint256.Int).SetBytes(i.Arg), true
}

// next returns the offset of the following instruction.
func (i Instruction) next() uint64 {
	return i.PC + 1 + uint64(len(i.Arg))
}

func (i Instruction) String() string {
	if len(i.Arg) > 0 {
		return fmt.Sprintf("%v %#x", i.Op, i.Arg)
	}
	return i.Op.String()
}

// Disassemble decodes code into instructions.
func Disassemble(code []byte) []Instruction {
	var instrs []Instruction
	for pc := uint64(0); pc < uint64(len(code)); {
		op := vm.OpCode(code[pc])
		instr := Instruction{PC: pc, Op: op}
		if n := pushSize(op); n > 0 {
			instr.Arg = make([]byte, n)
			start := pc + 1
			if start < uint64(len(code)) {
				copy(instr.Arg, code[start:])
			}
		}
		instrs = append(instrs, instr)
		pc = instr.next()
	}
	return instrs
}

// ParseHex decodes a hex string, with or without 0x prefix, into bytecode.
func ParseHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	code, err := hexutil.Decode(s)
	if err != nil {
		return nil, errors.Wrap(err, "evm: invalid bytecode hex")
	}
	return code, nil
}
