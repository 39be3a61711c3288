package bytecode

import (
	"encoding/binary"
	"fmt"
)

// Instruction is one decoded instruction. Operands excludes the opcode and,
// for wide instructions, holds the modified opcode followed by its operands.
type Instruction struct {
	Offset   int
	Opcode   Opcode
	Operands []byte
}

// Length returns the size of the instruction in bytes.
func (in Instruction) Length() int {
	return 1 + len(in.Operands)
}

// ConstantIndex returns the constant pool index operand of ldc, field,
// method, type and invokedynamic instructions.
func (in Instruction) ConstantIndex() (uint16, bool) {
	switch in.Opcode {
	case Ldc:
		return uint16(in.Operands[0]), true
	case LdcW, Ldc2W, Getstatic, Putstatic, Getfield, Putfield,
		Invokevirtual, Invokespecial, Invokestatic, Invokeinterface, Invokedynamic,
		New, Anewarray, Checkcast, Instanceof, Multianewarray:
		return binary.BigEndian.Uint16(in.Operands), true
	}
	return 0, false
}

// Walk decodes code and calls fn for every instruction in order. fn
// returns false to stop early.
func Walk(code []byte, fn func(Instruction) bool) error {
	for offset := 0; offset < len(code); {
		op := Opcode(code[offset])
		n, err := operandLength(code, offset)
		if err != nil {
			return err
		}
		end := offset + 1 + n
		if end > len(code) {
			return fmt.Errorf("instruction 0x%02x at %d: truncated", op, offset)
		}
		if !fn(Instruction{Offset: offset, Opcode: op, Operands: code[offset+1 : end]}) {
			return nil
		}
		offset = end
	}
	return nil
}

func operandLength(code []byte, offset int) (int, error) {
	op := Opcode(code[offset])
	switch n := operandSize[op]; n {
	case invalid:
		return 0, fmt.Errorf("invalid opcode 0x%02x at %d", op, offset)
	case variable:
	default:
		return int(n), nil
	}

	u4 := func(at int) (int32, error) {
		if at+4 > len(code) {
			return 0, fmt.Errorf("instruction 0x%02x at %d: truncated", op, offset)
		}
		return int32(binary.BigEndian.Uint32(code[at:])), nil
	}

	// Switch operands start at the next multiple of four.
	pad := (3 - offset%4) % 4
	base := offset + 1 + pad

	switch op {
	case Tableswitch:
		low, err := u4(base + 4)
		if err != nil {
			return 0, err
		}
		high, err := u4(base + 8)
		if err != nil {
			return 0, err
		}
		if high < low {
			return 0, fmt.Errorf("tableswitch at %d: high %d < low %d", offset, high, low)
		}
		return pad + 12 + 4*int(high-low+1), nil
	case Lookupswitch:
		npairs, err := u4(base + 4)
		if err != nil {
			return 0, err
		}
		if npairs < 0 {
			return 0, fmt.Errorf("lookupswitch at %d: negative pair count", offset)
		}
		return pad + 8 + 8*int(npairs), nil
	default:
		if offset+1 >= len(code) {
			return 0, fmt.Errorf("wide at %d: truncated", offset)
		}
		if Opcode(code[offset+1]) == Iinc {
			return 5, nil
		}
		return 3, nil
	}
}
