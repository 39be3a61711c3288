package bytecode

// Assembler appends instructions to a code array. Constant operands are
// constant pool indices, typically obtained from a
// classfile.ConstantPoolEditor.
type Assembler struct {
	code []byte
}

func (a *Assembler) op(op Opcode, operands ...byte) *Assembler {
	a.code = append(a.code, byte(op))
	a.code = append(a.code, operands...)
	return a
}

func (a *Assembler) u2(op Opcode, index uint16) *Assembler {
	return a.op(op, byte(index>>8), byte(index))
}

// Ldc picks ldc or ldc_w depending on the index.
func (a *Assembler) Ldc(index uint16) *Assembler {
	if index <= 0xff {
		return a.op(Ldc, byte(index))
	}
	return a.u2(LdcW, index)
}

func (a *Assembler) LdcW(index uint16) *Assembler      { return a.u2(LdcW, index) }
func (a *Assembler) Getstatic(index uint16) *Assembler { return a.u2(Getstatic, index) }
func (a *Assembler) Putstatic(index uint16) *Assembler { return a.u2(Putstatic, index) }
func (a *Assembler) Getfield(index uint16) *Assembler  { return a.u2(Getfield, index) }
func (a *Assembler) Putfield(index uint16) *Assembler  { return a.u2(Putfield, index) }
func (a *Assembler) New(index uint16) *Assembler       { return a.u2(New, index) }
func (a *Assembler) Anewarray(index uint16) *Assembler { return a.u2(Anewarray, index) }
func (a *Assembler) Checkcast(index uint16) *Assembler { return a.u2(Checkcast, index) }

func (a *Assembler) Invokevirtual(index uint16) *Assembler { return a.u2(Invokevirtual, index) }
func (a *Assembler) Invokespecial(index uint16) *Assembler { return a.u2(Invokespecial, index) }
func (a *Assembler) Invokestatic(index uint16) *Assembler  { return a.u2(Invokestatic, index) }

func (a *Assembler) Invokeinterface(index uint16, count uint8) *Assembler {
	return a.op(Invokeinterface, byte(index>>8), byte(index), count, 0)
}

func (a *Assembler) Invokedynamic(index uint16) *Assembler {
	return a.op(Invokedynamic, byte(index>>8), byte(index), 0, 0)
}

// Iconst pushes a small int with the shortest encoding.
func (a *Assembler) Iconst(v int16) *Assembler {
	switch {
	case v >= -1 && v <= 5:
		return a.op(Iconst0 + Opcode(v))
	case v >= -128 && v <= 127:
		return a.op(Bipush, byte(int8(v)))
	default:
		return a.op(Sipush, byte(uint16(v)>>8), byte(v))
	}
}

func (a *Assembler) Aload(index uint8) *Assembler {
	if index <= 3 {
		return a.op(Aload0 + Opcode(index))
	}
	return a.op(Aload, index)
}

func (a *Assembler) Dup() *Assembler     { return a.op(Dup) }
func (a *Assembler) Pop() *Assembler     { return a.op(Pop) }
func (a *Assembler) Aastore() *Assembler { return a.op(Aastore) }
func (a *Assembler) Return() *Assembler  { return a.op(Return) }
func (a *Assembler) Areturn() *Assembler { return a.op(Areturn) }

// Raw appends already encoded bytes.
func (a *Assembler) Raw(b ...byte) *Assembler {
	a.code = append(a.code, b...)
	return a
}

func (a *Assembler) Len() int {
	return len(a.code)
}

func (a *Assembler) Bytes() []byte {
	return a.code
}
