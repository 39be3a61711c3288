// Package bytecode walks and assembles JVM instruction streams.
package bytecode

type Opcode uint8

const (
	Nop             Opcode = 0x00
	AconstNull      Opcode = 0x01
	Iconst0         Opcode = 0x03
	Iconst1         Opcode = 0x04
	Bipush          Opcode = 0x10
	Sipush          Opcode = 0x11
	Ldc             Opcode = 0x12
	LdcW            Opcode = 0x13
	Ldc2W           Opcode = 0x14
	Iload           Opcode = 0x15
	Aload           Opcode = 0x19
	Aload0          Opcode = 0x2a
	Istore          Opcode = 0x36
	Astore          Opcode = 0x3a
	Aastore         Opcode = 0x53
	Pop             Opcode = 0x57
	Dup             Opcode = 0x59
	Iinc            Opcode = 0x84
	Ifeq            Opcode = 0x99
	Goto            Opcode = 0xa7
	Ret             Opcode = 0xa9
	Tableswitch     Opcode = 0xaa
	Lookupswitch    Opcode = 0xab
	Ireturn         Opcode = 0xac
	Areturn         Opcode = 0xb0
	Return          Opcode = 0xb1
	Getstatic       Opcode = 0xb2
	Putstatic       Opcode = 0xb3
	Getfield        Opcode = 0xb4
	Putfield        Opcode = 0xb5
	Invokevirtual   Opcode = 0xb6
	Invokespecial   Opcode = 0xb7
	Invokestatic    Opcode = 0xb8
	Invokeinterface Opcode = 0xb9
	Invokedynamic   Opcode = 0xba
	New             Opcode = 0xbb
	Newarray        Opcode = 0xbc
	Anewarray       Opcode = 0xbd
	Athrow          Opcode = 0xbf
	Checkcast       Opcode = 0xc0
	Instanceof      Opcode = 0xc1
	Wide            Opcode = 0xc4
	Multianewarray  Opcode = 0xc5
	Ifnull          Opcode = 0xc6
	Ifnonnull       Opcode = 0xc7
	GotoW           Opcode = 0xc8
	JsrW            Opcode = 0xc9
)

// operandSize holds the fixed operand length of each opcode. Switches and
// wide have variable lengths; unassigned opcodes are marked invalid.
var operandSize [256]int8

const (
	variable int8 = -1
	invalid  int8 = -2
)

func init() {
	for i := range operandSize {
		operandSize[i] = invalid
	}
	// Opcodes without operands.
	for op := 0x00; op <= 0x0f; op++ {
		operandSize[op] = 0
	}
	for op := 0x1a; op <= 0x35; op++ {
		operandSize[op] = 0
	}
	for op := 0x3b; op <= 0x83; op++ {
		operandSize[op] = 0
	}
	for op := 0x85; op <= 0x98; op++ {
		operandSize[op] = 0
	}
	for op := 0xac; op <= 0xb1; op++ {
		operandSize[op] = 0
	}
	for _, op := range []int{0xbe, 0xbf, 0xc2, 0xc3} {
		operandSize[op] = 0
	}

	operandSize[Bipush] = 1
	operandSize[Sipush] = 2
	operandSize[Ldc] = 1
	operandSize[LdcW] = 2
	operandSize[Ldc2W] = 2
	// Loads, stores and ret take a local variable index.
	for op := 0x15; op <= 0x19; op++ {
		operandSize[op] = 1
	}
	for op := 0x36; op <= 0x3a; op++ {
		operandSize[op] = 1
	}
	operandSize[Ret] = 1
	operandSize[Iinc] = 2
	// Branches.
	for op := 0x99; op <= 0xa8; op++ {
		operandSize[op] = 2
	}
	operandSize[Ifnull] = 2
	operandSize[Ifnonnull] = 2
	operandSize[GotoW] = 4
	operandSize[JsrW] = 4

	for op := Getstatic; op <= Invokestatic; op++ {
		operandSize[op] = 2
	}
	operandSize[Invokeinterface] = 4
	operandSize[Invokedynamic] = 4
	operandSize[New] = 2
	operandSize[Newarray] = 1
	operandSize[Anewarray] = 2
	operandSize[Checkcast] = 2
	operandSize[Instanceof] = 2
	operandSize[Multianewarray] = 3

	operandSize[Tableswitch] = variable
	operandSize[Lookupswitch] = variable
	operandSize[Wide] = variable
}
