package bytecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func opcodes(t *testing.T, code []byte) []Opcode {
	t.Helper()
	var ops []Opcode
	err := Walk(code, func(in Instruction) bool {
		ops = append(ops, in.Opcode)
		return true
	})
	require.NoError(t, err)
	return ops
}

func TestWalkAssembled(t *testing.T) {
	var a Assembler
	a.New(7).Dup().Ldc(3).Iconst(0).Invokespecial(9).Putstatic(12).Ldc(300).Iconst(-1).Iconst(100).Iconst(1000).Return()

	var got []Instruction
	require.NoError(t, Walk(a.Bytes(), func(in Instruction) bool {
		got = append(got, in)
		return true
	}))

	want := []Opcode{New, Dup, Ldc, Iconst0, Invokespecial, Putstatic, LdcW, Opcode(0x02), Bipush, Sipush, Return}
	require.Len(t, got, len(want))
	for i, in := range got {
		assert.Equal(t, want[i], in.Opcode, "instruction %d", i)
	}

	idx, ok := got[2].ConstantIndex()
	assert.True(t, ok)
	assert.Equal(t, uint16(3), idx)
	idx, _ = got[5].ConstantIndex()
	assert.Equal(t, uint16(12), idx)
	idx, _ = got[6].ConstantIndex()
	assert.Equal(t, uint16(300), idx)
	_, ok = got[1].ConstantIndex()
	assert.False(t, ok)

	assert.Equal(t, 3, got[0].Length())
	assert.Equal(t, got[0].Offset+got[0].Length(), got[1].Offset)
}

func TestWalkSwitches(t *testing.T) {
	tests := []struct {
		name string
		code []byte
		want []Opcode
	}{
		{
			"tableswitch after one byte",
			[]byte{
				0x04,        // iconst_1
				0xaa, 0, 0,  // tableswitch and padding
				0, 0, 0, 20, // default
				0, 0, 0, 1,  // low
				0, 0, 0, 2,  // high
				0, 0, 0, 20, 0, 0, 0, 20,
				0xb1,
			},
			[]Opcode{Iconst1, Tableswitch, Return},
		},
		{
			"lookupswitch aligned without padding",
			[]byte{
				0x04, 0x04, 0x04,
				0xab,
				0, 0, 0, 20, // default
				0, 0, 0, 1,  // npairs
				0, 0, 0, 5, 0, 0, 0, 20,
				0xb1,
			},
			[]Opcode{Iconst1, Iconst1, Iconst1, Lookupswitch, Return},
		},
		{
			"wide",
			[]byte{0xc4, 0x15, 0x01, 0x00, 0xc4, 0x84, 0x01, 0x00, 0x00, 0x01, 0xb1},
			[]Opcode{Wide, Wide, Return},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, opcodes(t, tt.code))
		})
	}
}

func TestWalkErrors(t *testing.T) {
	tests := []struct {
		name string
		code []byte
	}{
		{"invalid opcode", []byte{0xfe}},
		{"truncated operand", []byte{byte(Getstatic), 0x00}},
		{"truncated switch", []byte{byte(Tableswitch), 0, 0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, Walk(tt.code, func(Instruction) bool { return true }))
		})
	}
}

func TestWalkStopsEarly(t *testing.T) {
	var a Assembler
	a.Aload(0).Aload(5).Pop().Return()

	count := 0
	require.NoError(t, Walk(a.Bytes(), func(in Instruction) bool {
		count++
		return in.Opcode != Aload
	}))
	assert.Equal(t, 2, count)
}
