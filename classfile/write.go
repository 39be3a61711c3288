package classfile

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf16"
)

type writer struct {
	buf bytes.Buffer
}

func (w *writer) u1(v uint8) {
	w.buf.WriteByte(v)
}

func (w *writer) u2(v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	w.buf.Write(b[:])
}

func (w *writer) u4(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

func (w *writer) write(b []byte) {
	w.buf.Write(b)
}

func (w *writer) Bytes() []byte {
	return w.buf.Bytes()
}

func writeConstantPool(w *writer, cp ConstantPool) error {
	if len(cp)+1 > math.MaxUint16 {
		return fmt.Errorf("constant pool too large: %d entries", len(cp))
	}
	w.u2(uint16(len(cp) + 1))

	for i, entry := range cp {
		if entry == nil {
			continue
		}
		w.u1(uint8(entry.Tag()))
		switch c := entry.(type) {
		case *ConstantUtf8Info:
			b := encodeModifiedUtf8(c.Value)
			w.u2(uint16(len(b)))
			w.write(b)
		case *ConstantIntegerInfo:
			w.u4(uint32(c.Value))
		case *ConstantFloatInfo:
			w.u4(math.Float32bits(c.Value))
		case *ConstantLongInfo:
			w.u4(uint32(uint64(c.Value) >> 32))
			w.u4(uint32(c.Value))
		case *ConstantDoubleInfo:
			bits := math.Float64bits(c.Value)
			w.u4(uint32(bits >> 32))
			w.u4(uint32(bits))
		case *ConstantClassInfo:
			w.u2(c.NameIndex)
		case *ConstantStringInfo:
			w.u2(c.StringIndex)
		case *ConstantFieldrefInfo:
			w.u2(c.ClassIndex)
			w.u2(c.NameAndTypeIndex)
		case *ConstantMethodrefInfo:
			w.u2(c.ClassIndex)
			w.u2(c.NameAndTypeIndex)
		case *ConstantInterfaceMethodrefInfo:
			w.u2(c.ClassIndex)
			w.u2(c.NameAndTypeIndex)
		case *ConstantNameAndTypeInfo:
			w.u2(c.NameIndex)
			w.u2(c.DescriptorIndex)
		case *ConstantMethodHandleInfo:
			w.u1(uint8(c.ReferenceKind))
			w.u2(c.ReferenceIndex)
		case *ConstantMethodTypeInfo:
			w.u2(c.DescriptorIndex)
		case *ConstantDynamicInfo:
			w.u2(c.BootstrapMethodAttrIndex)
			w.u2(c.NameAndTypeIndex)
		case *ConstantInvokeDynamicInfo:
			w.u2(c.BootstrapMethodAttrIndex)
			w.u2(c.NameAndTypeIndex)
		case *ConstantModuleInfo:
			w.u2(c.NameIndex)
		case *ConstantPackageInfo:
			w.u2(c.NameIndex)
		default:
			return fmt.Errorf("constant pool entry %d: tag %d has no class file encoding", i+1, entry.Tag())
		}
	}
	return nil
}

func encodeModifiedUtf8(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, u := range utf16.Encode([]rune(s)) {
		switch {
		case u != 0 && u < 0x80:
			out = append(out, byte(u))
		case u < 0x800:
			out = append(out, byte(0xC0|u>>6), byte(0x80|u&0x3F))
		default:
			out = append(out, byte(0xE0|u>>12), byte(0x80|(u>>6)&0x3F), byte(0x80|u&0x3F))
		}
	}
	return out
}
