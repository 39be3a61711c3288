package classfile

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var errTruncated = errors.New("truncated attribute")

// cursor reads big-endian values from an attribute body. Like reader, it
// keeps the first error and returns zero values afterwards.
type cursor struct {
	data []byte
	pos  int
	err  error
}

func (c *cursor) need(n int) bool {
	if c.err != nil {
		return false
	}
	if c.pos+n > len(c.data) {
		c.err = errTruncated
		return false
	}
	return true
}

func (c *cursor) u1() uint8 {
	if !c.need(1) {
		return 0
	}
	v := c.data[c.pos]
	c.pos++
	return v
}

func (c *cursor) u2() uint16 {
	if !c.need(2) {
		return 0
	}
	v := binary.BigEndian.Uint16(c.data[c.pos:])
	c.pos += 2
	return v
}

func (c *cursor) u4() uint32 {
	if !c.need(4) {
		return 0
	}
	v := binary.BigEndian.Uint32(c.data[c.pos:])
	c.pos += 4
	return v
}

func (c *cursor) bytes(n int) []byte {
	if !c.need(n) {
		return nil
	}
	v := c.data[c.pos : c.pos+n]
	c.pos += n
	return v
}

func (c *cursor) u2s() []uint16 {
	n := int(c.u2())
	out := make([]uint16, 0, n)
	for i := 0; i < n && c.err == nil; i++ {
		out = append(out, c.u2())
	}
	return out
}

// decodeAttribute decodes the attributes the resolver cares about. Unknown
// attributes yield nil and keep only their raw bytes.
func decodeAttribute(name string, data []byte, cp ConstantPool) (any, error) {
	c := &cursor{data: data}
	var parsed any

	switch name {
	case AttrCode:
		parsed = decodeCode(c, cp)
	case AttrConstantValue:
		parsed = &ConstantValueAttribute{ConstantValueIndex: c.u2()}
	case AttrSourceFile:
		parsed = &SourceFileAttribute{SourceFileIndex: c.u2()}
	case AttrSignature:
		parsed = &SignatureAttribute{SignatureIndex: c.u2()}
	case AttrExceptions:
		parsed = &ExceptionsAttribute{ExceptionIndexTable: c.u2s()}
	case AttrNestHost:
		parsed = &NestHostAttribute{HostClassIndex: c.u2()}
	case AttrNestMembers:
		parsed = &NestMembersAttribute{Classes: c.u2s()}
	case AttrPermittedSubclasses:
		parsed = &PermittedSubclassesAttribute{Classes: c.u2s()}
	case AttrEnclosingMethod:
		parsed = &EnclosingMethodAttribute{ClassIndex: c.u2(), MethodIndex: c.u2()}
	case AttrInnerClasses:
		parsed = decodeInnerClasses(c)
	case AttrBootstrapMethods:
		parsed = decodeBootstrapMethods(c)
	case AttrLocalVariableTable:
		parsed = decodeLocalVariableTable(c)
	case AttrLocalVariableTypeTable:
		parsed = decodeLocalVariableTypeTable(c)
	case AttrRecord:
		parsed = decodeRecord(c, cp)
	case AttrRuntimeVisibleAnnotations, AttrRuntimeInvisibleAnnotations:
		parsed = &AnnotationsAttribute{
			Visible:     name == AttrRuntimeVisibleAnnotations,
			Annotations: decodeAnnotations(c),
		}
	case AttrRuntimeVisibleParameterAnnotations, AttrRuntimeInvisibleParameterAnnotations:
		attr := &ParameterAnnotationsAttribute{Visible: name == AttrRuntimeVisibleParameterAnnotations}
		n := int(c.u1())
		for i := 0; i < n && c.err == nil; i++ {
			attr.ParameterAnnotations = append(attr.ParameterAnnotations, decodeAnnotations(c))
		}
		parsed = attr
	case AttrRuntimeVisibleTypeAnnotations, AttrRuntimeInvisibleTypeAnnotations:
		attr := &TypeAnnotationsAttribute{Visible: name == AttrRuntimeVisibleTypeAnnotations}
		n := int(c.u2())
		for i := 0; i < n && c.err == nil; i++ {
			attr.Annotations = append(attr.Annotations, decodeTypeAnnotation(c))
		}
		parsed = attr
	case AttrAnnotationDefault:
		parsed = &AnnotationDefaultAttribute{DefaultValue: decodeElementValue(c, 0)}
	default:
		return nil, nil
	}

	if c.err != nil {
		return nil, c.err
	}
	return parsed, nil
}

func decodeCode(c *cursor, cp ConstantPool) *CodeAttribute {
	code := &CodeAttribute{
		MaxStack:  c.u2(),
		MaxLocals: c.u2(),
	}
	code.Code = c.bytes(int(c.u4()))

	n := int(c.u2())
	for i := 0; i < n && c.err == nil; i++ {
		code.ExceptionTable = append(code.ExceptionTable, ExceptionTableEntry{
			StartPC:   c.u2(),
			EndPC:     c.u2(),
			HandlerPC: c.u2(),
			CatchType: c.u2(),
		})
	}

	n = int(c.u2())
	for i := 0; i < n && c.err == nil; i++ {
		nameIndex := c.u2()
		info := c.bytes(int(c.u4()))
		if c.err != nil {
			break
		}
		name := cp.GetUtf8(nameIndex)
		parsed, err := decodeAttribute(name, info, cp)
		if err != nil {
			c.err = fmt.Errorf("decode %s attribute: %w", name, err)
			break
		}
		code.Attributes = append(code.Attributes, AttributeInfo{NameIndex: nameIndex, Info: info, Parsed: parsed})
	}
	return code
}

func decodeInnerClasses(c *cursor) *InnerClassesAttribute {
	attr := &InnerClassesAttribute{}
	n := int(c.u2())
	for i := 0; i < n && c.err == nil; i++ {
		attr.Classes = append(attr.Classes, InnerClassEntry{
			InnerClassInfoIndex:   c.u2(),
			OuterClassInfoIndex:   c.u2(),
			InnerNameIndex:        c.u2(),
			InnerClassAccessFlags: AccessFlags(c.u2()),
		})
	}
	return attr
}

func decodeBootstrapMethods(c *cursor) *BootstrapMethodsAttribute {
	attr := &BootstrapMethodsAttribute{}
	n := int(c.u2())
	for i := 0; i < n && c.err == nil; i++ {
		attr.BootstrapMethods = append(attr.BootstrapMethods, BootstrapMethod{
			BootstrapMethodRef: c.u2(),
			BootstrapArguments: c.u2s(),
		})
	}
	return attr
}

func decodeLocalVariableTable(c *cursor) *LocalVariableTableAttribute {
	attr := &LocalVariableTableAttribute{}
	n := int(c.u2())
	for i := 0; i < n && c.err == nil; i++ {
		attr.LocalVariableTable = append(attr.LocalVariableTable, LocalVariableEntry{
			StartPC:         c.u2(),
			Length:          c.u2(),
			NameIndex:       c.u2(),
			DescriptorIndex: c.u2(),
			Index:           c.u2(),
		})
	}
	return attr
}

func decodeLocalVariableTypeTable(c *cursor) *LocalVariableTypeTableAttribute {
	attr := &LocalVariableTypeTableAttribute{}
	n := int(c.u2())
	for i := 0; i < n && c.err == nil; i++ {
		attr.LocalVariableTypeTable = append(attr.LocalVariableTypeTable, LocalVariableTypeEntry{
			StartPC:        c.u2(),
			Length:         c.u2(),
			NameIndex:      c.u2(),
			SignatureIndex: c.u2(),
			Index:          c.u2(),
		})
	}
	return attr
}

func decodeRecord(c *cursor, cp ConstantPool) *RecordAttribute {
	attr := &RecordAttribute{}
	n := int(c.u2())
	for i := 0; i < n && c.err == nil; i++ {
		rc := &RecordComponent{
			NameIndex:       c.u2(),
			DescriptorIndex: c.u2(),
		}
		m := int(c.u2())
		for j := 0; j < m && c.err == nil; j++ {
			nameIndex := c.u2()
			info := c.bytes(int(c.u4()))
			if c.err != nil {
				break
			}
			parsed, err := decodeAttribute(cp.GetUtf8(nameIndex), info, cp)
			if err != nil {
				c.err = err
				break
			}
			rc.Attributes = append(rc.Attributes, AttributeInfo{NameIndex: nameIndex, Info: info, Parsed: parsed})
		}
		attr.Components = append(attr.Components, rc)
	}
	return attr
}

func decodeAnnotations(c *cursor) []*Annotation {
	n := int(c.u2())
	anns := make([]*Annotation, 0, n)
	for i := 0; i < n && c.err == nil; i++ {
		anns = append(anns, decodeAnnotation(c))
	}
	return anns
}

func decodeAnnotation(c *cursor) *Annotation {
	ann := &Annotation{TypeIndex: c.u2()}
	n := int(c.u2())
	for i := 0; i < n && c.err == nil; i++ {
		nameIndex := c.u2()
		ann.ElementValues = append(ann.ElementValues, decodeElementValue(c, nameIndex))
	}
	return ann
}

func decodeElementValue(c *cursor, nameIndex uint16) *ElementValue {
	ev := &ElementValue{NameIndex: nameIndex, Tag: c.u1()}
	switch ev.Tag {
	case ElementByte, ElementChar, ElementDouble, ElementFloat, ElementInt,
		ElementLong, ElementShort, ElementBoolean, ElementString:
		ev.ConstValueIndex = c.u2()
	case ElementEnum:
		ev.TypeNameIndex = c.u2()
		ev.ConstNameIndex = c.u2()
	case ElementClass:
		ev.ClassInfoIndex = c.u2()
	case ElementAnnotation:
		ev.AnnotationValue = decodeAnnotation(c)
	case ElementArray:
		n := int(c.u2())
		for i := 0; i < n && c.err == nil; i++ {
			ev.Values = append(ev.Values, decodeElementValue(c, 0))
		}
	default:
		if c.err == nil {
			c.err = fmt.Errorf("unknown element value tag %q", ev.Tag)
		}
	}
	return ev
}

func decodeTypeAnnotation(c *cursor) *TypeAnnotation {
	ta := &TypeAnnotation{TargetType: c.u1()}
	start := c.pos
	switch ta.TargetType {
	case 0x00, 0x01, 0x16:
		c.bytes(1)
	case 0x10, 0x17, 0x42, 0x43, 0x44, 0x45, 0x46:
		c.bytes(2)
	case 0x11, 0x12:
		c.bytes(2)
	case 0x13, 0x14, 0x15:
	case 0x40, 0x41:
		n := int(c.u2())
		c.bytes(6 * n)
	case 0x47, 0x48, 0x49, 0x4A, 0x4B:
		c.bytes(3)
	default:
		if c.err == nil {
			c.err = fmt.Errorf("unknown type annotation target 0x%02X", ta.TargetType)
		}
	}
	if c.err == nil {
		ta.TargetInfo = c.data[start:c.pos]
	}

	n := int(c.u1())
	for i := 0; i < n && c.err == nil; i++ {
		ta.TargetPath = append(ta.TargetPath, TypePathEntry{TypePathKind: c.u1(), TypeArgumentIndex: c.u1()})
	}

	ann := decodeAnnotation(c)
	ta.Annotation = *ann
	return ta
}
