package classfile

import (
	"bytes"
	"fmt"
)

// RawAttribute is an encoded attribute body waiting for its name to be
// interned into a constant pool.
type RawAttribute struct {
	Name string
	Data []byte
}

type memberSpec struct {
	flags      AccessFlags
	name       string
	descriptor string
	attrs      []RawAttribute
}

// ClassBuilder assembles class file bytes. It is used to produce fixtures
// and synthetic classes without a Java compiler.
type ClassBuilder struct {
	major      uint16
	flags      AccessFlags
	name       string
	super      string
	interfaces []string
	fields     []memberSpec
	methods    []memberSpec
	attrs      []RawAttribute

	pool   ConstantPool
	editor *ConstantPoolEditor
}

// NewClassBuilder starts a class with the given internal name. An empty
// super leaves the superclass unset, as for java/lang/Object.
func NewClassBuilder(name, super string, flags AccessFlags) *ClassBuilder {
	b := &ClassBuilder{
		major: 52,
		flags: flags,
		name:  name,
		super: super,
	}
	b.editor = NewConstantPoolEditor(&b.pool)
	return b
}

func (b *ClassBuilder) Version(major uint16) *ClassBuilder {
	b.major = major
	return b
}

func (b *ClassBuilder) Implements(names ...string) *ClassBuilder {
	b.interfaces = append(b.interfaces, names...)
	return b
}

func (b *ClassBuilder) Field(flags AccessFlags, name, descriptor string, attrs ...RawAttribute) *ClassBuilder {
	b.fields = append(b.fields, memberSpec{flags, name, descriptor, attrs})
	return b
}

func (b *ClassBuilder) Method(flags AccessFlags, name, descriptor string, attrs ...RawAttribute) *ClassBuilder {
	b.methods = append(b.methods, memberSpec{flags, name, descriptor, attrs})
	return b
}

func (b *ClassBuilder) Attribute(attrs ...RawAttribute) *ClassBuilder {
	b.attrs = append(b.attrs, attrs...)
	return b
}

// Pool gives access to the constant pool under construction, for operands
// of bytecode and bootstrap methods.
func (b *ClassBuilder) Pool() *ConstantPoolEditor {
	return b.editor
}

func (b *ClassBuilder) Bytes() ([]byte, error) {
	// Everything that lands in the constant pool must be interned before
	// the pool is written out.
	thisIndex := b.editor.AddClass(b.name)
	var superIndex uint16
	if b.super != "" {
		superIndex = b.editor.AddClass(b.super)
	}
	ifaceIndices := make([]uint16, len(b.interfaces))
	for i, name := range b.interfaces {
		ifaceIndices[i] = b.editor.AddClass(name)
	}

	body := &writer{}
	body.u2(uint16(b.flags))
	body.u2(thisIndex)
	body.u2(superIndex)
	body.u2(uint16(len(ifaceIndices)))
	for _, idx := range ifaceIndices {
		body.u2(idx)
	}
	for _, members := range [][]memberSpec{b.fields, b.methods} {
		body.u2(uint16(len(members)))
		for _, m := range members {
			body.u2(uint16(m.flags))
			body.u2(b.editor.AddUtf8(m.name))
			body.u2(b.editor.AddUtf8(m.descriptor))
			b.writeAttributes(body, m.attrs)
		}
	}
	b.writeAttributes(body, b.attrs)

	out := &writer{}
	out.u4(Magic)
	out.u2(0)
	out.u2(b.major)
	if err := writeConstantPool(out, b.pool); err != nil {
		return nil, fmt.Errorf("build %s: %w", b.name, err)
	}
	out.write(body.Bytes())
	return out.Bytes(), nil
}

func (b *ClassBuilder) writeAttributes(w *writer, attrs []RawAttribute) {
	w.u2(uint16(len(attrs)))
	for _, a := range attrs {
		w.u2(b.editor.AddUtf8(a.Name))
		w.u4(uint32(len(a.Data)))
		w.write(a.Data)
	}
}

// Build encodes the class and parses it back.
func (b *ClassBuilder) Build(opts ...ParseOption) (*Class, error) {
	data, err := b.Bytes()
	if err != nil {
		return nil, err
	}
	return Parse(bytes.NewReader(data), opts...)
}

// MustBuild is like Build but panics on error.
func (b *ClassBuilder) MustBuild(opts ...ParseOption) *Class {
	c, err := b.Build(opts...)
	if err != nil {
		panic(err)
	}
	return c
}

func (b *ClassBuilder) Code(maxStack, maxLocals uint16, code []byte, attrs ...RawAttribute) RawAttribute {
	w := &writer{}
	w.u2(maxStack)
	w.u2(maxLocals)
	w.u4(uint32(len(code)))
	w.write(code)
	w.u2(0)
	b.writeAttributes(w, attrs)
	return RawAttribute{Name: AttrCode, Data: w.Bytes()}
}

func (b *ClassBuilder) u2Attribute(name string, values ...uint16) RawAttribute {
	w := &writer{}
	for _, v := range values {
		w.u2(v)
	}
	return RawAttribute{Name: name, Data: w.Bytes()}
}

func (b *ClassBuilder) classListAttribute(name string, classes []string) RawAttribute {
	values := []uint16{uint16(len(classes))}
	for _, c := range classes {
		values = append(values, b.editor.AddClass(c))
	}
	return b.u2Attribute(name, values...)
}

func (b *ClassBuilder) Signature(signature string) RawAttribute {
	return b.u2Attribute(AttrSignature, b.editor.AddUtf8(signature))
}

func (b *ClassBuilder) SourceFile(name string) RawAttribute {
	return b.u2Attribute(AttrSourceFile, b.editor.AddUtf8(name))
}

func (b *ClassBuilder) ConstantValue(index uint16) RawAttribute {
	return b.u2Attribute(AttrConstantValue, index)
}

func (b *ClassBuilder) Exceptions(classes ...string) RawAttribute {
	return b.classListAttribute(AttrExceptions, classes)
}

func (b *ClassBuilder) NestHost(host string) RawAttribute {
	return b.u2Attribute(AttrNestHost, b.editor.AddClass(host))
}

func (b *ClassBuilder) NestMembers(classes ...string) RawAttribute {
	return b.classListAttribute(AttrNestMembers, classes)
}

func (b *ClassBuilder) PermittedSubclasses(classes ...string) RawAttribute {
	return b.classListAttribute(AttrPermittedSubclasses, classes)
}

// EnclosingMethod names the class and, unless name is empty, the method
// enclosing a local or anonymous class.
func (b *ClassBuilder) EnclosingMethod(class, name, descriptor string) RawAttribute {
	var methodIndex uint16
	if name != "" {
		methodIndex = b.editor.AddNameAndType(name, descriptor)
	}
	return b.u2Attribute(AttrEnclosingMethod, b.editor.AddClass(class), methodIndex)
}

type InnerClassSpec struct {
	Inner, Outer, Name string
	Flags              AccessFlags
}

func (b *ClassBuilder) InnerClasses(entries ...InnerClassSpec) RawAttribute {
	values := []uint16{uint16(len(entries))}
	for _, e := range entries {
		var outer, name uint16
		if e.Outer != "" {
			outer = b.editor.AddClass(e.Outer)
		}
		if e.Name != "" {
			name = b.editor.AddUtf8(e.Name)
		}
		values = append(values, b.editor.AddClass(e.Inner), outer, name, uint16(e.Flags))
	}
	return b.u2Attribute(AttrInnerClasses, values...)
}

func (b *ClassBuilder) BootstrapMethods(methods ...BootstrapMethod) RawAttribute {
	values := []uint16{uint16(len(methods))}
	for _, m := range methods {
		values = append(values, m.BootstrapMethodRef, uint16(len(m.BootstrapArguments)))
		values = append(values, m.BootstrapArguments...)
	}
	return b.u2Attribute(AttrBootstrapMethods, values...)
}

// LocalVariable describes a local variable table entry. For type tables,
// Descriptor holds the generic signature.
type LocalVariable struct {
	StartPC, Length  uint16
	Name, Descriptor string
	Index            uint16
}

func (b *ClassBuilder) localVariables(name string, vars []LocalVariable) RawAttribute {
	values := []uint16{uint16(len(vars))}
	for _, v := range vars {
		values = append(values, v.StartPC, v.Length, b.editor.AddUtf8(v.Name), b.editor.AddUtf8(v.Descriptor), v.Index)
	}
	return b.u2Attribute(name, values...)
}

func (b *ClassBuilder) LocalVariableTable(vars ...LocalVariable) RawAttribute {
	return b.localVariables(AttrLocalVariableTable, vars)
}

func (b *ClassBuilder) LocalVariableTypeTable(vars ...LocalVariable) RawAttribute {
	return b.localVariables(AttrLocalVariableTypeTable, vars)
}

type RecordComponentSpec struct {
	Name, Descriptor string
	Attributes       []RawAttribute
}

func (b *ClassBuilder) Record(components ...RecordComponentSpec) RawAttribute {
	w := &writer{}
	w.u2(uint16(len(components)))
	for _, rc := range components {
		w.u2(b.editor.AddUtf8(rc.Name))
		w.u2(b.editor.AddUtf8(rc.Descriptor))
		b.writeAttributes(w, rc.Attributes)
	}
	return RawAttribute{Name: AttrRecord, Data: w.Bytes()}
}

// AnnotationSpec describes an annotation by its type descriptor, such as
// "Ljava/lang/Deprecated;".
type AnnotationSpec struct {
	Type     string
	Elements []ElementSpec
}

type ElementSpec struct {
	Name  string
	Value ValueSpec
}

// ValueSpec describes an element value. Const holds an int32, int64,
// float32, float64 or string, matching Tag.
type ValueSpec struct {
	Tag        byte
	Const      any
	EnumType   string
	EnumConst  string
	Class      string
	Annotation *AnnotationSpec
	Values     []ValueSpec
}

func StringValue(s string) ValueSpec { return ValueSpec{Tag: ElementString, Const: s} }
func IntValue(i int32) ValueSpec    { return ValueSpec{Tag: ElementInt, Const: i} }
func ClassValue(d string) ValueSpec  { return ValueSpec{Tag: ElementClass, Class: d} }

func EnumValue(typeDescriptor, name string) ValueSpec {
	return ValueSpec{Tag: ElementEnum, EnumType: typeDescriptor, EnumConst: name}
}

func AnnotationValue(a AnnotationSpec) ValueSpec {
	return ValueSpec{Tag: ElementAnnotation, Annotation: &a}
}

func ArrayValue(values ...ValueSpec) ValueSpec {
	return ValueSpec{Tag: ElementArray, Values: values}
}

func StringArrayValue(values ...string) ValueSpec {
	v := ValueSpec{Tag: ElementArray}
	for _, s := range values {
		v.Values = append(v.Values, StringValue(s))
	}
	return v
}

func (b *ClassBuilder) Annotations(visible bool, anns ...AnnotationSpec) RawAttribute {
	name := AttrRuntimeInvisibleAnnotations
	if visible {
		name = AttrRuntimeVisibleAnnotations
	}
	w := &writer{}
	w.u2(uint16(len(anns)))
	for i := range anns {
		b.writeAnnotation(w, &anns[i])
	}
	return RawAttribute{Name: name, Data: w.Bytes()}
}

func (b *ClassBuilder) ParameterAnnotations(visible bool, params ...[]AnnotationSpec) RawAttribute {
	name := AttrRuntimeInvisibleParameterAnnotations
	if visible {
		name = AttrRuntimeVisibleParameterAnnotations
	}
	w := &writer{}
	w.u1(uint8(len(params)))
	for _, anns := range params {
		w.u2(uint16(len(anns)))
		for i := range anns {
			b.writeAnnotation(w, &anns[i])
		}
	}
	return RawAttribute{Name: name, Data: w.Bytes()}
}

func (b *ClassBuilder) AnnotationDefault(v ValueSpec) RawAttribute {
	w := &writer{}
	b.writeElementValue(w, v)
	return RawAttribute{Name: AttrAnnotationDefault, Data: w.Bytes()}
}

func (b *ClassBuilder) writeAnnotation(w *writer, a *AnnotationSpec) {
	w.u2(b.editor.AddUtf8(a.Type))
	w.u2(uint16(len(a.Elements)))
	for _, e := range a.Elements {
		w.u2(b.editor.AddUtf8(e.Name))
		b.writeElementValue(w, e.Value)
	}
}

func (b *ClassBuilder) writeElementValue(w *writer, v ValueSpec) {
	w.u1(v.Tag)
	switch v.Tag {
	case ElementString:
		s, _ := v.Const.(string)
		w.u2(b.editor.AddUtf8(s))
	case ElementByte, ElementChar, ElementInt, ElementShort, ElementBoolean:
		i, _ := v.Const.(int32)
		w.u2(b.editor.AddInteger(i))
	case ElementLong:
		j, _ := v.Const.(int64)
		w.u2(b.editor.AddLong(j))
	case ElementFloat:
		f, _ := v.Const.(float32)
		w.u2(b.editor.AddFloat(f))
	case ElementDouble:
		d, _ := v.Const.(float64)
		w.u2(b.editor.AddDouble(d))
	case ElementEnum:
		w.u2(b.editor.AddUtf8(v.EnumType))
		w.u2(b.editor.AddUtf8(v.EnumConst))
	case ElementClass:
		w.u2(b.editor.AddUtf8(v.Class))
	case ElementAnnotation:
		b.writeAnnotation(w, v.Annotation)
	case ElementArray:
		w.u2(uint16(len(v.Values)))
		for _, e := range v.Values {
			b.writeElementValue(w, e)
		}
	}
}
