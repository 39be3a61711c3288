package classfile

// Member is implemented by *Field and *Method.
type Member interface {
	Name() string
	Descriptor() string
	Flags() AccessFlags
	DeclaringClass() *Class
}

type Field struct {
	AccessFlags     AccessFlags
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []AttributeInfo
	Owner           *Class

	// ReferencedClass is the class named by the descriptor, if any.
	ReferencedClass *Class
}

func (f *Field) Name() string {
	return f.Owner.ConstantPool.GetUtf8(f.NameIndex)
}

func (f *Field) Descriptor() string {
	return f.Owner.ConstantPool.GetUtf8(f.DescriptorIndex)
}

func (f *Field) Flags() AccessFlags     { return f.AccessFlags }
func (f *Field) DeclaringClass() *Class { return f.Owner }

func (f *Field) GetAttribute(name string) *AttributeInfo {
	return findAttribute(f.Owner.ConstantPool, f.Attributes, name)
}

func (f *Field) IsPublic() bool    { return f.AccessFlags.IsPublic() }
func (f *Field) IsPrivate() bool   { return f.AccessFlags.IsPrivate() }
func (f *Field) IsProtected() bool { return f.AccessFlags.IsProtected() }
func (f *Field) IsStatic() bool    { return f.AccessFlags.IsStatic() }
func (f *Field) IsFinal() bool     { return f.AccessFlags.IsFinal() }
func (f *Field) IsSynthetic() bool { return f.AccessFlags.IsSynthetic() }
func (f *Field) IsEnum() bool      { return f.AccessFlags.IsEnum() }

type Method struct {
	AccessFlags     AccessFlags
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []AttributeInfo
	Owner           *Class

	// ReferencedClasses has one slot per class named in the descriptor, in
	// descriptor order. Slots stay nil for classes that cannot be found.
	ReferencedClasses []*Class

	// Link points to the next method in this method's override chain, as
	// built by the method linker. nil marks the end of the chain.
	Link *Method
}

func (m *Method) Name() string {
	return m.Owner.ConstantPool.GetUtf8(m.NameIndex)
}

func (m *Method) Descriptor() string {
	return m.Owner.ConstantPool.GetUtf8(m.DescriptorIndex)
}

func (m *Method) Flags() AccessFlags     { return m.AccessFlags }
func (m *Method) DeclaringClass() *Class { return m.Owner }

func (m *Method) GetAttribute(name string) *AttributeInfo {
	return findAttribute(m.Owner.ConstantPool, m.Attributes, name)
}

func (m *Method) GetCodeAttribute() *CodeAttribute {
	attr := m.GetAttribute(AttrCode)
	if attr == nil {
		return nil
	}
	return attr.AsCode()
}

func (m *Method) IsPublic() bool    { return m.AccessFlags.IsPublic() }
func (m *Method) IsPrivate() bool   { return m.AccessFlags.IsPrivate() }
func (m *Method) IsProtected() bool { return m.AccessFlags.IsProtected() }
func (m *Method) IsStatic() bool    { return m.AccessFlags.IsStatic() }
func (m *Method) IsFinal() bool     { return m.AccessFlags.IsFinal() }
func (m *Method) IsBridge() bool    { return m.AccessFlags.IsBridge() }
func (m *Method) IsAbstract() bool  { return m.AccessFlags.IsAbstract() }
func (m *Method) IsSynthetic() bool { return m.AccessFlags.IsSynthetic() }

func (m *Method) IsConstructor() bool {
	return m.Name() == MethodNameInit
}

func (m *Method) IsStaticInitializer() bool {
	return m.Name() == MethodNameClinit
}

// IsInitializer reports whether m is a constructor or static initializer.
func (m *Method) IsInitializer() bool {
	name := m.Name()
	return name == MethodNameInit || name == MethodNameClinit
}
