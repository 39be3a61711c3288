package classfile

// ConstantPoolEntry is one slot of a class's constant pool. Reference-bearing
// entries keep their symbolic indices and gain direct references once the
// resolve package has linked them; both coexist.
type ConstantPoolEntry interface {
	Tag() ConstantTag
}

type ConstantUtf8Info struct {
	Value string
}

func (c *ConstantUtf8Info) Tag() ConstantTag { return ConstantUtf8 }

type ConstantIntegerInfo struct {
	Value int32
}

func (c *ConstantIntegerInfo) Tag() ConstantTag { return ConstantInteger }

type ConstantFloatInfo struct {
	Value float32
}

func (c *ConstantFloatInfo) Tag() ConstantTag { return ConstantFloat }

type ConstantLongInfo struct {
	Value int64
}

func (c *ConstantLongInfo) Tag() ConstantTag { return ConstantLong }

type ConstantDoubleInfo struct {
	Value float64
}

func (c *ConstantDoubleInfo) Tag() ConstantTag { return ConstantDouble }

type ConstantClassInfo struct {
	NameIndex uint16

	ReferencedClass *Class
	// JavaLangClassClass is java/lang/Class, used to model reflection on
	// class literals.
	JavaLangClassClass *Class
}

func (c *ConstantClassInfo) Tag() ConstantTag { return ConstantClass }

type ConstantStringInfo struct {
	StringIndex uint16

	JavaLangStringClass *Class
	// ReferencedClass is set when the string's contents name a class, as
	// with reflection calls like Class.forName("com.example.Foo").
	ReferencedClass *Class
}

func (c *ConstantStringInfo) Tag() ConstantTag { return ConstantString }

type ConstantFieldrefInfo struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16

	// ReferencedClass is the class the field was found in, which may be a
	// superclass of the nominal owner.
	ReferencedClass *Class
	ReferencedField *Field
}

func (c *ConstantFieldrefInfo) Tag() ConstantTag { return ConstantFieldref }

type ConstantMethodrefInfo struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16

	ReferencedClass  *Class
	ReferencedMethod *Method
}

func (c *ConstantMethodrefInfo) Tag() ConstantTag { return ConstantMethodref }

type ConstantInterfaceMethodrefInfo struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16

	ReferencedClass  *Class
	ReferencedMethod *Method
}

func (c *ConstantInterfaceMethodrefInfo) Tag() ConstantTag { return ConstantInterfaceMethodref }

type ConstantNameAndTypeInfo struct {
	NameIndex       uint16
	DescriptorIndex uint16

	// ReferencedClasses has one slot per class named in the descriptor.
	ReferencedClasses []*Class
}

func (c *ConstantNameAndTypeInfo) Tag() ConstantTag { return ConstantNameAndType }

type ConstantMethodHandleInfo struct {
	ReferenceKind  MethodHandleKind
	ReferenceIndex uint16

	JavaLangInvokeMethodHandleClass *Class
}

func (c *ConstantMethodHandleInfo) Tag() ConstantTag { return ConstantMethodHandle }

type ConstantMethodTypeInfo struct {
	DescriptorIndex uint16

	ReferencedClasses             []*Class
	JavaLangInvokeMethodTypeClass *Class
}

func (c *ConstantMethodTypeInfo) Tag() ConstantTag { return ConstantMethodType }

type ConstantDynamicInfo struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         uint16

	ReferencedClasses []*Class
}

func (c *ConstantDynamicInfo) Tag() ConstantTag { return ConstantDynamic }

type ConstantInvokeDynamicInfo struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         uint16

	ReferencedClasses []*Class
}

func (c *ConstantInvokeDynamicInfo) Tag() ConstantTag { return ConstantInvokeDynamic }

type ConstantModuleInfo struct {
	NameIndex uint16
}

func (c *ConstantModuleInfo) Tag() ConstantTag { return ConstantModule }

type ConstantPackageInfo struct {
	NameIndex uint16
}

func (c *ConstantPackageInfo) Tag() ConstantTag { return ConstantPackage }

// ConstantPrimitiveArrayInfo holds a primitive array literal. Values is one
// of []bool, []int8, []uint16, []int16, []int32, []int64, []float32 or
// []float64, matching ElementType ('Z', 'B', 'C', 'S', 'I', 'J', 'F', 'D').
type ConstantPrimitiveArrayInfo struct {
	ElementType byte
	Values      any
}

func (c *ConstantPrimitiveArrayInfo) Tag() ConstantTag { return ConstantPrimitiveArray }

// Len returns the number of array elements.
func (c *ConstantPrimitiveArrayInfo) Len() int {
	switch v := c.Values.(type) {
	case []bool:
		return len(v)
	case []int8:
		return len(v)
	case []uint16:
		return len(v)
	case []int16:
		return len(v)
	case []int32:
		return len(v)
	case []int64:
		return len(v)
	case []float32:
		return len(v)
	case []float64:
		return len(v)
	}
	return 0
}

// ConstantPool is 1-indexed: index i lives at slot i-1. Long and double
// entries are followed by a nil slot.
type ConstantPool []ConstantPoolEntry

// Entry returns the entry at a 1-based index, or nil when out of range.
func (cp ConstantPool) Entry(index uint16) ConstantPoolEntry {
	if index == 0 || int(index) > len(cp) {
		return nil
	}
	return cp[index-1]
}

func entryAs[T ConstantPoolEntry](cp ConstantPool, index uint16) (T, bool) {
	entry, ok := cp.Entry(index).(T)
	return entry, ok
}

func (cp ConstantPool) GetUtf8(index uint16) string {
	if entry, ok := entryAs[*ConstantUtf8Info](cp, index); ok {
		return entry.Value
	}
	return ""
}

// SetUtf8 replaces the string stored at index, if it is a Utf8 entry.
func (cp ConstantPool) SetUtf8(index uint16, value string) {
	if entry, ok := entryAs[*ConstantUtf8Info](cp, index); ok {
		entry.Value = value
	}
}

func (cp ConstantPool) GetClassName(index uint16) string {
	if entry, ok := entryAs[*ConstantClassInfo](cp, index); ok {
		return cp.GetUtf8(entry.NameIndex)
	}
	return ""
}

func (cp ConstantPool) GetClass(index uint16) *ConstantClassInfo {
	entry, _ := entryAs[*ConstantClassInfo](cp, index)
	return entry
}

func (cp ConstantPool) GetNameAndType(index uint16) (name, descriptor string) {
	if entry, ok := entryAs[*ConstantNameAndTypeInfo](cp, index); ok {
		return cp.GetUtf8(entry.NameIndex), cp.GetUtf8(entry.DescriptorIndex)
	}
	return "", ""
}

func (cp ConstantPool) GetString(index uint16) string {
	if entry, ok := entryAs[*ConstantStringInfo](cp, index); ok {
		return cp.GetUtf8(entry.StringIndex)
	}
	return ""
}

func (cp ConstantPool) GetInteger(index uint16) (int32, bool) {
	if entry, ok := entryAs[*ConstantIntegerInfo](cp, index); ok {
		return entry.Value, true
	}
	return 0, false
}

func (cp ConstantPool) GetLong(index uint16) (int64, bool) {
	if entry, ok := entryAs[*ConstantLongInfo](cp, index); ok {
		return entry.Value, true
	}
	return 0, false
}

// GetRef returns the owner class name, member name and descriptor of a
// Fieldref, Methodref or InterfaceMethodref entry.
func (cp ConstantPool) GetRef(index uint16) (className, name, descriptor string) {
	var classIndex, natIndex uint16
	switch entry := cp.Entry(index).(type) {
	case *ConstantFieldrefInfo:
		classIndex, natIndex = entry.ClassIndex, entry.NameAndTypeIndex
	case *ConstantMethodrefInfo:
		classIndex, natIndex = entry.ClassIndex, entry.NameAndTypeIndex
	case *ConstantInterfaceMethodrefInfo:
		classIndex, natIndex = entry.ClassIndex, entry.NameAndTypeIndex
	default:
		return "", "", ""
	}
	className = cp.GetClassName(classIndex)
	name, descriptor = cp.GetNameAndType(natIndex)
	return className, name, descriptor
}

func (cp ConstantPool) GetMethodType(index uint16) string {
	if entry, ok := entryAs[*ConstantMethodTypeInfo](cp, index); ok {
		return cp.GetUtf8(entry.DescriptorIndex)
	}
	return ""
}
