package classfile

type AttributeInfo struct {
	NameIndex uint16
	Info      []byte
	// Parsed holds one of the *...Attribute types below for the attributes
	// the reader understands, and nil for the rest.
	Parsed any
}

func findAttribute(cp ConstantPool, attrs []AttributeInfo, name string) *AttributeInfo {
	for i := range attrs {
		if cp.GetUtf8(attrs[i].NameIndex) == name {
			return &attrs[i]
		}
	}
	return nil
}

type CodeAttribute struct {
	MaxStack       uint16
	MaxLocals      uint16
	Code           []byte
	ExceptionTable []ExceptionTableEntry
	Attributes     []AttributeInfo
}

type ExceptionTableEntry struct {
	StartPC   uint16
	EndPC     uint16
	HandlerPC uint16
	CatchType uint16
}

type SourceFileAttribute struct {
	SourceFileIndex uint16
}

type ConstantValueAttribute struct {
	ConstantValueIndex uint16
}

type ExceptionsAttribute struct {
	ExceptionIndexTable []uint16
}

type InnerClassesAttribute struct {
	Classes []InnerClassEntry
}

type InnerClassEntry struct {
	InnerClassInfoIndex   uint16
	OuterClassInfoIndex   uint16
	InnerNameIndex        uint16
	InnerClassAccessFlags AccessFlags
}

type SignatureAttribute struct {
	SignatureIndex uint16

	ReferencedClasses []*Class
}

func (a *SignatureAttribute) Signature(cp ConstantPool) string {
	return cp.GetUtf8(a.SignatureIndex)
}

type BootstrapMethodsAttribute struct {
	BootstrapMethods []BootstrapMethod
}

type BootstrapMethod struct {
	BootstrapMethodRef uint16
	BootstrapArguments []uint16
}

type EnclosingMethodAttribute struct {
	ClassIndex  uint16
	MethodIndex uint16

	ReferencedClass  *Class
	ReferencedMethod *Method
}

type LocalVariableTableAttribute struct {
	LocalVariableTable []LocalVariableEntry
}

type LocalVariableEntry struct {
	StartPC         uint16
	Length          uint16
	NameIndex       uint16
	DescriptorIndex uint16
	Index           uint16

	ReferencedClass *Class
}

type LocalVariableTypeTableAttribute struct {
	LocalVariableTypeTable []LocalVariableTypeEntry
}

type LocalVariableTypeEntry struct {
	StartPC        uint16
	Length         uint16
	NameIndex      uint16
	SignatureIndex uint16
	Index          uint16

	ReferencedClasses []*Class
}

type NestHostAttribute struct {
	HostClassIndex uint16
}

type NestMembersAttribute struct {
	Classes []uint16
}

type PermittedSubclassesAttribute struct {
	Classes []uint16
}

type RecordAttribute struct {
	Components []*RecordComponent
}

type RecordComponent struct {
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []AttributeInfo

	ReferencedField *Field
}

// AnnotationsAttribute covers both RuntimeVisibleAnnotations and
// RuntimeInvisibleAnnotations.
type AnnotationsAttribute struct {
	Visible     bool
	Annotations []*Annotation
}

type ParameterAnnotationsAttribute struct {
	Visible              bool
	ParameterAnnotations [][]*Annotation
}

type TypeAnnotationsAttribute struct {
	Visible     bool
	Annotations []*TypeAnnotation
}

type AnnotationDefaultAttribute struct {
	DefaultValue *ElementValue
}

type Annotation struct {
	TypeIndex     uint16
	ElementValues []*ElementValue

	// ReferencedClasses holds the annotation type, and any classes named in
	// it, once resolved.
	ReferencedClasses []*Class
}

func (a *Annotation) Type(cp ConstantPool) string {
	return cp.GetUtf8(a.TypeIndex)
}

// ElementValue finds the element with the given name.
func (a *Annotation) ElementValue(cp ConstantPool, name string) *ElementValue {
	for _, ev := range a.ElementValues {
		if ev.Name(cp) == name {
			return ev
		}
	}
	return nil
}

type TypeAnnotation struct {
	Annotation
	TargetType uint8
	TargetInfo []byte
	TargetPath []TypePathEntry
}

type TypePathEntry struct {
	TypePathKind      uint8
	TypeArgumentIndex uint8
}

// Element value tags.
const (
	ElementByte       byte = 'B'
	ElementChar       byte = 'C'
	ElementDouble     byte = 'D'
	ElementFloat      byte = 'F'
	ElementInt        byte = 'I'
	ElementLong       byte = 'J'
	ElementShort      byte = 'S'
	ElementBoolean    byte = 'Z'
	ElementString     byte = 's'
	ElementEnum       byte = 'e'
	ElementClass      byte = 'c'
	ElementAnnotation byte = '@'
	ElementArray      byte = '['
)

// ElementValue is a tagged union over the annotation element value kinds.
// Which fields are meaningful depends on Tag.
type ElementValue struct {
	// NameIndex is zero for array elements and annotation defaults.
	NameIndex uint16
	Tag       byte

	ConstValueIndex uint16          // constants and strings
	TypeNameIndex   uint16          // enum constants
	ConstNameIndex  uint16          // enum constants
	ClassInfoIndex  uint16          // class literals
	AnnotationValue *Annotation     // nested annotations
	Values          []*ElementValue // arrays

	// ReferencedClass is the annotation type declaring this element, and
	// ReferencedMethod the element's method in it.
	ReferencedClass  *Class
	ReferencedMethod *Method
	// ReferencedClasses holds the classes named by enum types and class
	// literals. ReferencedField is the enum constant's field.
	ReferencedClasses []*Class
	ReferencedField   *Field
}

func (ev *ElementValue) Name(cp ConstantPool) string {
	if ev.NameIndex == 0 {
		return ""
	}
	return cp.GetUtf8(ev.NameIndex)
}

func (ev *ElementValue) IsConstant() bool {
	switch ev.Tag {
	case ElementByte, ElementChar, ElementDouble, ElementFloat, ElementInt,
		ElementLong, ElementShort, ElementBoolean, ElementString:
		return true
	}
	return false
}

func (a *AttributeInfo) AsCode() *CodeAttribute {
	code, _ := a.Parsed.(*CodeAttribute)
	return code
}

func (a *AttributeInfo) AsSignature() *SignatureAttribute {
	sig, _ := a.Parsed.(*SignatureAttribute)
	return sig
}

func (a *AttributeInfo) AsEnclosingMethod() *EnclosingMethodAttribute {
	em, _ := a.Parsed.(*EnclosingMethodAttribute)
	return em
}

func (a *AttributeInfo) AsAnnotations() *AnnotationsAttribute {
	anns, _ := a.Parsed.(*AnnotationsAttribute)
	return anns
}

func (a *AttributeInfo) AsSourceFile() *SourceFileAttribute {
	sf, _ := a.Parsed.(*SourceFileAttribute)
	return sf
}

func (a *AttributeInfo) AsInnerClasses() *InnerClassesAttribute {
	ic, _ := a.Parsed.(*InnerClassesAttribute)
	return ic
}

func (a *AttributeInfo) AsRecord() *RecordAttribute {
	r, _ := a.Parsed.(*RecordAttribute)
	return r
}
