package classfile

import (
	"fmt"
	"math"
)

// ConstantPoolEditor appends entries to a constant pool, reusing an existing
// entry whenever an equal one is already present.
type ConstantPoolEditor struct {
	pool  *ConstantPool
	index map[string]uint16
}

func NewConstantPoolEditor(pool *ConstantPool) *ConstantPoolEditor {
	e := &ConstantPoolEditor{pool: pool, index: make(map[string]uint16)}
	for i, entry := range *pool {
		if entry == nil {
			continue
		}
		if key := entryKey(entry); key != "" {
			if _, ok := e.index[key]; !ok {
				e.index[key] = uint16(i + 1)
			}
		}
	}
	return e
}

// Pool returns the edited constant pool.
func (e *ConstantPoolEditor) Pool() ConstantPool {
	return *e.pool
}

func entryKey(entry ConstantPoolEntry) string {
	switch c := entry.(type) {
	case *ConstantUtf8Info:
		return "u:" + c.Value
	case *ConstantIntegerInfo:
		return fmt.Sprintf("i:%d", c.Value)
	case *ConstantFloatInfo:
		return fmt.Sprintf("f:%x", math.Float32bits(c.Value))
	case *ConstantLongInfo:
		return fmt.Sprintf("j:%d", c.Value)
	case *ConstantDoubleInfo:
		return fmt.Sprintf("d:%x", math.Float64bits(c.Value))
	case *ConstantClassInfo:
		return fmt.Sprintf("c:%d", c.NameIndex)
	case *ConstantStringInfo:
		return fmt.Sprintf("s:%d", c.StringIndex)
	case *ConstantFieldrefInfo:
		return fmt.Sprintf("fr:%d:%d", c.ClassIndex, c.NameAndTypeIndex)
	case *ConstantMethodrefInfo:
		return fmt.Sprintf("mr:%d:%d", c.ClassIndex, c.NameAndTypeIndex)
	case *ConstantInterfaceMethodrefInfo:
		return fmt.Sprintf("ir:%d:%d", c.ClassIndex, c.NameAndTypeIndex)
	case *ConstantNameAndTypeInfo:
		return fmt.Sprintf("nt:%d:%d", c.NameIndex, c.DescriptorIndex)
	case *ConstantMethodHandleInfo:
		return fmt.Sprintf("mh:%d:%d", c.ReferenceKind, c.ReferenceIndex)
	case *ConstantMethodTypeInfo:
		return fmt.Sprintf("mt:%d", c.DescriptorIndex)
	case *ConstantDynamicInfo:
		return fmt.Sprintf("dy:%d:%d", c.BootstrapMethodAttrIndex, c.NameAndTypeIndex)
	case *ConstantInvokeDynamicInfo:
		return fmt.Sprintf("id:%d:%d", c.BootstrapMethodAttrIndex, c.NameAndTypeIndex)
	case *ConstantModuleInfo:
		return fmt.Sprintf("mo:%d", c.NameIndex)
	case *ConstantPackageInfo:
		return fmt.Sprintf("pa:%d", c.NameIndex)
	}
	// Primitive arrays are never shared.
	return ""
}

func (e *ConstantPoolEditor) add(entry ConstantPoolEntry) uint16 {
	key := entryKey(entry)
	if key != "" {
		if idx, ok := e.index[key]; ok {
			return idx
		}
	}

	*e.pool = append(*e.pool, entry)
	idx := uint16(len(*e.pool))
	switch entry.(type) {
	case *ConstantLongInfo, *ConstantDoubleInfo:
		*e.pool = append(*e.pool, nil)
	}
	if key != "" {
		e.index[key] = idx
	}
	return idx
}

func (e *ConstantPoolEditor) AddUtf8(value string) uint16 {
	return e.add(&ConstantUtf8Info{Value: value})
}

func (e *ConstantPoolEditor) AddInteger(value int32) uint16 {
	return e.add(&ConstantIntegerInfo{Value: value})
}

func (e *ConstantPoolEditor) AddFloat(value float32) uint16 {
	return e.add(&ConstantFloatInfo{Value: value})
}

func (e *ConstantPoolEditor) AddLong(value int64) uint16 {
	return e.add(&ConstantLongInfo{Value: value})
}

func (e *ConstantPoolEditor) AddDouble(value float64) uint16 {
	return e.add(&ConstantDoubleInfo{Value: value})
}

func (e *ConstantPoolEditor) AddString(value string) uint16 {
	return e.add(&ConstantStringInfo{StringIndex: e.AddUtf8(value)})
}

func (e *ConstantPoolEditor) AddClass(name string) uint16 {
	return e.add(&ConstantClassInfo{NameIndex: e.AddUtf8(name)})
}

func (e *ConstantPoolEditor) AddNameAndType(name, descriptor string) uint16 {
	return e.add(&ConstantNameAndTypeInfo{
		NameIndex:       e.AddUtf8(name),
		DescriptorIndex: e.AddUtf8(descriptor),
	})
}

func (e *ConstantPoolEditor) AddFieldref(className, name, descriptor string) uint16 {
	return e.add(&ConstantFieldrefInfo{
		ClassIndex:       e.AddClass(className),
		NameAndTypeIndex: e.AddNameAndType(name, descriptor),
	})
}

func (e *ConstantPoolEditor) AddMethodref(className, name, descriptor string) uint16 {
	return e.add(&ConstantMethodrefInfo{
		ClassIndex:       e.AddClass(className),
		NameAndTypeIndex: e.AddNameAndType(name, descriptor),
	})
}

func (e *ConstantPoolEditor) AddInterfaceMethodref(className, name, descriptor string) uint16 {
	return e.add(&ConstantInterfaceMethodrefInfo{
		ClassIndex:       e.AddClass(className),
		NameAndTypeIndex: e.AddNameAndType(name, descriptor),
	})
}

func (e *ConstantPoolEditor) AddMethodHandle(kind MethodHandleKind, referenceIndex uint16) uint16 {
	return e.add(&ConstantMethodHandleInfo{ReferenceKind: kind, ReferenceIndex: referenceIndex})
}

func (e *ConstantPoolEditor) AddMethodType(descriptor string) uint16 {
	return e.add(&ConstantMethodTypeInfo{DescriptorIndex: e.AddUtf8(descriptor)})
}

func (e *ConstantPoolEditor) AddDynamic(bootstrapIndex uint16, name, descriptor string) uint16 {
	return e.add(&ConstantDynamicInfo{
		BootstrapMethodAttrIndex: bootstrapIndex,
		NameAndTypeIndex:         e.AddNameAndType(name, descriptor),
	})
}

func (e *ConstantPoolEditor) AddInvokeDynamic(bootstrapIndex uint16, name, descriptor string) uint16 {
	return e.add(&ConstantInvokeDynamicInfo{
		BootstrapMethodAttrIndex: bootstrapIndex,
		NameAndTypeIndex:         e.AddNameAndType(name, descriptor),
	})
}

func (e *ConstantPoolEditor) AddModule(name string) uint16 {
	return e.add(&ConstantModuleInfo{NameIndex: e.AddUtf8(name)})
}

func (e *ConstantPoolEditor) AddPackage(name string) uint16 {
	return e.add(&ConstantPackageInfo{NameIndex: e.AddUtf8(name)})
}

// AddPrimitiveArray adds an in-memory array constant. Such entries have no
// class file encoding.
func (e *ConstantPoolEditor) AddPrimitiveArray(elementType byte, values any) uint16 {
	return e.add(&ConstantPrimitiveArrayInfo{ElementType: elementType, Values: values})
}
