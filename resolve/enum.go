package resolve

import (
	"strings"

	"github.com/dhamidi/classref/bytecode"
	cf "github.com/dhamidi/classref/classfile"
)

// FindEnumField returns the field of enum holding the constant called
// name. The static initializer is searched first, since the string passed
// to the enum constructor keeps the constant's original name even when the
// field itself has been renamed. Otherwise the field is looked up by name.
func (r *Resolver) FindEnumField(enum *cf.Class, name string) *cf.Field {
	desc := "L" + enum.Name() + ";"
	if f := enumFieldFromInitializer(enum, name, desc); f != nil {
		return f
	}
	f, _ := r.finder.FindField(nil, enum, name, desc)
	return f
}

// enumFieldFromInitializer matches the shape compilers emit for each enum
// constant in <clinit>:
//
//	new E (or a nested class of E, for constants with a body)
//	dup
//	ldc "NAME"
//	... remaining constructor arguments ...
//	invokespecial E.<init>
//	putstatic E.field : LE;
//
// Only the first string loaded after the new counts, so constructor
// arguments that happen to equal another constant's name do not match.
func enumFieldFromInitializer(enum *cf.Class, name, desc string) *cf.Field {
	clinit := enum.FindMethod(cf.MethodNameClinit, cf.MethodTypeClinit)
	if clinit == nil {
		return nil
	}
	code := clinit.GetCodeAttribute()
	if code == nil {
		return nil
	}

	cp := enum.ConstantPool
	var (
		armed   bool
		matched bool
		found   *cf.Field
	)
	err := bytecode.Walk(code.Code, func(in bytecode.Instruction) bool {
		switch in.Opcode {
		case bytecode.New:
			index, _ := in.ConstantIndex()
			armed = isEnumOrNested(enum, cp.GetClassName(index))
			matched = false
		case bytecode.Ldc, bytecode.LdcW:
			index, _ := in.ConstantIndex()
			s, ok := cp.Entry(index).(*cf.ConstantStringInfo)
			if !armed || !ok {
				return true
			}
			matched = cp.GetUtf8(s.StringIndex) == name
			armed = false
		case bytecode.Putstatic:
			index, _ := in.ConstantIndex()
			wasMatched := matched
			armed, matched = false, false
			ref, ok := cp.Entry(index).(*cf.ConstantFieldrefInfo)
			if !wasMatched || !ok || cp.GetClassName(ref.ClassIndex) != enum.Name() {
				return true
			}
			fieldName, fieldDesc := cp.GetNameAndType(ref.NameAndTypeIndex)
			if fieldDesc != desc {
				return true
			}
			found = ref.ReferencedField
			if found == nil {
				found = enum.FindField(fieldName, fieldDesc)
			}
			return false
		}
		return true
	})
	if err != nil {
		log.Debugf("%s: %s", enum.Name(), err)
		return nil
	}
	return found
}

func isEnumOrNested(enum *cf.Class, className string) bool {
	return className == enum.Name() || strings.HasPrefix(className, enum.Name()+"$")
}
