// Package descriptor parses and converts JVM type descriptors, method
// descriptors and generic signatures, and renders them in Java source form.
package descriptor

import (
	"strings"

	cf "github.com/dhamidi/classref/classfile"
)

var primitiveExternal = map[byte]string{
	'V': "void",
	'Z': "boolean",
	'B': "byte",
	'C': "char",
	'S': "short",
	'I': "int",
	'J': "long",
	'F': "float",
	'D': "double",
}

var primitiveInternal = map[string]byte{
	"void":    'V',
	"boolean": 'Z',
	"byte":    'B',
	"char":    'C',
	"short":   'S',
	"int":     'I',
	"long":    'J',
	"float":   'F',
	"double":  'D',
}

func ExternalClassName(internal string) string {
	return strings.ReplaceAll(internal, "/", ".")
}

func InternalClassName(external string) string {
	return strings.ReplaceAll(external, ".", "/")
}

// ExternalShortClassName strips the package from an external class name.
func ExternalShortClassName(external string) string {
	return external[strings.LastIndexByte(external, '.')+1:]
}

// InternalPackageName returns the package of an internal class name, or ""
// for the default package.
func InternalPackageName(internal string) string {
	i := strings.LastIndexByte(internal, '/')
	if i < 0 {
		return ""
	}
	return internal[:i]
}

func IsInternalPrimitiveType(t string) bool {
	if len(t) != 1 {
		return false
	}
	_, ok := primitiveExternal[t[0]]
	return ok
}

func IsInternalArrayType(t string) bool {
	return len(t) > 1 && t[0] == '['
}

// IsInternalClassType reports whether t is an object type, including
// arrays of objects.
func IsInternalClassType(t string) bool {
	i := strings.LastIndexByte(t, '[') + 1
	return len(t) > i+1 && t[i] == 'L' && t[len(t)-1] == ';'
}

func InternalArrayTypeDimensionCount(t string) int {
	n := 0
	for n < len(t) && t[n] == '[' {
		n++
	}
	return n
}

// InternalClassNameFromClassType strips the L and ; of a class type.
func InternalClassNameFromClassType(t string) string {
	if len(t) >= 2 && t[0] == 'L' && t[len(t)-1] == ';' {
		return t[1 : len(t)-1]
	}
	return t
}

// InternalClassNameFromType returns the class name of a class type or an
// array of class types, and "" for primitives and arrays of primitives.
func InternalClassNameFromType(t string) string {
	t = t[InternalArrayTypeDimensionCount(t):]
	if !IsInternalClassType(t) {
		return ""
	}
	name := InternalClassNameFromClassType(t)
	if i := strings.IndexByte(name, '<'); i >= 0 {
		name = name[:i]
	}
	return name
}

// ElementClassName normalizes the name stored in a class constant. Array
// names such as [Ljava/lang/Object; yield their element class, primitive
// arrays yield "", and plain class names are returned unchanged.
func ElementClassName(name string) string {
	if !IsInternalArrayType(name) {
		return name
	}
	return InternalClassNameFromType(name)
}

// InternalTypeSize returns the number of local variable slots a value of
// type t occupies.
func InternalTypeSize(t string) int {
	if len(t) == 1 {
		switch t[0] {
		case 'J', 'D':
			return 2
		case 'V':
			return 0
		}
	}
	return 1
}

func InternalMethodReturnType(desc string) string {
	return desc[strings.IndexByte(desc, ')')+1:]
}

func InternalMethodParameterCount(desc string) int {
	return NewInternalTypeEnumeration(desc).TypeCount()
}

// InternalMethodParameterSize returns the number of variable slots taken by
// the parameters, including this for instance methods.
func InternalMethodParameterSize(desc string, static bool) int {
	size := 0
	if !static {
		size = 1
	}
	types := NewInternalTypeEnumeration(desc)
	for types.HasMoreTypes() {
		size += InternalTypeSize(types.NextType())
	}
	return size
}

// InternalMethodVariableIndex returns the variable slot of the parameter
// at parameterIndex.
func InternalMethodVariableIndex(desc string, static bool, parameterIndex int) int {
	index := 0
	if !static {
		index = 1
	}
	types := NewInternalTypeEnumeration(desc)
	for i := 0; i < parameterIndex && types.HasMoreTypes(); i++ {
		index += InternalTypeSize(types.NextType())
	}
	return index
}

// ExternalType converts an internal type such as [Ljava/lang/String; into
// java.lang.String[].
func ExternalType(t string) string {
	dims := InternalArrayTypeDimensionCount(t)
	t = t[dims:]

	var base string
	if len(t) == 1 {
		if p, ok := primitiveExternal[t[0]]; ok {
			base = p
		}
	}
	if base == "" {
		base = ExternalClassName(InternalClassNameFromClassType(t))
	}
	return base + strings.Repeat("[]", dims)
}

// InternalType converts an external type such as java.lang.String[] into
// [Ljava/lang/String;.
func InternalType(external string) string {
	external = strings.TrimSpace(external)
	dims := 0
	for strings.HasSuffix(external, "[]") {
		external = strings.TrimSpace(external[:len(external)-2])
		dims++
	}
	prefix := strings.Repeat("[", dims)
	if p, ok := primitiveInternal[external]; ok {
		return prefix + string(p)
	}
	return prefix + "L" + InternalClassName(external) + ";"
}

// InternalMethodDescriptor builds a method descriptor from external types.
func InternalMethodDescriptor(returnType string, argTypes []string) string {
	var sb strings.Builder
	sb.WriteByte('(')
	for _, a := range argTypes {
		sb.WriteString(InternalType(a))
	}
	sb.WriteByte(')')
	sb.WriteString(InternalType(returnType))
	return sb.String()
}

// ExternalMethodArguments renders the parameter types of a method
// descriptor as a comma-separated external list.
func ExternalMethodArguments(desc string) string {
	var sb strings.Builder
	types := NewInternalTypeEnumeration(desc)
	for types.HasMoreTypes() {
		sb.WriteString(ExternalType(types.NextType()))
		if types.HasMoreTypes() {
			sb.WriteByte(',')
		}
	}
	return sb.String()
}

// ExternalFullFieldDescription renders a field as in Java source, for
// example "public static java.lang.String name".
func ExternalFullFieldDescription(flags cf.AccessFlags, name, desc string) string {
	return ExternalFieldAccessFlags(flags) + ExternalType(desc) + " " + name
}

// ExternalFullMethodDescription renders a method as in Java source.
// Constructors are named after their class, static initializers are shown
// as "static {}".
func ExternalFullMethodDescription(className string, flags cf.AccessFlags, name, desc string) string {
	access := ExternalMethodAccessFlags(flags)
	switch name {
	case cf.MethodNameClinit:
		return access + "static {}"
	case cf.MethodNameInit:
		short := ExternalShortClassName(ExternalClassName(className))
		return access + short + "(" + ExternalMethodArguments(desc) + ")"
	}
	return access + ExternalType(InternalMethodReturnType(desc)) + " " + name + "(" + ExternalMethodArguments(desc) + ")"
}
