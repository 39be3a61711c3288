package descriptor

import "strings"

// InternalTypeEnumeration walks the types of an internal descriptor or
// signature: the parameter types of a method descriptor, the single type of
// a field descriptor, or the superclass and interfaces of a class signature.
// Formal type parameters at the head of a signature are skipped as a unit.
type InternalTypeEnumeration struct {
	desc                      string
	formalTypeParametersIndex int
	openIndex                 int
	closeIndex                int
	index                     int
}

func NewInternalTypeEnumeration(desc string) *InternalTypeEnumeration {
	e := &InternalTypeEnumeration{desc: desc}

	if len(desc) > 0 && desc[0] == '<' {
		e.index = 1
		e.skipGeneric()
	}
	e.formalTypeParametersIndex = e.index

	e.openIndex = strings.IndexByte(desc[e.index:], '(')
	if e.openIndex >= 0 {
		e.openIndex += e.index
		e.closeIndex = strings.IndexByte(desc[e.openIndex:], ')')
		if e.closeIndex >= 0 {
			e.closeIndex += e.openIndex
		}
		e.index = e.openIndex + 1
	} else {
		e.closeIndex = len(desc)
	}
	return e
}

// FormalTypeParameters returns the contents of the leading <...> block, or
// "" if there is none.
func (e *InternalTypeEnumeration) FormalTypeParameters() string {
	if e.formalTypeParametersIndex == 0 {
		return ""
	}
	return e.desc[1 : e.formalTypeParametersIndex-1]
}

func (e *InternalTypeEnumeration) IsMethodSignature() bool {
	return e.openIndex >= 0
}

func (e *InternalTypeEnumeration) HasMoreTypes() bool {
	return e.index < e.closeIndex
}

// NextType returns the next complete type, including array prefixes and
// generic arguments.
func (e *InternalTypeEnumeration) NextType() string {
	start := e.index
	e.skipArray()

	c := charAt(e.desc, e.index)
	e.index++
	switch c {
	case 'L', 'T':
		e.skipClass()
	case '<':
		e.skipGeneric()
	}
	return e.desc[start:e.index]
}

// ReturnType returns the type after the closing parenthesis of a method
// descriptor.
func (e *InternalTypeEnumeration) ReturnType() string {
	if e.closeIndex < 0 || e.closeIndex >= len(e.desc) {
		return ""
	}
	return e.desc[e.closeIndex+1:]
}

// TypeCount counts the remaining types without consuming them.
func (e *InternalTypeEnumeration) TypeCount() int {
	saved := e.index
	count := 0
	for e.HasMoreTypes() {
		e.NextType()
		count++
	}
	e.index = saved
	return count
}

func (e *InternalTypeEnumeration) skipArray() {
	for charAt(e.desc, e.index) == '[' {
		e.index++
	}
}

func (e *InternalTypeEnumeration) skipClass() {
	for {
		c := charAt(e.desc, e.index)
		e.index++
		switch c {
		case '<':
			e.skipGeneric()
		case ';':
			return
		}
	}
}

func (e *InternalTypeEnumeration) skipGeneric() {
	nesting := 1
	for nesting > 0 {
		switch charAt(e.desc, e.index) {
		case '<':
			nesting++
		case '>':
			nesting--
		}
		e.index++
	}
}
