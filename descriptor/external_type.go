package descriptor

import "strings"

// ExternalTypeEnumeration walks a comma-separated list of external types,
// either bare ("int,java.lang.String") or as a method declaration
// ("void run(int, java.util.Map<K,V>)"). Commas inside generic arguments do
// not split types.
type ExternalTypeEnumeration struct {
	types      string
	methodName string
	start      int
	end        int
	index      int
}

func NewExternalTypeEnumeration(types string) *ExternalTypeEnumeration {
	e := &ExternalTypeEnumeration{types: types, end: len(types)}
	if open := strings.IndexByte(types, '('); open >= 0 {
		e.methodName = strings.TrimSpace(types[:open])
		e.start = open + 1
		if close := strings.LastIndexByte(types, ')'); close > open {
			e.end = close
		}
	}
	e.Reset()
	return e
}

func (e *ExternalTypeEnumeration) Reset() {
	e.index = e.start
	for e.index < e.end && e.types[e.index] == ' ' {
		e.index++
	}
}

// MethodName returns the text before the argument list, which may include
// a return type, or "" for a bare type list.
func (e *ExternalTypeEnumeration) MethodName() string {
	return e.methodName
}

func (e *ExternalTypeEnumeration) HasMoreTypes() bool {
	return e.index < e.end
}

func (e *ExternalTypeEnumeration) NextType() string {
	start := e.index
	nesting := 0
	for e.index < e.end {
		c := e.types[e.index]
		if c == ',' && nesting == 0 {
			break
		}
		switch c {
		case '<':
			nesting++
		case '>':
			nesting--
		}
		e.index++
	}
	t := strings.TrimSpace(e.types[start:e.index])
	if e.index < e.end {
		// Skip the comma.
		e.index++
	}
	return t
}
