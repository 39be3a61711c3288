package classpool

import cf "github.com/dhamidi/classref/classfile"

// Lookup finds classes in the program pool first and falls back to the
// library pool. Either pool may be nil.
type Lookup struct {
	Program *ClassPool
	Library *ClassPool
}

func (l Lookup) Find(name string) *cf.Class {
	if c := l.Program.Get(name); c != nil {
		return c
	}
	return l.Library.Get(name)
}

// Each calls fn for every program class and then every library class.
func (l Lookup) Each(fn func(*cf.Class)) {
	l.Program.Accept(fn)
	l.Library.Accept(fn)
}

// Visit calls fn for every program class and then every library class
// until fn returns false.
func (l Lookup) Visit(fn func(*cf.Class) bool) bool {
	return l.Program.Visit(fn) && l.Library.Visit(fn)
}
