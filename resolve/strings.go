package resolve

import (
	"strings"

	cf "github.com/dhamidi/classref/classfile"
	"github.com/dhamidi/classref/descriptor"
)

// InitializeStringReferences links string constants that name a class, in
// external or internal form, to that class. Most strings are not class
// names, so misses are silent. Strings that already have a class are
// skipped.
func (r *Resolver) InitializeStringReferences(c *cf.Class) {
	if !c.IsProgram() {
		return
	}
	cp := c.ConstantPool
	for _, entry := range cp {
		s, ok := entry.(*cf.ConstantStringInfo)
		if !ok || s.ReferencedClass != nil {
			continue
		}
		if name := classNameFromString(cp.GetUtf8(s.StringIndex)); name != "" {
			s.ReferencedClass = r.Lookup.Find(name)
		}
	}
}

// classNameFromString turns "com.example.Foo", "com.example.Foo[]" or
// "[Lcom.example.Foo;" into "com/example/Foo".
func classNameFromString(s string) string {
	for strings.HasSuffix(s, "[]") {
		s = strings.TrimSuffix(s, "[]")
	}
	s = descriptor.InternalClassName(s)
	if strings.HasPrefix(s, "[") {
		s = descriptor.InternalClassNameFromType(s)
	}
	if s == "" || strings.ContainsAny(s, " ;[<>()") {
		return ""
	}
	return s
}
