package resolve

import (
	cf "github.com/dhamidi/classref/classfile"
	"github.com/dhamidi/classref/descriptor"
)

// MemberFinder looks up fields and methods in a class hierarchy: the class
// itself, then its superclasses, then, for methods, the interfaces of all
// of those, depth first. An empty descriptor matches any member with the
// given name.
//
// When a referencing class is given, members it may not access are
// skipped and the search continues further up.
type MemberFinder struct {
	// Strict searches superclasses only and requires a descriptor.
	Strict bool
}

// FindField returns the field and the class declaring it.
func (f MemberFinder) FindField(from, in *cf.Class, name, desc string) (*cf.Field, *cf.Class) {
	if f.Strict && desc == "" {
		return nil, nil
	}
	for k := in; k != nil; k = k.Super {
		for _, field := range k.Fields {
			if matches(field, name, desc) && accessible(from, k, field.AccessFlags) {
				return field, k
			}
		}
	}
	return nil, nil
}

// FindMethod returns the method and the class declaring it.
func (f MemberFinder) FindMethod(from, in *cf.Class, name, desc string) (*cf.Method, *cf.Class) {
	if f.Strict && desc == "" {
		return nil, nil
	}
	for k := in; k != nil; k = k.Super {
		if m := declaredMethod(from, k, name, desc); m != nil {
			return m, k
		}
	}
	if f.Strict {
		return nil, nil
	}

	visited := make(map[*cf.Class]bool)
	for k := in; k != nil; k = k.Super {
		for _, iface := range k.InterfaceClasses {
			if m, found := findInInterface(from, iface, name, desc, visited); m != nil {
				return m, found
			}
		}
	}
	return nil, nil
}

func findInInterface(from, iface *cf.Class, name, desc string, visited map[*cf.Class]bool) (*cf.Method, *cf.Class) {
	if iface == nil || visited[iface] {
		return nil, nil
	}
	visited[iface] = true

	if m := declaredMethod(from, iface, name, desc); m != nil {
		return m, iface
	}
	for _, super := range iface.InterfaceClasses {
		if m, found := findInInterface(from, super, name, desc, visited); m != nil {
			return m, found
		}
	}
	return nil, nil
}

func declaredMethod(from, k *cf.Class, name, desc string) *cf.Method {
	for _, m := range k.Methods {
		if matches(m, name, desc) && accessible(from, k, m.AccessFlags) {
			return m
		}
	}
	return nil
}

func matches(m cf.Member, name, desc string) bool {
	return m.Name() == name && (desc == "" || m.Descriptor() == desc)
}

// accessible reports whether code in from may access a member of owner
// with the given flags. A nil from accepts everything.
func accessible(from, owner *cf.Class, flags cf.AccessFlags) bool {
	if from == nil || from == owner {
		return true
	}
	switch cf.AccessLevelOf(flags) {
	case cf.LevelPrivate:
		return nestHost(from) == nestHost(owner)
	case cf.LevelPackageVisible:
		return samePackage(from, owner)
	case cf.LevelProtected:
		return samePackage(from, owner) || from.Extends(owner)
	}
	return true
}

func samePackage(a, b *cf.Class) bool {
	return descriptor.InternalPackageName(a.Name()) == descriptor.InternalPackageName(b.Name())
}

// nestHost returns the name of the class heading the nest of c, which is c
// itself unless it has a NestHost attribute.
func nestHost(c *cf.Class) string {
	if attr := c.GetAttribute(cf.AttrNestHost); attr != nil {
		if host, ok := attr.Parsed.(*cf.NestHostAttribute); ok {
			return c.ConstantPool.GetClassName(host.HostClassIndex)
		}
	}
	return c.Name()
}
