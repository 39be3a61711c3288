package resolve

import (
	"fmt"

	cf "github.com/dhamidi/classref/classfile"
)

// InitializeSuperHierarchy links c to its superclass and interfaces. Links
// that are already set are kept when the lookup now fails, so running it
// again never loses information. A link that would close a cycle is
// refused and reported as a missing class, which keeps every hierarchy
// walk finite.
func (r *Resolver) InitializeSuperHierarchy(c *cf.Class) {
	if c.SuperClass != 0 {
		if super := r.findSuperClass(c, c.SuperClass); super != nil {
			c.Super = super
		}
	}

	if len(c.InterfaceClasses) != len(c.Interfaces) {
		c.InterfaceClasses = make([]*cf.Class, len(c.Interfaces))
	}
	for i, index := range c.Interfaces {
		if iface := r.findSuperClass(c, index); iface != nil {
			c.InterfaceClasses[i] = iface
		}
	}
}

func (r *Resolver) findSuperClass(c *cf.Class, index uint16) *cf.Class {
	info := c.ConstantPool.GetClass(index)
	if info == nil {
		return nil
	}
	name := c.ConstantPool.GetUtf8(info.NameIndex)

	super := r.Lookup.Find(name)
	if super == nil {
		r.Warnings.MissingClass.PrintBoth(c.Name(), name,
			fmt.Sprintf("%s: can't find superclass or interface %s", external(c.Name()), external(name)))
		return nil
	}
	if super.ExtendsOrImplements(c) {
		r.Warnings.MissingClass.PrintBoth(c.Name(), name,
			fmt.Sprintf("%s: cyclic superclass or interface %s", external(c.Name()), external(name)))
		return nil
	}

	if c.IsLibrary() {
		if super.IsProgram() {
			r.Warnings.Dependency.PrintBoth(c.Name(), super.Name(),
				fmt.Sprintf("library class %s extends or implements program class %s", external(c.Name()), external(super.Name())))
		}
		// Share the name string with the resolved class.
		c.ConstantPool.SetUtf8(info.NameIndex, super.Name())
	}
	info.ReferencedClass = super
	return super
}

// InitializeSubHierarchy registers c with its resolved superclass and
// interfaces. It must run after InitializeSuperHierarchy has run over all
// classes.
func InitializeSubHierarchy(c *cf.Class) {
	if c.Super != nil {
		c.Super.AddSubClass(c)
	}
	for _, iface := range c.InterfaceClasses {
		if iface != nil {
			iface.AddSubClass(c)
		}
	}
}
