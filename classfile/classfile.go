package classfile

// ClassKind tells program classes, which are under analysis, apart from
// library classes, which are only context.
type ClassKind uint8

const (
	ProgramClass ClassKind = iota
	LibraryClass
)

func (k ClassKind) String() string {
	if k == LibraryClass {
		return "library"
	}
	return "program"
}

// KotlinMetadata is the attachment point for the kotlin package's
// declaration container model.
type KotlinMetadata interface {
	KotlinKind() int
}

type Class struct {
	Kind         ClassKind
	MinorVersion uint16
	MajorVersion uint16
	ConstantPool ConstantPool
	AccessFlags  AccessFlags
	ThisClass    uint16
	SuperClass   uint16
	Interfaces   []uint16
	Fields       []*Field
	Methods      []*Method
	Attributes   []AttributeInfo

	// Super is nil until resolved, and stays nil for java/lang/Object and
	// modules. InterfaceClasses parallels Interfaces; entries stay nil when
	// the interface cannot be found.
	Super            *Class
	InterfaceClasses []*Class
	SubClasses       []*Class

	KotlinMetadata KotlinMetadata
}

func (c *Class) Name() string {
	return c.ConstantPool.GetClassName(c.ThisClass)
}

func (c *Class) SuperName() string {
	if c.SuperClass == 0 {
		return ""
	}
	return c.ConstantPool.GetClassName(c.SuperClass)
}

func (c *Class) InterfaceNames() []string {
	names := make([]string, len(c.Interfaces))
	for i, idx := range c.Interfaces {
		names[i] = c.ConstantPool.GetClassName(idx)
	}
	return names
}

func (c *Class) IsProgram() bool { return c.Kind == ProgramClass }
func (c *Class) IsLibrary() bool { return c.Kind == LibraryClass }

func (c *Class) IsInterface() bool {
	return c.AccessFlags.IsInterface()
}

func (c *Class) IsAnnotation() bool {
	return c.AccessFlags.IsAnnotation()
}

func (c *Class) IsEnum() bool {
	return c.AccessFlags.IsEnum()
}

func (c *Class) IsModule() bool {
	return c.AccessFlags.IsModule()
}

// FindField returns the field declared in this class with the given name.
// An empty descriptor matches any type.
func (c *Class) FindField(name, descriptor string) *Field {
	for _, f := range c.Fields {
		if f.Name() == name && (descriptor == "" || f.Descriptor() == descriptor) {
			return f
		}
	}
	return nil
}

// FindMethod returns the method declared in this class with the given name.
// An empty descriptor matches any signature.
func (c *Class) FindMethod(name, descriptor string) *Method {
	for _, m := range c.Methods {
		if m.Name() == name && (descriptor == "" || m.Descriptor() == descriptor) {
			return m
		}
	}
	return nil
}

func (c *Class) GetMethods(name string) []*Method {
	var methods []*Method
	for _, m := range c.Methods {
		if m.Name() == name {
			methods = append(methods, m)
		}
	}
	return methods
}

func (c *Class) GetAttribute(name string) *AttributeInfo {
	return findAttribute(c.ConstantPool, c.Attributes, name)
}

// AddSubClass records sub as a direct subclass or implementor. Adding the
// same class twice has no effect.
func (c *Class) AddSubClass(sub *Class) {
	for _, existing := range c.SubClasses {
		if existing == sub {
			return
		}
	}
	c.SubClasses = append(c.SubClasses, sub)
}

// Extends reports whether other is this class or one of its superclasses.
func (c *Class) Extends(other *Class) bool {
	for k := c; k != nil; k = k.Super {
		if k == other {
			return true
		}
	}
	return false
}

// ExtendsOrImplements reports whether other is this class, one of its
// superclasses, or one of the interfaces they implement.
func (c *Class) ExtendsOrImplements(other *Class) bool {
	found := false
	c.HierarchyAccept(true, true, true, false, func(k *Class) bool {
		found = k == other
		return !found
	})
	return found
}

// HierarchyAccept calls fn for classes in the hierarchy of c: c itself, its
// superclass chain (each superclass followed by its interfaces), c's own
// interfaces, and finally all subclasses, recursively. Unresolved links are
// skipped. fn returns false to stop the walk; HierarchyAccept then returns
// false as well.
func (c *Class) HierarchyAccept(visitThis, visitSuper, visitInterfaces, visitSubclasses bool, fn func(*Class) bool) bool {
	if visitThis && !fn(c) {
		return false
	}

	if visitSuper {
		if c.Super != nil && !c.Super.HierarchyAccept(true, true, visitInterfaces, false, fn) {
			return false
		}
	}

	if visitInterfaces {
		if !visitSuper && c.Super != nil {
			if !c.Super.HierarchyAccept(false, false, true, false, fn) {
				return false
			}
		}
		for _, iface := range c.InterfaceClasses {
			if iface != nil && !iface.HierarchyAccept(true, false, true, false, fn) {
				return false
			}
		}
	}

	if visitSubclasses {
		for _, sub := range c.SubClasses {
			if !sub.HierarchyAccept(true, false, false, true, fn) {
				return false
			}
		}
	}

	return true
}
