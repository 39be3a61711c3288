package resolve

import cf "github.com/dhamidi/classref/classfile"

// LinkMethods chains together the methods that override each other in the
// whole hierarchy of root: its superclasses, interfaces and subclasses.
// Private and static methods and initializers are never linked. After
// linking, LastMember returns the same method for every member of a chain,
// and that method is a library method whenever the chain contains one.
func LinkMethods(root *cf.Class) {
	tails := make(map[string]*cf.Method)
	root.HierarchyAccept(true, true, true, true, func(k *cf.Class) bool {
		for _, m := range k.Methods {
			if m.IsPrivate() || m.IsStatic() || m.IsInitializer() {
				continue
			}
			key := m.Name() + " " + m.Descriptor()
			if other, ok := tails[key]; ok {
				link(m, other)
			} else {
				tails[key] = LastMember(m)
			}
		}
		return true
	})
}

// link joins the chains of two methods. Library methods stay at the end.
func link(m1, m2 *cf.Method) {
	last1, last2 := LastMember(m1), LastMember(m2)
	if last1 == last2 {
		return
	}
	if last2.Owner.IsLibrary() {
		last1.Link = last2
	} else {
		last2.Link = last1
	}
}

// LastMember follows the chain of m to its end.
func LastMember(m *cf.Method) *cf.Method {
	for m.Link != nil {
		m = m.Link
	}
	return m
}
