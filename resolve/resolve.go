// Package resolve links parsed classes to each other. It fills in the
// superclass and interface links, the subclass back-links, the resolved
// references of constant pool entries, members, attributes, annotations
// and Kotlin metadata, and optionally chains overriding methods.
//
// Classes that cannot be found are not errors: the reference stays nil and
// a warning goes to one of four channels (see Warnings).
package resolve

import (
	"fmt"

	"github.com/tliron/commonlog"

	cf "github.com/dhamidi/classref/classfile"
	"github.com/dhamidi/classref/classpool"
	"github.com/dhamidi/classref/descriptor"
	"github.com/dhamidi/classref/warn"
)

var log = commonlog.GetLogger("classref.resolve")

// Warnings are the channels misses are reported on. Any of them may be
// nil to drop that kind of warning.
type Warnings struct {
	// MissingClass reports classes that cannot be found.
	MissingClass *warn.Printer
	// ProgramMember and LibraryMember report fields and methods missing
	// from a program or library class respectively.
	ProgramMember *warn.Printer
	LibraryMember *warn.Printer
	// Dependency reports library classes that depend on program classes.
	Dependency *warn.Printer
}

// Resolver runs the per-class linking passes. It looks classes up in the
// program pool first and the library pool second.
type Resolver struct {
	Lookup   classpool.Lookup
	Warnings Warnings

	finder       MemberFinder
	strictFinder MemberFinder
}

func New(lookup classpool.Lookup, warnings Warnings) *Resolver {
	return &Resolver{
		Lookup:       lookup,
		Warnings:     warnings,
		strictFinder: MemberFinder{Strict: true},
	}
}

func external(name string) string {
	return descriptor.ExternalClassName(name)
}

// findClass resolves a class name as stored in a class constant, so array
// names are reduced to their element class. Arrays of primitives resolve
// to nil without a warning.
func (r *Resolver) findClass(referencing *cf.Class, name string) *cf.Class {
	name = descriptor.ElementClassName(name)
	if name == "" {
		return nil
	}

	c := r.Lookup.Find(name)
	if c == nil {
		r.Warnings.MissingClass.PrintBoth(referencing.Name(), name,
			fmt.Sprintf("%s: can't find referenced class %s", external(referencing.Name()), external(name)))
		return nil
	}
	r.checkDependency(referencing, c)
	return c
}

func (r *Resolver) checkDependency(referencing, referenced *cf.Class) {
	if referencing.IsLibrary() && referenced.IsProgram() {
		r.Warnings.Dependency.PrintBoth(referencing.Name(), referenced.Name(),
			fmt.Sprintf("library class %s depends on program class %s", external(referencing.Name()), external(referenced.Name())))
	}
}

// findReferencedClasses resolves every class named in a descriptor or
// signature. The result has one slot per name, or is nil if none of them
// could be found.
func (r *Resolver) findReferencedClasses(referencing *cf.Class, desc string) []*cf.Class {
	e := descriptor.NewDescriptorClassEnumeration(desc)
	count := e.ClassCount()
	if count == 0 {
		return nil
	}

	classes := make([]*cf.Class, count)
	found := false
	e.NextFluff()
	for i := 0; e.HasMoreClassNames(); i++ {
		classes[i] = r.findClass(referencing, e.NextClassName())
		found = found || classes[i] != nil
		e.NextFluff()
	}
	if !found {
		return nil
	}
	return classes
}

// findWellKnownClass looks up a class the runtime always provides, without
// warnings.
func (r *Resolver) findWellKnownClass(name string) *cf.Class {
	return r.Lookup.Find(name)
}

// keep returns found, or earlier when the lookup missed. Running a pass
// again only adds or confirms links.
func keep[T any](earlier, found *T) *T {
	if found == nil {
		return earlier
	}
	return found
}

// keepAll merges fresh lookups into earlier slot by slot.
func keepAll[T any](earlier, found []*T) []*T {
	if found == nil {
		return earlier
	}
	if len(earlier) == len(found) {
		for i := range found {
			found[i] = keep(earlier[i], found[i])
		}
	}
	return found
}
