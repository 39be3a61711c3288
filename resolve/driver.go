package resolve

import (
	"errors"
	"io"

	cf "github.com/dhamidi/classref/classfile"
	"github.com/dhamidi/classref/classpool"
	"github.com/dhamidi/classref/descriptor"
	"github.com/dhamidi/classref/kotlin"
	"github.com/dhamidi/classref/warn"
)

// Options configure a Driver.
type Options struct {
	// Output receives the warnings. Nil only counts them.
	Output io.Writer

	// DontWarn suppresses warnings on every channel for the classes it
	// matches. The per-channel filters add to it.
	DontWarn                warn.Matcher
	DontWarnMissingClasses  warn.Matcher
	DontWarnProgramMembers  warn.Matcher
	DontWarnLibraryMembers  warn.Matcher
	DontWarnDependencies    warn.Matcher
	WarnLibraryDependencies bool

	// LinkMethods chains overriding methods after the references are
	// resolved.
	LinkMethods bool
	// KotlinMetadata reads the kotlin.Metadata header of classes that do
	// not have metadata yet.
	KotlinMetadata bool
}

// Stats counts the warnings printed by a run, and the classes skipped
// because one of their descriptors was malformed.
type Stats struct {
	MissingClasses int
	ProgramMembers int
	LibraryMembers int
	Dependencies   int
	Malformed      int
}

func (s Stats) Total() int {
	return s.MissingClasses + s.ProgramMembers + s.LibraryMembers + s.Dependencies
}

// Driver runs the linking passes over a program pool and a library pool
// in the order they depend on each other.
type Driver struct {
	Program *classpool.ClassPool
	Library *classpool.ClassPool
	Options Options

	warnings Warnings
	program  *Resolver
	library  *Resolver

	malformed map[*cf.Class]bool
}

func NewDriver(program, library *classpool.ClassPool, opts Options) *Driver {
	d := &Driver{
		Program:   program,
		Library:   library,
		Options:   opts,
		malformed: make(map[*cf.Class]bool),
	}

	channel := func(filter warn.Matcher) *warn.Printer {
		return warn.NewPrinter(opts.Output, warn.AnyOf(opts.DontWarn, filter))
	}
	d.warnings = Warnings{
		MissingClass:  channel(opts.DontWarnMissingClasses),
		ProgramMember: channel(opts.DontWarnProgramMembers),
		LibraryMember: channel(opts.DontWarnLibraryMembers),
	}
	if opts.WarnLibraryDependencies {
		d.warnings.Dependency = channel(opts.DontWarnDependencies)
	}

	lookup := classpool.Lookup{Program: program, Library: library}
	d.program = New(lookup, d.warnings)
	// Libraries routinely refer to classes that are not around, so only
	// their dependencies on program classes are reported.
	d.library = New(lookup, Warnings{Dependency: d.warnings.Dependency})
	return d
}

// Resolver returns the resolver used for the classes of kind.
func (d *Driver) Resolver(kind cf.ClassKind) *Resolver {
	if kind == cf.LibraryClass {
		return d.library
	}
	return d.program
}

func (d *Driver) resolverFor(c *cf.Class) *Resolver {
	return d.Resolver(c.Kind)
}

// Run links every class of both pools. Each pass completes over all
// classes before the next starts: the super hierarchy first, then the
// subclass links, then the references, and finally the method chains.
func (d *Driver) Run() Stats {
	if d.Options.KotlinMetadata {
		attached := 0
		d.each("kotlin", func(c *cf.Class) {
			if c.KotlinMetadata == nil && kotlin.Attach(c) {
				attached++
			}
		})
		log.Debugf("read Kotlin metadata of %d classes", attached)
	}

	log.Infof("linking %d program and %d library classes", d.Program.Size(), d.Library.Size())
	d.each("super hierarchy", func(c *cf.Class) {
		d.resolverFor(c).InitializeSuperHierarchy(c)
	})
	d.each("sub hierarchy", InitializeSubHierarchy)
	d.each("references", func(c *cf.Class) {
		r := d.resolverFor(c)
		r.InitializeReferences(c)
		r.InitializeStringReferences(c)
	})

	if d.Options.LinkMethods {
		d.Program.Accept(func(c *cf.Class) {
			d.guard("methods", c, func() { LinkMethods(c) })
		})
	}

	stats := d.Stats()
	log.Infof("%d warnings, %d malformed classes", stats.Total(), stats.Malformed)
	return stats
}

// Stats returns the counts so far.
func (d *Driver) Stats() Stats {
	return Stats{
		MissingClasses: d.warnings.MissingClass.Count(),
		ProgramMembers: d.warnings.ProgramMember.Count(),
		LibraryMembers: d.warnings.LibraryMember.Count(),
		Dependencies:   d.warnings.Dependency.Count(),
		Malformed:      len(d.malformed),
	}
}

func (d *Driver) each(pass string, fn func(*cf.Class)) {
	classpool.Lookup{Program: d.Program, Library: d.Library}.Each(func(c *cf.Class) {
		d.guard(pass, c, func() { fn(c) })
	})
}

// guard runs fn, turning a malformed descriptor panic into a logged error
// that skips the rest of c's pass.
func (d *Driver) guard(pass string, c *cf.Class, fn func()) {
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		var malformed *descriptor.MalformedError
		if err, ok := p.(error); !ok || !errors.As(err, &malformed) {
			panic(p)
		}
		log.Errorf("%s: %s: %s", pass, c.Name(), malformed)
		d.malformed[c] = true
	}()
	fn()
}
