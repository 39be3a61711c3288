package resolve

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	cf "github.com/dhamidi/classref/classfile"
	"github.com/dhamidi/classref/classpool"
	"github.com/dhamidi/classref/warn"
)

// fixture holds a program pool and a library pool with the few runtime
// classes the resolver looks for, and a resolver that writes every
// warning channel into one buffer.
type fixture struct {
	t        *testing.T
	program  *classpool.ClassPool
	library  *classpool.ClassPool
	out      bytes.Buffer
	warnings Warnings
	r        *Resolver
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{t: t, program: classpool.New(), library: classpool.New()}
	f.addLibrary(cf.NewClassBuilder(cf.NameJavaLangObject, "", cf.AccPublic).
		Method(cf.AccPublic, "toString", "()Ljava/lang/String;").
		Method(cf.AccPublic, "hashCode", "()I"))
	for _, name := range []string{
		cf.NameJavaLangString,
		cf.NameJavaLangClass,
		cf.NameJavaLangInvokeMethodHandle,
		cf.NameJavaLangInvokeMethodType,
	} {
		f.addLibrary(cf.NewClassBuilder(name, cf.NameJavaLangObject, cf.AccPublic|cf.AccFinal))
	}
	f.addLibrary(cf.NewClassBuilder(cf.NameJavaLangEnum, cf.NameJavaLangObject, cf.AccPublic|cf.AccAbstract))

	f.warnings = Warnings{
		MissingClass:  warn.NewPrinter(&f.out, nil),
		ProgramMember: warn.NewPrinter(&f.out, nil),
		LibraryMember: warn.NewPrinter(&f.out, nil),
		Dependency:    warn.NewPrinter(&f.out, nil),
	}
	f.r = New(classpool.Lookup{Program: f.program, Library: f.library}, f.warnings)
	return f
}

func (f *fixture) addProgram(b *cf.ClassBuilder) *cf.Class {
	f.t.Helper()
	c, err := b.Build()
	require.NoError(f.t, err)
	f.program.Add(c)
	return c
}

func (f *fixture) addLibrary(b *cf.ClassBuilder) *cf.Class {
	f.t.Helper()
	c, err := b.Build(cf.AsLibrary())
	require.NoError(f.t, err)
	f.library.Add(c)
	return c
}

func (f *fixture) each(fn func(*cf.Class)) {
	classpool.Lookup{Program: f.program, Library: f.library}.Each(fn)
}

// hierarchy runs both hierarchy passes over every class.
func (f *fixture) hierarchy() {
	f.each(f.r.InitializeSuperHierarchy)
	f.each(InitializeSubHierarchy)
}

// resolve runs the hierarchy passes and then the reference passes.
func (f *fixture) resolve() {
	f.hierarchy()
	f.each(func(c *cf.Class) {
		f.r.InitializeReferences(c)
		f.r.InitializeStringReferences(c)
	})
}

// lines returns the warnings printed so far.
func (f *fixture) lines() []string {
	s := strings.TrimSpace(f.out.String())
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// code assembles a method body of a class under construction.
func code(b *cf.ClassBuilder, insns []byte, attrs ...cf.RawAttribute) cf.RawAttribute {
	return b.Code(4, 4, insns, attrs...)
}
