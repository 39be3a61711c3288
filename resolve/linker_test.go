package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"

	cf "github.com/dhamidi/classref/classfile"
)

func TestLinkMethodsSharedInterface(t *testing.T) {
	f := newFixture(t)
	i := f.addProgram(cf.NewClassBuilder("p/I", cf.NameJavaLangObject, cf.AccPublic|cf.AccInterface|cf.AccAbstract).
		Method(cf.AccPublic|cf.AccAbstract, "run", "()V"))
	x := f.addProgram(cf.NewClassBuilder("p/X", cf.NameJavaLangObject, cf.AccPublic).
		Implements("p/I").
		Method(cf.AccPublic, cf.MethodNameInit, "()V").
		Method(cf.AccPublic, "run", "()V").
		Method(cf.AccPrivate, "helper", "()V").
		Method(cf.AccPublic|cf.AccStatic, "create", "()Lp/X;"))
	y := f.addProgram(cf.NewClassBuilder("p/Y", cf.NameJavaLangObject, cf.AccPublic).
		Implements("p/I").
		Method(cf.AccPublic, cf.MethodNameInit, "()V").
		Method(cf.AccPublic, "run", "()V").
		Method(cf.AccPrivate, "helper", "()V").
		Method(cf.AccPublic|cf.AccStatic, "create", "()Lp/X;"))
	f.hierarchy()

	LinkMethods(x)
	LinkMethods(y)

	tail := LastMember(i.FindMethod("run", "()V"))
	assert.Same(t, tail, LastMember(x.FindMethod("run", "()V")))
	assert.Same(t, tail, LastMember(y.FindMethod("run", "()V")))

	for _, name := range []string{cf.MethodNameInit, "helper", "create"} {
		assert.Nil(t, x.FindMethod(name, "").Link, name)
		assert.Nil(t, y.FindMethod(name, "").Link, name)
	}
}

func TestLinkMethodsLibraryTail(t *testing.T) {
	classes := func(t *testing.T) (*fixture, *cf.Class, *cf.Class, *cf.Class) {
		f := newFixture(t)
		runnable := f.addLibrary(cf.NewClassBuilder("lib/Runnable", cf.NameJavaLangObject, cf.AccPublic|cf.AccInterface|cf.AccAbstract).
			Method(cf.AccPublic|cf.AccAbstract, "run", "()V"))
		x := f.addProgram(cf.NewClassBuilder("p/X", cf.NameJavaLangObject, cf.AccPublic).
			Implements("lib/Runnable").
			Method(cf.AccPublic, "run", "()V").
			Method(cf.AccPublic, "toString", "()Ljava/lang/String;"))
		y := f.addProgram(cf.NewClassBuilder("p/Y", "p/X", cf.AccPublic).
			Method(cf.AccPublic, "run", "()V"))
		f.hierarchy()
		return f, runnable, x, y
	}

	orders := []struct {
		name  string
		order func(x, y *cf.Class) []*cf.Class
	}{
		{"superclass first", func(x, y *cf.Class) []*cf.Class { return []*cf.Class{x, y} }},
		{"subclass first", func(x, y *cf.Class) []*cf.Class { return []*cf.Class{y, x} }},
	}
	for _, tt := range orders {
		t.Run(tt.name, func(t *testing.T) {
			f, runnable, x, y := classes(t)
			for _, c := range tt.order(x, y) {
				LinkMethods(c)
			}

			tail := LastMember(x.FindMethod("run", "()V"))
			assert.Same(t, runnable.FindMethod("run", "()V"), tail)
			assert.Same(t, tail, LastMember(y.FindMethod("run", "()V")))
			assert.Nil(t, tail.Link)

			object := f.library.Get(cf.NameJavaLangObject)
			assert.Same(t, object.FindMethod("toString", ""), LastMember(x.FindMethod("toString", "")))
		})
	}
}

func TestLinkMethodsIdempotent(t *testing.T) {
	f := newFixture(t)
	x := f.addProgram(cf.NewClassBuilder("p/X", cf.NameJavaLangObject, cf.AccPublic).
		Method(cf.AccPublic, "hashCode", "()I"))
	f.hierarchy()

	LinkMethods(x)
	LinkMethods(x)

	object := f.library.Get(cf.NameJavaLangObject)
	assert.Same(t, object.FindMethod("hashCode", ""), x.FindMethod("hashCode", "").Link)
	assert.Nil(t, object.FindMethod("hashCode", "").Link)
}
