package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"

	cf "github.com/dhamidi/classref/classfile"
)

type finderClasses struct {
	i, a, b, c, d, e, inner *cf.Class
}

func newFinderFixture(t *testing.T) (*fixture, finderClasses) {
	f := newFixture(t)
	var k finderClasses
	k.i = f.addProgram(cf.NewClassBuilder("p/I", cf.NameJavaLangObject, cf.AccPublic|cf.AccInterface|cf.AccAbstract).
		Method(cf.AccPublic, "bar", "()V").
		Field(cf.AccPublic|cf.AccStatic|cf.AccFinal, "X", "I"))
	k.a = f.addProgram(cf.NewClassBuilder("p/A", cf.NameJavaLangObject, cf.AccPublic).
		Implements("p/I").
		Method(cf.AccPublic, "foo", "()V").
		Method(cf.AccPublic, "foo", "(I)V").
		Method(cf.AccPrivate, "secret", "()V").
		Method(0, "pkg", "()V").
		Method(cf.AccProtected, "prot", "()V").
		Field(cf.AccProtected, "count", "I"))
	k.b = f.addProgram(cf.NewClassBuilder("p/B", "p/A", cf.AccPublic))
	k.c = f.addProgram(cf.NewClassBuilder("p/C", "p/B", cf.AccPublic))
	k.d = f.addProgram(cf.NewClassBuilder("q/D", "p/A", cf.AccPublic))
	k.e = f.addProgram(cf.NewClassBuilder("q/E", cf.NameJavaLangObject, cf.AccPublic))
	inner := cf.NewClassBuilder("p/A$Inner", cf.NameJavaLangObject, 0)
	inner.Attribute(inner.NestHost("p/A"))
	k.inner = f.addProgram(inner)
	f.hierarchy()
	return f, k
}

func TestFindMethodInSuperclass(t *testing.T) {
	_, k := newFinderFixture(t)
	var finder MemberFinder

	m, found := finder.FindMethod(nil, k.c, "foo", "()V")
	assert.Same(t, k.a, found)
	assert.Same(t, k.a.FindMethod("foo", "()V"), m)

	m, found = finder.FindMethod(nil, k.c, "hashCode", "()I")
	assert.NotNil(t, m)
	assert.Equal(t, cf.NameJavaLangObject, found.Name())

	m, found = finder.FindMethod(nil, k.c, "foo", "(J)V")
	assert.Nil(t, m)
	assert.Nil(t, found)
}

func TestFindMethodWithoutDescriptor(t *testing.T) {
	_, k := newFinderFixture(t)

	m, found := MemberFinder{}.FindMethod(nil, k.c, "foo", "")
	assert.Same(t, k.a, found)
	assert.Equal(t, "foo", m.Name())

	m, _ = MemberFinder{Strict: true}.FindMethod(nil, k.c, "foo", "")
	assert.Nil(t, m)
}

func TestFindMethodInInterfaces(t *testing.T) {
	_, k := newFinderFixture(t)

	m, found := MemberFinder{}.FindMethod(nil, k.c, "bar", "()V")
	assert.Same(t, k.i, found)
	assert.Same(t, k.i.FindMethod("bar", "()V"), m)

	m, _ = MemberFinder{Strict: true}.FindMethod(nil, k.c, "bar", "()V")
	assert.Nil(t, m, "strict lookups stay on the superclass chain")
}

func TestFindField(t *testing.T) {
	_, k := newFinderFixture(t)
	var finder MemberFinder

	field, found := finder.FindField(nil, k.c, "count", "I")
	assert.Same(t, k.a, found)
	assert.Same(t, k.a.FindField("count", "I"), field)

	field, _ = finder.FindField(nil, k.c, "count", "J")
	assert.Nil(t, field)

	field, _ = finder.FindField(nil, k.c, "X", "I")
	assert.Nil(t, field, "fields are not searched in interfaces")
}

func TestFindMemberAccess(t *testing.T) {
	_, k := newFinderFixture(t)
	var finder MemberFinder

	tests := []struct {
		name   string
		from   *cf.Class
		method string
		want   bool
	}{
		{"private from own class", k.a, "secret", true},
		{"private from nestmate", k.inner, "secret", true},
		{"private from subclass", k.b, "secret", false},
		{"private without referencing class", nil, "secret", true},
		{"package from same package", k.c, "pkg", true},
		{"package from other package", k.e, "pkg", false},
		{"package from subclass in other package", k.d, "pkg", false},
		{"protected from subclass in other package", k.d, "prot", true},
		{"protected from other package", k.e, "prot", false},
		{"public from anywhere", k.e, "foo", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := finder.FindMethod(tt.from, k.a, tt.method, "")
			assert.Equal(t, tt.want, m != nil)
		})
	}
}
