package classfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// linked builds classes and wires Super, InterfaceClasses and SubClasses by
// hand, the way the resolve package would.
func linked(t *testing.T) map[string]*Class {
	t.Helper()
	classes := map[string]*Class{
		"Object": NewClassBuilder(NameJavaLangObject, "", AccPublic).MustBuild(),
		"I":      NewClassBuilder("I", NameJavaLangObject, AccInterface|AccAbstract).MustBuild(),
		"J":      NewClassBuilder("J", NameJavaLangObject, AccInterface|AccAbstract).Implements("I").MustBuild(),
		"A":      NewClassBuilder("A", NameJavaLangObject, AccPublic).Implements("J").MustBuild(),
		"B":      NewClassBuilder("B", "A", AccPublic).MustBuild(),
		"C":      NewClassBuilder("C", "B", AccPublic).MustBuild(),
	}
	link := func(sub, super string, ifaces ...string) {
		c := classes[sub]
		if super != "" {
			c.Super = classes[super]
			classes[super].AddSubClass(c)
		}
		for _, name := range ifaces {
			c.InterfaceClasses = append(c.InterfaceClasses, classes[name])
			classes[name].AddSubClass(c)
		}
	}
	link("I", "Object")
	link("J", "Object", "I")
	link("A", "Object", "J")
	link("B", "A")
	link("C", "B")
	return classes
}

func names(classes []*Class) []string {
	out := make([]string, len(classes))
	for i, c := range classes {
		out[i] = c.Name()
	}
	return out
}

func TestHierarchyAccept(t *testing.T) {
	classes := linked(t)

	tests := []struct {
		name                                          string
		start                                         string
		visitThis, visitSuper, visitIfaces, visitSubs bool
		want                                          []string
	}{
		{"supers only", "C", true, true, false, false, []string{"C", "B", "A", NameJavaLangObject}},
		{"supers and interfaces", "C", false, true, true, false, []string{"B", "A", NameJavaLangObject, "J", "I"}},
		{"interfaces without supers", "B", false, false, true, false, []string{"J", "I"}},
		{"subclasses", "A", true, false, false, true, []string{"A", "B", "C"}},
		{"implementors", "I", false, false, false, true, []string{"J", "A", "B", "C"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var visited []*Class
			classes[tt.start].HierarchyAccept(tt.visitThis, tt.visitSuper, tt.visitIfaces, tt.visitSubs, func(c *Class) bool {
				visited = append(visited, c)
				return true
			})
			assert.Equal(t, tt.want, names(visited))
		})
	}

	t.Run("stops early", func(t *testing.T) {
		count := 0
		done := classes["C"].HierarchyAccept(true, true, true, false, func(c *Class) bool {
			count++
			return c.Name() != "B"
		})
		assert.False(t, done)
		assert.Equal(t, 2, count)
	})
}

func TestExtends(t *testing.T) {
	classes := linked(t)

	assert.True(t, classes["C"].Extends(classes["A"]))
	assert.True(t, classes["C"].Extends(classes["C"]))
	assert.False(t, classes["A"].Extends(classes["C"]))
	assert.False(t, classes["C"].Extends(classes["I"]))

	assert.True(t, classes["C"].ExtendsOrImplements(classes["I"]))
	assert.False(t, classes["I"].ExtendsOrImplements(classes["A"]))
}

func TestAddSubClassDeduplicates(t *testing.T) {
	classes := linked(t)
	a := classes["A"]
	before := len(a.SubClasses)
	a.AddSubClass(classes["B"])
	assert.Len(t, a.SubClasses, before)
}

func TestClassKinds(t *testing.T) {
	classes := linked(t)
	assert.True(t, classes["I"].IsInterface())
	assert.False(t, classes["A"].IsInterface())
	assert.Equal(t, "program", classes["A"].Kind.String())
	assert.Equal(t, "library", LibraryClass.String())

	enum := NewClassBuilder("E", NameJavaLangEnum, AccEnum|AccFinal).MustBuild()
	assert.True(t, enum.IsEnum())
	assert.Empty(t, classes["Object"].SuperName())
}
