// Package classpool holds sets of classes keyed by internal name and loads
// them from directories, class files and jars.
package classpool

import (
	"sort"

	cf "github.com/dhamidi/classref/classfile"
)

// ClassPool maps internal class names to classes. A nil *ClassPool is an
// empty pool.
type ClassPool struct {
	classes map[string]*cf.Class
	// sorted caches the class names in order; nil after a change.
	sorted []string
}

func New(classes ...*cf.Class) *ClassPool {
	p := &ClassPool{classes: make(map[string]*cf.Class)}
	for _, c := range classes {
		p.Add(c)
	}
	return p
}

// Add stores c under its name, replacing any class with the same name.
func (p *ClassPool) Add(c *cf.Class) {
	name := c.Name()
	if _, ok := p.classes[name]; !ok {
		p.sorted = nil
	}
	p.classes[name] = c
}

func (p *ClassPool) Remove(name string) {
	if _, ok := p.classes[name]; ok {
		p.sorted = nil
	}
	delete(p.classes, name)
}

func (p *ClassPool) Get(name string) *cf.Class {
	if p == nil {
		return nil
	}
	return p.classes[name]
}

func (p *ClassPool) Size() int {
	if p == nil {
		return 0
	}
	return len(p.classes)
}

// ClassNames returns the names of all classes in sorted order.
func (p *ClassPool) ClassNames() []string {
	if p == nil {
		return nil
	}
	return append([]string(nil), p.sortedNames()...)
}

func (p *ClassPool) sortedNames() []string {
	if p.sorted == nil {
		p.sorted = make([]string, 0, len(p.classes))
		for name := range p.classes {
			p.sorted = append(p.sorted, name)
		}
		sort.Strings(p.sorted)
	}
	return p.sorted
}

// Classes returns all classes sorted by name.
func (p *ClassPool) Classes() []*cf.Class {
	if p == nil {
		return nil
	}
	names := p.sortedNames()
	classes := make([]*cf.Class, len(names))
	for i, name := range names {
		classes[i] = p.classes[name]
	}
	return classes
}

// Visit calls fn for every class in name order until fn returns false,
// and reports whether it got through all of them.
func (p *ClassPool) Visit(fn func(*cf.Class) bool) bool {
	if p == nil {
		return true
	}
	for _, name := range p.sortedNames() {
		c, ok := p.classes[name]
		if ok && !fn(c) {
			return false
		}
	}
	return true
}

// Accept calls fn for every class in name order.
func (p *ClassPool) Accept(fn func(*cf.Class)) {
	for _, c := range p.Classes() {
		fn(c)
	}
}

// AcceptFiltered calls fn for every class whose name the filter matches.
func (p *ClassPool) AcceptFiltered(filter *NameFilter, fn func(*cf.Class)) {
	for _, c := range p.Classes() {
		if filter.Matches(c.Name()) {
			fn(c)
		}
	}
}
