// Package warn reports unresolved references found while linking class
// pools. Every warning is one line starting with "Warning: ".
package warn

import (
	"fmt"
	"io"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("classref.warn")

const prefix = "Warning: "

// Matcher selects class names. classpool.NameFilter implements it.
type Matcher interface {
	Matches(className string) bool
}

// MatcherFunc adapts a function to Matcher.
type MatcherFunc func(className string) bool

func (f MatcherFunc) Matches(className string) bool { return f(className) }

// AnyOf matches a name when one of the given matchers does. Nil matchers
// are ignored.
func AnyOf(matchers ...Matcher) Matcher {
	var ms []Matcher
	for _, m := range matchers {
		if m != nil {
			ms = append(ms, m)
		}
	}
	switch len(ms) {
	case 0:
		return nil
	case 1:
		return ms[0]
	}
	return MatcherFunc(func(className string) bool {
		for _, m := range ms {
			if m.Matches(className) {
				return true
			}
		}
		return false
	})
}

// Printer writes warnings to an optional sink and counts them. Warnings
// about classes matched by the filter are suppressed and not counted.
//
// A nil *Printer discards everything.
type Printer struct {
	w      io.Writer
	filter Matcher
	count  int
}

// NewPrinter returns a printer writing to w. w may be nil to only count,
// and filter may be nil to accept every class.
func NewPrinter(w io.Writer, filter Matcher) *Printer {
	return &Printer{w: w, filter: filter}
}

// Accepts reports whether a warning involving all of classNames would be
// printed. Empty names are ignored.
func (p *Printer) Accepts(classNames ...string) bool {
	if p == nil {
		return false
	}
	if p.filter == nil {
		return true
	}
	for _, name := range classNames {
		if name != "" && p.filter.Matches(name) {
			return false
		}
	}
	return true
}

// Print emits a warning about className.
func (p *Printer) Print(className, message string) {
	p.print(message, className)
}

// PrintBoth emits a warning that involves two classes. It is suppressed if
// either class matches the filter.
func (p *Printer) PrintBoth(className1, className2, message string) {
	p.print(message, className1, className2)
}

func (p *Printer) print(message string, classNames ...string) {
	if p == nil {
		return
	}
	if !p.Accepts(classNames...) {
		log.Debugf("suppressed: %s", message)
		return
	}
	p.count++
	if p.w != nil {
		fmt.Fprintln(p.w, prefix+message)
	}
}

// Count returns the number of warnings accepted so far.
func (p *Printer) Count() int {
	if p == nil {
		return 0
	}
	return p.count
}
