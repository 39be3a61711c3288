package descriptor

// DescriptorClassEnumeration extracts the class names embedded in a
// descriptor or generic signature, alternating between fluff (the text
// between class names) and class names:
//
//	e := NewDescriptorClassEnumeration(desc)
//	fluff := e.NextFluff()
//	for e.HasMoreClassNames() {
//		name := e.NextClassName()
//		fluff = e.NextFluff()
//	}
//
// Inner class names in signatures, as in Lpkg/Outer<TT;>.Inner;, are
// rebuilt into pkg/Outer$Inner.
type DescriptorClassEnumeration struct {
	desc string

	index            int
	nestingLevel     int
	isInnerClassName bool
	accumulatedName  string
	accumulatedNames []string
}

func NewDescriptorClassEnumeration(desc string) *DescriptorClassEnumeration {
	return &DescriptorClassEnumeration{desc: desc}
}

func (e *DescriptorClassEnumeration) Reset() {
	e.index = 0
	e.nestingLevel = 0
	e.isInnerClassName = false
	e.accumulatedName = ""
	e.accumulatedNames = nil
}

// ClassCount returns the number of class names in the descriptor. It leaves
// the enumeration where it was.
func (e *DescriptorClassEnumeration) ClassCount() int {
	saved := *e
	saved.accumulatedNames = append([]string(nil), e.accumulatedNames...)

	e.Reset()
	count := 0
	e.NextFluff()
	for e.HasMoreClassNames() {
		count++
		e.NextClassName()
		e.NextFluff()
	}

	*e = saved
	return count
}

func (e *DescriptorClassEnumeration) HasMoreClassNames() bool {
	return e.index < len(e.desc)
}

// NextFluff consumes everything up to the start of the next class name.
func (e *DescriptorClassEnumeration) NextFluff() string {
	start := e.index

loop:
	for e.index < len(e.desc) {
		c := e.desc[e.index]
		e.index++
		switch c {
		case '<':
			e.nestingLevel++
			e.accumulatedNames = append(e.accumulatedNames, e.accumulatedName)
		case '>':
			e.nestingLevel--
			n := len(e.accumulatedNames)
			if n == 0 {
				malformed(e.desc, e.index-1)
			}
			e.accumulatedName = e.accumulatedNames[n-1]
			e.accumulatedNames = e.accumulatedNames[:n-1]
			continue loop
		case ':':
			continue loop
		case 'L':
			e.nestingLevel += 2
			e.isInnerClassName = false
			break loop
		case ';':
			e.nestingLevel -= 2
		case '.':
			e.isInnerClassName = true
			break loop
		case 'T':
			// A type variable: skip its name.
			for charAt(e.desc, e.index) != ';' {
				e.index++
			}
			e.index++
		}

		// Right after '<' or a closing ';' inside formal type parameters,
		// a type parameter name follows. Skip to its bound.
		if e.nestingLevel == 1 && charAt(e.desc, e.index) != '>' {
			for charAt(e.desc, e.index) != ':' {
				e.index++
			}
			e.index++
		}
	}

	return e.desc[start:e.index]
}

// NextClassName returns the next class name in internal form.
func (e *DescriptorClassEnumeration) NextClassName() string {
	start := e.index
	for {
		c := charAt(e.desc, e.index)
		if c == '<' || c == ';' || c == '.' {
			break
		}
		e.index++
	}

	name := e.desc[start:e.index]
	if e.isInnerClassName {
		e.accumulatedName = e.accumulatedName + "$" + name
	} else {
		e.accumulatedName = name
	}
	return e.accumulatedName
}

// ClassNames returns all class names in desc, in order.
func ClassNames(desc string) []string {
	e := NewDescriptorClassEnumeration(desc)
	var names []string
	e.NextFluff()
	for e.HasMoreClassNames() {
		names = append(names, e.NextClassName())
		e.NextFluff()
	}
	return names
}
