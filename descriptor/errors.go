package descriptor

import "fmt"

// MalformedError is the panic value used when a descriptor or signature
// cannot be parsed. A malformed descriptor means the class file is corrupt,
// so the enumerators do not return errors for it.
type MalformedError struct {
	Descriptor string
	Index      int
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed descriptor %q at index %d", e.Descriptor, e.Index)
}

func malformed(desc string, index int) {
	panic(&MalformedError{Descriptor: desc, Index: index})
}

// charAt returns desc[i], panicking with a *MalformedError when i runs past
// the end.
func charAt(desc string, i int) byte {
	if i < 0 || i >= len(desc) {
		malformed(desc, i)
	}
	return desc[i]
}

// Check reports whether desc is a well-formed type descriptor, method
// descriptor or generic signature.
func Check(desc string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			me, ok := r.(*MalformedError)
			if !ok {
				panic(r)
			}
			err = me
		}
	}()

	if desc == "" {
		malformed(desc, 0)
	}

	types := NewInternalTypeEnumeration(desc)
	if types.IsMethodSignature() && types.closeIndex < 0 {
		malformed(desc, len(desc))
	}
	for types.HasMoreTypes() {
		checkType(desc, types.NextType())
	}
	if types.IsMethodSignature() {
		ret := types.ReturnType()
		if ret != "V" {
			checkType(desc, ret)
		}
	}

	classes := NewDescriptorClassEnumeration(desc)
	classes.ClassCount()
	return nil
}

func checkType(desc, t string) {
	i := 0
	for i < len(t) && t[i] == '[' {
		i++
	}
	switch charAt(t, i) {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z':
		if i+1 != len(t) {
			malformed(desc, i)
		}
	case 'L', 'T':
		if t[len(t)-1] != ';' {
			malformed(desc, len(t)-1)
		}
	case '*', '+', '-':
		// Wildcards only appear inside type arguments, which NextType skips.
		malformed(desc, i)
	default:
		malformed(desc, i)
	}
}
