package kotlin

import (
	cf "github.com/dhamidi/classref/classfile"
)

const metadataType = "Lkotlin/Metadata;"

// ReadHeader extracts the kotlin.Metadata annotation of c. It reports false
// when c carries no such annotation.
func ReadHeader(c *cf.Class) (*Header, bool) {
	attr := c.GetAttribute(cf.AttrRuntimeVisibleAnnotations)
	if attr == nil {
		return nil, false
	}
	anns := attr.AsAnnotations()
	if anns == nil {
		return nil, false
	}

	cp := c.ConstantPool
	for _, ann := range anns.Annotations {
		if ann.Type(cp) != metadataType {
			continue
		}
		h := &Header{}
		for _, ev := range ann.ElementValues {
			switch ev.Name(cp) {
			case "k":
				h.Kind = intValue(cp, ev)
			case "mv":
				for _, v := range ev.Values {
					h.MetadataVersion = append(h.MetadataVersion, intValue(cp, v))
				}
			case "d1":
				h.Data1 = stringValues(cp, ev)
			case "d2":
				h.Data2 = stringValues(cp, ev)
			case "xs":
				h.ExtraString = cp.GetUtf8(ev.ConstValueIndex)
			case "pn":
				h.PackageName = cp.GetUtf8(ev.ConstValueIndex)
			case "xi":
				h.ExtraInt = intValue(cp, ev)
			}
		}
		return h, true
	}
	return nil, false
}

func intValue(cp cf.ConstantPool, ev *cf.ElementValue) int {
	v, _ := cp.GetInteger(ev.ConstValueIndex)
	return int(v)
}

func stringValues(cp cf.ConstantPool, ev *cf.ElementValue) []string {
	values := make([]string, len(ev.Values))
	for i, v := range ev.Values {
		values[i] = cp.GetUtf8(v.ConstValueIndex)
	}
	return values
}

// ReadMetadata builds the declaration container for c from its header.
// Only what the header stores as plain strings is filled in: the part
// class names of a multi-file facade and the facade name of a part.
// Declarations encoded in d1 are left to a decoder that fills in the
// returned container.
func ReadMetadata(c *cf.Class) (Metadata, bool) {
	h, ok := ReadHeader(c)
	if !ok {
		return nil, false
	}
	switch h.Kind {
	case KindClass:
		return &ClassMetadata{
			Header:      *h,
			Name:        c.Name(),
			IsInterface: c.IsInterface(),
		}, true
	case KindFileFacade:
		return &FileFacadeMetadata{Header: *h}, true
	case KindSyntheticClass:
		return &SyntheticClassMetadata{Header: *h}, true
	case KindMultiFileClassFacade:
		return &MultiFileFacadeMetadata{Header: *h, PartClassNames: h.Data1}, true
	case KindMultiFileClassPart:
		return &MultiFilePartMetadata{Header: *h, FacadeName: h.ExtraString}, true
	}
	return nil, false
}

// Attach reads the metadata of c into c.KotlinMetadata unless c already
// has metadata. It reports whether c ends up with metadata.
func Attach(c *cf.Class) bool {
	if c.KotlinMetadata != nil {
		return true
	}
	m, ok := ReadMetadata(c)
	if !ok {
		return false
	}
	c.KotlinMetadata = m
	return true
}
