package resolve

import (
	"fmt"

	cf "github.com/dhamidi/classref/classfile"
	"github.com/dhamidi/classref/descriptor"
)

// InitializeReferences resolves the symbolic references of c: constant
// pool entries, field and method descriptors, attributes, annotations and
// Kotlin metadata. Library classes have no code to resolve, so only their
// members and Kotlin metadata are linked.
//
// The class hierarchy must be initialized first.
func (r *Resolver) InitializeReferences(c *cf.Class) {
	program := c.IsProgram()
	if program {
		r.initializeConstants(c)
	}
	for _, f := range c.Fields {
		r.initializeField(c, f, program)
	}
	for _, m := range c.Methods {
		r.initializeMethod(c, m, program)
	}
	if program {
		r.initializeAttributes(c, nil, c.Attributes)
	}
	if c.KotlinMetadata != nil {
		r.initializeKotlin(c)
	}
}

func (r *Resolver) initializeConstants(c *cf.Class) {
	cp := c.ConstantPool
	for _, entry := range cp {
		switch e := entry.(type) {
		case *cf.ConstantClassInfo:
			e.ReferencedClass = keep(e.ReferencedClass, r.findClass(c, cp.GetUtf8(e.NameIndex)))
			e.JavaLangClassClass = keep(e.JavaLangClassClass, r.findWellKnownClass(cf.NameJavaLangClass))
		case *cf.ConstantStringInfo:
			e.JavaLangStringClass = keep(e.JavaLangStringClass, r.findWellKnownClass(cf.NameJavaLangString))
		case *cf.ConstantMethodHandleInfo:
			e.JavaLangInvokeMethodHandleClass = keep(e.JavaLangInvokeMethodHandleClass, r.findWellKnownClass(cf.NameJavaLangInvokeMethodHandle))
		case *cf.ConstantMethodTypeInfo:
			e.JavaLangInvokeMethodTypeClass = keep(e.JavaLangInvokeMethodTypeClass, r.findWellKnownClass(cf.NameJavaLangInvokeMethodType))
			e.ReferencedClasses = keepAll(e.ReferencedClasses, r.findReferencedClasses(c, cp.GetUtf8(e.DescriptorIndex)))
		case *cf.ConstantNameAndTypeInfo:
			e.ReferencedClasses = keepAll(e.ReferencedClasses, r.findReferencedClasses(c, cp.GetUtf8(e.DescriptorIndex)))
		case *cf.ConstantDynamicInfo:
			_, desc := cp.GetNameAndType(e.NameAndTypeIndex)
			e.ReferencedClasses = keepAll(e.ReferencedClasses, r.findReferencedClasses(c, desc))
		case *cf.ConstantInvokeDynamicInfo:
			_, desc := cp.GetNameAndType(e.NameAndTypeIndex)
			e.ReferencedClasses = keepAll(e.ReferencedClasses, r.findReferencedClasses(c, desc))
		case *cf.ConstantFieldrefInfo:
			owner, name, desc := r.refOwner(c, e.ClassIndex, e.NameAndTypeIndex)
			if owner == nil {
				continue
			}
			field, found := r.finder.FindField(c, owner, name, desc)
			if field == nil {
				if e.ReferencedField == nil {
					e.ReferencedClass = owner
				}
				r.warnMissingMember(c, owner, "can't find referenced field '"+descriptor.ExternalFullFieldDescription(0, name, desc)+"'")
				continue
			}
			e.ReferencedField, e.ReferencedClass = field, found
		case *cf.ConstantMethodrefInfo:
			e.ReferencedMethod, e.ReferencedClass = r.resolveMethodref(c, e.ClassIndex, e.NameAndTypeIndex, e.ReferencedMethod, e.ReferencedClass)
		case *cf.ConstantInterfaceMethodrefInfo:
			e.ReferencedMethod, e.ReferencedClass = r.resolveMethodref(c, e.ClassIndex, e.NameAndTypeIndex, e.ReferencedMethod, e.ReferencedClass)
		}
	}
}

// refOwner resolves the owner of a member reference. Arrays own the
// methods of java/lang/Object.
func (r *Resolver) refOwner(c *cf.Class, classIndex, natIndex uint16) (owner *cf.Class, name, desc string) {
	className := c.ConstantPool.GetClassName(classIndex)
	name, desc = c.ConstantPool.GetNameAndType(natIndex)
	if descriptor.IsInternalArrayType(className) {
		className = cf.NameJavaLangObject
	}
	return r.findClass(c, className), name, desc
}

func (r *Resolver) resolveMethodref(c *cf.Class, classIndex, natIndex uint16, method *cf.Method, class *cf.Class) (*cf.Method, *cf.Class) {
	owner, name, desc := r.refOwner(c, classIndex, natIndex)
	if owner == nil {
		return method, class
	}
	m, found := r.finder.FindMethod(c, owner, name, desc)
	if m == nil {
		r.warnMissingMember(c, owner, "can't find referenced method '"+descriptor.ExternalFullMethodDescription(owner.Name(), 0, name, desc)+"'")
		if method == nil {
			return nil, owner
		}
		return method, class
	}
	return m, found
}

// warnMissingMember reports a member missing from owner on the program or
// library member channel, depending on owner.
func (r *Resolver) warnMissingMember(c, owner *cf.Class, problem string) {
	printer := r.Warnings.ProgramMember
	if owner.IsLibrary() {
		printer = r.Warnings.LibraryMember
	}
	printer.PrintBoth(c.Name(), owner.Name(),
		fmt.Sprintf("%s: %s in %s class %s", external(c.Name()), problem, owner.Kind, external(owner.Name())))
}

func (r *Resolver) initializeField(c *cf.Class, f *cf.Field, attributes bool) {
	if name := descriptor.InternalClassNameFromType(f.Descriptor()); name != "" {
		f.ReferencedClass = keep(f.ReferencedClass, r.findClass(c, name))
	}
	if attributes {
		r.initializeAttributes(c, nil, f.Attributes)
	}
}

func (r *Resolver) initializeMethod(c *cf.Class, m *cf.Method, attributes bool) {
	m.ReferencedClasses = keepAll(m.ReferencedClasses, r.findReferencedClasses(c, m.Descriptor()))
	if attributes {
		r.initializeAttributes(c, m, m.Attributes)
	}
}

// initializeAttributes resolves the attributes of c, or of its method m
// when m is not nil.
func (r *Resolver) initializeAttributes(c *cf.Class, m *cf.Method, attrs []cf.AttributeInfo) {
	cp := c.ConstantPool
	for i := range attrs {
		switch a := attrs[i].Parsed.(type) {
		case *cf.CodeAttribute:
			r.initializeAttributes(c, m, a.Attributes)
		case *cf.SignatureAttribute:
			a.ReferencedClasses = keepAll(a.ReferencedClasses, r.findReferencedClasses(c, a.Signature(cp)))
		case *cf.EnclosingMethodAttribute:
			r.initializeEnclosingMethod(c, a)
		case *cf.LocalVariableTableAttribute:
			for j := range a.LocalVariableTable {
				lv := &a.LocalVariableTable[j]
				if name := descriptor.InternalClassNameFromType(cp.GetUtf8(lv.DescriptorIndex)); name != "" {
					lv.ReferencedClass = keep(lv.ReferencedClass, r.findClass(c, name))
				}
			}
		case *cf.LocalVariableTypeTableAttribute:
			for j := range a.LocalVariableTypeTable {
				lv := &a.LocalVariableTypeTable[j]
				lv.ReferencedClasses = keepAll(lv.ReferencedClasses, r.findReferencedClasses(c, cp.GetUtf8(lv.SignatureIndex)))
			}
		case *cf.RecordAttribute:
			for _, rc := range a.Components {
				rc.ReferencedField = keep(rc.ReferencedField, c.FindField(cp.GetUtf8(rc.NameIndex), cp.GetUtf8(rc.DescriptorIndex)))
				r.initializeAttributes(c, nil, rc.Attributes)
			}
		case *cf.AnnotationsAttribute:
			for _, ann := range a.Annotations {
				r.initializeAnnotation(c, ann)
			}
		case *cf.ParameterAnnotationsAttribute:
			for _, anns := range a.ParameterAnnotations {
				for _, ann := range anns {
					r.initializeAnnotation(c, ann)
				}
			}
		case *cf.TypeAnnotationsAttribute:
			for _, ann := range a.Annotations {
				r.initializeAnnotation(c, &ann.Annotation)
			}
		case *cf.AnnotationDefaultAttribute:
			if a.DefaultValue != nil {
				a.DefaultValue.ReferencedClass = c
				a.DefaultValue.ReferencedMethod = keep(a.DefaultValue.ReferencedMethod, m)
				r.initializeElementValue(c, nil, a.DefaultValue)
			}
		}
	}
}

func (r *Resolver) initializeEnclosingMethod(c *cf.Class, a *cf.EnclosingMethodAttribute) {
	cp := c.ConstantPool
	className := cp.GetClassName(a.ClassIndex)
	a.ReferencedClass = keep(a.ReferencedClass, r.findClass(c, className))
	if a.ReferencedClass == nil || a.MethodIndex == 0 {
		return
	}

	name, desc := cp.GetNameAndType(a.MethodIndex)
	method := a.ReferencedClass.FindMethod(name, desc)
	if method == nil {
		r.warnMissingMember(c, a.ReferencedClass,
			"can't find enclosing method '"+descriptor.ExternalFullMethodDescription(className, 0, name, desc)+"'")
		return
	}
	a.ReferencedMethod = method
}

func (r *Resolver) initializeAnnotation(c *cf.Class, ann *cf.Annotation) {
	ann.ReferencedClasses = keepAll(ann.ReferencedClasses, r.findReferencedClasses(c, ann.Type(c.ConstantPool)))
	var annotationClass *cf.Class
	if len(ann.ReferencedClasses) > 0 {
		annotationClass = ann.ReferencedClasses[0]
	}
	for _, ev := range ann.ElementValues {
		r.initializeElementValue(c, annotationClass, ev)
	}
}

// initializeElementValue resolves an element value of an annotation of
// type annotationClass, which is nil for unresolved annotation types,
// array entries and annotation defaults.
func (r *Resolver) initializeElementValue(c, annotationClass *cf.Class, ev *cf.ElementValue) {
	cp := c.ConstantPool
	if annotationClass != nil && ev.NameIndex != 0 {
		ev.ReferencedClass = annotationClass
		m, _ := r.finder.FindMethod(nil, annotationClass, ev.Name(cp), "")
		ev.ReferencedMethod = keep(ev.ReferencedMethod, m)
	}

	switch ev.Tag {
	case cf.ElementEnum:
		ev.ReferencedClasses = keepAll(ev.ReferencedClasses, r.findReferencedClasses(c, cp.GetUtf8(ev.TypeNameIndex)))
		if len(ev.ReferencedClasses) > 0 && ev.ReferencedClasses[0] != nil {
			ev.ReferencedField = keep(ev.ReferencedField, r.FindEnumField(ev.ReferencedClasses[0], cp.GetUtf8(ev.ConstNameIndex)))
		}
	case cf.ElementClass:
		ev.ReferencedClasses = keepAll(ev.ReferencedClasses, r.findReferencedClasses(c, cp.GetUtf8(ev.ClassInfoIndex)))
	case cf.ElementAnnotation:
		if ev.AnnotationValue != nil {
			r.initializeAnnotation(c, ev.AnnotationValue)
		}
	case cf.ElementArray:
		for _, v := range ev.Values {
			r.initializeElementValue(c, nil, v)
		}
	}
}
