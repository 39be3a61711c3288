package resolve

import (
	"fmt"
	"strings"

	cf "github.com/dhamidi/classref/classfile"
	"github.com/dhamidi/classref/descriptor"
	"github.com/dhamidi/classref/kotlin"
)

const (
	defaultImplsSuffix    = "$DefaultImpls"
	defaultMethodSuffix   = "$default"
	defaultConstructorArg = "Lkotlin/jvm/internal/DefaultConstructorMarker;"
)

// initializeKotlin links the Kotlin metadata of c. JVM signatures are
// exact, so members are looked up with the strict finder.
func (r *Resolver) initializeKotlin(c *cf.Class) {
	switch m := c.KotlinMetadata.(type) {
	case *kotlin.ClassMetadata:
		r.initializeKotlinClass(c, m)
	case *kotlin.FileFacadeMetadata:
		r.initializeKotlinContainer(c, &m.DeclarationContainer, m)
	case *kotlin.MultiFilePartMetadata:
		m.ReferencedFacadeClass = keep(m.ReferencedFacadeClass, r.findKotlinClass(c, m.FacadeName))
		r.initializeKotlinContainer(c, &m.DeclarationContainer, m)
	case *kotlin.MultiFileFacadeMetadata:
		m.ReferencedOwner = c
		m.ReferencedPartClasses = keepAll(m.ReferencedPartClasses, r.findKotlinClasses(c, "", m.PartClassNames))
	case *kotlin.SyntheticClassMetadata:
		m.ReferencedOwner = c
		for _, f := range m.Functions {
			r.initializeKotlinFunction(c, nil, f)
		}
	}
}

func (r *Resolver) initializeKotlinClass(c *cf.Class, m *kotlin.ClassMetadata) {
	m.ReferencedClass = c
	className := c.Name()

	if m.CompanionObjectName != "" {
		m.ReferencedCompanionClass = keep(m.ReferencedCompanionClass, r.findKotlinClass(c, className+"$"+m.CompanionObjectName))
		m.ReferencedCompanionField = keep(m.ReferencedCompanionField, c.FindField(m.CompanionObjectName, ""))
	}

	m.ReferencedNestedClasses = keepAll(m.ReferencedNestedClasses, r.findKotlinClasses(c, className+"$", m.NestedClassNames))

	entries := make([]*cf.Field, len(m.EnumEntryNames))
	for i, name := range m.EnumEntryNames {
		entries[i] = c.FindField(name, "")
	}
	m.ReferencedEnumEntries = keepAll(m.ReferencedEnumEntries, entries)

	m.ReferencedSealedSubclasses = keepAll(m.ReferencedSealedSubclasses, r.findKotlinClasses(c, "", m.SealedSubclassNames))

	if m.AnonymousObjectOriginName != "" {
		m.ReferencedAnonymousObjectOriginClass = keep(m.ReferencedAnonymousObjectOriginClass, r.findKotlinClass(c, m.AnonymousObjectOriginName))
	}

	if m.IsInterface {
		// Interfaces without default methods have no DefaultImpls class.
		m.ReferencedDefaultImplsClass = keep(m.ReferencedDefaultImplsClass, r.Lookup.Find(className+defaultImplsSuffix))
	}

	r.initializeKotlinTypeParameters(c, m.TypeParameters)
	for _, t := range m.SuperTypes {
		r.initializeKotlinType(c, t)
	}
	for _, ctor := range m.Constructors {
		r.initializeKotlinConstructor(c, ctor)
	}
	r.initializeKotlinContainer(c, &m.DeclarationContainer, m)
}

func (r *Resolver) initializeKotlinContainer(c *cf.Class, d *kotlin.DeclarationContainer, owner kotlin.Metadata) {
	d.ReferencedOwner = c

	var defaultImpls *cf.Class
	if cm, ok := owner.(*kotlin.ClassMetadata); ok {
		defaultImpls = cm.ReferencedDefaultImplsClass
	}

	for _, p := range d.Properties {
		r.initializeKotlinProperty(c, defaultImpls, p)
	}
	for _, p := range d.LocalDelegatedProperties {
		r.initializeKotlinProperty(c, defaultImpls, p)
	}
	for _, f := range d.Functions {
		r.initializeKotlinFunction(c, defaultImpls, f)
	}
	for _, ta := range d.TypeAliases {
		ta.ReferencedDeclarationContainer = owner
		r.initializeKotlinTypeParameters(c, ta.TypeParameters)
		r.initializeKotlinType(c, ta.UnderlyingType)
		r.initializeKotlinType(c, ta.ExpandedType)
	}
}

func (r *Resolver) initializeKotlinProperty(c, defaultImpls *cf.Class, p *kotlin.Property) {
	if sig := p.BackingFieldSignature; sig != nil {
		if f, found := r.strictFinder.FindField(nil, c, sig.Name, sig.Descriptor); f != nil {
			p.ReferencedBackingField, p.ReferencedBackingFieldClass = f, found
		} else {
			r.warnMissingKotlinMember(c, c, "backing field", descriptor.ExternalFullFieldDescription(0, sig.Name, sig.Descriptor))
		}
	}
	if sig := p.GetterSignature; sig != nil {
		m, _ := r.findKotlinMethod(c, defaultImpls, sig, "getter")
		p.ReferencedGetterMethod = keep(p.ReferencedGetterMethod, m)
	}
	if sig := p.SetterSignature; sig != nil {
		m, _ := r.findKotlinMethod(c, defaultImpls, sig, "setter")
		p.ReferencedSetterMethod = keep(p.ReferencedSetterMethod, m)
	}
	if sig := p.SyntheticMethodForAnnotations; sig != nil {
		if m, found := r.findKotlinMethod(c, defaultImpls, sig, "annotations method"); m != nil {
			p.ReferencedSyntheticMethod, p.ReferencedSyntheticMethodClass = m, found
		}
	}

	r.initializeKotlinTypeParameters(c, p.TypeParameters)
	r.initializeKotlinType(c, p.ReceiverType)
	r.initializeKotlinType(c, p.Type)
	r.initializeKotlinValueParameters(c, p.SetterParams)
}

// findKotlinMethod finds a property accessor or its annotations holder.
// Accessors of interface properties with a body live in DefaultImpls,
// taking the interface instance as an extra first parameter.
func (r *Resolver) findKotlinMethod(c, defaultImpls *cf.Class, sig *kotlin.JVMMethodSignature, what string) (*cf.Method, *cf.Class) {
	if m, found := r.strictFinder.FindMethod(nil, c, sig.Name, sig.Descriptor); m != nil {
		return m, found
	}
	if defaultImpls != nil {
		desc := withReceiver(c.Name(), sig.Descriptor)
		if m, found := r.strictFinder.FindMethod(nil, defaultImpls, sig.Name, desc); m != nil {
			return m, found
		}
	}
	r.warnMissingKotlinMember(c, c, what, methodDescription(c, sig.Name, sig.Descriptor))
	return nil, nil
}

func (r *Resolver) initializeKotlinFunction(c, defaultImpls *cf.Class, f *kotlin.Function) {
	if sig := f.JVMSignature; sig != nil {
		method, methodClass := r.strictFinder.FindMethod(nil, c, sig.Name, sig.Descriptor)
		var impl *cf.Method
		var implClass *cf.Class
		if defaultImpls != nil {
			desc := withReceiver(c.Name(), sig.Descriptor)
			impl, implClass = r.strictFinder.FindMethod(nil, defaultImpls, sig.Name, desc)
		}

		if method == nil && impl == nil {
			r.warnMissingKotlinMember(c, c, "function", methodDescription(c, sig.Name, sig.Descriptor))
		}
		if method != nil {
			f.ReferencedMethod, f.ReferencedMethodClass = method, methodClass
		}
		if impl != nil {
			f.ReferencedDefaultImplementationMethod, f.ReferencedDefaultImplementationMethodClass = impl, implClass
		}

		if f.HasDefaultArguments() {
			f.ReferencedDefaultMethod = keep(f.ReferencedDefaultMethod, r.findDefaultMethod(c, defaultImpls, f, sig))
		}
	}

	if f.LambdaClassOriginName != "" {
		f.ReferencedLambdaClassOrigin = keep(f.ReferencedLambdaClassOrigin, r.findKotlinClass(c, f.LambdaClassOriginName))
	}

	r.initializeKotlinTypeParameters(c, f.TypeParameters)
	r.initializeKotlinType(c, f.ReceiverType)
	r.initializeKotlinValueParameters(c, f.ValueParameters)
	r.initializeKotlinType(c, f.ReturnType)
}

// findDefaultMethod finds the static name$default method that fills in
// default arguments. Its parameters are the instance (for members), the
// original parameters, one int mask per 32 parameters and an unused
// Object.
func (r *Resolver) findDefaultMethod(c, defaultImpls *cf.Class, f *kotlin.Function, sig *kotlin.JVMMethodSignature) *cf.Method {
	desc := defaultMethodDescriptor(sig.Descriptor, "Ljava/lang/Object;")

	if _, member := c.KotlinMetadata.(*kotlin.ClassMetadata); member {
		desc = withReceiver(c.Name(), desc)
	}
	in := c
	if defaultImpls != nil && f.ReferencedDefaultImplementationMethod != nil {
		in = defaultImpls
	}

	m, _ := r.strictFinder.FindMethod(nil, in, sig.Name+defaultMethodSuffix, desc)
	if m == nil {
		r.warnMissingKotlinMember(c, in, "default arguments method", methodDescription(in, sig.Name+defaultMethodSuffix, desc))
	}
	return m
}

func (r *Resolver) initializeKotlinConstructor(c *cf.Class, ctor *kotlin.Constructor) {
	if sig := ctor.JVMSignature; sig != nil {
		m, _ := r.strictFinder.FindMethod(nil, c, sig.Name, sig.Descriptor)
		if m == nil {
			r.warnMissingKotlinMember(c, c, "constructor", methodDescription(c, sig.Name, sig.Descriptor))
		}
		ctor.ReferencedMethod = keep(ctor.ReferencedMethod, m)
		if ctor.HasDefaultArguments() {
			desc := defaultMethodDescriptor(sig.Descriptor, defaultConstructorArg)
			dm, _ := r.strictFinder.FindMethod(nil, c, sig.Name, desc)
			ctor.ReferencedDefaultMethod = keep(ctor.ReferencedDefaultMethod, dm)
		}
	}
	r.initializeKotlinValueParameters(c, ctor.ValueParameters)
}

func (r *Resolver) initializeKotlinValueParameters(c *cf.Class, params []*kotlin.ValueParameter) {
	for _, p := range params {
		r.initializeKotlinType(c, p.Type)
		r.initializeKotlinType(c, p.VarargElementType)
	}
}

func (r *Resolver) initializeKotlinTypeParameters(c *cf.Class, params []*kotlin.TypeParameter) {
	for _, tp := range params {
		for _, bound := range tp.UpperBounds {
			r.initializeKotlinType(c, bound)
		}
	}
}

func (r *Resolver) initializeKotlinType(c *cf.Class, t *kotlin.Type) {
	if t == nil {
		return
	}
	switch {
	case t.ClassName != "":
		t.ReferencedClass = keep(t.ReferencedClass, r.findKotlinClass(c, t.ClassName))
	case t.AliasName != "":
		alias := r.findTypeAlias(t.AliasName)
		if alias == nil {
			r.Warnings.MissingClass.Print(c.Name(),
				fmt.Sprintf("%s: can't find referenced type alias %s", external(c.Name()), external(kotlin.JVMClassName(t.AliasName))))
		}
		t.ReferencedTypeAlias = keep(t.ReferencedTypeAlias, alias)
	}

	for _, arg := range t.Arguments {
		r.initializeKotlinType(c, arg)
	}
	for _, bound := range t.UpperBounds {
		r.initializeKotlinType(c, bound)
	}
	r.initializeKotlinType(c, t.OuterType)
	r.initializeKotlinType(c, t.AbbreviatedType)
}

// findKotlinClass resolves a class name from Kotlin metadata, falling back
// to the built-in Kotlin types before warning.
func (r *Resolver) findKotlinClass(referencing *cf.Class, kotlinName string) *cf.Class {
	name := kotlin.JVMClassName(kotlinName)
	if k := r.Lookup.Find(name); k != nil {
		r.checkDependency(referencing, k)
		return k
	}
	if k := kotlin.DummyClass(name); k != nil {
		return k
	}
	r.Warnings.MissingClass.PrintBoth(referencing.Name(), name,
		fmt.Sprintf("%s: can't find referenced class %s", external(referencing.Name()), external(name)))
	return nil
}

// findKotlinClasses resolves each of names, prefixed with prefix. The
// result has one slot per name.
func (r *Resolver) findKotlinClasses(referencing *cf.Class, prefix string, names []string) []*cf.Class {
	classes := make([]*cf.Class, len(names))
	for i, name := range names {
		classes[i] = r.findKotlinClass(referencing, prefix+name)
	}
	return classes
}

// findTypeAlias searches the declaration containers of the package or
// class that declares an alias for its declaration. Aliases are declared
// at the top level of a file, so they sit in a file facade or multi-file
// part of their package; nested aliases sit in their outer class. The
// first declaration found wins.
func (r *Resolver) findTypeAlias(aliasName string) *kotlin.TypeAlias {
	// TODO: strip the companion prefix so aliases nested in companion
	// objects are found in their outer class.
	prefix, simpleName := "", aliasName
	if i := strings.LastIndexAny(aliasName, "/."); i >= 0 {
		prefix, simpleName = aliasName[:i], aliasName[i+1:]
	}
	outerClass := kotlin.JVMClassName(prefix)

	var alias *kotlin.TypeAlias
	r.Lookup.Visit(func(k *cf.Class) bool {
		if k.KotlinMetadata == nil {
			return true
		}
		if k.Name() != outerClass && descriptor.InternalPackageName(k.Name()) != prefix {
			return true
		}
		if d := kotlin.Container(k.KotlinMetadata); d != nil {
			alias = d.FindTypeAlias(simpleName)
		}
		return alias == nil
	})
	return alias
}

func (r *Resolver) warnMissingKotlinMember(c, owner *cf.Class, what, description string) {
	r.warnMissingMember(c, owner, fmt.Sprintf("can't find Kotlin %s '%s'", what, description))
}

func methodDescription(owner *cf.Class, name, desc string) string {
	return descriptor.ExternalFullMethodDescription(owner.Name(), 0, name, desc)
}

// withReceiver prepends a parameter of class type className to a method
// descriptor.
func withReceiver(className, desc string) string {
	return "(L" + className + ";" + strings.TrimPrefix(desc, "(")
}

// defaultMethodDescriptor appends the default argument masks and the
// trailing marker parameter to a method descriptor.
func defaultMethodDescriptor(desc, marker string) string {
	params := descriptor.InternalMethodParameterCount(desc)
	end := strings.LastIndexByte(desc, ')')
	masks := strings.Repeat("I", (params+31)/32)
	return desc[:end] + masks + marker + desc[end:]
}
