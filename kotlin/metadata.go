// Package kotlin models the declarations recorded in kotlin.Metadata
// annotations and the links the resolve package adds to them.
//
// Class names in the model use Kotlin's convention: '/' separates
// packages, '.' separates nested classes and a leading '.' marks a local
// class. JVMClassName converts them to internal names.
package kotlin

import (
	"strings"

	cf "github.com/dhamidi/classref/classfile"
)

// Metadata kinds, as stored in the k element of kotlin.Metadata.
const (
	KindClass                = 1
	KindFileFacade           = 2
	KindSyntheticClass       = 3
	KindMultiFileClassFacade = 4
	KindMultiFileClassPart   = 5
)

// Header holds the raw elements of a kotlin.Metadata annotation.
type Header struct {
	Kind            int
	MetadataVersion []int
	Data1           []string
	Data2           []string
	ExtraString     string
	PackageName     string
	ExtraInt        int
}

func (h *Header) KotlinKind() int { return h.Kind }

// Metadata is implemented by the declaration containers below.
type Metadata interface {
	cf.KotlinMetadata
	Owner() *cf.Class
}

// JVMClassName converts a Kotlin class name to an internal class name.
func JVMClassName(kotlinName string) string {
	name := strings.TrimPrefix(kotlinName, ".")
	return strings.ReplaceAll(name, ".", "$")
}

// DeclarationContainer holds the declarations shared by classes, file
// facades and multi-file class parts.
type DeclarationContainer struct {
	Properties               []*Property
	Functions                []*Function
	TypeAliases              []*TypeAlias
	LocalDelegatedProperties []*Property

	// ReferencedOwner is the class carrying the metadata.
	ReferencedOwner *cf.Class
}

func (d *DeclarationContainer) Owner() *cf.Class { return d.ReferencedOwner }

// FindTypeAlias returns the type alias with the given simple name.
func (d *DeclarationContainer) FindTypeAlias(name string) *TypeAlias {
	for _, ta := range d.TypeAliases {
		if ta.Name == name {
			return ta
		}
	}
	return nil
}

// Container returns the declaration container of m, if it has one.
func Container(m cf.KotlinMetadata) *DeclarationContainer {
	switch m := m.(type) {
	case *ClassMetadata:
		return &m.DeclarationContainer
	case *FileFacadeMetadata:
		return &m.DeclarationContainer
	case *MultiFilePartMetadata:
		return &m.DeclarationContainer
	}
	return nil
}

type ClassMetadata struct {
	Header
	DeclarationContainer

	Name                      string
	IsInterface               bool
	TypeParameters            []*TypeParameter
	SuperTypes                []*Type
	Constructors              []*Constructor
	CompanionObjectName       string
	NestedClassNames          []string
	EnumEntryNames            []string
	SealedSubclassNames       []string
	AnonymousObjectOriginName string

	ReferencedClass                      *cf.Class
	ReferencedCompanionClass             *cf.Class
	ReferencedCompanionField             *cf.Field
	ReferencedNestedClasses              []*cf.Class
	ReferencedEnumEntries                []*cf.Field
	ReferencedSealedSubclasses           []*cf.Class
	ReferencedAnonymousObjectOriginClass *cf.Class
	ReferencedDefaultImplsClass          *cf.Class
}

type FileFacadeMetadata struct {
	Header
	DeclarationContainer
}

type SyntheticFlavor int

const (
	SyntheticRegular SyntheticFlavor = iota
	SyntheticLambda
	SyntheticWhenMappings
	SyntheticDefaultImpls
)

type SyntheticClassMetadata struct {
	Header

	Flavor SyntheticFlavor
	// Functions holds the lambda's function, if Flavor is SyntheticLambda.
	Functions []*Function

	ReferencedOwner *cf.Class
}

func (s *SyntheticClassMetadata) Owner() *cf.Class { return s.ReferencedOwner }

type MultiFileFacadeMetadata struct {
	Header

	PartClassNames []string

	ReferencedOwner       *cf.Class
	ReferencedPartClasses []*cf.Class
}

func (f *MultiFileFacadeMetadata) Owner() *cf.Class { return f.ReferencedOwner }

type MultiFilePartMetadata struct {
	Header
	DeclarationContainer

	FacadeName string

	ReferencedFacadeClass *cf.Class
}

// JVMMethodSignature and JVMFieldSignature locate the JVM members a Kotlin
// declaration compiles to.
type JVMMethodSignature struct {
	Name       string
	Descriptor string
}

type JVMFieldSignature struct {
	Name       string
	Descriptor string
}

type Property struct {
	Name           string
	HasGetter      bool
	HasSetter      bool
	TypeParameters []*TypeParameter
	ReceiverType   *Type
	Type           *Type
	SetterParams   []*ValueParameter

	BackingFieldSignature         *JVMFieldSignature
	GetterSignature               *JVMMethodSignature
	SetterSignature               *JVMMethodSignature
	SyntheticMethodForAnnotations *JVMMethodSignature

	ReferencedBackingField         *cf.Field
	ReferencedBackingFieldClass    *cf.Class
	ReferencedGetterMethod         *cf.Method
	ReferencedSetterMethod         *cf.Method
	ReferencedSyntheticMethod      *cf.Method
	ReferencedSyntheticMethodClass *cf.Class
}

type Function struct {
	Name                  string
	TypeParameters        []*TypeParameter
	ReceiverType          *Type
	ValueParameters       []*ValueParameter
	ReturnType            *Type
	JVMSignature          *JVMMethodSignature
	LambdaClassOriginName string

	ReferencedMethod      *cf.Method
	ReferencedMethodClass *cf.Class
	// ReferencedDefaultMethod is the synthetic name$default method that
	// fills in default arguments.
	ReferencedDefaultMethod *cf.Method
	// ReferencedDefaultImplementationMethod is the static method in an
	// interface's DefaultImpls class holding the function body.
	ReferencedDefaultImplementationMethod      *cf.Method
	ReferencedDefaultImplementationMethodClass *cf.Class
	ReferencedLambdaClassOrigin                *cf.Class
}

// HasDefaultArguments reports whether any value parameter declares a
// default value.
func (f *Function) HasDefaultArguments() bool {
	return anyDefault(f.ValueParameters)
}

type Constructor struct {
	ValueParameters []*ValueParameter
	JVMSignature    *JVMMethodSignature

	ReferencedMethod        *cf.Method
	ReferencedDefaultMethod *cf.Method
}

func (c *Constructor) HasDefaultArguments() bool {
	return anyDefault(c.ValueParameters)
}

func anyDefault(params []*ValueParameter) bool {
	for _, p := range params {
		if p.HasDefaultValue {
			return true
		}
	}
	return false
}

type TypeAlias struct {
	Name           string
	TypeParameters []*TypeParameter
	UnderlyingType *Type
	ExpandedType   *Type

	// ReferencedDeclarationContainer is the container declaring the alias.
	ReferencedDeclarationContainer Metadata
}

// Type is a use of a type. Exactly one of ClassName, AliasName and
// TypeParameterID identifies it; TypeParameterID is -1 when unused.
type Type struct {
	ClassName       string
	AliasName       string
	TypeParameterID int
	Nullable        bool
	Arguments       []*Type
	OuterType       *Type
	AbbreviatedType *Type
	UpperBounds     []*Type

	ReferencedClass     *cf.Class
	ReferencedTypeAlias *TypeAlias
}

type TypeParameter struct {
	Name        string
	ID          int
	UpperBounds []*Type
}

type ValueParameter struct {
	Name              string
	Index             int
	HasDefaultValue   bool
	Type              *Type
	VarargElementType *Type
}
