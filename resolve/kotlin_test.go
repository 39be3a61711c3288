package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cf "github.com/dhamidi/classref/classfile"
	"github.com/dhamidi/classref/kotlin"
)

func TestKotlinClassMetadata(t *testing.T) {
	f := newFixture(t)
	f.addLibrary(cf.NewClassBuilder("kotlin/jvm/internal/DefaultConstructorMarker", cf.NameJavaLangObject, cf.AccPublic|cf.AccFinal))
	shape := f.addProgram(cf.NewClassBuilder("p/Shape", cf.NameJavaLangObject, cf.AccPublic|cf.AccAbstract).
		Field(cf.AccPublic|cf.AccStatic|cf.AccFinal, "Companion", "Lp/Shape$Companion;").
		Field(cf.AccPrivate|cf.AccFinal, "size", "I").
		Method(cf.AccPublic, cf.MethodNameInit, "(I)V").
		Method(cf.AccPublic|cf.AccSynthetic, cf.MethodNameInit, "(IILkotlin/jvm/internal/DefaultConstructorMarker;)V").
		Method(cf.AccPublic|cf.AccFinal, "getSize", "()I").
		Method(cf.AccPublic, "area", "(D)D").
		Method(cf.AccPublic|cf.AccStatic|cf.AccSynthetic, "area$default", "(Lp/Shape;DILjava/lang/Object;)D"))
	companion := f.addProgram(cf.NewClassBuilder("p/Shape$Companion", cf.NameJavaLangObject, cf.AccPublic|cf.AccFinal))
	inner := f.addProgram(cf.NewClassBuilder("p/Shape$Inner", cf.NameJavaLangObject, cf.AccPublic|cf.AccFinal))
	circle := f.addProgram(cf.NewClassBuilder("p/Circle", "p/Shape", cf.AccPublic|cf.AccFinal))

	size := &kotlin.Property{
		Name:                  "size",
		Type:                  &kotlin.Type{ClassName: "kotlin/Int"},
		BackingFieldSignature: &kotlin.JVMFieldSignature{Name: "size", Descriptor: "I"},
		GetterSignature:       &kotlin.JVMMethodSignature{Name: "getSize", Descriptor: "()I"},
	}
	area := &kotlin.Function{
		Name:         "area",
		JVMSignature: &kotlin.JVMMethodSignature{Name: "area", Descriptor: "(D)D"},
		ValueParameters: []*kotlin.ValueParameter{
			{Name: "scale", HasDefaultValue: true, Type: &kotlin.Type{ClassName: "kotlin/Double"}},
		},
		ReturnType: &kotlin.Type{ClassName: "kotlin/Double"},
	}
	ctor := &kotlin.Constructor{
		JVMSignature: &kotlin.JVMMethodSignature{Name: cf.MethodNameInit, Descriptor: "(I)V"},
		ValueParameters: []*kotlin.ValueParameter{
			{Name: "size", HasDefaultValue: true, Type: &kotlin.Type{ClassName: "kotlin/Int"}},
		},
	}
	meta := &kotlin.ClassMetadata{
		Header:               kotlin.Header{Kind: kotlin.KindClass},
		DeclarationContainer: kotlin.DeclarationContainer{Properties: []*kotlin.Property{size}, Functions: []*kotlin.Function{area}},
		Name:                 "p/Shape",
		SuperTypes:           []*kotlin.Type{{ClassName: "kotlin/Any"}},
		Constructors:         []*kotlin.Constructor{ctor},
		CompanionObjectName:  "Companion",
		NestedClassNames:     []string{"Inner"},
		SealedSubclassNames:  []string{"p/Circle"},
	}
	shape.KotlinMetadata = meta

	f.resolve()
	require.Empty(t, f.lines())

	assert.Same(t, shape, meta.ReferencedClass)
	assert.Same(t, shape, meta.Owner())
	assert.Same(t, companion, meta.ReferencedCompanionClass)
	assert.Same(t, shape.FindField("Companion", ""), meta.ReferencedCompanionField)
	assert.Equal(t, []*cf.Class{inner}, meta.ReferencedNestedClasses)
	assert.Equal(t, []*cf.Class{circle}, meta.ReferencedSealedSubclasses)
	assert.Nil(t, meta.ReferencedDefaultImplsClass)
	assert.Same(t, kotlin.DummyClass("kotlin/Any"), meta.SuperTypes[0].ReferencedClass)

	assert.Same(t, shape.FindField("size", "I"), size.ReferencedBackingField)
	assert.Same(t, shape, size.ReferencedBackingFieldClass)
	assert.Same(t, shape.FindMethod("getSize", "()I"), size.ReferencedGetterMethod)
	assert.Same(t, kotlin.DummyClass("kotlin/Int"), size.Type.ReferencedClass)

	assert.Same(t, shape.FindMethod("area", "(D)D"), area.ReferencedMethod)
	assert.Same(t, shape, area.ReferencedMethodClass)
	assert.Same(t, shape.FindMethod("area$default", ""), area.ReferencedDefaultMethod)
	assert.Same(t, kotlin.DummyClass("kotlin/Double"), area.ReturnType.ReferencedClass)

	assert.Same(t, shape.FindMethod(cf.MethodNameInit, "(I)V"), ctor.ReferencedMethod)
	assert.Same(t, shape.FindMethod(cf.MethodNameInit, "(IILkotlin/jvm/internal/DefaultConstructorMarker;)V"), ctor.ReferencedDefaultMethod)
}

func TestKotlinMissingDeclarations(t *testing.T) {
	f := newFixture(t)
	k := f.addProgram(cf.NewClassBuilder("p/K", cf.NameJavaLangObject, cf.AccPublic))
	k.KotlinMetadata = &kotlin.ClassMetadata{
		Name: "p/K",
		DeclarationContainer: kotlin.DeclarationContainer{
			Properties: []*kotlin.Property{{
				Name:                  "x",
				BackingFieldSignature: &kotlin.JVMFieldSignature{Name: "x", Descriptor: "I"},
			}},
			Functions: []*kotlin.Function{{
				Name:         "gone",
				JVMSignature: &kotlin.JVMMethodSignature{Name: "gone", Descriptor: "()V"},
			}},
		},
		SealedSubclassNames: []string{"p/Gone"},
	}
	f.resolve()

	assert.Equal(t, []string{
		"Warning: p.K: can't find referenced class p.Gone",
		"Warning: p.K: can't find Kotlin backing field 'int x' in program class p.K",
		"Warning: p.K: can't find Kotlin function 'void gone()' in program class p.K",
	}, f.lines())
	assert.Equal(t, 1, f.warnings.MissingClass.Count())
	assert.Equal(t, 2, f.warnings.ProgramMember.Count())
}

func TestKotlinInterfaceDefaultImpls(t *testing.T) {
	f := newFixture(t)
	greeter := f.addProgram(cf.NewClassBuilder("p/Greeter", cf.NameJavaLangObject, cf.AccPublic|cf.AccInterface|cf.AccAbstract).
		Method(cf.AccPublic|cf.AccAbstract, "greet", "(Ljava/lang/String;)Ljava/lang/String;"))
	impls := f.addProgram(cf.NewClassBuilder("p/Greeter$DefaultImpls", cf.NameJavaLangObject, cf.AccPublic|cf.AccFinal).
		Method(cf.AccPublic|cf.AccStatic, "greet", "(Lp/Greeter;Ljava/lang/String;)Ljava/lang/String;").
		Method(cf.AccPublic|cf.AccStatic, "getTitle", "(Lp/Greeter;)Ljava/lang/String;"))

	greet := &kotlin.Function{
		Name:         "greet",
		JVMSignature: &kotlin.JVMMethodSignature{Name: "greet", Descriptor: "(Ljava/lang/String;)Ljava/lang/String;"},
	}
	title := &kotlin.Property{
		Name:            "title",
		GetterSignature: &kotlin.JVMMethodSignature{Name: "getTitle", Descriptor: "()Ljava/lang/String;"},
	}
	meta := &kotlin.ClassMetadata{
		Name:        "p/Greeter",
		IsInterface: true,
		DeclarationContainer: kotlin.DeclarationContainer{
			Properties: []*kotlin.Property{title},
			Functions:  []*kotlin.Function{greet},
		},
	}
	greeter.KotlinMetadata = meta
	f.resolve()
	require.Empty(t, f.lines())

	assert.Same(t, impls, meta.ReferencedDefaultImplsClass)
	assert.Same(t, greeter.FindMethod("greet", ""), greet.ReferencedMethod)
	assert.Same(t, impls.FindMethod("greet", ""), greet.ReferencedDefaultImplementationMethod)
	assert.Same(t, impls, greet.ReferencedDefaultImplementationMethodClass)
	assert.Same(t, impls.FindMethod("getTitle", ""), title.ReferencedGetterMethod)
}

func TestKotlinTypeAliases(t *testing.T) {
	f := newFixture(t)
	utils := f.addProgram(cf.NewClassBuilder("p/UtilsKt", cf.NameJavaLangObject, cf.AccPublic|cf.AccFinal).
		Method(cf.AccPublic|cf.AccStatic, "greet", "(Ljava/lang/String;)V"))
	other := f.addProgram(cf.NewClassBuilder("q/OtherKt", cf.NameJavaLangObject, cf.AccPublic|cf.AccFinal))

	alias := &kotlin.TypeAlias{
		Name:           "Name",
		UnderlyingType: &kotlin.Type{ClassName: "kotlin/String"},
		ExpandedType:   &kotlin.Type{ClassName: "kotlin/String"},
	}
	param := &kotlin.Type{AliasName: "p/Name"}
	facade := &kotlin.FileFacadeMetadata{
		Header: kotlin.Header{Kind: kotlin.KindFileFacade},
		DeclarationContainer: kotlin.DeclarationContainer{
			TypeAliases: []*kotlin.TypeAlias{alias},
			Functions: []*kotlin.Function{{
				Name:            "greet",
				JVMSignature:    &kotlin.JVMMethodSignature{Name: "greet", Descriptor: "(Ljava/lang/String;)V"},
				ValueParameters: []*kotlin.ValueParameter{{Name: "name", Type: param}},
			}},
		},
	}
	utils.KotlinMetadata = facade

	missing := &kotlin.Type{AliasName: "q/Missing"}
	other.KotlinMetadata = &kotlin.FileFacadeMetadata{
		DeclarationContainer: kotlin.DeclarationContainer{
			Properties: []*kotlin.Property{{Name: "id", Type: missing}},
		},
	}
	f.resolve()

	assert.Same(t, alias, param.ReferencedTypeAlias)
	assert.Same(t, facade, alias.ReferencedDeclarationContainer)
	assert.Same(t, utils, facade.Owner())
	assert.Same(t, kotlin.DummyClass("kotlin/String"), alias.ExpandedType.ReferencedClass)
	assert.Nil(t, missing.ReferencedTypeAlias)
	assert.Equal(t, []string{"Warning: q.OtherKt: can't find referenced type alias q.Missing"}, f.lines())
}

func TestKotlinMultiFileFacade(t *testing.T) {
	f := newFixture(t)
	facadeClass := f.addProgram(cf.NewClassBuilder("p/Utils", cf.NameJavaLangObject, cf.AccPublic|cf.AccFinal))
	partA := f.addProgram(cf.NewClassBuilder("p/Utils__AKt", cf.NameJavaLangObject, cf.AccFinal))
	partB := f.addProgram(cf.NewClassBuilder("p/Utils__BKt", cf.NameJavaLangObject, cf.AccFinal))

	facade := &kotlin.MultiFileFacadeMetadata{PartClassNames: []string{"p/Utils__AKt", "p/Utils__BKt"}}
	facadeClass.KotlinMetadata = facade
	partMeta := &kotlin.MultiFilePartMetadata{FacadeName: "p/Utils"}
	partA.KotlinMetadata = partMeta
	f.resolve()
	require.Empty(t, f.lines())

	assert.Same(t, facadeClass, facade.Owner())
	assert.Equal(t, []*cf.Class{partA, partB}, facade.ReferencedPartClasses)
	assert.Same(t, facadeClass, partMeta.ReferencedFacadeClass)
	assert.Same(t, partA, partMeta.Owner())
}

func TestKotlinLambda(t *testing.T) {
	f := newFixture(t)
	outer := f.addProgram(cf.NewClassBuilder("p/MainKt", cf.NameJavaLangObject, cf.AccPublic|cf.AccFinal))
	lambda := f.addProgram(cf.NewClassBuilder("p/MainKt$main$1", cf.NameJavaLangObject, cf.AccFinal).
		Method(cf.AccPublic|cf.AccFinal, "invoke", "()V"))

	fn := &kotlin.Function{
		Name:                  "<anonymous>",
		JVMSignature:          &kotlin.JVMMethodSignature{Name: "invoke", Descriptor: "()V"},
		LambdaClassOriginName: "p/MainKt",
	}
	meta := &kotlin.SyntheticClassMetadata{Flavor: kotlin.SyntheticLambda, Functions: []*kotlin.Function{fn}}
	lambda.KotlinMetadata = meta
	f.resolve()
	require.Empty(t, f.lines())

	assert.Same(t, lambda, meta.Owner())
	assert.Same(t, lambda.FindMethod("invoke", ""), fn.ReferencedMethod)
	assert.Same(t, outer, fn.ReferencedLambdaClassOrigin)
}

func TestDefaultMethodDescriptor(t *testing.T) {
	assert.Equal(t, "(DILjava/lang/Object;)D", defaultMethodDescriptor("(D)D", "Ljava/lang/Object;"))
	assert.Equal(t, "(IILkotlin/jvm/internal/DefaultConstructorMarker;)V",
		defaultMethodDescriptor("(I)V", "Lkotlin/jvm/internal/DefaultConstructorMarker;"))
	assert.Equal(t, "(Lp/K;I)V", withReceiver("p/K", "(I)V"))
}
