package descriptor

import (
	"strings"

	cf "github.com/dhamidi/classref/classfile"
)

type flagKeyword struct {
	flag    cf.AccessFlags
	keyword string
}

var (
	classKeywords = []flagKeyword{
		{cf.AccPublic, "public"},
		{cf.AccPrivate, "private"},
		{cf.AccProtected, "protected"},
		{cf.AccStatic, "static"},
		{cf.AccFinal, "final"},
		{cf.AccSynthetic, "synthetic"},
	}
	fieldKeywords = []flagKeyword{
		{cf.AccPublic, "public"},
		{cf.AccPrivate, "private"},
		{cf.AccProtected, "protected"},
		{cf.AccStatic, "static"},
		{cf.AccFinal, "final"},
		{cf.AccVolatile, "volatile"},
		{cf.AccTransient, "transient"},
		{cf.AccSynthetic, "synthetic"},
		{cf.AccEnum, "enum"},
	}
	methodKeywords = []flagKeyword{
		{cf.AccPublic, "public"},
		{cf.AccPrivate, "private"},
		{cf.AccProtected, "protected"},
		{cf.AccStatic, "static"},
		{cf.AccFinal, "final"},
		{cf.AccSynchronized, "synchronized"},
		{cf.AccBridge, "bridge"},
		{cf.AccVarargs, "varargs"},
		{cf.AccNative, "native"},
		{cf.AccAbstract, "abstract"},
		{cf.AccStrict, "strictfp"},
		{cf.AccSynthetic, "synthetic"},
	}
	moduleKeywords = []flagKeyword{
		{cf.AccOpen, "open"},
		{cf.AccSynthetic, "synthetic"},
		{cf.AccMandated, "mandated"},
	}
	requiresKeywords = []flagKeyword{
		{cf.AccTransitive, "transitive"},
		{cf.AccStaticPhase, "static"},
		{cf.AccSynthetic, "synthetic"},
		{cf.AccMandated, "mandated"},
	}
	exportsKeywords = []flagKeyword{
		{cf.AccSynthetic, "synthetic"},
		{cf.AccMandated, "mandated"},
	}
)

// renderFlags joins the keywords of the set flags, each followed by a
// space, so the result can be used directly as a prefix.
func renderFlags(flags cf.AccessFlags, keywords []flagKeyword) string {
	var sb strings.Builder
	for _, k := range keywords {
		if flags&k.flag != 0 {
			sb.WriteString(k.keyword)
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

// ExternalClassAccessFlags renders class flags followed by the kind of type
// when it is not a plain class, as in "public final " or "public interface ".
func ExternalClassAccessFlags(flags cf.AccessFlags) string {
	s := renderFlags(flags, classKeywords)
	switch {
	case flags&cf.AccModule != 0:
		return s + "module "
	case flags&cf.AccAnnotation != 0:
		return s + "@interface "
	case flags&cf.AccInterface != 0:
		return s + "interface "
	case flags&cf.AccEnum != 0:
		return s + "enum "
	case flags&cf.AccAbstract != 0:
		return s + "abstract "
	}
	return s
}

func ExternalFieldAccessFlags(flags cf.AccessFlags) string {
	return renderFlags(flags, fieldKeywords)
}

func ExternalMethodAccessFlags(flags cf.AccessFlags) string {
	return renderFlags(flags, methodKeywords)
}

func ExternalModuleAccessFlags(flags cf.AccessFlags) string {
	return renderFlags(flags, moduleKeywords)
}

func ExternalRequiresAccessFlags(flags cf.AccessFlags) string {
	return renderFlags(flags, requiresKeywords)
}

func ExternalExportsAccessFlags(flags cf.AccessFlags) string {
	return renderFlags(flags, exportsKeywords)
}

func ExternalOpensAccessFlags(flags cf.AccessFlags) string {
	return renderFlags(flags, exportsKeywords)
}
