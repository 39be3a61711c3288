package kotlin

import (
	"sync"

	cf "github.com/dhamidi/classref/classfile"
)

// Built-in Kotlin types that have no class file of their own: the compiler
// maps them to JVM primitives or java.lang and java.util types.
var builtinClassNames = []string{
	"kotlin/Any",
	"kotlin/Nothing",
	"kotlin/Unit",
	"kotlin/Boolean",
	"kotlin/Byte",
	"kotlin/Char",
	"kotlin/Short",
	"kotlin/Int",
	"kotlin/Long",
	"kotlin/Float",
	"kotlin/Double",
	"kotlin/String",
	"kotlin/CharSequence",
	"kotlin/Number",
	"kotlin/Comparable",
	"kotlin/Enum",
	"kotlin/Annotation",
	"kotlin/Throwable",
	"kotlin/Cloneable",
	"kotlin/Array",
	"kotlin/BooleanArray",
	"kotlin/ByteArray",
	"kotlin/CharArray",
	"kotlin/ShortArray",
	"kotlin/IntArray",
	"kotlin/LongArray",
	"kotlin/FloatArray",
	"kotlin/DoubleArray",
	"kotlin/Function",
	"kotlin/collections/Iterable",
	"kotlin/collections/MutableIterable",
	"kotlin/collections/Iterator",
	"kotlin/collections/MutableIterator",
	"kotlin/collections/ListIterator",
	"kotlin/collections/MutableListIterator",
	"kotlin/collections/Collection",
	"kotlin/collections/MutableCollection",
	"kotlin/collections/List",
	"kotlin/collections/MutableList",
	"kotlin/collections/Set",
	"kotlin/collections/MutableSet",
	"kotlin/collections/Map",
	"kotlin/collections/MutableMap",
	"kotlin/collections/Map$Entry",
	"kotlin/collections/MutableMap$MutableEntry",
}

var (
	dummyOnce    sync.Once
	dummyClasses map[string]*cf.Class
)

// DummyClass returns a placeholder library class for a Kotlin built-in
// type, or nil if name is not one. The placeholders are shared and must
// not be modified.
func DummyClass(name string) *cf.Class {
	dummyOnce.Do(func() {
		dummyClasses = make(map[string]*cf.Class, len(builtinClassNames))
		for _, n := range builtinClassNames {
			dummyClasses[n] = cf.NewClassBuilder(n, cf.NameJavaLangObject, cf.AccPublic|cf.AccFinal).
				MustBuild(cf.AsLibrary())
		}
	})
	return dummyClasses[name]
}

// IsBuiltin reports whether name is a built-in Kotlin type.
func IsBuiltin(name string) bool {
	return DummyClass(name) != nil
}
