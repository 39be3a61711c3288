package resolve

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cf "github.com/dhamidi/classref/classfile"
	"github.com/dhamidi/classref/classpool"
	"github.com/dhamidi/classref/kotlin"
)

// driverFixture fills a fixture with one class for each kind of warning,
// a class with a malformed descriptor, an override to link and a Kotlin
// multi-file facade.
func driverFixture(t *testing.T) *fixture {
	f := newFixture(t)
	f.addLibrary(cf.NewClassBuilder("kotlin/Metadata", cf.NameJavaLangObject, cf.AccPublic|cf.AccInterface|cf.AccAbstract|cf.AccAnnotation))
	f.addLibrary(cf.NewClassBuilder("lib/Lib", cf.NameJavaLangObject, cf.AccPublic).
		Method(cf.AccPublic, "take", "(Lq/NotThere;)V"))
	f.addLibrary(cf.NewClassBuilder("lib/Dep", cf.NameJavaLangObject, cf.AccPublic).
		Method(cf.AccPublic, "take", "(Lp/A;)V"))

	f.addProgram(cf.NewClassBuilder("p/A", "p/Base", cf.AccPublic))
	main := cf.NewClassBuilder("p/Main", cf.NameJavaLangObject, cf.AccPublic)
	main.Pool().AddMethodref("lib/Lib", "gone", "()V")
	f.addProgram(main)
	f.addProgram(cf.NewClassBuilder("p/Broken", cf.NameJavaLangObject, cf.AccPublic).
		Method(cf.AccPublic, "m", "(Lbroken"))
	f.addProgram(cf.NewClassBuilder("p/X", cf.NameJavaLangObject, cf.AccPublic).
		Method(cf.AccPublic, "toString", "()Ljava/lang/String;"))

	facade := cf.NewClassBuilder("p/Utils", cf.NameJavaLangObject, cf.AccPublic|cf.AccFinal)
	facade.Attribute(facade.Annotations(true, cf.AnnotationSpec{
		Type: "Lkotlin/Metadata;",
		Elements: []cf.ElementSpec{
			{Name: "k", Value: cf.IntValue(kotlin.KindMultiFileClassFacade)},
			{Name: "d1", Value: cf.StringArrayValue("p/Utils__AKt")},
		},
	}))
	f.addProgram(facade)
	f.addProgram(cf.NewClassBuilder("p/Utils__AKt", cf.NameJavaLangObject, cf.AccFinal))
	return f
}

func TestDriverRun(t *testing.T) {
	f := driverFixture(t)
	var out bytes.Buffer
	d := NewDriver(f.program, f.library, Options{
		Output:                  &out,
		WarnLibraryDependencies: true,
		LinkMethods:             true,
		KotlinMetadata:          true,
	})
	stats := d.Run()

	assert.Equal(t, Stats{
		MissingClasses: 2,
		LibraryMembers: 1,
		Dependencies:   1,
		Malformed:      1,
	}, stats)
	assert.Equal(t, 4, stats.Total())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(t, lines, 4)
	assert.Contains(t, lines, "Warning: p.A: can't find superclass or interface p.Base")
	assert.Contains(t, lines, "Warning: p.A: can't find referenced class p.Base")
	assert.Contains(t, lines, "Warning: p.Main: can't find referenced method 'void gone()' in library class lib.Lib")
	assert.Contains(t, lines, "Warning: library class lib.Dep depends on program class p.A")

	x := f.program.Get("p/X")
	object := f.library.Get(cf.NameJavaLangObject)
	assert.Same(t, object.FindMethod("toString", ""), x.FindMethod("toString", "").Link)
	assert.Contains(t, object.SubClasses, x)

	meta, ok := f.program.Get("p/Utils").KotlinMetadata.(*kotlin.MultiFileFacadeMetadata)
	require.True(t, ok)
	assert.Equal(t, []*cf.Class{f.program.Get("p/Utils__AKt")}, meta.ReferencedPartClasses)

	assert.Same(t, d.Resolver(cf.LibraryClass), d.Resolver(cf.LibraryClass))
	assert.NotSame(t, d.Resolver(cf.ProgramClass), d.Resolver(cf.LibraryClass))
}

func TestDriverFilters(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want Stats
	}{
		{
			name: "defaults",
			want: Stats{MissingClasses: 2, LibraryMembers: 1, Malformed: 1},
		},
		{
			name: "dontwarn",
			opts: Options{
				DontWarn:                classpool.MustNameFilter("p/A"),
				WarnLibraryDependencies: true,
			},
			want: Stats{LibraryMembers: 1, Malformed: 1},
		},
		{
			name: "per channel",
			opts: Options{
				DontWarnMissingClasses:  classpool.MustNameFilter("p/**"),
				DontWarnLibraryMembers:  classpool.MustNameFilter("lib/*"),
				WarnLibraryDependencies: true,
			},
			want: Stats{Dependencies: 1, Malformed: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := driverFixture(t)
			stats := NewDriver(f.program, f.library, tt.opts).Run()
			assert.Equal(t, tt.want, stats)
		})
	}
}

func TestDriverWithoutKotlinMetadata(t *testing.T) {
	f := driverFixture(t)
	NewDriver(f.program, f.library, Options{}).Run()

	assert.Nil(t, f.program.Get("p/Utils").KotlinMetadata)
	assert.Nil(t, f.program.Get("p/X").FindMethod("toString", "").Link)
}
