package classpool

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cf "github.com/dhamidi/classref/classfile"
)

func class(t *testing.T, name string, opts ...cf.ParseOption) *cf.Class {
	t.Helper()
	c, err := cf.NewClassBuilder(name, cf.NameJavaLangObject, cf.AccPublic).Build(opts...)
	require.NoError(t, err)
	return c
}

func classBytes(t *testing.T, name string) []byte {
	t.Helper()
	data, err := cf.NewClassBuilder(name, cf.NameJavaLangObject, cf.AccPublic).Bytes()
	require.NoError(t, err)
	return data
}

func TestClassPool(t *testing.T) {
	p := New(class(t, "b/B"), class(t, "a/A"), class(t, "a/sub/C"))

	assert.Equal(t, 3, p.Size())
	assert.Equal(t, []string{"a/A", "a/sub/C", "b/B"}, p.ClassNames())
	assert.Equal(t, "a/A", p.Get("a/A").Name())
	assert.Nil(t, p.Get("missing/X"))

	var visited []string
	p.AcceptFiltered(MustNameFilter("a/*"), func(c *cf.Class) {
		visited = append(visited, c.Name())
	})
	assert.Equal(t, []string{"a/A"}, visited)

	p.Remove("a/A")
	assert.Nil(t, p.Get("a/A"))

	var empty *ClassPool
	assert.Nil(t, empty.Get("a/A"))
	assert.Equal(t, 0, empty.Size())
	assert.Empty(t, empty.Classes())
}

func TestLookupPrefersProgram(t *testing.T) {
	program := New(class(t, "a/A"))
	library := New(class(t, "a/A", cf.AsLibrary()), class(t, "java/lang/Object", cf.AsLibrary()))
	l := Lookup{Program: program, Library: library}

	assert.True(t, l.Find("a/A").IsProgram())
	assert.True(t, l.Find("java/lang/Object").IsLibrary())
	assert.Nil(t, l.Find("x/Y"))

	assert.Nil(t, Lookup{}.Find("a/A"))

	count := 0
	l.Each(func(*cf.Class) { count++ })
	assert.Equal(t, 3, count)

	t.Run("visit stops early", func(t *testing.T) {
		var visited []string
		done := l.Visit(func(c *cf.Class) bool {
			visited = append(visited, c.Name())
			return !c.IsLibrary()
		})
		assert.False(t, done)
		assert.Equal(t, []string{"a/A", "a/A"}, visited)

		assert.True(t, l.Visit(func(*cf.Class) bool { return true }))
		assert.True(t, Lookup{}.Visit(func(*cf.Class) bool { return false }))
	})
}

func TestClassPoolOrderAfterChanges(t *testing.T) {
	p := New(class(t, "b/B"))
	assert.Equal(t, []string{"b/B"}, p.ClassNames())

	p.Add(class(t, "a/A"))
	assert.Equal(t, []string{"a/A", "b/B"}, p.ClassNames())

	names := p.ClassNames()
	names[0] = "z/Z"
	assert.Equal(t, []string{"a/A", "b/B"}, p.ClassNames())

	p.Remove("b/B")
	var visited []string
	p.Accept(func(c *cf.Class) { visited = append(visited, c.Name()) })
	assert.Equal(t, []string{"a/A"}, visited)
}

func TestNameFilter(t *testing.T) {
	tests := []struct {
		patterns []string
		name     string
		want     bool
	}{
		{[]string{"com/example/*"}, "com/example/Foo", true},
		{[]string{"com/example/*"}, "com/example/sub/Foo", false},
		{[]string{"com/example/**"}, "com/example/sub/Foo", true},
		{[]string{"com.example.*"}, "com/example/Foo", true},
		{[]string{"com/example/Fo?"}, "com/example/Foo", true},
		{[]string{"com/example/Fo?"}, "com/example/Fooo", false},
		{[]string{"!com/example/Internal,com/example/*"}, "com/example/Internal", false},
		{[]string{"!com/example/Internal,com/example/*"}, "com/example/Public", true},
		{[]string{"a/*", "b/*"}, "b/X", true},
		{[]string{"com/example/Outer$*"}, "com/example/Outer$Inner", true},
		{nil, "a/A", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewNameFilter(tt.patterns...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Matches(tt.name), "patterns %v", tt.patterns)
		})
	}

	_, err := NewNameFilter("com/[example")
	assert.Error(t, err)

	var nilFilter *NameFilter
	assert.False(t, nilFilter.Matches("a/A"))
	assert.True(t, nilFilter.Empty())
	assert.Equal(t, "!a/B,a/*", MustNameFilter(" !a.B , a/* ").String())
}

func writeJar(t *testing.T, path string, entries map[string][]byte) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	zw := zip.NewWriter(f)
	for name, data := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
}

func TestLoader(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "classes", "a"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "classes", "a", "A.class"), classBytes(t, "a/A"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "classes", "a", "Broken.class"), []byte{0xca, 0xfe}, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "classes", "a", "notes.txt"), []byte("ignored"), 0o644))

	jar := filepath.Join(dir, "lib.jar")
	writeJar(t, jar, map[string][]byte{
		"b/B.class":            classBytes(t, "b/B"),
		"a/A.class":            classBytes(t, "a/A"),
		"META-INF/MANIFEST.MF": []byte("Manifest-Version: 1.0\n"),
	})

	t.Run("program pool", func(t *testing.T) {
		pool := New()
		l := &Loader{Parallelism: 2}
		require.NoError(t, l.Load(context.Background(), pool, filepath.Join(dir, "classes"), jar))
		assert.Equal(t, []string{"a/A", "b/B"}, pool.ClassNames())
		assert.True(t, pool.Get("b/B").IsProgram())
	})

	t.Run("library pool", func(t *testing.T) {
		pool := New()
		l := &Loader{Options: []cf.ParseOption{cf.AsLibrary()}}
		require.NoError(t, l.Load(context.Background(), pool, jar))
		assert.True(t, pool.Get("a/A").IsLibrary())
	})

	t.Run("missing path", func(t *testing.T) {
		l := &Loader{}
		assert.Error(t, l.Load(context.Background(), New(), filepath.Join(dir, "nope.jar")))
	})

	t.Run("unsupported file", func(t *testing.T) {
		l := &Loader{}
		assert.Error(t, l.Load(context.Background(), New(), filepath.Join(dir, "classes", "a", "notes.txt")))
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		l := &Loader{}
		assert.ErrorIs(t, l.Load(ctx, New(), jar), context.Canceled)
	})
}
