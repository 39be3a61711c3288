// Package config reads the classref.yaml file that describes the class
// pools to link and which warnings to keep.
package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	cf "github.com/dhamidi/classref/classfile"
	"github.com/dhamidi/classref/classpool"
	"github.com/dhamidi/classref/resolve"
	"github.com/dhamidi/classref/warn"
)

// DefaultFile is read when no file is named.
const DefaultFile = "classref.yaml"

// Config holds the settings of a run. All fields are optional.
type Config struct {
	// Program and Library list directories, class files and jars.
	Program []string `yaml:"program"`
	Library []string `yaml:"library"`

	// DontWarn lists class name patterns whose warnings are dropped on
	// every channel. The per-channel lists add to it.
	DontWarn                []string `yaml:"dontwarn"`
	DontWarnMissingClasses  []string `yaml:"dontwarn_missing_classes"`
	DontWarnProgramMembers  []string `yaml:"dontwarn_program_members"`
	DontWarnLibraryMembers  []string `yaml:"dontwarn_library_members"`
	DontWarnDependencies    []string `yaml:"dontwarn_dependencies"`
	WarnLibraryDependencies bool     `yaml:"warn_library_dependencies"`

	LinkMethods    bool `yaml:"link_methods"`
	KotlinMetadata bool `yaml:"kotlin_metadata"`

	// Parallelism bounds the number of class files parsed at once. Zero
	// picks the number of CPUs.
	Parallelism int `yaml:"parallelism"`
}

// Load reads the config file at path. A missing file yields an empty
// config; a file that cannot be parsed is an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if c.Parallelism < 0 {
		return nil, fmt.Errorf("parse config: parallelism must not be negative, got %d", c.Parallelism)
	}
	return &c, nil
}

// Options builds the driver options, compiling the class name patterns.
func (c *Config) Options(out io.Writer) (resolve.Options, error) {
	opts := resolve.Options{
		Output:                  out,
		WarnLibraryDependencies: c.WarnLibraryDependencies,
		LinkMethods:             c.LinkMethods,
		KotlinMetadata:          c.KotlinMetadata,
	}
	filters := []struct {
		key      string
		patterns []string
		dst      *warn.Matcher
	}{
		{"dontwarn", c.DontWarn, &opts.DontWarn},
		{"dontwarn_missing_classes", c.DontWarnMissingClasses, &opts.DontWarnMissingClasses},
		{"dontwarn_program_members", c.DontWarnProgramMembers, &opts.DontWarnProgramMembers},
		{"dontwarn_library_members", c.DontWarnLibraryMembers, &opts.DontWarnLibraryMembers},
		{"dontwarn_dependencies", c.DontWarnDependencies, &opts.DontWarnDependencies},
	}
	for _, f := range filters {
		if len(f.patterns) == 0 {
			continue
		}
		filter, err := classpool.NewNameFilter(f.patterns...)
		if err != nil {
			return resolve.Options{}, fmt.Errorf("%s: %w", f.key, err)
		}
		*f.dst = filter
	}
	return opts, nil
}

// Loader returns a class pool loader using the configured parallelism.
// Library loaders mark the classes they read as library classes.
func (c *Config) Loader(library bool) *classpool.Loader {
	l := &classpool.Loader{Parallelism: c.Parallelism}
	if library {
		l.Options = append(l.Options, cf.AsLibrary())
	}
	return l
}
