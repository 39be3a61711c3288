package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	cf "github.com/dhamidi/classref/classfile"
	"github.com/dhamidi/classref/descriptor"
)

func newHierarchyCmd(global *globalFlags) *cobra.Command {
	var pools poolFlags
	var warnings bool

	cmd := &cobra.Command{
		Use:   "hierarchy <class>",
		Short: "Print the superclasses, interfaces and subclasses of a class",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := pools.apply(global)
			if err != nil {
				return err
			}
			var out io.Writer
			if warnings {
				out = os.Stderr
			}
			s, err := openSession(cmd.Context(), cfg, out)
			if err != nil {
				return err
			}
			s.driver.Run()

			c, err := findClass(s, args[0])
			if err != nil {
				return err
			}
			printHierarchy(os.Stdout, c)
			return nil
		},
	}

	pools.register(cmd)
	cmd.Flags().BoolVarP(&warnings, "warnings", "w", false, "print linking warnings to stderr")

	return cmd
}

// findClass looks a class up by its internal or external name.
func findClass(s *session, name string) (*cf.Class, error) {
	c := s.lookup().Find(descriptor.InternalClassName(name))
	if c == nil {
		return nil, fmt.Errorf("class %s not found", name)
	}
	return c, nil
}

func printHierarchy(out io.Writer, c *cf.Class) {
	fmt.Fprintf(out, "%s (%s)\n", describeClass(c), c.Kind)

	for super := c.Super; super != nil; super = super.Super {
		fmt.Fprintf(out, "  extends %s\n", describeClass(super))
	}
	if c.Super == nil && c.SuperName() != "" {
		fmt.Fprintf(out, "  extends %s (missing)\n", descriptor.ExternalClassName(c.SuperName()))
	}

	for i, name := range c.InterfaceNames() {
		if i < len(c.InterfaceClasses) && c.InterfaceClasses[i] != nil {
			fmt.Fprintf(out, "  implements %s\n", describeClass(c.InterfaceClasses[i]))
		} else {
			fmt.Fprintf(out, "  implements %s (missing)\n", descriptor.ExternalClassName(name))
		}
	}

	if len(c.SubClasses) == 0 {
		return
	}
	fmt.Fprintf(out, "subclasses:\n")
	printSubClasses(out, c, 1, map[*cf.Class]bool{c: true})
}

func printSubClasses(out io.Writer, c *cf.Class, depth int, seen map[*cf.Class]bool) {
	for _, sub := range c.SubClasses {
		if seen[sub] {
			continue
		}
		seen[sub] = true
		fmt.Fprintf(out, "%s%s\n", strings.Repeat("  ", depth), describeClass(sub))
		printSubClasses(out, sub, depth+1, seen)
	}
}

func describeClass(c *cf.Class) string {
	name := descriptor.ExternalClassName(c.Name())
	if c.IsLibrary() {
		return name + " [library]"
	}
	return name
}
