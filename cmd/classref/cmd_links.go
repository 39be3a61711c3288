package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	cf "github.com/dhamidi/classref/classfile"
	"github.com/dhamidi/classref/descriptor"
	"github.com/dhamidi/classref/resolve"
)

func newLinksCmd(global *globalFlags) *cobra.Command {
	var pools poolFlags

	cmd := &cobra.Command{
		Use:   "links <class>",
		Short: "Print the method each method of a class is linked to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := pools.apply(global)
			if err != nil {
				return err
			}
			cfg.LinkMethods = true

			s, err := openSession(cmd.Context(), cfg, nil)
			if err != nil {
				return err
			}
			s.driver.Run()

			c, err := findClass(s, args[0])
			if err != nil {
				return err
			}
			// Library classes are not linked by the driver.
			if c.IsLibrary() {
				resolve.LinkMethods(c)
			}
			printLinks(os.Stdout, c)
			return nil
		},
	}

	pools.register(cmd)

	return cmd
}

func printLinks(out io.Writer, c *cf.Class) {
	className := descriptor.ExternalClassName(c.Name())
	for _, m := range c.Methods {
		fmt.Fprintf(out, "%s\n", describeMethod(className, m))
		tail := resolve.LastMember(m)
		if tail == m {
			continue
		}
		owner := descriptor.ExternalClassName(tail.Owner.Name())
		fmt.Fprintf(out, "  -> %s\n", describeMethod(owner, tail))
	}
}

func describeMethod(className string, m *cf.Method) string {
	return className + ": " + descriptor.ExternalFullMethodDescription(className, m.AccessFlags, m.Name(), m.Descriptor())
}
