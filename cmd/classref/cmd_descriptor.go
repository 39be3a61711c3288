package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/classref/descriptor"
)

func newDescriptorCmd() *cobra.Command {
	var static bool

	cmd := &cobra.Command{
		Use:   "descriptor <desc>",
		Short: "Explain a field or method descriptor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDescriptor(os.Stdout, args[0], static)
		},
	}

	cmd.Flags().BoolVarP(&static, "static", "s", false, "count slots for a static method")

	return cmd
}

func runDescriptor(out io.Writer, desc string, static bool) error {
	if err := descriptor.Check(desc); err != nil {
		return err
	}

	if descriptor.NewInternalTypeEnumeration(desc).IsMethodSignature() {
		fmt.Fprintf(out, "parameters: (%s)\n", descriptor.ExternalMethodArguments(desc))
		fmt.Fprintf(out, "returns: %s\n", descriptor.ExternalType(descriptor.InternalMethodReturnType(desc)))
		fmt.Fprintf(out, "slots: %d\n", descriptor.InternalMethodParameterSize(desc, static))
	} else {
		fmt.Fprintf(out, "type: %s\n", descriptor.ExternalType(desc))
		fmt.Fprintf(out, "slots: %d\n", descriptor.InternalTypeSize(desc))
	}

	classes := descriptor.ClassNames(desc)
	if len(classes) == 0 {
		return nil
	}
	fmt.Fprintf(out, "classes:\n")
	for _, name := range classes {
		fmt.Fprintf(out, "  %s\n", descriptor.ExternalClassName(name))
	}
	return nil
}
