package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/classref/resolve"
)

func newResolveCmd(global *globalFlags) *cobra.Command {
	var pools poolFlags
	var linkMethods, kotlinMetadata, libraryDependencies, strict bool

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Link the program and library classes and print what cannot be found",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := pools.apply(global)
			if err != nil {
				return err
			}
			cfg.LinkMethods = cfg.LinkMethods || linkMethods
			cfg.KotlinMetadata = cfg.KotlinMetadata || kotlinMetadata
			cfg.WarnLibraryDependencies = cfg.WarnLibraryDependencies || libraryDependencies

			s, err := openSession(cmd.Context(), cfg, os.Stdout)
			if err != nil {
				return err
			}
			return runResolve(os.Stdout, s, strict)
		},
	}

	pools.register(cmd)
	cmd.Flags().BoolVar(&linkMethods, "link-methods", false, "chain overriding methods after linking")
	cmd.Flags().BoolVar(&kotlinMetadata, "kotlin", false, "read and link Kotlin metadata")
	cmd.Flags().BoolVar(&libraryDependencies, "library-dependencies", false, "warn about library classes that depend on program classes")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when any warning was printed")

	return cmd
}

func runResolve(out io.Writer, s *session, strict bool) error {
	stats := s.driver.Run()
	fmt.Fprintf(out, "\n=== RESOLVE COMPLETE ===\n")
	fmt.Fprintf(out, "Program classes: %d\n", s.driver.Program.Size())
	fmt.Fprintf(out, "Library classes: %d\n", s.driver.Library.Size())
	printStats(out, stats)
	if strict && stats.Total() > 0 {
		return fmt.Errorf("%d unresolved references", stats.Total())
	}
	return nil
}

func printStats(out io.Writer, stats resolve.Stats) {
	fmt.Fprintf(out, "Missing classes: %d\n", stats.MissingClasses)
	fmt.Fprintf(out, "Missing program members: %d\n", stats.ProgramMembers)
	fmt.Fprintf(out, "Missing library members: %d\n", stats.LibraryMembers)
	fmt.Fprintf(out, "Library dependencies: %d\n", stats.Dependencies)
	fmt.Fprintf(out, "Malformed classes: %d\n", stats.Malformed)
}
