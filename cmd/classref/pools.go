package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dhamidi/classref/classpool"
	"github.com/dhamidi/classref/config"
	"github.com/dhamidi/classref/resolve"
)

// poolFlags are the flags shared by the commands that load class pools.
// They override the values read from the config file.
type poolFlags struct {
	program     []string
	library     []string
	dontwarn    []string
	parallelism int
}

func (f *poolFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&f.program, "program", "p", nil, "program class directories, class files or jars")
	cmd.Flags().StringSliceVarP(&f.library, "library", "l", nil, "library class directories, class files or jars")
	cmd.Flags().StringSliceVar(&f.dontwarn, "dontwarn", nil, "class name patterns to keep quiet about")
	cmd.Flags().IntVar(&f.parallelism, "parallelism", 0, "class files parsed at once (default: config or number of CPUs)")
}

// apply loads the config file and layers the flags on top of it.
func (f *poolFlags) apply(global *globalFlags) (*config.Config, error) {
	cfg, err := config.Load(global.configFile)
	if err != nil {
		return nil, err
	}
	if len(f.program) > 0 {
		cfg.Program = f.program
	}
	if len(f.library) > 0 {
		cfg.Library = f.library
	}
	cfg.DontWarn = append(cfg.DontWarn, f.dontwarn...)
	if f.parallelism > 0 {
		cfg.Parallelism = f.parallelism
	}
	if len(cfg.Program) == 0 {
		return nil, fmt.Errorf("no program classes: pass --program or set program in %s", global.configFile)
	}
	return cfg, nil
}

// session holds the loaded pools and the driver that links them.
type session struct {
	cfg    *config.Config
	driver *resolve.Driver
}

func openSession(ctx context.Context, cfg *config.Config, out io.Writer) (*session, error) {
	opts, err := cfg.Options(out)
	if err != nil {
		return nil, err
	}

	program := classpool.New()
	if err := cfg.Loader(false).Load(ctx, program, cfg.Program...); err != nil {
		return nil, fmt.Errorf("load program classes: %w", err)
	}
	library := classpool.New()
	if err := cfg.Loader(true).Load(ctx, library, cfg.Library...); err != nil {
		return nil, fmt.Errorf("load library classes: %w", err)
	}

	return &session{
		cfg:    cfg,
		driver: resolve.NewDriver(program, library, opts),
	}, nil
}

func (s *session) lookup() classpool.Lookup {
	return classpool.Lookup{Program: s.driver.Program, Library: s.driver.Library}
}
