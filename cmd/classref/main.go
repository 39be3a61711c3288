package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/classref/config"
)

type globalFlags struct {
	configFile string
	verbosity  int
	logFile    string
}

func main() {
	var global globalFlags

	rootCmd := &cobra.Command{
		Use:          "classref",
		Short:        "Link the references between Java class files",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			var path *string
			if global.logFile != "" {
				path = &global.logFile
			}
			commonlog.Configure(global.verbosity, path)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&global.configFile, "config", "c", config.DefaultFile, "config file")
	flags.CountVarP(&global.verbosity, "verbose", "v", "log more, repeat for more detail")
	flags.StringVar(&global.logFile, "log", "", "write the log to this file instead of stderr")

	rootCmd.AddCommand(newResolveCmd(&global))
	rootCmd.AddCommand(newHierarchyCmd(&global))
	rootCmd.AddCommand(newLinksCmd(&global))
	rootCmd.AddCommand(newDescriptorCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
