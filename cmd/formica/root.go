package main

import (
	"github.com/aretw0/formica/internal/cli"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "formica",
		Short: "Formica evolves decision trees for colony agents",
		Long: `Formica generates, breeds and simplifies populations of binary decision trees
and runs them against a simulated ant colony.`,
		SilenceUsage: true,
	}

	// Persistent flags (available to all commands)
	root.PersistentFlags().String("dir", ".", "Project directory holding formica.yaml and the population store")
	root.PersistentFlags().String("config", "", "Configuration file (default <dir>/formica.yaml)")
	root.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")

	root.AddCommand(
		newGenerateCmd(),
		newBreedCmd(),
		newSimplifyCmd(),
		newInspectCmd(),
		newGraphCmd(),
		newDecideCmd(),
		newPopulationCmd(),
		newServeCmd(),
		newVersionCmd(),
	)
	return root
}

// setup builds the application from the persistent flags.
func setup(cmd *cobra.Command) (*cli.App, error) {
	dir, _ := cmd.Flags().GetString("dir")
	configPath, _ := cmd.Flags().GetString("config")
	logLevel, _ := cmd.Flags().GetString("log-level")
	return cli.Setup(cli.Options{Dir: dir, ConfigPath: configPath, LogLevel: logLevel})
}

// intFlag returns the flag value when set on the command line, def otherwise.
func intFlag(cmd *cobra.Command, name string, def int) int {
	if !cmd.Flags().Changed(name) {
		return def
	}
	v, _ := cmd.Flags().GetInt(name)
	return v
}

func floatFlag(cmd *cobra.Command, name string, def float64) float64 {
	if !cmd.Flags().Changed(name) {
		return def
	}
	v, _ := cmd.Flags().GetFloat64(name)
	return v
}
