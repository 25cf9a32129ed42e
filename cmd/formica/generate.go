package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [name]",
		Short: "Generate a random population",
		Long: `Generates a population of random trees and stores it under name.
Without a name a random one is assigned. With --out the population is written to
an XML file instead of the store.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := setup(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			ev := app.Config.Evolution
			ev.Population = intFlag(cmd, "size", ev.Population)
			ev.MinLevel = intFlag(cmd, "min", ev.MinLevel)
			ev.MaxLevel = intFlag(cmd, "max", ev.MaxLevel)
			if err := ev.Validate(); err != nil {
				return err
			}

			trees, err := app.Engine.GeneratePopulation(ev.Population, ev.MinLevel, ev.MaxLevel)
			if err != nil {
				return err
			}

			if out, _ := cmd.Flags().GetString("out"); out != "" {
				if err := app.Engine.SaveListToXML(out, trees); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d trees written to %s\n", len(trees), out)
				return nil
			}

			name := uuid.NewString()
			if len(args) > 0 {
				name = args[0]
			}
			if err := app.Engine.SavePopulation(cmd.Context(), name, trees); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d trees\n", name, len(trees))
			return nil
		},
	}

	cmd.Flags().IntP("size", "n", 0, "Number of trees (default from config)")
	cmd.Flags().Int("min", 0, "Minimum level (default from config)")
	cmd.Flags().Int("max", 0, "Maximum level (default from config)")
	cmd.Flags().StringP("out", "o", "", "Write the population to this XML file instead of the store")
	return cmd
}
