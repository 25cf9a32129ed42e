package main

import (
	"fmt"

	"github.com/aretw0/formica/internal/config"
	"github.com/spf13/cobra"
)

func newBreedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "breed <name>",
		Short: "Breed offspring from a stored population",
		Long: `Crosses random pairs of trees from the population. Offspring are appended to
the population, or stored as a new population with --into.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := setup(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := cmd.Context()
			name := args[0]
			rate := floatFlag(cmd, "rate", app.Config.Evolution.MutationRate)
			if !config.ValidRate(rate) {
				return fmt.Errorf("rate %v outside [0,1]", rate)
			}
			if count := intFlag(cmd, "count", 0); count > config.PopulationLimit {
				return fmt.Errorf("count %d exceeds %d", count, config.PopulationLimit)
			}

			into, _ := cmd.Flags().GetString("into")
			if into == "" {
				count := intFlag(cmd, "count", -1)
				if count < 0 {
					parents, err := app.Engine.LoadPopulation(ctx, name)
					if err != nil {
						return err
					}
					count = len(parents)
				}
				trees, err := app.Engine.BreedPopulation(ctx, name, count, rate)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d trees (%d offspring)\n", name, len(trees), count)
				return nil
			}

			parents, err := app.Engine.LoadPopulation(ctx, name)
			if err != nil {
				return err
			}
			offspring, err := app.Engine.Breed(ctx, parents, intFlag(cmd, "count", len(parents)), rate)
			if err != nil {
				return err
			}
			if err := app.Engine.SavePopulation(ctx, into, offspring); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d trees (%d offspring)\n", into, len(offspring), len(offspring))
			return nil
		},
	}

	cmd.Flags().IntP("count", "c", 0, "Number of offspring (default: population size)")
	cmd.Flags().Float64P("rate", "r", 0, "Mutation rate (default from config)")
	cmd.Flags().String("into", "", "Store offspring as a new population")
	return cmd
}
