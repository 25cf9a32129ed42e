package main

import (
	"fmt"
	"math/rand"
	"text/tabwriter"

	"github.com/aretw0/formica/pkg/colony"
	"github.com/spf13/cobra"
)

func newDecideCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decide <name>",
		Short: "Run every tree of a population on a sampled colony",
		Long: `Places one ant per tree on a copy of the same sampled colony and lets each
tree make --steps decisions, then reports where each ant ended up.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := setup(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := cmd.Context()
			trees, err := app.Engine.LoadPopulation(ctx, args[0])
			if err != nil {
				return err
			}

			seed, _ := cmd.Flags().GetInt64("seed")
			steps, _ := cmd.Flags().GetInt("steps")
			start := colony.Sample(rand.New(rand.NewSource(seed)), 1)[0]

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TREE\tPOSITION\tHEADING\tCARRYING\tSTEPS\tDELIVERED")
			for i, t := range trees {
				s := start.Clone()
				for range steps {
					if err := app.Engine.MakeDecision(ctx, t, s.Ant, s.World); err != nil {
						return fmt.Errorf("tree %d: %w", i, err)
					}
				}
				a := s.Ant
				fmt.Fprintf(tw, "%d\t%d,%d\t%s\t%t\t%d\t%d\n", i, a.X, a.Y, a.Heading, a.Carrying, a.Steps, a.Delivered)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().Int64("seed", 1, "Seed of the sampled colony")
	cmd.Flags().Int("steps", 1, "Decisions per tree")
	return cmd
}
