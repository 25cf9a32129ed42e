package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSimplifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "simplify <name>",
		Short: "Remove redundant conditions from every tree of a population",
		Args:  cobra.ExactArgs(1),
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

			removed := 0
			for _, t := range trees {
				removed += app.Engine.Simplify(t)
			}
			if err := app.Engine.SavePopulation(ctx, args[0], trees); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d nodes removed\n", args[0], removed)
			return nil
		},
	}
}
