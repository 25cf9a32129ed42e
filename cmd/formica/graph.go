package main

import (
	"fmt"
	"math/rand"
	"strconv"

	"github.com/aretw0/formica/internal/presentation/graph"
	"github.com/aretw0/formica/pkg/colony"
	"github.com/aretw0/formica/pkg/domain"
	"github.com/spf13/cobra"
)

func newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph <name> <index>",
		Short: "Export a tree as a Mermaid diagram",
		Long: `Outputs a Mermaid flowchart (graph TD) of one tree of a population. With
--trace the path taken on a sampled colony situation is highlighted.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid index %q: %w", args[1], err)
			}

			app, err := setup(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			trees, err := app.Engine.LoadPopulation(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if index < 0 || index >= len(trees) {
				return fmt.Errorf("index %d out of range, population has %d trees", index, len(trees))
			}
			t := trees[index]

			var overlay *graph.GraphOverlay
			if cmd.Flags().Changed("trace") {
				seed, _ := cmd.Flags().GetInt64("trace")
				s := colony.Sample(rand.New(rand.NewSource(seed)), 1)[0]
				overlay = &graph.GraphOverlay{}
				err := t.Trace(app.Engine.Catalogue(), s.Ant, s.World, func(_ domain.Action, _ int, branch string) {
					if branch != "" {
						overlay.Branches = append(overlay.Branches, branch)
					}
				})
				if err != nil {
					return err
				}
			}

			fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(t, overlay))
			return nil
		},
	}
	cmd.Flags().Int64("trace", 0, "Highlight the decision taken on the colony sampled with this seed")
	return cmd
}
