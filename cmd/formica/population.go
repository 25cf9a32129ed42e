package main

import (
	"errors"
	"fmt"

	"github.com/aretw0/formica/pkg/codec"
	"github.com/spf13/cobra"
)

func newPopulationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "population",
		Short: "Manage stored populations",
		Long:  `List, remove, export and import populations held by the configured store.`,
	}
	cmd.AddCommand(newPopulationLsCmd(), newPopulationRmCmd(), newPopulationExportCmd(), newPopulationImportCmd())
	return cmd
}

func newPopulationLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List all stored populations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := setup(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			names, err := app.Engine.ListPopulations(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(names) == 0 {
				fmt.Fprintln(out, "No populations found.")
				return nil
			}
			fmt.Fprintln(out, "Populations:")
			for _, n := range names {
				fmt.Fprintln(out, "- "+n)
			}
			return nil
		},
	}
}

func newPopulationRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <name>...",
		Short: "Remove one or more populations",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := setup(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			var errs []error
			for _, name := range args {
				if err := app.Engine.DeletePopulation(cmd.Context(), name); err != nil {
					errs = append(errs, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Population '%s' removed.\n", name)
			}
			return errors.Join(errs...)
		},
	}
}

func newPopulationExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <name> <file>",
		Short: "Write a population to a file (.xml, .json or .yaml)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := setup(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			trees, err := app.Engine.LoadPopulation(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := codec.Save(args[1], trees); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d trees written to %s\n", len(trees), args[1])
			return nil
		},
	}
}

func newPopulationImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file> <name>",
		Short: "Store the trees of a file (.xml, .json or .yaml) as a population",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := setup(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			trees, err := codec.Load(args[0])
			if err != nil {
				return err
			}
			if err := app.Engine.SavePopulation(cmd.Context(), args[1], trees); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d trees\n", args[1], len(trees))
			return nil
		},
	}
}
