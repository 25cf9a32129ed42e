package main

import (
	"fmt"
	"io"
	"os"

	"github.com/aretw0/formica/internal/presentation/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <name>",
		Short: "Summarize a stored population",
		Long:  `Prints a markdown report of the population, rendered for the terminal when stdout is one.`,
		Args:  cobra.ExactArgs(1),
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
			report := tui.Report(args[0], trees)

			raw, _ := cmd.Flags().GetBool("raw")
			if raw || !isTerminal(cmd.OutOrStdout()) {
				_, err := fmt.Fprint(cmd.OutOrStdout(), report)
				return err
			}

			render, err := tui.NewRenderer()
			if err != nil {
				return err
			}
			out, err := render(report)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().Bool("raw", false, "Print plain markdown")
	return cmd
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
