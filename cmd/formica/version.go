package main

import (
	"fmt"

	"github.com/aretw0/formica"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of formica",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "formica version %s\n", formica.Version)
		},
	}
}
