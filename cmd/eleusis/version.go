package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/eleusis"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of eleusis",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "eleusis version %s\n", strings.TrimSpace(eleusis.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
