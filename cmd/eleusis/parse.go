package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/eleusis/internal/cli"
)

var parseCmd = &cobra.Command{
	Use:   "parse RULE",
	Short: "Check a rule and print its canonical form",
	Long:  `Parses and type-checks a rule, prints its canonical text and counts the ordered triples of distinct cards it accepts and reports how many trailing board cards it reads.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mermaid, _ := cmd.Flags().GetBool("mermaid")
		return cli.RunParse(args[0], mermaid, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().Bool("mermaid", false, "Also print the expression tree as a Mermaid diagram")
}
