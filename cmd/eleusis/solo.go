package main

import (
	"github.com/spf13/cobra"
)

var soloCmd = &cobra.Command{
	Use:   "solo",
	Short: "Let the scientist play alone against the dealer",
	Long: `Runs the single-player game: the scientist plays every turn until the turn
budget is spent (or its hypothesis stops changing with --constancy), and its
final guess is scored with the classic table.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGame(cmd, true)
	},
}

func init() {
	rootCmd.AddCommand(soloCmd)

	soloCmd.Flags().String("rule", "", "Hidden rule in the rule language")
	soloCmd.Flags().StringSlice("seeds", nil, "Opening window, e.g. 2H,JD,5H")
	soloCmd.Flags().Int("constancy", 0, "End after this many plays without a hypothesis change (0 = off)")
	soloCmd.Flags().BoolP("quiet", "q", false, "Only print the final report")
	soloCmd.Flags().Bool("json", false, "Stream events and the result as JSON Lines")
	addGameFlags(soloCmd)
}
