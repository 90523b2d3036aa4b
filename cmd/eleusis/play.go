package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/eleusis/internal/cli"
)

// playCmd represents the play command
var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a table game against adversary bots",
	Long: `Deals a hidden rule (random unless --rule is given) and seats the scientist
with adversary bots. Every seat plays in turn until the round limit or until a
seat announces a rule; the scientist's guess is then scored.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGame(cmd, false)
	},
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().String("rule", "", "Hidden rule in the rule language")
	playCmd.Flags().StringSlice("seeds", nil, "Opening window, e.g. 2H,JD,5H")
	playCmd.Flags().Int("rounds", 0, "Round limit")
	playCmd.Flags().Int("adversaries", 0, "Number of adversary bots")
	playCmd.Flags().Float64("guess-prob", 0, "Chance a bot announces a rule on its turn")
	playCmd.Flags().Int("constancy", 0, "End after this many plays without a hypothesis change (0 = off)")
	playCmd.Flags().String("scoring", "", "Scoring variant: tournament or classic")
	playCmd.Flags().BoolP("quiet", "q", false, "Only print the final report")
	playCmd.Flags().Bool("json", false, "Stream events and the result as JSON Lines")
	addGameFlags(playCmd)
}

func runGame(cmd *cobra.Command, solo bool) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	quiet, _ := cmd.Flags().GetBool("quiet")
	jsonMode := false
	if f := cmd.Flags().Lookup("json"); f != nil {
		jsonMode, _ = cmd.Flags().GetBool("json")
	}
	metricsFile, _ := cmd.Flags().GetString("metrics-file")

	sc := cli.NewSignalContext(cmd.Context())
	defer sc.Cancel()

	_, err = cli.RunPlay(sc, cfg, logger, cli.PlayOptions{
		Solo:        solo,
		Quiet:       quiet,
		JSON:        jsonMode,
		Banner:      !quiet && !jsonMode,
		MetricsFile: metricsFile,
		Out:         cmd.OutOrStdout(),
	})
	return cli.HandleError(sc, cmd.OutOrStdout(), err)
}
