package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/eleusis/internal/cli"
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Benchmark the scientist over a list of rules",
	Long: `Plays --games solo games for every rule and reports success rate, score
statistics and the false negative/positive rates of the final guesses.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		rulesFile, _ := cmd.Flags().GetString("rules-file")
		jsonMode, _ := cmd.Flags().GetBool("json")
		metricsFile, _ := cmd.Flags().GetString("metrics-file")

		sc := cli.NewSignalContext(cmd.Context())
		defer sc.Cancel()

		_, err = cli.RunBench(sc, cfg, logger, cli.BenchOptions{
			RulesFile:   rulesFile,
			JSON:        jsonMode,
			MetricsFile: metricsFile,
			Out:         cmd.OutOrStdout(),
		})
		return cli.HandleError(sc, cmd.OutOrStdout(), err)
	},
}

func init() {
	rootCmd.AddCommand(benchCmd)

	benchCmd.Flags().Int("games", 0, "Games per rule")
	benchCmd.Flags().String("rules-file", "", "Rules to benchmark (.yaml, .json or one per line)")
	benchCmd.Flags().Bool("json", false, "Print the report as JSON")
	addGameFlags(benchCmd)
}
