package cmd

import (
	"github.com/spf13/cobra"

	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "knav",
	Short: "AI study assistant",
	Long: "Knowledge Navigator is an AI-assisted study companion: MCQs, PDF Q&A, research answers, " +
		"study plans, quizzes, concept maps and summaries, in the browser or the terminal.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file (overrides KNAV_CONFIG env var)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the configuration named by --config, falling back to
// KNAV_CONFIG and then the built-in defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}
