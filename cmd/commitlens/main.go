package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"commitlens/internal/config"
	"commitlens/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "commitlens",
	Short: "Summarize GitHub commit history with a language model",
	Long: `commitlens fetches commit history and diffs from configured GitHub
repositories and produces human-readable review summaries through a
language-model API, either interactively (chat) or over HTTP (serve).`,
	SilenceUsage: true,
}

func main() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "commitlens.yaml", "repository catalog file")
	rootCmd.PersistentFlags().String("transcripts", "", "directory for session transcripts (overrides TRANSCRIPT_DIR)")
	_ = viper.BindPFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(chatCmd(), serveCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.AutomaticEnv()
}

// loadConfig builds the process configuration. A failure here is fatal
// before any interactive or HTTP behavior begins.
func loadConfig() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(viper.GetString("config"))
	if err != nil {
		return nil, nil, err
	}

	if dir := viper.GetString("transcripts"); dir != "" {
		cfg.Transcripts.Dir = dir
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	for _, warning := range cfg.Warnings {
		log.Warn(warning)
	}

	return cfg, log, nil
}
