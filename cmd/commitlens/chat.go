package main

import (
	"github.com/spf13/cobra"

	"commitlens/internal/github"
	"commitlens/internal/llm"
	"commitlens/internal/session"
)

func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Interactively select commit ranges and summarize them",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}

			gh := github.New(cfg.GitHub, log)
			summarizer := llm.NewOpenAI(cfg.Model, log)
			controller := session.New(cfg, gh, summarizer, session.NewSurveyPrompter(), log)

			return controller.Run(cmd.Context())
		},
	}
}
