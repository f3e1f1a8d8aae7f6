package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"commitlens/internal/github"
	"commitlens/internal/handlers"
	"commitlens/internal/llm"
	"commitlens/internal/server"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Expose the summarization operation over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}

			gh := github.New(cfg.GitHub, log)
			summarizer := llm.NewOpenAI(cfg.Model, log)
			handler := handlers.New(cfg, gh, summarizer, log)

			srv := server.New(cfg, handler, log)
			if err := srv.Start(cfg); err != nil {
				return err
			}

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			<-sigChan
			log.Info("received shutdown signal")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}
