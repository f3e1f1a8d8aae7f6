package handlers

import (
	"context"

	"commitlens/internal/config"
	"commitlens/internal/llm"
	"commitlens/internal/logger"
	"commitlens/internal/models"
	"commitlens/internal/validation"
)

// RepositoryClient is the slice of the GitHub client the facade needs
type RepositoryClient interface {
	GetDiff(ctx context.Context, repo config.Repository, sha string) (string, error)
	CompareCommits(ctx context.Context, repo config.Repository, base, head string) ([]models.Commit, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	cfg        *config.Config
	repos      RepositoryClient
	summarizer llm.Summarizer
	validator  *validation.Validator
	log        *logger.Logger
}

// New creates a new handler instance
func New(cfg *config.Config, repos RepositoryClient, summarizer llm.Summarizer, log *logger.Logger) *Handler {
	return &Handler{
		cfg:        cfg,
		repos:      repos,
		summarizer: summarizer,
		validator:  validation.New(cfg.Repositories),
		log:        log,
	}
}
