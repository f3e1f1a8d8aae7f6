package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"commitlens/internal/apperr"
	"commitlens/internal/config"
	"commitlens/internal/models"
	"commitlens/internal/prompt"
)

// Summarize handles the summarization route. A request names a repository
// and either one commit sha or a (start, end) range of refs; the handler
// makes the same GitHub-then-model round trips the interactive session
// does, synchronously, and returns the summary.
func (h *Handler) Summarize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, apperr.InvalidRequest("method not allowed, use POST"))
		return
	}

	var req models.SummarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, apperr.InvalidRequest("invalid request body: "+err.Error()))
		return
	}

	repo, appErr := h.validator.ValidateSummarizeRequest(&req)
	if appErr != nil {
		h.writeError(w, appErr)
		return
	}

	ctx := r.Context()

	var response *models.SummarizeResponse
	var err error
	if req.IsRange() {
		response, err = h.summarizeRange(ctx, repo, req.Start, req.End)
	} else {
		response, err = h.summarizeCommit(ctx, repo, req.SHA)
	}
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, response, http.StatusOK)
}

// summarizeCommit produces one summary for one commit's diff
func (h *Handler) summarizeCommit(ctx context.Context, repo config.Repository, sha string) (*models.SummarizeResponse, error) {
	diff, err := h.repos.GetDiff(ctx, repo, sha)
	if err != nil {
		return nil, err
	}

	system, user := prompt.ForCommit(models.Commit{SHA: sha}, diff)
	text, err := h.summarizer.Summarize(ctx, system, user)
	if err != nil {
		return nil, err
	}

	return &models.SummarizeResponse{
		Repository: repo.Name,
		References: []string{sha},
		Summary:    text,
	}, nil
}

// summarizeRange resolves the range via the compare endpoint and summarizes
// each commit in order, concatenating the per-commit summaries. An empty or
// inverted range produces an empty summary without touching the model.
func (h *Handler) summarizeRange(ctx context.Context, repo config.Repository, start, end string) (*models.SummarizeResponse, error) {
	commits, err := h.repos.CompareCommits(ctx, repo, start, end)
	if err != nil {
		return nil, err
	}

	response := &models.SummarizeResponse{
		Repository: repo.Name,
		References: []string{},
	}
	if len(commits) == 0 {
		return response, nil
	}

	var sections []string
	for _, commit := range commits {
		diff, err := h.repos.GetDiff(ctx, repo, commit.SHA)
		if err != nil {
			return nil, err
		}

		system, user := prompt.ForCommit(commit, diff)
		text, err := h.summarizer.Summarize(ctx, system, user)
		if err != nil {
			return nil, err
		}

		response.References = append(response.References, commit.SHA)
		sections = append(sections, fmt.Sprintf("### %s\n%s", commit.ShortSHA(), text))
	}

	response.Summary = strings.Join(sections, "\n\n")
	return response, nil
}

// Repositories lists the configured repository names
func (h *Handler) Repositories(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, &models.RepositoriesResponse{
		Repositories: h.cfg.RepositoryNames(),
	}, http.StatusOK)
}
