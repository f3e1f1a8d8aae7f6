package validation

import (
	"fmt"
	"strings"

	"commitlens/internal/apperr"
	"commitlens/internal/config"
	"commitlens/internal/models"
)

// Validator checks HTTP facade requests against the repository catalog
type Validator struct {
	repositories []config.Repository
}

// New creates a validator over the configured catalog
func New(repositories []config.Repository) *Validator {
	return &Validator{repositories: repositories}
}

// ValidateSummarizeRequest checks the request shape and resolves the
// repository. A request must name either a single sha or both range bounds.
func (v *Validator) ValidateSummarizeRequest(req *models.SummarizeRequest) (config.Repository, *apperr.Error) {
	if req == nil {
		return config.Repository{}, apperr.InvalidRequest("request body is required")
	}

	req.Repository = strings.TrimSpace(req.Repository)
	req.SHA = strings.TrimSpace(req.SHA)
	req.Start = strings.TrimSpace(req.Start)
	req.End = strings.TrimSpace(req.End)

	if req.Repository == "" {
		return config.Repository{}, apperr.Validation("'repository' field is required")
	}

	hasSHA := req.SHA != ""
	hasRange := req.Start != "" || req.End != ""

	switch {
	case hasSHA && hasRange:
		return config.Repository{}, apperr.Validation("provide either 'sha' or 'start'/'end', not both")
	case !hasSHA && !hasRange:
		return config.Repository{}, apperr.Validation("provide 'sha' or a 'start'/'end' range")
	case hasRange && (req.Start == "" || req.End == ""):
		return config.Repository{}, apperr.Validation("a range needs both 'start' and 'end'")
	}

	for _, repo := range v.repositories {
		if repo.Name == req.Repository {
			return repo, nil
		}
	}
	return config.Repository{}, apperr.NotFound(fmt.Sprintf("repository %q is not configured", req.Repository))
}
