package models

// SummarizeRequest identifies what the HTTP facade should summarize: a
// single commit by SHA, or the range of commits between start and end.
type SummarizeRequest struct {
	Repository string `json:"repository"`
	SHA        string `json:"sha,omitempty"`
	Start      string `json:"start,omitempty"`
	End        string `json:"end,omitempty"`
}

// IsRange reports whether the request selects a commit range
func (r SummarizeRequest) IsRange() bool {
	return r.Start != "" || r.End != ""
}

// SummarizeResponse carries the produced summary
type SummarizeResponse struct {
	Repository string   `json:"repository"`
	References []string `json:"references"`
	Summary    string   `json:"summary"`
}

// RepositoriesResponse lists the configured repository names
type RepositoriesResponse struct {
	Repositories []string `json:"repositories"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
