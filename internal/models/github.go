package models

import "time"

// GitHubCommit represents one element of the GitHub list-commits response
type GitHubCommit struct {
	SHA    string `json:"sha"`
	Commit struct {
		Message string `json:"message"`
		Author  struct {
			Name  string    `json:"name"`
			Email string    `json:"email"`
			Date  time.Time `json:"date"`
		} `json:"author"`
	} `json:"commit"`
	HTMLURL string `json:"html_url"`
}

// ToCommit converts the API payload into the internal commit model
func (g GitHubCommit) ToCommit() Commit {
	return Commit{
		SHA:         g.SHA,
		Author:      g.Commit.Author.Name,
		AuthorEmail: g.Commit.Author.Email,
		Message:     g.Commit.Message,
		Timestamp:   g.Commit.Author.Date,
	}
}

// GitHubCommitDetail represents the single-commit response, which carries
// the per-file patches that make up the diff
type GitHubCommitDetail struct {
	SHA   string             `json:"sha"`
	Files []GitHubCommitFile `json:"files"`
}

// GitHubCommitFile is one changed file in a commit. Binary and very large
// files come back without a patch.
type GitHubCommitFile struct {
	Filename  string `json:"filename"`
	Status    string `json:"status"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
	Patch     string `json:"patch,omitempty"`
}

// GitHubCompare represents the compare response between two refs
type GitHubCompare struct {
	Status       string         `json:"status"`
	AheadBy      int            `json:"ahead_by"`
	BehindBy     int            `json:"behind_by"`
	TotalCommits int            `json:"total_commits"`
	Commits      []GitHubCommit `json:"commits"`
}

// GitHubErrorBody is the error envelope GitHub returns on non-2xx responses
type GitHubErrorBody struct {
	Message string `json:"message"`
}
