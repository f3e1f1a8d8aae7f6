package models

import (
	"strings"
	"time"
)

// Commit is one commit as reported by the repository remote. It is
// immutable once fetched; the diff is retrieved separately.
type Commit struct {
	SHA         string    `json:"sha"`
	Author      string    `json:"author"`
	AuthorEmail string    `json:"author_email,omitempty"`
	Message     string    `json:"message"`
	Timestamp   time.Time `json:"timestamp"`
}

// ShortSHA returns the abbreviated hash used for display
func (c Commit) ShortSHA() string {
	if len(c.SHA) > 7 {
		return c.SHA[:7]
	}
	return c.SHA
}

// Title returns the first line of the commit message, truncated for display
func (c Commit) Title() string {
	title := c.Message
	if idx := strings.Index(title, "\n"); idx >= 0 {
		title = title[:idx]
	}
	if len(title) > 72 {
		title = title[:69] + "..."
	}
	return title
}

// Summary is the model's review text for one commit or one range of commits
type Summary struct {
	References []string `json:"references"`
	Text       string   `json:"text"`
}
