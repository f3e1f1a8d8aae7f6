package transcript

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"commitlens/internal/apperr"
)

// Entry is one (reference, summary) pair recorded during a session
type Entry struct {
	Reference string
	Summary   string
	At        time.Time
}

// Transcript is the ordered log of one session. Every Append is flushed to
// the underlying file so an aborted session keeps what was produced before
// the failure. The file is human-readable Markdown, not a round-trip format.
type Transcript struct {
	Repository string
	User       string
	StartedAt  time.Time

	path    string
	file    *os.File
	entries []Entry
}

// New creates the transcript file under dir and writes the session header
func New(dir, repository, user string) (*Transcript, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperr.Wrap(err, apperr.KindInternal, "creating transcript directory")
	}

	startedAt := time.Now()
	name := fmt.Sprintf("session_%s_%s.md", sanitize(repository), startedAt.Format("20060102-150405"))
	path := filepath.Join(dir, name)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.KindInternal, "creating transcript file")
	}

	t := &Transcript{
		Repository: repository,
		User:       user,
		StartedAt:  startedAt,
		path:       path,
		file:       file,
	}

	header := fmt.Sprintf("# Review session for %s\n\nUser: %s\nStarted: %s\n",
		repository, user, startedAt.Format(time.RFC3339))
	if _, err := file.WriteString(header); err != nil {
		file.Close()
		return nil, apperr.Wrap(err, apperr.KindInternal, "writing transcript header")
	}

	return t, nil
}

// Append records one entry and flushes it to disk
func (t *Transcript) Append(reference, summary string) error {
	entry := Entry{Reference: reference, Summary: summary, At: time.Now()}
	t.entries = append(t.entries, entry)

	block := fmt.Sprintf("\n## %s\n\n%s\n", reference, summary)
	if _, err := t.file.WriteString(block); err != nil {
		return apperr.Wrap(err, apperr.KindInternal, "appending transcript entry")
	}
	return t.file.Sync()
}

// Entries returns the recorded entries in session order
func (t *Transcript) Entries() []Entry {
	return t.entries
}

// Path returns the transcript file location
func (t *Transcript) Path() string {
	return t.path
}

// Close closes the underlying file
func (t *Transcript) Close() error {
	if t.file == nil {
		return nil
	}
	err := t.file.Close()
	t.file = nil
	return err
}

// sanitize converts a repository name into a safe filename fragment
func sanitize(name string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", " ", "_", ":", "_")
	return replacer.Replace(name)
}
