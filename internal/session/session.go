package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	osuser "os/user"

	"github.com/fatih/color"

	"commitlens/internal/config"
	"commitlens/internal/llm"
	"commitlens/internal/logger"
	"commitlens/internal/models"
	"commitlens/internal/prompt"
	"commitlens/internal/transcript"
)

// State is the interactive loop's position
type State int

const (
	StateSelectingRepository State = iota
	StateSelectingRange
	StateSummarizing
	StateIdle
)

func (s State) String() string {
	switch s {
	case StateSelectingRepository:
		return "selecting-repository"
	case StateSelectingRange:
		return "selecting-range"
	case StateSummarizing:
		return "summarizing"
	case StateIdle:
		return "idle"
	default:
		return "unknown"
	}
}

// Action is the user's choice at the idle menu
type Action int

const (
	ActionSummarizeAnother Action = iota
	ActionSwitchRepository
	ActionQuit
)

// ErrQuit is returned by prompters when the user asks to leave
var ErrQuit = errors.New("user quit")

const commitListLimit = 30

// RangeSelection is a span of 1-based indices into the displayed commit
// list, plus the summarization mode.
type RangeSelection struct {
	Start     int
	End       int
	PerCommit bool
}

// RepositoryClient is the slice of the GitHub client the session needs
type RepositoryClient interface {
	ListCommits(ctx context.Context, repo config.Repository, limit int) ([]models.Commit, error)
	GetDiff(ctx context.Context, repo config.Repository, sha string) (string, error)
}

// Prompter gathers the user's choices. The survey-backed implementation
// lives in prompter.go; tests substitute a scripted one.
type Prompter interface {
	SelectRepository(names []string) (string, error)
	SelectRange(commits []models.Commit) (RangeSelection, error)
	NextAction() (Action, error)
}

// Progress signals a long remote call is in flight
type Progress interface {
	Start(message string)
	Stop()
}

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	errColor     = color.New(color.FgRed)
)

// Controller drives one interactive review session:
// SelectingRepository -> SelectingRange -> Summarizing -> Idle, looping back
// to SelectingRange (or SelectingRepository) until the user quits. A client
// failure aborts the current step and returns to range selection; the
// session itself keeps running.
type Controller struct {
	cfg        *config.Config
	repos      RepositoryClient
	summarizer llm.Summarizer
	prompter   Prompter
	progress   Progress
	log        *logger.Logger
	out        io.Writer
	user       string
}

// New creates a session controller with interactive defaults
func New(cfg *config.Config, repos RepositoryClient, summarizer llm.Summarizer, prompter Prompter, log *logger.Logger) *Controller {
	user := "unknown"
	if u, err := osuser.Current(); err == nil && u.Username != "" {
		user = u.Username
	}

	return &Controller{
		cfg:        cfg,
		repos:      repos,
		summarizer: summarizer,
		prompter:   prompter,
		progress:   newSpinnerProgress(),
		log:        log,
		out:        os.Stdout,
		user:       user,
	}
}

// Run executes the session loop until the user quits or an unrecoverable
// prompter error occurs.
func (c *Controller) Run(ctx context.Context) error {
	state := StateSelectingRepository

	var (
		repo      config.Repository
		tr        *transcript.Transcript
		selected  []models.Commit
		perCommit bool
	)
	defer func() {
		if tr != nil {
			tr.Close()
		}
	}()

	for {
		c.log.Debugf("session state: %s", state)

		switch state {
		case StateSelectingRepository:
			name, err := c.prompter.SelectRepository(c.cfg.RepositoryNames())
			if err != nil {
				if errors.Is(err, ErrQuit) {
					return nil
				}
				return err
			}

			r, ok := c.cfg.FindRepository(name)
			if !ok {
				c.reportError(fmt.Errorf("repository %q is not configured", name))
				continue
			}
			repo = r

			if tr != nil {
				tr.Close()
			}
			tr, err = transcript.New(c.cfg.Transcripts.Dir, repo.Name, c.user)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Transcript: %s\n", tr.Path())
			state = StateSelectingRange

		case StateSelectingRange:
			c.progress.Start("Fetching commits...")
			commits, err := c.repos.ListCommits(ctx, repo, commitListLimit)
			c.progress.Stop()
			if err != nil {
				c.reportError(err)
				state = StateIdle
				continue
			}
			if len(commits) == 0 {
				fmt.Fprintf(c.out, "No commits found on %s\n", repo.Branch)
				state = StateIdle
				continue
			}

			sel, err := c.prompter.SelectRange(commits)
			if err != nil {
				if errors.Is(err, ErrQuit) {
					state = StateIdle
					continue
				}
				return err
			}

			if sel.Start < 1 {
				sel.Start = 1
			}
			if sel.End > len(commits) {
				sel.End = len(commits)
			}
			if sel.Start > sel.End {
				// Empty or inverted span summarizes nothing.
				fmt.Fprintln(c.out, "Nothing to summarize in that range.")
				state = StateIdle
				continue
			}

			selected = commits[sel.Start-1 : sel.End]
			perCommit = sel.PerCommit
			state = StateSummarizing

		case StateSummarizing:
			state = c.summarize(ctx, repo, selected, perCommit, tr)

		case StateIdle:
			action, err := c.prompter.NextAction()
			if err != nil {
				if errors.Is(err, ErrQuit) {
					return nil
				}
				return err
			}
			switch action {
			case ActionSummarizeAnother:
				state = StateSelectingRange
			case ActionSwitchRepository:
				state = StateSelectingRepository
			case ActionQuit:
				fmt.Fprintf(c.out, "Session transcript saved to %s\n", tr.Path())
				return nil
			}
		}
	}
}

// summarize runs the selected units through the two clients. On any client
// failure the step is abandoned and the session returns to range selection;
// transcript entries recorded before the failure are kept.
func (c *Controller) summarize(ctx context.Context, repo config.Repository, commits []models.Commit, perCommit bool, tr *transcript.Transcript) State {
	if perCommit {
		for _, commit := range commits {
			diff, err := c.fetchDiff(ctx, repo, commit)
			if err != nil {
				c.reportError(err)
				return StateSelectingRange
			}

			system, user := prompt.ForCommit(commit, diff)
			text, err := c.runModel(ctx, commit.ShortSHA(), system, user)
			if err != nil {
				c.reportError(err)
				return StateSelectingRange
			}

			c.render(fmt.Sprintf("%s %s", commit.ShortSHA(), commit.Title()), text)
			if err := tr.Append(commit.SHA, text); err != nil {
				c.reportError(err)
				return StateSelectingRange
			}
		}
		return StateIdle
	}

	diffs := make([]string, 0, len(commits))
	for _, commit := range commits {
		diff, err := c.fetchDiff(ctx, repo, commit)
		if err != nil {
			c.reportError(err)
			return StateSelectingRange
		}
		diffs = append(diffs, diff)
	}

	system, user := prompt.ForRange(repo.Name, commits, diffs)
	reference := fmt.Sprintf("%s..%s", commits[0].ShortSHA(), commits[len(commits)-1].ShortSHA())
	text, err := c.runModel(ctx, reference, system, user)
	if err != nil {
		c.reportError(err)
		return StateSelectingRange
	}

	c.render(reference, text)
	if err := tr.Append(reference, text); err != nil {
		c.reportError(err)
		return StateSelectingRange
	}
	return StateIdle
}

func (c *Controller) fetchDiff(ctx context.Context, repo config.Repository, commit models.Commit) (string, error) {
	c.progress.Start("Fetching diff for " + commit.ShortSHA())
	defer c.progress.Stop()
	return c.repos.GetDiff(ctx, repo, commit.SHA)
}

func (c *Controller) runModel(ctx context.Context, reference, system, user string) (string, error) {
	c.progress.Start("Summarizing " + reference)
	defer c.progress.Stop()
	return c.summarizer.Summarize(ctx, system, user)
}

func (c *Controller) render(title, text string) {
	headingColor.Fprintf(c.out, "\n%s\n", title)
	fmt.Fprintln(c.out, text)
}

func (c *Controller) reportError(err error) {
	errColor.Fprintf(c.out, "error: %v\n", err)
	c.log.Error("session step failed", err)
}
