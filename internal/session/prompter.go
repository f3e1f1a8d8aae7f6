package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/briandowns/spinner"

	"commitlens/internal/models"
)

const (
	modePerCommit  = "Each commit separately"
	modeWholeRange = "Whole range at once"

	actionSummarize = "Summarize another range"
	actionSwitch    = "Switch repository"
	actionQuit      = "Quit"
)

// SurveyPrompter implements Prompter on top of terminal prompts
type SurveyPrompter struct{}

// NewSurveyPrompter creates the interactive prompter
func NewSurveyPrompter() *SurveyPrompter {
	return &SurveyPrompter{}
}

// SelectRepository asks the user to pick a configured repository
func (p *SurveyPrompter) SelectRepository(names []string) (string, error) {
	var selected string
	prompt := &survey.Select{
		Message:  "Select repository:",
		Options:  names,
		PageSize: 10,
	}
	if err := survey.AskOne(prompt, &selected); err != nil {
		return "", quitOn(err)
	}
	return selected, nil
}

// SelectRange lists the recent commits and asks for an index span plus the
// summarization mode.
func (p *SurveyPrompter) SelectRange(commits []models.Commit) (RangeSelection, error) {
	fmt.Println("Most recent commits:")
	for i, commit := range commits {
		fmt.Printf("%3d. %s  %s  (%s, %s)\n",
			i+1, commit.ShortSHA(), commit.Title(), commit.Author,
			commit.Timestamp.Format("2006-01-02"))
	}

	var answer string
	input := &survey.Input{
		Message: fmt.Sprintf("Commit range to review (e.g. 1-5, up to %d):", len(commits)),
	}
	if err := survey.AskOne(input, &answer, survey.WithValidator(rangeValidator(len(commits)))); err != nil {
		return RangeSelection{}, quitOn(err)
	}

	start, end, err := parseRange(answer)
	if err != nil {
		return RangeSelection{}, err
	}

	var mode string
	modePrompt := &survey.Select{
		Message: "How should the range be summarized?",
		Options: []string{modePerCommit, modeWholeRange},
	}
	if err := survey.AskOne(modePrompt, &mode); err != nil {
		return RangeSelection{}, quitOn(err)
	}

	return RangeSelection{Start: start, End: end, PerCommit: mode == modePerCommit}, nil
}

// NextAction asks what to do after a summarization round
func (p *SurveyPrompter) NextAction() (Action, error) {
	var choice string
	prompt := &survey.Select{
		Message: "Next:",
		Options: []string{actionSummarize, actionSwitch, actionQuit},
	}
	if err := survey.AskOne(prompt, &choice); err != nil {
		return ActionQuit, quitOn(err)
	}

	switch choice {
	case actionSummarize:
		return ActionSummarizeAnother, nil
	case actionSwitch:
		return ActionSwitchRepository, nil
	default:
		return ActionQuit, nil
	}
}

// parseRange accepts "3" or "1-5" as 1-based bounds
func parseRange(s string) (int, int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, n, nil
	}

	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid range %q, expected start-end", s)
	}
	start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid range start %q", parts[0])
	}
	end, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid range end %q", parts[1])
	}
	return start, end, nil
}

// rangeValidator checks the answer parses and stays within the listed
// commits. Order is not enforced here: an inverted span is a valid answer
// that summarizes nothing.
func rangeValidator(max int) survey.Validator {
	return func(val interface{}) error {
		s, ok := val.(string)
		if !ok {
			return errors.New("a range is required")
		}
		start, end, err := parseRange(s)
		if err != nil {
			return err
		}
		if start < 1 || start > max || end < 1 || end > max {
			return fmt.Errorf("indices must be between 1 and %d", max)
		}
		return nil
	}
}

func quitOn(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrQuit
	}
	return err
}

// spinnerProgress shows a spinner while a remote call is in flight
type spinnerProgress struct {
	s *spinner.Spinner
}

func newSpinnerProgress() *spinnerProgress {
	return &spinnerProgress{s: spinner.New(spinner.CharSets[11], 100*time.Millisecond)}
}

func (p *spinnerProgress) Start(message string) {
	p.s.Suffix = " " + message
	p.s.Start()
}

func (p *spinnerProgress) Stop() {
	p.s.Stop()
}

// noopProgress is used when no terminal feedback is wanted
type noopProgress struct{}

func (noopProgress) Start(string) {}
func (noopProgress) Stop()        {}
