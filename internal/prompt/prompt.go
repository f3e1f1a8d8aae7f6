package prompt

import (
	"fmt"
	"strings"

	"commitlens/internal/models"
)

const commitSystem = `You are a code reviewer. Summarize the following code changes clearly and concisely for a human reviewer. Focus on the purpose and impact of the change; mention technical details only when they matter for understanding it.`

const rangeSystem = `You are a code reviewer. Produce a single consolidated review summary of the following commits. Group related changes together, call out user-visible behavior changes first, and note anything that deserves closer inspection.`

// ForCommit builds the prompt pair for one commit's diff
func ForCommit(commit models.Commit, diff string) (system, user string) {
	var b strings.Builder

	if commit.Message != "" {
		fmt.Fprintf(&b, "Commit message: %s\n", commit.Message)
	}
	if commit.Author != "" {
		fmt.Fprintf(&b, "Author: %s\n", commit.Author)
	}
	b.WriteString("\nCode changes:\n")
	if diff == "" {
		b.WriteString("No textual changes available\n")
	} else {
		b.WriteString(diff)
	}

	return commitSystem, b.String()
}

// ForRange builds the prompt pair for a whole commit range, one section per
// commit in range order.
func ForRange(repository string, commits []models.Commit, diffs []string) (system, user string) {
	var b strings.Builder

	fmt.Fprintf(&b, "Repository: %s\n", repository)
	fmt.Fprintf(&b, "Commits in range: %d\n\n", len(commits))

	for i, commit := range commits {
		fmt.Fprintf(&b, "--- Commit %s", commit.ShortSHA())
		if commit.Author != "" {
			fmt.Fprintf(&b, " by %s", commit.Author)
		}
		b.WriteString(" ---\n")
		if commit.Message != "" {
			fmt.Fprintf(&b, "Message: %s\n", commit.Message)
		}
		if i < len(diffs) && diffs[i] != "" {
			b.WriteString("Changes:\n")
			b.WriteString(diffs[i])
		} else {
			b.WriteString("No textual changes available\n")
		}
		b.WriteString("\n\n")
	}

	return rangeSystem, b.String()
}
