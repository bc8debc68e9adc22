// Package diffview renders unified diffs for conflict hunks and candidate
// resolutions, for display in CLI and tool output.
package diffview

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/dusk-indust/mend/internal/merge"
)

const contextLines = 3

// Unified renders a unified diff between two texts with the given labels.
func Unified(a, b, fromLabel, toLabel string) (string, error) {
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(a),
		B:        difflib.SplitLines(b),
		FromFile: fromLabel,
		ToFile:   toLabel,
		Context:  contextLines,
	})
	if err != nil {
		return "", fmt.Errorf("render diff: %w", err)
	}
	return text, nil
}

// HunkDiff renders the two sides of a conflict against each other.
func HunkDiff(h *merge.ConflictHunk) (string, error) {
	return Unified(
		withTrailingNewline(h.Left.Text),
		withTrailingNewline(h.Right.Text),
		fmt.Sprintf("hunk %d (ours)", h.ID),
		fmt.Sprintf("hunk %d (theirs)", h.ID),
	)
}

// ResolutionDiff renders what a candidate resolution changes relative to each
// side of the hunk.
func ResolutionDiff(h *merge.ConflictHunk, r merge.Resolution) (string, error) {
	content := withTrailingNewline(r.Content)

	fromLeft, err := Unified(
		withTrailingNewline(h.Left.Text), content,
		fmt.Sprintf("hunk %d (ours)", h.ID),
		fmt.Sprintf("resolution (%s)", r.Kind),
	)
	if err != nil {
		return "", err
	}

	fromRight, err := Unified(
		withTrailingNewline(h.Right.Text), content,
		fmt.Sprintf("hunk %d (theirs)", h.ID),
		fmt.Sprintf("resolution (%s)", r.Kind),
	)
	if err != nil {
		return "", err
	}

	return fromLeft + fromRight, nil
}

// withTrailingNewline normalizes text for line-based diffing. Empty text
// stays empty.
func withTrailingNewline(text string) string {
	if text == "" || strings.HasSuffix(text, "\n") {
		return text
	}
	return text + "\n"
}
