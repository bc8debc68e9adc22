package merge

import (
	"strings"
	"time"
)

// StrategyKind tags how a resolution was produced. The tag is descriptive
// only: the resolution's content is always stored verbatim and never
// recomputed from the tag.
type StrategyKind string

const (
	// KindAcceptLeft uses the left side's text unchanged.
	KindAcceptLeft StrategyKind = "accept-left"
	// KindAcceptRight uses the right side's text unchanged.
	KindAcceptRight StrategyKind = "accept-right"
	// KindAcceptBoth concatenates both sides per AcceptBothOptions.
	KindAcceptBoth StrategyKind = "accept-both"
	// KindManual is caller-supplied content.
	KindManual StrategyKind = "manual"
	// KindStructural is a language-aware merge from an external strategy.
	KindStructural StrategyKind = "structural"
	// KindAISuggested is an AI-generated suggestion from an external strategy.
	KindAISuggested StrategyKind = "ai-suggested"
)

// ResolutionSource describes who or what produced a resolution.
type ResolutionSource string

const (
	// SourceUser is a human decision.
	SourceUser ResolutionSource = "user"
	// SourceAI is an accepted AI suggestion.
	SourceAI ResolutionSource = "ai"
	// SourceStructural is a language-aware structural merge.
	SourceStructural ResolutionSource = "structural"
)

// ResolutionMetadata is provenance for a resolution. Purely descriptive; it
// never affects output bytes.
type ResolutionMetadata struct {
	Source ResolutionSource
	// Provider names the external producer (AI provider or language) when
	// Source is not SourceUser.
	Provider string
	Note     string
	// Confidence is a 0-100 score, meaningful only for AI-sourced resolutions.
	Confidence int
	Timestamp  time.Time
}

// Resolution is an explicit decision for one hunk: a strategy tag recording
// how, and content recording what.
type Resolution struct {
	Kind     StrategyKind
	Content  string
	Metadata ResolutionMetadata
}

// BothOrder selects the concatenation order for accept-both.
type BothOrder string

const (
	// LeftThenRight emits left content first.
	LeftThenRight BothOrder = "left-then-right"
	// RightThenLeft emits right content first.
	RightThenLeft BothOrder = "right-then-left"
)

// AcceptBothOptions controls the accept-both strategy. The zero value means
// left-then-right, no deduplication.
type AcceptBothOptions struct {
	Order BothOrder
	// Deduplicate emits lines identical across both sides once, at the
	// position of their first occurrence under the chosen order. Whole lines
	// only, never sub-line tokens.
	Deduplicate bool
	// TrimWhitespace ignores leading/trailing whitespace when comparing lines
	// for deduplication. The emitted line keeps its original text.
	TrimWhitespace bool
}

// AcceptLeft builds a resolution from the hunk's left text, unchanged.
func AcceptLeft(h *ConflictHunk) Resolution {
	return Resolution{
		Kind:     KindAcceptLeft,
		Content:  h.Left.Text,
		Metadata: ResolutionMetadata{Source: SourceUser, Timestamp: time.Now()},
	}
}

// AcceptRight builds a resolution from the hunk's right text, unchanged.
func AcceptRight(h *ConflictHunk) Resolution {
	return Resolution{
		Kind:     KindAcceptRight,
		Content:  h.Right.Text,
		Metadata: ResolutionMetadata{Source: SourceUser, Timestamp: time.Now()},
	}
}

// AcceptBoth builds a resolution that combines both sides per opts.
func AcceptBoth(h *ConflictHunk, opts AcceptBothOptions) Resolution {
	first, second := h.Left.Text, h.Right.Text
	if opts.Order == RightThenLeft {
		first, second = second, first
	}

	var content string
	switch {
	case first == "" && second == "":
		content = ""
	case first == "":
		content = second
	case second == "":
		content = first
	case opts.Deduplicate:
		content = combineDedup(first, second, opts.TrimWhitespace)
	default:
		content = combineSimple(first, second)
	}

	return Resolution{
		Kind:     KindAcceptBoth,
		Content:  content,
		Metadata: ResolutionMetadata{Source: SourceUser, Timestamp: time.Now()},
	}
}

// Manual builds a resolution with caller-supplied content, preserved exactly.
// Empty content is allowed; it means the hunk resolves to nothing.
func Manual(content string) Resolution {
	return Resolution{
		Kind:     KindManual,
		Content:  content,
		Metadata: ResolutionMetadata{Source: SourceUser, Timestamp: time.Now()},
	}
}

// combineSimple concatenates two sides with a newline boundary.
func combineSimple(first, second string) string {
	if strings.HasSuffix(first, "\n") {
		return first + second
	}
	return first + "\n" + second
}

// combineDedup concatenates two sides, emitting each distinct line once at
// its first occurrence. Comparison is whole-line, optionally with leading and
// trailing whitespace ignored; the emitted line is always the untrimmed text
// of the first occurrence.
func combineDedup(first, second string, trimWhitespace bool) string {
	key := func(line string) string {
		if trimWhitespace {
			return strings.TrimSpace(line)
		}
		return line
	}

	seen := make(map[string]struct{})
	var out []string

	// Every first-side line is a first occurrence.
	for _, line := range splitLines(first) {
		seen[key(line)] = struct{}{}
		out = append(out, line)
	}
	// Second side skips lines already seen.
	for _, line := range splitLines(second) {
		k := key(line)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, line)
	}

	result := strings.Join(out, "\n")
	if strings.HasSuffix(first, "\n") || strings.HasSuffix(second, "\n") {
		result += "\n"
	}
	return result
}

// splitLines splits text into lines without a trailing empty element for a
// trailing newline. Empty text yields no lines.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
