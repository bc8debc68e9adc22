// Package ai suggests conflict resolutions using language-model providers.
// Providers are consulted through the synchronous Strategy adapter; all
// network calls happen inside Propose with a bounded timeout, and every
// failure path falls back to a plain text strategy.
package ai

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dusk-indust/mend/internal/merge"
	"github.com/dusk-indust/mend/internal/structural"
)

// Suggestion is a provider's proposed resolution for one hunk.
type Suggestion struct {
	// Content is the merged text, with conflict markers removed.
	Content string
	// Confidence is the provider's self-reported confidence, 0 to 100.
	Confidence int
	// Explanation is an optional one-line rationale.
	Explanation string
}

// Provider generates resolution suggestions. Implementations: Anthropic,
// OpenAI.
type Provider interface {
	// Name returns the provider identifier recorded in resolution metadata.
	Name() string
	// Suggest returns a merged candidate for the conflict in req.
	Suggest(ctx context.Context, req *Request) (*Suggestion, error)
	// Explain returns a short prose description of what the two sides
	// changed and where they collide, without resolving anything.
	Explain(ctx context.Context, req *Request) (string, error)
}

// Request carries one conflict hunk plus the surrounding context a model
// needs to merge it.
type Request struct {
	Path     string
	Language string
	Left     string
	Right    string
	Base     string
	Before   []string
	After    []string
}

// NewRequest builds a Request from a hunk and its file path. The language
// hint is derived from the path extension when recognized.
func NewRequest(h *merge.ConflictHunk, path string) *Request {
	req := &Request{
		Path:   path,
		Left:   h.Left.Text,
		Right:  h.Right.Text,
		Before: h.Context.Before,
		After:  h.Context.After,
	}
	if h.Base != nil {
		req.Base = h.Base.Text
	}
	if lang, ok := structural.DetectLanguage(path); ok {
		req.Language = string(lang)
	}
	return req
}

const systemPrompt = `You are a merge conflict resolver. You receive both sides of a ` +
	`merge conflict with surrounding context and respond with the merged code only. ` +
	`Preserve the intent of both changes where they are compatible. Do not include ` +
	`conflict markers, code fences, or commentary. End your response with a final ` +
	`line of the form CONFIDENCE: NN where NN is 0-100.`

const explainPrompt = `You are reviewing a merge conflict. In two or three plain ` +
	`sentences, describe what each side changed and where the changes collide. ` +
	`Do not propose a resolution.`

// buildPrompt renders the user-facing prompt for a request.
func buildPrompt(req *Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "File: %s\n", req.Path)
	if req.Language != "" {
		fmt.Fprintf(&b, "Language: %s\n", req.Language)
	}
	if len(req.Before) > 0 {
		fmt.Fprintf(&b, "\nContext before the conflict:\n%s\n", strings.Join(req.Before, "\n"))
	}
	fmt.Fprintf(&b, "\nOur side:\n%s\n", req.Left)
	if req.Base != "" {
		fmt.Fprintf(&b, "\nCommon ancestor:\n%s\n", req.Base)
	}
	fmt.Fprintf(&b, "\nTheir side:\n%s\n", req.Right)
	if len(req.After) > 0 {
		fmt.Fprintf(&b, "\nContext after the conflict:\n%s\n", strings.Join(req.After, "\n"))
	}
	b.WriteString("\nRespond with the merged replacement for the conflicted region only.")
	return b.String()
}

// parseSuggestion extracts content and confidence from a raw model reply.
// The trailing CONFIDENCE line is optional; absent or unparsable confidence
// is reported as 0.
func parseSuggestion(raw string) *Suggestion {
	text := strings.TrimSpace(raw)
	text = stripCodeFence(text)

	confidence := 0
	if idx := strings.LastIndex(text, "\n"); idx >= 0 || strings.HasPrefix(text, "CONFIDENCE:") {
		last := text
		if idx >= 0 {
			last = text[idx+1:]
		}
		if rest, ok := strings.CutPrefix(strings.TrimSpace(last), "CONFIDENCE:"); ok {
			if n, err := strconv.Atoi(strings.TrimSpace(rest)); err == nil {
				confidence = n
				if idx >= 0 {
					text = strings.TrimRight(text[:idx], "\n")
				} else {
					text = ""
				}
			}
		}
	}

	return &Suggestion{Content: text, Confidence: confidence}
}

// stripCodeFence removes a single surrounding markdown fence if present.
func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		return text
	}
	end := len(lines) - 1
	if strings.TrimSpace(lines[end]) != "```" {
		return text
	}
	return strings.Join(lines[1:end], "\n")
}
