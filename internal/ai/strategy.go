package ai

import (
	"context"
	"time"

	"github.com/dusk-indust/mend/internal/merge"
)

const (
	defaultMaxTokens     = 4096
	defaultTimeout       = 30 * time.Second
	defaultMinConfidence = 60
)

// ProviderOptions configures a provider client.
type ProviderOptions struct {
	APIKey    string
	Model     string
	BaseURL   string
	MaxTokens int
}

// StrategyOptions configures the Strategy adapter.
type StrategyOptions struct {
	// Path of the file being merged, used for the language hint.
	Path string
	// MinConfidence rejects suggestions below this threshold, 0 to 100.
	// Zero means the default threshold.
	MinConfidence int
	// Timeout bounds each provider call. Zero means the default.
	Timeout time.Duration
}

// Strategy adapts a Provider to the synchronous strategy contract. Propose
// blocks on one provider call with a bounded timeout; a provider error, an
// empty suggestion, or confidence below the threshold delegates to the
// wrapped text-based fallback, so a hunk handed to this strategy always gets
// some proposal.
type Strategy struct {
	provider Provider
	fallback merge.Strategy
	opts     StrategyOptions
}

var _ merge.Strategy = (*Strategy)(nil)

// NewStrategy wraps a provider and a fallback strategy.
func NewStrategy(provider Provider, fallback merge.Strategy, opts StrategyOptions) *Strategy {
	if opts.MinConfidence == 0 {
		opts.MinConfidence = defaultMinConfidence
	}
	if opts.Timeout == 0 {
		opts.Timeout = defaultTimeout
	}
	return &Strategy{provider: provider, fallback: fallback, opts: opts}
}

// Kind tags resolutions from this strategy.
func (s *Strategy) Kind() merge.StrategyKind {
	return merge.KindAISuggested
}

// Propose asks the provider for a suggestion and falls back on any failure.
func (s *Strategy) Propose(h *merge.ConflictHunk) *merge.Resolution {
	ctx, cancel := context.WithTimeout(context.Background(), s.opts.Timeout)
	defer cancel()

	sug, err := s.provider.Suggest(ctx, NewRequest(h, s.opts.Path))
	if err != nil || sug == nil || sug.Content == "" || sug.Confidence < s.opts.MinConfidence {
		return s.fallback.Propose(h)
	}

	return &merge.Resolution{
		Kind:    merge.KindAISuggested,
		Content: sug.Content,
		Metadata: merge.ResolutionMetadata{
			Source:     merge.SourceAI,
			Provider:   s.provider.Name(),
			Note:       sug.Explanation,
			Confidence: sug.Confidence,
			Timestamp:  time.Now(),
		},
	}
}
