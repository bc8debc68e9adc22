package structural

import (
	"time"

	"github.com/dusk-indust/mend/internal/merge"
)

// Strategy performs syntax-aware merges for the languages with a registered
// grammar. It currently handles one shape of conflict: both sides consist
// solely of import statements that parse cleanly, in which case it proposes
// the line-level union of the two sides. Every other conflict is delegated to
// the wrapped text-based fallback, so a hunk handed to this strategy always
// gets some proposal.
type Strategy struct {
	parser   *Parser
	lang     Language
	fallback merge.Strategy
}

var _ merge.Strategy = (*Strategy)(nil)

// NewStrategy creates a structural strategy for the given language. The
// fallback is consulted whenever the structural merge does not apply; pass
// merge.AcceptBothStrategy or similar.
func NewStrategy(lang Language, fallback merge.Strategy) *Strategy {
	return &Strategy{
		parser:   NewParser(),
		lang:     lang,
		fallback: fallback,
	}
}

// NewStrategyForPath creates a structural strategy for the file's language,
// or (nil, false) when the extension is not recognized.
func NewStrategyForPath(path string, fallback merge.Strategy) (*Strategy, bool) {
	lang, ok := DetectLanguage(path)
	if !ok {
		return nil, false
	}
	return NewStrategy(lang, fallback), true
}

// Kind tags resolutions from this strategy.
func (s *Strategy) Kind() merge.StrategyKind {
	return merge.KindStructural
}

// Propose attempts the structural merge and falls back to the wrapped
// strategy when the hunk is not structurally mergeable.
func (s *Strategy) Propose(h *merge.ConflictHunk) *merge.Resolution {
	if content, ok := s.mergeImports(h); ok {
		return &merge.Resolution{
			Kind:    merge.KindStructural,
			Content: content,
			Metadata: merge.ResolutionMetadata{
				Source:    merge.SourceStructural,
				Provider:  string(s.lang),
				Note:      "import union",
				Timestamp: time.Now(),
			},
		}
	}
	return s.fallback.Propose(h)
}

// mergeImports returns the union of two import-only sides. Both sides must
// parse cleanly on their own, every top-level node must be an import
// statement, and the combined text must still parse cleanly.
func (s *Strategy) mergeImports(h *merge.ConflictHunk) (string, bool) {
	if !s.importsOnly(h.Left.Text) || !s.importsOnly(h.Right.Text) {
		return "", false
	}

	combined := merge.AcceptBoth(h, merge.AcceptBothOptions{
		Order:          merge.LeftThenRight,
		Deduplicate:    true,
		TrimWhitespace: true,
	}).Content
	if combined == "" {
		return "", false
	}

	if ok := s.importsOnly(combined); !ok {
		return "", false
	}
	return combined, true
}

// importsOnly reports whether text parses cleanly and contains nothing but
// import statements and comments at the top level. Empty text does not count.
func (s *Strategy) importsOnly(text string) bool {
	kinds, parsed, err := s.parser.topLevelKinds([]byte(text), s.lang)
	if err != nil || !parsed || len(kinds) == 0 {
		return false
	}

	allowed := importNodeKinds[s.lang]
	for _, kind := range kinds {
		if kind == "comment" || kind == "line_comment" {
			continue
		}
		if !allowed[kind] {
			return false
		}
	}
	return true
}
