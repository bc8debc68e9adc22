package merge

// Strategy proposes resolutions for conflict hunks. Built-in strategies live
// in this package; structural and AI strategies are external implementers of
// the same interface, passed by reference at call time.
//
// The contract is synchronous end-to-end: Propose must return an
// already-materialized Resolution (or nil for no proposal) and never block on
// unfinished external work. External strategies that perform a specialized
// merge must attempt it first and, on failure, delegate to a wrapped
// text-based strategy rather than returning nil or a partial result, so that
// every hunk stays resolvable via text.
type Strategy interface {
	// Kind returns the tag recorded on resolutions this strategy produces.
	Kind() StrategyKind
	// Propose returns a candidate resolution for the hunk, or nil if the
	// strategy has nothing to offer. Must not mutate the hunk.
	Propose(h *ConflictHunk) *Resolution
}

// Compile-time checks.
var (
	_ Strategy = AcceptLeftStrategy{}
	_ Strategy = AcceptRightStrategy{}
	_ Strategy = AcceptBothStrategy{}
	_ Strategy = ManualStrategy{}
)

// AcceptLeftStrategy proposes the left side's text, unchanged.
type AcceptLeftStrategy struct{}

// Kind returns KindAcceptLeft.
func (AcceptLeftStrategy) Kind() StrategyKind { return KindAcceptLeft }

// Propose returns the left content verbatim.
func (AcceptLeftStrategy) Propose(h *ConflictHunk) *Resolution {
	r := AcceptLeft(h)
	return &r
}

// AcceptRightStrategy proposes the right side's text, unchanged.
type AcceptRightStrategy struct{}

// Kind returns KindAcceptRight.
func (AcceptRightStrategy) Kind() StrategyKind { return KindAcceptRight }

// Propose returns the right content verbatim.
func (AcceptRightStrategy) Propose(h *ConflictHunk) *Resolution {
	r := AcceptRight(h)
	return &r
}

// AcceptBothStrategy proposes the concatenation of both sides per Options.
type AcceptBothStrategy struct {
	Options AcceptBothOptions
}

// Kind returns KindAcceptBoth.
func (AcceptBothStrategy) Kind() StrategyKind { return KindAcceptBoth }

// Propose returns both sides combined per the configured options.
func (s AcceptBothStrategy) Propose(h *ConflictHunk) *Resolution {
	r := AcceptBoth(h, s.Options)
	return &r
}

// ManualStrategy is the tag for caller-supplied content. It never proposes
// anything on its own; callers construct resolutions with Manual and apply
// them through SetResolution.
type ManualStrategy struct{}

// Kind returns KindManual.
func (ManualStrategy) Kind() StrategyKind { return KindManual }

// Propose always returns nil.
func (ManualStrategy) Propose(*ConflictHunk) *Resolution { return nil }
