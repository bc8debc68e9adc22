package merge

import "fmt"

// SessionState is the whole-file lifecycle state of a merge session.
// States advance strictly forward except for the Parsed/Active/FullyResolved
// band, which is re-derived after every resolution mutation.
type SessionState string

const (
	// StateUninitialized means raw input was provided but not parsed.
	StateUninitialized SessionState = "uninitialized"
	// StateParsed means conflict markers were parsed and hunks created.
	StateParsed SessionState = "parsed"
	// StateActive means resolution work has started.
	StateActive SessionState = "active"
	// StateFullyResolved means every hunk has a resolution. Derived, never
	// set explicitly.
	StateFullyResolved SessionState = "fully-resolved"
	// StateApplied means output text was rendered.
	StateApplied SessionState = "applied"
	// StateValidated means the rendered output passed validation.
	StateValidated SessionState = "validated"
	// StateCompleted means the final result was generated and the session
	// is no longer usable.
	StateCompleted SessionState = "completed"
)

// MergeSession is one merge attempt for one file. It exclusively owns its
// hunks and resolutions; no two sessions share hunk data. Sessions are
// single-writer: they may be handed off between goroutines but must never be
// mutated concurrently.
type MergeSession struct {
	input       MergeInput
	hunks       []*ConflictHunk
	segments    []Segment
	trailingNL  bool
	state       SessionState
	resolutions map[HunkID]Resolution
	checker     SyntaxChecker

	// rendered caches the output of the most recent Apply; invalidated by
	// any resolution mutation.
	rendered string
	applied  bool

	// completed is the post-completion guard: once set, every operation
	// fails with a StateError.
	completed bool
}

// NewSession parses the conflicted document in input.Left.Content and returns
// a session with every hunk Unresolved. The input is never mutated.
func NewSession(input MergeInput) (*MergeSession, error) {
	parsed, err := ParseConflictMarkers(input.Left.Content)
	if err != nil {
		return nil, err
	}

	s := &MergeSession{
		input:       input,
		hunks:       parsed.Hunks,
		segments:    parsed.Segments,
		trailingNL:  parsed.TrailingNewline,
		state:       StateParsed,
		resolutions: make(map[HunkID]Resolution),
	}
	// A document with no conflicts is vacuously fully resolved and
	// immediately eligible for completion.
	if len(s.hunks) == 0 {
		s.state = StateFullyResolved
	}
	return s, nil
}

// SetSyntaxChecker installs an optional external syntax check consulted by
// Validate after the built-in checks pass.
func (s *MergeSession) SetSyntaxChecker(c SyntaxChecker) {
	s.checker = c
}

// Input returns the original merge input.
func (s *MergeSession) Input() *MergeInput {
	return &s.input
}

// State returns the current session state.
func (s *MergeSession) State() SessionState {
	return s.state
}

// Hunks returns all conflict hunks in ascending id order, equal to their
// first-appearance order in the source text. The slice and its hunks are
// owned by the session; callers must not mutate them.
func (s *MergeSession) Hunks() []*ConflictHunk {
	return s.hunks
}

// Hunk returns the hunk with the given id.
func (s *MergeSession) Hunk(id HunkID) (*ConflictHunk, error) {
	if int(id) >= len(s.hunks) {
		return nil, &ResolutionError{Kind: HunkNotFound, ID: id}
	}
	return s.hunks[id], nil
}

// IsFullyResolved reports whether every hunk has a resolution.
func (s *MergeSession) IsFullyResolved() bool {
	for _, h := range s.hunks {
		if h.Status != HunkResolved {
			return false
		}
	}
	return true
}

// UnresolvedHunks returns the ids of hunks without a resolution, in order.
func (s *MergeSession) UnresolvedHunks() []HunkID {
	var ids []HunkID
	for _, h := range s.hunks {
		if h.Status != HunkResolved {
			ids = append(ids, h.ID)
		}
	}
	return ids
}

// Resolution returns the resolution for the given hunk, or nil if the hunk
// is unresolved.
func (s *MergeSession) Resolution(id HunkID) (*Resolution, error) {
	if _, err := s.Hunk(id); err != nil {
		return nil, err
	}
	if r, ok := s.resolutions[id]; ok {
		return &r, nil
	}
	return nil, nil
}

// SetResolution records an explicit decision for a hunk. Legal from Parsed
// through Validated; moving a hunk out of Invalid requires exactly this call.
// The aggregate session state is re-derived afterwards, so resolving the last
// hunk yields FullyResolved and overriding after an apply drops back from
// Applied/Validated.
func (s *MergeSession) SetResolution(id HunkID, r Resolution) error {
	if s.completed {
		return &StateError{Op: "set resolution", State: s.state}
	}
	h, err := s.Hunk(id)
	if err != nil {
		return err
	}
	if err := checkResolution(id, r); err != nil {
		return err
	}

	s.resolutions[id] = r
	h.Status = HunkResolved
	h.Proposals = nil
	s.invalidateOutput()
	s.deriveState()
	return nil
}

// ClearResolution removes a hunk's resolution, returning it to Unresolved
// regardless of prior status. This can move the aggregate state backward,
// e.g. FullyResolved back to Active.
func (s *MergeSession) ClearResolution(id HunkID) error {
	if s.completed {
		return &StateError{Op: "clear resolution", State: s.state}
	}
	h, err := s.Hunk(id)
	if err != nil {
		return err
	}

	delete(s.resolutions, id)
	h.Status = HunkUnresolved
	h.Proposals = nil
	s.invalidateOutput()
	s.deriveState()
	return nil
}

// ProposeResolutions collects candidate resolutions for a hunk from the given
// strategies, in order. Strategy order defines presentation priority, not an
// automatic choice: nothing is selected and no resolution state changes. The
// candidates are recorded on the hunk for display, moving an Unresolved hunk
// to the advisory Proposed status.
func (s *MergeSession) ProposeResolutions(id HunkID, strategies ...Strategy) ([]Resolution, error) {
	if s.completed {
		return nil, &StateError{Op: "propose resolutions", State: s.state}
	}
	h, err := s.Hunk(id)
	if err != nil {
		return nil, err
	}

	var proposals []Resolution
	for _, strat := range strategies {
		if r := strat.Propose(h); r != nil {
			proposals = append(proposals, *r)
		}
	}

	h.Proposals = proposals
	if h.Status == HunkUnresolved && len(proposals) > 0 {
		h.Status = HunkProposed
	}
	if s.state == StateParsed {
		s.state = StateActive
	}
	return proposals, nil
}

// Summary returns statistics recomputed from the current resolution mapping.
func (s *MergeSession) Summary() MergeSummary {
	sum := MergeSummary{
		TotalHunks: len(s.hunks),
		ByStrategy: make(map[StrategyKind]int),
	}
	for _, h := range s.hunks {
		if h.Status != HunkResolved {
			continue
		}
		sum.ResolvedHunks++
		sum.ByStrategy[s.resolutions[h.ID].Kind]++
	}
	return sum
}

// checkResolution rejects resolutions the session must not store. Built-in
// strategies and manual decisions may legitimately carry empty content (an
// empty side, or an explicit deletion); external strategies must always
// produce real content, their fallback contract guarantees it.
func checkResolution(id HunkID, r Resolution) error {
	switch r.Kind {
	case KindAcceptLeft, KindAcceptRight, KindAcceptBoth, KindManual:
		return nil
	case KindStructural, KindAISuggested:
		if r.Content == "" {
			return &ResolutionError{
				Kind:   InvalidResolution,
				ID:     id,
				Detail: fmt.Sprintf("empty content from %s strategy", r.Kind),
			}
		}
		return nil
	}
	return &ResolutionError{
		Kind:   InvalidResolution,
		ID:     id,
		Detail: fmt.Sprintf("unknown strategy kind %q", r.Kind),
	}
}

// invalidateOutput discards rendered output after a resolution mutation.
func (s *MergeSession) invalidateOutput() {
	s.rendered = ""
	s.applied = false
}

// deriveState recomputes the aggregate state within the Parsed/Active/
// FullyResolved band. Never cached across mutations.
func (s *MergeSession) deriveState() {
	if s.IsFullyResolved() {
		s.state = StateFullyResolved
		return
	}
	if s.state == StateParsed && len(s.resolutions) == 0 && !s.anyProposed() {
		// No resolution work has started yet.
		return
	}
	s.state = StateActive
}

func (s *MergeSession) anyProposed() bool {
	for _, h := range s.hunks {
		if h.Status == HunkProposed {
			return true
		}
	}
	return false
}
