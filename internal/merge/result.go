package merge

// MergeWarning is a non-fatal observation attached to a result.
type MergeWarning struct {
	Message string
	// HunkID names the associated hunk; nil for file-level warnings.
	HunkID *HunkID
}

// MergeSummary is derived statistics, recomputed at completion.
type MergeSummary struct {
	TotalHunks    int
	ResolvedHunks int
	// ByStrategy counts resolved hunks per strategy kind.
	ByStrategy map[StrategyKind]int
}

// MergeResult is the frozen outcome of a merge session. Immutable; produced
// exactly once, by consuming the session.
type MergeResult struct {
	Content string
	// UnresolvedHunks is normally empty: completion fails while hunks are
	// unresolved.
	UnresolvedHunks []HunkID
	Warnings        []MergeWarning
	Summary         MergeSummary
}

// Complete freezes the session into a MergeResult. Apply and Validate run
// first if they have not already; their failures are wrapped as
// ApplyFailed/ValidationFailed. On success the session is consumed: every
// subsequent operation fails, even through a retained reference.
func (s *MergeSession) Complete() (*MergeResult, error) {
	if s.completed {
		return nil, &StateError{Op: "complete", State: s.state}
	}

	if !s.applied {
		if _, err := s.Apply(); err != nil {
			return nil, &CompletionError{Err: err}
		}
	}
	if s.state != StateValidated {
		if err := s.Validate(); err != nil {
			return nil, &CompletionError{Err: err}
		}
	}

	result := &MergeResult{
		Content:         s.rendered,
		UnresolvedHunks: s.UnresolvedHunks(),
		Summary:         s.Summary(),
	}

	s.state = StateCompleted
	s.completed = true
	return result, nil
}
