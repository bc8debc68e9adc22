package merge

// SyntaxChecker is the validator extension point: a pluggable per-language
// check run against rendered output after the built-in checks pass.
// Implementations return a descriptive error on failure.
type SyntaxChecker interface {
	Check(content string) error
}

// Validate checks the rendered output, in order: every hunk resolved,
// no residual conflict-marker lines, then the optional external syntax
// check. Validation is only legal after Apply.
//
// A failure transitions the offending hunks to Invalid rather than
// discarding work: a fresh SetResolution on each invalid hunk is the way
// forward, after which the session re-derives its aggregate state.
func (s *MergeSession) Validate() error {
	if s.completed {
		return &StateError{Op: "validate", State: s.state}
	}
	if s.state != StateApplied && s.state != StateValidated {
		return &StateError{Op: "validate", State: s.state}
	}

	if ids := s.UnresolvedHunks(); len(ids) > 0 {
		return &ValidationError{Kind: UnresolvedHunks, Unresolved: ids}
	}

	if count := countMarkerLines(s.rendered); count > 0 {
		s.invalidateHunks(func(r Resolution) bool {
			return countMarkerLines(r.Content) > 0
		})
		return &ValidationError{Kind: MarkersRemain, Markers: count}
	}

	if s.checker != nil {
		if err := s.checker.Check(s.rendered); err != nil {
			// Attribute the failure to hunks whose resolved content fails
			// the check in isolation; a conflict spanning context lines may
			// leave no single hunk at fault.
			s.invalidateHunks(func(r Resolution) bool {
				return s.checker.Check(r.Content) != nil
			})
			return &ValidationError{Kind: SyntaxError, Detail: err.Error()}
		}
	}

	s.state = StateValidated
	return nil
}

// countMarkerLines counts conflict-marker lines in content.
func countMarkerLines(content string) int {
	count := 0
	for _, line := range splitLines(content) {
		if detectMarker(line) != markerNone {
			count++
		}
	}
	return count
}

// invalidateHunks moves every resolved hunk whose resolution matches the
// predicate to Invalid and re-derives the session state.
func (s *MergeSession) invalidateHunks(offending func(Resolution) bool) {
	changed := false
	for _, h := range s.hunks {
		if h.Status != HunkResolved {
			continue
		}
		if r, ok := s.resolutions[h.ID]; ok && offending(r) {
			h.Status = HunkInvalid
			changed = true
		}
	}
	if changed {
		s.invalidateOutput()
		s.deriveState()
	}
}
