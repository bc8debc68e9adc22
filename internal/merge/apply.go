package merge

import (
	"fmt"
	"strings"
)

// Apply renders the merged output: clean segments verbatim, each conflict
// replaced by its resolved content, in document order. Legal only once the
// session is fully resolved; it does not consume the session, so callers may
// change a resolution and re-apply.
func (s *MergeSession) Apply() (string, error) {
	if s.completed {
		return "", &StateError{Op: "apply", State: s.state}
	}
	switch s.state {
	case StateFullyResolved, StateApplied, StateValidated:
	default:
		if !s.IsFullyResolved() {
			return "", &ApplyError{Kind: NotFullyResolved}
		}
		return "", &StateError{Op: "apply", State: s.state}
	}

	var parts []string
	for _, seg := range s.segments {
		if !seg.IsConflict {
			// Exact inverse of the parser's join: a trailing "\n" in a clean
			// segment is an empty last line, not a terminator.
			parts = append(parts, strings.Split(seg.Text, "\n")...)
			continue
		}
		if seg.HunkIndex >= len(s.hunks) {
			return "", &ApplyError{
				Kind:   InternalError,
				Detail: fmt.Sprintf("segment references hunk index %d of %d", seg.HunkIndex, len(s.hunks)),
			}
		}
		hunk := s.hunks[seg.HunkIndex]
		r, ok := s.resolutions[hunk.ID]
		if !ok {
			return "", &ApplyError{
				Kind:   InternalError,
				Detail: fmt.Sprintf("fully resolved session has no resolution for hunk %d", hunk.ID),
			}
		}
		// The resolved content is emitted, never left/right/base. Empty
		// content deletes the region.
		parts = append(parts, splitLines(r.Content)...)
	}

	out := strings.Join(parts, "\n")
	if s.trailingNL && out != "" {
		out += "\n"
	}

	s.rendered = out
	s.applied = true
	s.state = StateApplied
	return out, nil
}
