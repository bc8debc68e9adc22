package merge

// HunkID uniquely identifies a conflict hunk within one session. IDs are
// assigned once at parse time, ascending in document order, and never reused.
type HunkID uint32

// HunkContent is one side's text for a hunk. Immutable after parse. Lines are
// newline-joined; a trailing newline marks an empty last line.
type HunkContent struct {
	Text string
}

// HunkContext holds the non-conflicting anchor lines around a hunk, used for
// display and for reconstructing output order.
type HunkContext struct {
	// Before holds up to contextLines lines preceding the opening marker.
	Before []string
	// After holds up to contextLines lines following the closing marker.
	After []string
	// StartLineLeft is the one-indexed line where left content begins.
	StartLineLeft int
	// StartLineRight is the one-indexed line where right content begins.
	StartLineRight int
}

// HunkStatus is the state of a single hunk.
// Transitions: Unresolved -> Proposed -> Resolved -> Invalid -> Resolved.
// Proposed is advisory and never blocks a direct Unresolved -> Resolved move.
type HunkStatus string

const (
	// HunkUnresolved means no resolution has been chosen.
	HunkUnresolved HunkStatus = "unresolved"
	// HunkProposed means candidate resolutions are available for display.
	HunkProposed HunkStatus = "proposed"
	// HunkResolved means a resolution has been selected.
	HunkResolved HunkStatus = "resolved"
	// HunkInvalid means validation rejected a previously resolved hunk.
	// Only a fresh SetResolution call moves the hunk forward again.
	HunkInvalid HunkStatus = "invalid"
)

// ConflictHunk is one contiguous conflicting region. Identity and content are
// fixed at parse time; only Status and Proposals change, and only through the
// owning session.
type ConflictHunk struct {
	ID      HunkID
	Left    HunkContent
	Right   HunkContent
	Base    *HunkContent // nil unless diff3 input carried a base section
	Context HunkContext
	Status  HunkStatus
	// Proposals holds the candidates from the most recent ProposeResolutions
	// call. Advisory only; never the source of truth for output bytes.
	Proposals []Resolution
}
