package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoConflictDoc = `header
<<<<<<< HEAD
alpha left
=======
alpha right
>>>>>>> feature
middle
<<<<<<< HEAD
beta left
=======
beta right
>>>>>>> feature
footer
`

// newTestSession parses the given conflicted document into a fresh session.
func newTestSession(t *testing.T, content string) *MergeSession {
	t.Helper()
	s, err := NewSession(MergeInput{
		Left:  FileVersion{Path: "main.go", Content: content},
		Right: FileVersion{Path: "main.go", Content: content},
	})
	require.NoError(t, err)
	return s
}

func TestSession_StartsParsedWithUnresolvedHunks(t *testing.T) {
	s := newTestSession(t, twoConflictDoc)
	assert.Equal(t, StateParsed, s.State())
	require.Len(t, s.Hunks(), 2)
	for _, h := range s.Hunks() {
		assert.Equal(t, HunkUnresolved, h.Status)
	}
	assert.Equal(t, []HunkID{0, 1}, s.UnresolvedHunks())
	assert.False(t, s.IsFullyResolved())
}

func TestSession_ZeroConflictsIsImmediatelyCompletable(t *testing.T) {
	s := newTestSession(t, "no conflicts at all\njust text\n")
	assert.Empty(t, s.Hunks())
	assert.Equal(t, StateFullyResolved, s.State())
	assert.True(t, s.IsFullyResolved())

	result, err := s.Complete()
	require.NoError(t, err)
	assert.Equal(t, "no conflicts at all\njust text\n", result.Content)
	assert.Empty(t, result.UnresolvedHunks)
	assert.Equal(t, 0, result.Summary.TotalHunks)
}

func TestSession_HunkNotFound(t *testing.T) {
	s := newTestSession(t, twoConflictDoc)

	_, err := s.Hunk(99)
	var resErr *ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, HunkNotFound, resErr.Kind)
	assert.Equal(t, HunkID(99), resErr.ID)

	assert.Error(t, s.SetResolution(99, Manual("x")))
	assert.Error(t, s.ClearResolution(99))
}

func TestSession_SetResolutionMovesToActiveThenFullyResolved(t *testing.T) {
	s := newTestSession(t, twoConflictDoc)

	h0, err := s.Hunk(0)
	require.NoError(t, err)
	require.NoError(t, s.SetResolution(0, AcceptLeft(h0)))
	assert.Equal(t, StateActive, s.State())
	assert.Equal(t, HunkResolved, h0.Status)
	assert.Equal(t, []HunkID{1}, s.UnresolvedHunks())

	h1, err := s.Hunk(1)
	require.NoError(t, err)
	require.NoError(t, s.SetResolution(1, AcceptRight(h1)))
	assert.Equal(t, StateFullyResolved, s.State())
	assert.True(t, s.IsFullyResolved())
}

func TestSession_ClearResolutionMovesStateBackward(t *testing.T) {
	s := newTestSession(t, twoConflictDoc)
	for _, h := range s.Hunks() {
		require.NoError(t, s.SetResolution(h.ID, AcceptLeft(h)))
	}
	require.Equal(t, StateFullyResolved, s.State())

	require.NoError(t, s.ClearResolution(1))
	assert.Equal(t, StateActive, s.State())
	h1, err := s.Hunk(1)
	require.NoError(t, err)
	assert.Equal(t, HunkUnresolved, h1.Status)

	r, err := s.Resolution(1)
	require.NoError(t, err)
	assert.Nil(t, r)
}

func TestSession_ApplyBlockedWhileUnresolved(t *testing.T) {
	s := newTestSession(t, twoConflictDoc)
	h0, err := s.Hunk(0)
	require.NoError(t, err)
	require.NoError(t, s.SetResolution(0, AcceptLeft(h0)))

	_, err = s.Apply()
	require.Error(t, err)

	var applyErr *ApplyError
	require.ErrorAs(t, err, &applyErr)
	assert.Equal(t, NotFullyResolved, applyErr.Kind)
}

func TestSession_ApplyRendersResolvedContentInOrder(t *testing.T) {
	s := newTestSession(t, twoConflictDoc)
	h0, err := s.Hunk(0)
	require.NoError(t, err)
	h1, err := s.Hunk(1)
	require.NoError(t, err)
	require.NoError(t, s.SetResolution(0, AcceptLeft(h0)))
	require.NoError(t, s.SetResolution(1, AcceptRight(h1)))

	out, err := s.Apply()
	require.NoError(t, err)
	assert.Equal(t, "header\nalpha left\nmiddle\nbeta right\nfooter\n", out)
	assert.Equal(t, StateApplied, s.State())
}

func TestSession_ApplyKeepsBlankLineBeforeConflict(t *testing.T) {
	s := newTestSession(t, "a\n\n<<<<<<< HEAD\nleft\n=======\nright\n>>>>>>> feature\nb\n")
	h0, err := s.Hunk(0)
	require.NoError(t, err)
	require.NoError(t, s.SetResolution(0, AcceptLeft(h0)))

	out, err := s.Apply()
	require.NoError(t, err)
	assert.Equal(t, "a\n\nleft\nb\n", out)
}

func TestSession_ApplyKeepsLeadingAndTrailingBlankLines(t *testing.T) {
	s := newTestSession(t, "\n<<<<<<< HEAD\nleft\n=======\nright\n>>>>>>> feature\n\n")
	h0, err := s.Hunk(0)
	require.NoError(t, err)
	require.NoError(t, s.SetResolution(0, AcceptLeft(h0)))

	out, err := s.Apply()
	require.NoError(t, err)
	assert.Equal(t, "\nleft\n\n", out)
}

func TestSession_ApplyKeepsBlankLineEndingASide(t *testing.T) {
	s := newTestSession(t, "<<<<<<< HEAD\nleft\n\n=======\nright\n>>>>>>> feature\ntail\n")
	h0, err := s.Hunk(0)
	require.NoError(t, err)
	require.NoError(t, s.SetResolution(0, AcceptLeft(h0)))

	out, err := s.Apply()
	require.NoError(t, err)
	assert.Equal(t, "left\n\ntail\n", out)
}

func TestSession_ReApplyAfterChangingResolution(t *testing.T) {
	s := newTestSession(t, twoConflictDoc)
	for _, h := range s.Hunks() {
		require.NoError(t, s.SetResolution(h.ID, AcceptLeft(h)))
	}

	first, err := s.Apply()
	require.NoError(t, err)
	assert.Contains(t, first, "beta left")

	// Apply does not consume: override one decision and render again.
	h1, err := s.Hunk(1)
	require.NoError(t, err)
	require.NoError(t, s.SetResolution(1, AcceptRight(h1)))
	assert.Equal(t, StateFullyResolved, s.State())

	second, err := s.Apply()
	require.NoError(t, err)
	assert.Contains(t, second, "beta right")
}

func TestSession_ValidateOnlyLegalAfterApply(t *testing.T) {
	s := newTestSession(t, twoConflictDoc)

	err := s.Validate()
	var stateErr *StateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, "validate", stateErr.Op)
}

func TestSession_FullLifecycle(t *testing.T) {
	s := newTestSession(t, twoConflictDoc)
	for _, h := range s.Hunks() {
		require.NoError(t, s.SetResolution(h.ID, AcceptLeft(h)))
	}

	_, err := s.Apply()
	require.NoError(t, err)
	require.NoError(t, s.Validate())
	assert.Equal(t, StateValidated, s.State())

	result, err := s.Complete()
	require.NoError(t, err)
	assert.Equal(t, StateCompleted, s.State())
	assert.Equal(t, 2, result.Summary.TotalHunks)
	assert.Equal(t, 2, result.Summary.ResolvedHunks)
	assert.Equal(t, 2, result.Summary.ByStrategy[KindAcceptLeft])
	assert.Empty(t, result.UnresolvedHunks)
}

func TestSession_CompleteRunsApplyAndValidate(t *testing.T) {
	s := newTestSession(t, twoConflictDoc)
	for _, h := range s.Hunks() {
		require.NoError(t, s.SetResolution(h.ID, AcceptRight(h)))
	}

	// Straight from FullyResolved: Complete performs apply and validate.
	result, err := s.Complete()
	require.NoError(t, err)
	assert.Equal(t, "header\nalpha right\nmiddle\nbeta right\nfooter\n", result.Content)
}

func TestSession_CompleteFailsWhileUnresolved(t *testing.T) {
	s := newTestSession(t, twoConflictDoc)

	_, err := s.Complete()
	require.Error(t, err)

	var compErr *CompletionError
	require.ErrorAs(t, err, &compErr)
	var applyErr *ApplyError
	require.ErrorAs(t, compErr.Err, &applyErr)
	assert.Equal(t, NotFullyResolved, applyErr.Kind)
}

func TestSession_UnusableAfterComplete(t *testing.T) {
	s := newTestSession(t, twoConflictDoc)
	for _, h := range s.Hunks() {
		require.NoError(t, s.SetResolution(h.ID, AcceptLeft(h)))
	}
	_, err := s.Complete()
	require.NoError(t, err)

	// Every operation on the retained reference fails.
	var stateErr *StateError
	assert.ErrorAs(t, s.SetResolution(0, Manual("x")), &stateErr)
	assert.ErrorAs(t, s.ClearResolution(0), &stateErr)
	_, err = s.Apply()
	assert.ErrorAs(t, err, &stateErr)
	assert.ErrorAs(t, s.Validate(), &stateErr)
	_, err = s.Complete()
	assert.ErrorAs(t, err, &stateErr)
	_, err = s.ProposeResolutions(0, AcceptLeftStrategy{})
	assert.ErrorAs(t, err, &stateErr)
}

func TestSession_DeterministicOutput(t *testing.T) {
	// Identical inputs and identical ordered decisions produce byte-identical
	// content across independent runs.
	render := func() string {
		s := newTestSession(t, twoConflictDoc)
		h0, err := s.Hunk(0)
		require.NoError(t, err)
		require.NoError(t, s.SetResolution(0, AcceptBoth(h0, AcceptBothOptions{Deduplicate: true})))
		h1, err := s.Hunk(1)
		require.NoError(t, err)
		require.NoError(t, s.SetResolution(1, AcceptRight(h1)))
		result, err := s.Complete()
		require.NoError(t, err)
		return result.Content
	}

	first := render()
	for range 5 {
		assert.Equal(t, first, render())
	}
}

func TestSession_HunksReturnedInDocumentOrder(t *testing.T) {
	s := newTestSession(t, twoConflictDoc)
	hunks := s.Hunks()
	for i, h := range hunks {
		assert.Equal(t, HunkID(i), h.ID)
	}
	assert.Equal(t, "alpha left", hunks[0].Left.Text)
	assert.Equal(t, "beta left", hunks[1].Left.Text)
}

func TestSession_ProposeResolutionsIsAdvisory(t *testing.T) {
	s := newTestSession(t, twoConflictDoc)

	proposals, err := s.ProposeResolutions(0,
		AcceptLeftStrategy{},
		AcceptRightStrategy{},
		AcceptBothStrategy{Options: AcceptBothOptions{Deduplicate: true}},
		ManualStrategy{},
	)
	require.NoError(t, err)
	// Manual never proposes; the other three do, in strategy order.
	require.Len(t, proposals, 3)
	assert.Equal(t, KindAcceptLeft, proposals[0].Kind)
	assert.Equal(t, KindAcceptRight, proposals[1].Kind)
	assert.Equal(t, KindAcceptBoth, proposals[2].Kind)

	h0, err := s.Hunk(0)
	require.NoError(t, err)
	assert.Equal(t, HunkProposed, h0.Status)
	assert.Equal(t, StateActive, s.State())

	// Proposals never select anything.
	r, err := s.Resolution(0)
	require.NoError(t, err)
	assert.Nil(t, r)

	// Proposed does not block direct resolution.
	require.NoError(t, s.SetResolution(0, proposals[1]))
	assert.Equal(t, HunkResolved, h0.Status)
}

func TestSession_ProposeDoesNotRegressResolvedHunk(t *testing.T) {
	s := newTestSession(t, twoConflictDoc)
	h0, err := s.Hunk(0)
	require.NoError(t, err)
	require.NoError(t, s.SetResolution(0, AcceptLeft(h0)))

	_, err = s.ProposeResolutions(0, AcceptRightStrategy{})
	require.NoError(t, err)
	assert.Equal(t, HunkResolved, h0.Status)
}

func TestSession_ExternalStrategyEmptyContentRejected(t *testing.T) {
	s := newTestSession(t, twoConflictDoc)

	err := s.SetResolution(0, Resolution{Kind: KindAISuggested, Content: ""})
	require.Error(t, err)

	var resErr *ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, InvalidResolution, resErr.Kind)
}

func TestSession_ManualEmptyContentDeletesRegion(t *testing.T) {
	s := newTestSession(t, twoConflictDoc)
	require.NoError(t, s.SetResolution(0, Manual("")))
	h1, err := s.Hunk(1)
	require.NoError(t, err)
	require.NoError(t, s.SetResolution(1, AcceptLeft(h1)))

	out, err := s.Apply()
	require.NoError(t, err)
	assert.Equal(t, "header\nmiddle\nbeta left\nfooter\n", out)
}

func TestSession_InputPreserved(t *testing.T) {
	base := FileVersion{Path: "main.go", Content: "base"}
	s, err := NewSession(MergeInput{
		Left:  FileVersion{Path: "main.go", Content: twoConflictDoc},
		Right: FileVersion{Path: "main.go", Content: twoConflictDoc},
		Base:  &base,
	})
	require.NoError(t, err)
	assert.True(t, s.Input().IsThreeWay())
	assert.Equal(t, "main.go", s.Input().Left.Path)
}
