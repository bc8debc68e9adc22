package merge

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setAction(id HunkID, content string) Action {
	r := Manual(content)
	return Action{Kind: ActionSet, HunkID: id, New: &r}
}

func TestHistory_EmptyHasNothingToUndoOrRedo(t *testing.T) {
	h := NewHistory()
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())

	_, ok := h.Undo()
	assert.False(t, ok)
	_, ok = h.Redo()
	assert.False(t, ok)
}

func TestHistory_UndoRedoRoundTrip(t *testing.T) {
	h := NewHistory()
	h.Record(setAction(0, "first"))
	h.Record(setAction(1, "second"))
	require.Equal(t, 2, h.UndoCount())

	a, ok := h.Undo()
	require.True(t, ok)
	assert.Equal(t, HunkID(1), a.HunkID)
	assert.Equal(t, 1, h.UndoCount())
	assert.Equal(t, 1, h.RedoCount())

	a, ok = h.Redo()
	require.True(t, ok)
	assert.Equal(t, HunkID(1), a.HunkID)
	assert.Equal(t, 2, h.UndoCount())
	assert.False(t, h.CanRedo())
}

func TestHistory_RecordClearsRedoStack(t *testing.T) {
	h := NewHistory()
	h.Record(setAction(0, "first"))
	h.Record(setAction(1, "second"))

	_, ok := h.Undo()
	require.True(t, ok)
	require.True(t, h.CanRedo())

	h.Record(setAction(2, "diverged"))
	assert.False(t, h.CanRedo())
	assert.Equal(t, 2, h.UndoCount())
}

func TestHistory_DepthBoundDropsOldest(t *testing.T) {
	h := NewHistoryWithDepth(3)
	for i := range 5 {
		h.Record(setAction(HunkID(i), fmt.Sprintf("content %d", i)))
	}
	assert.Equal(t, 3, h.UndoCount())

	// Oldest surviving entry is the third recorded action.
	var last Action
	for h.CanUndo() {
		last, _ = h.Undo()
	}
	assert.Equal(t, HunkID(2), last.HunkID)
}

func TestHistory_Clear(t *testing.T) {
	h := NewHistory()
	h.Record(setAction(0, "first"))
	_, ok := h.Undo()
	require.True(t, ok)
	h.Record(setAction(1, "second"))

	h.Clear()
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
}

func TestAction_Description(t *testing.T) {
	set := setAction(0, "content")
	assert.Equal(t, "Set resolution", set.Description())

	old := Manual("old")
	change := Action{Kind: ActionSet, HunkID: 0, Old: &old, New: set.New}
	assert.Equal(t, "Change resolution", change.Description())

	clear := Action{Kind: ActionClear, HunkID: 0, Old: &old}
	assert.Equal(t, "Clear resolution", clear.Description())
}

func TestHistory_ReplayAgainstSession(t *testing.T) {
	s := newTestSession(t, twoConflictDoc)
	hist := NewHistory()

	// The caller records each mutation as it performs it.
	r := Manual("chosen line")
	prev, err := s.Resolution(0)
	require.NoError(t, err)
	require.NoError(t, s.SetResolution(0, r))
	hist.Record(Action{Kind: ActionSet, HunkID: 0, Old: prev, New: &r})

	// Undo replays the inverse: Old was nil, so the hunk is cleared.
	a, ok := hist.Undo()
	require.True(t, ok)
	require.Nil(t, a.Old)
	require.NoError(t, s.ClearResolution(a.HunkID))
	got, err := s.Resolution(0)
	require.NoError(t, err)
	assert.Nil(t, got)

	// Redo replays forward.
	a, ok = hist.Redo()
	require.True(t, ok)
	require.NoError(t, s.SetResolution(a.HunkID, *a.New))
	got, err = s.Resolution(0)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "chosen line", got.Content)
}
