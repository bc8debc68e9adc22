package merge

// defaultMaxDepth bounds history growth.
const defaultMaxDepth = 100

// ActionKind discriminates reversible session actions.
type ActionKind string

const (
	// ActionSet records a resolution being set or overridden.
	ActionSet ActionKind = "set"
	// ActionClear records a resolution being removed.
	ActionClear ActionKind = "clear"
)

// Action is one reversible resolution change. Old is nil when the hunk was
// unresolved before a set; New is nil for a clear.
type Action struct {
	Kind   ActionKind
	HunkID HunkID
	Old    *Resolution
	New    *Resolution
}

// Description returns a short human-readable label for the action.
func (a Action) Description() string {
	switch {
	case a.Kind == ActionClear:
		return "Clear resolution"
	case a.Old != nil:
		return "Change resolution"
	}
	return "Set resolution"
}

// History tracks resolution changes for undo/redo. Two stacks: actions
// performed (undo) and actions undone (redo); recording a new action clears
// the redo stack. The history never mutates a session itself; callers replay
// actions through SetResolution/ClearResolution.
type History struct {
	undo     []Action
	redo     []Action
	maxDepth int
}

// NewHistory creates an empty history with the default depth bound.
func NewHistory() *History {
	return &History{maxDepth: defaultMaxDepth}
}

// NewHistoryWithDepth creates an empty history bounded at maxDepth entries.
func NewHistoryWithDepth(maxDepth int) *History {
	return &History{maxDepth: maxDepth}
}

// Record appends an action, clears the redo stack, and drops the oldest
// entry if the depth bound is exceeded.
func (h *History) Record(a Action) {
	h.redo = nil
	h.undo = append(h.undo, a)
	if len(h.undo) > h.maxDepth {
		h.undo = h.undo[1:]
	}
}

// Undo pops the most recent action onto the redo stack and returns it so the
// caller can replay the inverse. Returns false when nothing can be undone.
func (h *History) Undo() (Action, bool) {
	if len(h.undo) == 0 {
		return Action{}, false
	}
	a := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, a)
	return a, true
}

// Redo pops the most recent undone action back onto the undo stack and
// returns it so the caller can replay it forward. Returns false when nothing
// can be redone.
func (h *History) Redo() (Action, bool) {
	if len(h.redo) == 0 {
		return Action{}, false
	}
	a := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, a)
	return a, true
}

// CanUndo reports whether any action can be undone.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether any action can be redone.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// UndoCount returns the undo stack depth.
func (h *History) UndoCount() int { return len(h.undo) }

// RedoCount returns the redo stack depth.
func (h *History) RedoCount() int { return len(h.redo) }

// Clear empties both stacks.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
}
