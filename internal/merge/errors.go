package merge

import (
	"fmt"
	"strings"
)

// ParseErrorKind discriminates parse failures.
type ParseErrorKind string

const (
	// InvalidMarkers is a structural grammar violation (nested, orphaned,
	// duplicated, or unclosed markers).
	InvalidMarkers ParseErrorKind = "invalid markers"
	// MalformedContent is a non-grammar input problem, e.g. invalid UTF-8.
	MalformedContent ParseErrorKind = "malformed content"
)

// ParseError reports a failure to parse conflict markers. Line is the
// one-indexed line of the offending marker, or 0 when no single line applies.
type ParseError struct {
	Kind   ParseErrorKind
	Line   int
	Detail string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: %s at line %d", e.Kind, e.Detail, e.Line)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// ResolutionErrorKind discriminates resolution failures.
type ResolutionErrorKind string

const (
	// HunkNotFound means the referenced hunk id does not exist in the session.
	HunkNotFound ResolutionErrorKind = "hunk not found"
	// InvalidResolution means the resolution content is not acceptable,
	// e.g. empty content from an external strategy.
	InvalidResolution ResolutionErrorKind = "invalid resolution"
)

// ResolutionError reports a failure to set, clear, or fetch a resolution.
type ResolutionError struct {
	Kind   ResolutionErrorKind
	ID     HunkID
	Detail string
}

func (e *ResolutionError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: hunk %d: %s", e.Kind, e.ID, e.Detail)
	}
	return fmt.Sprintf("%s: hunk %d", e.Kind, e.ID)
}

// ValidationErrorKind discriminates validation failures.
type ValidationErrorKind string

const (
	// UnresolvedHunks means one or more hunks lack a resolution.
	UnresolvedHunks ValidationErrorKind = "unresolved hunks"
	// MarkersRemain means conflict-marker lines survive in the rendered output.
	MarkersRemain ValidationErrorKind = "markers remain"
	// SyntaxError means an external syntax check rejected the output.
	SyntaxError ValidationErrorKind = "syntax error"
)

// ValidationError reports a rejected merge output. Exactly one of Unresolved,
// Markers, or Detail is meaningful, selected by Kind.
type ValidationError struct {
	Kind       ValidationErrorKind
	Unresolved []HunkID // populated for UnresolvedHunks
	Markers    int      // populated for MarkersRemain
	Detail     string   // populated for SyntaxError
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case UnresolvedHunks:
		ids := make([]string, len(e.Unresolved))
		for i, id := range e.Unresolved {
			ids[i] = fmt.Sprintf("%d", id)
		}
		return fmt.Sprintf("unresolved hunks: [%s]", strings.Join(ids, " "))
	case MarkersRemain:
		return fmt.Sprintf("conflict markers remain: %d markers", e.Markers)
	case SyntaxError:
		return fmt.Sprintf("syntax error: %s", e.Detail)
	}
	return string(e.Kind)
}

// ApplyErrorKind discriminates apply failures.
type ApplyErrorKind string

const (
	// NotFullyResolved means apply was attempted with unresolved hunks.
	NotFullyResolved ApplyErrorKind = "not fully resolved"
	// InternalError means a rendering invariant was violated. Should be
	// unreachable; surfaced rather than hidden.
	InternalError ApplyErrorKind = "internal error"
)

// ApplyError reports a failure to render merged output.
type ApplyError struct {
	Kind   ApplyErrorKind
	Detail string
}

func (e *ApplyError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	}
	return string(e.Kind)
}

// CompletionError wraps the apply or validation failure that prevented a
// session from completing.
type CompletionError struct {
	Err error // *ApplyError or *ValidationError
}

func (e *CompletionError) Error() string {
	switch e.Err.(type) {
	case *ValidationError:
		return fmt.Sprintf("validation failed: %v", e.Err)
	case *ApplyError:
		return fmt.Sprintf("apply failed: %v", e.Err)
	}
	return fmt.Sprintf("completion failed: %v", e.Err)
}

func (e *CompletionError) Unwrap() error { return e.Err }

// StateError reports an operation attempted in a session state where it is
// not legal, including any operation after completion.
type StateError struct {
	Op    string
	State SessionState
}

func (e *StateError) Error() string {
	return fmt.Sprintf("cannot %s: session state is %s", e.Op, e.State)
}
