package mcptools

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dusk-indust/mend/internal/diffview"
	"github.com/dusk-indust/mend/internal/merge"
	"github.com/dusk-indust/mend/internal/structural"
)

// ResolveService handles MCP tool calls for the resolve server mode. It keeps
// an in-memory table of open merge sessions keyed by generated ids; sessions
// are single-writer, so all mutation happens under the service lock.
type ResolveService struct {
	mu       sync.Mutex
	sessions map[string]*openSession
}

type openSession struct {
	session *merge.MergeSession
	path    string
}

// NewResolveService creates an empty ResolveService.
func NewResolveService() *ResolveService {
	return &ResolveService{sessions: make(map[string]*openSession)}
}

// OpenSession parses a conflicted file into a new session and returns its id.
func (s *ResolveService) OpenSession(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input OpenSessionInput,
) (*mcp.CallToolResult, OpenSessionOutput, error) {
	content := input.Content
	if content == "" {
		data, err := os.ReadFile(input.Path)
		if err != nil {
			return nil, OpenSessionOutput{}, fmt.Errorf("read %s: %w", input.Path, err)
		}
		content = string(data)
	}

	// Left carries the working-tree document with the markers; the incoming
	// version is not available here, so Right stays content-free.
	session, err := merge.NewSession(merge.MergeInput{
		Left:  merge.FileVersion{Path: input.Path, Content: content},
		Right: merge.FileVersion{Path: input.Path},
	})
	if err != nil {
		return nil, OpenSessionOutput{}, err
	}

	if input.SyntaxCheck {
		checker, err := structural.CheckerForPath(input.Path)
		if err != nil {
			return nil, OpenSessionOutput{}, err
		}
		if checker != nil {
			session.SetSyntaxChecker(checker)
		}
	}

	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = &openSession{session: session, path: input.Path}
	s.mu.Unlock()

	return nil, OpenSessionOutput{
		SessionID: id,
		State:     string(session.State()),
		Hunks:     summarizeHunks(session.Hunks(), false),
	}, nil
}

// ListHunks returns the hunks of an open session.
func (s *ResolveService) ListHunks(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ListHunksInput,
) (*mcp.CallToolResult, ListHunksOutput, error) {
	entry, unlock, err := s.lookup(input.SessionID)
	if err != nil {
		return nil, ListHunksOutput{}, err
	}
	defer unlock()

	return nil, ListHunksOutput{
		State: string(entry.session.State()),
		Hunks: summarizeHunks(entry.session.Hunks(), input.UnresolvedOnly),
	}, nil
}

// Propose collects candidate resolutions for one hunk.
func (s *ResolveService) Propose(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ProposeInput,
) (*mcp.CallToolResult, ProposeOutput, error) {
	entry, unlock, err := s.lookup(input.SessionID)
	if err != nil {
		return nil, ProposeOutput{}, err
	}
	defer unlock()

	names := input.Strategies
	if len(names) == 0 {
		names = []string{"accept-left", "accept-right", "accept-both", "structural"}
	}

	var strategies []merge.Strategy
	for _, name := range names {
		strat, err := entry.strategyByName(name, merge.AcceptBothOptions{Deduplicate: true})
		if err != nil {
			return nil, ProposeOutput{}, err
		}
		strategies = append(strategies, strat)
	}

	proposals, err := entry.session.ProposeResolutions(merge.HunkID(input.HunkID), strategies...)
	if err != nil {
		return nil, ProposeOutput{}, err
	}

	hunk, err := entry.session.Hunk(merge.HunkID(input.HunkID))
	if err != nil {
		return nil, ProposeOutput{}, err
	}

	views := make([]ProposalView, 0, len(proposals))
	for _, p := range proposals {
		view := ProposalView{
			Kind:       string(p.Kind),
			Content:    p.Content,
			Source:     string(p.Metadata.Source),
			Provider:   p.Metadata.Provider,
			Confidence: p.Metadata.Confidence,
		}
		if input.WithDiffs {
			diff, err := diffview.ResolutionDiff(hunk, p)
			if err != nil {
				return nil, ProposeOutput{}, err
			}
			view.Diff = diff
		}
		views = append(views, view)
	}

	return nil, ProposeOutput{HunkID: input.HunkID, Proposals: views}, nil
}

// ResolveHunk applies a named strategy (or manual content) to one hunk.
func (s *ResolveService) ResolveHunk(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ResolveHunkInput,
) (*mcp.CallToolResult, ResolveHunkOutput, error) {
	entry, unlock, err := s.lookup(input.SessionID)
	if err != nil {
		return nil, ResolveHunkOutput{}, err
	}
	defer unlock()

	id := merge.HunkID(input.HunkID)
	hunk, err := entry.session.Hunk(id)
	if err != nil {
		return nil, ResolveHunkOutput{}, err
	}

	resolution, err := entry.buildResolution(hunk, input)
	if err != nil {
		return nil, ResolveHunkOutput{}, err
	}
	if err := entry.session.SetResolution(id, resolution); err != nil {
		return nil, ResolveHunkOutput{}, err
	}

	return nil, entry.hunkOutput(input.HunkID, hunk), nil
}

// ClearResolution returns one hunk to the unresolved state.
func (s *ResolveService) ClearResolution(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ClearResolutionInput,
) (*mcp.CallToolResult, ResolveHunkOutput, error) {
	entry, unlock, err := s.lookup(input.SessionID)
	if err != nil {
		return nil, ResolveHunkOutput{}, err
	}
	defer unlock()

	id := merge.HunkID(input.HunkID)
	if err := entry.session.ClearResolution(id); err != nil {
		return nil, ResolveHunkOutput{}, err
	}
	hunk, err := entry.session.Hunk(id)
	if err != nil {
		return nil, ResolveHunkOutput{}, err
	}

	return nil, entry.hunkOutput(input.HunkID, hunk), nil
}

// ApplyPreview renders the merged output without finishing the session.
func (s *ResolveService) ApplyPreview(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ApplyPreviewInput,
) (*mcp.CallToolResult, ApplyPreviewOutput, error) {
	entry, unlock, err := s.lookup(input.SessionID)
	if err != nil {
		return nil, ApplyPreviewOutput{}, err
	}
	defer unlock()

	content, err := entry.session.Apply()
	if err != nil {
		return nil, ApplyPreviewOutput{}, err
	}

	return nil, ApplyPreviewOutput{
		Content: content,
		State:   string(entry.session.State()),
	}, nil
}

// CompleteSession validates, finalizes, and removes the session. With Write
// set, the merged content replaces the file on disk.
func (s *ResolveService) CompleteSession(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input CompleteSessionInput,
) (*mcp.CallToolResult, CompleteSessionOutput, error) {
	entry, unlock, err := s.lookup(input.SessionID)
	if err != nil {
		return nil, CompleteSessionOutput{}, err
	}
	defer unlock()

	result, err := entry.session.Complete()
	if err != nil {
		return nil, CompleteSessionOutput{}, err
	}

	if input.Write {
		if err := os.WriteFile(entry.path, []byte(result.Content), 0o644); err != nil {
			return nil, CompleteSessionOutput{}, fmt.Errorf("write %s: %w", entry.path, err)
		}
	}

	// Completion consumes the session either way.
	delete(s.sessions, input.SessionID)

	byStrategy := make(map[string]int, len(result.Summary.ByStrategy))
	for kind, n := range result.Summary.ByStrategy {
		byStrategy[string(kind)] = n
	}
	warnings := make([]string, 0, len(result.Warnings))
	for _, w := range result.Warnings {
		warnings = append(warnings, w.Message)
	}

	return nil, CompleteSessionOutput{
		Content:       result.Content,
		TotalHunks:    result.Summary.TotalHunks,
		ResolvedHunks: result.Summary.ResolvedHunks,
		ByStrategy:    byStrategy,
		Warnings:      warnings,
	}, nil
}

// lookup fetches a session entry and locks the service for its use. The
// returned unlock must be called once the caller is done with the entry.
func (s *ResolveService) lookup(id string) (*openSession, func(), error) {
	s.mu.Lock()
	entry, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return nil, nil, fmt.Errorf("unknown session: %s", id)
	}
	return entry, s.mu.Unlock, nil
}

// buildResolution turns a tool request into a concrete resolution.
func (e *openSession) buildResolution(h *merge.ConflictHunk, input ResolveHunkInput) (merge.Resolution, error) {
	opts := merge.AcceptBothOptions{Deduplicate: input.Deduplicate}

	switch input.Strategy {
	case "manual":
		return merge.Manual(input.Content), nil
	default:
		strat, err := e.strategyByName(input.Strategy, opts)
		if err != nil {
			return merge.Resolution{}, err
		}
		r := strat.Propose(h)
		if r == nil {
			return merge.Resolution{}, fmt.Errorf("strategy %s produced no resolution", input.Strategy)
		}
		return *r, nil
	}
}

// strategyByName maps a wire strategy name to an implementation. The
// structural strategy falls back to accept-both with the given options.
func (e *openSession) strategyByName(name string, opts merge.AcceptBothOptions) (merge.Strategy, error) {
	switch name {
	case "accept-left":
		return merge.AcceptLeftStrategy{}, nil
	case "accept-right":
		return merge.AcceptRightStrategy{}, nil
	case "accept-both":
		return merge.AcceptBothStrategy{Options: opts}, nil
	case "structural":
		fallback := merge.AcceptBothStrategy{Options: opts}
		if strat, ok := structural.NewStrategyForPath(e.path, fallback); ok {
			return strat, nil
		}
		return fallback, nil
	}
	return nil, fmt.Errorf("unknown strategy: %s", name)
}

// hunkOutput builds the shared per-hunk response shape.
func (e *openSession) hunkOutput(id uint32, h *merge.ConflictHunk) ResolveHunkOutput {
	unresolved := e.session.UnresolvedHunks()
	ids := make([]uint32, len(unresolved))
	for i, u := range unresolved {
		ids[i] = uint32(u)
	}
	return ResolveHunkOutput{
		HunkID:     id,
		Status:     string(h.Status),
		State:      string(e.session.State()),
		Unresolved: ids,
	}
}

// summarizeHunks converts hunks to their wire form.
func summarizeHunks(hunks []*merge.ConflictHunk, unresolvedOnly bool) []HunkSummary {
	out := make([]HunkSummary, 0, len(hunks))
	for _, h := range hunks {
		if unresolvedOnly && h.Status == merge.HunkResolved {
			continue
		}
		summary := HunkSummary{
			ID:             uint32(h.ID),
			Left:           h.Left.Text,
			Right:          h.Right.Text,
			StartLineLeft:  h.Context.StartLineLeft,
			StartLineRight: h.Context.StartLineRight,
			Status:         string(h.Status),
		}
		if h.Base != nil {
			summary.Base = h.Base.Text
		}
		out = append(out, summary)
	}
	return out
}
