package mcptools

// --- MCP Tool Types for the resolve server mode (--serve-mcp) ---
// These tools are exposed when the binary runs as an MCP server, letting an
// agent drive conflict resolution through structured calls instead of
// shelling out.

// HunkSummary is the wire representation of one conflict hunk.
type HunkSummary struct {
	ID             uint32 `json:"id"`
	Left           string `json:"left"`
	Right          string `json:"right"`
	Base           string `json:"base,omitempty"`
	StartLineLeft  int    `json:"startLineLeft"`
	StartLineRight int    `json:"startLineRight"`
	Status         string `json:"status"`
}

// ProposalView is the wire representation of one candidate resolution.
type ProposalView struct {
	Kind       string `json:"kind"`
	Content    string `json:"content"`
	Source     string `json:"source"`
	Provider   string `json:"provider,omitempty"`
	Confidence int    `json:"confidence,omitempty"`
	Diff       string `json:"diff,omitempty"`
}

// OpenSessionInput is the input for the open_session MCP tool.
type OpenSessionInput struct {
	Path        string `json:"path" jsonschema:"path of the conflicted file"`
	Content     string `json:"content,omitempty" jsonschema:"conflicted file content; read from path when empty"`
	SyntaxCheck bool   `json:"syntaxCheck,omitempty" jsonschema:"validate merged output with a language grammar when the extension is recognized"`
}

// OpenSessionOutput is the result of the open_session MCP tool.
type OpenSessionOutput struct {
	SessionID string        `json:"sessionId"`
	State     string        `json:"state"`
	Hunks     []HunkSummary `json:"hunks"`
}

// ListHunksInput is the input for the list_hunks MCP tool.
type ListHunksInput struct {
	SessionID      string `json:"sessionId" jsonschema:"id returned by open_session"`
	UnresolvedOnly bool   `json:"unresolvedOnly,omitempty" jsonschema:"return only hunks still needing a resolution"`
}

// ListHunksOutput is the result of the list_hunks MCP tool.
type ListHunksOutput struct {
	State string        `json:"state"`
	Hunks []HunkSummary `json:"hunks"`
}

// ProposeInput is the input for the propose MCP tool.
type ProposeInput struct {
	SessionID  string   `json:"sessionId" jsonschema:"id returned by open_session"`
	HunkID     uint32   `json:"hunkId" jsonschema:"hunk to collect proposals for"`
	Strategies []string `json:"strategies,omitempty" jsonschema:"strategy names in priority order (accept-left, accept-right, accept-both, structural); default is all of them"`
	WithDiffs  bool     `json:"withDiffs,omitempty" jsonschema:"include unified diffs against both sides"`
}

// ProposeOutput is the result of the propose MCP tool.
type ProposeOutput struct {
	HunkID    uint32         `json:"hunkId"`
	Proposals []ProposalView `json:"proposals"`
}

// ResolveHunkInput is the input for the resolve_hunk MCP tool.
type ResolveHunkInput struct {
	SessionID   string `json:"sessionId" jsonschema:"id returned by open_session"`
	HunkID      uint32 `json:"hunkId" jsonschema:"hunk to resolve"`
	Strategy    string `json:"strategy" jsonschema:"accept-left, accept-right, accept-both, structural, or manual"`
	Content     string `json:"content,omitempty" jsonschema:"replacement text, required for the manual strategy"`
	Deduplicate bool   `json:"deduplicate,omitempty" jsonschema:"drop duplicate lines when combining with accept-both"`
}

// ResolveHunkOutput is the result of the resolve_hunk and clear_resolution
// MCP tools.
type ResolveHunkOutput struct {
	HunkID     uint32   `json:"hunkId"`
	Status     string   `json:"status"`
	State      string   `json:"state"`
	Unresolved []uint32 `json:"unresolved"`
}

// ClearResolutionInput is the input for the clear_resolution MCP tool.
type ClearResolutionInput struct {
	SessionID string `json:"sessionId" jsonschema:"id returned by open_session"`
	HunkID    uint32 `json:"hunkId" jsonschema:"hunk to return to unresolved"`
}

// ApplyPreviewInput is the input for the apply_preview MCP tool.
type ApplyPreviewInput struct {
	SessionID string `json:"sessionId" jsonschema:"id returned by open_session"`
}

// ApplyPreviewOutput is the result of the apply_preview MCP tool.
type ApplyPreviewOutput struct {
	Content string `json:"content"`
	State   string `json:"state"`
}

// CompleteSessionInput is the input for the complete_session MCP tool.
type CompleteSessionInput struct {
	SessionID string `json:"sessionId" jsonschema:"id returned by open_session"`
	Write     bool   `json:"write,omitempty" jsonschema:"write the merged content back to the file path"`
}

// CompleteSessionOutput is the result of the complete_session MCP tool.
type CompleteSessionOutput struct {
	Content       string         `json:"content"`
	TotalHunks    int            `json:"totalHunks"`
	ResolvedHunks int            `json:"resolvedHunks"`
	ByStrategy    map[string]int `json:"byStrategy,omitempty"`
	Warnings      []string       `json:"warnings,omitempty"`
}
