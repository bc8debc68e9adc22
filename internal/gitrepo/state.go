package gitrepo

// Operation identifies the in-progress git operation that produced the
// conflicts, detected from the repository's state files.
type Operation string

const (
	// OpNone means no merge-like operation is in progress.
	OpNone Operation = "none"
	// OpMerge means a merge is in progress (MERGE_HEAD exists).
	OpMerge Operation = "merge"
	// OpRebase means a rebase is in progress.
	OpRebase Operation = "rebase"
	// OpCherryPick means a cherry-pick is in progress.
	OpCherryPick Operation = "cherry-pick"
	// OpRevert means a revert is in progress.
	OpRevert Operation = "revert"
)

// RepoState is a snapshot of the repository's conflict situation.
type RepoState struct {
	Operation       Operation `json:"operation"`
	ConflictedFiles []string  `json:"conflicted_files"`
}

// HasConflicts reports whether any file is in the unmerged state.
func (s RepoState) HasConflicts() bool {
	return len(s.ConflictedFiles) > 0
}
