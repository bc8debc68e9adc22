// Package gitrepo inspects and updates the git repository around a merge:
// which files are conflicted, which operation produced them, and staging
// resolved files back into the index.
package gitrepo

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	gogit "github.com/go-git/go-git/v5"
)

// Repository wraps a git repository opened from a working directory.
type Repository struct {
	repo *gogit.Repository
	root string
}

// Open opens the repository containing path, walking up to find the .git
// directory the way the git CLI does.
func Open(path string) (*Repository, error) {
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open repository at %s: %w", path, err)
	}

	w, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("repository worktree: %w", err)
	}

	return &Repository{
		repo: repo,
		root: w.Filesystem.Root(),
	}, nil
}

// Root returns the worktree root directory.
func (r *Repository) Root() string {
	return r.root
}

// ConflictedFiles returns the worktree-relative paths of all unmerged files,
// sorted.
func (r *Repository) ConflictedFiles() ([]string, error) {
	w, err := r.repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("repository worktree: %w", err)
	}

	status, err := w.Status()
	if err != nil {
		return nil, fmt.Errorf("worktree status: %w", err)
	}

	var files []string
	for path, fs := range status {
		if fs.Staging == gogit.UpdatedButUnmerged || fs.Worktree == gogit.UpdatedButUnmerged {
			files = append(files, path)
		}
	}
	sort.Strings(files)
	return files, nil
}

// Operation detects the in-progress operation from the repository's state
// files, in git's own precedence order.
func (r *Repository) Operation() Operation {
	gitDir := filepath.Join(r.root, ".git")

	if exists(filepath.Join(gitDir, "rebase-merge")) || exists(filepath.Join(gitDir, "rebase-apply")) {
		return OpRebase
	}
	if exists(filepath.Join(gitDir, "MERGE_HEAD")) {
		return OpMerge
	}
	if exists(filepath.Join(gitDir, "CHERRY_PICK_HEAD")) {
		return OpCherryPick
	}
	if exists(filepath.Join(gitDir, "REVERT_HEAD")) {
		return OpRevert
	}
	return OpNone
}

// State returns the operation plus the conflicted file list.
func (r *Repository) State() (RepoState, error) {
	files, err := r.ConflictedFiles()
	if err != nil {
		return RepoState{}, err
	}
	return RepoState{
		Operation:       r.Operation(),
		ConflictedFiles: files,
	}, nil
}

// ReadFile reads a worktree-relative file.
func (r *Repository) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(filepath.Join(r.root, path))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// WriteResolved writes merged content over the worktree file and stages it,
// clearing the unmerged index entries.
func (r *Repository) WriteResolved(path, content string) error {
	full := filepath.Join(r.root, path)
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return r.StageFile(path)
}

// StageFile adds a worktree-relative file to the index.
func (r *Repository) StageFile(path string) error {
	w, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("repository worktree: %w", err)
	}
	if _, err := w.Add(path); err != nil {
		return fmt.Errorf("stage %s: %w", path, err)
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
