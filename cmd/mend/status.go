package main

import (
	"fmt"

	"github.com/dusk-indust/mend/internal/gitrepo"
)

func runStatus() error {
	repo, err := gitrepo.Open(".")
	if err != nil {
		return err
	}

	state, err := repo.State()
	if err != nil {
		return err
	}

	if state.Operation != gitrepo.OpNone {
		fmt.Printf("Operation: %s\n", state.Operation)
	}

	if !state.HasConflicts() {
		fmt.Println("No conflicted files.")
		return nil
	}

	fmt.Printf("Conflicted files (%d):\n", len(state.ConflictedFiles))
	for _, f := range state.ConflictedFiles {
		fmt.Printf("  %s\n", f)
	}
	fmt.Println("\nRun 'mend resolve -strategy <name>' to resolve them.")
	return nil
}
