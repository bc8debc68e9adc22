package structural

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/mend/internal/merge"
)

func importHunk(left, right string) *merge.ConflictHunk {
	return &merge.ConflictHunk{
		ID:     0,
		Left:   merge.HunkContent{Text: left},
		Right:  merge.HunkContent{Text: right},
		Status: merge.HunkUnresolved,
	}
}

func TestStrategy_MergesGoImportUnion(t *testing.T) {
	s := NewStrategy(LangGo, merge.AcceptLeftStrategy{})
	h := importHunk("import \"fmt\"\nimport \"os\"", "import \"os\"\nimport \"strings\"")

	r := s.Propose(h)
	require.NotNil(t, r)
	assert.Equal(t, merge.KindStructural, r.Kind)
	assert.Equal(t, "import \"fmt\"\nimport \"os\"\nimport \"strings\"", r.Content)
	assert.Equal(t, merge.SourceStructural, r.Metadata.Source)
	assert.Equal(t, "go", r.Metadata.Provider)
}

func TestStrategy_MergesPythonImportUnion(t *testing.T) {
	s := NewStrategy(LangPython, merge.AcceptLeftStrategy{})
	h := importHunk("import os\nfrom typing import Any", "import sys\nimport os")

	r := s.Propose(h)
	require.NotNil(t, r)
	assert.Equal(t, merge.KindStructural, r.Kind)
	assert.Equal(t, "import os\nfrom typing import Any\nimport sys", r.Content)
}

func TestStrategy_MergesRustUseUnion(t *testing.T) {
	s := NewStrategy(LangRust, merge.AcceptLeftStrategy{})
	h := importHunk("use std::fmt;", "use std::fmt;\nuse std::io;")

	r := s.Propose(h)
	require.NotNil(t, r)
	assert.Equal(t, merge.KindStructural, r.Kind)
	assert.Equal(t, "use std::fmt;\nuse std::io;", r.Content)
}

func TestStrategy_FallsBackForNonImportCode(t *testing.T) {
	s := NewStrategy(LangGo, merge.AcceptLeftStrategy{})
	h := importHunk("x := 1", "x := 2")

	r := s.Propose(h)
	require.NotNil(t, r)
	assert.Equal(t, merge.KindAcceptLeft, r.Kind)
	assert.Equal(t, "x := 1", r.Content)
}

func TestStrategy_FallsBackForMixedHunk(t *testing.T) {
	// One side imports, the other real code: not structurally mergeable.
	s := NewStrategy(LangGo, merge.AcceptRightStrategy{})
	h := importHunk("import \"fmt\"", "func helper() {}")

	r := s.Propose(h)
	require.NotNil(t, r)
	assert.Equal(t, merge.KindAcceptRight, r.Kind)
}

func TestStrategy_FallsBackForEmptySides(t *testing.T) {
	s := NewStrategy(LangGo, merge.AcceptRightStrategy{})
	h := importHunk("", "import \"fmt\"")

	r := s.Propose(h)
	require.NotNil(t, r)
	assert.Equal(t, merge.KindAcceptRight, r.Kind)
}

func TestStrategy_ResolvesThroughSession(t *testing.T) {
	doc := "package main\n\n<<<<<<< HEAD\nimport \"fmt\"\n=======\nimport \"os\"\n>>>>>>> feature\n\nfunc main() {}\n"
	session, err := merge.NewSession(merge.MergeInput{
		Left:  merge.FileVersion{Path: "main.go", Content: doc},
		Right: merge.FileVersion{Path: "main.go", Content: doc},
	})
	require.NoError(t, err)

	strat, ok := NewStrategyForPath("main.go", merge.AcceptLeftStrategy{})
	require.True(t, ok)

	proposals, err := session.ProposeResolutions(0, strat)
	require.NoError(t, err)
	require.Len(t, proposals, 1)
	require.NoError(t, session.SetResolution(0, proposals[0]))

	result, err := session.Complete()
	require.NoError(t, err)
	assert.Equal(t, "package main\n\nimport \"fmt\"\nimport \"os\"\n\nfunc main() {}\n", result.Content)
}

func TestNewStrategyForPath_UnknownExtension(t *testing.T) {
	_, ok := NewStrategyForPath("notes.txt", merge.AcceptLeftStrategy{})
	assert.False(t, ok)
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		path string
		lang Language
		ok   bool
	}{
		{"cmd/main.go", LangGo, true},
		{"src/app.ts", LangTypeScript, true},
		{"src/view.tsx", LangTypeScript, true},
		{"scripts/run.py", LangPython, true},
		{"src/lib.rs", LangRust, true},
		{"README.md", "", false},
		{"Makefile", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			lang, ok := DetectLanguage(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.lang, lang)
		})
	}
}
