package diffview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/mend/internal/merge"
)

func TestUnified_ShowsChangedLines(t *testing.T) {
	out, err := Unified("shared\nold line\n", "shared\nnew line\n", "before", "after")
	require.NoError(t, err)
	assert.Contains(t, out, "--- before")
	assert.Contains(t, out, "+++ after")
	assert.Contains(t, out, "-old line")
	assert.Contains(t, out, "+new line")
	assert.Contains(t, out, " shared")
}

func TestUnified_IdenticalTextsProduceEmptyDiff(t *testing.T) {
	out, err := Unified("same\n", "same\n", "a", "b")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestHunkDiff_LabelsSides(t *testing.T) {
	h := &merge.ConflictHunk{
		ID:    2,
		Left:  merge.HunkContent{Text: "ours line"},
		Right: merge.HunkContent{Text: "theirs line"},
	}

	out, err := HunkDiff(h)
	require.NoError(t, err)
	assert.Contains(t, out, "hunk 2 (ours)")
	assert.Contains(t, out, "hunk 2 (theirs)")
	assert.Contains(t, out, "-ours line")
	assert.Contains(t, out, "+theirs line")
}

func TestResolutionDiff_ShowsBothPerspectives(t *testing.T) {
	h := &merge.ConflictHunk{
		ID:    0,
		Left:  merge.HunkContent{Text: "import A"},
		Right: merge.HunkContent{Text: "import B"},
	}
	r := merge.Resolution{Kind: merge.KindAcceptBoth, Content: "import A\nimport B"}

	out, err := ResolutionDiff(h, r)
	require.NoError(t, err)
	assert.Contains(t, out, "hunk 0 (ours)")
	assert.Contains(t, out, "hunk 0 (theirs)")
	assert.Contains(t, out, "resolution (accept-both)")
	assert.Contains(t, out, "+import B")
	assert.Contains(t, out, "+import A")
}
