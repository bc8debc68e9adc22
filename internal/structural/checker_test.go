package structural

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecker_AcceptsValidSource(t *testing.T) {
	tests := []struct {
		lang   Language
		source string
	}{
		{LangGo, "package main\n\nfunc main() {\n\tprintln(\"hi\")\n}\n"},
		{LangPython, "def main():\n    print(\"hi\")\n"},
		{LangRust, "fn main() {\n    println!(\"hi\");\n}\n"},
		{LangTypeScript, "export function main(): void {\n  console.log(\"hi\");\n}\n"},
	}

	for _, tt := range tests {
		t.Run(string(tt.lang), func(t *testing.T) {
			c, err := NewChecker(tt.lang)
			require.NoError(t, err)
			assert.NoError(t, c.Check(tt.source))
		})
	}
}

func TestChecker_RejectsBrokenSource(t *testing.T) {
	tests := []struct {
		lang   Language
		source string
	}{
		{LangGo, "package main\n\nfunc main( {\n"},
		{LangPython, "def main(:\n    pass\n"},
		{LangRust, "fn main( {\n"},
		{LangTypeScript, "function main( {\n"},
	}

	for _, tt := range tests {
		t.Run(string(tt.lang), func(t *testing.T) {
			c, err := NewChecker(tt.lang)
			require.NoError(t, err)
			err = c.Check(tt.source)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "syntax error")
		})
	}
}

func TestNewChecker_UnsupportedLanguage(t *testing.T) {
	_, err := NewChecker(Language("cobol"))
	assert.Error(t, err)
}

func TestCheckerForPath(t *testing.T) {
	c, err := CheckerForPath("src/lib.rs")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, LangRust, c.Language())

	c, err = CheckerForPath("notes.txt")
	require.NoError(t, err)
	assert.Nil(t, c)
}
