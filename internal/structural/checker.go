package structural

import (
	"fmt"

	"github.com/dusk-indust/mend/internal/merge"
)

// Checker validates rendered output against a tree-sitter grammar. It plugs
// into a merge session through SetSyntaxChecker.
type Checker struct {
	parser *Parser
	lang   Language
}

var _ merge.SyntaxChecker = (*Checker)(nil)

// NewChecker creates a syntax checker for the given language.
func NewChecker(lang Language) (*Checker, error) {
	p := NewParser()
	if _, ok := p.languages[lang]; !ok {
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}
	return &Checker{parser: p, lang: lang}, nil
}

// CheckerForPath creates a syntax checker for the file's language, or
// (nil, nil) when the extension is not recognized.
func CheckerForPath(path string) (*Checker, error) {
	lang, ok := DetectLanguage(path)
	if !ok {
		return nil, nil
	}
	return NewChecker(lang)
}

// Check parses content and fails when the grammar reports a syntax error.
func (c *Checker) Check(content string) error {
	broken, err := c.parser.HasSyntaxError([]byte(content), c.lang)
	if err != nil {
		return fmt.Errorf("syntax check: %w", err)
	}
	if broken {
		return fmt.Errorf("%s syntax error in merged output", c.lang)
	}
	return nil
}

// Language returns the language this checker validates.
func (c *Checker) Language() Language {
	return c.lang
}
