package structural

import (
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// Parser parses source snippets with tree-sitter grammars. A new tree-sitter
// parser is created per call, so this type is safe for sequential use but
// individual calls are not thread-safe.
type Parser struct {
	languages map[Language]*tree_sitter.Language
}

// NewParser creates a Parser with Go, TypeScript, Python, and Rust grammars
// registered.
func NewParser() *Parser {
	return &Parser{languages: grammars()}
}

// parse returns the syntax tree for source. The caller must Close the tree.
func (p *Parser) parse(source []byte, lang Language) (*tree_sitter.Tree, error) {
	tsLang, ok := p.languages[lang]
	if !ok {
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}

	parser := tree_sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(tsLang); err != nil {
		return nil, fmt.Errorf("set language %s: %w", lang, err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("tree-sitter returned nil tree")
	}
	return tree, nil
}

// HasSyntaxError reports whether source fails to parse cleanly under the
// grammar for lang.
func (p *Parser) HasSyntaxError(source []byte, lang Language) (bool, error) {
	tree, err := p.parse(source, lang)
	if err != nil {
		return false, err
	}
	defer tree.Close()
	return tree.RootNode().HasError(), nil
}

// topLevelKinds returns the node kinds of the root's named children, or
// (nil, false) when source does not parse cleanly.
func (p *Parser) topLevelKinds(source []byte, lang Language) ([]string, bool, error) {
	tree, err := p.parse(source, lang)
	if err != nil {
		return nil, false, err
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, false, nil
	}

	var kinds []string
	for i := uint(0); i < root.NamedChildCount(); i++ {
		child := root.NamedChild(i)
		if child == nil {
			continue
		}
		kinds = append(kinds, child.Kind())
	}
	return kinds, true, nil
}
