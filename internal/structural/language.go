package structural

import (
	"path/filepath"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// Language identifies a programming language with grammar support.
type Language string

const (
	LangGo         Language = "go"
	LangTypeScript Language = "typescript"
	LangPython     Language = "python"
	LangRust       Language = "rust"
)

// SupportedLanguages are the languages with a registered grammar.
var SupportedLanguages = []Language{LangGo, LangTypeScript, LangPython, LangRust}

// DetectLanguage maps a file path to a supported language by extension.
// The second return is false for unrecognized extensions.
func DetectLanguage(path string) (Language, bool) {
	switch filepath.Ext(path) {
	case ".go":
		return LangGo, true
	case ".ts", ".tsx", ".mts", ".cts":
		return LangTypeScript, true
	case ".py", ".pyi":
		return LangPython, true
	case ".rs":
		return LangRust, true
	}
	return "", false
}

// grammars returns the registered tree-sitter grammar per language.
func grammars() map[Language]*tree_sitter.Language {
	return map[Language]*tree_sitter.Language{
		LangGo:         tree_sitter.NewLanguage(tree_sitter_go.Language()),
		LangTypeScript: tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript()),
		LangPython:     tree_sitter.NewLanguage(tree_sitter_python.Language()),
		LangRust:       tree_sitter.NewLanguage(tree_sitter_rust.Language()),
	}
}

// importNodeKinds lists the AST node kinds that count as import statements
// for each language.
var importNodeKinds = map[Language]map[string]bool{
	LangGo: {
		"import_declaration": true,
	},
	LangTypeScript: {
		"import_statement": true,
	},
	LangPython: {
		"import_statement":      true,
		"import_from_statement": true,
	},
	LangRust: {
		"use_declaration": true,
	},
}
