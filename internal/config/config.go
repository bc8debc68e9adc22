package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// AcceptBothConfig holds defaults for the accept-both strategy.
type AcceptBothConfig struct {
	Deduplicate    bool `yaml:"deduplicate,omitempty"`
	TrimWhitespace bool `yaml:"trimWhitespace,omitempty"`
}

// AIConfig holds settings for AI-suggested resolutions. The API key is never
// stored in the file; it is read from the environment variable named by
// APIKeyEnv.
type AIConfig struct {
	Provider      string        `yaml:"provider,omitempty"`
	Model         string        `yaml:"model,omitempty"`
	APIKeyEnv     string        `yaml:"apiKeyEnv,omitempty"`
	BaseURL       string        `yaml:"baseUrl,omitempty"`
	MaxTokens     int           `yaml:"maxTokens,omitempty"`
	MinConfidence int           `yaml:"minConfidence,omitempty"`
	Timeout       time.Duration `yaml:"timeout,omitempty"`
}

// APIKey resolves the provider API key from the environment.
func (c AIConfig) APIKey() string {
	env := c.APIKeyEnv
	if env == "" {
		switch c.Provider {
		case "openai":
			env = "OPENAI_API_KEY"
		default:
			env = "ANTHROPIC_API_KEY"
		}
	}
	return os.Getenv(env)
}

// ProjectConfig holds project-level settings loaded from mend.yml.
type ProjectConfig struct {
	// DefaultStrategy is the strategy applied by batch resolution when none
	// is given on the command line: accept-left, accept-right, accept-both,
	// structural, or ai-suggested.
	DefaultStrategy string `yaml:"defaultStrategy,omitempty"`
	// SyntaxCheck enables tree-sitter validation of merged output for
	// recognized languages.
	SyntaxCheck bool             `yaml:"syntaxCheck,omitempty"`
	AcceptBoth  AcceptBothConfig `yaml:"acceptBoth,omitempty"`
	AI          AIConfig         `yaml:"ai,omitempty"`
	// Exclude lists glob patterns for files batch resolution skips.
	Exclude []string `yaml:"exclude,omitempty"`
	Verbose bool     `yaml:"verbose,omitempty"`
}

// Excluded reports whether a worktree-relative path matches any exclude
// pattern, by full path or base name.
func (c *ProjectConfig) Excluded(path string) bool {
	for _, pattern := range c.Exclude {
		if ok, _ := filepath.Match(pattern, path); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, filepath.Base(path)); ok {
			return true
		}
	}
	return false
}

// Load attempts to read mend.yml or mend.yaml from the given directory.
// Returns a zero-value config (not an error) if no config file exists.
func Load(dir string) (*ProjectConfig, error) {
	for _, name := range []string{"mend.yml", "mend.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cfg ProjectConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		return &cfg, nil
	}
	return &ProjectConfig{}, nil
}
