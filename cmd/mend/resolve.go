package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/dusk-indust/mend/internal/ai"
	"github.com/dusk-indust/mend/internal/config"
	"github.com/dusk-indust/mend/internal/gitrepo"
	"github.com/dusk-indust/mend/internal/merge"
	"github.com/dusk-indust/mend/internal/structural"
)

// maxParallelFiles bounds concurrent file resolutions. Sessions are
// single-writer, so each file gets its own.
const maxParallelFiles = 4

// fileTarget is one file to resolve. Explicitly named files are read relative
// to the working directory; files discovered from git status are read under
// the worktree root. The worktree-relative path exists only for staging.
type fileTarget struct {
	display  string
	readPath string
	repoPath string
}

// fileResult is the outcome of resolving one file.
type fileResult struct {
	target  fileTarget
	summary merge.MergeSummary
	content string
}

func runResolve(flags cliFlags, files []string) error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}

	strategy := flags.Strategy
	if strategy == "" {
		strategy = cfg.DefaultStrategy
	}
	if strategy == "" {
		return fmt.Errorf("no strategy given: pass -strategy or set defaultStrategy in mend.yml")
	}

	syntaxCheck := flags.SyntaxCheck || cfg.SyntaxCheck
	dedup := flags.Dedup || cfg.AcceptBoth.Deduplicate

	// Without explicit files, resolve everything git reports as conflicted.
	var repo *gitrepo.Repository
	if len(files) == 0 || flags.Write {
		repo, err = gitrepo.Open(".")
		if err != nil {
			return err
		}
	}
	var targets []fileTarget
	if len(files) == 0 {
		files, err = repo.ConflictedFiles()
		if err != nil {
			return err
		}
		for _, p := range filterExcluded(files, cfg) {
			targets = append(targets, fileTarget{
				display:  p,
				readPath: filepath.Join(repo.Root(), p),
				repoPath: p,
			})
		}
	} else {
		targets, err = explicitTargets(filterExcluded(files, cfg), repo)
		if err != nil {
			return err
		}
	}
	if len(targets) == 0 {
		fmt.Println("No conflicted files.")
		return nil
	}

	results := make([]*fileResult, len(targets))
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(maxParallelFiles)

	for i, target := range targets {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			res, err := resolveFile(target, strategy, dedup, syntaxCheck, cfg)
			if err != nil {
				return fmt.Errorf("%s: %w", target.display, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, res := range results {
		if flags.Write {
			if err := repo.WriteResolved(res.target.repoPath, res.content); err != nil {
				return err
			}
		}
		printResult(res, flags)
	}
	if !flags.Write {
		fmt.Println("Dry run: no files were changed. Pass -write to apply.")
	}
	return nil
}

// explicitTargets resolves user-named files against the working directory.
// The worktree-relative path is derived only when a repo is open and only for
// staging, so the same invocation reads the same files with or without -write.
func explicitTargets(files []string, repo *gitrepo.Repository) ([]fileTarget, error) {
	targets := make([]fileTarget, 0, len(files))
	for _, p := range files {
		target := fileTarget{display: p, readPath: p}
		if repo != nil {
			abs, err := filepath.Abs(p)
			if err != nil {
				return nil, err
			}
			rel, err := filepath.Rel(repo.Root(), abs)
			if err != nil || strings.HasPrefix(rel, "..") {
				return nil, fmt.Errorf("%s is outside the repository at %s", p, repo.Root())
			}
			target.repoPath = rel
		}
		targets = append(targets, target)
	}
	return targets, nil
}

// resolveFile runs the full session lifecycle for one file with the named
// strategy applied to every hunk.
func resolveFile(target fileTarget, strategy string, dedup, syntaxCheck bool, cfg *config.ProjectConfig) (*fileResult, error) {
	data, err := os.ReadFile(target.readPath)
	if err != nil {
		return nil, err
	}

	// Only the working-tree document with the markers is on hand; the
	// incoming version is not read, so Right carries no content.
	session, err := merge.NewSession(merge.MergeInput{
		Left:  merge.FileVersion{Path: target.display, Content: string(data)},
		Right: merge.FileVersion{Path: target.display},
	})
	if err != nil {
		return nil, err
	}

	if syntaxCheck {
		checker, err := structural.CheckerForPath(target.display)
		if err != nil {
			return nil, err
		}
		if checker != nil {
			session.SetSyntaxChecker(checker)
		}
	}

	strat, err := buildStrategy(strategy, target.display, dedup, cfg)
	if err != nil {
		return nil, err
	}

	for _, h := range session.Hunks() {
		r := strat.Propose(h)
		if r == nil {
			return nil, fmt.Errorf("strategy %s produced no resolution for hunk %d", strategy, h.ID)
		}
		if err := session.SetResolution(h.ID, *r); err != nil {
			return nil, err
		}
	}

	result, err := session.Complete()
	if err != nil {
		return nil, err
	}

	return &fileResult{
		target:  target,
		summary: result.Summary,
		content: result.Content,
	}, nil
}

// buildStrategy maps a strategy name to an implementation, wiring the
// structural and AI strategies with their text fallbacks.
func buildStrategy(name, path string, dedup bool, cfg *config.ProjectConfig) (merge.Strategy, error) {
	both := merge.AcceptBothStrategy{
		Options: merge.AcceptBothOptions{
			Deduplicate:    dedup,
			TrimWhitespace: cfg.AcceptBoth.TrimWhitespace,
		},
	}

	switch name {
	case "accept-left":
		return merge.AcceptLeftStrategy{}, nil
	case "accept-right":
		return merge.AcceptRightStrategy{}, nil
	case "accept-both":
		return both, nil
	case "structural":
		if strat, ok := structural.NewStrategyForPath(path, both); ok {
			return strat, nil
		}
		return both, nil
	case "ai-suggested":
		provider, err := buildProvider(cfg.AI)
		if err != nil {
			return nil, err
		}
		return ai.NewStrategy(provider, both, ai.StrategyOptions{
			Path:          path,
			MinConfidence: cfg.AI.MinConfidence,
			Timeout:       cfg.AI.Timeout,
		}), nil
	}
	return nil, fmt.Errorf("unknown strategy: %s", name)
}

func buildProvider(cfg config.AIConfig) (ai.Provider, error) {
	opts := ai.ProviderOptions{
		APIKey:    cfg.APIKey(),
		Model:     cfg.Model,
		BaseURL:   cfg.BaseURL,
		MaxTokens: cfg.MaxTokens,
	}
	if cfg.Provider == "openai" {
		return ai.NewOpenAIProvider(opts)
	}
	return ai.NewAnthropicProvider(opts)
}

func filterExcluded(files []string, cfg *config.ProjectConfig) []string {
	if len(cfg.Exclude) == 0 {
		return files
	}
	kept := files[:0]
	for _, f := range files {
		if !cfg.Excluded(f) {
			kept = append(kept, f)
		}
	}
	return kept
}

func printResult(res *fileResult, flags cliFlags) {
	fmt.Printf("%s: %d/%d hunks resolved\n", res.target.display, res.summary.ResolvedHunks, res.summary.TotalHunks)
	if !flags.Verbose {
		return
	}

	kinds := make([]string, 0, len(res.summary.ByStrategy))
	for kind := range res.summary.ByStrategy {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		fmt.Printf("  %s: %d\n", kind, res.summary.ByStrategy[merge.StrategyKind(kind)])
	}
}
