// Package pipeline runs the full daily collection pass: per-source
// extraction in parallel, normalization, deduplication, and statistics.
//
// Sources are isolated: each owns its temporary files and handles, and a
// failure in one contributes a warning plus an empty result, never an
// aborted run. The pipeline always completes and always returns a (possibly
// empty) activity stream.
package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gitcrackeruk/daylog/internal/activity"
	"github.com/gitcrackeruk/daylog/internal/aichat"
	"github.com/gitcrackeruk/daylog/internal/browser"
	"github.com/gitcrackeruk/daylog/internal/config"
	"github.com/gitcrackeruk/daylog/internal/gitlog"
)

// Result is the outcome of one collection pass.
type Result struct {
	Activities []activity.Activity
	Stats      activity.Stats
	Counts     map[activity.Source]int // normalized records per source, pre-dedup
	Warnings   []string
}

// gitTimeout bounds every git invocation.
const gitTimeout = 30 * time.Second

// Run collects, normalizes, and combines all enabled sources for the given
// local day.
func Run(ctx context.Context, cfg *config.Config, day time.Time) Result {
	normalizer := activity.NewNormalizer(
		cfg.Categorize.WorkKeywords,
		cfg.Categorize.LearningKeywords,
		cfg.Categorize.EntertainmentKeywords,
	)

	var (
		wg sync.WaitGroup

		browserActs []activity.Activity
		gitActs     []activity.Activity
		chatActs    []activity.Activity

		browserWarns []string
		gitWarns     []string
		chatWarns    []string
	)

	if cfg.IsEnabled("browser") {
		wg.Add(1)
		go func() {
			defer wg.Done()
			browserActs, browserWarns = collectBrowser(ctx, cfg, normalizer, day)
		}()
	}

	if cfg.IsEnabled("git") {
		wg.Add(1)
		go func() {
			defer wg.Done()
			gitActs, gitWarns = collectGit(ctx, cfg, normalizer, day)
		}()
	}

	if cfg.IsEnabled("ai_chats") {
		wg.Add(1)
		go func() {
			defer wg.Done()
			chatActs, chatWarns = collectChats(cfg, normalizer, day)
		}()
	}

	wg.Wait()

	combined := activity.Combine(browserActs, chatActs, gitActs)

	result := Result{
		Activities: combined,
		Stats:      activity.Statistics(combined),
		Counts: map[activity.Source]int{
			activity.SourceBrowser: len(browserActs),
			activity.SourceGit:     len(gitActs),
			activity.SourceAIChat:  len(chatActs),
		},
	}
	result.Warnings = append(result.Warnings, browserWarns...)
	result.Warnings = append(result.Warnings, gitWarns...)
	result.Warnings = append(result.Warnings, chatWarns...)
	return result
}

// collectBrowser extracts visits from every configured browser store.
func collectBrowser(ctx context.Context, cfg *config.Config, n *activity.Normalizer, day time.Time) ([]activity.Activity, []string) {
	extractor := browser.NewExtractor(cfg.Privacy.ExcludeTerms)

	var (
		acts  []activity.Activity
		warns []string
	)

	extract := func(id, storePath string) {
		if storePath == "" {
			return
		}
		path, err := config.ExpandPath(storePath)
		if err != nil {
			warns = append(warns, fmt.Sprintf("browser %s: %v", id, err))
			return
		}
		visits, err := extractor.Extract(ctx, id, path, day)
		if err != nil {
			warns = append(warns, fmt.Sprintf("browser %s: %v", id, err))
			return
		}
		for _, v := range visits {
			acts = append(acts, n.Browser(v))
		}
	}

	extract("chrome", cfg.Sources.Browser.ChromePath)
	extract("edge", cfg.Sources.Browser.EdgePath)

	if cfg.Sources.Browser.FirefoxPath != "" {
		profilesDir, err := config.ExpandPath(cfg.Sources.Browser.FirefoxPath)
		if err != nil {
			warns = append(warns, fmt.Sprintf("browser firefox: %v", err))
		} else {
			for _, store := range browser.FindFirefoxStores(profilesDir) {
				extract("firefox", store)
			}
		}
	}

	return acts, warns
}

// collectGit extracts commits and branch switches from the configured
// project roots.
func collectGit(ctx context.Context, cfg *config.Config, n *activity.Normalizer, day time.Time) ([]activity.Activity, []string) {
	runner := &gitlog.ExecRunner{Timeout: gitTimeout}
	extractor := gitlog.NewExtractor(runner, cfg.Sources.Git.AuthorEmails)

	var (
		roots []string
		warns []string
	)
	for _, dir := range cfg.Sources.Git.ProjectDirs {
		path, err := config.ExpandPath(dir)
		if err != nil {
			warns = append(warns, fmt.Sprintf("git root %s: %v", dir, err))
			continue
		}
		roots = append(roots, path)
	}

	commits, switches, extractWarns := extractor.Extract(ctx, roots, day)
	warns = append(warns, extractWarns...)

	var acts []activity.Activity
	for _, c := range commits {
		acts = append(acts, n.Commit(c))
	}
	for _, s := range switches {
		acts = append(acts, n.BranchSwitch(s))
	}
	return acts, warns
}

// collectChats extracts AI conversations from the configured export path.
func collectChats(cfg *config.Config, n *activity.Normalizer, day time.Time) ([]activity.Activity, []string) {
	exportPath := cfg.Sources.AIChats.ChatGPTExport
	if exportPath != "" {
		expanded, err := config.ExpandPath(exportPath)
		if err != nil {
			return nil, []string{fmt.Sprintf("chatgpt export: %v", err)}
		}
		exportPath = expanded
	}

	collector := aichat.NewCollector(exportPath)
	conversations, warns := collector.Collect(day)

	var acts []activity.Activity
	for _, c := range conversations {
		acts = append(acts, n.Chat(c))
	}
	return acts, warns
}
