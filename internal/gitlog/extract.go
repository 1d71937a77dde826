package gitlog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Extractor collects commit and branch-switch records from local git
// repositories discovered under configured project roots.
type Extractor struct {
	runner       Runner
	authorEmails []string // configured filter addresses; empty means resolve per repo
}

// NewExtractor creates an Extractor using the given runner. authorEmails,
// when non-empty, restricts commits to authors whose email contains one of
// the addresses.
func NewExtractor(runner Runner, authorEmails []string) *Extractor {
	return &Extractor{runner: runner, authorEmails: authorEmails}
}

// Extract collects the given local day's activity from every repository
// found under roots. Per-repository failures become warnings and never stop
// processing of sibling repositories.
func (e *Extractor) Extract(ctx context.Context, roots []string, day time.Time) ([]Commit, []BranchSwitch, []string) {
	var (
		commits  []Commit
		switches []BranchSwitch
		warnings []string
	)

	for _, root := range roots {
		if _, err := os.Stat(root); err != nil {
			continue
		}

		for _, repo := range DiscoverRepositories(root) {
			repoCommits, repoSwitches, err := e.extractRepository(ctx, repo, day)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("git repo %s: %v", filepath.Base(repo), err))
				continue
			}
			commits = append(commits, repoCommits...)
			switches = append(switches, repoSwitches...)
		}
	}

	return commits, switches, warnings
}

// DiscoverRepositories finds git repositories under root. The root itself
// counts if it holds git metadata; otherwise its immediate children and
// their immediate children are inspected. The two-level bound keeps
// discovery cost predictable on large trees. Hidden directories are not
// descended into.
func DiscoverRepositories(root string) []string {
	if isRepository(root) {
		return []string{root}
	}

	var repos []string
	for _, child := range subdirectories(root) {
		if isRepository(child) {
			repos = append(repos, child)
		}
		for _, grandchild := range subdirectories(child) {
			if isRepository(grandchild) {
				repos = append(repos, grandchild)
			}
		}
	}
	return repos
}

func isRepository(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

// subdirectories lists non-hidden child directories of dir.
func subdirectories(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var dirs []string
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		dirs = append(dirs, filepath.Join(dir, entry.Name()))
	}
	return dirs
}

// extractRepository collects one repository's commits for the day, and its
// branch switches only when at least one commit was found.
func (e *Extractor) extractRepository(ctx context.Context, repoPath string, day time.Time) ([]Commit, []BranchSwitch, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	repoName := e.repositoryName(ctx, repoPath)
	currentBranch := e.currentBranch(ctx, repoPath)

	out, err := e.runner.Run(ctx, repoPath,
		"log",
		"--since="+start.Format("2006-01-02T15:04:05"),
		"--until="+end.Format("2006-01-02T15:04:05"),
		"--pretty=format:%H|%an|%ae|%ai|%s|%b",
		"--numstat",
	)
	if err != nil {
		return nil, nil, err
	}

	emails := e.effectiveAuthorEmails(ctx, repoPath)

	var commits []Commit
	for _, commit := range ParseLog(out) {
		if !matchesAuthor(commit.AuthorEmail, emails) {
			continue
		}
		commit.Repository = repoName
		commit.RepoPath = repoPath
		commit.Branch = e.branchForCommit(ctx, repoPath, commit.Hash, currentBranch)
		commits = append(commits, commit)
	}

	// Reflog is only worth scanning on days with actual commits.
	var switches []BranchSwitch
	if len(commits) > 0 {
		switches = e.branchSwitches(ctx, repoPath, repoName, start, end)
	}

	return commits, switches, nil
}

// repositoryName prefers the remote origin's repository name, falling back
// to the directory name.
func (e *Extractor) repositoryName(ctx context.Context, repoPath string) string {
	out, err := e.runner.Run(ctx, repoPath, "remote", "get-url", "origin")
	if err == nil {
		remote := strings.TrimSpace(out)
		if idx := strings.LastIndex(remote, "/"); idx >= 0 && idx < len(remote)-1 {
			return strings.TrimSuffix(remote[idx+1:], ".git")
		}
	}
	return filepath.Base(repoPath)
}

func (e *Extractor) currentBranch(ctx context.Context, repoPath string) string {
	out, err := e.runner.Run(ctx, repoPath, "branch", "--show-current")
	if err != nil || strings.TrimSpace(out) == "" {
		return "main"
	}
	return strings.TrimSpace(out)
}

// branchForCommit resolves the branch containing a commit, preferring the
// checked-out branch when listed.
func (e *Extractor) branchForCommit(ctx context.Context, repoPath, hash, fallback string) string {
	out, err := e.runner.Run(ctx, repoPath, "branch", "--contains", hash)
	if err != nil {
		return fallback
	}

	first := ""
	for _, line := range strings.Split(out, "\n") {
		branch := strings.TrimSpace(line)
		if branch == "" {
			continue
		}
		if strings.HasPrefix(branch, "* ") {
			return branch[2:]
		}
		if first == "" && !strings.HasPrefix(branch, "(") {
			first = branch
		}
	}
	if first != "" {
		return first
	}
	return fallback
}

// effectiveAuthorEmails returns the configured filter addresses, or the
// repository's own user.email when none are configured. An empty result
// means accept all authors.
func (e *Extractor) effectiveAuthorEmails(ctx context.Context, repoPath string) []string {
	if len(e.authorEmails) > 0 {
		return e.authorEmails
	}

	out, err := e.runner.Run(ctx, repoPath, "config", "user.email")
	if err != nil {
		return nil
	}
	email := strings.TrimSpace(out)
	if email == "" {
		return nil
	}
	return []string{email}
}

// matchesAuthor reports whether authorEmail passes the filter. An empty
// filter accepts all.
func matchesAuthor(authorEmail string, emails []string) bool {
	if len(emails) == 0 {
		return true
	}
	for _, email := range emails {
		if strings.Contains(authorEmail, email) {
			return true
		}
	}
	return false
}

// branchSwitches scans the reflog for day-windowed checkouts.
func (e *Extractor) branchSwitches(ctx context.Context, repoPath, repoName string, start, end time.Time) []BranchSwitch {
	out, err := e.runner.Run(ctx, repoPath, "reflog", "--date=iso", "--grep-reflog=checkout")
	if err != nil {
		return nil
	}

	actor := e.gitUser(ctx, repoPath)

	switches := ParseReflog(out, start, end)
	for i := range switches {
		switches[i].Repository = repoName
		switches[i].Actor = actor
	}
	return switches
}

func (e *Extractor) gitUser(ctx context.Context, repoPath string) string {
	out, err := e.runner.Run(ctx, repoPath, "config", "user.name")
	if err != nil || strings.TrimSpace(out) == "" {
		return "Unknown"
	}
	return strings.TrimSpace(out)
}
