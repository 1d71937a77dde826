// Package report renders the combined day's activity stream into a Markdown
// document.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gitcrackeruk/daylog/internal/activity"
	"github.com/gitcrackeruk/daylog/internal/config"
)

// categoryOrder fixes section ordering in the rendered report.
var categoryOrder = []activity.Category{
	activity.CategoryWork,
	activity.CategoryLearning,
	activity.CategoryEntertainment,
	activity.CategoryGeneral,
}

// Generator writes daily Markdown reports.
type Generator struct {
	outputDir       string
	includeTimeline bool
	includeStats    bool
	maxPerCategory  int
}

// NewGenerator creates a Generator from output settings.
func NewGenerator(cfg config.OutputConfig) *Generator {
	maxEntries := cfg.MaxEntriesPerCategory
	if maxEntries <= 0 {
		maxEntries = 10
	}
	return &Generator{
		outputDir:       cfg.Dir,
		includeTimeline: cfg.IncludeTimeline,
		includeStats:    cfg.IncludeStatistics,
		maxPerCategory:  maxEntries,
	}
}

// Generate renders the report and writes it to
// <outputDir>/DayLog_YYYY-MM-DD.md, returning the written path.
func (g *Generator) Generate(activities []activity.Activity, day time.Time) (string, error) {
	if err := os.MkdirAll(g.outputDir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	content := g.Render(activities, day)
	path := filepath.Join(g.outputDir, fmt.Sprintf("DayLog_%s.md", day.Format("2006-01-02")))

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

// Render produces the full Markdown document without touching the
// filesystem.
func (g *Generator) Render(activities []activity.Activity, day time.Time) string {
	if len(activities) == 0 {
		return g.renderEmpty(day)
	}

	stats := activity.Statistics(activities)

	var b strings.Builder
	fmt.Fprintf(&b, "# Daily Activity Report: %s\n", day.Format("January 2, 2006"))
	fmt.Fprintf(&b, "*%s*\n\n", day.Format("Monday"))

	b.WriteString("## Overview\n\n")
	for _, insight := range insights(stats) {
		fmt.Fprintf(&b, "- %s\n", insight)
	}
	b.WriteString("\n")

	if g.includeStats {
		g.renderStats(&b, stats)
	}

	g.renderBreakdown(&b, stats)

	if g.includeTimeline {
		g.renderTimeline(&b, activities)
	}

	g.renderCategories(&b, activities)

	fmt.Fprintf(&b, "---\n\n*Generated by daylog on %s*\n", time.Now().Format("2006-01-02 at 15:04"))
	return b.String()
}

func (g *Generator) renderStats(b *strings.Builder, stats activity.Stats) {
	b.WriteString("## Statistics\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(b, "| Total activities | %d |\n", stats.Total)
	fmt.Fprintf(b, "| Productivity score | %.1f%% |\n", stats.ProductivityScore())
	if hour := stats.MostActiveHour(); hour >= 0 {
		fmt.Fprintf(b, "| Most active hour | %02d:00 |\n", hour)
	}
	fmt.Fprintf(b, "| Time span | %s - %s |\n\n",
		stats.Start.Format("15:04"), stats.End.Format("15:04"))
}

func (g *Generator) renderBreakdown(b *strings.Builder, stats activity.Stats) {
	b.WriteString("## Breakdown\n\n")
	for _, cat := range categoryOrder {
		count := stats.ByCategory[cat]
		if count == 0 {
			continue
		}
		pct := float64(count) / float64(stats.Total) * 100
		fmt.Fprintf(b, "- **%s**: %d activities (%.1f%%)\n", capitalize(string(cat)), count, pct)
	}
	b.WriteString("\n")
}

// renderTimeline groups activities by hour, newest hour last, with up to
// three detail lines per hour.
func (g *Generator) renderTimeline(b *strings.Builder, activities []activity.Activity) {
	b.WriteString("## Timeline\n\n")

	byHour := make(map[int][]activity.Activity)
	var hours []int
	for _, a := range activities {
		h := a.Timestamp.Hour()
		if _, ok := byHour[h]; !ok {
			hours = append(hours, h)
		}
		byHour[h] = append(byHour[h], a)
	}
	sort.Ints(hours)

	const maxPerHour = 3
	for _, h := range hours {
		entries := byHour[h]
		fmt.Fprintf(b, "**%02d:00** - %s\n\n", h, summarizeHour(entries))

		shown := entries
		if len(shown) > maxPerHour {
			shown = shown[:maxPerHour]
		}
		for _, a := range shown {
			fmt.Fprintf(b, "  - `%s` %s\n", a.Timestamp.Format("15:04"), truncate(a.Title, 80))
		}
		if remaining := len(entries) - maxPerHour; remaining > 0 {
			fmt.Fprintf(b, "  - *... and %d more*\n", remaining)
		}
		b.WriteString("\n")
	}
}

func (g *Generator) renderCategories(b *strings.Builder, activities []activity.Activity) {
	byCategory := make(map[activity.Category][]activity.Activity)
	for _, a := range activities {
		byCategory[a.Category] = append(byCategory[a.Category], a)
	}

	for _, cat := range categoryOrder {
		entries := byCategory[cat]
		if len(entries) == 0 {
			continue
		}

		// Newest first within a category section.
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[j].Timestamp.Before(entries[i].Timestamp)
		})

		fmt.Fprintf(b, "## %s Activities\n\n", capitalize(string(cat)))

		shown := entries
		if len(shown) > g.maxPerCategory {
			shown = shown[:g.maxPerCategory]
		}
		for _, a := range shown {
			fmt.Fprintf(b, "### %s\n*%s*\n\n", a.Title, a.Timestamp.Format("15:04"))
			renderDetails(b, a)
		}
		if remaining := len(entries) - g.maxPerCategory; remaining > 0 {
			fmt.Fprintf(b, "*... and %d more %s activities*\n\n", remaining, cat)
		}
	}
}

// renderDetails writes the source-specific detail lines for one activity.
func renderDetails(b *strings.Builder, a activity.Activity) {
	switch a.Source {
	case activity.SourceBrowser:
		fmt.Fprintf(b, "- Website: %v\n", a.Details["domain"])
		fmt.Fprintf(b, "- Browser: %v\n", a.Details["browser"])

	case activity.SourceAIChat:
		fmt.Fprintf(b, "- Service: %v\n", a.Details["ai_service"])
		fmt.Fprintf(b, "- Topic: %v\n", a.Details["topic"])
		fmt.Fprintf(b, "- Messages: %v\n", a.Details["message_count"])
		if msg, ok := a.Details["user_message"].(string); ok && msg != "" {
			fmt.Fprintf(b, "- Context: %s\n", truncate(msg, 200))
		}

	case activity.SourceGit:
		fmt.Fprintf(b, "- Repository: %v\n", a.Details["repository"])
		fmt.Fprintf(b, "- Branch: %v\n", a.Details["branch"])
		if a.Details["activity_type"] == "commit" {
			if hash, ok := a.Details["commit_hash"].(string); ok && len(hash) >= 8 {
				fmt.Fprintf(b, "- Commit: `%s`\n", hash[:8])
			}
			if files, ok := a.Details["files_changed"].([]string); ok {
				fmt.Fprintf(b, "- Files changed: %d\n", len(files))
			}
			ins, _ := a.Details["insertions"].(int)
			dels, _ := a.Details["deletions"].(int)
			if ins > 0 || dels > 0 {
				fmt.Fprintf(b, "- Changes: +%d/-%d lines\n", ins, dels)
			}
		} else {
			b.WriteString("- Action: branch switch\n")
		}
	}
	b.WriteString("\n")
}

// summarizeHour produces the one-line heading for an hour's activity group.
func summarizeHour(entries []activity.Activity) string {
	bySource := make(map[activity.Source]int)
	for _, a := range entries {
		bySource[a.Source]++
	}

	var parts []string
	for _, source := range []activity.Source{activity.SourceBrowser, activity.SourceGit, activity.SourceAIChat} {
		count := bySource[source]
		if count == 0 {
			continue
		}
		label := map[activity.Source]string{
			activity.SourceBrowser: "browsing",
			activity.SourceGit:     "coding",
			activity.SourceAIChat:  "AI chats",
		}[source]
		parts = append(parts, fmt.Sprintf("%d %s", count, label))
	}
	if len(parts) == 0 {
		return fmt.Sprintf("%d activities", len(entries))
	}
	return strings.Join(parts, ", ")
}

func (g *Generator) renderEmpty(day time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Daily Activity Report: %s\n", day.Format("January 2, 2006"))
	fmt.Fprintf(&b, "*%s*\n\n", day.Format("Monday"))
	b.WriteString("## No Activities Found\n\n")
	b.WriteString("No activities were recorded for this date. Possible reasons:\n\n")
	b.WriteString("- browser history stores were locked during collection\n")
	b.WriteString("- no activity occurred on this date\n")
	b.WriteString("- data sources need configuration\n\n")
	fmt.Fprintf(&b, "---\n\n*Generated by daylog on %s*\n", time.Now().Format("2006-01-02 at 15:04"))
	return b.String()
}

func insights(stats activity.Stats) []string {
	var out []string

	switch {
	case stats.Total > 50:
		out = append(out, fmt.Sprintf("Very active day with %d logged activities", stats.Total))
	case stats.Total > 20:
		out = append(out, fmt.Sprintf("Productive day with %d activities", stats.Total))
	case stats.Total > 10:
		out = append(out, fmt.Sprintf("Moderate activity with %d logged events", stats.Total))
	default:
		out = append(out, fmt.Sprintf("Light day with %d activities", stats.Total))
	}

	score := stats.ProductivityScore()
	switch {
	case score >= 70:
		out = append(out, fmt.Sprintf("High productivity focus (%.1f%% work/learning)", score))
	case score >= 40:
		out = append(out, fmt.Sprintf("Balanced day (%.1f%% work/learning)", score))
	default:
		out = append(out, fmt.Sprintf("Relaxed day (%.1f%% work/learning)", score))
	}

	hoursActive := stats.End.Sub(stats.Start).Hours()
	switch {
	case hoursActive > 12:
		out = append(out, fmt.Sprintf("Long active period (%.1f hours)", hoursActive))
	case hoursActive > 8:
		out = append(out, fmt.Sprintf("Full day of activity (%.1f hours)", hoursActive))
	default:
		out = append(out, fmt.Sprintf("Focused session (%.1f hours)", hoursActive))
	}

	if stats.BySource[activity.SourceAIChat] > 3 {
		out = append(out, fmt.Sprintf("Heavy AI assistance day (%d conversations)", stats.BySource[activity.SourceAIChat]))
	}
	if stats.ByCategory[activity.CategoryLearning] > stats.ByCategory[activity.CategoryWork] {
		out = append(out, "Learning-focused day")
	}
	if stats.ByCategory[activity.CategoryWork] > 10 {
		out = append(out, "Work-intensive day")
	}

	if hour := stats.MostActiveHour(); hour >= 0 {
		switch {
		case hour < 12:
			out = append(out, fmt.Sprintf("Peak activity in the morning at %02d:00", hour))
		case hour < 17:
			out = append(out, fmt.Sprintf("Peak activity in the afternoon at %02d:00", hour))
		default:
			out = append(out, fmt.Sprintf("Peak activity in the evening at %02d:00", hour))
		}
	}

	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
