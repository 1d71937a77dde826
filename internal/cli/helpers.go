package cli

import (
	"fmt"
	"time"

	"github.com/gitcrackeruk/daylog/internal/activity"
	"github.com/gitcrackeruk/daylog/internal/pipeline"
)

// parseDate parses a --date value, defaulting to today when empty.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	}

	day, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD)", s)
	}
	return day, nil
}

// sourceLabels fixes the display order of per-source counts.
var sourceLabels = []struct {
	source activity.Source
	label  string
}{
	{activity.SourceBrowser, "Browser history"},
	{activity.SourceAIChat, "AI conversations"},
	{activity.SourceGit, "Git activities"},
}

// printCollection prints per-source counts and warnings for a finished
// collection pass.
func printCollection(result pipeline.Result, verbose bool) {
	for _, s := range sourceLabels {
		fmt.Printf("  %s: %d entries\n", s.label, result.Counts[s.source])
	}
	for _, warning := range result.Warnings {
		fmt.Printf("  warning: %s\n", warning)
	}
	if verbose {
		fmt.Printf("  combined after dedup: %d\n", len(result.Activities))
	}
}

// printSummary prints the quick console summary for a day's activities.
func printSummary(result pipeline.Result) {
	if result.Stats.Total == 0 {
		fmt.Println("No activities found for analysis")
		return
	}

	fmt.Println("Summary:")
	fmt.Printf("  Total activities:   %d\n", result.Stats.Total)
	fmt.Printf("  Productivity score: %.1f%%\n", result.Stats.ProductivityScore())
	fmt.Printf("  Active time span:   %s\n", formatTimespan(result.Stats))
	fmt.Printf("  Categories:         %s\n", formatCategories(result.Stats))
}

func formatTimespan(stats activity.Stats) string {
	hours := stats.End.Sub(stats.Start).Hours()
	return fmt.Sprintf("%.1f hours (%s - %s)",
		hours, stats.Start.Format("15:04"), stats.End.Format("15:04"))
}

// formatCategories renders category counts in a fixed order, e.g.
// "work(5), learning(2)".
func formatCategories(stats activity.Stats) string {
	order := []activity.Category{
		activity.CategoryWork,
		activity.CategoryLearning,
		activity.CategoryEntertainment,
		activity.CategoryGeneral,
	}

	out := ""
	for _, cat := range order {
		count := stats.ByCategory[cat]
		if count == 0 {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += fmt.Sprintf("%s(%d)", cat, count)
	}
	if out == "" {
		return "none"
	}
	return out
}
