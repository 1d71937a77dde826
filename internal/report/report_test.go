package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitcrackeruk/daylog/internal/activity"
	"github.com/gitcrackeruk/daylog/internal/config"
)

func testGenerator(dir string) *Generator {
	return NewGenerator(config.OutputConfig{
		Dir:                   dir,
		IncludeTimeline:       true,
		IncludeStatistics:     true,
		MaxEntriesPerCategory: 10,
	})
}

func sampleDay() time.Time {
	return time.Date(2025, 3, 4, 0, 0, 0, 0, time.Local)
}

func sampleActivities() []activity.Activity {
	day := sampleDay()
	return []activity.Activity{
		{
			Timestamp: day.Add(9*time.Hour + 12*time.Minute),
			Source:    activity.SourceBrowser,
			Title:     "Go Documentation",
			Category:  activity.CategoryWork,
			Details: map[string]any{
				"url": "https://go.dev/doc/", "domain": "go.dev",
				"browser": "chrome", "visit_count": 3,
			},
		},
		{
			Timestamp: day.Add(11*time.Hour + 45*time.Minute),
			Source:    activity.SourceGit,
			Title:     "daylog: Fix login bug",
			Category:  activity.CategoryWork,
			Details: map[string]any{
				"activity_type": "commit", "repository": "daylog",
				"branch": "feature/x", "commit_hash": "abc1234def567890",
				"files_changed": []string{"auth/login.go"},
				"insertions":    3, "deletions": 1,
			},
		},
		{
			Timestamp: day.Add(20*time.Hour + 3*time.Minute),
			Source:    activity.SourceAIChat,
			Title:     "Chatgpt Chat: Learning",
			Category:  activity.CategoryLearning,
			Details: map[string]any{
				"ai_service": "chatgpt", "topic": "Learning",
				"message_count": 4, "user_message": "Explain goroutines",
			},
		},
	}
}

func TestGenerate_WritesDatedFile(t *testing.T) {
	dir := t.TempDir()
	g := testGenerator(filepath.Join(dir, "reports"))

	path, err := g.Generate(sampleActivities(), sampleDay())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "reports", "DayLog_2025-03-04.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Daily Activity Report: March 4, 2025")
}

func TestRender_SectionsPresent(t *testing.T) {
	g := testGenerator(t.TempDir())
	out := g.Render(sampleActivities(), sampleDay())

	assert.Contains(t, out, "# Daily Activity Report: March 4, 2025")
	assert.Contains(t, out, "*Tuesday*")
	assert.Contains(t, out, "## Overview")
	assert.Contains(t, out, "## Statistics")
	assert.Contains(t, out, "## Breakdown")
	assert.Contains(t, out, "## Timeline")
	assert.Contains(t, out, "## Work Activities")
	assert.Contains(t, out, "## Learning Activities")
}

func TestRender_SourceDetails(t *testing.T) {
	g := testGenerator(t.TempDir())
	out := g.Render(sampleActivities(), sampleDay())

	assert.Contains(t, out, "- Website: go.dev")
	assert.Contains(t, out, "- Browser: chrome")
	assert.Contains(t, out, "- Repository: daylog")
	assert.Contains(t, out, "- Commit: `abc1234d`", "hash is shortened to eight characters")
	assert.Contains(t, out, "- Files changed: 1")
	assert.Contains(t, out, "- Changes: +3/-1 lines")
	assert.Contains(t, out, "- Service: chatgpt")
	assert.Contains(t, out, "- Context: Explain goroutines")
}

func TestRender_Breakdown(t *testing.T) {
	g := testGenerator(t.TempDir())
	out := g.Render(sampleActivities(), sampleDay())

	assert.Contains(t, out, "- **Work**: 2 activities (66.7%)")
	assert.Contains(t, out, "- **Learning**: 1 activities (33.3%)")
	assert.NotContains(t, out, "**Entertainment**", "empty categories are omitted")
}

func TestRender_TogglesRespected(t *testing.T) {
	g := NewGenerator(config.OutputConfig{
		Dir:                   t.TempDir(),
		IncludeTimeline:       false,
		IncludeStatistics:     false,
		MaxEntriesPerCategory: 10,
	})
	out := g.Render(sampleActivities(), sampleDay())

	assert.NotContains(t, out, "## Statistics")
	assert.NotContains(t, out, "## Timeline")
	assert.Contains(t, out, "## Breakdown", "breakdown is always rendered")
}

func TestRender_CategoryLimitAndOverflowNote(t *testing.T) {
	g := NewGenerator(config.OutputConfig{
		Dir:                   t.TempDir(),
		MaxEntriesPerCategory: 2,
	})

	day := sampleDay()
	var acts []activity.Activity
	for i := 0; i < 5; i++ {
		acts = append(acts, activity.Activity{
			Timestamp: day.Add(time.Duration(9+i) * time.Hour),
			Source:    activity.SourceBrowser,
			Title:     fmt.Sprintf("Page %d", i),
			Category:  activity.CategoryWork,
			Details:   map[string]any{"domain": "example.com", "browser": "chrome"},
		})
	}

	out := g.Render(acts, day)
	assert.Contains(t, out, "*... and 3 more work activities*")

	// Newest entries are listed first within the section.
	assert.Less(t, strings.Index(out, "### Page 4"), strings.Index(out, "### Page 3"))
	assert.NotContains(t, out, "### Page 0")
}

func TestRender_TimelineCapsDetailLines(t *testing.T) {
	g := testGenerator(t.TempDir())

	day := sampleDay()
	var acts []activity.Activity
	for i := 0; i < 5; i++ {
		acts = append(acts, activity.Activity{
			Timestamp: day.Add(10*time.Hour + time.Duration(i)*time.Minute),
			Source:    activity.SourceBrowser,
			Title:     fmt.Sprintf("Tab %d", i),
			Category:  activity.CategoryGeneral,
			Details:   map[string]any{"domain": "example.com", "browser": "chrome"},
		})
	}

	out := g.Render(acts, day)
	assert.Contains(t, out, "**10:00**")
	assert.Contains(t, out, "*... and 2 more*")
}

func TestRender_EmptyDay(t *testing.T) {
	g := testGenerator(t.TempDir())
	out := g.Render(nil, sampleDay())

	assert.Contains(t, out, "## No Activities Found")
	assert.NotContains(t, out, "## Statistics")
}

func TestNewGenerator_DefaultsMaxEntries(t *testing.T) {
	g := NewGenerator(config.OutputConfig{Dir: t.TempDir()})
	assert.Equal(t, 10, g.maxPerCategory)
}
