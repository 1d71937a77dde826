package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitcrackeruk/daylog/internal/activity"
	"github.com/gitcrackeruk/daylog/internal/config"
)

func TestBuildParser(t *testing.T) {
	parser, globals, cmds := buildParser("1.2.3")

	assert.Equal(t, "daylog", parser.Name)
	require.NotNil(t, cmds.Scan)
	require.NotNil(t, cmds.Report)
	assert.Same(t, globals, cmds.Scan.globals)
	assert.Same(t, globals, cmds.Report.globals)
	assert.Equal(t, "1.2.3", cmds.Scan.version)

	names := make([]string, 0, 2)
	for _, cmd := range parser.Commands() {
		names = append(names, cmd.Name)
	}
	assert.ElementsMatch(t, []string{"scan", "report"}, names)
}

func TestRunWithArgs_Version(t *testing.T) {
	assert.NoError(t, RunWithArgs("1.2.3", []string{"--version"}))
	assert.NoError(t, RunWithArgs("1.2.3", []string{"scan", "--version"}))
}

func TestRunWithArgs_UnknownCommand(t *testing.T) {
	assert.Error(t, RunWithArgs("dev", []string{"nonsense"}))
}

func TestRunWithArgs_InvalidDate(t *testing.T) {
	err := RunWithArgs("dev", []string{"scan", "--date", "03/04/2025", "--config", writeDisabledConfig(t)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid date")
}

// writeDisabledConfig produces a config file with every source off, so CLI
// tests never touch real browser or git state.
func writeDisabledConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
sources:
  browser:
    enabled: false
  git:
    enabled: false
  ai_chats:
    enabled: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunWithArgs_ScanAllDisabled(t *testing.T) {
	err := RunWithArgs("dev", []string{"scan", "--date", "2025-03-04", "--config", writeDisabledConfig(t)})
	assert.NoError(t, err)
}

func TestRunWithArgs_ReportWritesFile(t *testing.T) {
	outputDir := filepath.Join(t.TempDir(), "reports")

	err := RunWithArgs("dev", []string{
		"report",
		"--date", "2025-03-04",
		"--config", writeDisabledConfig(t),
		"--output", outputDir,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(outputDir, "DayLog_2025-03-04.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "No Activities Found")
}

func TestParseDate(t *testing.T) {
	day, err := parseDate("2025-03-04")
	require.NoError(t, err)
	assert.True(t, day.Equal(time.Date(2025, 3, 4, 0, 0, 0, 0, time.Local)))

	today, err := parseDate("")
	require.NoError(t, err)
	now := time.Now()
	assert.Equal(t, now.Year(), today.Year())
	assert.Equal(t, 0, today.Hour(), "defaults to local midnight")

	_, err = parseDate("04.03.2025")
	assert.Error(t, err)
}

func TestFormatCategories(t *testing.T) {
	stats := activity.Stats{
		ByCategory: map[activity.Category]int{
			activity.CategoryLearning: 2,
			activity.CategoryWork:     5,
		},
	}
	assert.Equal(t, "work(5), learning(2)", formatCategories(stats))

	assert.Equal(t, "none", formatCategories(activity.Stats{ByCategory: map[activity.Category]int{}}))
}

func TestFormatTimespan(t *testing.T) {
	stats := activity.Stats{
		Start: time.Date(2025, 3, 4, 9, 0, 0, 0, time.Local),
		End:   time.Date(2025, 3, 4, 17, 30, 0, 0, time.Local),
	}
	assert.Equal(t, "8.5 hours (09:00 - 17:30)", formatTimespan(stats))
}

func TestReportExecute_OutputOverride(t *testing.T) {
	outputDir := filepath.Join(t.TempDir(), "override")

	_, _, cmds := buildParser("dev")
	cmds.Report.globals.Config = writeDisabledConfig(t)
	cmds.Report.Date = "2025-03-04"
	cmds.Report.Output = outputDir

	require.NoError(t, cmds.Report.Execute(nil))

	_, err := os.Stat(filepath.Join(outputDir, "DayLog_2025-03-04.md"))
	assert.NoError(t, err)
}

func TestScanExecuteWithConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Sources.Browser.Enabled = false
	cfg.Sources.Git.Enabled = false
	cfg.Sources.AIChats.Enabled = false

	_, _, cmds := buildParser("dev")
	day := time.Date(2025, 3, 4, 0, 0, 0, 0, time.Local)
	assert.NoError(t, cmds.Scan.executeWithConfig(cfg, day))
}
