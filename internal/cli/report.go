package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/gitcrackeruk/daylog/internal/config"
	"github.com/gitcrackeruk/daylog/internal/pipeline"
	"github.com/gitcrackeruk/daylog/internal/report"
)

// reportJSON is the JSON output structure for the report command.
type reportJSON struct {
	Date            string   `json:"date"`
	ReportPath      string   `json:"report_path"`
	TotalActivities int      `json:"total_activities"`
	Categories      int      `json:"categories"`
	Warnings        []string `json:"warnings,omitempty"`
}

// Execute implements the go-flags Commander interface for ReportCommand.
func (c *ReportCommand) Execute(args []string) error {
	cfg, err := config.LoadOrDefault(c.globals.Config)
	if err != nil {
		return err
	}

	day, err := parseDate(c.Date)
	if err != nil {
		return err
	}

	if c.Output != "" {
		cfg.Output.Dir = c.Output
	}

	return c.executeWithConfig(cfg, day)
}

// executeWithConfig runs report generation against a provided config (used
// by tests).
func (c *ReportCommand) executeWithConfig(cfg *config.Config, day time.Time) error {
	if !c.globals.JSON {
		fmt.Printf("DayLog: generating report for %s\n", day.Format("2006-01-02"))
	}

	result := pipeline.Run(context.Background(), cfg, day)

	outputDir, err := config.ExpandPath(cfg.Output.Dir)
	if err != nil {
		return err
	}
	cfg.Output.Dir = outputDir

	generator := report.NewGenerator(cfg.Output)
	path, err := generator.Generate(result.Activities, day)
	if err != nil {
		return fmt.Errorf("generating report: %w", err)
	}

	if c.globals.JSON {
		out := reportJSON{
			Date:            day.Format("2006-01-02"),
			ReportPath:      path,
			TotalActivities: result.Stats.Total,
			Categories:      len(result.Stats.ByCategory),
			Warnings:        result.Warnings,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	printCollection(result, c.globals.Verbose)
	fmt.Printf("Report saved to: %s\n", path)
	if result.Stats.Total > 0 {
		fmt.Printf("Report includes %d activities across %d categories\n",
			result.Stats.Total, len(result.Stats.ByCategory))
	} else {
		fmt.Println("Empty report generated (no activities found)")
	}
	return nil
}
