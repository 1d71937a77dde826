package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/gitcrackeruk/daylog/internal/config"
	"github.com/gitcrackeruk/daylog/internal/pipeline"
)

// scanJSON is the JSON output structure for the scan command.
type scanJSON struct {
	Date              string         `json:"date"`
	TotalActivities   int            `json:"total_activities"`
	ProductivityScore float64        `json:"productivity_score"`
	Start             string         `json:"start,omitempty"`
	End               string         `json:"end,omitempty"`
	BySource          map[string]int `json:"by_source"`
	ByCategory        map[string]int `json:"by_category"`
	ByHour            map[string]int `json:"by_hour"`
	Warnings          []string       `json:"warnings,omitempty"`
}

// Execute implements the go-flags Commander interface for ScanCommand.
func (c *ScanCommand) Execute(args []string) error {
	cfg, err := config.LoadOrDefault(c.globals.Config)
	if err != nil {
		return err
	}

	day, err := parseDate(c.Date)
	if err != nil {
		return err
	}

	return c.executeWithConfig(cfg, day)
}

// executeWithConfig runs the scan against a provided config (used by tests).
func (c *ScanCommand) executeWithConfig(cfg *config.Config, day time.Time) error {
	if !c.globals.JSON {
		fmt.Printf("DayLog: collecting activity data for %s\n", day.Format("2006-01-02"))
	}

	result := pipeline.Run(context.Background(), cfg, day)

	if c.globals.JSON {
		return printScanJSON(result, day)
	}

	printCollection(result, c.globals.Verbose)
	fmt.Printf("Total activities collected: %d\n", result.Stats.Total)
	printSummary(result)
	return nil
}

func printScanJSON(result pipeline.Result, day time.Time) error {
	out := scanJSON{
		Date:              day.Format("2006-01-02"),
		TotalActivities:   result.Stats.Total,
		ProductivityScore: result.Stats.ProductivityScore(),
		BySource:          make(map[string]int),
		ByCategory:        make(map[string]int),
		ByHour:            make(map[string]int),
		Warnings:          result.Warnings,
	}

	if result.Stats.Total > 0 {
		out.Start = result.Stats.Start.Format(time.RFC3339)
		out.End = result.Stats.End.Format(time.RFC3339)
	}
	for source, count := range result.Stats.BySource {
		out.BySource[string(source)] = count
	}
	for category, count := range result.Stats.ByCategory {
		out.ByCategory[string(category)] = count
	}
	for hour, count := range result.Stats.ByHour {
		out.ByHour[fmt.Sprintf("%02d", hour)] = count
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
