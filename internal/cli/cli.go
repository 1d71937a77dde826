package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Scan   *ScanCommand
	Report *ReportCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "daylog"
	parser.LongDescription = "Reconstruct a day's digital activity from local browser, git, and AI chat history."

	cmds := &commands{
		Scan:   &ScanCommand{globals: &globals, version: version},
		Report: &ReportCommand{globals: &globals, version: version},
	}

	parser.AddCommand("scan", "Collect a day's activity", "Collect the day's activity from all enabled sources and print a summary.", cmds.Scan)
	parser.AddCommand("report", "Generate the daily report", "Collect the day's activity and write the Markdown daily report.", cmds.Report)

	return parser, &globals, cmds
}

// Run is the main entry point for the DayLog CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	// Handle --version before parser (go-flags requires a subcommand, but
	// --version is valid without one).
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("daylog %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}
