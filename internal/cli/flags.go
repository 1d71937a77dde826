package cli

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `long:"verbose" description:"Enable verbose output"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// ScanCommand — collect the day's activity and print a console summary.
type ScanCommand struct {
	Date string `long:"date" description:"Date to process (YYYY-MM-DD), defaults to today"`

	globals *GlobalFlags
	version string
}

// ReportCommand — collect the day's activity and write the Markdown report.
type ReportCommand struct {
	Date   string `long:"date" description:"Date to process (YYYY-MM-DD), defaults to today"`
	Output string `long:"output" description:"Override report output directory"`

	globals *GlobalFlags
	version string
}
