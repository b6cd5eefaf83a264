package cli

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	DB      string `long:"db" description:"Path to database file (overrides config)" default:""`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `long:"verbose" description:"Enable debug logging"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// AddCommand — log a new journal entry.
type AddCommand struct {
	Substance string   `long:"substance" description:"Substance name (required)"`
	Dosage    string   `long:"dosage" description:"Dosage label, e.g. 100mg or 'one beer'"`
	Feelings  []string `long:"feeling" description:"Feeling tag (repeatable)"`
	Notes     string   `long:"notes" description:"Free-form notes"`
	Time      string   `long:"time" description:"Entry time, RFC3339 or '2006-01-02 15:04' (default: now)"`

	globals *GlobalFlags
	version string
}

// ListCommand — list recent entries with optional filters.
type ListCommand struct {
	Since     string `long:"since" description:"Only entries newer than duration (e.g., 7d, 24h, 2w)"`
	Substance string `long:"substance" description:"Filter by substance"`
	Limit     int    `long:"limit" description:"Maximum entries" default:"20"`
	Offset    int    `long:"offset" description:"Skip first N entries" default:"0"`

	globals *GlobalFlags
	version string
}

// EditCommand — change fields of an existing entry. Pointer flags
// distinguish "not provided" from "set to empty", so only the flags the
// user passed touch the entry.
type EditCommand struct {
	ID            string   `long:"id" description:"Entry ID (required)"`
	Substance     *string  `long:"substance" description:"New substance name"`
	Dosage        *string  `long:"dosage" description:"New dosage label"`
	Feelings      []string `long:"feeling" description:"Replacement feeling tag (repeatable)"`
	Notes         *string  `long:"notes" description:"New notes"`
	Time          *string  `long:"time" description:"New entry time, RFC3339 or '2006-01-02 15:04'"`
	ClearFeelings bool     `long:"clear-feelings" description:"Remove all feeling tags"`

	globals *GlobalFlags
	version string
}

// DeleteCommand — remove a single entry by ID.
type DeleteCommand struct {
	ID string `long:"id" description:"Entry ID (required)"`

	globals *GlobalFlags
	version string
}

// ClearCommand — delete ALL entries with safety confirmation.
type ClearCommand struct {
	Force bool `long:"force" description:"Skip safety confirmation prompt"`

	globals *GlobalFlags
	version string
}

// ExportCommand — write the journal to a snapshot file.
type ExportCommand struct {
	Out string `long:"out" description:"Output file (default: doselog-export-<date>.db)"`

	globals *GlobalFlags
	version string
}

// ImportCommand — replace the journal from a snapshot file.
type ImportCommand struct {
	File  string `long:"file" description:"Snapshot file to import (required)"`
	Force bool   `long:"force" description:"Skip safety confirmation prompt"`

	globals *GlobalFlags
	version string
}

// ReportCommand — aggregate the journal and render trend charts.
type ReportCommand struct {
	Days      int    `long:"days" description:"Window size in days (default: config report.days)"`
	OutDir    string `long:"out" description:"Directory for the rendered SVG files (default: config report.out_dir)"`
	Substance string `long:"substance" description:"Restrict the feelings chart to one substance"`
	AllTime   bool   `long:"all-time" description:"Count charts cover all entries instead of the window"`

	globals *GlobalFlags
	version string
}

// SuggestCommand — print the configured suggestion tables.
type SuggestCommand struct {
	globals *GlobalFlags
	version string
}

// StatusCommand — show database statistics and configuration summary.
type StatusCommand struct {
	globals *GlobalFlags
	version string
}
