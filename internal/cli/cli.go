// Package cli implements the doselog command line interface on top of
// go-flags subcommands. Commands split wiring from logic: Execute resolves
// the config and opens the store, then hands off to an executeWithStore
// method that tests call directly with an injected store.
package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Add     *AddCommand
	List    *ListCommand
	Edit    *EditCommand
	Delete  *DeleteCommand
	Clear   *ClearCommand
	Export  *ExportCommand
	Import  *ImportCommand
	Report  *ReportCommand
	Suggest *SuggestCommand
	Status  *StatusCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "doselog"
	parser.LongDescription = "Privacy-first local journal for logging substance use and charting trends."

	cmds := &commands{
		Add:     &AddCommand{globals: &globals, version: version},
		List:    &ListCommand{globals: &globals, version: version},
		Edit:    &EditCommand{globals: &globals, version: version},
		Delete:  &DeleteCommand{globals: &globals, version: version},
		Clear:   &ClearCommand{globals: &globals, version: version},
		Export:  &ExportCommand{globals: &globals, version: version},
		Import:  &ImportCommand{globals: &globals, version: version},
		Report:  &ReportCommand{globals: &globals, version: version},
		Suggest: &SuggestCommand{globals: &globals, version: version},
		Status:  &StatusCommand{globals: &globals, version: version},
	}

	parser.AddCommand("add", "Log a new entry", "Log a new journal entry with substance, dosage, feelings, and notes.", cmds.Add)
	parser.AddCommand("list", "List recent entries", "List recent journal entries, optionally filtered by substance and time window.", cmds.List)
	parser.AddCommand("edit", "Edit an existing entry", "Edit fields of an existing entry by ID. Only the provided flags change fields.", cmds.Edit)
	parser.AddCommand("delete", "Delete a single entry", "Delete a single journal entry by ID.", cmds.Delete)
	parser.AddCommand("clear", "Delete ALL entries", "Delete ALL journal entries. Destructive operation with safety prompt.", cmds.Clear)
	parser.AddCommand("export", "Export the journal to a file", "Export the journal database to a standalone snapshot file.", cmds.Export)
	parser.AddCommand("import", "Replace the journal from a file", "Replace the entire journal with a previously exported snapshot. Destructive operation with safety prompt.", cmds.Import)
	parser.AddCommand("report", "Render trend charts", "Aggregate the journal and render usage, frequency, and feelings charts as SVG files.", cmds.Report)
	parser.AddCommand("suggest", "Show suggested substances, feelings, and dosages", "Show the configured suggestion tables: substances, feelings, and per-substance dosage options with weights.", cmds.Suggest)
	parser.AddCommand("status", "Show journal statistics", "Show database location, size, entry statistics, and schema version.", cmds.Status)

	return parser, &globals, cmds
}

// Run is the main entry point for the doselog CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the
// matched subcommand.
func RunWithArgs(version string, args []string) error {
	// Handle --version before parsing (go-flags requires a subcommand, but
	// --version is valid without one).
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("doselog %s\n", version)
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
