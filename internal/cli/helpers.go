package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/runnerr0/doselog/internal/config"
	"github.com/runnerr0/doselog/internal/storage"
)

// loadConfig resolves the configuration (explicit --config path, or the
// default location with first-run creation) and installs the logger.
func (g *GlobalFlags) loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error

	if g.Config != "" {
		cfg, err = config.Load(g.Config)
	} else {
		cfg, err = config.LoadOrCreate()
	}
	if err != nil {
		return nil, err
	}

	setupLogger(cfg.Logging, g.Verbose)
	return cfg, nil
}

// databasePath resolves the database location: the --db override wins,
// otherwise the config's storage section decides.
func (g *GlobalFlags) databasePath(cfg *config.Config) (string, error) {
	if g.DB != "" {
		return g.DB, nil
	}
	return cfg.DatabasePath()
}

// openStore loads the config and opens the journal database, running
// migrations as needed.
func (g *GlobalFlags) openStore() (*storage.SQLiteStore, *config.Config, error) {
	cfg, err := g.loadConfig()
	if err != nil {
		return nil, nil, err
	}

	path, err := g.databasePath(cfg)
	if err != nil {
		return nil, nil, err
	}

	store, err := storage.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open journal: %w", err)
	}

	return store, cfg, nil
}

// parseDuration parses a human-friendly duration string like "30d", "7d", "24h", "2w".
func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, fmt.Errorf("invalid duration: empty string")
	}

	if len(s) < 2 {
		return 0, fmt.Errorf("invalid duration: %q", s)
	}

	suffix := s[len(s)-1]
	numStr := s[:len(s)-1]

	n, err := strconv.Atoi(numStr)
	if err != nil {
		return 0, fmt.Errorf("invalid duration: %q", s)
	}

	switch suffix {
	case 'd':
		return time.Duration(n) * 24 * time.Hour, nil
	case 'h':
		return time.Duration(n) * time.Hour, nil
	case 'w':
		return time.Duration(n) * 7 * 24 * time.Hour, nil
	case 'm':
		return time.Duration(n) * time.Minute, nil
	default:
		return 0, fmt.Errorf("invalid duration: %q (use d, h, w, or m suffix)", s)
	}
}

// parseTime parses an entry timestamp from the formats the add and edit
// commands accept. Formats without a zone are read in local time.
func parseTime(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339,
		"2006-01-02 15:04",
		"2006-01-02",
	}
	for _, f := range formats {
		if t, err := time.ParseInLocation(f, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q (use RFC3339 or \"2006-01-02 15:04\")", s)
}

// normalizeFeelings trims each tag and drops empties, preserving order.
func normalizeFeelings(feelings []string) []string {
	out := make([]string, 0, len(feelings))
	for _, f := range feelings {
		f = strings.TrimSpace(f)
		if f != "" {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// entryWord returns "entry" or "entries" for a count.
func entryWord(n int) string {
	if n == 1 {
		return "entry"
	}
	return "entries"
}

// entryJSON is the machine-output shape of a single entry.
type entryJSON struct {
	ID        string   `json:"id"`
	Substance string   `json:"substance"`
	Dosage    string   `json:"dosage,omitempty"`
	Feelings  []string `json:"feelings,omitempty"`
	Notes     string   `json:"notes,omitempty"`
	Timestamp string   `json:"timestamp"`
}

func toEntryJSON(e storage.Entry) entryJSON {
	return entryJSON{
		ID:        e.ID,
		Substance: e.Substance,
		Dosage:    e.Dosage,
		Feelings:  e.Feelings,
		Notes:     e.Notes,
		Timestamp: e.Timestamp.UTC().Format(time.RFC3339),
	}
}

func printEntryJSON(e storage.Entry) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(toEntryJSON(e))
}

// printEntryHuman prints one entry as an action line plus detail lines
// for the fields that are set.
func printEntryHuman(action string, e storage.Entry) {
	fmt.Printf("%s %s", action, e.Substance)
	if e.Dosage != "" {
		fmt.Printf(" (%s)", e.Dosage)
	}
	fmt.Printf(" at %s\n", e.Timestamp.Local().Format("2006-01-02 15:04"))
	fmt.Printf("  ID: %s\n", e.ID)
	if len(e.Feelings) > 0 {
		fmt.Printf("  Feelings: %s\n", strings.Join(e.Feelings, ", "))
	}
	if e.Notes != "" {
		fmt.Printf("  Notes: %s\n", e.Notes)
	}
}
