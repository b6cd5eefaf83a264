package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/runnerr0/doselog/internal/storage"
)

// statusJSON is the JSON output structure for the status command.
type statusJSON struct {
	Version            string               `json:"version"`
	DatabasePath       string               `json:"database_path"`
	DatabaseSizeBytes  int64                `json:"database_size_bytes"`
	TotalEntries       int64                `json:"total_entries"`
	DistinctSubstances int64                `json:"distinct_substances"`
	OldestEntry        string               `json:"oldest_entry,omitempty"`
	NewestEntry        string               `json:"newest_entry,omitempty"`
	SchemaVersion      int                  `json:"schema_version"`
	TopSubstances      []substanceCountJSON `json:"top_substances"`
}

type substanceCountJSON struct {
	Substance string `json:"substance"`
	Count     int64  `json:"count"`
}

// Execute implements the go-flags Commander interface for StatusCommand.
func (c *StatusCommand) Execute(args []string) error {
	store, cfg, err := c.globals.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	dbPath, err := c.globals.databasePath(cfg)
	if err != nil {
		return err
	}

	return c.executeWithStore(store, dbPath)
}

// executeWithStore runs status against a provided store (for testing).
func (c *StatusCommand) executeWithStore(store storage.Store, dbPath string) error {
	ctx := context.Background()

	stats, err := store.Stats(ctx)
	if err != nil {
		return fmt.Errorf("get stats: %w", err)
	}

	dbSize := databaseSize(dbPath)

	if c.globals.JSON {
		return c.printStatusJSON(stats, dbPath, dbSize)
	}
	return c.printStatusHuman(stats, dbPath, dbSize)
}

func (c *StatusCommand) printStatusHuman(stats *storage.Stats, dbPath string, dbSize int64) error {
	fmt.Println("Doselog Status")
	fmt.Println("==============")
	fmt.Printf("Version:       %s\n", c.version)
	fmt.Printf("Database:      %s (%s)\n", dbPath, formatBytes(dbSize))
	fmt.Printf("Entries:       %s\n", formatNumber(stats.TotalEntries))
	fmt.Printf("Substances:    %s distinct\n", formatNumber(stats.DistinctSubstances))

	if stats.TotalEntries > 0 {
		fmt.Printf("Oldest:        %s\n", stats.OldestEntry.Local().Format("2006-01-02"))
		fmt.Printf("Newest:        %s\n", stats.NewestEntry.Local().Format("2006-01-02"))
	}

	fmt.Printf("Schema:        v%d\n", stats.SchemaVersion)

	if len(stats.TopSubstances) > 0 {
		fmt.Println()
		fmt.Println("Top Substances:")
		for _, s := range stats.TopSubstances {
			fmt.Printf("  %-20s %s\n", s.Substance, formatNumber(s.Count))
		}
	}

	return nil
}

func (c *StatusCommand) printStatusJSON(stats *storage.Stats, dbPath string, dbSize int64) error {
	out := statusJSON{
		Version:            c.version,
		DatabasePath:       dbPath,
		DatabaseSizeBytes:  dbSize,
		TotalEntries:       stats.TotalEntries,
		DistinctSubstances: stats.DistinctSubstances,
		SchemaVersion:      stats.SchemaVersion,
		TopSubstances:      make([]substanceCountJSON, len(stats.TopSubstances)),
	}

	if stats.TotalEntries > 0 {
		out.OldestEntry = stats.OldestEntry.UTC().Format(time.RFC3339)
		out.NewestEntry = stats.NewestEntry.UTC().Format(time.RFC3339)
	}

	for i, s := range stats.TopSubstances {
		out.TopSubstances[i] = substanceCountJSON{Substance: s.Substance, Count: s.Count}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// databaseSize returns the database file size in bytes, 0 if the file
// cannot be statted.
func databaseSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}

// formatBytes formats a byte count into a human-readable string.
func formatBytes(b int64) string {
	switch {
	case b >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(b)/float64(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/float64(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

// formatNumber formats an int64 with comma separators.
func formatNumber(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
		if len(s) > remainder {
			result.WriteString(",")
		}
	}
	for i := remainder; i < len(s); i += 3 {
		if i > remainder {
			result.WriteString(",")
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}
