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

// Execute implements the go-flags Commander interface for ListCommand.
func (c *ListCommand) Execute(args []string) error {
	store, _, err := c.globals.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	return c.executeWithStore(store)
}

// executeWithStore runs the listing against a provided store (for testing).
func (c *ListCommand) executeWithStore(store storage.Store) error {
	q := storage.ListQuery{
		Substance: c.Substance,
		Limit:     c.Limit,
		Offset:    c.Offset,
	}

	if c.Since != "" {
		dur, err := parseDuration(c.Since)
		if err != nil {
			return fmt.Errorf("invalid --since value %q: %w", c.Since, err)
		}
		q.Since = time.Now().Add(-dur)
	}

	ctx := context.Background()
	entries, err := store.List(ctx, q)
	if err != nil {
		return fmt.Errorf("list entries: %w", err)
	}

	if c.globals.JSON {
		return c.printJSON(entries)
	}
	return c.printHuman(entries)
}

func (c *ListCommand) printHuman(entries []storage.Entry) error {
	if len(entries) == 0 {
		if c.Substance != "" {
			fmt.Printf("No entries found for %q\n", c.Substance)
		} else {
			fmt.Println("No entries found")
		}
		return nil
	}

	fmt.Printf("Found %d %s\n\n", len(entries), entryWord(len(entries)))

	for i, e := range entries {
		fmt.Printf("%d. %s", i+1+c.Offset, e.Substance)
		if e.Dosage != "" {
			fmt.Printf(" \u2014 %s", e.Dosage)
		}
		fmt.Println()

		meta := e.Timestamp.Local().Format("2006-01-02 15:04")
		if len(e.Feelings) > 0 {
			meta += " \u00b7 " + strings.Join(e.Feelings, ", ")
		}
		fmt.Printf("   %s\n", meta)

		if e.Notes != "" {
			fmt.Printf("   %s\n", e.Notes)
		}
		fmt.Printf("   id: %s\n", e.ID)

		if i < len(entries)-1 {
			fmt.Println()
		}
	}

	return nil
}

type jsonListOutput struct {
	Count   int         `json:"count"`
	Entries []entryJSON `json:"entries"`
}

func (c *ListCommand) printJSON(entries []storage.Entry) error {
	out := jsonListOutput{
		Count:   len(entries),
		Entries: make([]entryJSON, len(entries)),
	}
	for i, e := range entries {
		out.Entries[i] = toEntryJSON(e)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
