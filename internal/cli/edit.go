package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/runnerr0/doselog/internal/storage"
)

// Execute implements the go-flags Commander interface for EditCommand.
func (c *EditCommand) Execute(args []string) error {
	if c.ID == "" {
		return fmt.Errorf("--id is required for edit command")
	}

	store, _, err := c.globals.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	return c.executeWithStore(store)
}

// executeWithStore runs the edit logic against a provided store (for testing).
// The entry is loaded first so unprovided flags keep their current values.
func (c *EditCommand) executeWithStore(store storage.Store) error {
	ctx := context.Background()

	entry, err := store.Get(ctx, c.ID)
	if err != nil {
		return fmt.Errorf("load entry: %w", err)
	}

	if c.Substance != nil {
		entry.Substance = strings.TrimSpace(*c.Substance)
	}
	if c.Dosage != nil {
		entry.Dosage = strings.TrimSpace(*c.Dosage)
	}
	if c.Notes != nil {
		entry.Notes = *c.Notes
	}
	if c.Time != nil {
		ts, err := parseTime(*c.Time)
		if err != nil {
			return err
		}
		entry.Timestamp = ts
	}
	if c.ClearFeelings {
		entry.Feelings = nil
	} else if len(c.Feelings) > 0 {
		entry.Feelings = normalizeFeelings(c.Feelings)
	}

	if err := store.Update(ctx, entry); err != nil {
		return fmt.Errorf("update entry: %w", err)
	}

	slog.Debug("entry updated", slog.String("id", entry.ID))

	if c.globals.JSON {
		return printEntryJSON(*entry)
	}

	printEntryHuman("Updated", *entry)
	return nil
}
