package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/runnerr0/doselog/internal/storage"
)

// Execute implements the go-flags Commander interface for AddCommand.
func (c *AddCommand) Execute(args []string) error {
	if c.Substance == "" {
		return fmt.Errorf("--substance is required for add command")
	}

	store, _, err := c.globals.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	return c.executeWithStore(store)
}

// executeWithStore runs the add logic against a provided store (used by tests).
func (c *AddCommand) executeWithStore(store storage.Store) error {
	ts := time.Now()
	if c.Time != "" {
		var err error
		ts, err = parseTime(c.Time)
		if err != nil {
			return err
		}
	}

	entry := &storage.Entry{
		Substance: strings.TrimSpace(c.Substance),
		Dosage:    strings.TrimSpace(c.Dosage),
		Notes:     c.Notes,
		Feelings:  normalizeFeelings(c.Feelings),
		Timestamp: ts,
	}

	ctx := context.Background()
	if err := store.Create(ctx, entry); err != nil {
		return fmt.Errorf("storing entry: %w", err)
	}

	slog.Debug("entry created",
		slog.String("id", entry.ID), slog.String("substance", entry.Substance))

	if c.globals.JSON {
		return printEntryJSON(*entry)
	}

	printEntryHuman("Logged", *entry)
	return nil
}
