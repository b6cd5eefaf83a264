package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/runnerr0/doselog/internal/storage"
)

// Execute implements the go-flags Commander interface for DeleteCommand.
func (c *DeleteCommand) Execute(args []string) error {
	if c.ID == "" {
		return fmt.Errorf("--id is required for delete command")
	}

	store, _, err := c.globals.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	return c.executeWithStore(store)
}

// executeWithStore runs the delete against a provided store (for testing).
func (c *DeleteCommand) executeWithStore(store storage.Store) error {
	ctx := context.Background()
	if err := store.Delete(ctx, c.ID); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}

	if c.globals.JSON {
		out := map[string]interface{}{
			"deleted": true,
			"id":      c.ID,
		}
		enc := json.NewEncoder(os.Stdout)
		return enc.Encode(out)
	}

	fmt.Printf("Deleted entry %s\n", c.ID)
	return nil
}
