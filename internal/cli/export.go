package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/runnerr0/doselog/internal/storage"
)

// Execute implements the go-flags Commander interface for ExportCommand.
func (c *ExportCommand) Execute(args []string) error {
	store, _, err := c.globals.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	return c.executeWithStore(store)
}

// executeWithStore runs the export against a provided store (for testing).
func (c *ExportCommand) executeWithStore(store storage.Store) error {
	out := c.Out
	if out == "" {
		out = fmt.Sprintf("doselog-export-%s.db", time.Now().Format("2006-01-02"))
	}

	ctx := context.Background()
	blob, err := store.ExportSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("export snapshot: %w", err)
	}

	// The snapshot is the whole journal; keep it private to the owner.
	if err := os.WriteFile(out, blob, 0600); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	if c.globals.JSON {
		o := map[string]interface{}{
			"file":  out,
			"bytes": len(blob),
		}
		enc := json.NewEncoder(os.Stdout)
		return enc.Encode(o)
	}

	fmt.Printf("Exported journal to %s (%s)\n", out, formatBytes(int64(len(blob))))
	return nil
}
