package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/runnerr0/doselog/internal/storage"
)

// Execute implements the go-flags Commander interface for ClearCommand.
// The confirmation runs before the database is touched, so an aborted
// clear never even opens the store.
func (c *ClearCommand) Execute(args []string) error {
	// Confirmation prompt unless --force
	if !c.Force {
		fmt.Println("\u26a0 WARNING: This will permanently delete ALL journal entries.")
		fmt.Println()
		fmt.Println("This action cannot be undone.")
		fmt.Println()
		fmt.Print(`Type "CLEAR" to confirm: `)

		scanner := bufio.NewScanner(os.Stdin)
		if !scanner.Scan() {
			return fmt.Errorf("aborted: no input received")
		}
		input := strings.TrimSpace(scanner.Text())
		if input != "CLEAR" {
			return fmt.Errorf("aborted: confirmation text did not match")
		}
	}

	store, _, err := c.globals.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	return c.executeWithStore(store)
}

// executeWithStore runs the clear against a provided store (for testing).
func (c *ClearCommand) executeWithStore(store storage.Store) error {
	ctx := context.Background()
	if err := store.Clear(ctx); err != nil {
		return fmt.Errorf("clear journal: %w", err)
	}

	if c.globals.JSON {
		out := map[string]interface{}{
			"cleared": true,
			"message": "all entries deleted",
		}
		enc := json.NewEncoder(os.Stdout)
		return enc.Encode(out)
	}

	fmt.Println("Cleared all entries. The journal is empty.")
	return nil
}
