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

// Execute implements the go-flags Commander interface for ImportCommand.
// The snapshot is read and checked before the prompt, so an incompatible
// file is rejected with its reason instead of asking for confirmation
// first.
func (c *ImportCommand) Execute(args []string) error {
	if c.File == "" {
		return fmt.Errorf("--file is required for import command")
	}

	blob, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}

	if check := storage.CheckSnapshot(blob); !check.Compatible {
		return fmt.Errorf("%s is not importable: %s", c.File, check.Reason)
	}

	if !c.Force {
		fmt.Println("\u26a0 WARNING: This will replace the ENTIRE journal with the snapshot.")
		fmt.Println("All current entries will be lost.")
		fmt.Println()
		fmt.Print(`Type "IMPORT" to confirm: `)

		scanner := bufio.NewScanner(os.Stdin)
		if !scanner.Scan() {
			return fmt.Errorf("aborted: no input received")
		}
		input := strings.TrimSpace(scanner.Text())
		if input != "IMPORT" {
			return fmt.Errorf("aborted: confirmation text did not match")
		}
	}

	store, _, err := c.globals.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	return c.executeWithStore(store, blob)
}

// executeWithStore runs the import against a provided store (for testing).
func (c *ImportCommand) executeWithStore(store storage.Store, blob []byte) error {
	ctx := context.Background()
	if err := store.ImportSnapshot(ctx, blob); err != nil {
		return fmt.Errorf("import snapshot: %w", err)
	}

	entries, err := store.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("verify import: %w", err)
	}

	if c.globals.JSON {
		out := map[string]interface{}{
			"imported": true,
			"file":     c.File,
			"entries":  len(entries),
		}
		enc := json.NewEncoder(os.Stdout)
		return enc.Encode(out)
	}

	fmt.Printf("Imported %s. The journal now holds %d %s.\n",
		c.File, len(entries), entryWord(len(entries)))
	return nil
}
