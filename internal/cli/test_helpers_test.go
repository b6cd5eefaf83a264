package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/runnerr0/doselog/internal/config"
	"github.com/runnerr0/doselog/internal/storage"
)

// openTestStore creates a migrated journal database in a temp directory.
func openTestStore(t *testing.T) *storage.SQLiteStore {
	t.Helper()

	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

// seed inserts an entry and returns it with its assigned id.
func seed(t *testing.T, store *storage.SQLiteStore, e storage.Entry) storage.Entry {
	t.Helper()

	require.NoError(t, store.Create(context.Background(), &e))
	return e
}

// captureOutput redirects stdout around fn and returns what was printed.
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fnErr := fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String(), fnErr
}

// swapStdin replaces os.Stdin with a pipe carrying the given input for
// the duration of the test.
func swapStdin(t *testing.T, input string) {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	_, err = w.WriteString(input)
	require.NoError(t, err)
	w.Close()

	old := os.Stdin
	os.Stdin = r
	t.Cleanup(func() { os.Stdin = old })
}

// testConfig returns the default config with storage and report output
// pointed into a temp directory and logging quieted.
func testConfig(t *testing.T) *config.Config {
	t.Helper()

	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Storage.Path = dir
	cfg.Report.OutDir = dir
	cfg.Logging.Level = "error"
	return cfg
}

// writeTestConfig writes a hermetic config file for end-to-end runs and
// returns its path plus the directory the database lands in.
func writeTestConfig(t *testing.T) (string, string) {
	t.Helper()

	cfg := testConfig(t)
	dir := cfg.Storage.Path

	data, err := yaml.Marshal(cfg)
	require.NoError(t, err)

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path, dir
}

// ts builds a timestamp relative to now, h hours in the past.
func ts(h int) time.Time {
	return time.Now().Add(-time.Duration(h) * time.Hour)
}
