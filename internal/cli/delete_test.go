package cli

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/doselog/internal/storage"
)

func TestDeleteCommand_RemovesEntry(t *testing.T) {
	store := openTestStore(t)
	keep := seed(t, store, storage.Entry{Substance: "Caffeine", Timestamp: ts(2)})
	gone := seed(t, store, storage.Entry{Substance: "Alcohol", Timestamp: ts(1)})

	cmd := &DeleteCommand{ID: gone.ID, globals: &GlobalFlags{}}
	output, err := captureOutput(t, func() error {
		return cmd.executeWithStore(store)
	})
	require.NoError(t, err)
	assert.Contains(t, output, "Deleted entry "+gone.ID)

	entries, err := store.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, keep.ID, entries[0].ID)
}

func TestDeleteCommand_UnknownID(t *testing.T) {
	store := openTestStore(t)

	cmd := &DeleteCommand{ID: "no-such-entry", globals: &GlobalFlags{}}
	err := cmd.executeWithStore(store)
	require.Error(t, err)
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestDeleteCommand_RequiresID(t *testing.T) {
	cmd := &DeleteCommand{globals: &GlobalFlags{}}

	err := cmd.Execute(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--id is required")
}

func TestDeleteCommand_JSONOutput(t *testing.T) {
	store := openTestStore(t)
	entry := seed(t, store, storage.Entry{Substance: "Caffeine", Timestamp: ts(1)})

	cmd := &DeleteCommand{ID: entry.ID, globals: &GlobalFlags{JSON: true}}
	output, err := captureOutput(t, func() error {
		return cmd.executeWithStore(store)
	})
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(output), &got))
	assert.Equal(t, true, got["deleted"])
	assert.Equal(t, entry.ID, got["id"])
}
