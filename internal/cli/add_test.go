package cli

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCommand_CreatesEntry(t *testing.T) {
	store := openTestStore(t)

	cmd := &AddCommand{
		Substance: "Caffeine",
		Dosage:    "100mg",
		Feelings:  []string{"focused", "restless"},
		Notes:     "skipped breakfast",
		globals:   &GlobalFlags{},
	}

	output, err := captureOutput(t, func() error {
		return cmd.executeWithStore(store)
	})
	require.NoError(t, err)
	assert.Contains(t, output, "Logged Caffeine (100mg)")
	assert.Contains(t, output, "Feelings: focused, restless")
	assert.Contains(t, output, "Notes: skipped breakfast")

	entries, err := store.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotEmpty(t, entries[0].ID)
	assert.Equal(t, "Caffeine", entries[0].Substance)
	assert.Equal(t, "100mg", entries[0].Dosage)
	assert.Equal(t, []string{"focused", "restless"}, entries[0].Feelings)
	assert.Equal(t, "skipped breakfast", entries[0].Notes)
	assert.False(t, entries[0].Timestamp.IsZero())
}

func TestAddCommand_JSONOutput(t *testing.T) {
	store := openTestStore(t)

	cmd := &AddCommand{
		Substance: "Alcohol",
		Dosage:    "one beer",
		globals:   &GlobalFlags{JSON: true},
	}

	output, err := captureOutput(t, func() error {
		return cmd.executeWithStore(store)
	})
	require.NoError(t, err)

	var got entryJSON
	require.NoError(t, json.Unmarshal([]byte(output), &got))
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "Alcohol", got.Substance)
	assert.Equal(t, "one beer", got.Dosage)
	assert.NotEmpty(t, got.Timestamp)
}

func TestAddCommand_ParsesExplicitTime(t *testing.T) {
	store := openTestStore(t)

	cmd := &AddCommand{
		Substance: "Caffeine",
		Time:      "2026-03-01 09:30",
		globals:   &GlobalFlags{},
	}

	_, err := captureOutput(t, func() error {
		return cmd.executeWithStore(store)
	})
	require.NoError(t, err)

	entries, err := store.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)

	want := time.Date(2026, 3, 1, 9, 30, 0, 0, time.Local)
	assert.True(t, entries[0].Timestamp.Equal(want),
		"stored %s, want %s", entries[0].Timestamp, want)
}

func TestAddCommand_RejectsInvalidTime(t *testing.T) {
	store := openTestStore(t)

	cmd := &AddCommand{
		Substance: "Caffeine",
		Time:      "yesterday-ish",
		globals:   &GlobalFlags{},
	}

	err := cmd.executeWithStore(store)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid time")

	entries, err := store.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAddCommand_RequiresSubstance(t *testing.T) {
	cmd := &AddCommand{globals: &GlobalFlags{}}

	err := cmd.Execute(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--substance is required")
}

func TestAddCommand_NormalizesFeelings(t *testing.T) {
	store := openTestStore(t)

	cmd := &AddCommand{
		Substance: "Cannabis",
		Feelings:  []string{"  relaxed  ", "", "sleepy"},
		globals:   &GlobalFlags{},
	}

	_, err := captureOutput(t, func() error {
		return cmd.executeWithStore(store)
	})
	require.NoError(t, err)

	entries, err := store.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, []string{"relaxed", "sleepy"}, entries[0].Feelings)
}

func TestAddCommand_FreeTextSubstanceAccepted(t *testing.T) {
	store := openTestStore(t)

	// The suggestion tables are aids, not a whitelist.
	cmd := &AddCommand{
		Substance: "Yerba Mate",
		globals:   &GlobalFlags{},
	}

	_, err := captureOutput(t, func() error {
		return cmd.executeWithStore(store)
	})
	require.NoError(t, err)

	entries, err := store.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Yerba Mate", entries[0].Substance)
}
