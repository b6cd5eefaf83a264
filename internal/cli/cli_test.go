package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionFlag(t *testing.T) {
	output, err := captureOutput(t, func() error {
		return RunWithArgs("0.1.0-test", []string{"--version"})
	})

	assert.NoError(t, err)
	assert.Contains(t, output, "doselog 0.1.0-test")
}

func TestVersionOutputFormat(t *testing.T) {
	output, _ := captureOutput(t, func() error {
		return RunWithArgs("1.2.3", []string{"--version"})
	})

	assert.Equal(t, "doselog 1.2.3", strings.TrimSpace(output))
}

func TestHelpFlagDoesNotError(t *testing.T) {
	_, err := captureOutput(t, func() error {
		return RunWithArgs("test", []string{"--help"})
	})
	assert.NoError(t, err)
}

func TestAllSubcommandsExist(t *testing.T) {
	expected := []string{
		"add", "list", "edit", "delete", "clear",
		"export", "import", "report", "suggest", "status",
	}
	parser, _, _ := buildParser("test")

	for _, name := range expected {
		cmd := parser.Find(name)
		assert.NotNil(t, cmd, "subcommand %q should exist", name)
	}
}

func TestUnknownSubcommandFails(t *testing.T) {
	parser, _, _ := buildParser("test")
	_, err := parser.ParseArgs([]string{"nonexistent"})
	require.Error(t, err)
}

// --- required-flag validation (runs before any file is touched) ---

func TestAddRequiresSubstance(t *testing.T) {
	err := RunWithArgs("test", []string{"add"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--substance is required")
}

func TestEditRequiresID(t *testing.T) {
	err := RunWithArgs("test", []string{"edit"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--id is required")
}

func TestDeleteRequiresID(t *testing.T) {
	err := RunWithArgs("test", []string{"delete"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--id is required")
}

func TestImportRequiresFile(t *testing.T) {
	err := RunWithArgs("test", []string{"import"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--file is required")
}

// --- flag parsing ---
//
// Parsing a command also executes it, so these point --config at a path
// that cannot exist: the command fails before reaching the filesystem and
// the parsed flag values stay observable on the command structs.

const missingConfig = "/nonexistent/doselog-test/config.yaml"

func TestGlobalFlagsParse(t *testing.T) {
	parser, globals, _ := buildParser("test")
	_, err := parser.ParseArgs([]string{
		"--config", missingConfig, "--db", "/tmp/x.db", "--json", "--verbose", "list",
	})

	require.Error(t, err)
	assert.Equal(t, missingConfig, globals.Config)
	assert.Equal(t, "/tmp/x.db", globals.DB)
	assert.True(t, globals.JSON)
	assert.True(t, globals.Verbose)
}

func TestListFlagDefaults(t *testing.T) {
	parser, _, cmds := buildParser("test")
	_, err := parser.ParseArgs([]string{"--config", missingConfig, "list"})

	require.Error(t, err)
	assert.Equal(t, 20, cmds.List.Limit)
	assert.Equal(t, 0, cmds.List.Offset)
	assert.Empty(t, cmds.List.Since)
}

func TestListFlags(t *testing.T) {
	parser, _, cmds := buildParser("test")
	_, err := parser.ParseArgs([]string{
		"--config", missingConfig, "list",
		"--since", "7d", "--substance", "Caffeine", "--limit", "5", "--offset", "10",
	})

	require.Error(t, err)
	assert.Equal(t, "7d", cmds.List.Since)
	assert.Equal(t, "Caffeine", cmds.List.Substance)
	assert.Equal(t, 5, cmds.List.Limit)
	assert.Equal(t, 10, cmds.List.Offset)
}

func TestAddFeelingFlagRepeatable(t *testing.T) {
	parser, _, cmds := buildParser("test")
	_, err := parser.ParseArgs([]string{
		"--config", missingConfig, "add", "--substance", "Caffeine",
		"--feeling", "focused", "--feeling", "restless",
	})

	require.Error(t, err)
	assert.Equal(t, []string{"focused", "restless"}, cmds.Add.Feelings)
}

func TestEditPointerFlagsNilWhenOmitted(t *testing.T) {
	parser, _, cmds := buildParser("test")
	_, err := parser.ParseArgs([]string{"--config", missingConfig, "edit", "--id", "x"})

	require.Error(t, err)
	assert.Nil(t, cmds.Edit.Substance)
	assert.Nil(t, cmds.Edit.Dosage)
	assert.Nil(t, cmds.Edit.Notes)
	assert.Nil(t, cmds.Edit.Time)
}

func TestEditPointerFlagsSetWhenProvided(t *testing.T) {
	parser, _, cmds := buildParser("test")
	_, err := parser.ParseArgs([]string{
		"--config", missingConfig, "edit", "--id", "x", "--notes", "",
	})

	require.Error(t, err)
	require.NotNil(t, cmds.Edit.Notes)
	assert.Equal(t, "", *cmds.Edit.Notes)
}

func TestReportFlags(t *testing.T) {
	parser, _, cmds := buildParser("test")
	_, err := parser.ParseArgs([]string{
		"--config", missingConfig, "report",
		"--days", "7", "--out", "/tmp/charts", "--substance", "Alcohol", "--all-time",
	})

	require.Error(t, err)
	assert.Equal(t, 7, cmds.Report.Days)
	assert.Equal(t, "/tmp/charts", cmds.Report.OutDir)
	assert.Equal(t, "Alcohol", cmds.Report.Substance)
	assert.True(t, cmds.Report.AllTime)
}

// --- end to end through the parser ---

func TestAddThenListRoundTrip(t *testing.T) {
	cfgPath, _ := writeTestConfig(t)

	output, err := captureOutput(t, func() error {
		return RunWithArgs("test", []string{"--config", cfgPath, "add",
			"--substance", "Caffeine", "--dosage", "100mg",
			"--feeling", "focused", "--notes", "morning coffee"})
	})
	require.NoError(t, err)
	assert.Contains(t, output, "Logged Caffeine (100mg)")

	output, err = captureOutput(t, func() error {
		return RunWithArgs("test", []string{"--config", cfgPath, "--json", "list"})
	})
	require.NoError(t, err)

	var listed jsonListOutput
	require.NoError(t, json.Unmarshal([]byte(output), &listed))
	require.Equal(t, 1, listed.Count)
	assert.Equal(t, "Caffeine", listed.Entries[0].Substance)
	assert.Equal(t, "100mg", listed.Entries[0].Dosage)
	assert.Equal(t, []string{"focused"}, listed.Entries[0].Feelings)
	assert.Equal(t, "morning coffee", listed.Entries[0].Notes)
	assert.NotEmpty(t, listed.Entries[0].ID)
}

func TestDeleteEndToEnd(t *testing.T) {
	cfgPath, _ := writeTestConfig(t)

	_, err := captureOutput(t, func() error {
		return RunWithArgs("test", []string{"--config", cfgPath, "add", "--substance", "Nicotine"})
	})
	require.NoError(t, err)

	output, err := captureOutput(t, func() error {
		return RunWithArgs("test", []string{"--config", cfgPath, "--json", "list"})
	})
	require.NoError(t, err)
	var listed jsonListOutput
	require.NoError(t, json.Unmarshal([]byte(output), &listed))
	require.Equal(t, 1, listed.Count)

	_, err = captureOutput(t, func() error {
		return RunWithArgs("test", []string{"--config", cfgPath, "delete", "--id", listed.Entries[0].ID})
	})
	require.NoError(t, err)

	output, err = captureOutput(t, func() error {
		return RunWithArgs("test", []string{"--config", cfgPath, "list"})
	})
	require.NoError(t, err)
	assert.Contains(t, output, "No entries found")
}
