package export_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fjacquet/spendlog/cmd/export"
	"fjacquet/spendlog/cmd/root"
	"fjacquet/spendlog/internal/container"
	"fjacquet/spendlog/internal/logging"
	"fjacquet/spendlog/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T) *container.Container {
	t.Helper()
	now := time.Date(2026, 10, 18, 12, 30, 0, 0, time.UTC)
	c, err := container.NewMemoryContainer(
		container.WithLogger(logging.NewMockLogger()),
		container.WithClock(func() time.Time { return now }))
	require.NoError(t, err)
	root.AppContainer = c
	t.Cleanup(func() { root.AppContainer = nil })

	_, err = c.GetStore().Add(models.TransactionFields{
		Description: "Coffee beans", Amount: decimal.RequireFromString("3500"), Category: "Food", Date: "2026-10-01",
	})
	require.NoError(t, err)
	return c
}

func run(t *testing.T, flags map[string]string) (string, error) {
	t.Helper()
	defaults := map[string]string{"format": "json", "dir": "", "stdout": "false"}
	for name, value := range defaults {
		if v, ok := flags[name]; ok {
			value = v
		}
		require.NoError(t, export.Cmd.Flags().Set(name, value))
	}
	var out bytes.Buffer
	export.Cmd.SetOut(&out)
	err := export.Cmd.RunE(export.Cmd, nil)
	return out.String(), err
}

func TestExportCommand_Flags(t *testing.T) {
	assert.Equal(t, "json", export.Cmd.Flags().Lookup("format").DefValue)
	assert.Equal(t, "", export.Cmd.Flags().Lookup("dir").DefValue)
	assert.Equal(t, "false", export.Cmd.Flags().Lookup("stdout").DefValue)
}

func TestExportCommand_JSONFile(t *testing.T) {
	seed(t)
	dir := t.TempDir()

	out, err := run(t, map[string]string{"dir": dir})
	require.NoError(t, err)

	path := filepath.Join(dir, "spendlog-export-20261018T123000Z.json")
	assert.Contains(t, out, "Exported 1 transaction(s) to "+path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var snap models.Snapshot
	require.NoError(t, json.Unmarshal(data, &snap))
	assert.Equal(t, models.SchemaVersion, snap.Version)
	require.Len(t, snap.Transactions, 1)
	assert.Equal(t, "Coffee beans", snap.Transactions[0].Description)
}

func TestExportCommand_CSVUsesConfiguredDir(t *testing.T) {
	c := seed(t)
	dir := filepath.Join(t.TempDir(), "exports")
	c.GetConfig().Export.Dir = dir

	_, err := run(t, map[string]string{"format": "csv"})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "spendlog-export-20261018T123000Z.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "Coffee beans")
}

func TestExportCommand_Stdout(t *testing.T) {
	seed(t)
	out, err := run(t, map[string]string{"stdout": "true"})
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)))
	assert.Contains(t, out, `"version": "1.0.0"`)
}

func TestExportCommand_UnknownFormat(t *testing.T) {
	seed(t)
	_, err := run(t, map[string]string{"format": "xml"})
	assert.ErrorContains(t, err, "unknown export format")
}
