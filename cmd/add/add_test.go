package add_test

import (
	"bytes"
	"testing"
	"time"

	"fjacquet/spendlog/cmd/add"
	"fjacquet/spendlog/cmd/common"
	"fjacquet/spendlog/cmd/root"
	"fjacquet/spendlog/internal/container"
	"fjacquet/spendlog/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 18, 12, 30, 0, 0, time.Local)

func useLedger(t *testing.T) *container.Container {
	t.Helper()
	c, err := container.NewMemoryContainer(
		container.WithLogger(logging.NewMockLogger()),
		container.WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	root.AppContainer = c
	t.Cleanup(func() { root.AppContainer = nil })
	return c
}

func run(t *testing.T, flags map[string]string) (string, string, error) {
	t.Helper()
	for _, name := range []string{"description", "amount", "category", "date", "payment"} {
		require.NoError(t, add.Cmd.Flags().Set(name, flags[name]))
	}
	var out, errOut bytes.Buffer
	add.Cmd.SetOut(&out)
	add.Cmd.SetErr(&errOut)
	err := add.Cmd.RunE(add.Cmd, nil)
	return out.String(), errOut.String(), err
}

func TestAddCommand_Metadata(t *testing.T) {
	assert.Equal(t, "add", add.Cmd.Use)
	assert.Contains(t, add.Cmd.Short, "Record a new spending transaction")
	assert.NotNil(t, add.Cmd.RunE)
}

func TestAddCommand_Flags(t *testing.T) {
	tests := []struct {
		name      string
		shorthand string
	}{
		{"description", "d"},
		{"amount", "a"},
		{"category", "c"},
		{"date", "t"},
		{"payment", "p"},
	}
	for _, tt := range tests {
		flag := add.Cmd.Flags().Lookup(tt.name)
		require.NotNil(t, flag, tt.name)
		assert.Equal(t, tt.shorthand, flag.Shorthand)
		assert.Equal(t, "", flag.DefValue)
	}
}

func TestAddCommand_RecordsTransaction(t *testing.T) {
	c := useLedger(t)

	out, _, err := run(t, map[string]string{
		"description": "Lunch at cafeteria",
		"amount":      "2500",
		"category":    "Food",
	})
	require.NoError(t, err)

	txs := c.GetStore().Load()
	require.Len(t, txs, 1)
	assert.Equal(t, "2026-10-18", txs[0].Date, "date defaults to today")
	assert.Equal(t, "2500", txs[0].Amount.String())
	assert.Contains(t, out, "Recorded "+txs[0].ID)
	assert.Contains(t, out, "2,500 FRw")
	assert.NotContains(t, out, "Hint")
}

func TestAddCommand_RejectsInvalidInput(t *testing.T) {
	c := useLedger(t)

	_, errOut, err := run(t, map[string]string{
		"description": "ab",
		"amount":      "-5",
		"category":    "Food",
		"date":        "2026-10-18",
	})
	assert.ErrorIs(t, err, common.ErrRejected)
	assert.Contains(t, errOut, "description:")
	assert.Contains(t, errOut, "amount:")
	assert.Empty(t, c.GetStore().Load())
}

func TestAddCommand_SuggestsCloseCategory(t *testing.T) {
	useLedger(t)

	_, _, err := run(t, map[string]string{
		"description": "Groceries for the week",
		"amount":      "8000",
		"category":    "Groceries",
		"date":        "2026-10-17",
	})
	require.NoError(t, err)

	out, _, err := run(t, map[string]string{
		"description": "More groceries",
		"amount":      "1200",
		"category":    "Grocerys",
		"date":        "2026-10-18",
	})
	require.NoError(t, err)
	assert.Contains(t, out, `Hint: did you mean category "Groceries"?`)
}
