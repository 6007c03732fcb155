package update_test

import (
	"bytes"
	"testing"
	"time"

	"fjacquet/spendlog/cmd/common"
	"fjacquet/spendlog/cmd/root"
	"fjacquet/spendlog/cmd/update"
	"fjacquet/spendlog/internal/container"
	"fjacquet/spendlog/internal/ledgererror"
	"fjacquet/spendlog/internal/logging"
	"fjacquet/spendlog/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateCommand_Metadata(t *testing.T) {
	assert.Equal(t, "update ID", update.Cmd.Use)
	for _, name := range []string{"description", "amount", "category", "date", "payment"} {
		flag := update.Cmd.Flags().Lookup(name)
		require.NotNil(t, flag, name)
		assert.Equal(t, "", flag.DefValue)
	}
}

// Flag "changed" state sticks to the package-level command, so the steps
// run in sequence against one ledger.
func TestUpdateCommand(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 30, 0, 0, time.Local)
	clock := now
	c, err := container.NewMemoryContainer(
		container.WithLogger(logging.NewMockLogger()),
		container.WithClock(func() time.Time { return clock }))
	require.NoError(t, err)
	root.AppContainer = c
	defer func() { root.AppContainer = nil }()

	tx, err := c.GetStore().Add(models.TransactionFields{
		Description: "Groceries",
		Amount:      decimal.NewFromInt(12000),
		Category:    "Food",
		Date:        "2026-10-10",
	})
	require.NoError(t, err)

	var out, errOut bytes.Buffer
	update.Cmd.SetOut(&out)
	update.Cmd.SetErr(&errOut)

	t.Run("no flags", func(t *testing.T) {
		err := update.Cmd.RunE(update.Cmd, []string{tx.ID})
		assert.ErrorIs(t, err, update.ErrNothingToUpdate)
	})

	t.Run("invalid amount is rejected", func(t *testing.T) {
		require.NoError(t, update.Cmd.Flags().Set("amount", "abc"))
		err := update.Cmd.RunE(update.Cmd, []string{tx.ID})
		assert.ErrorIs(t, err, common.ErrRejected)
		assert.Contains(t, errOut.String(), "amount:")
		got, _ := c.GetStore().GetByID(tx.ID)
		assert.Equal(t, "12000", got.Amount.String())
	})

	t.Run("only changed fields are applied", func(t *testing.T) {
		clock = now.Add(time.Hour)
		require.NoError(t, update.Cmd.Flags().Set("amount", "11500"))
		require.NoError(t, update.Cmd.RunE(update.Cmd, []string{tx.ID}))

		got, _ := c.GetStore().GetByID(tx.ID)
		assert.Equal(t, "11500", got.Amount.String())
		assert.Equal(t, "Groceries", got.Description)
		assert.Equal(t, "Food", got.Category)
		assert.True(t, got.UpdatedAt.After(got.CreatedAt))
		assert.Contains(t, out.String(), "amount: 11,500 FRw")
	})

	t.Run("unknown id", func(t *testing.T) {
		err := update.Cmd.RunE(update.Cmd, []string{"missing"})
		assert.ErrorIs(t, err, ledgererror.ErrNotFound)
	})
}
