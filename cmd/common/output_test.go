package common

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"fjacquet/spendlog/internal/ledgererror"
	"fjacquet/spendlog/internal/models"
	"fjacquet/spendlog/internal/validation"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() models.Transaction {
	return models.Transaction{
		ID:          "0192a8c4-7d2e-7b3c-9f10-2d4e6f8a0b1c",
		Description: "Lunch at cafeteria",
		Amount:      decimal.RequireFromString("1250"),
		Category:    "Food",
		Date:        "2026-10-18",
		CreatedAt:   time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC),
	}
}

func TestPrintTransactions(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintTransactions(&buf, []models.Transaction{sample()}, "RWF", nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "2d4e6f8a0b1c")
	assert.Contains(t, lines[1], "Food")
	assert.Contains(t, lines[1], "1,250 FRw")
	assert.Contains(t, lines[1], "Lunch at cafeteria")
}

func TestPrintTransactions_Highlight(t *testing.T) {
	mark := func(s string) string { return "[" + s + "]" }
	tests := []struct {
		name    string
		pattern string
		want    []string
		plain   []string
	}{
		{name: "text cells", pattern: "food|lunch", want: []string{"[Food]", "[Lunch] at cafeteria"}, plain: []string{" 1,250 FRw"}},
		{name: "amount only", pattern: "^1250$", want: []string{"[1,250 FRw]"}, plain: []string{" Food ", " Lunch at cafeteria"}},
		{name: "formatted amount is not searched", pattern: "FRw", plain: []string{" 1,250 FRw"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Highlight{Matcher: validation.CompileRegex(tt.pattern, "i"), Wrap: mark}
			var buf bytes.Buffer
			require.NoError(t, PrintTransactions(&buf, []models.Transaction{sample()}, "RWF", h))
			out := buf.String()
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
			for _, p := range tt.plain {
				assert.Contains(t, out, p)
			}
		})
	}
}

func TestPrintTransactions_KeepsCents(t *testing.T) {
	tx := sample()
	tx.Amount = decimal.RequireFromString("12.50")

	var buf bytes.Buffer
	require.NoError(t, PrintTransactions(&buf, []models.Transaction{tx}, "RWF", nil))
	assert.Contains(t, buf.String(), "12.50 FRw")

	buf.Reset()
	require.NoError(t, PrintTransaction(&buf, tx, "RWF"))
	assert.Contains(t, buf.String(), "amount: 12.50 FRw")
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "tx-1", ShortID("tx-1"))
	assert.Equal(t, "2d4e6f8a0b1c", ShortID(sample().ID))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}

func TestPrintErrors(t *testing.T) {
	var buf bytes.Buffer
	var fe ledgererror.FieldErrors
	fe.Add("amount", "Amount must be greater than 0")

	err := PrintErrors(&buf, fe)
	assert.ErrorIs(t, err, ErrRejected)
	assert.Equal(t, "  amount: Amount must be greater than 0\n", buf.String())

	other := errors.New("disk full")
	assert.Equal(t, other, PrintErrors(&buf, other))
}

func TestPrintTransaction(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintTransaction(&buf, sample(), "USD"))
	out := buf.String()
	assert.Contains(t, out, "description: Lunch at cafeteria")
	assert.Contains(t, out, "amount: $1,250.00")
	assert.NotContains(t, out, "paymentMethod")
}

func TestBar(t *testing.T) {
	max := decimal.NewFromInt(100)
	assert.Equal(t, "", Bar(decimal.Zero, max, 10))
	assert.Equal(t, strings.Repeat("█", 10), Bar(max, max, 10))
	assert.Equal(t, strings.Repeat("█", 5), Bar(decimal.NewFromInt(50), max, 10))
	assert.Equal(t, "█", Bar(decimal.NewFromInt(1), max, 10), "any spending shows")
	assert.Equal(t, "", Bar(max, decimal.Zero, 10))
}

func TestStylesFor(t *testing.T) {
	light := StylesFor(models.ThemeLight)
	dark := StylesFor(models.ThemeDark)
	assert.NotEqual(t, light.Match.GetBackground(), dark.Match.GetBackground())
	assert.Contains(t, StylesFor("").Muted.Render("x"), "x")
}
