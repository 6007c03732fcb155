package search

import (
	"testing"

	"fjacquet/spendlog/internal/ledgererror"
	"fjacquet/spendlog/internal/logging"
	"fjacquet/spendlog/internal/models"
	"fjacquet/spendlog/internal/validation"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticLoader []models.Transaction

func (s staticLoader) Load() []models.Transaction { return models.Clone(s) }

func ledger() staticLoader {
	return staticLoader{
		{ID: "1", Description: "Morning coffee run", Amount: decimal.RequireFromString("3.5"), Category: "Food", Date: "2026-10-01"},
		{ID: "2", Description: "Bus ticket", Amount: decimal.RequireFromString("1.2"), Category: "Transport", Date: "2026-10-02"},
		{ID: "3", Description: "Monthly rent", Amount: decimal.NewFromInt(350), Category: "Housing", Date: "2026-09-30"},
	}
}

func ids(txs []models.Transaction) []string {
	out := make([]string, len(txs))
	for i, t := range txs {
		out[i] = t.ID
	}
	return out
}

func TestFilter(t *testing.T) {
	f := New(ledger(), nil)

	tests := []struct {
		name    string
		pattern string
		flags   string
		want    []string
	}{
		{"description", "coffee", "i", []string{"1"}},
		{"case insensitive", "BUS", "i", []string{"2"}},
		{"case sensitive", "BUS", "", []string{}},
		{"category", "^housing$", "i", []string{"3"}},
		{"amount text", `^3\.5$`, "", []string{"1"}},
		{"amount text without trailing zeros", `^350$`, "", []string{"3"}},
		{"date", "2026-10", "", []string{"1", "2"}},
		{"alternation", "rent|ticket", "i", []string{"2", "3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validation.CompileRegex(tt.pattern, tt.flags)
			require.NotNil(t, m)
			assert.Equal(t, tt.want, ids(f.Filter(m)))
		})
	}
}

func TestFilter_NilMatcherReturnsEverything(t *testing.T) {
	f := New(ledger(), nil)
	assert.Equal(t, []string{"1", "2", "3"}, ids(f.Filter(nil)))
}

func TestMatch_DoesNotMutate(t *testing.T) {
	txs := []models.Transaction(ledger())
	out := Match(txs, nil)
	out[0].Description = "changed"
	assert.Equal(t, "Morning coffee run", txs[0].Description)
}

func TestSearch(t *testing.T) {
	logger := logging.NewMockLogger()
	f := New(ledger(), logger)

	got, m, err := f.Search("  ", "i")
	require.NoError(t, err)
	assert.Nil(t, m)
	assert.Len(t, got, 3)

	got, m, err = f.Search("coffee", "i")
	require.NoError(t, err)
	assert.NotNil(t, m)
	assert.Equal(t, []string{"1"}, ids(got))

	_, _, err = f.Search("(unclosed", "i")
	var pe *ledgererror.PatternError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "(unclosed", pe.Pattern)
	assert.True(t, logger.HasEntry("WARN", "Rejected search pattern"))
}
