package currency

import (
	"testing"

	"fjacquet/spendlog/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	settings := models.DefaultSettings()

	tests := []struct {
		name    string
		amount  string
		target  string
		want    string
		wantErr bool
	}{
		{"to usd divides by rate", "2600", "USD", "2", false},
		{"to eur divides by rate", "7000", "eur", "5", false},
		{"base currency unchanged", "123.45", "RWF", "123.45", false},
		{"unknown currency", "10", "GBP", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(decimal.RequireFromString(tt.amount), tt.target, settings)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestConvert_ZeroRate(t *testing.T) {
	settings := models.DefaultSettings()
	settings.USDRate = decimal.Zero
	_, err := Convert(decimal.NewFromInt(1), USD, settings)
	assert.Error(t, err)

	conv := Conversions(decimal.NewFromInt(1400), settings)
	assert.NotContains(t, conv, USD)
	assert.True(t, conv[EUR].Equal(decimal.NewFromInt(1)))
}

func TestFormat(t *testing.T) {
	tests := []struct {
		amount string
		code   string
		want   string
	}{
		{"1234.5", "USD", "$1,234.50"},
		{"12500", "RWF", "12,500 FRw"},
		{"12500.4", "RWF", "12,500.40 FRw"},
		{"12.50", "RWF", "12.50 FRw"},
		{"0.40", "RWF", "0.40 FRw"},
		{"7.00", "RWF", "7 FRw"},
		{"0.005", "usd", "$0.01"},
		{"99.99", "EUR", "€99.99"},
	}
	for _, tt := range tests {
		t.Run(tt.code+" "+tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(decimal.RequireFromString(tt.amount), tt.code))
		})
	}
}

func TestFraction(t *testing.T) {
	assert.Equal(t, 0, Fraction("RWF"))
	assert.Equal(t, 2, Fraction("USD"))
	assert.Equal(t, 2, Fraction("XYZ"))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "RWF 1234.50", FormatAmount(decimal.RequireFromString("1234.5"), "rwf"))
	assert.Equal(t, "3.00", FormatAmount(decimal.NewFromInt(3), ""))
}
