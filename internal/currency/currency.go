// Package currency converts ledger amounts with the stored exchange rates and
// formats them for display.
package currency

import (
	"fmt"
	"strings"

	"fjacquet/spendlog/internal/models"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Codes the settings carry a rate for.
const (
	USD = money.USD
	EUR = money.EUR
)

// Convert expresses amount, held in the settings' base currency, in target.
// Rates are divisors: base / rate = foreign. Converting to the base currency
// returns amount unchanged.
func Convert(amount decimal.Decimal, target string, settings models.Settings) (decimal.Decimal, error) {
	target = strings.ToUpper(strings.TrimSpace(target))
	if target == strings.ToUpper(settings.BaseCurrency) {
		return amount, nil
	}

	var rate decimal.Decimal
	switch target {
	case USD:
		rate = settings.USDRate
	case EUR:
		rate = settings.EURRate
	default:
		return decimal.Zero, fmt.Errorf("no exchange rate configured for %s", target)
	}
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("exchange rate for %s must be greater than 0, got %s", target, rate)
	}
	return amount.Div(rate), nil
}

// Conversions returns amount in every currency the settings carry a rate
// for, keyed by code. Currencies whose rate is unusable are omitted.
func Conversions(amount decimal.Decimal, settings models.Settings) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, 2)
	for _, code := range []string{USD, EUR} {
		if v, err := Convert(amount, code, settings); err == nil {
			out[code] = v
		}
	}
	return out
}

// Fraction returns the number of minor-unit digits of code (2 for unknown codes).
func Fraction(code string) int {
	// money.New never yields a nil currency, unlike money.GetCurrency.
	return money.New(0, strings.ToUpper(code)).Currency().Fraction
}

// StoredPlaces is the most decimals a ledger amount can carry.
const StoredPlaces = 2

// Format renders amount in code's conventions, e.g. "$1,234.50" or "12,500 FRw".
// The amount is rounded half away from zero to the currency's minor unit,
// unless that would hide cents the amount actually carries: "12.50" in RWF
// renders as "12.50 FRw".
func Format(amount decimal.Decimal, code string) string {
	cur := money.New(0, strings.ToUpper(code)).Currency()
	places := cur.Fraction
	if places < StoredPlaces && !amount.Round(int32(places)).Equal(amount) {
		places = StoredPlaces
	}
	sep := cur.Decimal
	if sep == "" {
		sep = "."
	}
	f := money.NewFormatter(places, sep, cur.Thousand, cur.Grapheme, cur.Template)
	minor := amount.Round(int32(places)).Shift(int32(places))
	return f.Format(minor.IntPart())
}

// FormatAmount renders amount with two decimals and the code as a prefix,
// without thousands separators ("RWF 1234.50"). Used for plain-text output
// such as CSV.
func FormatAmount(amount decimal.Decimal, code string) string {
	formatted := amount.StringFixed(2)
	if code == "" {
		return formatted
	}
	return strings.ToUpper(code) + " " + formatted
}
