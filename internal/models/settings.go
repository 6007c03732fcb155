package models

import "github.com/shopspring/decimal"

// Theme values accepted in Settings.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Setting keys, equal to the JSON field names.
const (
	SettingBaseCurrency  = "baseCurrency"
	SettingUSDRate       = "usdRate"
	SettingEURRate       = "eurRate"
	SettingMonthlyBudget = "monthlyBudget"
	SettingTheme         = "theme"
)

// SettingKeys lists every key UpdateSetting accepts.
var SettingKeys = []string{
	SettingBaseCurrency,
	SettingUSDRate,
	SettingEURRate,
	SettingMonthlyBudget,
	SettingTheme,
}

// Settings is the singleton preferences record. USDRate and EURRate are
// divisors: an amount in BaseCurrency divided by the rate gives the
// foreign amount.
type Settings struct {
	BaseCurrency  string          `json:"baseCurrency" yaml:"baseCurrency"`
	USDRate       decimal.Decimal `json:"usdRate" yaml:"usdRate"`
	EURRate       decimal.Decimal `json:"eurRate" yaml:"eurRate"`
	MonthlyBudget decimal.Decimal `json:"monthlyBudget" yaml:"monthlyBudget"`
	Theme         string          `json:"theme" yaml:"theme"`
}

// DefaultSettings returns the record every load starts from.
func DefaultSettings() Settings {
	return Settings{
		BaseCurrency:  "RWF",
		USDRate:       decimal.NewFromInt(1300),
		EURRate:       decimal.NewFromInt(1400),
		MonthlyBudget: decimal.NewFromInt(500000),
		Theme:         ThemeLight,
	}
}

// DisplayMap renders the settings with plain string values, the shape the
// CLI prints as YAML.
func (s Settings) DisplayMap() map[string]string {
	return map[string]string{
		SettingBaseCurrency:  s.BaseCurrency,
		SettingUSDRate:       s.USDRate.String(),
		SettingEURRate:       s.EURRate.String(),
		SettingMonthlyBudget: s.MonthlyBudget.String(),
		SettingTheme:         s.Theme,
	}
}
