package validation

import (
	"regexp"

	"fjacquet/spendlog/internal/ledgererror"
	"fjacquet/spendlog/internal/models"
)

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// ValidateSettings checks a settings record before it replaces the stored one.
func ValidateSettings(s models.Settings) ledgererror.FieldErrors {
	var errs ledgererror.FieldErrors
	if !currencyPattern.MatchString(s.BaseCurrency) {
		errs.Add(models.SettingBaseCurrency, "Base currency must be a 3-letter ISO code")
	}
	if !s.USDRate.IsPositive() {
		errs.Add(models.SettingUSDRate, "USD rate must be greater than 0")
	}
	if !s.EURRate.IsPositive() {
		errs.Add(models.SettingEURRate, "EUR rate must be greater than 0")
	}
	if s.MonthlyBudget.IsNegative() {
		errs.Add(models.SettingMonthlyBudget, "Monthly budget cannot be negative")
	}
	if s.Theme != models.ThemeLight && s.Theme != models.ThemeDark {
		errs.Add(models.SettingTheme, "Theme must be light or dark")
	}
	return errs
}
