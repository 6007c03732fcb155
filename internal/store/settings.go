package store

import (
	"encoding/json"
	"fmt"
	"strings"

	"fjacquet/spendlog/internal/ledgererror"
	"fjacquet/spendlog/internal/logging"
	"fjacquet/spendlog/internal/models"
	"fjacquet/spendlog/internal/validation"

	"github.com/shopspring/decimal"
)

// LoadSettings returns the stored settings overlaid on the defaults.
func (s *Store) LoadSettings() models.Settings {
	settings := models.DefaultSettings()

	raw, found, err := s.kv.Get(KeySettings)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to read settings, using defaults",
			logging.F(logging.FieldKey, KeySettings))
		return settings
	}
	if !found || raw == "" {
		return settings
	}
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		s.logger.WithError(err).Warn("Stored settings are corrupt, using defaults",
			logging.F(logging.FieldKey, KeySettings))
		return models.DefaultSettings()
	}
	return settings
}

// SaveSettings validates and persists settings, replacing the stored record.
func (s *Store) SaveSettings(settings models.Settings) error {
	if err := validation.ValidateSettings(settings).Err(); err != nil {
		return err
	}
	data, err := json.Marshal(settings)
	if err != nil {
		return &ledgererror.StorageError{Op: "marshal", Key: KeySettings, Err: err}
	}
	if err := s.kv.Set(KeySettings, string(data)); err != nil {
		return &ledgererror.StorageError{Op: "save", Key: KeySettings, Err: err}
	}
	s.logger.Debug("Saved settings")
	return nil
}

// UpdateSetting parses value for key, applies it and saves the result.
func (s *Store) UpdateSetting(key, value string) (models.Settings, error) {
	settings := s.LoadSettings()
	value = strings.TrimSpace(value)

	switch key {
	case models.SettingBaseCurrency:
		settings.BaseCurrency = strings.ToUpper(value)
	case models.SettingTheme:
		settings.Theme = strings.ToLower(value)
	case models.SettingUSDRate, models.SettingEURRate, models.SettingMonthlyBudget:
		d, err := decimal.NewFromString(value)
		if err != nil {
			var errs ledgererror.FieldErrors
			errs.Add(key, "Must be a number")
			return models.Settings{}, errs
		}
		switch key {
		case models.SettingUSDRate:
			settings.USDRate = d
		case models.SettingEURRate:
			settings.EURRate = d
		default:
			settings.MonthlyBudget = d
		}
	default:
		return models.Settings{}, fmt.Errorf("unknown setting %q (valid keys: %s)",
			key, strings.Join(models.SettingKeys, ", "))
	}

	if err := s.SaveSettings(settings); err != nil {
		return models.Settings{}, err
	}
	s.logger.Info("Updated setting", logging.F(logging.FieldKey, key))
	return settings, nil
}
