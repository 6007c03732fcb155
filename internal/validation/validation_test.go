package validation

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var fixedNow = time.Date(2026, 10, 18, 12, 30, 0, 0, time.UTC)

func TestValidateDescription(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"simple", "Morning coffee run", true},
		{"word that starts like previous", "the theory", true},
		{"exactly three", "Tea", true},
		{"exactly hundred", strings.Repeat("a", 100), true},
		{"empty", "", false},
		{"only spaces", "   ", false},
		{"too short", "ab", false},
		{"too long", strings.Repeat("a", 101), false},
		{"leading space", " Lunch", false},
		{"trailing space", "Lunch ", false},
		{"double space", "Lunch  break", false},
		{"tab run", "Lunch\t\tbreak", false},
		{"duplicate word", "coffee coffee", false},
		{"duplicate word any case", "Coffee coffee run", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := ValidateDescription(tc.input)
			assert.Equal(t, tc.valid, r.Valid, r.Error)
			if !tc.valid {
				assert.NotEmpty(t, r.Error)
			}
		})
	}
}

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		valid bool
	}{
		{"two decimals", "12.50", true},
		{"one decimal", "100.1", true},
		{"integer", "1", true},
		{"zero integer part", "0.5", true},
		{"upper bound", "9999999.99", true},
		{"float", 12.5, true},
		{"int", 7, true},
		{"json number", json.Number("3.25"), true},
		{"decimal", decimal.RequireFromString("42.42"), true},
		{"leading zero", "01", false},
		{"negative", "-5", false},
		{"three decimals", "100.123", false},
		{"zero", "0", false},
		{"zero with decimals", "0.00", false},
		{"above bound", "10000000", false},
		{"trailing dot", "1.", false},
		{"leading dot", ".5", false},
		{"empty", "", false},
		{"letters", "abc", false},
		{"float three decimals", 12.345, false},
		{"nil", nil, false},
		{"bool", true, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := ValidateAmount(tc.input)
			assert.Equal(t, tc.valid, r.Valid, r.Error)
		})
	}
}

func TestValidateDateOn(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
		msg   string
	}{
		{"today", "2026-10-18", true, ""},
		{"exactly ten years ago", "2016-10-18", true, ""},
		{"leap day", "2024-02-29", true, ""},
		{"tomorrow", "2026-10-19", false, "future"},
		{"ten years and a day", "2016-10-17", false, "10 years"},
		{"february 30", "2024-02-30", false, "calendar"},
		{"non leap february 29", "2023-02-29", false, "calendar"},
		{"april 31", "2025-04-31", false, "calendar"},
		{"month thirteen", "2026-13-01", false, "format"},
		{"short month", "2026-1-01", false, "format"},
		{"slashes", "2026/10/01", false, "format"},
		{"empty", "", false, "required"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := ValidateDateOn(tc.input, fixedNow)
			assert.Equal(t, tc.valid, r.Valid, r.Error)
			if tc.msg != "" {
				assert.Contains(t, r.Error, tc.msg)
			}
		})
	}
}

func TestValidateDateOn_TimeOfDayIgnored(t *testing.T) {
	lateEvening := time.Date(2026, 10, 18, 23, 59, 59, 0, time.UTC)
	earlyMorning := time.Date(2026, 10, 18, 0, 0, 1, 0, time.UTC)
	assert.True(t, ValidateDateOn("2026-10-18", lateEvening).Valid)
	assert.True(t, ValidateDateOn("2026-10-18", earlyMorning).Valid)
}

func TestValidateDate_UsesClock(t *testing.T) {
	assert.True(t, ValidateDate(time.Now().Format("2006-01-02")).Valid)
	assert.False(t, ValidateDate(time.Now().AddDate(0, 0, 2).Format("2006-01-02")).Valid)
}

func TestValidateCategory(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"single word", "Food", true},
		{"two words", "Eating Out", true},
		{"hyphenated", "Self-care", true},
		{"surrounding spaces trimmed", "  Food  ", true},
		{"thirty letters", strings.Repeat("a", 30), true},
		{"too short", "Fo", false},
		{"too long", strings.Repeat("a", 31), false},
		{"digit", "Food1", false},
		{"double space", "Food  Out", false},
		{"leading hyphen", "-Food", false},
		{"trailing hyphen", "Food-", false},
		{"double hyphen", "Food--Bar", false},
		{"empty", "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := ValidateCategory(tc.input)
			assert.Equal(t, tc.valid, r.Valid, r.Error)
		})
	}
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("jane.doe+ledger@example.co.uk").Valid)
	assert.True(t, ValidateEmail("a@b.io").Valid)
	assert.False(t, ValidateEmail("a@b.c").Valid)
	assert.False(t, ValidateEmail("no-at.example.com").Valid)
	assert.False(t, ValidateEmail("two@@example.com").Valid)
	assert.False(t, ValidateEmail("").Valid)
}
