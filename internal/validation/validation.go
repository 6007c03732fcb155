// Package validation holds the field rules every transaction must pass before
// the store accepts it, plus the helpers that make user-supplied text and
// search patterns safe to display.
package validation

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"fjacquet/spendlog/internal/dateutils"

	"github.com/dlclark/regexp2"
	"github.com/shopspring/decimal"
)

// Field limits.
const (
	DescriptionMinLength = 3
	DescriptionMaxLength = 100
	CategoryMinLength    = 3
	CategoryMaxLength    = 30
	MaxPastYears         = 10
)

// MaxAmount is the largest amount a transaction may carry.
var MaxAmount = decimal.RequireFromString("9999999.99")

var (
	amountPattern   = regexp.MustCompile(`^(0|[1-9]\d*)(\.\d{1,2})?$`)
	datePattern     = regexp.MustCompile(`^(\d{4})-(0[1-9]|1[0-2])-(0[1-9]|[12]\d|3[01])$`)
	categoryPattern = regexp.MustCompile(`^[A-Za-z]+(?:[ -][A-Za-z]+)*$`)
	emailPattern    = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	spaceRunPattern = regexp.MustCompile(`\s{2,}`)

	// RE2 has no backreferences, so the repeated-word rule runs on regexp2.
	repeatedWordPattern = regexp2.MustCompile(`\b(\w+)\s+\1\b`, regexp2.IgnoreCase|regexp2.ECMAScript)
)

// Result is the outcome of a single field check.
type Result struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

func ok() Result { return Result{Valid: true} }

func fail(msg string) Result { return Result{Error: msg} }

// ValidateDescription checks the free-text description of a transaction.
func ValidateDescription(text string) Result {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return fail("Description is required")
	}
	n := utf8.RuneCountInString(trimmed)
	if n < DescriptionMinLength {
		return fail(fmt.Sprintf("Description must be at least %d characters", DescriptionMinLength))
	}
	if n > DescriptionMaxLength {
		return fail(fmt.Sprintf("Description must not exceed %d characters", DescriptionMaxLength))
	}
	if trimmed != text {
		return fail("Description cannot have leading or trailing spaces")
	}
	if spaceRunPattern.MatchString(text) {
		return fail("Description cannot contain consecutive spaces")
	}
	if repeated, err := repeatedWordPattern.MatchString(text); err == nil && repeated {
		return fail("Description contains a repeated word")
	}
	return ok()
}

// ValidateAmount accepts the amount as text or as a number. Numbers are
// rendered the way they would be typed before the grammar is applied.
func ValidateAmount(value interface{}) Result {
	text, isText := amountText(value)
	if !isText {
		return fail("Amount must be a number")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return fail("Amount is required")
	}
	if !amountPattern.MatchString(text) {
		return fail("Amount must be a positive number with at most 2 decimal places")
	}
	amount, err := decimal.NewFromString(text)
	if err != nil {
		return fail("Amount must be a positive number with at most 2 decimal places")
	}
	if !amount.IsPositive() {
		return fail("Amount must be greater than 0")
	}
	if amount.GreaterThan(MaxAmount) {
		return fail("Amount cannot exceed 9,999,999.99")
	}
	return ok()
}

func amountText(value interface{}) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	case decimal.Decimal:
		return v.String(), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	default:
		return "", false
	}
}

// ValidateDate checks a YYYY-MM-DD date against the local calendar day.
func ValidateDate(text string) Result {
	return ValidateDateOn(text, time.Now())
}

// ValidateDateOn is ValidateDate with an explicit "now"; only its calendar
// day (in its own location) matters.
func ValidateDateOn(text string, now time.Time) Result {
	if text == "" {
		return fail("Date is required")
	}
	m := datePattern.FindStringSubmatch(text)
	if m == nil {
		return fail("Date must be in YYYY-MM-DD format")
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])

	today := dateutils.StartOfDay(now)
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, today.Location())
	if date.Year() != year || int(date.Month()) != month || date.Day() != day {
		return fail("Date is not a valid calendar date")
	}
	if date.After(today) {
		return fail("Date cannot be in the future")
	}
	if date.Before(today.AddDate(-MaxPastYears, 0, 0)) {
		return fail(fmt.Sprintf("Date cannot be more than %d years in the past", MaxPastYears))
	}
	return ok()
}

// ValidateCategory checks a category name after trimming.
func ValidateCategory(text string) Result {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return fail("Category is required")
	}
	n := utf8.RuneCountInString(trimmed)
	if n < CategoryMinLength || n > CategoryMaxLength {
		return fail(fmt.Sprintf("Category must be between %d and %d characters", CategoryMinLength, CategoryMaxLength))
	}
	if !categoryPattern.MatchString(trimmed) {
		return fail("Category can only contain letters separated by single spaces or hyphens")
	}
	return ok()
}

// ValidateEmail checks a conventional local@domain.tld address.
func ValidateEmail(text string) Result {
	if text == "" {
		return fail("Email is required")
	}
	if !emailPattern.MatchString(text) {
		return fail("Email address is not valid")
	}
	return ok()
}
