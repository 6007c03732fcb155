package validation

import (
	"strings"
	"time"

	"fjacquet/spendlog/internal/ledgererror"
	"fjacquet/spendlog/internal/models"

	"github.com/shopspring/decimal"
)

// Field names used in ValidationError entries.
const (
	FieldDescription   = "description"
	FieldAmount        = "amount"
	FieldCategory      = "category"
	FieldDate          = "date"
	FieldPaymentMethod = "paymentMethod"
)

// ValidateTransaction validates a full submission. On success it returns the
// typed fields ready for the store; otherwise every failing field is listed,
// in the order description, amount, category, date.
func ValidateTransaction(in models.TransactionInput) (models.TransactionFields, ledgererror.FieldErrors) {
	return ValidateTransactionOn(in, time.Now())
}

// ValidateTransactionOn is ValidateTransaction with an explicit "now".
func ValidateTransactionOn(in models.TransactionInput, now time.Time) (models.TransactionFields, ledgererror.FieldErrors) {
	var errs ledgererror.FieldErrors
	check(&errs, FieldDescription, ValidateDescription(in.Description))
	check(&errs, FieldAmount, ValidateAmount(in.Amount))
	check(&errs, FieldCategory, ValidateCategory(in.Category))
	check(&errs, FieldDate, ValidateDateOn(in.Date, now))
	if len(errs) > 0 {
		return models.TransactionFields{}, errs
	}

	return models.TransactionFields{
		Description:   in.Description,
		Amount:        decimal.RequireFromString(strings.TrimSpace(in.Amount)),
		Category:      strings.TrimSpace(in.Category),
		Date:          in.Date,
		PaymentMethod: SanitizeInput(in.PaymentMethod),
	}, nil
}

// ValidatePatch validates only the fields present in the patch.
func ValidatePatch(in models.PatchInput) (models.TransactionPatch, ledgererror.FieldErrors) {
	return ValidatePatchOn(in, time.Now())
}

// ValidatePatchOn is ValidatePatch with an explicit "now".
func ValidatePatchOn(in models.PatchInput, now time.Time) (models.TransactionPatch, ledgererror.FieldErrors) {
	var errs ledgererror.FieldErrors
	if in.Description != nil {
		check(&errs, FieldDescription, ValidateDescription(*in.Description))
	}
	if in.Amount != nil {
		check(&errs, FieldAmount, ValidateAmount(*in.Amount))
	}
	if in.Category != nil {
		check(&errs, FieldCategory, ValidateCategory(*in.Category))
	}
	if in.Date != nil {
		check(&errs, FieldDate, ValidateDateOn(*in.Date, now))
	}
	if len(errs) > 0 {
		return models.TransactionPatch{}, errs
	}

	var patch models.TransactionPatch
	if in.Description != nil {
		d := *in.Description
		patch.Description = &d
	}
	if in.Amount != nil {
		a := decimal.RequireFromString(strings.TrimSpace(*in.Amount))
		patch.Amount = &a
	}
	if in.Category != nil {
		c := strings.TrimSpace(*in.Category)
		patch.Category = &c
	}
	if in.Date != nil {
		d := *in.Date
		patch.Date = &d
	}
	if in.PaymentMethod != nil {
		p := SanitizeInput(*in.PaymentMethod)
		patch.PaymentMethod = &p
	}
	return patch, nil
}

func check(errs *ledgererror.FieldErrors, field string, r Result) {
	if !r.Valid {
		errs.Add(field, r.Error)
	}
}
