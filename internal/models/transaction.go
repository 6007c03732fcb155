// Package models provides the data structures used throughout the ledger.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one persisted spending event. ID, CreatedAt and UpdatedAt
// are owned by the store; callers never set them.
type Transaction struct {
	ID            string          `json:"id" csv:"ID"`
	Description   string          `json:"description" csv:"Description"`
	Amount        decimal.Decimal `json:"amount" csv:"Amount"`
	Category      string          `json:"category" csv:"Category"`
	Date          string          `json:"date" csv:"Date"` // YYYY-MM-DD
	PaymentMethod string          `json:"paymentMethod,omitempty" csv:"PaymentMethod"`
	CreatedAt     time.Time       `json:"createdAt" csv:"CreatedAt"`
	UpdatedAt     time.Time       `json:"updatedAt" csv:"UpdatedAt"`
}

// TransactionInput is the raw, unvalidated shape submitted by a caller.
type TransactionInput struct {
	Description   string `json:"description"`
	Amount        string `json:"amount"`
	Category      string `json:"category"`
	Date          string `json:"date"`
	PaymentMethod string `json:"paymentMethod,omitempty"`
}

// TransactionFields holds validated values ready to be stored.
type TransactionFields struct {
	Description   string
	Amount        decimal.Decimal
	Category      string
	Date          string
	PaymentMethod string
}

// PatchInput is a raw partial update; nil fields are left untouched.
type PatchInput struct {
	Description   *string
	Amount        *string
	Category      *string
	Date          *string
	PaymentMethod *string
}

// TransactionPatch is a validated partial update.
type TransactionPatch struct {
	Description   *string
	Amount        *decimal.Decimal
	Category      *string
	Date          *string
	PaymentMethod *string
}

// IsEmpty reports whether the patch changes nothing.
func (p TransactionPatch) IsEmpty() bool {
	return p.Description == nil && p.Amount == nil && p.Category == nil &&
		p.Date == nil && p.PaymentMethod == nil
}

// Apply merges the patch over t and returns the result. t is not modified.
func (p TransactionPatch) Apply(t Transaction) Transaction {
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.PaymentMethod != nil {
		t.PaymentMethod = *p.PaymentMethod
	}
	return t
}

// AmountText is the amount as searched and displayed ("12.5", "3").
func (t Transaction) AmountText() string {
	return t.Amount.String()
}

// Clone returns a copy of txs that shares no backing array with it.
func Clone(txs []Transaction) []Transaction {
	out := make([]Transaction, len(txs))
	copy(out, txs)
	return out
}

// RequiredImportFields lists, in check order, the fields an imported record must carry.
var RequiredImportFields = []string{"id", "description", "amount", "category", "date"}
