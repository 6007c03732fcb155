// Package common contains shared functionality for command handlers
package common

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"fjacquet/spendlog/internal/currency"
	"fjacquet/spendlog/internal/ledgererror"
	"fjacquet/spendlog/internal/models"
	"fjacquet/spendlog/internal/validation"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ErrRejected is returned after field errors were printed for a submission.
var ErrRejected = errors.New("transaction rejected")

// maxDescriptionWidth truncates descriptions in tables.
const maxDescriptionWidth = 40

// Highlight marks what a search matched in table rows.
type Highlight struct {
	Matcher *validation.Matcher
	Wrap    func(string) string
}

func (h *Highlight) text(s string) string {
	if h == nil {
		return s
	}
	return validation.HighlightWith(s, h.Matcher, h.Wrap)
}

// amount wraps the whole formatted cell when the plain amount text matched,
// since separators and the currency symbol never appear in what was searched.
func (h *Highlight) amount(tx models.Transaction, formatted string) string {
	if h == nil || h.Wrap == nil || !h.Matcher.MatchString(tx.AmountText()) {
		return formatted
	}
	return h.Wrap(formatted)
}

// PrintTransactions renders txs as an aligned table. Amounts are formatted
// in code. A nil h prints rows unmarked.
func PrintTransactions(w io.Writer, txs []models.Transaction, code string, h *Highlight) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tCATEGORY\tAMOUNT\tDESCRIPTION")
	for _, tx := range txs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			ShortID(tx.ID),
			h.text(tx.Date),
			h.text(tx.Category),
			h.amount(tx, currency.Format(tx.Amount, code)),
			h.text(truncate(tx.Description, maxDescriptionWidth)))
	}
	return tw.Flush()
}

// ShortID abbreviates an id for table output. UUIDv7 ids share a time
// prefix, so the tail is kept.
func ShortID(id string) string {
	if len(id) <= 12 {
		return id
	}
	return id[len(id)-12:]
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// PrintErrors writes each field error on its own line. It returns
// ErrRejected when err carried field errors, and err unchanged otherwise.
func PrintErrors(w io.Writer, err error) error {
	var fe ledgererror.FieldErrors
	if !errors.As(err, &fe) {
		return err
	}
	for _, e := range fe {
		fmt.Fprintf(w, "  %s: %s\n", e.Field, e.Message)
	}
	return ErrRejected
}

// transactionView is the YAML rendering of a single transaction.
type transactionView struct {
	ID            string `yaml:"id"`
	Description   string `yaml:"description"`
	Amount        string `yaml:"amount"`
	Category      string `yaml:"category"`
	Date          string `yaml:"date"`
	PaymentMethod string `yaml:"paymentMethod,omitempty"`
	CreatedAt     string `yaml:"createdAt"`
	UpdatedAt     string `yaml:"updatedAt"`
}

// PrintTransaction renders tx as YAML.
func PrintTransaction(w io.Writer, tx models.Transaction, code string) error {
	view := transactionView{
		ID:            tx.ID,
		Description:   tx.Description,
		Amount:        currency.Format(tx.Amount, code),
		Category:      tx.Category,
		Date:          tx.Date,
		PaymentMethod: tx.PaymentMethod,
		CreatedAt:     tx.CreatedAt.Local().Format(time.RFC3339),
		UpdatedAt:     tx.UpdatedAt.Local().Format(time.RFC3339),
	}
	return PrintYAML(w, view)
}

// PrintYAML marshals v as YAML to w.
func PrintYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("error encoding YAML: %w", err)
	}
	return enc.Close()
}

// Bar renders value as a bar of at most width cells relative to max.
func Bar(value, max decimal.Decimal, width int) string {
	if !max.IsPositive() || !value.IsPositive() || width <= 0 {
		return ""
	}
	cells := value.Div(max).Mul(decimal.NewFromInt(int64(width))).Ceil().IntPart()
	if cells > int64(width) {
		cells = int64(width)
	}
	return strings.Repeat("█", int(cells))
}
