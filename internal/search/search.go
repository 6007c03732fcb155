// Package search filters the ledger with user-supplied patterns.
package search

import (
	"fjacquet/spendlog/internal/logging"
	"fjacquet/spendlog/internal/models"
	"fjacquet/spendlog/internal/validation"
)

// Loader is the read side of the store.
type Loader interface {
	Load() []models.Transaction
}

// Filter evaluates matchers against the current ledger.
type Filter struct {
	src    Loader
	logger logging.Logger
}

// New returns a Filter over src. A nil logger discards output.
func New(src Loader, logger logging.Logger) *Filter {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Filter{src: src, logger: logger}
}

// Filter returns the transactions m matches. A nil matcher returns everything.
func (f *Filter) Filter(m *validation.Matcher) []models.Transaction {
	return Match(f.src.Load(), m)
}

// Match returns the subset of txs where m matches the description, the
// amount text, the category or the date. txs is never modified.
func Match(txs []models.Transaction, m *validation.Matcher) []models.Transaction {
	if m == nil {
		return models.Clone(txs)
	}
	out := []models.Transaction{}
	for _, tx := range txs {
		if Matches(tx, m) {
			out = append(out, tx)
		}
	}
	return out
}

// Matches reports whether m matches any searchable field of tx.
func Matches(tx models.Transaction, m *validation.Matcher) bool {
	return m.MatchString(tx.Description) ||
		m.MatchString(tx.AmountText()) ||
		m.MatchString(tx.Category) ||
		m.MatchString(tx.Date)
}

// Search compiles pattern with flags and filters with it. A blank pattern
// matches everything.
func (f *Filter) Search(pattern, flags string) ([]models.Transaction, *validation.Matcher, error) {
	if isBlank(pattern) {
		return f.Filter(nil), nil, nil
	}
	m, err := validation.CompilePattern(pattern, flags)
	if err != nil {
		f.logger.WithError(err).Warn("Rejected search pattern", logging.F(logging.FieldPattern, pattern))
		return nil, nil, err
	}
	matches := f.Filter(m)
	f.logger.Debug("Search evaluated",
		logging.F(logging.FieldPattern, pattern),
		logging.F(logging.FieldCount, len(matches)))
	return matches, m, nil
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
