// Package query answers read-only aggregate questions over the ledger.
package query

import (
	"fmt"
	"time"

	"fjacquet/spendlog/internal/dateutils"
	"fjacquet/spendlog/internal/logging"
	"fjacquet/spendlog/internal/models"

	"github.com/shopspring/decimal"
)

// Source is the read side of the store.
type Source interface {
	Load() []models.Transaction
	LoadSettings() models.Settings
}

// Engine evaluates queries against the current contents of a Source.
type Engine struct {
	src    Source
	logger logging.Logger
	now    func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(logger logging.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithClock overrides the source of "today".
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// New returns an Engine reading from src.
func New(src Source, opts ...Option) *Engine {
	e := &Engine{src: src, logger: logging.Discard(), now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CategoryTotal is the summed spending of one category.
type CategoryTotal struct {
	Category string          `json:"category" yaml:"category"`
	Total    decimal.Decimal `json:"total" yaml:"total"`
	Count    int             `json:"count" yaml:"count"`
}

// DailyTotal is the summed spending of one calendar day.
type DailyTotal struct {
	Date  string          `json:"date" yaml:"date"`
	Total decimal.Decimal `json:"total" yaml:"total"`
}

// GetByDateRange returns the transactions dated between start and end
// inclusive. Records whose date does not parse are skipped.
func (e *Engine) GetByDateRange(start, end string) ([]models.Transaction, error) {
	from, err := dateutils.ParseISODate(start, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid range start: %w", err)
	}
	to, err := dateutils.ParseISODate(end, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid range end: %w", err)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("range end %s is before start %s", end, start)
	}

	out := []models.Transaction{}
	for _, tx := range e.src.Load() {
		d, err := dateutils.ParseISODate(tx.Date, time.Local)
		if err != nil {
			e.logger.Debug("Skipping transaction with unparseable date",
				logging.F(logging.FieldTransactionID, tx.ID))
			continue
		}
		if !d.Before(from) && !d.After(to) {
			out = append(out, tx)
		}
	}
	return out, nil
}

// GetByCategory returns the transactions whose category equals name exactly.
func (e *Engine) GetByCategory(name string) []models.Transaction {
	out := []models.Transaction{}
	for _, tx := range e.src.Load() {
		if tx.Category == name {
			out = append(out, tx)
		}
	}
	return out
}

// CalculateTotal sums the amounts of txs. A nil slice means the whole ledger.
func (e *Engine) CalculateTotal(txs []models.Transaction) decimal.Decimal {
	if txs == nil {
		txs = e.src.Load()
	}
	return sum(txs)
}

func sum(txs []models.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		total = total.Add(tx.Amount)
	}
	return total
}

// SpendingByCategory totals every category, in first-seen order.
func (e *Engine) SpendingByCategory() []CategoryTotal {
	out := []CategoryTotal{}
	index := map[string]int{}
	for _, tx := range e.src.Load() {
		i, ok := index[tx.Category]
		if !ok {
			i = len(out)
			index[tx.Category] = i
			out = append(out, CategoryTotal{Category: tx.Category, Total: decimal.Zero})
		}
		out[i].Total = out[i].Total.Add(tx.Amount)
		out[i].Count++
	}
	return out
}

// SpendingForLastDays returns exactly n daily totals, oldest first and
// ending today. A transaction counts only when its date string equals one
// of the generated day keys.
func (e *Engine) SpendingForLastDays(n int) []DailyTotal {
	keys := dateutils.LastNDays(e.now(), n)
	out := make([]DailyTotal, len(keys))
	index := make(map[string]int, len(keys))
	for i, k := range keys {
		out[i] = DailyTotal{Date: k, Total: decimal.Zero}
		index[k] = i
	}
	for _, tx := range e.src.Load() {
		if i, ok := index[tx.Date]; ok {
			out[i].Total = out[i].Total.Add(tx.Amount)
		}
	}
	return out
}
