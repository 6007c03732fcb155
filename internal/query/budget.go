package query

import (
	"time"

	"fjacquet/spendlog/internal/currency"
	"fjacquet/spendlog/internal/dateutils"
	"fjacquet/spendlog/internal/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// BudgetStatus compares the current calendar month's spending with the
// monthly budget cap.
type BudgetStatus struct {
	Month            string          `json:"month" yaml:"month"` // YYYY-MM
	Budget           decimal.Decimal `json:"budget" yaml:"budget"`
	Spent            decimal.Decimal `json:"spent" yaml:"spent"`
	Remaining        decimal.Decimal `json:"remaining" yaml:"remaining"`
	UsedPercent      decimal.Decimal `json:"usedPercent" yaml:"usedPercent"`
	DailyBurnRate    decimal.Decimal `json:"dailyBurnRate" yaml:"dailyBurnRate"`
	ProjectedMonthly decimal.Decimal `json:"projectedMonthly" yaml:"projectedMonthly"`
	DaysRemaining    int             `json:"daysRemaining" yaml:"daysRemaining"`
	OverBudget       bool            `json:"overBudget" yaml:"overBudget"`
}

// BudgetStatus reports the month-to-date position against monthlyBudget.
// With a zero budget, UsedPercent stays zero and any spending is over budget.
func (e *Engine) BudgetStatus() BudgetStatus {
	today := dateutils.StartOfDay(e.now())
	budget := e.src.LoadSettings().MonthlyBudget

	spent := decimal.Zero
	for _, tx := range e.src.Load() {
		if dateutils.SameMonth(tx.Date, today) {
			spent = spent.Add(tx.Amount)
		}
	}

	elapsed := today.Day()
	daysInMonth := dateutils.EndOfMonth(today).Day()
	burn := spent.Div(decimal.NewFromInt(int64(elapsed)))

	status := BudgetStatus{
		Month:            today.Format("2006-01"),
		Budget:           budget,
		Spent:            spent,
		Remaining:        budget.Sub(spent),
		UsedPercent:      decimal.Zero,
		DailyBurnRate:    burn.Round(2),
		ProjectedMonthly: burn.Mul(decimal.NewFromInt(int64(daysInMonth))).Round(2),
		DaysRemaining:    daysInMonth - elapsed,
		OverBudget:       spent.GreaterThan(budget),
	}
	if budget.IsPositive() {
		status.UsedPercent = spent.Div(budget).Mul(hundred).Round(1)
	}
	return status
}

// Summary is the headline view of the ledger.
type Summary struct {
	Count            int                        `json:"count" yaml:"count"`
	Total            decimal.Decimal            `json:"total" yaml:"total"`
	BaseCurrency     string                     `json:"baseCurrency" yaml:"baseCurrency"`
	Converted        map[string]decimal.Decimal `json:"converted" yaml:"converted"`
	MonthTotal       decimal.Decimal            `json:"monthTotal" yaml:"monthTotal"`
	TopCategory      string                     `json:"topCategory,omitempty" yaml:"topCategory,omitempty"`
	TopCategoryTotal decimal.Decimal            `json:"topCategoryTotal" yaml:"topCategoryTotal"`
	Categories       int                        `json:"categories" yaml:"categories"`
}

// Summary aggregates counts and totals, with the grand total converted into
// every currency the settings carry a rate for.
func (e *Engine) Summary() Summary {
	txs := e.src.Load()
	settings := e.src.LoadSettings()
	today := e.now()

	s := Summary{
		Count:            len(txs),
		Total:            sum(txs),
		BaseCurrency:     settings.BaseCurrency,
		MonthTotal:       decimal.Zero,
		TopCategoryTotal: decimal.Zero,
	}
	for _, tx := range txs {
		if dateutils.SameMonth(tx.Date, today) {
			s.MonthTotal = s.MonthTotal.Add(tx.Amount)
		}
	}

	byCategory := e.SpendingByCategory()
	s.Categories = len(byCategory)
	for _, c := range byCategory {
		// first-seen wins ties
		if s.TopCategory == "" || c.Total.GreaterThan(s.TopCategoryTotal) {
			s.TopCategory = c.Category
			s.TopCategoryTotal = c.Total
		}
	}

	s.Converted = currency.Conversions(s.Total, settings)
	for code, v := range s.Converted {
		s.Converted[code] = v.Round(int32(currency.Fraction(code)))
	}
	return s
}

// Today returns the engine's current day as YYYY-MM-DD.
func (e *Engine) Today() string {
	return dateutils.ToISODate(e.now())
}

// monthBounds returns the first and last ISO day of the month containing t.
func monthBounds(t time.Time) (string, string) {
	return dateutils.ToISODate(dateutils.StartOfMonth(t)), dateutils.ToISODate(dateutils.EndOfMonth(t))
}

// CurrentMonth returns the transactions dated in the current calendar month.
func (e *Engine) CurrentMonth() []models.Transaction {
	from, to := monthBounds(e.now())
	txs, err := e.GetByDateRange(from, to)
	if err != nil {
		return []models.Transaction{}
	}
	return txs
}
