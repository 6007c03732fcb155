package query

import (
	"fmt"
	"sort"
	"strings"

	"fjacquet/spendlog/internal/models"

	"github.com/agnivade/levenshtein"
)

// Sortable fields.
const (
	SortDate        = "date"
	SortAmount      = "amount"
	SortCategory    = "category"
	SortDescription = "description"
	SortCreated     = "createdAt"
)

// SortFields lists the fields Sort accepts.
var SortFields = []string{SortDate, SortAmount, SortCategory, SortDescription, SortCreated}

// Sort returns a copy of txs ordered by field. Equal keys keep their
// relative order. txs is not modified.
func Sort(txs []models.Transaction, field string, desc bool) ([]models.Transaction, error) {
	var less func(a, b models.Transaction) int
	switch field {
	case SortDate, "":
		less = func(a, b models.Transaction) int { return strings.Compare(a.Date, b.Date) }
	case SortAmount:
		less = func(a, b models.Transaction) int { return a.Amount.Cmp(b.Amount) }
	case SortCategory:
		less = func(a, b models.Transaction) int {
			return strings.Compare(strings.ToLower(a.Category), strings.ToLower(b.Category))
		}
	case SortDescription:
		less = func(a, b models.Transaction) int {
			return strings.Compare(strings.ToLower(a.Description), strings.ToLower(b.Description))
		}
	case SortCreated:
		less = func(a, b models.Transaction) int { return a.CreatedAt.Compare(b.CreatedAt) }
	default:
		return nil, fmt.Errorf("unknown sort field %q (valid: %s)", field, strings.Join(SortFields, ", "))
	}

	out := models.Clone(txs)
	sort.SliceStable(out, func(i, j int) bool {
		c := less(out[i], out[j])
		if desc {
			return c > 0
		}
		return c < 0
	})
	return out, nil
}

// Categories returns the distinct categories in first-seen order.
func (e *Engine) Categories() []string {
	totals := e.SpendingByCategory()
	out := make([]string, len(totals))
	for i, c := range totals {
		out[i] = c.Category
	}
	return out
}

// SuggestCategory returns the existing category closest to name, compared
// case-insensitively. ok is false when name is already a known category
// spelled exactly, or when nothing is close enough to suggest.
func (e *Engine) SuggestCategory(name string) (suggestion string, ok bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return "", false
	}
	limit := len(needle) / 3
	if limit < 2 {
		limit = 2
	}

	best := -1
	for _, c := range e.Categories() {
		if c == name {
			return "", false
		}
		d := levenshtein.ComputeDistance(needle, strings.ToLower(c))
		if d <= limit && (best < 0 || d < best) {
			best = d
			suggestion = c
		}
	}
	return suggestion, best >= 0
}
