// Package list prints stored transactions
package list

import (
	"fmt"
	"strings"

	"fjacquet/spendlog/cmd/common"
	"fjacquet/spendlog/cmd/root"
	"fjacquet/spendlog/internal/container"
	"fjacquet/spendlog/internal/currency"
	"fjacquet/spendlog/internal/models"
	"fjacquet/spendlog/internal/query"

	"github.com/spf13/cobra"
)

var (
	category string
	from     string
	to       string
	sortBy   string
	desc     bool
	limit    int
)

// Cmd represents the list command
var Cmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded transactions",
	Long: `List recorded transactions, optionally restricted to one category or an
inclusive date range, sorted by any column.`,
	Args: cobra.NoArgs,
	RunE: listFunc,
}

func init() {
	Cmd.Flags().StringVarP(&category, "category", "c", "", "Only transactions in this category (exact match)")
	Cmd.Flags().StringVar(&from, "from", "", "Start date YYYY-MM-DD (inclusive)")
	Cmd.Flags().StringVar(&to, "to", "", "End date YYYY-MM-DD (inclusive)")
	Cmd.Flags().StringVarP(&sortBy, "sort", "s", query.SortDate, "Sort column: "+strings.Join(query.SortFields, ", "))
	Cmd.Flags().BoolVar(&desc, "desc", false, "Sort in descending order")
	Cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most this many rows (0: all)")
}

func listFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}

	txs, err := selectTransactions(c)
	if err != nil {
		return err
	}
	txs, err = query.Sort(txs, sortBy, desc)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(txs) == 0 {
		fmt.Fprintln(out, "No transactions found.")
		return nil
	}
	total := c.GetQuery().CalculateTotal(txs)
	count := len(txs)
	if limit > 0 && limit < len(txs) {
		txs = txs[:limit]
	}

	code := c.GetStore().LoadSettings().BaseCurrency
	if err := common.PrintTransactions(out, txs, code, nil); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%d transaction(s), total %s\n", count, currency.Format(total, code))
	return nil
}

func selectTransactions(c *container.Container) ([]models.Transaction, error) {
	engine := c.GetQuery()
	if from == "" && to == "" {
		if category != "" {
			return engine.GetByCategory(category), nil
		}
		return c.GetStore().Load(), nil
	}

	start, end := from, to
	if start == "" {
		start = "0001-01-01"
	}
	if end == "" {
		end = engine.Today()
	}
	txs, err := engine.GetByDateRange(start, end)
	if err != nil || category == "" {
		return txs, err
	}
	out := []models.Transaction{}
	for _, tx := range txs {
		if tx.Category == category {
			out = append(out, tx)
		}
	}
	return out, nil
}
