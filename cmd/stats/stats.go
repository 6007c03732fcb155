// Package stats prints spending summaries
package stats

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"fjacquet/spendlog/cmd/common"
	"fjacquet/spendlog/cmd/root"
	"fjacquet/spendlog/internal/currency"
	"fjacquet/spendlog/internal/query"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

const barWidth = 30

var days int

// Cmd represents the stats command
var Cmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarise spending by category, day and budget",
	Long: `Print the ledger totals (with conversions), spending per category, a
histogram of the last days and the current month's budget position.`,
	Args: cobra.NoArgs,
	RunE: statsFunc,
}

func init() {
	Cmd.Flags().IntVarP(&days, "days", "n", 7, "Number of days in the daily histogram")
}

func statsFunc(cmd *cobra.Command, args []string) error {
	if days < 1 {
		return fmt.Errorf("--days must be at least 1, got %d", days)
	}
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	engine := c.GetQuery()
	settings := c.GetStore().LoadSettings()
	styles := common.StylesFor(settings.Theme)
	code := settings.BaseCurrency
	out := cmd.OutOrStdout()

	summary := engine.Summary()
	fmt.Fprintln(out, styles.Header.Render("Summary"))
	printSummary(out, summary)

	fmt.Fprintln(out)
	fmt.Fprintln(out, styles.Header.Render("By category"))
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, ct := range engine.SpendingByCategory() {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", ct.Category, ct.Count, currency.Format(ct.Total, code))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, styles.Header.Render(fmt.Sprintf("Last %d days", days)))
	daily := engine.SpendingForLastDays(days)
	peak := decimal.Zero
	for _, d := range daily {
		peak = decimal.Max(peak, d.Total)
	}
	tw = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, d := range daily {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", d.Date, currency.Format(d.Total, code),
			styles.Bar.Render(common.Bar(d.Total, peak, barWidth)))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, styles.Header.Render("Budget"))
	printBudget(out, engine.BudgetStatus(), code, styles)
	return nil
}

func printSummary(w io.Writer, s query.Summary) {
	fmt.Fprintf(w, "Transactions: %d in %d categories\n", s.Count, s.Categories)
	fmt.Fprintf(w, "Total:        %s\n", currency.Format(s.Total, s.BaseCurrency))
	codes := make([]string, 0, len(s.Converted))
	for code := range s.Converted {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		fmt.Fprintf(w, "  in %s:    %s\n", code, currency.Format(s.Converted[code], code))
	}
	fmt.Fprintf(w, "This month:   %s\n", currency.Format(s.MonthTotal, s.BaseCurrency))
	if s.TopCategory != "" {
		fmt.Fprintf(w, "Top category: %s (%s)\n", s.TopCategory, currency.Format(s.TopCategoryTotal, s.BaseCurrency))
	}
}

func printBudget(w io.Writer, b query.BudgetStatus, code string, styles common.Styles) {
	fmt.Fprintf(w, "%s: spent %s of %s (%s%%)\n", b.Month,
		currency.Format(b.Spent, code), currency.Format(b.Budget, code), b.UsedPercent.String())
	fmt.Fprintf(w, "Daily burn %s, projected %s, %d day(s) left\n",
		currency.Format(b.DailyBurnRate, code), currency.Format(b.ProjectedMonthly, code), b.DaysRemaining)
	if b.OverBudget {
		fmt.Fprintln(w, styles.Warning.Render(fmt.Sprintf("Over budget by %s", currency.Format(b.Remaining.Neg(), code))))
		return
	}
	fmt.Fprintln(w, styles.Good.Render(fmt.Sprintf("Remaining %s", currency.Format(b.Remaining, code))))
}
