// Package add records a new transaction
package add

import (
	"fmt"

	"fjacquet/spendlog/cmd/common"
	"fjacquet/spendlog/cmd/root"
	"fjacquet/spendlog/internal/currency"
	"fjacquet/spendlog/internal/logging"
	"fjacquet/spendlog/internal/models"
	"fjacquet/spendlog/internal/validation"

	"github.com/spf13/cobra"
)

var input models.TransactionInput

// Cmd represents the add command
var Cmd = &cobra.Command{
	Use:   "add",
	Short: "Record a new spending transaction",
	Long: `Record a new spending transaction. Every field is validated before
anything is stored; the date defaults to today and may not lie in the future.`,
	Args: cobra.NoArgs,
	RunE: addFunc,
}

func init() {
	Cmd.Flags().StringVarP(&input.Description, "description", "d", "", "What the money was spent on")
	Cmd.Flags().StringVarP(&input.Amount, "amount", "a", "", "Amount in the base currency")
	Cmd.Flags().StringVarP(&input.Category, "category", "c", "", "Spending category")
	Cmd.Flags().StringVarP(&input.Date, "date", "t", "", "Transaction date YYYY-MM-DD (default: today)")
	Cmd.Flags().StringVarP(&input.PaymentMethod, "payment", "p", "", "Payment method (optional)")
}

func addFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	st := c.GetStore()

	in := input
	if in.Date == "" {
		in.Date = c.GetQuery().Today()
	}

	fields, errs := validation.ValidateTransactionOn(in, st.Now())
	if len(errs) > 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "Transaction not recorded:")
		return common.PrintErrors(cmd.ErrOrStderr(), errs)
	}

	suggestion, hint := c.GetQuery().SuggestCategory(fields.Category)

	tx, err := st.Add(fields)
	if err != nil {
		return err
	}
	c.GetLogger().Info("Transaction recorded",
		logging.F(logging.FieldTransactionID, tx.ID),
		logging.F(logging.FieldCategory, tx.Category))

	code := st.LoadSettings().BaseCurrency
	fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s: %s, %s on %s\n",
		tx.ID, currency.Format(tx.Amount, code), tx.Category, tx.Date)

	if hint {
		fmt.Fprintf(cmd.OutOrStdout(), "Hint: did you mean category %q?\n", suggestion)
	}
	return nil
}
