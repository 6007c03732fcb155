// Package update edits an existing transaction
package update

import (
	"errors"
	"fmt"

	"fjacquet/spendlog/cmd/common"
	"fjacquet/spendlog/cmd/root"
	"fjacquet/spendlog/internal/logging"
	"fjacquet/spendlog/internal/models"
	"fjacquet/spendlog/internal/validation"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ErrNothingToUpdate is returned when no field flag was given.
var ErrNothingToUpdate = errors.New("nothing to update: pass at least one field flag")

var values struct {
	description string
	amount      string
	category    string
	date        string
	payment     string
}

// Cmd represents the update command
var Cmd = &cobra.Command{
	Use:   "update ID",
	Short: "Change fields of a recorded transaction",
	Long: `Change fields of a recorded transaction. Only the flags given are
validated and applied; the other fields keep their stored values.`,
	Args: cobra.ExactArgs(1),
	RunE: updateFunc,
}

func init() {
	Cmd.Flags().StringVarP(&values.description, "description", "d", "", "New description")
	Cmd.Flags().StringVarP(&values.amount, "amount", "a", "", "New amount")
	Cmd.Flags().StringVarP(&values.category, "category", "c", "", "New category")
	Cmd.Flags().StringVarP(&values.date, "date", "t", "", "New date YYYY-MM-DD")
	Cmd.Flags().StringVarP(&values.payment, "payment", "p", "", "New payment method")
}

// patchInput builds the raw patch from the flags the user actually set.
func patchInput(flags *pflag.FlagSet) models.PatchInput {
	var in models.PatchInput
	set := func(name string, value string, dst **string) {
		if flags.Changed(name) {
			v := value
			*dst = &v
		}
	}
	set("description", values.description, &in.Description)
	set("amount", values.amount, &in.Amount)
	set("category", values.category, &in.Category)
	set("date", values.date, &in.Date)
	set("payment", values.payment, &in.PaymentMethod)
	return in
}

func updateFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	st := c.GetStore()

	patch, errs := validation.ValidatePatchOn(patchInput(cmd.Flags()), st.Now())
	if len(errs) > 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "Transaction not updated:")
		return common.PrintErrors(cmd.ErrOrStderr(), errs)
	}
	if patch.IsEmpty() {
		return ErrNothingToUpdate
	}

	tx, err := st.Update(args[0], patch)
	if err != nil {
		return err
	}
	c.GetLogger().Info("Transaction updated", logging.F(logging.FieldTransactionID, tx.ID))
	return common.PrintTransaction(cmd.OutOrStdout(), tx, st.LoadSettings().BaseCurrency)
}
