// Package show prints a single transaction
package show

import (
	"fmt"

	"fjacquet/spendlog/cmd/common"
	"fjacquet/spendlog/cmd/root"
	"fjacquet/spendlog/internal/ledgererror"

	"github.com/spf13/cobra"
)

// Cmd represents the show command
var Cmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show one transaction in full",
	Args:  cobra.ExactArgs(1),
	RunE:  showFunc,
}

func showFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	st := c.GetStore()
	tx, ok := st.GetByID(args[0])
	if !ok {
		return fmt.Errorf("transaction %s: %w", args[0], ledgererror.ErrNotFound)
	}
	return common.PrintTransaction(cmd.OutOrStdout(), tx, st.LoadSettings().BaseCurrency)
}
