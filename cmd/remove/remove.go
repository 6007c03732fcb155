// Package remove deletes transactions
package remove

import (
	"fmt"

	"fjacquet/spendlog/cmd/root"
	"fjacquet/spendlog/internal/logging"

	"github.com/spf13/cobra"
)

// Cmd represents the remove command
var Cmd = &cobra.Command{
	Use:     "remove ID...",
	Aliases: []string{"delete", "rm"},
	Short:   "Delete one or more transactions",
	Args:    cobra.MinimumNArgs(1),
	RunE:    removeFunc,
}

func removeFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	for _, id := range args {
		if err := c.GetStore().Remove(id); err != nil {
			return err
		}
		c.GetLogger().Info("Transaction deleted", logging.F(logging.FieldTransactionID, id))
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", id)
	}
	return nil
}
