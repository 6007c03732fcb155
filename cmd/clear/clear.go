// Package clear empties the ledger
package clear

import (
	"errors"
	"fmt"

	"fjacquet/spendlog/cmd/root"

	"github.com/spf13/cobra"
)

// ErrNotConfirmed is returned when --yes was not given.
var ErrNotConfirmed = errors.New("refusing to delete every transaction without --yes")

var confirmed bool

// Cmd represents the clear command
var Cmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every transaction (settings are kept)",
	Args:  cobra.NoArgs,
	RunE:  clearFunc,
}

func init() {
	Cmd.Flags().BoolVarP(&confirmed, "yes", "y", false, "Confirm deletion of all transactions")
}

func clearFunc(cmd *cobra.Command, args []string) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	n := len(c.GetStore().Load())
	if err := c.GetStore().Clear(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d transaction(s)\n", n)
	return nil
}
