// Package settings shows and changes ledger settings
package settings

import (
	"fmt"

	"fjacquet/spendlog/cmd/common"
	"fjacquet/spendlog/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the settings command
var Cmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change ledger settings",
	Long: `Show or change the settings stored with the ledger: base currency,
conversion rates (base units per foreign unit), monthly budget and theme.`,
	Args: cobra.NoArgs,
	RunE: showFunc,
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current settings",
	Args:  cobra.NoArgs,
	RunE:  showFunc,
}

var setCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	RunE:  setFunc,
}

func init() {
	Cmd.AddCommand(showCmd, setCmd)
}

func showFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	return common.PrintYAML(cmd.OutOrStdout(), c.GetStore().LoadSettings().DisplayMap())
}

func setFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	updated, err := c.GetStore().UpdateSetting(args[0], args[1])
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Setting not changed:")
		return common.PrintErrors(cmd.ErrOrStderr(), err)
	}
	return common.PrintYAML(cmd.OutOrStdout(), updated.DisplayMap())
}
