// Package importfile restores a ledger snapshot from disk
package importfile

import (
	"context"
	"fmt"

	"fjacquet/spendlog/cmd/root"
	"fjacquet/spendlog/internal/snapshot"

	"github.com/spf13/cobra"
)

var merge bool

// Cmd represents the import command
var Cmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import a JSON snapshot",
	Long: `Import a JSON snapshot written by export. By default the ledger is
replaced; with --merge, records are upserted by id and the rest are kept.
A snapshot that fails validation leaves the ledger untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: importFunc,
}

func init() {
	Cmd.Flags().BoolVarP(&merge, "merge", "m", false, "Merge into the existing ledger instead of replacing it")
}

func importFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	mode := snapshot.ModeReplace
	if merge {
		mode = snapshot.ModeMerge
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	res, err := c.GetSnapshot().ImportFile(ctx, args[0], mode)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Imported %d transaction(s) (%s)\n", res.Imported, res.Mode)
	if res.Mode == snapshot.ModeMerge {
		fmt.Fprintf(out, "Added %d, replaced %d\n", res.Added, res.Replaced)
	}
	if res.SettingsReplaced {
		fmt.Fprintln(out, "Settings restored from snapshot")
	}
	fmt.Fprintf(out, "Ledger now holds %d transaction(s)\n", res.Total)
	return nil
}
