// Package export writes ledger snapshots to disk
package export

import (
	"fmt"

	"fjacquet/spendlog/cmd/root"

	"github.com/spf13/cobra"
)

// Export formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

var (
	format string
	dir    string
	stdout bool
)

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export the ledger to a JSON snapshot or a CSV file",
	Long: `Export the ledger. JSON snapshots carry the transactions and settings and
can be imported back; CSV files carry the transactions only.`,
	Args: cobra.NoArgs,
	RunE: exportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&format, "format", "f", FormatJSON, "Output format: json or csv")
	Cmd.Flags().StringVarP(&dir, "dir", "o", "", "Output directory (default: export.dir config)")
	Cmd.Flags().BoolVar(&stdout, "stdout", false, "Write to standard output instead of a file")
}

func exportFunc(cmd *cobra.Command, args []string) error {
	if format != FormatJSON && format != FormatCSV {
		return fmt.Errorf("unknown export format %q (valid: json, csv)", format)
	}
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	snap := c.GetSnapshot()

	if stdout {
		if format == FormatCSV {
			return snap.ExportCSV(cmd.OutOrStdout())
		}
		data, err := snap.ExportJSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}

	target := dir
	if target == "" {
		target = c.GetConfig().Export.Dir
	}
	var path string
	if format == FormatCSV {
		path, err = snap.ExportCSVFile(target)
	} else {
		path, err = snap.ExportFile(target)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d transaction(s) to %s\n", len(c.GetStore().Load()), path)
	return nil
}
