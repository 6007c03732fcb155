// Package search filters transactions with a regular expression
package search

import (
	"bufio"
	"fmt"
	"io"
	"sync"

	"fjacquet/spendlog/cmd/common"
	"fjacquet/spendlog/cmd/root"
	"fjacquet/spendlog/internal/container"
	"fjacquet/spendlog/internal/currency"
	"fjacquet/spendlog/internal/models"
	searchpkg "fjacquet/spendlog/internal/search"
	"fjacquet/spendlog/internal/validation"

	"github.com/spf13/cobra"
)

var (
	flags       string
	interactive bool
)

// Cmd represents the search command
var Cmd = &cobra.Command{
	Use:   "search [PATTERN]",
	Short: "Search transactions with a regular expression",
	Long: `Search transactions whose description, amount, category or date matches
PATTERN (ECMAScript regular expression syntax). Matches are highlighted;
amounts are searched as plain numbers ("1250.5"), and a match there marks
the whole amount cell.

With --interactive, patterns are read line by line from standard input and
only a pattern left unchanged for the settle delay is evaluated.`,
	Args: cobra.MaximumNArgs(1),
	RunE: searchFunc,
}

func init() {
	Cmd.Flags().StringVarP(&flags, "flags", "f", "", "Pattern flags from i, m, s, u, g (default: search.flags config)")
	Cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Read successive patterns from standard input")
}

func searchFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	f := flags
	if !cmd.Flags().Changed("flags") {
		f = c.GetConfig().Search.Flags
	}

	if interactive {
		return runInteractive(cmd.InOrStdin(), cmd.OutOrStdout(), c, f)
	}
	if len(args) == 0 {
		return fmt.Errorf("a pattern is required unless --interactive is set")
	}

	txs, m, err := c.GetSearch().Search(args[0], f)
	if err != nil {
		return err
	}
	return printResult(cmd.OutOrStdout(), c, txs, m)
}

func printResult(w io.Writer, c *container.Container, txs []models.Transaction, m *validation.Matcher) error {
	settings := c.GetStore().LoadSettings()
	if len(txs) == 0 {
		fmt.Fprintln(w, "No matching transactions.")
		return nil
	}
	style := common.StylesFor(settings.Theme).Match
	h := &common.Highlight{Matcher: m, Wrap: func(hit string) string { return style.Render(hit) }}
	if err := common.PrintTransactions(w, txs, settings.BaseCurrency, h); err != nil {
		return err
	}
	total := c.GetQuery().CalculateTotal(txs)
	fmt.Fprintf(w, "%d match(es), total %s\n", len(txs), currency.Format(total, settings.BaseCurrency))
	return nil
}

func runInteractive(in io.Reader, out io.Writer, c *container.Container, f string) error {
	cfg := c.GetConfig()
	var mu sync.Mutex
	live := c.GetSearch().NewLive(func(res searchpkg.Result) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(out, "> %s\n", res.Pattern)
		if res.Err != nil {
			fmt.Fprintln(out, res.Err)
			return
		}
		if err := printResult(out, c, res.Matches, res.Matcher); err != nil {
			c.GetLogger().WithError(err).Warn("Failed to print search result")
		}
	},
		searchpkg.WithFlags(f),
		searchpkg.WithSettleDelay(cfg.SettleDelay()),
		searchpkg.WithMatchTimeout(cfg.MatchTimeout()))
	defer live.Stop()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		live.Submit(scanner.Text())
	}
	live.Flush()
	return scanner.Err()
}
