package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fjacquet/spendlog/cmd/add"
	"fjacquet/spendlog/cmd/clear"
	"fjacquet/spendlog/cmd/export"
	"fjacquet/spendlog/cmd/importfile"
	"fjacquet/spendlog/cmd/list"
	"fjacquet/spendlog/cmd/remove"
	"fjacquet/spendlog/cmd/root"
	"fjacquet/spendlog/cmd/search"
	"fjacquet/spendlog/cmd/settings"
	"fjacquet/spendlog/cmd/show"
	"fjacquet/spendlog/cmd/stats"
	"fjacquet/spendlog/cmd/update"
	"fjacquet/spendlog/internal/config"
	"fjacquet/spendlog/internal/logging"
)

func init() {
	// 1. Load .env silently so SPENDLOG_* variables reach viper
	config.LoadEnv(nil)

	// 2. Logger used until the configuration has been read
	root.Log = logging.NewLogrusAdapter(
		config.GetEnv(config.EnvPrefix+"_LOG_LEVEL", "info"),
		config.GetEnv(config.EnvPrefix+"_LOG_FORMAT", "text"))

	// 3. Root flags, then every subcommand
	root.Init()
	root.Cmd.AddCommand(
		add.Cmd,
		list.Cmd,
		show.Cmd,
		update.Cmd,
		remove.Cmd,
		clear.Cmd,
		search.Cmd,
		stats.Cmd,
		export.Cmd,
		importfile.Cmd,
		settings.Cmd,
	)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.Cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
