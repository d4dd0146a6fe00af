package main

import (
	"context"
	"fmt"
	"os"

	"github.com/folioworks/folio-api/internal/app"
	"github.com/folioworks/folio-api/internal/config"
	"github.com/folioworks/folio-api/pkg/logger"
	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "folioctl",
		Short:         "Administrative tasks for the portfolio API",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		lvl, _ := cmd.Flags().GetString("log-level")
		logger.Init(lvl)
	}

	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(notifyTestCmd())
	rootCmd.AddCommand(backupCmd())
	rootCmd.AddCommand(restoreCmd())
	rootCmd.AddCommand(tokenCmd())
	return rootCmd
}

// openApp loads configuration and builds the App; the caller closes it.
func openApp(ctx context.Context) (*app.App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return app.New(ctx, cfg)
}
