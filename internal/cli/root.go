// Package cli implements the tradeiq command line tool.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"tradeiq/internal/app/di"
	"tradeiq/internal/platform/config"
	"tradeiq/internal/platform/logger"
)

// rootConfig is shared by every subcommand. The container is built on first use
// so commands like token never open a database.
type rootConfig struct {
	cfg *config.Config
	c   *di.Container
}

func (rc *rootConfig) container(ctx context.Context) (*di.Container, error) {
	if rc.c != nil {
		return rc.c, nil
	}
	c, err := di.New(ctx, rc.cfg, nil)
	if err != nil {
		return nil, err
	}
	rc.c = c
	return c, nil
}

func (rc *rootConfig) close() {
	if rc.c != nil {
		rc.c.Close()
		rc.c = nil
	}
}

// NewRootCommand returns the tradeiq command tree.
func NewRootCommand() *cobra.Command {
	rc := &rootConfig{}

	cmd := &cobra.Command{
		Use:   "tradeiq",
		Short: "RSI and MACD indicator reports for a watchlist of symbols",
		Long: `tradeiq fetches daily closes, computes RSI and MACD, and prints the
aligned indicator report. It also maintains the local candle store used by
the dashboard server.

Configuration is read from the environment and an optional .env file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			level, _ := config.ParseLevel(cfg.LogLevel)
			logger.Init("tradeiq-cli", level, os.Stderr)
			rc.cfg = cfg
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			rc.close()
		},
	}

	cmd.AddCommand(
		newReportCmd(rc),
		newIngestCmd(rc),
		newSymbolsCmd(rc),
		newTokenCmd(rc),
	)
	return cmd
}

func printf(cmd *cobra.Command, format string, args ...any) {
	printfTo(cmd.OutOrStdout(), format, args...)
}

func printfTo(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
