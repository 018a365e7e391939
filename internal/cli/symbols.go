package cli

import (
	"text/tabwriter"

	"github.com/spf13/cobra"

	"tradeiq/internal/app/di"
	"tradeiq/internal/platform/config"
)

func newSymbolsCmd(rc *rootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "symbols",
		Short: "Manage the watchlist",
	}
	cmd.AddCommand(
		newSymbolsSeedCmd(rc),
		newSymbolsListCmd(rc),
	)
	return cmd
}

func newSymbolsSeedCmd(rc *rootConfig) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert or update watchlist symbols from a YAML file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if file == "" {
				file = rc.cfg.WatchlistFile
			}
			w, err := config.LoadWatchlist(file)
			if err != nil {
				return err
			}
			c, err := rc.container(cmd.Context())
			if err != nil {
				return err
			}
			n, err := c.Symbols.Seed(cmd.Context(), di.SymbolsFromWatchlist(w))
			if err != nil {
				return err
			}
			printf(cmd, "seeded %d symbols from %s\n", n, file)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "watchlist YAML (default WATCHLIST_FILE)")
	return cmd
}

func newSymbolsListCmd(rc *rootConfig) *cobra.Command {
	var market string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List active watchlist symbols",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := rc.container(cmd.Context())
			if err != nil {
				return err
			}
			symbols, err := c.Symbols.ListActiveSymbols(cmd.Context(), market)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			printfTo(tw, "CODE\tNAME\tMARKET\n")
			for _, s := range symbols {
				printfTo(tw, "%s\t%s\t%s\n", s.Code, s.Name, s.Market)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&market, "market", "", "only symbols of this market")
	return cmd
}
