package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tradeiq/internal/platform/scheduler"
)

func newIngestCmd(rc *rootConfig) *cobra.Command {
	var (
		schedule bool
		spec     string
	)

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Fetch daily, weekly and monthly candles for every active watchlist symbol",
		Long: `Fetches candles from the configured upstream into the candle store.

With --schedule the command keeps running and ingests on the cron expression
given by --cron or INGEST_CRON (evaluated in INGEST_TZ) until interrupted.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := rc.container(cmd.Context())
			if err != nil {
				return err
			}
			if !schedule {
				if err := c.RunIngest(cmd.Context()); err != nil {
					return err
				}
				printf(cmd, "ingest ok\n")
				return nil
			}

			if spec == "" {
				spec = rc.cfg.Ingest.Cron
			}
			if spec == "" {
				return fmt.Errorf("no schedule: pass --cron or set INGEST_CRON")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			s := scheduler.New(ctx, rc.cfg.IngestLocation())
			if err := s.Add("ingest", spec, c.RunIngest); err != nil {
				return err
			}
			s.Start()
			for _, next := range s.Next() {
				printf(cmd, "next ingest at %s\n", next.Format("2006-01-02 15:04 MST"))
			}

			<-ctx.Done()
			slog.Info("stopping scheduled ingest")
			stopCtx, cancel := context.WithTimeout(context.Background(), rc.cfg.HTTP.ShutdownTimeout)
			defer cancel()
			s.Stop(stopCtx)
			return nil
		},
	}

	cmd.Flags().BoolVar(&schedule, "schedule", false, "keep running and ingest on a cron schedule")
	cmd.Flags().StringVar(&spec, "cron", "", "cron spec for --schedule (default INGEST_CRON)")
	return cmd
}
