package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/guregu/null/v6"
	"github.com/spf13/cobra"

	"tradeiq/internal/feature/indicators/calculator"
	"tradeiq/internal/feature/indicators/domain/entity"
	"tradeiq/internal/feature/indicators/transport/http/dto"
	"tradeiq/internal/feature/indicators/usecase"
)

func newReportCmd(rc *rootConfig) *cobra.Command {
	var (
		q      usecase.ReportQuery
		asJSON bool
		last   int
	)

	cmd := &cobra.Command{
		Use:   "report SYMBOL",
		Short: "Print the RSI/MACD report for a symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := rc.container(cmd.Context())
			if err != nil {
				return err
			}
			q.Symbol = args[0]
			report, err := c.Reports.BuildReport(cmd.Context(), q)
			if err != nil {
				return err
			}

			var summary *entity.PriceSummary
			if s, err := report.Summary(); err == nil {
				summary = &s
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(dto.NewReportResponse(report, summary))
			}
			return writeReport(cmd.OutOrStdout(), report, summary, last)
		},
	}

	def := calculator.DefaultMACDParams()
	cmd.Flags().IntVar(&q.Days, "days", usecase.DefaultDays, fmt.Sprintf("calendar days of history (%d-%d)", usecase.MinDays, usecase.MaxDays))
	cmd.Flags().IntVar(&q.RSIPeriod, "rsi-period", calculator.DefaultRSIPeriod, "RSI period")
	cmd.Flags().IntVar(&q.MACD.Fast, "fast", def.Fast, "MACD fast EMA span")
	cmd.Flags().IntVar(&q.MACD.Slow, "slow", def.Slow, "MACD slow EMA span")
	cmd.Flags().IntVar(&q.MACD.Signal, "signal", def.Signal, "MACD signal EMA span")
	cmd.Flags().IntVar(&last, "last", 20, "rows to print, 0 prints all")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the API JSON instead of a table")
	return cmd
}

// writeReport prints the last n rows of the report as an aligned table followed by the price summary.
func writeReport(w io.Writer, r entity.IndicatorReport, summary *entity.PriceSummary, n int) error {
	resp := dto.NewReportResponse(r, summary)

	points := resp.Points
	if n > 0 && len(points) > n {
		points = points[len(points)-n:]
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "DATE\tCLOSE\tRSI\tMACD\tSIGNAL\tHIST\t")
	for _, p := range points {
		fmt.Fprintf(tw, "%s\t%.2f\t%s\t%s\t%s\t%s\t\n",
			p.Date.String(), p.Close, cell(p.RSI, 2), cell(p.MACD, 4), cell(p.Signal, 4), cell(p.Histogram, 4))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%s  RSI(%d)  MACD(%d,%d,%d)  warm-up %d\n",
		resp.Symbol, resp.RSI.Period, resp.MACD.Fast, resp.MACD.Slow, resp.MACD.Signal, resp.MACD.WarmUp)
	if resp.Summary == nil {
		_, err := fmt.Fprintln(w, "price: not enough data for a change summary")
		return err
	}
	_, err := fmt.Fprintf(w, "price: %s  %s  as of %s\n",
		resp.Summary.DisplayPrice, resp.Summary.DisplayDelta, resp.Summary.Date.String())
	return err
}

func cell(v null.Float, prec int) string {
	if !v.Valid {
		return "-"
	}
	return fmt.Sprintf("%.*f", prec, v.Float64)
}
