// Package di wires configuration into the application's components.
package di

import (
	"fmt"

	"tradeiq/internal/feature/candles/usecase"
	"tradeiq/internal/platform/config"
	"tradeiq/internal/platform/externalapi/twelvedata"
	"tradeiq/internal/platform/externalapi/yahoo"
	infrahttp "tradeiq/internal/platform/http"
)

// NewUpstream returns the live market data client and its source name.
// MARKET_SOURCE=store still needs an upstream for ingest and uses Yahoo.
func NewUpstream(cfg *config.Config) (usecase.MarketRepository, string, error) {
	client := infrahttp.NewHTTPClient(cfg.Market.Timeout)
	switch cfg.Market.Source {
	case config.SourceTwelveData:
		return twelvedata.NewTwelveDataMarket(twelvedata.Config{
			APIKey:  cfg.Market.TwelveDataAPIKey,
			BaseURL: cfg.Market.TwelveDataBaseURL,
		}, client), twelvedata.Source, nil
	case config.SourceYahoo, config.SourceStore:
		return yahoo.NewMarket(yahoo.Config{BaseURL: cfg.Market.YahooBaseURL}, client), yahoo.Source, nil
	default:
		return nil, "", fmt.Errorf("unknown market source %q", cfg.Market.Source)
	}
}
