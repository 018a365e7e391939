// Package yahoo provides a MarketRepository backed by the Yahoo Finance chart API.
package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"tradeiq/internal/feature/candles/domain/entity"
	"tradeiq/internal/feature/candles/usecase"
	"tradeiq/internal/platform/externalapi"
	"tradeiq/internal/platform/externalapi/yahoo/dto"
)

// Source is the name this client reports in errors and metrics.
const Source = "yahoo"

// DefaultBaseURL is the public chart API host.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// ErrUnsupportedInterval is returned for intervals the chart API cannot serve.
var ErrUnsupportedInterval = errors.New("yahoo: unsupported interval")

// Config holds the chart API settings.
type Config struct {
	BaseURL string // empty means DefaultBaseURL
}

// Market fetches candles from Yahoo Finance.
type Market struct {
	cfg    Config
	client *http.Client
}

var _ usecase.MarketRepository = (*Market)(nil)

// NewMarket returns a Market that issues requests with client.
func NewMarket(cfg Config, client *http.Client) *Market {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &Market{cfg: cfg, client: client}
}

// chart intervals and the calendar days one bar spans in the worst case.
var intervals = map[string]struct {
	param   string
	barDays int
}{
	entity.IntervalDay:   {"1d", 1},
	entity.IntervalWeek:  {"1wk", 7},
	entity.IntervalMonth: {"1mo", 31},
}

// ranges lists the chart API ranges in increasing order with their length in days.
var ranges = []struct {
	param string
	days  int
}{
	{"1mo", 31},
	{"3mo", 92},
	{"6mo", 183},
	{"1y", 366},
	{"2y", 731},
	{"5y", 1827},
	{"10y", 3653},
}

// rangeFor returns the smallest range covering n bars of barDays each.
func rangeFor(n, barDays int) string {
	need := n * barDays
	for _, r := range ranges {
		if need <= r.days {
			return r.param
		}
	}
	return "max"
}

// GetTimeSeries returns up to outputsize of the most recent candles in ascending time order.
// Bars with a null close (holidays, halts) are skipped.
func (m *Market) GetTimeSeries(ctx context.Context, symbol, interval string, outputsize int) ([]entity.Candle, error) {
	iv, ok := intervals[interval]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedInterval, interval)
	}
	if outputsize <= 0 {
		outputsize = 1
	}

	q := url.Values{}
	q.Set("interval", iv.param)
	q.Set("range", rangeFor(outputsize, iv.barDays))
	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", m.cfg.BaseURL, url.PathEscape(symbol), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	res, err := m.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer externalapi.CloseBody(Source, res.Body)

	var body dto.ChartResponse
	decodeErr := json.NewDecoder(res.Body).Decode(&body)
	if body.Chart.Error != nil {
		return nil, fmt.Errorf("%s: %s", Source, body.Chart.Error.Description)
	}
	if res.StatusCode != http.StatusOK {
		return nil, &externalapi.StatusError{Source: Source, Code: res.StatusCode}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("%s: decode: %w", Source, decodeErr)
	}
	if len(body.Chart.Result) == 0 {
		return []entity.Candle{}, nil
	}

	candles := toCandles(body.Chart.Result[0], symbol, interval)
	if len(candles) > outputsize {
		candles = candles[len(candles)-outputsize:]
	}
	return candles, nil
}

func toCandles(r dto.ChartResult, symbol, interval string) []entity.Candle {
	if len(r.Indicators.Quote) == 0 {
		return []entity.Candle{}
	}
	q := r.Indicators.Quote[0]
	out := make([]entity.Candle, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		c := at(q.Close, i)
		if c == nil {
			continue
		}
		candle := entity.Candle{
			Symbol:   symbol,
			Interval: interval,
			Time:     time.Unix(ts, 0).UTC(),
			Close:    *c,
			Open:     valueOr(at(q.Open, i), *c),
			High:     valueOr(at(q.High, i), *c),
			Low:      valueOr(at(q.Low, i), *c),
		}
		if i < len(q.Volume) && q.Volume[i] != nil {
			candle.Volume = *q.Volume[i]
		}
		out = append(out, candle)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out
}

func at(xs []*float64, i int) *float64 {
	if i < len(xs) {
		return xs[i]
	}
	return nil
}

func valueOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}
