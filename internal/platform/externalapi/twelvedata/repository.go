package twelvedata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"tradeiq/internal/feature/candles/domain/entity"
	"tradeiq/internal/feature/candles/usecase"
	"tradeiq/internal/platform/externalapi"
	"tradeiq/internal/platform/externalapi/twelvedata/dto"
)

// Source is the name this client reports in errors and metrics.
const Source = "twelvedata"

// TwelveDataMarket はTwelve Data外部APIから株価データを取得するMarketRepository実装です。
type TwelveDataMarket struct {
	cfg    Config
	client *http.Client
}

// TwelveDataMarketがMarketRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.MarketRepository = (*TwelveDataMarket)(nil)

// NewTwelveDataMarket は指定された設定とHTTPクライアントでTwelveDataMarketの新しいインスタンスを生成します。
func NewTwelveDataMarket(cfg Config, client *http.Client) *TwelveDataMarket {
	return &TwelveDataMarket{cfg: cfg, client: client}
}

// GetTimeSeries はTwelve Data APIから時系列株価データを取得し、新しい順のローソク足として返します。
func (t *TwelveDataMarket) GetTimeSeries(ctx context.Context, symbol, interval string, outputsize int) ([]entity.Candle, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("interval", interval)
	q.Set("outputsize", strconv.Itoa(outputsize))
	q.Set("apikey", t.cfg.APIKey)
	u := fmt.Sprintf("%s/time_series?%s", t.cfg.baseURL(), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	res, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer externalapi.CloseBody(Source, res.Body)

	if res.StatusCode >= 400 {
		return nil, &externalapi.StatusError{Source: Source, Code: res.StatusCode}
	}

	var body dto.TimeSeriesResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", Source, err)
	}
	// APIはHTTP 200のままエラーを返すことがある
	if body.Status == "error" {
		return nil, fmt.Errorf("%s: %s", Source, body.Message)
	}

	candles := make([]entity.Candle, 0, len(body.Values))
	for _, v := range body.Values {
		c, err := toCandle(v)
		if err != nil {
			return nil, err
		}
		c.Symbol = symbol
		c.Interval = interval
		candles = append(candles, c)
	}
	return candles, nil
}

// toCandle は文字列で表現された1本分の値をパースします。
func toCandle(v dto.ValueItem) (entity.Candle, error) {
	tm, err := time.Parse(time.DateTime, v.Datetime)
	if err != nil {
		tm, err = time.Parse(time.DateOnly, v.Datetime)
		if err != nil {
			return entity.Candle{}, fmt.Errorf("parse time %q: %w", v.Datetime, err)
		}
	}
	var c entity.Candle
	c.Time = tm.UTC()
	for _, f := range []struct {
		name string
		raw  string
		dst  *float64
	}{
		{"open", v.Open, &c.Open},
		{"high", v.High, &c.High},
		{"low", v.Low, &c.Low},
		{"close", v.Close, &c.Close},
	} {
		if *f.dst, err = strconv.ParseFloat(f.raw, 64); err != nil {
			return entity.Candle{}, fmt.Errorf("parse %s %q: %w", f.name, f.raw, err)
		}
	}
	if v.Volume != "" {
		if c.Volume, err = strconv.ParseInt(v.Volume, 10, 64); err != nil {
			return entity.Candle{}, fmt.Errorf("parse volume %q: %w", v.Volume, err)
		}
	}
	return c, nil
}
