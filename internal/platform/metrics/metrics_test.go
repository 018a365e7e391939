package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradeiq/internal/feature/candles/domain/entity"
)

type stubMarket struct {
	err error
}

func (s stubMarket) GetTimeSeries(ctx context.Context, symbol, interval string, outputsize int) ([]entity.Candle, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []entity.Candle{{Symbol: symbol}}, nil
}

func TestMetrics_Counters(t *testing.T) {
	t.Parallel()

	m := New()
	m.ObserveCache("candles", "hit")
	m.ObserveCache("candles", "hit")
	m.ObserveCache("candles", "miss")
	m.IncReport("ok")
	m.ObserveCompute("rsi", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheTotal.WithLabelValues("candles", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheTotal.WithLabelValues("candles", "miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReportsTotal.WithLabelValues("ok")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.ComputeDuration))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	t.Parallel()

	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveCache("candles", "hit")
		m.ObserveCompute("macd", time.Second)
		m.IncReport("ok")
		m.ObserveFetch("yahoo", nil, time.Second)
	})
	assert.NotNil(t, m.Handler())
}

func TestInstrumentMarket(t *testing.T) {
	t.Parallel()

	m := New()
	ok := InstrumentMarket("yahoo", stubMarket{}, m)
	failing := InstrumentMarket("yahoo", stubMarket{err: errors.New("down")}, m)

	cs, err := ok.GetTimeSeries(context.Background(), "AAPL", "1day", 10)
	require.NoError(t, err)
	assert.Len(t, cs, 1)
	_, err = failing.GetTimeSeries(context.Background(), "AAPL", "1day", 10)
	assert.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.FetchTotal.WithLabelValues("yahoo", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FetchTotal.WithLabelValues("yahoo", "error")))
}

func TestMetrics_GinMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	m := New()
	router := gin.New()
	router.Use(m.GinMiddleware())
	router.GET("/api/v1/quote/:symbol", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/metrics", gin.WrapH(m.Handler()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/quote/AAPL", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `tradeiq_http_request_duration_seconds_count{method="GET",route="/api/v1/quote/:symbol",status="200"} 1`)
}
