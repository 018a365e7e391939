// Package router builds the gin engine and its route table.
package router

import (
	"github.com/gin-gonic/gin"

	candlehandler "tradeiq/internal/feature/candles/transport/handler"
	indicatorhandler "tradeiq/internal/feature/indicators/transport/handler"
	"tradeiq/internal/feature/indicators/transport/web"
	symbolhandler "tradeiq/internal/feature/symbollist/transport/handler"
	platformhandler "tradeiq/internal/platform/http/handler"
	"tradeiq/internal/platform/http/middleware"
	"tradeiq/internal/platform/metrics"
)

// APIBase is the prefix of the JSON API.
const APIBase = "/api/v1"

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Health     *platformhandler.HealthHandler
	Indicators *indicatorhandler.IndicatorHandler
	Dashboard  *web.DashboardHandler
	Candles    *candlehandler.CandlesHandler
	Symbols    *symbolhandler.SymbolHandler
}

// NewRouter returns the engine. auth may be nil, in which case every route is public.
func NewRouter(h Handlers, m *metrics.Metrics, auth gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(), m.GinMiddleware())

	// 認証不要
	// 導通確認用
	r.GET("/healthz", h.Health.Health)
	r.HEAD("/healthz", h.Health.Health)
	r.GET("/metrics", gin.WrapH(m.Handler()))
	// ダッシュボードと、ダッシュボードが呼び出す指標API
	r.GET("/", h.Dashboard.Show)

	api := r.Group(APIBase)
	api.GET("/indicators/:symbol", h.Indicators.GetReport)
	api.GET("/quote/:symbol", h.Indicators.GetQuote)

	// 認証必須のルート (JWT_SECRET 設定時)
	protected := api.Group("")
	if auth != nil {
		protected.Use(auth)
	}
	protected.GET("/candles/:code", h.Candles.GetCandlesHandler)
	protected.GET("/symbols", h.Symbols.List)

	return r
}
