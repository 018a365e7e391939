// Package web はダッシュボードのHTMLページを提供します。
package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	"tradeiq/internal/feature/indicators/transport/http/dto"
	"tradeiq/internal/feature/indicators/usecase"
)

// DefaultSymbol はダッシュボードの初期表示銘柄です。
const DefaultSymbol = "BTC-USD"

//go:embed templates/dashboard.html
var templatesFS embed.FS

var dashboardTmpl = template.Must(template.ParseFS(templatesFS, "templates/dashboard.html"))

// DashboardHandler はチャート描画用のHTMLページを返します。
// チャートはブラウザ側でJSON APIから取得したデータをもとに描画されます。
type DashboardHandler struct {
	apiBase string
}

// NewDashboardHandler は新しいDashboardHandlerを生成します。apiBaseはJSON APIのパスプレフィックスです。
func NewDashboardHandler(apiBase string) *DashboardHandler {
	return &DashboardHandler{apiBase: apiBase}
}

type dashboardData struct {
	APIBase    string
	Symbol     string
	Days       int
	MinDays    int
	MaxDays    int
	Overbought int
	Oversold   int
}

// Show はダッシュボードを描画します。クエリsymbolで初期銘柄を上書きできます。
func (h *DashboardHandler) Show(c *gin.Context) {
	c.Render(http.StatusOK, render.HTML{
		Template: dashboardTmpl,
		Name:     "dashboard.html",
		Data: dashboardData{
			APIBase:    h.apiBase,
			Symbol:     c.DefaultQuery("symbol", DefaultSymbol),
			Days:       usecase.DefaultDays,
			MinDays:    usecase.MinDays,
			MaxDays:    usecase.MaxDays,
			Overbought: dto.RSIOverbought,
			Oversold:   dto.RSIOversold,
		},
	})
}
