package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// TestDashboardHandler_Show はダッシュボードの初期値がHTMLに埋め込まれることを検証します。
func TestDashboardHandler_Show(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		url        string
		wantSymbol string
	}{
		{name: "default symbol", url: "/", wantSymbol: `value="BTC-USD"`},
		{name: "symbol from query", url: "/?symbol=AAPL", wantSymbol: `value="AAPL"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/", NewDashboardHandler("/api/v1").Show)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.url, nil))

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
			body := w.Body.String()
			assert.Contains(t, body, tt.wantSymbol)
			assert.Contains(t, body, `min="30" max="365" value="90"`)
			// 狭い画面向け: viewport指定と折りたたみ式の設定パネル
			assert.Contains(t, body, `name="viewport"`)
			assert.Contains(t, body, `<details id="settings-panel">`)
			assert.NotContains(t, body, "<aside>")
		})
	}
}
