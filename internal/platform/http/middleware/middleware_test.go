package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradeiq/internal/platform/logger"
)

func TestNewRequestID_Monotonic(t *testing.T) {
	t.Parallel()

	a := NewRequestID()
	b := NewRequestID()

	_, err := ulid.ParseStrict(a)
	require.NoError(t, err)
	assert.Less(t, a, b)
}

// TestRequestID はリクエストIDの採番・引き継ぎとコンテキストへの格納を検証します。
func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var seen string
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) {
		seen = logger.RequestID(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(HeaderRequestID)
	assert.Len(t, generated, 26)
	assert.Equal(t, generated, seen)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "upstream-id")
	router.ServeHTTP(w, req)
	assert.Equal(t, "upstream-id", w.Header().Get(HeaderRequestID))
	assert.Equal(t, "upstream-id", seen)
}

// TestRequestID_RejectsMalformed は長すぎる・不正な文字を含むリクエストIDが新しいULIDに置き換えられることを検証します。
func TestRequestID_RejectsMalformed(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) {
		assert.Equal(t, c.Writer.Header().Get(HeaderRequestID), logger.RequestID(c.Request.Context()))
		c.Status(http.StatusOK)
	})

	tests := []struct {
		name   string
		header string
		keep   bool
	}{
		{name: "success: max length kept", header: strings.Repeat("a", MaxRequestIDLength), keep: true},
		{name: "success: ulid kept", header: "01HZX3Q6Y8J0N6E4W1C2B3A4D5", keep: true},
		{name: "error: too long", header: strings.Repeat("a", MaxRequestIDLength+1)},
		{name: "error: spaces", header: "id with spaces"},
		{name: "error: log injection", header: "abc\"level\":\"ERROR"},
		{name: "error: non-ascii", header: "リクエスト"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(HeaderRequestID, tt.header)
			router.ServeHTTP(w, req)

			got := w.Header().Get(HeaderRequestID)
			if tt.keep {
				assert.Equal(t, tt.header, got)
				return
			}
			assert.NotEqual(t, tt.header, got)
			_, err := ulid.ParseStrict(got)
			assert.NoError(t, err)
		})
	}
}

// TestAccessLog はステータスに応じたレベルでアクセスログが出力されることを検証します。
// slogのデフォルトを書き換えるため並列実行しません。
func TestAccessLog(t *testing.T) {
	gin.SetMode(gin.TestMode)
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger.Init("test", slog.LevelDebug, &buf)

	router := gin.New()
	router.Use(RequestID(), AccessLog())
	router.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	req.Header.Set(HeaderRequestID, "rid-1")
	router.ServeHTTP(httptest.NewRecorder(), req)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "WARN", rec["level"])
	assert.Equal(t, "/missing", rec["path"])
	assert.Equal(t, float64(http.StatusNotFound), rec["status"])
	assert.Equal(t, "rid-1", rec["request_id"])
}
