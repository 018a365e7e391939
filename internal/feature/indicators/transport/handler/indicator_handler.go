// Package handler はindicatorsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tradeiq/internal/feature/indicators/calculator"
	"tradeiq/internal/feature/indicators/domain"
	"tradeiq/internal/feature/indicators/domain/entity"
	"tradeiq/internal/feature/indicators/transport/http/dto"
	"tradeiq/internal/feature/indicators/usecase"
)

// ReportUsecase はテクニカル指標レポートのユースケースインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type ReportUsecase interface {
	BuildReport(ctx context.Context, q usecase.ReportQuery) (entity.IndicatorReport, error)
	GetQuote(ctx context.Context, symbol string, days int) (entity.PriceSummary, error)
}

// IndicatorHandler はRSI/MACDレポートと現在値のHTTPリクエストを処理します。
type IndicatorHandler struct {
	uc ReportUsecase
}

// NewIndicatorHandler は新しいIndicatorHandlerを生成します。
func NewIndicatorHandler(uc ReportUsecase) *IndicatorHandler {
	return &IndicatorHandler{uc: uc}
}

// GetReport は価格・RSI・MACDを日付で揃えたレポートをJSONで返します。
//
// エンドポイント例:
// GET /api/v1/indicators/:symbol?days=90&rsi_period=14&fast=12&slow=26&signal=9
func (h *IndicatorHandler) GetReport(c *gin.Context) {
	q := usecase.ReportQuery{Symbol: c.Param("symbol")}
	var err error
	if q.Days, err = queryInt(c, "days"); err != nil {
		writeError(c, err)
		return
	}
	if q.RSIPeriod, err = queryInt(c, "rsi_period"); err != nil {
		writeError(c, err)
		return
	}
	var p calculator.MACDParams
	if p.Fast, err = queryInt(c, "fast"); err != nil {
		writeError(c, err)
		return
	}
	if p.Slow, err = queryInt(c, "slow"); err != nil {
		writeError(c, err)
		return
	}
	if p.Signal, err = queryInt(c, "signal"); err != nil {
		writeError(c, err)
		return
	}
	q.MACD = p

	report, err := h.uc.BuildReport(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}

	// 2点未満のときはサマリーをnullで返す
	var summary *entity.PriceSummary
	if s, err := report.Summary(); err == nil {
		summary = &s
	}
	c.JSON(http.StatusOK, dto.NewReportResponse(report, summary))
}

// GetQuote は直近終値と前回比を返します。
//
// エンドポイント例:
// GET /api/v1/quote/:symbol?days=90
func (h *IndicatorHandler) GetQuote(c *gin.Context) {
	days, err := queryInt(c, "days")
	if err != nil {
		writeError(c, err)
		return
	}
	s, err := h.uc.GetQuote(c.Request.Context(), c.Param("symbol"), days)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSummaryResponse(s))
}

// queryInt は整数クエリを読み取ります。未指定は0（デフォルト適用）です。
func queryInt(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidParameter, key)
	}
	return v, nil
}

// writeError はドメインエラーをHTTPステータスに変換して返します。
func writeError(c *gin.Context, err error) {
	c.JSON(statusFor(err), dto.ErrorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	var fe *domain.FetchError
	switch {
	case errors.Is(err, domain.ErrInvalidParameter):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNoData):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientData):
		return http.StatusUnprocessableEntity
	case errors.As(err, &fe), errors.Is(err, domain.ErrInvalidSeries):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
