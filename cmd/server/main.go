package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"tradeiq/internal/app/di"
	"tradeiq/internal/app/router"
	candlehandler "tradeiq/internal/feature/candles/transport/handler"
	indicatorhandler "tradeiq/internal/feature/indicators/transport/handler"
	"tradeiq/internal/feature/indicators/transport/web"
	symbolhandler "tradeiq/internal/feature/symbollist/transport/handler"
	"tradeiq/internal/platform/config"
	platformhandler "tradeiq/internal/platform/http/handler"
	jwtmw "tradeiq/internal/platform/jwt"
	"tradeiq/internal/platform/logger"
	"tradeiq/internal/platform/metrics"
	"tradeiq/internal/platform/scheduler"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	level, _ := config.ParseLevel(cfg.LogLevel)
	logger.Init("tradeiq-server", level, os.Stdout)
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	c, err := di.New(ctx, cfg, m)
	if err != nil {
		return err
	}
	defer c.Close()

	// JWT_SECRETチェック（未設定の場合は保護ルートも公開される）
	var auth gin.HandlerFunc
	if cfg.JWT.Secret != "" {
		auth = jwtmw.NewVerifier(cfg.JWT.Secret, cfg.JWT.Issuer).AuthRequired()
	} else {
		slog.Warn("JWT_SECRET is not set; candle and symbol APIs are public")
	}

	engine := router.NewRouter(router.Handlers{
		Health:     platformhandler.NewHealthHandler(c.Checks),
		Indicators: indicatorhandler.NewIndicatorHandler(c.Reports),
		Dashboard:  web.NewDashboardHandler(router.APIBase),
		Candles:    candlehandler.NewCandlesHandler(c.CandlesUC),
		Symbols:    symbolhandler.NewSymbolHandler(c.Symbols),
	}, m, auth)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	var sched *scheduler.Scheduler
	if cfg.Ingest.Cron != "" {
		sched = scheduler.New(ctx, cfg.IngestLocation())
		if err := sched.Add("ingest", cfg.Ingest.Cron, c.RunIngest); err != nil {
			return err
		}
		sched.Start()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("http server listening", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if sched != nil {
			sched.Stop(shutdownCtx)
		}
		slog.Info("shutting down http server")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
