package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/shekokarmahesh/Status-App-Backend/internal/config"
	"github.com/shekokarmahesh/Status-App-Backend/internal/httpapi"
	"github.com/shekokarmahesh/Status-App-Backend/internal/httpapi/middleware"
	"github.com/shekokarmahesh/Status-App-Backend/internal/logging"
	"github.com/shekokarmahesh/Status-App-Backend/internal/probe"
	"github.com/shekokarmahesh/Status-App-Backend/internal/repo"
	"github.com/shekokarmahesh/Status-App-Backend/internal/repo/memory"
	"github.com/shekokarmahesh/Status-App-Backend/internal/repo/postgres"
	"github.com/shekokarmahesh/Status-App-Backend/internal/scheduler"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var monitors repo.MonitorStore
	var ticks repo.TickStore
	if cfg.DatabaseURL != "" {
		pg, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("postgres_connect_error", zap.Error(err))
		}
		defer pg.Close()
		if err := pg.EnsureSchema(ctx); err != nil {
			logger.Fatal("postgres_schema_error", zap.Error(err))
		}
		monitors, ticks = pg, pg
		logger.Info("store_postgres")
	} else {
		mem := memory.New()
		monitors, ticks = mem, mem
		logger.Info("store_memory")
	}

	prober := probe.NewHTTPProber(cfg.ProbeTimeout)
	batch := scheduler.NewBatch(logger, monitors, ticks, prober, cfg.MaxConcurrent)

	rechecker := scheduler.NewRechecker(logger, batch, cfg.CheckInterval)
	go rechecker.Run(ctx)

	api := httpapi.NewServer(logger, monitors, ticks, batch, prober)
	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: api.Router(middleware.ParseOwnerKeys(cfg.OwnerAPIKeys), cfg.AllowedOrigins, cfg.RPM, cfg.Burst),
	}

	go func() {
		<-ctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shCtx)
	}()

	logger.Info("api_listen", zap.String("addr", cfg.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("api_serve_error", zap.Error(err))
	}
	logger.Info("api_stopped")
}
