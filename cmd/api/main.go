package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-scheduler/internal/db"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/cache"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/mercadopago"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/logging"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/routes"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/payment"
)

func main() {

	cfg := config.Load()
	logging.New(cfg)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db := dbpkg.NewDB(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	redisCache := cache.Connect(ctx, cfg.RedisURL, "salon:")
	cancel()

	settings := repository.NewSettingsStore(db, redisCache, models.BusinessSettings{
		Name:              "Salão",
		Timezone:          cfg.BusinessTimezone,
		MinAdvanceMinutes: 120,
		PixKey:            cfg.PixFallbackKey,
		MerchantName:      cfg.PixMerchantName,
		MerchantCity:      cfg.PixMerchantCity,
	})

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}

	// Left nil unless configured: gateway endpoints then answer gateway_disabled.
	var gateway payment.Gateway
	if cfg.GatewayEnabled() {
		gw, err := mercadopago.New(cfg.MercadoPagoAccessToken)
		if err != nil {
			slog.Error("mercadopago client", "error", err)
			os.Exit(1)
		}
		gateway = gw
	}

	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		DB:       db,
		Config:   cfg,
		Settings: settings,
		AuditLog: auditLogger,
		Audit:    auditDispatcher,
		Metrics:  m,
		Gateway:  gateway,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server running", "addr", cfg.Addr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")

	shutdownCtx, stop := context.WithTimeout(context.Background(), 15*time.Second)
	defer stop()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	// Drain pending audit events before the pool goes away.
	auditDispatcher.Close()

	if err := redisCache.Close(); err != nil {
		slog.Warn("redis close", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
