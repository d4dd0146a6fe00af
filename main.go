package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/folioworks/folio-api/handlers"
	"github.com/folioworks/folio-api/internal/app"
	"github.com/folioworks/folio-api/internal/config"
	"github.com/folioworks/folio-api/pkg/logger"
	"github.com/folioworks/folio-api/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.Server.LogLevel, cfg.Server.LogFormat)
	defer logger.Sync()
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())
	logger.Infof("config loaded: env=%s store=%s mongo=%v redis=%v whatsapp=%v",
		cfg.Server.Environment, cfg.MongoDB.Driver, cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.TwilioConfigured())

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		logger.Fatalf("failed to initialize: %v", err)
	}

	// warm the store connection; failure only degrades the store-backed routes
	if a.DB != nil && a.DB.Configured() {
		if err := a.DB.Connect(ctx); err != nil {
			logger.Warnf("MongoDB not connected, continuing without database: %v", err)
		} else {
			logger.Infof("connected to MongoDB (%s)", cfg.MongoDB.Database)
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics.RegisterCollectors(reg)

	srv := &http.Server{
		Addr: net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler: a.Handler(handlers.Options{
			FrontendDir: cfg.Server.FrontendDir,
			Metrics:     promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
			Swagger:     true,
		}),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Infof("server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Infof("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("http shutdown: %v", err)
	}
	if err := a.Close(shutdownCtx); err != nil {
		logger.Errorf("shutdown: %v", err)
	}
}
