package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"dashboard/internal/amqp"
	"dashboard/internal/backend"
	"dashboard/internal/cache"
	"dashboard/internal/chart"
	"dashboard/internal/config"
	apphttp "dashboard/internal/http"
	applog "dashboard/internal/log"
	"dashboard/internal/metrics"
	"dashboard/internal/services"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	cfg := config.Load()
	logger := applog.Setup(applog.ComponentApp, cfg.Level())

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", "error", err)
		os.Exit(1)
	}
	result, err := backend.NewFactory(logger.WithComponent(applog.ComponentBackend).Logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to initialize backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	defer func() {
		if err := result.Cleanup(); err != nil {
			logger.Error("Backend cleanup failed", "error", err)
		}
	}()
	store := result.Backend

	caches := cache.NewManager()
	customers := cache.NewCustomers(store, cfg.CustomerCacheTTL)
	caches.Register(customers.Cleaner())
	caches.StartCleanup(time.Minute)

	opts := []services.Option{
		services.WithMetrics(m),
		services.WithLogger(logger.WithComponent(applog.ComponentInvoice)),
		services.OnUpdate(customers.Invalidate),
	}
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		opts = append(opts, services.WithPublisher(amqpClient))
		logger.Info("Publishing invoice events", "exchange", cfg.AMQPExchange)
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}
	svc := services.NewInvoiceService(store, opts...)

	srv, err := apphttp.NewServer(":"+cfg.Port, apphttp.Deps{
		Store:              store,
		Customers:          customers,
		Update:             svc.UpdateInvoice,
		Chart:              chart.NewRenderer(store, chart.WithHeight(cfg.ChartHeight)),
		Metrics:            m,
		Gatherer:           reg,
		Caches:             caches,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		Logger:             logger.WithComponent(applog.ComponentHTTP),
	})
	if err != nil {
		logger.Error("Failed to create HTTP server", "error", err)
		os.Exit(1)
	}
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting dashboard server", "port", cfg.Port, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errCh:
		if err != nil {
			logger.Error("Server error", "error", err, "port", cfg.Port)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
	logger.Info("Server stopped gracefully")
}
