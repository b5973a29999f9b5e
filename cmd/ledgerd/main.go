package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"bank-ledger/pkg/api"
	"bank-ledger/pkg/ledger"
	"bank-ledger/pkg/logging"
	promcollector "bank-ledger/pkg/metrics/prometheus"
	"bank-ledger/pkg/service"
)

func main() {
	logger, err := logging.NewLoggerFromEnv()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	cfg := ledger.DefaultConfig()
	if spec := os.Getenv("LEDGER_SEED"); spec != "" {
		seed, err := ledger.ParseSeed(spec)
		if err != nil {
			logger.Fatal("Invalid LEDGER_SEED", zap.Error(err))
		}
		cfg.Seed = seed
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid ledger config", zap.Error(err))
	}

	store := ledger.NewAccountStore(cfg.Seed)
	txlog := ledger.NewTransactionLog()
	logger.Info("ledger seeded", zap.Strings("accounts", store.IDs()))

	collector := promcollector.NewPrometheusCollector("bank_ledger")
	registry := prometheus.NewRegistry()
	registry.MustRegister(collector)

	svc := service.New(store, txlog, logger, collector)

	serverConfig := api.DefaultServerConfig()
	if addr := os.Getenv("LEDGER_ADDR"); addr != "" {
		serverConfig.Address = addr
	}
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	server := api.NewServer(svc, logger, metricsHandler, serverConfig)

	server.Start()
	logger.Info("ledger server listening", zap.String("address", serverConfig.Address))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	shutdownErr := multierr.Append(server.Stop(ctx), logger.Sync())
	if shutdownErr != nil {
		log.Printf("shutdown: %v", shutdownErr)
	}
}
