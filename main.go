package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"faraid-engine/internal/config"
	"faraid-engine/internal/engine"
	"faraid-engine/internal/faraid"
	"faraid-engine/internal/handler"
	"faraid-engine/internal/logger"
	"faraid-engine/internal/metrics"
	"faraid-engine/internal/pricefeed"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logs, err := logger.New(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Logger setup failed: %v", err)
	}
	defer logs.Sync()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	eng, calculator, prices, err := buildEngine(cfg, logs, metrics.New(reg))
	if err != nil {
		log.Fatalf("Engine setup failed: %v", err)
	}
	defer prices.Close()

	srv := &fasthttp.Server{
		Handler:            handler.New(eng, logs.Named("http"), reg).Router(),
		Name:               "faraid-engine",
		MaxRequestBodySize: cfg.Server.MaxBodyBytes,
		ReadTimeout:        10 * time.Second,
		WriteTimeout:       10 * time.Second,
	}

	go func() {
		logs.Info("faraid engine starting",
			zap.String("port", cfg.Server.Port),
			zap.String("radd_policy", string(calculator.Policy())),
			zap.Bool("price_feed", cfg.PriceFeed.URL != ""),
		)
		if err := srv.ListenAndServe(":" + cfg.Server.Port); err != nil {
			logs.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logs.Info("shutting down")
	if err := srv.Shutdown(); err != nil {
		logs.Error("graceful shutdown failed", zap.Error(err))
	}
}

// buildEngine wires the calculators and the price feed from cfg.
func buildEngine(cfg *config.Config, logs *zap.Logger, m *metrics.Metrics) (*engine.Engine, *faraid.Engine, *pricefeed.Client, error) {
	policy, err := cfg.RaddPolicy()
	if err != nil {
		return nil, nil, nil, err
	}
	gold, silver, err := cfg.FallbackPrices()
	if err != nil {
		return nil, nil, nil, err
	}

	prices := pricefeed.New(pricefeed.Config{
		URL:              cfg.PriceFeed.URL,
		Timeout:          cfg.PriceFeed.Timeout,
		CacheTTL:         cfg.PriceFeed.CacheTTL,
		FallbackCurrency: cfg.PriceFeed.DefaultCurrency,
		FallbackGold:     gold,
		FallbackSilver:   silver,
	}, logs.Named("pricefeed"))

	calculator := faraid.New(faraid.WithRaddPolicy(policy))
	return engine.New(calculator, prices, m), calculator, prices, nil
}
