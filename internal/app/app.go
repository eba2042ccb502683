package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"fxsummary/internal/adapters/cache"
	"fxsummary/internal/adapters/httpclient"
	"fxsummary/internal/adapters/snapshot"
	"fxsummary/internal/api"
	"fxsummary/internal/config"
	"fxsummary/internal/metrics"
	httpserver "fxsummary/internal/platform/http"
	"fxsummary/internal/rate"
	"fxsummary/internal/rate/handler"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
)

// Run wires the application components, starts HTTP server and cache purger
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	// Logger
	logrus.SetOutput(os.Stdout)
	if parsedLvl, parseErr := logrus.ParseLevel(appCfg.Logging.Level); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	logrus.Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(registry)

	// Base HTTP client (configurable timeout)
	httpTimeout := time.Duration(appCfg.HTTPClient.TimeoutSeconds) * time.Second
	if httpTimeout <= 0 {
		httpTimeout = 10 * time.Second
	}
	baseHTTPClient := &http.Client{Timeout: httpTimeout}

	// External clients
	rateClient := httpclient.NewFrankfurterClient(
		baseHTTPClient,
		strings.TrimSuffix(appCfg.RatesAPI.BaseURL, "/"),
		appCfg.RatesAPI.BaseCurrency,
		appCfg.RatesAPI.TargetCurrency,
	)

	// Fallback snapshot
	fallback, err := snapshot.NewFileSnapshot(appCfg.Snapshot.Path, appCfg.Snapshot.MemoTTL)
	if err != nil {
		return err
	}
	defer fallback.Close()
	if _, statErr := os.Stat(appCfg.Snapshot.Path); statErr != nil {
		logrus.WithError(statErr).Warn("Rate snapshot not readable, fallback will fail until it is provisioned")
	}

	// Cache and sources
	rangeCache := cache.NewRangeCache(appCfg.Cache.Capacity, appCfg.Cache.TTL, clockwork.NewRealClock())
	policy := rate.DefaultRetryPolicy()
	if appCfg.Fetch.MaxAttempts > 0 {
		policy.MaxAttempts = appCfg.Fetch.MaxAttempts
	}
	policy.Delay = appCfg.Fetch.RetryDelay
	source := rate.NewCachingSource(rateClient, rangeCache, policy, appCfg.Fetch.OverallTimeout, appMetrics)

	// Services
	rateService := rate.NewService(source, fallback, rate.NewAggregator(appCfg.RatesAPI.TargetCurrency), appMetrics)
	queryValidator := rate.NewValidator()

	purger := rate.NewCachePurger(rangeCache, appMetrics, appCfg.Cache.PurgeInterval)
	// Ensure purger stops before process exit
	defer func() {
		if shutDownErr := purger.Shutdown(); shutDownErr != nil {
			logrus.Errorf("Cache purger shutdown error: %v", shutDownErr)
		}
	}()
	if startErr := purger.Start(ctx); startErr != nil {
		logrus.WithError(startErr).Error("Failed to start cache purger")
		return startErr
	}
	logrus.Info("✅ Cache purger activation successful")

	// Handlers and router
	rateHandler := handler.NewRateHandler(queryValidator, rateService)
	router := api.NewRouter(rateHandler, appMetrics, registry)

	logrus.WithFields(logrus.Fields{
		"pair": fmt.Sprintf("%s/%s", appCfg.RatesAPI.BaseCurrency, appCfg.RatesAPI.TargetCurrency),
	}).Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}
