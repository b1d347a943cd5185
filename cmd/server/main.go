package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/fjod/go_checkout/internal/cfg"
	"github.com/fjod/go_checkout/internal/clock"
	h "github.com/fjod/go_checkout/internal/http"
	"github.com/fjod/go_checkout/internal/publisher"
	"github.com/fjod/go_checkout/internal/shipping"
	"github.com/fjod/go_checkout/internal/store"
	"github.com/fjod/go_checkout/pkg/circuitbreaker"
	"github.com/fjod/go_checkout/pkg/logger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

func main() {
	config, err := cfg.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	l, err := logger.New(config.Log.Level, config.Log.Format)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = l.Sync() }()
	zap.ReplaceGlobals(l)

	var manifestPublisher shipping.Publisher
	if config.Kafka.Enabled() {
		breaker := circuitbreaker.New(circuitbreaker.Settings{
			Name:        "kafka-manifests",
			MaxFailures: config.Kafka.BreakerMaxFailures,
			OpenTimeout: config.Kafka.BreakerOpenTimeout,
		}, l)
		writer := publisher.NewKafkaWriter(config.Kafka.Topic, config.Kafka.Brokers...)
		p := publisher.NewManifestPublisher(writer, breaker, config.Kafka.WriteTimeout, l)
		defer func() {
			if err := p.Close(); err != nil {
				l.Warn("failed to close kafka writer", zap.Error(err))
			}
		}()
		manifestPublisher = p
		l.Info("publishing shipment manifests",
			zap.Strings("brokers", config.Kafka.Brokers),
			zap.String("topic", config.Kafka.Topic))
	} else {
		l.Info("KAFKA_BROKERS not set, shipment manifests are not published")
	}

	clk := clock.System{}
	s := store.NewMemoryStore(clk, config.Store.CartTTL, config.Store.CleanupInterval)
	defer s.Close()

	newCart := h.NewCartFactory(clk, config.Checkout.Options(), l)
	router := h.NewRouter(s, newCart, manifestPublisher, config.Http.RequestTimeout, l)

	srv := &http.Server{
		Addr:         ":" + config.Http.Port,
		Handler:      otelhttp.NewHandler(router, "checkout-gateway"),
		ReadTimeout:  config.Http.ReadTimeout,
		WriteTimeout: config.Http.WriteTimeout,
		IdleTimeout:  config.Http.IdleTimeout,
	}

	go func() {
		l.Info("checkout gateway starting", zap.String("port", config.Http.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	l.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), config.Http.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		l.Error("server forced to shutdown", zap.Error(err))
	}

	l.Info("server exited")
}
