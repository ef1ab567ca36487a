package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"vouch/internal/audit"
	"vouch/internal/clients/issuance"
	"vouch/internal/clients/vendor"
	"vouch/internal/platform/config"
	"vouch/internal/platform/health"
	"vouch/internal/platform/kafka/producer"
	"vouch/internal/platform/logger"
	platformmetrics "vouch/internal/platform/metrics"
	"vouch/internal/storage"
	storagehandler "vouch/internal/storage/handler"
	httptransport "vouch/internal/transport/http"
	verifhandler "vouch/internal/verification/handler"
	verifmetrics "vouch/internal/verification/metrics"
	"vouch/internal/verification/service"
	"vouch/internal/verification/store"
	"vouch/internal/verification/tracer"
)

var errVendorCircuitOpen = errors.New("vendor circuit open")

// main wires dependencies and keeps the server lifecycle small. Business
// logic lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	log.Info("initializing vouch",
		"addr", cfg.Addr,
		"storage_backend", cfg.Storage.Backend,
	)

	platformMetrics := platformmetrics.New()

	objectStore, err := storage.New(cfg.Storage)
	if err != nil {
		log.Error("storage initialization failed", "error", err)
		os.Exit(1)
	}

	auditPublisher, closeAudit := newAuditPublisher(cfg.Kafka, log)

	vendorClient := vendor.New(cfg.Vendor, vendor.WithLogger(log))
	issuanceClient := issuance.New(cfg.Issuance)

	svc := service.New(
		store.NewSessionRegistry(),
		store.NewConnectionCache(),
		store.NewIssuanceGate(),
		vendorClient,
		issuanceClient,
		service.WithLogger(log),
		service.WithMetrics(verifmetrics.New()),
		service.WithTracer(tracer.NewOTel()),
		service.WithAuditPublisher(auditPublisher),
	)

	healthHandler := health.New()
	healthHandler.RegisterCheck("storage", func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return objectStore.Ping(ctx)
	})
	healthHandler.RegisterCheck("vendor", func() error {
		if vendorClient.Breaker().IsOpen() {
			return errVendorCircuitOpen
		}
		return nil
	})

	router := httptransport.NewRouter(
		httptransport.Config{APIKey: cfg.APIKey, APIKeyHash: cfg.APIKeyHash},
		verifhandler.New(svc, log),
		storagehandler.New(objectStore, log, platformMetrics),
		healthHandler,
		log,
		platformMetrics,
	)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info("starting http server", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown on SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	log.Info("shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	closeAudit()

	log.Info("server stopped")
}

// newAuditPublisher prefers Kafka when brokers are configured and falls back
// to the process logger otherwise. The returned func flushes the producer on
// shutdown.
func newAuditPublisher(cfg config.Kafka, log *slog.Logger) (audit.Publisher, func()) {
	if cfg.Brokers == "" {
		log.Info("kafka not configured, audit events go to the process log")
		return audit.NewLogPublisher(log), func() {}
	}

	kafkaProducer, err := producer.New(producer.Config{
		Brokers:         cfg.Brokers,
		Retries:         3,
		DeliveryTimeout: 10 * time.Second,
	}, log)
	if err != nil {
		log.Warn("kafka producer initialization failed, audit events go to the process log", "error", err)
		return audit.NewLogPublisher(log), func() {}
	}

	closer := func() {
		if err := kafkaProducer.Close(); err != nil {
			log.Warn("kafka producer close failed", "error", err)
		}
	}
	return audit.NewKafkaPublisher(kafkaProducer, cfg.AuditTopic, log), closer
}
