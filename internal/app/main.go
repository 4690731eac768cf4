package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/Egor213/LogOps/internal/broker"
	kafkabroker "github.com/Egor213/LogOps/internal/broker/kafka"
	"github.com/Egor213/LogOps/internal/config"
	httpv1 "github.com/Egor213/LogOps/internal/controller/http/v1"
	"github.com/Egor213/LogOps/internal/metrics"
	"github.com/Egor213/LogOps/internal/service"
	errorsUtils "github.com/Egor213/LogOps/pkg/errors"
	"github.com/Egor213/LogOps/pkg/httpserver"
	"github.com/Egor213/LogOps/pkg/logger"
	"github.com/labstack/echo/v4"

	log "github.com/sirupsen/logrus"
)

func Run() {
	// Config
	cfg, err := config.New()
	if err != nil {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}

	// Logger
	logger.SetupLogger(cfg.Log.Level, cfg.Log.Format)
	log.Info("Logger has been set up")

	// Storage
	repositories, closeStorage, err := setupStorage(context.Background(), cfg)
	if err != nil {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}
	defer closeStorage()

	// Producer
	brokerProducer, closeProducer := setupProducer(cfg.Kafka)
	defer closeProducer()

	// Services
	metricsCnt := metrics.New()
	deps := service.ServicesDependencies{
		Repos:          repositories,
		Counters:       metricsCnt,
		BrokerProducer: brokerProducer,
	}
	services := service.NewServices(deps)

	// HTTP API
	log.Infof("Starting HTTP server...")
	log.Debugf("HTTP server port: %s", cfg.HTTP.Port)
	apiHandler := echo.New()
	httpv1.ConfigureRouter(apiHandler, services, metricsCnt, httpv1.AppInfo{
		Name:    cfg.App.Name,
		Version: cfg.App.Version,
	})
	apiServer := httpserver.New(apiHandler, httpserver.Port(cfg.HTTP.Port))

	// Prometheus server
	log.Infof("Starting metrics server...")
	log.Debugf("Metrics server port: %s", cfg.Prometheus.Port)
	metricsHandler := echo.New()
	metrics.ConfigureRouter(metricsHandler)
	metricsServer := httpserver.New(metricsHandler, httpserver.Port(cfg.Prometheus.Port))

	log.Info("Configuring graceful shutdown...")

	// Waiting signal
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info(errorsUtils.WrapPathErr(errors.New(s.String())))
	case err := <-metricsServer.Notify():
		log.Error(errorsUtils.WrapPathErr(err))
	case err := <-apiServer.Notify():
		log.Error(errorsUtils.WrapPathErr(err))
	}

	// Graceful shutdown
	shutdownApp(apiServer, metricsServer)
}

func setupProducer(cfg config.Kafka) (broker.Producer, func()) {
	if len(cfg.Brokers) == 0 {
		log.Info("Kafka brokers are not set, ingested logs will not be published")
		return broker.NoopProducer{}, func() {}
	}

	p := kafkabroker.NewProducer(kafkabroker.ProducerConfig{
		Brokers: cfg.Brokers,
		Topic:   cfg.Topic,
	})
	return p, func() {
		if err := p.Close(); err != nil {
			log.Error(errorsUtils.WrapPathErr(err))
		}
	}
}

func shutdownApp(apiServer, metricsServer *httpserver.Server) {
	log.Info("Shutting down...")
	if err := apiServer.Shutdown(); err != nil {
		log.Error(errorsUtils.WrapPathErr(err))
	}
	if err := metricsServer.Shutdown(); err != nil {
		log.Error(errorsUtils.WrapPathErr(err))
	}
}
