// cmd/mpr121d/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/tamzrod/mpr121d/internal/bus"
	"github.com/tamzrod/mpr121d/internal/config"
	"github.com/tamzrod/mpr121d/internal/httpapi"
	"github.com/tamzrod/mpr121d/internal/logging"
	"github.com/tamzrod/mpr121d/internal/metrics"
	"github.com/tamzrod/mpr121d/internal/mpr121"
	pubmqtt "github.com/tamzrod/mpr121d/internal/publish/mqtt"
	"github.com/tamzrod/mpr121d/internal/sensor"
	"github.com/tamzrod/mpr121d/internal/status"
	"github.com/tamzrod/mpr121d/internal/writer"
)

var _ sensor.Handle = (*mpr121.Device)(nil)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: mpr121d <config.yaml>")
		os.Exit(2)
	}

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "config validation failed: %v\n", err)
		os.Exit(1)
	}
	config.Normalize(cfg)

	logger, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, logger)
	stop()

	if err != nil {
		logger.Errorw("mpr121d failed", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

func run(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) error {
	// ---- bus + sensor ----
	b, err := bus.Open(cfg.Sensor.Bus)
	if err != nil {
		return err
	}
	logger.Infow("Opened I2C bus", "bus", b.String())

	open := func(address string) (sensor.Handle, error) {
		d, err := mpr121.Open(b, address)
		if err != nil {
			_ = b.Close()
			return nil, err
		}
		return d, nil
	}

	interval := time.Duration(cfg.Sensor.IntervalMs) * time.Millisecond
	staleAfter := 10 * interval
	if staleAfter < time.Second {
		staleAfter = time.Second
	}

	tracker := status.NewTracker(staleAfter)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	// running is bound once the sensor exists
	var s *sensor.Sensor
	orch := newOrchestrator(tracker, func() bool { return s.IsRunning() }, m, logger)

	s, err = sensor.Build(cfg.Sensor, open,
		sensor.WithLogger(logger),
		sensor.WithErrorHandler(orch.onError),
	)
	if err != nil {
		return fmt.Errorf("sensor build failed: %w", err)
	}
	defer s.Close()

	s.Subscribe(orch.onSample)

	// ---- optional sinks ----
	if cfg.MQTT.Broker != "" {
		p, err := pubmqtt.Connect(pubmqtt.Config{
			Broker:   cfg.MQTT.Broker,
			Topic:    cfg.MQTT.Topic,
			ClientID: cfg.MQTT.ClientID,
			Retain:   cfg.MQTT.Retain,
		}, logger)
		if err != nil {
			return err
		}
		defer p.Close()
		orch.mqtt = p
	}

	if cfg.Modbus.Endpoint != "" {
		w, sw, closeWriter, err := writer.Build(cfg.Modbus)
		if err != nil {
			return fmt.Errorf("modbus writer failed (endpoint=%s): %w", cfg.Modbus.Endpoint, err)
		}
		defer closeWriter()
		orch.data = w
		orch.status = sw
	}

	// ---- run ----
	go orch.run(ctx)

	if err := s.Start(ctx); err != nil {
		return err
	}

	logger.Infow("mpr121d started",
		"address", s.Address(),
		"interval", s.Interval(),
		"running", s.IsRunning(),
		"mqtt", cfg.MQTT.Broker != "",
		"modbus", cfg.Modbus.Endpoint != "")

	if cfg.HTTP.Listen == "" {
		<-ctx.Done()
		logger.Info("Shutting down")
		return nil
	}

	api := httpapi.New(s, tracker, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), logger)
	srv := &http.Server{
		Addr:              cfg.HTTP.Listen,
		Handler:           api.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infow("HTTP listening", "addr", cfg.HTTP.Listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
