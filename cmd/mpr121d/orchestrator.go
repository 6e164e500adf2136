// cmd/mpr121d/orchestrator.go
package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tamzrod/mpr121d/internal/metrics"
	"github.com/tamzrod/mpr121d/internal/status"
	"github.com/tamzrod/mpr121d/internal/touch"
	"github.com/tamzrod/mpr121d/internal/writer"
)

// queueSize bounds how many samples may wait for slow sinks.
const queueSize = 64

type samplePublisher interface {
	PublishSample(s touch.Sample) error
	PublishStatus(s status.Snapshot) error
}

// orchestrator moves samples from the poll loop to the sinks so that a
// slow broker or Modbus target never delays polling. It owns the status
// tracker updates and the 1 Hz status clock.
type orchestrator struct {
	samples chan touch.Sample
	errs    chan error

	tracker *status.Tracker
	running func() bool
	metrics *metrics.Metrics
	logger  *zap.SugaredLogger

	// optional sinks
	data   writer.Writer
	status writer.StatusWriter
	mqtt   samplePublisher

	published status.Snapshot
	havePub   bool
}

func newOrchestrator(tracker *status.Tracker, running func() bool, m *metrics.Metrics, logger *zap.SugaredLogger) *orchestrator {
	return &orchestrator{
		samples: make(chan touch.Sample, queueSize),
		errs:    make(chan error, queueSize),
		tracker: tracker,
		running: running,
		metrics: m,
		logger:  logger.Named("orchestrator"),
	}
}

// onSample is the sensor's data subscriber. It never blocks.
func (o *orchestrator) onSample(s touch.Sample) {
	select {
	case o.samples <- s:
	default:
		o.metrics.ObserveDrop()
	}
}

// onError is the sensor's step error handler. It never blocks.
func (o *orchestrator) onError(err error) {
	select {
	case o.errs <- err:
	default:
	}
}

func (o *orchestrator) run(ctx context.Context) {
	secTicker := time.NewTicker(time.Second)
	defer secTicker.Stop()

	// full status assert on start
	o.publishStatus(true)

	for {
		select {
		case <-ctx.Done():
			return

		case s := <-o.samples:
			o.handleSample(s)

		case err := <-o.errs:
			o.tracker.ObserveError(err)
			o.metrics.ObserveError(err)
			o.publishStatus(false)

		case <-secTicker.C:
			changed := o.tracker.Tick(o.running())
			o.publishStatus(changed)
		}
	}
}

func (o *orchestrator) handleSample(s touch.Sample) {
	o.tracker.ObserveSample(s)
	o.metrics.ObserveSample(s)

	if o.data != nil {
		if err := o.data.Write(s); err != nil {
			o.logger.Warnw("Modbus write failed", "error", err)
		}
	}
	if o.mqtt != nil {
		if err := o.mqtt.PublishSample(s); err != nil {
			o.logger.Warnw("MQTT publish failed", "error", err)
		}
	}

	o.publishStatus(false)
}

// publishStatus pushes the snapshot to the status sinks when forced or
// when something other than the sample counter changed.
func (o *orchestrator) publishStatus(force bool) {
	snap := o.tracker.Snapshot()
	o.metrics.SetHealth(snap.Health)

	if !force && o.havePub &&
		snap.Health == o.published.Health &&
		snap.LastErrorCode == o.published.LastErrorCode &&
		snap.SecondsInError == o.published.SecondsInError &&
		snap.TouchedMask == o.published.TouchedMask {
		return
	}
	o.published, o.havePub = snap, true

	if o.status != nil {
		if err := o.status.WriteStatus(snap); err != nil {
			o.logger.Warnw("Status write failed", "error", err)
		}
	}
	if o.mqtt != nil {
		if err := o.mqtt.PublishStatus(snap); err != nil {
			o.logger.Warnw("MQTT status publish failed", "error", err)
		}
	}
}
