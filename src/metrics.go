package mambo

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// masterMetrics wraps the OpenTelemetry instruments the master emits.
// Without a metrics SDK installed these are no-ops, so tests and minimal
// deployments pay nothing.
type masterMetrics struct {
	syncLossGauge     metric.Float64Gauge
	syncBatchDur      metric.Float64Histogram
	asyncLossGauge    metric.Float64Gauge
	asyncBestGauge    metric.Float64Gauge
	asyncUpdatesCount metric.Int64Counter
}

func newMasterMetrics() *masterMetrics {
	meter := otel.Meter("cactus/mambo")
	m := &masterMetrics{}
	var err error
	if m.syncLossGauge, err = meter.Float64Gauge("master.sync.loss",
		metric.WithDescription("Distributed loss after each synchronous epoch")); err != nil {
		otel.Handle(err)
	}
	if m.syncBatchDur, err = meter.Float64Histogram("master.sync.batch.duration",
		metric.WithDescription("Wall time of one scatter/gather gradient round"),
		metric.WithUnit("s")); err != nil {
		otel.Handle(err)
	}
	if m.asyncLossGauge, err = meter.Float64Gauge("master.async.loss",
		metric.WithDescription("Loss observed by the async monitor")); err != nil {
		otel.Handle(err)
	}
	if m.asyncBestGauge, err = meter.Float64Gauge("master.async.best_loss",
		metric.WithDescription("Best loss observed so far in the async run")); err != nil {
		otel.Handle(err)
	}
	if m.asyncUpdatesCount, err = meter.Int64Counter("master.async.updates",
		metric.WithDescription("Accepted streamed gradient updates")); err != nil {
		otel.Handle(err)
	}
	return m
}

func (m *masterMetrics) syncLoss(loss float64) {
	if m.syncLossGauge != nil {
		m.syncLossGauge.Record(context.Background(), loss)
	}
}

func (m *masterMetrics) syncBatchDuration(d time.Duration) {
	if m.syncBatchDur != nil {
		m.syncBatchDur.Record(context.Background(), d.Seconds())
	}
}

func (m *masterMetrics) asyncLoss(loss float64) {
	if m.asyncLossGauge != nil {
		m.asyncLossGauge.Record(context.Background(), loss)
	}
}

func (m *masterMetrics) asyncBestLoss(loss float64) {
	if m.asyncBestGauge != nil {
		m.asyncBestGauge.Record(context.Background(), loss)
	}
}

func (m *masterMetrics) asyncUpdate() {
	if m.asyncUpdatesCount != nil {
		m.asyncUpdatesCount.Add(context.Background(), 1)
	}
}
