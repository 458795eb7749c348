package workflow

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

const instrumentationName = "github.com/fyrsmithlabs/draftd/internal/workflow"

// Metrics holds the workflow instruments. Instruments are registered against
// the global meter provider; exporter wiring is the caller's concern.
type Metrics struct {
	meter       metric.Meter
	logger      *zap.Logger
	runsTotal   metric.Int64Counter
	stageDur    metric.Float64Histogram
	draftsTotal metric.Int64Counter
}

// NewMetrics creates workflow metrics instruments.
func NewMetrics(logger *zap.Logger) *Metrics {
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &Metrics{
		meter:  otel.Meter(instrumentationName),
		logger: logger,
	}
	m.init()
	return m
}

func (m *Metrics) init() {
	var err error

	m.runsTotal, err = m.meter.Int64Counter(
		"draftd.workflow.runs_total",
		metric.WithDescription("Total workflow runs labeled by status (success, failure)."),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		m.logger.Warn("failed to create runs counter", zap.Error(err))
	}

	m.stageDur, err = m.meter.Float64Histogram(
		"draftd.workflow.stage_duration_seconds",
		metric.WithDescription("Stage execution duration in seconds, labeled by stage and platform. Dominated by text generation latency."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0),
	)
	if err != nil {
		m.logger.Warn("failed to create stage duration histogram", zap.Error(err))
	}

	m.draftsTotal, err = m.meter.Int64Counter(
		"draftd.workflow.drafts_total",
		metric.WithDescription("Total drafts generated, labeled by platform."),
		metric.WithUnit("{draft}"),
	)
	if err != nil {
		m.logger.Warn("failed to create drafts counter", zap.Error(err))
	}
}

// RecordRun records a completed or failed run.
func (m *Metrics) RecordRun(ctx context.Context, success bool) {
	if m == nil || m.runsTotal == nil {
		return
	}
	status := "success"
	if !success {
		status = "failure"
	}
	m.runsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
}

// RecordStage records one stage execution. Platform is empty for the edit
// stage, which is not platform-specific.
func (m *Metrics) RecordStage(ctx context.Context, stage Stage, platform Platform, d time.Duration) {
	if m == nil || m.stageDur == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String("stage", string(stage))}
	if platform != "" {
		attrs = append(attrs, attribute.String("platform", string(platform)))
	}
	m.stageDur.Record(ctx, d.Seconds(), metric.WithAttributes(attrs...))
}

// RecordDraft counts one generated draft.
func (m *Metrics) RecordDraft(ctx context.Context, platform Platform) {
	if m == nil || m.draftsTotal == nil {
		return
	}
	m.draftsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("platform", string(platform))))
}
