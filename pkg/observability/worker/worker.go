package worker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// WorkerInstrumenter instruments background workers
type WorkerInstrumenter struct {
	tracer      trace.Tracer
	workersBusy metric.Int64UpDownCounter
	workersIdle metric.Int64UpDownCounter
	jobDuration metric.Float64Histogram
	jobsTotal   metric.Int64Counter
}

// NewWorkerInstrumenter creates a new worker instrumenter. Metric names are
// prefixed with the service name, dashes replaced by underscores.
func NewWorkerInstrumenter(tracer trace.Tracer, meter metric.Meter, serviceName string) (*WorkerInstrumenter, error) {
	prefix := strings.ReplaceAll(serviceName, "-", "_")

	workersBusy, err := meter.Int64UpDownCounter(
		fmt.Sprintf("%s_workers_busy", prefix),
		metric.WithDescription("Number of workers running a job"),
	)
	if err != nil {
		return nil, err
	}

	workersIdle, err := meter.Int64UpDownCounter(
		fmt.Sprintf("%s_workers_idle", prefix),
		metric.WithDescription("Number of workers waiting for a job"),
	)
	if err != nil {
		return nil, err
	}

	jobDuration, err := meter.Float64Histogram(
		fmt.Sprintf("%s_job_duration_seconds", prefix),
		metric.WithDescription("Background job duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	jobsTotal, err := meter.Int64Counter(
		fmt.Sprintf("%s_jobs_total", prefix),
		metric.WithDescription("Total background jobs processed"),
	)
	if err != nil {
		return nil, err
	}

	return &WorkerInstrumenter{
		tracer:      tracer,
		workersBusy: workersBusy,
		workersIdle: workersIdle,
		jobDuration: jobDuration,
		jobsTotal:   jobsTotal,
	}, nil
}

// WorkerStarted marks a worker as idle and available.
func (w *WorkerInstrumenter) WorkerStarted(ctx context.Context) {
	w.workersIdle.Add(ctx, 1)
}

// WorkerStopped removes an idle worker.
func (w *WorkerInstrumenter) WorkerStopped(ctx context.Context) {
	w.workersIdle.Add(ctx, -1)
}

// InstrumentJob wraps a job execution with a span and duration metrics
func (w *WorkerInstrumenter) InstrumentJob(ctx context.Context, jobType string, jobID string, fn func(context.Context) error) error {
	w.workersIdle.Add(ctx, -1)
	w.workersBusy.Add(ctx, 1)
	defer func() {
		w.workersBusy.Add(ctx, -1)
		w.workersIdle.Add(ctx, 1)
	}()

	ctx, span := w.tracer.Start(ctx, fmt.Sprintf("worker.%s", jobType),
		trace.WithAttributes(
			attribute.String("job.type", jobType),
			attribute.String("job.id", jobID),
		),
	)
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	duration := time.Since(start).Seconds()

	status := "success"
	if err != nil {
		status = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	attrs := metric.WithAttributes(
		attribute.String("job.type", jobType),
		attribute.String("status", status),
	)
	w.jobDuration.Record(ctx, duration, attrs)
	w.jobsTotal.Add(ctx, 1, attrs)

	return err
}
