// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"time"

	"calorie-workers/internal/common/config"
	"calorie-workers/internal/common/logger"
	"calorie-workers/internal/common/metrics"
	"calorie-workers/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// Job outcomes recorded on the jobs.processed counter.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// JobHandler is implemented by every worker package's Handler. Handle returns the error the job
// was failed with, or nil once the job is completed.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job) error
}

// HandlerFunc is the error-returning form of worker.JobHandler that Instrument wraps.
type HandlerFunc func(client worker.JobClient, job entities.Job) error

// Worker is one opened zeebe job worker.
type Worker struct {
	worker   worker.JobWorker
	taskType string
	logger   logger.Logger
}

// NewWorker opens a job worker for taskType with instrumentation around the handler.
func NewWorker(
	client zbc.Client,
	taskType string,
	wcfg config.WorkerConfig,
	handler JobHandler,
	obs *observability.Observability,
	log logger.Logger,
) *Worker {
	jobWorker := client.NewJobWorker().
		JobType(taskType).
		Handler(Instrument(taskType, handler.Handle, obs)).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Open()

	log.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeoutMs":     wcfg.Timeout,
	})

	return &Worker{
		worker:   jobWorker,
		taskType: taskType,
		logger:   log,
	}
}

// Instrument wraps fn with the active-jobs gauge, the duration histogram and a span per job.
// The span and the jobs.processed counter carry the outcome fn reports.
func Instrument(taskType string, fn HandlerFunc, obs *observability.Observability) worker.JobHandler {
	return func(client worker.JobClient, job entities.Job) {
		start := time.Now()
		metrics.WorkerJobsActive.WithLabelValues(taskType).Inc()
		defer metrics.WorkerJobsActive.WithLabelValues(taskType).Dec()

		ctx, span := obs.StartSpan(context.Background(), taskType, job.Key)

		err := fn(client, job)

		elapsed := time.Since(start)
		metrics.WorkerJobDuration.WithLabelValues(taskType).Observe(elapsed.Seconds())
		obs.RecordJobDuration(ctx, taskType, elapsed)

		status := StatusCompleted
		if err != nil {
			status = StatusFailed
		}
		obs.RecordJobProcessed(ctx, taskType, status)
		observability.EndSpan(span, err)
	}
}

// Stop closes the worker and waits for in-flight jobs.
func (w *Worker) Stop() {
	w.logger.Info("stopping worker", map[string]interface{}{"taskType": w.taskType})
	w.worker.Close()
	w.worker.AwaitClose()
}
