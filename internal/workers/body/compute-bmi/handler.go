// internal/workers/body/compute-bmi/handler.go
package computebmi

import (
	"context"
	"encoding/json"

	"calorie-workers/internal/common/errors"
	"calorie-workers/internal/common/logger"
	"calorie-workers/internal/common/metrics"
	"calorie-workers/internal/nutrition"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "compute-bmi"
)

type Handler struct {
	config       *Config
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
}

func NewHandler(cfg *Config, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       cfg,
		logger:       scoped,
		errorHandler: errors.NewErrorHandler(scoped),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) error {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	input, err := h.parseInput(job)
	if err != nil {
		return h.failJob(client, job, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, input)
	if err != nil {
		return h.failJob(client, job, err)
	}

	return h.completeJob(client, job, output)
}

func (h *Handler) parseInput(job entities.Job) (*Input, error) {
	raw := []byte(job.Variables)

	result, err := inputValidator.Validate(raw)
	if err != nil {
		return nil, errors.NewParseError(err)
	}
	if !result.Valid {
		return nil, errors.NewSchemaValidationFailedError(result.Summary())
	}

	var input Input
	if err := json.Unmarshal(raw, &input); err != nil {
		return nil, errors.NewParseError(err)
	}
	return &input, nil
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	m := input.Measurement

	result, err := nutrition.ComputeBMI(m)
	if err != nil {
		return nil, errors.FromCalculationError(err)
	}

	// ComputeBMI has already accepted both values, so these cannot fail.
	heightM, _ := m.HeightMeters()
	weightKg, _ := m.WeightKilograms()

	metrics.BMICategoryTotal.WithLabelValues(string(result.Category)).Inc()

	return &Output{
		BMI:          result.Value,
		BMIDisplay:   result.Display(),
		BMICategory:  result.Category,
		BMILabel:     result.Category.Label(),
		HeightMeters: heightM,
		WeightKg:     weightKg,
	}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) error {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return err
	}

	if _, err := cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
		return err
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	h.logger.Info("job completed successfully", map[string]interface{}{
		"jobKey":      job.Key,
		"bmiCategory": output.BMICategory,
	})
	return nil
}

// failJob reports err to zeebe and returns the standardized error it reported.
func (h *Handler) failJob(client worker.JobClient, job entities.Job, err error) error {
	stdErr := errors.FromCalculationError(err)
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(stdErr.Code)).Inc()
	h.errorHandler.HandleJobError(context.Background(), client, job, stdErr)
	return stdErr
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
