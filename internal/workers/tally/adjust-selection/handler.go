// internal/workers/tally/adjust-selection/handler.go
package adjustselection

import (
	"context"
	"encoding/json"
	"fmt"

	"calorie-workers/internal/common/errors"
	"calorie-workers/internal/common/logger"
	"calorie-workers/internal/common/metrics"
	"calorie-workers/internal/nutrition"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "adjust-selection"
)

type Handler struct {
	config       *Config
	catalog      nutrition.Catalog
	store        *TallyStore
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
}

func NewHandler(cfg *Config, catalog nutrition.Catalog, redisClient *redis.Client, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       cfg,
		catalog:      catalog,
		store:        NewTallyStore(redisClient, cfg.TallyTTL),
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

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	tallyID := input.TallyID
	if tallyID == "" {
		tallyID = uuid.New().String()
	}

	size, err := h.catalogSize(input.Kind)
	if err != nil {
		return nil, err
	}

	var total int
	updated, err := h.store.Update(ctx, tallyID, input.Kind, size, func(current []int) ([]int, error) {
		next, t, err := h.apply(input, current)
		if err != nil {
			return nil, errors.FromCalculationError(err)
		}
		total = t
		return next, nil
	})
	if err != nil {
		return nil, err
	}

	output := &Output{
		TallyID:   tallyID,
		Kind:      input.Kind,
		Selection: updated,
		Total:     total,
	}
	if input.Kind == KindIntake {
		output.Frequencies = updated
	} else {
		output.Durations = updated
	}
	return output, nil
}

func (h *Handler) catalogSize(kind Kind) (int, error) {
	switch kind {
	case KindIntake:
		return len(h.catalog.Foods), nil
	case KindActivity:
		return len(h.catalog.Activities), nil
	default:
		return 0, errors.NewInvalidActionError(fmt.Sprintf("unknown selection kind %q", kind))
	}
}

// apply adjusts one entry and returns the new selection with its calorie total.
func (h *Handler) apply(input *Input, current []int) ([]int, int, error) {
	switch input.Kind {
	case KindIntake:
		sel := nutrition.IntakeSelection(current)
		var err error
		switch input.Action {
		case ActionIncrement:
			sel, err = sel.IncrementFrequency(input.Index)
		case ActionDecrement:
			sel, err = sel.DecrementFrequency(input.Index)
		default:
			return nil, 0, errors.NewInvalidActionError(fmt.Sprintf("unknown action %q", input.Action))
		}
		if err != nil {
			return nil, 0, err
		}
		total, err := nutrition.ComputeConsumed(h.catalog.Foods, sel)
		return sel, total, err

	case KindActivity:
		sel := nutrition.ActivitySelection(current)
		var err error
		switch input.Action {
		case ActionIncrement:
			sel, err = sel.IncrementDuration(input.Index)
		case ActionDecrement:
			sel, err = sel.DecrementDuration(input.Index)
		default:
			return nil, 0, errors.NewInvalidActionError(fmt.Sprintf("unknown action %q", input.Action))
		}
		if err != nil {
			return nil, 0, err
		}
		total, err := nutrition.ComputeBurned(h.catalog.Activities, sel)
		return sel, total, err
	}

	return nil, 0, errors.NewInvalidActionError(fmt.Sprintf("unknown selection kind %q", input.Kind))
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
		"jobKey":  job.Key,
		"tallyId": output.TallyID,
		"kind":    output.Kind,
		"total":   output.Total,
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
