// internal/workers/reporting/record-daily-summary/handler.go
package recorddailysummary

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"calorie-workers/internal/common/errors"
	"calorie-workers/internal/common/logger"
	"calorie-workers/internal/common/metrics"
	"calorie-workers/internal/nutrition"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "record-daily-summary"
)

// SummaryIndexer is satisfied by database.ElasticsearchClient.
type SummaryIndexer interface {
	IndexDocument(ctx context.Context, index, id string, doc interface{}) error
}

const upsertSummarySQL = `
	INSERT INTO daily_summaries (
		id, user_ref, summary_date, consumed_calories, burned_calories,
		net_calories, feedback, bmi, bmi_category, report, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
	ON CONFLICT (id) DO UPDATE SET
		consumed_calories = EXCLUDED.consumed_calories,
		burned_calories   = EXCLUDED.burned_calories,
		net_calories      = EXCLUDED.net_calories,
		feedback          = EXCLUDED.feedback,
		bmi               = EXCLUDED.bmi,
		bmi_category      = EXCLUDED.bmi_category,
		report            = EXCLUDED.report,
		updated_at        = EXCLUDED.updated_at`

type Handler struct {
	config       *Config
	catalog      nutrition.Catalog
	db           *sql.DB
	indexer      SummaryIndexer
	now          func() time.Time
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
}

func NewHandler(cfg *Config, catalog nutrition.Catalog, db *sql.DB, indexer SummaryIndexer, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       cfg,
		catalog:      catalog,
		db:           db,
		indexer:      indexer,
		now:          time.Now,
		logger:       scoped,
		errorHandler: errors.NewErrorHandler(scoped),
	}
}

// SummaryID is stable per user and day, so re-recording a day overwrites the earlier row.
func SummaryID(userRef, summaryDate string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("calorie-workers/daily-summary/"+userRef+"/"+summaryDate)).String()
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
	recordedAt := h.now().UTC()

	summaryDate := input.SummaryDate
	if summaryDate == "" {
		summaryDate = recordedAt.Format(SummaryDateLayout)
	}
	if _, err := time.Parse(SummaryDateLayout, summaryDate); err != nil {
		return nil, errors.NewSchemaValidationFailedError(fmt.Sprintf("summaryDate: %v", err))
	}

	report, err := nutrition.RunDailyPipeline(h.catalog, nutrition.DailyInput{
		Frequencies: input.Frequencies,
		Durations:   input.Durations,
		Measurement: input.Measurement,
	})
	if err != nil {
		return nil, errors.FromCalculationError(err)
	}

	summaryID := SummaryID(input.UserRef, summaryDate)

	if err := h.persist(ctx, summaryID, input.UserRef, summaryDate, report, recordedAt); err != nil {
		return nil, err
	}

	doc := buildDocument(summaryID, input.UserRef, summaryDate, report, recordedAt)
	if err := h.indexer.IndexDocument(ctx, h.config.SummaryIndex, summaryID, doc); err != nil {
		return nil, errors.NewSearchIndexFailedError(h.config.SummaryIndex, err)
	}

	h.logger.Info("daily summary recorded", map[string]interface{}{
		"summaryId":   summaryID,
		"userRef":     input.UserRef,
		"summaryDate": summaryDate,
		"netCalories": report.Net.Net,
	})

	return &Output{
		SummaryID:   summaryID,
		SummaryDate: summaryDate,
		Report:      report,
		RecordedAt:  recordedAt.Format(time.RFC3339),
	}, nil
}

func (h *Handler) persist(ctx context.Context, summaryID, userRef, summaryDate string, report nutrition.DailyReport, recordedAt time.Time) error {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return errors.NewDatabaseInsertFailedError(fmt.Errorf("marshal report: %w", err))
	}

	var (
		bmi         sql.NullFloat64
		bmiCategory sql.NullString
	)
	if report.BMI != nil {
		bmi = sql.NullFloat64{Float64: report.BMI.Value, Valid: true}
		bmiCategory = sql.NullString{String: string(report.BMI.Category), Valid: true}
	}

	_, err = h.db.ExecContext(ctx, upsertSummarySQL,
		summaryID,
		userRef,
		summaryDate,
		report.ConsumedCalories,
		report.BurnedCalories,
		report.Net.Net,
		string(report.Net.Feedback),
		bmi,
		bmiCategory,
		reportJSON,
		recordedAt,
	)
	if err != nil {
		return errors.NewDatabaseInsertFailedError(err)
	}
	return nil
}

func buildDocument(summaryID, userRef, summaryDate string, report nutrition.DailyReport, recordedAt time.Time) SummaryDocument {
	doc := SummaryDocument{
		SummaryID:        summaryID,
		UserRef:          userRef,
		SummaryDate:      summaryDate,
		ConsumedCalories: report.ConsumedCalories,
		BurnedCalories:   report.BurnedCalories,
		NetCalories:      report.Net.Net,
		Feedback:         report.Net.Feedback,
		CreatedAt:        recordedAt,
	}
	if report.BMI != nil {
		value := report.BMI.Value
		doc.BMI = &value
		doc.BMICategory = string(report.BMI.Category)
	}
	return doc
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
		"jobKey":    job.Key,
		"summaryId": output.SummaryID,
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
