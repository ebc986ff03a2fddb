// internal/workers/notification/send-feedback-alert/handler.go
package sendfeedbackalert

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	awsmsg "calorie-workers/internal/common/aws"
	"calorie-workers/internal/common/errors"
	"calorie-workers/internal/common/logger"
	"calorie-workers/internal/common/metrics"
	"calorie-workers/internal/nutrition"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "send-feedback-alert"

	alertSubject = "Daily calorie warning"
)

type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type Handler struct {
	config       *Config
	sesClient    SESService
	snsClient    SNSService
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
}

// NewHandler accepts nil clients for channels that are disabled.
func NewHandler(cfg *Config, sesClient SESService, snsClient SNSService, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       cfg,
		sesClient:    sesClient,
		snsClient:    snsClient,
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
	output := &Output{
		NotificationID: uuid.New().String(),
		Channels:       []string{},
		SentAt:         time.Now().UTC().Format(time.RFC3339),
	}

	// Only the excess intake band is worth interrupting someone for.
	if input.NetFeedback != nutrition.ExcessIntakeWarning {
		output.Status = StatusSkipped
		return output, nil
	}

	message := alertMessage(input)

	if h.config.EmailEnabled && h.sesClient != nil && input.Email != "" {
		params := awsmsg.NewTextEmail(h.config.FromEmail, input.Email, alertSubject, message)
		if _, err := h.sesClient.SendEmail(ctx, params); err != nil {
			metrics.FeedbackAlertsTotal.WithLabelValues(ChannelEmail, "failed").Inc()
			return nil, errors.NewNotificationSendFailedError(ChannelEmail, err)
		}
		metrics.FeedbackAlertsTotal.WithLabelValues(ChannelEmail, StatusSent).Inc()
		output.Channels = append(output.Channels, ChannelEmail)
	}

	if h.config.SMSEnabled && h.snsClient != nil && input.Phone != "" {
		params := awsmsg.NewSMS(input.Phone, h.config.SenderID, message)
		if _, err := h.snsClient.Publish(ctx, params); err != nil {
			metrics.FeedbackAlertsTotal.WithLabelValues(ChannelSMS, "failed").Inc()
			return nil, errors.NewNotificationSendFailedError(ChannelSMS, err)
		}
		metrics.FeedbackAlertsTotal.WithLabelValues(ChannelSMS, StatusSent).Inc()
		output.Channels = append(output.Channels, ChannelSMS)
	}

	output.Status = StatusDisabled
	if len(output.Channels) > 0 {
		output.Status = StatusSent
	}
	return output, nil
}

func alertMessage(input *Input) string {
	if input.FeedbackText != "" {
		return fmt.Sprintf("Your net calorie intake today is %d calories. %s", input.NetCalories, input.FeedbackText)
	}
	return fmt.Sprintf("Your net calorie intake today is %d calories, which is greater than %d and not good for health.",
		input.NetCalories, nutrition.ExcessIntakeThreshold)
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
		"jobKey":         job.Key,
		"notificationId": output.NotificationID,
		"status":         output.Status,
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
