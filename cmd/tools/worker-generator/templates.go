package main

var templates = map[string]string{
	"config.go":       configTemplate,
	"models.go":       modelsTemplate,
	"validation.go":   validationTemplate,
	"handler.go":      handlerTemplate,
	"handler_test.go": testTemplate,
}

const configTemplate = `package {{ .PackageName }}

import (
	"time"

	"calorie-workers/internal/common/config"
)

type Config struct {
	Timeout time.Duration
}

func DefaultConfig() *Config {
	return &Config{Timeout: 5 * time.Second}
}

func FromWorkerConfig(wc config.WorkerConfig) *Config {
	cfg := DefaultConfig()
	if wc.Timeout > 0 {
		cfg.Timeout = config.GetDuration(wc.Timeout)
	}
	return cfg
}
`

const modelsTemplate = `package {{ .PackageName }}

type Input struct {
{{- range .Fields }}
	{{ .GoName }} {{ .GoType }} {{ .JSONTag }}
{{- end }}
}

type Output struct {
}
`

const validationTemplate = `package {{ .PackageName }}

import "calorie-workers/internal/common/validation"

var inputValidator = validation.MustCompile(GetInputSchema())

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Required: []string{ {{- range $i, $n := .RequiredNames }}{{ if $i }}, {{ end }}"{{ $n }}"{{ end -}} },
		Properties: map[string]validation.Property{
{{- range .Fields }}
			"{{ .Name }}": {
				Type: "{{ .JSONType }}",
{{- if eq .JSONType "array" }}
				Items: &validation.Property{Type: "integer"},
{{- end }}
			},
{{- end }}
		},
		AdditionalProperties: true,
	}
}
`

const handlerTemplate = `// internal/workers/{{ .Domain }}/{{ .TaskType }}/handler.go
package {{ .PackageName }}

import (
	"context"
	"encoding/json"

	"calorie-workers/internal/common/errors"
	"calorie-workers/internal/common/logger"
	"calorie-workers/internal/common/metrics"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "{{ .TaskType }}"
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

func (h *Handler) execute(_ context.Context, _ *Input) (*Output, error) {
	return &Output{}, nil
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
		"jobKey": job.Key,
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
`

const testTemplate = `package {{ .PackageName }}

import (
	"context"
	"testing"

	"calorie-workers/internal/common/config"
	"calorie-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute(t *testing.T) {
	h := NewHandler(DefaultConfig(), logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{})
	require.NoError(t, err)
	assert.NotNil(t, out)
}

func TestParseInput_RejectsNonObject(t *testing.T) {
	h := NewHandler(DefaultConfig(), logger.NewTestLogger(t))

	_, err := h.parseInput(entities.Job{ActivatedJob: &pb.ActivatedJob{Variables: "[]"}})
	assert.Error(t, err)
}

func TestFromWorkerConfig(t *testing.T) {
	assert.Equal(t, DefaultConfig().Timeout, FromWorkerConfig(config.WorkerConfig{}).Timeout)
}
`
