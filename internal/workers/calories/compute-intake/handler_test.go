// internal/workers/calories/compute-intake/handler_test.go
package computeintake

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"math"
	"testing"
	"time"

	"calorie-workers/internal/common/config"
	"calorie-workers/internal/common/errors"
	"calorie-workers/internal/common/logger"
	"calorie-workers/internal/nutrition"

	"github.com/camunda/zeebe/clients/go/v8/pkg/commands"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
)

func createMockJob(key int64, variables map[string]interface{}) entities.Job {
	variablesJSON, _ := json.Marshal(variables)
	return entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:                key,
		Type:               TaskType,
		ProcessInstanceKey: key * 10,
		BpmnProcessId:      "daily-calories",
		Retries:            3,
		Variables:          string(variablesJSON),
	}}
}

func newTestHandler(t *testing.T) *Handler {
	return NewHandler(DefaultConfig(), nutrition.DefaultCatalog(), logger.NewTestLogger(t))
}

func TestHandler_Execute(t *testing.T) {
	tests := []struct {
		name        string
		frequencies []int
		expected    int
	}{
		{name: "nothing eaten", frequencies: make([]int, 10), expected: 0},
		{name: "two fries and a burger", frequencies: []int{2, 1, 0, 0, 0, 0, 0, 0, 0, 0}, expected: 1084},
		{name: "hash browns", frequencies: []int{0, 0, 0, 0, 0, 0, 0, 3, 0, 0}, expected: 1410},
	}

	handler := newTestHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := handler.Execute(context.Background(), &Input{Frequencies: tt.frequencies})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, output.ConsumedCalories)
			assert.Len(t, output.ItemCalories, 10)
		})
	}
}

func TestHandler_Execute_Errors(t *testing.T) {
	handler := newTestHandler(t)

	_, err := handler.Execute(context.Background(), &Input{Frequencies: []int{1, 2}})
	var stdErr *errors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, errors.ErrCodeDimensionMismatch, stdErr.Code)
	assert.False(t, stdErr.Retryable)

	negative := make([]int, 10)
	negative[0] = -1
	_, err = handler.Execute(context.Background(), &Input{Frequencies: negative})
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, errors.ErrCodeInvalidMeasurement, stdErr.Code)

	huge := make([]int, 10)
	huge[0] = math.MaxInt / 365
	huge[8] = math.MaxInt / 365
	_, err = handler.Execute(context.Background(), &Input{Frequencies: huge})
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, errors.ErrCodeInvalidMeasurement, stdErr.Code)
}

func TestHandler_ParseInput(t *testing.T) {
	handler := newTestHandler(t)

	input, err := handler.parseInput(createMockJob(1, map[string]interface{}{
		"frequencies": []int{1, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		"userRef":     "process-variable-from-elsewhere",
	}))
	require.NoError(t, err)
	assert.Equal(t, 1, input.Frequencies[0])
}

func TestHandler_ParseInput_SchemaViolations(t *testing.T) {
	handler := newTestHandler(t)

	tests := []struct {
		name      string
		variables map[string]interface{}
	}{
		{name: "missing frequencies", variables: map[string]interface{}{}},
		{name: "not an array", variables: map[string]interface{}{"frequencies": "3"}},
		{name: "fractional servings", variables: map[string]interface{}{"frequencies": []float64{1.5}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := handler.parseInput(createMockJob(2, tt.variables))
			var stdErr *errors.StandardError
			require.ErrorAs(t, err, &stdErr)
			assert.Equal(t, errors.ErrCodeSchemaValidationFailed, stdErr.Code)
		})
	}
}

type fakeGateway struct {
	pb.GatewayClient
	completed   []int64
	thrown      []string
	completeErr error
}

func (g *fakeGateway) CompleteJob(_ context.Context, in *pb.CompleteJobRequest, _ ...grpc.CallOption) (*pb.CompleteJobResponse, error) {
	g.completed = append(g.completed, in.JobKey)
	return &pb.CompleteJobResponse{}, g.completeErr
}

func (g *fakeGateway) ThrowError(_ context.Context, in *pb.ThrowErrorRequest, _ ...grpc.CallOption) (*pb.ThrowErrorResponse, error) {
	g.thrown = append(g.thrown, in.ErrorCode)
	return &pb.ThrowErrorResponse{}, nil
}

type fakeJobClient struct {
	gateway *fakeGateway
}

func noRetry(context.Context, error) bool { return false }

func (c fakeJobClient) NewCompleteJobCommand() commands.CompleteJobCommandStep1 {
	return commands.NewCompleteJobCommand(c.gateway, noRetry)
}

func (c fakeJobClient) NewFailJobCommand() commands.FailJobCommandStep1 {
	return commands.NewFailJobCommand(c.gateway, noRetry)
}

func (c fakeJobClient) NewThrowErrorCommand() commands.ThrowErrorCommandStep1 {
	return commands.NewThrowErrorCommand(c.gateway, noRetry)
}

func TestHandler_Handle_ReportsOutcome(t *testing.T) {
	handler := newTestHandler(t)

	t.Run("completed", func(t *testing.T) {
		gateway := &fakeGateway{}
		err := handler.Handle(fakeJobClient{gateway}, createMockJob(7, map[string]interface{}{
			"frequencies": []int{1, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		}))
		require.NoError(t, err)
		assert.Equal(t, []int64{7}, gateway.completed)
		assert.Empty(t, gateway.thrown)
	})

	t.Run("failed", func(t *testing.T) {
		gateway := &fakeGateway{}
		err := handler.Handle(fakeJobClient{gateway}, createMockJob(8, map[string]interface{}{
			"frequencies": []int{1, 2},
		}))
		var stdErr *errors.StandardError
		require.ErrorAs(t, err, &stdErr)
		assert.Equal(t, errors.ErrCodeDimensionMismatch, stdErr.Code)
		assert.Empty(t, gateway.completed)
		assert.Len(t, gateway.thrown, 1)
	})

	t.Run("complete command rejected", func(t *testing.T) {
		gateway := &fakeGateway{completeErr: stderrors.New("NOT_FOUND: job 9 not found")}
		err := handler.Handle(fakeJobClient{gateway}, createMockJob(9, map[string]interface{}{
			"frequencies": make([]int, 10),
		}))
		assert.EqualError(t, err, "NOT_FOUND: job 9 not found")
	})
}

func TestConfig(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
	assert.Equal(t, 2*time.Second, FromWorkerConfig(config.WorkerConfig{Timeout: 2000}).Timeout)
	assert.Error(t, (&Config{}).Validate())
}
