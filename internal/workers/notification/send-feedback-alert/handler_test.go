// internal/workers/notification/send-feedback-alert/handler_test.go
package sendfeedbackalert

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"

	"calorie-workers/internal/common/config"
	"calorie-workers/internal/common/errors"
	"calorie-workers/internal/common/logger"
	"calorie-workers/internal/nutrition"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockSESService struct {
	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
	calls         int
}

func (m *MockSESService) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	m.calls++
	return m.SendEmailFunc(ctx, params, optFns...)
}

type MockSNSService struct {
	PublishFunc func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
	calls       int
}

func (m *MockSNSService) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	m.calls++
	return m.PublishFunc(ctx, params, optFns...)
}

func createTestConfig() *Config {
	cfg := DefaultConfig()
	cfg.EmailEnabled = true
	cfg.SMSEnabled = true
	cfg.FromEmail = "alerts@calorie.example"
	cfg.SenderID = "CALORIES"
	return cfg
}

func excessInput() *Input {
	return &Input{
		NetFeedback:  nutrition.ExcessIntakeWarning,
		NetCalories:  3400,
		FeedbackText: "Your net calorie intake for the day is greater than 3000, which is not good for health.",
		Email:        "sam@example.com",
		Phone:        "+15551234567",
	}
}

func okSES(t *testing.T, wantTo string) *MockSESService {
	return &MockSESService{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			assert.Equal(t, "alerts@calorie.example", aws.ToString(params.Source))
			assert.Equal(t, []string{wantTo}, params.Destination.ToAddresses)
			assert.Equal(t, alertSubject, aws.ToString(params.Message.Subject.Data))
			assert.Contains(t, aws.ToString(params.Message.Body.Text.Data), "3400 calories")
			return &ses.SendEmailOutput{MessageId: aws.String("ses-1")}, nil
		},
	}
}

func okSNS(t *testing.T, wantPhone string) *MockSNSService {
	return &MockSNSService{
		PublishFunc: func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
			assert.Equal(t, wantPhone, aws.ToString(params.PhoneNumber))
			assert.Equal(t, "CALORIES", aws.ToString(params.MessageAttributes["AWS.SNS.SMS.SenderID"].StringValue))
			return &sns.PublishOutput{MessageId: aws.String("sns-1")}, nil
		},
	}
}

func TestHandler_Execute_SendsBothChannels(t *testing.T) {
	sesMock := okSES(t, "sam@example.com")
	snsMock := okSNS(t, "+15551234567")
	handler := NewHandler(createTestConfig(), sesMock, snsMock, logger.NewTestLogger(t))

	output, err := handler.Execute(context.Background(), excessInput())
	require.NoError(t, err)

	assert.Equal(t, StatusSent, output.Status)
	assert.Equal(t, []string{ChannelEmail, ChannelSMS}, output.Channels)
	assert.Len(t, output.NotificationID, 36)
	assert.NotEmpty(t, output.SentAt)
	assert.Equal(t, 1, sesMock.calls)
	assert.Equal(t, 1, snsMock.calls)
}

func TestHandler_Execute_SkipsNonWarnings(t *testing.T) {
	sesMock := okSES(t, "sam@example.com")
	snsMock := okSNS(t, "+15551234567")
	handler := NewHandler(createTestConfig(), sesMock, snsMock, logger.NewNoOpLogger())

	for _, feedback := range []nutrition.NetFeedback{nutrition.LosingWeight, nutrition.Balanced, nutrition.GainingWeight} {
		t.Run(string(feedback), func(t *testing.T) {
			input := excessInput()
			input.NetFeedback = feedback

			output, err := handler.Execute(context.Background(), input)
			require.NoError(t, err)
			assert.Equal(t, StatusSkipped, output.Status)
			assert.Empty(t, output.Channels)
		})
	}
	assert.Zero(t, sesMock.calls)
	assert.Zero(t, snsMock.calls)
}

func TestHandler_Execute_ChannelSelection(t *testing.T) {
	tests := []struct {
		name         string
		emailEnabled bool
		smsEnabled   bool
		email        string
		phone        string
		wantStatus   string
		wantChannels []string
	}{
		{name: "email only", emailEnabled: true, smsEnabled: true, email: "sam@example.com", wantStatus: StatusSent, wantChannels: []string{ChannelEmail}},
		{name: "sms only", emailEnabled: true, smsEnabled: true, phone: "+15551234567", wantStatus: StatusSent, wantChannels: []string{ChannelSMS}},
		{name: "sms disabled", emailEnabled: true, smsEnabled: false, email: "sam@example.com", phone: "+15551234567", wantStatus: StatusSent, wantChannels: []string{ChannelEmail}},
		{name: "no contact", emailEnabled: true, smsEnabled: true, wantStatus: StatusDisabled, wantChannels: []string{}},
		{name: "all disabled", email: "sam@example.com", phone: "+15551234567", wantStatus: StatusDisabled, wantChannels: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := createTestConfig()
			cfg.EmailEnabled = tt.emailEnabled
			cfg.SMSEnabled = tt.smsEnabled

			input := excessInput()
			input.Email = tt.email
			input.Phone = tt.phone

			handler := NewHandler(cfg, okSES(t, tt.email), okSNS(t, tt.phone), logger.NewNoOpLogger())
			output, err := handler.Execute(context.Background(), input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, output.Status)
			assert.Equal(t, tt.wantChannels, output.Channels)
		})
	}
}

func TestHandler_Execute_FallbackMessage(t *testing.T) {
	var body string
	sesMock := &MockSESService{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			body = aws.ToString(params.Message.Body.Text.Data)
			return &ses.SendEmailOutput{}, nil
		},
	}
	cfg := createTestConfig()
	cfg.SMSEnabled = false
	handler := NewHandler(cfg, sesMock, nil, logger.NewNoOpLogger())

	input := excessInput()
	input.FeedbackText = ""
	_, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "Your net calorie intake today is 3400 calories, which is greater than 3000 and not good for health.", body)
}

func TestHandler_Execute_SendFailures(t *testing.T) {
	failingSES := &MockSESService{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			return nil, stderrors.New("MessageRejected: Email address is not verified")
		},
	}
	failingSNS := &MockSNSService{
		PublishFunc: func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
			return nil, stderrors.New("Throttling: Rate exceeded")
		},
	}

	t.Run("email", func(t *testing.T) {
		handler := NewHandler(createTestConfig(), failingSES, okSNS(t, "+15551234567"), logger.NewNoOpLogger())
		_, err := handler.Execute(context.Background(), excessInput())

		var stdErr *errors.StandardError
		require.ErrorAs(t, err, &stdErr)
		assert.Equal(t, errors.ErrCodeNotificationSendFailed, stdErr.Code)
		assert.Contains(t, stdErr.Details, "type: email")
		assert.True(t, stdErr.Retryable)
	})

	t.Run("sms", func(t *testing.T) {
		handler := NewHandler(createTestConfig(), okSES(t, "sam@example.com"), failingSNS, logger.NewNoOpLogger())
		_, err := handler.Execute(context.Background(), excessInput())

		var stdErr *errors.StandardError
		require.ErrorAs(t, err, &stdErr)
		assert.Equal(t, errors.ErrCodeNotificationSendFailed, stdErr.Code)
		assert.Contains(t, stdErr.Details, "type: sms")
	})
}

func TestHandler_ParseInput(t *testing.T) {
	handler := NewHandler(createTestConfig(), nil, nil, logger.NewNoOpLogger())

	job := func(vars map[string]interface{}) entities.Job {
		data, _ := json.Marshal(vars)
		return entities.Job{ActivatedJob: &pb.ActivatedJob{Key: 5, Type: TaskType, Retries: 3, Variables: string(data)}}
	}

	input, err := handler.parseInput(job(map[string]interface{}{
		"netFeedback": "ExcessIntakeWarning",
		"netCalories": 3200,
		"email":       "sam@example.com",
		"netSummary":  "Your net calorie intake is 3200 calories.",
	}))
	require.NoError(t, err)
	assert.Equal(t, nutrition.ExcessIntakeWarning, input.NetFeedback)
	assert.Equal(t, 3200, input.NetCalories)

	invalid := []map[string]interface{}{
		{"netCalories": 3200},
		{"netFeedback": "Starving", "netCalories": 3200},
		{"netFeedback": "ExcessIntakeWarning", "netCalories": 3200, "email": "not-an-email"},
		{"netFeedback": "ExcessIntakeWarning", "netCalories": 3200, "phone": "555-1234"},
	}
	for _, vars := range invalid {
		_, err := handler.parseInput(job(vars))
		var stdErr *errors.StandardError
		require.ErrorAs(t, err, &stdErr)
		assert.Equal(t, errors.ErrCodeSchemaValidationFailed, stdErr.Code)
	}
}

func TestFromWorkerConfig(t *testing.T) {
	var nc config.NotificationConfig
	nc.Email.Enabled = true
	nc.Email.FromEmail = "alerts@calorie.example"
	nc.SMS.SenderID = "CALORIES"

	cfg := FromWorkerConfig(config.WorkerConfig{Timeout: 5000}, nc)
	assert.True(t, cfg.EmailEnabled)
	assert.False(t, cfg.SMSEnabled)
	assert.Equal(t, "CALORIES", cfg.SenderID)
	assert.NoError(t, cfg.Validate())

	nc.Email.FromEmail = ""
	assert.Error(t, FromWorkerConfig(config.WorkerConfig{}, nc).Validate())
}
