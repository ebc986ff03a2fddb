package aws

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
)

func TestNewTextEmail(t *testing.T) {
	in := NewTextEmail("alerts@example.com", "user@example.com", "Daily calories", "Too much")

	assert.Equal(t, "alerts@example.com", aws.ToString(in.Source))
	assert.Equal(t, []string{"user@example.com"}, in.Destination.ToAddresses)
	assert.Equal(t, "Daily calories", aws.ToString(in.Message.Subject.Data))
	assert.Equal(t, "Too much", aws.ToString(in.Message.Body.Text.Data))
	assert.Nil(t, in.Message.Body.Html)
}

func TestNewSMS(t *testing.T) {
	in := NewSMS("+15550100", "", "hello")
	assert.Equal(t, "+15550100", aws.ToString(in.PhoneNumber))
	assert.Equal(t, "hello", aws.ToString(in.Message))
	assert.Len(t, in.MessageAttributes, 1)

	withSender := NewSMS("+15550100", "CALORIES", "hello")
	assert.Equal(t, "CALORIES", aws.ToString(withSender.MessageAttributes["AWS.SNS.SMS.SenderID"].StringValue))
}
