package sendfeedbackalert

import "calorie-workers/internal/nutrition"

const (
	StatusSent     = "sent"
	StatusDisabled = "disabled"
	StatusSkipped  = "skipped"
)

const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

type Input struct {
	NetFeedback  nutrition.NetFeedback `json:"netFeedback"`
	NetCalories  int                   `json:"netCalories"`
	FeedbackText string                `json:"feedbackText,omitempty"`
	Email        string                `json:"email,omitempty"`
	Phone        string                `json:"phone,omitempty"`
}

type Output struct {
	NotificationID string   `json:"notificationId"`
	Status         string   `json:"status"`
	Channels       []string `json:"channels"`
	SentAt         string   `json:"sentAt"`
}
