package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name         string
		consumed     int
		burned       int
		net          int
		feedback     NetFeedback
		summary      string
		feedbackText string
		tone         FeedbackTone
	}{
		{
			name:         "moderate surplus",
			consumed:     2500,
			burned:       500,
			net:          2000,
			feedback:     GainingWeight,
			summary:      "Your net calorie intake is 2000 calories.",
			feedbackText: "You're gaining weight.",
			tone:         TonePositive,
		},
		{
			name:         "deficit",
			consumed:     1000,
			burned:       1500,
			net:          -500,
			feedback:     LosingWeight,
			summary:      "You burned more calories than you took in by 500 calories.",
			feedbackText: "Good job, you're losing weight.",
			tone:         TonePositive,
		},
		{
			name:         "large surplus",
			consumed:     4000,
			burned:       0,
			net:          4000,
			feedback:     ExcessIntakeWarning,
			summary:      "Your net calorie intake is 4000 calories.",
			feedbackText: "Your net calorie intake for the day is greater than 3000, which is not good for health.",
			tone:         ToneWarning,
		},
		{
			name:     "balanced",
			consumed: 700,
			burned:   700,
			net:      0,
			feedback: Balanced,
			summary:  "Your calorie intake equals the calories burned.",
			tone:     ToneNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Analyze(tt.consumed, tt.burned)
			assert.Equal(t, tt.net, got.Net)
			assert.Equal(t, tt.feedback, got.Feedback)
			assert.Equal(t, tt.summary, got.Summary)
			assert.Equal(t, tt.feedbackText, got.FeedbackText)
			assert.Equal(t, tt.tone, got.Tone)
		})
	}
}

func TestClassifyNet_Boundaries(t *testing.T) {
	assert.Equal(t, LosingWeight, ClassifyNet(-1))
	assert.Equal(t, Balanced, ClassifyNet(0))
	assert.Equal(t, GainingWeight, ClassifyNet(1))
	assert.Equal(t, GainingWeight, ClassifyNet(2999))
	assert.Equal(t, ExcessIntakeWarning, ClassifyNet(3000))
	assert.Equal(t, ExcessIntakeWarning, ClassifyNet(3001))
}

func TestAnalyze_NetIsDifference(t *testing.T) {
	pairs := [][2]int{{0, 0}, {12, 4000}, {3650, 116}, {-5, 5}}
	for _, p := range pairs {
		assert.Equal(t, p[0]-p[1], Analyze(p[0], p[1]).Net)
	}
}
