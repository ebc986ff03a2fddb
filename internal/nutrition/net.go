package nutrition

import "fmt"

// ExcessIntakeThreshold is the net intake at which feedback turns into a health warning.
const ExcessIntakeThreshold = 3000

// NetFeedback is the qualitative reading of a net calorie figure.
type NetFeedback string

const (
	LosingWeight        NetFeedback = "LosingWeight"
	GainingWeight       NetFeedback = "GainingWeight"
	ExcessIntakeWarning NetFeedback = "ExcessIntakeWarning"
	// Balanced is the net == 0 case. It carries an informational summary and no feedback text.
	Balanced NetFeedback = "Balanced"
)

// FeedbackTone tells the presentation layer how to colour the feedback text.
type FeedbackTone string

const (
	TonePositive FeedbackTone = "positive"
	ToneWarning  FeedbackTone = "warning"
	ToneNone     FeedbackTone = ""
)

// NetCalorieResult is consumed minus burned plus the wording that goes with it.
type NetCalorieResult struct {
	Net          int          `json:"net"`
	Feedback     NetFeedback  `json:"feedback"`
	Summary      string       `json:"summary"`
	FeedbackText string       `json:"feedbackText,omitempty"`
	Tone         FeedbackTone `json:"tone,omitempty"`
}

// Analyze is defined for every pair of integers.
func Analyze(consumed, burned int) NetCalorieResult {
	net := consumed - burned
	feedback := ClassifyNet(net)

	result := NetCalorieResult{
		Net:      net,
		Feedback: feedback,
	}

	switch feedback {
	case Balanced:
		result.Summary = "Your calorie intake equals the calories burned."
	case LosingWeight:
		result.Summary = fmt.Sprintf("You burned more calories than you took in by %d calories.", -net)
		result.FeedbackText = "Good job, you're losing weight."
		result.Tone = TonePositive
	case GainingWeight:
		result.Summary = fmt.Sprintf("Your net calorie intake is %d calories.", net)
		result.FeedbackText = "You're gaining weight."
		result.Tone = TonePositive
	case ExcessIntakeWarning:
		result.Summary = fmt.Sprintf("Your net calorie intake is %d calories.", net)
		result.FeedbackText = fmt.Sprintf("Your net calorie intake for the day is greater than %d, which is not good for health.", ExcessIntakeThreshold)
		result.Tone = ToneWarning
	}

	return result
}

// ClassifyNet bands a net figure. Zero gets its own Balanced state; the 3000 bound is inclusive.
func ClassifyNet(net int) NetFeedback {
	switch {
	case net < 0:
		return LosingWeight
	case net == 0:
		return Balanced
	case net < ExcessIntakeThreshold:
		return GainingWeight
	default:
		return ExcessIntakeWarning
	}
}
