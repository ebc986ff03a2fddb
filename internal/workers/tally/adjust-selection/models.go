package adjustselection

type Kind string

const (
	KindIntake   Kind = "intake"
	KindActivity Kind = "activity"
)

type Action string

const (
	ActionIncrement Action = "increment"
	ActionDecrement Action = "decrement"
)

type Input struct {
	// TallyID is empty on the first tap of a day; a new id is issued in that case.
	TallyID string `json:"tallyId,omitempty"`
	Kind    Kind   `json:"kind"`
	Index   int    `json:"index"`
	Action  Action `json:"action"`
}

type Output struct {
	TallyID   string `json:"tallyId"`
	Kind      Kind   `json:"kind"`
	Selection []int  `json:"selection"`
	// Total is the consumed or burned calories for the whole selection after the change.
	Total int `json:"total"`
	// Frequencies or Durations mirrors Selection under the variable name the compute workers read.
	Frequencies []int `json:"frequencies,omitempty"`
	Durations   []int `json:"durations,omitempty"`
}
