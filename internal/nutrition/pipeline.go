package nutrition

// DailyInput is everything the form layer collects for one day. Measurement is optional
// because the BMI step can be skipped.
type DailyInput struct {
	Frequencies IntakeSelection   `json:"frequencies"`
	Durations   ActivitySelection `json:"durations"`
	Measurement *BodyMeasurement  `json:"measurement,omitempty"`
}

// DailyReport carries each stage's result forward.
type DailyReport struct {
	ConsumedCalories int              `json:"consumedCalories"`
	BurnedCalories   int              `json:"burnedCalories"`
	BMI              *BMIResult       `json:"bmi,omitempty"`
	Net              NetCalorieResult `json:"net"`
}

// RunDailyPipeline runs intake, burn, BMI and net analysis in order. The first failing
// stage aborts the run.
func RunDailyPipeline(catalog Catalog, in DailyInput) (DailyReport, error) {
	consumed, err := ComputeConsumed(catalog.Foods, in.Frequencies)
	if err != nil {
		return DailyReport{}, err
	}

	burned, err := ComputeBurned(catalog.Activities, in.Durations)
	if err != nil {
		return DailyReport{}, err
	}

	report := DailyReport{
		ConsumedCalories: consumed,
		BurnedCalories:   burned,
	}

	if in.Measurement != nil {
		bmi, err := ComputeBMI(*in.Measurement)
		if err != nil {
			return DailyReport{}, err
		}
		report.BMI = &bmi
	}

	report.Net = Analyze(consumed, burned)
	return report, nil
}
