package cli

import "calorie-workers/internal/nutrition"

type intakeInput struct {
	Frequencies nutrition.IntakeSelection `json:"frequencies"`
}

type intakeOutput struct {
	ConsumedCalories int   `json:"consumedCalories"`
	ItemCalories     []int `json:"itemCalories"`
}

func runIntake(e *env, raw []byte) (interface{}, error) {
	var in intakeInput
	if err := decode(raw, &in); err != nil {
		return nil, err
	}
	items, err := nutrition.IntakeBreakdown(e.catalog.Foods, in.Frequencies)
	if err != nil {
		return nil, err
	}
	total, err := nutrition.SumCalories(items)
	if err != nil {
		return nil, err
	}
	return intakeOutput{ConsumedCalories: total, ItemCalories: items}, nil
}

type burnInput struct {
	Durations nutrition.ActivitySelection `json:"durations"`
}

type burnOutput struct {
	BurnedCalories   int   `json:"burnedCalories"`
	ActivityCalories []int `json:"activityCalories"`
}

func runBurn(e *env, raw []byte) (interface{}, error) {
	var in burnInput
	if err := decode(raw, &in); err != nil {
		return nil, err
	}
	items, err := nutrition.BurnBreakdown(e.catalog.Activities, in.Durations)
	if err != nil {
		return nil, err
	}
	total, err := nutrition.SumCalories(items)
	if err != nil {
		return nil, err
	}
	return burnOutput{BurnedCalories: total, ActivityCalories: items}, nil
}

type bmiOutput struct {
	BMI      float64               `json:"bmi"`
	Display  string                `json:"bmiDisplay"`
	Category nutrition.BMICategory `json:"category"`
	Label    string                `json:"label"`
}

func runBMI(_ *env, raw []byte) (interface{}, error) {
	var m nutrition.BodyMeasurement
	if err := decode(raw, &m); err != nil {
		return nil, err
	}
	result, err := nutrition.ComputeBMI(m)
	if err != nil {
		return nil, err
	}
	return bmiOutput{
		BMI:      result.Value,
		Display:  result.Display(),
		Category: result.Category,
		Label:    result.Category.Label(),
	}, nil
}

type netInput struct {
	ConsumedCalories int `json:"consumedCalories"`
	BurnedCalories   int `json:"burnedCalories"`
}

func runNet(_ *env, raw []byte) (interface{}, error) {
	var in netInput
	if err := decode(raw, &in); err != nil {
		return nil, err
	}
	return nutrition.Analyze(in.ConsumedCalories, in.BurnedCalories), nil
}

func runPipeline(e *env, raw []byte) (interface{}, error) {
	var in nutrition.DailyInput
	if err := decode(raw, &in); err != nil {
		return nil, err
	}
	e.log.Debug("running daily pipeline", map[string]interface{}{
		"withMeasurement": in.Measurement != nil,
	})
	return nutrition.RunDailyPipeline(e.catalog, in)
}

func runCatalog(e *env, _ []byte) (interface{}, error) {
	return e.catalog, nil
}
