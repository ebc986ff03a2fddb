package nutrition

import (
	"fmt"
	"math"
)

// HeightUnit selects how BodyMeasurement height fields are read.
type HeightUnit string

// WeightUnit selects how BodyMeasurement.WeightValue is read.
type WeightUnit string

const (
	HeightCentimeters HeightUnit = "cm"
	HeightFeetInches  HeightUnit = "ft_in"

	WeightKilograms WeightUnit = "kg"
	WeightPounds    WeightUnit = "lbs"
)

const (
	metersPerFoot       = 0.3048
	metersPerInch       = 0.0254
	kilogramsPerPound   = 0.453592
	centimetersPerMeter = 100.0
)

// BMI band lower bounds, each inclusive.
const (
	NormalLowerBound     = 18.5
	OverweightLowerBound = 25.0
	ObeseLowerBound      = 30.0
)

// BMICategory is the weight band a BMI value falls into.
type BMICategory string

const (
	Underweight BMICategory = "Underweight"
	Normal      BMICategory = "Normal"
	Overweight  BMICategory = "Overweight"
	Obese       BMICategory = "Obese"
)

// Label is the wording shown to the user for the band.
func (c BMICategory) Label() string {
	switch c {
	case Underweight:
		return "Underweight"
	case Normal:
		return "Normal weight"
	case Overweight:
		return "Overweight"
	case Obese:
		return "Obesity"
	default:
		return string(c)
	}
}

// BodyMeasurement is height and weight as typed into the form. HeightSecondary holds inches
// and is only read when HeightUnit is ft_in.
type BodyMeasurement struct {
	HeightUnit      HeightUnit `json:"heightUnit"`
	HeightPrimary   float64    `json:"heightPrimary"`
	HeightSecondary float64    `json:"heightSecondary,omitempty"`
	WeightUnit      WeightUnit `json:"weightUnit"`
	WeightValue     float64    `json:"weightValue"`
}

// BMIResult is recomputed on demand and never stored.
type BMIResult struct {
	Value    float64     `json:"value"`
	Category BMICategory `json:"category"`
}

// Display formats the value the way it is shown on screen.
func (r BMIResult) Display() string {
	return fmt.Sprintf("%.2f", r.Value)
}

// HeightMeters resolves the height fields to meters.
func (m BodyMeasurement) HeightMeters() (float64, error) {
	if err := nonNegative("heightPrimary", m.HeightPrimary); err != nil {
		return 0, err
	}
	if err := nonNegative("heightSecondary", m.HeightSecondary); err != nil {
		return 0, err
	}

	switch m.HeightUnit {
	case HeightCentimeters:
		return m.HeightPrimary / centimetersPerMeter, nil
	case HeightFeetInches:
		return m.HeightPrimary*metersPerFoot + m.HeightSecondary*metersPerInch, nil
	default:
		return 0, fmt.Errorf("%w: unknown height unit %q", ErrInvalidMeasurement, m.HeightUnit)
	}
}

// WeightKilograms resolves the weight field to kilograms.
func (m BodyMeasurement) WeightKilograms() (float64, error) {
	if err := nonNegative("weightValue", m.WeightValue); err != nil {
		return 0, err
	}

	switch m.WeightUnit {
	case WeightKilograms:
		return m.WeightValue, nil
	case WeightPounds:
		return m.WeightValue * kilogramsPerPound, nil
	default:
		return 0, fmt.Errorf("%w: unknown weight unit %q", ErrInvalidMeasurement, m.WeightUnit)
	}
}

// ComputeBMI normalizes the measurement to SI units and returns weight / height².
func ComputeBMI(m BodyMeasurement) (BMIResult, error) {
	heightM, err := m.HeightMeters()
	if err != nil {
		return BMIResult{}, err
	}
	if heightM <= 0 {
		return BMIResult{}, fmt.Errorf("%w: height resolves to %v m", ErrInvalidMeasurement, heightM)
	}

	weightKg, err := m.WeightKilograms()
	if err != nil {
		return BMIResult{}, err
	}

	value := weightKg / (heightM * heightM)
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return BMIResult{}, fmt.Errorf("%w: height %v m is too small to compute a BMI", ErrInvalidMeasurement, heightM)
	}

	return BMIResult{
		Value:    value,
		Category: ClassifyBMI(value),
	}, nil
}

// ClassifyBMI maps a BMI value onto its band. Lower bounds are inclusive.
func ClassifyBMI(bmi float64) BMICategory {
	switch {
	case bmi < NormalLowerBound:
		return Underweight
	case bmi < OverweightLowerBound:
		return Normal
	case bmi < ObeseLowerBound:
		return Overweight
	default:
		return Obese
	}
}

func nonNegative(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s is not a finite number", ErrInvalidMeasurement, field)
	}
	if v < 0 {
		return fmt.Errorf("%w: %s must be >= 0, got %v", ErrInvalidMeasurement, field, v)
	}
	return nil
}
