package allocation

import (
	"fmt"
	"math"
)

// Default tolerances and coefficients. These mirror the documented defaults
// applied by config loading; the engine itself only fills the two tolerances
// when left at zero.
const (
	// DefaultScalingTolerance is the aggregate pre-rounding deviation, in
	// currency units, above which a uniform scaling correction is applied
	DefaultScalingTolerance = 1.0

	// DefaultResidualTolerance is the largest post-rounding residual, in
	// currency units, that is reconciled by ±1 nudges rather than a
	// proportional re-correction
	DefaultResidualTolerance = 10

	// weightSumTolerance is how far the metric weights may deviate from 100%
	weightSumTolerance = 0.01
)

// Weights holds the per-metric percentages. They must be non-negative and
// sum to 100 within a small tolerance.
type Weights struct {
	Attendance float64 `yaml:"attendance" validate:"gte=0"`
	Discharges float64 `yaml:"discharges" validate:"gte=0"`
	BedDays    float64 `yaml:"bedDays" validate:"gte=0"`
	Revenue    float64 `yaml:"revenue" validate:"gte=0"`
}

// Percent returns the configured percentage for the given metric.
func (w Weights) Percent(m Metric) float64 {
	switch m {
	case MetricAttendance:
		return w.Attendance
	case MetricDischarges:
		return w.Discharges
	case MetricBedDays:
		return w.BedDays
	case MetricRevenue:
		return w.Revenue
	}
	return 0
}

// Sum returns the total of all metric percentages.
func (w Weights) Sum() float64 {
	return w.Attendance + w.Discharges + w.BedDays + w.Revenue
}

// TenureTable configures the tenure/certification coefficient.
type TenureTable struct {
	// UncertifiedCoefficient applies below the threshold without certification
	UncertifiedCoefficient float64 `yaml:"uncertifiedCoefficient" validate:"gt=0"`

	// CertifiedCoefficient applies below the threshold with certification
	CertifiedCoefficient float64 `yaml:"certifiedCoefficient" validate:"gt=0"`

	// NormalCoefficient applies at or above the threshold
	NormalCoefficient float64 `yaml:"normalCoefficient" validate:"gt=0"`

	// ThresholdYears is the tenure, in years, at which the coefficient
	// becomes NormalCoefficient
	ThresholdYears float64 `yaml:"thresholdYears" validate:"gte=0"`

	// ProgressiveRamp interpolates linearly from the base coefficient toward
	// NormalCoefficient over the first twelve months worked
	ProgressiveRamp bool `yaml:"progressiveRamp"`
}

// Config controls a single allocation computation. All fields are enumerated
// and validated once at entry; there is no implicit merging per call.
type Config struct {
	Weights Weights `yaml:"weights"`

	// RoleCoefficients maps role names to their multiplicative adjustment.
	// Unknown roles fall back to 1.0.
	RoleCoefficients map[string]float64 `yaml:"roleCoefficients,omitempty" validate:"omitempty,dive,gt=0"`

	Tenure TenureTable `yaml:"tenure"`

	// NonlinearScoring enables the sqrt compression of normalized scores
	NonlinearScoring bool `yaml:"nonlinearScoring"`

	// ExcellenceThreshold is the linear score at or above which the
	// excellence bonus applies (only when NonlinearScoring is on)
	ExcellenceThreshold float64 `yaml:"excellenceThreshold" validate:"gte=0,lte=100"`

	// ExcellenceBonus multiplies the compressed score of excellent
	// performers; must be at least 1
	ExcellenceBonus float64 `yaml:"excellenceBonus" validate:"omitempty,gte=1"`

	// MinScore is the floor applied to every normalized score
	MinScore float64 `yaml:"minScore" validate:"gte=0,lte=100"`

	// ScalingTolerance is the aggregate pre-rounding deviation, in currency
	// units, that triggers the uniform scaling correction. Zero means the
	// default.
	ScalingTolerance float64 `yaml:"scalingTolerance" validate:"gte=0"`

	// ResidualTolerance is the largest rounding residual distributed by ±1
	// nudges. Zero means the default.
	ResidualTolerance int64 `yaml:"residualTolerance" validate:"gte=0"`
}

// DefaultConfig returns a configuration with equal metric weights and the
// documented default tenure table and tolerances.
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			Attendance: 25,
			Discharges: 25,
			BedDays:    25,
			Revenue:    25,
		},
		Tenure: TenureTable{
			UncertifiedCoefficient: 0.8,
			CertifiedCoefficient:   0.9,
			NormalCoefficient:      1.0,
			ThresholdYears:         1,
		},
		ExcellenceThreshold: 90,
		ExcellenceBonus:     1.05,
		ScalingTolerance:    DefaultScalingTolerance,
		ResidualTolerance:   DefaultResidualTolerance,
	}
}

// Validate checks the semantic constraints that struct tags cannot express:
// weights must be individually non-negative and sum to 100 within tolerance.
func (c Config) Validate() error {
	for _, m := range Metrics {
		if c.Weights.Percent(m) < 0 {
			return fmt.Errorf("%w: weight for %s is negative", ErrInvalidConfig, m)
		}
	}
	if sum := c.Weights.Sum(); math.Abs(sum-100) > weightSumTolerance {
		return fmt.Errorf("%w: metric weights sum to %.4f%%, expected 100%%", ErrInvalidConfig, sum)
	}
	if c.ExcellenceBonus != 0 && c.ExcellenceBonus < 1 {
		return fmt.Errorf("%w: excellence bonus %.4f is below 1", ErrInvalidConfig, c.ExcellenceBonus)
	}
	return nil
}

// scalingTolerance returns the configured value or the default.
func (c Config) scalingTolerance() float64 {
	if c.ScalingTolerance > 0 {
		return c.ScalingTolerance
	}
	return DefaultScalingTolerance
}

// residualTolerance returns the configured value or the default.
func (c Config) residualTolerance() int64 {
	if c.ResidualTolerance > 0 {
		return c.ResidualTolerance
	}
	return DefaultResidualTolerance
}
