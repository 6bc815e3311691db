package domain

import "math"

// Status is the three-level clinical flag derived from personalized limits.
type Status string

const (
	StatusNormal   Status = "normal"
	StatusWarning  Status = "warning"
	StatusCritical Status = "critical"
)

// Statuses lists every status in severity order.
var Statuses = []Status{StatusNormal, StatusWarning, StatusCritical}

// Warning band factors applied around a personalized range.
const (
	WarningLowFactor  = 0.9
	WarningHighFactor = 1.2
)

// LimitRange is an inclusive [Min, Max] range.
type LimitRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Validate checks that both bounds are finite and Min < Max.
func (r LimitRange) Validate() error {
	if !finite(r.Min) || !finite(r.Max) {
		return ErrLimitNotFinite
	}
	if !(r.Min < r.Max) {
		return ErrInvalidLimitRange
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// positive reports whether v is a finite number above zero. NaN fails.
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// Contains reports whether v lies inside the range, bounds included.
func (r LimitRange) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// inWarningBand reports whether v lies inside [0.9*Min, 1.2*Max].
func (r LimitRange) inWarningBand(v float64) bool {
	return v >= WarningLowFactor*r.Min && v <= WarningHighFactor*r.Max
}

// DetermineGlucoseStatus classifies a glucose value against a range:
// normal inside the range, warning in [0.9*min, min) or (max, 1.2*max],
// critical everywhere else.
func DetermineGlucoseStatus(value float64, limits LimitRange) Status {
	if limits.Contains(value) {
		return StatusNormal
	}
	if limits.inWarningBand(value) {
		return StatusWarning
	}
	return StatusCritical
}

// PressureLimits holds the personalized systolic and diastolic ranges.
type PressureLimits struct {
	Systolic  LimitRange `json:"systolic"`
	Diastolic LimitRange `json:"diastolic"`
}

// Validate checks both ranges.
func (l PressureLimits) Validate() error {
	if err := l.Systolic.Validate(); err != nil {
		return err
	}
	return l.Diastolic.Validate()
}

// DeterminePressureStatus is normal when both components sit inside their
// ranges, warning when both sit inside their warning bands, and critical as
// soon as either component leaves its band.
func DeterminePressureStatus(systolic, diastolic int, limits PressureLimits) Status {
	s, d := float64(systolic), float64(diastolic)
	if limits.Systolic.Contains(s) && limits.Diastolic.Contains(d) {
		return StatusNormal
	}
	if limits.Systolic.inWarningBand(s) && limits.Diastolic.inWarningBand(d) {
		return StatusWarning
	}
	return StatusCritical
}

// PressureCategory is the fixed clinical staging of a reading.
type PressureCategory string

const (
	PressureNormal          PressureCategory = "normal"
	PressurePrehypertension PressureCategory = "prehypertension"
	PressureStage1          PressureCategory = "stage1_hypertension"
	PressureStage2          PressureCategory = "stage2_hypertension"
)

// CategorizePressure stages a reading using fixed clinical cutoffs.
//
// The branches are evaluated in order and are not a partition: a reading with
// systolic 120-129 and diastolic 80-89 lands in the stage 1 branch and is then
// pulled back to prehypertension, and any diastolic 80-89 reading is stage 1
// regardless of systolic. This ordering is kept as-is pending clinical review.
func CategorizePressure(systolic, diastolic int) PressureCategory {
	elevatedSys := systolic >= 120 && systolic <= 129
	stage1Dia := diastolic >= 80 && diastolic <= 89

	switch {
	case systolic < 120 && diastolic < 80:
		return PressureNormal
	case elevatedSys && diastolic < 80:
		return PressurePrehypertension
	case (systolic >= 130 && systolic <= 139) || stage1Dia:
		if elevatedSys && stage1Dia {
			return PressurePrehypertension
		}
		return PressureStage1
	case (systolic >= 140 && systolic <= 149) || (diastolic >= 90 && diastolic <= 99):
		return PressureStage1
	default:
		return PressureStage2
	}
}
