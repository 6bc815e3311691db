package analysis

import (
	"math"
	"sort"

	"github.com/vladimiradmaev/health-tracker/internal/domain"
)

// Direction is the movement of a series between its two halves.
type Direction string

const (
	DirectionIncreasing       Direction = "increasing"
	DirectionDecreasing       Direction = "decreasing"
	DirectionStable           Direction = "stable"
	DirectionInsufficientData Direction = "insufficient_data"
)

// PressureDeadBand is the mmHg difference between halves that still counts
// as stable. Glucose has no dead-band.
const (
	PressureDeadBand = 2.0
	minTrendSamples  = 2
)

// Fixed advice attached to trend results.
const (
	MsgInsufficientData  = "Need more measurements to determine a trend."
	MsgGlucoseIncreasing = "Glucose levels are trending upward. Review your diet and medication with your doctor."
	MsgGlucoseDecreasing = "Glucose levels are trending downward. Keep it up and watch for low readings."
	MsgGlucoseStable     = "Glucose levels are stable. Continue with your current routine."
	MsgPressureRising    = "Blood pressure is rising. Cut down on salt, exercise regularly and manage stress."
	MsgPressureFalling   = "Blood pressure is improving. Keep following your current plan."
	MsgPressureStable    = "Blood pressure is stable. Continue regular monitoring."
)

// SeriesTrend describes one series split chronologically in two halves.
type SeriesTrend struct {
	Direction     Direction `json:"direction"`
	FirstAverage  float64   `json:"firstHalfAverage"`
	SecondAverage float64   `json:"secondHalfAverage"`
	Change        float64   `json:"change"`
}

// GlucoseTrend is the result of AnalyzeGlucoseTrend.
type GlucoseTrend struct {
	SeriesTrend
	Samples        int     `json:"samples"`
	Volatility     float64 `json:"volatility"`
	Recommendation string  `json:"recommendation"`
}

// PressureTrend is the result of AnalyzePressureTrend.
type PressureTrend struct {
	Samples        int         `json:"samples"`
	Systolic       SeriesTrend `json:"systolic"`
	Diastolic      SeriesTrend `json:"diastolic"`
	Recommendation string      `json:"recommendation"`
}

// compareHalves splits values (already in time order) so the first half holds
// ceil(n/2) elements. The change of the means must exceed deadBand to count
// as a direction.
func compareHalves(values []float64, deadBand float64) SeriesTrend {
	split := (len(values) + 1) / 2
	first := mean(values[:split])
	second := mean(values[split:])
	diff := second - first

	t := SeriesTrend{
		FirstAverage:  round2(first),
		SecondAverage: round2(second),
		Change:        round2(diff),
		Direction:     DirectionStable,
	}
	switch {
	case diff > deadBand:
		t.Direction = DirectionIncreasing
	case diff < -deadBand:
		t.Direction = DirectionDecreasing
	}
	return t
}

// stdDev is the population standard deviation.
func stdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	var sum float64
	for _, v := range values {
		sum += (v - m) * (v - m)
	}
	return math.Sqrt(sum / float64(len(values)))
}

// AnalyzeGlucoseTrend orders the readings by time and compares the mean of the
// first half with the mean of the second. The input slice is not modified.
func AnalyzeGlucoseTrend(measurements []*domain.GlucoseMeasurement) GlucoseTrend {
	if len(measurements) < minTrendSamples {
		return GlucoseTrend{
			SeriesTrend:    SeriesTrend{Direction: DirectionInsufficientData},
			Samples:        len(measurements),
			Recommendation: MsgInsufficientData,
		}
	}

	sorted := append([]*domain.GlucoseMeasurement(nil), measurements...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})
	values := make([]float64, len(sorted))
	for i, m := range sorted {
		values[i] = m.Value
	}

	t := GlucoseTrend{
		SeriesTrend: compareHalves(values, 0),
		Samples:     len(values),
		Volatility:  round2(stdDev(values)),
	}
	switch t.Direction {
	case DirectionIncreasing:
		t.Recommendation = MsgGlucoseIncreasing
	case DirectionDecreasing:
		t.Recommendation = MsgGlucoseDecreasing
	default:
		t.Recommendation = MsgGlucoseStable
	}
	return t
}

// AnalyzePressureTrend runs the half comparison on systolic and diastolic
// independently. A rise in either component is reported as rising; an
// improvement requires both to fall.
func AnalyzePressureTrend(measurements []*domain.PressureMeasurement) PressureTrend {
	if len(measurements) < minTrendSamples {
		insufficient := SeriesTrend{Direction: DirectionInsufficientData}
		return PressureTrend{
			Samples:        len(measurements),
			Systolic:       insufficient,
			Diastolic:      insufficient,
			Recommendation: MsgInsufficientData,
		}
	}

	sorted := append([]*domain.PressureMeasurement(nil), measurements...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})
	sys := make([]float64, len(sorted))
	dia := make([]float64, len(sorted))
	for i, m := range sorted {
		sys[i] = float64(m.Systolic)
		dia[i] = float64(m.Diastolic)
	}

	t := PressureTrend{
		Samples:   len(sorted),
		Systolic:  compareHalves(sys, PressureDeadBand),
		Diastolic: compareHalves(dia, PressureDeadBand),
	}
	switch {
	case t.Systolic.Direction == DirectionIncreasing || t.Diastolic.Direction == DirectionIncreasing:
		t.Recommendation = MsgPressureRising
	case t.Systolic.Direction == DirectionDecreasing && t.Diastolic.Direction == DirectionDecreasing:
		t.Recommendation = MsgPressureFalling
	default:
		t.Recommendation = MsgPressureStable
	}
	return t
}
