// Package analysis turns classified records into health summaries: counts,
// percentages, statistics, a composite score, alerts and trends.
package analysis

import (
	"fmt"
	"math"

	"github.com/vladimiradmaev/health-tracker/internal/domain"
)

// MedicalView binds one profile to the glucose, pressure and food records of
// a period. It is rebuilt per request and every summary is recomputed from
// the collections it holds.
//
// Records are expected to belong to Profile; the view does not check it.
type MedicalView struct {
	Profile  *domain.UserProfile
	Glucose  []*domain.GlucoseMeasurement
	Pressure []*domain.PressureMeasurement
	Food     []*domain.FoodEntry
}

// NewMedicalView copies the given slices so later changes by the caller do
// not leak into the view.
func NewMedicalView(
	profile *domain.UserProfile,
	glucose []*domain.GlucoseMeasurement,
	pressure []*domain.PressureMeasurement,
	food []*domain.FoodEntry,
) *MedicalView {
	return &MedicalView{
		Profile:  profile,
		Glucose:  append([]*domain.GlucoseMeasurement(nil), glucose...),
		Pressure: append([]*domain.PressureMeasurement(nil), pressure...),
		Food:     append([]*domain.FoodEntry(nil), food...),
	}
}

// StatusCounts is the count/percentage shape shared by glucose and pressure.
type StatusCounts struct {
	Total       int     `json:"total"`
	Normal      int     `json:"normal"`
	Warning     int     `json:"warning"`
	Critical    int     `json:"critical"`
	NormalPct   float64 `json:"normalPercentage"`
	WarningPct  float64 `json:"warningPercentage"`
	CriticalPct float64 `json:"criticalPercentage"`
}

func (c *StatusCounts) add(s domain.Status) {
	c.Total++
	switch s {
	case domain.StatusNormal:
		c.Normal++
	case domain.StatusWarning:
		c.Warning++
	case domain.StatusCritical:
		c.Critical++
	}
}

func (c *StatusCounts) finish() {
	c.NormalPct = percentage(c.Normal, c.Total)
	c.WarningPct = percentage(c.Warning, c.Total)
	c.CriticalPct = percentage(c.Critical, c.Total)
}

// ValueStats holds average, minimum and maximum of a series. All zero for an
// empty series.
type ValueStats struct {
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

func statsOf(values []float64) ValueStats {
	if len(values) == 0 {
		return ValueStats{}
	}
	st := ValueStats{Min: values[0], Max: values[0]}
	for _, v := range values {
		st.Min = math.Min(st.Min, v)
		st.Max = math.Max(st.Max, v)
	}
	st.Average = round2(mean(values))
	return st
}

// GlucoseSummary aggregates the glucose readings of a view.
type GlucoseSummary struct {
	StatusCounts
	ValueStats
	ContextCounts map[domain.GlucoseContext]int                          `json:"byContext"`
	ByContext     map[domain.GlucoseContext][]*domain.GlucoseMeasurement `json:"-"`
}

// GlucoseSummary counts statuses, computes statistics and partitions the
// readings by context.
func (v *MedicalView) GlucoseSummary() GlucoseSummary {
	s := GlucoseSummary{
		ContextCounts: make(map[domain.GlucoseContext]int),
		ByContext:     make(map[domain.GlucoseContext][]*domain.GlucoseMeasurement),
	}
	values := make([]float64, 0, len(v.Glucose))
	for _, m := range v.Glucose {
		s.add(m.Status)
		values = append(values, m.Value)
		s.ByContext[m.Context] = append(s.ByContext[m.Context], m)
		s.ContextCounts[m.Context]++
	}
	s.finish()
	s.ValueStats = statsOf(values)
	return s
}

// PressureSummary aggregates the pressure readings of a view.
type PressureSummary struct {
	StatusCounts
	Systolic       ValueStats                      `json:"systolic"`
	Diastolic      ValueStats                      `json:"diastolic"`
	CategoryCounts map[domain.PressureCategory]int `json:"byCategory"`
}

// PressureSummary counts statuses and computes systolic and diastolic
// statistics independently.
func (v *MedicalView) PressureSummary() PressureSummary {
	s := PressureSummary{CategoryCounts: make(map[domain.PressureCategory]int)}
	sys := make([]float64, 0, len(v.Pressure))
	dia := make([]float64, 0, len(v.Pressure))
	for _, m := range v.Pressure {
		s.add(m.Status)
		sys = append(sys, float64(m.Systolic))
		dia = append(dia, float64(m.Diastolic))
		s.CategoryCounts[m.Category]++
	}
	s.finish()
	s.Systolic = statsOf(sys)
	s.Diastolic = statsOf(dia)
	return s
}

// CategoryTotals is the per-category slice of a nutrition summary.
type CategoryTotals struct {
	Entries   int     `json:"entries"`
	Calories  int     `json:"calories"`
	QuantityG float64 `json:"quantityGrams"`
}

// NutritionSummary aggregates the food entries of a view.
type NutritionSummary struct {
	EntryCount     int                                         `json:"entryCount"`
	TotalCalories  int                                         `json:"totalCalories"`
	TotalQuantityG float64                                     `json:"totalQuantityGrams"`
	ByCategory     map[domain.FoodCategory]CategoryTotals      `json:"byCategory"`
	Entries        map[domain.FoodCategory][]*domain.FoodEntry `json:"-"`
}

// NutritionSummary partitions entries by category and sums calories and
// quantities per category and overall.
func (v *MedicalView) NutritionSummary() NutritionSummary {
	s := NutritionSummary{
		ByCategory: make(map[domain.FoodCategory]CategoryTotals),
		Entries:    make(map[domain.FoodCategory][]*domain.FoodEntry),
	}
	for _, f := range v.Food {
		cal := f.Calories()
		t := s.ByCategory[f.Category]
		t.Entries++
		t.Calories += cal
		t.QuantityG += f.QuantityG
		s.ByCategory[f.Category] = t
		s.Entries[f.Category] = append(s.Entries[f.Category], f)

		s.EntryCount++
		s.TotalCalories += cal
		s.TotalQuantityG += f.QuantityG
	}
	return s
}

// Score penalties per reading.
const (
	maxHealthScore  = 100
	criticalPenalty = 20
	warningPenalty  = 10
)

// HealthScore starts at 100 and deducts 20 per critical and 10 per warning
// reading across glucose and pressure, floored at 0.
func (v *MedicalView) HealthScore() int {
	score := maxHealthScore
	penalize := func(s domain.Status) {
		switch s {
		case domain.StatusCritical:
			score -= criticalPenalty
		case domain.StatusWarning:
			score -= warningPenalty
		}
	}
	for _, m := range v.Glucose {
		penalize(m.Status)
	}
	for _, m := range v.Pressure {
		penalize(m.Status)
	}
	if score < 0 {
		return 0
	}
	return score
}

// OverallStatus is the qualitative band of a health score.
type OverallStatus string

const (
	OverallExcellent OverallStatus = "excellent"
	OverallGood      OverallStatus = "good"
	OverallFair      OverallStatus = "fair"
	OverallPoor      OverallStatus = "poor"
)

// OverallStatusFor maps a score to its band.
func OverallStatusFor(score int) OverallStatus {
	switch {
	case score >= 90:
		return OverallExcellent
	case score >= 70:
		return OverallGood
	case score >= 50:
		return OverallFair
	default:
		return OverallPoor
	}
}

// Metric names used in alerts and recommendations.
const (
	MetricGlucose   = "glucose"
	MetricPressure  = "pressure"
	MetricNutrition = "nutrition"
)

// CriticalAlert flags one critical reading.
type CriticalAlert struct {
	Type          string        `json:"type"`
	MeasurementID string        `json:"measurementId"`
	Value         float64       `json:"value"`
	Reading       string        `json:"reading"`
	Timestamp     string        `json:"timestamp"`
	Severity      domain.Status `json:"severity"`
	Message       string        `json:"message"`
}

const alertTimeLayout = "2006-01-02 15:04"

// CriticalAlerts returns one alert per critical glucose reading (value is the
// glucose value) and per critical pressure reading (value is the systolic).
func (v *MedicalView) CriticalAlerts() []CriticalAlert {
	alerts := make([]CriticalAlert, 0)
	for _, m := range v.Glucose {
		if m.Status != domain.StatusCritical {
			continue
		}
		alerts = append(alerts, CriticalAlert{
			Type:          MetricGlucose,
			MeasurementID: m.ID,
			Value:         m.Value,
			Reading:       fmt.Sprintf("%g mg/dL", m.Value),
			Timestamp:     m.Timestamp.Format(alertTimeLayout),
			Severity:      domain.StatusCritical,
			Message:       fmt.Sprintf("Critical glucose level: %g mg/dL", m.Value),
		})
	}
	for _, m := range v.Pressure {
		if m.Status != domain.StatusCritical {
			continue
		}
		alerts = append(alerts, CriticalAlert{
			Type:          MetricPressure,
			MeasurementID: m.ID,
			Value:         float64(m.Systolic),
			Reading:       m.Reading() + " mmHg",
			Timestamp:     m.Timestamp.Format(alertTimeLayout),
			Severity:      domain.StatusCritical,
			Message:       fmt.Sprintf("Critical blood pressure: %s mmHg", m.Reading()),
		})
	}
	return alerts
}

// Priority orders recommendations.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Recommendation is one actionable hint of a summary.
type Recommendation struct {
	Priority Priority `json:"priority"`
	Type     string   `json:"type"`
	Message  string   `json:"message"`
}

// MinDailyCalories is the threshold under which low intake is reported.
const MinDailyCalories = 1200

// Summary is the full derived picture of a view.
type Summary struct {
	UserID          string           `json:"userId"`
	UserName        string           `json:"userName"`
	Glucose         GlucoseSummary   `json:"glucose"`
	Pressure        PressureSummary  `json:"pressure"`
	Nutrition       NutritionSummary `json:"nutrition"`
	HealthScore     int              `json:"healthScore"`
	OverallStatus   OverallStatus    `json:"overallStatus"`
	Alerts          []CriticalAlert  `json:"alerts"`
	Recommendations []Recommendation `json:"recommendations"`
}

// GenerateSummary computes every summary of the view in one pass.
func (v *MedicalView) GenerateSummary() Summary {
	score := v.HealthScore()
	s := Summary{
		Glucose:       v.GlucoseSummary(),
		Pressure:      v.PressureSummary(),
		Nutrition:     v.NutritionSummary(),
		HealthScore:   score,
		OverallStatus: OverallStatusFor(score),
		Alerts:        v.CriticalAlerts(),
	}
	if v.Profile != nil {
		s.UserID = v.Profile.ID
		s.UserName = v.Profile.Name
	}
	s.Recommendations = recommendationsFor(s)
	return s
}

func recommendationsFor(s Summary) []Recommendation {
	recs := make([]Recommendation, 0, len(s.Alerts)+4)
	for _, a := range s.Alerts {
		recs = append(recs, Recommendation{
			Priority: PriorityHigh,
			Type:     a.Type,
			Message:  a.Message + ". Contact your healthcare provider.",
		})
	}
	if s.Glucose.Warning > 0 {
		recs = append(recs, Recommendation{
			Priority: PriorityMedium,
			Type:     MetricGlucose,
			Message:  "Some glucose readings are outside your target range. Review meals and medication timing.",
		})
	}
	if s.Pressure.Warning > 0 {
		recs = append(recs, Recommendation{
			Priority: PriorityMedium,
			Type:     MetricPressure,
			Message:  "Some blood pressure readings are outside your target range. Keep monitoring regularly.",
		})
	}
	if s.Nutrition.TotalCalories < MinDailyCalories {
		recs = append(recs, Recommendation{
			Priority: PriorityLow,
			Type:     MetricNutrition,
			Message:  fmt.Sprintf("Calorie intake is below %d kcal. Make sure you are eating enough.", MinDailyCalories),
		})
	}
	if s.Nutrition.ByCategory[domain.FoodVegetables].Entries == 0 {
		recs = append(recs, Recommendation{
			Priority: PriorityLow,
			Type:     MetricNutrition,
			Message:  "No vegetables were logged. Add vegetables to your meals.",
		})
	}
	return recs
}

func percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return round2(float64(count) / float64(total) * 100)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
