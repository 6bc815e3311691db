package analysis

import (
	"sort"
	"time"

	"github.com/vladimiradmaev/health-tracker/internal/domain"
)

// Period bounds a report. End is exclusive.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Days returns the number of calendar days in loc touched by the period,
// counting a partial day as a full one, and at least one. Days are stepped
// by date so DST shifts do not add or drop a day.
func (p Period) Days(loc *time.Location) int {
	if loc == nil {
		loc = time.UTC
	}
	d := 0
	for t := p.Start.In(loc); t.Before(p.End); t = t.AddDate(0, 0, 1) {
		d++
	}
	if d < 1 {
		return 1
	}
	return d
}

// PatientInfo is the profile part of a report.
type PatientInfo struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Age        int      `json:"age"`
	WeightKg   float64  `json:"weightKg"`
	HeightCm   float64  `json:"heightCm"`
	BMI        float64  `json:"bmi"`
	Conditions []string `json:"conditions"`
}

// GlucoseRecord is the exported form of a glucose reading.
type GlucoseRecord struct {
	ID          string                `json:"id"`
	Timestamp   time.Time             `json:"timestamp"`
	Value       float64               `json:"value"`
	Context     domain.GlucoseContext `json:"context"`
	CustomRange string                `json:"customRange,omitempty"`
	Status      domain.Status         `json:"status"`
	Limits      domain.LimitRange     `json:"limits"`
	Notes       string                `json:"notes,omitempty"`
}

// PressureRecord is the exported form of a pressure reading.
type PressureRecord struct {
	ID        string                  `json:"id"`
	Timestamp time.Time               `json:"timestamp"`
	Systolic  int                     `json:"systolic"`
	Diastolic int                     `json:"diastolic"`
	Status    domain.Status           `json:"status"`
	Category  domain.PressureCategory `json:"category"`
	Notes     string                  `json:"notes,omitempty"`
}

// FoodRecord is the exported form of a food entry.
type FoodRecord struct {
	ID          string              `json:"id"`
	Timestamp   time.Time           `json:"timestamp"`
	Description string              `json:"description"`
	QuantityG   float64             `json:"quantityGrams"`
	Category    domain.FoodCategory `json:"category"`
	Calories    int                 `json:"calories"`
	Notes       string              `json:"notes,omitempty"`
}

// Report is the complete exportable document for a period.
type Report struct {
	GeneratedAt   time.Time        `json:"generatedAt"`
	Period        Period           `json:"period"`
	Patient       PatientInfo      `json:"patient"`
	Summary       Summary          `json:"summary"`
	GlucoseTrend  GlucoseTrend     `json:"glucoseTrend"`
	PressureTrend PressureTrend    `json:"pressureTrend"`
	Adherence     Adherence        `json:"adherence"`
	Daily         []DaySummary     `json:"daily"`
	Glucose       []GlucoseRecord  `json:"glucoseRecords"`
	Pressure      []PressureRecord `json:"pressureRecords"`
	Food          []FoodRecord     `json:"foodRecords"`
}

// BuildReport shapes the view into a Report. Records are listed in
// chronological order; days are grouped in loc.
func BuildReport(v *MedicalView, period Period, loc *time.Location, now time.Time) Report {
	if loc == nil {
		loc = time.UTC
	}
	r := Report{
		GeneratedAt:   now,
		Period:        period,
		Summary:       v.GenerateSummary(),
		GlucoseTrend:  AnalyzeGlucoseTrend(v.Glucose),
		PressureTrend: AnalyzePressureTrend(v.Pressure),
		Adherence:     FrequencyAdherence(v, period, loc),
		Daily:         DailyBreakdown(v, loc),
		Glucose:       make([]GlucoseRecord, 0, len(v.Glucose)),
		Pressure:      make([]PressureRecord, 0, len(v.Pressure)),
		Food:          make([]FoodRecord, 0, len(v.Food)),
	}
	if p := v.Profile; p != nil {
		r.Patient = PatientInfo{
			ID:         p.ID,
			Name:       p.Name,
			Age:        p.Age(now),
			WeightKg:   p.WeightKg,
			HeightCm:   p.HeightCm,
			BMI:        p.BMI(),
			Conditions: p.Conditions,
		}
	}

	for _, m := range v.Glucose {
		r.Glucose = append(r.Glucose, GlucoseRecord{
			ID:          m.ID,
			Timestamp:   m.Timestamp,
			Value:       m.Value,
			Context:     m.Context,
			CustomRange: m.CustomRange,
			Status:      m.Status,
			Limits:      m.Limits,
			Notes:       m.Notes,
		})
	}
	sort.SliceStable(r.Glucose, func(i, j int) bool { return r.Glucose[i].Timestamp.Before(r.Glucose[j].Timestamp) })

	for _, m := range v.Pressure {
		r.Pressure = append(r.Pressure, PressureRecord{
			ID:        m.ID,
			Timestamp: m.Timestamp,
			Systolic:  m.Systolic,
			Diastolic: m.Diastolic,
			Status:    m.Status,
			Category:  m.Category,
			Notes:     m.Notes,
		})
	}
	sort.SliceStable(r.Pressure, func(i, j int) bool { return r.Pressure[i].Timestamp.Before(r.Pressure[j].Timestamp) })

	for _, f := range v.Food {
		r.Food = append(r.Food, FoodRecord{
			ID:          f.ID,
			Timestamp:   f.Timestamp,
			Description: f.Description,
			QuantityG:   f.QuantityG,
			Category:    f.Category,
			Calories:    f.Calories(),
			Notes:       f.Notes,
		})
	}
	sort.SliceStable(r.Food, func(i, j int) bool { return r.Food[i].Timestamp.Before(r.Food[j].Timestamp) })

	return r
}
