package analysis

import (
	"sort"
	"time"

	"github.com/vladimiradmaev/health-tracker/internal/domain"
)

const dayLayout = "2006-01-02"

// DaySummary is the aggregation of a single calendar day.
type DaySummary struct {
	Date        string          `json:"date"`
	Glucose     GlucoseSummary  `json:"glucose"`
	Pressure    PressureSummary `json:"pressure"`
	Calories    int             `json:"calories"`
	FoodEntries int             `json:"foodEntries"`
	HealthScore int             `json:"healthScore"`
}

// DailyBreakdown groups the view by calendar day in loc and summarizes each
// day that has at least one record. Days are returned in ascending order.
func DailyBreakdown(v *MedicalView, loc *time.Location) []DaySummary {
	if loc == nil {
		loc = time.UTC
	}
	days := make(map[string]*MedicalView)
	dayOf := func(ts time.Time) *MedicalView {
		key := ts.In(loc).Format(dayLayout)
		d, ok := days[key]
		if !ok {
			d = &MedicalView{Profile: v.Profile}
			days[key] = d
		}
		return d
	}
	for _, m := range v.Glucose {
		d := dayOf(m.Timestamp)
		d.Glucose = append(d.Glucose, m)
	}
	for _, m := range v.Pressure {
		d := dayOf(m.Timestamp)
		d.Pressure = append(d.Pressure, m)
	}
	for _, f := range v.Food {
		d := dayOf(f.Timestamp)
		d.Food = append(d.Food, f)
	}

	keys := make([]string, 0, len(days))
	for k := range days {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]DaySummary, 0, len(keys))
	for _, k := range keys {
		d := days[k]
		nutrition := d.NutritionSummary()
		out = append(out, DaySummary{
			Date:        k,
			Glucose:     d.GlucoseSummary(),
			Pressure:    d.PressureSummary(),
			Calories:    nutrition.TotalCalories,
			FoodEntries: nutrition.EntryCount,
			HealthScore: d.HealthScore(),
		})
	}
	return out
}

// MetricAdherence compares logged records with the profile's daily target.
type MetricAdherence struct {
	Expected   int     `json:"expected"`
	Actual     int     `json:"actual"`
	Percentage float64 `json:"percentage"`
}

func adherenceOf(actual, perDay, days int) MetricAdherence {
	a := MetricAdherence{Expected: perDay * days, Actual: actual}
	if a.Expected > 0 {
		a.Percentage = round2(float64(actual) / float64(a.Expected) * 100)
	}
	return a
}

// Adherence is how well the logged records follow the measurement frequency
// configured in the profile.
type Adherence struct {
	Days     int             `json:"days"`
	Glucose  MetricAdherence `json:"glucose"`
	Pressure MetricAdherence `json:"pressure"`
	Food     MetricAdherence `json:"food"`
}

// FrequencyAdherence counts the records of the view against the profile's
// per-day targets over the calendar days of period in loc. Percentages may
// exceed 100.
func FrequencyAdherence(v *MedicalView, period Period, loc *time.Location) Adherence {
	days := period.Days(loc)
	freq := domain.DefaultFrequency
	if v.Profile != nil {
		freq = v.Profile.Frequency
	}
	return Adherence{
		Days:     days,
		Glucose:  adherenceOf(len(v.Glucose), freq.GlucosePerDay, days),
		Pressure: adherenceOf(len(v.Pressure), freq.PressurePerDay, days),
		Food:     adherenceOf(len(v.Food), freq.FoodPerDay, days),
	}
}
