package analysis

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladimiradmaev/health-tracker/internal/domain"
)

var base = time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

func newProfile(t *testing.T) *domain.UserProfile {
	t.Helper()
	p, err := domain.NewUserProfile(domain.ProfileParams{
		ID:        "u-1",
		Name:      "Ana",
		BirthDate: time.Date(1980, 6, 15, 0, 0, 0, 0, time.UTC),
		WeightKg:  70,
		HeightCm:  175,
	})
	require.NoError(t, err)
	return p
}

func glucoseAt(t *testing.T, value float64, context domain.GlucoseContext, at time.Time) *domain.GlucoseMeasurement {
	t.Helper()
	m, err := domain.NewGlucoseMeasurement(domain.GlucoseParams{
		ID:        fmt.Sprintf("g-%g", value),
		UserID:    "u-1",
		Timestamp: at,
		Value:     value,
		Context:   context,
	})
	require.NoError(t, err)
	return m
}

var testPressureLimits = domain.PressureLimits{
	Systolic:  domain.LimitRange{Min: 110, Max: 120},
	Diastolic: domain.LimitRange{Min: 70, Max: 80},
}

func pressureAt(t *testing.T, systolic, diastolic int, at time.Time) *domain.PressureMeasurement {
	t.Helper()
	limits := testPressureLimits
	m, err := domain.NewPressureMeasurement(domain.PressureParams{
		ID:        fmt.Sprintf("p-%d-%d", systolic, diastolic),
		UserID:    "u-1",
		Timestamp: at,
		Systolic:  systolic,
		Diastolic: diastolic,
		Limits:    &limits,
	})
	require.NoError(t, err)
	return m
}

func foodAt(t *testing.T, description string, grams float64, category domain.FoodCategory, at time.Time) *domain.FoodEntry {
	t.Helper()
	f, err := domain.NewFoodEntry(domain.FoodParams{
		ID:          "f-" + description,
		UserID:      "u-1",
		Timestamp:   at,
		Description: description,
		QuantityG:   grams,
		Category:    string(category),
	})
	require.NoError(t, err)
	return f
}

// sampleView reproduces the reference period: three glucose readings, two
// pressure readings and three meals.
func sampleView(t *testing.T) *MedicalView {
	t.Helper()
	return NewMedicalView(
		newProfile(t),
		[]*domain.GlucoseMeasurement{
			glucoseAt(t, 95, domain.ContextFasting, base),
			glucoseAt(t, 120, domain.ContextPostPrandial, base.Add(4*time.Hour)),
			glucoseAt(t, 150, domain.ContextPostPrandial, base.Add(10*time.Hour)),
		},
		[]*domain.PressureMeasurement{
			pressureAt(t, 120, 80, base),
			pressureAt(t, 135, 85, base.Add(12*time.Hour)),
		},
		[]*domain.FoodEntry{
			foodAt(t, "pan integral", 100, domain.FoodCarbohydrates, base.Add(time.Hour)),
			foodAt(t, "pollo asado", 150, domain.FoodProteins, base.Add(5*time.Hour)),
			foodAt(t, "ensalada mixta", 200, domain.FoodVegetables, base.Add(5*time.Hour)),
		},
	)
}

func TestNewMedicalViewCopiesSlices(t *testing.T) {
	g := []*domain.GlucoseMeasurement{glucoseAt(t, 95, domain.ContextFasting, base)}
	v := NewMedicalView(nil, g, nil, nil)
	g[0] = glucoseAt(t, 300, domain.ContextFasting, base)

	assert.Equal(t, 95.0, v.Glucose[0].Value)
}

func TestGlucoseSummary(t *testing.T) {
	s := sampleView(t).GlucoseSummary()

	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 1, s.Normal)
	assert.Equal(t, 1, s.Warning)
	assert.Equal(t, 1, s.Critical)
	assert.Equal(t, 33.33, s.NormalPct)
	assert.Equal(t, 121.67, s.Average)
	assert.Equal(t, 95.0, s.Min)
	assert.Equal(t, 150.0, s.Max)

	assert.Len(t, s.ByContext[domain.ContextFasting], 1)
	assert.Len(t, s.ByContext[domain.ContextPostPrandial], 2)
	assert.Equal(t, 2, s.ContextCounts[domain.ContextPostPrandial])
}

func TestGlucoseSummaryStatusesInOrder(t *testing.T) {
	v := sampleView(t)
	var statuses []domain.Status
	for _, m := range v.Glucose {
		statuses = append(statuses, m.Status)
	}
	assert.Equal(t, []domain.Status{domain.StatusNormal, domain.StatusWarning, domain.StatusCritical}, statuses)
}

func TestPressureSummary(t *testing.T) {
	s := sampleView(t).PressureSummary()

	assert.Equal(t, 2, s.Total)
	assert.Equal(t, 1, s.Normal)
	assert.Equal(t, 1, s.Warning)
	assert.Equal(t, 50.0, s.NormalPct)
	assert.Equal(t, 50.0, s.WarningPct)
	assert.Equal(t, 127.5, s.Systolic.Average)
	assert.Equal(t, 82.5, s.Diastolic.Average)
	assert.Equal(t, 120.0, s.Systolic.Min)
	assert.Equal(t, 135.0, s.Systolic.Max)
	assert.Equal(t, 1, s.CategoryCounts[domain.PressurePrehypertension])
	assert.Equal(t, 1, s.CategoryCounts[domain.PressureStage1])
}

func TestNutritionSummary(t *testing.T) {
	s := sampleView(t).NutritionSummary()

	assert.Equal(t, 3, s.EntryCount)
	assert.Equal(t, 415, s.TotalCalories)
	assert.Equal(t, 450.0, s.TotalQuantityG)
	assert.Equal(t, CategoryTotals{Entries: 1, Calories: 130, QuantityG: 100}, s.ByCategory[domain.FoodCarbohydrates])
	assert.Equal(t, CategoryTotals{Entries: 1, Calories: 225, QuantityG: 150}, s.ByCategory[domain.FoodProteins])
	assert.Equal(t, CategoryTotals{Entries: 1, Calories: 60, QuantityG: 200}, s.ByCategory[domain.FoodVegetables])
	assert.Len(t, s.Entries[domain.FoodVegetables], 1)
}

func TestEmptyViewSummaries(t *testing.T) {
	v := NewMedicalView(newProfile(t), nil, nil, nil)

	g := v.GlucoseSummary()
	assert.Zero(t, g.Total)
	assert.Zero(t, g.NormalPct)
	assert.Zero(t, g.WarningPct)
	assert.Zero(t, g.CriticalPct)
	assert.Equal(t, ValueStats{}, g.ValueStats)

	p := v.PressureSummary()
	assert.Zero(t, p.Total)
	assert.Equal(t, ValueStats{}, p.Systolic)

	assert.Zero(t, v.NutritionSummary().TotalCalories)
	assert.Equal(t, 100, v.HealthScore())
	assert.Empty(t, v.CriticalAlerts())
}

func TestPercentagesSumToHundred(t *testing.T) {
	values := []float64{50, 65, 72, 80, 99, 101, 115, 130, 200, 90, 64}
	var ms []*domain.GlucoseMeasurement
	for i, value := range values {
		ms = append(ms, glucoseAt(t, value, domain.ContextFasting, base.Add(time.Duration(i)*time.Minute)))
	}
	s := NewMedicalView(nil, ms, nil, nil).GlucoseSummary()

	assert.Equal(t, len(values), s.Normal+s.Warning+s.Critical)
	assert.InDelta(t, 100, s.NormalPct+s.WarningPct+s.CriticalPct, 0.02)
}

func TestHealthScore(t *testing.T) {
	tests := []struct {
		name     string
		glucose  []float64
		pressure [][2]int
		score    int
		overall  OverallStatus
	}{
		{name: "all normal", glucose: []float64{90, 95}, pressure: [][2]int{{115, 75}}, score: 100, overall: OverallExcellent},
		{name: "one critical glucose one warning pressure", glucose: []float64{95, 150}, pressure: [][2]int{{120, 80}, {135, 85}}, score: 70, overall: OverallGood},
		{name: "one warning", glucose: []float64{110}, score: 90, overall: OverallExcellent},
		{name: "fair", glucose: []float64{150, 110, 115}, score: 60, overall: OverallFair},
		{name: "floored at zero", glucose: []float64{200, 200, 200, 200, 200, 200}, score: 0, overall: OverallPoor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var g []*domain.GlucoseMeasurement
			for i, value := range tt.glucose {
				g = append(g, glucoseAt(t, value, domain.ContextFasting, base.Add(time.Duration(i)*time.Hour)))
			}
			var p []*domain.PressureMeasurement
			for i, r := range tt.pressure {
				p = append(p, pressureAt(t, r[0], r[1], base.Add(time.Duration(i)*time.Hour)))
			}
			v := NewMedicalView(nil, g, p, nil)

			assert.Equal(t, tt.score, v.HealthScore())
			assert.Equal(t, tt.overall, OverallStatusFor(v.HealthScore()))
		})
	}
}

func TestOverallStatusBoundaries(t *testing.T) {
	assert.Equal(t, OverallExcellent, OverallStatusFor(90))
	assert.Equal(t, OverallGood, OverallStatusFor(89))
	assert.Equal(t, OverallGood, OverallStatusFor(70))
	assert.Equal(t, OverallFair, OverallStatusFor(69))
	assert.Equal(t, OverallFair, OverallStatusFor(50))
	assert.Equal(t, OverallPoor, OverallStatusFor(49))
}

func TestCriticalAlerts(t *testing.T) {
	v := sampleView(t)
	v.Pressure = append(v.Pressure, pressureAt(t, 170, 100, base.Add(20*time.Hour)))

	alerts := v.CriticalAlerts()
	require.Len(t, alerts, 2)

	assert.Equal(t, MetricGlucose, alerts[0].Type)
	assert.Equal(t, 150.0, alerts[0].Value)
	assert.Equal(t, domain.StatusCritical, alerts[0].Severity)

	assert.Equal(t, MetricPressure, alerts[1].Type)
	assert.Equal(t, 170.0, alerts[1].Value)
	assert.Equal(t, "170/100 mmHg", alerts[1].Reading)
	assert.Equal(t, domain.StatusCritical, alerts[1].Severity)
}

func TestGenerateSummary(t *testing.T) {
	s := sampleView(t).GenerateSummary()

	assert.Equal(t, "u-1", s.UserID)
	assert.Equal(t, "Ana", s.UserName)
	assert.Equal(t, 60, s.HealthScore)
	assert.Equal(t, OverallFair, s.OverallStatus)
	require.Len(t, s.Alerts, 1)
	assert.Equal(t, 150.0, s.Alerts[0].Value)

	byPriority := map[Priority]int{}
	for _, r := range s.Recommendations {
		byPriority[r.Priority]++
	}
	assert.Equal(t, 1, byPriority[PriorityHigh])
	assert.Equal(t, 2, byPriority[PriorityMedium])
	// 415 kcal is under the minimum; vegetables were logged.
	assert.Equal(t, 1, byPriority[PriorityLow])
}

func TestRecommendationsForEmptyPeriod(t *testing.T) {
	s := NewMedicalView(newProfile(t), nil, nil, nil).GenerateSummary()

	require.Len(t, s.Recommendations, 2)
	for _, r := range s.Recommendations {
		assert.Equal(t, PriorityLow, r.Priority)
		assert.Equal(t, MetricNutrition, r.Type)
	}
}

func TestRecommendationsNoLowPriorityWhenFed(t *testing.T) {
	food := []*domain.FoodEntry{
		foodAt(t, "arroz", 800, domain.FoodCarbohydrates, base),
		foodAt(t, "brocoli", 300, domain.FoodVegetables, base),
	}
	s := NewMedicalView(newProfile(t), nil, nil, food).GenerateSummary()

	assert.Equal(t, 1130, s.Nutrition.TotalCalories)
	require.Len(t, s.Recommendations, 1)
	assert.Equal(t, PriorityLow, s.Recommendations[0].Priority)

	food = append(food, foodAt(t, "queso", 100, domain.FoodDairy, base))
	s = NewMedicalView(newProfile(t), nil, nil, food).GenerateSummary()
	assert.Empty(t, s.Recommendations)
}

func TestPressureRecommendationForLowWarning(t *testing.T) {
	low := pressureAt(t, 100, 65, base)
	require.Equal(t, domain.StatusWarning, low.Status)

	s := NewMedicalView(newProfile(t), nil, []*domain.PressureMeasurement{low}, nil).GenerateSummary()

	var pressure []Recommendation
	for _, r := range s.Recommendations {
		if r.Type == MetricPressure {
			pressure = append(pressure, r)
		}
	}
	require.Len(t, pressure, 1)
	assert.Equal(t, PriorityMedium, pressure[0].Priority)
	assert.Contains(t, pressure[0].Message, "outside your target range")
}
