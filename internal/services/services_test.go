package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladimiradmaev/health-tracker/internal/analysis"
	"github.com/vladimiradmaev/health-tracker/internal/domain"
	apperrors "github.com/vladimiradmaev/health-tracker/internal/errors"
)

var day = time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

func createProfile(t *testing.T, f *fixture) *domain.UserProfile {
	t.Helper()
	p, err := f.profileSvc.CreateProfile(context.Background(), domain.ProfileParams{
		TelegramID: 42,
		Name:       "Ana",
		BirthDate:  time.Date(1980, 6, 15, 0, 0, 0, 0, time.UTC),
		WeightKg:   70,
		HeightCm:   175,
	})
	require.NoError(t, err)
	return p
}

func TestUUIDGenerator(t *testing.T) {
	id := UUIDGenerator{}.NewID()
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.NotEqual(t, id, UUIDGenerator{}.NewID())
}

func TestSequenceGeneratorConcurrent(t *testing.T) {
	g := &SequenceGenerator{Prefix: "x"}
	var wg sync.WaitGroup
	seen := sync.Map{}
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, dup := seen.LoadOrStore(g.NewID(), true)
			assert.False(t, dup)
		}()
	}
	wg.Wait()
	assert.Equal(t, "x-51", g.NewID())
}

func TestCreateProfile(t *testing.T) {
	f := newFixture()
	p := createProfile(t, f)

	assert.Equal(t, "user-1", p.ID)
	assert.Equal(t, domain.DefaultGlucoseLimits(), p.GlucoseLimits)

	byTelegram, err := f.profileSvc.GetProfileByTelegramID(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, p.ID, byTelegram.ID)
}

func TestCreateProfileValidation(t *testing.T) {
	f := newFixture()
	_, err := f.profileSvc.CreateProfile(context.Background(), domain.ProfileParams{Name: "Ana"})

	assert.ErrorIs(t, err, domain.ErrBirthDateRequired)
	assert.Empty(t, f.profiles.byID)
}

func TestGetProfileNotFound(t *testing.T) {
	_, err := newFixture().profileSvc.GetProfile(context.Background(), "nobody")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestProfileUpdates(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := createProfile(t, f)

	_, err := f.profileSvc.UpdateGlucoseLimits(ctx, p.ID, domain.LimitRange{Min: 80, Max: 110}, domain.LimitRange{Min: 100, Max: 160})
	require.NoError(t, err)
	_, err = f.profileSvc.UpdatePressureLimits(ctx, p.ID, domain.PressureLimits{
		Systolic:  domain.LimitRange{Min: 100, Max: 130},
		Diastolic: domain.LimitRange{Min: 60, Max: 85},
	})
	require.NoError(t, err)
	_, err = f.profileSvc.UpdateBody(ctx, p.ID, 68, 0)
	require.NoError(t, err)
	_, err = f.profileSvc.UpdateFrequency(ctx, p.ID, domain.MeasurementFrequency{GlucosePerDay: 4, PressurePerDay: 2, FoodPerDay: 5})
	require.NoError(t, err)
	_, err = f.profileSvc.SetCustomGlucoseRange(ctx, p.ID, "bedtime", domain.LimitRange{Min: 90, Max: 150})
	require.NoError(t, err)
	_, err = f.profileSvc.UpdatePersonal(ctx, p.ID, "Ana María", time.Time{}, []string{"hypertension"})
	require.NoError(t, err)

	got, err := f.profileSvc.GetProfile(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LimitRange{Min: 80, Max: 110}, got.GlucoseLimits.Fasting)
	assert.Equal(t, 130.0, got.PressureLimits.Systolic.Max)
	assert.Equal(t, 68.0, got.WeightKg)
	assert.Equal(t, 175.0, got.HeightCm)
	assert.Equal(t, 4, got.Frequency.GlucosePerDay)
	assert.True(t, got.GlucoseLimits.HasCustom("bedtime"))
	assert.Equal(t, "Ana María", got.Name)
	assert.Equal(t, []string{"hypertension"}, got.Conditions)
	assert.Equal(t, 6, f.profiles.updates)

	_, err = f.profileSvc.RemoveCustomGlucoseRange(ctx, p.ID, "bedtime")
	require.NoError(t, err)
	_, err = f.profileSvc.RemoveCustomGlucoseRange(ctx, p.ID, "bedtime")
	assert.ErrorIs(t, err, domain.ErrCustomRangeNotFound)
}

func TestProfileUpdateRejectedLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := createProfile(t, f)

	_, err := f.profileSvc.UpdateGlucoseLimits(ctx, p.ID, domain.LimitRange{Min: 120, Max: 100}, domain.DefaultPostPrandialRange)
	assert.ErrorIs(t, err, domain.ErrInvalidLimitRange)
	_, err = f.profileSvc.UpdateBody(ctx, p.ID, 80, -1)
	assert.ErrorIs(t, err, domain.ErrHeightNotPositive)

	got, err := f.profileSvc.GetProfile(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultFastingRange, got.GlucoseLimits.Fasting)
	assert.Equal(t, 70.0, got.WeightKg)
	assert.Zero(t, f.profiles.updates)
}

func TestRecordGlucoseUsesContextRange(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := createProfile(t, f)
	_, err := f.profileSvc.SetCustomGlucoseRange(ctx, p.ID, "bedtime", domain.LimitRange{Min: 90, Max: 150})
	require.NoError(t, err)

	tests := []struct {
		name   string
		in     GlucoseInput
		status domain.Status
		limits domain.LimitRange
	}{
		{name: "fasting default", in: GlucoseInput{Value: 120}, status: domain.StatusWarning, limits: domain.DefaultFastingRange},
		{name: "post-prandial", in: GlucoseInput{Value: 120, Context: domain.ContextPostPrandial}, status: domain.StatusNormal, limits: domain.DefaultPostPrandialRange},
		{name: "custom", in: GlucoseInput{Value: 145, Context: domain.ContextCustom, CustomRange: "Bedtime"}, status: domain.StatusNormal, limits: domain.LimitRange{Min: 90, Max: 150}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.UserID = p.ID
			tt.in.Timestamp = day
			m, err := f.measurementSvc.RecordGlucose(ctx, tt.in)
			require.NoError(t, err)

			assert.Equal(t, tt.status, m.Status)
			assert.Equal(t, tt.limits, m.Limits)
			stored, err := f.glucose.GetByID(ctx, m.ID)
			require.NoError(t, err)
			assert.Equal(t, m.Status, stored.Status)
		})
	}
}

func TestRecordGlucoseErrors(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := createProfile(t, f)

	_, err := f.measurementSvc.RecordGlucose(ctx, GlucoseInput{UserID: "nobody", Value: 100})
	assert.True(t, apperrors.IsNotFound(err))

	_, err = f.measurementSvc.RecordGlucose(ctx, GlucoseInput{UserID: p.ID, Value: 0})
	assert.ErrorIs(t, err, domain.ErrGlucoseNotPositive)

	_, err = f.measurementSvc.RecordGlucose(ctx, GlucoseInput{UserID: p.ID, Value: 100, Context: domain.ContextCustom, CustomRange: "exercise"})
	assert.ErrorIs(t, err, domain.ErrCustomRangeNotFound)

	assert.Empty(t, f.glucose.items)
}

func TestRecordPressureAndFood(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := createProfile(t, f)

	m, err := f.measurementSvc.RecordPressure(ctx, PressureInput{UserID: p.ID, Systolic: 118, Diastolic: 76, Timestamp: day})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNormal, m.Status)
	assert.Equal(t, domain.DefaultPressureLimits, m.Limits)

	_, err = f.measurementSvc.RecordPressure(ctx, PressureInput{UserID: p.ID, Systolic: 80, Diastolic: 90})
	assert.ErrorIs(t, err, domain.ErrDiastolicAboveSystolic)

	food, err := f.measurementSvc.RecordFood(ctx, FoodInput{UserID: p.ID, Description: "yogur natural", QuantityG: 125, Timestamp: day})
	require.NoError(t, err)
	assert.Equal(t, domain.FoodDairy, food.Category)
	assert.Equal(t, 125, food.Calories())

	_, err = f.measurementSvc.RecordFood(ctx, FoodInput{UserID: p.ID, Description: "algo", QuantityG: 10, Category: "sweets"})
	assert.ErrorIs(t, err, domain.ErrInvalidFoodType)
}

func TestUpdateAndDeleteOwnership(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := createProfile(t, f)
	m, err := f.measurementSvc.RecordGlucose(ctx, GlucoseInput{UserID: p.ID, Value: 95, Timestamp: day})
	require.NoError(t, err)

	_, err = f.measurementSvc.UpdateGlucoseValue(ctx, "someone-else", m.ID, 150)
	assert.True(t, apperrors.IsNotFound(err))

	updated, err := f.measurementSvc.UpdateGlucoseValue(ctx, p.ID, m.ID, 150)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCritical, updated.Status)

	_, err = f.measurementSvc.UpdateGlucoseValue(ctx, p.ID, m.ID, -5)
	assert.ErrorIs(t, err, domain.ErrGlucoseNotPositive)
	stored, err := f.glucose.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 150.0, stored.Value)

	assert.True(t, apperrors.IsNotFound(f.measurementSvc.DeleteGlucose(ctx, "someone-else", m.ID)))
	require.NoError(t, f.measurementSvc.DeleteGlucose(ctx, p.ID, m.ID))
	assert.True(t, apperrors.IsNotFound(f.measurementSvc.DeleteGlucose(ctx, p.ID, m.ID)))

	pm, err := f.measurementSvc.RecordPressure(ctx, PressureInput{UserID: p.ID, Systolic: 120, Diastolic: 80})
	require.NoError(t, err)
	require.NoError(t, f.measurementSvc.DeletePressure(ctx, p.ID, pm.ID))

	fe, err := f.measurementSvc.RecordFood(ctx, FoodInput{UserID: p.ID, Description: "pan", QuantityG: 50})
	require.NoError(t, err)
	assert.True(t, apperrors.IsNotFound(f.measurementSvc.DeleteFood(ctx, "someone-else", fe.ID)))
	require.NoError(t, f.measurementSvc.DeleteFood(ctx, p.ID, fe.ID))
}

// seedReferencePeriod records the readings used throughout the report tests.
// Readings are created directly so they are classified against the fasting
// range, as the reference figures expect.
func seedReferencePeriod(t *testing.T, f *fixture, userID string) {
	t.Helper()
	ctx := context.Background()
	for i, v := range []struct {
		value   float64
		context domain.GlucoseContext
	}{{95, domain.ContextFasting}, {120, domain.ContextPostPrandial}, {150, domain.ContextPostPrandial}} {
		m, err := domain.NewGlucoseMeasurement(domain.GlucoseParams{
			ID: "g-" + string(rune('a'+i)), UserID: userID, Value: v.value, Context: v.context,
			Timestamp: day.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
		require.NoError(t, f.glucose.Create(ctx, m))
	}
	limits := domain.PressureLimits{
		Systolic:  domain.LimitRange{Min: 110, Max: 120},
		Diastolic: domain.LimitRange{Min: 70, Max: 80},
	}
	for i, r := range [][2]int{{120, 80}, {135, 85}} {
		m, err := domain.NewPressureMeasurement(domain.PressureParams{
			ID: "p-" + string(rune('a'+i)), UserID: userID, Systolic: r[0], Diastolic: r[1], Limits: &limits,
			Timestamp: day.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
		require.NoError(t, f.pressure.Create(ctx, m))
	}
	for i, e := range []struct {
		category domain.FoodCategory
		grams    float64
	}{{domain.FoodCarbohydrates, 100}, {domain.FoodProteins, 150}, {domain.FoodVegetables, 200}} {
		fe, err := domain.NewFoodEntry(domain.FoodParams{
			ID: "f-" + string(rune('a'+i)), UserID: userID, Description: string(e.category), QuantityG: e.grams,
			Category: string(e.category), Timestamp: day.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
		require.NoError(t, f.food.Create(ctx, fe))
	}
}

func TestGetSummary(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := createProfile(t, f)
	seedReferencePeriod(t, f, p.ID)

	s, err := f.reportSvc.GetSummary(ctx, p.ID, day, day.AddDate(0, 0, 1))
	require.NoError(t, err)

	assert.Equal(t, 121.67, s.Glucose.Average)
	assert.Equal(t, 95.0, s.Glucose.Min)
	assert.Equal(t, 150.0, s.Glucose.Max)
	require.Len(t, s.Alerts, 1)
	assert.Equal(t, 150.0, s.Alerts[0].Value)
	assert.Equal(t, 127.5, s.Pressure.Systolic.Average)
	assert.Equal(t, 82.5, s.Pressure.Diastolic.Average)
	assert.Equal(t, 415, s.Nutrition.TotalCalories)
	assert.Equal(t, 60, s.HealthScore)
}

func TestGetSummaryRespectsPeriod(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := createProfile(t, f)
	seedReferencePeriod(t, f, p.ID)

	s, err := f.reportSvc.GetSummary(ctx, p.ID, day.Add(2*time.Hour), day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, s.Glucose.Total)
	assert.Zero(t, s.Pressure.Total)
	assert.Equal(t, 1, s.Nutrition.EntryCount)
}

func TestReportServiceErrors(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.reportSvc.GetSummary(ctx, "nobody", day, day.AddDate(0, 0, 1))
	assert.True(t, apperrors.IsNotFound(err))
	_, err = f.reportSvc.GetGlucoseTrend(ctx, "nobody", day, day.AddDate(0, 0, 1))
	assert.True(t, apperrors.IsNotFound(err))

	p := createProfile(t, f)
	boom := errors.New("connection reset")
	f.pressure.failList = apperrors.NewDatabaseError(boom)
	_, err = f.reportSvc.GetReport(ctx, p.ID, day, day.AddDate(0, 0, 1))
	assert.ErrorIs(t, err, boom)
}

func TestTrendsAndBreakdown(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := createProfile(t, f)
	seedReferencePeriod(t, f, p.ID)
	end := day.AddDate(0, 0, 1)

	gt, err := f.reportSvc.GetGlucoseTrend(ctx, p.ID, day, end)
	require.NoError(t, err)
	assert.Equal(t, analysis.DirectionIncreasing, gt.Direction)

	pt, err := f.reportSvc.GetPressureTrend(ctx, p.ID, day, end)
	require.NoError(t, err)
	assert.Equal(t, analysis.MsgPressureRising, pt.Recommendation)

	days, err := f.reportSvc.GetDailyBreakdown(ctx, p.ID, day, end)
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, "2026-03-10", days[0].Date)
}

func TestGetReport(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := createProfile(t, f)
	seedReferencePeriod(t, f, p.ID)
	f.reportSvc.now = func() time.Time { return day.AddDate(0, 0, 1) }

	r, err := f.reportSvc.GetReport(ctx, p.ID, day, day.AddDate(0, 0, 1))
	require.NoError(t, err)

	assert.Equal(t, day.AddDate(0, 0, 1), r.GeneratedAt)
	assert.Equal(t, "Ana", r.Patient.Name)
	assert.Len(t, r.Glucose, 3)
	assert.Len(t, r.Food, 3)
	assert.Equal(t, 1, r.Adherence.Days)
	assert.Equal(t, analysis.OverallFair, r.Summary.OverallStatus)
}
