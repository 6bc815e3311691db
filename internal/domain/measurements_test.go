package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/vladimiradmaev/health-tracker/internal/errors"
)

func TestNewGlucoseMeasurement(t *testing.T) {
	ts := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	post := LimitRange{Min: 100, Max: 140}

	m, err := NewGlucoseMeasurement(GlucoseParams{
		ID:        "g-1",
		UserID:    "user-1",
		Timestamp: ts,
		Value:     150,
		Context:   ContextPostPrandial,
		Limits:    &post,
	})
	require.NoError(t, err)

	assert.Equal(t, ts, m.Timestamp)
	assert.Equal(t, ContextPostPrandial, m.Context)
	assert.Equal(t, StatusWarning, m.Status)
	assert.Equal(t, post, m.Limits)
}

func TestNewGlucoseMeasurementDefaults(t *testing.T) {
	before := time.Now()
	m, err := NewGlucoseMeasurement(GlucoseParams{UserID: "user-1", Value: 120})
	require.NoError(t, err)

	assert.Equal(t, ContextFasting, m.Context)
	assert.Equal(t, DefaultFastingRange, m.Limits)
	assert.Equal(t, StatusWarning, m.Status)
	assert.False(t, m.Timestamp.Before(before))
}

func TestNewGlucoseMeasurementValidation(t *testing.T) {
	bad := LimitRange{Min: 100, Max: 90}
	tests := []struct {
		name   string
		params GlucoseParams
		err    error
	}{
		{"missing user", GlucoseParams{Value: 90}, ErrUserIDRequired},
		{"zero value", GlucoseParams{UserID: "u", Value: 0}, ErrGlucoseNotPositive},
		{"negative value", GlucoseParams{UserID: "u", Value: -3}, ErrGlucoseNotPositive},
		{"NaN value", GlucoseParams{UserID: "u", Value: math.NaN()}, ErrGlucoseNotPositive},
		{"infinite value", GlucoseParams{UserID: "u", Value: math.Inf(1)}, ErrGlucoseNotPositive},
		{"NaN limits", GlucoseParams{UserID: "u", Value: 90, Limits: &LimitRange{Min: math.NaN(), Max: 100}}, ErrLimitNotFinite},
		{"unknown context", GlucoseParams{UserID: "u", Value: 90, Context: "lunch"}, ErrInvalidGlucoseContext},
		{"inverted limits", GlucoseParams{UserID: "u", Value: 90, Limits: &bad}, ErrInvalidLimitRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewGlucoseMeasurement(tt.params)
			assert.Nil(t, m)
			assert.ErrorIs(t, err, tt.err)
			assert.True(t, apperrors.IsValidation(err))
		})
	}
}

func TestGlucoseUpdateValueRecomputesStatus(t *testing.T) {
	m, err := NewGlucoseMeasurement(GlucoseParams{UserID: "u", Value: 90})
	require.NoError(t, err)
	require.Equal(t, StatusNormal, m.Status)

	require.NoError(t, m.UpdateValue(200))
	assert.Equal(t, StatusCritical, m.Status)

	assert.ErrorIs(t, m.UpdateValue(0), ErrGlucoseNotPositive)
	assert.ErrorIs(t, m.UpdateValue(math.NaN()), ErrGlucoseNotPositive)
	assert.Equal(t, 200.0, m.Value)
	assert.Equal(t, StatusCritical, m.Status)
}

func TestGlucoseUpdateContext(t *testing.T) {
	m, err := NewGlucoseMeasurement(GlucoseParams{UserID: "u", Value: 130})
	require.NoError(t, err)
	require.Equal(t, StatusCritical, m.Status)

	require.NoError(t, m.UpdateContext(ContextPostPrandial, "", LimitRange{100, 140}))
	assert.Equal(t, StatusNormal, m.Status)

	assert.ErrorIs(t, m.UpdateContext("snack", "", LimitRange{100, 140}), ErrInvalidGlucoseContext)
	assert.ErrorIs(t, m.Reclassify(LimitRange{140, 100}), ErrInvalidLimitRange)
	assert.Equal(t, ContextPostPrandial, m.Context)

	require.NoError(t, m.Reclassify(LimitRange{70, 100}))
	assert.Equal(t, StatusCritical, m.Status)
}

func TestNewPressureMeasurement(t *testing.T) {
	limits := PressureLimits{Systolic: LimitRange{110, 120}, Diastolic: LimitRange{70, 80}}

	m, err := NewPressureMeasurement(PressureParams{UserID: "u", Systolic: 135, Diastolic: 85, Limits: &limits})
	require.NoError(t, err)

	assert.Equal(t, StatusWarning, m.Status)
	assert.Equal(t, PressureStage1, m.Category)
	assert.Equal(t, "135/85", m.Reading())
}

func TestNewPressureMeasurementValidation(t *testing.T) {
	_, err := NewPressureMeasurement(PressureParams{UserID: "u", Systolic: 80, Diastolic: 120})
	assert.ErrorIs(t, err, ErrDiastolicAboveSystolic)
	assert.Equal(t, "Diastolic pressure cannot be higher than systolic", apperrors.MessageOf(err))

	_, err = NewPressureMeasurement(PressureParams{UserID: "u", Systolic: 0, Diastolic: 0})
	assert.ErrorIs(t, err, ErrPressureNotPositive)

	_, err = NewPressureMeasurement(PressureParams{Systolic: 120, Diastolic: 80})
	assert.ErrorIs(t, err, ErrUserIDRequired)

	m, err := NewPressureMeasurement(PressureParams{UserID: "u", Systolic: 120, Diastolic: 120})
	require.NoError(t, err)
	assert.Equal(t, 120, m.Diastolic)
}

func TestPressureUpdateValues(t *testing.T) {
	m, err := NewPressureMeasurement(PressureParams{UserID: "u", Systolic: 115, Diastolic: 75})
	require.NoError(t, err)
	require.Equal(t, StatusNormal, m.Status)
	require.Equal(t, PressureNormal, m.Category)

	require.NoError(t, m.UpdateValues(155, 95))
	assert.Equal(t, StatusCritical, m.Status)
	assert.Equal(t, PressureStage1, m.Category)

	assert.ErrorIs(t, m.UpdateValues(90, 100), ErrDiastolicAboveSystolic)
	assert.Equal(t, 155, m.Systolic)
	assert.Equal(t, 95, m.Diastolic)

	require.NoError(t, m.Reclassify(PressureLimits{Systolic: LimitRange{100, 160}, Diastolic: LimitRange{60, 100}}))
	assert.Equal(t, StatusNormal, m.Status)
	assert.Equal(t, PressureStage1, m.Category)
}

func TestNewFoodEntry(t *testing.T) {
	f, err := NewFoodEntry(FoodParams{UserID: "u", Description: " Pollo al horno ", QuantityG: 150})
	require.NoError(t, err)

	assert.Equal(t, "Pollo al horno", f.Description)
	assert.Equal(t, FoodProteins, f.Category)
	assert.Equal(t, "🍗", f.Glyph)
	assert.Equal(t, 225, f.Calories())

	explicit, err := NewFoodEntry(FoodParams{UserID: "u", Description: "pollo", QuantityG: 100, Category: "dairy"})
	require.NoError(t, err)
	assert.Equal(t, FoodDairy, explicit.Category)
	assert.Equal(t, "🥛", explicit.Glyph)
}

func TestNewFoodEntryValidation(t *testing.T) {
	_, err := NewFoodEntry(FoodParams{UserID: "u", Description: "pan", QuantityG: 0})
	assert.ErrorIs(t, err, ErrQuantityNotPositive)
	assert.Equal(t, "Quantity must be positive", apperrors.MessageOf(err))

	_, err = NewFoodEntry(FoodParams{UserID: "u", Description: "pan", QuantityG: 10, Category: "candy"})
	assert.ErrorIs(t, err, ErrInvalidFoodType)

	_, err = NewFoodEntry(FoodParams{UserID: "u", Description: "  ", QuantityG: 10})
	assert.ErrorIs(t, err, ErrDescriptionRequired)

	for _, q := range []float64{math.Inf(1), math.NaN()} {
		f, err := NewFoodEntry(FoodParams{UserID: "u", Description: "pan", QuantityG: q})
		assert.Nil(t, f)
		assert.ErrorIs(t, err, ErrQuantityNotPositive)
	}
}

func TestFoodEntryUpdates(t *testing.T) {
	f, err := NewFoodEntry(FoodParams{UserID: "u", Description: "queso", QuantityG: 50})
	require.NoError(t, err)
	require.Equal(t, FoodDairy, f.Category)

	assert.ErrorIs(t, f.UpdateQuantity(-1), ErrQuantityNotPositive)
	assert.ErrorIs(t, f.UpdateQuantity(math.Inf(1)), ErrQuantityNotPositive)
	assert.Equal(t, 50.0, f.QuantityG)
	require.NoError(t, f.UpdateQuantity(80))
	assert.Equal(t, 80, f.Calories())

	require.NoError(t, f.UpdateDescription("huevo revuelto", false))
	assert.Equal(t, FoodDairy, f.Category)
	require.NoError(t, f.UpdateDescription("huevo revuelto", true))
	assert.Equal(t, FoodEggs, f.Category)
	assert.Equal(t, "🥚", f.Glyph)

	assert.ErrorIs(t, f.UpdateCategory("junk"), ErrInvalidFoodType)
	assert.Equal(t, FoodEggs, f.Category)
	require.NoError(t, f.UpdateCategory("vegetables"))
	assert.Equal(t, "🥦", f.Glyph)
}
