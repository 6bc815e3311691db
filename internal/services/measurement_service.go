package services

import (
	"context"
	"time"

	"github.com/vladimiradmaev/health-tracker/internal/domain"
	apperrors "github.com/vladimiradmaev/health-tracker/internal/errors"
	"github.com/vladimiradmaev/health-tracker/internal/logger"
)

// GlucoseInput is a glucose reading as entered by the user.
type GlucoseInput struct {
	UserID      string
	Value       float64
	Context     domain.GlucoseContext
	CustomRange string
	Timestamp   time.Time
	Notes       string
}

type PressureInput struct {
	UserID    string
	Systolic  int
	Diastolic int
	Timestamp time.Time
	Notes     string
}

// FoodInput leaves Category empty to derive it from Description.
type FoodInput struct {
	UserID      string
	Description string
	QuantityG   float64
	Category    string
	Timestamp   time.Time
	Notes       string
}

// MeasurementService records readings classified against the owner's
// personalized limits.
type MeasurementService struct {
	profiles ProfileStore
	glucose  GlucoseStore
	pressure PressureStore
	food     FoodStore
	ids      IDGenerator
	locks    userLocks
}

func NewMeasurementService(profiles ProfileStore, glucose GlucoseStore, pressure PressureStore, food FoodStore, ids IDGenerator) *MeasurementService {
	return &MeasurementService{
		profiles: profiles,
		glucose:  glucose,
		pressure: pressure,
		food:     food,
		ids:      ids,
	}
}

// RecordGlucose classifies the value against the profile's range for the
// reading's context and stores it. Custom readings must name an existing
// custom range.
func (s *MeasurementService) RecordGlucose(ctx context.Context, in GlucoseInput) (*domain.GlucoseMeasurement, error) {
	profile, err := s.profiles.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	readingCtx := in.Context
	if readingCtx == "" {
		readingCtx = domain.ContextFasting
	}
	if readingCtx == domain.ContextCustom && !profile.GlucoseLimits.HasCustom(in.CustomRange) {
		return nil, domain.ErrCustomRangeNotFound
	}
	limits := profile.GlucoseRangeFor(readingCtx, in.CustomRange)

	m, err := domain.NewGlucoseMeasurement(domain.GlucoseParams{
		ID:          s.ids.NewID(),
		UserID:      profile.ID,
		Timestamp:   in.Timestamp,
		Value:       in.Value,
		Context:     readingCtx,
		CustomRange: in.CustomRange,
		Notes:       in.Notes,
		Limits:      &limits,
	})
	if err != nil {
		return nil, err
	}
	if err := s.glucose.Create(ctx, m); err != nil {
		return nil, err
	}
	logger.WithUser(profile.ID).Info("Glucose recorded", "value", m.Value, "context", m.Context, "status", m.Status)
	return m, nil
}

func (s *MeasurementService) RecordPressure(ctx context.Context, in PressureInput) (*domain.PressureMeasurement, error) {
	profile, err := s.profiles.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	limits := profile.PressureLimits

	m, err := domain.NewPressureMeasurement(domain.PressureParams{
		ID:        s.ids.NewID(),
		UserID:    profile.ID,
		Timestamp: in.Timestamp,
		Systolic:  in.Systolic,
		Diastolic: in.Diastolic,
		Notes:     in.Notes,
		Limits:    &limits,
	})
	if err != nil {
		return nil, err
	}
	if err := s.pressure.Create(ctx, m); err != nil {
		return nil, err
	}
	logger.WithUser(profile.ID).Info("Pressure recorded", "reading", m.Reading(), "status", m.Status, "category", m.Category)
	return m, nil
}

func (s *MeasurementService) RecordFood(ctx context.Context, in FoodInput) (*domain.FoodEntry, error) {
	profile, err := s.profiles.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	f, err := domain.NewFoodEntry(domain.FoodParams{
		ID:          s.ids.NewID(),
		UserID:      profile.ID,
		Timestamp:   in.Timestamp,
		Description: in.Description,
		QuantityG:   in.QuantityG,
		Category:    in.Category,
		Notes:       in.Notes,
	})
	if err != nil {
		return nil, err
	}
	if err := s.food.Create(ctx, f); err != nil {
		return nil, err
	}
	logger.WithUser(profile.ID).Info("Food recorded", "category", f.Category, "grams", f.QuantityG, "calories", f.Calories())
	return f, nil
}

// UpdateGlucoseValue corrects a stored reading. The status is recomputed
// against the limits stored with the reading.
func (s *MeasurementService) UpdateGlucoseValue(ctx context.Context, userID, id string, value float64) (*domain.GlucoseMeasurement, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	m, err := s.glucose.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.UserID != userID {
		return nil, apperrors.NewNotFoundError("glucose measurement", id)
	}
	if err := m.UpdateValue(value); err != nil {
		return nil, err
	}
	if err := s.glucose.Update(ctx, m); err != nil {
		return nil, err
	}
	logger.WithUser(userID).Info("Glucose updated", "id", id, "value", value, "status", m.Status)
	return m, nil
}

// owned checks that the record exists and belongs to userID before removal.
func owned(owner, userID, resource, id string) error {
	if owner != userID {
		return apperrors.NewNotFoundError(resource, id)
	}
	return nil
}

func (s *MeasurementService) DeleteGlucose(ctx context.Context, userID, id string) error {
	m, err := s.glucose.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := owned(m.UserID, userID, "glucose measurement", id); err != nil {
		return err
	}
	return s.glucose.Delete(ctx, id)
}

func (s *MeasurementService) DeletePressure(ctx context.Context, userID, id string) error {
	m, err := s.pressure.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := owned(m.UserID, userID, "pressure measurement", id); err != nil {
		return err
	}
	return s.pressure.Delete(ctx, id)
}

func (s *MeasurementService) DeleteFood(ctx context.Context, userID, id string) error {
	f, err := s.food.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := owned(f.UserID, userID, "food entry", id); err != nil {
		return err
	}
	return s.food.Delete(ctx, id)
}

func (s *MeasurementService) ListGlucose(ctx context.Context, userID string, start, end time.Time) ([]*domain.GlucoseMeasurement, error) {
	return s.glucose.ListByUserAndRange(ctx, userID, start, end)
}

func (s *MeasurementService) ListPressure(ctx context.Context, userID string, start, end time.Time) ([]*domain.PressureMeasurement, error) {
	return s.pressure.ListByUserAndRange(ctx, userID, start, end)
}

func (s *MeasurementService) ListFood(ctx context.Context, userID string, start, end time.Time) ([]*domain.FoodEntry, error) {
	return s.food.ListByUserAndRange(ctx, userID, start, end)
}
