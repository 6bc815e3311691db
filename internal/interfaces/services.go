package interfaces

import (
	"context"
	"time"

	"github.com/vladimiradmaev/health-tracker/internal/analysis"
	"github.com/vladimiradmaev/health-tracker/internal/domain"
	"github.com/vladimiradmaev/health-tracker/internal/services"
)

// ProfileServiceInterface defines the contract for profile operations
type ProfileServiceInterface interface {
	CreateProfile(ctx context.Context, params domain.ProfileParams) (*domain.UserProfile, error)
	GetProfileByTelegramID(ctx context.Context, telegramID int64) (*domain.UserProfile, error)
	UpdateGlucoseLimits(ctx context.Context, id string, fasting, postPrandial domain.LimitRange) (*domain.UserProfile, error)
	SetCustomGlucoseRange(ctx context.Context, id, name string, limits domain.LimitRange) (*domain.UserProfile, error)
	RemoveCustomGlucoseRange(ctx context.Context, id, name string) (*domain.UserProfile, error)
	UpdatePressureLimits(ctx context.Context, id string, limits domain.PressureLimits) (*domain.UserProfile, error)
	UpdateBody(ctx context.Context, id string, weightKg, heightCm float64) (*domain.UserProfile, error)
	UpdateFrequency(ctx context.Context, id string, f domain.MeasurementFrequency) (*domain.UserProfile, error)
}

// MeasurementServiceInterface defines the contract for recording and
// correcting readings
type MeasurementServiceInterface interface {
	RecordGlucose(ctx context.Context, in services.GlucoseInput) (*domain.GlucoseMeasurement, error)
	RecordPressure(ctx context.Context, in services.PressureInput) (*domain.PressureMeasurement, error)
	RecordFood(ctx context.Context, in services.FoodInput) (*domain.FoodEntry, error)
	UpdateGlucoseValue(ctx context.Context, userID, id string, value float64) (*domain.GlucoseMeasurement, error)
	DeleteGlucose(ctx context.Context, userID, id string) error
	DeletePressure(ctx context.Context, userID, id string) error
	DeleteFood(ctx context.Context, userID, id string) error
	ListGlucose(ctx context.Context, userID string, start, end time.Time) ([]*domain.GlucoseMeasurement, error)
	ListPressure(ctx context.Context, userID string, start, end time.Time) ([]*domain.PressureMeasurement, error)
	ListFood(ctx context.Context, userID string, start, end time.Time) ([]*domain.FoodEntry, error)
}

// ReportServiceInterface defines the contract for period analysis
type ReportServiceInterface interface {
	GetSummary(ctx context.Context, userID string, start, end time.Time) (*analysis.Summary, error)
	GetGlucoseTrend(ctx context.Context, userID string, start, end time.Time) (*analysis.GlucoseTrend, error)
	GetPressureTrend(ctx context.Context, userID string, start, end time.Time) (*analysis.PressureTrend, error)
	GetDailyBreakdown(ctx context.Context, userID string, start, end time.Time) ([]analysis.DaySummary, error)
	GetReport(ctx context.Context, userID string, start, end time.Time) (*analysis.Report, error)
	Location() *time.Location
}

var (
	_ ProfileServiceInterface     = (*services.ProfileService)(nil)
	_ MeasurementServiceInterface = (*services.MeasurementService)(nil)
	_ ReportServiceInterface      = (*services.ReportService)(nil)
)
