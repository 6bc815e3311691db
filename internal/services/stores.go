package services

import (
	"context"
	"time"

	"github.com/vladimiradmaev/health-tracker/internal/domain"
)

// ProfileStore is the persistence the services need for profiles. It is
// satisfied by repository.ProfileRepository.
type ProfileStore interface {
	Create(ctx context.Context, p *domain.UserProfile) error
	Update(ctx context.Context, p *domain.UserProfile) error
	GetByID(ctx context.Context, id string) (*domain.UserProfile, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*domain.UserProfile, error)
}

type GlucoseStore interface {
	Create(ctx context.Context, m *domain.GlucoseMeasurement) error
	Update(ctx context.Context, m *domain.GlucoseMeasurement) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.GlucoseMeasurement, error)
	ListByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]*domain.GlucoseMeasurement, error)
}

type PressureStore interface {
	Create(ctx context.Context, m *domain.PressureMeasurement) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.PressureMeasurement, error)
	ListByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]*domain.PressureMeasurement, error)
}

type FoodStore interface {
	Create(ctx context.Context, f *domain.FoodEntry) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.FoodEntry, error)
	ListByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]*domain.FoodEntry, error)
}
