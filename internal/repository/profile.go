// Package repository persists domain entities through gorm.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/vladimiradmaev/health-tracker/internal/database"
	"github.com/vladimiradmaev/health-tracker/internal/domain"
	apperrors "github.com/vladimiradmaev/health-tracker/internal/errors"
)

// dbError maps gorm errors onto the application taxonomy.
func dbError(err error, resource, id string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NewNotFoundError(resource, id)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewTimeoutError(err, resource+" query").WithContext("resource", resource)
	}
	return apperrors.NewDatabaseError(err).WithContext("resource", resource)
}

// requireAffected turns a write that touched no rows into a not-found error.
func requireAffected(result *gorm.DB, resource, id string) error {
	if result.Error != nil {
		return dbError(result.Error, resource, id)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError(resource, id)
	}
	return nil
}

// ProfileRepository handles profile data operations
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

const profileResource = "profile"

func (r *ProfileRepository) Create(ctx context.Context, p *domain.UserProfile) error {
	row, err := toProfileRow(p)
	if err != nil {
		return err
	}
	return dbError(r.db.WithContext(ctx).Create(row).Error, profileResource, p.ID)
}

// Update overwrites every column of an existing profile.
func (r *ProfileRepository) Update(ctx context.Context, p *domain.UserProfile) error {
	row, err := toProfileRow(p)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&database.ProfileRow{}).
		Where("id = ?", p.ID).
		Select("*").Omit("created_at").
		Updates(row)
	return requireAffected(result, profileResource, p.ID)
}

func (r *ProfileRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&database.ProfileRow{}, "id = ?", id)
	return requireAffected(result, profileResource, id)
}

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	var row database.ProfileRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, dbError(err, profileResource, id)
	}
	return fromProfileRow(&row)
}

// GetByTelegramID gets a profile by the owner's Telegram ID
func (r *ProfileRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*domain.UserProfile, error) {
	var row database.ProfileRow
	if err := r.db.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&row).Error; err != nil {
		return nil, dbError(err, profileResource, fmt.Sprintf("telegram:%d", telegramID))
	}
	return fromProfileRow(&row)
}

func toProfileRow(p *domain.UserProfile) (*database.ProfileRow, error) {
	encode := func(v any) (string, error) {
		data, err := json.Marshal(v)
		if err != nil {
			return "", apperrors.NewInternalError(err)
		}
		return string(data), nil
	}

	row := &database.ProfileRow{
		ID:        p.ID,
		Name:      p.Name,
		BirthDate: p.BirthDate,
		WeightKg:  p.WeightKg,
		HeightCm:  p.HeightCm,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.TelegramID != 0 {
		id := p.TelegramID
		row.TelegramID = &id
	}
	conditions := p.Conditions
	if conditions == nil {
		conditions = []string{}
	}

	var err error
	if row.Conditions, err = encode(conditions); err != nil {
		return nil, err
	}
	if row.GlucoseLimits, err = encode(p.GlucoseLimits); err != nil {
		return nil, err
	}
	if row.PressureLimits, err = encode(p.PressureLimits); err != nil {
		return nil, err
	}
	if row.Frequency, err = encode(p.Frequency); err != nil {
		return nil, err
	}
	return row, nil
}

func fromProfileRow(row *database.ProfileRow) (*domain.UserProfile, error) {
	p := &domain.UserProfile{
		ID:        row.ID,
		Name:      row.Name,
		BirthDate: row.BirthDate,
		WeightKg:  row.WeightKg,
		HeightCm:  row.HeightCm,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if row.TelegramID != nil {
		p.TelegramID = *row.TelegramID
	}

	decode := func(column, data string, v any) error {
		if data == "" {
			return nil
		}
		if err := json.Unmarshal([]byte(data), v); err != nil {
			return apperrors.NewDatabaseError(fmt.Errorf("decode %s of profile %s: %w", column, row.ID, err))
		}
		return nil
	}
	if err := decode("conditions", row.Conditions, &p.Conditions); err != nil {
		return nil, err
	}
	if err := decode("glucose_limits", row.GlucoseLimits, &p.GlucoseLimits); err != nil {
		return nil, err
	}
	if err := decode("pressure_limits", row.PressureLimits, &p.PressureLimits); err != nil {
		return nil, err
	}
	if err := decode("frequency", row.Frequency, &p.Frequency); err != nil {
		return nil, err
	}
	return p, nil
}
