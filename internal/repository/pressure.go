package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/vladimiradmaev/health-tracker/internal/database"
	"github.com/vladimiradmaev/health-tracker/internal/domain"
)

// PressureRepository handles blood pressure data operations
type PressureRepository struct {
	db *gorm.DB
}

func NewPressureRepository(db *gorm.DB) *PressureRepository {
	return &PressureRepository{db: db}
}

const pressureResource = "pressure measurement"

func (r *PressureRepository) Create(ctx context.Context, m *domain.PressureMeasurement) error {
	return dbError(r.db.WithContext(ctx).Create(toPressureRow(m)).Error, pressureResource, m.ID)
}

func (r *PressureRepository) Update(ctx context.Context, m *domain.PressureMeasurement) error {
	result := r.db.WithContext(ctx).Model(&database.PressureRow{}).
		Where("id = ?", m.ID).
		Select("*").Omit("created_at").
		Updates(toPressureRow(m))
	return requireAffected(result, pressureResource, m.ID)
}

func (r *PressureRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&database.PressureRow{}, "id = ?", id)
	return requireAffected(result, pressureResource, id)
}

func (r *PressureRepository) GetByID(ctx context.Context, id string) (*domain.PressureMeasurement, error) {
	var row database.PressureRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, dbError(err, pressureResource, id)
	}
	return fromPressureRow(&row), nil
}

func (r *PressureRepository) ListByUser(ctx context.Context, userID string) ([]*domain.PressureMeasurement, error) {
	var rows []database.PressureRow
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("measured_at").
		Find(&rows).Error
	if err != nil {
		return nil, dbError(err, pressureResource, userID)
	}
	return fromPressureRows(rows), nil
}

func (r *PressureRepository) ListByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]*domain.PressureMeasurement, error) {
	var rows []database.PressureRow
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND measured_at >= ? AND measured_at < ?", userID, start.UTC(), end.UTC()).
		Order("measured_at").
		Find(&rows).Error
	if err != nil {
		return nil, dbError(err, pressureResource, userID)
	}
	return fromPressureRows(rows), nil
}

func toPressureRow(m *domain.PressureMeasurement) *database.PressureRow {
	return &database.PressureRow{
		ID:           m.ID,
		UserID:       m.UserID,
		MeasuredAt:   m.Timestamp.UTC(),
		Systolic:     m.Systolic,
		Diastolic:    m.Diastolic,
		Notes:        m.Notes,
		Status:       string(m.Status),
		Category:     string(m.Category),
		SystolicMin:  m.Limits.Systolic.Min,
		SystolicMax:  m.Limits.Systolic.Max,
		DiastolicMin: m.Limits.Diastolic.Min,
		DiastolicMax: m.Limits.Diastolic.Max,
	}
}

func fromPressureRow(row *database.PressureRow) *domain.PressureMeasurement {
	return &domain.PressureMeasurement{
		ID:        row.ID,
		UserID:    row.UserID,
		Timestamp: row.MeasuredAt,
		Systolic:  row.Systolic,
		Diastolic: row.Diastolic,
		Notes:     row.Notes,
		Status:    domain.Status(row.Status),
		Category:  domain.PressureCategory(row.Category),
		Limits: domain.PressureLimits{
			Systolic:  domain.LimitRange{Min: row.SystolicMin, Max: row.SystolicMax},
			Diastolic: domain.LimitRange{Min: row.DiastolicMin, Max: row.DiastolicMax},
		},
	}
}

func fromPressureRows(rows []database.PressureRow) []*domain.PressureMeasurement {
	out := make([]*domain.PressureMeasurement, 0, len(rows))
	for i := range rows {
		out = append(out, fromPressureRow(&rows[i]))
	}
	return out
}
