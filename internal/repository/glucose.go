package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/vladimiradmaev/health-tracker/internal/database"
	"github.com/vladimiradmaev/health-tracker/internal/domain"
)

// GlucoseRepository handles glucose reading data operations
type GlucoseRepository struct {
	db *gorm.DB
}

// NewGlucoseRepository creates a new glucose repository
func NewGlucoseRepository(db *gorm.DB) *GlucoseRepository {
	return &GlucoseRepository{db: db}
}

const glucoseResource = "glucose measurement"

func (r *GlucoseRepository) Create(ctx context.Context, m *domain.GlucoseMeasurement) error {
	return dbError(r.db.WithContext(ctx).Create(toGlucoseRow(m)).Error, glucoseResource, m.ID)
}

func (r *GlucoseRepository) Update(ctx context.Context, m *domain.GlucoseMeasurement) error {
	result := r.db.WithContext(ctx).Model(&database.GlucoseRow{}).
		Where("id = ?", m.ID).
		Select("*").Omit("created_at").
		Updates(toGlucoseRow(m))
	return requireAffected(result, glucoseResource, m.ID)
}

func (r *GlucoseRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&database.GlucoseRow{}, "id = ?", id)
	return requireAffected(result, glucoseResource, id)
}

func (r *GlucoseRepository) GetByID(ctx context.Context, id string) (*domain.GlucoseMeasurement, error) {
	var row database.GlucoseRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, dbError(err, glucoseResource, id)
	}
	return fromGlucoseRow(&row), nil
}

// ListByUser returns every reading of the user, oldest first.
func (r *GlucoseRepository) ListByUser(ctx context.Context, userID string) ([]*domain.GlucoseMeasurement, error) {
	var rows []database.GlucoseRow
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("measured_at").
		Find(&rows).Error
	if err != nil {
		return nil, dbError(err, glucoseResource, userID)
	}
	return fromGlucoseRows(rows), nil
}

// ListByUserAndRange returns the readings taken in [start, end), oldest first.
func (r *GlucoseRepository) ListByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]*domain.GlucoseMeasurement, error) {
	var rows []database.GlucoseRow
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND measured_at >= ? AND measured_at < ?", userID, start.UTC(), end.UTC()).
		Order("measured_at").
		Find(&rows).Error
	if err != nil {
		return nil, dbError(err, glucoseResource, userID)
	}
	return fromGlucoseRows(rows), nil
}

func toGlucoseRow(m *domain.GlucoseMeasurement) *database.GlucoseRow {
	return &database.GlucoseRow{
		ID:          m.ID,
		UserID:      m.UserID,
		MeasuredAt:  m.Timestamp.UTC(),
		Value:       m.Value,
		Context:     string(m.Context),
		CustomRange: m.CustomRange,
		Notes:       m.Notes,
		Status:      string(m.Status),
		LimitMin:    m.Limits.Min,
		LimitMax:    m.Limits.Max,
	}
}

func fromGlucoseRow(row *database.GlucoseRow) *domain.GlucoseMeasurement {
	return &domain.GlucoseMeasurement{
		ID:          row.ID,
		UserID:      row.UserID,
		Timestamp:   row.MeasuredAt,
		Value:       row.Value,
		Context:     domain.GlucoseContext(row.Context),
		CustomRange: row.CustomRange,
		Notes:       row.Notes,
		Status:      domain.Status(row.Status),
		Limits:      domain.LimitRange{Min: row.LimitMin, Max: row.LimitMax},
	}
}

func fromGlucoseRows(rows []database.GlucoseRow) []*domain.GlucoseMeasurement {
	out := make([]*domain.GlucoseMeasurement, 0, len(rows))
	for i := range rows {
		out = append(out, fromGlucoseRow(&rows[i]))
	}
	return out
}
