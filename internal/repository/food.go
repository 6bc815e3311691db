package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/vladimiradmaev/health-tracker/internal/database"
	"github.com/vladimiradmaev/health-tracker/internal/domain"
)

// FoodRepository handles food log data operations
type FoodRepository struct {
	db *gorm.DB
}

func NewFoodRepository(db *gorm.DB) *FoodRepository {
	return &FoodRepository{db: db}
}

const foodResource = "food entry"

func (r *FoodRepository) Create(ctx context.Context, f *domain.FoodEntry) error {
	return dbError(r.db.WithContext(ctx).Create(toFoodRow(f)).Error, foodResource, f.ID)
}

func (r *FoodRepository) Update(ctx context.Context, f *domain.FoodEntry) error {
	result := r.db.WithContext(ctx).Model(&database.FoodRow{}).
		Where("id = ?", f.ID).
		Select("*").Omit("created_at").
		Updates(toFoodRow(f))
	return requireAffected(result, foodResource, f.ID)
}

func (r *FoodRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&database.FoodRow{}, "id = ?", id)
	return requireAffected(result, foodResource, id)
}

func (r *FoodRepository) GetByID(ctx context.Context, id string) (*domain.FoodEntry, error) {
	var row database.FoodRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, dbError(err, foodResource, id)
	}
	return fromFoodRow(&row), nil
}

func (r *FoodRepository) ListByUser(ctx context.Context, userID string) ([]*domain.FoodEntry, error) {
	var rows []database.FoodRow
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("measured_at").
		Find(&rows).Error
	if err != nil {
		return nil, dbError(err, foodResource, userID)
	}
	return fromFoodRows(rows), nil
}

func (r *FoodRepository) ListByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]*domain.FoodEntry, error) {
	var rows []database.FoodRow
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND measured_at >= ? AND measured_at < ?", userID, start.UTC(), end.UTC()).
		Order("measured_at").
		Find(&rows).Error
	if err != nil {
		return nil, dbError(err, foodResource, userID)
	}
	return fromFoodRows(rows), nil
}

func toFoodRow(f *domain.FoodEntry) *database.FoodRow {
	return &database.FoodRow{
		ID:          f.ID,
		UserID:      f.UserID,
		MeasuredAt:  f.Timestamp.UTC(),
		Description: f.Description,
		QuantityG:   f.QuantityG,
		Category:    string(f.Category),
		Notes:       f.Notes,
	}
}

// fromFoodRow restores the entry; the glyph is derived from the category.
func fromFoodRow(row *database.FoodRow) *domain.FoodEntry {
	category := domain.FoodCategory(row.Category)
	return &domain.FoodEntry{
		ID:          row.ID,
		UserID:      row.UserID,
		Timestamp:   row.MeasuredAt,
		Description: row.Description,
		QuantityG:   row.QuantityG,
		Category:    category,
		Glyph:       category.Glyph(),
		Notes:       row.Notes,
	}
}

func fromFoodRows(rows []database.FoodRow) []*domain.FoodEntry {
	out := make([]*domain.FoodEntry, 0, len(rows))
	for i := range rows {
		out = append(out, fromFoodRow(&rows[i]))
	}
	return out
}
