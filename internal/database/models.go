package database

import "time"

// ProfileRow stores a user profile. Limit structures and conditions are JSON
// encoded text so the schema does not change when ranges are added.
type ProfileRow struct {
	ID             string `gorm:"primaryKey;size:36"`
	TelegramID     *int64 `gorm:"uniqueIndex"`
	Name           string `gorm:"size:255;not null"`
	BirthDate      time.Time
	WeightKg       float64
	HeightCm       float64
	Conditions     string `gorm:"type:text"`
	GlucoseLimits  string `gorm:"type:text"`
	PressureLimits string `gorm:"type:text"`
	Frequency      string `gorm:"type:text"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (ProfileRow) TableName() string { return "profiles" }

// GlucoseRow stores a glucose reading together with the range it was
// classified against.
type GlucoseRow struct {
	ID          string    `gorm:"primaryKey;size:36"`
	UserID      string    `gorm:"size:36;index;not null"`
	MeasuredAt  time.Time `gorm:"index;not null"`
	Value       float64   `gorm:"not null"`
	Context     string    `gorm:"size:32;not null"`
	CustomRange string    `gorm:"size:64"`
	Notes       string    `gorm:"type:text"`
	Status      string    `gorm:"size:16;not null"`
	LimitMin    float64
	LimitMax    float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (GlucoseRow) TableName() string { return "glucose_measurements" }

type PressureRow struct {
	ID           string    `gorm:"primaryKey;size:36"`
	UserID       string    `gorm:"size:36;index;not null"`
	MeasuredAt   time.Time `gorm:"index;not null"`
	Systolic     int       `gorm:"not null"`
	Diastolic    int       `gorm:"not null"`
	Notes        string    `gorm:"type:text"`
	Status       string    `gorm:"size:16;not null"`
	Category     string    `gorm:"size:32;not null"`
	SystolicMin  float64
	SystolicMax  float64
	DiastolicMin float64
	DiastolicMax float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (PressureRow) TableName() string { return "pressure_measurements" }

type FoodRow struct {
	ID          string    `gorm:"primaryKey;size:36"`
	UserID      string    `gorm:"size:36;index;not null"`
	MeasuredAt  time.Time `gorm:"index;not null"`
	Description string    `gorm:"type:text;not null"`
	QuantityG   float64   `gorm:"not null"`
	Category    string    `gorm:"size:32;not null"`
	Notes       string    `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (FoodRow) TableName() string { return "food_entries" }

// Models lists every row type managed by AutoMigrate.
func Models() []any {
	return []any{&ProfileRow{}, &GlucoseRow{}, &PressureRow{}, &FoodRow{}}
}
