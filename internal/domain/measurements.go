package domain

import (
	"fmt"
	"strings"
	"time"
)

// GlucoseMeasurement is a single blood glucose reading in mg/dL.
type GlucoseMeasurement struct {
	ID          string
	UserID      string
	Timestamp   time.Time
	Value       float64
	Context     GlucoseContext
	CustomRange string // name of the custom range when Context is custom
	Notes       string
	Status      Status
	// Limits is the range Status was computed against.
	Limits LimitRange
}

// GlucoseParams are the raw fields for NewGlucoseMeasurement.
type GlucoseParams struct {
	ID          string
	UserID      string
	Timestamp   time.Time
	Value       float64
	Context     GlucoseContext
	CustomRange string
	Notes       string
	// Limits is the personalized range for Context; nil means the default
	// fasting range.
	Limits *LimitRange
}

// NewGlucoseMeasurement validates p and classifies the reading.
func NewGlucoseMeasurement(p GlucoseParams) (*GlucoseMeasurement, error) {
	if strings.TrimSpace(p.UserID) == "" {
		return nil, ErrUserIDRequired
	}
	if !positive(p.Value) {
		return nil, ErrGlucoseNotPositive
	}
	context := p.Context
	if context == "" {
		context = ContextFasting
	}
	if !context.Valid() {
		return nil, ErrInvalidGlucoseContext
	}
	limits := DefaultFastingRange
	if p.Limits != nil {
		if err := p.Limits.Validate(); err != nil {
			return nil, err
		}
		limits = *p.Limits
	}
	ts := p.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	m := &GlucoseMeasurement{
		ID:          p.ID,
		UserID:      p.UserID,
		Timestamp:   ts,
		Value:       p.Value,
		Context:     context,
		CustomRange: strings.TrimSpace(p.CustomRange),
		Notes:       strings.TrimSpace(p.Notes),
		Limits:      limits,
	}
	m.Status = DetermineGlucoseStatus(m.Value, m.Limits)
	return m, nil
}

// UpdateValue changes the reading and recomputes its status against the
// stored limits.
func (m *GlucoseMeasurement) UpdateValue(value float64) error {
	if !positive(value) {
		return ErrGlucoseNotPositive
	}
	m.Value = value
	m.Status = DetermineGlucoseStatus(m.Value, m.Limits)
	return nil
}

// UpdateContext moves the reading to another context and reclassifies it
// against limits, which must be the range for the new context.
func (m *GlucoseMeasurement) UpdateContext(context GlucoseContext, customRange string, limits LimitRange) error {
	if !context.Valid() {
		return ErrInvalidGlucoseContext
	}
	if err := limits.Validate(); err != nil {
		return err
	}
	m.Context = context
	m.CustomRange = strings.TrimSpace(customRange)
	m.Limits = limits
	m.Status = DetermineGlucoseStatus(m.Value, m.Limits)
	return nil
}

// Reclassify recomputes the status against new limits.
func (m *GlucoseMeasurement) Reclassify(limits LimitRange) error {
	if err := limits.Validate(); err != nil {
		return err
	}
	m.Limits = limits
	m.Status = DetermineGlucoseStatus(m.Value, m.Limits)
	return nil
}

// PressureMeasurement is a blood pressure reading in mmHg.
type PressureMeasurement struct {
	ID        string
	UserID    string
	Timestamp time.Time
	Systolic  int
	Diastolic int
	Notes     string
	Status    Status
	Category  PressureCategory
	Limits    PressureLimits
}

// PressureParams are the raw fields for NewPressureMeasurement.
type PressureParams struct {
	ID        string
	UserID    string
	Timestamp time.Time
	Systolic  int
	Diastolic int
	Notes     string
	// Limits nil means DefaultPressureLimits.
	Limits *PressureLimits
}

func validatePressure(systolic, diastolic int) error {
	if systolic <= 0 || diastolic <= 0 {
		return ErrPressureNotPositive
	}
	if diastolic > systolic {
		return ErrDiastolicAboveSystolic
	}
	return nil
}

// NewPressureMeasurement validates p, classifies and stages the reading.
func NewPressureMeasurement(p PressureParams) (*PressureMeasurement, error) {
	if strings.TrimSpace(p.UserID) == "" {
		return nil, ErrUserIDRequired
	}
	if err := validatePressure(p.Systolic, p.Diastolic); err != nil {
		return nil, err
	}
	limits := DefaultPressureLimits
	if p.Limits != nil {
		if err := p.Limits.Validate(); err != nil {
			return nil, err
		}
		limits = *p.Limits
	}
	ts := p.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	m := &PressureMeasurement{
		ID:        p.ID,
		UserID:    p.UserID,
		Timestamp: ts,
		Systolic:  p.Systolic,
		Diastolic: p.Diastolic,
		Notes:     strings.TrimSpace(p.Notes),
		Limits:    limits,
	}
	m.derive()
	return m, nil
}

func (m *PressureMeasurement) derive() {
	m.Status = DeterminePressureStatus(m.Systolic, m.Diastolic, m.Limits)
	m.Category = CategorizePressure(m.Systolic, m.Diastolic)
}

// UpdateValues replaces both components and recomputes status and category.
func (m *PressureMeasurement) UpdateValues(systolic, diastolic int) error {
	if err := validatePressure(systolic, diastolic); err != nil {
		return err
	}
	m.Systolic = systolic
	m.Diastolic = diastolic
	m.derive()
	return nil
}

// Reclassify recomputes the status against new limits. The category does not
// depend on limits and is unchanged.
func (m *PressureMeasurement) Reclassify(limits PressureLimits) error {
	if err := limits.Validate(); err != nil {
		return err
	}
	m.Limits = limits
	m.Status = DeterminePressureStatus(m.Systolic, m.Diastolic, m.Limits)
	return nil
}

// Reading formats the pair as "sys/dia".
func (m *PressureMeasurement) Reading() string {
	return fmt.Sprintf("%d/%d", m.Systolic, m.Diastolic)
}

// FoodEntry is one logged food intake.
type FoodEntry struct {
	ID          string
	UserID      string
	Timestamp   time.Time
	Description string
	QuantityG   float64
	Category    FoodCategory
	Glyph       string
	Notes       string
}

// FoodParams are the raw fields for NewFoodEntry. An empty Category is
// derived from Description.
type FoodParams struct {
	ID          string
	UserID      string
	Timestamp   time.Time
	Description string
	QuantityG   float64
	Category    string
	Notes       string
}

// NewFoodEntry validates p and resolves the category.
func NewFoodEntry(p FoodParams) (*FoodEntry, error) {
	if strings.TrimSpace(p.UserID) == "" {
		return nil, ErrUserIDRequired
	}
	description := strings.TrimSpace(p.Description)
	if description == "" {
		return nil, ErrDescriptionRequired
	}
	if !positive(p.QuantityG) {
		return nil, ErrQuantityNotPositive
	}
	category := CategorizeFood(description)
	if strings.TrimSpace(p.Category) != "" {
		c, err := ParseFoodCategory(p.Category)
		if err != nil {
			return nil, err
		}
		category = c
	}
	ts := p.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	return &FoodEntry{
		ID:          p.ID,
		UserID:      p.UserID,
		Timestamp:   ts,
		Description: description,
		QuantityG:   p.QuantityG,
		Category:    category,
		Glyph:       category.Glyph(),
		Notes:       strings.TrimSpace(p.Notes),
	}, nil
}

// Calories estimates the energy of the entry.
func (f *FoodEntry) Calories() int {
	return EstimateCalories(f.QuantityG, f.Category)
}

func (f *FoodEntry) UpdateQuantity(grams float64) error {
	if !positive(grams) {
		return ErrQuantityNotPositive
	}
	f.QuantityG = grams
	return nil
}

// UpdateDescription replaces the text. When recategorize is set the category
// is derived again from the new text.
func (f *FoodEntry) UpdateDescription(description string, recategorize bool) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return ErrDescriptionRequired
	}
	f.Description = description
	if recategorize {
		f.setCategory(CategorizeFood(description))
	}
	return nil
}

func (f *FoodEntry) UpdateCategory(category string) error {
	c, err := ParseFoodCategory(category)
	if err != nil {
		return err
	}
	f.setCategory(c)
	return nil
}

func (f *FoodEntry) setCategory(c FoodCategory) {
	f.Category = c
	f.Glyph = c.Glyph()
}
