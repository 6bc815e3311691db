package domain

import (
	"math"
	"strings"
	"time"
)

// GlucoseContext is the circumstance a glucose reading was taken in.
type GlucoseContext string

const (
	ContextFasting      GlucoseContext = "fasting"
	ContextPostPrandial GlucoseContext = "postPrandial"
	ContextCustom       GlucoseContext = "custom"
)

// ParseGlucoseContext accepts the canonical names plus a few spellings users
// type by hand ("post", "postprandial", "post_prandial").
func ParseGlucoseContext(s string) (GlucoseContext, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fasting", "ayunas":
		return ContextFasting, nil
	case "postprandial", "post_prandial", "post-prandial", "post":
		return ContextPostPrandial, nil
	case "custom":
		return ContextCustom, nil
	}
	return "", ErrInvalidGlucoseContext
}

// Valid reports whether c is a known context.
func (c GlucoseContext) Valid() bool {
	switch c {
	case ContextFasting, ContextPostPrandial, ContextCustom:
		return true
	}
	return false
}

// CustomGlucoseRange is a user-named range, e.g. "bedtime" or "exercise".
type CustomGlucoseRange struct {
	Name string `json:"name"`
	LimitRange
}

// GlucoseLimits holds the personalized glucose ranges per context.
type GlucoseLimits struct {
	Fasting      LimitRange           `json:"fasting"`
	PostPrandial LimitRange           `json:"postPrandial"`
	Custom       []CustomGlucoseRange `json:"custom,omitempty"`
}

// Validate checks every range in the set.
func (l GlucoseLimits) Validate() error {
	if err := l.Fasting.Validate(); err != nil {
		return err
	}
	if err := l.PostPrandial.Validate(); err != nil {
		return err
	}
	for _, c := range l.Custom {
		if strings.TrimSpace(c.Name) == "" {
			return ErrCustomRangeName
		}
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// For selects the range for a context. Custom readings use the range named
// customName; anything without a dedicated range falls back to fasting.
func (l GlucoseLimits) For(context GlucoseContext, customName string) LimitRange {
	switch context {
	case ContextPostPrandial:
		return l.PostPrandial
	case ContextCustom:
		for _, c := range l.Custom {
			if strings.EqualFold(c.Name, customName) {
				return c.LimitRange
			}
		}
	}
	return l.Fasting
}

// HasCustom reports whether a custom range with the given name exists.
func (l GlucoseLimits) HasCustom(name string) bool {
	for _, c := range l.Custom {
		if strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}

// MeasurementFrequency holds the per-day measurement targets.
type MeasurementFrequency struct {
	GlucosePerDay  int `json:"glucosePerDay"`
	PressurePerDay int `json:"pressurePerDay"`
	FoodPerDay     int `json:"foodPerDay"`
}

// Validate rejects negative targets.
func (f MeasurementFrequency) Validate() error {
	if f.GlucosePerDay < 0 || f.PressurePerDay < 0 || f.FoodPerDay < 0 {
		return ErrNegativeFrequency
	}
	return nil
}

// Defaults used when a profile is created without explicit limits.
var (
	DefaultFastingRange      = LimitRange{Min: 70, Max: 100}
	DefaultPostPrandialRange = LimitRange{Min: 100, Max: 140}
	DefaultPressureLimits    = PressureLimits{
		Systolic:  LimitRange{Min: 90, Max: 120},
		Diastolic: LimitRange{Min: 60, Max: 80},
	}
	DefaultFrequency = MeasurementFrequency{GlucosePerDay: 3, PressurePerDay: 1, FoodPerDay: 3}
)

// DefaultGlucoseLimits returns a fresh copy of the default glucose ranges.
func DefaultGlucoseLimits() GlucoseLimits {
	return GlucoseLimits{Fasting: DefaultFastingRange, PostPrandial: DefaultPostPrandialRange}
}

// UserProfile is the person whose metrics are tracked.
type UserProfile struct {
	ID             string
	TelegramID     int64
	Name           string
	BirthDate      time.Time
	WeightKg       float64
	HeightCm       float64
	Conditions     []string
	GlucoseLimits  GlucoseLimits
	PressureLimits PressureLimits
	Frequency      MeasurementFrequency
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ProfileParams are the raw fields for NewUserProfile. Nil limit and
// frequency pointers select the defaults.
type ProfileParams struct {
	ID             string
	TelegramID     int64
	Name           string
	BirthDate      time.Time
	WeightKg       float64
	HeightCm       float64
	Conditions     []string
	GlucoseLimits  *GlucoseLimits
	PressureLimits *PressureLimits
	Frequency      *MeasurementFrequency
	CreatedAt      time.Time
}

// NewUserProfile validates p and builds a profile.
func NewUserProfile(p ProfileParams) (*UserProfile, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if p.BirthDate.IsZero() {
		return nil, ErrBirthDateRequired
	}
	if !positive(p.WeightKg) {
		return nil, ErrWeightNotPositive
	}
	if !positive(p.HeightCm) {
		return nil, ErrHeightNotPositive
	}

	glucose := DefaultGlucoseLimits()
	if p.GlucoseLimits != nil {
		glucose = cloneGlucoseLimits(*p.GlucoseLimits)
	}
	if err := glucose.Validate(); err != nil {
		return nil, err
	}

	pressure := DefaultPressureLimits
	if p.PressureLimits != nil {
		pressure = *p.PressureLimits
	}
	if err := pressure.Validate(); err != nil {
		return nil, err
	}

	frequency := DefaultFrequency
	if p.Frequency != nil {
		frequency = *p.Frequency
	}
	if err := frequency.Validate(); err != nil {
		return nil, err
	}

	created := p.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	return &UserProfile{
		ID:             p.ID,
		TelegramID:     p.TelegramID,
		Name:           name,
		BirthDate:      p.BirthDate,
		WeightKg:       p.WeightKg,
		HeightCm:       p.HeightCm,
		Conditions:     normalizeConditions(p.Conditions),
		GlucoseLimits:  glucose,
		PressureLimits: pressure,
		Frequency:      frequency,
		CreatedAt:      created,
		UpdatedAt:      created,
	}, nil
}

// GlucoseRangeFor returns the range that applies to a reading.
func (u *UserProfile) GlucoseRangeFor(context GlucoseContext, customName string) LimitRange {
	return u.GlucoseLimits.For(context, customName)
}

// Age returns full years lived at the given instant.
func (u *UserProfile) Age(at time.Time) int {
	years := at.Year() - u.BirthDate.Year()
	if at.Month() < u.BirthDate.Month() || (at.Month() == u.BirthDate.Month() && at.Day() < u.BirthDate.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// BMI returns weight / height² (m), rounded to one decimal.
func (u *UserProfile) BMI() float64 {
	m := u.HeightCm / 100
	return math.Round(u.WeightKg/(m*m)*10) / 10
}

// HasCondition reports whether tag is one of the profile's conditions.
func (u *UserProfile) HasCondition(tag string) bool {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for _, c := range u.Conditions {
		if c == tag {
			return true
		}
	}
	return false
}

func (u *UserProfile) touch() {
	u.UpdatedAt = time.Now()
}

func (u *UserProfile) UpdateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameRequired
	}
	u.Name = name
	u.touch()
	return nil
}

func (u *UserProfile) UpdateBirthDate(birthDate time.Time) error {
	if birthDate.IsZero() {
		return ErrBirthDateRequired
	}
	u.BirthDate = birthDate
	u.touch()
	return nil
}

func (u *UserProfile) UpdateWeight(kg float64) error {
	if !positive(kg) {
		return ErrWeightNotPositive
	}
	u.WeightKg = kg
	u.touch()
	return nil
}

func (u *UserProfile) UpdateHeight(cm float64) error {
	if !positive(cm) {
		return ErrHeightNotPositive
	}
	u.HeightCm = cm
	u.touch()
	return nil
}

func (u *UserProfile) UpdateConditions(conditions []string) {
	u.Conditions = normalizeConditions(conditions)
	u.touch()
}

// UpdateGlucoseLimits replaces the fasting and post-prandial ranges. Custom
// ranges are left untouched.
func (u *UserProfile) UpdateGlucoseLimits(fasting, postPrandial LimitRange) error {
	if err := fasting.Validate(); err != nil {
		return err
	}
	if err := postPrandial.Validate(); err != nil {
		return err
	}
	u.GlucoseLimits.Fasting = fasting
	u.GlucoseLimits.PostPrandial = postPrandial
	u.touch()
	return nil
}

// UpdateCustomGlucoseRange adds a named range or replaces the one with the
// same name.
func (u *UserProfile) UpdateCustomGlucoseRange(name string, limits LimitRange) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrCustomRangeName
	}
	if err := limits.Validate(); err != nil {
		return err
	}
	entry := CustomGlucoseRange{Name: name, LimitRange: limits}
	for i, c := range u.GlucoseLimits.Custom {
		if strings.EqualFold(c.Name, name) {
			u.GlucoseLimits.Custom[i] = entry
			u.touch()
			return nil
		}
	}
	u.GlucoseLimits.Custom = append(u.GlucoseLimits.Custom, entry)
	u.touch()
	return nil
}

func (u *UserProfile) RemoveCustomGlucoseRange(name string) error {
	for i, c := range u.GlucoseLimits.Custom {
		if strings.EqualFold(c.Name, name) {
			u.GlucoseLimits.Custom = append(u.GlucoseLimits.Custom[:i], u.GlucoseLimits.Custom[i+1:]...)
			u.touch()
			return nil
		}
	}
	return ErrCustomRangeNotFound
}

func (u *UserProfile) UpdatePressureLimits(limits PressureLimits) error {
	if err := limits.Validate(); err != nil {
		return err
	}
	u.PressureLimits = limits
	u.touch()
	return nil
}

func (u *UserProfile) UpdateMeasurementFrequency(f MeasurementFrequency) error {
	if err := f.Validate(); err != nil {
		return err
	}
	u.Frequency = f
	u.touch()
	return nil
}

func normalizeConditions(conditions []string) []string {
	seen := make(map[string]bool, len(conditions))
	out := make([]string, 0, len(conditions))
	for _, c := range conditions {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

func cloneGlucoseLimits(l GlucoseLimits) GlucoseLimits {
	out := l
	if l.Custom != nil {
		out.Custom = append([]CustomGlucoseRange(nil), l.Custom...)
	}
	return out
}
