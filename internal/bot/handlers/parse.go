package handlers

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/vladimiradmaev/health-tracker/internal/domain"
	apperrors "github.com/vladimiradmaev/health-tracker/internal/errors"
)

// MaxDays bounds the period of summaries and reports.
const MaxDays = 365

const dateLayout = "2006-01-02"

var (
	ErrInvalidNumber   = apperrors.NewValidationError("INVALID_NUMBER", "Please enter a number, for example 95 or 5.6")
	ErrPressureFormat  = apperrors.NewValidationError("PRESSURE_FORMAT", "Use the format systolic/diastolic, for example 120/80")
	ErrFoodFormat      = apperrors.NewValidationError("FOOD_FORMAT", "Use the format <grams> <description>, for example 150 grilled chicken")
	ErrRangeFormat     = apperrors.NewValidationError("RANGE_FORMAT", "Use the format min-max, for example 70-100")
	ErrProfileFormat   = apperrors.NewValidationError("PROFILE_FORMAT", "Use the format: name; YYYY-MM-DD; weight kg; height cm[; condition, condition]")
	ErrBirthDateFormat = apperrors.NewValidationError("BIRTH_DATE_FORMAT", "Birth date must look like 1980-06-15")
	ErrDaysRange       = apperrors.NewValidationError("DAYS_RANGE", "The number of days must be between 1 and 365")
	ErrFrequencyFormat = apperrors.NewValidationError("FREQUENCY_FORMAT", "Use the format <glucose> <pressure> <food> per day, for example 3 1 3")
)

// GlucoseArgs is a parsed glucose entry.
type GlucoseArgs struct {
	Value       float64
	Context     domain.GlucoseContext
	CustomRange string
}

// ParseNumber accepts a decimal comma as well as a point.
func ParseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.Replace(strings.TrimSpace(s), ",", ".", 1), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidNumber
	}
	return v, nil
}

// ParseGlucose parses "<value> [fasting|post|custom:<name>]".
func ParseGlucose(s string) (GlucoseArgs, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return GlucoseArgs{}, ErrInvalidNumber
	}
	value, err := ParseNumber(fields[0])
	if err != nil {
		return GlucoseArgs{}, err
	}
	args := GlucoseArgs{Value: value, Context: domain.ContextFasting}

	rest := strings.Join(fields[1:], " ")
	if len(rest) >= len("custom:") && strings.EqualFold(rest[:len("custom:")], "custom:") {
		name := strings.TrimSpace(rest[len("custom:"):])
		if name == "" {
			return GlucoseArgs{}, domain.ErrCustomRangeName
		}
		args.Context = domain.ContextCustom
		args.CustomRange = name
		return args, nil
	}
	ctx, err := domain.ParseGlucoseContext(rest)
	if err != nil {
		return GlucoseArgs{}, err
	}
	if ctx == domain.ContextCustom {
		return GlucoseArgs{}, domain.ErrCustomRangeName
	}
	args.Context = ctx
	return args, nil
}

// ParsePressure parses "120/80" or "120 80".
func ParsePressure(s string) (int, int, error) {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '/' || r == ' ' })
	if len(parts) != 2 {
		return 0, 0, ErrPressureFormat
	}
	systolic, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, ErrPressureFormat
	}
	diastolic, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, ErrPressureFormat
	}
	return systolic, diastolic, nil
}

// ParseFood parses "<grams>[g] <description>".
func ParseFood(s string) (float64, string, error) {
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return 0, "", ErrFoodFormat
	}
	grams, err := ParseNumber(strings.TrimSuffix(strings.ToLower(fields[0]), "g"))
	if err != nil {
		return 0, "", ErrFoodFormat
	}
	return grams, strings.Join(fields[1:], " "), nil
}

// ParseRange parses "min-max".
func ParseRange(s string) (domain.LimitRange, error) {
	lo, hi, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return domain.LimitRange{}, ErrRangeFormat
	}
	minV, err := ParseNumber(lo)
	if err != nil {
		return domain.LimitRange{}, ErrRangeFormat
	}
	maxV, err := ParseNumber(hi)
	if err != nil {
		return domain.LimitRange{}, ErrRangeFormat
	}
	r := domain.LimitRange{Min: minV, Max: maxV}
	if err := r.Validate(); err != nil {
		return domain.LimitRange{}, err
	}
	return r, nil
}

// ParseProfile parses "name; YYYY-MM-DD; weight; height[; conditions]" where
// conditions are comma separated.
func ParseProfile(s string) (domain.ProfileParams, error) {
	parts := strings.Split(s, ";")
	if len(parts) < 4 || len(parts) > 5 {
		return domain.ProfileParams{}, ErrProfileFormat
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	birthDate, err := time.Parse(dateLayout, parts[1])
	if err != nil {
		return domain.ProfileParams{}, ErrBirthDateFormat
	}
	weight, err := ParseNumber(parts[2])
	if err != nil {
		return domain.ProfileParams{}, err
	}
	height, err := ParseNumber(parts[3])
	if err != nil {
		return domain.ProfileParams{}, err
	}

	params := domain.ProfileParams{
		Name:      parts[0],
		BirthDate: birthDate,
		WeightKg:  weight,
		HeightCm:  height,
	}
	if len(parts) == 5 {
		for _, c := range strings.Split(parts[4], ",") {
			if c = strings.TrimSpace(c); c != "" {
				params.Conditions = append(params.Conditions, c)
			}
		}
	}
	return params, nil
}

// ParseDays returns def for an empty argument.
func ParseDays(s string, def int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	days, err := strconv.Atoi(s)
	if err != nil || days < 1 || days > MaxDays {
		return 0, ErrDaysRange
	}
	return days, nil
}

// ParseFrequency parses "<glucose> <pressure> <food>" daily targets.
func ParseFrequency(s string) (domain.MeasurementFrequency, error) {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return domain.MeasurementFrequency{}, ErrFrequencyFormat
	}
	var values [3]int
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return domain.MeasurementFrequency{}, ErrFrequencyFormat
		}
		values[i] = v
	}
	freq := domain.MeasurementFrequency{GlucosePerDay: values[0], PressurePerDay: values[1], FoodPerDay: values[2]}
	if err := freq.Validate(); err != nil {
		return domain.MeasurementFrequency{}, err
	}
	return freq, nil
}
