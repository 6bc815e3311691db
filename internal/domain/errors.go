package domain

import (
	apperrors "github.com/vladimiradmaev/health-tracker/internal/errors"
)

// Validation failures raised by entity constructors and update operations.
// Messages are stable and safe to show to the end user.
var (
	ErrUserIDRequired         = apperrors.NewValidationError("USER_ID_REQUIRED", "User id is required")
	ErrNameRequired           = apperrors.NewValidationError("NAME_REQUIRED", "Name is required")
	ErrBirthDateRequired      = apperrors.NewValidationError("BIRTH_DATE_REQUIRED", "Birth date is required")
	ErrWeightNotPositive      = apperrors.NewValidationError("WEIGHT_NOT_POSITIVE", "Weight must be positive")
	ErrHeightNotPositive      = apperrors.NewValidationError("HEIGHT_NOT_POSITIVE", "Height must be positive")
	ErrInvalidLimitRange      = apperrors.NewValidationError("INVALID_LIMIT_RANGE", "Min value must be less than max value")
	ErrLimitNotFinite         = apperrors.NewValidationError("LIMIT_NOT_FINITE", "Limit values must be finite numbers")
	ErrCustomRangeName        = apperrors.NewValidationError("CUSTOM_RANGE_NAME_REQUIRED", "Custom range name is required")
	ErrCustomRangeNotFound    = apperrors.NewValidationError("CUSTOM_RANGE_NOT_FOUND", "Custom range does not exist")
	ErrNegativeFrequency      = apperrors.NewValidationError("NEGATIVE_FREQUENCY", "Measurement frequency cannot be negative")
	ErrGlucoseNotPositive     = apperrors.NewValidationError("GLUCOSE_NOT_POSITIVE", "Glucose value must be positive")
	ErrInvalidGlucoseContext  = apperrors.NewValidationError("INVALID_GLUCOSE_CONTEXT", "Invalid glucose context")
	ErrPressureNotPositive    = apperrors.NewValidationError("PRESSURE_NOT_POSITIVE", "Pressure values must be positive")
	ErrDiastolicAboveSystolic = apperrors.NewValidationError("DIASTOLIC_ABOVE_SYSTOLIC", "Diastolic pressure cannot be higher than systolic")
	ErrQuantityNotPositive    = apperrors.NewValidationError("QUANTITY_NOT_POSITIVE", "Quantity must be positive")
	ErrInvalidFoodType        = apperrors.NewValidationError("INVALID_FOOD_TYPE", "Invalid food type")
	ErrDescriptionRequired    = apperrors.NewValidationError("DESCRIPTION_REQUIRED", "Description is required")
)
