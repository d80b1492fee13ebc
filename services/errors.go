package services

import "errors"

// Domain errors surfaced to the HTTP layer. Record-store failures are not
// wrapped into these; they propagate unchanged.
var (
	ErrInvalidPeriod    = errors.New("period must be a positive number of days")
	ErrInvalidMealType  = errors.New("meal_type must be one of: breakfast, lunch, dinner, snack")
	ErrInvalidRange     = errors.New("end date must be on or after start date")
	ErrLogNotFound      = errors.New("food log not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrNegativeServings = errors.New("servings_consumed cannot be negative")
)
