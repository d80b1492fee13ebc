package utils

import (
	"fmt"

	"github.com/zainzaheer06/calories-app/models"
)

// ValidateNutrition checks a per-serving nutrient payload. Negative values
// are domain errors, never silently clamped. Returns all problems found.
func ValidateNutrition(perServing models.Nutrients, servingSize, servingsConsumed float64) []string {
	var errs []string

	checks := []struct {
		name  string
		value float64
	}{
		{"calories", perServing.Calories},
		{"proteins", perServing.Proteins},
		{"carbs", perServing.Carbs},
		{"fats", perServing.Fats},
		{"fiber", perServing.Fiber},
		{"sodium", perServing.Sodium},
		{"sugars", perServing.Sugars},
	}
	for _, c := range checks {
		if c.value < 0 {
			errs = append(errs, fmt.Sprintf("%s cannot be negative", c.name))
		}
	}

	if servingSize <= 0 {
		errs = append(errs, "serving_size must be greater than 0")
	} else if servingSize > 10000 {
		errs = append(errs, "serving_size seems unusually large")
	}
	if servingsConsumed < 0 {
		errs = append(errs, "servings_consumed cannot be negative")
	}
	if perServing.Calories > 10000 {
		errs = append(errs, "calories seem unusually high")
	}
	return errs
}

// ValidateConfidence checks an optional AI confidence score.
func ValidateConfidence(score *float64) []string {
	if score == nil {
		return nil
	}
	if *score < 0 || *score > 1 {
		return []string{"confidence_score must be between 0 and 1"}
	}
	return nil
}

// ValidateProfile checks profile update fields. Nil pointers mean the field
// is not being changed.
func ValidateProfile(age *int, weight, height *float64, gender, activityLevel, goalType string, dailyCalorieGoal *int) []string {
	var errs []string

	if age != nil && (*age < 13 || *age > 120) {
		errs = append(errs, "age must be between 13 and 120")
	}
	if weight != nil && (*weight < 20 || *weight > 500) {
		errs = append(errs, "weight must be between 20 and 500 kg")
	}
	if height != nil && (*height < 100 || *height > 250) {
		errs = append(errs, "height must be between 100 and 250 cm")
	}
	if gender != "" && gender != "male" && gender != "female" {
		errs = append(errs, `gender must be either "male" or "female"`)
	}
	if activityLevel != "" {
		switch activityLevel {
		case "sedentary", "light", "moderate", "very_active", "extra_active":
		default:
			errs = append(errs, "activity_level must be one of: sedentary, light, moderate, very_active, extra_active")
		}
	}
	if goalType != "" {
		switch goalType {
		case "lose_weight", "maintain", "gain_weight":
		default:
			errs = append(errs, "goal_type must be one of: lose_weight, maintain, gain_weight")
		}
	}
	if dailyCalorieGoal != nil && (*dailyCalorieGoal < 800 || *dailyCalorieGoal > 5000) {
		errs = append(errs, "daily_calorie_goal must be between 800 and 5000")
	}
	return errs
}
