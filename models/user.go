package models

import (
	"gorm.io/gorm"
)

// User profile. Authentication (registration, password storage) lives in a
// separate identity service; this backend only needs the profile fields that
// drive calorie goals and analytics.
type User struct {
	gorm.Model
	Email string `gorm:"uniqueIndex;not null"`
	Name  string `gorm:"size:100;not null"`

	Age           *int
	Weight        *float64 // kg
	Height        *float64 // cm
	Gender        string   `gorm:"size:10"`
	ActivityLevel string   `gorm:"size:20"` // sedentary, light, moderate, very_active, extra_active

	GoalType         string `gorm:"size:20"` // lose_weight, maintain, gain_weight
	DailyCalorieGoal *int

	FoodLogs    []FoodLog
	CustomFoods []CustomFood
}

// BMR computes the Basal Metabolic Rate with the Mifflin-St Jeor equation.
// Returns false when the profile is missing weight, height, age or gender.
func (u *User) BMR() (float64, bool) {
	if u.Weight == nil || u.Height == nil || u.Age == nil || u.Gender == "" {
		return 0, false
	}
	bmr := 10*(*u.Weight) + 6.25*(*u.Height) - 5*float64(*u.Age)
	if u.Gender == "male" {
		bmr += 5
	} else {
		bmr -= 161
	}
	return bmr, true
}

// SuggestedDailyCalories scales BMR by the activity multiplier for the
// user's activity level. Unknown levels fall back to the sedentary factor.
func (u *User) SuggestedDailyCalories(multipliers map[string]float64) (int, bool) {
	bmr, ok := u.BMR()
	if !ok {
		return 0, false
	}
	m, ok := multipliers[u.ActivityLevel]
	if !ok {
		m = multipliers["sedentary"]
		if m == 0 {
			m = 1.2
		}
	}
	return int(bmr * m), true
}

// Profile is the wire shape of a user profile.
type Profile struct {
	ID               uint     `json:"id"`
	Email            string   `json:"email"`
	Name             string   `json:"name"`
	Age              *int     `json:"age"`
	Weight           *float64 `json:"weight"`
	Height           *float64 `json:"height"`
	Gender           string   `json:"gender,omitempty"`
	ActivityLevel    string   `json:"activity_level,omitempty"`
	GoalType         string   `json:"goal_type,omitempty"`
	DailyCalorieGoal *int     `json:"daily_calorie_goal"`
	MemberSince      string   `json:"member_since"`
}

func (u *User) ToProfile() Profile {
	return Profile{
		ID:               u.ID,
		Email:            u.Email,
		Name:             u.Name,
		Age:              u.Age,
		Weight:           u.Weight,
		Height:           u.Height,
		Gender:           u.Gender,
		ActivityLevel:    u.ActivityLevel,
		GoalType:         u.GoalType,
		DailyCalorieGoal: u.DailyCalorieGoal,
		MemberSince:      u.CreatedAt.Format("2006-01-02"),
	}
}
