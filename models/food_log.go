package models

import (
	"math"
	"time"

	"gorm.io/gorm"
)

// Canonical meal types. Aggregations always report all four, even when a
// slot has no records.
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
)

func MealTypes() []string {
	return []string{MealBreakfast, MealLunch, MealDinner, MealSnack}
}

func ValidMealType(s string) bool {
	switch s {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}

// Nutrients is a nutrient vector. Values are kept unrounded while summing;
// Round2 is applied only when building a response.
type Nutrients struct {
	Calories float64 `json:"calories"`
	Proteins float64 `json:"proteins"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
	Fiber    float64 `json:"fiber"`
	Sodium   float64 `json:"sodium"`
	Sugars   float64 `json:"sugars"`
}

func (n Nutrients) Add(o Nutrients) Nutrients {
	return Nutrients{
		Calories: n.Calories + o.Calories,
		Proteins: n.Proteins + o.Proteins,
		Carbs:    n.Carbs + o.Carbs,
		Fats:     n.Fats + o.Fats,
		Fiber:    n.Fiber + o.Fiber,
		Sodium:   n.Sodium + o.Sodium,
		Sugars:   n.Sugars + o.Sugars,
	}
}

func (n Nutrients) Scale(f float64) Nutrients {
	return Nutrients{
		Calories: n.Calories * f,
		Proteins: n.Proteins * f,
		Carbs:    n.Carbs * f,
		Fats:     n.Fats * f,
		Fiber:    n.Fiber * f,
		Sodium:   n.Sodium * f,
		Sugars:   n.Sugars * f,
	}
}

func (n Nutrients) Round2() Nutrients {
	r := func(v float64) float64 { return math.Round(v*100) / 100 }
	return Nutrients{
		Calories: r(n.Calories),
		Proteins: r(n.Proteins),
		Carbs:    r(n.Carbs),
		Fats:     r(n.Fats),
		Fiber:    r(n.Fiber),
		Sodium:   r(n.Sodium),
		Sugars:   r(n.Sugars),
	}
}

// FoodLog is one logged consumption of a food item. Nutrient columns hold
// per-serving values; consumed amounts are derived via ServingsConsumed.
type FoodLog struct {
	gorm.Model
	UserID uint `gorm:"index;not null"`

	FoodName string `gorm:"size:200;not null"`
	Brand    string `gorm:"size:100"`
	Barcode  string `gorm:"size:50"`

	ServingSize      float64 // grams
	ServingsConsumed float64 `gorm:"default:1"`

	// Per serving
	Calories float64 `gorm:"not null"`
	Proteins float64
	Carbs    float64
	Fats     float64
	Fiber    float64
	Sodium   float64
	Sugars   float64

	MealType string `gorm:"size:20;index"`

	// AI provenance, when the entry came from an image/recipe analysis
	ConfidenceScore *float64
	AIAnalysis      string `gorm:"type:text"`

	ConsumedAt time.Time `gorm:"index;not null"`
}

// BeforeCreate defaults ConsumedAt to the creation time when unset.
func (f *FoodLog) BeforeCreate(tx *gorm.DB) error {
	if f.ConsumedAt.IsZero() {
		f.ConsumedAt = time.Now().UTC()
	}
	return nil
}

// TotalCalories returns the calories actually consumed.
func (f *FoodLog) TotalCalories() float64 {
	return f.Calories * f.ServingsConsumed
}

// TotalNutrients returns the per-serving vector scaled by servings consumed.
func (f *FoodLog) TotalNutrients() Nutrients {
	return f.perServing().Scale(f.ServingsConsumed)
}

func (f *FoodLog) perServing() Nutrients {
	return Nutrients{
		Calories: f.Calories,
		Proteins: f.Proteins,
		Carbs:    f.Carbs,
		Fats:     f.Fats,
		Fiber:    f.Fiber,
		Sodium:   f.Sodium,
		Sugars:   f.Sugars,
	}
}

// FoodLogResponse is the wire shape of a food log entry.
type FoodLogResponse struct {
	ID               uint      `json:"id"`
	FoodName         string    `json:"food_name"`
	Brand            string    `json:"brand,omitempty"`
	Barcode          string    `json:"barcode,omitempty"`
	ServingSize      float64   `json:"serving_size"`
	ServingsConsumed float64   `json:"servings_consumed"`
	Calories         float64   `json:"calories"`
	Proteins         float64   `json:"proteins"`
	Carbs            float64   `json:"carbs"`
	Fats             float64   `json:"fats"`
	Fiber            float64   `json:"fiber"`
	Sodium           float64   `json:"sodium"`
	Sugars           float64   `json:"sugars"`
	MealType         string    `json:"meal_type"`
	ConfidenceScore  *float64  `json:"confidence_score,omitempty"`
	TotalCalories    float64   `json:"total_calories"`
	TotalNutrients   Nutrients `json:"total_nutrients"`
	ConsumedAt       time.Time `json:"consumed_at"`
	CreatedAt        time.Time `json:"created_at"`
}

func (f *FoodLog) Response() FoodLogResponse {
	return FoodLogResponse{
		ID:               f.ID,
		FoodName:         f.FoodName,
		Brand:            f.Brand,
		Barcode:          f.Barcode,
		ServingSize:      f.ServingSize,
		ServingsConsumed: f.ServingsConsumed,
		Calories:         f.Calories,
		Proteins:         f.Proteins,
		Carbs:            f.Carbs,
		Fats:             f.Fats,
		Fiber:            f.Fiber,
		Sodium:           f.Sodium,
		Sugars:           f.Sugars,
		MealType:         f.MealType,
		ConfidenceScore:  f.ConfidenceScore,
		TotalCalories:    f.TotalCalories(),
		TotalNutrients:   f.TotalNutrients().Round2(),
		ConsumedAt:       f.ConsumedAt,
		CreatedAt:        f.CreatedAt,
	}
}
