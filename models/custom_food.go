package models

import (
	"gorm.io/gorm"
)

// CustomFood is a user-defined food with nutrients per 100g, reusable when
// logging without going through an external lookup.
type CustomFood struct {
	gorm.Model
	UserID uint `gorm:"index;not null"`

	Name    string `gorm:"size:200;not null"`
	Brand   string `gorm:"size:100"`
	Barcode string `gorm:"size:50"`

	CaloriesPer100g float64 `gorm:"not null"`
	ProteinsPer100g float64
	CarbsPer100g    float64
	FatsPer100g     float64
	FiberPer100g    float64
	SodiumPer100g   float64
	SugarsPer100g   float64

	DefaultServingSize float64 `gorm:"default:100"` // grams
	Category           string  `gorm:"size:50"`
}

// NutrientsForServing converts the per-100g columns into a vector for the
// given serving size in grams.
func (c *CustomFood) NutrientsForServing(grams float64) Nutrients {
	return Nutrients{
		Calories: c.CaloriesPer100g,
		Proteins: c.ProteinsPer100g,
		Carbs:    c.CarbsPer100g,
		Fats:     c.FatsPer100g,
		Fiber:    c.FiberPer100g,
		Sodium:   c.SodiumPer100g,
		Sugars:   c.SugarsPer100g,
	}.Scale(grams / 100.0)
}

type CustomFoodResponse struct {
	ID                 uint    `json:"id"`
	Name               string  `json:"name"`
	Brand              string  `json:"brand,omitempty"`
	Barcode            string  `json:"barcode,omitempty"`
	CaloriesPer100g    float64 `json:"calories_per_100g"`
	ProteinsPer100g    float64 `json:"proteins_per_100g"`
	CarbsPer100g       float64 `json:"carbs_per_100g"`
	FatsPer100g        float64 `json:"fats_per_100g"`
	FiberPer100g       float64 `json:"fiber_per_100g"`
	SodiumPer100g      float64 `json:"sodium_per_100g"`
	SugarsPer100g      float64 `json:"sugars_per_100g"`
	DefaultServingSize float64 `json:"default_serving_size"`
	Category           string  `json:"category,omitempty"`
}

func (c *CustomFood) Response() CustomFoodResponse {
	return CustomFoodResponse{
		ID:                 c.ID,
		Name:               c.Name,
		Brand:              c.Brand,
		Barcode:            c.Barcode,
		CaloriesPer100g:    c.CaloriesPer100g,
		ProteinsPer100g:    c.ProteinsPer100g,
		CarbsPer100g:       c.CarbsPer100g,
		FatsPer100g:        c.FatsPer100g,
		FiberPer100g:       c.FiberPer100g,
		SodiumPer100g:      c.SodiumPer100g,
		SugarsPer100g:      c.SugarsPer100g,
		DefaultServingSize: c.DefaultServingSize,
		Category:           c.Category,
	}
}
