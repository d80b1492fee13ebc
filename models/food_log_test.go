package models

import (
	"testing"
	"time"
)

func TestNutrients_AddScaleRound(t *testing.T) {
	a := Nutrients{Calories: 100.123, Proteins: 10.456}
	b := Nutrients{Calories: 50, Proteins: 5}

	sum := a.Add(b)
	if sum.Calories != 150.123 {
		t.Errorf("sum calories = %v", sum.Calories)
	}

	scaled := b.Scale(2.5)
	if scaled.Calories != 125 || scaled.Proteins != 12.5 {
		t.Errorf("scaled = %+v", scaled)
	}

	r := a.Round2()
	if r.Calories != 100.12 || r.Proteins != 10.46 {
		t.Errorf("rounded = %+v", r)
	}
}

func TestFoodLog_Totals(t *testing.T) {
	f := FoodLog{
		Calories:         200,
		Proteins:         15,
		Carbs:            30,
		Fats:             5,
		ServingsConsumed: 1.5,
	}
	if got := f.TotalCalories(); got != 300 {
		t.Errorf("total calories = %v, want 300", got)
	}
	n := f.TotalNutrients()
	if n.Proteins != 22.5 || n.Carbs != 45 {
		t.Errorf("total nutrients = %+v", n)
	}
}

func TestValidMealType(t *testing.T) {
	for _, mt := range MealTypes() {
		if !ValidMealType(mt) {
			t.Errorf("%q should be valid", mt)
		}
	}
	for _, bad := range []string{"", "brunch", "Breakfast", "supper"} {
		if ValidMealType(bad) {
			t.Errorf("%q should be invalid", bad)
		}
	}
}

func TestFoodLog_Response(t *testing.T) {
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	f := FoodLog{
		FoodName:         "Oatmeal",
		Calories:         300.005,
		ServingsConsumed: 1,
		MealType:         MealBreakfast,
		ConsumedAt:       now,
	}
	resp := f.Response()
	if resp.FoodName != "Oatmeal" || resp.MealType != MealBreakfast {
		t.Errorf("response = %+v", resp)
	}
	// Rounding happens at the response boundary.
	if resp.TotalNutrients.Calories != 300.01 {
		t.Errorf("rounded total = %v, want 300.01", resp.TotalNutrients.Calories)
	}
}

func TestUser_BMRAndSuggestedCalories(t *testing.T) {
	age, weight, height := 30, 70.0, 175.0

	u := User{Age: &age, Weight: &weight, Height: &height, Gender: "male", ActivityLevel: "moderate"}
	bmr, ok := u.BMR()
	if !ok {
		t.Fatal("BMR not computable for complete profile")
	}
	// 10*70 + 6.25*175 - 5*30 + 5 = 1648.75
	if bmr != 1648.75 {
		t.Errorf("bmr = %v, want 1648.75", bmr)
	}

	multipliers := map[string]float64{"sedentary": 1.2, "moderate": 1.55}
	cal, ok := u.SuggestedDailyCalories(multipliers)
	if !ok {
		t.Fatal("suggested calories not computable")
	}
	if cal != int(bmr*1.55) {
		t.Errorf("suggested = %d, want %d", cal, int(bmr*1.55))
	}

	// Unknown activity level falls back to sedentary.
	u.ActivityLevel = "astronaut"
	cal, _ = u.SuggestedDailyCalories(multipliers)
	if cal != int(bmr*1.2) {
		t.Errorf("fallback suggested = %d, want %d", cal, int(bmr*1.2))
	}

	female := User{Age: &age, Weight: &weight, Height: &height, Gender: "female"}
	fbmr, _ := female.BMR()
	if fbmr != 1648.75-166 {
		t.Errorf("female bmr = %v, want %v", fbmr, 1648.75-166)
	}

	incomplete := User{Age: &age}
	if _, ok := incomplete.BMR(); ok {
		t.Error("BMR computed for incomplete profile")
	}
}

func TestCustomFood_NutrientsForServing(t *testing.T) {
	c := CustomFood{CaloriesPer100g: 450, ProteinsPer100g: 12, DefaultServingSize: 100}
	n := c.NutrientsForServing(50)
	if n.Calories != 225 || n.Proteins != 6 {
		t.Errorf("50g = %+v", n)
	}
	n = c.NutrientsForServing(200)
	if n.Calories != 900 {
		t.Errorf("200g calories = %v, want 900", n.Calories)
	}
}
