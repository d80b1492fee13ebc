package utils

import (
	"strings"
	"testing"

	"github.com/zainzaheer06/calories-app/models"
)

func TestValidateNutrition(t *testing.T) {
	ok := ValidateNutrition(models.Nutrients{Calories: 250, Proteins: 10}, 100, 1)
	if len(ok) != 0 {
		t.Errorf("valid payload rejected: %v", ok)
	}

	errs := ValidateNutrition(models.Nutrients{Calories: -5, Proteins: -1}, 0, -2)
	if len(errs) != 4 {
		t.Fatalf("got %d problems, want 4: %v", len(errs), errs)
	}
	joined := strings.Join(errs, "; ")
	for _, want := range []string{"calories", "proteins", "serving_size", "servings_consumed"} {
		if !strings.Contains(joined, want) {
			t.Errorf("problems missing %q: %v", want, errs)
		}
	}

	if errs := ValidateNutrition(models.Nutrients{Calories: 20000}, 100, 1); len(errs) == 0 {
		t.Error("implausible calories accepted")
	}
	if errs := ValidateNutrition(models.Nutrients{Calories: 100}, 50000, 1); len(errs) == 0 {
		t.Error("implausible serving size accepted")
	}
}

func TestValidateNutrition_ZeroServingsAllowed(t *testing.T) {
	if errs := ValidateNutrition(models.Nutrients{Calories: 100}, 100, 0); len(errs) != 0 {
		t.Errorf("zero servings rejected: %v", errs)
	}
}

func TestValidateConfidence(t *testing.T) {
	if errs := ValidateConfidence(nil); errs != nil {
		t.Errorf("nil confidence rejected: %v", errs)
	}
	v := 0.85
	if errs := ValidateConfidence(&v); len(errs) != 0 {
		t.Errorf("valid confidence rejected: %v", errs)
	}
	bad := 1.2
	if errs := ValidateConfidence(&bad); len(errs) == 0 {
		t.Error("out-of-range confidence accepted")
	}
}

func TestValidateProfile(t *testing.T) {
	age, weight, height, goal := 30, 70.0, 175.0, 2200
	if errs := ValidateProfile(&age, &weight, &height, "male", "moderate", "maintain", &goal); len(errs) != 0 {
		t.Errorf("valid profile rejected: %v", errs)
	}

	badAge := 5
	if errs := ValidateProfile(&badAge, nil, nil, "", "", "", nil); len(errs) == 0 {
		t.Error("age 5 accepted")
	}
	if errs := ValidateProfile(nil, nil, nil, "other", "", "", nil); len(errs) == 0 {
		t.Error("unknown gender accepted")
	}
	if errs := ValidateProfile(nil, nil, nil, "", "couch", "", nil); len(errs) == 0 {
		t.Error("unknown activity level accepted")
	}
	badGoal := 200
	if errs := ValidateProfile(nil, nil, nil, "", "", "", &badGoal); len(errs) == 0 {
		t.Error("goal 200 accepted")
	}
	// Nil pointers mean "unchanged" and never fail.
	if errs := ValidateProfile(nil, nil, nil, "", "", "", nil); len(errs) != 0 {
		t.Errorf("empty update rejected: %v", errs)
	}
}

func TestCalculateBMI(t *testing.T) {
	bmi, err := CalculateBMI(175, 70)
	if err != nil {
		t.Fatalf("CalculateBMI: %v", err)
	}
	if bmi < 22.8 || bmi > 22.9 {
		t.Errorf("bmi = %v, want ~22.86", bmi)
	}
	if BMICategory(bmi) != "normal" {
		t.Errorf("category = %s, want normal", BMICategory(bmi))
	}

	if _, err := CalculateBMI(0, 70); err == nil {
		t.Error("zero height accepted")
	}
	if _, err := CalculateBMI(175, 1000); err == nil {
		t.Error("implausible weight accepted")
	}

	for bmi, want := range map[float64]string{17.0: "underweight", 27.0: "overweight", 35.0: "obese"} {
		if got := BMICategory(bmi); got != want {
			t.Errorf("BMICategory(%v) = %s, want %s", bmi, got, want)
		}
	}
}
