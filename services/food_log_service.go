package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/zainzaheer06/calories-app/models"
	"github.com/zainzaheer06/calories-app/utils"
)

// FoodLogService is the write side of the engine: creating, listing,
// updating and deleting food log entries and user-defined custom foods.
type FoodLogService struct {
	db *gorm.DB
}

func NewFoodLogService(db *gorm.DB) *FoodLogService {
	return &FoodLogService{db: db}
}

// ValidationError carries the field-level problems of a rejected payload.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid food log: " + strings.Join(e.Problems, "; ")
}

// LogFoodInput is the payload for creating an entry. Nutrient values are per
// serving. ServingsConsumed is a pointer so that an explicit 0 is
// distinguishable from an omitted field, which defaults to 1.
type LogFoodInput struct {
	FoodName string `json:"food_name" binding:"required"`
	Brand    string `json:"brand"`
	Barcode  string `json:"barcode"`

	ServingSize      float64  `json:"serving_size"`
	ServingsConsumed *float64 `json:"servings_consumed"`

	Calories float64 `json:"calories"`
	Proteins float64 `json:"proteins"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
	Fiber    float64 `json:"fiber"`
	Sodium   float64 `json:"sodium"`
	Sugars   float64 `json:"sugars"`

	MealType        string          `json:"meal_type"`
	ConfidenceScore *float64        `json:"confidence_score"`
	AIAnalysis      json.RawMessage `json:"ai_analysis"`
	ConsumedAt      string          `json:"consumed_at"`
}

// LogFood validates and stores a new entry. Unset fields get their defaults:
// one serving, a meal type suggested from the consumption hour, consumed_at
// of now.
func (s *FoodLogService) LogFood(ctx context.Context, userID uint, in LogFoodInput) (*models.FoodLog, error) {
	servings := 1.0
	if in.ServingsConsumed != nil {
		servings = *in.ServingsConsumed
	}

	perServing := models.Nutrients{
		Calories: in.Calories,
		Proteins: in.Proteins,
		Carbs:    in.Carbs,
		Fats:     in.Fats,
		Fiber:    in.Fiber,
		Sodium:   in.Sodium,
		Sugars:   in.Sugars,
	}
	problems := utils.ValidateNutrition(perServing, in.ServingSize, servings)
	problems = append(problems, utils.ValidateConfidence(in.ConfidenceScore)...)
	if in.MealType != "" && !models.ValidMealType(in.MealType) {
		problems = append(problems, ErrInvalidMealType.Error())
	}
	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}

	consumedAt := time.Now().UTC()
	if in.ConsumedAt != "" {
		t, err := utils.ParseTimestamp(in.ConsumedAt)
		if err != nil {
			return nil, &ValidationError{Problems: []string{"consumed_at: " + err.Error()}}
		}
		consumedAt = t
	}

	mealType := in.MealType
	if mealType == "" {
		mealType = utils.SuggestMealType(consumedAt)
	}

	entry := models.FoodLog{
		UserID:           userID,
		FoodName:         in.FoodName,
		Brand:            in.Brand,
		Barcode:          in.Barcode,
		ServingSize:      in.ServingSize,
		ServingsConsumed: servings,
		Calories:         in.Calories,
		Proteins:         in.Proteins,
		Carbs:            in.Carbs,
		Fats:             in.Fats,
		Fiber:            in.Fiber,
		Sodium:           in.Sodium,
		Sugars:           in.Sugars,
		MealType:         mealType,
		ConfidenceScore:  in.ConfidenceScore,
		AIAnalysis:       string(in.AIAnalysis),
		ConsumedAt:       consumedAt,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("create food log: %w", err)
	}
	return &entry, nil
}

// ListFilter narrows a log listing. Date is YYYY-MM-DD; empty means all
// dates. Limit defaults to 50.
type ListFilter struct {
	Date     string
	MealType string
	Limit    int
}

// DailyTotals accompanies a single-date listing with the day's sums.
type DailyTotals struct {
	Totals        models.Nutrients    `json:"totals"`
	MealBreakdown map[string]MealSlot `json:"meal_breakdown"`
}

// ListLogs returns entries newest first. When the filter names a single
// date, the day's totals are computed from the returned entries and included.
func (s *FoodLogService) ListLogs(ctx context.Context, userID uint, f ListFilter) ([]models.FoodLog, *DailyTotals, error) {
	if f.MealType != "" && !models.ValidMealType(f.MealType) {
		return nil, nil, ErrInvalidMealType
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}

	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if f.Date != "" {
		day, err := utils.ParseDate(f.Date)
		if err != nil {
			return nil, nil, err
		}
		from := utils.DayStart(day)
		q = q.Where("consumed_at >= ? AND consumed_at < ?", from, from.AddDate(0, 0, 1))
	}
	if f.MealType != "" {
		q = q.Where("meal_type = ?", f.MealType)
	}

	var logs []models.FoodLog
	if err := q.Order("consumed_at DESC, id DESC").Limit(limit).Find(&logs).Error; err != nil {
		return nil, nil, fmt.Errorf("list food logs: %w", err)
	}

	var totals *DailyTotals
	if f.Date != "" {
		totals = &DailyTotals{
			Totals:        sumTotals(logs).Round2(),
			MealBreakdown: mealBreakdown(logs),
		}
	}
	return logs, totals, nil
}

// UpdateLogInput holds the mutable fields of an entry. Everything else is
// fixed at creation.
type UpdateLogInput struct {
	ServingsConsumed *float64 `json:"servings_consumed"`
	MealType         *string  `json:"meal_type"`
	ConsumedAt       *string  `json:"consumed_at"`
}

// UpdateLog patches an entry owned by userID. Only servings, meal type and
// consumption time can change.
func (s *FoodLogService) UpdateLog(ctx context.Context, userID, logID uint, in UpdateLogInput) (*models.FoodLog, error) {
	var entry models.FoodLog
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", logID, userID).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLogNotFound
		}
		return nil, fmt.Errorf("load food log: %w", err)
	}

	if in.ServingsConsumed != nil {
		if *in.ServingsConsumed < 0 {
			return nil, ErrNegativeServings
		}
		entry.ServingsConsumed = *in.ServingsConsumed
	}
	if in.MealType != nil {
		if !models.ValidMealType(*in.MealType) {
			return nil, ErrInvalidMealType
		}
		entry.MealType = *in.MealType
	}
	if in.ConsumedAt != nil {
		t, err := utils.ParseTimestamp(*in.ConsumedAt)
		if err != nil {
			return nil, err
		}
		entry.ConsumedAt = t
	}

	if err := s.db.WithContext(ctx).Save(&entry).Error; err != nil {
		return nil, fmt.Errorf("update food log: %w", err)
	}
	return &entry, nil
}

// DeleteLog removes an entry owned by userID.
func (s *FoodLogService) DeleteLog(ctx context.Context, userID, logID uint) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", logID, userID).
		Delete(&models.FoodLog{})
	if res.Error != nil {
		return fmt.Errorf("delete food log: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrLogNotFound
	}
	return nil
}

// CustomFoodInput is the payload for a user-defined food, nutrients per 100g.
type CustomFoodInput struct {
	Name    string `json:"name" binding:"required"`
	Brand   string `json:"brand"`
	Barcode string `json:"barcode"`

	CaloriesPer100g float64 `json:"calories_per_100g"`
	ProteinsPer100g float64 `json:"proteins_per_100g"`
	CarbsPer100g    float64 `json:"carbs_per_100g"`
	FatsPer100g     float64 `json:"fats_per_100g"`
	FiberPer100g    float64 `json:"fiber_per_100g"`
	SodiumPer100g   float64 `json:"sodium_per_100g"`
	SugarsPer100g   float64 `json:"sugars_per_100g"`

	DefaultServingSize float64 `json:"default_serving_size"`
	Category           string  `json:"category"`
}

func (s *FoodLogService) CreateCustomFood(ctx context.Context, userID uint, in CustomFoodInput) (*models.CustomFood, error) {
	per100 := models.Nutrients{
		Calories: in.CaloriesPer100g,
		Proteins: in.ProteinsPer100g,
		Carbs:    in.CarbsPer100g,
		Fats:     in.FatsPer100g,
		Fiber:    in.FiberPer100g,
		Sodium:   in.SodiumPer100g,
		Sugars:   in.SugarsPer100g,
	}
	serving := in.DefaultServingSize
	if serving == 0 {
		serving = 100
	}
	if problems := utils.ValidateNutrition(per100, serving, 1); len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}

	food := models.CustomFood{
		UserID:             userID,
		Name:               in.Name,
		Brand:              in.Brand,
		Barcode:            in.Barcode,
		CaloriesPer100g:    in.CaloriesPer100g,
		ProteinsPer100g:    in.ProteinsPer100g,
		CarbsPer100g:       in.CarbsPer100g,
		FatsPer100g:        in.FatsPer100g,
		FiberPer100g:       in.FiberPer100g,
		SodiumPer100g:      in.SodiumPer100g,
		SugarsPer100g:      in.SugarsPer100g,
		DefaultServingSize: serving,
		Category:           in.Category,
	}
	if err := s.db.WithContext(ctx).Create(&food).Error; err != nil {
		return nil, fmt.Errorf("create custom food: %w", err)
	}
	return &food, nil
}

func (s *FoodLogService) ListCustomFoods(ctx context.Context, userID uint) ([]models.CustomFood, error) {
	var foods []models.CustomFood
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&foods).Error
	if err != nil {
		return nil, fmt.Errorf("list custom foods: %w", err)
	}
	return foods, nil
}
