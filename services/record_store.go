package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/zainzaheer06/calories-app/models"
	"github.com/zainzaheer06/calories-app/utils"
)

// RecordStore is the read-side collaborator the analytics engine consumes.
// Every query is scoped to a single user, and range queries select on the
// calendar date of consumed_at. Results are ordered by consumed_at so
// fixtures and responses stay deterministic.
type RecordStore interface {
	// LogsInRange returns all logs whose consumption date falls in the
	// closed interval [start, end]. Only the date parts of start/end matter.
	LogsInRange(ctx context.Context, userID uint, start, end time.Time) ([]models.FoodLog, error)

	// LoggingBounds reports the total number of logs plus the first and
	// last consumption timestamps. first/last are zero when count is 0.
	LoggingBounds(ctx context.Context, userID uint) (count int64, first, last time.Time, err error)

	// UniqueLogDays counts distinct calendar dates with at least one log.
	UniqueLogDays(ctx context.Context, userID uint) (int64, error)

	// TotalCaloriesLogged sums calories x servings over the user's history.
	TotalCaloriesLogged(ctx context.Context, userID uint) (float64, error)

	// MealTypeCounts returns log counts grouped by meal type.
	MealTypeCounts(ctx context.Context, userID uint) (map[string]int64, error)

	// MostEatenFoods ranks foods by how often they were logged.
	MostEatenFoods(ctx context.Context, userID uint, limit int) ([]FoodFrequency, error)

	// CalorieGoal returns the user's daily calorie goal, nil when unset.
	CalorieGoal(ctx context.Context, userID uint) (*int, error)
}

// FoodFrequency is one row of the most-eaten ranking.
type FoodFrequency struct {
	FoodName      string  `json:"food_name"`
	TimesEaten    int64   `json:"times_eaten"`
	TotalCalories float64 `json:"total_calories"`
}

// GormRecordStore implements RecordStore on a gorm database.
type GormRecordStore struct {
	db *gorm.DB
}

func NewGormRecordStore(db *gorm.DB) *GormRecordStore {
	return &GormRecordStore{db: db}
}

func (s *GormRecordStore) LogsInRange(ctx context.Context, userID uint, start, end time.Time) ([]models.FoodLog, error) {
	var logs []models.FoodLog
	from := utils.DayStart(start)
	until := utils.DayStart(end).AddDate(0, 0, 1)
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND consumed_at >= ? AND consumed_at < ?", userID, from, until).
		Order("consumed_at ASC, id ASC").
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("query logs in range: %w", err)
	}
	return logs, nil
}

func (s *GormRecordStore) LoggingBounds(ctx context.Context, userID uint) (int64, time.Time, time.Time, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.FoodLog{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, time.Time{}, time.Time{}, fmt.Errorf("count logs: %w", err)
	}
	if count == 0 {
		return 0, time.Time{}, time.Time{}, nil
	}

	var first, last models.FoodLog
	err = s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("consumed_at ASC").
		First(&first).Error
	if err != nil {
		return 0, time.Time{}, time.Time{}, fmt.Errorf("first log: %w", err)
	}
	err = s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("consumed_at DESC").
		Take(&last).Error
	if err != nil {
		return 0, time.Time{}, time.Time{}, fmt.Errorf("last log: %w", err)
	}
	return count, first.ConsumedAt, last.ConsumedAt, nil
}

func (s *GormRecordStore) UniqueLogDays(ctx context.Context, userID uint) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.FoodLog{}).
		Where("user_id = ?", userID).
		Select("count(distinct date(consumed_at))").
		Scan(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count unique log days: %w", err)
	}
	return n, nil
}

func (s *GormRecordStore) TotalCaloriesLogged(ctx context.Context, userID uint) (float64, error) {
	var total float64
	err := s.db.WithContext(ctx).Model(&models.FoodLog{}).
		Where("user_id = ?", userID).
		Select("coalesce(sum(calories * servings_consumed), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("sum calories: %w", err)
	}
	return total, nil
}

func (s *GormRecordStore) MealTypeCounts(ctx context.Context, userID uint) (map[string]int64, error) {
	var rows []struct {
		MealType string
		N        int64
	}
	err := s.db.WithContext(ctx).Model(&models.FoodLog{}).
		Where("user_id = ?", userID).
		Select("meal_type, count(*) as n").
		Group("meal_type").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count meal types: %w", err)
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.MealType] = r.N
	}
	return out, nil
}

func (s *GormRecordStore) MostEatenFoods(ctx context.Context, userID uint, limit int) ([]FoodFrequency, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []FoodFrequency
	err := s.db.WithContext(ctx).Model(&models.FoodLog{}).
		Where("user_id = ?", userID).
		Select("food_name, count(*) as times_eaten, sum(calories * servings_consumed) as total_calories").
		Group("food_name").
		Order("times_eaten DESC, food_name ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("rank foods: %w", err)
	}
	return rows, nil
}

func (s *GormRecordStore) CalorieGoal(ctx context.Context, userID uint) (*int, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return user.DailyCalorieGoal, nil
}
