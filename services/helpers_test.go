package services

import (
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/zainzaheer06/calories-app/config"
	"github.com/zainzaheer06/calories-app/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, goal *int) *models.User {
	t.Helper()
	u := &models.User{
		Email:            fmt.Sprintf("%s@example.com", uuid.NewString()),
		Name:             "Test User",
		DailyCalorieGoal: goal,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

// seedLog inserts an entry with one serving at the given consumption time.
func seedLog(t *testing.T, db *gorm.DB, userID uint, name string, mealType string, n models.Nutrients, consumedAt time.Time) *models.FoodLog {
	t.Helper()
	f := &models.FoodLog{
		UserID:           userID,
		FoodName:         name,
		ServingSize:      100,
		ServingsConsumed: 1,
		Calories:         n.Calories,
		Proteins:         n.Proteins,
		Carbs:            n.Carbs,
		Fats:             n.Fats,
		Fiber:            n.Fiber,
		Sodium:           n.Sodium,
		Sugars:           n.Sugars,
		MealType:         mealType,
		ConsumedAt:       consumedAt,
	}
	if err := db.Create(f).Error; err != nil {
		t.Fatalf("seed log: %v", err)
	}
	return f
}

func at(t *testing.T, s string) time.Time {
	t.Helper()
	tt, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("parse time %q: %v", s, err)
	}
	return tt
}

func intPtr(v int) *int { return &v }

func newTestEngine() config.Engine {
	return config.DefaultEngine()
}
