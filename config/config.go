package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/zainzaheer06/calories-app/models"
)

var DB *gorm.DB

// Engine holds the analytics engine tunables. They are passed explicitly to
// the services so the engine stays pure and testable; nothing in the engine
// reads the environment.
type Engine struct {
	// DefaultCalorieGoal backs the daily progress view when the user has not
	// set a goal. Goal adherence does NOT use it: without a user goal the
	// evaluator reports a neutral result.
	DefaultCalorieGoal int
	// StreakScanDays bounds the backward streak scan. Longer streaks are
	// truncated to this window.
	StreakScanDays int
	// GoalWindowDays is the default rolling window for goal adherence.
	GoalWindowDays int
	// OnTargetTolerance is the relative band around the calorie goal within
	// which a day counts as on target.
	OnTargetTolerance float64
	// ActivityMultipliers map activity levels to TDEE factors.
	ActivityMultipliers map[string]float64
}

func DefaultEngine() Engine {
	return Engine{
		DefaultCalorieGoal: 2000,
		StreakScanDays:     365,
		GoalWindowDays:     30,
		OnTargetTolerance:  0.10,
		ActivityMultipliers: map[string]float64{
			"sedentary":    1.2,
			"light":        1.375,
			"moderate":     1.55,
			"very_active":  1.725,
			"extra_active": 1.9,
		},
	}
}

func InitDB() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("no .env file found, using environment")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := Migrate(DB); err != nil {
		log.Fatal().Err(err).Msg("automigrate failed")
	}
}

// Migrate applies the schema. Split out so tests can run it against an
// in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.FoodLog{},
		&models.CustomFood{},
	)
}
