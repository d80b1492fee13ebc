package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/zainzaheer06/calories-app/config"
	"github.com/zainzaheer06/calories-app/models"
	"github.com/zainzaheer06/calories-app/utils"
)

// AnalyticsService computes longitudinal signals on top of the raw record
// set: logging streaks, consistency ratios, calorie trends and goal
// adherence. Like the aggregator it is stateless and read-only; "today" is
// always passed in by the caller so results are reproducible.
type AnalyticsService struct {
	store RecordStore
	cfg   config.Engine
}

func NewAnalyticsService(store RecordStore, cfg config.Engine) *AnalyticsService {
	return &AnalyticsService{store: store, cfg: cfg}
}

type LoggingStats struct {
	TotalFoodLogs    int64   `json:"total_food_logs"`
	UniqueDaysLogged int64   `json:"unique_days_logged"`
	DaysSinceStart   int     `json:"days_since_start"`
	LoggingFrequency float64 `json:"logging_frequency"`
	CurrentStreak    int     `json:"current_streak"`
	FirstLogDate     string  `json:"first_log_date,omitempty"`
	LastLogDate      string  `json:"last_log_date,omitempty"`
}

type NutritionAverages struct {
	AvgDailyCalories    float64 `json:"avg_daily_calories"`
	TotalCaloriesLogged float64 `json:"total_calories_logged"`
}

// AccountSummary is the all-time view of a user's logging habit. A user
// with no logs gets a zero-valued summary, not an error.
type AccountSummary struct {
	LoggingStats      LoggingStats      `json:"logging_stats"`
	NutritionAverages NutritionAverages `json:"nutrition_averages"`
	MealPreferences   map[string]int64  `json:"meal_preferences"`
}

func (s *AnalyticsService) AccountSummary(ctx context.Context, userID uint, today time.Time) (*AccountSummary, error) {
	total, first, last, err := s.store.LoggingBounds(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := &AccountSummary{MealPreferences: map[string]int64{}}
	if total == 0 {
		return out, nil
	}

	uniqueDays, err := s.store.UniqueLogDays(ctx, userID)
	if err != nil {
		return nil, err
	}
	totalCalories, err := s.store.TotalCaloriesLogged(ctx, userID)
	if err != nil {
		return nil, err
	}
	mealCounts, err := s.store.MealTypeCounts(ctx, userID)
	if err != nil {
		return nil, err
	}
	streak, err := s.CurrentStreak(ctx, userID, today)
	if err != nil {
		return nil, err
	}

	// Inclusive of both the first and last logging dates.
	daysSinceStart := utils.DaysBetween(first, last)

	out.LoggingStats = LoggingStats{
		TotalFoodLogs:    total,
		UniqueDaysLogged: uniqueDays,
		DaysSinceStart:   daysSinceStart,
		LoggingFrequency: round1(float64(uniqueDays) / float64(max(daysSinceStart, 1)) * 100),
		CurrentStreak:    streak,
		FirstLogDate:     utils.FormatDate(first),
		LastLogDate:      utils.FormatDate(last),
	}
	out.NutritionAverages = NutritionAverages{
		AvgDailyCalories:    avg(totalCalories, int(max(uniqueDays, 1))),
		TotalCaloriesLogged: round2(totalCalories),
	}
	out.MealPreferences = mealCounts
	return out, nil
}

// CurrentStreak counts consecutive days with at least one log, scanning
// backward from today. The first date without a record ends the scan, so a
// day with no log yet yields 0. The scan is bounded by StreakScanDays;
// longer streaks are truncated to that window.
func (s *AnalyticsService) CurrentStreak(ctx context.Context, userID uint, today time.Time) (int, error) {
	limit := s.cfg.StreakScanDays
	if limit <= 0 {
		limit = 365
	}
	today = utils.DayStart(today)
	windowStart := today.AddDate(0, 0, -(limit - 1))

	logs, err := s.store.LogsInRange(ctx, userID, windowStart, today)
	if err != nil {
		return 0, err
	}
	logged := make(map[string]struct{}, len(logs))
	for i := range logs {
		logged[utils.FormatDate(logs[i].ConsumedAt)] = struct{}{}
	}

	streak := 0
	for i := 0; i < limit; i++ {
		d := today.AddDate(0, 0, -i)
		if _, ok := logged[utils.FormatDate(d)]; !ok {
			break
		}
		streak++
	}
	return streak, nil
}

// DayProgress is one day of a progress report; zero-valued on days without
// records so the series covers the whole window.
type DayProgress struct {
	Date            string  `json:"date"`
	Calories        float64 `json:"calories"`
	Proteins        float64 `json:"proteins"`
	Carbs           float64 `json:"carbs"`
	Fats            float64 `json:"fats"`
	GoalAchievement float64 `json:"goal_achievement"`
	FoodCount       int     `json:"food_count"`
}

type TrendAnalysis struct {
	Trend            string  `json:"trend"`
	TrendPercentage  float64 `json:"trend_percentage"`
	AvgDailyCalories float64 `json:"avg_daily_calories"`
	DaysWithData     int     `json:"days_with_data"`
	ConsistencyScore float64 `json:"consistency_score"`
}

type ProgressReport struct {
	Period        string        `json:"period"`
	StartDate     string        `json:"start_date"`
	EndDate       string        `json:"end_date"`
	DailyProgress []DayProgress `json:"daily_progress"`
	TrendAnalysis TrendAnalysis `json:"trend_analysis"`
}

// ProgressReport covers the `days` calendar days ending at today, with a
// zero-filled per-day series and a first-half/second-half trend signal over
// the days that have records.
func (s *AnalyticsService) ProgressReport(ctx context.Context, userID uint, days int, today time.Time) (*ProgressReport, error) {
	if days <= 0 {
		return nil, ErrInvalidPeriod
	}
	end := utils.DayStart(today)
	start := end.AddDate(0, 0, -(days - 1))

	logs, err := s.store.LogsInRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	goal, err := s.store.CalorieGoal(ctx, userID)
	if err != nil {
		return nil, err
	}

	perDay := make(map[string]models.Nutrients)
	counts := make(map[string]int)
	for i := range logs {
		key := utils.FormatDate(logs[i].ConsumedAt)
		perDay[key] = perDay[key].Add(logs[i].TotalNutrients())
		counts[key]++
	}

	var (
		series  []DayProgress
		nonZero []float64
	)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := utils.FormatDate(d)
		n := perDay[key]

		achievement := 0.0
		if goal != nil && *goal > 0 && counts[key] > 0 {
			achievement = round1(n.Calories / float64(*goal) * 100)
		}
		series = append(series, DayProgress{
			Date:            key,
			Calories:        round2(n.Calories),
			Proteins:        round2(n.Proteins),
			Carbs:           round2(n.Carbs),
			Fats:            round2(n.Fats),
			GoalAchievement: achievement,
			FoodCount:       counts[key],
		})
		if n.Calories > 0 {
			nonZero = append(nonZero, n.Calories)
		}
	}

	trend, pctChange := classifyTrend(nonZero)

	avgDaily := 0.0
	if len(nonZero) > 0 {
		sum := 0.0
		for _, v := range nonZero {
			sum += v
		}
		avgDaily = round2(sum / float64(len(nonZero)))
	}

	return &ProgressReport{
		Period:        fmt.Sprintf("%d days", days),
		StartDate:     utils.FormatDate(start),
		EndDate:       utils.FormatDate(end),
		DailyProgress: series,
		TrendAnalysis: TrendAnalysis{
			Trend:            trend,
			TrendPercentage:  pctChange,
			AvgDailyCalories: avgDaily,
			DaysWithData:     len(nonZero),
			ConsistencyScore: round1(float64(len(nonZero)) / float64(days) * 100),
		},
	}, nil
}

// classifyTrend splits the non-zero daily series at its midpoint and
// compares half means. Fewer than 4 points is not enough signal and reads
// as stable. The percentage change is 0 when the first half mean is 0.
func classifyTrend(series []float64) (string, float64) {
	if len(series) < 4 {
		return "stable", 0
	}
	mid := len(series) / 2
	firstMean := mean(series[:mid])
	secondMean := mean(series[mid:])

	trend := "decreasing"
	if secondMean > firstMean {
		trend = "increasing"
	}
	if firstMean == 0 {
		return trend, 0
	}
	return trend, round1((secondMean - firstMean) / firstMean * 100)
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// AdherenceDay marks whether a tracked day landed within the target band.
type AdherenceDay struct {
	Date     string  `json:"date"`
	Calories float64 `json:"calories"`
	OnTarget bool    `json:"on_target"`
}

// GoalAdherence summarizes how often the user hit their calorie goal over a
// rolling window. Only days with at least one record are tracked.
type GoalAdherence struct {
	DaysTracked     int            `json:"days_tracked"`
	DaysOnTarget    int            `json:"days_on_target"`
	AverageCalories float64        `json:"average_calories"`
	TargetCalories  int            `json:"target_calories"`
	SuccessRate     float64        `json:"success_rate"`
	DailyData       []AdherenceDay `json:"daily_data"`
}

// GoalAdherence evaluates the last `days` days against the user's calorie
// goal with the configured tolerance band. A user without a goal gets a
// neutral zero result.
func (s *AnalyticsService) GoalAdherence(ctx context.Context, userID uint, days int, today time.Time) (*GoalAdherence, error) {
	if days <= 0 {
		days = s.cfg.GoalWindowDays
	}
	out := &GoalAdherence{DailyData: []AdherenceDay{}}

	goal, err := s.store.CalorieGoal(ctx, userID)
	if err != nil {
		return nil, err
	}
	if goal == nil || *goal <= 0 {
		return out, nil
	}
	target := float64(*goal)

	end := utils.DayStart(today)
	start := end.AddDate(0, 0, -(days - 1))
	logs, err := s.store.LogsInRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	perDay := make(map[string]float64)
	for i := range logs {
		perDay[utils.FormatDate(logs[i].ConsumedAt)] += logs[i].TotalCalories()
	}

	totalCalories := 0.0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := utils.FormatDate(d)
		cal, tracked := perDay[key]
		if !tracked {
			continue
		}
		onTarget := math.Abs(cal-target) <= target*s.cfg.OnTargetTolerance
		out.DaysTracked++
		totalCalories += cal
		if onTarget {
			out.DaysOnTarget++
		}
		out.DailyData = append(out.DailyData, AdherenceDay{
			Date:     key,
			Calories: round2(cal),
			OnTarget: onTarget,
		})
	}

	out.TargetCalories = *goal
	if out.DaysTracked > 0 {
		out.AverageCalories = round2(totalCalories / float64(out.DaysTracked))
		out.SuccessRate = round1(float64(out.DaysOnTarget) / float64(out.DaysTracked) * 100)
	}
	return out, nil
}
