package services

import (
	"context"
	"math"
	"time"

	"github.com/zainzaheer06/calories-app/config"
	"github.com/zainzaheer06/calories-app/models"
	"github.com/zainzaheer06/calories-app/utils"
)

// NutritionService is the period aggregator: it turns a user's food logs
// into daily, weekly, monthly and custom-range summaries. It is a pure
// read-side consumer of the RecordStore and holds no cross-call state.
type NutritionService struct {
	store RecordStore
	cfg   config.Engine
}

func NewNutritionService(store RecordStore, cfg config.Engine) *NutritionService {
	return &NutritionService{store: store, cfg: cfg}
}

// MealSlot is one meal type's share of a day or range. All four canonical
// meal types are always present in a breakdown, zero-valued when empty.
type MealSlot struct {
	Calories float64  `json:"calories"`
	Count    int      `json:"count"`
	Foods    []string `json:"foods"`
}

type MacroShare struct {
	Grams      float64 `json:"grams"`
	Calories   float64 `json:"calories"`
	Percentage float64 `json:"percentage"`
}

// MacroBreakdown reports each macro's contribution to total calories using
// 4 kcal/g for protein and carbs and 9 kcal/g for fat.
type MacroBreakdown struct {
	Proteins MacroShare `json:"proteins"`
	Carbs    MacroShare `json:"carbs"`
	Fats     MacroShare `json:"fats"`
}

type CalorieProgress struct {
	Consumed   float64 `json:"consumed"`
	Goal       int     `json:"goal"`
	Remaining  float64 `json:"remaining"`
	Percentage float64 `json:"percentage"`
}

// DaySummary is the full picture of a single calendar day.
type DaySummary struct {
	Date            string              `json:"date"`
	CalorieProgress CalorieProgress     `json:"calorie_progress"`
	Totals          models.Nutrients    `json:"totals"`
	MacroBreakdown  MacroBreakdown      `json:"macro_breakdown"`
	MealBreakdown   map[string]MealSlot `json:"meal_breakdown"`
	FoodCount       int                 `json:"food_count"`
}

// DayBucket is one day inside a multi-day summary. The sequence of buckets
// covers every calendar day of the period, zero-valued when nothing was
// logged.
type DayBucket struct {
	Date      string  `json:"date"`
	DayName   string  `json:"day_name,omitempty"`
	Day       int     `json:"day,omitempty"`
	Calories  float64 `json:"calories"`
	FoodCount int     `json:"food_count"`
}

type WeeklyTotals struct {
	Calories float64 `json:"calories"`
	Proteins float64 `json:"proteins"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

type WeeklyAverages struct {
	AvgCalories float64 `json:"avg_calories"`
	AvgProteins float64 `json:"avg_proteins"`
	AvgCarbs    float64 `json:"avg_carbs"`
	AvgFats     float64 `json:"avg_fats"`
}

// WeekSummary reports a Monday-to-Sunday week. Two averaging conventions
// coexist on purpose: WeeklyAverages divides by days that have records,
// PerCalendarDay divides by a fixed 7. Consumers rely on which denominator
// is used, so both are kept.
type WeekSummary struct {
	StartDate      string           `json:"start_date"`
	EndDate        string           `json:"end_date"`
	DailyData      []DayBucket      `json:"daily_data"`
	WeeklyTotals   WeeklyTotals     `json:"weekly_totals"`
	WeeklyAverages WeeklyAverages   `json:"weekly_averages"`
	PerCalendarDay models.Nutrients `json:"average_daily_nutrients"`
	DaysLogged     int              `json:"days_logged"`
}

type MonthlyStats struct {
	TotalCalories    float64 `json:"total_calories"`
	AvgDailyCalories float64 `json:"avg_daily_calories"`
	DaysLogged       int     `json:"days_logged"`
	TotalDays        int     `json:"total_days"`
	TotalFoodsLogged int     `json:"total_foods_logged"`
}

// MonthSummary reports one calendar month. MonthlyStats.AvgDailyCalories
// averages over days with records; PerCalendarDay averages over the number
// of days in the month.
type MonthSummary struct {
	Month          string           `json:"month"`
	StartDate      string           `json:"start_date"`
	EndDate        string           `json:"end_date"`
	DailyData      []DayBucket      `json:"daily_data"`
	MonthlyStats   MonthlyStats     `json:"monthly_stats"`
	PerCalendarDay models.Nutrients `json:"average_daily_nutrients"`
	TopFoods       []FoodFrequency  `json:"top_foods"`
}

// RangeSummary covers an arbitrary closed date interval.
type RangeSummary struct {
	StartDate     string              `json:"start_date"`
	EndDate       string              `json:"end_date"`
	Totals        models.Nutrients    `json:"totals"`
	MacroBreakdown MacroBreakdown     `json:"macro_breakdown"`
	MealBreakdown map[string]MealSlot `json:"meal_breakdown"`
	DailyData     []DayBucket         `json:"daily_data"`
	LogCount      int                 `json:"log_count"`
}

// DaySummary aggregates a single calendar day. A day without records yields
// a fully populated zero summary, never an error.
func (s *NutritionService) DaySummary(ctx context.Context, userID uint, day time.Time) (*DaySummary, error) {
	logs, err := s.store.LogsInRange(ctx, userID, day, day)
	if err != nil {
		return nil, err
	}

	totals := sumTotals(logs)

	goal, err := s.store.CalorieGoal(ctx, userID)
	if err != nil {
		return nil, err
	}
	target := s.cfg.DefaultCalorieGoal
	if goal != nil && *goal > 0 {
		target = *goal
	}

	return &DaySummary{
		Date:            utils.FormatDate(day),
		CalorieProgress: calorieProgress(totals.Calories, target),
		Totals:          totals.Round2(),
		MacroBreakdown:  macroBreakdown(totals),
		MealBreakdown:   mealBreakdown(logs),
		FoodCount:       len(logs),
	}, nil
}

// WeekSummary aggregates the 7 days starting at weekStart (a Monday unless
// the caller chose otherwise). Every day appears in DailyData.
func (s *NutritionService) WeekSummary(ctx context.Context, userID uint, weekStart time.Time) (*WeekSummary, error) {
	start := utils.DayStart(weekStart)
	end := start.AddDate(0, 0, 6)

	logs, err := s.store.LogsInRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	buckets := dailyBuckets(logs, start, end, withDayNames)
	totals := sumTotals(logs)
	daysLogged := daysWithRecords(buckets)

	out := &WeekSummary{
		StartDate: utils.FormatDate(start),
		EndDate:   utils.FormatDate(end),
		DailyData: buckets,
		WeeklyTotals: WeeklyTotals{
			Calories: round2(totals.Calories),
			Proteins: round2(totals.Proteins),
			Carbs:    round2(totals.Carbs),
			Fats:     round2(totals.Fats),
		},
		WeeklyAverages: WeeklyAverages{
			AvgCalories: avg(totals.Calories, daysLogged),
			AvgProteins: avg(totals.Proteins, daysLogged),
			AvgCarbs:    avg(totals.Carbs, daysLogged),
			AvgFats:     avg(totals.Fats, daysLogged),
		},
		PerCalendarDay: totals.Scale(1.0 / 7.0).Round2(),
		DaysLogged:     daysLogged,
	}
	return out, nil
}

// MonthSummary aggregates one calendar month. Month boundaries come from
// calendar-aware date arithmetic, never a fixed month length.
func (s *NutritionService) MonthSummary(ctx context.Context, userID uint, year, month int) (*MonthSummary, error) {
	start, end, err := utils.MonthRange(year, month)
	if err != nil {
		return nil, err
	}
	totalDays := utils.DaysBetween(start, end)

	logs, err := s.store.LogsInRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	buckets := dailyBuckets(logs, start, end, withDayOfMonth)
	totals := sumTotals(logs)
	daysLogged := daysWithRecords(buckets)

	topFoods, err := s.store.MostEatenFoods(ctx, userID, 10)
	if err != nil {
		return nil, err
	}
	for i := range topFoods {
		topFoods[i].TotalCalories = round2(topFoods[i].TotalCalories)
	}

	return &MonthSummary{
		Month:     start.Format("2006-01"),
		StartDate: utils.FormatDate(start),
		EndDate:   utils.FormatDate(end),
		DailyData: buckets,
		MonthlyStats: MonthlyStats{
			TotalCalories:    round2(totals.Calories),
			AvgDailyCalories: avg(totals.Calories, daysLogged),
			DaysLogged:       daysLogged,
			TotalDays:        totalDays,
			TotalFoodsLogged: len(logs),
		},
		PerCalendarDay: totals.Scale(1.0 / float64(totalDays)).Round2(),
		TopFoods:       topFoods,
	}, nil
}

// RangeSummary aggregates an arbitrary closed interval [start, end].
func (s *NutritionService) RangeSummary(ctx context.Context, userID uint, start, end time.Time) (*RangeSummary, error) {
	start, end = utils.DayStart(start), utils.DayStart(end)
	if end.Before(start) {
		return nil, ErrInvalidRange
	}

	logs, err := s.store.LogsInRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	totals := sumTotals(logs)
	return &RangeSummary{
		StartDate:      utils.FormatDate(start),
		EndDate:        utils.FormatDate(end),
		Totals:         totals.Round2(),
		MacroBreakdown: macroBreakdown(totals),
		MealBreakdown:  mealBreakdown(logs),
		DailyData:      dailyBuckets(logs, start, end, plainBuckets),
		LogCount:       len(logs),
	}, nil
}

// MostEatenFoods ranks the user's most frequently logged foods.
func (s *NutritionService) MostEatenFoods(ctx context.Context, userID uint, limit int) ([]FoodFrequency, error) {
	rows, err := s.store.MostEatenFoods(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].TotalCalories = round2(rows[i].TotalCalories)
	}
	return rows, nil
}

// ---------- aggregation internals ----------

// Calorie density of each macronutrient, kcal per gram.
const (
	kcalPerGramProtein = 4
	kcalPerGramCarb    = 4
	kcalPerGramFat     = 9
)

func sumTotals(logs []models.FoodLog) models.Nutrients {
	var totals models.Nutrients
	for i := range logs {
		totals = totals.Add(logs[i].TotalNutrients())
	}
	return totals
}

// mealBreakdown partitions logs by meal type. The four canonical slots are
// always present so consumers get a predictable shape.
func mealBreakdown(logs []models.FoodLog) map[string]MealSlot {
	out := make(map[string]MealSlot, 4)
	for _, mt := range models.MealTypes() {
		out[mt] = MealSlot{Foods: []string{}}
	}
	for i := range logs {
		mt := logs[i].MealType
		if !models.ValidMealType(mt) {
			mt = models.MealSnack
		}
		slot := out[mt]
		slot.Calories += logs[i].TotalCalories()
		slot.Count++
		slot.Foods = append(slot.Foods, logs[i].FoodName)
		out[mt] = slot
	}
	for mt, slot := range out {
		slot.Calories = round2(slot.Calories)
		out[mt] = slot
	}
	return out
}

type bucketStyle int

const (
	plainBuckets bucketStyle = iota
	withDayNames
	withDayOfMonth
)

// dailyBuckets produces one bucket per calendar day of [start, end],
// inclusive, with zero-valued entries for days without records. Grouping is
// by consumption date only; timestamps within a day are irrelevant.
func dailyBuckets(logs []models.FoodLog, start, end time.Time, style bucketStyle) []DayBucket {
	type acc struct {
		calories float64
		count    int
	}
	perDay := make(map[string]acc)
	for i := range logs {
		key := utils.FormatDate(logs[i].ConsumedAt)
		a := perDay[key]
		a.calories += logs[i].TotalCalories()
		a.count++
		perDay[key] = a
	}

	var out []DayBucket
	for d := utils.DayStart(start); !d.After(end); d = d.AddDate(0, 0, 1) {
		key := utils.FormatDate(d)
		a := perDay[key]
		b := DayBucket{
			Date:      key,
			Calories:  round2(a.calories),
			FoodCount: a.count,
		}
		switch style {
		case withDayNames:
			b.DayName = d.Weekday().String()
		case withDayOfMonth:
			b.Day = d.Day()
		}
		out = append(out, b)
	}
	return out
}

func daysWithRecords(buckets []DayBucket) int {
	n := 0
	for i := range buckets {
		if buckets[i].Calories > 0 {
			n++
		}
	}
	return n
}

// macroBreakdown converts macro grams into calorie contributions and their
// share of total calories. All shares are 0 when total calories is 0.
func macroBreakdown(totals models.Nutrients) MacroBreakdown {
	share := func(grams, kcalPerGram float64) MacroShare {
		cal := grams * kcalPerGram
		pct := 0.0
		if totals.Calories > 0 {
			pct = round1(cal / totals.Calories * 100)
		}
		return MacroShare{
			Grams:      round2(grams),
			Calories:   round2(cal),
			Percentage: pct,
		}
	}
	return MacroBreakdown{
		Proteins: share(totals.Proteins, kcalPerGramProtein),
		Carbs:    share(totals.Carbs, kcalPerGramCarb),
		Fats:     share(totals.Fats, kcalPerGramFat),
	}
}

// calorieProgress compares consumed calories against a daily target.
// Division hazards resolve to 0.
func calorieProgress(consumed float64, goal int) CalorieProgress {
	p := CalorieProgress{
		Consumed: round2(consumed),
		Goal:     goal,
	}
	if rem := float64(goal) - consumed; rem > 0 {
		p.Remaining = round2(rem)
	}
	if goal > 0 {
		p.Percentage = round1(consumed / float64(goal) * 100)
	}
	return p
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round1(v float64) float64 { return math.Round(v*10) / 10 }

func avg(sum float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	return round2(sum / float64(n))
}
