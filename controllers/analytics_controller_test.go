package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/zainzaheer06/calories-app/config"
	"github.com/zainzaheer06/calories-app/models"
	"github.com/zainzaheer06/calories-app/services"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:ctrl_%s?mode=memory&cache=shared", uuid.NewString())

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

// newTestRouter wires the API with the auth middleware replaced by a stub
// that injects the given user id.
func newTestRouter(t *testing.T, db *gorm.DB, userID uint) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.DefaultEngine()
	store := services.NewGormRecordStore(db)
	nutrition := services.NewNutritionService(store, cfg)
	analytics := services.NewAnalyticsService(store, cfg)
	foodLogs := services.NewFoodLogService(db)

	analyticsCtrl := NewAnalyticsController(nutrition, analytics)
	foodCtrl := NewFoodController(foodLogs, nutrition)

	r := gin.New()
	api := r.Group("/api")
	api.Use(func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	})
	api.GET("/analytics/daily/:date", analyticsCtrl.GetDaily)
	api.GET("/analytics/weekly", analyticsCtrl.GetWeekly)
	api.GET("/analytics/monthly", analyticsCtrl.GetMonthly)
	api.GET("/analytics/range", analyticsCtrl.GetRange)
	api.GET("/analytics/summary", analyticsCtrl.GetSummary)
	api.GET("/analytics/progress", analyticsCtrl.GetProgress)
	api.GET("/analytics/goal-adherence", analyticsCtrl.GetGoalAdherence)
	api.POST("/food/log", foodCtrl.LogFood)
	return r
}

func seedTestUser(t *testing.T, db *gorm.DB, goal int) *models.User {
	t.Helper()
	u := &models.User{
		Email:            fmt.Sprintf("%s@example.com", uuid.NewString()),
		Name:             "Test User",
		DailyCalorieGoal: &goal,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func newBody(s string) io.Reader { return strings.NewReader(s) }

func doGET(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestGetDaily(t *testing.T) {
	db := newTestDB(t)
	user := seedTestUser(t, db, 2000)
	r := newTestRouter(t, db, user.ID)

	entry := models.FoodLog{
		UserID: user.ID, FoodName: "Oatmeal", ServingSize: 100,
		ServingsConsumed: 1, Calories: 300, MealType: models.MealBreakfast,
		ConsumedAt: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
	}
	if err := db.Create(&entry).Error; err != nil {
		t.Fatalf("seed log: %v", err)
	}

	w := doGET(t, r, "/api/analytics/daily/2024-03-01")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var body struct {
		Date   string `json:"date"`
		Totals struct {
			Calories float64 `json:"calories"`
		} `json:"totals"`
		CalorieProgress struct {
			Goal      int     `json:"goal"`
			Remaining float64 `json:"remaining"`
		} `json:"calorie_progress"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Date != "2024-03-01" || body.Totals.Calories != 300 {
		t.Errorf("body = %+v", body)
	}
	if body.CalorieProgress.Goal != 2000 || body.CalorieProgress.Remaining != 1700 {
		t.Errorf("progress = %+v", body.CalorieProgress)
	}
}

func TestGetDaily_BadDate(t *testing.T) {
	db := newTestDB(t)
	user := seedTestUser(t, db, 2000)
	r := newTestRouter(t, db, user.ID)

	w := doGET(t, r, "/api/analytics/daily/03-01-2024")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestGetMonthly_MonthFormats(t *testing.T) {
	db := newTestDB(t)
	user := seedTestUser(t, db, 2000)
	r := newTestRouter(t, db, user.ID)

	w := doGET(t, r, "/api/analytics/monthly?month=2024-02")
	if w.Code != http.StatusOK {
		t.Fatalf("YYYY-MM form: status = %d, body = %s", w.Code, w.Body.String())
	}
	var body struct {
		Month     string `json:"month"`
		DailyData []any  `json:"daily_data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Month != "2024-02" || len(body.DailyData) != 29 {
		t.Errorf("month = %s, buckets = %d", body.Month, len(body.DailyData))
	}

	w = doGET(t, r, "/api/analytics/monthly?year=2024&month=2")
	if w.Code != http.StatusOK {
		t.Fatalf("numeric form: status = %d", w.Code)
	}

	w = doGET(t, r, "/api/analytics/monthly?month=banana")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad month: status = %d, want 400", w.Code)
	}
}

func TestGetRange_Validation(t *testing.T) {
	db := newTestDB(t)
	user := seedTestUser(t, db, 2000)
	r := newTestRouter(t, db, user.ID)

	w := doGET(t, r, "/api/analytics/range?start_date=2024-03-10&end_date=2024-03-01")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("reversed range: status = %d, want 400", w.Code)
	}
	w = doGET(t, r, "/api/analytics/range?start_date=2024-03-01")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing end_date: status = %d, want 400", w.Code)
	}
	w = doGET(t, r, "/api/analytics/range?start_date=2024-03-01&end_date=2024-03-07")
	if w.Code != http.StatusOK {
		t.Fatalf("valid range: status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestGetProgress_PeriodValidation(t *testing.T) {
	db := newTestDB(t)
	user := seedTestUser(t, db, 2000)
	r := newTestRouter(t, db, user.ID)

	w := doGET(t, r, "/api/analytics/progress?period=abc")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("non-numeric period: status = %d, want 400", w.Code)
	}
	w = doGET(t, r, "/api/analytics/progress?period=-5")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("negative period: status = %d, want 400", w.Code)
	}
	w = doGET(t, r, "/api/analytics/progress")
	if w.Code != http.StatusOK {
		t.Fatalf("default period: status = %d, body = %s", w.Code, w.Body.String())
	}
	var body struct {
		Period        string `json:"period"`
		DailyProgress []any  `json:"daily_progress"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Period != "30 days" || len(body.DailyProgress) != 30 {
		t.Errorf("period = %s, days = %d", body.Period, len(body.DailyProgress))
	}
}

func TestGetSummary_EmptyAccount(t *testing.T) {
	db := newTestDB(t)
	user := seedTestUser(t, db, 2000)
	r := newTestRouter(t, db, user.ID)

	w := doGET(t, r, "/api/analytics/summary")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body struct {
		LoggingStats struct {
			TotalFoodLogs int64 `json:"total_food_logs"`
		} `json:"logging_stats"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.LoggingStats.TotalFoodLogs != 0 {
		t.Errorf("total logs = %d, want 0", body.LoggingStats.TotalFoodLogs)
	}
}

func TestLogFoodEndpoint(t *testing.T) {
	db := newTestDB(t)
	user := seedTestUser(t, db, 2000)
	r := newTestRouter(t, db, user.ID)

	payload := `{"food_name":"Banana","serving_size":120,"calories":105,"meal_type":"snack","consumed_at":"2024-03-01T16:00:00Z"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/food/log", newBody(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	// Validation failure surfaces field problems.
	bad := `{"food_name":"Bad","serving_size":100,"calories":-5}`
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/food/log", newBody(bad))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid payload: status = %d, want 400", w.Code)
	}
}
