package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zainzaheer06/calories-app/services"
	"github.com/zainzaheer06/calories-app/utils"
)

type AnalyticsController struct {
	Nutrition *services.NutritionService
	Analytics *services.AnalyticsService
}

func NewAnalyticsController(nutrition *services.NutritionService, analytics *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{Nutrition: nutrition, Analytics: analytics}
}

// GetDaily returns the summary for a single date: GET /api/analytics/daily/:date
func (h *AnalyticsController) GetDaily(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	day, err := utils.ParseDate(c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := h.Nutrition.DaySummary(c.Request.Context(), userID, day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetWeekly returns a Monday-to-Sunday summary. start_date defaults to the
// Monday of the current week and is snapped to a Monday when given.
func (h *AnalyticsController) GetWeekly(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	weekStart := utils.StartOfWeek(time.Now().UTC())
	if v := c.Query("start_date"); v != "" {
		d, err := utils.ParseDate(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		weekStart = utils.StartOfWeek(d)
	}

	out, err := h.Nutrition.WeekSummary(c.Request.Context(), userID, weekStart)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetMonthly returns a calendar-month summary. Accepts month=YYYY-MM or
// year= and month= numbers; defaults to the current month.
func (h *AnalyticsController) GetMonthly(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	now := time.Now().UTC()
	year, month := now.Year(), int(now.Month())

	if v := c.Query("month"); v != "" {
		if t, err := time.Parse("2006-01", v); err == nil {
			year, month = t.Year(), int(t.Month())
		} else if m, err := strconv.Atoi(v); err == nil {
			month = m
			if y := c.Query("year"); y != "" {
				yy, err := strconv.Atoi(y)
				if err != nil {
					c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
					return
				}
				year = yy
			}
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month, use YYYY-MM or a number"})
			return
		}
	}

	out, err := h.Nutrition.MonthSummary(c.Request.Context(), userID, year, month)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetRange returns a custom-range summary: ?start_date=...&end_date=...
func (h *AnalyticsController) GetRange(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	start, err := utils.ParseDate(c.Query("start_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date: " + err.Error()})
		return
	}
	end, err := utils.ParseDate(c.Query("end_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date: " + err.Error()})
		return
	}

	out, err := h.Nutrition.RangeSummary(c.Request.Context(), userID, start, end)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrInvalidRange) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetSummary returns the all-time account summary.
func (h *AnalyticsController) GetSummary(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	out, err := h.Analytics.AccountSummary(c.Request.Context(), userID, time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetProgress returns the daily series plus trend over ?period= days
// (default 30).
func (h *AnalyticsController) GetProgress(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	days := 30
	if v := c.Query("period"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "period must be a number of days"})
			return
		}
		days = n
	}

	out, err := h.Analytics.ProgressReport(c.Request.Context(), userID, days, time.Now().UTC())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrInvalidPeriod) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetGoalAdherence evaluates the calorie goal over ?days= (default from
// engine config).
func (h *AnalyticsController) GetGoalAdherence(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	days := 0
	if v := c.Query("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a number"})
			return
		}
		days = n
	}

	out, err := h.Analytics.GoalAdherence(c.Request.Context(), userID, days, time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

func userIDFromCtx(c *gin.Context) (uint, bool) {
	v, ok := c.Get("userID")
	if !ok {
		return 0, false
	}
	switch id := v.(type) {
	case uint:
		return id, true
	case int:
		return uint(id), true
	case int64:
		return uint(id), true
	default:
		return 0, false
	}
}
