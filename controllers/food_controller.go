package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/zainzaheer06/calories-app/models"
	"github.com/zainzaheer06/calories-app/services"
)

type FoodController struct {
	Logs      *services.FoodLogService
	Nutrition *services.NutritionService
}

func NewFoodController(logs *services.FoodLogService, nutrition *services.NutritionService) *FoodController {
	return &FoodController{Logs: logs, Nutrition: nutrition}
}

// LogFood creates an entry: POST /api/food/log
func (h *FoodController) LogFood(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var in services.LogFoodInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.Logs.LogFood(c.Request.Context(), userID, in)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": verr.Problems})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, entry.Response())
}

// ListLogs lists entries: GET /api/food/logs?date=&meal_type=&limit=
func (h *FoodController) ListLogs(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	f := services.ListFilter{
		Date:     c.Query("date"),
		MealType: c.Query("meal_type"),
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a number"})
			return
		}
		f.Limit = n
	}

	logs, totals, err := h.Logs.ListLogs(c.Request.Context(), userID, f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	responses := make([]models.FoodLogResponse, 0, len(logs))
	for i := range logs {
		responses = append(responses, logs[i].Response())
	}
	body := gin.H{"logs": responses, "count": len(responses)}
	if totals != nil {
		body["daily_totals"] = totals
	}
	c.JSON(http.StatusOK, body)
}

// UpdateLog patches an entry: PUT /api/food/logs/:id
func (h *FoodController) UpdateLog(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	logID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid log id"})
		return
	}

	var in services.UpdateLogInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.Logs.UpdateLog(c.Request.Context(), userID, uint(logID), in)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLogNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrInvalidMealType), errors.Is(err, services.ErrNegativeServings):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, entry.Response())
}

// DeleteLog removes an entry: DELETE /api/food/logs/:id
func (h *FoodController) DeleteLog(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	logID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid log id"})
		return
	}

	if err := h.Logs.DeleteLog(c.Request.Context(), userID, uint(logID)); err != nil {
		if errors.Is(err, services.ErrLogNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "food log deleted"})
}

// MostEaten ranks frequently logged foods: GET /api/food/most-eaten?limit=
func (h *FoodController) MostEaten(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	limit := 10
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a number"})
			return
		}
		limit = n
	}

	rows, err := h.Nutrition.MostEatenFoods(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"foods": rows})
}

// CreateCustomFood stores a user-defined food: POST /api/food/custom
func (h *FoodController) CreateCustomFood(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var in services.CustomFoodInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	food, err := h.Logs.CreateCustomFood(c.Request.Context(), userID, in)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": verr.Problems})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, food.Response())
}

// ListCustomFoods lists the user's foods: GET /api/food/custom
func (h *FoodController) ListCustomFoods(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	foods, err := h.Logs.ListCustomFoods(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	responses := make([]models.CustomFoodResponse, 0, len(foods))
	for i := range foods {
		responses = append(responses, foods[i].Response())
	}
	c.JSON(http.StatusOK, gin.H{"foods": responses, "count": len(responses)})
}
