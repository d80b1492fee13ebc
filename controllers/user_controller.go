package controllers

import (
	"errors"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zainzaheer06/calories-app/config"
	"github.com/zainzaheer06/calories-app/models"
	"github.com/zainzaheer06/calories-app/utils"
)

type UserController struct {
	DB  *gorm.DB
	Cfg config.Engine
}

func NewUserController(db *gorm.DB, cfg config.Engine) *UserController {
	return &UserController{DB: db, Cfg: cfg}
}

// GetProfile returns the profile plus derived health numbers when the
// profile is complete enough to compute them.
func (h *UserController) GetProfile(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var user models.User
	if err := h.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	body := gin.H{"profile": user.ToProfile()}

	if user.Height != nil && user.Weight != nil {
		if bmi, err := utils.CalculateBMI(*user.Height, *user.Weight); err == nil {
			body["bmi"] = math.Round(bmi*10) / 10
			body["bmi_category"] = utils.BMICategory(bmi)
		}
	}
	if suggested, ok := user.SuggestedDailyCalories(h.Cfg.ActivityMultipliers); ok {
		body["suggested_daily_calories"] = suggested
	}

	c.JSON(http.StatusOK, body)
}

type updateProfileInput struct {
	Name             *string  `json:"name"`
	Age              *int     `json:"age"`
	Weight           *float64 `json:"weight"`
	Height           *float64 `json:"height"`
	Gender           *string  `json:"gender"`
	ActivityLevel    *string  `json:"activity_level"`
	GoalType         *string  `json:"goal_type"`
	DailyCalorieGoal *int     `json:"daily_calorie_goal"`
}

// UpdateProfile patches profile fields. Omitted fields are untouched.
func (h *UserController) UpdateProfile(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var in updateProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	gender, activity, goalType := "", "", ""
	if in.Gender != nil {
		gender = *in.Gender
	}
	if in.ActivityLevel != nil {
		activity = *in.ActivityLevel
	}
	if in.GoalType != nil {
		goalType = *in.GoalType
	}
	if problems := utils.ValidateProfile(in.Age, in.Weight, in.Height, gender, activity, goalType, in.DailyCalorieGoal); len(problems) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": problems})
		return
	}

	var user models.User
	if err := h.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Age != nil {
		user.Age = in.Age
	}
	if in.Weight != nil {
		user.Weight = in.Weight
	}
	if in.Height != nil {
		user.Height = in.Height
	}
	if in.Gender != nil {
		user.Gender = *in.Gender
	}
	if in.ActivityLevel != nil {
		user.ActivityLevel = *in.ActivityLevel
	}
	if in.GoalType != nil {
		user.GoalType = *in.GoalType
	}
	if in.DailyCalorieGoal != nil {
		user.DailyCalorieGoal = in.DailyCalorieGoal
	}

	if err := h.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": user.ToProfile()})
}
