package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zainzaheer06/calories-app/config"
	"github.com/zainzaheer06/calories-app/controllers"
	"github.com/zainzaheer06/calories-app/middlewares"
	"github.com/zainzaheer06/calories-app/services"
)

func SetupRouter(db *gorm.DB, cfg config.Engine) *gin.Engine {
	store := services.NewGormRecordStore(db)
	nutrition := services.NewNutritionService(store, cfg)
	analytics := services.NewAnalyticsService(store, cfg)
	foodLogs := services.NewFoodLogService(db)

	analyticsCtrl := controllers.NewAnalyticsController(nutrition, analytics)
	foodCtrl := controllers.NewFoodController(foodLogs, nutrition)
	userCtrl := controllers.NewUserController(db, cfg)

	r := gin.New()
	r.Use(gin.Recovery(), middlewares.RequestID(), middlewares.Logger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware(db))
	{
		food := api.Group("/food")
		{
			food.POST("/log", foodCtrl.LogFood)
			food.GET("/logs", foodCtrl.ListLogs)
			food.PUT("/logs/:id", foodCtrl.UpdateLog)
			food.DELETE("/logs/:id", foodCtrl.DeleteLog)
			food.GET("/most-eaten", foodCtrl.MostEaten)
			food.POST("/custom", foodCtrl.CreateCustomFood)
			food.GET("/custom", foodCtrl.ListCustomFoods)
		}

		analytics := api.Group("/analytics")
		{
			analytics.GET("/daily/:date", analyticsCtrl.GetDaily)
			analytics.GET("/weekly", analyticsCtrl.GetWeekly)
			analytics.GET("/monthly", analyticsCtrl.GetMonthly)
			analytics.GET("/range", analyticsCtrl.GetRange)
			analytics.GET("/summary", analyticsCtrl.GetSummary)
			analytics.GET("/progress", analyticsCtrl.GetProgress)
			analytics.GET("/goal-adherence", analyticsCtrl.GetGoalAdherence)
		}

		user := api.Group("/user")
		{
			user.GET("/profile", userCtrl.GetProfile)
			user.PUT("/profile", userCtrl.UpdateProfile)
		}
	}

	return r
}
