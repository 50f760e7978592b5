package routes

import (
	"os"

	"github.com/Lakshay1509/carheroz-tracker/config"
	"github.com/Lakshay1509/carheroz-tracker/controllers"
	"github.com/Lakshay1509/carheroz-tracker/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	controllers.Setup(config.DB)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}
	if origin := os.Getenv("CORS_ORIGIN"); origin != "" {
		allowedOrigins = append(allowedOrigins, origin)
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/logout", controllers.Logout)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Service record routes
		records := api.Group("/records")
		{
			records.GET("", controllers.ListRecords)
			records.POST("", controllers.CreateRecord)
			records.PUT("/:id", controllers.UpdateRecord)
			records.DELETE("/:id", controllers.DeleteRecord)
			records.GET("/export", controllers.ExportRecords)
			records.GET("/live", controllers.LiveRecords)
		}

		// Batch entry routes
		batch := api.Group("/batch")
		{
			batch.GET("", controllers.GetBatchSession)
			batch.PUT("/header", controllers.SetBatchHeader)
			batch.POST("/drafts", controllers.AddBatchDraft)
			batch.PATCH("/drafts/:draftId", controllers.UpdateBatchDraft)
			batch.DELETE("/drafts/:draftId", controllers.RemoveBatchDraft)
			batch.POST("/commit", controllers.CommitBatch)
		}
	}

	return r
}
