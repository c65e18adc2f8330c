package api

import (
	"timecard-report/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes
func SetupRoutes(handlers *Handlers, sessions middleware.SessionValidator) *gin.Engine {
	router := gin.Default()

	// Add CORS middleware
	router.Use(corsMiddleware())

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", handlers.LoginHandler)
			auth.GET("/me", middleware.JWTAuth(sessions), handlers.MeHandler)
			auth.GET("/verify", middleware.JWTAuth(sessions), handlers.VerifyHandler)
		}

		// Everything under /timecard acts on behalf of the session's employee
		timecard := api.Group("/timecard")
		timecard.Use(middleware.JWTAuth(sessions))
		{
			timecard.POST("/punch", handlers.PunchHandler)
			timecard.GET("/entries", handlers.EntriesHandler)
			timecard.GET("/report", handlers.ReportHandler)
			timecard.GET("/report/:format", handlers.DownloadReportHandler)

			exports := timecard.Group("/exports")
			{
				exports.POST("", handlers.CreateExportHandler)
				exports.GET("/history", handlers.ExportHistoryHandler)
				exports.GET("/status/:taskId", handlers.ExportStatusHandler)
				exports.GET("/download/:taskId", handlers.DownloadExportHandler)
				exports.GET("/ws/:taskId", handlers.ExportStatusSocket)
			}
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return router
}

// corsMiddleware adds CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
