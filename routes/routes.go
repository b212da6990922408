package routes

import (
	"conference-submission-api/controllers"
	"conference-submission-api/middleware"
	"conference-submission-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/login", controllers.Login)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Conference Submission API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Document uploads
			documents := protected.Group("/documents")
			{
				documents.POST("/upload", controllers.UploadDocument)
				documents.GET("/my", controllers.GetMyUploads)
				documents.GET("/:document_id", controllers.GetDocument)
				documents.GET("/:document_id/download", controllers.DownloadDocument)
				documents.DELETE("/:document_id", controllers.DeleteDocument)
				documents.POST("/:document_id/notes", controllers.AddDocumentNote)
				documents.POST("/:document_id/promote", controllers.PromoteDocument)

				// Per-document review verdicts (reviewers and admins only)
				documents.POST("/:document_id/review",
					middleware.RequireRole(models.RoleReviewer, models.RoleAdmin),
					controllers.RecordReview)
			}

			// Review cases
			submissions := protected.Group("/submissions")
			{
				submissions.GET("", controllers.GetSubmissions)
				submissions.GET("/:id", controllers.GetSubmission)
				submissions.POST("/:id/files", controllers.ResubmitFile)

				// Review desk views and decisions
				submissions.GET("/status/:status",
					middleware.RequireRole(models.RoleReviewer, models.RoleAdmin),
					controllers.GetSubmissionsByStatus)
				submissions.PUT("/:id/decision",
					middleware.RequireRole(models.RoleReviewer, models.RoleAdmin),
					controllers.DecideSubmission)
			}

			// Aggregated reports (review desk only)
			reports := protected.Group("/reports")
			reports.Use(middleware.RequireRole(models.RoleReviewer, models.RoleAdmin))
			{
				reports.GET("/conference", controllers.GetConferenceReport)
			}

			// Notifications
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", controllers.GetNotifications)
				notifications.PUT("/:id/read", controllers.MarkNotificationRead)
			}
		}
	}
}
