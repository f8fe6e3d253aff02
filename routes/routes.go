package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/tygam/khaosat-server/controllers"
	"github.com/tygam/khaosat-server/middleware"
)

func SetupRoutes(r *gin.Engine) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})
	r.GET("/health", controllers.HealthCheck)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			// bắt đầu đăng nhập thì chặn in-app browser ngay từ đầu
			auth.POST("/google", middleware.BlockInAppBrowser(), middleware.RateLimitLogin(), controllers.GoogleLogin)
			auth.GET("/google/url", middleware.BlockInAppBrowser(), controllers.GoogleAuthURL)
			// finalize của luồng redirect, gọi không có gì pending cũng an toàn
			auth.GET("/google/callback", controllers.GoogleCallback)
		}

		protected := api.Group("/")
		protected.Use(middleware.AuthJWT())
		{
			protected.GET("/me", controllers.Me)
			protected.POST("/responses", middleware.RateLimitSubmit(), controllers.SubmitResponse)
		}

		admin := protected.Group("/admin")
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("/responses", controllers.ListResponses)
			admin.DELETE("/responses/:id", controllers.DeleteResponse)
			admin.GET("/responses/export", controllers.ExportResponsesCSV)
			admin.POST("/responses/export-jobs", controllers.CreateExportJob)
			admin.GET("/export-jobs/:job_id", controllers.GetExportJob)
		}
	}
}
