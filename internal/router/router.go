package router

import (
	"amthub/internal/handlers"
	"amthub/internal/middleware"
	"amthub/internal/models"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Handlers
	authHandler := handlers.NewAuthHandler()
	userHandler := handlers.NewUserHandler()
	chapterHandler := handlers.NewChapterHandler()
	eventHandler := handlers.NewEventHandler()
	badgeHandler := handlers.NewBadgeHandler()

	admin := middleware.RequireRole(models.RoleAdmin, models.RoleSuperAdmin)
	leadership := middleware.RequireRole(models.LeadershipRoles...)

	// Email-link landing pages
	r.GET("/verify-email/:token", authHandler.VerifyEmailPage)
	r.GET("/reset-password/:token", authHandler.ShowResetPassword)
	r.POST("/reset-password/:token", authHandler.ResetPasswordForm)

	api := r.Group("/api")

	// Auth
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.POST("/forgot-password", authHandler.ForgotPassword)
		auth.POST("/reset-password", authHandler.ResetPassword)
		auth.POST("/verify-email", authHandler.VerifyEmail)

		auth.GET("/google", authHandler.GoogleLogin)
		auth.GET("/google/callback", authHandler.GoogleCallback)

		me := auth.Group("")
		me.Use(middleware.AuthRequired())
		{
			me.GET("/me", authHandler.Me)
			me.PUT("/me", authHandler.UpdateProfile)
			me.PUT("/me/preferences", authHandler.UpdatePreferences)
			me.POST("/change-password", authHandler.ChangePassword)
			me.POST("/resend-verification", authHandler.ResendVerification)
		}
	}

	// Users
	users := api.Group("/users")
	users.Use(middleware.AuthRequired())
	{
		users.GET("", userHandler.List)
		users.GET("/leaders", userHandler.Leaders)
		users.GET("/stats", userHandler.StatsOverview)
		users.GET("/chapter/:chapterId", userHandler.ByChapter)
		users.GET("/:id", userHandler.Get)
		users.GET("/:id/badges", badgeHandler.UserBadges)
		users.POST("/:id/chapter", userHandler.JoinChapter)
		users.DELETE("/:id/chapter", userHandler.LeaveChapter)

		users.PUT("/:id", admin, userHandler.Update)
		users.DELETE("/:id", admin, userHandler.Delete)
	}

	// Chapters
	chapters := api.Group("/chapters")
	{
		chapters.GET("", chapterHandler.List)
		chapters.GET("/stats", chapterHandler.StatsOverview)
		chapters.GET("/country/:country", chapterHandler.ByCountry)
		chapters.GET("/:id", chapterHandler.Get)
		chapters.GET("/:id/events", eventHandler.ByChapter)

		chapters.POST("", middleware.AuthRequired(), chapterHandler.Create)

		managed := chapters.Group("")
		managed.Use(middleware.AuthRequired(), admin)
		{
			managed.GET("/pending", chapterHandler.Pending)
			managed.PUT("/:id", chapterHandler.Update)
			managed.DELETE("/:id", chapterHandler.Delete)
			managed.POST("/:id/approve", chapterHandler.Approve)
			managed.POST("/:id/leaders", chapterHandler.AddLeader)
			managed.DELETE("/:id/leaders/:userId", chapterHandler.RemoveLeader)
		}
	}

	// Events
	events := api.Group("/events")
	{
		events.GET("", eventHandler.List)
		events.GET("/upcoming", eventHandler.Upcoming)
		events.GET("/stats", eventHandler.StatsOverview)
		events.GET("/:id", eventHandler.Get)

		attend := events.Group("")
		attend.Use(middleware.AuthRequired())
		{
			attend.POST("/:id/register", eventHandler.Register)
			attend.DELETE("/:id/register", eventHandler.Unregister)
			attend.POST("/:id/feedback", eventHandler.SubmitFeedback)
		}

		managed := events.Group("")
		managed.Use(middleware.AuthRequired(), leadership)
		{
			managed.POST("", eventHandler.Create)
			managed.PUT("/:id", eventHandler.Update)
			managed.DELETE("/:id", eventHandler.Delete)
			managed.POST("/:id/attendance", eventHandler.MarkAttendance)
		}
	}

	// Badges
	badges := api.Group("/badges")
	{
		badges.GET("", badgeHandler.List)
		badges.GET("/leaderboard", badgeHandler.Leaderboard)
		badges.GET("/stats", badgeHandler.StatsOverview)
		badges.GET("/:id", badgeHandler.Get)
		badges.GET("/:id/eligibility/:userId", badgeHandler.CheckEligibility)
		badges.GET("/eligibility/:userId", badgeHandler.Eligibility)

		managed := badges.Group("")
		managed.Use(middleware.AuthRequired(), admin)
		{
			managed.POST("", badgeHandler.Create)
			managed.PUT("/:id", badgeHandler.Update)
			managed.DELETE("/:id", badgeHandler.Delete)
			managed.POST("/award", badgeHandler.Award)
			managed.POST("/auto-award", badgeHandler.AutoAward)
		}
	}
}
