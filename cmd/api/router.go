package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fitlink-backend/internal/shared/middleware"
	"fitlink-backend/internal/shared/response"
	"fitlink-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupProfileRoutes(v1, c)
		setupAdminRoutes(v1, c)
		setupPostingRoutes(v1, c)
		setupApplicationRoutes(v1, c)
		setupConversationRoutes(v1, c)
		setupNotificationRoutes(v1, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
		auth.POST("/refresh", c.UserHandler.RefreshToken)
		auth.GET("/me", middleware.AuthMiddleware(c.JWTManager), c.UserHandler.Me)
	}
}

// ========================================
// PROFILE ROUTES
// ========================================
func setupProfileRoutes(v1 *gin.RouterGroup, c *container.Container) {
	profiles := v1.Group("/profiles")
	{
		// Public directory and profile pages
		profiles.GET("", c.ProfileHandler.Directory)
		profiles.GET("/:id", c.ProfileHandler.GetPublic)
		profiles.GET("/handle/:handle", c.ProfileHandler.GetByHandle)
	}

	own := v1.Group("/profiles/me")
	own.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		own.GET("", c.ProfileHandler.GetOwn)
		own.PUT("/draft", c.ProfileHandler.SaveDraft)
		own.POST("/submit", c.ProfileHandler.Submit)
		own.POST("/archive", c.ProfileHandler.Archive)
	}
}

// ========================================
// ADMIN MODERATION ROUTES
// ========================================
func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	admin := v1.Group("/admin/moderation")
	admin.Use(middleware.AuthMiddleware(c.JWTManager), middleware.AdminMiddleware())
	{
		admin.GET("/pending", c.ModerationHandler.ListPending)
		admin.POST("/profiles/:id/verify", c.ModerationHandler.Verify)
		admin.POST("/profiles/:id/reject", c.ModerationHandler.Reject)
	}
}

// ========================================
// POSTING ROUTES
// ========================================
func setupPostingRoutes(v1 *gin.RouterGroup, c *container.Container) {
	postings := v1.Group("/postings")
	{
		postings.GET("", c.PostingHandler.List)
		postings.GET("/:id", c.PostingHandler.GetByID)
	}

	authed := v1.Group("/postings")
	authed.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		authed.POST("", c.PostingHandler.Create)
		authed.GET("/mine", c.PostingHandler.ListOwn)
		authed.PATCH("/:id/status", c.PostingHandler.UpdateStatus)
		authed.GET("/:id/applications", c.ApplicationHandler.ListByPosting)
	}
}

// ========================================
// APPLICATION ROUTES
// ========================================
func setupApplicationRoutes(v1 *gin.RouterGroup, c *container.Container) {
	applications := v1.Group("/applications")
	applications.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		applications.POST("", c.ApplicationHandler.Apply)
		applications.POST("/invite", c.ApplicationHandler.Invite)
		applications.GET("/mine", c.ApplicationHandler.ListOwn)
		applications.GET("/:id", c.ApplicationHandler.GetByID)
		applications.PATCH("/:id/status", c.ApplicationHandler.UpdateStatus)
	}
}

// ========================================
// CONVERSATION ROUTES
// ========================================
func setupConversationRoutes(v1 *gin.RouterGroup, c *container.Container) {
	conversations := v1.Group("/conversations")
	conversations.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		conversations.POST("", c.ChatHandler.OpenConversation)
		conversations.GET("", c.ChatHandler.ListConversations)
		conversations.POST("/:id/messages", c.ChatHandler.SendMessage)
		conversations.GET("/:id/messages", c.ChatHandler.ListMessages)
		conversations.POST("/:id/read", c.ChatHandler.MarkRead)
	}
}

// ========================================
// NOTIFICATION ROUTES
// ========================================
func setupNotificationRoutes(v1 *gin.RouterGroup, c *container.Container) {
	notifications := v1.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		notifications.GET("", c.NotificationHandler.List)
		notifications.GET("/unread-count", c.NotificationHandler.UnreadCount)
		notifications.POST("/:id/read", c.NotificationHandler.MarkRead)
		notifications.POST("/read-all", c.NotificationHandler.MarkAllRead)
	}
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()

		if err := c.DB.HealthCheck(checkCtx); err != nil {
			response.ErrorResponse(ctx, http.StatusServiceUnavailable, "SYS001", "database unavailable")
			return
		}

		response.Success(ctx, http.StatusOK, gin.H{
			"status":  "ok",
			"version": c.Config.App.Version,
		})
	}
}
