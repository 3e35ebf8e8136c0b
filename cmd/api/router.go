package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bookcatalog-backend/internal/shared/middleware"
	"bookcatalog-backend/internal/shared/response"
	"bookcatalog-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Identity runs globally: it attaches the caller when a valid token is
	// present and stays silent otherwise, so public reads work unauthenticated.
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
		middleware.Identity(c.JWTManager),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		v1.GET("/users/me", middleware.RequireAuth(), c.UserHandler.Me)
		setupAuthorRoutes(v1, c)
		setupBookRoutes(v1, c)
		setupAdminRoutes(v1, c)
	}

	return router
}

func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/signup", c.UserHandler.Signup)
		auth.POST("/login", c.UserHandler.Login)
	}
}

func setupAuthorRoutes(v1 *gin.RouterGroup, c *container.Container) {
	authors := v1.Group("/authors")
	{
		authors.GET("", c.AuthorHandler.GetAll)
		authors.GET("/:id", c.AuthorHandler.GetByID)
		authors.POST("", middleware.Authorize(middleware.OpAuthorCreate), c.AuthorHandler.Create)
		authors.PUT("/:id", middleware.Authorize(middleware.OpAuthorUpdate), c.AuthorHandler.Update)
		authors.DELETE("/:id", middleware.Authorize(middleware.OpAuthorDelete), c.AuthorHandler.Delete)
		authors.POST("/:id/photo", middleware.Authorize(middleware.OpAuthorUploadPhoto), c.AuthorHandler.UploadPhoto)
		authors.POST("/:id/reviews", middleware.Authorize(middleware.OpReviewAdd), c.ReviewHandler.AddAuthorReview)
	}
}

func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container) {
	books := v1.Group("/books")
	{
		books.GET("", c.BookHandler.GetAll)
		books.GET("/:id", c.BookHandler.GetByID)
		books.POST("", middleware.Authorize(middleware.OpBookCreate), c.BookHandler.Create)
		books.PUT("/:id", middleware.Authorize(middleware.OpBookUpdate), c.BookHandler.Update)
		books.DELETE("/:id", middleware.Authorize(middleware.OpBookDelete), c.BookHandler.Delete)
		books.POST("/:id/cover", middleware.Authorize(middleware.OpBookUploadCover), c.BookHandler.UploadCover)
		books.POST("/:id/reviews", middleware.Authorize(middleware.OpReviewAdd), c.ReviewHandler.AddBookReview)
	}
}

func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	admin := v1.Group("/admin")
	{
		admin.PUT("/users/:id/role", middleware.Authorize(middleware.OpUserSetRole), c.UserHandler.SetRole)
		admin.GET("/books/export", middleware.Authorize(middleware.OpCatalogExport), c.BookHandler.Export)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
		defer cancel()

		status := gin.H{
			"status":   "ok",
			"version":  c.Config.App.Version,
			"postgres": "up",
			"mongo":    "up",
			"redis":    "up",
		}
		healthy := true

		if err := c.DB.HealthCheck(checkCtx); err != nil {
			status["postgres"] = "down"
			healthy = false
		}
		if err := c.Mongo.HealthCheck(checkCtx); err != nil {
			status["mongo"] = "down"
			healthy = false
		}
		if err := c.Cache.Ping(checkCtx); err != nil {
			status["redis"] = "down"
		}

		if !healthy {
			status["status"] = "degraded"
			response.ErrorWithDetails(ctx, http.StatusServiceUnavailable, "UNHEALTHY", "dependency check failed", status)
			return
		}
		response.Success(ctx, http.StatusOK, status)
	}
}
