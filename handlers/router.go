package handlers

import (
	"net/http"

	"himpunan-cms/config"
	"himpunan-cms/middleware"

	"github.com/gin-gonic/gin"
)

// NewRouter wires the route tree. Kept out of main so the handler
// tests can run against the exact same routing.
func NewRouter(
	cfg *config.Config,
	authHandler *AuthHandler,
	userHandler *UserHandler,
	articleHandler *ArticleHandler,
	categoryHandler *CategoryHandler,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.GET("/verify-email/:token", authHandler.VerifyEmail)
			auth.POST("/forgot-password", authHandler.ForgotPassword)
			auth.PUT("/forgot-password/:token/verify", authHandler.VerifyForgotPassword)
			auth.PUT("/forgot-password/:token/reset", authHandler.ResetPassword)
		}

		// Protected routes
		protected := v1.Group("/")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			users := protected.Group("/users")
			{
				users.POST("", userHandler.Create)
				users.GET("", userHandler.FindAll)
				users.GET("/me", userHandler.FindMe)
				users.GET("/:id", userHandler.FindOne)
				users.PUT("/:id/info", userHandler.UpdateInfo)
				users.PUT("/:id/password", userHandler.UpdatePassword)
				users.PUT("/:id/role", userHandler.UpdateRole)
				users.DELETE("/:id", userHandler.Delete)
			}

			articles := protected.Group("/articles")
			{
				articles.POST("", articleHandler.Create)
				articles.PUT("/:id", articleHandler.Update)
				articles.PUT("/:id/publish", articleHandler.UpdatePublish)
				articles.DELETE("/:id", articleHandler.Delete)
			}

			categories := protected.Group("/categories")
			{
				categories.POST("", categoryHandler.Create)
				categories.PUT("/:id", categoryHandler.Update)
				categories.DELETE("/:id", categoryHandler.Delete)
			}
		}

		// Public article routes
		public := v1.Group("/public")
		{
			public.GET("/articles", articleHandler.GetAll)
			public.GET("/articles/slugs", articleHandler.GetAllSlug)
			public.GET("/articles/slug/:slug", articleHandler.GetBySlug)
			public.GET("/articles/:id", articleHandler.GetByID)
		}

		// Public category routes
		v1.GET("/categories", categoryHandler.FindAll)
		v1.GET("/categories/:id", categoryHandler.FindOne)
	}

	return router
}
