package routes

import (
	"user-posts-api/internal/cache"
	"user-posts-api/internal/handlers"
	"user-posts-api/internal/middleware"
	"user-posts-api/internal/models"
	"user-posts-api/internal/realtime"
	"user-posts-api/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Setup wires repositories, middleware and handlers onto a gin engine. The
// post-list cache is owned by the caller so its lifecycle (and shutdown
// sweep) stays at the composition root.
func Setup(db *gorm.DB, postCache cache.Cache[[]models.Post]) *gin.Engine {
	users := repository.NewUserRepository(db)
	posts := repository.NewPostRepository(db, postCache)
	hub := realtime.NewHub()

	authHandler := handlers.NewAuthHandler(users)
	postHandler := handlers.NewPostHandler(posts, hub)
	wsHandler := handlers.NewWSHandler(hub)

	// Create a new GIN Router
	ginRouter := gin.Default()

	// CORS middleware (for frontend integration)
	ginRouter.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "User Posts API is running",
		})
	})

	// Public routes (no authentication required)
	api := ginRouter.Group("/api")
	api.Use(middleware.PayloadSizeLimit(middleware.MaxPayloadBytes))
	{
		api.POST("/signup", authHandler.Signup)
		api.POST("/login", authHandler.Login)
	}

	// Protected routes (authentication required)
	protectedRoutes := api.Group("")
	protectedRoutes.Use(middleware.JWTAuthMiddleware(users))
	{
		// Post endpoints
		protectedRoutes.GET("/posts", postHandler.GetPosts)
		protectedRoutes.POST("/posts", postHandler.CreatePost)
		protectedRoutes.DELETE("/posts", postHandler.DeletePost)
	}

	// WebSocket feed of post events
	ws := ginRouter.Group("/ws")
	ws.Use(middleware.JWTAuthMiddleware(users))
	ws.GET("", wsHandler.Serve)

	return ginRouter
}
