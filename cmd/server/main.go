package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"user-posts-api/internal/cache"
	"user-posts-api/internal/database"
	"user-posts-api/internal/models"
	"user-posts-api/internal/routes"
)

func main() {
	// Init database
	database.InitDB()

	// The post-list cache lives here so shutdown can sweep it
	postCache := cache.NewTTLCache[[]models.Post]()

	// Setup the routes (public and protected routes)
	ginRoutes := routes.Setup(database.GetDB(), postCache)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	log.Printf("Server starting on port :%s", port)
	log.Println("API endpoints:")
	log.Println("  POST   /api/signup")
	log.Println("  POST   /api/login")
	log.Println("  GET    /api/posts")
	log.Println("  POST   /api/posts")
	log.Println("  DELETE /api/posts")
	log.Println("  GET    /ws")
	log.Println("  GET    /health")

	server := &http.Server{
		Addr:    ":" + port,
		Handler: ginRoutes,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server: ", err)
		}
	}()

	// Wait for SIGINT/SIGTERM, then drain connections and sweep the cache
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Println("Server shutdown error:", err)
	}

	removed := postCache.SweepExpired()
	log.Printf("Swept %d expired cache entries", removed)
}
