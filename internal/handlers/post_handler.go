package handlers

import (
	"encoding/json"
	"net/http"

	"user-posts-api/internal/middleware"
	"user-posts-api/internal/realtime"
	"user-posts-api/internal/repository"

	"github.com/gin-gonic/gin"
)

// CreatePostRequest represents the request payload for creating a post
type CreatePostRequest struct {
	Text string `json:"text" binding:"required,min=1"`
}

// DeletePostRequest identifies the post to delete by ID
type DeletePostRequest struct {
	PostID uint `json:"postID" binding:"required"`
}

// PostHandler serves the post CRUD endpoints.
type PostHandler struct {
	posts *repository.PostRepository
	hub   *realtime.Hub
}

func NewPostHandler(posts *repository.PostRepository, hub *realtime.Hub) *PostHandler {
	return &PostHandler{posts: posts, hub: hub}
}

// broadcast sends a post event to the owning user's websocket clients.
func (h *PostHandler) broadcast(eventType string, postID, userID uint) {
	evt := map[string]any{
		"type":    eventType,
		"postId":  postID,
		"userId":  userID,
		"version": 1,
	}
	if bytes, err := json.Marshal(evt); err == nil {
		h.hub.Broadcast(userID, bytes)
	}
}

// CreatePost handles POST /api/posts
// Creates a new post owned by the authenticated user
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User ID not found in token",
		})
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request. Non-empty text is required.",
		})
		return
	}

	post, err := h.posts.CreatePost(userID, req.Text)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create post",
		})
		return
	}

	h.broadcast("post_created", post.ID, userID)

	c.JSON(http.StatusCreated, gin.H{
		"postID":  post.ID,
		"message": "Post created successfully",
	})
}

// GetPosts handles GET /api/posts
// Returns the authenticated user's posts, newest first
func (h *PostHandler) GetPosts(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User ID not found in token",
		})
		return
	}

	posts, err := h.posts.ListPosts(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch posts",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":       posts,
		"total_count": len(posts),
	})
}

// DeletePost handles DELETE /api/posts
// Deletes a post only when it belongs to the authenticated user
func (h *PostHandler) DeletePost(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User ID not found in token",
		})
		return
	}

	var req DeletePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request. A positive postID is required.",
		})
		return
	}

	deleted, err := h.posts.DeletePost(userID, req.PostID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete post",
		})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Post not found or you don't have permission to delete it",
		})
		return
	}

	h.broadcast("post_deleted", req.PostID, userID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Post deleted successfully",
	})
}
