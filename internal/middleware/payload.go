package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MaxPayloadBytes is the request body ceiling applied to mutating endpoints.
const MaxPayloadBytes = 1 << 20 // 1 MB

// PayloadSizeLimit caps the request body at limit bytes. Reading past the
// cap makes the JSON binding fail, which the handlers surface as a 400.
func PayloadSizeLimit(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > limit {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": "Request payload too large",
			})
			c.Abort()
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
