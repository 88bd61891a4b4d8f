package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"foodnest/pkg/utils"
)

const (
	DefaultMaxRequestSize = 12 << 20
)

// RequestSizeLimitMiddleware limits the size of incoming requests to maxSize
// bytes. The default leaves headroom above the image-upload cap.
func RequestSizeLimitMiddleware(maxSize int64) gin.HandlerFunc {
	if maxSize <= 0 {
		maxSize = DefaultMaxRequestSize
	}

	return func(c *gin.Context) {
		if c.Request.ContentLength > maxSize {
			utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, "Request body too large")
			c.Abort()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		c.Next()
	}
}
