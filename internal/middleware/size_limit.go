package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SizeLimit function is a middleware that caps the request body at maxBodyBytes.
// Exceeding the cap produces http.MaxBytesError, usually surfaced as
// 413 request entity too large.
func SizeLimit(maxBodyBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		w := c.Writer

		c.Request.Body = http.MaxBytesReader(w, c.Request.Body, maxBodyBytes)

		c.Next()
	}
}
