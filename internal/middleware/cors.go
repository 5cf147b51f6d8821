package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Cors allows the web client to call the API cross-origin.
func Cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, Authorization, Token, Lang, X-Trace-ID")
		c.Header("Access-Control-Expose-Headers", "Content-Disposition, X-Trace-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
