package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/aigility/cloud-vault-service/pkg/app"
	"github.com/aigility/cloud-vault-service/pkg/code"
)

// NoFound is the catch-all route handler.
func NoFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		response := app.NewResponse(c)
		response.ToResponse(code.ErrorNotFoundAPI)
		c.Abort()
	}
}
