package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/aigility/cloud-vault-service/pkg/app"
)

func AppInfoWithConfig(name string, version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("app_name", name)
		c.Set("app_version", version)
		c.Set("access_host", app.GetAccessHost(c))

		c.Next()
	}
}
