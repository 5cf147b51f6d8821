package api_router

import (
	"github.com/gin-gonic/gin"

	"github.com/aigility/cloud-vault-service/internal/app"
	pkgapp "github.com/aigility/cloud-vault-service/pkg/app"
	"github.com/aigility/cloud-vault-service/pkg/code"
)

// VersionHandler reports the server build version.
type VersionHandler struct {
	*Handler
}

func NewVersionHandler(a *app.App) *VersionHandler {
	return &VersionHandler{Handler: NewHandler(a)}
}

// ServerVersion returns the build version payload.
// @Summary Server version
// @Tags System
// @Produce json
// @Router /api/version [get]
func (h *VersionHandler) ServerVersion(c *gin.Context) {
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(h.App.Version()))
}
