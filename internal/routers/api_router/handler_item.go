package api_router

import (
	"github.com/gin-gonic/gin"

	"github.com/aigility/cloud-vault-service/internal/app"
	"github.com/aigility/cloud-vault-service/internal/dto"
	pkgapp "github.com/aigility/cloud-vault-service/pkg/app"
	"github.com/aigility/cloud-vault-service/pkg/code"
	apperrors "github.com/aigility/cloud-vault-service/pkg/errors"
)

// ItemHandler serves the merged folder-plus-file listing the dashboard
// renders.
type ItemHandler struct {
	*Handler
}

func NewItemHandler(a *app.App) *ItemHandler {
	return &ItemHandler{Handler: NewHandler(a)}
}

// List returns the contents of a logical path. The virtual paths
// /favorites, /shared and /recent return file-only listings.
// @Summary List items at a path
// @Tags Item
// @Security UserAuthToken
// @Param path query string false "Logical path"
// @Success 200 {object} pkgapp.Res{data=dto.ItemListDTO}
// @Router /api/items [get]
func (h *ItemHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.ItemListRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	ctx := c.Request.Context()
	uid := pkgapp.GetUID(c)
	listing, err := h.App.ItemService.List(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "ItemHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(listing))
}
