package api_router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aigility/cloud-vault-service/internal/app"
	"github.com/aigility/cloud-vault-service/internal/dto"
	pkgapp "github.com/aigility/cloud-vault-service/pkg/app"
	"github.com/aigility/cloud-vault-service/pkg/code"
	apperrors "github.com/aigility/cloud-vault-service/pkg/errors"
)

// FolderHandler serves the folder endpoints.
type FolderHandler struct {
	*Handler
}

func NewFolderHandler(a *app.App) *FolderHandler {
	return &FolderHandler{Handler: NewHandler(a)}
}

// Create inserts a folder under the given path. Sibling name
// collisions are not rejected.
// @Summary Create a folder
// @Tags Folder
// @Security UserAuthToken
// @Accept json
// @Param params body dto.FolderCreateRequest true "Folder Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.FolderDTO}
// @Router /api/folder [post]
func (h *FolderHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.FolderCreateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	ctx := c.Request.Context()
	uid := pkgapp.GetUID(c)
	folderDTO, err := h.App.FolderService.Create(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "FolderHandler.Create", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(folderDTO))
}

// Delete removes a folder and everything under it, depth first, one
// child at a time. A mid-walk failure leaves a partial subtree.
// @Summary Delete a folder recursively
// @Tags Folder
// @Security UserAuthToken
// @Router /api/folder [delete]
func (h *FolderHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.FolderDeleteRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	ctx := c.Request.Context()
	uid := pkgapp.GetUID(c)
	if err := h.App.FolderService.DeleteRecursive(ctx, uid, params); err != nil {
		h.logError(ctx, "FolderHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	h.App.Logger().Info("folder deleted", zap.Int64("uid", uid), zap.Int64("id", params.ID))
	response.ToResponse(code.Success)
}
