package api_router

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aigility/cloud-vault-service/internal/app"
	"github.com/aigility/cloud-vault-service/internal/dto"
	pkgapp "github.com/aigility/cloud-vault-service/pkg/app"
	"github.com/aigility/cloud-vault-service/pkg/code"
	apperrors "github.com/aigility/cloud-vault-service/pkg/errors"
)

// FileHandler serves the single-file endpoints.
type FileHandler struct {
	*Handler
}

func NewFileHandler(a *app.App) *FileHandler {
	return &FileHandler{Handler: NewHandler(a)}
}

// Upload accepts one multipart file and stores it under the logical
// path from the form. Content goes to the object store first, the
// metadata row second.
// @Summary Upload a file
// @Tags File
// @Security UserAuthToken
// @Accept multipart/form-data
// @Param file formData file true "File content"
// @Param path formData string false "Destination folder path"
// @Success 200 {object} pkgapp.Res{data=dto.FileDTO}
// @Router /api/file [post]
func (h *FileHandler) Upload(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.FileUploadRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(err.Error()))
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		response.ToResponse(code.ErrorStorageUpload.WithDetails(err.Error()))
		return
	}
	defer src.Close()

	ctx := c.Request.Context()
	uid := pkgapp.GetUID(c)
	mimeType := fileHeader.Header.Get("Content-Type")

	fileDTO, err := h.App.FileService.Upload(ctx, uid, params, src, fileHeader.Filename, mimeType, fileHeader.Size)
	if err != nil {
		h.logError(ctx, "FileHandler.Upload", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	h.App.Logger().Info("file uploaded",
		zap.Int64("uid", uid),
		zap.String("name", fileDTO.Name),
		zap.Int64("size", fileDTO.Size))
	response.ToResponse(code.Success.WithData(fileDTO))
}

// Download streams a file's content by id.
// @Summary Download file content
// @Tags File
// @Security UserAuthToken
// @Param id query int true "File id"
// @Router /api/file/content [get]
func (h *FileHandler) Download(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.FileGetRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	ctx := c.Request.Context()
	uid := pkgapp.GetUID(c)

	content, meta, err := h.App.FileService.Download(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "FileHandler.Download", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	defer content.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", meta.Name))
	c.DataFromReader(http.StatusOK, meta.Size, meta.MimeType, content, nil)
}

// Delete removes the object first, the row second.
// @Summary Delete a file
// @Tags File
// @Security UserAuthToken
// @Router /api/file [delete]
func (h *FileHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.FileDeleteRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	ctx := c.Request.Context()
	uid := pkgapp.GetUID(c)
	if err := h.App.FileService.Delete(ctx, uid, params); err != nil {
		h.logError(ctx, "FileHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// ToggleFavorite flips the favorite flag and returns the updated row.
// @Summary Toggle favorite
// @Tags File
// @Security UserAuthToken
// @Router /api/file/favorite [put]
func (h *FileHandler) ToggleFavorite(c *gin.Context) {
	h.toggle(c, "FileHandler.ToggleFavorite", h.App.FileService.ToggleFavorite)
}

// ToggleShared flips the shared flag and returns the updated row.
// @Summary Toggle shared
// @Tags File
// @Security UserAuthToken
// @Router /api/file/shared [put]
func (h *FileHandler) ToggleShared(c *gin.Context) {
	h.toggle(c, "FileHandler.ToggleShared", h.App.FileService.ToggleShared)
}

func (h *FileHandler) toggle(c *gin.Context, method string, fn func(ctx context.Context, uid int64, params *dto.FileToggleRequest) (*dto.FileDTO, error)) {
	response := pkgapp.NewResponse(c)
	params := &dto.FileToggleRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	ctx := c.Request.Context()
	uid := pkgapp.GetUID(c)
	fileDTO, err := fn(ctx, uid, params)
	if err != nil {
		h.logError(ctx, method, err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(fileDTO))
}

// List returns the files directly under a logical path.
// @Summary List files
// @Tags File
// @Security UserAuthToken
// @Router /api/files [get]
func (h *FileHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.FileListRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	ctx := c.Request.Context()
	uid := pkgapp.GetUID(c)
	files, err := h.App.FileService.List(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "FileHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(files))
}
