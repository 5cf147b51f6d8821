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

// UserHandler serves the account endpoints.
type UserHandler struct {
	*Handler
}

func NewUserHandler(a *app.App) *UserHandler {
	return &UserHandler{Handler: NewHandler(a)}
}

// Register creates an account and returns a fresh token. Registration
// may be disabled in the server settings.
// @Summary User registration
// @Tags User
// @Accept json
// @Produce json
// @Param params body dto.UserCreateRequest true "Register Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.UserDTO}
// @Router /api/user/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.UserCreateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("UserHandler.Register.BindAndValid", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	ctx := c.Request.Context()
	userDTO, err := h.App.UserService.Register(ctx, params, c.ClientIP())
	if err != nil {
		h.logError(ctx, "UserHandler.Register", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(userDTO))
}

// Login checks credentials and returns a token.
// @Summary User login
// @Tags User
// @Accept json
// @Produce json
// @Param params body dto.UserLoginRequest true "Login Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.UserDTO}
// @Router /api/user/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.UserLoginRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("UserHandler.Login.BindAndValid", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	ctx := c.Request.Context()
	userDTO, err := h.App.UserService.Login(ctx, params, c.ClientIP())
	if err != nil {
		h.logError(ctx, "UserHandler.Login", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(userDTO))
}

// ChangePassword verifies the old password and stores the new one.
// @Summary Change password
// @Tags User
// @Security UserAuthToken
// @Router /api/user/change_password [post]
func (h *UserHandler) ChangePassword(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.UserChangePasswordRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	ctx := c.Request.Context()
	uid := pkgapp.GetUID(c)
	if err := h.App.UserService.ChangePassword(ctx, uid, params); err != nil {
		h.logError(ctx, "UserHandler.ChangePassword", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// ChangeEmail moves the account to a new address after a password
// check.
// @Summary Change email
// @Tags User
// @Security UserAuthToken
// @Router /api/user/change_email [post]
func (h *UserHandler) ChangeEmail(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.UserChangeEmailRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	ctx := c.Request.Context()
	uid := pkgapp.GetUID(c)
	if err := h.App.UserService.ChangeEmail(ctx, uid, params); err != nil {
		h.logError(ctx, "UserHandler.ChangeEmail", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// Info returns the current account, token omitted.
// @Summary Current user info
// @Tags User
// @Security UserAuthToken
// @Router /api/user/info [get]
func (h *UserHandler) Info(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	ctx := c.Request.Context()
	uid := pkgapp.GetUID(c)

	userDTO, err := h.App.UserService.Info(ctx, uid)
	if err != nil {
		h.logError(ctx, "UserHandler.Info", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(userDTO))
}

// Usage returns the account's file count and total stored bytes.
// @Summary Storage usage
// @Tags User
// @Security UserAuthToken
// @Router /api/user/usage [get]
func (h *UserHandler) Usage(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	ctx := c.Request.Context()
	uid := pkgapp.GetUID(c)

	usage, err := h.App.FileService.Usage(ctx, uid)
	if err != nil {
		h.logError(ctx, "UserHandler.Usage", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(usage))
}
