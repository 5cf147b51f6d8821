package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/aigility/cloud-vault-service/internal/domain"
	"github.com/aigility/cloud-vault-service/internal/dto"
	"github.com/aigility/cloud-vault-service/pkg/app"
	"github.com/aigility/cloud-vault-service/pkg/code"
	"github.com/aigility/cloud-vault-service/pkg/timex"
	"github.com/aigility/cloud-vault-service/pkg/util"
)

// UserService covers account lifecycle and session issuing.
type UserService interface {
	Register(ctx context.Context, params *dto.UserCreateRequest, ip string) (*dto.UserDTO, error)
	Login(ctx context.Context, params *dto.UserLoginRequest, ip string) (*dto.UserDTO, error)
	ChangePassword(ctx context.Context, uid int64, params *dto.UserChangePasswordRequest) error
	ChangeEmail(ctx context.Context, uid int64, params *dto.UserChangeEmailRequest) error
	Info(ctx context.Context, uid int64) (*dto.UserDTO, error)

	// GetForWebsocket validates the user during websocket authorization.
	GetForWebsocket(ctx context.Context, uid int64) (*app.UserSelectEntity, error)
}

type userService struct {
	userRepo     domain.UserRepository
	tokenManager app.TokenManager
	config       *ServiceConfig
}

func NewUserService(userRepo domain.UserRepository, tokenManager app.TokenManager, config *ServiceConfig) UserService {
	return &userService{
		userRepo:     userRepo,
		tokenManager: tokenManager,
		config:       config,
	}
}

func (s *userService) domainToDTO(u *domain.User, token string) *dto.UserDTO {
	return &dto.UserDTO{
		UID:       u.UID,
		Email:     u.Email,
		Nickname:  u.Nickname,
		Token:     token,
		Avatar:    u.Avatar,
		CreatedAt: timex.Time(u.CreatedAt),
		UpdatedAt: timex.Time(u.UpdatedAt),
	}
}

func (s *userService) Register(ctx context.Context, params *dto.UserCreateRequest, ip string) (*dto.UserDTO, error) {
	if s.config != nil && !s.config.RegisterIsEnabled {
		return nil, code.ErrorUserRegisterDisabled
	}
	if params.Password != params.ConfirmPassword {
		return nil, code.ErrorUserPasswordMismatch
	}

	_, err := s.userRepo.GetByEmail(ctx, params.Email)
	if err == nil {
		return nil, code.ErrorUserAlreadyExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	hash, err := util.GeneratePasswordHash(params.Password)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}

	user, err := s.userRepo.Create(ctx, &domain.User{
		Email:    params.Email,
		Nickname: params.Nickname,
		Password: hash,
	})
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	token, err := s.tokenManager.Generate(user.UID, user.Nickname, ip)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}
	return s.domainToDTO(user, token), nil
}

func (s *userService) Login(ctx context.Context, params *dto.UserLoginRequest, ip string) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// same response as a wrong password, no account probing
			return nil, code.ErrorUserLoginFailed
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	if !util.CheckPasswordHash(params.Password, user.Password) {
		return nil, code.ErrorUserLoginFailed
	}

	token, err := s.tokenManager.Generate(user.UID, user.Nickname, ip)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}
	return s.domainToDTO(user, token), nil
}

func (s *userService) ChangePassword(ctx context.Context, uid int64, params *dto.UserChangePasswordRequest) error {
	if params.Password != params.ConfirmPassword {
		return code.ErrorUserPasswordMismatch
	}

	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorUserNotExists
		}
		return code.ErrorDBQuery.WithDetails(err.Error())
	}

	if !util.CheckPasswordHash(params.OldPassword, user.Password) {
		return code.ErrorUserOldPasswordIncorrect
	}

	hash, err := util.GeneratePasswordHash(params.Password)
	if err != nil {
		return code.ErrorServerInternal.WithDetails(err.Error())
	}
	user.Password = hash

	if err := s.userRepo.Update(ctx, user); err != nil {
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	return nil
}

func (s *userService) ChangeEmail(ctx context.Context, uid int64, params *dto.UserChangeEmailRequest) error {
	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorUserNotExists
		}
		return code.ErrorDBQuery.WithDetails(err.Error())
	}

	if !util.CheckPasswordHash(params.Password, user.Password) {
		return code.ErrorUserLoginFailed
	}

	if existing, err := s.userRepo.GetByEmail(ctx, params.Email); err == nil && existing.UID != uid {
		return code.ErrorUserAlreadyExists
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return code.ErrorDBQuery.WithDetails(err.Error())
	}

	user.Email = params.Email
	if err := s.userRepo.Update(ctx, user); err != nil {
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	return nil
}

func (s *userService) Info(ctx context.Context, uid int64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorUserNotExists
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return s.domainToDTO(user, ""), nil
}

func (s *userService) GetForWebsocket(ctx context.Context, uid int64) (*app.UserSelectEntity, error) {
	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	return &app.UserSelectEntity{
		UID:      user.UID,
		Email:    user.Email,
		Nickname: user.Nickname,
		Avatar:   user.Avatar,
	}, nil
}
