// Package dto defines request parameters and response structs.
package dto

import "github.com/aigility/cloud-vault-service/pkg/timex"

// UserCreateRequest registration parameters.
type UserCreateRequest struct {
	Email           string `json:"email" form:"email" binding:"required,email"`
	Nickname        string `json:"nickname" form:"nickname" binding:"required"`
	Password        string `json:"password" form:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword" binding:"required"`
}

// UserLoginRequest login parameters.
type UserLoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

// UserChangePasswordRequest password change parameters.
type UserChangePasswordRequest struct {
	OldPassword     string `json:"oldPassword" form:"oldPassword" binding:"required"`
	Password        string `json:"password" form:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword" binding:"required"`
}

// UserChangeEmailRequest email change parameters.
type UserChangeEmailRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

// UserDTO is the authenticated user projection. Token is only set on
// register and login responses.
type UserDTO struct {
	UID       int64      `json:"uid"`
	Email     string     `json:"email"`
	Nickname  string     `json:"nickname"`
	Token     string     `json:"token,omitempty"`
	Avatar    string     `json:"avatar"`
	CreatedAt timex.Time `json:"createdAt"`
	UpdatedAt timex.Time `json:"updatedAt"`
}

// UserUsageDTO storage usage summary.
type UserUsageDTO struct {
	FileCount int64 `json:"fileCount"`
	TotalSize int64 `json:"totalSize"`
}
