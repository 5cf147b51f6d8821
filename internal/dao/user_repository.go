package dao

import (
	"context"
	"time"

	"github.com/aigility/cloud-vault-service/internal/domain"
	"github.com/aigility/cloud-vault-service/internal/model"
	"github.com/aigility/cloud-vault-service/pkg/timex"
)

type userRepository struct {
	dao *Dao
}

func NewUserRepository(dao *Dao) domain.UserRepository {
	return &userRepository{dao: dao}
}

func (r *userRepository) toDomain(m *model.User) *domain.User {
	if m == nil {
		return nil
	}
	return &domain.User{
		UID:       m.UID,
		Email:     m.Email,
		Nickname:  m.Nickname,
		Password:  m.Password,
		Avatar:    m.Avatar,
		CreatedAt: time.Time(m.CreatedAt),
		UpdatedAt: time.Time(m.UpdatedAt),
	}
}

func (r *userRepository) GetByUID(ctx context.Context, uid int64) (*domain.User, error) {
	var m model.User
	err := r.dao.db.WithContext(ctx).
		Where("uid = ?", uid).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m model.User
	err := r.dao.db.WithContext(ctx).
		Where("email = ?", email).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	m := &model.User{
		Email:     user.Email,
		Nickname:  user.Nickname,
		Password:  user.Password,
		Avatar:    user.Avatar,
		CreatedAt: timex.Time(user.CreatedAt),
		UpdatedAt: timex.Time(user.UpdatedAt),
	}
	if err := r.dao.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	return r.dao.db.WithContext(ctx).
		Model(&model.User{}).
		Where("uid = ?", user.UID).
		Updates(map[string]any{
			"email":    user.Email,
			"nickname": user.Nickname,
			"password": user.Password,
			"avatar":   user.Avatar,
		}).Error
}
