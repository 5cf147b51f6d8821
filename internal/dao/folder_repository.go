package dao

import (
	"context"
	"time"

	"github.com/aigility/cloud-vault-service/internal/domain"
	"github.com/aigility/cloud-vault-service/internal/model"
	"github.com/aigility/cloud-vault-service/pkg/timex"
)

type folderRepository struct {
	dao *Dao
}

func NewFolderRepository(dao *Dao) domain.FolderRepository {
	return &folderRepository{dao: dao}
}

func (r *folderRepository) toDomain(m *model.Folder) *domain.Folder {
	if m == nil {
		return nil
	}
	return &domain.Folder{
		ID:        m.ID,
		UID:       m.UID,
		ParentID:  m.ParentID,
		Name:      m.Name,
		Path:      m.Path,
		CreatedAt: time.Time(m.CreatedAt),
		UpdatedAt: time.Time(m.UpdatedAt),
	}
}

func (r *folderRepository) toModel(f *domain.Folder) *model.Folder {
	if f == nil {
		return nil
	}
	return &model.Folder{
		ID:        f.ID,
		UID:       f.UID,
		ParentID:  f.ParentID,
		Name:      f.Name,
		Path:      f.Path,
		CreatedAt: timex.Time(f.CreatedAt),
		UpdatedAt: timex.Time(f.UpdatedAt),
	}
}

func (r *folderRepository) GetByID(ctx context.Context, id, uid int64) (*domain.Folder, error) {
	var m model.Folder
	err := r.dao.db.WithContext(ctx).
		Where("id = ? AND uid = ?", id, uid).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

func (r *folderRepository) GetByPath(ctx context.Context, folderPath string, uid int64) (*domain.Folder, error) {
	var m model.Folder
	err := r.dao.db.WithContext(ctx).
		Where("uid = ? AND path = ?", uid, folderPath).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

func (r *folderRepository) Create(ctx context.Context, folder *domain.Folder) (*domain.Folder, error) {
	m := r.toModel(folder)
	m.ID = 0
	if err := r.dao.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

func (r *folderRepository) Delete(ctx context.Context, id, uid int64) error {
	return r.dao.db.WithContext(ctx).
		Where("id = ? AND uid = ?", id, uid).
		Delete(&model.Folder{}).Error
}

func (r *folderRepository) ListByParent(ctx context.Context, parentID, uid int64) ([]*domain.Folder, error) {
	var ms []*model.Folder
	err := r.dao.db.WithContext(ctx).
		Where("uid = ? AND parent_id = ?", uid, parentID).
		Order("name ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Folder, 0, len(ms))
	for _, m := range ms {
		out = append(out, r.toDomain(m))
	}
	return out, nil
}

func (r *folderRepository) ListByPath(ctx context.Context, folderPath string, uid int64) ([]*domain.Folder, error) {
	// children of folderPath have path = folderPath + "/" + name; root
	// children have path = name (no slash)
	var ms []*model.Folder
	q := r.dao.db.WithContext(ctx).Where("uid = ?", uid)
	if folderPath == "" {
		q = q.Where("path NOT LIKE ?", "%/%")
	} else {
		q = q.Where("path LIKE ? AND path NOT LIKE ?", folderPath+"/%", folderPath+"/%/%")
	}
	err := q.Order("name ASC").Find(&ms).Error
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Folder, 0, len(ms))
	for _, m := range ms {
		out = append(out, r.toDomain(m))
	}
	return out, nil
}
