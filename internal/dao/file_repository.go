package dao

import (
	"context"
	"time"

	"github.com/aigility/cloud-vault-service/internal/domain"
	"github.com/aigility/cloud-vault-service/internal/model"
	"github.com/aigility/cloud-vault-service/pkg/timex"
)

type fileRepository struct {
	dao *Dao
}

func NewFileRepository(dao *Dao) domain.FileRepository {
	return &fileRepository{dao: dao}
}

func (r *fileRepository) toDomain(m *model.File) *domain.File {
	if m == nil {
		return nil
	}
	return &domain.File{
		ID:          m.ID,
		UID:         m.UID,
		FolderID:    m.FolderID,
		Name:        m.Name,
		Path:        m.Path,
		Size:        m.Size,
		MimeType:    m.MimeType,
		StoragePath: m.StoragePath,
		IsFavorite:  m.IsFavorite,
		IsShared:    m.IsShared,
		Thumbnail:   m.Thumbnail,
		CreatedAt:   time.Time(m.CreatedAt),
		UpdatedAt:   time.Time(m.UpdatedAt),
	}
}

func (r *fileRepository) toModel(f *domain.File) *model.File {
	if f == nil {
		return nil
	}
	return &model.File{
		ID:          f.ID,
		UID:         f.UID,
		FolderID:    f.FolderID,
		Name:        f.Name,
		Path:        f.Path,
		Size:        f.Size,
		MimeType:    f.MimeType,
		StoragePath: f.StoragePath,
		IsFavorite:  f.IsFavorite,
		IsShared:    f.IsShared,
		Thumbnail:   f.Thumbnail,
		CreatedAt:   timex.Time(f.CreatedAt),
		UpdatedAt:   timex.Time(f.UpdatedAt),
	}
}

func (r *fileRepository) toDomainList(ms []*model.File) []*domain.File {
	out := make([]*domain.File, 0, len(ms))
	for _, m := range ms {
		out = append(out, r.toDomain(m))
	}
	return out
}

func (r *fileRepository) GetByID(ctx context.Context, id, uid int64) (*domain.File, error) {
	var m model.File
	err := r.dao.db.WithContext(ctx).
		Where("id = ? AND uid = ?", id, uid).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

func (r *fileRepository) GetByPathName(ctx context.Context, folderPath, name string, uid int64) (*domain.File, error) {
	var m model.File
	err := r.dao.db.WithContext(ctx).
		Where("uid = ? AND path = ? AND name = ?", uid, folderPath, name).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

func (r *fileRepository) GetByStoragePath(ctx context.Context, storagePath string) (*domain.File, error) {
	var m model.File
	err := r.dao.db.WithContext(ctx).
		Where("storage_path = ?", storagePath).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

func (r *fileRepository) Create(ctx context.Context, file *domain.File) (*domain.File, error) {
	m := r.toModel(file)
	m.ID = 0
	if err := r.dao.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

func (r *fileRepository) Update(ctx context.Context, file *domain.File) error {
	m := r.toModel(file)
	return r.dao.db.WithContext(ctx).
		Model(&model.File{}).
		Where("id = ? AND uid = ?", m.ID, m.UID).
		Updates(map[string]any{
			"folder_id":    m.FolderID,
			"name":         m.Name,
			"path":         m.Path,
			"size":         m.Size,
			"mime_type":    m.MimeType,
			"storage_path": m.StoragePath,
			"is_favorite":  m.IsFavorite,
			"is_shared":    m.IsShared,
			"thumbnail":    m.Thumbnail,
		}).Error
}

func (r *fileRepository) Delete(ctx context.Context, id, uid int64) error {
	return r.dao.db.WithContext(ctx).
		Where("id = ? AND uid = ?", id, uid).
		Delete(&model.File{}).Error
}

func (r *fileRepository) ListByFolder(ctx context.Context, folderID, uid int64) ([]*domain.File, error) {
	var ms []*model.File
	err := r.dao.db.WithContext(ctx).
		Where("uid = ? AND folder_id = ?", uid, folderID).
		Order("name ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainList(ms), nil
}

func (r *fileRepository) ListByPath(ctx context.Context, folderPath string, uid int64) ([]*domain.File, error) {
	var ms []*model.File
	err := r.dao.db.WithContext(ctx).
		Where("uid = ? AND path = ?", uid, folderPath).
		Order("name ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainList(ms), nil
}

func (r *fileRepository) ListFavorites(ctx context.Context, uid int64) ([]*domain.File, error) {
	var ms []*model.File
	err := r.dao.db.WithContext(ctx).
		Where("uid = ? AND is_favorite = ?", uid, true).
		Order("name ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainList(ms), nil
}

func (r *fileRepository) ListShared(ctx context.Context, uid int64) ([]*domain.File, error) {
	var ms []*model.File
	err := r.dao.db.WithContext(ctx).
		Where("uid = ? AND is_shared = ?", uid, true).
		Order("name ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainList(ms), nil
}

func (r *fileRepository) ListRecent(ctx context.Context, uid int64, limit int) ([]*domain.File, error) {
	var ms []*model.File
	err := r.dao.db.WithContext(ctx).
		Where("uid = ?", uid).
		Order("created_at DESC").
		Limit(limit).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainList(ms), nil
}

func (r *fileRepository) CountSizeSum(ctx context.Context, uid int64) (*domain.CountSizeResult, error) {
	var result struct {
		Count int64
		Size  int64
	}
	err := r.dao.db.WithContext(ctx).
		Model(&model.File{}).
		Select("COUNT(*) as count, COALESCE(SUM(size), 0) as size").
		Where("uid = ?", uid).
		Scan(&result).Error
	if err != nil {
		return nil, err
	}
	return &domain.CountSizeResult{Count: result.Count, Size: result.Size}, nil
}
