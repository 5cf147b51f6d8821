package service

import (
	"context"
	"errors"
	"io"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/aigility/cloud-vault-service/internal/domain"
	"github.com/aigility/cloud-vault-service/internal/dto"
	"github.com/aigility/cloud-vault-service/pkg/code"
	"github.com/aigility/cloud-vault-service/pkg/storage"
	"github.com/aigility/cloud-vault-service/pkg/timex"
	"github.com/aigility/cloud-vault-service/pkg/writequeue"
)

// FileService covers single-file operations and the flat listings.
type FileService interface {
	// Upload stores content first, then inserts the metadata row. A row
	// insert failure leaves the object behind; the orphan sweep task
	// reconciles those. Uploading a name that already exists at the path
	// fails instead of overwriting.
	Upload(ctx context.Context, uid int64, params *dto.FileUploadRequest, content io.Reader, name, mimeType string, size int64) (*dto.FileDTO, error)

	// Download returns the content stream plus the metadata row.
	Download(ctx context.Context, uid int64, params *dto.FileGetRequest) (io.ReadCloser, *dto.FileDTO, error)

	// Delete removes the object first and the row second. An object
	// delete failure keeps the row, so the file stays visible.
	Delete(ctx context.Context, uid int64, params *dto.FileDeleteRequest) error

	// DeleteByEntity is Delete for an already loaded row, used by the
	// recursive folder delete.
	DeleteByEntity(ctx context.Context, uid int64, file *domain.File) error

	// ToggleFavorite flips the favorite flag, last write wins.
	ToggleFavorite(ctx context.Context, uid int64, params *dto.FileToggleRequest) (*dto.FileDTO, error)

	// ToggleShared flips the shared flag, last write wins.
	ToggleShared(ctx context.Context, uid int64, params *dto.FileToggleRequest) (*dto.FileDTO, error)

	List(ctx context.Context, uid int64, params *dto.FileListRequest) ([]*dto.FileDTO, error)
	ListFavorites(ctx context.Context, uid int64) ([]*dto.FileDTO, error)
	ListShared(ctx context.Context, uid int64) ([]*dto.FileDTO, error)
	ListRecent(ctx context.Context, uid int64) ([]*dto.FileDTO, error)

	Usage(ctx context.Context, uid int64) (*dto.UserUsageDTO, error)
}

type fileService struct {
	fileRepo   domain.FileRepository
	folderRepo domain.FolderRepository
	store      storage.Storager
	notifier   ChangeNotifier
	wq         *writequeue.Manager
	config     *ServiceConfig
	logger     *zap.Logger
	sf         singleflight.Group
}

func NewFileService(fileRepo domain.FileRepository, folderRepo domain.FolderRepository, store storage.Storager, notifier ChangeNotifier, wq *writequeue.Manager, config *ServiceConfig, logger *zap.Logger) FileService {
	if notifier == nil {
		notifier = NopNotifier
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &fileService{
		fileRepo:   fileRepo,
		folderRepo: folderRepo,
		store:      store,
		notifier:   notifier,
		wq:         wq,
		config:     config,
		logger:     logger,
	}
}

func (s *fileService) domainToDTO(f *domain.File) *dto.FileDTO {
	if f == nil {
		return nil
	}
	return &dto.FileDTO{
		ID:         f.ID,
		FolderID:   f.FolderID,
		Name:       f.Name,
		Path:       f.Path,
		Size:       f.Size,
		MimeType:   f.MimeType,
		Extension:  f.Extension(),
		Category:   string(f.Category()),
		IsFavorite: f.IsFavorite,
		IsShared:   f.IsShared,
		Thumbnail:  f.Thumbnail,
		CreatedAt:  timex.Time(f.CreatedAt),
		UpdatedAt:  timex.Time(f.UpdatedAt),
	}
}

func (s *fileService) domainToDTOList(files []*domain.File) []*dto.FileDTO {
	res := make([]*dto.FileDTO, 0, len(files))
	for _, f := range files {
		res = append(res, s.domainToDTO(f))
	}
	return res
}

func (s *fileService) Upload(ctx context.Context, uid int64, params *dto.FileUploadRequest, content io.Reader, name, mimeType string, size int64) (*dto.FileDTO, error) {
	folderPath := domain.NormalizePath(params.Path)
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	var folderID int64
	if folderPath != "" {
		folder, err := s.folderRepo.GetByPath(ctx, folderPath, uid)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, code.ErrorFolderNotFound
			}
			return nil, code.ErrorDBQuery.WithDetails(err.Error())
		}
		folderID = folder.ID
	}

	// A second row for the same path and name would share the storage
	// key, and deleting either row would pull the object out from under
	// the other. Duplicate uploads are rejected instead of overwriting.
	if _, err := s.fileRepo.GetByPathName(ctx, folderPath, name, uid); err == nil {
		return nil, code.ErrorFileAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	storageKey := domain.StorageKey(uid, folderPath, name)

	// Content goes out first. If the row insert below fails the object
	// stays in the store without a row pointing at it.
	finalKey, err := s.store.PutFile(storageKey, content, mimeType, time.Now())
	if err != nil {
		s.logger.Error("upload: object store write failed",
			zap.Int64("uid", uid),
			zap.String("storageKey", storageKey),
			zap.Error(err))
		return nil, code.ErrorStorageUpload.WithDetails(err.Error())
	}

	file := &domain.File{
		UID:         uid,
		FolderID:    folderID,
		Name:        name,
		Path:        folderPath,
		Size:        size,
		MimeType:    mimeType,
		StoragePath: finalKey,
	}

	var created *domain.File
	err = serializeWrite(ctx, s.wq, uid, func() error {
		var werr error
		created, werr = s.fileRepo.Create(ctx, file)
		return werr
	})
	if err != nil {
		s.logger.Error("upload: metadata insert failed, object orphaned",
			zap.Int64("uid", uid),
			zap.String("storageKey", finalKey),
			zap.Error(err))
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	s.notifier.NotifyChange(uid, &dto.ItemsChangedPayload{
		Resource: dto.ChangeResourceFiles,
		Event:    dto.ChangeEventCreate,
		Path:     folderPath,
	})

	return s.domainToDTO(created), nil
}

func (s *fileService) Download(ctx context.Context, uid int64, params *dto.FileGetRequest) (io.ReadCloser, *dto.FileDTO, error) {
	file, err := s.fileRepo.GetByID(ctx, params.ID, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, code.ErrorFileNotFound
		}
		return nil, nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	rc, err := s.store.GetFile(file.StoragePath)
	if err != nil {
		return nil, nil, code.ErrorStorageDownload.WithDetails(err.Error())
	}
	return rc, s.domainToDTO(file), nil
}

func (s *fileService) Delete(ctx context.Context, uid int64, params *dto.FileDeleteRequest) error {
	file, err := s.fileRepo.GetByID(ctx, params.ID, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorFileNotFound
		}
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	return s.DeleteByEntity(ctx, uid, file)
}

func (s *fileService) DeleteByEntity(ctx context.Context, uid int64, file *domain.File) error {
	// Object first. On failure the row survives and the file remains
	// listed, which beats a row-less orphan object.
	if err := s.store.Delete(file.StoragePath); err != nil {
		s.logger.Error("delete: object store delete failed",
			zap.Int64("uid", uid),
			zap.String("storageKey", file.StoragePath),
			zap.Error(err))
		return code.ErrorStorageDelete.WithDetails(err.Error())
	}

	err := serializeWrite(ctx, s.wq, uid, func() error {
		return s.fileRepo.Delete(ctx, file.ID, uid)
	})
	if err != nil {
		return code.ErrorDBQuery.WithDetails(err.Error())
	}

	s.notifier.NotifyChange(uid, &dto.ItemsChangedPayload{
		Resource: dto.ChangeResourceFiles,
		Event:    dto.ChangeEventDelete,
		Path:     file.Path,
	})
	return nil
}

// toggle reads the row, flips one flag and writes every column back.
// Two concurrent toggles of different flags can lose one update; the
// write queue only serializes the writes, it does not close the
// read-modify-write window.
func (s *fileService) toggle(ctx context.Context, uid, id int64, flip func(*domain.File)) (*dto.FileDTO, error) {
	file, err := s.fileRepo.GetByID(ctx, id, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorFileNotFound
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	flip(file)

	err = serializeWrite(ctx, s.wq, uid, func() error {
		return s.fileRepo.Update(ctx, file)
	})
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	s.notifier.NotifyChange(uid, &dto.ItemsChangedPayload{
		Resource: dto.ChangeResourceFiles,
		Event:    dto.ChangeEventUpdate,
		Path:     file.Path,
	})
	return s.domainToDTO(file), nil
}

func (s *fileService) ToggleFavorite(ctx context.Context, uid int64, params *dto.FileToggleRequest) (*dto.FileDTO, error) {
	return s.toggle(ctx, uid, params.ID, func(f *domain.File) {
		f.IsFavorite = !f.IsFavorite
	})
}

func (s *fileService) ToggleShared(ctx context.Context, uid int64, params *dto.FileToggleRequest) (*dto.FileDTO, error) {
	return s.toggle(ctx, uid, params.ID, func(f *domain.File) {
		f.IsShared = !f.IsShared
	})
}

func (s *fileService) List(ctx context.Context, uid int64, params *dto.FileListRequest) ([]*dto.FileDTO, error) {
	files, err := s.fileRepo.ListByPath(ctx, domain.NormalizePath(params.Path), uid)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return s.domainToDTOList(files), nil
}

func (s *fileService) ListFavorites(ctx context.Context, uid int64) ([]*dto.FileDTO, error) {
	files, err := s.fileRepo.ListFavorites(ctx, uid)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return s.domainToDTOList(files), nil
}

func (s *fileService) ListShared(ctx context.Context, uid int64) ([]*dto.FileDTO, error) {
	files, err := s.fileRepo.ListShared(ctx, uid)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return s.domainToDTOList(files), nil
}

func (s *fileService) ListRecent(ctx context.Context, uid int64) ([]*dto.FileDTO, error) {
	files, err := s.fileRepo.ListRecent(ctx, uid, s.config.recentLimit())
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return s.domainToDTOList(files), nil
}

func (s *fileService) Usage(ctx context.Context, uid int64) (*dto.UserUsageDTO, error) {
	result, err, _ := s.sf.Do("usage_"+strconv.FormatInt(uid, 10), func() (any, error) {
		return s.fileRepo.CountSizeSum(ctx, uid)
	})
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	sum := result.(*domain.CountSizeResult)
	return &dto.UserUsageDTO{FileCount: sum.Count, TotalSize: sum.Size}, nil
}
