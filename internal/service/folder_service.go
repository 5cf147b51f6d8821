package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/aigility/cloud-vault-service/internal/domain"
	"github.com/aigility/cloud-vault-service/internal/dto"
	"github.com/aigility/cloud-vault-service/pkg/code"
	"github.com/aigility/cloud-vault-service/pkg/timex"
	"github.com/aigility/cloud-vault-service/pkg/writequeue"
)

// FolderService covers folder creation and the recursive delete.
type FolderService interface {
	// Create inserts a folder under params.Path. Sibling folders with
	// the same name are allowed; the store does not enforce uniqueness.
	Create(ctx context.Context, uid int64, params *dto.FolderCreateRequest) (*dto.FolderDTO, error)

	// Get fetches one folder row.
	Get(ctx context.Context, uid, id int64) (*dto.FolderDTO, error)

	// List returns the folders directly under a logical path.
	List(ctx context.Context, uid int64, folderPath string) ([]*dto.FolderDTO, error)

	// DeleteRecursive removes the subtree depth first, one item at a
	// time, without a transaction. The first failure stops the walk and
	// leaves the remaining items in place.
	DeleteRecursive(ctx context.Context, uid int64, params *dto.FolderDeleteRequest) error
}

type folderService struct {
	folderRepo  domain.FolderRepository
	fileRepo    domain.FileRepository
	fileService FileService
	notifier    ChangeNotifier
	wq          *writequeue.Manager
	logger      *zap.Logger
}

func NewFolderService(folderRepo domain.FolderRepository, fileRepo domain.FileRepository, fileSvc FileService, notifier ChangeNotifier, wq *writequeue.Manager, logger *zap.Logger) FolderService {
	if notifier == nil {
		notifier = NopNotifier
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &folderService{
		folderRepo:  folderRepo,
		fileRepo:    fileRepo,
		fileService: fileSvc,
		notifier:    notifier,
		wq:          wq,
		logger:      logger,
	}
}

func (s *folderService) domainToDTO(f *domain.Folder) *dto.FolderDTO {
	if f == nil {
		return nil
	}
	return &dto.FolderDTO{
		ID:        f.ID,
		ParentID:  f.ParentID,
		Name:      f.Name,
		Path:      f.Path,
		CreatedAt: timex.Time(f.CreatedAt),
		UpdatedAt: timex.Time(f.UpdatedAt),
	}
}

func (s *folderService) Create(ctx context.Context, uid int64, params *dto.FolderCreateRequest) (*dto.FolderDTO, error) {
	parentPath := domain.NormalizePath(params.Path)

	var parent *domain.Folder
	if parentPath != "" {
		var err error
		parent, err = s.folderRepo.GetByPath(ctx, parentPath, uid)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, code.ErrorFolderNotFound
			}
			return nil, code.ErrorDBQuery.WithDetails(err.Error())
		}
	}

	folder := &domain.Folder{
		UID:  uid,
		Name: params.Name,
		Path: parent.ChildPath(params.Name),
	}
	if parent != nil {
		folder.ParentID = parent.ID
	}

	var created *domain.Folder
	err := serializeWrite(ctx, s.wq, uid, func() error {
		var werr error
		created, werr = s.folderRepo.Create(ctx, folder)
		return werr
	})
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	s.notifier.NotifyChange(uid, &dto.ItemsChangedPayload{
		Resource: dto.ChangeResourceFolders,
		Event:    dto.ChangeEventCreate,
		Path:     parentPath,
	})

	return s.domainToDTO(created), nil
}

func (s *folderService) Get(ctx context.Context, uid, id int64) (*dto.FolderDTO, error) {
	folder, err := s.folderRepo.GetByID(ctx, id, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorFolderNotFound
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return s.domainToDTO(folder), nil
}

func (s *folderService) List(ctx context.Context, uid int64, folderPath string) ([]*dto.FolderDTO, error) {
	folders, err := s.folderRepo.ListByPath(ctx, domain.NormalizePath(folderPath), uid)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	res := make([]*dto.FolderDTO, 0, len(folders))
	for _, f := range folders {
		res = append(res, s.domainToDTO(f))
	}
	return res, nil
}

func (s *folderService) DeleteRecursive(ctx context.Context, uid int64, params *dto.FolderDeleteRequest) error {
	folder, err := s.folderRepo.GetByID(ctx, params.ID, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorFolderNotFound
		}
		return code.ErrorDBQuery.WithDetails(err.Error())
	}

	if err := s.deleteSubtree(ctx, uid, folder); err != nil {
		return err
	}

	s.notifier.NotifyChange(uid, &dto.ItemsChangedPayload{
		Resource: dto.ChangeResourceFolders,
		Event:    dto.ChangeEventDelete,
		Path:     folder.Path,
	})
	return nil
}

// deleteSubtree removes the folder's own files, then recurses into the
// subfolders, then drops the folder row. No transaction wraps the walk,
// a failure partway leaves everything already deleted gone.
func (s *folderService) deleteSubtree(ctx context.Context, uid int64, folder *domain.Folder) error {
	files, err := s.fileRepo.ListByFolder(ctx, folder.ID, uid)
	if err != nil {
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	for _, file := range files {
		if err := s.fileService.DeleteByEntity(ctx, uid, file); err != nil {
			s.logger.Warn("recursive delete stopped mid-subtree",
				zap.Int64("uid", uid),
				zap.String("path", folder.Path),
				zap.String("name", file.Name),
				zap.Error(err))
			return err
		}
	}

	children, err := s.folderRepo.ListByParent(ctx, folder.ID, uid)
	if err != nil {
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	for _, child := range children {
		if err := s.deleteSubtree(ctx, uid, child); err != nil {
			return err
		}
	}

	err = serializeWrite(ctx, s.wq, uid, func() error {
		return s.folderRepo.Delete(ctx, folder.ID, uid)
	})
	if err != nil {
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	return nil
}
