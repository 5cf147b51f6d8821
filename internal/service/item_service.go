package service

import (
	"context"

	"github.com/aigility/cloud-vault-service/internal/dto"
)

// Virtual paths resolved by the item listing instead of the folder
// tree.
const (
	VirtualPathFavorites = "/favorites"
	VirtualPathShared    = "/shared"
	VirtualPathRecent    = "/recent"
)

// ItemService merges folders and files into one directory listing.
type ItemService interface {
	// List returns the contents of a logical path. The virtual paths
	// /favorites, /shared and /recent return file-only listings.
	List(ctx context.Context, uid int64, params *dto.ItemListRequest) (*dto.ItemListDTO, error)
}

type itemService struct {
	fileService   FileService
	folderService FolderService
}

func NewItemService(fileSvc FileService, folderSvc FolderService) ItemService {
	return &itemService{
		fileService:   fileSvc,
		folderService: folderSvc,
	}
}

func (s *itemService) List(ctx context.Context, uid int64, params *dto.ItemListRequest) (*dto.ItemListDTO, error) {
	switch params.Path {
	case VirtualPathFavorites:
		files, err := s.fileService.ListFavorites(ctx, uid)
		if err != nil {
			return nil, err
		}
		return &dto.ItemListDTO{Path: params.Path, Folders: []*dto.FolderDTO{}, Files: files}, nil
	case VirtualPathShared:
		files, err := s.fileService.ListShared(ctx, uid)
		if err != nil {
			return nil, err
		}
		return &dto.ItemListDTO{Path: params.Path, Folders: []*dto.FolderDTO{}, Files: files}, nil
	case VirtualPathRecent:
		files, err := s.fileService.ListRecent(ctx, uid)
		if err != nil {
			return nil, err
		}
		return &dto.ItemListDTO{Path: params.Path, Folders: []*dto.FolderDTO{}, Files: files}, nil
	}

	folders, err := s.folderService.List(ctx, uid, params.Path)
	if err != nil {
		return nil, err
	}
	files, err := s.fileService.List(ctx, uid, &dto.FileListRequest{Path: params.Path})
	if err != nil {
		return nil, err
	}
	return &dto.ItemListDTO{Path: params.Path, Folders: folders, Files: files}, nil
}
