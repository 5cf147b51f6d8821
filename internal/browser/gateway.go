package browser

import (
	"context"

	"github.com/aigility/cloud-vault-service/internal/dto"
	"github.com/aigility/cloud-vault-service/internal/service"
)

// Gateway is the slice of the backend the container talks to. The
// virtual paths /favorites, /shared and /recent are valid List paths.
type Gateway interface {
	List(ctx context.Context, uid int64, path string) (*dto.ItemListDTO, error)
	ToggleFavorite(ctx context.Context, uid, id int64) error
	ToggleShared(ctx context.Context, uid, id int64) error
	DeleteFile(ctx context.Context, uid, id int64) error
	DeleteFolder(ctx context.Context, uid, id int64) error
	CreateFolder(ctx context.Context, uid int64, name, path string) error
}

type serviceGateway struct {
	items   service.ItemService
	files   service.FileService
	folders service.FolderService
}

// NewServiceGateway adapts the service layer to the Gateway interface.
func NewServiceGateway(items service.ItemService, files service.FileService, folders service.FolderService) Gateway {
	return &serviceGateway{items: items, files: files, folders: folders}
}

func (g *serviceGateway) List(ctx context.Context, uid int64, path string) (*dto.ItemListDTO, error) {
	return g.items.List(ctx, uid, &dto.ItemListRequest{Path: path})
}

func (g *serviceGateway) ToggleFavorite(ctx context.Context, uid, id int64) error {
	_, err := g.files.ToggleFavorite(ctx, uid, &dto.FileToggleRequest{ID: id})
	return err
}

func (g *serviceGateway) ToggleShared(ctx context.Context, uid, id int64) error {
	_, err := g.files.ToggleShared(ctx, uid, &dto.FileToggleRequest{ID: id})
	return err
}

func (g *serviceGateway) DeleteFile(ctx context.Context, uid, id int64) error {
	return g.files.Delete(ctx, uid, &dto.FileDeleteRequest{ID: id})
}

func (g *serviceGateway) DeleteFolder(ctx context.Context, uid, id int64) error {
	return g.folders.DeleteRecursive(ctx, uid, &dto.FolderDeleteRequest{ID: id})
}

func (g *serviceGateway) CreateFolder(ctx context.Context, uid int64, name, path string) error {
	_, err := g.folders.Create(ctx, uid, &dto.FolderCreateRequest{Name: name, Path: path})
	return err
}
