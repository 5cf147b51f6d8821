package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aigility/cloud-vault-service/internal/dto"
)

func newItemFixture() (*folderFixture, ItemService) {
	f := newFolderFixture()
	return f, NewItemService(f.files, f.folders)
}

func TestItemListMergesFoldersAndFiles(t *testing.T) {
	f, items := newItemFixture()
	ctx := context.Background()

	_, err := f.folders.Create(ctx, 1, &dto.FolderCreateRequest{Name: "docs"})
	require.NoError(t, err)
	_, err = f.files.Upload(ctx, 1, &dto.FileUploadRequest{},
		bytes.NewReader([]byte("x")), "root.txt", "text/plain", 1)
	require.NoError(t, err)

	listing, err := items.List(ctx, 1, &dto.ItemListRequest{Path: ""})
	require.NoError(t, err)
	require.Len(t, listing.Folders, 1)
	require.Len(t, listing.Files, 1)
	assert.Equal(t, "docs", listing.Folders[0].Name)
	assert.Equal(t, "root.txt", listing.Files[0].Name)
}

func TestItemListVirtualPaths(t *testing.T) {
	f, items := newItemFixture()
	ctx := context.Background()

	uploaded, err := f.files.Upload(ctx, 1, &dto.FileUploadRequest{},
		bytes.NewReader([]byte("x")), "fav.txt", "text/plain", 1)
	require.NoError(t, err)
	_, err = f.files.ToggleFavorite(ctx, 1, &dto.FileToggleRequest{ID: uploaded.ID})
	require.NoError(t, err)

	favs, err := items.List(ctx, 1, &dto.ItemListRequest{Path: VirtualPathFavorites})
	require.NoError(t, err)
	assert.Empty(t, favs.Folders)
	require.Len(t, favs.Files, 1)
	assert.Equal(t, "fav.txt", favs.Files[0].Name)

	shared, err := items.List(ctx, 1, &dto.ItemListRequest{Path: VirtualPathShared})
	require.NoError(t, err)
	assert.Empty(t, shared.Files)

	recent, err := items.List(ctx, 1, &dto.ItemListRequest{Path: VirtualPathRecent})
	require.NoError(t, err)
	require.Len(t, recent.Files, 1)
}

func TestItemListEmptyFolderGivesEmptySlices(t *testing.T) {
	_, items := newItemFixture()

	listing, err := items.List(context.Background(), 1, &dto.ItemListRequest{Path: ""})
	require.NoError(t, err)
	assert.NotNil(t, listing.Folders)
	assert.NotNil(t, listing.Files)
	assert.Empty(t, listing.Folders)
	assert.Empty(t, listing.Files)
}
