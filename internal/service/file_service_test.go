package service

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aigility/cloud-vault-service/internal/dto"
	"github.com/aigility/cloud-vault-service/pkg/code"
)

func newTestFileService(fileRepo *memFileRepo, folderRepo *memFolderRepo, store *fakeStore, notifier ChangeNotifier) FileService {
	return NewFileService(fileRepo, folderRepo, store, notifier, nil, nil, nil)
}

func TestUploadThenListRoundTrip(t *testing.T) {
	fileRepo := newMemFileRepo()
	folderRepo := newMemFolderRepo()
	store := newFakeStore()
	svc := newTestFileService(fileRepo, folderRepo, store, nil)
	ctx := context.Background()

	_, err := folderRepo.Create(ctx, folderAt(1, "docs", "docs", 0))
	require.NoError(t, err)

	uploaded, err := svc.Upload(ctx, 1, &dto.FileUploadRequest{Path: "docs"},
		bytes.NewReader([]byte("%PDF-1.7")), "report.pdf", "application/pdf", 8)
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", uploaded.Name)
	assert.Equal(t, "document", uploaded.Category)
	assert.Equal(t, "pdf", uploaded.Extension)
	assert.True(t, store.has("1/docs/report.pdf"))

	listed, err := svc.List(ctx, 1, &dto.FileListRequest{Path: "docs"})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, uploaded.ID, listed[0].ID)
	assert.Equal(t, uploaded.Name, listed[0].Name)
	assert.Equal(t, int64(8), listed[0].Size)
}

func TestUploadToMissingFolder(t *testing.T) {
	svc := newTestFileService(newMemFileRepo(), newMemFolderRepo(), newFakeStore(), nil)

	_, err := svc.Upload(context.Background(), 1, &dto.FileUploadRequest{Path: "nope"},
		bytes.NewReader(nil), "a.txt", "text/plain", 0)
	assert.ErrorIs(t, err, code.ErrorFolderNotFound)
}

func TestUploadStorageFailureLeavesNoRow(t *testing.T) {
	fileRepo := newMemFileRepo()
	store := newFakeStore()
	store.failPut = true
	svc := newTestFileService(fileRepo, newMemFolderRepo(), store, nil)
	ctx := context.Background()

	_, err := svc.Upload(ctx, 1, &dto.FileUploadRequest{},
		bytes.NewReader([]byte("x")), "a.txt", "text/plain", 1)
	require.Error(t, err)

	listed, err := svc.List(ctx, 1, &dto.FileListRequest{})
	require.NoError(t, err)
	assert.Empty(t, listed)
}

// A row insert failure after a successful object write orphans the
// object instead of rolling it back.
func TestUploadRowFailureOrphansObject(t *testing.T) {
	fileRepo := newMemFileRepo()
	fileRepo.failCreate = true
	store := newFakeStore()
	svc := newTestFileService(fileRepo, newMemFolderRepo(), store, nil)

	_, err := svc.Upload(context.Background(), 1, &dto.FileUploadRequest{},
		bytes.NewReader([]byte("x")), "a.txt", "text/plain", 1)
	require.Error(t, err)
	assert.True(t, store.has("1/a.txt"))
}

// Re-uploading a name that already exists at the path is rejected; an
// overwrite would leave two rows sharing one storage key, and deleting
// either row would strand the other.
func TestUploadDuplicateNameRejected(t *testing.T) {
	fileRepo := newMemFileRepo()
	store := newFakeStore()
	svc := newTestFileService(fileRepo, newMemFolderRepo(), store, nil)
	ctx := context.Background()

	first, err := svc.Upload(ctx, 1, &dto.FileUploadRequest{},
		bytes.NewReader([]byte("original")), "a.txt", "text/plain", 8)
	require.NoError(t, err)

	_, err = svc.Upload(ctx, 1, &dto.FileUploadRequest{},
		bytes.NewReader([]byte("other")), "a.txt", "text/plain", 5)
	assert.ErrorIs(t, err, code.ErrorFileAlreadyExists)

	listed, err := svc.List(ctx, 1, &dto.FileListRequest{})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, first.ID, listed[0].ID)

	// the original object is untouched and still downloadable
	rc, _, err := svc.Download(ctx, 1, &dto.FileGetRequest{ID: first.ID})
	require.NoError(t, err)
	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	rc.Close()
	assert.Equal(t, []byte("original"), content)
}

// The same name is fine at a different path or for a different user.
func TestUploadSameNameElsewhereAllowed(t *testing.T) {
	fileRepo := newMemFileRepo()
	folderRepo := newMemFolderRepo()
	svc := newTestFileService(fileRepo, folderRepo, newFakeStore(), nil)
	ctx := context.Background()

	_, err := folderRepo.Create(ctx, folderAt(1, "docs", "docs", 0))
	require.NoError(t, err)

	_, err = svc.Upload(ctx, 1, &dto.FileUploadRequest{},
		bytes.NewReader([]byte("x")), "a.txt", "text/plain", 1)
	require.NoError(t, err)

	_, err = svc.Upload(ctx, 1, &dto.FileUploadRequest{Path: "docs"},
		bytes.NewReader([]byte("x")), "a.txt", "text/plain", 1)
	require.NoError(t, err)

	_, err = svc.Upload(ctx, 2, &dto.FileUploadRequest{},
		bytes.NewReader([]byte("x")), "a.txt", "text/plain", 1)
	require.NoError(t, err)
}

func TestDownloadRoundTrip(t *testing.T) {
	svc := newTestFileService(newMemFileRepo(), newMemFolderRepo(), newFakeStore(), nil)
	ctx := context.Background()

	uploaded, err := svc.Upload(ctx, 1, &dto.FileUploadRequest{},
		bytes.NewReader([]byte("hello")), "a.txt", "text/plain", 5)
	require.NoError(t, err)

	rc, meta, err := svc.Download(ctx, 1, &dto.FileGetRequest{ID: uploaded.ID})
	require.NoError(t, err)
	defer rc.Close()
	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), content)
	assert.Equal(t, "a.txt", meta.Name)
}

func TestDeleteObjectFirstThenRow(t *testing.T) {
	fileRepo := newMemFileRepo()
	store := newFakeStore()
	svc := newTestFileService(fileRepo, newMemFolderRepo(), store, nil)
	ctx := context.Background()

	uploaded, err := svc.Upload(ctx, 1, &dto.FileUploadRequest{},
		bytes.NewReader([]byte("x")), "a.txt", "text/plain", 1)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, 1, &dto.FileDeleteRequest{ID: uploaded.ID}))
	assert.False(t, store.has("1/a.txt"))

	listed, err := svc.List(ctx, 1, &dto.FileListRequest{})
	require.NoError(t, err)
	assert.Empty(t, listed)
}

// An object delete failure keeps the metadata row, so the file stays
// visible rather than becoming an invisible orphan.
func TestDeleteStorageFailureKeepsRow(t *testing.T) {
	fileRepo := newMemFileRepo()
	store := newFakeStore()
	svc := newTestFileService(fileRepo, newMemFolderRepo(), store, nil)
	ctx := context.Background()

	uploaded, err := svc.Upload(ctx, 1, &dto.FileUploadRequest{},
		bytes.NewReader([]byte("x")), "a.txt", "text/plain", 1)
	require.NoError(t, err)

	store.failDelete["1/a.txt"] = true
	err = svc.Delete(ctx, 1, &dto.FileDeleteRequest{ID: uploaded.ID})
	require.Error(t, err)

	listed, err := svc.List(ctx, 1, &dto.FileListRequest{})
	require.NoError(t, err)
	assert.Len(t, listed, 1)
	assert.True(t, store.has("1/a.txt"))
}

func TestToggleFavoriteLastWriteWins(t *testing.T) {
	svc := newTestFileService(newMemFileRepo(), newMemFolderRepo(), newFakeStore(), nil)
	ctx := context.Background()

	uploaded, err := svc.Upload(ctx, 1, &dto.FileUploadRequest{},
		bytes.NewReader([]byte("x")), "a.txt", "text/plain", 1)
	require.NoError(t, err)
	assert.False(t, uploaded.IsFavorite)

	once, err := svc.ToggleFavorite(ctx, 1, &dto.FileToggleRequest{ID: uploaded.ID})
	require.NoError(t, err)
	assert.True(t, once.IsFavorite)

	twice, err := svc.ToggleFavorite(ctx, 1, &dto.FileToggleRequest{ID: uploaded.ID})
	require.NoError(t, err)
	assert.False(t, twice.IsFavorite)

	favs, err := svc.ListFavorites(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, favs)
}

func TestToggleSharedIndependentOfFavorite(t *testing.T) {
	svc := newTestFileService(newMemFileRepo(), newMemFolderRepo(), newFakeStore(), nil)
	ctx := context.Background()

	uploaded, err := svc.Upload(ctx, 1, &dto.FileUploadRequest{},
		bytes.NewReader([]byte("x")), "a.txt", "text/plain", 1)
	require.NoError(t, err)

	_, err = svc.ToggleFavorite(ctx, 1, &dto.FileToggleRequest{ID: uploaded.ID})
	require.NoError(t, err)
	shared, err := svc.ToggleShared(ctx, 1, &dto.FileToggleRequest{ID: uploaded.ID})
	require.NoError(t, err)
	assert.True(t, shared.IsFavorite)
	assert.True(t, shared.IsShared)
}

func TestToggleMissingFile(t *testing.T) {
	svc := newTestFileService(newMemFileRepo(), newMemFolderRepo(), newFakeStore(), nil)

	_, err := svc.ToggleFavorite(context.Background(), 1, &dto.FileToggleRequest{ID: 99})
	assert.ErrorIs(t, err, code.ErrorFileNotFound)
}

func TestUploadNotifiesChange(t *testing.T) {
	notifier := &recordNotifier{}
	svc := newTestFileService(newMemFileRepo(), newMemFolderRepo(), newFakeStore(), notifier)

	_, err := svc.Upload(context.Background(), 1, &dto.FileUploadRequest{},
		bytes.NewReader([]byte("x")), "a.txt", "text/plain", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, notifier.count())
	assert.Equal(t, dto.ChangeResourceFiles, notifier.events[0].Resource)
	assert.Equal(t, dto.ChangeEventCreate, notifier.events[0].Event)
}

func TestUsage(t *testing.T) {
	svc := newTestFileService(newMemFileRepo(), newMemFolderRepo(), newFakeStore(), nil)
	ctx := context.Background()

	for _, f := range []struct {
		name string
		size int64
	}{{"a.txt", 10}, {"b.txt", 20}} {
		_, err := svc.Upload(ctx, 1, &dto.FileUploadRequest{},
			bytes.NewReader(make([]byte, f.size)), f.name, "text/plain", f.size)
		require.NoError(t, err)
	}

	usage, err := svc.Usage(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), usage.FileCount)
	assert.Equal(t, int64(30), usage.TotalSize)
}
