package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aigility/cloud-vault-service/internal/dto"
	"github.com/aigility/cloud-vault-service/pkg/code"
)

type folderFixture struct {
	fileRepo   *memFileRepo
	folderRepo *memFolderRepo
	store      *fakeStore
	files      FileService
	folders    FolderService
	notifier   *recordNotifier
}

func newFolderFixture() *folderFixture {
	f := &folderFixture{
		fileRepo:   newMemFileRepo(),
		folderRepo: newMemFolderRepo(),
		store:      newFakeStore(),
		notifier:   &recordNotifier{},
	}
	f.files = NewFileService(f.fileRepo, f.folderRepo, f.store, f.notifier, nil, nil, nil)
	f.folders = NewFolderService(f.folderRepo, f.fileRepo, f.files, f.notifier, nil, nil)
	return f
}

func TestCreateFolderAtRoot(t *testing.T) {
	f := newFolderFixture()

	created, err := f.folders.Create(context.Background(), 1, &dto.FolderCreateRequest{Name: "docs"})
	require.NoError(t, err)
	assert.Equal(t, "docs", created.Name)
	assert.Equal(t, "docs", created.Path)
	assert.Zero(t, created.ParentID)
}

func TestCreateNestedFolder(t *testing.T) {
	f := newFolderFixture()
	ctx := context.Background()

	parent, err := f.folders.Create(ctx, 1, &dto.FolderCreateRequest{Name: "docs"})
	require.NoError(t, err)

	child, err := f.folders.Create(ctx, 1, &dto.FolderCreateRequest{Name: "q3", Path: "docs"})
	require.NoError(t, err)
	assert.Equal(t, "docs/q3", child.Path)
	assert.Equal(t, parent.ID, child.ParentID)
}

// Sibling name collisions are allowed; the metadata store does not
// enforce uniqueness.
func TestCreateFolderDuplicateNameAllowed(t *testing.T) {
	f := newFolderFixture()
	ctx := context.Background()

	first, err := f.folders.Create(ctx, 1, &dto.FolderCreateRequest{Name: "docs"})
	require.NoError(t, err)
	second, err := f.folders.Create(ctx, 1, &dto.FolderCreateRequest{Name: "docs"})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestCreateFolderMissingParent(t *testing.T) {
	f := newFolderFixture()

	_, err := f.folders.Create(context.Background(), 1, &dto.FolderCreateRequest{Name: "x", Path: "ghost"})
	assert.ErrorIs(t, err, code.ErrorFolderNotFound)
}

func (f *folderFixture) buildTree(t *testing.T) (rootID int64) {
	t.Helper()
	ctx := context.Background()

	root, err := f.folders.Create(ctx, 1, &dto.FolderCreateRequest{Name: "docs"})
	require.NoError(t, err)
	_, err = f.folders.Create(ctx, 1, &dto.FolderCreateRequest{Name: "q3", Path: "docs"})
	require.NoError(t, err)

	for _, spec := range []struct{ path, name string }{
		{"docs", "top.txt"},
		{"docs/q3", "report.pdf"},
		{"docs/q3", "budget.xlsx"},
	} {
		_, err := f.files.Upload(ctx, 1, &dto.FileUploadRequest{Path: spec.path},
			bytes.NewReader([]byte("data")), spec.name, "application/octet-stream", 4)
		require.NoError(t, err)
	}
	return root.ID
}

func TestDeleteRecursiveRemovesSubtree(t *testing.T) {
	f := newFolderFixture()
	ctx := context.Background()
	rootID := f.buildTree(t)

	require.NoError(t, f.folders.DeleteRecursive(ctx, 1, &dto.FolderDeleteRequest{ID: rootID}))

	assert.Empty(t, f.folderRepo.rows)
	assert.Empty(t, f.fileRepo.rows)
	assert.Empty(t, f.store.objects)
}

// A mid-walk failure keeps everything not yet visited. Each folder's
// own files go before the recursion into its subfolders.
func TestDeleteRecursivePartialFailure(t *testing.T) {
	f := newFolderFixture()
	ctx := context.Background()
	rootID := f.buildTree(t)

	f.store.failDelete["1/docs/q3/report.pdf"] = true

	err := f.folders.DeleteRecursive(ctx, 1, &dto.FolderDeleteRequest{ID: rootID})
	require.Error(t, err)

	// docs' own file is handled before the walk enters q3
	assert.False(t, f.store.has("1/docs/top.txt"))
	// budget.xlsx sorts before report.pdf, so it is already gone
	assert.False(t, f.store.has("1/docs/q3/budget.xlsx"))
	// the failing file survives
	assert.True(t, f.store.has("1/docs/q3/report.pdf"))

	remaining, err := f.files.List(ctx, 1, &dto.FileListRequest{Path: "docs/q3"})
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "report.pdf", remaining[0].Name)

	// both folder rows survive since neither subtree finished
	assert.Len(t, f.folderRepo.rows, 2)
}

func TestDeleteRecursiveMissingFolder(t *testing.T) {
	f := newFolderFixture()

	err := f.folders.DeleteRecursive(context.Background(), 1, &dto.FolderDeleteRequest{ID: 404})
	assert.ErrorIs(t, err, code.ErrorFolderNotFound)
}

func TestDeleteRecursiveEmptyFolder(t *testing.T) {
	f := newFolderFixture()
	ctx := context.Background()

	created, err := f.folders.Create(ctx, 1, &dto.FolderCreateRequest{Name: "empty"})
	require.NoError(t, err)

	require.NoError(t, f.folders.DeleteRecursive(ctx, 1, &dto.FolderDeleteRequest{ID: created.ID}))
	assert.Empty(t, f.folderRepo.rows)
}
