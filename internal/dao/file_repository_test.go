package dao

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/aigility/cloud-vault-service/internal/domain"
	"github.com/aigility/cloud-vault-service/internal/model"
)

func newTestDao(t *testing.T) *Dao {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrateAll(db))
	return New(db, nil)
}

func TestFileRepositoryCRUD(t *testing.T) {
	repo := NewFileRepository(newTestDao(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.File{
		UID:         1,
		Name:        "report.pdf",
		Path:        "docs",
		Size:        1024,
		MimeType:    "application/pdf",
		StoragePath: "1/docs/report.pdf",
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := repo.GetByID(ctx, created.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", got.Name)
	assert.Equal(t, "docs", got.Path)

	byPath, err := repo.GetByPathName(ctx, "docs", "report.pdf", 1)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byPath.ID)

	got.IsFavorite = true
	require.NoError(t, repo.Update(ctx, got))

	favs, err := repo.ListFavorites(ctx, 1)
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.True(t, favs[0].IsFavorite)

	require.NoError(t, repo.Delete(ctx, created.ID, 1))
	_, err = repo.GetByID(ctx, created.ID, 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFileRepositoryScopedByUID(t *testing.T) {
	repo := NewFileRepository(newTestDao(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.File{UID: 1, Name: "a.txt", MimeType: "text/plain"})
	require.NoError(t, err)

	_, err = repo.GetByID(ctx, created.ID, 2)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	files, err := repo.ListByPath(ctx, "", 2)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFileRepositoryCountSizeSum(t *testing.T) {
	repo := NewFileRepository(newTestDao(t))
	ctx := context.Background()

	for _, size := range []int64{100, 250} {
		_, err := repo.Create(ctx, &domain.File{UID: 1, Name: "f", Size: size})
		require.NoError(t, err)
	}

	sum, err := repo.CountSizeSum(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), sum.Count)
	assert.Equal(t, int64(350), sum.Size)

	empty, err := repo.CountSizeSum(ctx, 9)
	require.NoError(t, err)
	assert.Zero(t, empty.Count)
	assert.Zero(t, empty.Size)
}

func TestFolderRepositoryListByPath(t *testing.T) {
	d := newTestDao(t)
	repo := NewFolderRepository(d)
	ctx := context.Background()

	for _, p := range []struct{ name, path string }{
		{"docs", "docs"},
		{"media", "media"},
		{"q3", "docs/q3"},
		{"deep", "docs/q3/deep"},
	} {
		_, err := repo.Create(ctx, &domain.Folder{UID: 1, Name: p.name, Path: p.path})
		require.NoError(t, err)
	}

	root, err := repo.ListByPath(ctx, "", 1)
	require.NoError(t, err)
	require.Len(t, root, 2)
	assert.Equal(t, "docs", root[0].Name)
	assert.Equal(t, "media", root[1].Name)

	inDocs, err := repo.ListByPath(ctx, "docs", 1)
	require.NoError(t, err)
	require.Len(t, inDocs, 1)
	assert.Equal(t, "q3", inDocs[0].Name)
}
