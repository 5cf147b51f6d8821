package service

import (
	"bytes"
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/aigility/cloud-vault-service/internal/domain"
	"github.com/aigility/cloud-vault-service/internal/dto"
)

// memFileRepo is an in-memory domain.FileRepository.
type memFileRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*domain.File

	failCreate bool
	failDelete map[int64]bool
}

func newMemFileRepo() *memFileRepo {
	return &memFileRepo{rows: map[int64]*domain.File{}, failDelete: map[int64]bool{}}
}

func (r *memFileRepo) clone(f *domain.File) *domain.File {
	c := *f
	return &c
}

func (r *memFileRepo) GetByID(ctx context.Context, id, uid int64) (*domain.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.rows[id]
	if !ok || f.UID != uid {
		return nil, gorm.ErrRecordNotFound
	}
	return r.clone(f), nil
}

func (r *memFileRepo) GetByPathName(ctx context.Context, folderPath, name string, uid int64) (*domain.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.rows {
		if f.UID == uid && f.Path == folderPath && f.Name == name {
			return r.clone(f), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memFileRepo) GetByStoragePath(ctx context.Context, storagePath string) (*domain.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.rows {
		if f.StoragePath == storagePath {
			return r.clone(f), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memFileRepo) Create(ctx context.Context, file *domain.File) (*domain.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate {
		return nil, gorm.ErrInvalidDB
	}
	r.nextID++
	c := r.clone(file)
	c.ID = r.nextID
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	r.rows[c.ID] = c
	return r.clone(c), nil
}

func (r *memFileRepo) Update(ctx context.Context, file *domain.File) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.rows[file.ID]
	if !ok || existing.UID != file.UID {
		return gorm.ErrRecordNotFound
	}
	c := r.clone(file)
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = time.Now()
	r.rows[file.ID] = c
	return nil
}

func (r *memFileRepo) Delete(ctx context.Context, id, uid int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failDelete[id] {
		return gorm.ErrInvalidDB
	}
	delete(r.rows, id)
	return nil
}

func (r *memFileRepo) list(uid int64, match func(*domain.File) bool) []*domain.File {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.File
	for _, f := range r.rows {
		if f.UID == uid && match(f) {
			out = append(out, r.clone(f))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *memFileRepo) ListByFolder(ctx context.Context, folderID, uid int64) ([]*domain.File, error) {
	return r.list(uid, func(f *domain.File) bool { return f.FolderID == folderID }), nil
}

func (r *memFileRepo) ListByPath(ctx context.Context, folderPath string, uid int64) ([]*domain.File, error) {
	return r.list(uid, func(f *domain.File) bool { return f.Path == folderPath }), nil
}

func (r *memFileRepo) ListFavorites(ctx context.Context, uid int64) ([]*domain.File, error) {
	return r.list(uid, func(f *domain.File) bool { return f.IsFavorite }), nil
}

func (r *memFileRepo) ListShared(ctx context.Context, uid int64) ([]*domain.File, error) {
	return r.list(uid, func(f *domain.File) bool { return f.IsShared }), nil
}

func (r *memFileRepo) ListRecent(ctx context.Context, uid int64, limit int) ([]*domain.File, error) {
	all := r.list(uid, func(*domain.File) bool { return true })
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *memFileRepo) CountSizeSum(ctx context.Context, uid int64) (*domain.CountSizeResult, error) {
	all := r.list(uid, func(*domain.File) bool { return true })
	res := &domain.CountSizeResult{}
	for _, f := range all {
		res.Count++
		res.Size += f.Size
	}
	return res, nil
}

// memFolderRepo is an in-memory domain.FolderRepository.
type memFolderRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*domain.Folder
}

func newMemFolderRepo() *memFolderRepo {
	return &memFolderRepo{rows: map[int64]*domain.Folder{}}
}

func (r *memFolderRepo) clone(f *domain.Folder) *domain.Folder {
	c := *f
	return &c
}

func (r *memFolderRepo) GetByID(ctx context.Context, id, uid int64) (*domain.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.rows[id]
	if !ok || f.UID != uid {
		return nil, gorm.ErrRecordNotFound
	}
	return r.clone(f), nil
}

func (r *memFolderRepo) GetByPath(ctx context.Context, folderPath string, uid int64) (*domain.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.rows {
		if f.UID == uid && f.Path == folderPath {
			return r.clone(f), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memFolderRepo) Create(ctx context.Context, folder *domain.Folder) (*domain.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	c := r.clone(folder)
	c.ID = r.nextID
	r.rows[c.ID] = c
	return r.clone(c), nil
}

func (r *memFolderRepo) Delete(ctx context.Context, id, uid int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, id)
	return nil
}

func (r *memFolderRepo) ListByParent(ctx context.Context, parentID, uid int64) ([]*domain.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Folder
	for _, f := range r.rows {
		if f.UID == uid && f.ParentID == parentID {
			out = append(out, r.clone(f))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memFolderRepo) ListByPath(ctx context.Context, folderPath string, uid int64) ([]*domain.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Folder
	for _, f := range r.rows {
		if f.UID != uid {
			continue
		}
		parent := ""
		if idx := lastSlash(f.Path); idx >= 0 {
			parent = f.Path[:idx]
		}
		if parent == folderPath {
			out = append(out, r.clone(f))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func lastSlash(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '/' {
			return i
		}
	}
	return -1
}

func folderAt(uid int64, name, path string, parentID int64) *domain.Folder {
	return &domain.Folder{UID: uid, Name: name, Path: path, ParentID: parentID}
}

// fakeStore is an in-memory storage.Storager with failure injection.
type fakeStore struct {
	mu         sync.Mutex
	objects    map[string][]byte
	failPut    bool
	failDelete map[string]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}, failDelete: map[string]bool{}}
}

func (s *fakeStore) PutFile(fileKey string, file io.Reader, contentType string, modTime time.Time) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failPut {
		return "", io.ErrClosedPipe
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	s.objects[fileKey] = data
	return fileKey, nil
}

func (s *fakeStore) GetFile(fileKey string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[fileKey]
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeStore) Delete(fileKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failDelete[fileKey] {
		return io.ErrClosedPipe
	}
	delete(s.objects, fileKey)
	return nil
}

func (s *fakeStore) has(fileKey string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[fileKey]
	return ok
}

// recordNotifier captures change events.
type recordNotifier struct {
	mu     sync.Mutex
	events []*dto.ItemsChangedPayload
}

func (n *recordNotifier) NotifyChange(uid int64, payload *dto.ItemsChangedPayload) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, payload)
}

func (n *recordNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.events)
}
