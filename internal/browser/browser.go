// Package browser holds the per-session view state of the vault: the
// current path, the loaded item list, selection, search and view mode.
// It sits between the presentation surface and the services and owns
// the fetch lifecycle, including discarding stale responses.
package browser

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/aigility/cloud-vault-service/internal/dto"
)

type ViewMode string

const (
	ViewModeGrid ViewMode = "grid"
	ViewModeList ViewMode = "list"
)

type ItemKind string

const (
	KindFile   ItemKind = "file"
	KindFolder ItemKind = "folder"
)

// Item is the tagged file-or-folder union rendered by the listing.
type Item struct {
	Kind       ItemKind
	ID         int64
	Name       string
	Path       string
	Size       int64
	MimeType   string
	Category   string
	IsFavorite bool
	IsShared   bool
}

// State is a snapshot of the container. Items always reflects the last
// fetch that completed without being superseded; a failed fetch leaves
// the previous list in place.
type State struct {
	Path        string
	ViewMode    ViewMode
	SearchQuery string
	Selected    *Item
	Items       []Item
	Loading     bool
}

// Browser drives the state machine for one signed-in user.
type Browser struct {
	gateway Gateway
	uid     int64
	logger  *zap.Logger

	mu    sync.Mutex
	seq   uint64
	state State
}

func New(gateway Gateway, uid int64, logger *zap.Logger) *Browser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Browser{
		gateway: gateway,
		uid:     uid,
		logger:  logger,
		state: State{
			ViewMode: ViewModeGrid,
			Items:    []Item{},
		},
	}
}

// State returns a copy; the selected item and the slice are detached
// from the container's own state.
func (b *Browser) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := b.state
	if s.Selected != nil {
		sel := *s.Selected
		s.Selected = &sel
	}
	s.Items = append([]Item(nil), s.Items...)
	return s
}

// Navigate enters a path, clears the selection and fetches its items.
// On fetch failure the previous item list stays visible; the error is
// returned for the caller to surface as a notification.
func (b *Browser) Navigate(ctx context.Context, path string) error {
	b.mu.Lock()
	b.state.Path = path
	b.state.Selected = nil
	b.mu.Unlock()
	return b.fetch(ctx, path)
}

// Refresh re-fetches the current path. Change notifications and
// successful item actions both land here; overlapping refreshes are
// not de-duplicated, the newest one wins.
func (b *Browser) Refresh(ctx context.Context) error {
	b.mu.Lock()
	path := b.state.Path
	b.mu.Unlock()
	return b.fetch(ctx, path)
}

// fetch runs one listing round-trip. Each fetch takes a sequence
// number; a response whose number is no longer the latest is dropped,
// so a slow response cannot overwrite a newer navigation.
func (b *Browser) fetch(ctx context.Context, path string) error {
	b.mu.Lock()
	b.seq++
	seq := b.seq
	b.state.Loading = true
	b.mu.Unlock()

	listing, err := b.gateway.List(ctx, b.uid, path)

	b.mu.Lock()
	defer b.mu.Unlock()
	if seq != b.seq {
		b.logger.Debug("discarding stale listing response",
			zap.String("path", path), zap.Uint64("seq", seq))
		return nil
	}
	b.state.Loading = false
	if err != nil {
		// keep the stale list on screen
		b.logger.Warn("listing fetch failed", zap.String("path", path), zap.Error(err))
		return err
	}
	b.state.Items = flatten(listing)
	return nil
}

// Select applies the item selection rule: a folder navigates into its
// path and drops the selection, a file becomes the selected item and
// leaves the path alone.
func (b *Browser) Select(ctx context.Context, item Item) error {
	if item.Kind == KindFolder {
		return b.Navigate(ctx, item.Path)
	}
	b.mu.Lock()
	sel := item
	b.state.Selected = &sel
	b.mu.Unlock()
	return nil
}

// ClearSelection closes the detail panel.
func (b *Browser) ClearSelection() {
	b.mu.Lock()
	b.state.Selected = nil
	b.mu.Unlock()
}

func (b *Browser) SetViewMode(mode ViewMode) {
	b.mu.Lock()
	b.state.ViewMode = mode
	b.mu.Unlock()
}

// SetSearchQuery updates the filter without touching the backend.
func (b *Browser) SetSearchQuery(query string) {
	b.mu.Lock()
	b.state.SearchQuery = query
	b.mu.Unlock()
}

// VisibleItems returns the loaded items filtered by the search query,
// case-insensitive substring on the name.
func (b *Browser) VisibleItems() []Item {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state.SearchQuery == "" {
		return append([]Item(nil), b.state.Items...)
	}
	query := strings.ToLower(b.state.SearchQuery)
	out := []Item{}
	for _, item := range b.state.Items {
		if strings.Contains(strings.ToLower(item.Name), query) {
			out = append(out, item)
		}
	}
	return out
}

// OnRemoteChange handles a push notification by re-fetching the
// current path in full.
func (b *Browser) OnRemoteChange(ctx context.Context, payload *dto.ItemsChangedPayload) error {
	return b.Refresh(ctx)
}

// ToggleFavorite flips the flag remotely, then refreshes. The local
// list is never mutated optimistically.
func (b *Browser) ToggleFavorite(ctx context.Context, id int64) error {
	if err := b.gateway.ToggleFavorite(ctx, b.uid, id); err != nil {
		return err
	}
	return b.Refresh(ctx)
}

func (b *Browser) ToggleShared(ctx context.Context, id int64) error {
	if err := b.gateway.ToggleShared(ctx, b.uid, id); err != nil {
		return err
	}
	return b.Refresh(ctx)
}

func (b *Browser) DeleteFile(ctx context.Context, id int64) error {
	if err := b.gateway.DeleteFile(ctx, b.uid, id); err != nil {
		return err
	}
	b.mu.Lock()
	if b.state.Selected != nil && b.state.Selected.Kind == KindFile && b.state.Selected.ID == id {
		b.state.Selected = nil
	}
	b.mu.Unlock()
	return b.Refresh(ctx)
}

func (b *Browser) DeleteFolder(ctx context.Context, id int64) error {
	if err := b.gateway.DeleteFolder(ctx, b.uid, id); err != nil {
		return err
	}
	return b.Refresh(ctx)
}

func (b *Browser) CreateFolder(ctx context.Context, name string) error {
	b.mu.Lock()
	path := b.state.Path
	b.mu.Unlock()
	if err := b.gateway.CreateFolder(ctx, b.uid, name, path); err != nil {
		return err
	}
	return b.Refresh(ctx)
}

func flatten(listing *dto.ItemListDTO) []Item {
	items := make([]Item, 0, len(listing.Folders)+len(listing.Files))
	for _, f := range listing.Folders {
		items = append(items, Item{
			Kind: KindFolder,
			ID:   f.ID,
			Name: f.Name,
			Path: f.Path,
		})
	}
	for _, f := range listing.Files {
		items = append(items, Item{
			Kind:       KindFile,
			ID:         f.ID,
			Name:       f.Name,
			Path:       f.Path,
			Size:       f.Size,
			MimeType:   f.MimeType,
			Category:   f.Category,
			IsFavorite: f.IsFavorite,
			IsShared:   f.IsShared,
		})
	}
	return items
}
