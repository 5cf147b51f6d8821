package browser

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aigility/cloud-vault-service/internal/dto"
)

// stubGateway serves canned listings per path and records calls.
// onList, when set, runs inside List before the response is returned.
type stubGateway struct {
	listings map[string]*dto.ItemListDTO
	listErr  error
	onList   func(path string)

	toggledFavorite []int64
	toggledShared   []int64
	deletedFiles    []int64
	deletedFolders  []int64
	createdFolders  []string
	listCalls       []string
}

func newStubGateway() *stubGateway {
	return &stubGateway{listings: map[string]*dto.ItemListDTO{}}
}

func (g *stubGateway) serve(path string, folders []*dto.FolderDTO, files []*dto.FileDTO) {
	g.listings[path] = &dto.ItemListDTO{Path: path, Folders: folders, Files: files}
}

func (g *stubGateway) List(ctx context.Context, uid int64, path string) (*dto.ItemListDTO, error) {
	g.listCalls = append(g.listCalls, path)
	if g.onList != nil {
		fn := g.onList
		g.onList = nil
		fn(path)
	}
	if g.listErr != nil {
		return nil, g.listErr
	}
	if l, ok := g.listings[path]; ok {
		return l, nil
	}
	return &dto.ItemListDTO{Path: path, Folders: []*dto.FolderDTO{}, Files: []*dto.FileDTO{}}, nil
}

func (g *stubGateway) ToggleFavorite(ctx context.Context, uid, id int64) error {
	g.toggledFavorite = append(g.toggledFavorite, id)
	return nil
}

func (g *stubGateway) ToggleShared(ctx context.Context, uid, id int64) error {
	g.toggledShared = append(g.toggledShared, id)
	return nil
}

func (g *stubGateway) DeleteFile(ctx context.Context, uid, id int64) error {
	g.deletedFiles = append(g.deletedFiles, id)
	return nil
}

func (g *stubGateway) DeleteFolder(ctx context.Context, uid, id int64) error {
	g.deletedFolders = append(g.deletedFolders, id)
	return nil
}

func (g *stubGateway) CreateFolder(ctx context.Context, uid int64, name, path string) error {
	g.createdFolders = append(g.createdFolders, path+"/"+name)
	return nil
}

func file(id int64, name string) *dto.FileDTO {
	return &dto.FileDTO{ID: id, Name: name}
}

func folder(id int64, name, path string) *dto.FolderDTO {
	return &dto.FolderDTO{ID: id, Name: name, Path: path}
}

func TestNavigateLoadsItems(t *testing.T) {
	g := newStubGateway()
	g.serve("docs", []*dto.FolderDTO{folder(1, "q3", "docs/q3")}, []*dto.FileDTO{file(10, "top.txt")})
	b := New(g, 1, nil)

	require.NoError(t, b.Navigate(context.Background(), "docs"))

	state := b.State()
	assert.Equal(t, "docs", state.Path)
	assert.False(t, state.Loading)
	require.Len(t, state.Items, 2)
	assert.Equal(t, KindFolder, state.Items[0].Kind)
	assert.Equal(t, "q3", state.Items[0].Name)
	assert.Equal(t, KindFile, state.Items[1].Kind)
	assert.Equal(t, "top.txt", state.Items[1].Name)
}

func TestFetchFailureKeepsStaleList(t *testing.T) {
	g := newStubGateway()
	g.serve("docs", nil, []*dto.FileDTO{file(10, "top.txt")})
	b := New(g, 1, nil)
	ctx := context.Background()

	require.NoError(t, b.Navigate(ctx, "docs"))
	g.listErr = errors.New("backend down")

	err := b.Navigate(ctx, "other")
	require.Error(t, err)

	state := b.State()
	assert.Equal(t, "other", state.Path)
	require.Len(t, state.Items, 1)
	assert.Equal(t, "top.txt", state.Items[0].Name)
	assert.False(t, state.Loading)
}

// A listing response that arrives after a newer navigation must not
// overwrite the newer listing.
func TestStaleResponseDiscarded(t *testing.T) {
	g := newStubGateway()
	g.serve("old", nil, []*dto.FileDTO{file(1, "old.txt")})
	g.serve("new", nil, []*dto.FileDTO{file(2, "new.txt")})
	b := New(g, 1, nil)
	ctx := context.Background()

	// the fetch for "old" triggers a navigation to "new" while still
	// in flight, so its own response comes back superseded
	g.onList = func(string) {
		require.NoError(t, b.Navigate(ctx, "new"))
	}
	require.NoError(t, b.Navigate(ctx, "old"))

	state := b.State()
	assert.Equal(t, "new", state.Path)
	require.Len(t, state.Items, 1)
	assert.Equal(t, "new.txt", state.Items[0].Name)
}

func TestSelectFolderNavigatesAndClearsSelection(t *testing.T) {
	g := newStubGateway()
	g.serve("", []*dto.FolderDTO{folder(1, "docs", "docs")}, []*dto.FileDTO{file(10, "a.txt")})
	b := New(g, 1, nil)
	ctx := context.Background()

	require.NoError(t, b.Navigate(ctx, ""))
	require.NoError(t, b.Select(ctx, b.State().Items[1]))
	require.NotNil(t, b.State().Selected)

	require.NoError(t, b.Select(ctx, b.State().Items[0]))

	state := b.State()
	assert.Equal(t, "docs", state.Path)
	assert.Nil(t, state.Selected)
}

func TestSelectFileKeepsPath(t *testing.T) {
	g := newStubGateway()
	g.serve("docs", nil, []*dto.FileDTO{file(10, "a.txt")})
	b := New(g, 1, nil)
	ctx := context.Background()

	require.NoError(t, b.Navigate(ctx, "docs"))
	require.NoError(t, b.Select(ctx, b.State().Items[0]))

	state := b.State()
	assert.Equal(t, "docs", state.Path)
	require.NotNil(t, state.Selected)
	assert.Equal(t, int64(10), state.Selected.ID)
}

func TestSearchFilterCaseInsensitiveSubstring(t *testing.T) {
	g := newStubGateway()
	g.serve("", []*dto.FolderDTO{folder(1, "Reports", "Reports")},
		[]*dto.FileDTO{file(10, "Report.pdf"), file(11, "budget.xlsx")})
	b := New(g, 1, nil)

	require.NoError(t, b.Navigate(context.Background(), ""))
	b.SetSearchQuery("report")

	var names []string
	for _, item := range b.VisibleItems() {
		names = append(names, item.Name)
	}
	assert.Equal(t, []string{"Reports", "Report.pdf"}, names)

	b.SetSearchQuery("")
	assert.Len(t, b.VisibleItems(), 3)
}

func TestSearchDoesNotRefetch(t *testing.T) {
	g := newStubGateway()
	b := New(g, 1, nil)

	require.NoError(t, b.Navigate(context.Background(), ""))
	calls := len(g.listCalls)

	b.SetSearchQuery("anything")
	b.VisibleItems()
	assert.Equal(t, calls, len(g.listCalls))
}

func TestRemoteChangeRefetchesCurrentPath(t *testing.T) {
	g := newStubGateway()
	g.serve("docs", nil, []*dto.FileDTO{file(10, "a.txt")})
	b := New(g, 1, nil)
	ctx := context.Background()

	require.NoError(t, b.Navigate(ctx, "docs"))
	g.serve("docs", nil, []*dto.FileDTO{file(10, "a.txt"), file(11, "b.txt")})

	require.NoError(t, b.OnRemoteChange(ctx, &dto.ItemsChangedPayload{
		Resource: dto.ChangeResourceFiles,
		Event:    dto.ChangeEventCreate,
		Path:     "docs",
	}))
	assert.Len(t, b.State().Items, 2)
}

func TestActionsRefreshAfterSuccess(t *testing.T) {
	g := newStubGateway()
	b := New(g, 1, nil)
	ctx := context.Background()

	require.NoError(t, b.Navigate(ctx, "docs"))
	base := len(g.listCalls)

	require.NoError(t, b.ToggleFavorite(ctx, 10))
	require.NoError(t, b.ToggleShared(ctx, 10))
	require.NoError(t, b.DeleteFile(ctx, 10))
	require.NoError(t, b.DeleteFolder(ctx, 2))
	require.NoError(t, b.CreateFolder(ctx, "new"))

	assert.Equal(t, []int64{10}, g.toggledFavorite)
	assert.Equal(t, []int64{10}, g.toggledShared)
	assert.Equal(t, []int64{10}, g.deletedFiles)
	assert.Equal(t, []int64{2}, g.deletedFolders)
	assert.Equal(t, []string{"docs/new"}, g.createdFolders)
	assert.Equal(t, base+5, len(g.listCalls))
}

func TestDeleteSelectedFileClearsSelection(t *testing.T) {
	g := newStubGateway()
	g.serve("docs", nil, []*dto.FileDTO{file(10, "a.txt")})
	b := New(g, 1, nil)
	ctx := context.Background()

	require.NoError(t, b.Navigate(ctx, "docs"))
	require.NoError(t, b.Select(ctx, b.State().Items[0]))
	require.NoError(t, b.DeleteFile(ctx, 10))
	assert.Nil(t, b.State().Selected)
}

func TestViewModeDefaultsToGrid(t *testing.T) {
	b := New(newStubGateway(), 1, nil)
	assert.Equal(t, ViewModeGrid, b.State().ViewMode)

	b.SetViewMode(ViewModeList)
	assert.Equal(t, ViewModeList, b.State().ViewMode)
}
