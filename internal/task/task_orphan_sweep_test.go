package task

import (
	"context"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/aigility/cloud-vault-service/internal/app"
	"github.com/aigility/cloud-vault-service/internal/domain"
	"github.com/aigility/cloud-vault-service/pkg/safe_close"
)

func testConfig(spec string) *app.AppConfig {
	cfg := &app.AppConfig{}
	cfg.App.OrphanSweepSpec = spec
	return cfg
}

// sweepStore is an in-memory object store with enumeration.
type sweepStore struct {
	mu       sync.Mutex
	modTimes map[string]time.Time
	deleted  []string
}

func newSweepStore() *sweepStore {
	return &sweepStore{modTimes: map[string]time.Time{}}
}

func (s *sweepStore) PutFile(fileKey string, file io.Reader, contentType string, modTime time.Time) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modTimes[fileKey] = modTime
	return fileKey, nil
}

func (s *sweepStore) GetFile(fileKey string) (io.ReadCloser, error) {
	return nil, os.ErrNotExist
}

func (s *sweepStore) Delete(fileKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.modTimes, fileKey)
	s.deleted = append(s.deleted, fileKey)
	return nil
}

func (s *sweepStore) ListObjectKeys(prefix string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.modTimes))
	for k := range s.modTimes {
		keys = append(keys, k)
	}
	return keys, nil
}

func (s *sweepStore) ObjectModTime(fileKey string) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	mt, ok := s.modTimes[fileKey]
	if !ok {
		return time.Time{}, os.ErrNotExist
	}
	return mt, nil
}

func (s *sweepStore) has(fileKey string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.modTimes[fileKey]
	return ok
}

// blindStore cannot enumerate its objects.
type blindStore struct{}

func (blindStore) PutFile(fileKey string, file io.Reader, contentType string, modTime time.Time) (string, error) {
	return fileKey, nil
}
func (blindStore) GetFile(fileKey string) (io.ReadCloser, error) { return nil, os.ErrNotExist }
func (blindStore) Delete(fileKey string) error                   { return nil }

// knownKeys answers GetByStoragePath from a fixed set.
type knownKeys map[string]bool

func (k knownKeys) GetByStoragePath(ctx context.Context, storagePath string) (*domain.File, error) {
	if k[storagePath] {
		return &domain.File{StoragePath: storagePath}, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func newSweepTask(store *sweepStore, known knownKeys) *OrphanSweepTask {
	return &OrphanSweepTask{
		store:  store,
		files:  known,
		logger: zap.NewNop(),
	}
}

func TestSweepRemovesUnreferencedObjects(t *testing.T) {
	now := time.Now()
	store := newSweepStore()
	store.modTimes["1/docs/kept.pdf"] = now.Add(-48 * time.Hour)
	store.modTimes["1/docs/orphan.pdf"] = now.Add(-48 * time.Hour)

	task := newSweepTask(store, knownKeys{"1/docs/kept.pdf": true})

	err := task.Sweep(context.Background(), now)
	assert.NoError(t, err)
	assert.True(t, store.has("1/docs/kept.pdf"))
	assert.False(t, store.has("1/docs/orphan.pdf"))
	assert.Equal(t, []string{"1/docs/orphan.pdf"}, store.deleted)
}

func TestSweepKeepsFreshOrphans(t *testing.T) {
	now := time.Now()
	store := newSweepStore()
	store.modTimes["1/inflight.bin"] = now.Add(-time.Minute)

	task := newSweepTask(store, knownKeys{})

	err := task.Sweep(context.Background(), now)
	assert.NoError(t, err)
	assert.True(t, store.has("1/inflight.bin"))
	assert.Empty(t, store.deleted)
}

func TestSweepSkipsBackendsWithoutListing(t *testing.T) {
	task := &OrphanSweepTask{
		store:  blindStore{},
		files:  knownKeys{},
		logger: zap.NewNop(),
	}

	err := task.Sweep(context.Background(), time.Now())
	assert.NoError(t, err)
}

func TestRunHonorsSchedule(t *testing.T) {
	now := time.Now()
	store := newSweepStore()
	store.modTimes["2/stale.bin"] = now.Add(-48 * time.Hour)

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	schedule, err := parser.Parse("0 4 * * *")
	assert.NoError(t, err)

	task := newSweepTask(store, knownKeys{})
	task.schedule = schedule

	// not due yet
	task.next = now.Add(time.Hour)
	assert.NoError(t, task.Run(context.Background()))
	assert.True(t, store.has("2/stale.bin"))

	// due, sweeps and advances the next fire time
	task.next = now.Add(-time.Second)
	assert.NoError(t, task.Run(context.Background()))
	assert.False(t, store.has("2/stale.bin"))
	assert.True(t, task.next.After(time.Now()))
}

func TestOrphanSweepDisabledWithoutSpec(t *testing.T) {
	deps := &Deps{Logger: zap.NewNop()}
	deps.Config = testConfig("")

	task, err := NewOrphanSweepTask(deps)
	assert.NoError(t, err)
	assert.Nil(t, task)
}

func TestOrphanSweepRejectsBadSpec(t *testing.T) {
	deps := &Deps{Logger: zap.NewNop()}
	deps.Config = testConfig("not a cron spec")

	task, err := NewOrphanSweepTask(deps)
	assert.Error(t, err)
	assert.Nil(t, task)
}

// countTask counts its Run invocations.
type countTask struct {
	runs atomic.Int64
}

func (c *countTask) Name() string { return "CountTask" }

func (c *countTask) Run(ctx context.Context) error {
	c.runs.Add(1)
	return nil
}

func (c *countTask) LoopInterval() time.Duration { return 5 * time.Millisecond }

func (c *countTask) IsStartupRun() bool { return false }

func TestSchedulerRunsAndStops(t *testing.T) {
	sc := safe_close.NewSafeClose()
	s := NewScheduler(zap.NewNop(), sc)

	ct := &countTask{}
	s.AddTask(ct)
	s.Start()

	assert.Eventually(t, func() bool {
		return ct.runs.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	sc.SendCloseSignal(nil)
	assert.NoError(t, sc.WaitClosed())
}
