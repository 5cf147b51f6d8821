package task

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/aigility/cloud-vault-service/internal/domain"
	"github.com/aigility/cloud-vault-service/pkg/storage"
)

func init() {
	Register(NewOrphanSweepTask)
}

// Objects younger than this are never swept; the metadata row of a
// fresh upload may still be on its way to the database.
const orphanGracePeriod = time.Hour

// fileLookup is the slice of the file repository the sweep needs.
type fileLookup interface {
	GetByStoragePath(ctx context.Context, storagePath string) (*domain.File, error)
}

// OrphanSweepTask removes objects that no metadata row references.
// Uploads write the object before the row, so a failed row insert
// leaves the object behind; this task reconciles. It ticks every
// minute and fires when the configured cron schedule is due.
type OrphanSweepTask struct {
	store    storage.Storager
	files    fileLookup
	logger   *zap.Logger
	schedule cron.Schedule
	next     time.Time
}

// NewOrphanSweepTask builds the sweep from the cron spec in the
// configuration. An empty spec disables the task.
func NewOrphanSweepTask(deps *Deps) (Task, error) {
	spec := deps.Config.App.OrphanSweepSpec
	if spec == "" {
		return nil, nil
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	schedule, err := parser.Parse(spec)
	if err != nil {
		return nil, err
	}

	return &OrphanSweepTask{
		store:    deps.Store,
		files:    deps.FileRepo,
		logger:   deps.Logger,
		schedule: schedule,
		next:     schedule.Next(time.Now()),
	}, nil
}

func (t *OrphanSweepTask) Name() string {
	return "OrphanSweepTask"
}

func (t *OrphanSweepTask) LoopInterval() time.Duration {
	return time.Minute
}

func (t *OrphanSweepTask) IsStartupRun() bool {
	return false
}

// Run fires the sweep when the schedule is due, otherwise returns
// immediately.
func (t *OrphanSweepTask) Run(ctx context.Context) error {
	now := time.Now()
	if now.Before(t.next) {
		return nil
	}
	t.next = t.schedule.Next(now)
	return t.Sweep(ctx, now)
}

// Sweep enumerates the object store and deletes every object past the
// grace period that has no metadata row. Backends that cannot
// enumerate are skipped.
func (t *OrphanSweepTask) Sweep(ctx context.Context, now time.Time) error {
	lister, ok := t.store.(storage.Lister)
	if !ok {
		return nil
	}

	keys, err := lister.ListObjectKeys("")
	if err != nil {
		return err
	}

	var removed int
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return err
		}

		_, err := t.files.GetByStoragePath(ctx, key)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		modTime, err := lister.ObjectModTime(key)
		if err != nil {
			// the object may be gone already, skip it this round
			continue
		}
		if now.Sub(modTime) < orphanGracePeriod {
			continue
		}

		if err := t.store.Delete(key); err != nil {
			t.logger.Warn("orphan sweep delete failed",
				zap.String("key", key),
				zap.Error(err))
			continue
		}
		removed++
		t.logger.Info("orphan object removed", zap.String("key", key))
	}

	if removed > 0 {
		t.logger.Info("orphan sweep finished", zap.Int("removed", removed))
	}
	return nil
}
