package task

import (
	"go.uber.org/zap"

	"github.com/aigility/cloud-vault-service/pkg/safe_close"
)

// Manager builds the registered tasks and hands them to the scheduler.
type Manager struct {
	scheduler *Scheduler
	logger    *zap.Logger
}

func NewManager(logger *zap.Logger, sc *safe_close.SafeClose) *Manager {
	return &Manager{
		scheduler: NewScheduler(logger, sc),
		logger:    logger,
	}
}

// RegisterTasks instantiates every registered factory. A factory that
// returns a nil task is disabled and skipped.
func (m *Manager) RegisterTasks(deps *Deps) error {
	for _, factory := range GetFactories() {
		t, err := factory(deps)
		if err != nil {
			m.logger.Warn("failed to create task", zap.Error(err))
			return err
		}
		if t == nil {
			continue
		}
		m.scheduler.AddTask(t)
	}
	return nil
}

// Start launches all registered tasks.
func (m *Manager) Start() {
	m.scheduler.Start()
}
