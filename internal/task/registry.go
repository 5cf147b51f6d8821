package task

import (
	"sync"

	"go.uber.org/zap"

	"github.com/aigility/cloud-vault-service/internal/app"
	"github.com/aigility/cloud-vault-service/internal/domain"
	"github.com/aigility/cloud-vault-service/pkg/storage"
)

// Deps carries the shared dependencies handed to every task factory.
type Deps struct {
	Config   *app.AppConfig
	Logger   *zap.Logger
	Store    storage.Storager
	FileRepo domain.FileRepository
}

// TaskFactory builds a task from the shared dependencies. Returning a
// nil task without an error means the task is disabled by configuration.
type TaskFactory func(deps *Deps) (Task, error)

var (
	taskRegistry  []TaskFactory
	registryMutex sync.RWMutex
)

// Register adds a task factory. Called from init() in each task file.
func Register(factory TaskFactory) {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	taskRegistry = append(taskRegistry, factory)
}

// GetFactories returns a copy of all registered factories.
func GetFactories() []TaskFactory {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	factories := make([]TaskFactory, len(taskRegistry))
	copy(factories, taskRegistry)
	return factories
}
