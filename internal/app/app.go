package app

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/aigility/cloud-vault-service/internal/dao"
	"github.com/aigility/cloud-vault-service/internal/domain"
	"github.com/aigility/cloud-vault-service/internal/dto"
	"github.com/aigility/cloud-vault-service/internal/service"
	pkgapp "github.com/aigility/cloud-vault-service/pkg/app"
	"github.com/aigility/cloud-vault-service/pkg/storage"
	"github.com/aigility/cloud-vault-service/pkg/workerpool"
	"github.com/aigility/cloud-vault-service/pkg/writequeue"
)

// notifierHub forwards change events to the currently registered
// target. Services hold the hub; the websocket router registers itself
// once it exists, which breaks the construction cycle between the two.
type notifierHub struct {
	target atomic.Value // service.ChangeNotifier
}

func (h *notifierHub) NotifyChange(uid int64, payload *dto.ItemsChangedPayload) {
	if t, ok := h.target.Load().(service.ChangeNotifier); ok {
		t.NotifyChange(uid, payload)
	}
}

// App is the application container holding every dependency and service.
type App struct {
	config *AppConfig
	logger *zap.Logger
	DB     *gorm.DB
	Dao    *dao.Dao

	workerPool    *workerpool.Pool
	writeQueueMgr *writequeue.Manager

	Store storage.Storager

	FileRepo   domain.FileRepository
	FolderRepo domain.FolderRepository
	UserRepo   domain.UserRepository

	FileService   service.FileService
	FolderService service.FolderService
	ItemService   service.ItemService
	UserService   service.UserService

	TokenManager pkgapp.TokenManager

	notifier  *notifierHub
	StartTime time.Time

	shutdownCh chan struct{}
	wg         sync.WaitGroup
}

// NewApp builds the container and wires all layers.
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	a := &App{
		config:     cfg,
		logger:     logger,
		DB:         db,
		notifier:   &notifierHub{},
		StartTime:  time.Now(),
		shutdownCh: make(chan struct{}),
	}

	wpConfig := cfg.GetWorkerPoolConfig()
	a.workerPool = workerpool.New(&wpConfig, logger)

	wqConfig := cfg.GetWriteQueueConfig()
	a.writeQueueMgr = writequeue.New(&wqConfig, logger)

	a.Dao = dao.New(db, logger)

	storageConfig := cfg.Storage
	if storageConfig.Type == "" {
		storageConfig.Type = storage.LOCAL
	}
	store, err := storage.NewClient(&storageConfig)
	if err != nil {
		return nil, fmt.Errorf("init storage backend: %w", err)
	}
	a.Store = store

	a.TokenManager = pkgapp.NewTokenManager(pkgapp.TokenConfig{
		SecretKey: cfg.Security.AuthTokenKey,
		Issuer:    pkgapp.DefaultTokenIssuer,
		Expiry:    cfg.GetTokenExpiry(),
	})

	a.FileRepo = dao.NewFileRepository(a.Dao)
	a.FolderRepo = dao.NewFolderRepository(a.Dao)
	a.UserRepo = dao.NewUserRepository(a.Dao)

	svcConfig := cfg.GetServiceConfig()

	a.FileService = service.NewFileService(a.FileRepo, a.FolderRepo, a.Store, a.notifier, a.writeQueueMgr, svcConfig, logger)
	a.FolderService = service.NewFolderService(a.FolderRepo, a.FileRepo, a.FileService, a.notifier, a.writeQueueMgr, logger)
	a.ItemService = service.NewItemService(a.FileService, a.FolderService)
	a.UserService = service.NewUserService(a.UserRepo, a.TokenManager, svcConfig)

	logger.Info("app container initialized",
		zap.String("storageType", storageConfig.Type),
		zap.Int("workerPoolMaxWorkers", wpConfig.MaxWorkers),
		zap.Int("writeQueueCapacity", wqConfig.QueueCapacity))

	return a, nil
}

// SetChangeNotifier registers the live change fan-out, normally the
// websocket router.
func (a *App) SetChangeNotifier(n service.ChangeNotifier) {
	a.notifier.target.Store(n)
}

func (a *App) Config() *AppConfig {
	return a.config
}

func (a *App) Logger() *zap.Logger {
	return a.logger
}

func (a *App) Version() VersionInfo {
	return VersionInfo{
		Version:   Version,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
}

func (a *App) GetAuthTokenKey() string {
	return a.config.Security.AuthTokenKey
}

// SubmitTask queues a task on the worker pool and waits for it.
func (a *App) SubmitTask(ctx context.Context, task func(context.Context) error) error {
	return a.workerPool.Submit(ctx, task)
}

// SubmitTaskAsync queues a task without waiting for its result.
func (a *App) SubmitTaskAsync(ctx context.Context, task func(context.Context) error) error {
	return a.workerPool.SubmitAsync(ctx, task)
}

// ExecuteWrite serializes a metadata write through the per-user queue.
func (a *App) ExecuteWrite(ctx context.Context, uid int64, fn func() error) error {
	return a.writeQueueMgr.Execute(ctx, uid, fn)
}

func (a *App) WorkerPool() *workerpool.Pool {
	return a.workerPool
}

func (a *App) WriteQueueManager() *writequeue.Manager {
	return a.writeQueueMgr
}

// TrackOperation registers a background operation the shutdown waits
// for; call the returned function when the operation finishes.
func (a *App) TrackOperation() func() {
	a.wg.Add(1)
	return func() {
		a.wg.Done()
	}
}

func (a *App) IsShuttingDown() bool {
	select {
	case <-a.shutdownCh:
		return true
	default:
		return false
	}
}

func (a *App) ShutdownCh() <-chan struct{} {
	return a.shutdownCh
}

// Close releases the database connection.
func (a *App) Close() error {
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		a.logger.Info("database connection closed")
	}
	return nil
}

// DefaultShutdownTimeout bounds Shutdown when no context is supplied.
const DefaultShutdownTimeout = 30 * time.Second

// Shutdown drains the container in order: worker pool, write queues,
// tracked background operations, database.
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("app container shutting down")

	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
	}

	select {
	case <-a.shutdownCh:
		return nil
	default:
		close(a.shutdownCh)
	}

	var errs []error

	if a.workerPool != nil {
		if err := a.workerPool.Shutdown(ctx); err != nil {
			a.logger.Warn("worker pool shutdown error", zap.Error(err))
			errs = append(errs, fmt.Errorf("worker pool shutdown: %w", err))
		}
	}

	if a.writeQueueMgr != nil {
		if err := a.writeQueueMgr.Shutdown(ctx); err != nil {
			a.logger.Warn("write queue manager shutdown error", zap.Error(err))
			errs = append(errs, fmt.Errorf("write queue manager shutdown: %w", err))
		}
	}

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		a.logger.Warn("shutdown timeout waiting for background operations")
		errs = append(errs, fmt.Errorf("background operations timeout: %w", ctx.Err()))
	}

	if err := a.Close(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown completed with %d errors: %v", len(errs), errs)
	}

	a.logger.Info("app container shutdown completed")
	return nil
}
