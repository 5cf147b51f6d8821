// Package writequeue serializes metadata writes per user. SQLite holds a
// single write lock, so funneling each user's row writes through one
// worker avoids "database is locked" under concurrent uploads.
package writequeue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

var (
	ErrWriteQueueFull   = errors.New("write queue is full")
	ErrWriteQueueClosed = errors.New("write queue is closed")
	ErrWriteTimeout     = errors.New("write operation timeout")
)

type Config struct {
	// QueueCapacity per-user pending writes, default 100.
	QueueCapacity int
	// WriteTimeout cap on a single write, default 30s.
	WriteTimeout time.Duration
	// IdleTimeout after which an unused user queue is reclaimed, default 10m.
	IdleTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		QueueCapacity: 100,
		WriteTimeout:  30 * time.Second,
		IdleTimeout:   10 * time.Minute,
	}
}

type writeOp struct {
	ctx    context.Context
	fn     func() error
	result chan error
}

type userWriteQueue struct {
	uid      int64
	ch       chan writeOp
	lastUsed atomic.Int64
	closed   atomic.Bool
	workerWg sync.WaitGroup
	stopCh   chan struct{}
}

// Manager owns one lazily created queue per user.
type Manager struct {
	config Config
	logger *zap.Logger

	queues sync.Map // map[int64]*userWriteQueue

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.RWMutex
	closed bool

	cleanupWg   sync.WaitGroup
	cleanupDone chan struct{}
}

func New(cfg *Config, logger *zap.Logger) *Manager {
	if cfg == nil {
		defaultCfg := DefaultConfig()
		cfg = &defaultCfg
	}
	if cfg.QueueCapacity <= 0 {
		cfg.QueueCapacity = 100
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 30 * time.Second
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = 10 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())

	m := &Manager{
		config:      *cfg,
		logger:      logger,
		ctx:         ctx,
		cancel:      cancel,
		cleanupDone: make(chan struct{}),
	}

	m.cleanupWg.Add(1)
	go m.cleanupIdleQueues()

	m.logger.Info("write queue manager started",
		zap.Int("queueCapacity", cfg.QueueCapacity),
		zap.Duration("writeTimeout", cfg.WriteTimeout))

	return m
}

// Execute runs fn on the user's queue. Writes for the same uid execute
// in FIFO order; writes for different uids run independently.
func (m *Manager) Execute(ctx context.Context, uid int64, fn func() error) error {
	m.mu.RLock()
	if m.closed {
		m.mu.RUnlock()
		return ErrWriteQueueClosed
	}
	m.mu.RUnlock()

	queue := m.getOrCreateQueue(uid)
	if queue == nil {
		return ErrWriteQueueClosed
	}

	result := make(chan error, 1)
	op := writeOp{ctx: ctx, fn: fn, result: result}

	select {
	case queue.ch <- op:
	default:
		return ErrWriteQueueFull
	}

	timeout := m.config.WriteTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(timeout):
		return ErrWriteTimeout
	case <-m.ctx.Done():
		return ErrWriteQueueClosed
	}
}

func (m *Manager) getOrCreateQueue(uid int64) *userWriteQueue {
	if v, ok := m.queues.Load(uid); ok {
		queue := v.(*userWriteQueue)
		if !queue.closed.Load() {
			queue.lastUsed.Store(time.Now().UnixNano())
			return queue
		}
	}

	m.mu.RLock()
	if m.closed {
		m.mu.RUnlock()
		return nil
	}
	m.mu.RUnlock()

	queue := &userWriteQueue{
		uid:    uid,
		ch:     make(chan writeOp, m.config.QueueCapacity),
		stopCh: make(chan struct{}),
	}
	queue.lastUsed.Store(time.Now().UnixNano())

	actual, loaded := m.queues.LoadOrStore(uid, queue)
	if loaded {
		close(queue.stopCh)
		existing := actual.(*userWriteQueue)
		if !existing.closed.Load() {
			existing.lastUsed.Store(time.Now().UnixNano())
			return existing
		}
		// the stored queue already shut down, replace it
		m.queues.Store(uid, queue)
	}

	queue.workerWg.Add(1)
	go m.worker(queue)

	m.logger.Debug("created write queue for user", zap.Int64("uid", uid))

	return queue
}

func (m *Manager) worker(queue *userWriteQueue) {
	defer queue.workerWg.Done()
	defer queue.closed.Store(true)

	for {
		select {
		case <-m.ctx.Done():
			m.drainQueue(queue)
			return
		case <-queue.stopCh:
			m.drainQueue(queue)
			return
		case op, ok := <-queue.ch:
			if !ok {
				return
			}
			m.executeOp(queue, op)
		}
	}
}

func (m *Manager) executeOp(queue *userWriteQueue, op writeOp) {
	queue.lastUsed.Store(time.Now().UnixNano())

	select {
	case <-op.ctx.Done():
		op.result <- op.ctx.Err()
		return
	default:
	}

	err := op.fn()

	select {
	case op.result <- err:
	default:
	}
}

func (m *Manager) drainQueue(queue *userWriteQueue) {
	for {
		select {
		case op, ok := <-queue.ch:
			if !ok {
				return
			}
			m.executeOp(queue, op)
		default:
			return
		}
	}
}

func (m *Manager) cleanupIdleQueues() {
	defer m.cleanupWg.Done()

	ticker := time.NewTicker(m.config.IdleTimeout / 2)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-m.cleanupDone:
			return
		case <-ticker.C:
			m.doCleanup()
		}
	}
}

func (m *Manager) doCleanup() {
	now := time.Now().UnixNano()
	idleThreshold := m.config.IdleTimeout.Nanoseconds()

	m.queues.Range(func(key, value any) bool {
		uid := key.(int64)
		queue := value.(*userWriteQueue)

		if now-queue.lastUsed.Load() > idleThreshold {
			if len(queue.ch) == 0 && !queue.closed.Load() {
				m.logger.Debug("cleaning up idle write queue", zap.Int64("uid", uid))
				queue.closed.Store(true)
				close(queue.stopCh)
				m.queues.Delete(uid)
			}
		}
		return true
	})
}

// Shutdown drains every queue and stops all workers, bounded by ctx.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.mu.Unlock()

	m.logger.Info("write queue manager shutting down")

	close(m.cleanupDone)

	done := make(chan struct{})
	go func() {
		m.queues.Range(func(key, value any) bool {
			queue := value.(*userWriteQueue)
			if !queue.closed.Load() {
				queue.closed.Store(true)
				select {
				case <-queue.stopCh:
				default:
					close(queue.stopCh)
				}
			}
			return true
		})

		m.queues.Range(func(key, value any) bool {
			value.(*userWriteQueue).workerWg.Wait()
			return true
		})

		m.cleanupWg.Wait()
		close(done)
	}()

	select {
	case <-done:
		m.logger.Info("write queue manager shutdown completed")
		m.cancel()
		return nil
	case <-ctx.Done():
		m.logger.Warn("write queue manager shutdown timeout, forcing cancellation")
		m.cancel()
		return ctx.Err()
	}
}

func (m *Manager) QueueCount() int {
	count := 0
	m.queues.Range(func(key, value any) bool {
		if !value.(*userWriteQueue).closed.Load() {
			count++
		}
		return true
	})
	return count
}

func (m *Manager) QueuedCount(uid int64) int {
	if v, ok := m.queues.Load(uid); ok {
		return len(v.(*userWriteQueue).ch)
	}
	return 0
}
