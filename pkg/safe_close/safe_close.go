// Package safe_close coordinates the shutdown of long-running goroutines.
// Each supervised routine attaches itself and receives a close signal; the
// owner waits for every routine to report done.
package safe_close

import (
	"sync"
)

type SafeClose struct {
	mu          sync.Mutex
	closeSignal chan struct{}
	closed      bool
	err         error
	wg          sync.WaitGroup
}

func NewSafeClose() *SafeClose {
	return &SafeClose{
		closeSignal: make(chan struct{}),
	}
}

// Attach starts f in its own goroutine. f must call done() when it has
// fully stopped and must return promptly after closeSignal fires.
func (s *SafeClose) Attach(f func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	done := func() { s.wg.Done() }
	go f(done, s.closeSignal)
}

// SendCloseSignal requests shutdown. The first error wins; later calls
// are no-ops.
func (s *SafeClose) SendCloseSignal(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.err = err
	close(s.closeSignal)
}

// WaitClosed blocks until every attached routine has called done, then
// returns the error passed to SendCloseSignal, if any.
func (s *SafeClose) WaitClosed() error {
	s.wg.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// CloseSignal exposes the signal channel for select loops.
func (s *SafeClose) CloseSignal() <-chan struct{} {
	return s.closeSignal
}
