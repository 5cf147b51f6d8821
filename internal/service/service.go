// Package service implements the vault's business operations on top of
// the domain repositories and the object store.
package service

import (
	"context"
	"time"

	"github.com/aigility/cloud-vault-service/internal/dto"
	"github.com/aigility/cloud-vault-service/pkg/writequeue"
)

// ChangeNotifier receives metadata change events for fan-out to the
// user's open websocket sessions. The websocket router implements it.
type ChangeNotifier interface {
	NotifyChange(uid int64, payload *dto.ItemsChangedPayload)
}

type nopNotifier struct{}

func (nopNotifier) NotifyChange(int64, *dto.ItemsChangedPayload) {}

// NopNotifier is used in tests and before the websocket server is up.
var NopNotifier ChangeNotifier = nopNotifier{}

// ServiceConfig carries the knobs shared by the services.
type ServiceConfig struct {
	// RecentLimit caps the Recent listing, default 50.
	RecentLimit int
	// RegisterIsEnabled gates self-service registration.
	RegisterIsEnabled bool
	// DownloadTimeout bounds a single content fetch from the store.
	DownloadTimeout time.Duration
}

func (c *ServiceConfig) recentLimit() int {
	if c == nil || c.RecentLimit <= 0 {
		return 50
	}
	return c.RecentLimit
}

// serializeWrite routes a row write through the per-user queue when one
// is configured, otherwise runs it inline.
func serializeWrite(ctx context.Context, wq *writequeue.Manager, uid int64, fn func() error) error {
	if wq == nil {
		return fn()
	}
	return wq.Execute(ctx, uid, fn)
}
