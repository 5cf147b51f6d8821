// Package api_router provides the HTTP API route handlers.
package api_router

import (
	"context"

	"go.uber.org/zap"

	"github.com/aigility/cloud-vault-service/internal/app"
	"github.com/aigility/cloud-vault-service/internal/middleware"
	pkgapp "github.com/aigility/cloud-vault-service/pkg/app"
)

// Handler is the base handler embedded by every API handler; it holds
// the app container and, where needed, the websocket server.
type Handler struct {
	App *app.App
	WSS *pkgapp.WebsocketServer
}

func NewHandler(a *app.App) *Handler {
	return &Handler{App: a}
}

func NewHandlerWithWSS(a *app.App, wss *pkgapp.WebsocketServer) *Handler {
	return &Handler{App: a, WSS: wss}
}

// logError logs a handler failure with the request trace id.
func (h *Handler) logError(ctx context.Context, method string, err error) {
	h.App.Logger().Error(method,
		zap.Error(err),
		zap.String("traceId", middleware.GetTraceID(ctx)),
	)
}
