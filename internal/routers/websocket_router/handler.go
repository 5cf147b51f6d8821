// Package websocket_router provides the websocket route handlers and
// the change-event fan-out.
package websocket_router

import (
	"errors"
	"io"
	"net"
	"strings"

	"go.uber.org/zap"

	"github.com/aigility/cloud-vault-service/internal/app"
	"github.com/aigility/cloud-vault-service/internal/middleware"
	pkgapp "github.com/aigility/cloud-vault-service/pkg/app"
	"github.com/aigility/cloud-vault-service/pkg/code"
)

// WSHandler is the base handler embedded by websocket handlers.
type WSHandler struct {
	App *app.App
}

func NewWSHandler(a *app.App) *WSHandler {
	return &WSHandler{App: a}
}

func traceID(c *pkgapp.WebsocketClient) string {
	if c == nil || c.Ctx == nil {
		return ""
	}
	return middleware.GetTraceIDFromGin(c.Ctx)
}

func (h *WSHandler) logError(c *pkgapp.WebsocketClient, method string, err error) {
	// a connection torn down mid-write is routine, not an error
	if isNetworkClosedError(err) {
		h.App.Logger().Debug(method, zap.Error(err), zap.String("traceId", traceID(c)))
		return
	}
	h.App.Logger().Error(method, zap.Error(err), zap.String("traceId", traceID(c)))
}

func (h *WSHandler) respondError(c *pkgapp.WebsocketClient, codeErr *code.Code, err error, method string, action string) {
	h.logError(c, method, err)
	c.ToResponse(codeErr.WithDetails(err.Error()), action)
}

func isNetworkClosedError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, net.ErrClosed) || errors.Is(err, io.EOF) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "use of closed network connection") ||
		strings.Contains(msg, "connection reset by peer") ||
		strings.Contains(msg, "broken pipe")
}
