package websocket_router

import (
	"github.com/aigility/cloud-vault-service/internal/app"
	"github.com/aigility/cloud-vault-service/internal/dto"
	pkgapp "github.com/aigility/cloud-vault-service/pkg/app"
	"github.com/aigility/cloud-vault-service/pkg/code"
)

// Websocket actions served by ItemsWSHandler.
const (
	ActionItemsList = "ItemsList"
	ActionUserUsage = "UserUsage"
)

// ItemsWSHandler serves listing queries over the push channel and fans
// metadata change events out to the owner's open connections. It is the
// live implementation of service.ChangeNotifier.
type ItemsWSHandler struct {
	*WSHandler
	wss *pkgapp.WebsocketServer
}

func NewItemsWSHandler(a *app.App, wss *pkgapp.WebsocketServer) *ItemsWSHandler {
	return &ItemsWSHandler{WSHandler: NewWSHandler(a), wss: wss}
}

// NotifyChange pushes an ItemsChanged event to every open session of
// the user. Clients re-fetch their current view; no incremental
// patching.
func (h *ItemsWSHandler) NotifyChange(uid int64, payload *dto.ItemsChangedPayload) {
	h.wss.BroadcastToUser(uid, dto.ItemsChanged, payload)
}

// ItemsList returns the listing for the requested path on this
// connection.
func (h *ItemsWSHandler) ItemsList(c *pkgapp.WebsocketClient, msg *pkgapp.WebSocketMessage) {
	params := &dto.ItemListRequest{}
	if valid, errs := c.BindAndValidMessage(msg.Data, params); !valid {
		c.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...), msg.Action)
		return
	}

	listing, err := h.App.ItemService.List(c.Ctx.Request.Context(), c.User.UID, params)
	if err != nil {
		h.respondError(c, code.ErrorDBQuery, err, "ItemsWSHandler.ItemsList", msg.Action)
		return
	}

	c.ToResponse(code.Success.WithData(listing), msg.Action)
}

// UserUsage returns the account's file count and stored byte total.
func (h *ItemsWSHandler) UserUsage(c *pkgapp.WebsocketClient, msg *pkgapp.WebSocketMessage) {
	usage, err := h.App.FileService.Usage(c.Ctx.Request.Context(), c.User.UID)
	if err != nil {
		h.respondError(c, code.ErrorDBQuery, err, "ItemsWSHandler.UserUsage", msg.Action)
		return
	}

	c.ToResponse(code.Success.WithData(usage), msg.Action)
}

// UserInfo loads and validates the user during websocket authorization.
func (h *ItemsWSHandler) UserInfo(c *pkgapp.WebsocketClient, uid int64) (*pkgapp.UserSelectEntity, error) {
	return h.App.UserService.GetForWebsocket(c.Ctx.Request.Context(), uid)
}
