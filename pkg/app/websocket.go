package app

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lxzan/gws"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/aigility/cloud-vault-service/pkg/code"
)

const (
	WebSocketServerPingInterval = 25
	WebSocketServerPingWait     = 40

	// ActionAuthorization must be the first message on a new connection.
	ActionAuthorization = "Authorization"
)

// WebSocketMessage is one parsed frame. Frames are text, formatted as
// "Action|payload" where payload is JSON (or a bare token for
// Authorization).
type WebSocketMessage struct {
	Action string
	Data   []byte
}

type WebsocketServerConfig struct {
	GWSOption    gws.ServerOption
	PingInterval time.Duration
	PingWait     time.Duration
}

// WebsocketClient holds one connection and its authorization state.
type WebsocketClient struct {
	conn        *gws.Conn
	done        chan struct{}
	Ctx         *gin.Context
	User        *UserEntity
	UserClients *ConnStorage
	SF          *singleflight.Group
}

// BindAndValidMessage unmarshals a frame payload into obj.
func (c *WebsocketClient) BindAndValidMessage(data []byte, obj any) (bool, ValidErrors) {
	var errs ValidErrors
	if err := json.Unmarshal(data, obj); err != nil {
		errs = append(errs, &ValidError{
			Key:     "body",
			Message: "Invalid message format",
		})
		return false, errs
	}
	return true, nil
}

// PingLoop keeps the connection alive until the client leaves.
func (c *WebsocketClient) PingLoop(pingInterval time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(pingInterval * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			if c.conn == nil {
				return
			}
			if err := c.conn.WritePing(nil); err != nil {
				logger.Error("websocket ping failed", zap.Error(err))
				return
			}
		}
	}
}

// ToResponse sends a single framed response to this client.
func (c *WebsocketClient) ToResponse(codeObj *code.Code, action ...string) {
	var actionType string
	if len(action) > 0 {
		actionType = action[0]
	}

	content := Res{
		Code:    codeObj.Code(),
		Status:  codeObj.Status(),
		Message: codeObj.Lang.GetMessage(),
		Data:    codeObj.Data(),
	}
	if codeObj.HaveDetails() {
		content.Details = strings.Join(codeObj.Details(), ",")
	}

	c.send(actionType, content, false, false)
	codeObj.Reset()
}

// BroadcastResponse sends a framed response to every connection of the
// same user. excludeSelf skips the originating connection.
func (c *WebsocketClient) BroadcastResponse(codeObj *code.Code, excludeSelf bool, action string) {
	content := Res{
		Code:    codeObj.Code(),
		Status:  codeObj.Status(),
		Message: codeObj.Lang.GetMessage(),
		Data:    codeObj.Data(),
	}
	if codeObj.HaveDetails() {
		content.Details = strings.Join(codeObj.Details(), ",")
	}

	c.send(action, content, true, excludeSelf)
	codeObj.Reset()
}

func (c *WebsocketClient) send(actionType string, content any, isBroadcast bool, isExcludeSelf bool) {
	responseBytes, _ := json.Marshal(content)
	if actionType != "" {
		responseBytes = []byte(fmt.Sprintf("%s|%s", actionType, string(responseBytes)))
	}
	if isBroadcast {
		c.broadcast(responseBytes, isExcludeSelf)
	} else {
		c.message(responseBytes)
	}
}

func (c *WebsocketClient) message(payload []byte) {
	_ = c.conn.WriteMessage(gws.OpcodeText, payload)
}

func (c *WebsocketClient) broadcast(payload []byte, isExcludeSelf bool) {
	if c.UserClients == nil {
		return
	}
	b := gws.NewBroadcaster(gws.OpcodeText, payload)
	defer b.Close()

	for _, uc := range *c.UserClients {
		if uc.conn == nil {
			continue
		}
		if isExcludeSelf && uc.conn == c.conn {
			continue
		}
		_ = b.Broadcast(uc.conn)
	}
}

type ConnStorage = map[*gws.Conn]*WebsocketClient

// WebsocketServer implements the gws event handler and keeps a per-user
// connection registry so change events can be fanned out to every open
// session of a user.
type WebsocketServer struct {
	handlers        map[string]func(*WebsocketClient, *WebSocketMessage)
	userDataHandler func(*WebsocketClient, int64) (*UserSelectEntity, error)
	tokenParser     func(string) (*UserEntity, error)
	logger          *zap.Logger
	clients         ConnStorage
	userClients     map[int64]ConnStorage
	mu              sync.Mutex
	up              *gws.Upgrader
	config          *WebsocketServerConfig
}

func NewWebsocketServer(c WebsocketServerConfig, tokenParser func(string) (*UserEntity, error), logger *zap.Logger) *WebsocketServer {
	if c.PingInterval == 0 {
		c.PingInterval = WebSocketServerPingInterval
	}
	if c.PingWait == 0 {
		c.PingWait = WebSocketServerPingWait
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	wss := WebsocketServer{
		handlers:    make(map[string]func(*WebsocketClient, *WebSocketMessage)),
		clients:     make(ConnStorage),
		userClients: make(map[int64]ConnStorage),
		tokenParser: tokenParser,
		logger:      logger,
		config:      &c,
	}
	return &wss
}

// Run returns the gin handler that upgrades the request and starts the
// read loop.
func (w *WebsocketServer) Run() gin.HandlerFunc {
	return func(c *gin.Context) {
		if w.up == nil {
			w.up = gws.NewUpgrader(w, &w.config.GWSOption)
		}
		socket, err := w.up.Upgrade(c.Writer, c.Request)
		if err != nil {
			w.logger.Error("websocket upgrade failed", zap.Error(err))
			return
		}
		client := &WebsocketClient{conn: socket, done: make(chan struct{}, 1), Ctx: c, SF: new(singleflight.Group)}
		w.AddClient(client)
		go socket.ReadLoop()
	}
}

// Use registers a handler for an action.
func (w *WebsocketServer) Use(action string, handler func(*WebsocketClient, *WebSocketMessage)) {
	w.handlers[action] = handler
}

// UserDataSelectUse registers the callback that loads and validates the
// user during authorization.
func (w *WebsocketServer) UserDataSelectUse(handler func(*WebsocketClient, int64) (*UserSelectEntity, error)) {
	w.userDataHandler = handler
}

func (w *WebsocketServer) rejectAuthorization(c *WebsocketClient, err error) {
	w.logger.Error("websocket authorization failed", zap.Error(err))
	c.ToResponse(code.ErrorInvalidUserAuthToken, ActionAuthorization)
	time.Sleep(2 * time.Second)
	c.conn.WriteClose(1000, []byte("AuthorizationFailed"))
}

// Authorization validates the token payload and binds the connection to
// its user. Every other action is refused until this succeeds.
func (w *WebsocketServer) Authorization(c *WebsocketClient, msg *WebSocketMessage) {
	user, err := w.tokenParser(string(msg.Data))
	if err != nil {
		w.rejectAuthorization(c, err)
		return
	}

	userSelect, err := w.userDataHandler(c, user.UID)
	if userSelect == nil || err != nil {
		w.rejectAuthorization(c, fmt.Errorf("user does not exist: %w", err))
		return
	}

	user.Nickname = userSelect.Nickname
	c.User = user
	w.AddUserClient(c)

	userClients := w.userClients[user.UID]
	c.UserClients = &userClients

	c.ToResponse(code.Success, ActionAuthorization)
	w.logger.Info("websocket user enters",
		zap.Int64("uid", c.User.UID),
		zap.Int("connCount", len(userClients)))
	go c.PingLoop(w.config.PingInterval, w.logger)
}

func (w *WebsocketServer) GetClient(conn *gws.Conn) *WebsocketClient {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.clients[conn]
}

func (w *WebsocketServer) AddClient(c *WebsocketClient) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.clients[c.conn] = c
}

func (w *WebsocketServer) RemoveClient(conn *gws.Conn) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.clients, conn)
}

func (w *WebsocketServer) AddUserClient(c *WebsocketClient) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.userClients[c.User.UID] == nil {
		w.userClients[c.User.UID] = make(ConnStorage)
	}
	w.userClients[c.User.UID][c.conn] = c
}

func (w *WebsocketServer) RemoveUserClient(c *WebsocketClient) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.userClients[c.User.UID], c.conn)
}

// BroadcastToUser pushes a framed payload to every open connection of
// uid. Safe to call from any goroutine.
func (w *WebsocketServer) BroadcastToUser(uid int64, action string, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		w.logger.Error("websocket broadcast marshal failed", zap.Error(err))
		return
	}
	frame := []byte(fmt.Sprintf("%s|%s", action, string(payload)))

	w.mu.Lock()
	conns := make([]*gws.Conn, 0, len(w.userClients[uid]))
	for conn := range w.userClients[uid] {
		conns = append(conns, conn)
	}
	w.mu.Unlock()

	if len(conns) == 0 {
		return
	}

	b := gws.NewBroadcaster(gws.OpcodeText, frame)
	defer b.Close()
	for _, conn := range conns {
		_ = b.Broadcast(conn)
	}
}

func (w *WebsocketServer) OnOpen(conn *gws.Conn) {
	_ = conn.SetDeadline(time.Now().Add(w.config.PingWait * time.Second))
}

func (w *WebsocketServer) OnClose(conn *gws.Conn, err error) {
	c := w.GetClient(conn)
	w.RemoveClient(conn)

	if c != nil && c.User != nil {
		select {
		case c.done <- struct{}{}:
		default:
		}
		w.RemoveUserClient(c)
		w.logger.Info("websocket user leaves", zap.Int64("uid", c.User.UID))
	}
}

func (w *WebsocketServer) OnPing(socket *gws.Conn, payload []byte) {
	_ = socket.SetDeadline(time.Now().Add(w.config.PingWait * time.Second))
	_ = socket.WritePong(nil)
}

func (w *WebsocketServer) OnPong(socket *gws.Conn, payload []byte) {
	_ = socket.SetDeadline(time.Now().Add(w.config.PingWait * time.Second))
}

func (w *WebsocketServer) OnMessage(conn *gws.Conn, message *gws.Message) {
	defer message.Close()
	if message.Opcode != gws.OpcodeText {
		return
	}
	if message.Data.String() == "close" {
		conn.WriteClose(1000, []byte("ClientClose"))
		return
	}

	c := w.GetClient(conn)
	if c == nil {
		return
	}

	messageStr := message.Data.String()
	index := strings.Index(messageStr, "|")

	var msg WebSocketMessage
	if index != -1 {
		msg.Action = messageStr[:index]
		msg.Data = []byte(messageStr[index+1:])
	} else {
		msg.Action = messageStr
	}

	if msg.Action == ActionAuthorization {
		w.Authorization(c, &msg)
		return
	}

	if c.User == nil {
		c.ToResponse(code.ErrorNotUserAuthToken, msg.Action)
		return
	}

	handler, ok := w.handlers[msg.Action]
	if !ok {
		c.ToResponse(code.ErrorNotFoundAPI, msg.Action)
		return
	}
	handler(c, &msg)
}
