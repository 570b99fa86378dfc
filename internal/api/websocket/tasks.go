package websocket

import (
	"encoding/json"
	"net/http"
	"slices"
	"sync"
	"time"

	apicontrollers "github.com/drujensen/todo/internal/api/controllers"
	"github.com/drujensen/todo/internal/domain/events"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const writeWait = 5 * time.Second

// TaskEventMessage is pushed to every connected client after a task changes.
type TaskEventMessage struct {
	Type   string                       `json:"type"`
	TaskID string                       `json:"task_id"`
	Task   *apicontrollers.TaskResponse `json:"task,omitempty"`
}

func NewTaskEventMessage(data events.TaskEventData) TaskEventMessage {
	msg := TaskEventMessage{
		Type:   string(data.Kind),
		TaskID: data.TaskID,
	}
	if data.Task != nil {
		resp := apicontrollers.NewTaskResponse(data.Task)
		msg.Task = &resp
	}
	return msg
}

// TaskHub fans task events out to websocket clients. Clients only listen;
// anything they send is discarded.
type TaskHub struct {
	logger   *zap.Logger
	upgrader websocket.Upgrader

	clients      map[*websocket.Conn]bool
	clientsMutex sync.RWMutex
	sendMutex    sync.Mutex
}

// NewTaskHub accepts upgrades from the given origins; "*" allows any origin.
func NewTaskHub(logger *zap.Logger, allowedOrigins []string) *TaskHub {
	return &TaskHub{
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || slices.Contains(allowedOrigins, "*") || slices.Contains(allowedOrigins, origin)
			},
		},
		clients: make(map[*websocket.Conn]bool),
	}
}

// Start subscribes the hub to task events. The returned func unsubscribes.
func (h *TaskHub) Start() func() {
	return events.SubscribeToTaskEvents(h.Broadcast)
}

// Broadcast sends one event to all connected clients, dropping any client
// whose write fails.
func (h *TaskHub) Broadcast(data events.TaskEventData) {
	message, err := json.Marshal(NewTaskEventMessage(data))
	if err != nil {
		h.logger.Error("Failed to marshal WebSocket message", zap.Error(err))
		return
	}

	h.clientsMutex.RLock()
	clients := make([]*websocket.Conn, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.clientsMutex.RUnlock()

	h.sendMutex.Lock()
	defer h.sendMutex.Unlock()

	for _, client := range clients {
		_ = client.SetWriteDeadline(time.Now().Add(writeWait))
		if err := client.WriteMessage(websocket.TextMessage, message); err != nil {
			h.logger.Warn("Failed to send WebSocket message to client, removing from clients", zap.Error(err))
			h.remove(client)
		}
	}
}

// HandleWebSocket upgrades the request and keeps the connection registered
// until the client goes away.
func (h *TaskHub) HandleWebSocket(c echo.Context) error {
	ws, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// the upgrader has already written the error response
		h.logger.Debug("Failed to upgrade WebSocket connection", zap.Error(err))
		return nil
	}

	h.clientsMutex.Lock()
	h.clients[ws] = true
	h.clientsMutex.Unlock()
	h.logger.Debug("WebSocket client connected")

	defer func() {
		h.remove(ws)
		h.logger.Debug("WebSocket client disconnected")
	}()

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}
	return nil
}

func (h *TaskHub) ClientCount() int {
	h.clientsMutex.RLock()
	defer h.clientsMutex.RUnlock()
	return len(h.clients)
}

// Close disconnects every client.
func (h *TaskHub) Close() {
	h.clientsMutex.Lock()
	defer h.clientsMutex.Unlock()
	for client := range h.clients {
		client.Close()
		delete(h.clients, client)
	}
}

func (h *TaskHub) remove(client *websocket.Conn) {
	h.clientsMutex.Lock()
	defer h.clientsMutex.Unlock()
	if h.clients[client] {
		delete(h.clients, client)
		client.Close()
	}
}
