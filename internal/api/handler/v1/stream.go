package v1

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust this for production!
	},
}

type streamClient struct {
	conn *websocket.Conn
	send chan []byte
}

// ChangeEvent tells connected dashboards which resource changed so they can
// re-fetch it.
type ChangeEvent struct {
	Type     string `json:"type"`
	Resource string `json:"resource"`
}

// StreamHandler fans change notifications out to every connected dashboard
// over a websocket.
type StreamHandler struct {
	clients      map[*streamClient]bool
	clientsMutex sync.RWMutex
	broadcast    chan []byte
	register     chan *streamClient
	unregister   chan *streamClient
}

func NewStreamHandler() *StreamHandler {
	return &StreamHandler{
		clients:    make(map[*streamClient]bool),
		broadcast:  make(chan []byte, 16),
		register:   make(chan *streamClient),
		unregister: make(chan *streamClient),
	}
}

func (h *StreamHandler) Run() {
	for {
		select {
		case client := <-h.register:
			h.clientsMutex.Lock()
			h.clients[client] = true
			h.clientsMutex.Unlock()
		case client := <-h.unregister:
			h.clientsMutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.clientsMutex.Unlock()
		case message := <-h.broadcast:
			h.clientsMutex.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.clientsMutex.Unlock()
		}
	}
}

// Notify broadcasts that a resource changed. It never blocks the mutating
// request: with no hub goroutine running the notification is dropped.
func (h *StreamHandler) Notify(resource string) {
	message, err := json.Marshal(ChangeEvent{Type: "change", Resource: resource})
	if err != nil {
		return
	}

	select {
	case h.broadcast <- message:
	default:
	}
}

// HandleWebSocket godoc
// @Summary Subscribe to the change feed
// @Description Establishes a WebSocket connection carrying change notifications for members, events, meals, announcements and expenses
// @Tags stream
// @Produce json
// @Success 101 {string} string "Switching Protocols to WebSocket"
// @Failure 500 {object} response.Err
// @Router /stream [get]
func (h *StreamHandler) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &streamClient{
		conn: conn,
		send: make(chan []byte, 256),
	}
	h.register <- client

	go client.writePump()
	go client.readPump(h)
}

func (c *streamClient) writePump() {
	defer func() {
		c.conn.Close()
	}()
	for {
		message, ok := <-c.send
		if !ok {
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
		w, err := c.conn.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		w.Write(message)
		if err := w.Close(); err != nil {
			return
		}
	}
}

// readPump drains the connection so pings and close frames are processed.
// The feed is one-directional; inbound messages are discarded.
func (c *streamClient) readPump(h *StreamHandler) {
	defer func() {
		h.unregister <- c
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				zap.L().Debug("websocket closed unexpectedly", zap.Error(err))
			}
			break
		}
	}
}
