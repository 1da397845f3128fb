package realtime

import (
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Client pumps hub updates for one showtime down a WebSocket connection.
type Client struct {
	hub        *Hub
	conn       *websocket.Conn
	showtimeID uuid.UUID
	sub        *Subscriber
	log        *zap.Logger
}

func NewClient(hub *Hub, conn *websocket.Conn, showtimeID uuid.UUID, log *zap.Logger) *Client {
	return &Client{
		hub:        hub,
		conn:       conn,
		showtimeID: showtimeID,
		sub:        hub.Subscribe(showtimeID),
		log:        log.With(zap.String("showtime_id", showtimeID.String())),
	}
}

// Run blocks until the connection drops or the hub closes the subscription.
func (c *Client) Run() {
	done := make(chan struct{})
	go c.readPump(done)
	c.writePump(done)
}

// readPump drains incoming frames so pings and close frames are processed.
// The feed is one-way; client payloads are discarded.
func (c *Client) readPump(done chan struct{}) {
	defer close(done)

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump(done chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.hub.Unsubscribe(c.showtimeID, c.sub)
		c.conn.Close()
	}()

	for {
		select {
		case update, ok := <-c.sub.Updates():
			if !ok {
				c.conn.WriteControl(websocket.CloseMessage, nil, time.Now().Add(writeWait))
				return
			}
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(update); err != nil {
				c.log.Debug("WebSocket write failed", zap.Error(err))
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
