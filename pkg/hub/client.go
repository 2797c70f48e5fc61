package hub

import (
	"time"

	"github.com/gofiber/websocket/v2"
)

// Keepalive and size limits for dashboard sockets.
const (
	writeTimeout = 10 * time.Second
	idleTimeout  = 60 * time.Second
	pingEvery    = idleTimeout * 9 / 10

	// dashboards only send pongs and close frames
	readLimit = 4 << 10

	sendBuffer = 256
)

// Conn is the part of a websocket connection a Client drives.
// *websocket.Conn from gofiber/websocket and gofiber/contrib both satisfy it.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetReadLimit(limit int64)
	SetPongHandler(h func(appData string) error)
	Close() error
}

// Client is one dashboard connection subscribed to a hub.
type Client struct {
	hub  *Hub
	conn Conn
	send chan Message
}

// NewClient registers conn with the hub. It returns nil if the hub has
// stopped.
func NewClient(hub *Hub, conn Conn) *Client {
	c := &Client{hub: hub, conn: conn, send: make(chan Message, sendBuffer)}
	select {
	case hub.register <- c:
		return c
	case <-hub.done:
		return nil
	}
}

// Serve registers conn and pumps hub messages to it until either side
// goes away. It blocks.
func Serve(hub *Hub, conn Conn) {
	if c := NewClient(hub, conn); c != nil {
		c.Run()
	}
}

// Run writes in a goroutine and reads on the caller's until the
// connection drops.
func (c *Client) Run() {
	go c.writeLoop()
	c.readLoop()
}

func (c *Client) leave() {
	select {
	case c.hub.unregister <- c:
	case <-c.hub.done:
	}
}

// readLoop only notices pongs and disconnects.
func (c *Client) readLoop() {
	defer func() {
		c.leave()
		c.conn.Close()
	}()

	c.conn.SetReadLimit(readLimit)
	extend := func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(idleTimeout))
	}
	extend("")
	c.conn.SetPongHandler(extend)

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writeLoop is the connection's only writer.
func (c *Client) writeLoop() {
	ping := time.NewTicker(pingEvery)
	defer func() {
		ping.Stop()
		c.conn.Close()
	}()

	for {
		var (
			op   int
			data []byte
		)
		select {
		case m, ok := <-c.send:
			if !ok {
				// dropped by the hub or the hub stopped
				c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			op, data = m.opcode(), m.Data
		case <-ping.C:
			op = websocket.PingMessage
		}

		c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(op, data); err != nil {
			return
		}
	}
}
