package services

import (
	"net"
	"strings"
	"sync"

	"lightcycle/utils/logger"

	"github.com/gorilla/websocket"
)

// wsConn adapts a websocket connection to the same line protocol as the TCP
// transport: one text frame may carry one or several newline-separated
// commands, and outbound lines each go out as one text frame.
type wsConn struct {
	conn    *websocket.Conn
	send    chan string
	pending []string // lines queued from a multi-line frame, read-loop only

	mu     sync.Mutex
	closed bool
}

func NewWSConn(conn *websocket.Conn) Conn {
	c := &wsConn{
		conn: conn,
		send: make(chan string, 32),
	}
	go c.writePump()
	return c
}

func (c *wsConn) writePump() {
	for line := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, []byte(line)); err != nil {
			logger.Debugf("ws write to %s failed: %v", c.RemoteAddr(), err)
			return
		}
	}
}

func (c *wsConn) ReadLine() (string, error) {
	for len(c.pending) == 0 {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			return "", err
		}
		for _, line := range strings.Split(string(msg), "\n") {
			if strings.TrimSpace(line) != "" {
				c.pending = append(c.pending, line)
			}
		}
	}
	line := c.pending[0]
	c.pending = c.pending[1:]
	return line, nil
}

func (c *wsConn) Send(line string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return net.ErrClosed
	}
	select {
	case c.send <- line:
	default:
		logger.Debugf("ws send buffer full, dropping line to %s", c.RemoteAddr())
	}
	return nil
}

func (c *wsConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	close(c.send)
	return c.conn.Close()
}

func (c *wsConn) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}
