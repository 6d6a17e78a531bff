package services

import (
	"bufio"
	"errors"
	"net"
	"sync"

	"lightcycle/utils/logger"
)

// tcpConn wraps a raw TCP connection. Reads are line-framed with a buffered
// reader, so combined or partial segments never split a command. Writes go
// through a buffered channel drained by a write pump; a full buffer drops
// the line instead of blocking the caller.
type tcpConn struct {
	nc     net.Conn
	reader *bufio.Reader
	send   chan string

	mu     sync.Mutex
	closed bool
}

func newTCPConn(nc net.Conn) *tcpConn {
	c := &tcpConn{
		nc:     nc,
		reader: bufio.NewReader(nc),
		send:   make(chan string, 32),
	}
	go c.writePump()
	return c
}

func (c *tcpConn) writePump() {
	for line := range c.send {
		if _, err := c.nc.Write([]byte(line + "\n")); err != nil {
			logger.Debugf("write to %s failed: %v", c.RemoteAddr(), err)
			return
		}
	}
}

func (c *tcpConn) ReadLine() (string, error) {
	return c.reader.ReadString('\n')
}

func (c *tcpConn) Send(line string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return net.ErrClosed
	}
	select {
	case c.send <- line:
	default:
		logger.Debugf("send buffer full, dropping line to %s", c.RemoteAddr())
	}
	return nil
}

func (c *tcpConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	close(c.send)
	return c.nc.Close()
}

func (c *tcpConn) RemoteAddr() string {
	return c.nc.RemoteAddr().String()
}

// GameServer accepts TCP game connections and hands them to the lobby.
type GameServer struct {
	addr  string
	lobby *Lobby
}

func NewGameServer(addr string, lobby *Lobby) *GameServer {
	return &GameServer{addr: addr, lobby: lobby}
}

// ListenAndServe blocks on the accept loop. Failing to bind is the one
// fatal error in the whole subsystem; per-connection trouble is logged and
// survived.
func (s *GameServer) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	logger.Infof("game server listening on %s", s.addr)

	for {
		nc, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			logger.Errorf("accept failed: %v", err)
			continue
		}
		s.lobby.Join(newTCPConn(nc))
	}
}
