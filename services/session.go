package services

import (
	"github.com/google/uuid"
)

// Conn abstracts one persistent client connection. Both transports (raw TCP
// and websocket) speak the same newline-delimited text protocol; ReadLine
// returns exactly one line regardless of how reads were framed on the wire.
type Conn interface {
	ReadLine() (string, error)
	Send(line string) error
	Close() error
	RemoteAddr() string
}

// Session is one connected client. Name stays empty until the first inbound
// line registers it. All fields besides ID and Slot are guarded by the
// lobby mutex.
type Session struct {
	ID    uuid.UUID
	Slot  int
	Name  string
	Ready bool

	conn Conn
}
