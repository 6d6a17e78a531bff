package services

import (
	"strings"

	"lightcycle/game"
	"lightcycle/utils/logger"
)

// Message prefixes of the wire protocol. A session's first line carries no
// prefix at all: it is the display name.
const (
	prefixReady    = "READY:"
	prefixNotReady = "NOT_READY:"
	prefixChat     = "CHAT:"
	prefixMove     = "PLAYERMOVE:"
)

// HandleLine routes one inbound line. Malformed or out-of-phase lines are
// logged and dropped; nothing inbound ever closes the connection.
func (l *Lobby) HandleLine(s *Session, line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}

	l.mu.Lock()
	named := s.Name != ""
	l.mu.Unlock()

	if !named {
		l.RegisterName(s, line)
		return
	}

	switch {
	case strings.HasPrefix(line, prefixMove):
		l.handleMove(s, line)
	case strings.HasPrefix(line, prefixReady):
		l.SetReady(s, true)
	case strings.HasPrefix(line, prefixNotReady):
		l.SetReady(s, false)
	case strings.HasPrefix(line, prefixChat):
		l.handleChat(s, line)
	default:
		logger.Debugf("unrecognized line from %s: %q", s.Name, line)
	}
}

func (l *Lobby) handleMove(s *Session, line string) {
	l.mu.Lock()
	running := l.phase == PhaseRunning
	eng := l.engine
	name := s.Name
	l.mu.Unlock()

	if !running || eng == nil {
		logger.Debugf("movement from %s dropped, no match running", name)
		return
	}
	dir, ok := ParseMove(line)
	if !ok {
		logger.Debugf("invalid movement from %s: %q", name, line)
		return
	}
	eng.Move(name, dir)
}

func (l *Lobby) handleChat(s *Session, line string) {
	l.mu.Lock()
	name := s.Name
	l.mu.Unlock()

	text := strings.TrimSpace(strings.TrimPrefix(line, prefixChat))
	full := name + ": " + text
	l.Broadcast(full)
	logger.Infof("%s", full)
}

// ParseMove extracts the direction from a "PLAYERMOVE: <dir>" line. The
// space after the colon is tolerated either way.
func ParseMove(line string) (game.Direction, bool) {
	if !strings.HasPrefix(line, prefixMove) {
		return game.DirNone, false
	}
	key := strings.TrimSpace(strings.TrimPrefix(line, prefixMove))
	return game.ParseDirection(key)
}
