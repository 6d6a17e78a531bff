package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"lightcycle/game"
	"lightcycle/models"
	"lightcycle/utils/logger"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const MaxPlayers = 4

// kickGrace lets an in-flight notice flush before the forced close.
const kickGrace = 100 * time.Millisecond

var ErrLobbyFull = errors.New("lobby is full")

// Phase is the lobby's lifecycle.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseAwaitingReady
	PhaseRunning
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAwaitingReady:
		return "awaiting_ready"
	case PhaseRunning:
		return "running"
	case PhaseEnded:
		return "ended"
	}
	return "unknown"
}

// Lobby owns the four player slots, the name registry and ready flags, and
// starts/ends matches. One mutex serializes every discrete operation; no
// operation blocks on network I/O while holding it (all sends are
// best-effort through buffered channels).
type Lobby struct {
	mu     sync.Mutex
	slots  [MaxPlayers]*Session
	phase  Phase
	engine *game.Engine

	db *gorm.DB // in-memory match/elimination records, may be nil in tests
}

func NewLobby(db *gorm.DB) *Lobby {
	return &Lobby{db: db}
}

// Join assigns the lowest free slot to the connection and starts its read
// loop. A full lobby gets a notice and a delayed close, and nothing else
// changes.
func (l *Lobby) Join(conn Conn) (*Session, error) {
	l.mu.Lock()
	slot := -1
	for i, s := range l.slots {
		if s == nil {
			slot = i
			break
		}
	}
	if slot == -1 {
		l.mu.Unlock()
		_ = conn.Send("Lobby is full. Try again later.")
		time.AfterFunc(kickGrace, func() { _ = conn.Close() })
		logger.Infof("connection refused: lobby is full")
		return nil, ErrLobbyFull
	}

	s := &Session{ID: uuid.New(), Slot: slot, conn: conn}
	l.slots[slot] = s
	if l.phase == PhaseIdle {
		l.phase = PhaseAwaitingReady
	}
	l.mu.Unlock()

	logger.Infof("player connected at slot %d (%s)", slot, conn.RemoteAddr())
	go l.serve(s)
	return s, nil
}

// serve is the session's read loop: one goroutine per connection, one line
// per dispatch. It unwinds into Disconnect on any read error or close.
func (l *Lobby) serve(s *Session) {
	defer l.Disconnect(s)
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("session %s: recovered from panic: %v", s.ID, r)
		}
	}()

	for {
		line, err := s.conn.ReadLine()
		if err != nil {
			return
		}
		l.HandleLine(s, line)
	}
}

// RegisterName interprets the session's first line as its display name.
// Duplicate names are rejected so the simulation and loss log stay keyed
// unambiguously.
func (l *Lobby) RegisterName(s *Session, name string) {
	l.mu.Lock()
	if l.slots[s.Slot] != s {
		l.mu.Unlock()
		return
	}
	for _, other := range l.slots {
		if other != nil && other != s && other.Name == name {
			l.mu.Unlock()
			_ = s.conn.Send("Name already taken. Choose another.")
			logger.Infof("rejected duplicate name %q at slot %d", name, s.Slot)
			return
		}
	}
	s.Name = name
	l.mu.Unlock()

	l.Broadcast(name + " has joined the game.")
	logger.Infof("%s has joined the game.", name)
}

// SetReady flips the ready flag, tells everyone, and starts the match when
// the whole lobby is ready.
func (l *Lobby) SetReady(s *Session, ready bool) {
	l.mu.Lock()
	if l.phase == PhaseRunning || l.phase == PhaseEnded {
		// A toggle racing the end-of-match reset would be wiped anyway.
		phase := l.phase
		l.mu.Unlock()
		logger.Debugf("ready toggle from %s ignored in phase %s", s.Name, phase)
		return
	}
	s.Ready = ready
	name := s.Name
	l.mu.Unlock()

	status := "ready"
	if !ready {
		status = "not ready"
	}
	l.Broadcast(fmt.Sprintf("%s is %s.", name, status))
	logger.Infof("%s is %s.", name, status)

	if l.CheckAllReady() {
		l.startMatch()
	}
}

// CheckAllReady reports whether every occupied slot is ready. Empty slots
// never block readiness, but at least two occupied slots are required.
func (l *Lobby) CheckAllReady() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	occupied := 0
	for _, s := range l.slots {
		if s == nil {
			continue
		}
		if !s.Ready {
			return false
		}
		occupied++
	}
	return occupied >= 2
}

func (l *Lobby) startMatch() {
	l.mu.Lock()
	if l.phase == PhaseRunning {
		l.mu.Unlock()
		return
	}
	var names []string
	for _, s := range l.slots {
		if s != nil && s.Name != "" {
			names = append(names, s.Name)
		}
	}
	if len(names) < 2 {
		l.mu.Unlock()
		logger.Infof("not enough players to start the game, at least 2 required")
		return
	}

	match := &models.MatchRecord{
		Status:      "in_progress",
		PlayerCount: len(names),
		StartTime:   time.Now(),
	}
	if l.db != nil {
		l.db.Create(match)
	}

	eng := game.NewEngine(names, game.Hooks{
		Line: l.Broadcast,
		Eliminated: func(player string, order int) {
			l.recordElimination(match, player, order)
		},
		Ended: func(res game.Result) {
			l.finishMatch(match, res)
		},
	})
	l.engine = eng
	l.phase = PhaseRunning
	l.mu.Unlock()

	l.Broadcast("GAME_START")
	logger.Infof("game started with %d players", len(names))
	go eng.Run()
}

func (l *Lobby) recordElimination(match *models.MatchRecord, player string, order int) {
	if l.db == nil {
		return
	}
	l.db.Create(&models.Elimination{
		MatchID:    match.ID,
		PlayerName: player,
		LossOrder:  order,
	})
}

// finishMatch runs on the engine goroutine, once, when the match reaches a
// terminal state. It publishes the result and resets the lobby for the
// next round; sessions stay connected.
func (l *Lobby) finishMatch(match *models.MatchRecord, res game.Result) {
	l.mu.Lock()
	l.phase = PhaseEnded
	l.engine = nil
	l.mu.Unlock()

	l.Broadcast("GAME_END")
	standings := game.ComputeStandings(res.Eliminations, res.TotalPlayers)
	if res.Winner != "" {
		l.Broadcast(res.Winner + " wins!")
	}
	for _, st := range standings {
		l.Broadcast(fmt.Sprintf("%s: %d points (%s)", st.Name, st.Points, st.Label))
	}

	if l.db != nil {
		if b, err := json.Marshal(standings); err == nil {
			match.StandingsJSON = datatypes.JSON(b)
		}
		match.Status = "finished"
		match.Winner = res.Winner
		match.EndTime = time.Now()
		l.db.Save(match)
	}

	l.mu.Lock()
	occupied := 0
	for _, s := range l.slots {
		if s != nil {
			s.Ready = false
			occupied++
		}
	}
	if occupied == 0 {
		l.phase = PhaseIdle
	} else {
		l.phase = PhaseAwaitingReady
	}
	l.mu.Unlock()

	logger.Infof("game ended, lobby reset for the next match")
}

// Kick sends the notice, then forces the connection closed after a short
// grace delay so the write flushes. The slot frees through the normal
// disconnect path. Kicking an empty slot is a no-op.
func (l *Lobby) Kick(slot int) {
	if slot < 0 || slot >= MaxPlayers {
		return
	}
	l.mu.Lock()
	s := l.slots[slot]
	l.mu.Unlock()
	if s == nil {
		logger.Debugf("kick on empty slot %d ignored", slot)
		return
	}

	_ = s.conn.Send("You have been kicked")
	time.AfterFunc(kickGrace, func() {
		_ = s.conn.Close()
		logger.Infof("slot %d has been kicked from the lobby.", slot)
	})
}

// Disconnect frees the session's slot and name. Mid-match the player is
// handed to the engine as permanently frozen; the tick loop keeps running
// for everyone else.
func (l *Lobby) Disconnect(s *Session) {
	_ = s.conn.Close()

	l.mu.Lock()
	if l.slots[s.Slot] != s {
		l.mu.Unlock()
		return
	}
	l.slots[s.Slot] = nil
	name := s.Name
	running := l.phase == PhaseRunning
	eng := l.engine
	occupied := 0
	for _, o := range l.slots {
		if o != nil {
			occupied++
		}
	}
	if occupied == 0 && l.phase == PhaseAwaitingReady {
		l.phase = PhaseIdle
	}
	l.mu.Unlock()

	if name == "" {
		name = "Unknown"
	}
	logger.Infof("%s disconnected.", name)

	if running && eng != nil && s.Name != "" {
		eng.Drop(s.Name)
	}
}

// Broadcast sends one line to every connected session, best-effort. The
// slot table is snapshotted first so no send happens under the lock.
func (l *Lobby) Broadcast(line string) {
	l.mu.Lock()
	conns := make([]Conn, 0, MaxPlayers)
	for _, s := range l.slots {
		if s != nil {
			conns = append(conns, s.conn)
		}
	}
	l.mu.Unlock()

	for _, c := range conns {
		_ = c.Send(line)
	}
}

// SlotInfo and LobbySnapshot feed the admin API.
type SlotInfo struct {
	Slot     int    `json:"slot"`
	Occupied bool   `json:"occupied"`
	Name     string `json:"name,omitempty"`
	Ready    bool   `json:"ready"`
}

type LobbySnapshot struct {
	Phase string     `json:"phase"`
	Slots []SlotInfo `json:"slots"`
}

func (l *Lobby) Snapshot() LobbySnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	snap := LobbySnapshot{Phase: l.phase.String()}
	for i, s := range l.slots {
		info := SlotInfo{Slot: i}
		if s != nil {
			info.Occupied = true
			info.Name = s.Name
			info.Ready = s.Ready
		}
		snap.Slots = append(snap.Slots, info)
	}
	return snap
}
