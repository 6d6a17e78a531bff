package game

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"lightcycle/utils/logger"
)

// Elimination is one entry of the in-match loss log.
type Elimination struct {
	Player string
	Order  int
}

// Result is handed to the Ended hook exactly once per match.
type Result struct {
	Winner       string // empty when everyone froze in the same tick
	Eliminations []Elimination
	TotalPlayers int
}

// Hooks are the engine's only way out. They are invoked on the engine
// goroutine and must not block on network I/O.
type Hooks struct {
	Line       func(line string)              // broadcast one protocol line
	Eliminated func(player string, order int) // loss log append
	Ended      func(res Result)
}

type moveCmd struct {
	player string
	dir    Direction
}

type dropCmd struct {
	player string
}

// Engine owns one match. All state lives on the Run goroutine; inputs
// arrive over the inbox channel, so no lock guards the world.
type Engine struct {
	state *State
	hooks Hooks
	log   []Elimination

	inbox chan any
	quit  chan struct{}
	tick  time.Duration

	stopOnce sync.Once
}

func NewEngine(players []string, hooks Hooks) *Engine {
	return &Engine{
		state: NewState(players),
		hooks: hooks,
		inbox: make(chan any, 64),
		quit:  make(chan struct{}),
		tick:  TickInterval,
	}
}

// Run drives the fixed-tick loop until the match reaches a terminal state
// or Stop is called. A match, once ended, never restarts.
func (e *Engine) Run() {
	ticker := time.NewTicker(e.tick)
	defer ticker.Stop()

	for {
		select {
		case <-e.quit:
			return
		case cmd := <-e.inbox:
			e.handle(cmd)
		case <-ticker.C:
			e.dispatch(Step(e.state))
			if e.state.Ended {
				e.finish()
				return
			}
			if e.state.Tick%BroadcastEvery == 0 && e.hooks.Line != nil {
				e.hooks.Line(e.encodeState())
			}
		}
	}
}

// Move requests a direction change. Non-blocking: a flooded inbox drops the
// input rather than stalling a session's read loop.
func (e *Engine) Move(player string, dir Direction) {
	select {
	case e.inbox <- moveCmd{player: player, dir: dir}:
	default:
		logger.Warnf("engine inbox full, dropping move from %s", player)
	}
}

// Drop freezes a player that disconnected mid-match. The tick loop keeps
// running for the others.
func (e *Engine) Drop(player string) {
	select {
	case e.inbox <- dropCmd{player: player}:
	default:
		logger.Warnf("engine inbox full, dropping removal of %s", player)
	}
}

// Stop aborts the loop without a result. Safe to call more than once.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() { close(e.quit) })
}

func (e *Engine) handle(cmd any) {
	switch c := cmd.(type) {
	case moveCmd:
		e.state.ChangeDirection(c.player, c.dir)
	case dropCmd:
		if ev, ok := e.state.ForceEliminate(c.player); ok {
			e.dispatch([]Event{ev})
		}
	}
}

func (e *Engine) dispatch(events []Event) {
	for _, ev := range events {
		switch ev.Kind {
		case EventEliminated:
			logger.Infof("player %s eliminated with loss order %d", ev.Player, ev.Order)
			e.record(ev)
		case EventWon:
			logger.Infof("player %s wins with loss order %d", ev.Player, ev.Order)
			e.record(ev)
		}
	}
}

func (e *Engine) record(ev Event) {
	e.log = append(e.log, Elimination{Player: ev.Player, Order: ev.Order})
	if e.hooks.Eliminated != nil {
		e.hooks.Eliminated(ev.Player, ev.Order)
	}
}

func (e *Engine) finish() {
	if e.hooks.Ended == nil {
		return
	}
	e.hooks.Ended(Result{
		Winner:       e.state.Winner,
		Eliminations: e.log,
		TotalPlayers: len(e.state.Players),
	})
}

// encodeState renders one STATE broadcast line:
// STATE: name,x,y,dir,frozen;name,x,y,dir,frozen;...
func (e *Engine) encodeState() string {
	parts := make([]string, 0, len(e.state.Players))
	for _, p := range e.state.Players {
		parts = append(parts, fmt.Sprintf("%s,%.1f,%.1f,%s,%t", p.Name, p.X, p.Y, p.Dir, p.Frozen))
	}
	return "STATE: " + strings.Join(parts, ";")
}
