package game

import "time"

// Arena and movement tuning. Coordinates are centered: x spans
// [-ArenaWidth/2, ArenaWidth/2], y spans [-ArenaHeight/2, ArenaHeight/2].
const (
	ArenaWidth      = 800.0
	ArenaHeight     = 600.0
	PlayerSize      = 20.0
	PlayerSpeed     = 1.5
	TrailSize       = 10.0
	BorderThickness = 5.0
	ProbeDepth      = 6.0

	TickInterval = 10 * time.Millisecond

	// TrailLifetimeTicks is how many ticks a trail segment lives (2.5s at
	// the 10ms tick). Segments shrink linearly over their lifetime.
	TrailLifetimeTicks = 250

	// BroadcastEvery throttles STATE lines to one per N ticks.
	BroadcastEvery = 10

	FrozenColor = "gray"
)

var playerColors = [...]string{"blue", "orange", "green", "red"}

// Direction is one of the four cardinal movement directions, or none.
type Direction uint8

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// ParseDirection maps a WASD key to a direction.
func ParseDirection(key string) (Direction, bool) {
	switch key {
	case "W":
		return DirUp, true
	case "S":
		return DirDown, true
	case "A":
		return DirLeft, true
	case "D":
		return DirRight, true
	}
	return DirNone, false
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "W"
	case DirDown:
		return "S"
	case DirLeft:
		return "A"
	case DirRight:
		return "D"
	}
	return "-"
}

func (d Direction) opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	}
	return DirNone
}

func (d Direction) vector() (dx, dy float64) {
	switch d {
	case DirUp:
		return 0, -PlayerSpeed
	case DirDown:
		return 0, PlayerSpeed
	case DirLeft:
		return -PlayerSpeed, 0
	case DirRight:
		return PlayerSpeed, 0
	}
	return 0, 0
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

func (r Rect) Overlaps(o Rect) bool {
	return r.MinX < o.MaxX && r.MaxX > o.MinX && r.MinY < o.MaxY && r.MaxY > o.MinY
}

func rectAt(cx, cy, w, h float64) Rect {
	return Rect{MinX: cx - w/2, MinY: cy - h/2, MaxX: cx + w/2, MaxY: cy + h/2}
}

// Player is one marker in the simulation. Order stays 0 until the player is
// eliminated; the winner receives the highest order.
type Player struct {
	Name   string
	X, Y   float64
	Dir    Direction
	Color  string
	Frozen bool
	Order  int
}

func (p *Player) rect() Rect {
	return rectAt(p.X, p.Y, PlayerSize, PlayerSize)
}

// probeRect is the forward-facing hazard probe: a strip just past the
// player's leading edge, spanning the player's width.
func (p *Player) probeRect() Rect {
	r := p.rect()
	switch p.Dir {
	case DirUp:
		return Rect{MinX: r.MinX, MinY: r.MinY - ProbeDepth, MaxX: r.MaxX, MaxY: r.MinY}
	case DirDown:
		return Rect{MinX: r.MinX, MinY: r.MaxY, MaxX: r.MaxX, MaxY: r.MaxY + ProbeDepth}
	case DirLeft:
		return Rect{MinX: r.MinX - ProbeDepth, MinY: r.MinY, MaxX: r.MinX, MaxY: r.MaxY}
	case DirRight:
		return Rect{MinX: r.MaxX, MinY: r.MinY, MaxX: r.MaxX + ProbeDepth, MaxY: r.MaxY}
	}
	return r
}

// TrailSegment is an immutable hazard dropped at a mover's pre-move
// position. It shrinks linearly until ExpiresTick and is then removed.
type TrailSegment struct {
	X, Y        float64
	Color       string
	Owner       string
	BornTick    int
	ExpiresTick int
}

// rectAt returns the segment's shrunken rectangle at the given tick.
func (t TrailSegment) rectAt(tick int) Rect {
	remaining := float64(t.ExpiresTick-tick) / float64(t.ExpiresTick-t.BornTick)
	if remaining < 0 {
		remaining = 0
	}
	size := TrailSize * remaining
	return rectAt(t.X, t.Y, size, size)
}

// State is the whole simulation world for one match. It is owned by a single
// goroutine (the engine loop); nothing here is safe for concurrent use.
type State struct {
	Tick    int
	Players []*Player // slot order, stable across the match
	Trails  []TrailSegment
	Borders [4]Rect

	Ended  bool
	Winner string

	nextOrder int
}

// NewState spawns the given players in a line near the top of the arena,
// stationary, each with a fixed color by join order.
func NewState(names []string) *State {
	s := &State{
		Borders:   borderRects(),
		nextOrder: 1,
	}
	for i, name := range names {
		s.Players = append(s.Players, &Player{
			Name:  name,
			X:     float64(i)*120 - 170,
			Y:     -250,
			Color: playerColors[i%len(playerColors)],
		})
	}
	return s
}

// borderRects builds the four static perimeter rectangles, straddling the
// arena edge so a clamped player's probe still reaches them.
func borderRects() [4]Rect {
	const (
		hw = ArenaWidth / 2
		hh = ArenaHeight / 2
		ht = BorderThickness / 2
	)
	return [4]Rect{
		{MinX: -hw, MinY: -hh - ht, MaxX: hw, MaxY: -hh + ht}, // top
		{MinX: -hw, MinY: hh - ht, MaxX: hw, MaxY: hh + ht},   // bottom
		{MinX: -hw - ht, MinY: -hh, MaxX: -hw + ht, MaxY: hh}, // left
		{MinX: hw - ht, MinY: -hh, MaxX: hw + ht, MaxY: hh},   // right
	}
}

func (s *State) playerByName(name string) *Player {
	for _, p := range s.Players {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// ActiveCount returns the number of unfrozen players.
func (s *State) ActiveCount() int {
	n := 0
	for _, p := range s.Players {
		if !p.Frozen {
			n++
		}
	}
	return n
}
