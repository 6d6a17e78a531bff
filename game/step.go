package game

// EventKind discriminates simulation events produced by a step.
type EventKind uint8

const (
	// EventEliminated fires when a player's probe hit a hazard (or the
	// player was dropped); Order is the loss order just assigned.
	EventEliminated EventKind = iota
	// EventWon fires for the last unfrozen player; it carries the final
	// (highest) loss order, which is recorded like any other.
	EventWon
	// EventEnded fires exactly once, after the terminal condition.
	EventEnded
)

type Event struct {
	Kind   EventKind
	Player string
	Order  int
}

// ChangeDirection applies a steering input. A 180° reversal is rejected so a
// player cannot drive into its own fresh trail; a stationary player accepts
// any first direction. Anything else takes effect immediately.
func (s *State) ChangeDirection(name string, d Direction) {
	p := s.playerByName(name)
	if p == nil || p.Frozen || d == DirNone {
		return
	}
	if p.Dir != DirNone && d == p.Dir.opposite() {
		return
	}
	p.Dir = d
}

// ForceEliminate freezes a player out of band (mid-match disconnect) and
// assigns the next loss order. The terminal check happens on the next step.
func (s *State) ForceEliminate(name string) (Event, bool) {
	p := s.playerByName(name)
	if p == nil || p.Frozen || s.Ended {
		return Event{}, false
	}
	return s.eliminate(p), true
}

func (s *State) eliminate(p *Player) Event {
	p.Frozen = true
	p.Dir = DirNone
	p.Color = FrozenColor
	p.Order = s.nextOrder
	s.nextOrder++
	return Event{Kind: EventEliminated, Player: p.Name, Order: p.Order}
}

// Step advances the world one tick: expire trails, move every unfrozen
// player, drop trail segments, probe for collisions, then check the
// terminal condition. It returns the events produced this tick and is a
// no-op once the match has ended.
func Step(s *State) []Event {
	if s.Ended {
		return nil
	}
	s.Tick++
	s.expireTrails()

	var events []Event
	for _, p := range s.Players {
		if p.Frozen {
			continue
		}
		if p.Dir == DirNone {
			continue
		}

		// Trail goes down at the pre-move position.
		s.Trails = append(s.Trails, TrailSegment{
			X:           p.X,
			Y:           p.Y,
			Color:       p.Color,
			Owner:       p.Name,
			BornTick:    s.Tick,
			ExpiresTick: s.Tick + TrailLifetimeTicks,
		})

		dx, dy := p.Dir.vector()
		p.X = clamp(p.X+dx, -ArenaWidth/2+PlayerSize/2, ArenaWidth/2-PlayerSize/2)
		p.Y = clamp(p.Y+dy, -ArenaHeight/2+PlayerSize/2, ArenaHeight/2-PlayerSize/2)

		if hit := s.probeHazards(p); hit {
			events = append(events, s.eliminate(p))
		}
	}

	events = append(events, s.checkTerminal()...)
	return events
}

// probeHazards tests the player's forward probe against trails first, then
// borders. The first overlap wins; only one elimination fires per player
// per tick.
func (s *State) probeHazards(p *Player) bool {
	probe := p.probeRect()
	for _, t := range s.Trails {
		// A segment the player itself dropped this tick sits right behind
		// it and is never a hazard.
		if t.Owner == p.Name && t.BornTick == s.Tick {
			continue
		}
		if probe.Overlaps(t.rectAt(s.Tick)) {
			return true
		}
	}
	for _, b := range s.Borders {
		if probe.Overlaps(b) {
			return true
		}
	}
	return false
}

func (s *State) checkTerminal() []Event {
	var survivor *Player
	active := 0
	for _, p := range s.Players {
		if !p.Frozen {
			active++
			survivor = p
		}
	}

	switch active {
	case 1:
		// Last one standing: ranked last in loss order, i.e. the winner.
		survivor.Order = s.nextOrder
		s.nextOrder++
		s.Ended = true
		s.Winner = survivor.Name
		return []Event{
			{Kind: EventWon, Player: survivor.Name, Order: survivor.Order},
			{Kind: EventEnded},
		}
	case 0:
		s.Ended = true
		return []Event{{Kind: EventEnded}}
	}
	return nil
}

func (s *State) expireTrails() {
	kept := s.Trails[:0]
	for _, t := range s.Trails {
		if t.ExpiresTick > s.Tick {
			kept = append(kept, t)
		}
	}
	s.Trails = kept
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
