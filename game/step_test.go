package game

import "testing"

func TestStepMovesPlayerAndAdvancesTick(t *testing.T) {
	s := NewState([]string{"p1", "p2"})
	s.ChangeDirection("p1", DirRight)

	x0 := s.Players[0].X
	Step(s)
	if s.Tick != 1 {
		t.Fatalf("tick after 1 step = %d, want 1", s.Tick)
	}
	x1 := s.Players[0].X
	if x1 <= x0 {
		t.Fatalf("expected x to increase after 1 step, got %f -> %f", x0, x1)
	}

	for i := 0; i < 4; i++ {
		Step(s)
	}
	if s.Tick != 5 {
		t.Fatalf("tick after 5 steps = %d, want 5", s.Tick)
	}
	if s.Players[0].X <= x1 {
		t.Fatalf("expected x to keep increasing: %f then %f", x1, s.Players[0].X)
	}
	if s.Players[1].X != -50 || s.Players[1].Dir != DirNone {
		t.Fatalf("stationary player should not move")
	}
}

func TestReversalIsRejected(t *testing.T) {
	s := NewState([]string{"p1", "p2"})
	s.ChangeDirection("p1", DirRight)
	s.ChangeDirection("p1", DirLeft)
	if got := s.Players[0].Dir; got != DirRight {
		t.Fatalf("direction after reversal attempt = %v, want %v", got, DirRight)
	}

	// A 90° turn is accepted immediately.
	s.ChangeDirection("p1", DirUp)
	if got := s.Players[0].Dir; got != DirUp {
		t.Fatalf("direction after turn = %v, want %v", got, DirUp)
	}
}

func TestStationaryPlayerAcceptsAnyFirstDirection(t *testing.T) {
	for _, d := range []Direction{DirUp, DirDown, DirLeft, DirRight} {
		s := NewState([]string{"p1", "p2"})
		s.ChangeDirection("p1", d)
		if got := s.Players[0].Dir; got != d {
			t.Fatalf("first direction %v not accepted, got %v", d, got)
		}
	}
}

func TestTrailEmittedAtPreMovePosition(t *testing.T) {
	s := NewState([]string{"p1", "p2"})
	s.ChangeDirection("p1", DirDown)
	x0, y0 := s.Players[0].X, s.Players[0].Y

	Step(s)
	if len(s.Trails) != 1 {
		t.Fatalf("trail count after 1 step = %d, want 1", len(s.Trails))
	}
	tr := s.Trails[0]
	if tr.X != x0 || tr.Y != y0 {
		t.Fatalf("trail at (%f,%f), want pre-move position (%f,%f)", tr.X, tr.Y, x0, y0)
	}
	if tr.Owner != "p1" || tr.Color != s.Players[0].Color {
		t.Fatalf("trail should carry owner and color")
	}
}

func TestNoSelfCollisionDrivingStraight(t *testing.T) {
	s := NewState([]string{"p1", "p2"})
	s.ChangeDirection("p1", DirDown)
	for i := 0; i < 100; i++ {
		Step(s)
	}
	if s.Players[0].Frozen {
		t.Fatalf("driving straight should never hit the player's own trail")
	}
}

func TestBorderCollisionFreezesAndEndsTwoPlayerMatch(t *testing.T) {
	s := &State{
		Borders:   borderRects(),
		nextOrder: 1,
		Players: []*Player{
			{Name: "A", X: 390, Y: 0, Dir: DirRight, Color: "blue"},
			{Name: "B", X: 0, Y: 100, Color: "orange"},
		},
	}

	events := Step(s)

	a := s.Players[0]
	if !a.Frozen || a.Order != 1 {
		t.Fatalf("A frozen=%v order=%d, want frozen with order 1", a.Frozen, a.Order)
	}
	if a.Color != FrozenColor {
		t.Fatalf("A color = %q, want %q", a.Color, FrozenColor)
	}
	if a.Dir != DirNone {
		t.Fatalf("frozen player should stop, dir = %v", a.Dir)
	}

	b := s.Players[1]
	if b.Order != 2 {
		t.Fatalf("sole survivor order = %d, want 2", b.Order)
	}
	if !s.Ended || s.Winner != "B" {
		t.Fatalf("ended=%v winner=%q, want ended with winner B", s.Ended, s.Winner)
	}

	kinds := make([]EventKind, 0, len(events))
	for _, ev := range events {
		kinds = append(kinds, ev.Kind)
	}
	want := []EventKind{EventEliminated, EventWon, EventEnded}
	if len(kinds) != len(want) {
		t.Fatalf("events = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("event %d = %v, want %v", i, kinds[i], want[i])
		}
	}
}

func TestTrailCollisionFreezes(t *testing.T) {
	s := &State{
		Borders:   borderRects(),
		nextOrder: 1,
		Players: []*Player{
			{Name: "A", X: 0, Y: 0, Dir: DirRight, Color: "blue"},
			{Name: "B", X: 0, Y: 100, Color: "orange"},
			{Name: "C", X: 0, Y: 200, Color: "green"},
		},
		Trails: []TrailSegment{
			{X: 20, Y: 0, Owner: "B", Color: "orange", BornTick: 0, ExpiresTick: 10000},
		},
	}

	Step(s)

	if !s.Players[0].Frozen || s.Players[0].Order != 1 {
		t.Fatalf("A should freeze with order 1 on trail hit")
	}
	if s.Ended {
		t.Fatalf("match should continue with 2 players active")
	}
}

func TestAllFrozenSameTickEndsWithoutWinner(t *testing.T) {
	s := &State{
		Borders:   borderRects(),
		nextOrder: 1,
		Players: []*Player{
			{Name: "A", X: 390, Y: 100, Dir: DirRight, Color: "blue"},
			{Name: "B", X: -390, Y: -100, Dir: DirLeft, Color: "orange"},
		},
	}

	Step(s)

	if !s.Ended {
		t.Fatalf("match should end when every player froze in the same tick")
	}
	if s.Winner != "" {
		t.Fatalf("winner = %q, want none", s.Winner)
	}
	orders := map[int]bool{s.Players[0].Order: true, s.Players[1].Order: true}
	if !orders[1] || !orders[2] {
		t.Fatalf("elimination orders = %d,%d, want a permutation of 1,2",
			s.Players[0].Order, s.Players[1].Order)
	}
}

func TestStepIsNoOpAfterMatchEnd(t *testing.T) {
	s := &State{
		Borders:   borderRects(),
		nextOrder: 1,
		Players: []*Player{
			{Name: "A", X: 390, Y: 0, Dir: DirRight, Color: "blue"},
			{Name: "B", X: 0, Y: 100, Color: "orange"},
		},
	}
	Step(s)
	if !s.Ended {
		t.Fatalf("setup should end the match")
	}

	tick := s.Tick
	if events := Step(s); events != nil || s.Tick != tick {
		t.Fatalf("an ended match must never advance again")
	}
}

func TestTrailSegmentsExpire(t *testing.T) {
	s := NewState([]string{"p1", "p2"})
	s.Trails = []TrailSegment{
		{X: 0, Y: 0, Owner: "p2", BornTick: 0, ExpiresTick: 1},
	}

	Step(s)
	if len(s.Trails) != 0 {
		t.Fatalf("expired segment should be removed, %d left", len(s.Trails))
	}
}

func TestForceEliminateAssignsOrderOnce(t *testing.T) {
	s := NewState([]string{"p1", "p2", "p3"})

	ev, ok := s.ForceEliminate("p2")
	if !ok || ev.Order != 1 {
		t.Fatalf("ForceEliminate = (%v,%v), want order 1", ev, ok)
	}
	if _, ok := s.ForceEliminate("p2"); ok {
		t.Fatalf("a frozen player must not be eliminated twice")
	}

	// Terminal check happens on the following step.
	Step(s)
	if s.Ended {
		t.Fatalf("2 active players remain, match should continue")
	}
	s.ForceEliminate("p1")
	Step(s)
	if !s.Ended || s.Winner != "p3" {
		t.Fatalf("ended=%v winner=%q, want p3 as last survivor", s.Ended, s.Winner)
	}
	if s.Players[2].Order != 3 {
		t.Fatalf("winner order = %d, want 3", s.Players[2].Order)
	}
}

func TestPositionClampedToArena(t *testing.T) {
	s := NewState([]string{"p1", "p2"})
	p := s.Players[0]
	p.X = ArenaWidth/2 - PlayerSize/2 // already at the wall
	p.Dir = DirRight

	Step(s)
	if max := ArenaWidth/2 - PlayerSize/2; p.X > max {
		t.Fatalf("x = %f escaped the arena (max %f)", p.X, max)
	}
}
