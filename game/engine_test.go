package game

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineRunsMatchToCompletion(t *testing.T) {
	var mu sync.Mutex
	var eliminated []Elimination
	ended := make(chan Result, 1)

	e := NewEngine([]string{"A", "B"}, Hooks{
		Eliminated: func(player string, order int) {
			mu.Lock()
			eliminated = append(eliminated, Elimination{Player: player, Order: order})
			mu.Unlock()
		},
		Ended: func(res Result) { ended <- res },
	})
	e.tick = time.Millisecond
	go e.Run()

	// A drives into the right wall while B sits still.
	e.Move("A", DirRight)

	select {
	case res := <-ended:
		assert.Equal(t, "B", res.Winner)
		assert.Equal(t, 2, res.TotalPlayers)
		require.Len(t, res.Eliminations, 2)
		assert.Equal(t, Elimination{Player: "A", Order: 1}, res.Eliminations[0])
		assert.Equal(t, Elimination{Player: "B", Order: 2}, res.Eliminations[1])

		standings := ComputeStandings(res.Eliminations, res.TotalPlayers)
		assert.Equal(t, "B", standings[0].Name)
		assert.Equal(t, 10, standings[0].Points)
		assert.Equal(t, "A", standings[1].Name)
		assert.Equal(t, 1, standings[1].Points)
	case <-time.After(10 * time.Second):
		t.Fatal("match did not finish")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, eliminated, 2)
}

func TestEngineDropEndsMatchForLastSurvivor(t *testing.T) {
	ended := make(chan Result, 1)

	e := NewEngine([]string{"A", "B"}, Hooks{
		Ended: func(res Result) { ended <- res },
	})
	e.tick = time.Millisecond
	go e.Run()

	// A disconnects mid-match; the loop must not stall.
	e.Drop("A")

	select {
	case res := <-ended:
		assert.Equal(t, "B", res.Winner)
		require.Len(t, res.Eliminations, 2)
		assert.Equal(t, "A", res.Eliminations[0].Player)
	case <-time.After(5 * time.Second):
		t.Fatal("match did not finish after drop")
	}
}

func TestEngineStopIsIdempotent(t *testing.T) {
	e := NewEngine([]string{"A", "B"}, Hooks{})
	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()

	e.Stop()
	e.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Stop")
	}
}

func TestEncodeStateLine(t *testing.T) {
	e := NewEngine([]string{"A", "B"}, Hooks{})
	line := e.encodeState()
	assert.Equal(t, "STATE: A,-170.0,-250.0,-,false;B,-50.0,-250.0,-,false", line)
}
