package game

import (
	"fmt"
	"sort"
)

// Standing is one row of the final ranking, winner first.
type Standing struct {
	Name      string `json:"name"`
	Points    int    `json:"points"`
	Placement int    `json:"placement"`
	Label     string `json:"label"`
}

// pointsTables maps (total players, placement) to points. Placement 1 is
// the winner. Placements past the table score 0.
var pointsTables = map[int]map[int]int{
	2: {1: 10, 2: 1},
	3: {1: 10, 2: 2, 3: 1},
	4: {1: 10, 2: 5, 3: 2, 4: 1},
}

// ComputeStandings derives placements from the loss log: the latest
// eliminated player placed best, so the log is read in descending loss
// order.
func ComputeStandings(log []Elimination, totalPlayers int) []Standing {
	ordered := append([]Elimination(nil), log...)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Order > ordered[j].Order
	})

	table := pointsTables[totalPlayers]
	standings := make([]Standing, 0, len(ordered))
	for i, e := range ordered {
		placement := i + 1
		standings = append(standings, Standing{
			Name:      e.Player,
			Points:    table[placement],
			Placement: placement,
			Label:     placeLabel(placement),
		})
	}
	return standings
}

func placeLabel(placement int) string {
	switch placement {
	case 1:
		return "1st Place"
	case 2:
		return "2nd Place"
	case 3:
		return "3rd Place"
	}
	return fmt.Sprintf("%dth Place", placement)
}
