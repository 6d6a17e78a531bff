package models

import (
	"time"

	"gorm.io/datatypes"
)

// MatchRecord is one match hosted by this process. Records live in the
// in-memory database and vanish on restart.
type MatchRecord struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Status        string         `json:"status"` // in_progress | finished
	PlayerCount   int            `json:"player_count"`
	Winner        string         `json:"winner"` // empty when everyone froze in the same tick
	StandingsJSON datatypes.JSON `json:"standings"`
	StartTime     time.Time      `json:"start_time"`
	EndTime       time.Time      `json:"end_time"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// Elimination is one row of the in-match loss log, appended the moment a
// player freezes. LossOrder starts at 1; the winner gets the highest order.
type Elimination struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	MatchID    uint      `gorm:"index" json:"match_id"`
	PlayerName string    `json:"player_name"`
	LossOrder  int       `json:"loss_order"`
	CreatedAt  time.Time `json:"created_at"`
}
