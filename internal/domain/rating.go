package domain

import "time"

// Rating is one observer's 1-5 score for a player. At most one exists per
// (ObserverID, PlayerID) pair.
type Rating struct {
	ObserverID int64
	PlayerID   int64
	Value      int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// RatingTotals is the raw aggregate read from storage.
type RatingTotals struct {
	Sum   int64
	Count int64
}

// ObserverRating is a rating joined with the player's display data.
type ObserverRating struct {
	PlayerID   int64
	PlayerName string
	Position   string
	TeamName   *string
	Value      int
	UpdatedAt  time.Time
}
