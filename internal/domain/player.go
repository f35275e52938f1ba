package domain

import "time"

// Team groups players. Names are unique.
type Team struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// Player is a scouted athlete. TeamID/TeamName are nil for free agents.
type Player struct {
	ID        int64
	Name      string
	Position  string
	TeamID    *int64
	TeamName  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Observer is a scout account allowed to rate players.
type Observer struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// StatLine holds cumulative per-player statistics.
type StatLine struct {
	Games       int
	Goals       int
	Assists     int
	Shots       int
	Tackles     int
	YellowCards int
	RedCards    int
	Minutes     int
}

// Add accumulates another line into s.
func (s *StatLine) Add(o StatLine) {
	s.Games += o.Games
	s.Goals += o.Goals
	s.Assists += o.Assists
	s.Shots += o.Shots
	s.Tackles += o.Tackles
	s.YellowCards += o.YellowCards
	s.RedCards += o.RedCards
	s.Minutes += o.Minutes
}

// PlayerStats is the stored cumulative stat line of a player.
type PlayerStats struct {
	PlayerID  int64
	StatLine
	UpdatedAt time.Time
}
