package store

import "time"

// GameRecord is one finished game. Winner is a username or "draw".
type GameRecord struct {
	ID        string    `json:"id"`
	Player1   string    `json:"player1"`
	Player2   string    `json:"player2"`
	Winner    string    `json:"winner"`
	Reason    string    `json:"reason"`
	Moves     int       `json:"moves"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`
}

type LeaderboardEntry struct {
	Username string `json:"username"`
	Wins     int    `json:"wins"`
}

type Totals struct {
	Games   int64 `json:"games"`
	Draws   int64 `json:"draws"`
	Players int64 `json:"players"`
}
