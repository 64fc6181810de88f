package public

import (
	"time"

	"four-in-a-row/internal/coordinator"
	"four-in-a-row/internal/store"
)

type LeaderboardResponse struct {
	Items []LeaderboardItem `json:"items"`
	Limit int               `json:"limit"`
}

type LeaderboardItem struct {
	Rank     int    `json:"rank"`
	Username string `json:"username"`
	Wins     int    `json:"wins"`
}

type GamesResponse struct {
	Username string     `json:"username"`
	Items    []GameItem `json:"items"`
	Limit    int        `json:"limit"`
	Offset   int        `json:"offset"`
}

type GameItem struct {
	ID         string    `json:"id"`
	Player1    string    `json:"player1"`
	Player2    string    `json:"player2"`
	Winner     string    `json:"winner"`
	Reason     string    `json:"reason"`
	Moves      int       `json:"moves"`
	DurationMS int64     `json:"duration_ms"`
	EndedAt    time.Time `json:"ended_at"`
}

type StatsResponse struct {
	Live        coordinator.Stats `json:"live"`
	Persistence bool              `json:"persistence"`
	Totals      *store.Totals     `json:"totals,omitempty"`
}
