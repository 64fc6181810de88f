package analytics

import (
	"time"

	"four-in-a-row/internal/ids"
)

const EventGameEnd = "GAME_END"

// Event is the JSON document published for every finished game.
type Event struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	GameID     string    `json:"id"`
	Player1    string    `json:"player1"`
	Player2    string    `json:"player2"`
	Winner     string    `json:"winner"`
	Reason     string    `json:"reason"`
	Moves      int       `json:"moves"`
	DurationMS int64     `json:"duration_ms"`
	Timestamp  time.Time `json:"timestamp"`
}

type GameSummary struct {
	GameID    string
	Player1   string
	Player2   string
	Winner    string
	Reason    string
	Moves     int
	StartedAt time.Time
	EndedAt   time.Time
}

func GameEnd(g GameSummary) Event {
	ended := g.EndedAt
	if ended.IsZero() {
		ended = time.Now().UTC()
	}
	var dur int64
	if !g.StartedAt.IsZero() {
		dur = ended.Sub(g.StartedAt).Milliseconds()
	}
	return Event{
		EventID:    ids.New(),
		Type:       EventGameEnd,
		GameID:     g.GameID,
		Player1:    g.Player1,
		Player2:    g.Player2,
		Winner:     g.Winner,
		Reason:     g.Reason,
		Moves:      g.Moves,
		DurationMS: dur,
		Timestamp:  ended,
	}
}

// Sender is the publishing half of a NATS connection.
type Sender interface {
	Publish(subject string, data []byte) error
}

type job struct {
	subject string
	data    []byte
	attempt int
}
