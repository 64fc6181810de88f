package coordinator

import (
	"context"
	"errors"

	"four-in-a-row/internal/analytics"
	"four-in-a-row/internal/protocol"
	"four-in-a-row/internal/store"
)

var (
	ErrSessionNotFound  = errors.New("session_not_found")
	ErrReconnectFailed  = errors.New("reconnect_failed")
	ErrInvalidUsername  = errors.New("invalid_username")
	ErrAlreadyInSession = errors.New("already_in_session")
)

// Gateway is the outbound side of the connection layer.
type Gateway interface {
	Notify(connID string, ev protocol.Event)
	Connected(connID string) bool
}

// GameStore persists finished games. Nil disables persistence.
type GameStore interface {
	SaveGame(ctx context.Context, g store.GameRecord) error
	RecordWin(ctx context.Context, username string) error
}

// EventPublisher receives a GAME_END event per finished game.
type EventPublisher interface {
	Publish(ev analytics.Event) bool
}

type Deps struct {
	Gateway Gateway
	Games   GameStore
	Events  EventPublisher
}

type Stats struct {
	Waiting        int   `json:"waiting"`
	ActiveSessions int   `json:"active_sessions"`
	Connections    int   `json:"connections_in_game"`
	GamesFinished  int64 `json:"games_finished"`
}
