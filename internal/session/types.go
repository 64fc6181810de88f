package session

import (
	"errors"
	"time"

	"four-in-a-row/internal/game"
	"four-in-a-row/internal/protocol"
)

var (
	ErrNotActive            = errors.New("session_not_active")
	ErrNotYourTurn          = errors.New("not_your_turn")
	ErrUnknownPlayer        = errors.New("unknown_player")
	ErrNoDisconnectedPlayer = errors.New("no_disconnected_player")
)

// BotConnectionID stands in for the connection of a computer player.
const BotConnectionID = "BOT"

const (
	defaultForfeitGrace = 30 * time.Second
	defaultBotDelay     = 500 * time.Millisecond
)

type Status string

const (
	StatusActive   Status = "active"
	StatusFinished Status = "finished"
)

type Outcome string

const (
	OutcomeNone    Outcome = ""
	OutcomeWin     Outcome = "global_win"
	OutcomeDraw    Outcome = "draw"
	OutcomeForfeit Outcome = "forfeit"
)

// Player is one participant. Bot players never receive events and never
// disconnect.
type Player struct {
	ConnID   string
	Username string
	Bot      bool

	side           game.Side
	disconnected   bool
	disconnectedAt time.Time
	// occurrence tags the latest disconnect so a stale forfeit timer can
	// tell it was superseded.
	occurrence uint64
}

func Human(connID, username string) Player {
	return Player{ConnID: connID, Username: username}
}

func Bot(username string) Player {
	return Player{ConnID: BotConnectionID, Username: username, Bot: true}
}

// Notifier delivers events to a live connection. Implementations must
// not block; the session calls it while holding its lock.
type Notifier interface {
	Notify(connID string, ev protocol.Event)
}

// Result describes a finished session. Winner is the winning username
// or "draw".
type Result struct {
	SessionID     string
	Player1       string
	Player2       string
	Winner        string
	WinnerIsHuman bool
	Outcome       Outcome
	Moves         int
	Board         game.Board
	// ConnIDs holds the final connection id of each human player.
	ConnIDs   []string
	StartedAt time.Time
	EndedAt   time.Time
}

type Options struct {
	ForfeitGrace time.Duration
	BotDelay     time.Duration
	Engine       game.Engine
	Notifier     Notifier
	// OnFinish runs once, after the session lock is released.
	OnFinish func(Result)
}

type PlayerView struct {
	ConnID       string    `json:"connection_id"`
	Username     string    `json:"username"`
	Bot          bool      `json:"bot"`
	Side         string    `json:"side"`
	Disconnected bool      `json:"disconnected"`
	Since        time.Time `json:"disconnected_at,omitzero"`
}

// View is a point-in-time copy of the session.
type View struct {
	ID        string        `json:"id"`
	Status    Status        `json:"status"`
	Outcome   Outcome       `json:"outcome,omitempty"`
	Board     game.Board    `json:"board"`
	Turn      string        `json:"turn"`
	Winner    string        `json:"winner,omitempty"`
	Moves     int           `json:"moves"`
	Players   [2]PlayerView `json:"players"`
	StartedAt time.Time     `json:"started_at"`
}
