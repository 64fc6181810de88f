package protocol

import "four-in-a-row/internal/game"

// Inbound message types.
const (
	TypeJoinQueue     = "join_queue"
	TypeMakeMove      = "make_move"
	TypeReconnectGame = "reconnect_game"
)

// Outbound event types.
const (
	TypeQueueJoined          = "queue_joined"
	TypeGameStart            = "game_start"
	TypeMoveMade             = "move_made"
	TypeOpponentDisconnected = "opponent_disconnected"
	TypeOpponentReconnected  = "opponent_reconnected"
	TypeReconnectSuccess     = "reconnect_success"
	TypeGameOver             = "game_over"
	TypeError                = "error"
)

const (
	ReasonOpponentForfeit = "opponent_forfeit"
	WinnerDraw            = "draw"
)

const (
	MsgWaitingForOpponent = "Waiting for opponent..."
	MsgGameNotFound       = "Game not found"
	MsgReconnectFailed    = "Could not reconnect to game"
	MsgInvalidUsername    = "Invalid username"
)

// Event is anything the server pushes to a connection.
type Event interface {
	EventType() string
}

type JoinQueue struct {
	Type     string `json:"type"`
	Username string `json:"username"`
}

type MakeMove struct {
	Type   string `json:"type"`
	Column int    `json:"column"`
}

type ReconnectGame struct {
	Type      string `json:"type"`
	Username  string `json:"username"`
	SessionID string `json:"session_id"`
}

type QueueJoined struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type PlayerInfo struct {
	Username     string `json:"username"`
	ConnectionID string `json:"connection_id"`
}

type GameStart struct {
	Type      string       `json:"type"`
	SessionID string       `json:"session_id"`
	Players   []PlayerInfo `json:"players"`
	Turn      string       `json:"turn"`
}

// MoveMade carries the board after the move. NextTurn is nil once the
// game is over; Winner is nil unless the move won.
type MoveMade struct {
	Type     string     `json:"type"`
	Column   int        `json:"column"`
	Row      int        `json:"row"`
	Player   string     `json:"player"`
	Board    game.Board `json:"board"`
	NextTurn *string    `json:"next_turn"`
	Winner   *string    `json:"winner"`
	IsDraw   bool       `json:"is_draw"`
}

type OpponentStatus struct {
	Type     string `json:"type"`
	Username string `json:"username"`
}

type ReconnectSuccess struct {
	Type      string     `json:"type"`
	SessionID string     `json:"session_id"`
	Board     game.Board `json:"board"`
	Turn      string     `json:"turn"`
}

type GameOver struct {
	Type   string `json:"type"`
	Winner string `json:"winner"`
	Reason string `json:"reason"`
}

type Error struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (m QueueJoined) EventType() string      { return TypeQueueJoined }
func (m GameStart) EventType() string        { return TypeGameStart }
func (m MoveMade) EventType() string         { return TypeMoveMade }
func (m OpponentStatus) EventType() string   { return m.Type }
func (m ReconnectSuccess) EventType() string { return TypeReconnectSuccess }
func (m GameOver) EventType() string         { return TypeGameOver }
func (m Error) EventType() string            { return TypeError }

func NewError(msg string) Error {
	return Error{Type: TypeError, Message: msg}
}
