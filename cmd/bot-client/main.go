package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"four-in-a-row/internal/config"
	"four-in-a-row/internal/game"
	"four-in-a-row/internal/protocol"

	"github.com/gorilla/websocket"
	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var errConnectionClosed = errors.New("connection_closed")

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	cfg, err := config.LoadBot()
	if err != nil {
		log.Fatal().Err(err).Msg("load bot config failed")
	}
	if cfg.Games < 1 {
		cfg.Games = 1
	}
	engine := game.Engine{Depth: cfg.SearchDepth}
	for i := 0; i < cfg.Games; i++ {
		winner, err := playOne(cfg, engine)
		if err != nil {
			log.Fatal().Err(err).Int("game", i+1).Msg("game aborted")
		}
		log.Info().Int("game", i+1).Str("winner", winner).Msg("game finished")
	}
}

// playOne joins the queue on a fresh connection and plays until the game ends.
func playOne(cfg config.BotConfig, engine game.Engine) (string, error) {
	conn, _, err := websocket.DefaultDialer.Dial(cfg.WSURL, nil)
	if err != nil {
		return "", fmt.Errorf("dial %s: %w", cfg.WSURL, err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(protocol.JoinQueue{Type: protocol.TypeJoinQueue, Username: cfg.Name}); err != nil {
		return "", err
	}

	var (
		board  game.Board
		side   game.Side
		connID string
	)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return "", errConnectionClosed
		}
		var base struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(data, &base); err != nil {
			continue
		}
		switch base.Type {
		case protocol.TypeQueueJoined:
			log.Info().Str("username", cfg.Name).Msg("waiting for opponent")
		case protocol.TypeGameStart:
			var ev protocol.GameStart
			if err := json.Unmarshal(data, &ev); err != nil {
				return "", err
			}
			board = game.Board{}
			// Turns are addressed by connection id; players[0] plays side A.
			side, connID = game.SideB, ""
			for i, p := range ev.Players {
				if p.Username != cfg.Name {
					continue
				}
				connID = p.ConnectionID
				if i == 0 {
					side = game.SideA
				}
				break
			}
			log.Info().Str("session_id", ev.SessionID).Str("conn_id", connID).Str("side", side.String()).Msg("game started")
			if ev.Turn == connID {
				if err := move(conn, cfg, engine, board, side); err != nil {
					return "", err
				}
			}
		case protocol.TypeMoveMade:
			var ev protocol.MoveMade
			if err := json.Unmarshal(data, &ev); err != nil {
				return "", err
			}
			board = ev.Board
			if ev.Winner != nil {
				return *ev.Winner, nil
			}
			if ev.IsDraw {
				return protocol.WinnerDraw, nil
			}
			if ev.NextTurn != nil && *ev.NextTurn == connID {
				if err := move(conn, cfg, engine, board, side); err != nil {
					return "", err
				}
			}
		case protocol.TypeGameOver:
			var ev protocol.GameOver
			if err := json.Unmarshal(data, &ev); err != nil {
				return "", err
			}
			return ev.Winner, nil
		case protocol.TypeError:
			var ev protocol.Error
			_ = json.Unmarshal(data, &ev)
			log.Warn().Str("message", ev.Message).Msg("server error")
		}
	}
}

func move(conn *websocket.Conn, cfg config.BotConfig, engine game.Engine, board game.Board, side game.Side) error {
	if cfg.ThinkDelay > 0 {
		time.Sleep(cfg.ThinkDelay)
	}
	col := engine.ChooseMove(board, side)
	if col < 0 {
		return nil
	}
	return conn.WriteJSON(protocol.MakeMove{Type: protocol.TypeMakeMove, Column: col})
}
