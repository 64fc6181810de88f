package session

import (
	"sync"
	"time"

	"four-in-a-row/internal/game"
	"four-in-a-row/internal/protocol"

	"github.com/rs/zerolog/log"
)

// Session is one game between two players. All state is guarded by mu;
// timers re-validate under mu when they fire.
type Session struct {
	id   string
	opts Options

	mu        sync.Mutex
	players   [2]*Player
	board     game.Board
	turn      int
	status    Status
	outcome   Outcome
	winner    int
	moves     int
	startedAt time.Time
	endedAt   time.Time

	disconnectSeq uint64
	forfeitTimers [2]*time.Timer
	botTimer      *time.Timer
}

// New creates an active session. p1 plays side A and moves first.
func New(id string, p1, p2 Player, opts Options) *Session {
	if opts.ForfeitGrace <= 0 {
		opts.ForfeitGrace = defaultForfeitGrace
	}
	if opts.BotDelay <= 0 {
		opts.BotDelay = defaultBotDelay
	}
	if opts.Notifier == nil {
		opts.Notifier = discard{}
	}
	a, b := p1, p2
	a.side = game.SideA
	b.side = game.SideB
	return &Session{
		id:        id,
		opts:      opts,
		players:   [2]*Player{&a, &b},
		status:    StatusActive,
		winner:    -1,
		startedAt: time.Now().UTC(),
	}
}

func (s *Session) ID() string { return s.id }

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Start announces the game to both humans and, when the first mover is a
// bot, schedules its move.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusActive {
		return
	}
	ev := protocol.GameStart{
		Type:      protocol.TypeGameStart,
		SessionID: s.id,
		Players: []protocol.PlayerInfo{
			{Username: s.players[0].Username, ConnectionID: s.players[0].ConnID},
			{Username: s.players[1].Username, ConnectionID: s.players[1].ConnID},
		},
		Turn: s.players[s.turn].ConnID,
	}
	s.broadcastLocked(ev)
	log.Info().
		Str("session_id", s.id).
		Str("player1", s.players[0].Username).
		Str("player2", s.players[1].Username).
		Bool("vs_bot", s.players[0].Bot || s.players[1].Bot).
		Msg("session_started")
	if s.players[s.turn].Bot {
		s.scheduleBotLocked()
	}
}

// ApplyMove reports whether the move from connID was accepted.
func (s *Session) ApplyMove(connID string, col int) bool {
	return s.TryMove(connID, col) == nil
}

// TryMove validates and applies a move, returning the reason for any
// rejection. Rejected moves leave the session untouched and emit nothing.
func (s *Session) TryMove(connID string, col int) error {
	s.mu.Lock()
	idx := s.indexByConnLocked(connID)
	if idx < 0 || s.players[idx].Bot {
		active := s.status == StatusActive
		s.mu.Unlock()
		if !active {
			return ErrNotActive
		}
		return ErrUnknownPlayer
	}
	res, err := s.applyMoveLocked(idx, col)
	s.mu.Unlock()
	s.finish(res)
	return err
}

func (s *Session) applyMoveLocked(idx, col int) (*Result, error) {
	if s.status != StatusActive {
		return nil, ErrNotActive
	}
	if idx != s.turn {
		return nil, ErrNotYourTurn
	}
	if col < 0 || col >= game.Columns {
		return nil, game.ErrColumnOutOfRange
	}
	if !s.board.Legal(col) {
		return nil, game.ErrColumnFull
	}
	mover := s.players[idx]
	row, err := s.board.Drop(col, mover.side)
	if err != nil {
		return nil, err
	}
	s.moves++

	ev := protocol.MoveMade{
		Type:   protocol.TypeMoveMade,
		Column: col,
		Row:    row,
		Player: mover.ConnID,
		Board:  s.board,
	}
	switch {
	case s.board.WinsAt(row, col, mover.side):
		s.closeLocked(OutcomeWin, idx)
		winner := mover.Username
		ev.Winner = &winner
	case s.board.Full():
		s.closeLocked(OutcomeDraw, -1)
		ev.IsDraw = true
	default:
		next := s.players[1-idx].ConnID
		ev.NextTurn = &next
	}
	s.broadcastLocked(ev)

	if s.status == StatusFinished {
		log.Info().
			Str("session_id", s.id).
			Str("outcome", string(s.outcome)).
			Int("moves", s.moves).
			Msg("session_finished")
		return s.resultLocked(), nil
	}
	s.turn = 1 - idx
	if s.players[s.turn].Bot {
		s.scheduleBotLocked()
	}
	return nil, nil
}

// scheduleBotLocked computes the bot's reply on a copy of the board after
// the configured delay. The move is dropped if the game moved on.
func (s *Session) scheduleBotLocked() {
	turn := s.turn
	ply := s.moves
	board := s.board
	side := s.players[turn].side
	engine := s.opts.Engine
	if s.botTimer != nil {
		s.botTimer.Stop()
	}
	s.botTimer = time.AfterFunc(s.opts.BotDelay, func() {
		col := engine.ChooseMove(board, side)
		if col < 0 {
			return
		}
		s.mu.Lock()
		if s.status != StatusActive || s.turn != turn || s.moves != ply {
			s.mu.Unlock()
			return
		}
		res, err := s.applyMoveLocked(turn, col)
		s.mu.Unlock()
		if err != nil {
			log.Warn().Err(err).Str("session_id", s.id).Int("column", col).Msg("bot_move_rejected")
		}
		s.finish(res)
	})
}

// HandleDisconnect marks the human on connID as gone and arms the forfeit
// timer. It returns false when the session is over or connID is unknown.
func (s *Session) HandleDisconnect(connID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusActive {
		return false
	}
	idx := s.indexByConnLocked(connID)
	if idx < 0 || s.players[idx].Bot || s.players[idx].disconnected {
		return false
	}
	p := s.players[idx]
	s.disconnectSeq++
	occurrence := s.disconnectSeq
	p.disconnected = true
	p.disconnectedAt = time.Now().UTC()
	p.occurrence = occurrence

	if other := s.players[1-idx]; !other.Bot {
		s.opts.Notifier.Notify(other.ConnID, protocol.OpponentStatus{
			Type:     protocol.TypeOpponentDisconnected,
			Username: p.Username,
		})
	}
	if t := s.forfeitTimers[idx]; t != nil {
		t.Stop()
	}
	s.forfeitTimers[idx] = time.AfterFunc(s.opts.ForfeitGrace, func() {
		s.forfeitIfStillGone(idx, occurrence)
	})
	log.Info().
		Str("session_id", s.id).
		Str("username", p.Username).
		Dur("grace", s.opts.ForfeitGrace).
		Msg("player_disconnected")
	return true
}

func (s *Session) forfeitIfStillGone(idx int, occurrence uint64) {
	s.mu.Lock()
	p := s.players[idx]
	if s.status != StatusActive || !p.disconnected || p.occurrence != occurrence {
		s.mu.Unlock()
		return
	}
	res := s.forfeitLocked(idx)
	s.mu.Unlock()
	s.finish(res)
}

// HandleReconnect binds newConnID to the disconnected player called
// username.
func (s *Session) HandleReconnect(username, newConnID string) bool {
	_, err := s.Reconnect(username, newConnID)
	return err == nil
}

// Reconnect is HandleReconnect returning the replaced connection id.
func (s *Session) Reconnect(username, newConnID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusActive {
		return "", ErrNotActive
	}
	idx := -1
	for i, p := range s.players {
		if !p.Bot && p.disconnected && p.Username == username {
			idx = i
			break
		}
	}
	if idx < 0 {
		return "", ErrNoDisconnectedPlayer
	}
	p := s.players[idx]
	prev := p.ConnID
	p.ConnID = newConnID
	p.disconnected = false
	p.disconnectedAt = time.Time{}
	p.occurrence = 0
	if t := s.forfeitTimers[idx]; t != nil {
		t.Stop()
		s.forfeitTimers[idx] = nil
	}

	s.opts.Notifier.Notify(newConnID, protocol.ReconnectSuccess{
		Type:      protocol.TypeReconnectSuccess,
		SessionID: s.id,
		Board:     s.board,
		Turn:      s.players[s.turn].ConnID,
	})
	if other := s.players[1-idx]; !other.Bot {
		s.opts.Notifier.Notify(other.ConnID, protocol.OpponentStatus{
			Type:     protocol.TypeOpponentReconnected,
			Username: p.Username,
		})
	}
	log.Info().Str("session_id", s.id).Str("username", username).Msg("player_reconnected")
	return prev, nil
}

// Forfeit ends the game in favour of the opponent of username.
func (s *Session) Forfeit(username string) {
	s.mu.Lock()
	if s.status != StatusActive {
		s.mu.Unlock()
		return
	}
	idx := -1
	for i, p := range s.players {
		if p.Bot || p.Username != username {
			continue
		}
		if idx < 0 || p.disconnected {
			idx = i
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	res := s.forfeitLocked(idx)
	s.mu.Unlock()
	s.finish(res)
}

func (s *Session) forfeitLocked(loser int) *Result {
	winner := 1 - loser
	s.closeLocked(OutcomeForfeit, winner)
	if w := s.players[winner]; !w.Bot {
		s.opts.Notifier.Notify(w.ConnID, protocol.GameOver{
			Type:   protocol.TypeGameOver,
			Winner: w.Username,
			Reason: protocol.ReasonOpponentForfeit,
		})
	}
	log.Info().
		Str("session_id", s.id).
		Str("forfeiter", s.players[loser].Username).
		Str("winner", s.players[winner].Username).
		Msg("session_forfeited")
	return s.resultLocked()
}

// Close stops pending timers without finishing the game.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimersLocked()
}

func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := View{
		ID:        s.id,
		Status:    s.status,
		Outcome:   s.outcome,
		Board:     s.board,
		Moves:     s.moves,
		StartedAt: s.startedAt,
	}
	if s.status == StatusActive {
		v.Turn = s.players[s.turn].ConnID
	}
	if s.winner >= 0 {
		v.Winner = s.players[s.winner].Username
	}
	for i, p := range s.players {
		v.Players[i] = PlayerView{
			ConnID:       p.ConnID,
			Username:     p.Username,
			Bot:          p.Bot,
			Side:         p.side.String(),
			Disconnected: p.disconnected,
			Since:        p.disconnectedAt,
		}
	}
	return v
}

func (s *Session) closeLocked(outcome Outcome, winner int) {
	s.status = StatusFinished
	s.outcome = outcome
	s.winner = winner
	s.endedAt = time.Now().UTC()
	s.stopTimersLocked()
}

func (s *Session) stopTimersLocked() {
	for i, t := range s.forfeitTimers {
		if t != nil {
			t.Stop()
			s.forfeitTimers[i] = nil
		}
	}
	if s.botTimer != nil {
		s.botTimer.Stop()
		s.botTimer = nil
	}
}

func (s *Session) resultLocked() *Result {
	res := &Result{
		SessionID: s.id,
		Player1:   s.players[0].Username,
		Player2:   s.players[1].Username,
		Winner:    protocol.WinnerDraw,
		Outcome:   s.outcome,
		Moves:     s.moves,
		Board:     s.board,
		StartedAt: s.startedAt,
		EndedAt:   s.endedAt,
	}
	if s.winner >= 0 {
		w := s.players[s.winner]
		res.Winner = w.Username
		res.WinnerIsHuman = !w.Bot
	}
	for _, p := range s.players {
		if !p.Bot {
			res.ConnIDs = append(res.ConnIDs, p.ConnID)
		}
	}
	return res
}

func (s *Session) finish(res *Result) {
	if res == nil || s.opts.OnFinish == nil {
		return
	}
	s.opts.OnFinish(*res)
}

func (s *Session) broadcastLocked(ev protocol.Event) {
	for _, p := range s.players {
		if p.Bot {
			continue
		}
		s.opts.Notifier.Notify(p.ConnID, ev)
	}
}

func (s *Session) indexByConnLocked(connID string) int {
	for i, p := range s.players {
		if p.ConnID == connID {
			return i
		}
	}
	return -1
}

type discard struct{}

func (discard) Notify(string, protocol.Event) {}
