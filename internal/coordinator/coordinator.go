package coordinator

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"four-in-a-row/internal/analytics"
	"four-in-a-row/internal/config"
	"four-in-a-row/internal/game"
	"four-in-a-row/internal/ids"
	"four-in-a-row/internal/matchmaking"
	"four-in-a-row/internal/protocol"
	"four-in-a-row/internal/session"
	"four-in-a-row/internal/store"

	"github.com/rs/zerolog/log"
)

const persistTimeout = 5 * time.Second

// Coordinator routes gateway traffic to the queue and to sessions.
// Lock order is session.mu before Coordinator.mu; no session method is
// called while mu is held.
type Coordinator struct {
	cfg     config.GameConfig
	engine  game.Engine
	gateway Gateway
	games   GameStore
	events  EventPublisher

	mu       sync.Mutex
	queue    *matchmaking.Queue
	sessions map[string]*session.Session
	registry *registry
	closed   bool

	pending sync.WaitGroup
}

func New(cfg config.GameConfig, deps Deps) *Coordinator {
	if cfg.BotUsername == "" {
		cfg.BotUsername = "Bot"
	}
	if cfg.MaxUsernameLen <= 0 {
		cfg.MaxUsernameLen = 20
	}
	c := &Coordinator{
		cfg:      cfg,
		engine:   game.Engine{Depth: cfg.BotSearchDepth},
		gateway:  deps.Gateway,
		games:    deps.Games,
		events:   deps.Events,
		sessions: map[string]*session.Session{},
		registry: newRegistry(),
	}
	c.queue = matchmaking.NewQueue(cfg.QueueBotFallback, c.onQueueExpired)
	return c
}

// NormalizeUsername trims name and checks its length.
func (c *Coordinator) NormalizeUsername(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > c.cfg.MaxUsernameLen {
		return "", ErrInvalidUsername
	}
	return name, nil
}

// JoinQueue pairs connID with a waiting player or queues it. A connection
// already waiting or already in a session is ignored.
func (c *Coordinator) JoinQueue(connID, username string) error {
	username, err := c.NormalizeUsername(username)
	if err != nil {
		return err
	}
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	if _, busy := c.registry.lookup(connID); busy {
		c.mu.Unlock()
		return nil
	}
	entrant := matchmaking.Entrant{ConnID: connID, Username: username}
	for {
		pairing, res := c.queue.Enqueue(entrant)
		switch res {
		case matchmaking.Ignored:
			c.mu.Unlock()
			return nil
		case matchmaking.Queued:
			c.mu.Unlock()
			metricQueueJoinedTotal.Add(1)
			log.Info().Str("conn_id", connID).Str("username", username).Msg("queue_joined")
			c.gateway.Notify(connID, protocol.QueueJoined{
				Type:    protocol.TypeQueueJoined,
				Message: protocol.MsgWaitingForOpponent,
			})
			return nil
		}
		if !c.gateway.Connected(pairing.First.ConnID) {
			log.Info().Str("conn_id", pairing.First.ConnID).Msg("queue_waiter_gone")
			continue
		}
		sess := c.startSessionLocked(
			session.Human(pairing.First.ConnID, pairing.First.Username),
			session.Human(pairing.Second.ConnID, pairing.Second.Username),
		)
		c.mu.Unlock()
		log.Info().
			Str("session_id", sess.ID()).
			Dur("waited", pairing.Waited).
			Msg("players_paired")
		sess.Start()
		return nil
	}
}

func (c *Coordinator) onQueueExpired(ticketID uint64) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	entrant, ok := c.queue.Expire(ticketID)
	if !ok {
		c.mu.Unlock()
		return
	}
	sess := c.startSessionLocked(
		session.Human(entrant.ConnID, entrant.Username),
		session.Bot(c.cfg.BotUsername),
	)
	c.mu.Unlock()
	metricBotSessionsTotal.Add(1)
	log.Info().Str("session_id", sess.ID()).Str("username", entrant.Username).Msg("bot_opponent_assigned")
	sess.Start()
}

func (c *Coordinator) startSessionLocked(p1, p2 session.Player) *session.Session {
	id := ids.NewSession()
	sess := session.New(id, p1, p2, session.Options{
		ForfeitGrace: c.cfg.ForfeitGrace,
		BotDelay:     c.cfg.BotMoveDelay,
		Engine:       c.engine,
		Notifier:     c.gateway,
		OnFinish:     c.onSessionFinished,
	})
	c.sessions[id] = sess
	for _, p := range []session.Player{p1, p2} {
		if !p.Bot {
			c.registry.bind(p.ConnID, id)
		}
	}
	metricSessionsStartedTotal.Add(1)
	return sess
}

// MakeMove forwards a move to the session connID plays in.
func (c *Coordinator) MakeMove(connID string, column int) bool {
	sess := c.sessionFor(connID)
	if sess == nil {
		return false
	}
	if err := sess.TryMove(connID, column); err != nil {
		log.Debug().Err(err).Str("conn_id", connID).Int("column", column).Msg("move_rejected")
		return false
	}
	return true
}

// Disconnect removes connID from the queue, or starts the forfeit grace
// period in its session. After Shutdown it does nothing.
func (c *Coordinator) Disconnect(connID string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if c.queue.Remove(connID) {
		c.mu.Unlock()
		log.Info().Str("conn_id", connID).Msg("queue_left")
		return
	}
	var sess *session.Session
	if id, ok := c.registry.lookup(connID); ok {
		sess = c.sessions[id]
	}
	c.mu.Unlock()
	if sess != nil {
		sess.HandleDisconnect(connID)
	}
}

// Reconnect resumes sessionID for username on connID. Failures are also
// reported to connID as error events.
func (c *Coordinator) Reconnect(connID, username, sessionID string) error {
	c.mu.Lock()
	sess, ok := c.sessions[sessionID]
	_, busy := c.registry.lookup(connID)
	c.mu.Unlock()
	if !ok {
		c.gateway.Notify(connID, protocol.NewError(protocol.MsgGameNotFound))
		return ErrSessionNotFound
	}
	if busy {
		c.gateway.Notify(connID, protocol.NewError(protocol.MsgReconnectFailed))
		return ErrAlreadyInSession
	}
	prev, err := sess.Reconnect(strings.TrimSpace(username), connID)
	if err != nil {
		c.gateway.Notify(connID, protocol.NewError(protocol.MsgReconnectFailed))
		return ErrReconnectFailed
	}

	c.mu.Lock()
	c.queue.Remove(connID)
	c.registry.unbind(prev, sessionID)
	if _, live := c.sessions[sessionID]; live {
		c.registry.bind(connID, sessionID)
	}
	c.mu.Unlock()
	metricReconnectsTotal.Add(1)
	return nil
}

func (c *Coordinator) onSessionFinished(res session.Result) {
	c.mu.Lock()
	delete(c.sessions, res.SessionID)
	c.registry.dropSession(res.SessionID)
	closing := c.closed
	if !closing {
		c.pending.Add(1)
	}
	c.mu.Unlock()

	metricGamesFinishedTotal.Add(1)
	if res.Outcome == session.OutcomeForfeit {
		metricForfeitsTotal.Add(1)
	}
	if closing {
		c.persist(res)
		return
	}
	go func() {
		defer c.pending.Done()
		c.persist(res)
	}()
}

// persist is best effort: failures are logged and never reach players.
func (c *Coordinator) persist(res session.Result) {
	reason := string(res.Outcome)
	if c.games != nil {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		err := c.games.SaveGame(ctx, store.GameRecord{
			ID:        res.SessionID,
			Player1:   res.Player1,
			Player2:   res.Player2,
			Winner:    res.Winner,
			Reason:    reason,
			Moves:     res.Moves,
			StartedAt: res.StartedAt,
			EndedAt:   res.EndedAt,
		})
		if err != nil {
			metricPersistFailedTotal.Add(1)
			log.Error().Err(err).Str("session_id", res.SessionID).Msg("save_game_failed")
		}
		if res.WinnerIsHuman {
			if err := c.games.RecordWin(ctx, res.Winner); err != nil {
				metricPersistFailedTotal.Add(1)
				log.Error().Err(err).Str("session_id", res.SessionID).Str("username", res.Winner).Msg("record_win_failed")
			}
		}
	}
	if c.events != nil {
		c.events.Publish(analytics.GameEnd(analytics.GameSummary{
			GameID:    res.SessionID,
			Player1:   res.Player1,
			Player2:   res.Player2,
			Winner:    res.Winner,
			Reason:    reason,
			Moves:     res.Moves,
			StartedAt: res.StartedAt,
			EndedAt:   res.EndedAt,
		}))
	}
}

func (c *Coordinator) sessionFor(connID string) *session.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	id, ok := c.registry.lookup(connID)
	if !ok {
		return nil
	}
	return c.sessions[id]
}

// Session returns the live session with id.
func (c *Coordinator) Session(id string) (*session.Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.sessions[id]
	return s, ok
}

func (c *Coordinator) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Waiting:        c.queue.Len(),
		ActiveSessions: len(c.sessions),
		Connections:    c.registry.len(),
		GamesFinished:  metricGamesFinishedTotal.Value(),
	}
}

// Shutdown stops accepting players, cancels every timer and waits for
// in-flight persistence until ctx is done.
func (c *Coordinator) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	c.closed = true
	c.queue.Close()
	live := make([]*session.Session, 0, len(c.sessions))
	for _, s := range c.sessions {
		live = append(live, s)
	}
	c.mu.Unlock()

	for _, s := range live {
		s.Close()
	}
	done := make(chan struct{})
	go func() {
		c.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
