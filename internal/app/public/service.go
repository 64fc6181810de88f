package public

import (
	"context"
	"errors"
	"strings"

	"four-in-a-row/internal/coordinator"
	"four-in-a-row/internal/store"
)

const (
	leaderboardDefaultRows = 10
	leaderboardMaxRows     = 100
	gamesDefaultRows       = 20
	gamesMaxRows           = 100
)

// Reader is the read side of the game store.
type Reader interface {
	Leaderboard(ctx context.Context, limit int) ([]store.LeaderboardEntry, error)
	ListGamesByPlayer(ctx context.Context, username string, limit, offset int) ([]store.GameRecord, error)
	GetGame(ctx context.Context, id string) (store.GameRecord, error)
	Totals(ctx context.Context) (store.Totals, error)
}

type LiveStats interface {
	Stats() coordinator.Stats
}

// Service answers read-only queries. A nil reader means persistence is
// off; queries then return empty results.
type Service struct {
	reader Reader
	live   LiveStats
}

func NewService(reader Reader, live LiveStats) *Service {
	return &Service{reader: reader, live: live}
}

func (s *Service) Leaderboard(ctx context.Context, limit int) (*LeaderboardResponse, error) {
	limit = clamp(limit, leaderboardDefaultRows, leaderboardMaxRows)
	resp := &LeaderboardResponse{Items: []LeaderboardItem{}, Limit: limit}
	if s.reader == nil {
		return resp, nil
	}
	rows, err := s.reader.Leaderboard(ctx, limit)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		resp.Items = append(resp.Items, LeaderboardItem{Rank: i + 1, Username: row.Username, Wins: row.Wins})
	}
	return resp, nil
}

func (s *Service) PlayerGames(ctx context.Context, username string, limit, offset int) (*GamesResponse, error) {
	username = strings.TrimSpace(username)
	if username == "" || offset < 0 {
		return nil, ErrInvalidRequest
	}
	limit = clamp(limit, gamesDefaultRows, gamesMaxRows)
	resp := &GamesResponse{Username: username, Items: []GameItem{}, Limit: limit, Offset: offset}
	if s.reader == nil {
		return resp, nil
	}
	rows, err := s.reader.ListGamesByPlayer(ctx, username, limit, offset)
	if err != nil {
		return nil, err
	}
	for _, g := range rows {
		resp.Items = append(resp.Items, toGameItem(g))
	}
	return resp, nil
}

func (s *Service) Game(ctx context.Context, id string) (*GameItem, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrInvalidRequest
	}
	if s.reader == nil {
		return nil, ErrGameNotFound
	}
	g, err := s.reader.GetGame(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	item := toGameItem(g)
	return &item, nil
}

func (s *Service) Stats(ctx context.Context) (*StatsResponse, error) {
	resp := &StatsResponse{Persistence: s.reader != nil}
	if s.live != nil {
		resp.Live = s.live.Stats()
	}
	if s.reader != nil {
		totals, err := s.reader.Totals(ctx)
		if err != nil {
			return nil, err
		}
		resp.Totals = &totals
	}
	return resp, nil
}

func toGameItem(g store.GameRecord) GameItem {
	item := GameItem{
		ID:      g.ID,
		Player1: g.Player1,
		Player2: g.Player2,
		Winner:  g.Winner,
		Reason:  g.Reason,
		Moves:   g.Moves,
		EndedAt: g.EndedAt,
	}
	if !g.StartedAt.IsZero() && g.EndedAt.After(g.StartedAt) {
		item.DurationMS = g.EndedAt.Sub(g.StartedAt).Milliseconds()
	}
	return item
}

func clamp(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
