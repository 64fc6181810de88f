package httptransport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"four-in-a-row/internal/coordinator"
	"four-in-a-row/internal/store"
)

type fakeReader struct {
	games []store.GameRecord
}

func (f *fakeReader) Leaderboard(_ context.Context, limit int) ([]store.LeaderboardEntry, error) {
	rows := []store.LeaderboardEntry{{Username: "alice", Wins: 3}, {Username: "bob", Wins: 1}}
	if limit < len(rows) {
		rows = rows[:limit]
	}
	return rows, nil
}

func (f *fakeReader) ListGamesByPlayer(_ context.Context, username string, _, _ int) ([]store.GameRecord, error) {
	var out []store.GameRecord
	for _, g := range f.games {
		if g.Player1 == username || g.Player2 == username {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeReader) GetGame(_ context.Context, id string) (store.GameRecord, error) {
	for _, g := range f.games {
		if g.ID == id {
			return g, nil
		}
	}
	return store.GameRecord{}, store.ErrNotFound
}

func (f *fakeReader) Totals(context.Context) (store.Totals, error) {
	return store.Totals{Games: int64(len(f.games))}, nil
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

type fakeLive struct{}

func (fakeLive) Stats() coordinator.Stats { return coordinator.Stats{Waiting: 1} }

func newTestRouter(reader *fakeReader, db Pinger) http.Handler {
	deps := Deps{Live: fakeLive{}, DB: db}
	if reader != nil {
		deps.Reader = reader
	}
	return NewRouter(deps)
}

func serve(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name string
		db   Pinger
		want string
	}{
		{name: "no database", db: nil, want: "disabled"},
		{name: "reachable", db: fakePinger{}, want: "ok"},
		{name: "unreachable", db: fakePinger{err: errors.New("down")}, want: "unreachable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(t, newTestRouter(nil, tt.db), http.MethodGet, "/healthz")
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", w.Code)
			}
			var body map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body["db"] != tt.want {
				t.Fatalf("db = %v, want %s", body["db"], tt.want)
			}
		})
	}
}

func TestLeaderboardRoutes(t *testing.T) {
	router := newTestRouter(&fakeReader{}, fakePinger{})
	for _, path := range []string{"/leaderboard", "/api/public/leaderboard?limit=1"} {
		w := serve(t, router, http.MethodGet, path)
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, w.Code)
		}
	}
	w := serve(t, router, http.MethodGet, "/api/public/leaderboard?limit=1")
	var resp struct {
		Items []struct {
			Rank     int    `json:"rank"`
			Username string `json:"username"`
		} `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0].Username != "alice" || resp.Items[0].Rank != 1 {
		t.Fatalf("unexpected leaderboard %+v", resp.Items)
	}

	w = serve(t, router, http.MethodGet, "/leaderboard?limit=abc")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad limit, got %d", w.Code)
	}
}

func TestGameRoutes(t *testing.T) {
	router := newTestRouter(&fakeReader{games: []store.GameRecord{
		{ID: "g1", Player1: "alice", Player2: "Bot", Winner: "alice", Reason: "global_win", Moves: 7},
	}}, fakePinger{})

	w := serve(t, router, http.MethodGet, "/api/public/games")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without username, got %d", w.Code)
	}
	w = serve(t, router, http.MethodGet, "/api/public/games?username=alice")
	if w.Code != http.StatusOK || !bytes.Contains(w.Body.Bytes(), []byte(`"g1"`)) {
		t.Fatalf("unexpected games response %d %s", w.Code, w.Body.String())
	}
	w = serve(t, router, http.MethodGet, "/api/public/games/g1")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	w = serve(t, router, http.MethodGet, "/api/public/games/missing")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestStatsAndDebugRoutes(t *testing.T) {
	router := newTestRouter(nil, nil)
	w := serve(t, router, http.MethodGet, "/api/public/stats")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var stats struct {
		Live        coordinator.Stats `json:"live"`
		Persistence bool              `json:"persistence"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats.Persistence || stats.Live.Waiting != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	w = serve(t, router, http.MethodGet, "/debug/vars")
	if w.Code != http.StatusOK || !bytes.Contains(w.Body.Bytes(), []byte(`"public_query_total"`)) {
		t.Fatalf("expected expvar dump at /debug/vars, got %d", w.Code)
	}
	if w := serve(t, router, http.MethodGet, "/api/debug/vars"); w.Code != http.StatusNotFound {
		t.Fatalf("expected expvar only at /debug/vars, got %d for /api/debug/vars", w.Code)
	}
	if w := serve(t, router, http.MethodOptions, "/mcp"); w.Code != http.StatusNoContent {
		t.Fatalf("expected /mcp OPTIONS 204, got %d", w.Code)
	}
}

func TestMCPInitialize(t *testing.T) {
	router := newTestRouter(nil, nil)
	initBody := []byte(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test-client","version":"1.0.0"}}}`)
	req := httptest.NewRequest(http.MethodPost, "/mcp", bytes.NewReader(initBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected /mcp POST initialize 200, got %d body=%s", w.Code, w.Body.String())
	}
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		query      string
		wantLimit  int
		wantOffset int
	}{
		{query: "", wantLimit: 50, wantOffset: 0},
		{query: "?limit=5&offset=10", wantLimit: 5, wantOffset: 10},
		{query: "?limit=0&offset=-3", wantLimit: 1, wantOffset: 0},
		{query: "?limit=9999", wantLimit: 500, wantOffset: 0},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/x"+tt.query, nil)
		limit, offset := ParsePagination(req)
		if limit != tt.wantLimit || offset != tt.wantOffset {
			t.Fatalf("%q: got (%d,%d), want (%d,%d)", tt.query, limit, offset, tt.wantLimit, tt.wantOffset)
		}
	}
}
