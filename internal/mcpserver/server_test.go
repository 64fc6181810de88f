package mcpserver

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"sort"
	"testing"

	apppublic "four-in-a-row/internal/app/public"
	"four-in-a-row/internal/coordinator"
	"four-in-a-row/internal/store"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	"github.com/mark3labs/mcp-go/mcp"
)

type fakeReader struct{}

func (fakeReader) Leaderboard(_ context.Context, limit int) ([]store.LeaderboardEntry, error) {
	rows := []store.LeaderboardEntry{{Username: "alice", Wins: 4}, {Username: "bob", Wins: 2}}
	if limit < len(rows) {
		rows = rows[:limit]
	}
	return rows, nil
}

func (fakeReader) ListGamesByPlayer(_ context.Context, username string, _, _ int) ([]store.GameRecord, error) {
	if username != "alice" {
		return nil, nil
	}
	return []store.GameRecord{{ID: "g1", Player1: "alice", Player2: "Bot", Winner: "alice", Reason: "global_win", Moves: 9}}, nil
}

func (fakeReader) GetGame(context.Context, string) (store.GameRecord, error) {
	return store.GameRecord{}, store.ErrNotFound
}

func (fakeReader) Totals(context.Context) (store.Totals, error) {
	return store.Totals{Games: 1, Players: 2}, nil
}

type fakeLive struct{}

func (fakeLive) Stats() coordinator.Stats {
	return coordinator.Stats{Waiting: 1, ActiveSessions: 3, Connections: 5}
}

func TestMCPServerTools(t *testing.T) {
	srv := New(apppublic.NewService(fakeReader{}, fakeLive{}))
	httpSrv := httptest.NewServer(srv.Handler())
	defer httpSrv.Close()

	mcpClient, closeClient := newMCPClient(t, httpSrv.URL+"/mcp")
	defer closeClient()

	assertToolNames(t, mustListTools(t, mcpClient), "get_leaderboard", "list_player_games", "get_server_stats")

	res := mustCallTool(t, mcpClient, "get_leaderboard", map[string]any{"limit": 1})
	if res.IsError {
		t.Fatalf("get_leaderboard expected success, got: %v", res.StructuredContent)
	}
	var board apppublic.LeaderboardResponse
	decodeStructured(t, res, &board)
	if len(board.Items) != 1 || board.Items[0].Username != "alice" {
		t.Fatalf("unexpected leaderboard %+v", board)
	}

	res = mustCallTool(t, mcpClient, "list_player_games", map[string]any{"username": "alice"})
	if res.IsError {
		t.Fatalf("list_player_games expected success, got: %v", res.StructuredContent)
	}
	var games apppublic.GamesResponse
	decodeStructured(t, res, &games)
	if len(games.Items) != 1 || games.Items[0].ID != "g1" || games.Limit != defaultGamesLimit {
		t.Fatalf("unexpected games %+v", games)
	}

	res = mustCallTool(t, mcpClient, "list_player_games", map[string]any{"username": "  "})
	if !res.IsError {
		t.Fatalf("list_player_games without username should fail")
	}

	res = mustCallTool(t, mcpClient, "get_server_stats", map[string]any{})
	if res.IsError {
		t.Fatalf("get_server_stats expected success, got: %v", res.StructuredContent)
	}
	var stats apppublic.StatsResponse
	decodeStructured(t, res, &stats)
	if stats.Live.ActiveSessions != 3 || !stats.Persistence || stats.Totals == nil || stats.Totals.Players != 2 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestClampPagination(t *testing.T) {
	tests := []struct {
		limit, offset         int
		wantLimit, wantOffset int
	}{
		{0, 0, defaultGamesLimit, 0},
		{500, -1, maxGamesLimit, 0},
		{7, 3, 7, 3},
	}
	for _, tt := range tests {
		l, o := clampPagination(tt.limit, tt.offset, maxGamesLimit)
		if l != tt.wantLimit || o != tt.wantOffset {
			t.Fatalf("clampPagination(%d,%d) = (%d,%d), want (%d,%d)", tt.limit, tt.offset, l, o, tt.wantLimit, tt.wantOffset)
		}
	}
}

func decodeStructured(t *testing.T, res *mcp.CallToolResult, out any) {
	t.Helper()
	raw, err := json.Marshal(res.StructuredContent)
	if err != nil {
		t.Fatalf("marshal structured content: %v", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		t.Fatalf("unmarshal structured content: %v", err)
	}
}

func newMCPClient(t *testing.T, endpoint string) (*client.Client, func()) {
	t.Helper()
	ctx := context.Background()
	trans, err := transport.NewStreamableHTTP(endpoint)
	if err != nil {
		t.Fatalf("new transport: %v", err)
	}
	if err := trans.Start(ctx); err != nil {
		t.Fatalf("transport start: %v", err)
	}
	c := client.NewClient(trans)
	_, err = c.Initialize(ctx, mcp.InitializeRequest{Params: mcp.InitializeParams{ProtocolVersion: mcp.LATEST_PROTOCOL_VERSION}})
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	return c, func() { _ = trans.Close() }
}

func mustListTools(t *testing.T, c *client.Client) []mcp.Tool {
	t.Helper()
	res, err := c.ListTools(context.Background(), mcp.ListToolsRequest{})
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}
	return res.Tools
}

func assertToolNames(t *testing.T, tools []mcp.Tool, expected ...string) {
	t.Helper()
	got := make([]string, 0, len(tools))
	for _, tool := range tools {
		got = append(got, tool.Name)
	}
	sort.Strings(got)
	sort.Strings(expected)
	if len(got) != len(expected) {
		t.Fatalf("tool count mismatch got=%v expected=%v", got, expected)
	}
	for i := range got {
		if got[i] != expected[i] {
			t.Fatalf("tool list mismatch got=%v expected=%v", got, expected)
		}
	}
}

func mustCallTool(t *testing.T, c *client.Client, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	res, err := c.CallTool(context.Background(), mcp.CallToolRequest{Params: mcp.CallToolParams{Name: name, Arguments: args}})
	if err != nil {
		t.Fatalf("call tool %s: %v", name, err)
	}
	return res
}
