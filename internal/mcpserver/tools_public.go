package mcpserver

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPublicTools() {
	s.mcpServer.AddTool(
		mcp.NewTool(
			"get_leaderboard",
			mcp.WithDescription("Top players by number of wins"),
			mcp.WithNumber("limit", mcp.Description("Rows to return, default 10, max 100")),
		),
		s.handleGetLeaderboard,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"list_player_games",
			mcp.WithDescription("Finished games of a player, most recent first"),
			mcp.WithString("username", mcp.Required(), mcp.Description("Player username")),
			mcp.WithNumber("limit", mcp.Description("Page size, default 20, max 100")),
			mcp.WithNumber("offset", mcp.Description("Page offset, default 0")),
		),
		s.handleListPlayerGames,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"get_server_stats",
			mcp.WithDescription("Queued players, active sessions and finished game totals"),
		),
		s.handleGetServerStats,
	)
}

func (s *Server) handleGetLeaderboard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", 0)
	if limit > maxLeaderboardLimit {
		limit = maxLeaderboardLimit
	}
	resp, err := s.publicSvc.Leaderboard(ctx, limit)
	if err != nil {
		return mapDomainError(err), nil
	}
	return toolResult(resp), nil
}

func (s *Server) handleListPlayerGames(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	username := strings.TrimSpace(request.GetString("username", ""))
	if username == "" {
		return toolError("invalid_request", "username is required"), nil
	}
	limit, offset := clampPagination(request.GetInt("limit", 0), request.GetInt("offset", 0), maxGamesLimit)
	resp, err := s.publicSvc.PlayerGames(ctx, username, limit, offset)
	if err != nil {
		return mapDomainError(err), nil
	}
	return toolResult(resp), nil
}

func (s *Server) handleGetServerStats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resp, err := s.publicSvc.Stats(ctx)
	if err != nil {
		return mapDomainError(err), nil
	}
	return toolResult(resp), nil
}
