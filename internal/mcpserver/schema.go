package mcpserver

const (
	defaultGamesLimit   = 20
	maxGamesLimit       = 100
	maxLeaderboardLimit = 100
)

func clampPagination(limit, offset, maxLimit int) (int, int) {
	if limit <= 0 {
		limit = defaultGamesLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
