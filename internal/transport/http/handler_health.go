package httptransport

import (
	"context"
	"net/http"
)

// Pinger reports database reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health reports ok even without a database; "db" tells whether one is
// configured and reachable.
func Health(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "disabled"
		if db != nil {
			status = "ok"
			if err := db.Ping(r.Context()); err != nil {
				status = "unreachable"
			}
		}
		writeJSON(w, map[string]any{"ok": true, "db": status})
	}
}
