package httptransport

import (
	"expvar"
	"fmt"
	"net/http"
	"sort"
	"strings"

	apppublic "four-in-a-row/internal/app/public"
	"four-in-a-row/internal/mcpserver"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// Deps wires the router. Reader and DB stay nil when persistence is off.
type Deps struct {
	Reader apppublic.Reader
	DB     Pinger
	Live   apppublic.LiveStats
	WS     http.Handler
}

func NewRouter(deps Deps) *chi.Mux {
	publicSvc := apppublic.NewService(deps.Reader, deps.Live)
	mcpSrv := mcpserver.New(publicSvc)
	publicHandlers := NewPublicHandlers(publicSvc)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.With(APILogMiddleware()).Get("/healthz", Health(deps.DB))
	r.With(APILogMiddleware()).Get("/leaderboard", publicHandlers.Leaderboard())
	if deps.WS != nil {
		r.Method(http.MethodGet, "/ws", deps.WS)
	}

	r.With(APILogMiddleware()).MethodFunc(http.MethodOptions, "/mcp", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Allow", "POST, GET, DELETE, OPTIONS")
		w.WriteHeader(http.StatusNoContent)
	})
	r.With(APILogMiddleware()).Method(http.MethodPost, "/mcp", mcpSrv.Handler())
	r.With(APILogMiddleware()).Method(http.MethodGet, "/mcp", mcpSrv.Handler())
	r.With(APILogMiddleware()).Method(http.MethodDelete, "/mcp", mcpSrv.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(APILogMiddleware())
		r.Route("/public", func(r chi.Router) {
			r.Get("/leaderboard", publicHandlers.Leaderboard())
			r.Get("/games", publicHandlers.PlayerGames())
			r.Get("/games/{game_id}", publicHandlers.Game())
			r.Get("/stats", publicHandlers.Stats())
		})
	})
	r.Get("/debug/vars", expvar.Handler().ServeHTTP)
	return r
}

func LogRoutes(r chi.Router) {
	type routeDef struct {
		Method string
		Path   string
	}
	routes := make([]routeDef, 0, 16)
	err := chi.Walk(r, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, routeDef{Method: method, Path: route})
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("walk routes failed")
		return
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Registered routes (%d):\n", len(routes)))
	for _, rt := range routes {
		b.WriteString(fmt.Sprintf("  %-6s %s\n", rt.Method, rt.Path))
	}
	fmt.Print(b.String())
}
