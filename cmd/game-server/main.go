package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"four-in-a-row/internal/analytics"
	"four-in-a-row/internal/config"
	"four-in-a-row/internal/coordinator"
	"four-in-a-row/internal/logging"
	"four-in-a-row/internal/store"
	httptransport "four-in-a-row/internal/transport/http"
	"four-in-a-row/internal/ws"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.LoadApp()
	if err != nil {
		panic(err)
	}
	if err := logging.Init(cfg.Log); err != nil {
		panic(err)
	}
	defer func() { _ = logging.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st := openStore(ctx, cfg.Server.PostgresDSN)
	if st != nil {
		defer st.Close()
	}

	publisher, err := analytics.Connect(cfg.Analytics)
	if err != nil {
		log.Warn().Err(err).Str("url", cfg.Analytics.NATSURL).Msg("analytics_unavailable")
		publisher = analytics.New(cfg.Analytics, nil)
	}
	// Workers run until Close, after the coordinator has drained.
	publisher.Start(context.Background())

	hub := ws.NewHub()
	deps := coordinator.Deps{Gateway: hub, Events: publisher}
	routerDeps := httptransport.Deps{}
	// Interfaces stay nil without a store.
	if st != nil {
		deps.Games = st
		routerDeps.Reader = st
		routerDeps.DB = st
	}
	coord := coordinator.New(cfg.Game, deps)
	routerDeps.Live = coord
	routerDeps.WS = http.HandlerFunc(ws.NewServer(hub, coord, cfg.Server.AllowedOrigins).HandleWS)

	r := httptransport.NewRouter(routerDeps)
	httptransport.LogRoutes(r)

	server := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	go func() {
		log.Info().
			Str("addr", cfg.Server.HTTPAddr).
			Bool("persistence", st != nil).
			Bool("analytics", publisher.Enabled()).
			Msg("http listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown_started")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("http_shutdown_failed")
	}
	hub.CloseAll()
	if err := coord.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("pending_persistence_abandoned")
	}
	publisher.Close()
	log.Info().Msg("shutdown_complete")
}

// openStore returns nil when no DSN is configured.
func openStore(ctx context.Context, dsn string) *store.Store {
	if dsn == "" {
		log.Warn().Msg("POSTGRES_DSN not set; games will not be persisted")
		return nil
	}
	st, err := store.New(dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("store init failed")
	}
	if err := st.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("db ping failed")
	}
	if err := st.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensure schema failed")
	}
	return st
}
