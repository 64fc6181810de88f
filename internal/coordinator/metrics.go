package coordinator

import "expvar"

var (
	metricQueueJoinedTotal     = expvar.NewInt("queue_joined_total")
	metricSessionsStartedTotal = expvar.NewInt("sessions_started_total")
	metricBotSessionsTotal     = expvar.NewInt("bot_sessions_total")
	metricGamesFinishedTotal   = expvar.NewInt("games_finished_total")
	metricForfeitsTotal        = expvar.NewInt("forfeits_total")
	metricReconnectsTotal      = expvar.NewInt("reconnects_total")
	metricPersistFailedTotal   = expvar.NewInt("persist_failed_total")
)
