package analytics

import "expvar"

var (
	metricEventsQueuedTotal       = expvar.NewInt("analytics_events_queued_total")
	metricEventsDroppedTotal      = expvar.NewInt("analytics_events_dropped_total")
	metricEventsSentTotal         = expvar.NewInt("analytics_events_sent_total")
	metricEventsFailedTotal       = expvar.NewInt("analytics_events_failed_total")
	metricEventsRetryTotal        = expvar.NewInt("analytics_events_retry_total")
	metricEventsRetryDroppedTotal = expvar.NewInt("analytics_events_retry_dropped_total")
	metricEventsConsumedTotal     = expvar.NewInt("analytics_events_consumed_total")
	metricQueueLen                = expvar.NewInt("analytics_queue_len")
)
