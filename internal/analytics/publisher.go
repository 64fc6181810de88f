package analytics

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"four-in-a-row/internal/config"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

// Publisher ships game events to NATS from a small worker pool. Publish
// never blocks: when the buffer is full or publishing is disabled the
// event is dropped and counted.
type Publisher struct {
	cfg    config.AnalyticsConfig
	sender Sender
	nc     *nats.Conn
	sub    *nats.Subscription

	dispatchCh chan job
	retryQ     *retryQueue
	done       chan struct{}
	wg         sync.WaitGroup

	mu      sync.Mutex
	started bool
	closed  bool
}

// New builds a publisher around sender. A nil sender disables publishing.
func New(cfg config.AnalyticsConfig, sender Sender) *Publisher {
	if cfg.Subject == "" {
		cfg.Subject = "game-events"
	}
	if cfg.Buffer <= 0 {
		cfg.Buffer = 256
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 2
	}
	if cfg.RetryBase <= 0 {
		cfg.RetryBase = 200 * time.Millisecond
	}
	p := &Publisher{
		cfg:        cfg,
		sender:     sender,
		dispatchCh: make(chan job, cfg.Buffer),
		done:       make(chan struct{}),
	}
	p.retryQ = newRetryQueue(p.dispatchCh, p.done)
	return p
}

// Connect dials cfg.NATSURL. An empty URL yields a disabled publisher.
func Connect(cfg config.AnalyticsConfig) (*Publisher, error) {
	if cfg.NATSURL == "" {
		return New(cfg, nil), nil
	}
	nc, err := nats.Connect(cfg.NATSURL,
		nats.Name("four-in-a-row"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn().Err(err).Msg("analytics_nats_disconnected")
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info().Str("url", c.ConnectedUrl()).Msg("analytics_nats_reconnected")
		}),
	)
	if err != nil {
		return nil, err
	}
	p := New(cfg, nc)
	p.nc = nc
	if cfg.Consumer {
		if err := p.Subscribe(logEvent); err != nil {
			nc.Close()
			return nil, err
		}
	}
	log.Info().Str("url", cfg.NATSURL).Str("subject", p.cfg.Subject).Bool("consumer", cfg.Consumer).Msg("analytics_connected")
	return p, nil
}

func (p *Publisher) Enabled() bool {
	return p != nil && p.sender != nil
}

func (p *Publisher) Start(ctx context.Context) {
	if !p.Enabled() {
		return
	}
	p.mu.Lock()
	if p.started || p.closed {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.mu.Unlock()

	for i := 0; i < p.cfg.Workers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}
}

// Publish queues ev and reports whether it was accepted.
func (p *Publisher) Publish(ev Event) bool {
	if !p.Enabled() {
		return false
	}
	data, err := json.Marshal(ev)
	if err != nil {
		metricEventsDroppedTotal.Add(1)
		log.Error().Err(err).Str("game_id", ev.GameID).Msg("analytics_marshal_failed")
		return false
	}
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		metricEventsDroppedTotal.Add(1)
		return false
	}
	select {
	case p.dispatchCh <- job{subject: p.cfg.Subject, data: data}:
		metricEventsQueuedTotal.Add(1)
		metricQueueLen.Set(int64(len(p.dispatchCh)))
		return true
	default:
		metricEventsDroppedTotal.Add(1)
		log.Warn().Str("game_id", ev.GameID).Msg("analytics_queue_full")
		return false
	}
}

// Close flushes buffered events, stops the workers and drains the NATS
// connection.
func (p *Publisher) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	close(p.done)
	p.wg.Wait()
	if p.nc != nil {
		if err := p.nc.Drain(); err != nil {
			log.Warn().Err(err).Msg("analytics_drain_failed")
		}
	}
}

func (p *Publisher) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.done:
			p.flush()
			return
		case j := <-p.dispatchCh:
			metricQueueLen.Set(int64(len(p.dispatchCh)))
			p.send(j)
		}
	}
}

// flush sends what is still buffered. Failed sends are not retried.
func (p *Publisher) flush() {
	for {
		select {
		case j := <-p.dispatchCh:
			p.send(j)
		default:
			return
		}
	}
}

func (p *Publisher) send(j job) {
	if err := p.sender.Publish(j.subject, j.data); err != nil {
		metricEventsFailedTotal.Add(1)
		p.retryOrDrop(j, err)
		return
	}
	metricEventsSentTotal.Add(1)
}

func (p *Publisher) retryOrDrop(j job, err error) bool {
	if j.attempt >= p.cfg.RetryMax {
		metricEventsRetryDroppedTotal.Add(1)
		log.Warn().Err(err).Int("attempts", j.attempt+1).Msg("analytics_event_dropped")
		return false
	}
	j.attempt++
	metricEventsRetryTotal.Add(1)
	delay := p.cfg.RetryBase * time.Duration(1<<(j.attempt-1))
	p.retryQ.Enqueue(j, delay)
	return true
}
