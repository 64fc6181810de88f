package analytics

import (
	"encoding/json"
	"errors"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

// Subscribe joins the configured queue group and hands each decoded
// event to handle.
func (p *Publisher) Subscribe(handle func(Event)) error {
	if p.nc == nil {
		return errors.New("analytics: not connected")
	}
	sub, err := p.nc.QueueSubscribe(p.cfg.Subject, p.cfg.QueueGroup, func(m *nats.Msg) {
		ev, err := Decode(m.Data)
		if err != nil {
			log.Warn().Err(err).Str("subject", m.Subject).Msg("analytics_decode_failed")
			return
		}
		metricEventsConsumedTotal.Add(1)
		handle(ev)
	})
	if err != nil {
		return err
	}
	p.sub = sub
	return nil
}

func Decode(data []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return Event{}, err
	}
	if ev.Type == "" {
		return Event{}, errors.New("analytics: event without type")
	}
	return ev, nil
}

func logEvent(ev Event) {
	if ev.Type != EventGameEnd {
		return
	}
	log.Info().
		Str("game_id", ev.GameID).
		Str("player1", ev.Player1).
		Str("player2", ev.Player2).
		Str("winner", ev.Winner).
		Str("reason", ev.Reason).
		Int64("duration_ms", ev.DurationMS).
		Msg("analytics_game_end")
}
