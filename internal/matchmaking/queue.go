// Package matchmaking pairs waiting players in arrival order and hands a
// lone player to a computer opponent once the fallback delay passes.
package matchmaking

import (
	"time"
)

const DefaultFallback = 10 * time.Second

type Entrant struct {
	ConnID   string
	Username string
}

type ticket struct {
	id       uint64
	entrant  Entrant
	enqueued time.Time
	timer    *time.Timer
}

type Result int

const (
	// Ignored means the connection was already waiting.
	Ignored Result = iota
	Queued
	Paired
)

// Pairing is an opponent found in the queue. First waited longest and
// moves first.
type Pairing struct {
	First  Entrant
	Second Entrant
	Waited time.Duration
}

// Queue is not safe for concurrent use. Callers serialize access and the
// expiry callback must re-enter through that same serialization before
// calling Expire.
type Queue struct {
	fallback time.Duration
	onExpire func(ticketID uint64)
	tickets  []*ticket
	nextID   uint64
}

// NewQueue arms a fallback timer per waiting entrant. When it fires,
// onExpire receives the ticket id; a ticket removed or paired in the
// meantime is reported as stale by Expire.
func NewQueue(fallback time.Duration, onExpire func(ticketID uint64)) *Queue {
	if fallback <= 0 {
		fallback = DefaultFallback
	}
	return &Queue{fallback: fallback, onExpire: onExpire}
}

// Enqueue pairs e with the longest-waiting entrant, or queues it when
// nobody is waiting.
func (q *Queue) Enqueue(e Entrant) (Pairing, Result) {
	if q.indexOf(e.ConnID) >= 0 {
		return Pairing{}, Ignored
	}
	if len(q.tickets) > 0 {
		head := q.tickets[0]
		q.tickets = q.tickets[1:]
		head.timer.Stop()
		return Pairing{First: head.entrant, Second: e, Waited: time.Since(head.enqueued)}, Paired
	}
	q.nextID++
	t := &ticket{id: q.nextID, entrant: e, enqueued: time.Now()}
	id := t.id
	t.timer = time.AfterFunc(q.fallback, func() {
		if q.onExpire != nil {
			q.onExpire(id)
		}
	})
	q.tickets = append(q.tickets, t)
	return Pairing{}, Queued
}

// Remove drops connID from the queue. Removing an absent entry is a no-op.
func (q *Queue) Remove(connID string) bool {
	i := q.indexOf(connID)
	if i < 0 {
		return false
	}
	q.tickets[i].timer.Stop()
	q.tickets = append(q.tickets[:i], q.tickets[i+1:]...)
	return true
}

// Expire removes and returns the entrant behind ticketID if it is still
// waiting.
func (q *Queue) Expire(ticketID uint64) (Entrant, bool) {
	for i, t := range q.tickets {
		if t.id == ticketID {
			q.tickets = append(q.tickets[:i], q.tickets[i+1:]...)
			return t.entrant, true
		}
	}
	return Entrant{}, false
}

func (q *Queue) Contains(connID string) bool {
	return q.indexOf(connID) >= 0
}

func (q *Queue) Len() int {
	return len(q.tickets)
}

// Waiting lists entrants in arrival order.
func (q *Queue) Waiting() []Entrant {
	out := make([]Entrant, 0, len(q.tickets))
	for _, t := range q.tickets {
		out = append(out, t.entrant)
	}
	return out
}

// Close stops every fallback timer and empties the queue.
func (q *Queue) Close() {
	for _, t := range q.tickets {
		t.timer.Stop()
	}
	q.tickets = nil
}

func (q *Queue) indexOf(connID string) int {
	for i, t := range q.tickets {
		if t.entrant.ConnID == connID {
			return i
		}
	}
	return -1
}
