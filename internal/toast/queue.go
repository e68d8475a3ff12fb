// Package toast keeps the queue of transient notifications shown by the
// dashboard shell.
package toast

import (
	"sync"
	"time"
)

type Severity string

const (
	Success Severity = "success"
	Error   Severity = "error"
	Info    Severity = "info"
)

const DefaultTTL = 3 * time.Second

// Toast is identified by its creation time in Unix nanoseconds.
type Toast struct {
	ID        int64     `json:"id"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	CreatedAt time.Time `json:"created_at"`
}

// Queue is an unbounded, ordered list of toasts. Every entry is removed after
// the TTL regardless of what happens in between.
type Queue struct {
	mu     sync.Mutex
	ttl    time.Duration
	now    func() time.Time
	items  []Toast
	timers map[int64]*time.Timer
	lastID int64
	closed bool

	onNotify func(Toast)
}

type Option func(*Queue)

func WithClock(now func() time.Time) Option {
	return func(q *Queue) { q.now = now }
}

// WithObserver registers a callback invoked for every queued toast.
func WithObserver(fn func(Toast)) Option {
	return func(q *Queue) { q.onNotify = fn }
}

func NewQueue(ttl time.Duration, opts ...Option) *Queue {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	q := &Queue{
		ttl:    ttl,
		now:    time.Now,
		timers: make(map[int64]*time.Timer),
	}
	for _, o := range opts {
		o(q)
	}
	return q
}

// Notify appends a toast and schedules its removal. It never fails. After
// Close the toast is returned but not queued.
func (q *Queue) Notify(message string, sev Severity) Toast {
	if sev == "" {
		sev = Success
	}

	q.mu.Lock()
	created := q.now()
	id := created.UnixNano()
	if id <= q.lastID {
		id = q.lastID + 1
	}
	q.lastID = id

	t := Toast{ID: id, Message: message, Severity: sev, CreatedAt: created}
	if q.closed {
		q.mu.Unlock()
		return t
	}

	q.items = append(q.items, t)
	q.timers[id] = time.AfterFunc(q.ttl, func() { q.expire(id) })
	observer := q.onNotify
	q.mu.Unlock()

	if observer != nil {
		observer(t)
	}
	return t
}

func (q *Queue) List() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]Toast, len(q.items))
	copy(out, q.items)
	return out
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

func (q *Queue) TTL() time.Duration { return q.ttl }

// Close stops pending expiries and empties the queue.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	for id, t := range q.timers {
		t.Stop()
		delete(q.timers, id)
	}
	q.items = nil
	q.closed = true
}

func (q *Queue) expire(id int64) {
	q.mu.Lock()
	defer q.mu.Unlock()

	delete(q.timers, id)
	for i, t := range q.items {
		if t.ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return
		}
	}
}
