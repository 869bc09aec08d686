// Package watch turns record store writes into change notifications and
// re-evaluating query streams.
package watch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Table string

const (
	Categories   Table = "categories"
	Transactions Table = "transactions"
	Budgets      Table = "budgets"
)

type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Change describes one committed write.
type Change struct {
	Table Table       `json:"table"`
	Op    Op          `json:"op"`
	IDs   []uuid.UUID `json:"ids"`
	At    time.Time   `json:"at"`
}

func NewChange(table Table, op Op, ids ...uuid.UUID) Change {
	return Change{Table: table, Op: op, IDs: ids, At: time.Now()}
}

// Notifier is implemented by anything that must hear about committed writes.
type Notifier interface {
	Notify(ctx context.Context, c Change)
}

// Sink forwards changes outside the process.
type Sink interface {
	Publish(ctx context.Context, c Change) error
}

// Hub fans changes out to subscriptions and sinks.
type Hub struct {
	mu    sync.Mutex
	subs  map[*Subscription]struct{}
	sinks []Sink
}

func NewHub() *Hub {
	return &Hub{subs: make(map[*Subscription]struct{})}
}

func (h *Hub) AddSink(s Sink) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.sinks = append(h.sinks, s)
}

// Subscribe registers interest in the given tables, or all tables when none
// are given. The subscription must be closed.
func (h *Hub) Subscribe(tables ...Table) *Subscription {
	s := &Subscription{
		hub:    h,
		tables: make(map[Table]struct{}, len(tables)),
		c:      make(chan struct{}, 1),
	}

	for _, t := range tables {
		s.tables[t] = struct{}{}
	}

	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()

	return s
}

// Notify wakes every interested subscription without blocking and then hands
// the change to the sinks. Sink failures are logged, never returned.
func (h *Hub) Notify(ctx context.Context, c Change) {
	h.mu.Lock()

	for s := range h.subs {
		if s.wants(c.Table) {
			s.signal()
		}
	}

	sinks := append([]Sink(nil), h.sinks...)
	h.mu.Unlock()

	for _, sink := range sinks {
		if err := sink.Publish(ctx, c); err != nil {
			slog.ErrorContext(ctx, "failed to publish change", "error", err, "table", c.Table, "op", c.Op)
		}
	}
}

func (h *Hub) remove(s *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.subs, s)
}

// Subscription coalesces bursts of changes into a single pending signal.
type Subscription struct {
	hub    *Hub
	tables map[Table]struct{}
	c      chan struct{}
	once   sync.Once
}

// C receives a value whenever at least one change happened since the last receive.
func (s *Subscription) C() <-chan struct{} {
	return s.c
}

func (s *Subscription) Close() {
	s.once.Do(func() { s.hub.remove(s) })
}

func (s *Subscription) wants(t Table) bool {
	if len(s.tables) == 0 {
		return true
	}

	_, ok := s.tables[t]

	return ok
}

func (s *Subscription) signal() {
	select {
	case s.c <- struct{}{}:
	default:
	}
}
