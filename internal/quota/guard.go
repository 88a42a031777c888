// Package quota enforces the per-owner, per-day slide generation budget.
package quota

import (
	"fmt"
	"sync"

	"github.com/TolgaCulfa/sunum2/internal/logger"
)

// DefaultDailyLimit is the slide budget per owner per calendar day.
const DefaultDailyLimit = 20

// UsageStore is the durable usage counter collaborator.
type UsageStore interface {
	Usage(owner, date string) (int, error)
	IncrementUsage(owner, date string, amount int) error
}

// ExceededError reports a reservation that would overshoot the daily budget.
type ExceededError struct {
	Owner     string
	Used      int
	Limit     int
	Remaining int
	Requested int
}

func (e *ExceededError) Error() string {
	return fmt.Sprintf("günlük slayt limiti (%d) aşılıyor: kullanılan %d, istenen %d", e.Limit, e.Used, e.Requested)
}

// Guard serializes check-then-commit per (owner, date) so concurrent
// reservations cannot jointly exceed the budget. A reservation holds capacity
// in memory until it is committed or released.
type Guard struct {
	store UsageStore
	limit int

	mu      sync.Mutex
	pending map[string]int // (owner|date) -> reserved, uncommitted amount
}

// NewGuard creates a guard over the given usage store. limit <= 0 selects
// DefaultDailyLimit.
func NewGuard(store UsageStore, limit int) *Guard {
	if limit <= 0 {
		limit = DefaultDailyLimit
	}
	return &Guard{
		store:   store,
		limit:   limit,
		pending: make(map[string]int),
	}
}

// Limit returns the configured daily budget.
func (g *Guard) Limit() int { return g.limit }

// Reservation is the commit handle returned by a successful check.
type Reservation struct {
	guard  *Guard
	owner  string
	date   string
	amount int

	mu   sync.Mutex
	done bool
}

// Reserve checks the budget for (owner, date) and holds capacity for amount
// slides. It returns *ExceededError when durable usage plus in-flight
// reservations plus amount would exceed the limit.
func (g *Guard) Reserve(owner, date string, amount int) (*Reservation, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("reservation amount must be positive, got %d", amount)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	used, err := g.store.Usage(owner, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load usage: %w", err)
	}

	key := owner + "|" + date
	inFlight := g.pending[key]
	if used+inFlight+amount > g.limit {
		return nil, &ExceededError{
			Owner:     owner,
			Used:      used + inFlight,
			Limit:     g.limit,
			Remaining: g.limit - used - inFlight,
			Requested: amount,
		}
	}

	g.pending[key] += amount
	return &Reservation{guard: g, owner: owner, date: date, amount: amount}, nil
}

// Commit durably charges the reserved amount. It must be called only after the
// paired operation fully succeeded. Commit and Release are idempotent and
// mutually exclusive; the first call wins.
func (r *Reservation) Commit() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done {
		return nil
	}
	r.done = true

	g := r.guard
	g.mu.Lock()
	defer g.mu.Unlock()

	key := r.owner + "|" + r.date
	g.releasePendingLocked(key, r.amount)

	if err := g.store.IncrementUsage(r.owner, r.date, r.amount); err != nil {
		return fmt.Errorf("failed to commit usage: %w", err)
	}
	logger.Debug("[Quota] committed %d slides for %s on %s", r.amount, r.owner, r.date)
	return nil
}

// Release returns the reserved capacity without charging. Safe to call after
// Commit; it becomes a no-op.
func (r *Reservation) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done {
		return
	}
	r.done = true

	g := r.guard
	g.mu.Lock()
	defer g.mu.Unlock()
	g.releasePendingLocked(r.owner+"|"+r.date, r.amount)
}

func (g *Guard) releasePendingLocked(key string, amount int) {
	g.pending[key] -= amount
	if g.pending[key] <= 0 {
		delete(g.pending, key)
	}
}

// Status reports the owner's budget for the given date.
func (g *Guard) Status(owner, date string) (used, limit, remaining int, err error) {
	used, err = g.store.Usage(owner, date)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to load usage: %w", err)
	}
	remaining = g.limit - used
	if remaining < 0 {
		remaining = 0
	}
	return used, g.limit, remaining, nil
}
