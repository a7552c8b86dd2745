package activeorder

import (
	"context"
	"io"
	"log"
	"sort"
	"sync"
	"time"

	"tableserve/internal/domain"
)

// DefaultTTL is how long a placed order stays in the customer-facing
// active list.
const DefaultTTL = time.Hour

// Store persists the full active-order set under a single durable key.
// Writes are full-replace; the tracker is the only writer.
type Store interface {
	Load(ctx context.Context) ([]domain.ActiveOrder, error)
	Save(ctx context.Context, orders []domain.ActiveOrder) error
}

// NotifyFunc receives orders whose display window elapsed while the
// tracker was running. Reconciliation discards stale orders silently.
type NotifyFunc func(order domain.ActiveOrder)

type stopper interface {
	Stop() bool
}

// Tracker keeps the set of orders inside their display window and arms
// one timer per order. Reconcile restores remaining timers from the
// store after a restart, so the window survives the process without
// being reset by it.
type Tracker struct {
	store  Store
	ttl    time.Duration
	notify NotifyFunc
	logger *log.Logger

	now       func() time.Time
	afterFunc func(d time.Duration, fn func()) stopper

	mu     sync.Mutex
	orders map[string]domain.ActiveOrder
	timers map[string]stopper
	closed bool
}

// New builds a Tracker over the given store. A zero ttl means
// DefaultTTL; notify and logger may be nil.
func New(store Store, ttl time.Duration, notify NotifyFunc, logger *log.Logger) *Tracker {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Tracker{
		store:  store,
		ttl:    ttl,
		notify: notify,
		logger: logger,
		now:    time.Now,
		afterFunc: func(d time.Duration, fn func()) stopper {
			return time.AfterFunc(d, fn)
		},
		orders: make(map[string]domain.ActiveOrder),
		timers: make(map[string]stopper),
	}
}

// Track registers a freshly placed order: it joins the in-memory set,
// the full set is persisted, and a timer is armed for the whole window.
// Tracking an id that is already present cancels its previous timer
// first, so a double submit still expires exactly once.
func (t *Tracker) Track(ctx context.Context, order domain.ActiveOrder) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	t.stopTimerLocked(order.ID)
	t.orders[order.ID] = order
	t.persistLocked(ctx)
	t.armLocked(order.ID, t.ttl)
}

// Reconcile rebuilds the active set from the store. Orders past the
// window are dropped without notification; the rest are re-armed for
// their remaining time only. Unreadable or malformed persisted state
// degrades to an empty set and resets the store. Call once at startup.
func (t *Tracker) Reconcile(ctx context.Context) {
	persisted, err := t.store.Load(ctx)
	if err != nil {
		t.logger.Printf("active orders: load failed, starting empty: %v", err)
		persisted = nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}

	now := t.now()
	kept := 0
	for _, order := range persisted {
		age := now.Sub(time.UnixMilli(order.CreatedAt))
		if age >= t.ttl {
			continue
		}
		t.orders[order.ID] = order
		t.armLocked(order.ID, t.ttl-age)
		kept++
	}
	t.persistLocked(ctx)
	t.logger.Printf("active orders: reconciled persisted=%d kept=%d", len(persisted), kept)
}

// Remove drops an order before its window elapses, for example when
// staff complete or cancel it. No expiry notification is emitted.
// Removing an untracked id is a no-op.
func (t *Tracker) Remove(ctx context.Context, orderID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.orders[orderID]; !ok {
		return
	}
	t.stopTimerLocked(orderID)
	delete(t.orders, orderID)
	t.persistLocked(ctx)
}

// Active returns the tracked orders, newest first.
func (t *Tracker) Active() []domain.ActiveOrder {
	t.mu.Lock()
	defer t.mu.Unlock()
	result := make([]domain.ActiveOrder, 0, len(t.orders))
	for _, order := range t.orders {
		result = append(result, order)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt == result[j].CreatedAt {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt > result[j].CreatedAt
	})
	return result
}

// Close cancels every outstanding timer. The tracked set and the store
// are left as they are; a later Reconcile picks them back up.
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	for id, timer := range t.timers {
		timer.Stop()
		delete(t.timers, id)
	}
}

// expire is the timer callback for a single order.
func (t *Tracker) expire(orderID string) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	order, ok := t.orders[orderID]
	if !ok {
		t.mu.Unlock()
		return
	}
	delete(t.orders, orderID)
	delete(t.timers, orderID)
	t.persistLocked(context.Background())
	notify := t.notify
	t.mu.Unlock()

	t.logger.Printf("active orders: order %s expired", orderID)
	if notify != nil {
		notify(order)
	}
}

func (t *Tracker) armLocked(orderID string, d time.Duration) {
	t.timers[orderID] = t.afterFunc(d, func() { t.expire(orderID) })
}

func (t *Tracker) stopTimerLocked(orderID string) {
	if timer, ok := t.timers[orderID]; ok {
		timer.Stop()
		delete(t.timers, orderID)
	}
}

// persistLocked writes the whole current set. Failures are logged and
// swallowed: this is best-effort display state, the backend order
// record stays authoritative.
func (t *Tracker) persistLocked(ctx context.Context) {
	orders := make([]domain.ActiveOrder, 0, len(t.orders))
	for _, order := range t.orders {
		orders = append(orders, order)
	}
	if err := t.store.Save(ctx, orders); err != nil {
		t.logger.Printf("active orders: persist failed: %v", err)
	}
}
