package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/vitor-paiva/comanda-live/models"
)

// OrderLedger owns the collection of all orders and drives the table
// registry as orders are created and delivered. Orders are kept in
// creation order. All methods are safe for concurrent use.
//
// Ids come from a counter seeded with the wall clock at construction, so
// they look like millisecond timestamps but cannot collide under
// concurrent creates.
type OrderLedger struct {
	mu       sync.RWMutex
	orders   []models.Order
	registry *TableRegistry
	nextID   int64
	strict   bool
}

// NewOrderLedger creates an empty ledger bound to the given registry.
// With strict enabled, status updates are validated against the
// pending -> preparing -> ready -> delivered lifecycle; otherwise any
// non-empty status string is stored verbatim.
func NewOrderLedger(registry *TableRegistry, strict bool) *OrderLedger {
	return &OrderLedger{
		registry: registry,
		nextID:   time.Now().UnixMilli(),
		strict:   strict,
	}
}

// Create appends a new pending order and occupies its table. The order is
// created even when the table id is unknown; the occupy step is then
// skipped.
func (l *OrderLedger) Create(tableID int, items []models.OrderItem, total float64, waiter string) (models.Order, error) {
	if tableID <= 0 {
		return models.Order{}, fmt.Errorf("%w: tableId must be positive, got %d", ErrInvalidInput, tableID)
	}
	if waiter == "" {
		waiter = models.DefaultWaiter
	}

	l.mu.Lock()
	order := models.Order{
		ID:        l.nextID,
		TableID:   tableID,
		Items:     append([]models.OrderItem(nil), items...),
		Total:     total,
		Status:    models.OrderPending,
		Timestamp: time.Now(),
		Waiter:    waiter,
	}
	l.nextID++
	l.orders = append(l.orders, order)
	l.mu.Unlock()

	// Unknown tables are a silent skip, not a failure: the order exists
	// either way.
	_ = l.registry.Occupy(tableID, order.ID)

	return copyOrder(order), nil
}

// Get returns a copy of the order with the given id
func (l *OrderLedger) Get(orderID int64) (models.Order, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for i := range l.orders {
		if l.orders[i].ID == orderID {
			return copyOrder(l.orders[i]), nil
		}
	}
	return models.Order{}, ErrOrderNotFound
}

// UpdateStatus overwrites the order's status and releases its table when
// the new status is delivered. In strict mode unknown statuses and
// non-forward moves are rejected with ErrInvalidTransition.
func (l *OrderLedger) UpdateStatus(orderID int64, status string) (models.Order, error) {
	if status == "" {
		return models.Order{}, fmt.Errorf("%w: status must not be empty", ErrInvalidInput)
	}
	next := models.OrderStatus(status)

	l.mu.Lock()
	idx := -1
	for i := range l.orders {
		if l.orders[i].ID == orderID {
			idx = i
			break
		}
	}
	if idx < 0 {
		l.mu.Unlock()
		return models.Order{}, ErrOrderNotFound
	}
	if l.strict {
		if !next.Known() {
			l.mu.Unlock()
			return models.Order{}, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, status)
		}
		if !l.orders[idx].Status.CanAdvanceTo(next) {
			l.mu.Unlock()
			return models.Order{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, l.orders[idx].Status, next)
		}
	}
	l.orders[idx].Status = next
	order := copyOrder(l.orders[idx])
	l.mu.Unlock()

	if next == models.OrderDelivered {
		// The table may already be free (or overwritten by a later
		// order); releasing nothing is fine.
		_ = l.registry.ReleaseByOrder(orderID)
	}

	return order, nil
}

// RemoveByTable deletes every order for the table, delivered ones
// included, and returns how many were removed. Idempotent.
func (l *OrderLedger) RemoveByTable(tableID int) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	kept := l.orders[:0]
	removed := 0
	for _, o := range l.orders {
		if o.TableID == tableID {
			removed++
			continue
		}
		kept = append(kept, o)
	}
	l.orders = kept
	return removed
}

// Snapshot returns a copy of every order in creation order, for broadcast
func (l *OrderLedger) Snapshot() []models.Order {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]models.Order, len(l.orders))
	for i := range l.orders {
		out[i] = copyOrder(l.orders[i])
	}
	return out
}

// Summary recomputes the derived revenue view from the full ledger
func (l *OrderLedger) Summary() models.OrderSummary {
	l.mu.RLock()
	defer l.mu.RUnlock()

	summary := models.OrderSummary{TotalOrders: len(l.orders)}
	for i := range l.orders {
		if l.orders[i].Status == models.OrderDelivered {
			summary.DeliveredOrders++
			summary.Revenue += l.orders[i].Total
		}
	}
	return summary
}

// copyOrder copies an order, giving the copy its own items slice
func copyOrder(o models.Order) models.Order {
	o.Items = append([]models.OrderItem(nil), o.Items...)
	return o
}
