package services

import (
	"sync"

	"github.com/vitor-paiva/comanda-live/models"
)

// TableRegistry tracks occupancy for a fixed set of tables. Tables are
// created once at construction and never added or removed afterwards.
// All methods are safe for concurrent use.
type TableRegistry struct {
	mu     sync.RWMutex
	tables []models.Table
}

// NewTableRegistry creates count tables with ids 1..count, all available
func NewTableRegistry(count int) *TableRegistry {
	tables := make([]models.Table, count)
	for i := range tables {
		tables[i] = models.Table{
			ID:     i + 1,
			Status: models.TableAvailable,
		}
	}
	return &TableRegistry{tables: tables}
}

// Find returns a copy of the table with the given id
func (r *TableRegistry) Find(tableID int) (models.Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.tables {
		if r.tables[i].ID == tableID {
			return copyTable(r.tables[i]), nil
		}
	}
	return models.Table{}, ErrTableNotFound
}

// Occupy marks the table occupied by the given order. Occupying an
// already-occupied table overwrites CurrentOrder; the previous order stays
// in the ledger but is no longer reachable through the table.
func (r *TableRegistry) Occupy(tableID int, orderID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.tables {
		if r.tables[i].ID == tableID {
			r.tables[i].Status = models.TableOccupied
			r.tables[i].CurrentOrder = &orderID
			return nil
		}
	}
	return ErrTableNotFound
}

// Release marks the table available and clears its current order
func (r *TableRegistry) Release(tableID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.tables {
		if r.tables[i].ID == tableID {
			r.tables[i].Status = models.TableAvailable
			r.tables[i].CurrentOrder = nil
			return nil
		}
	}
	return ErrTableNotFound
}

// ReleaseByOrder releases the table whose current order is orderID.
// Used when an order is delivered.
func (r *TableRegistry) ReleaseByOrder(orderID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.tables {
		if r.tables[i].CurrentOrder != nil && *r.tables[i].CurrentOrder == orderID {
			r.tables[i].Status = models.TableAvailable
			r.tables[i].CurrentOrder = nil
			return nil
		}
	}
	return ErrTableNotFound
}

// Snapshot returns a copy of every table in id order, for broadcast
func (r *TableRegistry) Snapshot() []models.Table {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Table, len(r.tables))
	for i := range r.tables {
		out[i] = copyTable(r.tables[i])
	}
	return out
}

// copyTable copies a table, giving the copy its own CurrentOrder pointer
func copyTable(t models.Table) models.Table {
	if t.CurrentOrder != nil {
		orderID := *t.CurrentOrder
		t.CurrentOrder = &orderID
	}
	return t
}
