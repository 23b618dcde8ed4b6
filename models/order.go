package models

import "time"

// OrderStatus is the preparation state of an order
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderDelivered OrderStatus = "delivered"
)

// DefaultWaiter is used when an order is submitted without a waiter name
const DefaultWaiter = "Waiter"

// statusRank orders the lifecycle pending -> preparing -> ready -> delivered
var statusRank = map[OrderStatus]int{
	OrderPending:   0,
	OrderPreparing: 1,
	OrderReady:     2,
	OrderDelivered: 3,
}

// Known reports whether s is one of the four recognized statuses
func (s OrderStatus) Known() bool {
	_, ok := statusRank[s]
	return ok
}

// CanAdvanceTo reports whether moving from s to next is a strictly
// forward step in the lifecycle. Regressions and repeats are not.
func (s OrderStatus) CanAdvanceTo(next OrderStatus) bool {
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	if !ok {
		return false
	}
	return to > from
}

// OrderItem is a single line item on an order. Total is computed by the
// submitting client (quantity * price) and stored as-is.
type OrderItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Total    float64 `json:"total"`
}

// Order represents a set of line items tied to a table, progressing
// through the status lifecycle from submission to delivery
type Order struct {
	ID        int64       `json:"id"`
	TableID   int         `json:"tableId"`
	Items     []OrderItem `json:"items"`
	Total     float64     `json:"total"` // client-computed sum of item totals
	Status    OrderStatus `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	Waiter    string      `json:"waiter"`
}

// OrderSummary is the derived revenue view over the full ledger
type OrderSummary struct {
	TotalOrders     int     `json:"totalOrders"`
	DeliveredOrders int     `json:"deliveredOrders"`
	Revenue         float64 `json:"revenue"`
}
