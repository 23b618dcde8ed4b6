package models

import "encoding/json"

// Named events exchanged over the websocket gateway.
// Client -> server mutations:
const (
	EventNewOrder          = "new-order"
	EventUpdateOrderStatus = "update-order-status"
	EventPrintOrder        = "print-order"
	EventResetTable        = "reset-table"
)

// Server -> client broadcasts:
const (
	EventTablesUpdate         = "tables-update"
	EventOrdersUpdate         = "orders-update"
	EventNewOrderNotification = "new-order-notification"
	EventOrderStatusChanged   = "order-status-changed"
	EventPrintNotification    = "print-notification"
	EventError                = "error" // sent only to the originating client
)

// Envelope is the wire format for every gateway message, both directions
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// NewOrderRequest is the payload of a new-order event
type NewOrderRequest struct {
	TableID int         `json:"tableId"`
	Items   []OrderItem `json:"items"`
	Total   float64     `json:"total"`
	Waiter  string      `json:"waiter"`
}

// UpdateOrderStatusRequest is the payload of an update-order-status event
type UpdateOrderStatusRequest struct {
	OrderID int64  `json:"orderId"`
	Status  string `json:"status"`
}

// OrderStatusChanged is the payload of an order-status-changed broadcast
type OrderStatusChanged struct {
	OrderID int64  `json:"orderId"`
	Status  string `json:"status"`
}

// ErrorPayload is the payload of an error event
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
