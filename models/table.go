package models

// TableStatus is the occupancy state of a table
type TableStatus string

const (
	TableAvailable TableStatus = "available"
	TableOccupied  TableStatus = "occupied"
	TableReserved  TableStatus = "reserved" // never produced by any transition, kept for clients
)

// Table represents a physical seating unit in the restaurant.
// CurrentOrder is non-nil exactly when the table is occupied.
type Table struct {
	ID           int         `json:"id"`
	Status       TableStatus `json:"status"`
	CurrentOrder *int64      `json:"currentOrder"`
}
