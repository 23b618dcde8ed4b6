package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/vitor-paiva/comanda-live/models"
	"github.com/vitor-paiva/comanda-live/services"
)

// Gateway bridges websocket clients to the table registry and order
// ledger. Each connection reads in its own goroutine, so a single mutex
// serializes all inbound event handling and the connect handshake: every
// mutation runs to completion against both collections before the next
// one starts, and a connecting client's initial snapshots are queued
// ahead of any later mutation's broadcast.
type Gateway struct {
	mu       sync.Mutex
	hub      *services.Hub
	ledger   *services.OrderLedger
	registry *services.TableRegistry
	upgrader websocket.Upgrader
}

// NewGateway creates a gateway over the given state components
func NewGateway(hub *services.Hub, ledger *services.OrderLedger, registry *services.TableRegistry) *Gateway {
	return &Gateway{
		hub:      hub,
		ledger:   ledger,
		registry: registry,
		upgrader: websocket.Upgrader{
			// Same policy as the HTTP layer: any origin may connect
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handle upgrades GET /ws to a websocket session and serves it until the
// client disconnects
func (g *Gateway) Handle(c *gin.Context) {
	conn, err := g.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Websocket upgrade failed: %v", err)
		return
	}

	// Registration and the initial snapshots happen under the dispatch
	// mutex so a client connecting mid-mutation has its targeted
	// snapshots queued before that mutation's broadcast.
	g.mu.Lock()
	client := g.hub.Register(conn)
	go client.WritePump()
	client.Send(models.EventTablesUpdate, g.registry.Snapshot())
	client.Send(models.EventOrdersUpdate, g.ledger.Snapshot())
	g.mu.Unlock()
	log.Printf("Client connected: %s", client.ID)

	defer func() {
		g.hub.Unregister(client)
		conn.Close()
		log.Printf("Client disconnected: %s", client.ID)
	}()

	for {
		var env models.Envelope
		if err := conn.ReadJSON(&env); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("Client %s read error: %v", client.ID, err)
			}
			return
		}
		g.dispatch(client, env)
	}
}

// dispatch routes one inbound event to its handler. The gateway mutex
// makes each handler atomic with respect to both collections.
func (g *Gateway) dispatch(client *services.Client, env models.Envelope) {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch env.Event {
	case models.EventNewOrder:
		g.handleNewOrder(client, env.Data)
	case models.EventUpdateOrderStatus:
		g.handleUpdateOrderStatus(client, env.Data)
	case models.EventPrintOrder:
		g.handlePrintOrder(client, env.Data)
	case models.EventResetTable:
		g.handleResetTable(client, env.Data)
	default:
		g.sendError(client, "UNKNOWN_EVENT", "Unknown event: "+env.Event)
	}
}

func (g *Gateway) handleNewOrder(client *services.Client, data json.RawMessage) {
	var req models.NewOrderRequest
	if err := json.Unmarshal(data, &req); err != nil {
		g.sendError(client, "INVALID_PAYLOAD", "Invalid new-order payload")
		return
	}

	order, err := g.ledger.Create(req.TableID, req.Items, req.Total, req.Waiter)
	if err != nil {
		g.sendServiceError(client, err)
		return
	}

	log.Printf("New order created: %d (table %d)", order.ID, order.TableID)
	g.broadcastState()
	g.hub.Broadcast(models.EventNewOrderNotification, order)
}

func (g *Gateway) handleUpdateOrderStatus(client *services.Client, data json.RawMessage) {
	var req models.UpdateOrderStatusRequest
	if err := json.Unmarshal(data, &req); err != nil {
		g.sendError(client, "INVALID_PAYLOAD", "Invalid update-order-status payload")
		return
	}

	order, err := g.ledger.UpdateStatus(req.OrderID, req.Status)
	if err != nil {
		g.sendServiceError(client, err)
		return
	}

	g.broadcastState()
	g.hub.Broadcast(models.EventOrderStatusChanged, models.OrderStatusChanged{
		OrderID: order.ID,
		Status:  string(order.Status),
	})
}

func (g *Gateway) handlePrintOrder(client *services.Client, data json.RawMessage) {
	// The payload is the bare order id, not an object
	var orderID int64
	if err := json.Unmarshal(data, &orderID); err != nil {
		g.sendError(client, "INVALID_PAYLOAD", "Invalid print-order payload")
		return
	}

	order, err := g.ledger.Get(orderID)
	if err != nil {
		g.sendServiceError(client, err)
		return
	}

	log.Printf("Printing order: %d", order.ID)
	g.hub.Broadcast(models.EventPrintNotification, order)
}

func (g *Gateway) handleResetTable(client *services.Client, data json.RawMessage) {
	// The payload is the bare table id, not an object
	var tableID int
	if err := json.Unmarshal(data, &tableID); err != nil {
		g.sendError(client, "INVALID_PAYLOAD", "Invalid reset-table payload")
		return
	}

	// An unknown table resets nothing; no orders are removed either
	if err := g.registry.Release(tableID); err != nil {
		g.sendServiceError(client, err)
		return
	}
	removed := g.ledger.RemoveByTable(tableID)

	log.Printf("Table %d reset, %d orders removed", tableID, removed)
	g.broadcastState()
}

// broadcastState sends full snapshots of both collections to everyone
func (g *Gateway) broadcastState() {
	g.hub.Broadcast(models.EventOrdersUpdate, g.ledger.Snapshot())
	g.hub.Broadcast(models.EventTablesUpdate, g.registry.Snapshot())
}

// sendServiceError maps a service error onto the error event for the
// originating client. Other clients never see failed mutations.
func (g *Gateway) sendServiceError(client *services.Client, err error) {
	switch {
	case errors.Is(err, services.ErrTableNotFound):
		g.sendError(client, "TABLE_NOT_FOUND", "Table not found")
	case errors.Is(err, services.ErrOrderNotFound):
		g.sendError(client, "ORDER_NOT_FOUND", "Order not found")
	case errors.Is(err, services.ErrInvalidTransition):
		g.sendError(client, "INVALID_TRANSITION", err.Error())
	case errors.Is(err, services.ErrInvalidInput):
		g.sendError(client, "INVALID_INPUT", err.Error())
	default:
		g.sendError(client, "INTERNAL_ERROR", "Unexpected error")
	}
}

func (g *Gateway) sendError(client *services.Client, code, message string) {
	client.Send(models.EventError, models.ErrorPayload{Code: code, Message: message})
}
