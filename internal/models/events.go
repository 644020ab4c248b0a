package models

import "time"

// Event types
const (
	EventTypeCustomerCreated     = "CUSTOMER_CREATED"
	EventTypeOrderCreated        = "ORDER_CREATED"
	EventTypeLowStockReplenished = "LOW_STOCK_REPLENISHED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// CustomerCreatedEvent published when a customer is created
type CustomerCreatedEvent struct {
	BaseEvent
	CustomerID int64  `json:"customer_id"`
	Email      string `json:"email"`
}

// OrderCreatedEvent published when an order is created
type OrderCreatedEvent struct {
	BaseEvent
	OrderID     int64   `json:"order_id"`
	CustomerID  int64   `json:"customer_id"`
	TotalAmount int64   `json:"total_amount"`
	ProductIDs  []int64 `json:"product_ids"`
}

// RestockedProduct is the per-product payload of a replenishment sweep
type RestockedProduct struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Stock     int    `json:"stock"`
}

// LowStockReplenishedEvent published after a low-stock sweep updates products
type LowStockReplenishedEvent struct {
	BaseEvent
	Count    int                `json:"count"`
	Products []RestockedProduct `json:"products"`
}
