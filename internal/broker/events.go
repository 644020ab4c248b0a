package broker

import (
	"context"
	"fmt"

	"crm-service/internal/models"
)

// EventPublisher handles publishing CRM domain events
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishCustomerCreated publishes a CustomerCreated event
func (ep *EventPublisher) PublishCustomerCreated(ctx context.Context, event *models.CustomerCreatedEvent) error {
	key := fmt.Sprintf("customer-%d", event.CustomerID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishOrderCreated publishes an OrderCreated event
func (ep *EventPublisher) PublishOrderCreated(ctx context.Context, event *models.OrderCreatedEvent) error {
	key := fmt.Sprintf("order-%d", event.OrderID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishLowStockReplenished publishes a LowStockReplenished event
func (ep *EventPublisher) PublishLowStockReplenished(ctx context.Context, event *models.LowStockReplenishedEvent) error {
	return ep.producer.PublishEvent(ctx, "low-stock-sweep", event)
}
