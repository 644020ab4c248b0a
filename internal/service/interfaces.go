package service

import (
	"context"

	"crm-service/internal/models"
	"crm-service/internal/store"
)

// Store interfaces consumed by the services. *store.Store satisfies all of
// them; tests substitute in-memory fakes.

type CustomerStore interface {
	CreateCustomer(ctx context.Context, customer *models.Customer) error
	GetCustomerByID(ctx context.Context, id int64) (*models.Customer, error)
	GetCustomerByEmail(ctx context.Context, email string) (*models.Customer, error)
	ListCustomers(ctx context.Context, filter store.CustomerFilter) ([]models.Customer, error)
}

type ProductStore interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductsByIDs(ctx context.Context, ids []int64) ([]models.Product, error)
	ListProducts(ctx context.Context, filter store.ProductFilter) ([]models.Product, error)
	ReplenishLowStock(ctx context.Context, threshold, increment int) ([]models.Product, error)
}

type OrderStore interface {
	CreateOrder(ctx context.Context, order *models.Order, productIDs []int64) error
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
	GetOrderProducts(ctx context.Context, orderID int64) ([]models.Product, error)
	ListOrders(ctx context.Context, filter store.OrderFilter) ([]models.Order, error)
}

// EventPublisher emits domain events after successful mutations. A nil
// publisher disables publishing.
type EventPublisher interface {
	PublishCustomerCreated(ctx context.Context, event *models.CustomerCreatedEvent) error
	PublishOrderCreated(ctx context.Context, event *models.OrderCreatedEvent) error
	PublishLowStockReplenished(ctx context.Context, event *models.LowStockReplenishedEvent) error
}

// ProductCache caches the full product list. A nil cache disables caching.
type ProductCache interface {
	GetCachedProducts(ctx context.Context) ([]models.Product, error)
	CacheProducts(ctx context.Context, products []models.Product) error
	InvalidateProducts(ctx context.Context) error
}
