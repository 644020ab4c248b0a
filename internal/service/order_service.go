package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"crm-service/internal/models"
	"crm-service/internal/store"
	"crm-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderService handles order validation, aggregation and queries
type OrderService struct {
	store     OrderStore
	customers CustomerStore
	products  ProductStore
	publisher EventPublisher
	logger    *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(
	store OrderStore,
	customers CustomerStore,
	products ProductStore,
	publisher EventPublisher,
) *OrderService {
	return &OrderService{
		store:     store,
		customers: customers,
		products:  products,
		publisher: publisher,
		logger:    util.GetLogger(),
	}
}

// CreateOrderRequest represents a request to create an order. A product ID
// repeated in ProductIDs contributes its price once per occurrence.
type CreateOrderRequest struct {
	CustomerID int64      `json:"customer_id" binding:"required"`
	ProductIDs []int64    `json:"product_ids" binding:"required,min=1"`
	OrderDate  *time.Time `json:"order_date,omitempty"`
}

// Create validates the customer and every product reference before touching
// any state, computes the total snapshot, then persists the order and its
// associations in one transaction.
func (s *OrderService) Create(ctx context.Context, req *CreateOrderRequest) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.Create")
	defer span.End()

	if len(req.ProductIDs) == 0 {
		util.OrdersFailedTotal.WithLabelValues("empty_product_list").Inc()
		return nil, ErrEmptyProductList
	}

	customer, err := s.customers.GetCustomerByID(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			util.OrdersFailedTotal.WithLabelValues("customer_not_found").Inc()
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to resolve customer: %w", err)
	}

	productMap, err := s.resolveProducts(ctx, req.ProductIDs)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, id := range req.ProductIDs {
		total += productMap[id].Price
	}

	orderDate := time.Now()
	if req.OrderDate != nil {
		orderDate = *req.OrderDate
	}

	order := &models.Order{
		CustomerID:  customer.ID,
		OrderDate:   orderDate,
		TotalAmount: total,
	}

	if err := s.store.CreateOrder(ctx, order, req.ProductIDs); err != nil {
		util.OrdersFailedTotal.WithLabelValues("db_error").Inc()
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	order.CustomerEmail = customer.Email

	util.OrdersCreatedTotal.Inc()
	s.logger.Info("Order created",
		zap.Int64("order_id", order.ID),
		zap.Int64("customer_id", order.CustomerID),
		zap.Int64("total_amount", order.TotalAmount))

	if s.publisher != nil {
		event := &models.OrderCreatedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeOrderCreated,
				Timestamp: time.Now(),
			},
			OrderID:     order.ID,
			CustomerID:  order.CustomerID,
			TotalAmount: order.TotalAmount,
			ProductIDs:  req.ProductIDs,
		}
		if err := s.publisher.PublishOrderCreated(ctx, event); err != nil {
			s.logger.Error("Failed to publish OrderCreated event", zap.Error(err))
		}
	}

	return order, nil
}

// resolveProducts fetches every referenced product and fails on the first
// unknown ID, in input order, before anything is persisted.
func (s *OrderService) resolveProducts(ctx context.Context, ids []int64) (map[int64]models.Product, error) {
	unique := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	products, err := s.products.GetProductsByIDs(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve products: %w", err)
	}

	productMap := make(map[int64]models.Product, len(products))
	for _, p := range products {
		productMap[p.ID] = p
	}

	for _, id := range unique {
		if _, ok := productMap[id]; !ok {
			util.OrdersFailedTotal.WithLabelValues("product_not_found").Inc()
			return nil, &ProductNotFoundError{ID: id}
		}
	}

	return productMap, nil
}

// Get retrieves an order with its associated products
func (s *OrderService) Get(ctx context.Context, orderID int64) (*models.Order, []models.Product, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.Get")
	defer span.End()

	order, err := s.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}

	products, err := s.store.GetOrderProducts(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}

	return order, products, nil
}

// List retrieves orders matching the filter
func (s *OrderService) List(ctx context.Context, filter store.OrderFilter) ([]models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.List")
	defer span.End()

	return s.store.ListOrders(ctx, filter)
}
