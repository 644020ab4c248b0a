package service

import (
	"context"
	"fmt"
	"time"

	"crm-service/internal/models"
	"crm-service/internal/store"
	"crm-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// LowStockThreshold marks products eligible for replenishment when their
	// stock is strictly below it.
	LowStockThreshold = 10

	// ReplenishIncrement is added to each eligible product's stock per sweep.
	ReplenishIncrement = 10
)

// ProductService handles product validation, mutations and the low-stock
// replenishment sweep
type ProductService struct {
	store     ProductStore
	cache     ProductCache
	publisher EventPublisher
	logger    *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(store ProductStore, cache ProductCache, publisher EventPublisher) *ProductService {
	return &ProductService{
		store:     store,
		cache:     cache,
		publisher: publisher,
		logger:    util.GetLogger(),
	}
}

// CreateProductRequest represents a request to create a product. Stock is
// optional and defaults to 0. Price is validated in Create so that a zero
// price surfaces as InvalidPrice rather than a binding error.
type CreateProductRequest struct {
	Name  string `json:"name" binding:"required"`
	Price int64  `json:"price"`
	Stock *int   `json:"stock,omitempty"`
}

// Create validates and persists a new product
func (s *ProductService) Create(ctx context.Context, req *CreateProductRequest) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "ProductService.Create")
	defer span.End()

	if req.Price <= 0 {
		util.ProductValidationFailures.WithLabelValues("invalid_price").Inc()
		return nil, ErrInvalidPrice
	}

	stock := 0
	if req.Stock != nil {
		stock = *req.Stock
	}
	if stock < 0 {
		util.ProductValidationFailures.WithLabelValues("negative_stock").Inc()
		return nil, ErrNegativeStock
	}

	product := &models.Product{
		Name:  req.Name,
		Price: req.Price,
		Stock: stock,
	}

	if err := s.store.CreateProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	util.ProductsCreatedTotal.Inc()
	s.logger.Info("Product created",
		zap.Int64("product_id", product.ID),
		zap.Int64("price", product.Price),
		zap.Int("stock", product.Stock))

	s.invalidateCache(ctx)
	return product, nil
}

// LowStockResult is the outcome of a replenishment sweep
type LowStockResult struct {
	Success         bool             `json:"success"`
	Message         string           `json:"message"`
	UpdatedProducts []models.Product `json:"updated_products"`
}

// UpdateLowStock tops up every product with stock below the threshold by the
// fixed increment. Re-running keeps topping up anything still under the
// threshold.
func (s *ProductService) UpdateLowStock(ctx context.Context) (*LowStockResult, error) {
	ctx, span := util.StartSpan(ctx, "ProductService.UpdateLowStock")
	defer span.End()

	updated, err := s.store.ReplenishLowStock(ctx, LowStockThreshold, ReplenishIncrement)
	if err != nil {
		return nil, err
	}

	util.LowStockSweepsTotal.Inc()
	util.LowStockProductsUpdated.Add(float64(len(updated)))
	s.logger.Info("Low-stock sweep completed", zap.Int("updated", len(updated)))

	if len(updated) > 0 {
		s.invalidateCache(ctx)
	}

	if s.publisher != nil && len(updated) > 0 {
		event := &models.LowStockReplenishedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeLowStockReplenished,
				Timestamp: time.Now(),
			},
			Count: len(updated),
		}
		for _, p := range updated {
			event.Products = append(event.Products, models.RestockedProduct{
				ProductID: p.ID,
				Name:      p.Name,
				Stock:     p.Stock,
			})
		}
		if err := s.publisher.PublishLowStockReplenished(ctx, event); err != nil {
			s.logger.Error("Failed to publish LowStockReplenished event", zap.Error(err))
		}
	}

	return &LowStockResult{
		Success:         true,
		Message:         fmt.Sprintf("Updated %d low-stock products", len(updated)),
		UpdatedProducts: updated,
	}, nil
}

// List retrieves products matching the filter. The unfiltered listing is
// served from the cache when warm.
func (s *ProductService) List(ctx context.Context, filter store.ProductFilter) ([]models.Product, error) {
	ctx, span := util.StartSpan(ctx, "ProductService.List")
	defer span.End()

	unfiltered := filter == (store.ProductFilter{})
	if unfiltered && s.cache != nil {
		cached, err := s.cache.GetCachedProducts(ctx)
		if err != nil {
			s.logger.Warn("Product cache read failed, falling back to store", zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	products, err := s.store.ListProducts(ctx, filter)
	if err != nil {
		return nil, err
	}

	if unfiltered && s.cache != nil {
		if err := s.cache.CacheProducts(ctx, products); err != nil {
			s.logger.Warn("Failed to cache products", zap.Error(err))
		}
	}

	return products, nil
}

func (s *ProductService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateProducts(ctx); err != nil {
		s.logger.Warn("Failed to invalidate product cache", zap.Error(err))
	}
}
