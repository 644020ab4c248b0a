package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"crm-service/internal/models"
)

// OrderFilter narrows ListOrders results. Zero-value fields are ignored.
// OrderDateGte is an inclusive lower bound.
type OrderFilter struct {
	CustomerID     int64
	OrderDateGte   *time.Time
	OrderDateLte   *time.Time
	TotalAmountGte *int64
}

// CreateOrder persists an order and its product associations in one
// transaction. Duplicate product IDs collapse into a single association row;
// no order row is visible without its associations.
func (s *Store) CreateOrder(ctx context.Context, order *models.Order, productIDs []int64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO orders (customer_id, order_date, total_amount)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	if err := tx.GetContext(ctx, order, query,
		order.CustomerID, order.OrderDate, order.TotalAmount); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for _, productID := range productIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO order_products (order_id, product_id)
			 VALUES ($1, $2) ON CONFLICT (order_id, product_id) DO NOTHING`,
			order.ID, productID)
		if err != nil {
			return fmt.Errorf("failed to attach product %d: %w", productID, err)
		}
	}

	return tx.Commit()
}

// GetOrderByID retrieves an order by ID with its customer email
func (s *Store) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	err := s.db.GetContext(ctx, &order, `
		SELECT o.*, c.email AS customer_email
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		WHERE o.id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrderProducts retrieves the products associated with an order
func (s *Store) GetOrderProducts(ctx context.Context, orderID int64) ([]models.Product, error) {
	var products []models.Product
	err := s.db.SelectContext(ctx, &products, `
		SELECT p.*
		FROM products p
		JOIN order_products op ON op.product_id = p.id
		WHERE op.order_id = $1
		ORDER BY p.id`, orderID)
	return products, err
}

// ListOrders retrieves orders matching the filter, newest first, with the
// owning customer's email joined in.
func (s *Store) ListOrders(ctx context.Context, filter OrderFilter) ([]models.Order, error) {
	query := `
		SELECT o.*, c.email AS customer_email
		FROM orders o
		JOIN customers c ON c.id = o.customer_id`
	var args []interface{}

	var conds []string
	if filter.CustomerID != 0 {
		args = append(args, filter.CustomerID)
		conds = append(conds, fmt.Sprintf("o.customer_id = $%d", len(args)))
	}
	if filter.OrderDateGte != nil {
		args = append(args, *filter.OrderDateGte)
		conds = append(conds, fmt.Sprintf("o.order_date >= $%d", len(args)))
	}
	if filter.OrderDateLte != nil {
		args = append(args, *filter.OrderDateLte)
		conds = append(conds, fmt.Sprintf("o.order_date <= $%d", len(args)))
	}
	if filter.TotalAmountGte != nil {
		args = append(args, *filter.TotalAmountGte)
		conds = append(conds, fmt.Sprintf("o.total_amount >= $%d", len(args)))
	}

	query += whereClause(conds) + " ORDER BY o.order_date DESC, o.id DESC"

	orders := []models.Order{}
	err := s.db.SelectContext(ctx, &orders, query, args...)
	return orders, err
}
