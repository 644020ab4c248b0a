package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"crm-service/internal/models"

	"github.com/jmoiron/sqlx"
)

// ProductFilter narrows ListProducts results. Zero-value fields are ignored.
type ProductFilter struct {
	NameContains string
	PriceGte     *int64
	PriceLte     *int64
	StockGte     *int
	StockLte     *int
}

// CreateProduct persists a new product
func (s *Store) CreateProduct(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (name, price, stock)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	return s.db.GetContext(ctx, product, query,
		product.Name, product.Price, product.Stock)
}

// GetProductByID retrieves a product by ID
func (s *Store) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := s.db.GetContext(ctx, &product, "SELECT * FROM products WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProductsByIDs retrieves multiple products by IDs
func (s *Store) GetProductsByIDs(ctx context.Context, ids []int64) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}

	query, args, err := sqlx.In("SELECT * FROM products WHERE id IN (?)", ids)
	if err != nil {
		return nil, err
	}
	query = s.db.Rebind(query)

	var products []models.Product
	err = s.db.SelectContext(ctx, &products, query, args...)
	return products, err
}

// ListProducts retrieves products matching the filter, ordered by ID
func (s *Store) ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	query := "SELECT * FROM products"
	var args []interface{}

	var conds []string
	if filter.NameContains != "" {
		args = append(args, "%"+filter.NameContains+"%")
		conds = append(conds, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if filter.PriceGte != nil {
		args = append(args, *filter.PriceGte)
		conds = append(conds, fmt.Sprintf("price >= $%d", len(args)))
	}
	if filter.PriceLte != nil {
		args = append(args, *filter.PriceLte)
		conds = append(conds, fmt.Sprintf("price <= $%d", len(args)))
	}
	if filter.StockGte != nil {
		args = append(args, *filter.StockGte)
		conds = append(conds, fmt.Sprintf("stock >= $%d", len(args)))
	}
	if filter.StockLte != nil {
		args = append(args, *filter.StockLte)
		conds = append(conds, fmt.Sprintf("stock <= $%d", len(args)))
	}

	query += whereClause(conds) + " ORDER BY id"

	products := []models.Product{}
	err := s.db.SelectContext(ctx, &products, query, args...)
	return products, err
}

// ReplenishLowStock increments the stock of every product strictly below
// threshold by increment, in a single atomic statement, and returns the
// updated rows ordered by ID.
func (s *Store) ReplenishLowStock(ctx context.Context, threshold, increment int) ([]models.Product, error) {
	query := `
		UPDATE products
		SET stock = stock + $1
		WHERE stock < $2
		RETURNING id, name, price, stock, created_at`

	products := []models.Product{}
	if err := s.db.SelectContext(ctx, &products, query, increment, threshold); err != nil {
		return nil, fmt.Errorf("failed to replenish low stock: %w", err)
	}

	// RETURNING order is not guaranteed; keep output deterministic.
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func whereClause(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}
