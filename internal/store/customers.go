package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"crm-service/internal/models"
)

// CustomerFilter narrows ListCustomers results. Zero-value fields are ignored.
type CustomerFilter struct {
	NameContains  string
	EmailContains string
	CreatedAtGte  *time.Time
	CreatedAtLte  *time.Time
}

// CreateCustomer persists a new customer
func (s *Store) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	query := `
		INSERT INTO customers (name, email, phone)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	return s.db.GetContext(ctx, customer, query,
		customer.Name, customer.Email, customer.Phone)
}

// GetCustomerByID retrieves a customer by ID
func (s *Store) GetCustomerByID(ctx context.Context, id int64) (*models.Customer, error) {
	var customer models.Customer
	err := s.db.GetContext(ctx, &customer, "SELECT * FROM customers WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("customer %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// GetCustomerByEmail retrieves a customer by email, or nil when no row matches
func (s *Store) GetCustomerByEmail(ctx context.Context, email string) (*models.Customer, error) {
	var customer models.Customer
	err := s.db.GetContext(ctx, &customer,
		"SELECT * FROM customers WHERE email = $1 LIMIT 1", email)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// ListCustomers retrieves customers matching the filter, ordered by ID
func (s *Store) ListCustomers(ctx context.Context, filter CustomerFilter) ([]models.Customer, error) {
	query := "SELECT * FROM customers"
	var args []interface{}

	var conds []string
	if filter.NameContains != "" {
		args = append(args, "%"+filter.NameContains+"%")
		conds = append(conds, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if filter.EmailContains != "" {
		args = append(args, "%"+filter.EmailContains+"%")
		conds = append(conds, fmt.Sprintf("email ILIKE $%d", len(args)))
	}
	if filter.CreatedAtGte != nil {
		args = append(args, *filter.CreatedAtGte)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedAtLte != nil {
		args = append(args, *filter.CreatedAtLte)
		conds = append(conds, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	query += whereClause(conds) + " ORDER BY id"

	customers := []models.Customer{}
	err := s.db.SelectContext(ctx, &customers, query, args...)
	return customers, err
}
