package models

import "time"

// Customer represents a CRM customer
type Customer struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone" json:"phone,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Product represents a product in the catalog.
// Price is stored in minor currency units.
type Product struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Price     int64     `db:"price" json:"price"`
	Stock     int       `db:"stock" json:"stock"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Order represents a customer order. TotalAmount is a snapshot of the
// referenced products' prices at creation time and is never recomputed.
type Order struct {
	ID          int64     `db:"id" json:"id"`
	CustomerID  int64     `db:"customer_id" json:"customer_id"`
	OrderDate   time.Time `db:"order_date" json:"order_date"`
	TotalAmount int64     `db:"total_amount" json:"total_amount"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`

	// CustomerEmail is populated on read paths that join the customer row.
	CustomerEmail string `db:"customer_email" json:"customer_email,omitempty"`
}

// OrderProduct links an order to a product (set semantics, one row per pair)
type OrderProduct struct {
	OrderID   int64 `db:"order_id" json:"order_id"`
	ProductID int64 `db:"product_id" json:"product_id"`
}
