package service

import (
	"errors"
	"fmt"
)

// Validation and lookup errors surfaced in mutation payloads. These are user
// input errors, never process faults.
var (
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrInvalidPhoneFormat = errors.New("invalid phone format, use +1234567890 or 123-456-7890")
	ErrInvalidPrice       = errors.New("price must be positive")
	ErrNegativeStock      = errors.New("stock cannot be negative")
	ErrCustomerNotFound   = errors.New("invalid customer ID")
	ErrEmptyProductList   = errors.New("at least one product must be selected")
)

// ProductNotFoundError names the offending product reference on order
// creation.
type ProductNotFoundError struct {
	ID int64
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("invalid product ID: %d", e.ID)
}
