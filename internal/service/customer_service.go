package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"crm-service/internal/models"
	"crm-service/internal/store"
	"crm-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Accepted phone shapes: leading + followed by 1-15 digits, or 3-3-4 digit
// groups separated by hyphens.
var phonePattern = regexp.MustCompile(`^(\+\d{1,15}|\d{3}-\d{3}-\d{4})$`)

// CustomerService handles customer validation and mutations
type CustomerService struct {
	store     CustomerStore
	publisher EventPublisher
	logger    *zap.Logger
}

// NewCustomerService creates a new customer service
func NewCustomerService(store CustomerStore, publisher EventPublisher) *CustomerService {
	return &CustomerService{
		store:     store,
		publisher: publisher,
		logger:    util.GetLogger(),
	}
}

// CreateCustomerRequest represents a request to create a customer
type CreateCustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
	Phone string `json:"phone,omitempty"`
}

// Create validates and persists a new customer. Email uniqueness is checked
// explicitly before insert; it is not a store constraint.
func (s *CustomerService) Create(ctx context.Context, req *CreateCustomerRequest) (*models.Customer, string, error) {
	ctx, span := util.StartSpan(ctx, "CustomerService.Create")
	defer span.End()

	existing, err := s.store.GetCustomerByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if existing != nil {
		util.CustomerValidationFailures.WithLabelValues("duplicate_email").Inc()
		return nil, "", ErrDuplicateEmail
	}

	if req.Phone != "" && !phonePattern.MatchString(req.Phone) {
		util.CustomerValidationFailures.WithLabelValues("invalid_phone").Inc()
		return nil, "", ErrInvalidPhoneFormat
	}

	customer := &models.Customer{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	}

	if err := s.store.CreateCustomer(ctx, customer); err != nil {
		return nil, "", fmt.Errorf("failed to create customer: %w", err)
	}

	util.CustomersCreatedTotal.Inc()
	s.logger.Info("Customer created",
		zap.Int64("customer_id", customer.ID),
		zap.String("email", customer.Email))

	if s.publisher != nil {
		event := &models.CustomerCreatedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeCustomerCreated,
				Timestamp: time.Now(),
			},
			CustomerID: customer.ID,
			Email:      customer.Email,
		}
		if err := s.publisher.PublishCustomerCreated(ctx, event); err != nil {
			s.logger.Error("Failed to publish CustomerCreated event", zap.Error(err))
		}
	}

	return customer, "Customer created successfully", nil
}

// BulkCreateResult carries the partial-failure outcome of a bulk create
type BulkCreateResult struct {
	Customers []models.Customer `json:"customers"`
	Errors    []string          `json:"errors"`
}

// BulkCreate processes each input independently: successes are collected in
// order, failures become 1-based positional error labels. A bad entry never
// aborts the batch.
func (s *CustomerService) BulkCreate(ctx context.Context, reqs []CreateCustomerRequest) *BulkCreateResult {
	ctx, span := util.StartSpan(ctx, "CustomerService.BulkCreate")
	defer span.End()

	result := &BulkCreateResult{
		Customers: []models.Customer{},
		Errors:    []string{},
	}

	for i, req := range reqs {
		req := req
		customer, _, err := s.Create(ctx, &req)
		if err != nil {
			result.Errors = append(result.Errors, bulkErrorLabel(i+1, err))
			continue
		}
		result.Customers = append(result.Customers, *customer)
	}

	return result
}

func bulkErrorLabel(position int, err error) string {
	switch {
	case errors.Is(err, ErrDuplicateEmail):
		return fmt.Sprintf("Customer %d: Email already exists", position)
	case errors.Is(err, ErrInvalidPhoneFormat):
		return fmt.Sprintf("Customer %d: Invalid phone format", position)
	default:
		return fmt.Sprintf("Customer %d: %v", position, err)
	}
}

// List retrieves customers matching the filter
func (s *CustomerService) List(ctx context.Context, filter store.CustomerFilter) ([]models.Customer, error) {
	ctx, span := util.StartSpan(ctx, "CustomerService.List")
	defer span.End()

	return s.store.ListCustomers(ctx, filter)
}
