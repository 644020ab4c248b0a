package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCustomer(t *testing.T) {
	fake := newFakeStore()
	svc := NewCustomerService(fake, nil)

	customer, message, err := svc.Create(context.Background(), &CreateCustomerRequest{
		Name:  "Alice",
		Email: "alice@example.com",
		Phone: "+1234567890",
	})

	require.NoError(t, err)
	assert.Equal(t, "Customer created successfully", message)
	assert.NotZero(t, customer.ID)
	assert.Equal(t, "alice@example.com", customer.Email)
	assert.Len(t, fake.customers, 1)
}

func TestCreateCustomerPhoneValidation(t *testing.T) {
	valid := []string{
		"",
		"+1",
		"+1234567890",
		"+123456789012345",
		"123-456-7890",
	}
	invalid := []string{
		"1234567890",
		"+",
		"+1234567890123456",
		"+123abc",
		"12-345-6789",
		"123-45-67890",
		"123-456-789",
		"123-456-78901",
		"(123) 456-7890",
		"123-456-7890 ",
	}

	for _, phone := range valid {
		phone := phone
		t.Run("valid/"+phone, func(t *testing.T) {
			fake := newFakeStore()
			svc := NewCustomerService(fake, nil)
			_, _, err := svc.Create(context.Background(), &CreateCustomerRequest{
				Name:  "Alice",
				Email: "alice@example.com",
				Phone: phone,
			})
			assert.NoError(t, err)
		})
	}

	for _, phone := range invalid {
		phone := phone
		t.Run("invalid/"+phone, func(t *testing.T) {
			fake := newFakeStore()
			svc := NewCustomerService(fake, nil)
			_, _, err := svc.Create(context.Background(), &CreateCustomerRequest{
				Name:  "Alice",
				Email: "alice@example.com",
				Phone: phone,
			})
			assert.ErrorIs(t, err, ErrInvalidPhoneFormat)
			assert.Empty(t, fake.customers)
		})
	}
}

func TestCreateCustomerDuplicateEmail(t *testing.T) {
	fake := newFakeStore()
	svc := NewCustomerService(fake, nil)
	ctx := context.Background()

	_, _, err := svc.Create(ctx, &CreateCustomerRequest{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	_, _, err = svc.Create(ctx, &CreateCustomerRequest{Name: "Alice Again", Email: "alice@example.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	// Exactly one customer for that email survives
	count := 0
	for _, c := range fake.customers {
		if c.Email == "alice@example.com" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestBulkCreateCustomersPartialFailure(t *testing.T) {
	fake := newFakeStore()
	fake.addCustomer("Existing", "bob@example.com")
	svc := NewCustomerService(fake, nil)

	result := svc.BulkCreate(context.Background(), []CreateCustomerRequest{
		{Name: "Alice", Email: "alice@example.com"},
		{Name: "Bob", Email: "bob@example.com"},
		{Name: "Carol", Email: "carol@example.com"},
	})

	require.Len(t, result.Customers, 2)
	assert.Equal(t, "alice@example.com", result.Customers[0].Email)
	assert.Equal(t, "carol@example.com", result.Customers[1].Email)
	assert.Equal(t, []string{"Customer 2: Email already exists"}, result.Errors)
}

func TestBulkCreateCustomersErrorLabels(t *testing.T) {
	fake := newFakeStore()
	svc := NewCustomerService(fake, nil)

	result := svc.BulkCreate(context.Background(), []CreateCustomerRequest{
		{Name: "Alice", Email: "alice@example.com", Phone: "not-a-phone"},
		{Name: "Bob", Email: "bob@example.com"},
		{Name: "Bob Again", Email: "bob@example.com"},
	})

	require.Len(t, result.Customers, 1)
	assert.Equal(t, []string{
		"Customer 1: Invalid phone format",
		"Customer 3: Email already exists",
	}, result.Errors)
}

func TestBulkCreateCustomersEmptyInput(t *testing.T) {
	svc := NewCustomerService(newFakeStore(), nil)

	result := svc.BulkCreate(context.Background(), nil)

	assert.Empty(t, result.Customers)
	assert.Empty(t, result.Errors)
}
