package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"crm-service/internal/models"
	"crm-service/internal/service"
	"crm-service/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is a minimal in-memory store backing the handler tests
type memStore struct {
	customers []models.Customer
	products  []models.Product
	orders    []models.Order
	nextID    int64
}

func (m *memStore) id() int64 { m.nextID++; return m.nextID }

func (m *memStore) CreateCustomer(ctx context.Context, c *models.Customer) error {
	c.ID = m.id()
	c.CreatedAt = time.Now()
	m.customers = append(m.customers, *c)
	return nil
}

func (m *memStore) GetCustomerByID(ctx context.Context, id int64) (*models.Customer, error) {
	for _, c := range m.customers {
		if c.ID == id {
			c := c
			return &c, nil
		}
	}
	return nil, fmt.Errorf("customer %d: %w", id, store.ErrNotFound)
}

func (m *memStore) GetCustomerByEmail(ctx context.Context, email string) (*models.Customer, error) {
	for _, c := range m.customers {
		if c.Email == email {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (m *memStore) ListCustomers(ctx context.Context, f store.CustomerFilter) ([]models.Customer, error) {
	return m.customers, nil
}

func (m *memStore) CreateProduct(ctx context.Context, p *models.Product) error {
	p.ID = m.id()
	p.CreatedAt = time.Now()
	m.products = append(m.products, *p)
	return nil
}

func (m *memStore) GetProductsByIDs(ctx context.Context, ids []int64) ([]models.Product, error) {
	var found []models.Product
	for _, id := range ids {
		for _, p := range m.products {
			if p.ID == id {
				found = append(found, p)
			}
		}
	}
	return found, nil
}

func (m *memStore) ListProducts(ctx context.Context, f store.ProductFilter) ([]models.Product, error) {
	return m.products, nil
}

func (m *memStore) ReplenishLowStock(ctx context.Context, threshold, increment int) ([]models.Product, error) {
	var updated []models.Product
	for i := range m.products {
		if m.products[i].Stock < threshold {
			m.products[i].Stock += increment
			updated = append(updated, m.products[i])
		}
	}
	return updated, nil
}

func (m *memStore) CreateOrder(ctx context.Context, o *models.Order, productIDs []int64) error {
	o.ID = m.id()
	o.CreatedAt = time.Now()
	m.orders = append(m.orders, *o)
	return nil
}

func (m *memStore) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	for _, o := range m.orders {
		if o.ID == id {
			o := o
			return &o, nil
		}
	}
	return nil, fmt.Errorf("order %d: %w", id, store.ErrNotFound)
}

func (m *memStore) GetOrderProducts(ctx context.Context, orderID int64) ([]models.Product, error) {
	return nil, nil
}

func (m *memStore) ListOrders(ctx context.Context, f store.OrderFilter) ([]models.Order, error) {
	return m.orders, nil
}

func newTestRouter(mem *memStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	customers := service.NewCustomerService(mem, nil)
	products := service.NewProductService(mem, nil, nil)
	orders := service.NewOrderService(mem, mem, mem, nil)

	router := gin.New()
	NewHandler(customers, products, orders).SetupRoutes(router)
	return router
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHelloEndpoint(t *testing.T) {
	router := newTestRouter(&memStore{})

	rec := doRequest(router, http.MethodGet, "/hello", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Hello, CRM!", body["message"])
}

func TestCreateCustomerEndpoint(t *testing.T) {
	router := newTestRouter(&memStore{})

	rec := doRequest(router, http.MethodPost, "/api/v1/customers",
		`{"name":"Alice","email":"alice@example.com","phone":"+1234567890"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var body struct {
		Customer models.Customer `json:"customer"`
		Message  string          `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Customer created successfully", body.Message)
	assert.NotZero(t, body.Customer.ID)
}

func TestCreateCustomerDuplicateEmailEndpoint(t *testing.T) {
	router := newTestRouter(&memStore{})
	payload := `{"name":"Alice","email":"alice@example.com"}`

	first := doRequest(router, http.MethodPost, "/api/v1/customers", payload)
	require.Equal(t, http.StatusCreated, first.Code)

	second := doRequest(router, http.MethodPost, "/api/v1/customers", payload)
	assert.Equal(t, http.StatusBadRequest, second.Code)
	assert.Contains(t, second.Body.String(), "email already exists")
}

func TestBulkCreateCustomersEndpoint(t *testing.T) {
	router := newTestRouter(&memStore{})

	rec := doRequest(router, http.MethodPost, "/api/v1/customers/bulk", `[
		{"name":"Alice","email":"alice@example.com"},
		{"name":"Alice Again","email":"alice@example.com"},
		{"name":"Carol","email":"carol@example.com"}
	]`)

	assert.Equal(t, http.StatusOK, rec.Code)
	var result service.BulkCreateResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Len(t, result.Customers, 2)
	assert.Equal(t, []string{"Customer 2: Email already exists"}, result.Errors)
}

func TestCreateProductInvalidPriceEndpoint(t *testing.T) {
	router := newTestRouter(&memStore{})

	rec := doRequest(router, http.MethodPost, "/api/v1/products",
		`{"name":"Widget","price":-5}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "price must be positive")
}

func TestCreateOrderUnknownCustomerEndpoint(t *testing.T) {
	mem := &memStore{}
	mem.products = append(mem.products, models.Product{ID: 1, Name: "Widget", Price: 10})
	mem.nextID = 1
	router := newTestRouter(mem)

	rec := doRequest(router, http.MethodPost, "/api/v1/orders",
		`{"customer_id":999,"product_ids":[1]}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid customer ID")
}

func TestUpdateLowStockEndpoint(t *testing.T) {
	mem := &memStore{}
	mem.products = append(mem.products,
		models.Product{ID: 1, Name: "Widget", Price: 10, Stock: 3},
		models.Product{ID: 2, Name: "Gadget", Price: 10, Stock: 15},
	)
	mem.nextID = 2
	router := newTestRouter(mem)

	rec := doRequest(router, http.MethodPost, "/api/v1/products/update-low-stock", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	var result service.LowStockResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, "Updated 1 low-stock products", result.Message)
	require.Len(t, result.UpdatedProducts, 1)
	assert.Equal(t, 13, result.UpdatedProducts[0].Stock)
}

func TestListOrdersBadDateParam(t *testing.T) {
	router := newTestRouter(&memStore{})

	rec := doRequest(router, http.MethodGet, "/api/v1/orders?order_date_gte=yesterday", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "order_date_gte")
}
