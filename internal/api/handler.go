package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"crm-service/internal/service"
	"crm-service/internal/store"
	"crm-service/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	customers *service.CustomerService
	products  *service.ProductService
	orders    *service.OrderService
}

// NewHandler creates a new HTTP handler
func NewHandler(
	customers *service.CustomerService,
	products *service.ProductService,
	orders *service.OrderService,
) *Handler {
	return &Handler{
		customers: customers,
		products:  products,
		orders:    orders,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/hello", h.hello)
	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/customers", h.listCustomers)
		v1.POST("/customers", h.createCustomer)
		v1.POST("/customers/bulk", h.bulkCreateCustomers)

		v1.GET("/products", h.listProducts)
		v1.POST("/products", h.createProduct)
		v1.POST("/products/update-low-stock", h.updateLowStockProducts)

		v1.GET("/orders", h.listOrders)
		v1.POST("/orders", h.createOrder)
		v1.GET("/orders/:id", h.getOrder)
	}
}

// hello is the trivial echo query probed by the heartbeat job
func (h *Handler) hello(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Hello, CRM!",
	})
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// createCustomer handles customer creation
func (h *Handler) createCustomer(c *gin.Context) {
	var req service.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	customer, message, err := h.customers.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"customer": customer,
		"message":  message,
	})
}

// bulkCreateCustomers handles bulk customer creation with per-item isolation
func (h *Handler) bulkCreateCustomers(c *gin.Context) {
	var reqs []service.CreateCustomerRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	result := h.customers.BulkCreate(c.Request.Context(), reqs)
	c.JSON(http.StatusOK, result)
}

// listCustomers handles filtered customer listing
func (h *Handler) listCustomers(c *gin.Context) {
	filter := store.CustomerFilter{
		NameContains:  c.Query("name_contains"),
		EmailContains: c.Query("email_contains"),
	}
	var err error
	if filter.CreatedAtGte, err = parseTimeParam(c, "created_at_gte"); err != nil {
		return
	}
	if filter.CreatedAtLte, err = parseTimeParam(c, "created_at_lte"); err != nil {
		return
	}

	customers, err := h.customers.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

// createProduct handles product creation
func (h *Handler) createProduct(c *gin.Context) {
	var req service.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	product, err := h.products.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"product": product})
}

// listProducts handles filtered product listing
func (h *Handler) listProducts(c *gin.Context) {
	filter := store.ProductFilter{
		NameContains: c.Query("name_contains"),
	}
	var err error
	if filter.PriceGte, err = parseInt64Param(c, "price_gte"); err != nil {
		return
	}
	if filter.PriceLte, err = parseInt64Param(c, "price_lte"); err != nil {
		return
	}
	if filter.StockGte, err = parseIntParam(c, "stock_gte"); err != nil {
		return
	}
	if filter.StockLte, err = parseIntParam(c, "stock_lte"); err != nil {
		return
	}

	products, err := h.products.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// updateLowStockProducts triggers the low-stock replenishment sweep
func (h *Handler) updateLowStockProducts(c *gin.Context) {
	result, err := h.products.UpdateLowStock(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// createOrder handles order creation
func (h *Handler) createOrder(c *gin.Context) {
	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	order, err := h.orders.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"order": order})
}

// getOrder handles get order by ID
func (h *Handler) getOrder(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	order, products, err := h.orders.Get(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order":    order,
		"products": products,
	})
}

// listOrders handles filtered order listing. order_date_gte is inclusive.
func (h *Handler) listOrders(c *gin.Context) {
	var filter store.OrderFilter
	var err error
	if filter.OrderDateGte, err = parseTimeParam(c, "order_date_gte"); err != nil {
		return
	}
	if filter.OrderDateLte, err = parseTimeParam(c, "order_date_lte"); err != nil {
		return
	}
	if customerID := c.Query("customer_id"); customerID != "" {
		filter.CustomerID, err = strconv.ParseInt(customerID, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer_id"})
			return
		}
	}
	if filter.TotalAmountGte, err = parseInt64Param(c, "total_amount_gte"); err != nil {
		return
	}

	orders, err := h.orders.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// respondError maps service errors onto HTTP statuses: validation failures
// are 400, unresolved references are 422, everything else is 500.
func respondError(c *gin.Context, err error) {
	var notFound *service.ProductNotFoundError

	switch {
	case errors.Is(err, service.ErrDuplicateEmail),
		errors.Is(err, service.ErrInvalidPhoneFormat),
		errors.Is(err, service.ErrInvalidPrice),
		errors.Is(err, service.ErrNegativeStock),
		errors.Is(err, service.ErrEmptyProductList):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrCustomerNotFound), errors.As(err, &notFound):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "details": err.Error()})
	}
}

func parseTimeParam(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + ", expected RFC3339"})
		return nil, err
	}
	return &t, nil
}

func parseInt64Param(c *gin.Context, name string) (*int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return nil, err
	}
	return &v, nil
}

func parseIntParam(c *gin.Context, name string) (*int, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return nil, err
	}
	return &v, nil
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
