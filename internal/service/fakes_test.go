package service

import (
	"context"
	"fmt"
	"time"

	"crm-service/internal/models"
	"crm-service/internal/store"
)

// fakeStore is an in-memory stand-in for *store.Store
type fakeStore struct {
	customers     []models.Customer
	products      []models.Product
	orders        []models.Order
	orderProducts map[int64][]int64
	nextID        int64

	createOrderErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{orderProducts: map[int64][]int64{}}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	customer.ID = f.id()
	customer.CreatedAt = time.Now()
	f.customers = append(f.customers, *customer)
	return nil
}

func (f *fakeStore) GetCustomerByID(ctx context.Context, id int64) (*models.Customer, error) {
	for _, c := range f.customers {
		if c.ID == id {
			c := c
			return &c, nil
		}
	}
	return nil, fmt.Errorf("customer %d: %w", id, store.ErrNotFound)
}

func (f *fakeStore) GetCustomerByEmail(ctx context.Context, email string) (*models.Customer, error) {
	for _, c := range f.customers {
		if c.Email == email {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ListCustomers(ctx context.Context, filter store.CustomerFilter) ([]models.Customer, error) {
	return append([]models.Customer{}, f.customers...), nil
}

func (f *fakeStore) CreateProduct(ctx context.Context, product *models.Product) error {
	product.ID = f.id()
	product.CreatedAt = time.Now()
	f.products = append(f.products, *product)
	return nil
}

func (f *fakeStore) GetProductsByIDs(ctx context.Context, ids []int64) ([]models.Product, error) {
	var found []models.Product
	for _, id := range ids {
		for _, p := range f.products {
			if p.ID == id {
				found = append(found, p)
				break
			}
		}
	}
	return found, nil
}

func (f *fakeStore) ListProducts(ctx context.Context, filter store.ProductFilter) ([]models.Product, error) {
	return append([]models.Product{}, f.products...), nil
}

func (f *fakeStore) ReplenishLowStock(ctx context.Context, threshold, increment int) ([]models.Product, error) {
	var updated []models.Product
	for i := range f.products {
		if f.products[i].Stock < threshold {
			f.products[i].Stock += increment
			updated = append(updated, f.products[i])
		}
	}
	return updated, nil
}

func (f *fakeStore) CreateOrder(ctx context.Context, order *models.Order, productIDs []int64) error {
	if f.createOrderErr != nil {
		return f.createOrderErr
	}
	order.ID = f.id()
	order.CreatedAt = time.Now()
	f.orders = append(f.orders, *order)

	seen := map[int64]struct{}{}
	for _, pid := range productIDs {
		if _, ok := seen[pid]; ok {
			continue
		}
		seen[pid] = struct{}{}
		f.orderProducts[order.ID] = append(f.orderProducts[order.ID], pid)
	}
	return nil
}

func (f *fakeStore) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	for _, o := range f.orders {
		if o.ID == id {
			o := o
			return &o, nil
		}
	}
	return nil, fmt.Errorf("order %d: %w", id, store.ErrNotFound)
}

func (f *fakeStore) GetOrderProducts(ctx context.Context, orderID int64) ([]models.Product, error) {
	var products []models.Product
	for _, pid := range f.orderProducts[orderID] {
		for _, p := range f.products {
			if p.ID == pid {
				products = append(products, p)
			}
		}
	}
	return products, nil
}

func (f *fakeStore) ListOrders(ctx context.Context, filter store.OrderFilter) ([]models.Order, error) {
	var orders []models.Order
	for _, o := range f.orders {
		if filter.CustomerID != 0 && o.CustomerID != filter.CustomerID {
			continue
		}
		if filter.OrderDateGte != nil && o.OrderDate.Before(*filter.OrderDateGte) {
			continue
		}
		if filter.OrderDateLte != nil && o.OrderDate.After(*filter.OrderDateLte) {
			continue
		}
		if filter.TotalAmountGte != nil && o.TotalAmount < *filter.TotalAmountGte {
			continue
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (f *fakeStore) addCustomer(name, email string) models.Customer {
	c := models.Customer{ID: f.id(), Name: name, Email: email, CreatedAt: time.Now()}
	f.customers = append(f.customers, c)
	return c
}

func (f *fakeStore) addProduct(name string, price int64, stock int) models.Product {
	p := models.Product{ID: f.id(), Name: name, Price: price, Stock: stock, CreatedAt: time.Now()}
	f.products = append(f.products, p)
	return p
}
