package store

import (
	"errors"
	"time"

	"github.com/fjod/go_checkout/internal/domain"
	"github.com/fjod/go_checkout/internal/report"
	"github.com/fjod/go_checkout/internal/service"
	"github.com/shopspring/decimal"
)

// Common errors returned by the store
var (
	ErrProductNotFound  = errors.New("product not found")
	ErrProductExists    = errors.New("product already exists")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrCartNotFound     = errors.New("cart not found")
)

// CartSession is a cart together with the recorder its display and reporter write to
type CartSession struct {
	ID        string
	Cart      *service.Cart
	Output    *report.Recorder
	CreatedAt time.Time
	touchedAt time.Time
}

// Store is the registry behind the HTTP gateway
type Store interface {
	// AddProduct registers a product under its name
	AddProduct(p *domain.Product) error

	// Product returns the product registered under name
	Product(name string) (*domain.Product, error)

	// Products lists the catalog ordered by name
	Products() []*domain.Product

	// CreateCustomer registers a customer and returns its ID
	CreateCustomer(balance decimal.Decimal) string

	// CustomerBalance returns the current balance of a customer
	CustomerBalance(id string) (decimal.Decimal, error)

	// CreateCart stores a new cart session and returns its ID
	CreateCart(cart *service.Cart, output *report.Recorder) string

	// WithCart runs fn with exclusive access to the cart
	WithCart(id string, fn func(*CartSession) error) error

	// WithCartAndCustomer runs fn with exclusive access to the cart and the customer
	WithCartAndCustomer(cartID, customerID string, fn func(*CartSession, *domain.Customer) error) error

	// Close shuts down the store and any background processes
	Close() error
}
