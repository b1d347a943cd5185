package service

import (
	"context"
	"fmt"

	"github.com/fjod/go_checkout/internal/clock"
	"github.com/fjod/go_checkout/internal/domain"
	"github.com/fjod/go_checkout/internal/report"
	"github.com/fjod/go_checkout/internal/shipping"
)

// Outcome is the result of validating a line item before it is added
type Outcome string

const (
	OutcomeOK      Outcome = "ok"
	OutcomeWarned  Outcome = "warned"
	OutcomeBlocked Outcome = "blocked"
)

func (o Outcome) String() string {
	return string(o)
}

// AddResult tells the caller whether Add appended the line item and why not.
// Reason is nil for OutcomeOK.
type AddResult struct {
	Outcome Outcome
	Reason  error
}

// Added reports whether the line item is now in the cart
func (r AddResult) Added() bool {
	return r.Outcome != OutcomeBlocked
}

// LineItem is a product and the quantity requested for it
type LineItem struct {
	Product  *domain.Product
	Quantity int
}

// Shipper turns shippable units into a manifest
type Shipper interface {
	Ship(ctx context.Context, units []domain.ShippableUnit) *domain.Manifest
}

// Cart is an ordered list of line items. It has no lifecycle: Add and Checkout
// may be called in any order, any number of times. A Cart is not safe for
// concurrent use.
type Cart struct {
	items    []LineItem
	clock    clock.Clock
	reporter report.Reporter
	display  report.Display
	shipper  Shipper
	opts     Options
}

func NewCart(clk clock.Clock, reporter report.Reporter, display report.Display, shipper Shipper, opts Options) *Cart {
	defaults := DefaultOptions()
	if !opts.Subtotal.Valid() {
		opts.Subtotal = defaults.Subtotal
	}
	if !opts.Settlement.Valid() {
		opts.Settlement = defaults.Settlement
	}
	if !opts.ExpiryPolicy.Valid() {
		opts.ExpiryPolicy = defaults.ExpiryPolicy
	}

	if shipper == nil {
		shipper = shipping.NewService(display, nil, nil)
	}

	return &Cart{
		clock:    clk,
		reporter: reporter,
		display:  display,
		shipper:  shipper,
		opts:     opts,
	}
}

// Validate checks stock first and expiry second. Stock is compared against the
// product's quantity on hand as is; earlier adds of the same product do not count.
func (c *Cart) Validate(product *domain.Product, quantity int) AddResult {
	if quantity <= 0 {
		return AddResult{Outcome: OutcomeBlocked, Reason: ErrInvalidQuantity}
	}
	if product.Quantity < quantity {
		return AddResult{Outcome: OutcomeBlocked, Reason: ErrOutOfStock}
	}
	if product.IsExpired(c.clock.Now()) {
		if c.opts.ExpiryPolicy == ExpiryBlocking {
			return AddResult{Outcome: OutcomeBlocked, Reason: ErrExpiredProduct}
		}
		return AddResult{Outcome: OutcomeWarned, Reason: ErrExpiredProduct}
	}
	return AddResult{Outcome: OutcomeOK}
}

// Add validates and appends a line item. Failures go to the Reporter; an
// expired product is only a warning under the advisory policy and is still added.
func (c *Cart) Add(product *domain.Product, quantity int) AddResult {
	result := c.Validate(product, quantity)
	if result.Reason != nil {
		c.reporter.ReportError(failureMessage(product, quantity, result.Reason))
	}
	if !result.Added() {
		return result
	}

	c.items = append(c.items, LineItem{Product: product, Quantity: quantity})
	return result
}

// Items returns the line items in insertion order
func (c *Cart) Items() []LineItem {
	return append([]LineItem(nil), c.items...)
}

func (c *Cart) Len() int {
	return len(c.items)
}

func failureMessage(product *domain.Product, quantity int, reason error) string {
	switch reason {
	case ErrOutOfStock:
		return fmt.Sprintf("%s is out of stock.", product.Name)
	case ErrExpiredProduct:
		return fmt.Sprintf("%s has expired", product.Name)
	case ErrInvalidQuantity:
		return fmt.Sprintf("%s: invalid quantity %d", product.Name, quantity)
	default:
		return fmt.Sprintf("%s: %v", product.Name, reason)
	}
}
