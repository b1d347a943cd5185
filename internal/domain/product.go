package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ExpiryLayout is the calendar-date layout accepted for product expiry dates
const ExpiryLayout = "2006-01-02"

// Product is a catalog entry. It is not modified by the cart or checkout.
type Product struct {
	Name             string
	Price            decimal.Decimal
	Quantity         int        // Quantity on hand
	Expiry           *time.Time // nil when the product never expires
	RequiresShipping bool
	Weight           decimal.Decimal // Grams, only meaningful when RequiresShipping
}

func NewProduct(name string, price decimal.Decimal, quantity int) *Product {
	return &Product{
		Name:     name,
		Price:    price,
		Quantity: quantity,
	}
}

// WithExpiry sets the expiry date and returns the product
func (p *Product) WithExpiry(expiry time.Time) *Product {
	p.Expiry = &expiry
	return p
}

// Shippable marks the product as a physical good weighing the given grams per unit
func (p *Product) Shippable(weight decimal.Decimal) *Product {
	p.RequiresShipping = true
	p.Weight = weight
	return p
}

// IsExpired reports whether now is strictly later than the expiry date
func (p *Product) IsExpired(now time.Time) bool {
	if p.Expiry == nil {
		return false
	}
	return now.After(*p.Expiry)
}

// UnitWeight returns the per-unit weight, zero for products that do not ship
func (p *Product) UnitWeight() decimal.Decimal {
	if !p.RequiresShipping {
		return decimal.Zero
	}
	return p.Weight
}

// LineTotal is price times quantity
func (p *Product) LineTotal(quantity int) decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(quantity)))
}

func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrProductNameRequired
	}
	if p.Price.IsNegative() {
		return ErrNegativePrice
	}
	if p.Quantity < 0 {
		return ErrNegativeQuantity
	}
	if p.RequiresShipping && p.Weight.IsNegative() {
		return ErrNegativeWeight
	}
	return nil
}

// ParseExpiry parses a YYYY-MM-DD date as midnight UTC
func ParseExpiry(s string) (time.Time, error) {
	t, err := time.ParseInLocation(ExpiryLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidExpiry
	}
	return t, nil
}
