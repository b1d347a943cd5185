package domain

import "errors"

var (
	ErrProductNameRequired = errors.New("product name is required")
	ErrNegativePrice       = errors.New("price must not be negative")
	ErrNegativeQuantity    = errors.New("quantity must not be negative")
	ErrNegativeWeight      = errors.New("weight must not be negative")
	ErrInvalidExpiry       = errors.New("expiry must be a YYYY-MM-DD date")
)
