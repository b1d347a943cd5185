package service

import "errors"

var (
	ErrOutOfStock          = errors.New("product is out of stock")
	ErrExpiredProduct      = errors.New("product has expired")
	ErrInvalidQuantity     = errors.New("quantity must be positive")
	ErrEmptyCart           = errors.New("cart is empty, nothing to checkout")
	ErrInsufficientBalance = errors.New("insufficient balance")
)
