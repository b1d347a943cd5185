package domain

import "github.com/shopspring/decimal"

// Customer holds a single balance in the same units as product prices
type Customer struct {
	balance decimal.Decimal
}

func NewCustomer(balance decimal.Decimal) *Customer {
	return &Customer{balance: balance}
}

func (c *Customer) Balance() decimal.Decimal {
	return c.balance
}

// CanAfford reports whether the balance covers amount
func (c *Customer) CanAfford(amount decimal.Decimal) bool {
	return !c.balance.LessThan(amount)
}

// Debit subtracts amount from the balance. No overdraft check is made here.
func (c *Customer) Debit(amount decimal.Decimal) {
	c.balance = c.balance.Sub(amount)
}
