package service

import "github.com/shopspring/decimal"

// SubtotalMode selects how line totals become the subtotal
type SubtotalMode string

const (
	// SubtotalLastLine keeps only the last line item's total, matching the reference register
	SubtotalLastLine SubtotalMode = "last"
	// SubtotalSum adds every line item's total
	SubtotalSum SubtotalMode = "sum"
)

// SettlementMode selects whether checkout changes the customer balance
type SettlementMode string

const (
	// SettlementNone leaves the balance untouched, matching the reference register
	SettlementNone SettlementMode = "none"
	// SettlementDebit subtracts the total amount
	SettlementDebit SettlementMode = "debit"
)

// ExpiryPolicy selects what happens when an expired product is added
type ExpiryPolicy string

const (
	// ExpiryAdvisory reports the expiry and still adds the item
	ExpiryAdvisory ExpiryPolicy = "advisory"
	// ExpiryBlocking reports the expiry and rejects the item
	ExpiryBlocking ExpiryPolicy = "blocking"
)

// DefaultShippingFee is charged once per shippable line item
var DefaultShippingFee = decimal.NewFromInt(30)

type Options struct {
	ShippingFee  *decimal.Decimal // nil charges DefaultShippingFee
	Subtotal     SubtotalMode
	Settlement   SettlementMode
	ExpiryPolicy ExpiryPolicy
}

// DefaultOptions reproduces the reference register exactly
func DefaultOptions() Options {
	return Options{
		Subtotal:     SubtotalLastLine,
		Settlement:   SettlementNone,
		ExpiryPolicy: ExpiryAdvisory,
	}
}

func (m SubtotalMode) Valid() bool {
	return m == SubtotalLastLine || m == SubtotalSum
}

func (m SettlementMode) Valid() bool {
	return m == SettlementNone || m == SettlementDebit
}

func (p ExpiryPolicy) Valid() bool {
	return p == ExpiryAdvisory || p == ExpiryBlocking
}

// WithShippingFee returns a copy of o charging fee per shippable line item
func (o Options) WithShippingFee(fee decimal.Decimal) Options {
	o.ShippingFee = &fee
	return o
}

// Fee is the configured shipping fee, DefaultShippingFee when unset
func (o Options) Fee() decimal.Decimal {
	if o.ShippingFee == nil {
		return DefaultShippingFee
	}
	return *o.ShippingFee
}
