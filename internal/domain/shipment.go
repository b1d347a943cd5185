package domain

import (
	"github.com/shopspring/decimal"
)

// ShippableUnit is one physical unit of a line item whose product requires shipping
type ShippableUnit struct {
	Name   string
	Weight decimal.Decimal
}

// ManifestGroup aggregates units sharing a name.
// Weight is taken from the first unit of the group.
type ManifestGroup struct {
	Name   string          `json:"name"`
	Count  int             `json:"count"`
	Weight decimal.Decimal `json:"weight"`
}

// Manifest is the grouped shipment summary of one checkout
type Manifest struct {
	ID          string          `json:"id"`
	Groups      []ManifestGroup `json:"groups"`
	TotalWeight decimal.Decimal `json:"total_weight"` // grams
}

var gramsPerKilogram = decimal.NewFromInt(1000)

// TotalKilograms returns the total weight converted to kilograms
func (m *Manifest) TotalKilograms() decimal.Decimal {
	return m.TotalWeight.Div(gramsPerKilogram)
}

// Group returns the group with the given name
func (m *Manifest) Group(name string) (ManifestGroup, bool) {
	for _, g := range m.Groups {
		if g.Name == name {
			return g, true
		}
	}
	return ManifestGroup{}, false
}
