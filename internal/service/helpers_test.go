package service

import (
	"context"
	"time"

	"github.com/fjod/go_checkout/internal/clock"
	"github.com/fjod/go_checkout/internal/domain"
	"github.com/fjod/go_checkout/internal/report"
	"github.com/fjod/go_checkout/internal/shipping"
	"github.com/shopspring/decimal"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func d(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func cheese() *domain.Product {
	return domain.NewProduct("Cheese", d(100), 10).
		WithExpiry(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)).
		Shippable(d(200))
}

func biscuits() *domain.Product {
	return domain.NewProduct("Biscuits", d(150), 10).
		WithExpiry(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)).
		Shippable(d(700))
}

func tv() *domain.Product {
	return domain.NewProduct("TV", d(3000), 5).Shippable(d(5000))
}

func scratchCard() *domain.Product {
	return domain.NewProduct("ScratchCard", d(50), 10)
}

func expiredMilk() *domain.Product {
	return domain.NewProduct("Milk", d(20), 10).
		WithExpiry(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)).
		Shippable(d(1000))
}

// shipperSpy records what the cart hands to shipping
type shipperSpy struct {
	calls [][]domain.ShippableUnit
}

func (s *shipperSpy) Ship(_ context.Context, units []domain.ShippableUnit) *domain.Manifest {
	s.calls = append(s.calls, units)
	return shipping.BuildManifest(units)
}

type fixture struct {
	cart     *Cart
	rec      *report.Recorder
	shipping *shipperSpy
}

func setupCart(opts Options) *fixture {
	rec := report.NewRecorder()
	spy := &shipperSpy{}
	return &fixture{
		cart:     NewCart(clock.Fixed(testNow), rec, rec, spy, opts),
		rec:      rec,
		shipping: spy,
	}
}
