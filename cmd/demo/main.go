package main

import (
	"context"
	"os"
	"time"

	"github.com/fjod/go_checkout/internal/clock"
	"github.com/fjod/go_checkout/internal/domain"
	"github.com/fjod/go_checkout/internal/report"
	"github.com/fjod/go_checkout/internal/service"
	"github.com/fjod/go_checkout/internal/shipping"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	display := report.NewWriterDisplay(os.Stdout)
	reporter := report.NewWriterReporter(os.Stderr)
	shipper := shipping.NewService(display, nil, zap.NewNop())

	cart := service.NewCart(clock.System{}, reporter, display, shipper, service.DefaultOptions())

	cheese := domain.NewProduct("Cheese", decimal.NewFromInt(100), 10).
		WithExpiry(time.Now().AddDate(0, 6, 0)).
		Shippable(decimal.NewFromInt(200))
	tv := domain.NewProduct("TV", decimal.NewFromInt(3000), 5).
		Shippable(decimal.NewFromInt(5000))
	scratchCard := domain.NewProduct("ScratchCard", decimal.NewFromInt(50), 10)

	customer := domain.NewCustomer(decimal.NewFromInt(10000))

	cart.Add(cheese, 2)
	cart.Add(tv, 3)
	cart.Add(scratchCard, 1)

	// failures were already written to stderr by the reporter
	if _, err := cart.Checkout(context.Background(), customer); err != nil {
		os.Exit(1)
	}
}
