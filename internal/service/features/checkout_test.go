package features

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/fjod/go_checkout/internal/clock"
	"github.com/fjod/go_checkout/internal/domain"
	"github.com/fjod/go_checkout/internal/report"
	"github.com/fjod/go_checkout/internal/service"
	"github.com/fjod/go_checkout/internal/shipping"
	"github.com/shopspring/decimal"
)

type checkoutTestContext struct {
	now      time.Time
	opts     service.Options
	products map[string]*domain.Product
	customer *domain.Customer
	rec      *report.Recorder
	cart     *service.Cart
	receipt  *service.Receipt
	err      error
}

func (c *checkoutTestContext) reset() {
	c.now = time.Now()
	c.opts = service.DefaultOptions()
	c.products = make(map[string]*domain.Product)
	c.customer = nil
	c.rec = report.NewRecorder()
	c.cart = nil
	c.receipt = nil
	c.err = nil
}

// getCart builds the cart lazily so Given steps may still change the clock and options
func (c *checkoutTestContext) getCart() *service.Cart {
	if c.cart == nil {
		svc := shipping.NewService(c.rec, nil, nil)
		c.cart = service.NewCart(clock.Fixed(c.now), c.rec, c.rec, svc, c.opts)
	}
	return c.cart
}

func (c *checkoutTestContext) theDateIs(date string) error {
	t, err := domain.ParseExpiry(date)
	if err != nil {
		return err
	}
	c.now = t
	return nil
}

func (c *checkoutTestContext) aProduct(name string, price, stock int) error {
	c.products[name] = domain.NewProduct(name, decimal.NewFromInt(int64(price)), stock)
	return nil
}

func (c *checkoutTestContext) aShippableProduct(name string, price, stock, weight int) error {
	c.products[name] = domain.NewProduct(name, decimal.NewFromInt(int64(price)), stock).
		Shippable(decimal.NewFromInt(int64(weight)))
	return nil
}

func (c *checkoutTestContext) aPerishableProduct(name string, price, stock int, expiry string, weight int) error {
	t, err := domain.ParseExpiry(expiry)
	if err != nil {
		return err
	}
	c.products[name] = domain.NewProduct(name, decimal.NewFromInt(int64(price)), stock).
		WithExpiry(t).
		Shippable(decimal.NewFromInt(int64(weight)))
	return nil
}

func (c *checkoutTestContext) aCustomerWithBalance(balance int) error {
	c.customer = domain.NewCustomer(decimal.NewFromInt(int64(balance)))
	return nil
}

func (c *checkoutTestContext) subtotalsAreSummed() error {
	c.opts.Subtotal = service.SubtotalSum
	return nil
}

func (c *checkoutTestContext) checkoutDebitsTheCustomer() error {
	c.opts.Settlement = service.SettlementDebit
	return nil
}

func (c *checkoutTestContext) iAdd(quantity int, name string) error {
	p, ok := c.products[name]
	if !ok {
		return fmt.Errorf("unknown product %q", name)
	}
	c.getCart().Add(p, quantity)
	return nil
}

func (c *checkoutTestContext) iCheckOut() error {
	c.receipt, c.err = c.getCart().Checkout(context.Background(), c.customer)
	return nil
}

func (c *checkoutTestContext) theCheckoutSucceeds() error {
	if c.err != nil {
		return fmt.Errorf("expected checkout to succeed, got %v", c.err)
	}
	if c.receipt == nil {
		return errors.New("expected a receipt")
	}
	return nil
}

func (c *checkoutTestContext) theCheckoutFailsWith(substring string) error {
	if c.err == nil {
		return errors.New("expected checkout to fail but it succeeded")
	}
	if !strings.Contains(strings.ToLower(c.err.Error()), strings.ToLower(substring)) {
		return fmt.Errorf("expected error to contain %q, got %q", substring, c.err.Error())
	}
	return nil
}

func (c *checkoutTestContext) amountIs(field string, got decimal.Decimal, want int) error {
	if !got.Equal(decimal.NewFromInt(int64(want))) {
		return fmt.Errorf("expected %s %d, got %s", field, want, got.String())
	}
	return nil
}

func (c *checkoutTestContext) theSubtotalIs(want int) error {
	if err := c.theCheckoutSucceeds(); err != nil {
		return err
	}
	return c.amountIs("subtotal", c.receipt.Subtotal, want)
}

func (c *checkoutTestContext) theShippingFeeIs(want int) error {
	if err := c.theCheckoutSucceeds(); err != nil {
		return err
	}
	return c.amountIs("shipping fee", c.receipt.ShippingFees, want)
}

func (c *checkoutTestContext) theTotalIs(want int) error {
	if err := c.theCheckoutSucceeds(); err != nil {
		return err
	}
	return c.amountIs("total", c.receipt.Total, want)
}

func (c *checkoutTestContext) theCustomerBalanceIs(want int) error {
	return c.amountIs("balance", c.customer.Balance(), want)
}

func (c *checkoutTestContext) theManifestHas(count int, name string, weight int) error {
	if err := c.theCheckoutSucceeds(); err != nil {
		return err
	}
	if c.receipt.Manifest == nil {
		return errors.New("expected a manifest")
	}
	g, ok := c.receipt.Manifest.Group(name)
	if !ok {
		return fmt.Errorf("no manifest group %q", name)
	}
	if g.Count != count {
		return fmt.Errorf("expected %d x %s, got %d", count, name, g.Count)
	}
	return c.amountIs("weight", g.Weight, weight)
}

func (c *checkoutTestContext) theTotalPackageWeightIs(kg string) error {
	if c.receipt == nil || c.receipt.Manifest == nil {
		return errors.New("expected a manifest")
	}
	if got := c.receipt.Manifest.TotalKilograms().StringFixed(1); got != kg {
		return fmt.Errorf("expected %skg, got %skg", kg, got)
	}
	return nil
}

func (c *checkoutTestContext) theCartHasLineItems(n int) error {
	if got := c.getCart().Len(); got != n {
		return fmt.Errorf("expected %d line items, got %d", n, got)
	}
	return nil
}

func (c *checkoutTestContext) theReporterReceived(message string) error {
	for _, m := range c.rec.Errors() {
		if m == message {
			return nil
		}
	}
	return fmt.Errorf("expected reported %q, got %q", message, c.rec.Errors())
}

func (c *checkoutTestContext) nothingWasDisplayed() error {
	if lines := c.rec.Lines(); len(lines) > 0 {
		return fmt.Errorf("expected no display output, got %q", lines)
	}
	return nil
}

func (c *checkoutTestContext) theDisplayShows(doc *godog.DocString) error {
	want := strings.Trim(doc.Content, "\n")
	got := strings.Trim(strings.Join(c.rec.Lines(), "\n"), "\n")
	if got != want {
		return fmt.Errorf("display mismatch\nwant:\n%s\ngot:\n%s", want, got)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &checkoutTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^the date is "([^"]*)"$`, tc.theDateIs)
	ctx.Step(`^a product "([^"]*)" priced (\d+) with (\d+) in stock$`, tc.aProduct)
	ctx.Step(`^a product "([^"]*)" priced (\d+) with (\d+) in stock shipping at (\d+) grams$`, tc.aShippableProduct)
	ctx.Step(`^a product "([^"]*)" priced (\d+) with (\d+) in stock expiring "([^"]*)" shipping at (\d+) grams$`, tc.aPerishableProduct)
	ctx.Step(`^a customer with balance (\d+)$`, tc.aCustomerWithBalance)
	ctx.Step(`^subtotals are summed$`, tc.subtotalsAreSummed)
	ctx.Step(`^checkout debits the customer$`, tc.checkoutDebitsTheCustomer)

	// When steps
	ctx.Step(`^I add (\d+) of "([^"]*)"$`, tc.iAdd)
	ctx.Step(`^I check out$`, tc.iCheckOut)

	// Then steps
	ctx.Step(`^the checkout succeeds$`, tc.theCheckoutSucceeds)
	ctx.Step(`^the checkout fails with "([^"]*)"$`, tc.theCheckoutFailsWith)
	ctx.Step(`^the subtotal is (\d+)$`, tc.theSubtotalIs)
	ctx.Step(`^the shipping fee is (\d+)$`, tc.theShippingFeeIs)
	ctx.Step(`^the total is (\d+)$`, tc.theTotalIs)
	ctx.Step(`^the customer balance is (\d+)$`, tc.theCustomerBalanceIs)
	ctx.Step(`^the manifest has (\d+) x "([^"]*)" at (\d+) grams$`, tc.theManifestHas)
	ctx.Step(`^the total package weight is "([^"]*)" kg$`, tc.theTotalPackageWeightIs)
	ctx.Step(`^the cart has (\d+) line items$`, tc.theCartHasLineItems)
	ctx.Step(`^the reporter received "([^"]*)"$`, tc.theReporterReceived)
	ctx.Step(`^nothing was displayed$`, tc.nothingWasDisplayed)
	ctx.Step(`^the display shows:$`, tc.theDisplayShows)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"checkout.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
