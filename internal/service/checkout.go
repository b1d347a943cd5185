package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/fjod/go_checkout/internal/domain"
	"github.com/fjod/go_checkout/internal/report"
	"github.com/shopspring/decimal"
)

// ReceiptLine is one printed line item. Amount always uses the line's own product.
type ReceiptLine struct {
	Name     string
	Quantity int
	Amount   decimal.Decimal
}

// Receipt is the outcome of a successful checkout
type Receipt struct {
	Lines        []ReceiptLine
	Subtotal     decimal.Decimal
	ShippingFees decimal.Decimal
	Total        decimal.Decimal
	BalanceAfter decimal.Decimal
	Manifest     *domain.Manifest // nil when nothing ships
	Printout     []string         // receipt lines as written to the Display
}

type pricing struct {
	subtotal     decimal.Decimal
	shippingFees decimal.Decimal
	units        []domain.ShippableUnit
}

func (p pricing) total() decimal.Decimal {
	return p.subtotal.Add(p.shippingFees)
}

// Checkout prices the cart, ships physical goods, prints the receipt and
// settles with the customer. ErrEmptyCart and ErrInsufficientBalance abort
// before anything is shipped, printed or settled.
func (c *Cart) Checkout(ctx context.Context, customer *domain.Customer) (*Receipt, error) {
	if len(c.items) == 0 {
		c.reporter.ReportError("Cart is empty")
		return nil, ErrEmptyCart
	}

	p := c.price()
	total := p.total()

	if !customer.CanAfford(total) {
		c.reporter.ReportError("Insufficient balance.")
		return nil, ErrInsufficientBalance
	}

	receipt := &Receipt{
		Lines:        make([]ReceiptLine, 0, len(c.items)),
		Subtotal:     p.subtotal,
		ShippingFees: p.shippingFees,
		Total:        total,
	}

	if len(p.units) > 0 {
		receipt.Manifest = c.shipper.Ship(ctx, p.units)
	}

	for _, item := range c.items {
		receipt.Lines = append(receipt.Lines, ReceiptLine{
			Name:     item.Product.Name,
			Quantity: item.Quantity,
			Amount:   item.Product.LineTotal(item.Quantity),
		})
	}
	c.print(receipt, FormatReceipt(receipt))

	c.settle(customer, total)
	receipt.BalanceAfter = customer.Balance()
	c.print(receipt, FormatBalance(receipt.BalanceAfter))

	return receipt, nil
}

// price walks the line items once. Under SubtotalLastLine every line overwrites
// the subtotal, so only the last line item's total survives.
func (c *Cart) price() pricing {
	p := pricing{subtotal: decimal.Zero, shippingFees: decimal.Zero}

	for _, item := range c.items {
		lineTotal := item.Product.LineTotal(item.Quantity)
		if c.opts.Subtotal == SubtotalSum {
			p.subtotal = p.subtotal.Add(lineTotal)
		} else {
			p.subtotal = lineTotal
		}

		if item.Product.RequiresShipping {
			for i := 0; i < item.Quantity; i++ {
				p.units = append(p.units, domain.ShippableUnit{
					Name:   item.Product.Name,
					Weight: item.Product.UnitWeight(),
				})
			}
			p.shippingFees = p.shippingFees.Add(c.opts.Fee())
		}
	}

	return p
}

func (c *Cart) settle(customer *domain.Customer, total decimal.Decimal) {
	if c.opts.Settlement == SettlementDebit {
		customer.Debit(total)
	}
}

func (c *Cart) print(receipt *Receipt, lines []string) {
	for _, line := range lines {
		c.display.WriteLine(line)
	}
	receipt.Printout = append(receipt.Printout, lines...)
}

// FormatReceipt renders the receipt body without the balance footer
func FormatReceipt(r *Receipt) []string {
	lines := make([]string, 0, len(r.Lines)+6)
	lines = append(lines, "", "** Checkout receipt")
	for _, l := range r.Lines {
		lines = append(lines, report.Row(fmt.Sprintf("%dx %s", l.Quantity, l.Name), l.Amount.String()))
	}
	lines = append(lines,
		strings.Repeat("-", 22),
		report.Row("Subtotal", r.Subtotal.String()),
		report.Row("Shipping", r.ShippingFees.String()),
		report.Row("Amount", r.Total.String()),
	)
	return lines
}

// FormatBalance renders the footer printed after settlement
func FormatBalance(balance decimal.Decimal) []string {
	return []string{"", fmt.Sprintf("Customer Balance after payment: %s", balance.String())}
}
