package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/fjod/go_checkout/internal/clock"
	"github.com/fjod/go_checkout/internal/domain"
	"github.com/fjod/go_checkout/internal/report"
	"github.com/fjod/go_checkout/internal/service"
	"github.com/fjod/go_checkout/internal/shipping"
	"github.com/fjod/go_checkout/internal/store"
	"github.com/fjod/go_checkout/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CartFactory builds a cart whose display and reporter write to out
type CartFactory func(out *report.Recorder) *service.Cart

// NewCartFactory wires carts to a shipping service, mirroring every line to the log.
// The shipping service does not publish; CartHandler publishes once the cart is released.
func NewCartFactory(clk clock.Clock, opts service.Options, log *zap.Logger) CartFactory {
	if log == nil {
		log = zap.NewNop()
	}
	return func(out *report.Recorder) *service.Cart {
		display := report.Multi{out, report.NewZapDisplay(log)}
		reporter := report.Reporters{out, report.NewZapReporter(log)}
		shipper := shipping.NewService(display, nil, log)
		return service.NewCart(clk, reporter, display, shipper, opts)
	}
}

type CartHandler struct {
	store     store.Store
	newCart   CartFactory
	publisher shipping.Publisher
	timeout   time.Duration
	logger    *zap.Logger
}

// NewCartHandler creates the cart handler. publisher may be nil.
func NewCartHandler(s store.Store, newCart CartFactory, publisher shipping.Publisher, timeout time.Duration, log *zap.Logger) *CartHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &CartHandler{
		store:     s,
		newCart:   newCart,
		publisher: publisher,
		timeout:   timeout,
		logger:    log,
	}
}

type AddItemRequestDTO struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

type CheckoutRequestDTO struct {
	CustomerID string `json:"customer_id"`
}

type LineItemResponse struct {
	Product  string          `json:"product"`
	Quantity int             `json:"quantity"`
	Amount   decimal.Decimal `json:"amount"`
}

type CartResponse struct {
	ID    string             `json:"id"`
	Items []LineItemResponse `json:"items"`
}

type AddItemResponse struct {
	CartResponse
	Outcome  string   `json:"outcome"`
	Warnings []string `json:"warnings,omitempty"`
}

type CheckoutResponse struct {
	Lines        []LineItemResponse `json:"lines"`
	Subtotal     decimal.Decimal    `json:"subtotal"`
	Shipping     decimal.Decimal    `json:"shipping"`
	Total        decimal.Decimal    `json:"total"`
	BalanceAfter decimal.Decimal    `json:"balance_after"`
	Manifest     *domain.Manifest   `json:"manifest,omitempty"`
	Printout     []string           `json:"printout"`
}

func toCartResponse(session *store.CartSession) CartResponse {
	items := session.Cart.Items()
	resp := CartResponse{ID: session.ID, Items: make([]LineItemResponse, len(items))}
	for i, item := range items {
		resp.Items[i] = LineItemResponse{
			Product:  item.Product.Name,
			Quantity: item.Quantity,
			Amount:   item.Product.LineTotal(item.Quantity),
		}
	}
	return resp
}

func (h *CartHandler) Create(w http.ResponseWriter, r *http.Request) {
	out := report.NewRecorder()
	id := h.store.CreateCart(h.newCart(out), out)

	respondJSON(w, http.StatusCreated, CartResponse{ID: id, Items: []LineItemResponse{}})
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	var resp CartResponse
	err := h.store.WithCart(chi.URLParam(r, "id"), func(session *store.CartSession) error {
		resp = toCartResponse(session)
		return nil
	})
	if err != nil {
		handleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

func (h *CartHandler) publish(ctx context.Context, manifest *domain.Manifest) {
	if h.publisher == nil || manifest == nil {
		return
	}
	if err := h.publisher.Publish(ctx, manifest); err != nil {
		logger.WithContext(ctx, h.logger).Warn("manifest publish failed",
			zap.String("manifest_id", manifest.ID),
			zap.Error(err))
	}
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	// Validate request
	if req.Product == "" {
		respondError(w, http.StatusBadRequest, "invalid_product", "product is required")
		return
	}
	if req.Quantity <= 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	product, err := h.store.Product(req.Product)
	if err != nil {
		handleError(w, err)
		return
	}

	var result service.AddResult
	var resp AddItemResponse
	err = h.store.WithCart(chi.URLParam(r, "id"), func(session *store.CartSession) error {
		session.Output.Reset()
		result = session.Cart.Add(product, req.Quantity)
		resp = AddItemResponse{
			CartResponse: toCartResponse(session),
			Outcome:      result.Outcome.String(),
			Warnings:     session.Output.Errors(),
		}
		return nil
	})
	if err != nil {
		handleError(w, err)
		return
	}

	if !result.Added() {
		handleError(w, result.Reason)
		return
	}

	respondJSON(w, http.StatusCreated, resp)
}

func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.CustomerID == "" {
		respondError(w, http.StatusBadRequest, "invalid_customer_id", "customer_id is required")
		return
	}

	var resp CheckoutResponse
	err := h.store.WithCartAndCustomer(chi.URLParam(r, "id"), req.CustomerID,
		func(session *store.CartSession, customer *domain.Customer) error {
			session.Output.Reset()
			receipt, err := session.Cart.Checkout(ctx, customer)
			if err != nil {
				return err
			}

			resp = CheckoutResponse{
				Lines:        make([]LineItemResponse, len(receipt.Lines)),
				Subtotal:     receipt.Subtotal,
				Shipping:     receipt.ShippingFees,
				Total:        receipt.Total,
				BalanceAfter: receipt.BalanceAfter,
				Manifest:     receipt.Manifest,
				Printout:     session.Output.Lines(),
			}
			for i, l := range receipt.Lines {
				resp.Lines[i] = LineItemResponse{Product: l.Name, Quantity: l.Quantity, Amount: l.Amount}
			}
			return nil
		})
	if err != nil {
		handleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}
