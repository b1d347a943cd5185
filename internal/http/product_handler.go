package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/fjod/go_checkout/internal/domain"
	"github.com/fjod/go_checkout/internal/store"
	"github.com/shopspring/decimal"
)

// MaxStockQuantity bounds the stock a product can be registered with.
// Checkout expands every shipped unit, so stock also bounds that work.
const MaxStockQuantity = 100000

type ProductHandler struct {
	store store.Store
}

func NewProductHandler(s store.Store) *ProductHandler {
	return &ProductHandler{store: s}
}

type CreateProductRequestDTO struct {
	Name             string          `json:"name"`
	Price            decimal.Decimal `json:"price"`
	Quantity         int             `json:"quantity"`
	Expiry           string          `json:"expiry,omitempty"` // YYYY-MM-DD
	RequiresShipping bool            `json:"requires_shipping"`
	Weight           decimal.Decimal `json:"weight"` // grams
}

type ProductResponse struct {
	Name             string          `json:"name"`
	Price            decimal.Decimal `json:"price"`
	Quantity         int             `json:"quantity"`
	Expiry           string          `json:"expiry,omitempty"`
	RequiresShipping bool            `json:"requires_shipping"`
	Weight           decimal.Decimal `json:"weight"`
}

type ProductsResponse struct {
	Products []ProductResponse `json:"products"`
}

func toProductResponse(p *domain.Product) ProductResponse {
	resp := ProductResponse{
		Name:             p.Name,
		Price:            p.Price,
		Quantity:         p.Quantity,
		RequiresShipping: p.RequiresShipping,
		Weight:           p.UnitWeight(),
	}
	if p.Expiry != nil {
		resp.Expiry = p.Expiry.Format(domain.ExpiryLayout)
	}
	return resp
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.Quantity > MaxStockQuantity {
		respondError(w, http.StatusBadRequest, "invalid_quantity", fmt.Sprintf("quantity must not exceed %d", MaxStockQuantity))
		return
	}

	p := domain.NewProduct(req.Name, req.Price, req.Quantity)
	if req.Expiry != "" {
		expiry, err := domain.ParseExpiry(req.Expiry)
		if err != nil {
			handleError(w, err)
			return
		}
		p.WithExpiry(expiry)
	}
	if req.RequiresShipping {
		p.Shippable(req.Weight)
	}

	if err := h.store.AddProduct(p); err != nil {
		handleError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, toProductResponse(p))
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products := h.store.Products()

	resp := ProductsResponse{Products: make([]ProductResponse, len(products))}
	for i, p := range products {
		resp.Products[i] = toProductResponse(p)
	}

	respondJSON(w, http.StatusOK, resp)
}
