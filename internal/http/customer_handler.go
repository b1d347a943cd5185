package http

import (
	"encoding/json"
	"net/http"

	"github.com/fjod/go_checkout/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type CustomerHandler struct {
	store store.Store
}

func NewCustomerHandler(s store.Store) *CustomerHandler {
	return &CustomerHandler{store: s}
}

type CreateCustomerRequestDTO struct {
	Balance decimal.Decimal `json:"balance"`
}

type CustomerResponse struct {
	ID      string          `json:"id"`
	Balance decimal.Decimal `json:"balance"`
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCustomerRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Balance.IsNegative() {
		respondError(w, http.StatusBadRequest, "invalid_balance", "balance must not be negative")
		return
	}

	id := h.store.CreateCustomer(req.Balance)
	respondJSON(w, http.StatusCreated, CustomerResponse{ID: id, Balance: req.Balance})
}

func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	balance, err := h.store.CustomerBalance(id)
	if err != nil {
		handleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, CustomerResponse{ID: id, Balance: balance})
}
