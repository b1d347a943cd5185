package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fjod/go_checkout/internal/domain"
	"github.com/fjod/go_checkout/internal/service"
	"github.com/fjod/go_checkout/internal/store"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.L().Warn("failed to encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleError converts store, domain and checkout errors to HTTP status codes
func handleError(w http.ResponseWriter, err error) {
	var httpStatus int
	var code string

	switch {
	case errors.Is(err, store.ErrProductNotFound),
		errors.Is(err, store.ErrCustomerNotFound),
		errors.Is(err, store.ErrCartNotFound):
		httpStatus = http.StatusNotFound
		code = "not_found"
	case errors.Is(err, store.ErrProductExists):
		httpStatus = http.StatusConflict
		code = "already_exists"
	case errors.Is(err, service.ErrOutOfStock):
		httpStatus = http.StatusConflict
		code = "out_of_stock"
	case errors.Is(err, service.ErrExpiredProduct):
		httpStatus = http.StatusConflict
		code = "expired"
	case errors.Is(err, service.ErrEmptyCart):
		httpStatus = http.StatusUnprocessableEntity
		code = "empty_cart"
	case errors.Is(err, service.ErrInsufficientBalance):
		httpStatus = http.StatusUnprocessableEntity
		code = "insufficient_balance"
	case errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, domain.ErrProductNameRequired),
		errors.Is(err, domain.ErrNegativePrice),
		errors.Is(err, domain.ErrNegativeQuantity),
		errors.Is(err, domain.ErrNegativeWeight),
		errors.Is(err, domain.ErrInvalidExpiry):
		httpStatus = http.StatusBadRequest
		code = "invalid_argument"
	default:
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	respondError(w, httpStatus, code, err.Error())
}
