package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/imanol-10/kmanager/internal/cart"
	"github.com/imanol-10/kmanager/internal/checkout"
	"github.com/imanol-10/kmanager/internal/client"
	"github.com/imanol-10/kmanager/internal/payment"
	"github.com/imanol-10/kmanager/internal/quantity"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleDomainError translates engine, payment, checkout and remote-client
// errors to HTTP status codes.
func handleDomainError(w http.ResponseWriter, err error) {
	var httpStatus int
	var code string

	switch {
	case errors.Is(err, cart.ErrInsufficientStock):
		httpStatus = http.StatusConflict
		code = "insufficient_stock"
	case errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, cart.ErrWrongSaleType),
		errors.Is(err, quantity.ErrNotWeightProduct),
		errors.Is(err, quantity.ErrBelowMinimum),
		errors.Is(err, quantity.ErrNotAQuickPick):
		httpStatus = http.StatusBadRequest
		code = "invalid_quantity"
	case errors.Is(err, cart.ErrLineNotFound):
		httpStatus = http.StatusNotFound
		code = "line_not_found"
	case errors.Is(err, payment.ErrInsufficientPayment):
		httpStatus = http.StatusUnprocessableEntity
		code = "insufficient_payment"
	case errors.Is(err, payment.ErrUnknownTender):
		httpStatus = http.StatusBadRequest
		code = "unknown_tender"
	case errors.Is(err, checkout.ErrEmptyCart):
		httpStatus = http.StatusConflict
		code = "empty_cart"
	case errors.Is(err, checkout.ErrNoPendingPayment):
		httpStatus = http.StatusConflict
		code = "no_pending_payment"
	case errors.Is(err, checkout.ErrSubmissionInFlight):
		httpStatus = http.StatusConflict
		code = "submission_in_flight"
	case errors.Is(err, client.ErrNotFound):
		httpStatus = http.StatusNotFound
		code = "not_found"
	case errors.Is(err, client.ErrServerValidation):
		httpStatus = http.StatusConflict
		code = "server_rejected"
	case errors.Is(err, client.ErrUnavailable):
		httpStatus = http.StatusServiceUnavailable
		code = "service_unavailable"
	default:
		httpStatus = http.StatusInternalServerError
		code = "internal_error"
	}

	respondError(w, httpStatus, code, err.Error())
}
