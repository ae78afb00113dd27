package server

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/imanol-10/kmanager/internal/cart"
	"github.com/imanol-10/kmanager/internal/checkout"
	"github.com/imanol-10/kmanager/internal/domain"
)

type CheckoutHandler struct {
	coordinator *checkout.Coordinator
	engine      *cart.Engine
}

func NewCheckoutHandler(coordinator *checkout.Coordinator, engine *cart.Engine) *CheckoutHandler {
	return &CheckoutHandler{coordinator: coordinator, engine: engine}
}

type beginPaymentRequestDTO struct {
	TenderType     string           `json:"tender_type"`
	AmountReceived *decimal.Decimal `json:"amount_received,omitempty"`
}

type quoteResponseDTO struct {
	Total          decimal.Decimal  `json:"total"`
	Status         string           `json:"status"`
	TenderType     string           `json:"tender_type,omitempty"`
	AmountReceived *decimal.Decimal `json:"amount_received,omitempty"`
	Change         decimal.Decimal  `json:"change"`
	CanSubmit      bool             `json:"can_submit"`
	Reason         string           `json:"reason,omitempty"`
}

// BeginPayment opens (or updates) the finalize step with the chosen
// tender and, for cash, the received amount.
func (h *CheckoutHandler) BeginPayment(w http.ResponseWriter, r *http.Request) {
	var req beginPaymentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	tender, err := domain.ParseTenderType(req.TenderType)
	if err != nil {
		respondError(w, http.StatusBadRequest, "unknown_tender", err.Error())
		return
	}

	if err := h.coordinator.BeginPayment(tender, req.AmountReceived); err != nil {
		handleDomainError(w, err)
		return
	}
	h.Quote(w, r)
}

// CancelPayment abandons the finalize step; the cart is untouched.
func (h *CheckoutHandler) CancelPayment(w http.ResponseWriter, r *http.Request) {
	if err := h.coordinator.CancelPayment(); err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

// Quote previews the finalize step: total, display change (clamped at
// zero) and whether a submission would pass local validation.
func (h *CheckoutHandler) Quote(w http.ResponseWriter, r *http.Request) {
	total := h.engine.Total()
	quote := quoteResponseDTO{
		Total:  total,
		Status: h.coordinator.Status().String(),
		Change: decimal.Zero.Round(2),
	}

	pending := h.coordinator.Pending()
	if pending == nil {
		quote.Reason = "no pending payment"
		respondJSON(w, http.StatusOK, quote)
		return
	}

	quote.TenderType = string(pending.Tender)
	quote.AmountReceived = pending.AmountReceived
	quote.Change = pending.DisplayChange(total)

	if h.engine.LineCount() == 0 {
		quote.Reason = "cart is empty"
	} else if err := pending.Validate(total); err != nil {
		quote.Reason = err.Error()
	} else {
		quote.CanSubmit = true
	}
	respondJSON(w, http.StatusOK, quote)
}

// Submit runs one submission attempt against the sales service.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	receipt, err := h.coordinator.Submit(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, receipt)
}

// Status reports the current submission state.
func (h *CheckoutHandler) Status(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": h.coordinator.Status().String(),
	})
}
