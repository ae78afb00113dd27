package server

import (
	"context"
	"net/http"

	"github.com/imanol-10/kmanager/internal/domain"
)

// ReportsClient is the slice of the store-service client backing the
// dashboard views.
type ReportsClient interface {
	LowStock(ctx context.Context) ([]domain.Product, error)
	LowStockCount(ctx context.Context) (int, error)
	DailySales(ctx context.Context) ([]domain.SaleReceipt, error)
	LatestSales(ctx context.Context) ([]domain.SaleReceipt, error)
	DailyTotal(ctx context.Context) (*domain.DailyTotal, error)
	SalesByTender(ctx context.Context, tender domain.TenderType) ([]domain.SaleReceipt, error)
}

type ReportsHandler struct {
	remote ReportsClient
}

func NewReportsHandler(remote ReportsClient) *ReportsHandler {
	return &ReportsHandler{remote: remote}
}

func (h *ReportsHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	products, err := h.remote.LowStock(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *ReportsHandler) LowStockCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.remote.LowStockCount(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"count": count})
}

func (h *ReportsHandler) DailySales(w http.ResponseWriter, r *http.Request) {
	sales, err := h.remote.DailySales(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sales)
}

func (h *ReportsHandler) LatestSales(w http.ResponseWriter, r *http.Request) {
	sales, err := h.remote.LatestSales(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sales)
}

func (h *ReportsHandler) SalesByTender(w http.ResponseWriter, r *http.Request) {
	tender, err := domain.ParseTenderType(r.URL.Query().Get("tender"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "unknown_tender", err.Error())
		return
	}

	sales, err := h.remote.SalesByTender(r.Context(), tender)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sales)
}

func (h *ReportsHandler) DailyTotal(w http.ResponseWriter, r *http.Request) {
	total, err := h.remote.DailyTotal(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, total)
}
