package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/imanol-10/kmanager/internal/catalog"
	"github.com/imanol-10/kmanager/internal/client"
	"github.com/imanol-10/kmanager/internal/domain"
)

// InventoryClient is the slice of the store-service client used by
// inventory management.
type InventoryClient interface {
	CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, product domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	AdjustStock(ctx context.Context, id int64, delta decimal.Decimal) (*domain.Product, error)
}

type InventoryHandler struct {
	remote InventoryClient
	view   *catalog.View
	log    *zap.Logger
}

func NewInventoryHandler(remote InventoryClient, view *catalog.View, log *zap.Logger) *InventoryHandler {
	return &InventoryHandler{remote: remote, view: view, log: log}
}

type adjustStockRequestDTO struct {
	Quantity decimal.Decimal `json:"quantity"`
}

func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var product domain.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	created, err := h.remote.CreateProduct(r.Context(), product)
	if err != nil {
		h.reconcile(w, r, err)
		return
	}

	h.refresh(r.Context())
	respondJSON(w, http.StatusCreated, created)
}

func (h *InventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseProductID(w, r)
	if !ok {
		return
	}

	var product domain.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	updated, err := h.remote.UpdateProduct(r.Context(), productID, product)
	if err != nil {
		h.reconcile(w, r, err)
		return
	}

	h.refresh(r.Context())
	respondJSON(w, http.StatusOK, updated)
}

func (h *InventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseProductID(w, r)
	if !ok {
		return
	}

	if err := h.remote.DeleteProduct(r.Context(), productID); err != nil {
		h.reconcile(w, r, err)
		return
	}

	h.refresh(r.Context())
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// AdjustStock applies a signed stock delta on the catalog service.
func (h *InventoryHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseProductID(w, r)
	if !ok {
		return
	}

	var req adjustStockRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	product, err := h.remote.AdjustStock(r.Context(), productID, req.Quantity)
	if err != nil {
		h.reconcile(w, r, err)
		return
	}

	h.refresh(r.Context())
	respondJSON(w, http.StatusOK, product)
}

// reconcile reports the remote error and, when the server's truth clearly
// diverged from the cached catalog (entity gone, payload rejected),
// refreshes the snapshot so the terminal converges on the server state.
func (h *InventoryHandler) reconcile(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, client.ErrNotFound) || errors.Is(err, client.ErrServerValidation) {
		h.refresh(r.Context())
	}
	handleDomainError(w, err)
}

func (h *InventoryHandler) refresh(ctx context.Context) {
	if err := h.view.Refresh(ctx); err != nil {
		h.log.Warn("catalog refresh after inventory change failed", zap.Error(err))
	}
}
