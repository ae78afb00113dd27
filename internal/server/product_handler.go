package server

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/imanol-10/kmanager/internal/cart"
	"github.com/imanol-10/kmanager/internal/catalog"
	"github.com/imanol-10/kmanager/internal/domain"
	"github.com/imanol-10/kmanager/internal/quantity"
)

// BarcodeSearcher is the slice of the store-service client the product
// handler needs beyond the local snapshot; barcode lookups always go to
// the server because scanned codes may not be in the cached page.
type BarcodeSearcher interface {
	SearchByBarcode(ctx context.Context, code string) (*domain.Product, error)
}

type ProductHandler struct {
	view     *catalog.View
	barcodes BarcodeSearcher
}

func NewProductHandler(view *catalog.View, barcodes BarcodeSearcher) *ProductHandler {
	return &ProductHandler{view: view, barcodes: barcodes}
}

// SearchBarcode resolves a scanned barcode to a product.
func (h *ProductHandler) SearchBarcode(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "code query parameter is required")
		return
	}

	product, err := h.barcodes.SearchByBarcode(r.Context(), code)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// List serves the checkout grid: the cached catalog filtered by the
// category and search query parameters. Category defaults to ALL.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		category = catalog.AllCategories
	}
	search := r.URL.Query().Get("search")

	respondJSON(w, http.StatusOK, h.view.Filtered(category, search))
}

func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories := append([]string{catalog.AllCategories}, h.view.Categories()...)
	respondJSON(w, http.StatusOK, categories)
}

func (h *ProductHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.view.Refresh(r.Context()); err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "refreshed"})
}

// QuantityOptions returns the weighing presets for one product so the UI
// can render the quantity picker: minimum increment, unit, quick picks and
// the price preview for the starting quantity.
func (h *ProductHandler) QuantityOptions(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseProductID(w, r)
	if !ok {
		return
	}

	product, found := h.view.FindProduct(productID)
	if !found {
		respondError(w, http.StatusNotFound, "not_found", "product not in catalog")
		return
	}

	resolver, err := quantity.NewResolver(cart.NewEngine(), product)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, quantityOptionsDTO{
		MinIncrement:  product.Step(),
		UnitOfMeasure: product.UnitOfMeasure,
		QuickPicks:    resolver.QuickPicks(),
		PreviewPrice:  resolver.PreviewPrice(),
	})
}

type quantityOptionsDTO struct {
	MinIncrement  decimal.Decimal   `json:"min_increment"`
	UnitOfMeasure string            `json:"unit_of_measure"`
	QuickPicks    []decimal.Decimal `json:"quick_picks"`
	PreviewPrice  decimal.Decimal   `json:"preview_price"`
}

func parseProductID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "product_id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return 0, false
	}
	return id, true
}
