package server

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/imanol-10/kmanager/internal/cart"
	"github.com/imanol-10/kmanager/internal/catalog"
	"github.com/imanol-10/kmanager/internal/quantity"
)

type CartHandler struct {
	engine *cart.Engine
	view   *catalog.View
}

func NewCartHandler(engine *cart.Engine, view *catalog.View) *CartHandler {
	return &CartHandler{engine: engine, view: view}
}

type addUnitRequestDTO struct {
	ProductID int64 `json:"product_id"`
}

type addWeightRequestDTO struct {
	ProductID int64            `json:"product_id"`
	Quantity  *decimal.Decimal `json:"quantity,omitempty"`
	QuickPick *decimal.Decimal `json:"quick_pick,omitempty"`
}

type adjustRequestDTO struct {
	Direction int `json:"direction"`
}

type lineDTO struct {
	ProductID     int64           `json:"product_id"`
	Name          string          `json:"name"`
	SaleType      string          `json:"sale_type"`
	UnitOfMeasure string          `json:"unit_of_measure,omitempty"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Quantity      decimal.Decimal `json:"quantity"`
	Subtotal      decimal.Decimal `json:"subtotal"`
}

type cartResponseDTO struct {
	Lines     []lineDTO       `json:"lines"`
	LineCount int             `json:"line_count"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Total     decimal.Decimal `json:"total"`
}

func (h *CartHandler) cartResponse() cartResponseDTO {
	lines := h.engine.Lines()
	out := make([]lineDTO, 0, len(lines))
	for _, line := range lines {
		out = append(out, lineDTO{
			ProductID:     line.Product.ID,
			Name:          line.Product.Name,
			SaleType:      string(line.Product.SaleType),
			UnitOfMeasure: line.Product.UnitOfMeasure,
			UnitPrice:     line.Product.SellPrice,
			Quantity:      line.Quantity,
			Subtotal:      line.Subtotal(),
		})
	}
	total := h.engine.Total()
	return cartResponseDTO{
		Lines:     out,
		LineCount: h.engine.LineCount(),
		Subtotal:  total,
		Total:     total,
	}
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.cartResponse())
}

// AddUnit adds one unit of a unit-sold product to the cart.
func (h *CartHandler) AddUnit(w http.ResponseWriter, r *http.Request) {
	var req addUnitRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}

	product, ok := h.view.FindProduct(req.ProductID)
	if !ok {
		respondError(w, http.StatusNotFound, "not_found", "product not in catalog")
		return
	}

	if err := h.engine.AddUnit(product); err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, h.cartResponse())
}

// AddWeight commits a weighed quantity through the quantity resolver:
// either a quick-pick preset or a directly entered value. With neither,
// the product's minimum increment is added.
func (h *CartHandler) AddWeight(w http.ResponseWriter, r *http.Request) {
	var req addWeightRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}
	if req.Quantity != nil && req.QuickPick != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "quantity and quick_pick are mutually exclusive")
		return
	}

	product, ok := h.view.FindProduct(req.ProductID)
	if !ok {
		respondError(w, http.StatusNotFound, "not_found", "product not in catalog")
		return
	}

	resolver, err := quantity.NewResolver(h.engine, product)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	switch {
	case req.QuickPick != nil:
		err = resolver.QuickPick(*req.QuickPick)
	case req.Quantity != nil:
		err = resolver.SetDirect(*req.Quantity)
	}
	if err != nil {
		handleDomainError(w, err)
		return
	}

	if err := resolver.Confirm(); err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, h.cartResponse())
}

// Adjust steps a line up or down by the product's granularity.
func (h *CartHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseProductID(w, r)
	if !ok {
		return
	}

	var req adjustRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Direction != 1 && req.Direction != -1 {
		respondError(w, http.StatusBadRequest, "invalid_direction", "direction must be 1 or -1")
		return
	}

	if err := h.engine.Adjust(productID, req.Direction); err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.cartResponse())
}

// Remove deletes a line unconditionally.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseProductID(w, r)
	if !ok {
		return
	}

	h.engine.Remove(productID)
	respondJSON(w, http.StatusOK, h.cartResponse())
}

// Clear abandons the current transaction.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.engine.Clear()
	respondJSON(w, http.StatusOK, h.cartResponse())
}
