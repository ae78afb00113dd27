// Package server exposes the terminal's HTTP API to the store UI.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/imanol-10/kmanager/internal/cart"
	"github.com/imanol-10/kmanager/internal/catalog"
	"github.com/imanol-10/kmanager/internal/checkout"
)

type Deps struct {
	Engine      *cart.Engine
	View        *catalog.View
	Coordinator *checkout.Coordinator
	Barcodes    BarcodeSearcher
	Inventory   InventoryClient
	Reports     ReportsClient
	Log         *zap.Logger

	RequestTimeout time.Duration
}

func NewRouter(deps Deps) http.Handler {
	products := NewProductHandler(deps.View, deps.Barcodes)
	carts := NewCartHandler(deps.Engine, deps.View)
	checkouts := NewCheckoutHandler(deps.Coordinator, deps.Engine)
	inventory := NewInventoryHandler(deps.Inventory, deps.View, deps.Log)
	reports := NewReportsHandler(deps.Reports)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(deps.RequestTimeout))
	r.Use(middleware.Compress(5))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", products.List)
			r.Get("/categories", products.Categories)
			r.Post("/refresh", products.Refresh)
			r.Get("/search/barcode", products.SearchBarcode)
			r.Get("/{product_id}/quantity-options", products.QuantityOptions)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", carts.Get)
			r.Delete("/", carts.Clear)
			r.Post("/items", carts.AddUnit)
			r.Post("/weight-items", carts.AddWeight)
			r.Post("/items/{product_id}/adjust", carts.Adjust)
			r.Delete("/items/{product_id}", carts.Remove)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/quote", checkouts.Quote)
			r.Get("/status", checkouts.Status)
			r.Post("/payment", checkouts.BeginPayment)
			r.Delete("/payment", checkouts.CancelPayment)
			r.Post("/submit", checkouts.Submit)
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Post("/products", inventory.Create)
			r.Put("/products/{product_id}", inventory.Update)
			r.Delete("/products/{product_id}", inventory.Delete)
			r.Patch("/products/{product_id}/stock", inventory.AdjustStock)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/low-stock", reports.LowStock)
			r.Get("/low-stock/count", reports.LowStockCount)
			r.Get("/sales/daily", reports.DailySales)
			r.Get("/sales/latest", reports.LatestSales)
			r.Get("/sales/tender", reports.SalesByTender)
			r.Get("/sales/total/daily", reports.DailyTotal)
		})
	})

	return r
}
