// Package catalog holds the terminal's read-only view of the remote
// product catalog and the checkout-facing filter over it.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/imanol-10/kmanager/internal/catalog/cache"
	"github.com/imanol-10/kmanager/internal/domain"
)

// AllCategories is the sentinel category filter matching every product.
const AllCategories = "ALL"

// Filter returns the products visible to checkout: matching category,
// name containing the search text case-insensitively, and positive stock.
// The result preserves the input order.
func Filter(products []domain.Product, category, search string) []domain.Product {
	needle := strings.ToLower(search)
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if category != "" && category != AllCategories && p.Category != category {
			continue
		}
		if !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		if !p.CurrentStock.IsPositive() {
			continue
		}
		out = append(out, p)
	}
	return out
}

type Client interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
}

// View caches the last-fetched product and category lists. Refreshes are
// coalesced through singleflight so concurrent handlers trigger a single
// round trip, and the snapshot cache lets a restarted terminal keep
// selling while the store service is unreachable.
type View struct {
	client Client
	cache  cache.SnapshotCache
	log    *zap.Logger
	sfg    singleflight.Group

	mu         sync.RWMutex
	products   []domain.Product
	categories []string
	loaded     bool
}

func NewView(client Client, snapshots cache.SnapshotCache, log *zap.Logger) *View {
	return &View{
		client: client,
		cache:  snapshots,
		log:    log,
	}
}

// Refresh pulls the catalog from the store service and replaces the local
// snapshot. On failure the previous snapshot (or a cached one, on a cold
// start) stays in place and the error is surfaced to the caller.
func (v *View) Refresh(ctx context.Context) error {
	_, err, _ := v.sfg.Do("catalog", func() (interface{}, error) {
		products, err := v.client.ListProducts(ctx)
		if err != nil {
			v.restoreFromCache(ctx)
			return nil, fmt.Errorf("refresh catalog: %w", err)
		}

		categories, err := v.client.ListCategories(ctx)
		if err != nil {
			v.restoreFromCache(ctx)
			return nil, fmt.Errorf("refresh categories: %w", err)
		}

		v.mu.Lock()
		v.products = products
		v.categories = categories
		v.loaded = true
		v.mu.Unlock()

		snapshot := &cache.Snapshot{
			Products:   products,
			Categories: categories,
			FetchedAt:  time.Now().UTC(),
		}
		if errSet := v.cache.Set(ctx, snapshot); errSet != nil {
			v.log.Warn("catalog snapshot cache set failed", zap.Error(errSet))
		}
		return nil, nil
	})
	return err
}

// restoreFromCache warms the view from the snapshot cache when the first
// fetch ever fails. An already-loaded view keeps its fresher state.
func (v *View) restoreFromCache(ctx context.Context) {
	v.mu.RLock()
	loaded := v.loaded
	v.mu.RUnlock()
	if loaded {
		return
	}

	snapshot, err := v.cache.Get(ctx)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			v.log.Warn("catalog snapshot cache get failed", zap.Error(err))
		}
		return
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.loaded {
		return
	}
	v.products = snapshot.Products
	v.categories = snapshot.Categories
	v.loaded = true
	v.log.Info("catalog restored from snapshot cache",
		zap.Time("fetched_at", snapshot.FetchedAt),
		zap.Int("products", len(snapshot.Products)))
}

// Products returns the full cached product list in server order.
func (v *View) Products() []domain.Product {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]domain.Product, len(v.products))
	copy(out, v.products)
	return out
}

func (v *View) Categories() []string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]string, len(v.categories))
	copy(out, v.categories)
	return out
}

// Filtered applies the checkout filter to the cached snapshot.
func (v *View) Filtered(category, search string) []domain.Product {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return Filter(v.products, category, search)
}

// FindProduct looks a product up in the cached snapshot.
func (v *View) FindProduct(id int64) (domain.Product, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	for _, p := range v.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}
