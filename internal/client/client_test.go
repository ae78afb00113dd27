package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imanol-10/kmanager/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second)
}

func TestListProducts(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]domain.Product{
			{ID: 1, Name: "Cola", SaleType: domain.SaleTypeUnit},
			{ID: 2, Name: "Rice", SaleType: domain.SaleTypeWeight},
		})
	})

	products, err := c.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Cola", products[0].Name)
}

func TestSubmitSale_SendsPayload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/sales", r.URL.Path)

		var got struct {
			TenderType string                     `json:"tender_type"`
			Items      map[string]decimal.Decimal `json:"items"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "CASH", got.TenderType)
		require.Len(t, got.Items, 1)
		assert.True(t, got.Items["2"].Equal(decimal.RequireFromString("1.5")))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(domain.SaleReceipt{
			ID:         7,
			TenderType: domain.TenderCash,
			Total:      decimal.NewFromInt(300),
		})
	})

	receipt, err := c.SubmitSale(context.Background(), domain.SaleRequest{
		TenderType: domain.TenderCash,
		Items:      map[int64]decimal.Decimal{2: decimal.RequireFromString("1.5")},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), receipt.ID)
	assert.True(t, receipt.Total.Equal(decimal.NewFromInt(300)))
}

func TestSearchByName(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/search/name", r.URL.Path)
		assert.Equal(t, "col", r.URL.Query().Get("text"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]domain.Product{{ID: 1, Name: "Cola"}})
	})

	products, err := c.SearchByName(context.Background(), "col")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Cola", products[0].Name)
}

func TestTranslate_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "product not found"})
	})

	_, err := c.GetProduct(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "product not found")
}

func TestTranslate_ServerValidation(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "insufficient stock"})
	})

	_, err := c.SubmitSale(context.Background(), domain.SaleRequest{TenderType: domain.TenderCard})
	assert.ErrorIs(t, err, ErrServerValidation)
	assert.Contains(t, err.Error(), "insufficient stock")
}

func TestTranslate_Unavailable(t *testing.T) {
	// point at a closed listener
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()
	c := New(srv.URL, time.Second)

	_, err := c.ListProducts(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestAdjustStock(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/products/3/stock", r.URL.Path)

		var body map[string]decimal.Decimal
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.True(t, body["quantity"].Equal(decimal.NewFromInt(-2)))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(domain.Product{ID: 3, CurrentStock: decimal.NewFromInt(8)})
	})

	product, err := c.AdjustStock(context.Background(), 3, decimal.NewFromInt(-2))
	require.NoError(t, err)
	assert.True(t, product.CurrentStock.Equal(decimal.NewFromInt(8)))
}

func TestLowStockCount(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reports/low-stock/count", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("4"))
	})

	count, err := c.LowStockCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}
