package client

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/imanol-10/kmanager/internal/domain"
)

func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	resp, err := c.request().
		SetContext(ctx).
		SetResult(&products).
		Get("/products")
	if err := translate(resp, err); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var product domain.Product
	resp, err := c.request().
		SetContext(ctx).
		SetResult(&product).
		Get(fmt.Sprintf("/products/%d", id))
	if err := translate(resp, err); err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return &product, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	resp, err := c.request().
		SetContext(ctx).
		SetResult(&categories).
		Get("/products/categories")
	if err := translate(resp, err); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (c *Client) SearchByName(ctx context.Context, text string) ([]domain.Product, error) {
	var products []domain.Product
	resp, err := c.request().
		SetContext(ctx).
		SetQueryParam("text", text).
		SetResult(&products).
		Get("/products/search/name")
	if err := translate(resp, err); err != nil {
		return nil, fmt.Errorf("search products by name: %w", err)
	}
	return products, nil
}

func (c *Client) SearchByBarcode(ctx context.Context, code string) (*domain.Product, error) {
	var product domain.Product
	resp, err := c.request().
		SetContext(ctx).
		SetQueryParam("code", code).
		SetResult(&product).
		Get("/products/search/barcode")
	if err := translate(resp, err); err != nil {
		return nil, fmt.Errorf("search product by barcode: %w", err)
	}
	return &product, nil
}

func (c *Client) CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	var created domain.Product
	resp, err := c.request().
		SetContext(ctx).
		SetBody(product).
		SetResult(&created).
		Post("/products")
	if err := translate(resp, err); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &created, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, product domain.Product) (*domain.Product, error) {
	var updated domain.Product
	resp, err := c.request().
		SetContext(ctx).
		SetBody(product).
		SetResult(&updated).
		Put(fmt.Sprintf("/products/%d", id))
	if err := translate(resp, err); err != nil {
		return nil, fmt.Errorf("update product %d: %w", id, err)
	}
	return &updated, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	resp, err := c.request().
		SetContext(ctx).
		Delete(fmt.Sprintf("/products/%d", id))
	if err := translate(resp, err); err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	return nil
}

// AdjustStock applies a signed delta to a product's stock on the catalog
// service. Used by inventory management, never by checkout.
func (c *Client) AdjustStock(ctx context.Context, id int64, delta decimal.Decimal) (*domain.Product, error) {
	var product domain.Product
	resp, err := c.request().
		SetContext(ctx).
		SetBody(map[string]decimal.Decimal{"quantity": delta}).
		SetResult(&product).
		Patch(fmt.Sprintf("/products/%d/stock", id))
	if err := translate(resp, err); err != nil {
		return nil, fmt.Errorf("adjust stock for product %d: %w", id, err)
	}
	return &product, nil
}
