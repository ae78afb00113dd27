package client

import (
	"context"
	"fmt"

	"github.com/imanol-10/kmanager/internal/domain"
)

// LowStock lists products whose current stock fell below their minimum.
func (c *Client) LowStock(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	resp, err := c.request().
		SetContext(ctx).
		SetResult(&products).
		Get("/reports/low-stock")
	if err := translate(resp, err); err != nil {
		return nil, fmt.Errorf("low stock report: %w", err)
	}
	return products, nil
}

func (c *Client) LowStockCount(ctx context.Context) (int, error) {
	var count int
	resp, err := c.request().
		SetContext(ctx).
		SetResult(&count).
		Get("/reports/low-stock/count")
	if err := translate(resp, err); err != nil {
		return 0, fmt.Errorf("low stock count: %w", err)
	}
	return count, nil
}
