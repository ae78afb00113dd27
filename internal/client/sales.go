package client

import (
	"context"
	"fmt"

	"github.com/imanol-10/kmanager/internal/domain"
)

// SubmitSale registers a completed sale. The sales service decrements
// stock server-side as part of the same transaction, which is the
// authoritative stock check; a validation error here must be believed even
// when the terminal's cached stock said the sale should fit.
func (c *Client) SubmitSale(ctx context.Context, sale domain.SaleRequest) (*domain.SaleReceipt, error) {
	var receipt domain.SaleReceipt
	resp, err := c.request().
		SetContext(ctx).
		SetBody(sale).
		SetResult(&receipt).
		Post("/sales")
	if err := translate(resp, err); err != nil {
		return nil, fmt.Errorf("submit sale: %w", err)
	}
	return &receipt, nil
}

func (c *Client) DailySales(ctx context.Context) ([]domain.SaleReceipt, error) {
	var sales []domain.SaleReceipt
	resp, err := c.request().
		SetContext(ctx).
		SetResult(&sales).
		Get("/sales/daily")
	if err := translate(resp, err); err != nil {
		return nil, fmt.Errorf("daily sales: %w", err)
	}
	return sales, nil
}

func (c *Client) LatestSales(ctx context.Context) ([]domain.SaleReceipt, error) {
	var sales []domain.SaleReceipt
	resp, err := c.request().
		SetContext(ctx).
		SetResult(&sales).
		Get("/sales/latest")
	if err := translate(resp, err); err != nil {
		return nil, fmt.Errorf("latest sales: %w", err)
	}
	return sales, nil
}

func (c *Client) DailyTotal(ctx context.Context) (*domain.DailyTotal, error) {
	var total domain.DailyTotal
	resp, err := c.request().
		SetContext(ctx).
		SetResult(&total).
		Get("/sales/total/daily")
	if err := translate(resp, err); err != nil {
		return nil, fmt.Errorf("daily total: %w", err)
	}
	return &total, nil
}

func (c *Client) SalesByTender(ctx context.Context, tender domain.TenderType) ([]domain.SaleReceipt, error) {
	var sales []domain.SaleReceipt
	resp, err := c.request().
		SetContext(ctx).
		SetQueryParam("tender", string(tender)).
		SetResult(&sales).
		Get("/sales/tender")
	if err := translate(resp, err); err != nil {
		return nil, fmt.Errorf("sales by tender: %w", err)
	}
	return sales, nil
}
