package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleRequest is the payload submitted to the sales service: the chosen
// tender plus a product-id to quantity map captured from the cart.
type SaleRequest struct {
	TenderType TenderType                `json:"tender_type"`
	Items      map[int64]decimal.Decimal `json:"items"`
}

type SaleItem struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SaleReceipt is the sales service's record of a confirmed sale.
type SaleReceipt struct {
	ID         int64           `json:"id"`
	TenderType TenderType      `json:"tender_type"`
	Total      decimal.Decimal `json:"total"`
	Timestamp  time.Time       `json:"timestamp"`
	Items      []SaleItem      `json:"items"`
}

type DailyTotal struct {
	Total decimal.Decimal `json:"total"`
}
