package domain

import "github.com/shopspring/decimal"

type SaleType string

const (
	SaleTypeUnit   SaleType = "UNIT"
	SaleTypeWeight SaleType = "WEIGHT"
)

// Product is a read-only snapshot of a catalog entry as the remote
// catalog service last reported it. The terminal never mutates it.
type Product struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	SellPrice     decimal.Decimal `json:"sell_price"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	CurrentStock  decimal.Decimal `json:"current_stock"`
	MinStock      decimal.Decimal `json:"min_stock"`
	SaleType      SaleType        `json:"sale_type"`
	UnitOfMeasure string          `json:"unit_of_measure,omitempty"`
	MinIncrement  decimal.Decimal `json:"min_increment"`
	Barcode       string          `json:"barcode,omitempty"`
	ImageURL      string          `json:"image_url,omitempty"`
}

var (
	defaultUnitStep   = decimal.NewFromInt(1)
	defaultWeightStep = decimal.RequireFromString("0.5")
)

// Step returns the quantity granularity for the product: the configured
// minimum increment for weight goods (0.5 when the catalog omits it),
// always 1 for unit goods.
func (p Product) Step() decimal.Decimal {
	if p.SaleType == SaleTypeWeight {
		if p.MinIncrement.IsPositive() {
			return p.MinIncrement
		}
		return defaultWeightStep
	}
	return defaultUnitStep
}
