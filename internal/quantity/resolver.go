// Package quantity turns operator intent (step up/down, direct entry,
// quick pick) into a valid weighed quantity before it is committed to the
// cart.
package quantity

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/imanol-10/kmanager/internal/cart"
	"github.com/imanol-10/kmanager/internal/domain"
)

var (
	ErrNotWeightProduct = errors.New("quantity resolver only applies to weight-sold products")
	ErrBelowMinimum     = errors.New("quantity is below the minimum increment")
	ErrNotAQuickPick    = errors.New("value is not an available quick pick")
)

// quickPicks are the preset quantities offered to the operator. They are
// filtered against the product's minimum increment but are not required to
// be multiples of it.
var quickPicks = []decimal.Decimal{
	decimal.RequireFromString("0.25"),
	decimal.RequireFromString("0.5"),
	decimal.RequireFromString("0.75"),
	decimal.RequireFromString("1"),
	decimal.RequireFromString("1.5"),
	decimal.RequireFromString("2"),
	decimal.RequireFromString("2.5"),
	decimal.RequireFromString("3"),
}

// Resolver holds a working quantity for one weight-sold product. It starts
// at the minimum increment and never drops below it.
type Resolver struct {
	engine  *cart.Engine
	product domain.Product
	qty     decimal.Decimal
}

func NewResolver(engine *cart.Engine, product domain.Product) (*Resolver, error) {
	if product.SaleType != domain.SaleTypeWeight {
		return nil, ErrNotWeightProduct
	}
	return &Resolver{
		engine:  engine,
		product: product,
		qty:     product.Step(),
	}, nil
}

func (r *Resolver) Quantity() decimal.Decimal {
	return r.qty
}

// Increment steps the working quantity up by one increment.
func (r *Resolver) Increment() {
	r.qty = r.qty.Add(r.product.Step()).Round(2)
}

// Decrement steps the working quantity down by one increment, never below
// the increment itself.
func (r *Resolver) Decrement() {
	step := r.product.Step()
	if r.qty.LessThanOrEqual(step) {
		return
	}
	r.qty = r.qty.Sub(step).Round(2)
}

// SetDirect replaces the working quantity with an operator-typed value.
// Values below the minimum increment are rejected and the prior quantity
// is retained.
func (r *Resolver) SetDirect(value decimal.Decimal) error {
	if value.LessThan(r.product.Step()) {
		return ErrBelowMinimum
	}
	r.qty = value.Round(2)
	return nil
}

// QuickPick sets the working quantity to one of the preset values. Presets
// bypass the increment-multiple rule here; the cart engine still has the
// final say on Confirm.
func (r *Resolver) QuickPick(value decimal.Decimal) error {
	for _, pick := range r.QuickPicks() {
		if pick.Equal(value) {
			r.qty = value
			return nil
		}
	}
	return ErrNotAQuickPick
}

// QuickPicks returns the preset quantities valid for this product.
func (r *Resolver) QuickPicks() []decimal.Decimal {
	step := r.product.Step()
	out := make([]decimal.Decimal, 0, len(quickPicks))
	for _, pick := range quickPicks {
		if pick.GreaterThanOrEqual(step) {
			out = append(out, pick)
		}
	}
	return out
}

// PreviewPrice is the display-only price for the working quantity.
func (r *Resolver) PreviewPrice() decimal.Decimal {
	return r.qty.Mul(r.product.SellPrice).Round(2)
}

// Confirm commits the working quantity to the cart and fails with whatever
// the engine rejects it with.
func (r *Resolver) Confirm() error {
	return r.engine.AddWeight(r.product, r.qty)
}
