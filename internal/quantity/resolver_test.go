package quantity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imanol-10/kmanager/internal/cart"
	"github.com/imanol-10/kmanager/internal/domain"
)

func weightProduct(increment string) domain.Product {
	return domain.Product{
		ID:            2,
		Name:          "loose rice",
		SaleType:      domain.SaleTypeWeight,
		SellPrice:     decimal.NewFromInt(200),
		MinIncrement:  decimal.RequireFromString(increment),
		CurrentStock:  decimal.NewFromInt(3),
		UnitOfMeasure: "kg",
	}
}

func TestNewResolver_RejectsUnitProduct(t *testing.T) {
	_, err := NewResolver(cart.NewEngine(), domain.Product{SaleType: domain.SaleTypeUnit})
	assert.ErrorIs(t, err, ErrNotWeightProduct)
}

func TestResolver_StartsAtMinIncrement(t *testing.T) {
	r, err := NewResolver(cart.NewEngine(), weightProduct("0.5"))
	require.NoError(t, err)
	assert.True(t, r.Quantity().Equal(decimal.RequireFromString("0.5")))
}

func TestIncrementThenConfirm(t *testing.T) {
	e := cart.NewEngine()
	r, err := NewResolver(e, weightProduct("0.5"))
	require.NoError(t, err)

	r.Increment()
	r.Increment()
	assert.True(t, r.Quantity().Equal(decimal.RequireFromString("1.5")))
	assert.True(t, r.PreviewPrice().Equal(decimal.NewFromInt(300)))

	require.NoError(t, r.Confirm())
	lines := e.Lines()
	require.Len(t, lines, 1)
	assert.True(t, lines[0].Quantity.Equal(decimal.RequireFromString("1.5")))
	assert.True(t, e.Total().Equal(decimal.NewFromInt(300)))
}

func TestDecrement_FlooredAtIncrement(t *testing.T) {
	r, err := NewResolver(cart.NewEngine(), weightProduct("0.5"))
	require.NoError(t, err)

	r.Increment()
	r.Decrement()
	assert.True(t, r.Quantity().Equal(decimal.RequireFromString("0.5")))

	r.Decrement()
	assert.True(t, r.Quantity().Equal(decimal.RequireFromString("0.5")))
}

func TestSetDirect(t *testing.T) {
	r, err := NewResolver(cart.NewEngine(), weightProduct("0.5"))
	require.NoError(t, err)

	require.NoError(t, r.SetDirect(decimal.NewFromInt(2)))
	assert.True(t, r.Quantity().Equal(decimal.NewFromInt(2)))

	// below the minimum increment: rejected, prior value retained
	assert.ErrorIs(t, r.SetDirect(decimal.RequireFromString("0.25")), ErrBelowMinimum)
	assert.True(t, r.Quantity().Equal(decimal.NewFromInt(2)))
}

func TestQuickPicks_FilteredByIncrement(t *testing.T) {
	r, err := NewResolver(cart.NewEngine(), weightProduct("0.5"))
	require.NoError(t, err)

	picks := r.QuickPicks()
	require.Len(t, picks, 7) // 0.25 filtered out
	assert.True(t, picks[0].Equal(decimal.RequireFromString("0.5")))
	assert.True(t, picks[len(picks)-1].Equal(decimal.NewFromInt(3)))
}

func TestQuickPick_BypassesMultipleRuleUntilConfirm(t *testing.T) {
	e := cart.NewEngine()
	r, err := NewResolver(e, weightProduct("0.5"))
	require.NoError(t, err)

	// 0.75 is a valid preset for a 0.5 increment even though it is not a
	// multiple of it; the engine rejects it at confirm time.
	require.NoError(t, r.QuickPick(decimal.RequireFromString("0.75")))
	assert.ErrorIs(t, r.Confirm(), cart.ErrInvalidQuantity)

	assert.ErrorIs(t, r.QuickPick(decimal.RequireFromString("0.3")), ErrNotAQuickPick)
	assert.ErrorIs(t, r.QuickPick(decimal.RequireFromString("0.25")), ErrNotAQuickPick)
}

func TestConfirm_PropagatesStockError(t *testing.T) {
	e := cart.NewEngine()
	r, err := NewResolver(e, weightProduct("0.5"))
	require.NoError(t, err)

	require.NoError(t, r.SetDirect(decimal.RequireFromString("3.5")))
	assert.ErrorIs(t, r.Confirm(), cart.ErrInsufficientStock)
	assert.Equal(t, 0, e.LineCount())
}
