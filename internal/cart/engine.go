package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/imanol-10/kmanager/internal/domain"
)

// multipleTolerance absorbs 2-decimal rounding when checking that a weight
// quantity is a whole number of increments.
var multipleTolerance = decimal.New(1, -6) // 1e-6

// Line is one product's entry in the cart. Product is a snapshot taken at
// add time; prices and stock bounds are not re-fetched mid-transaction.
type Line struct {
	Product  domain.Product  `json:"product"`
	Quantity decimal.Decimal `json:"quantity"`
}

// Subtotal is the line's sell price times its quantity, rounded to cents.
func (l Line) Subtotal() decimal.Decimal {
	return l.Product.SellPrice.Mul(l.Quantity).Round(2)
}

// Engine owns the current transaction's cart. All mutations validate
// against the stock captured with each line; a failed mutation leaves the
// cart untouched. Stock checks here are advisory only, the sales service
// re-validates at submission time.
type Engine struct {
	mu    sync.Mutex
	lines map[int64]*Line
	order []int64
}

func NewEngine() *Engine {
	return &Engine{lines: make(map[int64]*Line)}
}

// AddUnit adds one unit of a unit-sold product, merging into an existing
// line when present.
func (e *Engine) AddUnit(p domain.Product) error {
	if p.SaleType != domain.SaleTypeUnit {
		return ErrWrongSaleType
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	one := decimal.NewFromInt(1)
	if line, ok := e.lines[p.ID]; ok {
		next := line.Quantity.Add(one).Round(2)
		if next.GreaterThan(line.Product.CurrentStock) {
			return ErrInsufficientStock
		}
		line.Quantity = next
		return nil
	}

	if p.CurrentStock.LessThan(one) {
		return ErrInsufficientStock
	}
	e.insert(p, one)
	return nil
}

// AddWeight adds a weighed quantity of a weight-sold product. The quantity
// must be a positive whole number of minimum increments and the merged line
// must stay within the captured stock.
func (e *Engine) AddWeight(p domain.Product, quantity decimal.Decimal) error {
	if p.SaleType != domain.SaleTypeWeight {
		return ErrWrongSaleType
	}
	if !quantity.IsPositive() || !isMultipleOf(quantity, p.Step()) {
		return ErrInvalidQuantity
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if line, ok := e.lines[p.ID]; ok {
		next := line.Quantity.Add(quantity).Round(2)
		if next.GreaterThan(line.Product.CurrentStock) {
			return ErrInsufficientStock
		}
		line.Quantity = next
		return nil
	}

	if quantity.GreaterThan(p.CurrentStock) {
		return ErrInsufficientStock
	}
	e.insert(p, quantity.Round(2))
	return nil
}

// Adjust steps a line's quantity up or down by the product's granularity.
// Stepping to zero or below removes the line; stepping past the captured
// stock fails and keeps the line as it was.
func (e *Engine) Adjust(productID int64, direction int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	line, ok := e.lines[productID]
	if !ok {
		return ErrLineNotFound
	}

	step := line.Product.Step()
	next := line.Quantity.Add(step.Mul(decimal.NewFromInt(int64(direction)))).Round(2)

	if !next.IsPositive() {
		e.delete(productID)
		return nil
	}
	if next.GreaterThan(line.Product.CurrentStock) {
		return ErrInsufficientStock
	}
	line.Quantity = next
	return nil
}

// Remove deletes the line for the product. Removing an absent line is a
// no-op.
func (e *Engine) Remove(productID int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.delete(productID)
}

// Clear empties the cart. Called only after a confirmed successful sale or
// when the operator abandons the transaction.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lines = make(map[int64]*Line)
	e.order = nil
}

// Lines returns the cart's lines in the order they were added.
func (e *Engine) Lines() []Line {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Line, 0, len(e.order))
	for _, id := range e.order {
		out = append(out, *e.lines[id])
	}
	return out
}

// LineCount is the number of distinct lines, not total units.
func (e *Engine) LineCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.order)
}

// Total returns the transaction total. There is no tax or discount step, so
// the subtotal and the total are the same value.
func (e *Engine) Total() decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()

	total := decimal.Zero
	for _, line := range e.lines {
		total = total.Add(line.Product.SellPrice.Mul(line.Quantity))
	}
	return total.Round(2)
}

// Subtotal is an alias for Total kept for the display layer.
func (e *Engine) Subtotal() decimal.Decimal {
	return e.Total()
}

func (e *Engine) insert(p domain.Product, quantity decimal.Decimal) {
	e.lines[p.ID] = &Line{Product: p, Quantity: quantity}
	e.order = append(e.order, p.ID)
}

func (e *Engine) delete(productID int64) {
	if _, ok := e.lines[productID]; !ok {
		return
	}
	delete(e.lines, productID)
	for i, id := range e.order {
		if id == productID {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
}

func isMultipleOf(quantity, step decimal.Decimal) bool {
	if !step.IsPositive() {
		return false
	}
	rem := quantity.Mod(step).Abs()
	return rem.LessThanOrEqual(multipleTolerance) ||
		step.Sub(rem).Abs().LessThanOrEqual(multipleTolerance)
}
