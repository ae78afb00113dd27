// Package checkout drives the sale submission lifecycle: it captures the
// cart as a payload, validates the pending payment, invokes the sales
// service and reconciles local state on the outcome.
package checkout

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/imanol-10/kmanager/internal/cart"
	"github.com/imanol-10/kmanager/internal/domain"
	"github.com/imanol-10/kmanager/internal/payment"
)

type SalesClient interface {
	SubmitSale(ctx context.Context, sale domain.SaleRequest) (*domain.SaleReceipt, error)
}

type CatalogRefresher interface {
	Refresh(ctx context.Context) error
}

type ReceiptPublisher interface {
	PublishReceipt(ctx context.Context, receipt *domain.SaleReceipt) error
}

// Coordinator owns one terminal's submission state machine and pending
// payment. The cart engine itself stays mutable while a submission is in
// flight; the payload was captured when the attempt began.
type Coordinator struct {
	engine  *cart.Engine
	sales   SalesClient
	catalog CatalogRefresher
	events  ReceiptPublisher // nil when event publishing is disabled
	log     *zap.Logger

	stateMu sync.Mutex
	status  domain.SubmissionStatus
	pending *payment.Pending
}

func NewCoordinator(engine *cart.Engine, sales SalesClient, catalog CatalogRefresher, events ReceiptPublisher, log *zap.Logger) *Coordinator {
	return &Coordinator{
		engine:  engine,
		sales:   sales,
		catalog: catalog,
		events:  events,
		log:     log,
		status:  domain.SubmissionIdle,
	}
}

func (c *Coordinator) Status() domain.SubmissionStatus {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	return c.status
}

// BeginPayment records the operator's tender choice (and received amount
// for cash), replacing any previous pending payment. It is rejected while
// a submission is in flight.
func (c *Coordinator) BeginPayment(tender domain.TenderType, amountReceived *decimal.Decimal) error {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	if c.status == domain.SubmissionSubmitting {
		return ErrSubmissionInFlight
	}
	c.pending = &payment.Pending{Tender: tender, AmountReceived: amountReceived}
	return nil
}

// CancelPayment discards the pending payment. The cart is untouched; the
// operator may reopen the finalize step at any time before submitting.
func (c *Coordinator) CancelPayment() error {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	if c.status == domain.SubmissionSubmitting {
		return ErrSubmissionInFlight
	}
	c.pending = nil
	return nil
}

// Pending returns a copy of the pending payment, if any.
func (c *Coordinator) Pending() *payment.Pending {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	if c.pending == nil {
		return nil
	}
	copied := *c.pending
	return &copied
}

// Submit runs one IDLE -> SUBMITTING -> SUCCESS/FAILED cycle. Local
// validation failures reject the attempt before any network call. Only a
// confirmed success clears the cart, discards the pending payment and
// refreshes the catalog (server-side stock changed); on failure everything
// is left in place so the operator can retry or cancel.
func (c *Coordinator) Submit(ctx context.Context) (*domain.SaleReceipt, error) {
	c.stateMu.Lock()
	if !c.status.CanTransitionTo(domain.SubmissionSubmitting) {
		c.stateMu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	pending := c.pending
	c.stateMu.Unlock()

	lines := c.engine.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	if pending == nil {
		return nil, ErrNoPendingPayment
	}
	if err := pending.Validate(c.engine.Total()); err != nil {
		return nil, err
	}

	items := make(map[int64]decimal.Decimal, len(lines))
	for _, line := range lines {
		items[line.Product.ID] = line.Quantity
	}
	request := domain.SaleRequest{
		TenderType: pending.Tender,
		Items:      items,
	}

	attemptID := uuid.NewString()
	c.setStatus(domain.SubmissionSubmitting)
	c.log.Info("submitting sale",
		zap.String("attempt_id", attemptID),
		zap.String("tender", string(pending.Tender)),
		zap.Int("lines", len(lines)))

	receipt, err := c.sales.SubmitSale(ctx, request)
	if err != nil {
		c.setStatus(domain.SubmissionFailed)
		c.log.Warn("sale submission failed",
			zap.String("attempt_id", attemptID),
			zap.Error(err))
		return nil, fmt.Errorf("submit sale: %w", err)
	}

	c.engine.Clear()
	c.stateMu.Lock()
	c.pending = nil
	c.status = domain.SubmissionSuccess
	c.stateMu.Unlock()

	c.log.Info("sale confirmed",
		zap.String("attempt_id", attemptID),
		zap.Int64("receipt_id", receipt.ID))

	// server-side stock changed, the cached catalog is stale now
	if errRefresh := c.catalog.Refresh(ctx); errRefresh != nil {
		c.log.Warn("catalog refresh after sale failed", zap.Error(errRefresh))
	}

	if c.events != nil {
		if errPublish := c.events.PublishReceipt(ctx, receipt); errPublish != nil {
			c.log.Warn("receipt publish failed", zap.Error(errPublish))
		}
	}

	return receipt, nil
}

func (c *Coordinator) setStatus(status domain.SubmissionStatus) {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	c.status = status
}
