package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/imanol-10/kmanager/internal/cart"
	"github.com/imanol-10/kmanager/internal/domain"
	"github.com/imanol-10/kmanager/internal/payment"
)

type mockSales struct {
	mu       sync.Mutex
	receipt  *domain.SaleReceipt
	err      error
	requests []domain.SaleRequest
}

func (m *mockSales) SubmitSale(_ context.Context, sale domain.SaleRequest) (*domain.SaleReceipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, sale)
	if m.err != nil {
		return nil, m.err
	}
	return m.receipt, nil
}

type mockRefresher struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (m *mockRefresher) Refresh(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.err
}

type mockPublisher struct {
	mu       sync.Mutex
	receipts []*domain.SaleReceipt
	err      error
}

func (m *mockPublisher) PublishReceipt(_ context.Context, receipt *domain.SaleReceipt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.receipts = append(m.receipts, receipt)
	return m.err
}

func amount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func filledEngine(t *testing.T) *cart.Engine {
	t.Helper()
	e := cart.NewEngine()
	require.NoError(t, e.AddUnit(domain.Product{
		ID: 1, Name: "Cola", SaleType: domain.SaleTypeUnit,
		SellPrice: decimal.NewFromInt(10), CurrentStock: decimal.NewFromInt(5),
	}))
	require.NoError(t, e.AddWeight(domain.Product{
		ID: 2, Name: "Rice", SaleType: domain.SaleTypeWeight,
		SellPrice: decimal.NewFromInt(200), MinIncrement: decimal.RequireFromString("0.5"),
		CurrentStock: decimal.NewFromInt(3),
	}, decimal.RequireFromString("1.5")))
	return e // total 310
}

func TestSubmit_EmptyCartRejectedBeforeNetwork(t *testing.T) {
	sales := &mockSales{}
	c := NewCoordinator(cart.NewEngine(), sales, &mockRefresher{}, nil, zap.NewNop())
	require.NoError(t, c.BeginPayment(domain.TenderCard, nil))

	_, err := c.Submit(context.Background())
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, sales.requests)
	assert.Equal(t, domain.SubmissionIdle, c.Status())
}

func TestSubmit_RequiresPendingPayment(t *testing.T) {
	sales := &mockSales{}
	c := NewCoordinator(filledEngine(t), sales, &mockRefresher{}, nil, zap.NewNop())

	_, err := c.Submit(context.Background())
	assert.ErrorIs(t, err, ErrNoPendingPayment)
	assert.Empty(t, sales.requests)
}

func TestSubmit_InsufficientCashBlockedBeforeNetwork(t *testing.T) {
	sales := &mockSales{}
	c := NewCoordinator(filledEngine(t), sales, &mockRefresher{}, nil, zap.NewNop())
	require.NoError(t, c.BeginPayment(domain.TenderCash, amount("300")))

	_, err := c.Submit(context.Background())
	assert.ErrorIs(t, err, payment.ErrInsufficientPayment)
	assert.Empty(t, sales.requests)
}

func TestSubmit_Success(t *testing.T) {
	engine := filledEngine(t)
	sales := &mockSales{receipt: &domain.SaleReceipt{ID: 42, Total: decimal.NewFromInt(310)}}
	refresher := &mockRefresher{}
	publisher := &mockPublisher{}
	c := NewCoordinator(engine, sales, refresher, publisher, zap.NewNop())
	require.NoError(t, c.BeginPayment(domain.TenderCash, amount("320")))

	receipt, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), receipt.ID)
	assert.Equal(t, domain.SubmissionSuccess, c.Status())

	// payload captured every cart line
	require.Len(t, sales.requests, 1)
	request := sales.requests[0]
	assert.Equal(t, domain.TenderCash, request.TenderType)
	require.Len(t, request.Items, 2)
	assert.True(t, request.Items[1].Equal(decimal.NewFromInt(1)))
	assert.True(t, request.Items[2].Equal(decimal.RequireFromString("1.5")))

	// local state reconciled
	assert.Equal(t, 0, engine.LineCount())
	assert.Nil(t, c.Pending())
	assert.Equal(t, 1, refresher.calls)
	require.Len(t, publisher.receipts, 1)
	assert.Equal(t, int64(42), publisher.receipts[0].ID)
}

func TestSubmit_FailureLeavesStateUntouched(t *testing.T) {
	engine := filledEngine(t)
	sales := &mockSales{err: errors.New("409: insufficient stock")}
	refresher := &mockRefresher{}
	c := NewCoordinator(engine, sales, refresher, nil, zap.NewNop())
	require.NoError(t, c.BeginPayment(domain.TenderCard, nil))

	_, err := c.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, domain.SubmissionFailed, c.Status())

	// cart and pending payment kept for retry, catalog not refreshed
	assert.Equal(t, 2, engine.LineCount())
	require.NotNil(t, c.Pending())
	assert.Equal(t, domain.TenderCard, c.Pending().Tender)
	assert.Equal(t, 0, refresher.calls)
}

func TestSubmit_RetryAfterFailureStartsFreshCycle(t *testing.T) {
	engine := filledEngine(t)
	sales := &mockSales{err: errors.New("boom")}
	c := NewCoordinator(engine, sales, &mockRefresher{}, nil, zap.NewNop())
	require.NoError(t, c.BeginPayment(domain.TenderQR, nil))

	_, err := c.Submit(context.Background())
	require.Error(t, err)

	sales.mu.Lock()
	sales.err = nil
	sales.receipt = &domain.SaleReceipt{ID: 7}
	sales.mu.Unlock()

	receipt, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), receipt.ID)
	assert.Equal(t, domain.SubmissionSuccess, c.Status())
	assert.Equal(t, 0, engine.LineCount())
}

func TestSubmit_PublishFailureDoesNotFailSale(t *testing.T) {
	engine := filledEngine(t)
	sales := &mockSales{receipt: &domain.SaleReceipt{ID: 9}}
	publisher := &mockPublisher{err: errors.New("broker down")}
	c := NewCoordinator(engine, sales, &mockRefresher{}, publisher, zap.NewNop())
	require.NoError(t, c.BeginPayment(domain.TenderCard, nil))

	receipt, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(9), receipt.ID)
	assert.Equal(t, domain.SubmissionSuccess, c.Status())
}

func TestBeginPayment_ReplacesPrevious(t *testing.T) {
	c := NewCoordinator(cart.NewEngine(), &mockSales{}, &mockRefresher{}, nil, zap.NewNop())

	require.NoError(t, c.BeginPayment(domain.TenderCash, amount("50")))
	require.NoError(t, c.BeginPayment(domain.TenderQR, nil))

	pending := c.Pending()
	require.NotNil(t, pending)
	assert.Equal(t, domain.TenderQR, pending.Tender)
	assert.Nil(t, pending.AmountReceived)
}

func TestCancelPayment_DiscardsPendingOnly(t *testing.T) {
	engine := filledEngine(t)
	c := NewCoordinator(engine, &mockSales{}, &mockRefresher{}, nil, zap.NewNop())
	require.NoError(t, c.BeginPayment(domain.TenderCash, amount("500")))

	require.NoError(t, c.CancelPayment())
	assert.Nil(t, c.Pending())
	assert.Equal(t, 2, engine.LineCount())
}
