// Package payment validates a chosen tender against the transaction total
// and computes cash change.
package payment

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/imanol-10/kmanager/internal/domain"
)

var (
	ErrInsufficientPayment = errors.New("received amount does not cover the total")
	ErrUnknownTender       = errors.New("unknown tender type")
)

// Pending is the ephemeral payment intent captured when the operator opens
// the finalize step. AmountReceived is nil until an amount is entered,
// which is distinct from an entered zero.
type Pending struct {
	Tender         domain.TenderType
	AmountReceived *decimal.Decimal
}

// Validate reports whether the pending payment may finalize a sale of the
// given total. Cash requires a present amount covering the total; card and
// QR always validate.
func (p Pending) Validate(total decimal.Decimal) error {
	switch p.Tender {
	case domain.TenderCash:
		if p.AmountReceived == nil {
			return ErrInsufficientPayment
		}
		if p.AmountReceived.LessThan(total) {
			return ErrInsufficientPayment
		}
		return nil
	case domain.TenderCard, domain.TenderQR:
		return nil
	}
	return ErrUnknownTender
}

// Change returns the true change for a cash payment, which may be negative
// while the entered amount is still short. It is nil when no amount has
// been entered or the tender does not involve change.
func (p Pending) Change(total decimal.Decimal) *decimal.Decimal {
	if p.Tender != domain.TenderCash || p.AmountReceived == nil {
		return nil
	}
	change := p.AmountReceived.Sub(total).Round(2)
	return &change
}

// DisplayChange is the cosmetic value shown to the operator: negative
// change is clamped to zero. Validate remains authoritative, so a clamped
// display never permits finalizing an underpaid sale.
func (p Pending) DisplayChange(total decimal.Decimal) decimal.Decimal {
	change := p.Change(total)
	if change == nil || change.IsNegative() {
		return decimal.Zero.Round(2)
	}
	return *change
}
