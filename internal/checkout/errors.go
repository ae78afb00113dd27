package checkout

import "errors"

var (
	ErrEmptyCart          = errors.New("cart is empty, nothing to submit")
	ErrNoPendingPayment   = errors.New("no pending payment for this transaction")
	ErrSubmissionInFlight = errors.New("a submission is already in flight")
)
