package domain

import "fmt"

type TenderType string

const (
	TenderCash TenderType = "CASH"
	TenderCard TenderType = "CARD"
	TenderQR   TenderType = "QR"
)

// RequiresAmount reports whether the tender needs a received amount to
// finalize. Only cash does; card and QR are charged for the exact total.
func (t TenderType) RequiresAmount() bool {
	return t == TenderCash
}

func ParseTenderType(s string) (TenderType, error) {
	switch TenderType(s) {
	case TenderCash, TenderCard, TenderQR:
		return TenderType(s), nil
	}
	return "", fmt.Errorf("unknown tender type %q", s)
}
