package cart

import "errors"

var (
	ErrInsufficientStock = errors.New("insufficient stock for requested quantity")
	ErrWrongSaleType     = errors.New("operation does not match the product's sale type")
	ErrInvalidQuantity   = errors.New("quantity must be a positive multiple of the minimum increment")
	ErrLineNotFound      = errors.New("no cart line for product")
)
