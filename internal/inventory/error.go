package inventory

import "errors"

var (
	ErrInvalidQuantity   = errors.New("quantity must be greater than zero")
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)
