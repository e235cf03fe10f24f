package order

import "errors"

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrInvalidState        = errors.New("illegal order status transition")
	ErrOperationNotAllowed = errors.New("orders cannot be deleted")
	ErrValidation          = errors.New("order validation failed")
)
