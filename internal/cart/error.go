package cart

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidQuantity = errors.New("invalid cart quantity")
	ErrValidation      = errors.New("cart validation failed")

	// -- Resource State --
	ErrCartItemNotFound  = errors.New("cart item not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrInactiveProduct   = errors.New("product is not active")
	ErrInsufficientStock = errors.New("insufficient stock")
)
