package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Nikolai0169/Ecommerce/internal/cart"
	"github.com/Nikolai0169/Ecommerce/internal/catalog"
	"github.com/Nikolai0169/Ecommerce/internal/inventory"
	"github.com/Nikolai0169/Ecommerce/internal/order"

	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{catalog.ErrNotFound, http.StatusNotFound},
		{cart.ErrCartItemNotFound, http.StatusNotFound},
		{cart.ErrProductNotFound, http.StatusNotFound},
		{inventory.ErrProductNotFound, http.StatusNotFound},
		{order.ErrOrderNotFound, http.StatusNotFound},

		{catalog.ErrValidation, http.StatusBadRequest},
		{catalog.ErrDuplicateName, http.StatusBadRequest},
		{catalog.ErrInactiveParent, http.StatusBadRequest},
		{catalog.ErrCategoryMismatch, http.StatusBadRequest},
		{cart.ErrInactiveProduct, http.StatusBadRequest},
		{cart.ErrInsufficientStock, http.StatusBadRequest},
		{inventory.ErrInsufficientStock, http.StatusBadRequest},
		{order.ErrInvalidState, http.StatusBadRequest},
		{order.ErrEmptyCart, http.StatusBadRequest},

		{catalog.ErrProductReferenced, http.StatusConflict},
		{order.ErrOperationNotAllowed, http.StatusConflict},

		{errors.New("pq: connection refused"), http.StatusInternalServerError},
	}

	for _, c := range cases {
		assert.Equalf(t, c.code, statusFor(c.err), "error %v", c.err)
	}
}

func TestStatusFor_WrappedErrors(t *testing.T) {
	// Services wrap sentinels with detail; the mapping must see through.
	wrapped := fmt.Errorf("product prod-a: %w", inventory.ErrInsufficientStock)
	assert.Equal(t, http.StatusBadRequest, statusFor(wrapped))

	wrapped = fmt.Errorf("%w: pending -> delivered", order.ErrInvalidState)
	assert.Equal(t, http.StatusBadRequest, statusFor(wrapped))
}
