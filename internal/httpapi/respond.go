package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Nikolai0169/Ecommerce/internal/cart"
	"github.com/Nikolai0169/Ecommerce/internal/catalog"
	"github.com/Nikolai0169/Ecommerce/internal/inventory"
	"github.com/Nikolai0169/Ecommerce/internal/logger"
	"github.com/Nikolai0169/Ecommerce/internal/order"

	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		logger.FromCtx(r.Context()).Error("request failed", zap.Error(err))
		writeJSON(w, code, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

// statusFor maps the domain error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, cart.ErrCartItemNotFound),
		errors.Is(err, cart.ErrProductNotFound),
		errors.Is(err, inventory.ErrProductNotFound),
		errors.Is(err, order.ErrOrderNotFound):
		return http.StatusNotFound

	case errors.Is(err, catalog.ErrValidation),
		errors.Is(err, catalog.ErrDuplicateName),
		errors.Is(err, catalog.ErrInactiveParent),
		errors.Is(err, catalog.ErrCategoryMismatch),
		errors.Is(err, cart.ErrValidation),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, cart.ErrInactiveProduct),
		errors.Is(err, cart.ErrInsufficientStock),
		errors.Is(err, inventory.ErrInvalidQuantity),
		errors.Is(err, inventory.ErrInsufficientStock),
		errors.Is(err, order.ErrValidation),
		errors.Is(err, order.ErrInvalidState),
		errors.Is(err, order.ErrEmptyCart):
		return http.StatusBadRequest

	case errors.Is(err, catalog.ErrProductReferenced),
		errors.Is(err, order.ErrOperationNotAllowed):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}
