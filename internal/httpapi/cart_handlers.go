package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/Nikolai0169/Ecommerce/internal/cart"

	"github.com/gorilla/mux"
)

type addCartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (api *API) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req addCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
		return
	}

	item, err := api.Cart.AddItem(r.Context(), cart.AddItemParams{
		UserID:    userID(r),
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

func (api *API) updateCartItem(w http.ResponseWriter, r *http.Request) {
	var req updateCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
		return
	}

	item, err := api.Cart.UpdateQuantity(r.Context(), mux.Vars(r)["id"], req.Quantity)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

func (api *API) removeCartItem(w http.ResponseWriter, r *http.Request) {
	if err := api.Cart.RemoveItem(r.Context(), mux.Vars(r)["id"], userID(r)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (api *API) getCart(w http.ResponseWriter, r *http.Request) {
	rows, err := api.Cart.GetCart(r.Context(), userID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (api *API) cartTotal(w http.ResponseWriter, r *http.Request) {
	total, err := api.Cart.CartTotal(r.Context(), userID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"total": total.String()})
}
