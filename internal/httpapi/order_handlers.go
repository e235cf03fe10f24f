package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/Nikolai0169/Ecommerce/internal/order"

	"github.com/gorilla/mux"
)

type checkoutRequest struct {
	ShippingAddress string  `json:"shipping_address"`
	Phone           string  `json:"phone"`
	Notes           *string `json:"notes"`
}

func (api *API) checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
		return
	}

	o, err := api.Orders.CreateFromCart(r.Context(), userID(r), order.CheckoutInfo{
		ShippingAddress: req.ShippingAddress,
		Phone:           req.Phone,
		Notes:           req.Notes,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, o)
}

func (api *API) listOrders(w http.ResponseWriter, r *http.Request) {
	filter := order.ListFilter{}
	if v := r.URL.Query().Get("status"); v != "" {
		status := order.Status(v)
		filter.Status = &status
	}

	orders, err := api.Orders.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

func (api *API) orderHistory(w http.ResponseWriter, r *http.Request) {
	orders, err := api.Orders.HistoryForUser(r.Context(), userID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (api *API) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := api.Orders.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (api *API) cancelOrder(w http.ResponseWriter, r *http.Request) {
	o, err := api.Orders.Cancel(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (api *API) changeOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
		return
	}

	o, err := api.Orders.ChangeStatus(r.Context(), mux.Vars(r)["id"], order.Status(req.Status))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, o)
}

func (api *API) deleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := api.Orders.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
