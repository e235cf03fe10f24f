package httpapi

import (
	"net/http"

	"github.com/Nikolai0169/Ecommerce/internal/cart"
	"github.com/Nikolai0169/Ecommerce/internal/catalog"
	"github.com/Nikolai0169/Ecommerce/internal/inventory"
	"github.com/Nikolai0169/Ecommerce/internal/order"

	"github.com/gorilla/mux"
)

// API is the thin JSON surface over the domain services. It parses requests,
// delegates, and maps errors; every rule lives below it.
type API struct {
	Catalog   catalog.Service
	Inventory inventory.Service
	Cart      cart.Service
	Orders    order.Service
}

func NewRouter(api *API) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// catalog
	r.HandleFunc("/categories", api.createCategory).Methods(http.MethodPost)
	r.HandleFunc("/categories", api.listCategories).Methods(http.MethodGet)
	r.HandleFunc("/categories/{id}", api.getCategory).Methods(http.MethodGet)
	r.HandleFunc("/categories/{id}", api.updateCategory).Methods(http.MethodPut)
	r.HandleFunc("/categories/{id}/active", api.setCategoryActive).Methods(http.MethodPatch)
	r.HandleFunc("/categories/{id}/subcategories", api.listSubcategories).Methods(http.MethodGet)

	r.HandleFunc("/subcategories", api.createSubcategory).Methods(http.MethodPost)
	r.HandleFunc("/subcategories/{id}", api.getSubcategory).Methods(http.MethodGet)
	r.HandleFunc("/subcategories/{id}/active", api.setSubcategoryActive).Methods(http.MethodPatch)

	r.HandleFunc("/products", api.createProduct).Methods(http.MethodPost)
	r.HandleFunc("/products", api.listProducts).Methods(http.MethodGet)
	r.HandleFunc("/products/{id}", api.getProduct).Methods(http.MethodGet)
	r.HandleFunc("/products/{id}", api.updateProduct).Methods(http.MethodPut)
	r.HandleFunc("/products/{id}", api.deleteProduct).Methods(http.MethodDelete)
	r.HandleFunc("/products/{id}/active", api.setProductActive).Methods(http.MethodPatch)
	r.HandleFunc("/products/{id}/stock", api.adjustStock).Methods(http.MethodPatch)

	// cart
	r.HandleFunc("/cart", api.getCart).Methods(http.MethodGet)
	r.HandleFunc("/cart/total", api.cartTotal).Methods(http.MethodGet)
	r.HandleFunc("/cart/items", api.addCartItem).Methods(http.MethodPost)
	r.HandleFunc("/cart/items/{id}", api.updateCartItem).Methods(http.MethodPatch)
	r.HandleFunc("/cart/items/{id}", api.removeCartItem).Methods(http.MethodDelete)

	// orders
	r.HandleFunc("/orders/checkout", api.checkout).Methods(http.MethodPost)
	r.HandleFunc("/orders", api.listOrders).Methods(http.MethodGet)
	r.HandleFunc("/orders/history", api.orderHistory).Methods(http.MethodGet)
	r.HandleFunc("/orders/{id}", api.getOrder).Methods(http.MethodGet)
	r.HandleFunc("/orders/{id}", api.deleteOrder).Methods(http.MethodDelete)
	r.HandleFunc("/orders/{id}/cancel", api.cancelOrder).Methods(http.MethodPost)
	r.HandleFunc("/orders/{id}/status", api.changeOrderStatus).Methods(http.MethodPatch)

	return r
}

// userID pulls the caller identity the auth layer in front of us injects.
func userID(r *http.Request) string {
	return r.Header.Get("X-User-ID")
}
