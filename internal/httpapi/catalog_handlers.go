package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/Nikolai0169/Ecommerce/internal/catalog"
	"github.com/Nikolai0169/Ecommerce/internal/inventory"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type categoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type activeRequest struct {
	Active bool `json:"active"`
}

func (api *API) createCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
		return
	}

	c, err := api.Catalog.CreateCategory(r.Context(), catalog.CreateCategoryParams{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, c)
}

func (api *API) listCategories(w http.ResponseWriter, r *http.Request) {
	var filter *string
	if q := r.URL.Query().Get("q"); q != "" {
		filter = &q
	}
	onlyActive := r.URL.Query().Get("active") == "true"

	categories, err := api.Catalog.ListCategories(r.Context(), filter, onlyActive, nil, nil)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, categories)
}

func (api *API) getCategory(w http.ResponseWriter, r *http.Request) {
	c, err := api.Catalog.GetCategory(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (api *API) updateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
		return
	}

	c, err := api.Catalog.UpdateCategory(r.Context(), mux.Vars(r)["id"], catalog.UpdateCategoryParams{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, c)
}

func (api *API) setCategoryActive(w http.ResponseWriter, r *http.Request) {
	var req activeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
		return
	}

	result, err := api.Catalog.SetCategoryActive(r.Context(), mux.Vars(r)["id"], req.Active)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

type subcategoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	CategoryID  string  `json:"category_id"`
}

func (api *API) createSubcategory(w http.ResponseWriter, r *http.Request) {
	var req subcategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
		return
	}

	sc, err := api.Catalog.CreateSubcategory(r.Context(), catalog.CreateSubcategoryParams{
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, sc)
}

func (api *API) getSubcategory(w http.ResponseWriter, r *http.Request) {
	sc, err := api.Catalog.GetSubcategory(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sc)
}

func (api *API) listSubcategories(w http.ResponseWriter, r *http.Request) {
	onlyActive := r.URL.Query().Get("active") == "true"

	subcategories, err := api.Catalog.ListSubcategories(r.Context(), mux.Vars(r)["id"], onlyActive)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, subcategories)
}

func (api *API) setSubcategoryActive(w http.ResponseWriter, r *http.Request) {
	var req activeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
		return
	}

	result, err := api.Catalog.SetSubcategoryActive(r.Context(), mux.Vars(r)["id"], req.Active)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

type productRequest struct {
	Name          string          `json:"name"`
	Description   *string         `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Stock         int             `json:"stock"`
	ImageName     *string         `json:"image_name"`
	CategoryID    string          `json:"category_id"`
	SubcategoryID string          `json:"subcategory_id"`
}

func (api *API) createProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
		return
	}

	p, err := api.Catalog.CreateProduct(r.Context(), catalog.CreateProductParams{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Stock:         req.Stock,
		ImageName:     req.ImageName,
		CategoryID:    req.CategoryID,
		SubcategoryID: req.SubcategoryID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

func (api *API) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := catalog.ListProductsFilter{
		OnlyActive: q.Get("active") == "true",
	}
	if v := q.Get("category_id"); v != "" {
		filter.CategoryID = &v
	}
	if v := q.Get("subcategory_id"); v != "" {
		filter.SubcategoryID = &v
	}
	if v := q.Get("q"); v != "" {
		filter.Search = &v
	}

	products, err := api.Catalog.ListProducts(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

func (api *API) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := api.Catalog.GetProduct(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (api *API) updateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
		return
	}

	p, err := api.Catalog.UpdateProduct(r.Context(), mux.Vars(r)["id"], catalog.UpdateProductParams{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		ImageName:     req.ImageName,
		CategoryID:    req.CategoryID,
		SubcategoryID: req.SubcategoryID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (api *API) setProductActive(w http.ResponseWriter, r *http.Request) {
	var req activeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
		return
	}

	if err := api.Catalog.SetProductActive(r.Context(), mux.Vars(r)["id"], req.Active); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"active": req.Active})
}

func (api *API) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := api.Catalog.DeleteProduct(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type stockRequest struct {
	Delta int `json:"delta"`
}

// adjustStock exposes the inventory ledger for restocking (positive delta)
// and manual corrections (negative delta).
func (api *API) adjustStock(w http.ResponseWriter, r *http.Request) {
	var req stockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
		return
	}

	id := mux.Vars(r)["id"]

	var err error
	switch {
	case req.Delta > 0:
		err = api.Inventory.Increase(r.Context(), id, req.Delta)
	case req.Delta < 0:
		err = api.Inventory.Decrease(r.Context(), id, -req.Delta)
	default:
		err = inventory.ErrInvalidQuantity
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	stock, err := api.Inventory.Stock(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"stock": stock})
}
