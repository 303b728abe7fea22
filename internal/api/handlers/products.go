package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ecpm-app/ecpm-backend/internal/api/dto"
	"github.com/ecpm-app/ecpm-backend/internal/infrastructure/storage"
)

// ProductsHandler handles saved product HTTP requests.
type ProductsHandler struct {
	*Base
}

// NewProductsHandler creates a new products handler.
func NewProductsHandler(repo storage.Repository) *ProductsHandler {
	return &ProductsHandler{
		Base: NewBase(repo),
	}
}

// List handles GET /api/products - returns all saved products.
func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.repo.ListProducts()
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	response := dto.ProductListResponse{
		Products: products,
		Count:    len(products),
	}
	if response.Products == nil {
		response.Products = []storage.SavedProduct{}
	}

	h.WriteJSON(w, http.StatusOK, response)
}

// Save handles POST /api/products - upserts a product by name.
func (h *ProductsHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req dto.SaveProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("invalid request body"))
		return
	}
	if req.Name == "" {
		h.WriteError(w, http.StatusBadRequest, dto.ValidationError("name is required"))
		return
	}

	product := storage.SavedProduct{
		Name:             req.Name,
		DefaultSalePrice: req.DefaultSalePrice,
		DefaultBuyPrice:  req.DefaultBuyPrice,
	}
	if err := h.repo.SaveProduct(&product); err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	h.WriteJSON(w, http.StatusCreated, product)
}

// Delete handles DELETE /api/products/{id} - removes a saved product.
func (h *ProductsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("product ID is required"))
		return
	}

	if err := h.repo.DeleteProduct(id); err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	h.WriteJSON(w, http.StatusOK, dto.MessageResponse{Message: "product deleted"})
}
