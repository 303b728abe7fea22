package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ecpm-app/ecpm-backend/internal/api/dto"
	"github.com/ecpm-app/ecpm-backend/internal/infrastructure/storage"
)

// PagesHandler handles page name HTTP requests.
type PagesHandler struct {
	*Base
}

// NewPagesHandler creates a new pages handler.
func NewPagesHandler(repo storage.Repository) *PagesHandler {
	return &PagesHandler{
		Base: NewBase(repo),
	}
}

// List handles GET /api/pages - returns all known page names.
func (h *PagesHandler) List(w http.ResponseWriter, r *http.Request) {
	pages, err := h.repo.ListPages()
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	response := dto.PageListResponse{
		Pages: pages,
		Count: len(pages),
	}
	if response.Pages == nil {
		response.Pages = []string{}
	}

	h.WriteJSON(w, http.StatusOK, response)
}

// Add handles POST /api/pages - records a page name.
func (h *PagesHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req dto.AddPageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("invalid request body"))
		return
	}
	if req.Name == "" {
		h.WriteError(w, http.StatusBadRequest, dto.ValidationError("name is required"))
		return
	}

	if err := h.repo.AddPage(req.Name); err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	h.WriteJSON(w, http.StatusCreated, dto.MessageResponse{Message: "page added"})
}

// Delete handles DELETE /api/pages/{name} - removes a page name.
func (h *PagesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("page name is required"))
		return
	}

	if err := h.repo.DeletePage(name); err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	h.WriteJSON(w, http.StatusOK, dto.MessageResponse{Message: "page deleted"})
}
