package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ecpm-app/ecpm-backend/internal/api/dto"
	"github.com/ecpm-app/ecpm-backend/internal/application/service"
	"github.com/ecpm-app/ecpm-backend/internal/domain/profit"
)

// DaysHandler handles daily record HTTP requests.
type DaysHandler struct {
	*Base
	dayService *service.DayService
}

// NewDaysHandler creates a new days handler.
func NewDaysHandler(dayService *service.DayService) *DaysHandler {
	return &DaysHandler{
		Base:       &Base{},
		dayService: dayService,
	}
}

// List handles GET /api/days - returns all daily records, newest first.
func (h *DaysHandler) List(w http.ResponseWriter, r *http.Request) {
	days, err := h.dayService.ListDays()
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	response := dto.DayListResponse{
		Days:  days,
		Count: len(days),
	}
	if response.Days == nil {
		response.Days = []*profit.DailyRecord{}
	}

	h.WriteJSON(w, http.StatusOK, response)
}

// Get handles GET /api/days/{date} - returns a single daily record.
func (h *DaysHandler) Get(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	day, err := h.dayService.GetDay(date)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.WriteError(w, http.StatusNotFound, dto.NotFoundError("day"))
			return
		}
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	h.WriteJSON(w, http.StatusOK, day)
}

// Replace handles PUT /api/days/{date} - overwrites a day's record wholesale.
// The body is a full daily record; derived fields are recomputed server-side.
func (h *DaysHandler) Replace(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	var record profit.DailyRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("invalid request body"))
		return
	}

	day, err := h.dayService.ReplaceDay(date, record)
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	h.WriteJSON(w, http.StatusOK, day)
}

// Delete handles DELETE /api/days/{date} - removes a day's record.
func (h *DaysHandler) Delete(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	if err := h.dayService.DeleteDay(date); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.WriteError(w, http.StatusNotFound, dto.NotFoundError("day"))
			return
		}
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	h.WriteJSON(w, http.StatusOK, dto.MessageResponse{Message: "day deleted"})
}

// DeleteBatch handles DELETE /api/days/{date}/batches/{batchID} - removes
// one batch and returns the reallocated day.
func (h *DaysHandler) DeleteBatch(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	batchID := chi.URLParam(r, "batchID")

	day, err := h.dayService.DeleteBatch(date, batchID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.WriteError(w, http.StatusNotFound, dto.NotFoundError("batch"))
			return
		}
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	h.WriteJSON(w, http.StatusOK, day)
}
