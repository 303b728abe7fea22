package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ecpm-app/ecpm-backend/internal/api/dto"
	"github.com/ecpm-app/ecpm-backend/internal/application/service"
)

// EntriesHandler handles daily entry submissions.
type EntriesHandler struct {
	*Base
	dayService *service.DayService
}

// NewEntriesHandler creates a new entries handler.
func NewEntriesHandler(dayService *service.DayService) *EntriesHandler {
	return &EntriesHandler{
		Base:       &Base{},
		dayService: dayService,
	}
}

// Submit handles POST /api/entries - merges an entry into its day and
// returns the reallocated record.
func (h *EntriesHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req dto.SubmitEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("invalid request body"))
		return
	}

	if req.Date == "" {
		h.WriteError(w, http.StatusBadRequest, dto.ValidationError("date is required"))
		return
	}
	if req.PageName == "" {
		h.WriteError(w, http.StatusBadRequest, dto.ValidationError("pageName is required"))
		return
	}

	serviceReq := service.EntryRequest{
		Date:                  req.Date,
		PageName:              req.PageName,
		Products:              make([]service.EntryProduct, 0, len(req.Products)),
		ReturnPercent:         req.ReturnPercent,
		DeliveryChargePerUnit: req.DeliveryChargePerUnit,
		PackagingCostPerUnit:  req.PackagingCostPerUnit,
		CODFeePercent:         req.CODFeePercent,
		PageAdSpendForeign:    req.PageAdSpendForeign,
		PageSalary:            req.PageSalary,
		DollarRate:            req.DollarRate,
		ManagementSalary:      req.ManagementSalary,
		OfficeCost:            req.OfficeCost,
		DailyBonus:            req.DailyBonus,
	}
	for _, p := range req.Products {
		serviceReq.Products = append(serviceReq.Products, service.EntryProduct{
			Name:         p.Name,
			Quantity:     p.Quantity,
			SalePrice:    p.SalePrice,
			PurchaseCost: p.PurchaseCost,
		})
	}

	day, err := h.dayService.SubmitEntry(serviceReq)
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	h.WriteJSON(w, http.StatusCreated, day)
}
