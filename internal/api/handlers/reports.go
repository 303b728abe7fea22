package handlers

import (
	"net/http"

	"github.com/ecpm-app/ecpm-backend/internal/api/dto"
	"github.com/ecpm-app/ecpm-backend/internal/application/service"
)

// ReportsHandler handles aggregate report HTTP requests.
type ReportsHandler struct {
	*Base
	dayService *service.DayService
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(dayService *service.DayService) *ReportsHandler {
	return &ReportsHandler{
		Base:       &Base{},
		dayService: dayService,
	}
}

// Summary handles GET /api/reports/summary?start=&end= - returns totals and
// a per-page breakdown over an inclusive date range.
func (h *ReportsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")
	if start == "" || end == "" {
		h.WriteError(w, http.StatusBadRequest, dto.ValidationError("start and end are required"))
		return
	}
	if end < start {
		h.WriteError(w, http.StatusBadRequest, dto.ValidationError("end must not precede start"))
		return
	}

	summary, err := h.dayService.Summarize(start, end)
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	response := dto.RangeSummaryResponse{
		Start:            summary.Start,
		End:              summary.End,
		Days:             summary.Days,
		TotalOrders:      summary.TotalOrders,
		TotalDelivered:   summary.TotalDelivered,
		TotalSales:       summary.TotalSales,
		TotalProfit:      summary.TotalProfit,
		TotalReturnLoss:  summary.TotalReturnLoss,
		TotalAdCostLocal: summary.TotalAdCostLocal,
		Pages:            make([]dto.PageSummaryResponse, 0, len(summary.Pages)),
	}
	for _, p := range summary.Pages {
		response.Pages = append(response.Pages, dto.PageSummaryResponse{
			PageName:       p.PageName,
			TotalOrders:    p.TotalOrders,
			TotalDelivered: p.TotalDelivered,
			TotalSales:     p.TotalSales,
			NetProfit:      p.NetProfit,
			ReturnLoss:     p.ReturnLoss,
			AdCostLocal:    p.AdCostLocal,
		})
	}

	h.WriteJSON(w, http.StatusOK, response)
}
