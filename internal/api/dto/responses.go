package dto

import (
	"time"

	"github.com/ecpm-app/ecpm-backend/internal/domain/profit"
	"github.com/ecpm-app/ecpm-backend/internal/infrastructure/storage"
)

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// MessageResponse is a simple acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}

// DayListResponse is returned when listing daily records, newest first.
// Records are served in their persisted shape so the frontend can use
// them directly.
type DayListResponse struct {
	Days  []*profit.DailyRecord `json:"days"`
	Count int                   `json:"count"`
}

// PageListResponse is returned when listing known page names.
type PageListResponse struct {
	Pages []string `json:"pages"`
	Count int      `json:"count"`
}

// ProductListResponse is returned when listing saved products.
type ProductListResponse struct {
	Products []storage.SavedProduct `json:"products"`
	Count    int                    `json:"count"`
}

// PageSummaryResponse is one page's slice of a range report.
type PageSummaryResponse struct {
	PageName       string  `json:"pageName"`
	TotalOrders    int     `json:"totalOrders"`
	TotalDelivered int     `json:"totalDelivered"`
	TotalSales     float64 `json:"totalSales"`
	NetProfit      float64 `json:"netProfit"`
	ReturnLoss     float64 `json:"returnLoss"`
	AdCostLocal    float64 `json:"adCostLocal"`
}

// RangeSummaryResponse is returned by GET /api/reports/summary.
type RangeSummaryResponse struct {
	Start            string                `json:"start"`
	End              string                `json:"end"`
	Days             int                   `json:"days"`
	TotalOrders      int                   `json:"totalOrders"`
	TotalDelivered   int                   `json:"totalDelivered"`
	TotalSales       float64               `json:"totalSales"`
	TotalProfit      float64               `json:"totalProfit"`
	TotalReturnLoss  float64               `json:"totalReturnLoss"`
	TotalAdCostLocal float64               `json:"totalAdCostLocal"`
	Pages            []PageSummaryResponse `json:"pages"`
}

// NewHealthResponse creates a health response with current timestamp.
func NewHealthResponse() HealthResponse {
	return HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}
