package dto

// EntryProductRequest is one product line within an entry submission.
type EntryProductRequest struct {
	Name         string  `json:"name"`
	Quantity     int     `json:"quantity"`
	SalePrice    float64 `json:"salePrice"`
	PurchaseCost float64 `json:"purchaseCost"`
}

// SubmitEntryRequest is the body of POST /api/entries. Page-level figures
// (ad spend, page salary) are cumulative day totals as stated on the ad
// dashboard, not increments.
type SubmitEntryRequest struct {
	Date                  string                `json:"date"`
	PageName              string                `json:"pageName"`
	Products              []EntryProductRequest `json:"products"`
	ReturnPercent         float64               `json:"returnPercent"`
	DeliveryChargePerUnit float64               `json:"deliveryChargePerUnit"`
	PackagingCostPerUnit  float64               `json:"packagingCostPerUnit"`
	CODFeePercent         float64               `json:"codFeePercent"`
	PageAdSpendForeign    float64               `json:"pageAdSpendForeign"`
	PageSalary            float64               `json:"pageSalary"`
	DollarRate            float64               `json:"dollarRate"`
	ManagementSalary      *float64              `json:"managementSalary,omitempty"`
	OfficeCost            *float64              `json:"officeCost,omitempty"`
	DailyBonus            *float64              `json:"dailyBonus,omitempty"`
}

// AddPageRequest is the body of POST /api/pages.
type AddPageRequest struct {
	Name string `json:"name"`
}

// SaveProductRequest is the body of POST /api/products. Products are
// upserted by name, so no ID is required.
type SaveProductRequest struct {
	Name             string  `json:"name"`
	DefaultSalePrice float64 `json:"defaultSalePrice"`
	DefaultBuyPrice  float64 `json:"defaultBuyPrice"`
}
