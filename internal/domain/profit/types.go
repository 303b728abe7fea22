// Package profit implements the cost allocation and profit reconciliation
// engine for daily order batches.
//
// Each calendar date has exactly one DailyRecord. Shared costs recorded at
// page level (ad spend, page salary) and at day level (management salary,
// office cost, bonus) are redistributed across the day's batches in proportion
// to order volume, and every batch's net profit, return loss and sales are
// recomputed on each pass:
//
//	day = profit.Allocate(profit.Merge(existing, submission))
//
// Allocate and Merge are free functions over value types with no shared
// state. Allocate is total: it never fails on any well-typed record, and all
// divisions by zero resolve to zero.
package profit

// DailyRecord is the authoritative record for one calendar date. The date
// string (YYYY-MM-DD) is the primary key; the summary is always a pure
// function of Batches and is rewritten on every allocation.
type DailyRecord struct {
	ID   string `json:"id"`
	Date string `json:"date"`

	// Day-wide inputs, entered once per day.
	DollarRate            float64 `json:"dollarRate"`
	TotalManagementSalary float64 `json:"totalManagementSalary"`
	TotalOfficeCost       float64 `json:"totalOfficeCost"`
	TotalDailyBonus       float64 `json:"totalDailyBonus"`

	Batches []Batch    `json:"batches"`
	Summary DaySummary `json:"summary"`
}

// Batch is one page+product entry recorded for a date. The page is the unit
// of cost sharing: the sum of PageAdSpendForeign (and PageSalary) across a
// page's batches represents the page's total recorded spend for the day, and
// allocation rewrites those fields with each batch's proportional share.
type Batch struct {
	ID          string `json:"id"`
	PageName    string `json:"pageName"`
	ProductName string `json:"productName"`

	TotalOrders   int     `json:"totalOrders"`
	ReturnPercent float64 `json:"returnPercent"`

	SalePrice    float64 `json:"salePrice"`
	PurchaseCost float64 `json:"purchaseCost"`

	PageAdSpendForeign float64 `json:"pageAdSpendForeign"`
	// DollarRate overrides the day's rate for this batch when nonzero.
	DollarRate float64 `json:"dollarRate,omitempty"`
	PageSalary float64 `json:"pageSalary"`

	DeliveryChargePerUnit float64 `json:"deliveryChargePerUnit"`
	PackagingCostPerUnit  float64 `json:"packagingCostPerUnit"`

	// ManualAdjustment ("hazira/bonus") is a flat deduction against this
	// batch's profit.
	ManualAdjustment float64 `json:"manualAdjustment"`
	CODFeePercent    float64 `json:"codFeePercent"`

	// Derived fields, written only by Allocate.
	ComputedNetProfit  float64 `json:"computedNetProfit"`
	ComputedReturnLoss float64 `json:"computedReturnLoss"`
	ComputedTotalSales float64 `json:"computedTotalSales"`
}

// DaySummary is the cached aggregate of a day's batches.
type DaySummary struct {
	TotalProfit     float64 `json:"totalProfit"`
	TotalOrders     int     `json:"totalOrders"`
	TotalReturnLoss float64 `json:"totalReturnLoss"`
	TotalDelivered  int     `json:"totalDelivered"`
	TotalSales      float64 `json:"totalSales"`
}

// GlobalUpdates carries optional overwrites for a day's global inputs.
// Nil fields are left untouched. A dollar rate of zero is also ignored so
// that an unset rate input never wipes the day's rate.
type GlobalUpdates struct {
	DollarRate       *float64
	ManagementSalary *float64
	OfficeCost       *float64
	DailyBonus       *float64
}

// Submission is one entry-form submission: a set of new batches for a single
// page, together with the user-stated cumulative page totals for the day.
// The stated totals are running totals, not increments; Merge reconciles them
// against what is already recorded for the page.
type Submission struct {
	Date     string
	PageName string
	Batches  []Batch

	// Cumulative page totals as stated by the user.
	PageAdSpendForeign float64
	PageSalary         float64

	Globals GlobalUpdates
}

// SplitOrders splits a batch's order count into returned and delivered units
// using round-half-up on the real-valued return estimate. Delivered may be
// negative when ReturnPercent exceeds 100; degenerate input propagates rather
// than being clamped.
func SplitOrders(b Batch) (returned, delivered int) {
	returned = roundHalfUp(float64(b.TotalOrders) * b.ReturnPercent / 100)
	return returned, b.TotalOrders - returned
}
