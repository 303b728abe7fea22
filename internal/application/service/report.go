package service

import (
	"sort"

	"github.com/ecpm-app/ecpm-backend/internal/domain/profit"
)

// RangeSummary aggregates stored daily records over an inclusive date range.
// It is a read-only re-derivation from the engine's persisted output and
// never recomputes allocations.
type RangeSummary struct {
	Start string
	End   string
	Days  int

	TotalOrders     int
	TotalDelivered  int
	TotalSales      float64
	TotalProfit     float64
	TotalReturnLoss float64
	// TotalAdCostLocal converts each batch's ad share at its effective rate.
	TotalAdCostLocal float64

	Pages []PageSummary
}

// PageSummary is one page's contribution over the range.
type PageSummary struct {
	PageName       string
	TotalOrders    int
	TotalDelivered int
	TotalSales     float64
	NetProfit      float64
	ReturnLoss     float64
	AdCostLocal    float64
}

// Summarize builds a range summary. Empty bounds mean open-ended; dates are
// ISO strings so plain string comparison orders them.
func (s *DayService) Summarize(start, end string) (*RangeSummary, error) {
	days, err := s.repo.ListDays()
	if err != nil {
		return nil, err
	}

	result := &RangeSummary{Start: start, End: end}
	pages := make(map[string]*PageSummary)

	for _, day := range days {
		if start != "" && day.Date < start {
			continue
		}
		if end != "" && day.Date > end {
			continue
		}
		result.Days++
		result.TotalOrders += day.Summary.TotalOrders
		result.TotalDelivered += day.Summary.TotalDelivered
		result.TotalSales += day.Summary.TotalSales
		result.TotalProfit += day.Summary.TotalProfit
		result.TotalReturnLoss += day.Summary.TotalReturnLoss

		for _, b := range day.Batches {
			ps := pages[b.PageName]
			if ps == nil {
				ps = &PageSummary{PageName: b.PageName}
				pages[b.PageName] = ps
			}

			rate := b.DollarRate
			if rate == 0 {
				rate = day.DollarRate
			}
			adLocal := b.PageAdSpendForeign * rate

			_, delivered := profit.SplitOrders(b)

			ps.TotalOrders += b.TotalOrders
			ps.TotalDelivered += delivered
			ps.TotalSales += b.ComputedTotalSales
			ps.NetProfit += b.ComputedNetProfit
			ps.ReturnLoss += b.ComputedReturnLoss
			ps.AdCostLocal += adLocal

			result.TotalAdCostLocal += adLocal
		}
	}

	result.Pages = make([]PageSummary, 0, len(pages))
	for _, ps := range pages {
		result.Pages = append(result.Pages, *ps)
	}
	sort.Slice(result.Pages, func(i, j int) bool {
		return result.Pages[i].PageName < result.Pages[j].PageName
	})

	return result, nil
}
