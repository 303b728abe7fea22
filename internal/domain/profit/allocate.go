package profit

import "math"

// Options controls allocation behaviour that the source data does not decide.
type Options struct {
	// IncludeCODInReturnLoss counts the nominal per-unit COD fee as part of
	// the loss on returned units. The COD fee itself is only ever charged on
	// delivered units; this flag only affects the diagnostic return-loss
	// figure, never net profit.
	IncludeCODInReturnLoss bool
}

// DefaultOptions returns the canonical allocation behaviour.
func DefaultOptions() Options {
	return Options{IncludeCODInReturnLoss: true}
}

// Allocate recomputes every batch's distributed costs and derived profit
// figures, plus the day summary, using DefaultOptions. The input is not
// mutated. Allocate is idempotent: reallocating an already-allocated record
// yields the same record.
func Allocate(day DailyRecord) DailyRecord {
	return AllocateWith(day, DefaultOptions())
}

// pageTotals aggregates the recorded inputs for one page across its batches.
type pageTotals struct {
	orders    int
	adForeign float64
	salary    float64
}

// AllocateWith is Allocate with explicit Options.
func AllocateWith(day DailyRecord, opts Options) DailyRecord {
	out := day
	out.Batches = make([]Batch, len(day.Batches))
	copy(out.Batches, day.Batches)

	totalDayOrders := 0
	for _, b := range out.Batches {
		totalDayOrders += b.TotalOrders
	}

	// Day-wide unit shares. Zero orders means zero shares, never NaN.
	var unitMgmt, unitOffice, unitBonus float64
	if totalDayOrders > 0 {
		unitMgmt = day.TotalManagementSalary / float64(totalDayOrders)
		unitOffice = day.TotalOfficeCost / float64(totalDayOrders)
		unitBonus = day.TotalDailyBonus / float64(totalDayOrders)
	}

	pages := make(map[string]*pageTotals)
	for _, b := range out.Batches {
		pt := pages[b.PageName]
		if pt == nil {
			pt = &pageTotals{}
			pages[b.PageName] = pt
		}
		pt.orders += b.TotalOrders
		pt.adForeign += b.PageAdSpendForeign
		pt.salary += b.PageSalary
	}

	summary := DaySummary{TotalOrders: totalDayOrders}

	for i := range out.Batches {
		b := &out.Batches[i]
		orders := float64(b.TotalOrders)

		// Page-level distribution by order weight. A page with no order
		// volume (a cost-only correction entry) keeps its own recorded
		// values unscaled.
		pt := pages[b.PageName]
		adShare := b.PageAdSpendForeign
		salaryShare := b.PageSalary
		if pt.orders > 0 {
			weight := orders / float64(pt.orders)
			adShare = pt.adForeign * weight
			salaryShare = pt.salary * weight
		}

		rate := b.DollarRate
		if rate == 0 {
			rate = day.DollarRate
		}
		adCostLocal := adShare * rate

		returned, delivered := SplitOrders(*b)

		// Operational spend applies to every ordered unit, delivered or not.
		deliveryTotal := b.DeliveryChargePerUnit * orders
		packingTotal := b.PackagingCostPerUnit * orders
		mgmtTotal := unitMgmt * orders
		officeTotal := unitOffice * orders
		bonusTotal := unitBonus * orders

		opsTotal := adCostLocal + salaryShare + mgmtTotal + officeTotal + bonusTotal + deliveryTotal + packingTotal

		var unitOps float64
		if b.TotalOrders > 0 {
			unitOps = opsTotal / orders
		}

		// COD is charged on delivered units only.
		unitCOD := b.SalePrice * b.CODFeePercent / 100
		codTotal := unitCOD * float64(delivered)

		// Return loss is a diagnostic: the operational spend wasted on units
		// that never converted. It is not subtracted from opsTotal again.
		lostPerUnit := unitOps
		if opts.IncludeCODInReturnLoss {
			lostPerUnit += unitCOD
		}
		returnLoss := lostPerUnit * float64(returned)

		// Purchase cost is only realized on units actually shipped and kept.
		cogsDelivered := b.PurchaseCost * float64(delivered)

		totalCost := cogsDelivered + opsTotal + codTotal + b.ManualAdjustment
		totalRevenue := b.SalePrice * float64(delivered)

		// Rewrite the page totals as per-batch shares so downstream readers
		// see per-batch figures and reallocation is a fixed point.
		b.PageAdSpendForeign = adShare
		b.PageSalary = salaryShare
		b.ComputedNetProfit = totalRevenue - totalCost
		b.ComputedReturnLoss = returnLoss
		b.ComputedTotalSales = totalRevenue

		summary.TotalProfit += b.ComputedNetProfit
		summary.TotalReturnLoss += b.ComputedReturnLoss
		summary.TotalSales += b.ComputedTotalSales
		summary.TotalDelivered += delivered
	}

	out.Summary = summary
	return out
}

// roundHalfUp rounds to the nearest integer with halves going up, matching
// the behaviour the persisted records were produced with. math.Round differs
// on negative halves.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
