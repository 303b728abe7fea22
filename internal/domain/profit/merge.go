package profit

import "github.com/google/uuid"

// DefaultDollarRate is used for a newly created day when the submission does
// not carry a rate.
const DefaultDollarRate = 126

// Merge folds a submission into a day's record without double-counting the
// page's shared costs. The submission states the page's cumulative ad spend
// and salary for the whole day; Merge computes the delta against what the
// day's existing batches already record for that page and distributes only
// the delta across the submitted batches, weighted by their order counts.
// A negative delta (downward correction) distributes the same way.
//
// day may be nil, meaning no record exists for the date yet. The returned
// record is merged but NOT reallocated; callers must pipe it through
// Allocate before persisting.
func Merge(day *DailyRecord, sub Submission) DailyRecord {
	var out DailyRecord
	if day == nil {
		out = DailyRecord{
			ID:         uuid.NewString(),
			Date:       sub.Date,
			DollarRate: DefaultDollarRate,
		}
	} else {
		out = *day
		out.Batches = append([]Batch(nil), day.Batches...)
	}
	applyGlobals(&out, sub.Globals)

	var existingAd, existingSalary float64
	for _, b := range out.Batches {
		if b.PageName == sub.PageName {
			existingAd += b.PageAdSpendForeign
			existingSalary += b.PageSalary
		}
	}
	deltaAd := sub.PageAdSpendForeign - existingAd
	deltaSalary := sub.PageSalary - existingSalary

	newBatches := append([]Batch(nil), sub.Batches...)
	subOrders := 0
	for _, b := range newBatches {
		subOrders += b.TotalOrders
	}

	for i := range newBatches {
		b := &newBatches[i]
		if b.ID == "" {
			b.ID = uuid.NewString()
		}
		b.PageName = sub.PageName

		switch {
		case subOrders > 0:
			weight := float64(b.TotalOrders) / float64(subOrders)
			b.PageAdSpendForeign = deltaAd * weight
			b.PageSalary = deltaSalary * weight
		case i == 0:
			// Cost-only correction: no order volume to weight by, so the
			// first batch carries the whole delta and the allocator's
			// zero-order fallback passes it through unscaled.
			b.PageAdSpendForeign = deltaAd
			b.PageSalary = deltaSalary
		default:
			b.PageAdSpendForeign = 0
			b.PageSalary = 0
		}
	}

	out.Batches = append(out.Batches, newBatches...)
	return out
}

// applyGlobals overwrites day-wide fields that the submission provides.
// These are absolute day totals, not increments.
func applyGlobals(day *DailyRecord, g GlobalUpdates) {
	if g.DollarRate != nil && *g.DollarRate != 0 {
		day.DollarRate = *g.DollarRate
	}
	if g.ManagementSalary != nil {
		day.TotalManagementSalary = *g.ManagementSalary
	}
	if g.OfficeCost != nil {
		day.TotalOfficeCost = *g.OfficeCost
	}
	if g.DailyBonus != nil {
		day.TotalDailyBonus = *g.DailyBonus
	}
}
