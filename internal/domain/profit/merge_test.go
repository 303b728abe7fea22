package profit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 { return &v }

func TestMerge_CreatesDayWithDefaults(t *testing.T) {
	got := Merge(nil, Submission{
		Date:     "2024-06-01",
		PageName: "Page A",
		Batches:  []Batch{{ProductName: "Combo A", TotalOrders: 20}},

		PageAdSpendForeign: 40,
		PageSalary:         100,
		Globals: GlobalUpdates{
			ManagementSalary: fptr(1000),
		},
	})

	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "2024-06-01", got.Date)
	assert.InDelta(t, DefaultDollarRate, got.DollarRate, 0)
	assert.InDelta(t, 1000, got.TotalManagementSalary, 0)

	require.Len(t, got.Batches, 1)
	b := got.Batches[0]
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, "Page A", b.PageName)
	// First submission for the page: the delta is the full stated total.
	assert.InDelta(t, 40, b.PageAdSpendForeign, 1e-9)
	assert.InDelta(t, 100, b.PageSalary, 1e-9)
}

func TestMerge_DeltaAgainstExistingPageTotal(t *testing.T) {
	day := &DailyRecord{
		ID:         "day-1",
		Date:       "2024-06-01",
		DollarRate: 120,
		Batches: []Batch{
			{ID: "old", PageName: "P", TotalOrders: 30, PageAdSpendForeign: 40, PageSalary: 150},
		},
	}

	got := Merge(day, Submission{
		Date:               "2024-06-01",
		PageName:           "P",
		Batches:            []Batch{{ProductName: "New", TotalOrders: 10}},
		PageAdSpendForeign: 60,
		PageSalary:         150,
	})

	require.Len(t, got.Batches, 2)
	// The new batch carries exactly the delta; the page total is now the
	// stated cumulative figure.
	assert.InDelta(t, 20, got.Batches[1].PageAdSpendForeign, 1e-9)
	assert.InDelta(t, 0, got.Batches[1].PageSalary, 1e-9)

	var pageAd float64
	for _, b := range got.Batches {
		pageAd += b.PageAdSpendForeign
	}
	assert.InDelta(t, 60, pageAd, 1e-9)
}

func TestMerge_DeltaSpreadAcrossNewBatchesByOrders(t *testing.T) {
	day := &DailyRecord{
		Date:    "2024-06-01",
		Batches: []Batch{{PageName: "P", TotalOrders: 50, PageAdSpendForeign: 30}},
	}

	got := Merge(day, Submission{
		Date:     "2024-06-01",
		PageName: "P",
		Batches: []Batch{
			{ProductName: "A", TotalOrders: 30},
			{ProductName: "B", TotalOrders: 10},
		},
		PageAdSpendForeign: 70, // delta 40, split 30/10
	})

	require.Len(t, got.Batches, 3)
	assert.InDelta(t, 30, got.Batches[1].PageAdSpendForeign, 1e-9)
	assert.InDelta(t, 10, got.Batches[2].PageAdSpendForeign, 1e-9)
}

func TestMerge_NegativeDeltaCorrectsDownward(t *testing.T) {
	day := &DailyRecord{
		Date:    "2024-06-01",
		Batches: []Batch{{PageName: "P", TotalOrders: 20, PageAdSpendForeign: 80}},
	}

	got := Merge(day, Submission{
		Date:               "2024-06-01",
		PageName:           "P",
		Batches:            []Batch{{TotalOrders: 20}},
		PageAdSpendForeign: 50,
	})

	assert.InDelta(t, -30, got.Batches[1].PageAdSpendForeign, 1e-9)
}

func TestMerge_CostOnlySubmission(t *testing.T) {
	day := &DailyRecord{
		Date:    "2024-06-01",
		Batches: []Batch{{PageName: "P", TotalOrders: 10, PageAdSpendForeign: 25}},
	}

	// No order volume in the submission: the first batch carries the whole
	// delta, the rest nothing.
	got := Merge(day, Submission{
		Date:               "2024-06-01",
		PageName:           "P",
		Batches:            []Batch{{ProductName: "fix"}, {ProductName: "noop"}},
		PageAdSpendForeign: 45,
		PageSalary:         60,
	})

	require.Len(t, got.Batches, 3)
	assert.InDelta(t, 20, got.Batches[1].PageAdSpendForeign, 1e-9)
	assert.InDelta(t, 60, got.Batches[1].PageSalary, 1e-9)
	assert.Zero(t, got.Batches[2].PageAdSpendForeign)
	assert.Zero(t, got.Batches[2].PageSalary)
}

func TestMerge_GlobalOverwrites(t *testing.T) {
	day := &DailyRecord{
		Date:                  "2024-06-01",
		DollarRate:            120,
		TotalManagementSalary: 900,
		TotalOfficeCost:       300,
	}

	got := Merge(day, Submission{
		Date:     "2024-06-01",
		PageName: "P",
		Globals: GlobalUpdates{
			DollarRate:       fptr(0), // zero rate must not wipe the day's rate
			ManagementSalary: fptr(0), // but zero totals do overwrite
			DailyBonus:       fptr(250),
		},
	})

	assert.InDelta(t, 120, got.DollarRate, 0)
	assert.Zero(t, got.TotalManagementSalary)
	assert.InDelta(t, 300, got.TotalOfficeCost, 0)
	assert.InDelta(t, 250, got.TotalDailyBonus, 0)
}

func TestMerge_DoesNotAllocateOrMutate(t *testing.T) {
	day := &DailyRecord{
		Date:    "2024-06-01",
		Batches: []Batch{{ID: "old", PageName: "P", TotalOrders: 10, PageAdSpendForeign: 5, SalePrice: 100}},
	}

	got := Merge(day, Submission{
		Date:               "2024-06-01",
		PageName:           "P",
		Batches:            []Batch{{TotalOrders: 5, SalePrice: 100}},
		PageAdSpendForeign: 15,
	})

	// Derived fields stay untouched until Allocate runs.
	for _, b := range got.Batches {
		assert.Zero(t, b.ComputedNetProfit)
		assert.Zero(t, b.ComputedTotalSales)
	}
	assert.Zero(t, got.Summary.TotalSales)

	// The input day is not mutated.
	assert.Len(t, day.Batches, 1)
	assert.InDelta(t, 5, day.Batches[0].PageAdSpendForeign, 0)
}

func TestMerge_ThenAllocate_NoDoubleCount(t *testing.T) {
	// Two submissions for the same page across the day, each stating the
	// running total; allocation after each must see the stated total, not
	// an inflated sum.
	first := Allocate(Merge(nil, Submission{
		Date:               "2024-06-01",
		PageName:           "P",
		Batches:            []Batch{{TotalOrders: 30, SalePrice: 500, PurchaseCost: 200}},
		PageAdSpendForeign: 40,
		Globals:            GlobalUpdates{DollarRate: fptr(120)},
	}))

	second := Allocate(Merge(&first, Submission{
		Date:               "2024-06-01",
		PageName:           "P",
		Batches:            []Batch{{TotalOrders: 10, SalePrice: 500, PurchaseCost: 200}},
		PageAdSpendForeign: 60,
	}))

	var pageAd float64
	for _, b := range second.Batches {
		pageAd += b.PageAdSpendForeign
	}
	assert.InDelta(t, 60, pageAd, 1e-9)
	assert.Equal(t, 40, second.Summary.TotalOrders)
}
