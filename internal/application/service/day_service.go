// Package service orchestrates the read-merge-allocate-write sequence around
// the profit engine and exposes read-side aggregations.
package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ecpm-app/ecpm-backend/internal/domain/profit"
	"github.com/ecpm-app/ecpm-backend/internal/infrastructure/storage"
)

// ErrNotFound is returned when a requested day or batch does not exist.
var ErrNotFound = errors.New("not found")

// DayService owns all mutations of daily records. Every write path ends in a
// full reallocation so the persisted record is always internally consistent.
type DayService struct {
	repo        storage.Repository
	logger      *slog.Logger
	opts        profit.Options
	defaultRate float64
}

// NewDayService creates a day service. opts controls allocation behaviour;
// defaultRate seeds new days submitted without a rate (0 keeps the engine's
// built-in default).
func NewDayService(repo storage.Repository, logger *slog.Logger, opts profit.Options, defaultRate float64) *DayService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DayService{
		repo:        repo,
		logger:      logger,
		opts:        opts,
		defaultRate: defaultRate,
	}
}

// EntryProduct is one product row of an entry-form submission.
type EntryProduct struct {
	Name         string
	Quantity     int
	SalePrice    float64
	PurchaseCost float64
}

// EntryRequest is one entry-form submission: product rows for a single page
// plus the page's cumulative shared costs and optional day globals.
type EntryRequest struct {
	Date     string
	PageName string
	Products []EntryProduct

	ReturnPercent         float64
	DeliveryChargePerUnit float64
	PackagingCostPerUnit  float64
	CODFeePercent         float64

	// Cumulative page totals for the day, as stated by the operator.
	PageAdSpendForeign float64
	PageSalary         float64

	// DollarRate applies to the submitted batches and, when nonzero, becomes
	// the day's rate.
	DollarRate float64

	// Optional day-wide overwrites.
	ManagementSalary *float64
	OfficeCost       *float64
	DailyBonus       *float64
}

// SubmitEntry folds an entry-form submission into the day's record and
// persists the reallocated result. The page name is remembered for future
// entries.
func (s *DayService) SubmitEntry(req EntryRequest) (*profit.DailyRecord, error) {
	if req.Date == "" {
		return nil, fmt.Errorf("date is required")
	}
	if req.PageName == "" {
		return nil, fmt.Errorf("page name is required")
	}

	existing, err := s.repo.GetDay(req.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to read day %s: %w", req.Date, err)
	}

	batches := make([]profit.Batch, 0, len(req.Products))
	for _, p := range req.Products {
		name := p.Name
		if name == "" {
			name = "General"
		}
		batches = append(batches, profit.Batch{
			ProductName:           name,
			TotalOrders:           p.Quantity,
			SalePrice:             p.SalePrice,
			PurchaseCost:          p.PurchaseCost,
			ReturnPercent:         req.ReturnPercent,
			DollarRate:            req.DollarRate,
			DeliveryChargePerUnit: req.DeliveryChargePerUnit,
			PackagingCostPerUnit:  req.PackagingCostPerUnit,
			CODFeePercent:         req.CODFeePercent,
		})
	}

	globals := profit.GlobalUpdates{
		ManagementSalary: req.ManagementSalary,
		OfficeCost:       req.OfficeCost,
		DailyBonus:       req.DailyBonus,
	}
	switch {
	case req.DollarRate != 0:
		globals.DollarRate = &req.DollarRate
	case existing == nil && s.defaultRate != 0:
		globals.DollarRate = &s.defaultRate
	}

	merged := profit.Merge(existing, profit.Submission{
		Date:               req.Date,
		PageName:           req.PageName,
		Batches:            batches,
		PageAdSpendForeign: req.PageAdSpendForeign,
		PageSalary:         req.PageSalary,
		Globals:            globals,
	})

	day := profit.AllocateWith(merged, s.opts)
	if err := s.repo.SaveDay(&day); err != nil {
		return nil, fmt.Errorf("failed to save day %s: %w", req.Date, err)
	}

	if err := s.repo.AddPage(req.PageName); err != nil {
		s.logger.Warn("failed to record page name", "page", req.PageName, "error", err)
	}

	s.logger.Info("entry submitted",
		"date", req.Date,
		"page", req.PageName,
		"batches", len(batches),
		"day_orders", day.Summary.TotalOrders,
	)

	return &day, nil
}

// ReplaceDay overwrites a date's record wholesale, as the analysis sheet
// does. Derived fields in the input are ignored; the record is reallocated
// before persisting.
func (s *DayService) ReplaceDay(date string, record profit.DailyRecord) (*profit.DailyRecord, error) {
	if date == "" {
		return nil, fmt.Errorf("date is required")
	}
	record.Date = date
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	for i := range record.Batches {
		if record.Batches[i].ID == "" {
			record.Batches[i].ID = uuid.NewString()
		}
	}

	day := profit.AllocateWith(record, s.opts)
	if err := s.repo.SaveDay(&day); err != nil {
		return nil, fmt.Errorf("failed to save day %s: %w", date, err)
	}

	s.logger.Info("day replaced", "date", date, "batches", len(day.Batches))
	return &day, nil
}

// GetDay returns the record for a date.
func (s *DayService) GetDay(date string) (*profit.DailyRecord, error) {
	day, err := s.repo.GetDay(date)
	if err != nil {
		return nil, fmt.Errorf("failed to read day %s: %w", date, err)
	}
	if day == nil {
		return nil, ErrNotFound
	}
	return day, nil
}

// ListDays returns all daily records, newest first.
func (s *DayService) ListDays() ([]*profit.DailyRecord, error) {
	return s.repo.ListDays()
}

// DeleteDay removes a date's record entirely.
func (s *DayService) DeleteDay(date string) error {
	day, err := s.repo.GetDay(date)
	if err != nil {
		return fmt.Errorf("failed to read day %s: %w", date, err)
	}
	if day == nil {
		return ErrNotFound
	}
	return s.repo.DeleteDay(date)
}

// DeleteBatch removes one batch row from a day and persists the reallocated
// remainder.
func (s *DayService) DeleteBatch(date, batchID string) (*profit.DailyRecord, error) {
	day, err := s.repo.GetDay(date)
	if err != nil {
		return nil, fmt.Errorf("failed to read day %s: %w", date, err)
	}
	if day == nil {
		return nil, ErrNotFound
	}

	kept := make([]profit.Batch, 0, len(day.Batches))
	found := false
	for _, b := range day.Batches {
		if b.ID == batchID {
			found = true
			continue
		}
		kept = append(kept, b)
	}
	if !found {
		return nil, ErrNotFound
	}
	day.Batches = kept

	updated := profit.AllocateWith(*day, s.opts)
	if err := s.repo.SaveDay(&updated); err != nil {
		return nil, fmt.Errorf("failed to save day %s: %w", date, err)
	}

	s.logger.Info("batch deleted", "date", date, "batch", batchID)
	return &updated, nil
}
