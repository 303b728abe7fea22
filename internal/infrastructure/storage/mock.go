package storage

import (
	"sort"
	"strings"

	"github.com/ecpm-app/ecpm-backend/internal/domain/profit"
	"github.com/google/uuid"
)

// MockRepository is an in-memory implementation of Repository for testing.
// It stores all data in maps, making tests fast and isolated.
type MockRepository struct {
	days     map[string]*profit.DailyRecord // keyed by date
	pages    map[string]bool
	products map[string]*SavedProduct // keyed by id

	// Hooks for test assertions
	SaveDayCalled bool
	LastSavedDay  *profit.DailyRecord
	GetDayCalled  bool

	// Error injection for testing error paths
	SaveDayErr     error
	GetDayErr      error
	ListDaysErr    error
	DeleteDayErr   error
	AddPageErr     error
	SaveProductErr error
}

// Compile-time check that MockRepository implements Repository
var _ Repository = (*MockRepository)(nil)

// NewMockRepository creates a new mock repository for testing
func NewMockRepository() *MockRepository {
	return &MockRepository{
		days:     make(map[string]*profit.DailyRecord),
		pages:    make(map[string]bool),
		products: make(map[string]*SavedProduct),
	}
}

// AddDay seeds a record directly, bypassing the hooks.
func (m *MockRepository) AddDay(record *profit.DailyRecord) {
	cp := *record
	m.days[record.Date] = &cp
}

func (m *MockRepository) SaveDay(record *profit.DailyRecord) error {
	m.SaveDayCalled = true
	if m.SaveDayErr != nil {
		return m.SaveDayErr
	}
	cp := *record
	m.days[record.Date] = &cp
	m.LastSavedDay = &cp
	return nil
}

func (m *MockRepository) GetDay(date string) (*profit.DailyRecord, error) {
	m.GetDayCalled = true
	if m.GetDayErr != nil {
		return nil, m.GetDayErr
	}
	record, ok := m.days[date]
	if !ok {
		return nil, nil
	}
	cp := *record
	return &cp, nil
}

func (m *MockRepository) ListDays() ([]*profit.DailyRecord, error) {
	if m.ListDaysErr != nil {
		return nil, m.ListDaysErr
	}
	records := make([]*profit.DailyRecord, 0, len(m.days))
	for _, r := range m.days {
		cp := *r
		records = append(records, &cp)
	}
	// Newest date first, matching the sqlite implementation.
	sort.Slice(records, func(i, j int) bool { return records[i].Date > records[j].Date })
	return records, nil
}

func (m *MockRepository) DeleteDay(date string) error {
	if m.DeleteDayErr != nil {
		return m.DeleteDayErr
	}
	delete(m.days, date)
	return nil
}

func (m *MockRepository) AddPage(name string) error {
	if m.AddPageErr != nil {
		return m.AddPageErr
	}
	m.pages[name] = true
	return nil
}

func (m *MockRepository) ListPages() ([]string, error) {
	names := make([]string, 0, len(m.pages))
	for name := range m.pages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (m *MockRepository) DeletePage(name string) error {
	delete(m.pages, name)
	return nil
}

func (m *MockRepository) SaveProduct(p *SavedProduct) error {
	if m.SaveProductErr != nil {
		return m.SaveProductErr
	}
	for _, existing := range m.products {
		if strings.EqualFold(existing.Name, p.Name) {
			p.ID = existing.ID
			cp := *p
			m.products[existing.ID] = &cp
			return nil
		}
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	cp := *p
	m.products[p.ID] = &cp
	return nil
}

func (m *MockRepository) ListProducts() ([]SavedProduct, error) {
	products := make([]SavedProduct, 0, len(m.products))
	for _, p := range m.products {
		products = append(products, *p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	return products, nil
}

func (m *MockRepository) DeleteProduct(id string) error {
	delete(m.products, id)
	return nil
}

func (m *MockRepository) Close() error {
	return nil
}
