package storage

import "github.com/ecpm-app/ecpm-backend/internal/domain/profit"

// Repository defines the complete storage interface.
// This interface allows swapping implementations and makes testing with the
// in-memory mock straightforward.
type Repository interface {
	DayRepository
	PageRepository
	ProductRepository
	Close() error
}

// DayRepository persists one record per calendar date. Writes are full-record
// overwrites; the later writer wins.
type DayRepository interface {
	// SaveDay saves or replaces the record for its date.
	SaveDay(record *profit.DailyRecord) error

	// GetDay retrieves the record for a date. Returns (nil, nil) when no
	// record exists for that date.
	GetDay(date string) (*profit.DailyRecord, error)

	// ListDays returns all daily records, newest date first.
	ListDays() ([]*profit.DailyRecord, error)

	// DeleteDay removes the record for a date. Deleting an absent date is
	// not an error.
	DeleteDay(date string) error
}

// PageRepository maintains the list of known page names.
type PageRepository interface {
	// AddPage records a page name. Adding an existing name is a no-op.
	AddPage(name string) error

	// ListPages returns all known page names, sorted.
	ListPages() ([]string, error)

	// DeletePage removes a page name from the list.
	DeletePage(name string) error
}

// ProductRepository maintains the saved-product convenience list used to
// prefill entry forms.
type ProductRepository interface {
	// SaveProduct inserts or updates a product, matching existing entries
	// case-insensitively by name.
	SaveProduct(p *SavedProduct) error

	// ListProducts returns all saved products, sorted by name.
	ListProducts() ([]SavedProduct, error)

	// DeleteProduct removes a product by ID.
	DeleteProduct(id string) error
}
