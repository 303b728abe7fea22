package storage

// SavedProduct is a reusable product with default prices, used to prefill
// the entry form.
type SavedProduct struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	DefaultSalePrice float64 `json:"defaultSalePrice"`
	DefaultBuyPrice  float64 `json:"defaultBuyPrice"`
}
