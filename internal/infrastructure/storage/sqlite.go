package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ecpm-app/ecpm-backend/internal/domain/profit"
	"github.com/google/uuid"
)

// Storage provides SQLite database access for daily records, page names and
// saved products. It implements the Repository interface.
type Storage struct {
	db *sql.DB
}

// Compile-time check that Storage implements Repository
var _ Repository = (*Storage)(nil)

// NewStorage creates a new storage instance with SQLite database
func NewStorage(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Storage{db: db}

	if err := s.runMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// SaveDay saves or replaces the record for its date
func (s *Storage) SaveDay(record *profit.DailyRecord) error {
	batchesJSON, err := json.Marshal(record.Batches)
	if err != nil {
		return fmt.Errorf("failed to marshal batches: %w", err)
	}
	summaryJSON, err := json.Marshal(record.Summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	query := `
	INSERT OR REPLACE INTO daily_records
	(date, id, dollar_rate, total_mgmt_salary, total_office_cost,
	 total_daily_bonus, batches_json, summary_json, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`

	_, err = s.db.Exec(query,
		record.Date,
		record.ID,
		record.DollarRate,
		record.TotalManagementSalary,
		record.TotalOfficeCost,
		record.TotalDailyBonus,
		string(batchesJSON),
		string(summaryJSON),
	)

	return err
}

// GetDay retrieves the record for a date, or (nil, nil) when absent
func (s *Storage) GetDay(date string) (*profit.DailyRecord, error) {
	query := `
	SELECT date, id, dollar_rate, total_mgmt_salary, total_office_cost,
	       total_daily_bonus, batches_json, summary_json
	FROM daily_records WHERE date = ?
	`

	record, err := scanDay(s.db.QueryRow(query, date))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

// ListDays returns all daily records, newest date first
func (s *Storage) ListDays() ([]*profit.DailyRecord, error) {
	query := `
	SELECT date, id, dollar_rate, total_mgmt_salary, total_office_cost,
	       total_daily_bonus, batches_json, summary_json
	FROM daily_records
	ORDER BY date DESC
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	records := make([]*profit.DailyRecord, 0)
	for rows.Next() {
		record, err := scanDay(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// DeleteDay removes the record for a date
func (s *Storage) DeleteDay(date string) error {
	_, err := s.db.Exec(`DELETE FROM daily_records WHERE date = ?`, date)
	return err
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanDay(row scanner) (*profit.DailyRecord, error) {
	record := &profit.DailyRecord{}
	var batchesJSON, summaryJSON string

	err := row.Scan(
		&record.Date,
		&record.ID,
		&record.DollarRate,
		&record.TotalManagementSalary,
		&record.TotalOfficeCost,
		&record.TotalDailyBonus,
		&batchesJSON,
		&summaryJSON,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(batchesJSON), &record.Batches); err != nil {
		return nil, fmt.Errorf("failed to unmarshal batches for %s: %w", record.Date, err)
	}
	if err := json.Unmarshal([]byte(summaryJSON), &record.Summary); err != nil {
		return nil, fmt.Errorf("failed to unmarshal summary for %s: %w", record.Date, err)
	}

	return record, nil
}

// AddPage records a page name; duplicates are ignored
func (s *Storage) AddPage(name string) error {
	_, err := s.db.Exec(`INSERT OR IGNORE INTO page_names (name) VALUES (?)`, name)
	return err
}

// ListPages returns all known page names, sorted
func (s *Storage) ListPages() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM page_names ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

// DeletePage removes a page name from the list
func (s *Storage) DeletePage(name string) error {
	_, err := s.db.Exec(`DELETE FROM page_names WHERE name = ?`, name)
	return err
}

// SaveProduct inserts or updates a product, matching case-insensitively by name
func (s *Storage) SaveProduct(p *SavedProduct) error {
	var existingID string
	err := s.db.QueryRow(
		`SELECT id FROM saved_products WHERE lower(name) = lower(?)`, p.Name,
	).Scan(&existingID)

	switch {
	case err == sql.ErrNoRows:
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		_, err = s.db.Exec(`
			INSERT INTO saved_products (id, name, default_sale_price, default_buy_price)
			VALUES (?, ?, ?, ?)
		`, p.ID, p.Name, p.DefaultSalePrice, p.DefaultBuyPrice)
		return err
	case err != nil:
		return err
	default:
		p.ID = existingID
		_, err = s.db.Exec(`
			UPDATE saved_products
			SET name = ?, default_sale_price = ?, default_buy_price = ?
			WHERE id = ?
		`, p.Name, p.DefaultSalePrice, p.DefaultBuyPrice, existingID)
		return err
	}
}

// ListProducts returns all saved products, sorted by name
func (s *Storage) ListProducts() ([]SavedProduct, error) {
	rows, err := s.db.Query(`
		SELECT id, name, default_sale_price, default_buy_price
		FROM saved_products ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	products := make([]SavedProduct, 0)
	for rows.Next() {
		var p SavedProduct
		if err := rows.Scan(&p.ID, &p.Name, &p.DefaultSalePrice, &p.DefaultBuyPrice); err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

// DeleteProduct removes a product by ID
func (s *Storage) DeleteProduct(id string) error {
	_, err := s.db.Exec(`DELETE FROM saved_products WHERE id = ?`, id)
	return err
}
