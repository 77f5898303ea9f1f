package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"vintrack/internal/util"
	"vintrack/models"
)

// SQLiteVINRepository implements the VINRepository interface for SQLite
type SQLiteVINRepository struct {
	db *sql.DB
}

// NewSQLiteVINRepository creates a new SQLiteVINRepository
func NewSQLiteVINRepository(db *sql.DB) *SQLiteVINRepository {
	return &SQLiteVINRepository{db: db}
}

// Close closes the database connection
func (r *SQLiteVINRepository) Close() error {
	return r.db.Close()
}

const vinColumns = `id, user_id, vin, year, make, model, color, created_at, updated_at`

func scanVIN(row interface{ Scan(...interface{}) error }) (*models.VIN, error) {
	var record models.VIN
	var year, makeName, model, color sql.NullString

	err := row.Scan(&record.ID, &record.UserID, &record.VIN,
		&year, &makeName, &model, &color, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error scanning vin record: %w", err)
	}

	if year.Valid {
		record.Year = year.String
	}
	if makeName.Valid {
		record.Make = makeName.String
	}
	if model.Valid {
		record.Model = model.String
	}
	if color.Valid {
		record.Color = color.String
	}

	return &record, nil
}

// FindByID finds a VIN record by ID
func (r *SQLiteVINRepository) FindByID(ctx context.Context, id string) (*models.VIN, error) {
	query := `SELECT ` + vinColumns + ` FROM vins WHERE id = ?`
	return scanVIN(r.db.QueryRowContext(ctx, query, id))
}

// FindByUserAndVIN finds a VIN record by owner and VIN value
func (r *SQLiteVINRepository) FindByUserAndVIN(ctx context.Context, userID, vin string) (*models.VIN, error) {
	query := `SELECT ` + vinColumns + ` FROM vins WHERE user_id = ? AND vin = ?`
	return scanVIN(r.db.QueryRowContext(ctx, query, userID, vin))
}

// FindAllByUserID finds all VIN records owned by a user
func (r *SQLiteVINRepository) FindAllByUserID(ctx context.Context, userID string) ([]*models.VIN, error) {
	query := `SELECT ` + vinColumns + ` FROM vins WHERE user_id = ? ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying vins: %w", err)
	}
	defer rows.Close()

	var records []*models.VIN
	for rows.Next() {
		record, err := scanVIN(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over vin rows: %w", err)
	}

	return records, nil
}

// CreateOrUpdate creates a VIN record, or updates the existing record when the
// owner already tracks the same VIN value.
func (r *SQLiteVINRepository) CreateOrUpdate(ctx context.Context, record *models.VIN) (*models.VIN, error) {
	now := time.Now()
	record.UpdatedAt = now

	existing, err := r.FindByUserAndVIN(ctx, record.UserID, record.VIN)
	if err != nil && err != ErrNotFound {
		return nil, err
	}

	if err == ErrNotFound {
		if record.ID == "" {
			record.ID = GenerateID()
		}
		record.CreatedAt = now

		query := `INSERT INTO vins (` + vinColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
		insertErr := util.RetryOnLock(func() error {
			_, err := r.db.ExecContext(ctx, query,
				record.ID, record.UserID, record.VIN,
				nullableString(record.Year), nullableString(record.Make),
				nullableString(record.Model), nullableString(record.Color),
				record.CreatedAt, record.UpdatedAt)
			return err
		})
		if insertErr != nil {
			return nil, fmt.Errorf("error inserting vin record: %w", insertErr)
		}
	} else {
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt

		query := `UPDATE vins SET year = ?, make = ?, model = ?, color = ?, updated_at = ? WHERE id = ?`
		updateErr := util.RetryOnLock(func() error {
			_, err := r.db.ExecContext(ctx, query,
				nullableString(record.Year), nullableString(record.Make),
				nullableString(record.Model), nullableString(record.Color),
				record.UpdatedAt, record.ID)
			return err
		})
		if updateErr != nil {
			return nil, fmt.Errorf("error updating vin record: %w", updateErr)
		}
	}

	return record, nil
}

// DeleteByID deletes a VIN record by ID
func (r *SQLiteVINRepository) DeleteByID(ctx context.Context, id string) error {
	err := util.RetryOnLock(func() error {
		_, err := r.db.ExecContext(ctx, `DELETE FROM vins WHERE id = ?`, id)
		return err
	})
	if err != nil {
		return fmt.Errorf("error deleting vin record: %w", err)
	}
	return nil
}

// SQLiteListingCacheRepository implements the ListingCacheRepository interface
// for SQLite. Each cache entry is one row keyed by VIN with the listing set
// serialized as JSON, so concurrent writers to different VIN keys never touch
// the same row.
type SQLiteListingCacheRepository struct {
	db *sql.DB
}

// NewSQLiteListingCacheRepository creates a new SQLiteListingCacheRepository
func NewSQLiteListingCacheRepository(db *sql.DB) *SQLiteListingCacheRepository {
	return &SQLiteListingCacheRepository{db: db}
}

// Close closes the database connection
func (r *SQLiteListingCacheRepository) Close() error {
	return r.db.Close()
}

// Find finds the cache entry for a VIN
func (r *SQLiteListingCacheRepository) Find(ctx context.Context, vin string) (*models.ListingCache, error) {
	query := `SELECT vin, listings, last_updated FROM listing_cache WHERE vin = ?`
	row := r.db.QueryRowContext(ctx, query, vin)

	var entry models.ListingCache
	var listingsJSON string

	err := row.Scan(&entry.VIN, &listingsJSON, &entry.LastUpdated)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error scanning listing cache: %w", err)
	}

	if err := json.Unmarshal([]byte(listingsJSON), &entry.Listings); err != nil {
		return nil, fmt.Errorf("error decoding cached listings for %s: %w", vin, err)
	}

	return &entry, nil
}

// Replace overwrites the cache entry for a VIN with the given listing set and
// stamps the entry with the current time. Any previous entry is gone after
// the call.
func (r *SQLiteListingCacheRepository) Replace(ctx context.Context, vin string, listings []models.Listing) error {
	listingsJSON, err := json.Marshal(listings)
	if err != nil {
		return fmt.Errorf("error encoding listings for %s: %w", vin, err)
	}

	lastUpdated := time.Now().Format(time.RFC3339)

	query := `INSERT INTO listing_cache (vin, listings, last_updated) VALUES (?, ?, ?)
			  ON CONFLICT (vin) DO UPDATE SET listings = excluded.listings, last_updated = excluded.last_updated`

	writeErr := util.RetryOnLock(func() error {
		_, err := r.db.ExecContext(ctx, query, vin, string(listingsJSON), lastUpdated)
		return err
	})
	if writeErr != nil {
		return fmt.Errorf("error replacing listing cache for %s: %w", vin, writeErr)
	}

	return nil
}

// Delete removes the cache entry for a VIN. Deleting a missing entry is not
// an error.
func (r *SQLiteListingCacheRepository) Delete(ctx context.Context, vin string) error {
	err := util.RetryOnLock(func() error {
		_, err := r.db.ExecContext(ctx, `DELETE FROM listing_cache WHERE vin = ?`, vin)
		return err
	})
	if err != nil {
		return fmt.Errorf("error deleting listing cache for %s: %w", vin, err)
	}
	return nil
}

// SQLiteSettingsRepository implements the SettingsRepository interface for SQLite
type SQLiteSettingsRepository struct {
	db *sql.DB
}

// NewSQLiteSettingsRepository creates a new SQLiteSettingsRepository
func NewSQLiteSettingsRepository(db *sql.DB) *SQLiteSettingsRepository {
	return &SQLiteSettingsRepository{db: db}
}

// Close closes the database connection
func (r *SQLiteSettingsRepository) Close() error {
	return r.db.Close()
}

// FindByUserID finds settings by user ID
func (r *SQLiteSettingsRepository) FindByUserID(ctx context.Context, userID string) (*models.Settings, error) {
	query := `SELECT id, user_id, refresh_interval, created_at, updated_at FROM settings WHERE user_id = ?`
	row := r.db.QueryRowContext(ctx, query, userID)

	var settings models.Settings
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(&settings.ID, &settings.UserID, &settings.RefreshInterval, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error scanning settings: %w", err)
	}

	if createdAt.Valid {
		settings.CreatedAt = &createdAt.Time
	}
	if updatedAt.Valid {
		settings.UpdatedAt = &updatedAt.Time
	}

	return &settings, nil
}

// FindAllByInterval finds all settings that selected the given refresh cadence
func (r *SQLiteSettingsRepository) FindAllByInterval(ctx context.Context, interval models.RefreshInterval) ([]*models.Settings, error) {
	query := `SELECT id, user_id, refresh_interval, created_at, updated_at FROM settings WHERE refresh_interval = ?`
	rows, err := r.db.QueryContext(ctx, query, string(interval))
	if err != nil {
		return nil, fmt.Errorf("error querying settings: %w", err)
	}
	defer rows.Close()

	var all []*models.Settings
	for rows.Next() {
		var settings models.Settings
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(&settings.ID, &settings.UserID, &settings.RefreshInterval, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("error scanning settings: %w", err)
		}
		if createdAt.Valid {
			settings.CreatedAt = &createdAt.Time
		}
		if updatedAt.Valid {
			settings.UpdatedAt = &updatedAt.Time
		}
		all = append(all, &settings)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over settings rows: %w", err)
	}

	return all, nil
}

// Create creates new settings
func (r *SQLiteSettingsRepository) Create(ctx context.Context, settings *models.Settings) error {
	query := `INSERT INTO settings (id, user_id, refresh_interval, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?)`

	err := util.RetryOnLock(func() error {
		_, err := r.db.ExecContext(ctx, query, settings.ID, settings.UserID,
			string(settings.RefreshInterval), nullableTime(settings.CreatedAt), nullableTime(settings.UpdatedAt))
		return err
	})
	if err != nil {
		return fmt.Errorf("error creating settings: %w", err)
	}

	return nil
}

// Update updates existing settings
func (r *SQLiteSettingsRepository) Update(ctx context.Context, settings *models.Settings) error {
	query := `UPDATE settings SET refresh_interval = ?, updated_at = ? WHERE id = ?`

	err := util.RetryOnLock(func() error {
		_, err := r.db.ExecContext(ctx, query,
			string(settings.RefreshInterval), nullableTime(settings.UpdatedAt), settings.ID)
		return err
	})
	if err != nil {
		return fmt.Errorf("error updating settings: %w", err)
	}

	return nil
}

// Helper functions for handling nullable values
func nullableString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullableTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
