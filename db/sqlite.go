package db

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// ConnectToSQLite initializes and returns a SQLite connection
func ConnectToSQLite(dbPath string) (*sql.DB, error) {
	// Ensure the directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory for SQLite: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	log.Println("Connected to SQLite database")
	return db, nil
}

// InitializeSchema creates all the necessary tables if they don't exist
func InitializeSchema(db *sql.DB) error {
	// Create vins table
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS vins (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		vin TEXT NOT NULL,
		year TEXT,
		make TEXT,
		model TEXT,
		color TEXT,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		UNIQUE (user_id, vin)
	)`)
	if err != nil {
		return fmt.Errorf("failed to create vins table: %w", err)
	}

	// Create listing_cache table. The listing set is stored as a JSON
	// document so a refresh can replace the whole entry in one write.
	_, err = db.Exec(`
	CREATE TABLE IF NOT EXISTS listing_cache (
		vin TEXT PRIMARY KEY,
		listings TEXT NOT NULL,
		last_updated TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("failed to create listing_cache table: %w", err)
	}

	// Create settings table
	_, err = db.Exec(`
	CREATE TABLE IF NOT EXISTS settings (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE,
		refresh_interval TEXT NOT NULL,
		created_at TIMESTAMP,
		updated_at TIMESTAMP
	)`)
	if err != nil {
		return fmt.Errorf("failed to create settings table: %w", err)
	}

	log.Println("Database schema initialized successfully")
	return nil
}
