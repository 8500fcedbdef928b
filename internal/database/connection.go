package database

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DB is the global database connection
var DB *sqlx.DB

// Connect establishes a connection to the database. DATABASE_URL selects
// the backend: a postgres:// URL connects to PostgreSQL, anything else
// (including empty) is treated as a SQLite file path.
func Connect() error {
	url := os.Getenv("DATABASE_URL")

	var db *sqlx.DB
	var err error

	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		db, err = sqlx.Connect("postgres", url)
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %v", err)
		}
	} else {
		path := url
		if path == "" {
			dataDir := "data"
			if err := os.MkdirAll(dataDir, 0755); err != nil {
				return fmt.Errorf("failed to create data directory: %v", err)
			}
			path = filepath.Join(dataDir, "puntosbot.db")
		}

		db, err = sqlx.Connect("sqlite3", path)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %v", err)
		}

		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	DB = db

	return initializeSchema()
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema() error {
	// Create users table
	_, err := DB.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			display_name TEXT DEFAULT 'Usuario',
			total_score INTEGER DEFAULT 0,
			last_congratulated INTEGER DEFAULT 0,
			monthly_scores TEXT DEFAULT '{}',
			hours TEXT DEFAULT '{}',
			week TEXT DEFAULT '{}',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create users table: %v", err)
	}

	// Create facts table
	var factsSchema string
	if DB.DriverName() == "postgres" {
		factsSchema = `
			CREATE TABLE IF NOT EXISTS facts (
				id SERIAL PRIMARY KEY,
				text TEXT NOT NULL
			)
		`
	} else {
		factsSchema = `
			CREATE TABLE IF NOT EXISTS facts (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				text TEXT NOT NULL
			)
		`
	}
	_, err = DB.Exec(factsSchema)
	if err != nil {
		return fmt.Errorf("failed to create facts table: %v", err)
	}

	// Create sessions table
	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			data TEXT NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create sessions table: %v", err)
	}

	return nil
}

// TableExists reports whether a table exists in the connected database.
// Used by /year to probe for historical snapshot tables.
func TableExists(name string) (bool, error) {
	var query string
	if DB.DriverName() == "postgres" {
		query = "SELECT COUNT(*) FROM information_schema.tables WHERE table_name = $1"
	} else {
		query = "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?"
	}

	var count int
	if err := DB.QueryRow(query, name).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check table %s: %v", name, err)
	}
	return count > 0, nil
}
