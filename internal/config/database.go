package config

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
)

// SetupDatabase initializes the database connection
func SetupDatabase(cfg *Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	// Create tables if they don't exist
	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return db, nil
}

// createTables creates the necessary tables in the database
func createTables(db *sqlx.DB) error {
	// Create firms table
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS firms (
			id VARCHAR(36) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			billing_increment DOUBLE PRECISION NOT NULL DEFAULT 0.1,
			created_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Create users table
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(36) PRIMARY KEY,
			firm_id VARCHAR(36) REFERENCES firms(id),
			email VARCHAR(255) UNIQUE NOT NULL,
			full_name VARCHAR(255) NOT NULL,
			password VARCHAR(255) NOT NULL,
			role VARCHAR(12) NOT NULL CHECK (role IN ('admin', 'lawyer', 'individual')),
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Create clients table (billing matters, soft-deleted via is_active)
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS clients (
			id VARCHAR(36) PRIMARY KEY,
			firm_id VARCHAR(36) NOT NULL REFERENCES firms(id),
			name VARCHAR(255) NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Create task_types table; NULL firm_id marks a shared global default
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS task_types (
			id VARCHAR(36) PRIMARY KEY,
			firm_id VARCHAR(36) REFERENCES firms(id),
			name VARCHAR(255) NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE
		)
	`)
	if err != nil {
		return err
	}

	// Create time_entries table
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS time_entries (
			id VARCHAR(36) PRIMARY KEY,
			user_id VARCHAR(36) NOT NULL REFERENCES users(id),
			client_id VARCHAR(36) NOT NULL REFERENCES clients(id),
			task_type_id VARCHAR(36) REFERENCES task_types(id),
			started_at TIMESTAMP NOT NULL,
			ended_at TIMESTAMP,
			exact_duration_minutes DOUBLE PRECISION,
			billable_duration DOUBLE PRECISION,
			notes TEXT,
			status VARCHAR(10) NOT NULL DEFAULT 'draft' CHECK (status IN ('draft', 'submitted')),
			created_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Create edit_requests table
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS edit_requests (
			id VARCHAR(36) PRIMARY KEY,
			time_entry_id VARCHAR(36) NOT NULL REFERENCES time_entries(id),
			requested_by VARCHAR(36) NOT NULL REFERENCES users(id),
			proposed_notes TEXT,
			proposed_duration DOUBLE PRECISION,
			proposed_task_type_id VARCHAR(36) REFERENCES task_types(id),
			status VARCHAR(10) NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'approved', 'denied')),
			created_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Create indexes for better performance
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_users_firm_id ON users(firm_id)",
		"CREATE INDEX IF NOT EXISTS idx_clients_firm_id ON clients(firm_id)",
		"CREATE INDEX IF NOT EXISTS idx_time_entries_user_id ON time_entries(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_time_entries_user_status ON time_entries(user_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_edit_requests_entry ON edit_requests(time_entry_id)",
		"CREATE INDEX IF NOT EXISTS idx_edit_requests_status ON edit_requests(status)",
	}

	for _, idx := range indexes {
		_, err = db.Exec(idx)
		if err != nil {
			log.Printf("Warning: Failed to create index: %v", err)
			// Don't return error here, indexes are not critical
		}
	}

	return seedGlobalTaskTypes(db)
}

// seedGlobalTaskTypes inserts the shared default task types once.
func seedGlobalTaskTypes(db *sqlx.DB) error {
	var count int
	if err := db.Get(&count, `SELECT COUNT(*) FROM task_types WHERE firm_id IS NULL`); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []string{
		"Research",
		"Drafting",
		"Client Communication",
		"Court Appearance",
		"Document Review",
	}

	for _, name := range defaults {
		_, err := db.Exec(
			`INSERT INTO task_types (id, firm_id, name, is_active) VALUES ($1, NULL, $2, TRUE)`,
			uuid.New().String(), name)
		if err != nil {
			return err
		}
	}

	return nil
}
