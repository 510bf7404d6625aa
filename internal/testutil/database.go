// Package testutil provides shared helpers for setting up test
// databases, building test fixtures, and constructing services under
// test.
package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// The in-memory database exists per connection; a second connection
	// from the pool would see an empty schema.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the embedded migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- Wallet table
		CREATE TABLE wallet (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			user_id VARCHAR(36) NOT NULL UNIQUE,
			balance FLOAT NOT NULL DEFAULT 0 CHECK (balance >= 0),
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		-- Asset catalog table
		CREATE TABLE asset (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			symbol VARCHAR(10) NOT NULL UNIQUE,
			name VARCHAR(100) NOT NULL,
			description TEXT,
			asset_type VARCHAR(20) NOT NULL,
			current_price FLOAT NOT NULL CHECK (current_price > 0),
			price_change_24h FLOAT NOT NULL DEFAULT 0,
			risk_level VARCHAR(10) NOT NULL,
			min_investment FLOAT NOT NULL DEFAULT 0,
			is_active BOOLEAN NOT NULL DEFAULT TRUE
		);

		-- Position table
		CREATE TABLE position (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			user_id VARCHAR(36) NOT NULL,
			asset_id VARCHAR(36) NOT NULL,
			quantity FLOAT NOT NULL CHECK (quantity > 0),
			purchase_price FLOAT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(asset_id) REFERENCES asset(id),
			CONSTRAINT unique_user_asset UNIQUE (user_id, asset_id)
		);

		-- Transaction table (quoted because transaction is a reserved keyword)
		CREATE TABLE "transaction" (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			user_id VARCHAR(36) NOT NULL,
			type VARCHAR(10) NOT NULL,
			amount FLOAT NOT NULL,
			asset_id VARCHAR(36),
			quantity FLOAT,
			description TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(asset_id) REFERENCES asset(id)
		);

		-- Assistant gateway settings table
		CREATE TABLE assistant_config (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			api_key VARCHAR(500) NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX ix_position_user_id ON position(user_id);
		CREATE INDEX ix_position_user_asset ON position(user_id, asset_id);
		CREATE INDEX ix_transaction_user_id ON "transaction"(user_id);
		CREATE INDEX ix_transaction_user_created ON "transaction"(user_id, created_at);
		CREATE INDEX ix_asset_is_active ON asset(is_active);
	`

	_, err := db.Exec(schema)
	return err
}

// CleanDatabase removes all rows from all tables.
// Useful for resetting state between subtests sharing a database.
func CleanDatabase(t *testing.T, db *sql.DB) {
	t.Helper()

	tables := []string{
		"transaction",
		"position",
		"wallet",
		"asset",
		"assistant_config",
	}

	for _, table := range tables {
		query := `DELETE FROM "` + table + `"`
		if _, err := db.Exec(query); err != nil {
			t.Fatalf("Failed to clean table %s: %v", table, err)
		}
	}
}

// CountRows returns the number of rows in a table.
// Useful for assertions in tests.
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var count int
	query := `SELECT COUNT(*) FROM "` + table + `"`
	err := db.QueryRow(query).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}

	return count
}

// AssertRowCount asserts that a table has the expected number of rows.
func AssertRowCount(t *testing.T, db *sql.DB, table string, expected int) {
	t.Helper()

	actual := CountRows(t, db, table)
	if actual != expected {
		t.Errorf("Expected %d rows in %s, got %d", expected, table, actual)
	}
}
