package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SettingsRepository provides data access for the assistant_config table.
// The stored API key is fernet-encrypted by the settings service before it
// reaches this layer.
type SettingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new SettingsRepository with the provided database connection.
func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetAssistantKey returns the stored (encrypted) assistant gateway API key.
// Returns sql.ErrNoRows if no key has been configured.
func (r *SettingsRepository) GetAssistantKey(ctx context.Context) (string, error) {
	query := `
		SELECT api_key
		FROM assistant_config
		ORDER BY updated_at DESC
		LIMIT 1
	`

	var key string
	err := r.db.QueryRowContext(ctx, query).Scan(&key)
	if err != nil {
		return "", err
	}
	return key, nil
}

// UpsertAssistantKey replaces the stored assistant gateway API key.
func (r *SettingsRepository) UpsertAssistantKey(ctx context.Context, encryptedKey string) error {
	// Single-row table: clear and insert.
	if _, err := r.db.ExecContext(ctx, `DELETE FROM assistant_config`); err != nil {
		return fmt.Errorf("failed to clear assistant config: %w", err)
	}

	insert := `
		INSERT INTO assistant_config (id, api_key, updated_at)
		VALUES (?, ?, ?)
	`
	if _, err := r.db.ExecContext(ctx, insert, uuid.New().String(), encryptedKey, FormatTime(time.Now())); err != nil {
		return fmt.Errorf("failed to store assistant config: %w", err)
	}

	return nil
}
