package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ade-gb/investlite-demo-platform/internal/apperrors"
	"github.com/ade-gb/investlite-demo-platform/internal/model"
)

// WalletRepository provides data access methods for the wallet table.
// The balance column is only ever changed through Credit and
// DebitIfSufficient so that every mutation is a single atomic UPDATE.
type WalletRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewWalletRepository creates a new WalletRepository with the provided database connection.
func NewWalletRepository(db *sql.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

// WithTx returns a new WalletRepository scoped to the provided transaction.
func (r *WalletRepository) WithTx(tx *sql.Tx) *WalletRepository {
	return &WalletRepository{
		db: r.db,
		tx: tx,
	}
}

// getQuerier returns the active transaction if one is set, otherwise the database connection.
func (r *WalletRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// GetOrCreate returns the owner's wallet, creating an empty one on first
// access. Wallets are never deleted.
func (r *WalletRepository) GetOrCreate(ctx context.Context, userID string) (model.Wallet, error) {
	insert := `
		INSERT INTO wallet (id, user_id, balance, updated_at)
		VALUES (?, ?, 0, ?)
		ON CONFLICT(user_id) DO NOTHING
	`
	_, err := r.getQuerier().ExecContext(ctx, insert, uuid.New().String(), userID, FormatTime(time.Now()))
	if err != nil {
		return model.Wallet{}, fmt.Errorf("failed to create wallet: %w", err)
	}

	return r.Get(ctx, userID)
}

// Get retrieves the owner's wallet. Returns ErrWalletNotFound if the owner
// has never accessed a wallet.
func (r *WalletRepository) Get(ctx context.Context, userID string) (model.Wallet, error) {
	query := `
		SELECT id, user_id, balance, updated_at
		FROM wallet
		WHERE user_id = ?
	`

	var w model.Wallet
	var updatedAtStr string
	err := r.getQuerier().QueryRowContext(ctx, query, userID).Scan(
		&w.ID,
		&w.UserID,
		&w.Balance,
		&updatedAtStr,
	)
	if err == sql.ErrNoRows {
		return model.Wallet{}, apperrors.ErrWalletNotFound
	}
	if err != nil {
		return model.Wallet{}, fmt.Errorf("failed to scan wallet: %w", err)
	}

	w.UpdatedAt, err = ParseTime(updatedAtStr)
	if err != nil {
		return model.Wallet{}, err
	}

	return w, nil
}

// Credit atomically increases the wallet balance.
func (r *WalletRepository) Credit(ctx context.Context, userID string, amount float64) error {
	query := `
		UPDATE wallet
		SET balance = balance + ?, updated_at = ?
		WHERE user_id = ?
	`

	result, err := r.getQuerier().ExecContext(ctx, query, amount, FormatTime(time.Now()), userID)
	if err != nil {
		return fmt.Errorf("failed to credit wallet: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check credit result: %w", err)
	}
	if rows == 0 {
		return apperrors.ErrWalletNotFound
	}

	return nil
}

// DebitIfSufficient atomically decreases the wallet balance only if the
// current balance covers the amount. The conditional update is what keeps
// the balance from ever going negative under concurrent debits.
// Returns ErrInsufficientFunds when the balance is too low.
func (r *WalletRepository) DebitIfSufficient(ctx context.Context, userID string, amount float64) error {
	query := `
		UPDATE wallet
		SET balance = balance - ?, updated_at = ?
		WHERE user_id = ? AND balance >= ?
	`

	result, err := r.getQuerier().ExecContext(ctx, query, amount, FormatTime(time.Now()), userID, amount)
	if err != nil {
		return fmt.Errorf("failed to debit wallet: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check debit result: %w", err)
	}
	if rows == 0 {
		// The row exists (wallets are created before any debit), so a
		// zero-row update means the balance check failed.
		return apperrors.ErrInsufficientFunds
	}

	return nil
}
