package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ade-gb/investlite-demo-platform/internal/model"
)

// TransactionRepository provides data access methods for the append-only
// transaction log. There is deliberately no update or delete method:
// entries are immutable once written.
type TransactionRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// WithTx returns a new TransactionRepository scoped to the provided transaction.
func (r *TransactionRepository) WithTx(tx *sql.Tx) *TransactionRepository {
	return &TransactionRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *TransactionRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// Insert appends one transaction to the log.
func (r *TransactionRepository) Insert(ctx context.Context, t *model.Transaction) error {
	query := `
		INSERT INTO "transaction" (id, user_id, type, amount, asset_id, quantity, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	var assetID any
	if t.AssetID != "" {
		assetID = t.AssetID
	}
	var quantity any
	if t.Quantity != 0 {
		quantity = t.Quantity
	}

	_, err := r.getQuerier().ExecContext(ctx, query,
		t.ID,
		t.UserID,
		t.Type,
		t.Amount,
		assetID,
		quantity,
		t.Description,
		FormatTime(t.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return nil
}

// ListByUser retrieves an owner's transactions in reverse chronological
// order, joined with asset display fields. A limit of 0 means unbounded,
// which reconciliation and audits rely on; the UI history uses 50.
func (r *TransactionRepository) ListByUser(ctx context.Context, userID string, limit int) ([]model.TransactionResponse, error) {
	query := `
		SELECT
			t.id,
			t.type,
			t.amount,
			t.asset_id,
			a.name,
			a.symbol,
			t.quantity,
			COALESCE(t.description, ''),
			t.created_at
		FROM "transaction" t
		LEFT JOIN asset a ON t.asset_id = a.id
		WHERE t.user_id = ?
		ORDER BY t.created_at DESC
	`

	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.getQuerier().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.TransactionResponse{}
	for rows.Next() {
		var t model.TransactionResponse
		var assetID, assetName, assetSymbol sql.NullString
		var quantity sql.NullFloat64
		var createdAtStr string

		err := rows.Scan(
			&t.ID,
			&t.Type,
			&t.Amount,
			&assetID,
			&assetName,
			&assetSymbol,
			&quantity,
			&t.Description,
			&createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}

		// Asset fields are NULL for funding transactions.
		if assetID.Valid {
			t.AssetID = assetID.String
		}
		if assetName.Valid {
			t.AssetName = assetName.String
		}
		if assetSymbol.Valid {
			t.AssetSymbol = assetSymbol.String
		}
		if quantity.Valid {
			t.Quantity = quantity.Float64
		}

		t.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, err
		}

		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return transactions, nil
}

// SumAmounts returns the signed sum of an owner's transaction amounts and
// the number of log entries. The sum must equal the wallet balance at
// every observed instant; reconciliation checks exactly that.
func (r *TransactionRepository) SumAmounts(ctx context.Context, userID string) (float64, int, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0), COUNT(*)
		FROM "transaction"
		WHERE user_id = ?
	`

	var sum float64
	var count int
	err := r.getQuerier().QueryRowContext(ctx, query, userID).Scan(&sum, &count)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to sum transactions: %w", err)
	}

	return sum, count, nil
}
