package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ade-gb/investlite-demo-platform/internal/apperrors"
	"github.com/ade-gb/investlite-demo-platform/internal/model"
)

// PositionRepository provides data access methods for the position table.
// A position row exists only while quantity > 0; full sales delete the row.
type PositionRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewPositionRepository creates a new PositionRepository with the provided database connection.
func NewPositionRepository(db *sql.DB) *PositionRepository {
	return &PositionRepository{db: db}
}

// WithTx returns a new PositionRepository scoped to the provided transaction.
func (r *PositionRepository) WithTx(tx *sql.Tx) *PositionRepository {
	return &PositionRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *PositionRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func scanPosition(row interface{ Scan(...any) error }) (model.Position, error) {
	var p model.Position
	var createdAtStr string
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.AssetID,
		&p.Quantity,
		&p.PurchasePrice,
		&createdAtStr,
	)
	if err != nil {
		return model.Position{}, err
	}

	p.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Position{}, err
	}
	return p, nil
}

// Get retrieves a position by ID, scoped to its owner.
// Returns ErrPositionNotFound if no such position exists for the owner.
func (r *PositionRepository) Get(ctx context.Context, positionID, userID string) (model.Position, error) {
	query := `
		SELECT id, user_id, asset_id, quantity, purchase_price, created_at
		FROM position
		WHERE id = ? AND user_id = ?
	`

	p, err := scanPosition(r.getQuerier().QueryRowContext(ctx, query, positionID, userID))
	if err == sql.ErrNoRows {
		return model.Position{}, apperrors.ErrPositionNotFound
	}
	if err != nil {
		return model.Position{}, fmt.Errorf("failed to scan position: %w", err)
	}

	return p, nil
}

// GetByUserAndAsset retrieves the owner's position in one asset, if any.
// Returns ErrPositionNotFound when the owner holds no units of the asset.
func (r *PositionRepository) GetByUserAndAsset(ctx context.Context, userID, assetID string) (model.Position, error) {
	query := `
		SELECT id, user_id, asset_id, quantity, purchase_price, created_at
		FROM position
		WHERE user_id = ? AND asset_id = ?
	`

	p, err := scanPosition(r.getQuerier().QueryRowContext(ctx, query, userID, assetID))
	if err == sql.ErrNoRows {
		return model.Position{}, apperrors.ErrPositionNotFound
	}
	if err != nil {
		return model.Position{}, fmt.Errorf("failed to scan position: %w", err)
	}

	return p, nil
}

// Insert persists a new position.
func (r *PositionRepository) Insert(ctx context.Context, p *model.Position) error {
	query := `
		INSERT INTO position (id, user_id, asset_id, quantity, purchase_price, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		p.ID,
		p.UserID,
		p.AssetID,
		p.Quantity,
		p.PurchasePrice,
		FormatTime(p.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert position: %w", err)
	}

	return nil
}

// UpdateHolding replaces a position's quantity and average cost after a buy
// merges a new lot in. Sales use UpdateQuantity instead, because selling
// never changes the cost basis.
func (r *PositionRepository) UpdateHolding(ctx context.Context, positionID string, quantity, purchasePrice float64) error {
	query := `
		UPDATE position
		SET quantity = ?, purchase_price = ?
		WHERE id = ?
	`

	result, err := r.getQuerier().ExecContext(ctx, query, quantity, purchasePrice, positionID)
	if err != nil {
		return fmt.Errorf("failed to update position: %w", err)
	}
	return requireRow(result, apperrors.ErrPositionNotFound)
}

// UpdateQuantity replaces a position's quantity, leaving the cost basis untouched.
func (r *PositionRepository) UpdateQuantity(ctx context.Context, positionID string, quantity float64) error {
	query := `
		UPDATE position
		SET quantity = ?
		WHERE id = ?
	`

	result, err := r.getQuerier().ExecContext(ctx, query, quantity, positionID)
	if err != nil {
		return fmt.Errorf("failed to update position quantity: %w", err)
	}
	return requireRow(result, apperrors.ErrPositionNotFound)
}

// Delete removes a fully sold position.
func (r *PositionRepository) Delete(ctx context.Context, positionID string) error {
	result, err := r.getQuerier().ExecContext(ctx, `DELETE FROM position WHERE id = ?`, positionID)
	if err != nil {
		return fmt.Errorf("failed to delete position: %w", err)
	}
	return requireRow(result, apperrors.ErrPositionNotFound)
}

// ListByUser retrieves all of an owner's positions joined with asset
// display fields and current prices, newest first.
func (r *PositionRepository) ListByUser(ctx context.Context, userID string) ([]model.PositionResponse, error) {
	query := `
		SELECT
			p.id,
			p.asset_id,
			a.name,
			a.symbol,
			p.quantity,
			p.purchase_price,
			a.current_price,
			p.created_at
		FROM position p
		JOIN asset a ON p.asset_id = a.id
		WHERE p.user_id = ?
		ORDER BY p.created_at DESC
	`

	rows, err := r.getQuerier().QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query position table: %w", err)
	}
	defer rows.Close()

	positions := []model.PositionResponse{}
	for rows.Next() {
		var p model.PositionResponse
		var createdAtStr string

		err := rows.Scan(
			&p.ID,
			&p.AssetID,
			&p.AssetName,
			&p.AssetSymbol,
			&p.Quantity,
			&p.PurchasePrice,
			&p.CurrentPrice,
			&createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan position row: %w", err)
		}

		p.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, err
		}

		positions = append(positions, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating position table: %w", err)
	}

	return positions, nil
}

// requireRow converts a zero-row update into the given sentinel error.
func requireRow(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
