package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ade-gb/investlite-demo-platform/internal/apperrors"
	"github.com/ade-gb/investlite-demo-platform/internal/model"
)

// AssetRepository provides data access methods for the asset catalog.
// Price writes are single-row atomic updates; each asset row is its own
// conflict domain, so the simulator and trades need no cross-row locking.
type AssetRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewAssetRepository creates a new AssetRepository with the provided database connection.
func NewAssetRepository(db *sql.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

// WithTx returns a new AssetRepository scoped to the provided transaction.
func (r *AssetRepository) WithTx(tx *sql.Tx) *AssetRepository {
	return &AssetRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *AssetRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const assetColumns = `
	id, symbol, name, COALESCE(description, ''), asset_type,
	current_price, price_change_24h, risk_level, min_investment, is_active
`

func scanAsset(row interface{ Scan(...any) error }) (model.Asset, error) {
	var a model.Asset
	err := row.Scan(
		&a.ID,
		&a.Symbol,
		&a.Name,
		&a.Description,
		&a.AssetType,
		&a.CurrentPrice,
		&a.PriceChange24h,
		&a.RiskLevel,
		&a.MinInvestment,
		&a.IsActive,
	)
	return a, err
}

// ListActive retrieves all active assets ordered by display name.
func (r *AssetRepository) ListActive(ctx context.Context) ([]model.Asset, error) {
	query := `
		SELECT ` + assetColumns + `
		FROM asset
		WHERE is_active
		ORDER BY name ASC
	`

	rows, err := r.getQuerier().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query asset table: %w", err)
	}
	defer rows.Close()

	assets := []model.Asset{}
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		assets = append(assets, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating asset table: %w", err)
	}

	return assets, nil
}

// Get retrieves a single asset by ID. Returns ErrAssetNotFound if no asset
// with the given ID exists.
func (r *AssetRepository) Get(ctx context.Context, assetID string) (model.Asset, error) {
	if assetID == "" {
		return model.Asset{}, apperrors.ErrEmptyID
	}

	query := `
		SELECT ` + assetColumns + `
		FROM asset
		WHERE id = ?
	`

	a, err := scanAsset(r.getQuerier().QueryRowContext(ctx, query, assetID))
	if err == sql.ErrNoRows {
		return model.Asset{}, apperrors.ErrAssetNotFound
	}
	if err != nil {
		return model.Asset{}, fmt.Errorf("failed to scan asset: %w", err)
	}

	return a, nil
}

// Insert persists a new asset.
func (r *AssetRepository) Insert(ctx context.Context, a *model.Asset) error {
	query := `
		INSERT INTO asset (
			id, symbol, name, description, asset_type,
			current_price, price_change_24h, risk_level, min_investment, is_active
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		a.ID,
		a.Symbol,
		a.Name,
		a.Description,
		a.AssetType,
		a.CurrentPrice,
		a.PriceChange24h,
		a.RiskLevel,
		a.MinInvestment,
		a.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to insert asset: %w", err)
	}

	return nil
}

// UpdatePrice atomically replaces an asset's price and 24h-change indicator.
// A reader never observes a half-written record because both columns change
// in one statement.
func (r *AssetRepository) UpdatePrice(ctx context.Context, assetID string, price, change24h float64) error {
	query := `
		UPDATE asset
		SET current_price = ?, price_change_24h = ?
		WHERE id = ?
	`

	result, err := r.getQuerier().ExecContext(ctx, query, price, change24h, assetID)
	if err != nil {
		return fmt.Errorf("failed to update asset price: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check price update result: %w", err)
	}
	if rows == 0 {
		return apperrors.ErrAssetNotFound
	}

	return nil
}

// SetActive flips an asset's active flag. Deactivated assets stay in the
// catalog (existing positions still reference them) but cannot be traded
// and are skipped by the simulator.
func (r *AssetRepository) SetActive(ctx context.Context, assetID string, active bool) error {
	query := `
		UPDATE asset
		SET is_active = ?
		WHERE id = ?
	`

	result, err := r.getQuerier().ExecContext(ctx, query, active, assetID)
	if err != nil {
		return fmt.Errorf("failed to update asset: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check asset update result: %w", err)
	}
	if rows == 0 {
		return apperrors.ErrAssetNotFound
	}

	return nil
}
