package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/ade-gb/investlite-demo-platform/internal/apperrors"
	"github.com/ade-gb/investlite-demo-platform/internal/metrics"
	"github.com/ade-gb/investlite-demo-platform/internal/model"
	"github.com/ade-gb/investlite-demo-platform/internal/repository"
)

// LedgerService orchestrates the balance-affecting operations: funding,
// investing, and selling. Every operation runs as one database transaction
// covering the wallet mutation, the position change, and the transaction
// log append; either all of it commits or none of it is visible. The
// wallet debit itself is an atomic conditional update, so concurrent
// operations against the same wallet can never drive the balance negative
// or let the log diverge from the balance.
type LedgerService struct {
	db              *sql.DB
	walletRepo      *repository.WalletRepository
	assetRepo       *repository.AssetRepository
	positionRepo    *repository.PositionRepository
	transactionRepo *repository.TransactionRepository
}

// NewLedgerService creates a new LedgerService with the provided repository dependencies.
func NewLedgerService(
	db *sql.DB,
	walletRepo *repository.WalletRepository,
	assetRepo *repository.AssetRepository,
	positionRepo *repository.PositionRepository,
	transactionRepo *repository.TransactionRepository,
) *LedgerService {
	return &LedgerService{
		db:              db,
		walletRepo:      walletRepo,
		assetRepo:       assetRepo,
		positionRepo:    positionRepo,
		transactionRepo: transactionRepo,
	}
}

// GetWallet returns the owner's wallet, creating an empty one on first access.
func (s *LedgerService) GetWallet(ctx context.Context, userID string) (model.Wallet, error) {
	wallet, err := s.walletRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return model.Wallet{}, persistence(err)
	}
	return wallet, nil
}

// FundWallet adds demo funds to the owner's wallet and appends a funding
// transaction with a positive amount. Funding is not idempotent: funding
// the same amount twice produces two transactions and twice the credit.
func (s *LedgerService) FundWallet(ctx context.Context, userID string, amount float64) (model.Transaction, error) {
	if amount <= 0 {
		return model.Transaction{}, apperrors.ErrAmountNotPositive
	}
	amount = round(amount)

	var logged model.Transaction
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		wallets := s.walletRepo.WithTx(tx)

		if _, err := wallets.GetOrCreate(ctx, userID); err != nil {
			return err
		}
		if err := wallets.Credit(ctx, userID, amount); err != nil {
			return err
		}

		logged = model.Transaction{
			ID:          uuid.New().String(),
			UserID:      userID,
			Type:        model.TransactionFunding,
			Amount:      amount,
			Description: fmt.Sprintf("Demo funds added: $%.2f", amount),
			CreatedAt:   time.Now(),
		}
		return s.transactionRepo.WithTx(tx).Insert(ctx, &logged)
	})
	if err != nil {
		return model.Transaction{}, err
	}

	metrics.LedgerOperations.WithLabelValues(model.TransactionFunding).Inc()
	return logged, nil
}

// Invest buys into an asset for the given amount at the given unit price.
// The purchased quantity is amount / price. An existing position in the
// same asset absorbs the new lot with a quantity-weighted average cost;
// otherwise a new position is created at the trade price.
//
// Preconditions, all checked before any mutation: amount > 0, price > 0,
// the asset is active, amount covers the asset's minimum investment, and
// the wallet balance covers the amount.
func (s *LedgerService) Invest(ctx context.Context, userID, assetID string, amount, price float64) (model.Position, error) {
	if amount <= 0 {
		return model.Position{}, apperrors.ErrAmountNotPositive
	}
	if price <= 0 {
		return model.Position{}, apperrors.ErrAmountNotPositive
	}
	amount = round(amount)

	var position model.Position
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		asset, err := s.assetRepo.WithTx(tx).Get(ctx, assetID)
		if err != nil {
			return err
		}
		if !asset.IsActive {
			return apperrors.ErrAssetInactive
		}
		if amount < asset.MinInvestment {
			return apperrors.ErrBelowMinimumInvestment
		}

		wallets := s.walletRepo.WithTx(tx)
		if _, err := wallets.GetOrCreate(ctx, userID); err != nil {
			return err
		}
		// Atomic conditional debit: fails (and rolls the whole operation
		// back) when the balance does not cover the amount.
		if err := wallets.DebitIfSufficient(ctx, userID, amount); err != nil {
			return err
		}

		quantity := amount / price
		positions := s.positionRepo.WithTx(tx)

		existing, err := positions.GetByUserAndAsset(ctx, userID, assetID)
		switch {
		case err == nil:
			// Weighted-average merge of the existing and incoming cost lots.
			newQty := existing.Quantity + quantity
			newAvgCost := (existing.PurchasePrice*existing.Quantity + amount) / newQty
			if err := positions.UpdateHolding(ctx, existing.ID, newQty, newAvgCost); err != nil {
				return err
			}
			position = existing
			position.Quantity = newQty
			position.PurchasePrice = newAvgCost
		case errors.Is(err, apperrors.ErrPositionNotFound):
			position = model.Position{
				ID:            uuid.New().String(),
				UserID:        userID,
				AssetID:       assetID,
				Quantity:      quantity,
				PurchasePrice: price,
				CreatedAt:     time.Now(),
			}
			if err := positions.Insert(ctx, &position); err != nil {
				return err
			}
		default:
			return err
		}

		logged := model.Transaction{
			ID:          uuid.New().String(),
			UserID:      userID,
			Type:        model.TransactionInvestment,
			Amount:      -amount,
			AssetID:     assetID,
			Quantity:    quantity,
			Description: "Investment purchase",
			CreatedAt:   time.Now(),
		}
		return s.transactionRepo.WithTx(tx).Insert(ctx, &logged)
	})
	if err != nil {
		return model.Position{}, err
	}

	metrics.LedgerOperations.WithLabelValues(model.TransactionInvestment).Inc()
	return position, nil
}

// Sell disposes of up to the full held quantity of a position at the given
// unit price. The proceeds (quantity * price, rounded to the cent) are
// credited to the wallet. A partial sale keeps the cost basis unchanged;
// a full sale deletes the position row.
func (s *LedgerService) Sell(ctx context.Context, userID, positionID string, quantity, price float64) (model.Transaction, error) {
	if quantity <= 0 {
		return model.Transaction{}, apperrors.ErrQuantityNotPositive
	}
	if price <= 0 {
		return model.Transaction{}, apperrors.ErrAmountNotPositive
	}

	var logged model.Transaction
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		positions := s.positionRepo.WithTx(tx)

		position, err := positions.Get(ctx, positionID, userID)
		if err != nil {
			return err
		}
		if quantity > position.Quantity+quantityEpsilon {
			return apperrors.ErrInsufficientHoldings
		}

		saleAmount := round(quantity * price)

		remaining := position.Quantity - quantity
		if remaining > quantityEpsilon {
			// Partial sale: quantity shrinks, cost basis stays.
			if err := positions.UpdateQuantity(ctx, position.ID, remaining); err != nil {
				return err
			}
		} else {
			// Full sale: the position is deleted, never zeroed.
			if err := positions.Delete(ctx, position.ID); err != nil {
				return err
			}
		}

		if err := s.walletRepo.WithTx(tx).Credit(ctx, userID, saleAmount); err != nil {
			return err
		}

		logged = model.Transaction{
			ID:          uuid.New().String(),
			UserID:      userID,
			Type:        model.TransactionSale,
			Amount:      saleAmount,
			AssetID:     position.AssetID,
			Quantity:    -quantity,
			Description: "Investment sale",
			CreatedAt:   time.Now(),
		}
		return s.transactionRepo.WithTx(tx).Insert(ctx, &logged)
	})
	if err != nil {
		return model.Transaction{}, err
	}

	metrics.LedgerOperations.WithLabelValues(model.TransactionSale).Inc()
	return logged, nil
}

// Reconcile recomputes the signed sum of an owner's transaction log and
// compares it against the wallet balance. The two must agree at every
// observed instant; a drift beyond float noise indicates a bug.
func (s *LedgerService) Reconcile(ctx context.Context, userID string) (model.ReconciliationReport, error) {
	wallet, err := s.walletRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrWalletNotFound) {
			return model.ReconciliationReport{}, err
		}
		return model.ReconciliationReport{}, persistence(err)
	}

	sum, count, err := s.transactionRepo.SumAmounts(ctx, userID)
	if err != nil {
		return model.ReconciliationReport{}, persistence(err)
	}

	drift := wallet.Balance - sum
	return model.ReconciliationReport{
		UserID:          userID,
		WalletBalance:   wallet.Balance,
		TransactionSum:  sum,
		Drift:           drift,
		TransactionRows: count,
		Balanced:        math.Abs(drift) < 1e-6,
	}, nil
}

// inTx runs fn inside a database transaction. Business-rule errors pass
// through untouched; storage errors come back wrapped as a retryable
// persistence failure. A rollback after a failed operation means none of
// the operation's effects are observable.
func (s *LedgerService) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return persistence(err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Printf("rollback failed after %v: %v", err, rbErr)
		}
		if isBusinessError(err) {
			return err
		}
		return persistence(err)
	}

	if err := tx.Commit(); err != nil {
		return persistence(err)
	}
	return nil
}

// isBusinessError reports whether err is a validation or business-rule
// rejection that should reach the caller as-is rather than being wrapped
// as a persistence failure.
func isBusinessError(err error) bool {
	for _, sentinel := range []error{
		apperrors.ErrAmountNotPositive,
		apperrors.ErrQuantityNotPositive,
		apperrors.ErrBelowMinimumInvestment,
		apperrors.ErrAssetInactive,
		apperrors.ErrInsufficientFunds,
		apperrors.ErrInsufficientHoldings,
		apperrors.ErrAssetNotFound,
		apperrors.ErrPositionNotFound,
		apperrors.ErrWalletNotFound,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// persistence wraps a storage error as a retryable persistence failure.
// The HTTP layer reports these generically without storage internals.
func persistence(err error) error {
	return fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
}
