package apperrors

import "errors"

// Domain entity errors represent missing entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrWalletNotFound indicates that no wallet exists for the given owner.
	ErrWalletNotFound = errors.New("wallet not found")

	// ErrAssetNotFound indicates that an asset with the given ID does not exist.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrPositionNotFound indicates that a position with the given ID does not
	// exist for the owner. A fully sold position is deleted, so a stale
	// position ID resolves to this error rather than a zero-quantity row.
	ErrPositionNotFound = errors.New("position not found")

	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")
)

// Business logic errors represent validation failures or rule violations.
// These are rejected before any state is mutated.
var (
	// ErrAmountNotPositive indicates a funding, investment, or sale amount
	// that is zero or negative.
	ErrAmountNotPositive = errors.New("amount must be positive")

	// ErrQuantityNotPositive indicates a sale quantity that is zero or negative.
	ErrQuantityNotPositive = errors.New("quantity must be positive")

	// ErrBelowMinimumInvestment indicates an investment amount below the
	// asset's minimum ticket.
	ErrBelowMinimumInvestment = errors.New("amount below minimum investment")

	// ErrAssetInactive indicates an attempt to trade an asset that has been
	// deactivated in the catalog.
	ErrAssetInactive = errors.New("asset is not active")

	// ErrInsufficientFunds indicates that the wallet balance does not cover
	// the requested investment. No state changes.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInsufficientHoldings indicates a sale quantity above the position's
	// held quantity. No state changes.
	ErrInsufficientHoldings = errors.New("insufficient holdings for sale")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")
)

// ErrPersistence indicates that the durable store was unreachable or
// rejected a write. The whole multi-step operation is rolled back and the
// failure is reported retryable; storage internals are not exposed to
// HTTP clients.
var ErrPersistence = errors.New("persistent store failure")

// Generic operation failure constants used as HTTP-facing messages.
var (
	ErrFailedToRetrieveWallet       = errors.New("failed to retrieve wallet")
	ErrFailedToRetrieveAssets       = errors.New("failed to retrieve assets")
	ErrFailedToRetrieveAsset        = errors.New("failed to retrieve asset")
	ErrFailedToRetrievePositions    = errors.New("failed to retrieve positions")
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToGetSummary           = errors.New("failed to get portfolio summary")
)
