package service

import (
	"context"

	"github.com/ade-gb/investlite-demo-platform/internal/model"
	"github.com/ade-gb/investlite-demo-platform/internal/repository"
)

// DefaultHistoryLimit caps the UI transaction history. Reconciliation and
// audits query unbounded (limit 0).
const DefaultHistoryLimit = 50

// TransactionService handles queries against the append-only transaction
// log. The log has no update or delete operations.
type TransactionService struct {
	transactionRepo *repository.TransactionRepository
}

// NewTransactionService creates a new TransactionService with the provided repository.
func NewTransactionService(transactionRepo *repository.TransactionRepository) *TransactionService {
	return &TransactionService{transactionRepo: transactionRepo}
}

// GetHistory retrieves an owner's transactions in reverse chronological
// order, joined with asset display fields. A limit of 0 means unbounded.
func (s *TransactionService) GetHistory(ctx context.Context, userID string, limit int) ([]model.TransactionResponse, error) {
	transactions, err := s.transactionRepo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, persistence(err)
	}
	return transactions, nil
}
