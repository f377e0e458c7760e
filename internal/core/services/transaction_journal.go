package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/trading_wallet_app/internal/apperrors"
	"github.com/SscSPs/trading_wallet_app/internal/core/domain"
	portsrepo "github.com/SscSPs/trading_wallet_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/trading_wallet_app/internal/core/ports/services"
	"github.com/google/uuid"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type transactionJournal struct {
	BaseService
	txnRepo portsrepo.TransactionRepositoryFacade
	now     func() time.Time
}

func NewTransactionJournal(repo portsrepo.TransactionRepositoryFacade) portssvc.TransactionJournalSvc {
	return &transactionJournal{txnRepo: repo, now: func() time.Time { return time.Now().UTC() }}
}

var _ portssvc.TransactionJournalSvc = (*transactionJournal)(nil)

// Append stores txn, assigning an id and timestamp when missing. Any storage
// failure is reported as apperrors.ErrStorageUnavailable.
func (s *transactionJournal) Append(ctx context.Context, txn domain.Transaction) (string, error) {
	if !txn.Type.IsValid() {
		return "", apperrors.NewValidationError(fmt.Sprintf("unknown transaction type %q", txn.Type))
	}
	if txn.Fees.IsNegative() {
		return "", apperrors.NewValidationError("fees must not be negative")
	}
	if txn.TransactionID == "" {
		txn.TransactionID = uuid.NewString()
	}
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = s.now()
	}

	if err := s.txnRepo.AppendTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to append transaction",
			slog.String("transaction_id", txn.TransactionID),
			slog.String("user_id", txn.UserID),
			slog.String("type", string(txn.Type)))
		return "", apperrors.NewStorageError("failed to append transaction "+txn.TransactionID, err)
	}
	return txn.TransactionID, nil
}

func (s *transactionJournal) Query(ctx context.Context, userID string, filter domain.TransactionFilter) (*domain.TransactionPage, error) {
	if filter.Type != nil && !filter.Type.IsValid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown transaction type %q", *filter.Type))
	}
	switch {
	case filter.Limit <= 0:
		filter.Limit = defaultPageSize
	case filter.Limit > maxPageSize:
		filter.Limit = maxPageSize
	}

	txns, next, err := s.txnRepo.ListTransactions(ctx, userID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to query transactions", slog.String("user_id", userID))
		return nil, err
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}
	return &domain.TransactionPage{Transactions: txns, NextToken: next}, nil
}
