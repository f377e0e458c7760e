package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/trading_wallet_app/internal/apperrors"
	"github.com/SscSPs/trading_wallet_app/internal/core/domain"
	portsrepo "github.com/SscSPs/trading_wallet_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/trading_wallet_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

type walletLedger struct {
	BaseService
	walletRepo portsrepo.WalletRepositoryFacade
}

func NewWalletLedger(repo portsrepo.WalletRepositoryFacade) portssvc.WalletLedgerSvc {
	return &walletLedger{walletRepo: repo}
}

var _ portssvc.WalletLedgerSvc = (*walletLedger)(nil)

func (s *walletLedger) GetBalance(ctx context.Context, userID, currency string) (decimal.Decimal, error) {
	currency, err := domain.NormalizeCurrency(currency)
	if err != nil {
		return decimal.Zero, apperrors.NewValidationError(err.Error())
	}
	b, err := s.walletRepo.FindBalance(ctx, userID, currency)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, nil
		}
		s.LogError(ctx, err, "Failed to read balance", slog.String("user_id", userID), slog.String("currency", currency))
		return decimal.Zero, err
	}
	return b.Balance, nil
}

func (s *walletLedger) ListBalances(ctx context.Context, userID string) ([]domain.WalletBalance, error) {
	balances, err := s.walletRepo.ListBalances(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list balances", slog.String("user_id", userID))
		return nil, err
	}
	if balances == nil {
		return []domain.WalletBalance{}, nil
	}
	return balances, nil
}

func (s *walletLedger) Debit(ctx context.Context, userID, currency string, amount decimal.Decimal) (*domain.WalletBalance, error) {
	currency, err := s.validate(currency, amount)
	if err != nil {
		return nil, err
	}
	b, err := s.walletRepo.UpdateBalance(ctx, userID, currency, func(current decimal.Decimal) (decimal.Decimal, error) {
		return domain.DebitBalance(current, amount)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrInsufficientFunds) {
			s.LogError(ctx, err, "Failed to debit wallet", slog.String("user_id", userID), slog.String("currency", currency))
		}
		return nil, err
	}
	s.LogDebug(ctx, "Wallet debited", slog.String("user_id", userID), slog.String("currency", currency), slog.String("amount", domain.FormatMoney(amount)))
	return b, nil
}

func (s *walletLedger) Credit(ctx context.Context, userID, currency string, amount decimal.Decimal) (*domain.WalletBalance, error) {
	currency, err := s.validate(currency, amount)
	if err != nil {
		return nil, err
	}
	b, err := s.walletRepo.UpdateBalance(ctx, userID, currency, func(current decimal.Decimal) (decimal.Decimal, error) {
		return domain.CreditBalance(current, amount)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to credit wallet", slog.String("user_id", userID), slog.String("currency", currency))
		return nil, err
	}
	s.LogDebug(ctx, "Wallet credited", slog.String("user_id", userID), slog.String("currency", currency), slog.String("amount", domain.FormatMoney(amount)))
	return b, nil
}

func (s *walletLedger) validate(currency string, amount decimal.Decimal) (string, error) {
	if err := domain.ValidatePositiveScaled(amount, "amount"); err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrInvalidAmount, err)
	}
	c, err := domain.NormalizeCurrency(currency)
	if err != nil {
		return "", apperrors.NewValidationError(err.Error())
	}
	return c, nil
}
