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

type portfolioService struct {
	BaseService
	holdingRepo portsrepo.HoldingRepositoryFacade
}

func NewPortfolioService(repo portsrepo.HoldingRepositoryFacade) portssvc.PortfolioSvc {
	return &portfolioService{holdingRepo: repo}
}

var _ portssvc.PortfolioSvc = (*portfolioService)(nil)

func (s *portfolioService) GetHolding(ctx context.Context, userID, symbol string) (*domain.Holding, error) {
	symbol, err := domain.NormalizeSymbol(symbol)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	h, err := s.holdingRepo.FindHolding(ctx, userID, symbol)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to read holding", slog.String("user_id", userID), slog.String("symbol", symbol))
		}
		return nil, err
	}
	return h, nil
}

// GetPortfolio values every holding at its average purchase price.
func (s *portfolioService) GetPortfolio(ctx context.Context, userID string) (*domain.Portfolio, error) {
	holdings, err := s.holdingRepo.ListHoldings(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list holdings", slog.String("user_id", userID))
		return nil, err
	}
	p := domain.NewPortfolio(userID, holdings)
	return &p, nil
}

func (s *portfolioService) ApplyBuy(ctx context.Context, userID, symbol, currency string, quantity, price decimal.Decimal) (*domain.Holding, error) {
	if err := domain.ValidatePositiveScaled(quantity, "quantity"); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidAmount, err)
	}
	h, err := s.holdingRepo.UpdateHolding(ctx, userID, symbol, func(current domain.Holding, exists bool) (domain.Holding, error) {
		if !exists {
			current.Currency = currency
		}
		return domain.ApplyBuy(current, quantity, price)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to apply buy to holding", slog.String("user_id", userID), slog.String("symbol", symbol))
		return nil, err
	}
	return h, nil
}

func (s *portfolioService) ApplySell(ctx context.Context, userID, symbol string, quantity decimal.Decimal) (*domain.Holding, error) {
	if err := domain.ValidatePositiveScaled(quantity, "quantity"); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidAmount, err)
	}
	h, err := s.holdingRepo.UpdateHolding(ctx, userID, symbol, func(current domain.Holding, exists bool) (domain.Holding, error) {
		return domain.ApplySell(current, quantity)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrInsufficientHoldings) {
			s.LogError(ctx, err, "Failed to apply sell to holding", slog.String("user_id", userID), slog.String("symbol", symbol))
		}
		return nil, err
	}
	return h, nil
}

func (s *portfolioService) ReverseBuy(ctx context.Context, userID, symbol string, quantity, price decimal.Decimal) (*domain.Holding, error) {
	h, err := s.holdingRepo.UpdateHolding(ctx, userID, symbol, func(current domain.Holding, exists bool) (domain.Holding, error) {
		return domain.ReverseBuy(current, quantity, price)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to reverse buy", slog.String("user_id", userID), slog.String("symbol", symbol))
		return nil, err
	}
	return h, nil
}
