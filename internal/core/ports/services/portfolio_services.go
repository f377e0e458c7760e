package services

import (
	"context"

	"github.com/SscSPs/trading_wallet_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PortfolioReaderSvc defines read operations for holdings
type PortfolioReaderSvc interface {
	GetHolding(ctx context.Context, userID, symbol string) (*domain.Holding, error)
	GetPortfolio(ctx context.Context, userID string) (*domain.Portfolio, error)
}

// PortfolioWriterSvc defines holding mutations, serialised per (userID, symbol).
type PortfolioWriterSvc interface {
	ApplyBuy(ctx context.Context, userID, symbol, currency string, quantity, price decimal.Decimal) (*domain.Holding, error)
	ApplySell(ctx context.Context, userID, symbol string, quantity decimal.Decimal) (*domain.Holding, error)
	// ReverseBuy takes back shares added by ApplyBuy and restores the prior average.
	ReverseBuy(ctx context.Context, userID, symbol string, quantity, price decimal.Decimal) (*domain.Holding, error)
}

// PortfolioSvc combines all portfolio service interfaces
type PortfolioSvc interface {
	PortfolioReaderSvc
	PortfolioWriterSvc
}
