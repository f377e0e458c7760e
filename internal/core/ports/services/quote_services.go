package services

import (
	"context"

	"github.com/SscSPs/trading_wallet_app/internal/core/domain"
)

// QuoteProvider supplies security prices and exchange rates. Implementations
// return apperrors.ErrUnknownSymbol for symbols or pairs they do not know.
type QuoteProvider interface {
	GetSecurityPrice(ctx context.Context, symbol string) (domain.Quote, error)
	GetExchangeRate(ctx context.Context, from, to string) (domain.Quote, error)
}
