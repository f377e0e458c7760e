package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/trading_wallet_app/internal/apperrors"
	"github.com/SscSPs/trading_wallet_app/internal/core/domain"
)

type quoteResult struct {
	quote domain.Quote
	err   error
}

func (o *orchestrator) securityQuote(ctx context.Context, symbol string) (domain.Quote, error) {
	return o.fetchQuote(ctx, symbol, func(ctx context.Context) (domain.Quote, error) {
		return o.quotes.GetSecurityPrice(ctx, symbol)
	})
}

func (o *orchestrator) exchangeRate(ctx context.Context, from, to string) (domain.Quote, error) {
	return o.fetchQuote(ctx, domain.PairSymbol(from, to), func(ctx context.Context) (domain.Quote, error) {
		return o.quotes.GetExchangeRate(ctx, from, to)
	})
}

// fetchQuote calls fetch with the quote timeout and rejects unusable quotes.
// It must be called before any wallet or holding lock is taken.
func (o *orchestrator) fetchQuote(ctx context.Context, symbol string, fetch func(ctx context.Context) (domain.Quote, error)) (domain.Quote, error) {
	qctx, cancel := context.WithTimeout(ctx, o.quoteTimeout)
	defer cancel()

	ch := make(chan quoteResult, 1)
	go func() {
		q, err := fetch(qctx)
		ch <- quoteResult{quote: q, err: err}
	}()

	var res quoteResult
	select {
	case res = <-ch:
	case <-qctx.Done():
		if err := ctx.Err(); err != nil {
			return domain.Quote{}, err
		}
		res.err = context.DeadlineExceeded
	}

	if res.err != nil {
		if errors.Is(res.err, context.DeadlineExceeded) && ctx.Err() == nil {
			o.LogInfo(ctx, "Quote fetch timed out", slog.String("symbol", symbol), slog.Duration("timeout", o.quoteTimeout))
			return domain.Quote{}, fmt.Errorf("%w: %s after %s", apperrors.ErrQuoteTimeout, symbol, o.quoteTimeout)
		}
		return domain.Quote{}, res.err
	}

	q := res.quote
	if !q.Price.IsPositive() {
		return domain.Quote{}, fmt.Errorf("%w: %s has no usable price", apperrors.ErrStaleQuote, symbol)
	}
	if q.IsStale(o.now(), o.staleThreshold) {
		o.LogInfo(ctx, "Rejected stale quote", slog.String("symbol", symbol), slog.Time("as_of", q.AsOf))
		return domain.Quote{}, fmt.Errorf("%w: %s quoted at %s", apperrors.ErrStaleQuote, symbol, q.AsOf.Format("2006-01-02T15:04:05Z07:00"))
	}
	return q, nil
}
