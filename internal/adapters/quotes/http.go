package quotes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SscSPs/trading_wallet_app/internal/apperrors"
	"github.com/SscSPs/trading_wallet_app/internal/core/domain"
	portssvc "github.com/SscSPs/trading_wallet_app/internal/core/ports/services"
	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

type securityPriceResponse struct {
	Symbol   string          `json:"symbol"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency"`
	AsOf     time.Time       `json:"asOf"`
}

type exchangeRateResponse struct {
	From string          `json:"from"`
	To   string          `json:"to"`
	Rate decimal.Decimal `json:"rate"`
	AsOf time.Time       `json:"asOf"`
}

// HTTPProvider reads quotes from a pricing service:
//
//	GET {base}/api/v1/securities/{symbol}
//	GET {base}/api/v1/rates/{from}/{to}
//
// Prices are decimal strings. Retries are left to the caller's idempotent resubmission.
type HTTPProvider struct {
	client *resty.Client
}

func NewHTTPProvider(baseURL string, timeout time.Duration) *HTTPProvider {
	baseURL = strings.TrimSuffix(baseURL, "/")
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &HTTPProvider{client: client}
}

var _ portssvc.QuoteProvider = (*HTTPProvider)(nil)

func (p *HTTPProvider) GetSecurityPrice(ctx context.Context, symbol string) (domain.Quote, error) {
	var out securityPriceResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/api/v1/securities/" + url.PathEscape(symbol))
	if err := checkResponse(resp, err, symbol); err != nil {
		return domain.Quote{}, err
	}
	if out.Symbol == "" {
		out.Symbol = symbol
	}
	return domain.Quote{Symbol: out.Symbol, Price: out.Price, Currency: out.Currency, AsOf: out.AsOf}, nil
}

func (p *HTTPProvider) GetExchangeRate(ctx context.Context, from, to string) (domain.Quote, error) {
	var out exchangeRateResponse
	pair := domain.PairSymbol(from, to)
	resp, err := p.client.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/api/v1/rates/" + url.PathEscape(from) + "/" + url.PathEscape(to))
	if err := checkResponse(resp, err, pair); err != nil {
		return domain.Quote{}, err
	}
	return domain.Quote{Symbol: pair, Price: out.Rate, Currency: to, AsOf: out.AsOf}, nil
}

func checkResponse(resp *resty.Response, err error, symbol string) error {
	if err != nil {
		var timeout interface{ Timeout() bool }
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &timeout) && timeout.Timeout()) {
			return fmt.Errorf("%w: %s", apperrors.ErrQuoteTimeout, symbol)
		}
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %s: %v", apperrors.ErrStaleQuote, symbol, err)
	}
	switch {
	case resp.IsSuccess():
		return nil
	case resp.StatusCode() == http.StatusNotFound:
		return fmt.Errorf("%w: %s", apperrors.ErrUnknownSymbol, symbol)
	default:
		return fmt.Errorf("%w: %s: pricing service returned %s", apperrors.ErrStaleQuote, symbol, resp.Status())
	}
}
