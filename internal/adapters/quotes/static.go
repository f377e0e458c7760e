// Package quotes provides QuoteProvider implementations: a seeded in-process
// table and an HTTP client for an external pricing service.
package quotes

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SscSPs/trading_wallet_app/internal/apperrors"
	"github.com/SscSPs/trading_wallet_app/internal/core/domain"
	portssvc "github.com/SscSPs/trading_wallet_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// Security is a tradable instrument in the static table.
type Security struct {
	Symbol   string
	Name     string
	Price    decimal.Decimal
	Currency string
}

var seedSecurities = []Security{
	{"AAPL", "Apple Inc.", decimal.RequireFromString("175.50"), "USD"},
	{"GOOGL", "Alphabet Inc.", decimal.RequireFromString("140.25"), "USD"},
	{"MSFT", "Microsoft Corp.", decimal.RequireFromString("380.00"), "USD"},
	{"AMZN", "Amazon.com Inc.", decimal.RequireFromString("155.75"), "USD"},
	{"TSLA", "Tesla Inc.", decimal.RequireFromString("245.30"), "USD"},
	{"META", "Meta Platforms", decimal.RequireFromString("485.00"), "USD"},
	{"NVDA", "NVIDIA Corp.", decimal.RequireFromString("495.25"), "USD"},
	{"JPM", "JPMorgan Chase", decimal.RequireFromString("180.50"), "USD"},
	{"JNJ", "Johnson & Johnson", decimal.RequireFromString("160.00"), "USD"},
	{"V", "Visa Inc.", decimal.RequireFromString("275.75"), "USD"},
	{"SPY", "S&P 500 ETF", decimal.RequireFromString("480.00"), "USD"},
	{"QQQ", "NASDAQ 100 ETF", decimal.RequireFromString("410.50"), "USD"},
	{"DIA", "Dow Jones ETF", decimal.RequireFromString("380.25"), "USD"},
	{"IWM", "Russell 2000 ETF", decimal.RequireFromString("198.75"), "USD"},
	{"VTI", "Total Market ETF", decimal.RequireFromString("245.00"), "USD"},
	{"AGG", "US Aggregate Bond", decimal.RequireFromString("102.50"), "USD"},
	{"TLT", "20+ Year Treasury", decimal.RequireFromString("95.75"), "USD"},
	{"BND", "Total Bond Market", decimal.RequireFromString("78.25"), "USD"},
	{"LQD", "Investment Grade Corp", decimal.RequireFromString("110.00"), "USD"},
	{"HYG", "High Yield Corp", decimal.RequireFromString("82.50"), "USD"},
}

var seedRates = map[string]decimal.Decimal{
	domain.PairSymbol("USD", "EUR"): decimal.RequireFromString("0.920000"),
	domain.PairSymbol("USD", "GBP"): decimal.RequireFromString("0.790000"),
	domain.PairSymbol("EUR", "USD"): decimal.RequireFromString("1.090000"),
	domain.PairSymbol("EUR", "GBP"): decimal.RequireFromString("0.860000"),
	domain.PairSymbol("GBP", "USD"): decimal.RequireFromString("1.270000"),
	domain.PairSymbol("GBP", "EUR"): decimal.RequireFromString("1.160000"),
}

// StaticProvider serves prices from memory. Quotes set with SetPrice or SetRate
// track the table's clock and are reported as of the moment they are read.
// Quotes set with SetQuote keep their AsOf until the next Refresh.
type StaticProvider struct {
	mu     sync.RWMutex
	now    func() time.Time
	prices map[string]entry
	rates  map[string]entry
}

type entry struct {
	quote  domain.Quote
	pinned bool
}

// StaticOption configures a StaticProvider.
type StaticOption func(*StaticProvider)

// WithStaticClock replaces the clock live quotes are stamped with.
func WithStaticClock(now func() time.Time) StaticOption {
	return func(p *StaticProvider) { p.now = now }
}

// NewStaticProvider returns a provider seeded with the default securities and
// USD/EUR/GBP rates.
func NewStaticProvider(opts ...StaticOption) *StaticProvider {
	p := NewEmptyStaticProvider(opts...)
	for _, s := range seedSecurities {
		p.SetPrice(s.Symbol, s.Price, s.Currency)
	}
	for pair, rate := range seedRates {
		p.rates[pair] = entry{quote: domain.Quote{Symbol: pair, Price: rate}}
	}
	return p
}

// NewEmptyStaticProvider returns a provider with no instruments.
func NewEmptyStaticProvider(opts ...StaticOption) *StaticProvider {
	p := &StaticProvider{
		now:    func() time.Time { return time.Now().UTC() },
		prices: make(map[string]entry),
		rates:  make(map[string]entry),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var _ portssvc.QuoteProvider = (*StaticProvider)(nil)

// SetPrice sets the current price of symbol.
func (p *StaticProvider) SetPrice(symbol string, price decimal.Decimal, currency string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prices[symbol] = entry{quote: domain.Quote{Symbol: symbol, Price: price, Currency: currency}}
}

// SetQuote stores q as is, including its AsOf.
func (p *StaticProvider) SetQuote(q domain.Quote) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prices[q.Symbol] = entry{quote: q, pinned: true}
}

// SetRate sets the from->to exchange rate.
func (p *StaticProvider) SetRate(from, to string, rate decimal.Decimal) {
	p.mu.Lock()
	defer p.mu.Unlock()
	pair := domain.PairSymbol(from, to)
	p.rates[pair] = entry{quote: domain.Quote{Symbol: pair, Price: rate, Currency: to}}
}

// Refresh makes every quote current again, including those set with SetQuote.
func (p *StaticProvider) Refresh() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for k, e := range p.prices {
		e.pinned = false
		p.prices[k] = e
	}
	for k, e := range p.rates {
		e.pinned = false
		p.rates[k] = e
	}
}

func (p *StaticProvider) read(e entry) domain.Quote {
	q := e.quote
	if !e.pinned {
		q.AsOf = p.now()
	}
	return q
}

func (p *StaticProvider) GetSecurityPrice(ctx context.Context, symbol string) (domain.Quote, error) {
	if err := ctx.Err(); err != nil {
		return domain.Quote{}, err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	e, ok := p.prices[symbol]
	if !ok {
		return domain.Quote{}, fmt.Errorf("%w: %s", apperrors.ErrUnknownSymbol, symbol)
	}
	return p.read(e), nil
}

func (p *StaticProvider) GetExchangeRate(ctx context.Context, from, to string) (domain.Quote, error) {
	if err := ctx.Err(); err != nil {
		return domain.Quote{}, err
	}
	pair := domain.PairSymbol(from, to)
	p.mu.RLock()
	defer p.mu.RUnlock()
	e, ok := p.rates[pair]
	if !ok {
		return domain.Quote{}, fmt.Errorf("%w: no rate for %s", apperrors.ErrUnknownSymbol, pair)
	}
	q := p.read(e)
	q.Currency = to
	return q, nil
}
