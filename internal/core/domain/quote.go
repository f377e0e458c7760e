package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote is a point-in-time price of a security or an exchange rate between two
// currencies. For exchange rates Symbol is "FROM/TO".
type Quote struct {
	Symbol   string          `json:"symbol"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency,omitempty"`
	AsOf     time.Time       `json:"asOf"`
}

// IsStale reports whether q is older than maxAge at now.
func (q Quote) IsStale(now time.Time, maxAge time.Duration) bool {
	if maxAge <= 0 {
		return false
	}
	return now.Sub(q.AsOf) > maxAge
}

// PairSymbol renders the Symbol used for an exchange-rate quote.
func PairSymbol(from, to string) string { return from + "/" + to }

// ExchangeResult is the outcome of a currency exchange. It is not an entity of
// its own; it is embedded in the CURRENCY_EXCHANGE transaction metadata.
type ExchangeResult struct {
	FromBalance     WalletBalance   `json:"fromBalance"`
	ToBalance       WalletBalance   `json:"toBalance"`
	DebitedAmount   decimal.Decimal `json:"debitedAmount"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
	CreditedAmount  decimal.Decimal `json:"creditedAmount"`
	ExchangeRate    decimal.Decimal `json:"exchangeRate"`
	Fee             decimal.Decimal `json:"fee"`
}
