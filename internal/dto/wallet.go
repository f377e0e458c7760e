package dto

import (
	"time"

	"github.com/SscSPs/trading_wallet_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// WalletAmountRequest is the body of deposit and withdraw calls.
// Amount accepts a JSON string ("100.00") or number.
type WalletAmountRequest struct {
	Currency string          `json:"currency" binding:"required,currency"`
	Amount   decimal.Decimal `json:"amount" swaggertype:"string" example:"100.00"`
}

// ExchangeRequest converts Amount of FromCurrency into ToCurrency.
type ExchangeRequest struct {
	FromCurrency string          `json:"fromCurrency" binding:"required,currency"`
	ToCurrency   string          `json:"toCurrency" binding:"required,currency,nefield=FromCurrency"`
	Amount       decimal.Decimal `json:"amount" swaggertype:"string" example:"100.00"`
}

// WalletBalanceResponse renders a balance with money as a two-place string.
type WalletBalanceResponse struct {
	UserID        string    `json:"userID"`
	Currency      string    `json:"currency"`
	Balance       string    `json:"balance" example:"100.00"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ListBalancesResponse is every balance of a user.
type ListBalancesResponse struct {
	Balances []WalletBalanceResponse `json:"balances"`
}

// ExchangeResponse is the outcome of a currency exchange.
type ExchangeResponse struct {
	FromBalance     WalletBalanceResponse `json:"fromBalance"`
	ToBalance       WalletBalanceResponse `json:"toBalance"`
	DebitedAmount   string                `json:"debitedAmount" example:"100.00"`
	ConvertedAmount string                `json:"convertedAmount" example:"92.00"`
	CreditedAmount  string                `json:"creditedAmount" example:"91.54"`
	ExchangeRate    string                `json:"exchangeRate" example:"0.920000"`
	Fee             string                `json:"fee" example:"0.46"`
}

// ToWalletBalanceResponse converts a domain.WalletBalance to its DTO
func ToWalletBalanceResponse(b domain.WalletBalance) WalletBalanceResponse {
	return WalletBalanceResponse{
		UserID:        b.UserID,
		Currency:      b.Currency,
		Balance:       domain.FormatMoney(b.Balance),
		LastUpdatedAt: b.LastUpdatedAt,
	}
}

// ToListBalancesResponse converts a slice of balances
func ToListBalancesResponse(balances []domain.WalletBalance) ListBalancesResponse {
	out := ListBalancesResponse{Balances: make([]WalletBalanceResponse, 0, len(balances))}
	for _, b := range balances {
		out.Balances = append(out.Balances, ToWalletBalanceResponse(b))
	}
	return out
}

// ToExchangeResponse converts a domain.ExchangeResult to its DTO
func ToExchangeResponse(r domain.ExchangeResult) ExchangeResponse {
	return ExchangeResponse{
		FromBalance:     ToWalletBalanceResponse(r.FromBalance),
		ToBalance:       ToWalletBalanceResponse(r.ToBalance),
		DebitedAmount:   domain.FormatMoney(r.DebitedAmount),
		ConvertedAmount: domain.FormatMoney(r.ConvertedAmount),
		CreditedAmount:  domain.FormatMoney(r.CreditedAmount),
		ExchangeRate:    r.ExchangeRate.StringFixed(domain.RateScale),
		Fee:             domain.FormatMoney(r.Fee),
	}
}
