package dto

import (
	"time"

	"github.com/SscSPs/trading_wallet_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TradeRequest is the body of buy and sell calls. BY_AMOUNT orders read
// Amount, BY_QUANTITY orders read Quantity.
type TradeRequest struct {
	Symbol    string           `json:"symbol" binding:"required,symbol"`
	Currency  string           `json:"currency" binding:"required,currency" example:"USD"`
	OrderType domain.OrderType `json:"orderType" binding:"required,oneof=BY_AMOUNT BY_QUANTITY"`
	Amount    decimal.Decimal  `json:"amount" swaggertype:"string" example:"50.00"`
	Quantity  decimal.Decimal  `json:"quantity" swaggertype:"string" example:"4.95"`
}

// TradeResponse renders a trade.
type TradeResponse struct {
	TradeID       string             `json:"tradeID"`
	UserID        string             `json:"userID"`
	Symbol        string             `json:"symbol"`
	TradeType     domain.TradeType   `json:"tradeType"`
	OrderType     domain.OrderType   `json:"orderType"`
	Quantity      string             `json:"quantity" example:"4.95"`
	PricePerUnit  string             `json:"pricePerUnit" example:"10.000000"`
	Currency      string             `json:"currency"`
	TotalAmount   string             `json:"totalAmount" example:"50.00"`
	Fees          string             `json:"fees" example:"0.50"`
	Status        domain.TradeStatus `json:"status"`
	FailureReason string             `json:"failureReason,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
	CompletedAt   *time.Time         `json:"completedAt,omitempty"`
}

// ToTradeResponse converts a domain.Trade to its DTO
func ToTradeResponse(t domain.Trade) TradeResponse {
	return TradeResponse{
		TradeID:       t.TradeID,
		UserID:        t.UserID,
		Symbol:        t.Symbol,
		TradeType:     t.TradeType,
		OrderType:     t.OrderType,
		Quantity:      domain.FormatMoney(t.Quantity),
		PricePerUnit:  t.PricePerUnit.StringFixed(domain.PriceScale),
		Currency:      t.Currency,
		TotalAmount:   domain.FormatMoney(t.TotalAmount),
		Fees:          domain.FormatMoney(t.Fees),
		Status:        t.Status,
		FailureReason: t.FailureReason,
		CreatedAt:     t.CreatedAt,
		CompletedAt:   t.CompletedAt,
	}
}
