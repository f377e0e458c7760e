package mapping

import (
	"github.com/SscSPs/trading_wallet_app/internal/core/domain"
	"github.com/SscSPs/trading_wallet_app/internal/models"
)

// ToModelTrade converts a domain Trade to a model Trade
func ToModelTrade(d domain.Trade) models.Trade {
	m := models.Trade{
		TradeID:      d.TradeID,
		UserID:       d.UserID,
		Symbol:       d.Symbol,
		TradeType:    string(d.TradeType),
		OrderType:    string(d.OrderType),
		Quantity:     d.Quantity,
		PricePerUnit: d.PricePerUnit,
		Currency:     d.Currency,
		TotalAmount:  d.TotalAmount,
		Fees:         d.Fees,
		Status:       string(d.Status),
		CreatedAt:    d.CreatedAt,
		CompletedAt:  d.CompletedAt,
	}
	if d.FailureReason != "" {
		reason := d.FailureReason
		m.FailureReason = &reason
	}
	return m
}

// ToDomainTrade converts a model Trade to a domain Trade
func ToDomainTrade(m models.Trade) domain.Trade {
	d := domain.Trade{
		TradeID:      m.TradeID,
		UserID:       m.UserID,
		Symbol:       m.Symbol,
		TradeType:    domain.TradeType(m.TradeType),
		OrderType:    domain.OrderType(m.OrderType),
		Quantity:     m.Quantity,
		PricePerUnit: m.PricePerUnit,
		Currency:     m.Currency,
		TotalAmount:  m.TotalAmount,
		Fees:         m.Fees,
		Status:       domain.TradeStatus(m.Status),
		CreatedAt:    m.CreatedAt,
		CompletedAt:  m.CompletedAt,
	}
	if m.FailureReason != nil {
		d.FailureReason = *m.FailureReason
	}
	return d
}
