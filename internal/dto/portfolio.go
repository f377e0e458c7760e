package dto

import (
	"github.com/SscSPs/trading_wallet_app/internal/core/domain"
)

// HoldingResponse is one position of a portfolio.
type HoldingResponse struct {
	Symbol       string `json:"symbol"`
	Quantity     string `json:"quantity" example:"4.95"`
	AveragePrice string `json:"averagePrice" example:"10.000000"`
	Currency     string `json:"currency"`
	Value        string `json:"value" example:"49.50"`
}

// PortfolioResponse lists holdings valued at average purchase price.
type PortfolioResponse struct {
	UserID   string            `json:"userID"`
	Holdings []HoldingResponse `json:"holdings"`
	Totals   map[string]string `json:"totals"`
}

// ToPortfolioResponse converts a domain.Portfolio to its DTO
func ToPortfolioResponse(p domain.Portfolio) PortfolioResponse {
	out := PortfolioResponse{
		UserID:   p.UserID,
		Holdings: make([]HoldingResponse, 0, len(p.Holdings)),
		Totals:   make(map[string]string, len(p.Totals)),
	}
	for _, h := range p.Holdings {
		out.Holdings = append(out.Holdings, HoldingResponse{
			Symbol:       h.Symbol,
			Quantity:     domain.FormatMoney(h.Quantity),
			AveragePrice: h.AveragePrice.StringFixed(domain.PriceScale),
			Currency:     h.Currency,
			Value:        domain.FormatMoney(h.Value()),
		})
	}
	for cur, total := range p.Totals {
		out.Totals[cur] = domain.FormatMoney(total)
	}
	return out
}
