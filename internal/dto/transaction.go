package dto

import (
	"time"

	"github.com/SscSPs/trading_wallet_app/internal/core/domain"
)

// ListTransactionsParams are the query parameters of the history endpoint.
type ListTransactionsParams struct {
	Type      string `form:"type" binding:"omitempty,oneof=DEPOSIT WITHDRAWAL BUY SELL CURRENCY_EXCHANGE"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken string `form:"nextToken"`
}

// ToFilter converts query parameters to a journal filter.
func (p ListTransactionsParams) ToFilter() domain.TransactionFilter {
	f := domain.TransactionFilter{Limit: p.Limit}
	if p.Type != "" {
		t := domain.TransactionType(p.Type)
		f.Type = &t
	}
	if p.NextToken != "" {
		token := p.NextToken
		f.NextToken = &token
	}
	return f
}

// TransactionResponse renders one journal entry.
type TransactionResponse struct {
	TransactionID   string                 `json:"transactionID"`
	Type            domain.TransactionType `json:"type"`
	Currency        string                 `json:"currency"`
	Amount          string                 `json:"amount" example:"100.00"`
	Fees            string                 `json:"fees" example:"0.00"`
	RelatedEntityID *string                `json:"relatedEntityID,omitempty"`
	Metadata        map[string]any         `json:"metadata,omitempty"`
	CreatedAt       time.Time              `json:"createdAt"`
}

// ListTransactionsResponse is one page of history, newest first.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToListTransactionsResponse converts a domain.TransactionPage to its DTO
func ToListTransactionsResponse(page domain.TransactionPage) ListTransactionsResponse {
	out := ListTransactionsResponse{
		Transactions: make([]TransactionResponse, 0, len(page.Transactions)),
		NextToken:    page.NextToken,
	}
	for _, t := range page.Transactions {
		out.Transactions = append(out.Transactions, TransactionResponse{
			TransactionID:   t.TransactionID,
			Type:            t.Type,
			Currency:        t.Currency,
			Amount:          domain.FormatMoney(t.Amount),
			Fees:            domain.FormatMoney(t.Fees),
			RelatedEntityID: t.RelatedEntityID,
			Metadata:        t.Metadata,
			CreatedAt:       t.CreatedAt,
		})
	}
	return out
}
