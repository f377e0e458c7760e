package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a money-moving event in the journal.
type TransactionType string

const (
	TransactionDeposit          TransactionType = "DEPOSIT"
	TransactionWithdrawal       TransactionType = "WITHDRAWAL"
	TransactionBuy              TransactionType = "BUY"
	TransactionSell             TransactionType = "SELL"
	TransactionCurrencyExchange TransactionType = "CURRENCY_EXCHANGE"
)

// IsValid reports whether t is one of the known transaction types.
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionDeposit, TransactionWithdrawal, TransactionBuy, TransactionSell, TransactionCurrencyExchange:
		return true
	}
	return false
}

// Transaction is an immutable journal entry. Once appended it is never updated or deleted.
type Transaction struct {
	TransactionID   string          `json:"transactionID"`
	UserID          string          `json:"userID"`
	Type            TransactionType `json:"type"`
	Currency        string          `json:"currency"`
	Amount          decimal.Decimal `json:"amount"`
	Fees            decimal.Decimal `json:"fees"`
	RelatedEntityID *string         `json:"relatedEntityID,omitempty"` // trade id for BUY/SELL
	Metadata        map[string]any  `json:"metadata,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// TransactionFilter narrows a journal query.
type TransactionFilter struct {
	Type      *TransactionType
	Limit     int
	NextToken *string
}

// TransactionPage is one page of journal entries, newest first.
type TransactionPage struct {
	Transactions []Transaction `json:"transactions"`
	NextToken    *string       `json:"nextToken,omitempty"`
}
