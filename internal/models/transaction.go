package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a row of the append-only transactions table.
type Transaction struct {
	TransactionID   string          `db:"transaction_id"`
	UserID          string          `db:"user_id"`
	Type            string          `db:"type"`
	Currency        string          `db:"currency"`
	Amount          decimal.Decimal `db:"amount"`
	Fees            decimal.Decimal `db:"fees"`
	RelatedEntityID *string         `db:"related_entity_id"` // Nullable
	Metadata        []byte          `db:"metadata"`          // JSONB
	CreatedAt       time.Time       `db:"created_at"`
}
