package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/trading_wallet_app/internal/core/domain"
	"github.com/SscSPs/trading_wallet_app/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction,
// encoding metadata as JSON.
func ToModelTransaction(d domain.Transaction) (models.Transaction, error) {
	m := models.Transaction{
		TransactionID:   d.TransactionID,
		UserID:          d.UserID,
		Type:            string(d.Type),
		Currency:        d.Currency,
		Amount:          d.Amount,
		Fees:            d.Fees,
		RelatedEntityID: d.RelatedEntityID,
		CreatedAt:       d.CreatedAt,
	}
	if len(d.Metadata) > 0 {
		raw, err := json.Marshal(d.Metadata)
		if err != nil {
			return models.Transaction{}, fmt.Errorf("encode metadata of transaction %s: %w", d.TransactionID, err)
		}
		m.Metadata = raw
	}
	return m, nil
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) (domain.Transaction, error) {
	d := domain.Transaction{
		TransactionID:   m.TransactionID,
		UserID:          m.UserID,
		Type:            domain.TransactionType(m.Type),
		Currency:        m.Currency,
		Amount:          m.Amount,
		Fees:            m.Fees,
		RelatedEntityID: m.RelatedEntityID,
		CreatedAt:       m.CreatedAt,
	}
	if len(m.Metadata) > 0 {
		if err := json.Unmarshal(m.Metadata, &d.Metadata); err != nil {
			return domain.Transaction{}, fmt.Errorf("decode metadata of transaction %s: %w", m.TransactionID, err)
		}
	}
	return d, nil
}
