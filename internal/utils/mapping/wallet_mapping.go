package mapping

import (
	"github.com/SscSPs/trading_wallet_app/internal/core/domain"
	"github.com/SscSPs/trading_wallet_app/internal/models"
)

// ToDomainWalletBalance converts a model WalletBalance to a domain WalletBalance
func ToDomainWalletBalance(m models.WalletBalance) domain.WalletBalance {
	return domain.WalletBalance{
		UserID:      m.UserID,
		Currency:    m.Currency,
		Balance:     m.Balance,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelHolding converts a domain Holding to a model Holding
func ToModelHolding(d domain.Holding) models.Holding {
	return models.Holding{
		UserID:       d.UserID,
		Symbol:       d.Symbol,
		Quantity:     d.Quantity,
		AveragePrice: d.AveragePrice,
		Currency:     d.Currency,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainHolding converts a model Holding to a domain Holding
func ToDomainHolding(m models.Holding) domain.Holding {
	return domain.Holding{
		UserID:       m.UserID,
		Symbol:       m.Symbol,
		Quantity:     m.Quantity,
		AveragePrice: m.AveragePrice,
		Currency:     m.Currency,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
