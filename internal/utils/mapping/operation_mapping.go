package mapping

import (
	"github.com/SscSPs/trading_wallet_app/internal/core/domain"
	"github.com/SscSPs/trading_wallet_app/internal/models"
)

// ToModelOperation converts a domain Operation to a model Operation
func ToModelOperation(d domain.Operation) models.Operation {
	m := models.Operation{
		OperationID: d.OperationID,
		UserID:      d.UserID,
		Kind:        string(d.Kind),
		State:       string(d.State),
		Result:      d.Result,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	if d.ErrorCode != "" {
		code := d.ErrorCode
		m.ErrorCode = &code
	}
	if d.ErrorMessage != "" {
		msg := d.ErrorMessage
		m.ErrorMessage = &msg
	}
	return m
}

// ToDomainOperation converts a model Operation to a domain Operation
func ToDomainOperation(m models.Operation) domain.Operation {
	d := domain.Operation{
		OperationID: m.OperationID,
		UserID:      m.UserID,
		Kind:        domain.OperationKind(m.Kind),
		State:       domain.OperationState(m.State),
		Result:      m.Result,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.ErrorCode != nil {
		d.ErrorCode = *m.ErrorCode
	}
	if m.ErrorMessage != nil {
		d.ErrorMessage = *m.ErrorMessage
	}
	return d
}
