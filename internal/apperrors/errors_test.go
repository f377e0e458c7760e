package apperrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/trading_wallet_app/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestCode(t *testing.T) {
	wrapped := fmt.Errorf("debit USD: %w", apperrors.ErrInsufficientFunds)
	assert.Equal(t, "INSUFFICIENT_FUNDS", apperrors.Code(wrapped))
	assert.Equal(t, "INTERNAL", apperrors.Code(errors.New("boom")))

	// a compensation failure keeps its own code even though it wraps the cause
	comp := fmt.Errorf("%w: credit failed: %w", apperrors.ErrCompensationFailure, apperrors.ErrStorageUnavailable)
	assert.Equal(t, "COMPENSATION_FAILURE", apperrors.Code(comp))
	assert.False(t, apperrors.IsRetryable(comp))
}

func TestFromCode(t *testing.T) {
	assert.ErrorIs(t, apperrors.FromCode("UNKNOWN_SYMBOL"), apperrors.ErrUnknownSymbol)
	assert.Nil(t, apperrors.FromCode("nope"))
}

func TestStorageErrorIsRetryable(t *testing.T) {
	err := apperrors.NewStorageError("failed to commit", errors.New("conn reset"))
	assert.ErrorIs(t, err, apperrors.ErrStorageUnavailable)
	assert.True(t, apperrors.IsRetryable(err))

	var appErr *apperrors.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, 503, appErr.Code)
}
