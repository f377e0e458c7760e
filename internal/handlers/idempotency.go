package handlers

import (
	"fmt"

	"github.com/SscSPs/trading_wallet_app/internal/apperrors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// IdempotencyKeyHeader carries the client's operation id.
const IdempotencyKeyHeader = "Idempotency-Key"

const maxIdempotencyKeyLen = 255

// operationID returns the request's idempotency key, or a fresh one when the
// client sent none. Such requests cannot be safely retried.
func operationID(c *gin.Context) (string, error) {
	key := c.GetHeader(IdempotencyKeyHeader)
	if key == "" {
		return uuid.NewString(), nil
	}
	if len(key) > maxIdempotencyKeyLen {
		return "", fmt.Errorf("%w: %s must be at most %d characters", apperrors.ErrValidation, IdempotencyKeyHeader, maxIdempotencyKeyLen)
	}
	return key, nil
}
