package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/trading_wallet_app/internal/apperrors"
	"github.com/SscSPs/trading_wallet_app/internal/dto"
	"github.com/SscSPs/trading_wallet_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

var statusByCode = map[string]int{
	"INVALID_AMOUNT":        http.StatusBadRequest,
	"VALIDATION_ERROR":      http.StatusBadRequest,
	"INSUFFICIENT_FUNDS":    http.StatusUnprocessableEntity,
	"INSUFFICIENT_HOLDINGS": http.StatusUnprocessableEntity,
	"UNKNOWN_SYMBOL":        http.StatusNotFound,
	"NOT_FOUND":             http.StatusNotFound,
	"STALE_QUOTE":           http.StatusServiceUnavailable,
	"QUOTE_TIMEOUT":         http.StatusServiceUnavailable,
	"STORAGE_UNAVAILABLE":   http.StatusServiceUnavailable,
	"OPERATION_IN_PROGRESS": http.StatusConflict,
	"IDEMPOTENCY_CONFLICT":  http.StatusConflict,
	"DUPLICATE":             http.StatusConflict,
	"COMPENSATION_FAILURE":  http.StatusInternalServerError,
}

// respondError writes err as {"error", "code"} with the status its code maps to.
// Unclassified errors are logged and reported without detail.
func respondError(c *gin.Context, err error, action string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := apperrors.Code(err)
	status, ok := statusByCode[code]
	if !ok {
		logger.Error("Unexpected error", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to " + action, Code: code})
		return
	}
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", slog.String("action", action), slog.String("code", code), slog.String("error", err.Error()))
	} else {
		logger.Warn("Request rejected", slog.String("action", action), slog.String("code", code), slog.String("error", err.Error()))
	}
	c.JSON(status, dto.ErrorResponse{Error: err.Error(), Code: code})
}

// respondBindError reports a malformed request body or query.
func respondBindError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error(), Code: "VALIDATION_ERROR"})
}
