package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/trading_wallet_app/internal/core/ports/services"
	"github.com/SscSPs/trading_wallet_app/internal/dto"
	"github.com/SscSPs/trading_wallet_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type transactionHandler struct {
	journal portssvc.TransactionJournalSvc
}

func registerTransactionRoutes(rg *gin.RouterGroup, journal portssvc.TransactionJournalSvc) {
	h := &transactionHandler{journal: journal}
	rg.GET("/transactions/:userID", middleware.RequirePathUser("userID"), h.listTransactions)
}

// listTransactions godoc
// @Summary List transactions
// @Description Lists the user's journal entries, newest first.
// @Tags transactions
// @Produce  json
// @Param   userID path string true "User ID"
// @Param   type query string false "Transaction type" Enums(DEPOSIT, WITHDRAWAL, BUY, SELL, CURRENCY_EXCHANGE)
// @Param   limit query int false "Page size (max 100)"
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query"
// @Failure 503 {object} dto.ErrorResponse "Storage unavailable"
// @Security BearerAuth
// @Router /transactions/{userID} [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	userID, _ := middleware.GetUserIDFromContext(c)
	page, err := h.journal.Query(c.Request.Context(), userID, params.ToFilter())
	if err != nil {
		respondError(c, err, "list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTransactionsResponse(*page))
}
