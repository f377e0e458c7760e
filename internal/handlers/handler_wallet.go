package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/trading_wallet_app/internal/core/domain"
	portssvc "github.com/SscSPs/trading_wallet_app/internal/core/ports/services"
	"github.com/SscSPs/trading_wallet_app/internal/dto"
	"github.com/SscSPs/trading_wallet_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// walletHandler handles HTTP requests related to wallets.
type walletHandler struct {
	orchestrator portssvc.OrchestratorSvc
	wallet       portssvc.WalletReaderSvc
}

// newWalletHandler creates a new walletHandler.
func newWalletHandler(orchestrator portssvc.OrchestratorSvc, wallet portssvc.WalletReaderSvc) *walletHandler {
	return &walletHandler{orchestrator: orchestrator, wallet: wallet}
}

// registerWalletRoutes registers routes related to wallets.
func registerWalletRoutes(rg *gin.RouterGroup, orchestrator portssvc.OrchestratorSvc, wallet portssvc.WalletReaderSvc) {
	h := newWalletHandler(orchestrator, wallet)

	wallets := rg.Group("/wallets/:userID", middleware.RequirePathUser("userID"))
	{
		wallets.POST("/deposit", h.deposit)
		wallets.POST("/withdraw", h.withdraw)
		wallets.POST("/exchange", h.exchange)
		wallets.GET("/balances", h.listBalances)
	}
}

// deposit godoc
// @Summary Deposit funds
// @Description Credits the user's wallet in the given currency. Resubmitting the same Idempotency-Key returns the recorded outcome.
// @Tags wallets
// @Accept  json
// @Produce  json
// @Param   userID path string true "User ID"
// @Param   Idempotency-Key header string false "Operation id"
// @Param   request body dto.WalletAmountRequest true "Currency and amount"
// @Success 200 {object} dto.WalletBalanceResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid amount or currency"
// @Failure 409 {object} dto.ErrorResponse "Operation in progress or key reused"
// @Failure 503 {object} dto.ErrorResponse "Storage unavailable"
// @Security BearerAuth
// @Router /wallets/{userID}/deposit [post]
func (h *walletHandler) deposit(c *gin.Context) {
	var req dto.WalletAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	opID, err := operationID(c)
	if err != nil {
		respondError(c, err, "deposit")
		return
	}
	userID, _ := middleware.GetUserIDFromContext(c)

	balance, err := h.orchestrator.Deposit(c.Request.Context(), domain.DepositCommand{
		OperationID: opID,
		UserID:      userID,
		Currency:    req.Currency,
		Amount:      req.Amount,
	})
	if err != nil {
		respondError(c, err, "deposit")
		return
	}
	c.JSON(http.StatusOK, dto.ToWalletBalanceResponse(*balance))
}

// withdraw godoc
// @Summary Withdraw funds
// @Description Debits the user's wallet. The withdrawal fee is taken out of the amount unless configured to be charged on top.
// @Tags wallets
// @Accept  json
// @Produce  json
// @Param   userID path string true "User ID"
// @Param   Idempotency-Key header string false "Operation id"
// @Param   request body dto.WalletAmountRequest true "Currency and amount"
// @Success 200 {object} dto.WalletBalanceResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid amount or currency"
// @Failure 422 {object} dto.ErrorResponse "Insufficient funds"
// @Failure 409 {object} dto.ErrorResponse "Operation in progress or key reused"
// @Failure 503 {object} dto.ErrorResponse "Storage unavailable"
// @Security BearerAuth
// @Router /wallets/{userID}/withdraw [post]
func (h *walletHandler) withdraw(c *gin.Context) {
	var req dto.WalletAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	opID, err := operationID(c)
	if err != nil {
		respondError(c, err, "withdraw")
		return
	}
	userID, _ := middleware.GetUserIDFromContext(c)

	balance, err := h.orchestrator.Withdraw(c.Request.Context(), domain.WithdrawCommand{
		OperationID: opID,
		UserID:      userID,
		Currency:    req.Currency,
		Amount:      req.Amount,
	})
	if err != nil {
		respondError(c, err, "withdraw")
		return
	}
	c.JSON(http.StatusOK, dto.ToWalletBalanceResponse(*balance))
}

// exchange godoc
// @Summary Exchange currency
// @Description Converts an amount between two of the user's wallets at the current rate. The fee is charged in the destination currency.
// @Tags wallets
// @Accept  json
// @Produce  json
// @Param   userID path string true "User ID"
// @Param   Idempotency-Key header string false "Operation id"
// @Param   request body dto.ExchangeRequest true "Currencies and amount"
// @Success 200 {object} dto.ExchangeResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid amount or currency"
// @Failure 404 {object} dto.ErrorResponse "No rate for the currency pair"
// @Failure 422 {object} dto.ErrorResponse "Insufficient funds"
// @Failure 500 {object} dto.ErrorResponse "Compensation failed"
// @Failure 503 {object} dto.ErrorResponse "Rate unavailable"
// @Security BearerAuth
// @Router /wallets/{userID}/exchange [post]
func (h *walletHandler) exchange(c *gin.Context) {
	var req dto.ExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	opID, err := operationID(c)
	if err != nil {
		respondError(c, err, "exchange currency")
		return
	}
	userID, _ := middleware.GetUserIDFromContext(c)

	result, err := h.orchestrator.Exchange(c.Request.Context(), domain.ExchangeCommand{
		OperationID:  opID,
		UserID:       userID,
		FromCurrency: req.FromCurrency,
		ToCurrency:   req.ToCurrency,
		Amount:       req.Amount,
	})
	if err != nil {
		respondError(c, err, "exchange currency")
		return
	}
	c.JSON(http.StatusOK, dto.ToExchangeResponse(*result))
}

// listBalances godoc
// @Summary List balances
// @Description Lists every currency balance of the user.
// @Tags wallets
// @Produce  json
// @Param   userID path string true "User ID"
// @Success 200 {object} dto.ListBalancesResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 503 {object} dto.ErrorResponse "Storage unavailable"
// @Security BearerAuth
// @Router /wallets/{userID}/balances [get]
func (h *walletHandler) listBalances(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	balances, err := h.wallet.ListBalances(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "list balances")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Debug("Listed balances", slog.Int("count", len(balances)))
	c.JSON(http.StatusOK, dto.ToListBalancesResponse(balances))
}
