package handlers

import (
	"net/http"

	"github.com/SscSPs/trading_wallet_app/internal/core/domain"
	portssvc "github.com/SscSPs/trading_wallet_app/internal/core/ports/services"
	"github.com/SscSPs/trading_wallet_app/internal/dto"
	"github.com/SscSPs/trading_wallet_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// tradeHandler handles HTTP requests related to trades.
type tradeHandler struct {
	orchestrator portssvc.OrchestratorSvc
}

// registerTradeRoutes registers routes related to trades.
func registerTradeRoutes(rg *gin.RouterGroup, orchestrator portssvc.OrchestratorSvc) {
	h := &tradeHandler{orchestrator: orchestrator}

	trades := rg.Group("/trades/:userID", middleware.RequirePathUser("userID"))
	{
		trades.POST("/buy", h.buy)
		trades.POST("/sell", h.sell)
		trades.GET("/:tradeID", h.getTrade)
	}
}

func (h *tradeHandler) bindTrade(c *gin.Context) (domain.TradeCommand, bool) {
	var req dto.TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return domain.TradeCommand{}, false
	}
	opID, err := operationID(c)
	if err != nil {
		respondError(c, err, "place trade")
		return domain.TradeCommand{}, false
	}
	userID, _ := middleware.GetUserIDFromContext(c)
	return domain.TradeCommand{
		OperationID: opID,
		UserID:      userID,
		Symbol:      req.Symbol,
		Currency:    req.Currency,
		OrderType:   req.OrderType,
		Amount:      req.Amount,
		Quantity:    req.Quantity,
	}, true
}

// buy godoc
// @Summary Buy a security
// @Description Buys by amount (spend up to amount including fee) or by quantity at the current price.
// @Tags trades
// @Accept  json
// @Produce  json
// @Param   userID path string true "User ID"
// @Param   Idempotency-Key header string false "Operation id"
// @Param   request body dto.TradeRequest true "Order"
// @Success 200 {object} dto.TradeResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid order"
// @Failure 404 {object} dto.ErrorResponse "Unknown symbol"
// @Failure 422 {object} dto.ErrorResponse "Insufficient funds"
// @Failure 500 {object} dto.ErrorResponse "Compensation failed"
// @Failure 503 {object} dto.ErrorResponse "Price unavailable"
// @Security BearerAuth
// @Router /trades/{userID}/buy [post]
func (h *tradeHandler) buy(c *gin.Context) {
	cmd, ok := h.bindTrade(c)
	if !ok {
		return
	}
	trade, err := h.orchestrator.Buy(c.Request.Context(), cmd)
	if err != nil {
		respondError(c, err, "buy")
		return
	}
	c.JSON(http.StatusOK, dto.ToTradeResponse(*trade))
}

// sell godoc
// @Summary Sell a security
// @Description Sells by amount or by quantity at the current price. Proceeds less the fee are credited.
// @Tags trades
// @Accept  json
// @Produce  json
// @Param   userID path string true "User ID"
// @Param   Idempotency-Key header string false "Operation id"
// @Param   request body dto.TradeRequest true "Order"
// @Success 200 {object} dto.TradeResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid order"
// @Failure 404 {object} dto.ErrorResponse "Unknown symbol"
// @Failure 422 {object} dto.ErrorResponse "Insufficient holdings"
// @Failure 500 {object} dto.ErrorResponse "Compensation failed"
// @Failure 503 {object} dto.ErrorResponse "Price unavailable"
// @Security BearerAuth
// @Router /trades/{userID}/sell [post]
func (h *tradeHandler) sell(c *gin.Context) {
	cmd, ok := h.bindTrade(c)
	if !ok {
		return
	}
	trade, err := h.orchestrator.Sell(c.Request.Context(), cmd)
	if err != nil {
		respondError(c, err, "sell")
		return
	}
	c.JSON(http.StatusOK, dto.ToTradeResponse(*trade))
}

// getTrade godoc
// @Summary Get a trade
// @Tags trades
// @Produce  json
// @Param   userID path string true "User ID"
// @Param   tradeID path string true "Trade ID"
// @Success 200 {object} dto.TradeResponse
// @Failure 404 {object} dto.ErrorResponse "Trade not found"
// @Security BearerAuth
// @Router /trades/{userID}/{tradeID} [get]
func (h *tradeHandler) getTrade(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	trade, err := h.orchestrator.GetTrade(c.Request.Context(), userID, c.Param("tradeID"))
	if err != nil {
		respondError(c, err, "get trade")
		return
	}
	c.JSON(http.StatusOK, dto.ToTradeResponse(*trade))
}
