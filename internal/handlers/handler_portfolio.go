package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/trading_wallet_app/internal/core/ports/services"
	"github.com/SscSPs/trading_wallet_app/internal/dto"
	"github.com/SscSPs/trading_wallet_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type portfolioHandler struct {
	portfolio portssvc.PortfolioReaderSvc
}

func registerPortfolioRoutes(rg *gin.RouterGroup, portfolio portssvc.PortfolioReaderSvc) {
	h := &portfolioHandler{portfolio: portfolio}
	rg.GET("/portfolios/:userID", middleware.RequirePathUser("userID"), h.getPortfolio)
}

// getPortfolio godoc
// @Summary Get portfolio
// @Description Lists holdings with per-currency totals valued at average purchase price.
// @Tags portfolios
// @Produce  json
// @Param   userID path string true "User ID"
// @Success 200 {object} dto.PortfolioResponse
// @Failure 503 {object} dto.ErrorResponse "Storage unavailable"
// @Security BearerAuth
// @Router /portfolios/{userID} [get]
func (h *portfolioHandler) getPortfolio(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	p, err := h.portfolio.GetPortfolio(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "get portfolio")
		return
	}
	c.JSON(http.StatusOK, dto.ToPortfolioResponse(*p))
}
